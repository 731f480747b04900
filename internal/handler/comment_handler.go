package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"microblog/internal/forms"
	"microblog/internal/middleware"
	"microblog/internal/service"
)

type CommentHandler struct {
	svc *service.CommentService
}

func NewCommentHandler(svc *service.CommentService) *CommentHandler {
	return &CommentHandler{svc: svc}
}

// Add persists a valid comment and returns to the post detail view. An
// invalid submission redirects there too, storing nothing.
func (h *CommentHandler) Add(c *gin.Context) {
	postID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"msg": "post not found"})
		return
	}

	var f forms.CommentForm
	if err := c.ShouldBind(&f); err != nil || !f.Validate().Ok() {
		c.Redirect(http.StatusFound, detailURL(postID))
		return
	}

	_, err = h.svc.Add(c.Request.Context(), postID, middleware.UserID(c), f.Text)
	if errors.Is(err, service.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"msg": "post not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "comment failed"})
		return
	}
	c.Redirect(http.StatusFound, detailURL(postID))
}
