package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"microblog/internal/middleware"
	"microblog/internal/service"
)

type FollowHandler struct {
	svc *service.FollowService
}

func NewFollowHandler(svc *service.FollowService) *FollowHandler {
	return &FollowHandler{svc: svc}
}

// Follow creates the edge and returns to the author's profile. Self-follows
// and repeats change nothing and still redirect.
func (h *FollowHandler) Follow(c *gin.Context) {
	username := c.Param("username")
	author, _, err := h.svc.Follow(c.Request.Context(), middleware.UserID(c), username)
	if errors.Is(err, service.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"msg": "user not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "follow failed"})
		return
	}
	c.Redirect(http.StatusFound, profileURL(author.Username))
}

// Unfollow deletes the edge if present and returns to the profile.
func (h *FollowHandler) Unfollow(c *gin.Context) {
	username := c.Param("username")
	author, _, err := h.svc.Unfollow(c.Request.Context(), middleware.UserID(c), username)
	if errors.Is(err, service.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"msg": "user not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "unfollow failed"})
		return
	}
	c.Redirect(http.StatusFound, profileURL(author.Username))
}
