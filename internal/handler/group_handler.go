package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"microblog/internal/forms"
	"microblog/internal/service"
)

type GroupHandler struct {
	svc *service.GroupService
}

func NewGroupHandler(svc *service.GroupService) *GroupHandler {
	return &GroupHandler{svc: svc}
}

// Create makes a new group and redirects to its feed. A duplicate slug
// comes back as a field error on the form.
func (h *GroupHandler) Create(c *gin.Context) {
	if c.Request.Method == http.MethodGet {
		c.JSON(http.StatusOK, gin.H{"form": forms.GroupForm{}})
		return
	}

	var f forms.GroupForm
	if err := c.ShouldBind(&f); err != nil {
		c.JSON(http.StatusOK, gin.H{"form": f, "errors": forms.Errors{"title": "invalid submission"}})
		return
	}
	group, errs, err := h.svc.Create(c.Request.Context(), &f)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "create failed"})
		return
	}
	if errs != nil {
		c.JSON(http.StatusOK, gin.H{"form": f, "errors": errs})
		return
	}
	c.Redirect(http.StatusFound, "/group/"+group.Slug+"/")
}
