package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"microblog/internal/middleware"
	"microblog/internal/pkg"
	"microblog/internal/service"
)

type FeedHandler struct {
	svc *service.FeedService
}

func NewFeedHandler(svc *service.FeedService) *FeedHandler {
	return &FeedHandler{svc: svc}
}

// Index is the main feed.
func (h *FeedHandler) Index(c *gin.Context) {
	page, err := h.svc.Main(c.Request.Context(), pkg.PageNumber(c.Query("page")))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "feed failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"page_obj": page})
}

// GroupPosts lists one group's posts.
func (h *FeedHandler) GroupPosts(c *gin.Context) {
	group, page, err := h.svc.Group(c.Request.Context(), c.Param("slug"), pkg.PageNumber(c.Query("page")))
	if errors.Is(err, service.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"msg": "group not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "feed failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"group": group, "page_obj": page})
}

// Profile lists one author's posts plus the viewer's follow status.
func (h *FeedHandler) Profile(c *gin.Context) {
	viewer := middleware.UserID(c)
	author, page, following, err := h.svc.Profile(c.Request.Context(), c.Param("username"), viewer, pkg.PageNumber(c.Query("page")))
	if errors.Is(err, service.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"msg": "user not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "feed failed"})
		return
	}
	followers, err := h.svc.Followers(c.Request.Context(), author.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "feed failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"author":    author,
		"page_obj":  page,
		"following": following,
		"followers": followers,
	})
}

// FollowIndex is the personalized feed of followed authors.
func (h *FeedHandler) FollowIndex(c *gin.Context) {
	userID := middleware.UserID(c)
	page, err := h.svc.Following(c.Request.Context(), userID, pkg.PageNumber(c.Query("page")))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "feed failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"page_obj": page})
}
