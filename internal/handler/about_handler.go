package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type AboutHandler struct{}

func NewAboutHandler() *AboutHandler {
	return &AboutHandler{}
}

func (h *AboutHandler) Author(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"page": "about/author"})
}

func (h *AboutHandler) Tech(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"page": "about/tech"})
}
