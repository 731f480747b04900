package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"microblog/internal/pkg"
)

type MediaHandler struct {
	blobs *pkg.BlobStore
}

func NewMediaHandler(blobs *pkg.BlobStore) *MediaHandler {
	return &MediaHandler{blobs: blobs}
}

// Serve streams a stored image back byte for byte.
func (h *MediaHandler) Serve(c *gin.Context) {
	path, err := h.blobs.Path(c.Param("name"))
	if errors.Is(err, pkg.ErrInvalidBlobName) {
		c.JSON(http.StatusNotFound, gin.H{"msg": "not found"})
		return
	}
	c.File(path)
}
