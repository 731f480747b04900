package handler

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"microblog/internal/forms"
	"microblog/internal/middleware"
	"microblog/internal/model"
	"microblog/internal/service"
)

type PostHandler struct {
	svc    *service.PostService
	groups *service.GroupService
}

func NewPostHandler(svc *service.PostService, groups *service.GroupService) *PostHandler {
	return &PostHandler{svc: svc, groups: groups}
}

// groupChoices feeds the group selector on the post form. A load failure
// just leaves the selector empty.
func (h *PostHandler) groupChoices(c *gin.Context) []model.Group {
	list, err := h.groups.List(c.Request.Context())
	if err != nil {
		return nil
	}
	return list
}

func detailURL(postID uint64) string {
	return fmt.Sprintf("/posts/%d/", postID)
}

func profileURL(username string) string {
	return "/profile/" + username + "/"
}

// Detail shows a post with its comments and an empty comment form.
func (h *PostHandler) Detail(c *gin.Context) {
	postID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"msg": "post not found"})
		return
	}
	post, comments, err := h.svc.Detail(c.Request.Context(), postID)
	if errors.Is(err, service.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"msg": "post not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "load failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"post":     post,
		"comments": comments,
		"form":     forms.CommentForm{},
	})
}

// Create handles both the empty form and the submission. A valid submission
// persists the post with the current user as author and redirects to their
// profile; an invalid one redisplays the form with field errors.
func (h *PostHandler) Create(c *gin.Context) {
	if c.Request.Method == http.MethodGet {
		c.JSON(http.StatusOK, gin.H{"form": forms.PostForm{}, "groups": h.groupChoices(c)})
		return
	}

	var f forms.PostForm
	if err := c.ShouldBind(&f); err != nil {
		c.JSON(http.StatusOK, gin.H{"form": f, "errors": forms.Errors{"text": "invalid submission"}})
		return
	}
	image, cleanup, err := boundImage(c)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"form": f, "errors": forms.Errors{"image": "invalid image upload"}})
		return
	}
	defer cleanup()

	post, errs, err := h.svc.Create(c.Request.Context(), middleware.UserID(c), &f, image)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "create failed"})
		return
	}
	if errs != nil {
		c.JSON(http.StatusOK, gin.H{"form": f, "errors": errs})
		return
	}
	c.Redirect(http.StatusFound, profileURL(post.Author.Username))
}

// Edit is author-only. Anyone else lands on the read-only detail view
// without an error.
func (h *PostHandler) Edit(c *gin.Context) {
	postID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"msg": "post not found"})
		return
	}

	if c.Request.Method == http.MethodGet {
		post, _, err := h.svc.Detail(c.Request.Context(), postID)
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"msg": "post not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"msg": "load failed"})
			return
		}
		if post.AuthorID != middleware.UserID(c) {
			c.Redirect(http.StatusFound, detailURL(postID))
			return
		}
		f := forms.PostForm{Text: post.Text}
		if post.GroupID != nil {
			f.Group = strconv.FormatUint(*post.GroupID, 10)
		}
		c.JSON(http.StatusOK, gin.H{"form": f, "is_edit": true, "post": post, "groups": h.groupChoices(c)})
		return
	}

	var f forms.PostForm
	if err := c.ShouldBind(&f); err != nil {
		c.JSON(http.StatusOK, gin.H{"form": f, "errors": forms.Errors{"text": "invalid submission"}})
		return
	}
	image, cleanup, err := boundImage(c)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"form": f, "errors": forms.Errors{"image": "invalid image upload"}})
		return
	}
	defer cleanup()

	post, errs, err := h.svc.Edit(c.Request.Context(), postID, middleware.UserID(c), &f, image)
	if errors.Is(err, service.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"msg": "post not found"})
		return
	}
	if errors.Is(err, service.ErrNotAuthor) {
		c.Redirect(http.StatusFound, detailURL(postID))
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "edit failed"})
		return
	}
	if errs != nil {
		c.JSON(http.StatusOK, gin.H{"form": f, "errors": errs, "is_edit": true, "post": post})
		return
	}
	c.Redirect(http.StatusFound, detailURL(post.ID))
}

// boundImage extracts an optional multipart image part. The cleanup closes
// the underlying file and is safe to call when no image was sent.
func boundImage(c *gin.Context) (*service.ImageUpload, func(), error) {
	noop := func() {}
	fh, err := c.FormFile("image")
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return nil, noop, nil
	}
	if err != nil {
		return nil, noop, err
	}
	return openUpload(fh)
}

func openUpload(fh *multipart.FileHeader) (*service.ImageUpload, func(), error) {
	f, err := fh.Open()
	if err != nil {
		return nil, func() {}, err
	}
	upload := &service.ImageUpload{
		Reader:      f,
		ContentType: fh.Header.Get("Content-Type"),
	}
	return upload, func() { f.Close() }, nil
}
