package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"microblog/internal/forms"
	"microblog/internal/middleware"
	"microblog/internal/pkg"
	"microblog/internal/service"
)

type UserHandler struct {
	svc *service.UserService
}

func NewUserHandler(svc *service.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

// Signup registers a new account and redirects to the login page.
func (h *UserHandler) Signup(c *gin.Context) {
	if c.Request.Method == http.MethodGet {
		c.JSON(http.StatusOK, gin.H{"form": forms.SignupForm{}})
		return
	}

	var f forms.SignupForm
	if err := c.ShouldBind(&f); err != nil {
		c.JSON(http.StatusOK, gin.H{"form": f, "errors": forms.Errors{"username": "invalid submission"}})
		return
	}
	_, errs, err := h.svc.Signup(c.Request.Context(), &f)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "signup failed"})
		return
	}
	if errs != nil {
		c.JSON(http.StatusOK, gin.H{"form": f, "errors": errs})
		return
	}
	c.Redirect(http.StatusFound, middleware.LoginPath)
}

// Login sets the session cookie and redirects to ?next= (default /).
func (h *UserHandler) Login(c *gin.Context) {
	if c.Request.Method == http.MethodGet {
		c.JSON(http.StatusOK, gin.H{"form": forms.LoginForm{}, "next": c.Query("next")})
		return
	}

	var f forms.LoginForm
	if err := c.ShouldBind(&f); err != nil || !f.Validate().Ok() {
		c.JSON(http.StatusOK, gin.H{"form": f, "errors": forms.Errors{"username": "invalid submission"}})
		return
	}
	token, err := h.svc.Login(c.Request.Context(), f.Username, f.Password)
	if errors.Is(err, service.ErrBadCredentials) {
		c.JSON(http.StatusOK, gin.H{"form": f, "errors": forms.Errors{"username": "invalid username or password"}})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "login failed"})
		return
	}

	c.SetCookie(middleware.SessionCookie, token, int(pkg.SessionTTL.Seconds()), "/", "", false, true)

	next := c.Query("next")
	if next == "" || next[0] != '/' {
		next = "/"
	}
	c.Redirect(http.StatusFound, next)
}

// Logout drops the whitelist entry and expires the cookie.
func (h *UserHandler) Logout(c *gin.Context) {
	if userID := middleware.UserID(c); userID != 0 {
		_ = h.svc.Logout(c.Request.Context(), userID)
	}
	c.SetCookie(middleware.SessionCookie, "", -1, "/", "", false, true)
	c.Redirect(http.StatusFound, "/")
}

// SendResetCode mails a password reset code. The response does not reveal
// whether the address is registered.
func (h *UserHandler) SendResetCode(c *gin.Context) {
	var req struct {
		Email string `form:"email" json:"email"`
	}
	if err := c.ShouldBind(&req); err != nil || req.Email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}
	if err := h.svc.SendResetCode(c.Request.Context(), req.Email); err != nil && !errors.Is(err, service.ErrNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "send failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "code sent if the address is registered"})
}

// ResetPassword consumes the mailed code and sets a new password.
func (h *UserHandler) ResetPassword(c *gin.Context) {
	var req struct {
		Email       string `form:"email" json:"email"`
		Code        string `form:"code" json:"code"`
		NewPassword string `form:"new_password" json:"new_password"`
	}
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}
	errs, err := h.svc.ResetPassword(c.Request.Context(), req.Email, req.Code, req.NewPassword)
	if errors.Is(err, service.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"msg": "user not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "reset failed"})
		return
	}
	if errs != nil {
		c.JSON(http.StatusOK, gin.H{"errors": errs})
		return
	}
	c.Redirect(http.StatusFound, middleware.LoginPath)
}
