package middleware

import (
	"context"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"microblog/internal/pkg"
)

const (
	ContextUserIDKey = "user_id"
	SessionCookie    = "session_token"
	LoginPath        = "/auth/login/"
)

// TokenStore is the session whitelist the middleware checks tokens against.
type TokenStore interface {
	Token(ctx context.Context, userID uint64) (string, error)
	ExtendToken(ctx context.Context, userID uint64) error
}

// CurrentUser resolves the session cookie to a user id and puts it on the
// context. It never aborts; anonymous requests just carry no user id.
func CurrentUser(store TokenStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(SessionCookie)
		if err != nil || token == "" {
			c.Next()
			return
		}

		claims, err := pkg.ParseToken(token)
		if err != nil {
			c.Next()
			return
		}

		// The whitelist holds the single active token per user. A stale
		// cookie from a replaced session fails here.
		current, err := store.Token(c.Request.Context(), claims.UserID)
		if err != nil || current != token {
			c.Next()
			return
		}

		_ = store.ExtendToken(c.Request.Context(), claims.UserID)

		c.Set(ContextUserIDKey, claims.UserID)
		c.Next()
	}
}

// RequireAuth guards a route group: anonymous requests are redirected to the
// login page with the original path as the return target.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := c.Get(ContextUserIDKey); !ok {
			c.Redirect(http.StatusFound, LoginPath+"?next="+url.QueryEscape(c.Request.URL.Path))
			c.Abort()
			return
		}
		c.Next()
	}
}

// UserID returns the authenticated user id, zero for anonymous requests.
func UserID(c *gin.Context) uint64 {
	if v, ok := c.Get(ContextUserIDKey); ok {
		if id, ok2 := v.(uint64); ok2 {
			return id
		}
	}
	return 0
}
