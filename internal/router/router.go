package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"microblog/internal/handler"
	"microblog/internal/middleware"
	"microblog/internal/pkg"
	"microblog/internal/service"
)

// SessionBackend is what both the middleware and the login flow need from
// the token whitelist.
type SessionBackend interface {
	middleware.TokenStore
	service.SessionStore
}

type Deps struct {
	DB       *gorm.DB
	Cache    service.FeedCache
	Sessions SessionBackend
	Resets   service.ResetStore
	Mailer   service.Mailer
	Blobs    *pkg.BlobStore
	Events   service.EventSender
}

func InitRouter(deps Deps) *gin.Engine {
	r := gin.Default()
	r.Use(pkg.MetricsMiddleware())
	r.Use(middleware.CurrentUser(deps.Sessions))

	groupSvc := service.NewGroupService(deps.DB)
	feed := handler.NewFeedHandler(service.NewFeedService(deps.DB, deps.Cache))
	post := handler.NewPostHandler(service.NewPostService(deps.DB, deps.Blobs, deps.Cache, deps.Events), groupSvc)
	comment := handler.NewCommentHandler(service.NewCommentService(deps.DB))
	follow := handler.NewFollowHandler(service.NewFollowService(deps.DB, deps.Events))
	group := handler.NewGroupHandler(groupSvc)
	user := handler.NewUserHandler(service.NewUserService(deps.DB, deps.Sessions, deps.Resets, deps.Mailer))
	media := handler.NewMediaHandler(deps.Blobs)
	about := handler.NewAboutHandler()

	// Public pages.
	r.GET("/", feed.Index)
	r.GET("/group/:slug/", feed.GroupPosts)
	r.GET("/profile/:username/", feed.Profile)
	r.GET("/posts/:id/", post.Detail)
	r.GET("/media/:name", media.Serve)
	r.GET("/about/author/", about.Author)
	r.GET("/about/tech/", about.Tech)
	r.GET("/metrics", pkg.MetricsHandler())

	// Account pages.
	authGroup := r.Group("/auth")
	{
		authGroup.GET("/signup/", user.Signup)
		authGroup.POST("/signup/", user.Signup)
		authGroup.GET("/login/", user.Login)
		authGroup.POST("/login/", user.Login)
		authGroup.GET("/logout/", user.Logout)
		authGroup.POST("/password_reset/", user.SendResetCode)
		authGroup.POST("/reset/", user.ResetPassword)
	}

	// Pages that need a signed-in user.
	guarded := r.Group("/")
	guarded.Use(middleware.RequireAuth())
	{
		guarded.GET("/create/", post.Create)
		guarded.POST("/create/", post.Create)
		guarded.GET("/posts/:id/edit/", post.Edit)
		guarded.POST("/posts/:id/edit/", post.Edit)
		guarded.POST("/posts/:id/comment/", comment.Add)
		guarded.GET("/follow/", feed.FollowIndex)
		guarded.GET("/profile/:username/follow/", follow.Follow)
		guarded.GET("/profile/:username/unfollow/", follow.Unfollow)
		guarded.GET("/groups/create/", group.Create)
		guarded.POST("/groups/create/", group.Create)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"msg": "page not found"})
	})

	return r
}
