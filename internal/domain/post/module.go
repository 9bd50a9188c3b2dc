package post

import (
	notifrepo "scholarshub/internal/domain/notification/repository"
	notifservice "scholarshub/internal/domain/notification/service"
	"scholarshub/internal/domain/post/handler"
	"scholarshub/internal/domain/post/repository"
	"scholarshub/internal/domain/post/service"
	userrepo "scholarshub/internal/domain/user/repository"
	"scholarshub/internal/pkg/middleware"
	"scholarshub/internal/pkg/registry"
	"scholarshub/pkg/cache"

	"github.com/gin-gonic/gin"
)

type PostModule struct{}

func init() {
	registry.Register(&PostModule{})
}

func (m *PostModule) Name() string {
	return "post"
}

func (m *PostModule) Priority() int {
	return 10
}

func (m *PostModule) Init(ctx *registry.ModuleContext) error {
	notifier := notifservice.NewNotificationService(
		notifrepo.NewNotificationRepository(ctx.DB),
		cache.NewRedisCache(ctx.Redis),
		ctx.PushPool,
	)

	// The user repository doubles as the follow graph and bookmark source.
	uRepo := userrepo.NewUserRepository(ctx.DB)

	pRepo := repository.NewPostRepository(ctx.DB)
	pService := service.NewPostService(pRepo, uRepo, notifier)
	fService := service.NewFeedService(pRepo, uRepo)
	pHandler := handler.NewPostHandler(pService, fService)

	setupRoutes(ctx.Router, pHandler)
	return nil
}

func setupRoutes(r *gin.Engine, h *handler.PostHandler) {
	posts := r.Group("/api/posts")
	posts.Use(middleware.AuthMiddleware())
	{
		posts.GET("", h.GetFeed)
		posts.GET("/explore", h.Explore)
		posts.GET("/:id", h.GetPost)
		posts.POST("", h.CreatePost)
		posts.POST("/:id/like", h.ToggleLike)
		posts.POST("/:id/comment", h.AddComment)
		posts.POST("/:id/report", h.ReportPost)
		posts.DELETE("/:id", h.DeletePost)
	}

	users := r.Group("/api/users")
	users.Use(middleware.AuthMiddleware())
	{
		users.GET("/:id/posts", h.GetUserPosts)
		users.GET("/:id/bookmarks", h.GetBookmarkedPosts)
	}
}
