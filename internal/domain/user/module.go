package user

import (
	notifrepo "scholarshub/internal/domain/notification/repository"
	notifservice "scholarshub/internal/domain/notification/service"
	"scholarshub/internal/domain/user/handler"
	"scholarshub/internal/domain/user/repository"
	"scholarshub/internal/domain/user/service"
	"scholarshub/internal/pkg/middleware"
	"scholarshub/internal/pkg/registry"
	"scholarshub/pkg/cache"

	"github.com/gin-gonic/gin"
)

type UserModule struct{}

func init() {
	registry.Register(&UserModule{})
}

func (m *UserModule) Name() string {
	return "user"
}

func (m *UserModule) Priority() int {
	return 1
}

func (m *UserModule) Init(ctx *registry.ModuleContext) error {
	notifier := notifservice.NewNotificationService(
		notifrepo.NewNotificationRepository(ctx.DB),
		cache.NewRedisCache(ctx.Redis),
		ctx.PushPool,
	)

	uRepo := repository.NewUserRepository(ctx.DB)
	uService := service.NewUserService(uRepo, notifier)
	uHandler := handler.NewUserHandler(uService)

	setupRoutes(ctx.Router, uHandler)
	return nil
}

func setupRoutes(r *gin.Engine, h *handler.UserHandler) {
	authGroup := r.Group("/api/auth")
	{
		authGroup.POST("/register", h.Register)
		authGroup.POST("/login", h.Login)
		authGroup.GET("/me", middleware.AuthMiddleware(), h.Me)
	}

	users := r.Group("/api/users")
	users.Use(middleware.AuthMiddleware())
	{
		users.GET("/search/find", h.SearchUsers)
		users.GET("/:id", h.GetUser)
		users.PUT("/:id", h.UpdateUser)
		users.POST("/:id/follow", h.ToggleFollow)
		users.POST("/bookmark/:postId", h.ToggleBookmark)
	}
}
