package notification

import (
	"scholarshub/internal/domain/notification/handler"
	"scholarshub/internal/domain/notification/repository"
	"scholarshub/internal/domain/notification/service"
	"scholarshub/internal/pkg/middleware"
	"scholarshub/internal/pkg/registry"
	"scholarshub/pkg/cache"

	"github.com/gin-gonic/gin"
)

type NotificationModule struct{}

func init() {
	registry.Register(&NotificationModule{})
}

func (m *NotificationModule) Name() string {
	return "notification"
}

func (m *NotificationModule) Priority() int {
	return 5
}

func (m *NotificationModule) Init(ctx *registry.ModuleContext) error {
	nRepo := repository.NewNotificationRepository(ctx.DB)
	nService := service.NewNotificationService(nRepo, cache.NewRedisCache(ctx.Redis), ctx.PushPool)
	nHandler := handler.NewNotificationHandler(nService)

	setupRoutes(ctx.Router, nHandler)
	return nil
}

func setupRoutes(r *gin.Engine, h *handler.NotificationHandler) {
	g := r.Group("/api/notifications")
	g.Use(middleware.AuthMiddleware())
	{
		g.GET("", h.List)
		g.GET("/unread/count", h.UnreadCount)
		g.PUT("/read-all", h.MarkAllRead)
	}
}
