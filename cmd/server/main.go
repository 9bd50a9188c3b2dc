package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"scholarshub/internal/pkg/common"
	"scholarshub/internal/pkg/config"
	"scholarshub/internal/pkg/middleware"
	"scholarshub/internal/pkg/push"
	"scholarshub/internal/pkg/registry"
	"scholarshub/internal/pkg/uploader"
	"scholarshub/internal/pkg/worker"
	"scholarshub/pkg/database"
	"scholarshub/pkg/logger"
	"scholarshub/pkg/response"

	_ "scholarshub/docs"
	_ "scholarshub/internal/domain/notification"
	_ "scholarshub/internal/domain/post"
	_ "scholarshub/internal/domain/user"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

// @title Scholars Hub API
// @version 1.0
// @description Social study-sharing backend: posts, feeds, follows, notifications.
// @BasePath /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	config.LoadConfig()

	logger.Init(config.GlobalConfig.App.Debug)
	defer logger.Sync()

	db := database.InitDatabase()
	rdb := database.InitRedis()

	// File uploads degrade to 503 when object storage is not configured.
	if ossUploader, err := uploader.NewAliyunOSSUploader(); err != nil {
		logger.Log.Warn("object storage unavailable, uploads disabled", zap.Error(err))
	} else {
		uploader.GlobalUploader = ossUploader
	}

	// Device push is best-effort; without credentials notifications stay
	// in-app only.
	var pushPool *worker.PushPool
	if pusher, err := push.NewAliyunPushService(); err != nil {
		logger.Log.Warn("push service unavailable, device push disabled", zap.Error(err))
	} else {
		pushPool = worker.NewPushPool(pusher, 5, 1000)
		pushPool.Start()
	}

	if config.GlobalConfig.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.LoggerMiddleware())
	r.Use(middleware.TraceMiddleware())
	r.Use(middleware.MetricsMiddleware())
	r.Use(middleware.RateLimitMiddleware())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/api/health", func(c *gin.Context) {
		response.Success(c, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	r.POST("/api/upload", middleware.AuthMiddleware(), common.UploadFiles)

	if err := registry.InitModules(&registry.ModuleContext{
		DB:       db,
		Redis:    rdb,
		Router:   r,
		PushPool: pushPool,
	}); err != nil {
		logger.Log.Fatal("module initialization failed", zap.Error(err))
	}

	srv := &http.Server{
		Addr:    ":" + config.GlobalConfig.Server.Port,
		Handler: r,
	}

	go func() {
		logger.Log.Info("server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Log.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("forced shutdown", zap.Error(err))
	}
}
