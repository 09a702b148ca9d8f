package main

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	redisClient "github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/imkrish7/urlshortnerbackend/docs"
	"github.com/imkrish7/urlshortnerbackend/internal/config"
	"github.com/imkrish7/urlshortnerbackend/internal/handler"
	"github.com/imkrish7/urlshortnerbackend/internal/middleware"
	"github.com/imkrish7/urlshortnerbackend/internal/repository"
	"github.com/imkrish7/urlshortnerbackend/internal/shortcode"
	"github.com/imkrish7/urlshortnerbackend/pkg/database"
	"github.com/imkrish7/urlshortnerbackend/pkg/logger"
	"github.com/imkrish7/urlshortnerbackend/pkg/redis"
)

// @title URL Shortener API
// @version 1.0
// @description 短链接服务：创建、查询、编辑、删除、重定向
// @BasePath /

func main() {
	logger.InitLogger()
	defer func() {
		if err := logger.Logger.Sync(); err != nil {
			fmt.Println("日志同步失败:", err)
		}
	}()
	sugaredLogger := zap.S()

	cfg, err := config.Load("configs/config.yaml")
	if err != nil {
		sugaredLogger.Fatalf("配置加载失败: %v", err)
	}

	db, err := database.InitMySQL(cfg.Database.Host, cfg.Database.Port, cfg.Database.User, cfg.Database.Password, cfg.Database.Name)
	if err != nil {
		sugaredLogger.Fatalf("数据库初始化失败: %v", err)
	}
	sugaredLogger.Info("✅ 数据库连接成功")

	var rdb *redisClient.Client
	if cfg.Cache.Host != "" {
		rdb, err = redis.NewRedisClient(&redis.Options{
			Host: cfg.Cache.Host, Port: cfg.Cache.Port, Password: cfg.Cache.Password, DB: cfg.Cache.DB,
		})
		if err != nil {
			sugaredLogger.Warnf("缓存连接失败: %v", err)
		} else {
			defer func() {
				if err := rdb.Close(); err != nil {
					sugaredLogger.Errorf("关闭 Redis 连接失败: %v", err)
				}
			}()
			sugaredLogger.Info("✅ 缓存连接成功")
		}
	}

	// 初始化并启动短码生成器
	shortcodeGenerator := shortcode.NewGenerator(db, sugaredLogger)
	shortcodeGenerator.Start()
	defer shortcodeGenerator.Stop()
	sugaredLogger.Info("✅ 短码生成器已启动")

	if cfg.App.Mode == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(middleware.GinZapRecovery(logger.Logger, true))
	router.Use(middleware.GinZapLogger(logger.Logger))
	router.Use(middleware.CORS())

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	repo := repository.NewShortLinkRepo(db)
	shortenerHandler := handler.NewShortenerHandler(repo, rdb, shortcodeGenerator)

	registerRoutes(router, shortenerHandler)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	sugaredLogger.Infof("🚀 服务启动成功, 访问 http://localhost:%d", cfg.Server.Port)
	sugaredLogger.Infof("📚 Swagger 文档地址: http://localhost:%d/swagger/index.html", cfg.Server.Port)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		sugaredLogger.Fatalf("服务启动失败: %v", err)
	}
}

func registerRoutes(router *gin.Engine, h *handler.ShortenerHandler) {
	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"service": "urlshortner-backend", "status": "running"})
	})
	router.GET("/health", h.HealthCheck)

	shortener := router.Group("/shortener")
	{
		shortener.POST("/create", h.CreateShortLink)
		shortener.GET("/availability/:code", h.CheckAvailability)
		shortener.GET("/all", h.GetAllLinks)
		shortener.GET("/stats", h.GetStats)
		shortener.POST("/validate/:code/owner", h.ValidateOwner)
		shortener.GET("/__redirect/:code", h.RedirectToOriginal)
		shortener.PUT("/:code", h.EditShortLink)
		shortener.DELETE("/:code", h.DeleteShortLink)
		shortener.GET("/:code", h.GetShortLink)
	}
}
