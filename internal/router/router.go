package router

import (
	"fmt"
	"strings"

	"github.com/payline-checkout/internal/cache"
	"github.com/payline-checkout/internal/config"
	publichandlers "github.com/payline-checkout/internal/http/handlers/public"
	"github.com/payline-checkout/internal/logger"
	"github.com/payline-checkout/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	publicHandler := publichandlers.New(c)

	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = "payline"
	}
	payRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:pay", redisPrefix),
		WindowSeconds: cfg.Security.PayRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.PayRateLimit.MaxAttempts,
		Message:       "too many payment attempts, please retry later",
	}
	redisClient := cache.Client()

	// 中间件
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	// API 路由组
	apiV1 := r.Group("/api/v1")
	{
		orders := apiV1.Group("/orders")
		{
			orders.GET("/:id", publicHandler.GetOrder)
			orders.GET("/:id/payline/options", publicHandler.GetCheckoutOptions)
			orders.POST("/:id/payline", RateLimitMiddleware(redisClient, payRule, KeyByIP), publicHandler.InitiatePayment)
		}
	}

	// 网关回调（路径与 Payline 后台配置保持一致，不带 API 前缀）
	payline := r.Group("/payline")
	{
		payline.GET("/notification", publicHandler.PaylineNotification)
		payline.POST("/notification", publicHandler.PaylineNotification)
		payline.GET("/return", publicHandler.PaylineReturn)
		payline.GET("/cancel", publicHandler.PaylineCancel)
	}

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return r
}
