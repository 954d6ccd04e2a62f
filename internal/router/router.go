package router

import (
	"fmt"
	"strings"

	"github.com/taniyakamboj15/lostandfound-api/internal/cache"
	"github.com/taniyakamboj15/lostandfound-api/internal/config"
	"github.com/taniyakamboj15/lostandfound-api/internal/constants"
	publichandlers "github.com/taniyakamboj15/lostandfound-api/internal/http/handlers/public"
	staffhandlers "github.com/taniyakamboj15/lostandfound-api/internal/http/handlers/staff"
	"github.com/taniyakamboj15/lostandfound-api/internal/logger"
	"github.com/taniyakamboj15/lostandfound-api/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	// 初始化 Handler（按认领人/工作人员分组）
	publicHandler := publichandlers.New(c)
	staffHandler := staffhandlers.New(c)
	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = constants.RedisPrefixDefault
	}
	redisClient := cache.Client()
	// 取件码核销限流：防止穷举 8 位取件码
	verifyRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:pickup_verify", redisPrefix),
		WindowSeconds: cfg.Security.VerifyRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.VerifyRateLimit.MaxAttempts,
		BlockSeconds:  cfg.Security.VerifyRateLimit.BlockSeconds,
		MessageKey:    "error.verify_too_many",
	}

	// 中间件
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	// API 路由组
	apiV1 := r.Group("/api/v1")
	{
		// 认领
		apiV1.POST("/claims", publicHandler.FileClaim)
		apiV1.GET("/claims", staffHandler.ListClaims)
		apiV1.GET("/claims/:id", publicHandler.GetClaim)
		apiV1.POST("/claims/:id/request-proof", staffHandler.RequestProof)
		apiV1.POST("/claims/:id/verify", staffHandler.VerifyClaim)
		apiV1.POST("/claims/:id/reject", staffHandler.RejectClaim)
		apiV1.POST("/claims/:id/prepare-handover", staffHandler.PrepareHandover)

		// 支付
		apiV1.GET("/payments/fee-breakdown/:claim_id", publicHandler.GetFeeBreakdown)
		apiV1.POST("/payments/create-intent", publicHandler.CreatePaymentIntent)
		apiV1.POST("/payments/verify", publicHandler.VerifyPayment)

		// 调拨
		apiV1.GET("/transfers", staffHandler.ListTransfers)
		apiV1.GET("/transfers/:id", staffHandler.GetTransfer)
		apiV1.PATCH("/transfers/:id/status", staffHandler.UpdateTransferStatus)

		// 取件
		apiV1.GET("/pickups/available-slots", publicHandler.GetAvailableSlots)
		apiV1.POST("/pickups", publicHandler.BookPickup)
		apiV1.GET("/pickups", staffHandler.ListPickups)
		apiV1.POST("/pickups/verify", RateLimitMiddleware(redisClient, verifyRule, KeyByIPAndJSONField("reference_code")), staffHandler.VerifyPickup)
		apiV1.GET("/pickups/:id", publicHandler.GetPickup)
		apiV1.POST("/pickups/:id/complete", staffHandler.CompletePickup)

		// 失物
		apiV1.POST("/items", staffHandler.RegisterItem)
		apiV1.GET("/items", staffHandler.ListItems)

		// 存储位置
		apiV1.GET("/storage-locations", publicHandler.ListPickupSites)

		// 健康检查
		apiV1.GET("/health", func(ctx *gin.Context) {
			ctx.JSON(200, gin.H{"status": "ok"})
		})
	}

	r.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(200, gin.H{"status": "ok"})
	})

	return r
}
