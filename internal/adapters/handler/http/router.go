package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/screenaware/screenaware/internal/adapters/handler/http/middleware"
	"github.com/screenaware/screenaware/internal/adapters/observability"
)

const (
	defaultRateLimit  = 100
	defaultRateWindow = time.Minute
)

type RouterDependencies struct {
	AuthHandler      *AuthHandler
	AnalyticsHandler *AnalyticsHandler
	ScoringHandler   *ScoringHandler
	Tokens           middleware.TokenValidator
	Metrics          *observability.Metrics

	// DB and Redis are only used for health reporting and rate limiting.
	// Redis may be nil.
	DB    *sqlx.DB
	Redis *redis.Client

	CORSOrigins []string
	RateLimit   int
	RateWindow  time.Duration
	StartTime   time.Time
}

func NewRouter(deps RouterDependencies) *gin.Engine {
	router := gin.Default()

	router.Use(cors.New(corsConfig(deps.CORSOrigins)))

	if deps.Metrics != nil {
		router.Use(deps.Metrics.GinMiddleware())
		router.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))
	}

	if deps.Redis != nil {
		limit, window := deps.RateLimit, deps.RateWindow
		if limit <= 0 {
			limit = defaultRateLimit
		}
		if window <= 0 {
			window = defaultRateWindow
		}
		router.Use(middleware.RateLimiterMiddleware(deps.Redis, limit, window))
	}

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "ScreenAware Backend",
			"status":  "running",
			"type":    "rule-based",
		})
	})
	router.GET("/health", healthHandler(deps))
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	deps.ScoringHandler.RegisterRoutes(router)

	apiV1 := router.Group("/api/v1")

	deps.AuthHandler.RegisterRoutes(apiV1)

	protected := apiV1.Group("")
	protected.Use(middleware.AuthMiddleware(deps.Tokens))
	{
		deps.AuthHandler.RegisterProtectedRoutes(protected)
		deps.AnalyticsHandler.RegisterRoutes(protected)
	}

	return router
}

// corsConfig allows the configured origins, or every origin when none are set.
func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Content-Length", "Accept-Encoding", "Authorization"},
		ExposeHeaders: []string{"X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset"},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
		cfg.AllowCredentials = true
	}
	return cfg
}

func healthHandler(deps RouterDependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		dbStatus := "connected"
		if deps.DB == nil || deps.DB.PingContext(ctx) != nil {
			dbStatus = "unreachable"
		}

		redisStatus := "disabled"
		if deps.Redis != nil {
			redisStatus = "connected"
			if deps.Redis.Ping(ctx).Err() != nil {
				redisStatus = "unreachable"
			}
		}

		status, statusCode := "ok", http.StatusOK
		if dbStatus == "unreachable" || redisStatus == "unreachable" {
			status, statusCode = "degraded", http.StatusServiceUnavailable
		}

		c.JSON(statusCode, gin.H{
			"status":   status,
			"database": dbStatus,
			"redis":    redisStatus,
			"uptime":   time.Since(deps.StartTime).String(),
		})
	}
}
