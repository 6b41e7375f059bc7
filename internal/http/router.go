package httpapi

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/smartq/backend/internal/config"
	"github.com/smartq/backend/internal/http/handlers"
	"github.com/smartq/backend/internal/http/middleware"
	"github.com/smartq/backend/internal/queue"

	_ "github.com/smartq/backend/docs"
)

func Router(cfg config.Config, registry *queue.Registry, announcer *queue.Announcer, logger zerolog.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-Id"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if cfg.CORSAllowed == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = []string{cfg.CORSAllowed}
	}
	r.Use(cors.New(corsCfg))

	h := &handlers.Handler{
		Registry:  registry,
		Announcer: announcer,
		Validator: validator.New(),
		Logger:    logger,
	}

	r.GET("/healthz", h.Healthz)

	api := r.Group("/api")
	{
		api.GET("/services", h.ServicesList)
		api.POST("/queue/:service/enqueue", h.Enqueue)
		api.POST("/queue/:service/dequeue", h.Dequeue)
		api.POST("/queue/:service/complete", h.Complete)
		api.POST("/queue/:service/mute", h.Mute)
		api.POST("/queue/:service/reannounce", h.Reannounce)
		api.POST("/queue/:service/transfer", h.Transfer)
		api.POST("/operators", h.RegisterOperator)
		api.GET("/operators/:id", h.GetOperator)
	}

	r.GET("/ws/:service", h.Subscribe)

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}
