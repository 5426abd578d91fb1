package httpapi

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/tcrfreight/backend/internal/config"
	"github.com/tcrfreight/backend/internal/http/handlers"
	"github.com/tcrfreight/backend/internal/http/middleware"
	"github.com/tcrfreight/backend/internal/service"

	_ "github.com/tcrfreight/backend/docs"
)

func Router(cfg config.Config, tickets *service.TicketService, tracing *service.TracingService, logger zerolog.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "X-Request-Id"},
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
		Tickets:   tickets,
		Tracer:    tracing,
		Validator: validator.New(),
		Logger:    logger,
	}

	r.GET("/healthz", h.Healthz)

	api := r.Group("/api")
	{
		api.GET("/tickets", h.TicketsSearch)
		api.GET("/autocomplete", h.Autocomplete)
		api.GET("/tracing", h.Tracing)
		api.GET("/tracing_all", h.TracingAll)
		api.GET("/test", h.TestPassthrough)
	}

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}
