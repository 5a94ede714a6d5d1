package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/noah-isme/greatday-recap-api/api/swagger"
	"github.com/noah-isme/greatday-recap-api/internal/app"
	"github.com/noah-isme/greatday-recap-api/internal/handler"
	"github.com/noah-isme/greatday-recap-api/internal/middleware"
	"github.com/noah-isme/greatday-recap-api/internal/service"
	"github.com/noah-isme/greatday-recap-api/pkg/config"
	"github.com/noah-isme/greatday-recap-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/greatday-recap-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/greatday-recap-api/pkg/middleware/requestid"
)

// @title GreatDay Recap API
// @version 0.1.0
// @description HTTP trigger surface for the attendance recap service
// @BasePath /
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	metricsSvc := service.NewMetricsService()

	recapSvc, cleanup, err := app.BuildRecapService(cfg, logr, metricsSvc)
	if err != nil {
		logr.Sugar().Fatalw("failed to build recap service", "error", err)
	}
	defer cleanup()

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.Server.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "service": "greatday-attendance-recap"})
	})

	r.GET("/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	r.GET("/metrics", gin.WrapH(metricsSvc.Handler()))

	recapHandler := handler.NewRecapHandler(recapSvc)
	r.POST("/run", middleware.APIKey(cfg.Server.APIKey), recapHandler.Run)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
