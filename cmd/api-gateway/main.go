package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/trainops/analytics-api/api/swagger"
	"github.com/trainops/analytics-api/internal/handler"
	"github.com/trainops/analytics-api/internal/middleware"
	"github.com/trainops/analytics-api/internal/repository"
	"github.com/trainops/analytics-api/internal/service"
	"github.com/trainops/analytics-api/pkg/cache"
	"github.com/trainops/analytics-api/pkg/config"
	"github.com/trainops/analytics-api/pkg/database"
	appErrors "github.com/trainops/analytics-api/pkg/errors"
	"github.com/trainops/analytics-api/pkg/logger"
	corsmiddleware "github.com/trainops/analytics-api/pkg/middleware/cors"
	reqidmiddleware "github.com/trainops/analytics-api/pkg/middleware/requestid"
	"github.com/trainops/analytics-api/pkg/response"
)

// @title Training Analytics API
// @version 1.0.0
// @description Aggregated analytics over the training operations store
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

	// tag every log line with a per-process id so overlapping deployments
	// can be told apart in aggregated logs
	logr = logr.With(zap.String("instance_id", uuid.NewString()))

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to database", "error", err)
	}
	defer db.Close()

	metricsSvc := service.NewMetricsService()

	var redisCache *service.CacheService
	if cfg.Redis.Enabled {
		client, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Sugar().Warnw("redis unavailable, continuing without shared cache", "error", err)
		} else {
			defer client.Close()
			repo := repository.NewCacheRepository(client, logr)
			redisCache = service.NewCacheService(repo, metricsSvc, cfg.Analytics.CacheTTL, logr, true)
		}
	}

	participants := repository.NewParticipantRepository(db)
	courses := repository.NewCourseRepository(db)
	enrollments := repository.NewEnrollmentRepository(db)
	payments := repository.NewPaymentRepository(db)
	licenses := repository.NewLicenseRepository(db)

	datasets := &service.Datasets{
		Participants: participants,
		Courses:      courses,
		Enrollments:  enrollments,
		Payments:     payments,
		Licenses:     licenses,
		PageSize:     cfg.Fetch.PageSize,
		Parallelism:  cfg.Fetch.Parallelism,
	}

	queryCache := service.NewQueryCache()

	revenueSvc := service.NewRevenueService(datasets, queryCache, metricsSvc, logr, service.RevenueServiceConfig{
		CacheTTL:        cfg.Analytics.CacheTTL,
		MovingAvgWindow: cfg.Analytics.MovingAvgWindow,
	})
	enrollmentSvc := service.NewEnrollmentService(datasets, queryCache, metricsSvc, logr, cfg.Analytics.CacheTTL)
	geographicSvc := service.NewGeographicService(datasets, queryCache, metricsSvc, logr, cfg.Analytics.CacheTTL)
	licenseSvc := service.NewLicenseService(datasets, queryCache, metricsSvc, logr, cfg.Analytics.LicenseCacheTTL)
	courseSvc := service.NewCourseService(datasets, queryCache, metricsSvc, logr, cfg.Analytics.CacheTTL)
	dashboardSvc := service.NewDashboardService(service.DashboardServiceParams{
		Data:         datasets,
		Participants: participants,
		Courses:      courses,
		Enrollments:  enrollments,
		Licenses:     licenses,
		Cache:        queryCache,
		Redis:        redisCache,
		Metrics:      metricsSvc,
		Logger:       logr,
		CacheTTL:     cfg.Dashboard.CacheTTL,
	})

	analyticsHandler := handler.NewAnalyticsHandler(handler.AnalyticsHandlerParams{
		Revenue:     revenueSvc,
		Enrollments: enrollmentSvc,
		Geographic:  geographicSvc,
		Licenses:    licenseSvc,
		Courses:     courseSvc,
		Metrics:     metricsSvc,
	})
	dashboardHandler := handler.NewDashboardHandler(dashboardSvc)
	metricsHandler := handler.NewMetricsHandler(metricsSvc)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))
	r.Use(middleware.WithResponseMeta())

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			response.Error(c, appErrors.Clone(appErrors.ErrUnavailable, "database not reachable"))
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", metricsHandler.Prometheus)
	r.NoRoute(func(c *gin.Context) {
		response.Error(c, appErrors.ErrNotFound)
	})

	api := r.Group(cfg.APIPrefix)
	{
		analytics := api.Group("/analytics")
		analytics.GET("/revenue", analyticsHandler.Revenue)
		analytics.GET("/enrollments/trends", analyticsHandler.EnrollmentTrends)
		analytics.GET("/geographic", analyticsHandler.Geographic)
		analytics.GET("/licenses", analyticsHandler.Licenses)
		analytics.GET("/courses", analyticsHandler.Courses)
		analytics.GET("/system", analyticsHandler.System)

		api.GET("/dashboard/summary", dashboardHandler.Summary)
	}

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
