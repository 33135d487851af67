package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/scoperhq/scoper-api/api/swagger"
	"github.com/scoperhq/scoper-api/pkg/cache"
	"github.com/scoperhq/scoper-api/pkg/config"
	"github.com/scoperhq/scoper-api/pkg/jobs"
	"github.com/scoperhq/scoper-api/pkg/logger"
	corsmiddleware "github.com/scoperhq/scoper-api/pkg/middleware/cors"
	reqidmiddleware "github.com/scoperhq/scoper-api/pkg/middleware/requestid"

	"github.com/scoperhq/scoper-api/internal/handler"
	"github.com/scoperhq/scoper-api/internal/middleware"
	"github.com/scoperhq/scoper-api/internal/models"
	"github.com/scoperhq/scoper-api/internal/repository"
	"github.com/scoperhq/scoper-api/internal/service"

	"github.com/scoperhq/scoper-api/pkg/database"
)

// @title Scoper API
// @version 1.0.0
// @description Crowdsourced Canadian internship salary API
// @BasePath /
// @schemes http
// @securityDefinitions.basic BasicAuth

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

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect postgres", "error", err)
	}
	defer db.Close()

	metricsSvc := service.NewMetricsService()

	// Redis is optional, the API degrades to uncached and unlimited.
	var cacheRepo *repository.CacheRepository
	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Sugar().Warnw("redis unavailable, caching and rate limits disabled", "error", err)
	} else {
		cacheRepo = repository.NewCacheRepository(redisClient, logr)
		defer cacheRepo.Close() //nolint:errcheck
	}

	var cacheSvc *service.CacheService
	if cacheRepo != nil {
		cacheSvc = service.NewCacheService(cacheRepo, metricsSvc, cfg.Analytics.CacheTTL, logr)
	}

	salaryRepo := repository.NewSalaryRepository(db)
	pendingRepo := repository.NewPendingRepository(db)
	analyticsRepo := repository.NewAnalyticsRepository(db)
	referenceRepo := repository.NewReferenceRepository(db)
	auditRepo := repository.NewAuditRepository(db)

	auditQueue := jobs.NewQueue("moderation-audit", func(ctx context.Context, job jobs.Job) error {
		entry, ok := job.Payload.(*models.ModerationAudit)
		if !ok {
			return fmt.Errorf("unexpected payload type %T", job.Payload)
		}
		return auditRepo.Create(ctx, entry)
	}, jobs.QueueConfig{Workers: 1, Logger: logr})
	auditQueue.Start(context.Background())
	defer auditQueue.Stop()

	salarySvc := service.NewSalaryService(salaryRepo, pendingRepo, metricsSvc, logr)
	moderationSvc := service.NewModerationService(pendingRepo, auditRepo, auditQueue, cacheSvc, logr)
	analyticsSvc := service.NewAnalyticsService(analyticsRepo, cacheSvc, metricsSvc, logr, cfg.Analytics.CacheTTL)
	referenceSvc := service.NewReferenceService(referenceRepo, cacheSvc, logr)
	exportSvc := service.NewExportService(salaryRepo, cfg.Export.MaxRows, logr)
	seedSvc := service.NewSeedService(salaryRepo, referenceRepo, cfg.Seed.ResponsesCSVPath, cfg.Seed.UniversitiesJSONPath, logr)

	salaryHandler := handler.NewSalaryHandler(salarySvc)
	companyHandler := handler.NewCompanyHandler(salarySvc)
	locationHandler := handler.NewLocationHandler(salarySvc)
	referenceHandler := handler.NewReferenceHandler(referenceSvc)
	analyticsHandler := handler.NewAnalyticsHandler(analyticsSvc)
	adminHandler := handler.NewAdminHandler(moderationSvc, seedSvc, exportSvc)
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

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", func(c *gin.Context) {
		if err := db.PingContext(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	r.POST("/submit-salary", salaryHandler.Submit)
	r.GET("/all-salaries", salaryHandler.List)
	r.GET("/all-companies", companyHandler.ListCompanies)
	r.GET("/all-locations", locationHandler.ListLocations)
	r.GET("/all-universities", referenceHandler.Universities)
	r.GET("/all-roles", referenceHandler.Roles)
	r.GET("/internship-roles", referenceHandler.InternshipRoles)

	company := r.Group("/company")
	{
		company.GET("/all-salaries", companyHandler.Salaries)
		company.GET("/average-salary", companyHandler.AverageSalary)
		company.GET("/top-university", companyHandler.TopUniversity)
		company.GET("/top-location", companyHandler.TopLocation)
	}

	location := r.Group("/location")
	{
		location.GET("/all-salaries", locationHandler.Salaries)
		location.GET("/average-salary", locationHandler.AverageSalary)
		location.GET("/top-university", locationHandler.TopUniversity)
		location.GET("/top-company", locationHandler.TopCompany)
	}

	analytics := r.Group("/analytics")
	{
		analytics.GET("/overview", analyticsHandler.Overview)
		analytics.GET("/salary-trends", analyticsHandler.SalaryTrends)
		analytics.GET("/top-companies", analyticsHandler.TopCompanies)
		analytics.GET("/top-universities", analyticsHandler.TopUniversities)
		analytics.GET("/top-locations", analyticsHandler.TopLocations)
		analytics.GET("/top-roles", analyticsHandler.TopRoles)
		analytics.GET("/salary-distribution", analyticsHandler.SalaryDistribution)
		analytics.GET("/company-comparison", analyticsHandler.CompanyComparison)
		analytics.GET("/yearly-growth", analyticsHandler.YearlyGrowth)
		analytics.GET("/salary-by-term", analyticsHandler.SalaryByTerm)
		analytics.GET("/market-insights", analyticsHandler.MarketInsights)
	}

	admin := r.Group("/admin")
	admin.Use(middleware.BasicAuth(middleware.AdminCredentials{
		Username:     cfg.Admin.Username,
		Password:     cfg.Admin.Password,
		PasswordHash: cfg.Admin.PasswordHash,
	}))
	{
		var counter middleware.RateCounter
		if cacheRepo != nil {
			counter = cacheRepo
		}
		listLimit := middleware.RateLimit(counter, "admin-list", cfg.Admin.RateLimit, cfg.Admin.RateWindow, logr)
		seedLimit := middleware.RateLimit(counter, "admin-seed", cfg.Admin.SeedRateLimit, cfg.Admin.RateWindow, logr)

		admin.GET("/pending-submissions", listLimit, adminHandler.PendingSubmissions)
		admin.POST("/approve/:id", adminHandler.Approve)
		admin.POST("/reject/:id", adminHandler.Reject)
		admin.GET("/populate-db", seedLimit, adminHandler.PopulateDB)
		admin.GET("/export", adminHandler.Export)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Info("server starting", zap.String("addr", addr), zap.String("env", cfg.Env))
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
