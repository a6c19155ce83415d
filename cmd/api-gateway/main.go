package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/noah-isme/mentor-insight-api/api/swagger"
	"github.com/noah-isme/mentor-insight-api/internal/handler"
	"github.com/noah-isme/mentor-insight-api/internal/middleware"
	"github.com/noah-isme/mentor-insight-api/internal/mockdata"
	"github.com/noah-isme/mentor-insight-api/internal/remote"
	"github.com/noah-isme/mentor-insight-api/internal/repository"
	"github.com/noah-isme/mentor-insight-api/internal/service"
	"github.com/noah-isme/mentor-insight-api/pkg/cache"
	"github.com/noah-isme/mentor-insight-api/pkg/config"
	"github.com/noah-isme/mentor-insight-api/pkg/jobs"
	"github.com/noah-isme/mentor-insight-api/pkg/logger"
	"github.com/noah-isme/mentor-insight-api/pkg/mail"
	corsmiddleware "github.com/noah-isme/mentor-insight-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/mentor-insight-api/pkg/middleware/requestid"
	"github.com/noah-isme/mentor-insight-api/pkg/storage"
)

// @title Mentor Insight API
// @version 0.1.0
// @description Mentor-facing analytics gateway with mock-data fallback
// @BasePath /api/v1
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

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	metricsSvc := service.NewMetricsService()

	var cacheRepo service.CacheRepository
	if cfg.Dashboard.CacheEnabled {
		redisClient, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Sugar().Warnw("redis unavailable, caching disabled", "error", err)
		} else {
			repo := repository.NewCacheRepository(redisClient, logr)
			defer repo.Close() //nolint:errcheck
			cacheRepo = repo
		}
	}
	cacheSvc := service.NewCacheService(cacheRepo, metricsSvc, cfg.Dashboard.CacheTTL, logr, cfg.Dashboard.CacheEnabled && cacheRepo != nil)

	upstream := remote.NewClient(cfg.Upstream, logr, metricsSvc)

	syncQueue := jobs.NewQueue("decision-sync", service.SyncHandler(upstream), jobs.QueueConfig{
		Workers:    cfg.Sync.Workers,
		MaxRetries: cfg.Sync.MaxRetries,
		RetryDelay: cfg.Sync.RetryDelay,
		Logger:     logr,
	})
	rootCtx, cancel := context.WithCancel(context.Background())
	defer cancel()
	syncQueue.Start(rootCtx)
	defer syncQueue.Stop()

	selection := service.NewSelectionService()
	dashboardSvc := service.NewDashboardService(service.DashboardServiceParams{
		Client:    upstream,
		Generator: mockdata.NewGenerator(cfg.Mock.Seed),
		Cache:     cacheSvc,
		Logger:    logr,
		CacheTTL:  cfg.Dashboard.CacheTTL,
	})
	certificateSvc := service.NewCertificateService(service.CertificateServiceParams{
		Client:    upstream,
		Dashboard: dashboardSvc,
		Selection: selection,
		Queue:     syncQueue,
		Logger:    logr,
	})
	progressSvc := service.NewProgressService(service.ProgressServiceParams{
		Client:    upstream,
		Dashboard: dashboardSvc,
		Notifier:  mail.NewSendgridNotifier(cfg.Mail.SendgridAPIKey, cfg.Mail.FromName, cfg.Mail.FromEmail, logr),
		Logger:    logr,
	})

	store, err := storage.NewLocalStorage(cfg.Exports.StorageDir)
	if err != nil {
		logr.Sugar().Fatalw("failed to prepare export storage", "error", err)
	}
	exportSvc := service.NewExportService(service.ExportServiceParams{
		Certificates: certificateSvc,
		Selection:    selection,
		Storage:      store,
		Signer:       storage.NewSignedURLSigner(cfg.Exports.SignedURLSecret, cfg.Exports.SignedURLTTL),
		Metrics:      metricsSvc,
		Logger:       logr,
		Config: service.ExportConfig{
			APIPrefix: cfg.APIPrefix,
			ResultTTL: cfg.Exports.SignedURLTTL,
		},
	})
	go cleanupLoop(rootCtx, exportSvc, cfg.Exports.CleanupInterval, logr)

	dashboardHandler := handler.NewDashboardHandler(dashboardSvc)
	reportHandler := handler.NewReportHandler(certificateSvc, selection)
	exportHandler := handler.NewExportHandler(exportSvc)
	progressHandler := handler.NewProgressHandler(progressSvc)
	metricsHandler := handler.NewMetricsHandler(metricsSvc)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))
	r.Use(middleware.WithResponseMeta())

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", metricsHandler.Health)
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	{
		api.GET("/dashboard", dashboardHandler.Overview)
		api.POST("/dashboard/refresh", dashboardHandler.Refresh)

		reports := api.Group("/reports")
		{
			reports.GET("", reportHandler.Page)
			reports.GET("/learners", reportHandler.Learners)
			reports.POST("/learners/:id/approve", reportHandler.Approve)
			reports.POST("/learners/:id/reject", reportHandler.Reject)
			reports.GET("/learners/:id/certificate", reportHandler.Certificate)

			reports.GET("/selection", reportHandler.Selection)
			reports.POST("/selection/select-all", reportHandler.SelectAllVisible)
			reports.POST("/selection/:id/toggle", reportHandler.ToggleSelection)
			reports.DELETE("/selection", reportHandler.ClearSelection)

			reports.POST("/exports/learners/csv", exportHandler.AllLearnersCSV)
			reports.POST("/exports/selected/csv", exportHandler.SelectedCSV)
			reports.POST("/exports/selected/pdf", exportHandler.SelectedPDF)
			reports.POST("/exports/batches/:id/csv", exportHandler.BatchCSV)
			reports.POST("/exports/batches/:id/feedback", exportHandler.BatchFeedback)
			reports.POST("/exports/learners/:id/feedback", exportHandler.LearnerFeedback)
			reports.GET("/export/:token", exportHandler.Download)
		}

		progress := api.Group("/progress")
		{
			progress.GET("/students", progressHandler.Students)
			progress.GET("/courses/:name", progressHandler.CourseInsight)
			progress.POST("/students/:id/feedback", progressHandler.SendFeedback)
		}
	}

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: r,
	}

	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logr.Sugar().Infow("shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Sugar().Errorw("graceful shutdown failed", "error", err)
	}
}

func cleanupLoop(ctx context.Context, exports *service.ExportService, interval time.Duration, logr *zap.Logger) {
	if interval <= 0 {
		interval = time.Hour
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			deleted, err := exports.Cleanup()
			if err != nil {
				logr.Sugar().Warnw("export cleanup failed", "error", err)
				continue
			}
			if len(deleted) > 0 {
				logr.Sugar().Infow("expired exports removed", "count", len(deleted))
			}
		}
	}
}
