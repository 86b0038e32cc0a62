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

	_ "github.com/noah-isme/school-admin-api/api/swagger"
	"github.com/noah-isme/school-admin-api/internal/handler"
	"github.com/noah-isme/school-admin-api/internal/middleware"
	"github.com/noah-isme/school-admin-api/internal/repository"
	"github.com/noah-isme/school-admin-api/internal/service"
	"github.com/noah-isme/school-admin-api/pkg/cache"
	"github.com/noah-isme/school-admin-api/pkg/config"
	"github.com/noah-isme/school-admin-api/pkg/database"
	"github.com/noah-isme/school-admin-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/school-admin-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/school-admin-api/pkg/middleware/requestid"
)

// @title School Admin API
// @version 1.0.0
// @description Administrative backend: enrollment, attendance, fees, and reconciliation reports
// @BasePath /api
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

	manager := database.NewManager(cfg.Database, logr)
	defer manager.Close() //nolint:errcheck

	metricsSvc := service.NewMetricsService()

	var cacheSvc *service.CacheService
	if cfg.Dashboard.CacheEnabled {
		redisClient, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Warn("redis unavailable, dashboard cache disabled", zap.Error(err))
		} else {
			cacheRepo := repository.NewCacheRepository(redisClient, logr)
			defer cacheRepo.Close() //nolint:errcheck
			cacheSvc = service.NewCacheService(cacheRepo, metricsSvc, cfg.Dashboard.CacheTTL, logr, true)
		}
	}

	exec := repository.NewExecutor(manager, metricsSvc, logr)
	studentRepo := repository.NewStudentRepository(exec)
	classRepo := repository.NewClassRepository(exec)
	feeRepo := repository.NewFeeRepository(exec)
	discountRepo := repository.NewDiscountRepository(exec)
	attendanceRepo := repository.NewAttendanceRepository(exec)
	dashboardRepo := repository.NewDashboardRepository(exec)
	yearRepo := repository.NewAcademicYearRepository(exec)

	studentSvc := service.NewStudentService(studentRepo, nil, logr)
	classSvc := service.NewClassService(classRepo, logr)
	feeSvc := service.NewFeeService(feeRepo, nil, logr)
	discountSvc := service.NewDiscountService(discountRepo, nil, logr)
	attendanceSvc := service.NewAttendanceService(attendanceRepo, nil, logr)
	reportSvc := service.NewReportService(studentRepo, feeRepo, discountRepo, attendanceRepo, logr)
	dashboardSvc := service.NewDashboardService(dashboardRepo, cacheSvc, cfg.Dashboard.CacheTTL, logr)
	yearSvc := service.NewAcademicYearService(yearRepo, logr)

	students := handler.NewStudentHandler(studentSvc)
	classes := handler.NewClassHandler(classSvc)
	fees := handler.NewFeeHandler(feeSvc)
	discounts := handler.NewDiscountHandler(discountSvc)
	attendance := handler.NewAttendanceHandler(attendanceSvc)
	reports := handler.NewReportHandler(reportSvc)
	dashboard := handler.NewDashboardHandler(dashboardSvc)
	years := handler.NewAcademicYearHandler(yearSvc)
	metrics := handler.NewMetricsHandler(metricsSvc)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))
	r.Use(middleware.WithResponseMeta())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/ready", func(c *gin.Context) {
		if _, err := manager.DB(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "store unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", metrics.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	{
		api.GET("/students", students.List)
		api.GET("/students/for-fees", students.ListForFees)
		api.GET("/students/for-attendance", students.ListForAttendance)
		api.GET("/students/for-report", students.ListForReport)
		api.POST("/students", students.Enroll)
		api.DELETE("/students/:id", students.Delete)

		api.GET("/classes", classes.ListClasses)
		api.GET("/sections", classes.ListSections)

		api.GET("/fee-types", fees.ListFeeTypes)
		api.GET("/fees", fees.ListPayments)
		api.POST("/fees", fees.RecordPayment)
		api.DELETE("/fees/:id", fees.DeletePayment)

		api.GET("/discounts/:studentId", discounts.ListByStudent)
		api.POST("/discounts", discounts.Grant)

		api.GET("/attendance", attendance.ListByDate)
		api.POST("/attendance", attendance.Mark)
		api.DELETE("/attendance/:id", attendance.Delete)

		api.GET("/reports/student/:id", reports.StudentReport)

		api.GET("/dashboard/stats", dashboard.Stats)
		api.GET("/dashboard/latest-students", dashboard.LatestStudents)

		api.GET("/academic-years", years.List)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logr.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logr.Sugar().Errorw("graceful shutdown failed", "error", err)
	}
}
