package main

import (
	"context"
	"entrelaunch/cache"
	"entrelaunch/config"
	"entrelaunch/database"
	"entrelaunch/logger"
	"entrelaunch/routers"
	"entrelaunch/services/catalog"
	"entrelaunch/services/payment"
	"entrelaunch/services/refund"
	"entrelaunch/services/roles"
	"entrelaunch/services/training"
	"entrelaunch/utils"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"
)

func main() {
	cfg := config.LoadConfig()

	appLog, err := logger.New(cfg.LogMode)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer appLog.Sync()

	db, err := database.ConnectDb(cfg, appLog)
	if err != nil {
		appLog.Fatal("Failed to connect to the database", "error", err)
	}

	catalogDeps := catalog.Deps{
		DB:        db,
		Log:       appLog,
		RatingTTL: time.Duration(cfg.RatingCacheTTLSecond) * time.Second,
	}
	if cfg.RedisAddr != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		ratingCache, err := cache.New(ctx, cache.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword, DB: cfg.RedisDB})
		cancel()
		if err != nil {
			appLog.Warn("Redis unavailable, rating cache disabled", "addr", cfg.RedisAddr, "error", err)
		} else {
			defer ratingCache.Close()
			catalogDeps.Cache = ratingCache
		}
	}
	catalogService := catalog.New(catalogDeps)

	roleService := roles.NewService(db, appLog)
	paymentService := payment.NewService(db, appLog)
	refundService := refund.NewService(db, appLog)
	notifier := utils.NewCourseNotifier(
		utils.NewMailer(cfg.SendGridAPIKey, cfg.EmailSender, cfg.EmailSenderName, appLog),
		utils.NewSMSSender(cfg.SMSApiURL, cfg.SMSApiKey, appLog),
	)
	trainingService := training.New(training.Deps{
		DB:  db,
		Log: appLog,
		Config: training.Config{
			CertificateBaseURL:  cfg.CertificateBaseURL,
			VerificationBaseURL: cfg.CertificateVerifyBaseURL,
		},
		Payments: paymentService,
		Roles:    roleService,
		Refunds:  refundService,
		Notifier: notifier,
	})

	scheduler, err := utils.InitializeCourseScheduler(cfg.CourseSchedulerSpec, catalogService, appLog)
	if err != nil {
		appLog.Fatal("Invalid course scheduler spec", "spec", cfg.CourseSchedulerSpec, "error", err)
	}

	app := routers.New(routers.Deps{
		Config:    cfg,
		Log:       appLog,
		DB:        db,
		Training:  trainingService,
		Catalog:   catalogService,
		Payments:  paymentService,
		Refunds:   refundService,
		Roles:     roleService,
		AccessLog: true,
	})

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		appLog.Info("Shutting down")
		<-scheduler.Stop().Done()
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			appLog.Error("Server shutdown failed", "error", err)
		}
	}()

	appLog.Info("Server is running", "port", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		appLog.Fatal("Server stopped", "error", err)
	}
}
