package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/onegreenvn/phishing-campaign-service/internal/cache"
	"github.com/onegreenvn/phishing-campaign-service/internal/config"
	"github.com/onegreenvn/phishing-campaign-service/internal/database"
	"github.com/onegreenvn/phishing-campaign-service/internal/database/repository"
	"github.com/onegreenvn/phishing-campaign-service/internal/handlers"
	"github.com/onegreenvn/phishing-campaign-service/internal/router"
	"github.com/onegreenvn/phishing-campaign-service/internal/services"
	"github.com/onegreenvn/phishing-campaign-service/internal/services/auth"
	"github.com/onegreenvn/phishing-campaign-service/internal/services/dispatch"
	"github.com/onegreenvn/phishing-campaign-service/internal/services/excel"
	"github.com/onegreenvn/phishing-campaign-service/internal/services/gemini"
	"github.com/onegreenvn/phishing-campaign-service/internal/services/imaging"
	"github.com/onegreenvn/phishing-campaign-service/internal/services/report"
	"github.com/onegreenvn/phishing-campaign-service/internal/services/scheduler"
	"github.com/onegreenvn/phishing-campaign-service/internal/utils"

	// Import Swagger docs
	_ "github.com/onegreenvn/phishing-campaign-service/docs"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	configureLogging(cfg.LogLevel)

	utils.InitSentry(cfg.SentryDSN, cfg.Server.Environment)
	defer sentry.Flush(2 * time.Second)

	db, err := database.InitDB(cfg.Database)
	if err != nil {
		logrus.Fatalf("Failed to initialize database: %v", err)
	}

	campaignRepo := repository.NewCampaignRepository(db)
	runRepo := repository.NewCampaignRunRepository(db)

	// Run events are optional
	var runHistory *services.RunHistoryService
	if cfg.RabbitMQ.Enabled {
		rabbitMQService, err := services.NewRabbitMQService(cfg.RabbitMQ)
		if err != nil {
			logrus.Warnf("Failed to initialize RabbitMQ: %v", err)
			runHistory = services.NewRunHistoryService(runRepo, nil)
		} else {
			defer rabbitMQService.Close()
			runHistory = services.NewRunHistoryService(runRepo, rabbitMQService)
		}
	} else {
		runHistory = services.NewRunHistoryService(runRepo, nil)
	}

	subjects := newSubjectSource(cfg)

	smtpFrom := cfg.SMTP.From
	if smtpFrom == "" {
		smtpFrom = cfg.SMTP.Username
	}
	mailer := dispatch.NewSMTPMailer(dispatch.SMTPConfig{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		Username: cfg.SMTP.Username,
		Password: cfg.SMTP.Password,
		From:     smtpFrom,
	})
	archive := dispatch.NewArchive(cfg.Storage.SentEmailsDir)
	dispatchService := dispatch.NewService(mailer, dispatch.NewTemplateComposer(), subjects, archive, dispatch.Config{
		TrackingBaseURL: cfg.Tracking.BaseURL,
		Workers:         cfg.Tracking.Workers,
	})

	campaignScheduler := scheduler.New(campaignRepo, dispatchService, scheduler.NewCronRegistry(),
		scheduler.WithObserver(runHistory))

	campaignService := services.NewCampaignService(
		campaignRepo,
		campaignScheduler,
		dispatchService,
		services.NewFileService(cfg.Storage.UploadsDir),
		imaging.NewLogoService(imaging.Config{
			PollinationsURL: cfg.Images.PollinationsURL,
			ImgBBURL:        cfg.Images.ImgBBURL,
			ImgBBKey:        cfg.Images.ImgBBKey,
		}),
		archive,
		runHistory,
	)
	reportService := services.NewReportService(
		campaignRepo,
		report.NewEventLogClient(cfg.EventLog.URL, cfg.EventLog.Token),
		excel.NewExcelService(cfg.Storage.ExportsDir),
	)

	// Timers of active campaigns are restored before the driver starts ticking
	campaignScheduler.Start()

	authService := auth.NewAuthService(cfg.Auth.JWTSecret, cfg.Auth.APIKeyHash)
	r := router.SetupRouter(router.Handlers{
		Campaigns: handlers.NewCampaignHandler(campaignService, runHistory),
		Reports:   handlers.NewReportHandler(reportService),
		Scheduler: handlers.NewSchedulerHandler(campaignScheduler),
	}, authService, cfg.Server.CORSOrigins)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: r,
	}

	go func() {
		logrus.Infof("Server starting on port %s", cfg.Server.Port)
		logrus.Infof("API Health Check: http://localhost:%s/api/v1/health", cfg.Server.Port)
		logrus.Infof("Swagger UI: http://localhost:%s/swagger/index.html", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logrus.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logrus.Errorf("Server forced to shutdown: %v", err)
	}

	// Waits for in-flight sends
	campaignScheduler.Stop()

	logrus.Info("Server exited properly")
}

// newSubjectSource wires the Gemini writer and the Redis cache when they are configured
func newSubjectSource(cfg *config.Config) *dispatch.Subjects {
	var writer dispatch.SubjectWriter
	if cfg.Gemini.APIKey != "" {
		writer = gemini.NewClient(cfg.Gemini.APIKey, cfg.Gemini.Model, cfg.Gemini.BaseURL)
	} else {
		logrus.Warn("GEMINI_API_KEY not set, using fallback subjects")
	}

	var subjectCache dispatch.SubjectCache
	if cfg.Redis.Enabled {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := client.Ping(ctx).Err(); err != nil {
			logrus.Warnf("Redis unavailable, subject cache disabled: %v", err)
			client.Close()
		} else {
			subjectCache = cache.NewSubjectCache(client, cfg.Redis.SubjectTTL)
			logrus.Info("Subject cache connected to Redis")
		}
	}

	return dispatch.NewSubjects(writer, subjectCache)
}

func configureLogging(logLevel string) {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
}
