package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Stashly-Luggage/service-storage/internal/application"
	"github.com/Stashly-Luggage/service-storage/internal/config"
	orderDomain "github.com/Stashly-Luggage/service-storage/internal/domain/order"
	storageEvents "github.com/Stashly-Luggage/service-storage/internal/events"
	"github.com/Stashly-Luggage/service-storage/internal/geo"
	"github.com/Stashly-Luggage/service-storage/internal/handler"
	"github.com/Stashly-Luggage/service-storage/internal/notification"
	"github.com/Stashly-Luggage/service-storage/internal/repository"
	"github.com/Stashly-Luggage/service-storage/pkg/auth"
	"github.com/Stashly-Luggage/service-storage/pkg/database"
	"github.com/Stashly-Luggage/service-storage/pkg/health"
	"github.com/Stashly-Luggage/service-storage/pkg/kafka"
	"github.com/Stashly-Luggage/service-storage/pkg/logger"
	"github.com/Stashly-Luggage/service-storage/pkg/metrics"
)

const serviceName = "service-storage"

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log, err := logger.NewNamed(cfg.AppEnv, serviceName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	log.Info("starting "+serviceName,
		zap.String("port", cfg.Port),
		zap.String("env", cfg.AppEnv),
	)

	// Connect to database
	db, err := database.Connect(cfg.DBConfig, log)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}

	// Run database migrations
	if cfg.IsDevelopment() {
		if err := db.AutoMigrate(
			&repository.UserModel{},
			&repository.StoreModel{},
			&repository.OrderModel{},
			&repository.PhotoModel{},
		); err != nil {
			log.Fatal("failed to run auto-migration", zap.Error(err))
		}
		log.Info("database migration completed (dev auto-migrate)")
	} else {
		if err := database.RunMigrations(cfg.DBConfig.DatabaseURL(), cfg.MigrationsDir, log); err != nil {
			log.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	jwtManager := auth.NewJWTManager(cfg.JWTConfig.Secret, cfg.JWTConfig.TTL)

	// Kafka is optional; without it order events are not published.
	var publisher kafka.Publisher
	if cfg.KafkaConfig.Enabled {
		producer := kafka.NewProducer(cfg.KafkaConfig.Brokers, log)
		defer func() { _ = producer.Close() }()
		publisher = producer
	} else {
		log.Warn("kafka disabled, order events will not be published")
	}

	// Initialize repositories
	userRepo := repository.NewGormUserRepository(db)
	storeRepo := repository.NewGormStoreRepository(db)
	orderRepo := repository.NewGormOrderRepository(db)
	photoRepo := repository.NewGormPhotoRepository(db)

	// Initialize pricing
	rates := orderDomain.DefaultRateCard()
	rates.DailyPerBag = cfg.Pricing.DailyRate
	rates.BookingFee = cfg.Pricing.BookingFee
	pricingStrategy := orderDomain.NewStandardPricingStrategy(rates)

	distance := newDistanceProvider(cfg.Distance)
	log.Info("distance provider selected", zap.String("provider", cfg.Distance.Provider))

	// Initialize mail
	var mailer notification.Mailer
	if cfg.MailConfig.Host != "" {
		smtpMailer, err := notification.NewSMTPMailer(notification.SMTPConfig{
			Host:     cfg.MailConfig.Host,
			Port:     cfg.MailConfig.Port,
			Username: cfg.MailConfig.Username,
			Password: cfg.MailConfig.Password,
			From:     cfg.MailConfig.From,
			Timeout:  10 * time.Second,
		})
		if err != nil {
			log.Fatal("failed to configure SMTP mailer", zap.Error(err))
		}
		mailer = smtpMailer
	} else {
		log.Warn("SMTP not configured, emails will be logged")
		mailer = notification.NewLogMailer(log)
	}
	notifier := notification.NewNotifier(mailer, cfg.MailConfig.OperatorEmail)

	// Initialize application services
	authService := application.NewAuthService(userRepo, jwtManager, log)
	storeService := application.NewStoreService(storeRepo, log)
	pricingService := application.NewPricingService(pricingStrategy, distance, storeRepo, cfg.Distance.StaticKm, log)
	orderService := application.NewOrderService(orderRepo, storeRepo, pricingService, notifier, publisher, log)
	photoService := application.NewPhotoService(photoRepo, orderRepo, storeRepo, log)
	enquiryService := application.NewEnquiryService(notifier, log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := authService.EnsureAdmin(ctx, cfg.Admin.Email, cfg.Admin.Password); err != nil {
		log.Fatal("failed to bootstrap admin account", zap.Error(err))
	}

	// Setup Gin router
	router := handler.NewEngine(log, cfg.CORSOrigins)

	health.NewHandler(db, serviceName).RegisterRoutes(router)
	router.GET("/metrics", metrics.Handler())

	api := &router.RouterGroup
	handler.NewAuthHandler(authService).RegisterRoutes(api)
	handler.NewStoreHandler(storeService, orderService).RegisterRoutes(api, jwtManager)
	handler.NewOrderHandler(orderService).RegisterRoutes(api, jwtManager)
	handler.NewPricingHandler(pricingService).RegisterRoutes(api)
	handler.NewPhotoHandler(photoService).RegisterRoutes(api, jwtManager)
	handler.NewEnquiryHandler(enquiryService).RegisterRoutes(api)
	handler.NewAdminOrderHandler(orderService).RegisterRoutes(api, jwtManager)

	srv := &http.Server{
		Addr:         cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("HTTP server starting", zap.String("addr", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	if cfg.KafkaConfig.Enabled {
		paymentConsumer := storageEvents.NewPaymentEventConsumer(
			cfg.KafkaConfig.Brokers,
			cfg.KafkaConfig.GroupPrefix+"storage-service",
			orderService,
			log,
		)
		defer func() { _ = paymentConsumer.Close() }()

		g.Go(func() error {
			log.Info("starting payment event consumer")
			if err := paymentConsumer.Start(gctx); err != nil && !errors.Is(err, context.Canceled) {
				return fmt.Errorf("payment event consumer: %w", err)
			}
			return nil
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down " + serviceName + "...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("service stopped with error", zap.Error(err))
	}

	log.Info(serviceName + " stopped")
}

func newDistanceProvider(cfg config.DistanceConfig) geo.DistanceProvider {
	switch cfg.Provider {
	case "matrix":
		return geo.NewMatrixClient(cfg.URL, cfg.APIKey, cfg.Timeout)
	case "static":
		return geo.StaticProvider{Meters: cfg.StaticKm * 1000}
	default:
		return geo.HaversineProvider{}
	}
}
