package main

import (
	"context"
	"log"
	"net"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/fekuna/omnipos-storefront-service/config"
	"github.com/fekuna/omnipos-storefront-service/internal/notification"
	"github.com/fekuna/omnipos-storefront-service/internal/pkg/broker"
	"github.com/fekuna/omnipos-storefront-service/internal/pkg/cache"
	"github.com/fekuna/omnipos-storefront-service/internal/pkg/i18n"
	"github.com/fekuna/omnipos-storefront-service/internal/pkg/logger"
	"github.com/fekuna/omnipos-storefront-service/internal/pkg/middleware"
	"github.com/fekuna/omnipos-storefront-service/internal/pkg/postgres"
	"github.com/fekuna/omnipos-storefront-service/internal/pkg/search"
	"github.com/fekuna/omnipos-storefront-service/internal/realtime"

	invH "github.com/fekuna/omnipos-storefront-service/internal/inventory/handler"
	invRepoPkg "github.com/fekuna/omnipos-storefront-service/internal/inventory/repository"
	invUCPkg "github.com/fekuna/omnipos-storefront-service/internal/inventory/usecase"

	notifH "github.com/fekuna/omnipos-storefront-service/internal/notification/handler"
	notifListenerPkg "github.com/fekuna/omnipos-storefront-service/internal/notification/listener"

	orderH "github.com/fekuna/omnipos-storefront-service/internal/order/handler"
	orderRepoPkg "github.com/fekuna/omnipos-storefront-service/internal/order/repository"
	orderUCPkg "github.com/fekuna/omnipos-storefront-service/internal/order/usecase"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/reflection"
)

func main() {
	// 1. Load Configuration
	_ = godotenv.Load() // Load .env file if it exists
	cfg := config.LoadEnv()

	// 1.5 Initialize i18n
	translator := i18n.New(cfg.Storefront.Locale)
	for _, path := range cfg.Storefront.LocaleFiles {
		if err := translator.Load(path); err != nil {
			log.Printf("Failed to load locale file %s: %v", path, err)
		}
	}

	// 2. Initialize Logger
	logConfig := &logger.ZapLoggerConfig{
		IsDevelopment:     false,
		Encoding:          cfg.Logger.Encoding,
		Level:             cfg.Logger.Level,
		DisableCaller:     cfg.Logger.DisableCaller,
		DisableStacktrace: cfg.Logger.DisableStacktrace,
	}

	if cfg.Server.AppEnv == "development" {
		logConfig.IsDevelopment = true
		logConfig.Encoding = "console"
		logConfig.Level = "debug"
	}

	appLogger := logger.NewZapLogger(logConfig)
	defer appLogger.Sync()

	// 3. Connect to Database
	db, err := postgres.NewPostgres(&postgres.Config{
		Host:            cfg.Postgres.Host,
		Port:            cfg.Postgres.Port,
		User:            cfg.Postgres.User,
		Password:        cfg.Postgres.Password,
		DBName:          cfg.Postgres.DBName,
		SSLMode:         cfg.Postgres.SSLMode,
		MaxOpenConns:    cfg.Postgres.MaxOpenConns,
		MaxIdleConns:    cfg.Postgres.MaxIdleConns,
		ConnMaxLifetime: time.Duration(cfg.Postgres.ConnMaxLifetime) * time.Second,
		ConnMaxIdleTime: time.Duration(cfg.Postgres.ConnMaxIdleTime) * time.Second,
	})
	if err != nil {
		appLogger.Fatal("Could not connect to database", zap.Error(err))
	}
	defer db.Close()
	appLogger.Info("Connected to PostgreSQL database", zap.String("db_name", cfg.Postgres.DBName))

	// 4. Initialize Repositories
	orderRepo := orderRepoPkg.NewPGRepository(db)
	invRepo := invRepoPkg.NewPGRepository(db)

	// 5. Initialize Redis
	redisClient, err := cache.NewRedisClient(&cache.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		appLogger.Fatal("Could not connect to Redis", zap.Error(err))
	}
	defer redisClient.Close()
	appLogger.Info("Connected to Redis", zap.String("addr", cfg.Redis.Addr))

	// 5.5 Initialize the realtime channel (order events in and out)
	driver := &realtime.DriverConfig{
		Driver: cfg.Realtime.Driver,
		Kafka: broker.Config{
			Brokers: cfg.Kafka.Brokers,
			Topic:   cfg.Kafka.Topic,
			GroupID: cfg.Kafka.GroupID,
		},
		RabbitURL:      cfg.RabbitMQ.URL,
		RabbitExchange: cfg.RabbitMQ.Exchange,
		StoreID:        cfg.Storefront.NotifyStoreID,
		Instance:       cfg.Server.InstanceID,
	}
	publisher, err := realtime.NewPublisher(driver)
	if err != nil {
		appLogger.Fatal("Could not create order event publisher", zap.Error(err))
	}
	defer publisher.Close()

	subscriber, err := realtime.NewSubscriber(driver)
	if err != nil {
		appLogger.Fatal("Could not subscribe to order events", zap.Error(err))
	}
	defer subscriber.Close()
	appLogger.Info("Connected to realtime channel", zap.String("driver", cfg.Realtime.Driver))

	// 5.8 Initialize Elasticsearch
	var esIndex orderUCPkg.Index
	esClient, err := search.NewClient(&search.Config{
		Addresses: cfg.Elastic.Addresses,
		Username:  cfg.Elastic.Username,
		Password:  cfg.Elastic.Password,
	})
	if err != nil {
		appLogger.Warn("Could not connect to Elasticsearch (Search features might be limited)", zap.Error(err))
	} else {
		esIndex = esClient
		appLogger.Info("Connected to Elasticsearch", zap.Strings("addresses", cfg.Elastic.Addresses))
		idxCtx, idxCancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := orderUCPkg.EnsureIndex(idxCtx, esIndex); err != nil {
			appLogger.Warn("Could not create order index", zap.Error(err))
		}
		idxCancel()
	}

	// 6. Initialize UseCases
	orderUC := orderUCPkg.NewOrderUseCase(orderRepo, redisClient, publisher, esIndex, appLogger)
	invUC := invUCPkg.NewInventoryUseCase(invRepo, appLogger)

	notifier := notification.NewNotifier(translator, notification.Options{
		Locale:                     cfg.Storefront.Locale,
		CurrencySymbol:             cfg.Storefront.CurrencySymbol,
		SystemNotificationsAllowed: cfg.Storefront.SystemNotificationsAllowed,
	}, appLogger, notification.NewLogSink(appLogger))
	defer notifier.Close()

	// 6.5 Initialize Listeners
	orderListener := notifListenerPkg.NewOrderListener(subscriber, notifier, appLogger)

	// Start Listener
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go orderListener.Start(ctx)

	// 6. Initialize Handlers
	orderHandler := orderH.NewOrderHandler(orderUC, appLogger)
	invHandler := invH.NewInventoryHandler(invUC, appLogger)
	notifHandler := notifH.NewNotificationHandler(notifier, appLogger)

	// 7. Start gRPC Server
	port := cfg.Server.GRPCPort
	if !strings.HasPrefix(port, ":") {
		port = ":" + port
	}

	lis, err := net.Listen("tcp", port)
	if err != nil {
		log.Fatalf("failed to listen: %v", err)
	}

	grpcServer := grpc.NewServer(
		grpc.UnaryInterceptor(middleware.ContextInterceptor()),
	)

	// Register Services
	orderHandler.Register(grpcServer)
	invHandler.Register(grpcServer)
	notifHandler.Register(grpcServer)

	// Register Reflection
	reflection.Register(grpcServer)

	appLogger.Info("Starting gRPC server", zap.String("port", port))

	// Graceful Shutdown
	go func() {
		if err := grpcServer.Serve(lis); err != nil {
			appLogger.Fatal("failed to serve", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")
	cancel()
	grpcServer.GracefulStop()
	appLogger.Info("Server stopped")
}
