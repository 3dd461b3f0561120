package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/fekuna/omnipos-storefront-service/config"
	"github.com/fekuna/omnipos-storefront-service/internal/checkout"
	"github.com/fekuna/omnipos-storefront-service/internal/message"
	"github.com/fekuna/omnipos-storefront-service/internal/pkg/broker"
	"github.com/fekuna/omnipos-storefront-service/internal/pkg/cache"
	"github.com/fekuna/omnipos-storefront-service/internal/pkg/i18n"
	"github.com/fekuna/omnipos-storefront-service/internal/pkg/logger"
	"github.com/fekuna/omnipos-storefront-service/internal/pkg/middleware"
	"github.com/fekuna/omnipos-storefront-service/internal/pkg/postgres"
	"github.com/fekuna/omnipos-storefront-service/internal/pkg/search"
	"github.com/fekuna/omnipos-storefront-service/internal/realtime"

	cartH "github.com/fekuna/omnipos-storefront-service/internal/cart/handler"
	cartRepoPkg "github.com/fekuna/omnipos-storefront-service/internal/cart/repository"
	cartUCPkg "github.com/fekuna/omnipos-storefront-service/internal/cart/usecase"

	checkoutH "github.com/fekuna/omnipos-storefront-service/internal/checkout/handler"
	checkoutUCPkg "github.com/fekuna/omnipos-storefront-service/internal/checkout/usecase"

	customerH "github.com/fekuna/omnipos-storefront-service/internal/customer/handler"
	customerRepoPkg "github.com/fekuna/omnipos-storefront-service/internal/customer/repository"
	customerUCPkg "github.com/fekuna/omnipos-storefront-service/internal/customer/usecase"

	merchantH "github.com/fekuna/omnipos-storefront-service/internal/merchant/handler"
	merchantRepoPkg "github.com/fekuna/omnipos-storefront-service/internal/merchant/repository"
	merchantUCPkg "github.com/fekuna/omnipos-storefront-service/internal/merchant/usecase"

	orderRepoPkg "github.com/fekuna/omnipos-storefront-service/internal/order/repository"
	orderUCPkg "github.com/fekuna/omnipos-storefront-service/internal/order/usecase"

	prodRepoPkg "github.com/fekuna/omnipos-storefront-service/internal/product/repository"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
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
	} else {
		gin.SetMode(gin.ReleaseMode)
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

	// 4. Initialize Redis
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

	// 5. Initialize Repositories
	cartTTL := time.Duration(cfg.Storefront.CartTTLHours) * time.Hour
	sessionTTL := time.Duration(cfg.JWT.SessionTTLHours) * time.Hour

	prodRepo := prodRepoPkg.NewPGRepository(db)
	orderRepo := orderRepoPkg.NewPGRepository(db)
	cartRepo := cartRepoPkg.NewRedisRepository(redisClient.Client, cartTTL)
	customerRepo := customerRepoPkg.NewRedisRepository(redisClient.Client, sessionTTL, cartTTL)
	storeRepo := merchantRepoPkg.NewCachedRepository(
		merchantRepoPkg.NewPGRepository(db),
		redisClient.Client,
		time.Duration(cfg.Storefront.StoreCacheTTLSec)*time.Second,
		appLogger,
	)

	// 5.5 Initialize the order event publisher
	publisher, err := realtime.NewPublisher(&realtime.DriverConfig{
		Driver: cfg.Realtime.Driver,
		Kafka: broker.Config{
			Brokers: cfg.Kafka.Brokers,
			Topic:   cfg.Kafka.Topic,
		},
		RabbitURL:      cfg.RabbitMQ.URL,
		RabbitExchange: cfg.RabbitMQ.Exchange,
	})
	if err != nil {
		appLogger.Fatal("Could not create order event publisher", zap.Error(err))
	}
	defer publisher.Close()
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
	cartUC := cartUCPkg.NewCartUseCase(cartRepo, prodRepo, redisClient, translator, appLogger)
	merchantUC := merchantUCPkg.NewMerchantUseCase(storeRepo, appLogger)
	customerUC := customerUCPkg.NewCustomerUseCase(customerRepo, cfg.JWT.SecretKey, sessionTTL, appLogger)
	orderUC := orderUCPkg.NewOrderUseCase(orderRepo, redisClient, publisher, esIndex, appLogger)

	renderer := checkout.NewRenderer(
		translator,
		message.NewMoneyFormatter(cfg.Storefront.Locale, cfg.Storefront.CurrencySymbol),
		cfg.Storefront.MessageMaxLength,
	)
	checkoutUC := checkoutUCPkg.NewCheckoutUseCase(cartUC, merchantUC, orderUC, customerUC, renderer, appLogger)

	// 7. Initialize Handlers and Routes
	router := gin.New()
	router.Use(gin.Recovery(), middleware.PrometheusMiddleware())
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	public := router.Group("/api/v1")
	merchantH.NewMerchantHandler(merchantUC, appLogger).RegisterRoutes(public)

	session := public.Group("", middleware.Session())
	cartH.NewCartHandler(cartUC, appLogger).RegisterRoutes(session)
	checkoutH.NewCheckoutHandler(checkoutUC, appLogger).RegisterRoutes(session)
	customerH.NewCustomerHandler(customerUC, appLogger).RegisterRoutes(session)

	// 8. Start HTTP Server
	port := cfg.Server.HTTPPort
	if !strings.HasPrefix(port, ":") {
		port = ":" + port
	}
	srv := &http.Server{
		Addr:              port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	appLogger.Info("Starting HTTP server", zap.String("port", port))

	// Graceful Shutdown
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatal("failed to serve", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Error("server forced to shutdown", zap.Error(err))
	}
	appLogger.Info("Server stopped")
}
