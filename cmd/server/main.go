package main

import (
	"context"
	"errors"
	"log"
	"net"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/bharatsutharx/radiology-center-2/config"
	"github.com/bharatsutharx/radiology-center-2/internal/auth"
	"github.com/bharatsutharx/radiology-center-2/internal/health"
	"github.com/bharatsutharx/radiology-center-2/internal/localstore"
	"github.com/bharatsutharx/radiology-center-2/internal/pkg/broker"
	"github.com/bharatsutharx/radiology-center-2/internal/pkg/cache"
	"github.com/bharatsutharx/radiology-center-2/internal/pkg/database/postgres"
	"github.com/bharatsutharx/radiology-center-2/internal/pkg/logger"
	"github.com/bharatsutharx/radiology-center-2/internal/pkg/metrics"
	"github.com/bharatsutharx/radiology-center-2/internal/pkg/validation"
	"github.com/bharatsutharx/radiology-center-2/internal/seed"
	"github.com/bharatsutharx/radiology-center-2/internal/server"

	anH "github.com/bharatsutharx/radiology-center-2/internal/analytics/handler"
	anUCPkg "github.com/bharatsutharx/radiology-center-2/internal/analytics/usecase"

	attH "github.com/bharatsutharx/radiology-center-2/internal/attendance/handler"
	attRepoPkg "github.com/bharatsutharx/radiology-center-2/internal/attendance/repository"
	attUCPkg "github.com/bharatsutharx/radiology-center-2/internal/attendance/usecase"

	bakH "github.com/bharatsutharx/radiology-center-2/internal/backup/handler"
	bakUCPkg "github.com/bharatsutharx/radiology-center-2/internal/backup/usecase"

	expH "github.com/bharatsutharx/radiology-center-2/internal/export/handler"
	expUCPkg "github.com/bharatsutharx/radiology-center-2/internal/export/usecase"

	"github.com/bharatsutharx/radiology-center-2/internal/attendance"
	"github.com/bharatsutharx/radiology-center-2/internal/inventory"
	invH "github.com/bharatsutharx/radiology-center-2/internal/inventory/handler"
	invListenerPkg "github.com/bharatsutharx/radiology-center-2/internal/inventory/listener"
	invPubPkg "github.com/bharatsutharx/radiology-center-2/internal/inventory/publisher"
	invRepoPkg "github.com/bharatsutharx/radiology-center-2/internal/inventory/repository"
	invUCPkg "github.com/bharatsutharx/radiology-center-2/internal/inventory/usecase"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	grpchealth "google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

func main() {
	// 1. Load Configuration
	_ = godotenv.Load()
	cfg := config.LoadEnv()

	// 2. Initialize Logger
	logConfig := &logger.ZapLoggerConfig{
		IsDevelopment:     false,
		Encoding:          cfg.Logger.Encoding,
		Level:             cfg.Logger.Level,
		DisableCaller:     cfg.Logger.DisableCaller,
		DisableStacktrace: cfg.Logger.DisableStacktrace,
	}
	if cfg.Server.AppEnv == "development" || cfg.Server.AppEnv == "dev" {
		logConfig.IsDevelopment = true
	}
	appLogger := logger.NewZapLogger(logConfig)
	defer appLogger.Sync()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 3. Metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	storeMetrics := metrics.NewStoreMetrics(registry)

	// 4. Connect to Database. An unreachable database is not fatal: every
	// repository falls back to the local store.
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
	switch {
	case db == nil:
		appLogger.Error("Could not open database, running on local store only", zap.Error(err))
	case err != nil:
		appLogger.Warn("Database unreachable, local store will serve requests", zap.Error(err))
	default:
		appLogger.Info("Connected to PostgreSQL database", zap.String("db_name", cfg.Postgres.DBName))
		if cfg.Postgres.AutoMigrate {
			if err := postgres.Migrate(ctx, db); err != nil {
				appLogger.Error("Schema migration failed", zap.Error(err))
			}
		}
	}
	if db != nil {
		defer db.Close()
	}

	// 5. Local fallback store
	store, closeStore := newLocalStore(cfg, appLogger)
	defer closeStore()

	// 6. Initialize Repositories
	var attRepo attendance.Repository = attRepoPkg.NewLocalRepository(store)
	var invRepo inventory.Repository = invRepoPkg.NewLocalRepository(store)
	if db != nil {
		attRepo = attRepoPkg.NewFallbackRepository(attRepoPkg.NewPGRepository(db), attRepo, appLogger, storeMetrics)
		invRepo = invRepoPkg.NewFallbackRepository(invRepoPkg.NewPGRepository(db), invRepo, appLogger, storeMetrics)
	}

	// 7. Kafka
	var stockPublisher inventory.EventPublisher = inventory.NopPublisher{}
	if cfg.Kafka.Enabled {
		producer := broker.NewProducer(&broker.Config{
			Brokers: cfg.Kafka.Brokers,
			Topic:   cfg.Kafka.StockTopic,
		})
		defer producer.Close()
		stockPublisher = invPubPkg.NewKafkaPublisher(producer)
		appLogger.Info("Kafka producer ready", zap.Strings("brokers", cfg.Kafka.Brokers), zap.String("topic", cfg.Kafka.StockTopic))
	}

	// 8. Initialize UseCases
	attUC := attUCPkg.NewAttendanceUseCase(attRepo, appLogger)
	invUC := invUCPkg.NewInventoryUseCase(invRepo, stockPublisher, appLogger)
	anUC := anUCPkg.NewAnalyticsUseCase(attUC, appLogger)
	expUC := expUCPkg.NewExportUseCase(attUC, anUC, invUC, appLogger)
	bakUC := bakUCPkg.NewBackupUseCase(store, appLogger)

	// 9. Listeners and background jobs
	if cfg.Kafka.Enabled {
		consumer := broker.NewConsumer(&broker.Config{
			Brokers: cfg.Kafka.Brokers,
			Topic:   cfg.Kafka.UsageTopic,
			GroupID: cfg.Kafka.GroupID,
		})
		defer consumer.Close()
		go invListenerPkg.NewSupplyListener(consumer, invUC, appLogger).Start(ctx)
		appLogger.Info("Kafka consumer started", zap.String("topic", cfg.Kafka.UsageTopic))
	}

	if cfg.Seeder.Enabled {
		seeder := seed.NewSeeder(attUC, invUC, appLogger)
		if err := seeder.Run(ctx); err != nil {
			appLogger.Error("Initial seed failed", zap.Error(err))
		}
		scheduler, err := seed.NewScheduler(cfg.Seeder.Schedule, seeder, appLogger)
		if err != nil {
			appLogger.Fatal("Invalid seeder schedule", zap.String("schedule", cfg.Seeder.Schedule), zap.Error(err))
		}
		scheduler.Start()
		defer func() {
			stopCtx, stop := context.WithTimeout(context.Background(), 10*time.Second)
			defer stop()
			scheduler.Stop(stopCtx)
		}()
	}

	// 10. Initialize Handlers
	authenticator, err := auth.NewAuthenticator(&auth.Config{
		AdminUsername:     cfg.Auth.AdminUsername,
		AdminPassword:     cfg.Auth.AdminPassword,
		AdminPasswordHash: cfg.Auth.AdminPasswordHash,
		JWTSecret:         cfg.Auth.JWTSecret,
		TokenTTL:          time.Duration(cfg.Auth.TokenTTLMinutes) * time.Minute,
	})
	if err != nil {
		appLogger.Fatal("Could not initialize authenticator", zap.Error(err))
	}

	validate := validation.New()
	app := server.NewApp(server.Config{AppName: "radiology-center", Gatherer: registry}, authenticator, appLogger,
		server.Route{Prefix: "attendance", Handler: attH.NewAttendanceHandler(attUC, validate, appLogger)},
		server.Route{Prefix: "inventory", Handler: invH.NewInventoryHandler(invUC, validate, appLogger)},
		server.Route{Prefix: "staff", Handler: anH.NewAnalyticsHandler(anUC, validate, appLogger)},
		server.Route{Prefix: "reports", Handler: expH.NewExportHandler(expUC, validate, appLogger, cfg.Report.CenterName)},
		server.Route{Prefix: "data", Handler: bakH.NewBackupHandler(bakUC, appLogger)},
	)

	// 11. Start gRPC health server
	grpcPort := listenAddr(cfg.Server.GRPCPort)
	lis, err := net.Listen("tcp", grpcPort)
	if err != nil {
		log.Fatalf("failed to listen: %v", err)
	}

	healthServer := grpchealth.NewServer()
	grpcServer := grpc.NewServer()
	healthpb.RegisterHealthServer(grpcServer, healthServer)
	reflection.Register(grpcServer)

	var pinger health.Pinger
	if db != nil {
		pinger = db
	}
	go health.NewProber(pinger, healthServer, 15*time.Second, appLogger).Run(ctx)

	appLogger.Info("Starting gRPC health server", zap.String("port", grpcPort))
	go func() {
		if err := grpcServer.Serve(lis); err != nil {
			appLogger.Fatal("failed to serve grpc", zap.Error(err))
		}
	}()

	// 12. Start HTTP server
	httpPort := listenAddr(cfg.Server.HTTPPort)
	appLogger.Info("Starting HTTP server", zap.String("port", httpPort))
	go func() {
		if err := app.Listen(httpPort); err != nil && !errors.Is(err, net.ErrClosed) {
			appLogger.Fatal("failed to serve http", zap.Error(err))
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")
	cancel()
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		appLogger.Error("HTTP shutdown failed", zap.Error(err))
	}
	healthServer.Shutdown()
	grpcServer.GracefulStop()
	appLogger.Info("Server stopped")
}

func listenAddr(port string) string {
	if !strings.HasPrefix(port, ":") && !strings.Contains(port, ":") {
		return ":" + port
	}
	return port
}

func newLocalStore(cfg *config.Config, appLogger logger.ZapLogger) (localstore.Store, func()) {
	switch cfg.LocalStore.Backend {
	case "memory":
		appLogger.Info("Using in-memory local store")
		return localstore.NewMemoryStore(), func() {}
	case "redis":
		redisClient, err := cache.NewRedisClient(&cache.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			appLogger.Fatal("Could not connect to Redis", zap.Error(err))
		}
		appLogger.Info("Using Redis local store", zap.String("addr", cfg.Redis.Addr))
		return localstore.NewRedisStore(redisClient, cfg.Redis.KeyPrefix), func() { redisClient.Close() }
	default:
		fileStore, err := localstore.NewFileStore(cfg.LocalStore.FilePath)
		if err != nil {
			appLogger.Fatal("Could not open local store", zap.String("path", cfg.LocalStore.FilePath), zap.Error(err))
		}
		appLogger.Info("Using file local store", zap.String("path", cfg.LocalStore.FilePath))
		return fileStore, func() {}
	}
}
