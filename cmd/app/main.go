package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"storefront/cmd"
	"storefront/internal/adapters/out/auth"
	"storefront/internal/adapters/out/filestore"
	"storefront/internal/adapters/out/messaging"
	"storefront/internal/adapters/out/postgres"
	"storefront/internal/adapters/out/tokenstore"
	"storefront/internal/core/ports"
	"storefront/internal/pkg/logging"

	"github.com/joho/godotenv"
	"github.com/labstack/gommon/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
)

func main() {
	configs := getConfigs()

	logger, logCloser := newLogger(configs)
	defer logCloser.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	deps, cleanup := buildDependencies(ctx, configs, logger)
	defer cleanup()

	app := cmd.NewCompositionRoot(configs, deps)
	if err := app.EnsureAdmin(ctx); err != nil {
		log.Fatalf("Error ensuring admin account: %v", err)
	}

	jobManager := app.CreateJobManager()
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Error starting jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(ctx, app, configs.HTTPPort, logger)
}

func getConfigs() cmd.Config {
	if err := godotenv.Load(".env"); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			log.Fatalf("Error loading .env file: %v", err)
		}
		log.Info("No .env file, reading configuration from the environment")
	}

	config, err := cmd.LoadConfig(os.Getenv)
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	return config
}

func newLogger(configs cmd.Config) (*slog.Logger, io.Closer) {
	logger, closer, err := logging.New(logging.Options{
		Service: "storefront",
		File:    configs.LogFile,
		Level:   configs.LogLevel,
	})
	if err != nil {
		log.Fatalf("Error creating logger: %v", err)
	}
	slog.SetDefault(logger)
	return logger, closer
}

func buildDependencies(ctx context.Context, configs cmd.Config, logger *slog.Logger) (cmd.Dependencies, func()) {
	var closers []func()
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	dsn := configs.DBSettings().DSN()
	if err := postgres.RunMigrations(dsn, logger); err != nil {
		log.Fatalf("Error running migrations: %v", err)
	}

	db, err := postgres.Open(dsn)
	if err != nil {
		log.Fatalf("Error connecting to database: %v", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		closers = append(closers, func() { _ = sqlDB.Close() })
	}

	tokens, err := auth.NewJWTIssuer(configs.JWTSecret, configs.JWTAccessTTL, configs.JWTRefreshTTL)
	if err != nil {
		log.Fatalf("Error creating token issuer: %v", err)
	}

	images, err := filestore.NewLocalStorage(configs.UploadDir, filestore.DefaultMaxImageSize)
	if err != nil {
		log.Fatalf("Error preparing upload dir: %v", err)
	}

	var refreshTokens ports.RefreshTokenStore
	if configs.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: configs.RedisAddr})
		if err := client.Ping(ctx).Err(); err != nil {
			log.Fatalf("Error connecting to redis: %v", err)
		}
		closers = append(closers, func() { _ = client.Close() })
		refreshTokens = tokenstore.NewRedisStore(client)
	} else {
		logger.Warn("REDIS_ADDR not set, refresh tokens are kept in memory")
		refreshTokens = tokenstore.NewMemoryStore()
	}

	var publisher ports.EventPublisher = messaging.LogPublisher{Logger: logger.With("component", "events")}
	if configs.AMQPURL != "" {
		conn, err := messaging.Dial(configs.AMQPURL)
		if err != nil {
			log.Fatalf("Error connecting to message broker: %v", err)
		}
		amqpPublisher, err := messaging.NewPublisher(conn)
		if err != nil {
			log.Fatalf("Error creating event publisher: %v", err)
		}
		closers = append(closers, func() {
			_ = amqpPublisher.Close()
			_ = conn.Close()
		})
		publisher = amqpPublisher
	} else {
		logger.Warn("AMQP_URL not set, domain events are only logged")
	}

	return cmd.Dependencies{
		DB:            db,
		Tokens:        tokens,
		RefreshTokens: refreshTokens,
		Hasher:        auth.NewBcryptHasher(configs.BcryptCost),
		Images:        images,
		Publisher:     publisher,
		Logger:        logger,
	}, cleanup
}

func startWebServer(ctx context.Context, app cmd.CompositionRoot, port string, logger *slog.Logger) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	e, err := app.CreateRouter(reg)
	if err != nil {
		log.Fatalf("Error building router: %v", err)
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := e.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown failed", "error", err)
		}
	}()

	logger.Info("HTTP server starting", "port", port)
	if err := e.Start(fmt.Sprintf("0.0.0.0:%s", port)); err != nil && !errors.Is(err, http.ErrServerClosed) {
		e.Logger.Fatal(err)
	}
}
