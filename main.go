package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"penpals_server/config"
	"penpals_server/routes"
	"penpals_server/services"

	"github.com/gorilla/mux"
	"github.com/redis/go-redis/v9"
	"github.com/rs/cors"
)

func newLogger(cfg *config.Config) *slog.Logger {
	var level slog.Level
	switch strings.ToLower(cfg.Log.Level) {
	case "debug":
		level = slog.LevelDebug
	case "warn", "warning":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	if strings.ToLower(cfg.Log.Format) == "json" {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}

// newStore picks the persistence backend and optionally wraps it with the
// Redis read cache.
func newStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (services.Store, error) {
	var store services.Store
	switch cfg.Store.Backend {
	case "dynamo":
		client, err := services.InitializeDynamoDBClient(ctx, cfg.Store.Region)
		if err != nil {
			return nil, err
		}
		store = services.NewDynamoStore(client, cfg.Store.Table)
		logger.Info("using DynamoDB store", "table", cfg.Store.Table)
	default:
		store = services.NewFileStore(cfg.Store.FilePath)
		logger.Info("using file store", "path", cfg.Store.FilePath)
	}

	if cfg.Redis.Addr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			return nil, err
		}
		store = services.NewCachedStore(store, client, cfg.Redis.CacheTTL, logger)
		logger.Info("store cache enabled", "addr", cfg.Redis.Addr, "ttl", cfg.Redis.CacheTTL)
	}
	return store, nil
}

func main() {
	cfg := config.New()
	logger := newLogger(cfg)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := newStore(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to initialize store", "err", err)
		os.Exit(1)
	}
	handle := services.NewStoreHandle(store)

	templates := services.EmailTemplates{WebsiteURL: cfg.WebsiteURL}
	emailService := services.NewEmailService(ctx,
		cfg.Email.AccessKey, cfg.Email.SecretKey, cfg.Email.Region,
		cfg.Email.From, cfg.Email.FromName, logger)

	scheduler := services.NewDeliveryScheduler(handle, emailService, templates, logger)

	verificationService := &services.VerificationService{
		Store:         handle,
		Email:         emailService,
		Templates:     templates,
		AllowedDomain: cfg.Penpals.AllowedDomain,
		ExtraAllowed:  cfg.Penpals.ExtraAllowed,
		CodeTTL:       cfg.Penpals.CodeTTL,
		SweepInterval: cfg.Penpals.SweepInterval,
		Logger:        logger,
	}
	userService := &services.UserService{
		Store:       handle,
		Email:       emailService,
		Templates:   templates,
		AdminEmail:  cfg.Email.AdminEmail,
		MinIntroLen: cfg.Penpals.MinIntroLen,
		Logger:      logger,
	}
	matchService := &services.MatchService{
		Store:     handle,
		Email:     emailService,
		Templates: templates,
		Logger:    logger,
	}
	chatService := &services.ChatService{
		Store:         handle,
		Scheduler:     scheduler,
		DeliveryDelay: cfg.Penpals.DeliveryDelay,
		MinMessageLen: cfg.Penpals.MinMessageLen,
		Logger:        logger,
	}

	// Timers do not survive restarts: rebuild the schedule from persisted
	// state before accepting traffic.
	if err := scheduler.RescheduleAll(ctx); err != nil {
		logger.Error("failed to reschedule pending deliveries", "err", err)
		os.Exit(1)
	}
	verificationService.StartSweep(ctx)

	r := mux.NewRouter()
	routes.RegisterRoutes(r)
	routes.RegisterVerificationRoutes(r, verificationService)
	routes.RegisterUserRoutes(r, userService)
	routes.RegisterChatRoutes(r, chatService, matchService)
	routes.RegisterAdminRoutes(r, matchService, chatService, cfg.Admin.Password)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization", "X-Admin-Password"},
		AllowCredentials: true,
	}).Handler(r)

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: corsHandler,
	}

	go func() {
		logger.Info("starting server", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "err", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "err", err)
	}
	scheduler.Stop()
}
