package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/fileshare/fileshare-backend/internal/adapter/postgres"
	attachmentrepo "github.com/fileshare/fileshare-backend/internal/adapter/postgres/attachment"
	categoryrepo "github.com/fileshare/fileshare-backend/internal/adapter/postgres/category"
	historyrepo "github.com/fileshare/fileshare-backend/internal/adapter/postgres/history"
	itemrepo "github.com/fileshare/fileshare-backend/internal/adapter/postgres/item"
	userrepo "github.com/fileshare/fileshare-backend/internal/adapter/postgres/user"
	"github.com/fileshare/fileshare-backend/internal/auth"
	"github.com/fileshare/fileshare-backend/internal/cache"
	"github.com/fileshare/fileshare-backend/internal/config"
	attachmentsvc "github.com/fileshare/fileshare-backend/internal/service/attachment"
	authsvc "github.com/fileshare/fileshare-backend/internal/service/auth"
	categorysvc "github.com/fileshare/fileshare-backend/internal/service/category"
	itemsvc "github.com/fileshare/fileshare-backend/internal/service/item"
	usersvc "github.com/fileshare/fileshare-backend/internal/service/user"
	"github.com/fileshare/fileshare-backend/internal/storage"
	"github.com/fileshare/fileshare-backend/internal/transport/middleware"
	"github.com/fileshare/fileshare-backend/internal/transport/rest"
)

// Run is the application entry point. It loads configuration, wires the
// repositories, services, and HTTP handlers, and serves until ctx is
// cancelled, then shuts down gracefully.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	txManager := postgres.NewTxManager(pool)

	items := itemrepo.New(pool)
	history := historyrepo.New(pool)
	users := userrepo.New(pool)
	categories := categoryrepo.New(pool)
	attachments := attachmentrepo.New(pool)

	store, err := storage.NewStore(cfg.Storage.BasePath)
	if err != nil {
		return fmt.Errorf("init file storage: %w", err)
	}
	thumbnailer := storage.NewThumbnailer(store, cfg.Storage.ThumbnailSize)

	var itemCache *cache.ItemCache
	if cfg.Cache.Addr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Cache.Addr,
			Password: cfg.Cache.Password,
			DB:       cfg.Cache.DB,
		})
		defer redisClient.Close()

		if err := redisClient.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("connect to redis: %w", err)
		}
		itemCache = cache.NewItemCache(logger, redisClient, cfg.Cache.TTL)
		logger.Info("item cache enabled", slog.String("addr", cfg.Cache.Addr))
	}

	jwtManager := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.AccessTokenTTL)

	authService := authsvc.NewService(logger, users, jwtManager)
	userService := usersvc.NewService(logger, users)
	categoryService := categorysvc.NewService(logger, categories)
	attachmentService := attachmentsvc.NewService(logger, attachments, items, store, thumbnailer)

	// A nil *cache.ItemCache must stay a nil interface inside the service.
	itemService := itemsvc.NewService(logger, items, history, txManager, nil)
	if itemCache != nil {
		itemService = itemsvc.NewService(logger, items, history, txManager, itemCache)
	}

	router := rest.NewRouter(rest.RouterDeps{
		Auth:        rest.NewAuthHandler(authService, logger),
		Items:       rest.NewItemHandler(itemService, logger),
		Attachments: rest.NewAttachmentHandler(attachmentService, logger, cfg.Storage.MaxUploadSize),
		Users:       rest.NewUserHandler(userService, logger),
		Categories:  rest.NewCategoryHandler(categoryService, logger),
		Health:      rest.NewHealthHandler(pool, BuildVersion()),
	})

	rateLimiter := middleware.NewRateLimiter(time.Minute)
	defer rateLimiter.Stop()

	handler := middleware.Chain(
		middleware.Recovery(logger),
		middleware.RequestID,
		middleware.Logger(logger),
		middleware.CORS(cfg.CORS),
		rateLimiter.Limit(cfg.Server.RatePerMinute),
		middleware.Auth(authService),
	)(router)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	logger.Info("stopped")
	return nil
}
