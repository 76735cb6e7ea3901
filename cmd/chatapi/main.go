package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/okanalatt/FullStackAIChat/internal/api"
	"github.com/okanalatt/FullStackAIChat/internal/cache"
	"github.com/okanalatt/FullStackAIChat/internal/classifier"
	"github.com/okanalatt/FullStackAIChat/internal/config"
	"github.com/okanalatt/FullStackAIChat/internal/service"
	"github.com/okanalatt/FullStackAIChat/internal/store"
)

const contentMax = 2000

func main() {
	_ = godotenv.Load()

	cfg, err := config.LoadAll()
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	messages, cleanup, err := openStore(ctx, cfg.Database)
	if err != nil {
		log.Fatalf("failed to open store: %v", err)
	}
	defer cleanup()

	clf := classifier.NewClient(cfg.Classifier.URL, cfg.Classifier.Token, cfg.Classifier.Timeout)

	ingestion := service.NewIngestion(clf, messages, contentMax)
	if cfg.Redis.Enabled {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Address,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		ingestion.WithCache(cache.NewRedisCache(rdb, cfg.Redis.TTL))
		slog.Info("sentiment cache enabled", "addr", cfg.Redis.Address, "ttl", cfg.Redis.TTL.String())
	}

	handler := loggingMiddleware(api.Router(api.NewHandler(ingestion)))

	srv := &http.Server{
		Addr:              cfg.Server.Address,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	slog.Info("chatapi listening",
		"addr", cfg.Server.Address,
		"classifier_timeout", cfg.Classifier.Timeout.String(),
		"postgres", cfg.Database.PostgresURL != "",
		"redis", cfg.Redis.Enabled,
	)

	if err := runServer(ctx, srv); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

// openStore picks Postgres when POSTGRES_URL is set and falls back to the
// in-memory store otherwise.
func openStore(ctx context.Context, cfg config.DatabaseConfig) (store.MessageStore, func(), error) {
	if cfg.PostgresURL == "" {
		slog.Info("POSTGRES_URL not set, using in-memory store")
		return store.NewMemoryStore(), func() {}, nil
	}

	db, err := sql.Open("pgx", cfg.PostgresURL)
	if err != nil {
		return nil, nil, err
	}

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, nil, err
	}

	pg := store.NewPostgresStore(db)
	if err := pg.EnsureSchema(ctx); err != nil {
		_ = db.Close()
		return nil, nil, err
	}

	return pg, func() { _ = db.Close() }, nil
}

func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()

		next.ServeHTTP(rec, r)

		slog.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}
