package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/bryanwahyu/promptlens/internal/application"
	appai "github.com/bryanwahyu/promptlens/internal/application/ai"
	appprompts "github.com/bryanwahyu/promptlens/internal/application/prompts"
	"github.com/bryanwahyu/promptlens/internal/config"
	domai "github.com/bryanwahyu/promptlens/internal/domain/ai"
	domain "github.com/bryanwahyu/promptlens/internal/domain/prompts"
	"github.com/bryanwahyu/promptlens/internal/infra/ai/openai"
	"github.com/bryanwahyu/promptlens/internal/infra/db/migrations"
	mysqlp "github.com/bryanwahyu/promptlens/internal/infra/db/mysql"
	"github.com/bryanwahyu/promptlens/internal/infra/db/postgres"
	"github.com/bryanwahyu/promptlens/internal/infra/db/sqlite"
	"github.com/bryanwahyu/promptlens/internal/infra/httpserver"
	minioStore "github.com/bryanwahyu/promptlens/internal/infra/storage"
	"github.com/bryanwahyu/promptlens/internal/middleware"
	"github.com/bryanwahyu/promptlens/pkg/logger"
)

func main() {
	// path config.yaml
	path := "config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		path = v
	}

	cfg, err := config.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load error: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger init error: %v\n", err)
		os.Exit(1)
	}

	os.Exit(exitCode(log, run(cfg, log)))
}

// exitCode logs the outcome of run and flushes the logger before the
// process exits, since os.Exit skips deferred calls.
func exitCode(log *zap.Logger, err error) int {
	defer func() { _ = log.Sync() }()
	if err != nil {
		log.Error("shutting down due to error", zap.Error(err))
		return 1
	}
	log.Info("shutdown complete")
	return 0
}

func run(cfg *config.Config, log *zap.Logger) error {
	ctx := context.Background()

	db, repo, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Close()
	log.Info("history store ready", zap.String("driver", cfg.Database.Driver))

	checkers := map[string]middleware.HealthChecker{
		"database": &middleware.DatabaseHealthChecker{DB: db},
	}

	// model client is optional; analyze reports the missing key per request
	var model domai.Client
	if cfg.ModelConfigured() {
		model = openai.NewClient(openai.Config{
			APIKey:    cfg.Model.APIKey,
			BaseURL:   cfg.Model.BaseURL,
			Model:     cfg.Model.Name,
			MaxTokens: cfg.Model.MaxTokens,
		})
	} else {
		log.Warn("model API key is not configured; /api/analyze will fail")
	}

	var previews domain.PreviewStore
	if cfg.Minio.Enabled {
		store, err := minioStore.New(ctx, minioStore.Options{
			Endpoint:   cfg.Minio.Endpoint,
			Region:     cfg.Minio.Region,
			BucketName: cfg.Minio.BucketName,
			AccessKey:  cfg.Minio.AccessKey,
			SecretKey:  cfg.Minio.SecretKey,
			UseSSL:     cfg.Minio.UseSSL,
			PublicURL:  cfg.Minio.PublicURL,
		})
		if err != nil {
			return fmt.Errorf("minio init: %w", err)
		}
		previews = store
		checkers["previews"] = store
	}

	aiSvc := appai.NewService(model)
	promptsSvc := &appprompts.Service{
		Repo:          repo,
		Previews:      previews,
		Clock:         application.SystemClock{},
		PreviewMaxLen: cfg.History.PreviewMaxLen,
	}

	handler := httpserver.NewRouter(aiSvc, promptsSvc, log, httpserver.Options{
		AllowedOrigins: cfg.Server.AllowedOrigins,
		HealthCheckers: checkers,
	})

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	// graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	select {
	case s := <-stop:
		log.Info("shutting down server", zap.String("signal", s.String()))
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	}

	ctx2, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(ctx2)
}

// openStore connects the configured database, runs migrations and returns
// the matching repository.
func openStore(ctx context.Context, cfg *config.Config) (*sql.DB, domain.Repository, error) {
	var (
		db      *sql.DB
		repo    domain.Repository
		dialect string
		err     error
	)
	switch cfg.Database.Driver {
	case config.DriverPostgres:
		if db, err = postgres.Connect(ctx, cfg.PostgresDSN()); err == nil {
			repo, dialect = postgres.NewPromptRepository(db), migrations.Postgres
		}
	case config.DriverMySQL:
		if db, err = mysqlp.Connect(ctx, cfg.MySQLDSN()); err == nil {
			repo, dialect = mysqlp.NewPromptRepository(db), migrations.MySQL
		}
	default:
		if db, err = sqlite.Connect(ctx, cfg.SQLiteDSN()); err == nil {
			repo, dialect = sqlite.NewPromptRepository(db), migrations.SQLite
		}
	}
	if err != nil {
		return nil, nil, fmt.Errorf("%s connect: %w", cfg.Database.Driver, err)
	}

	if _, err := migrations.Up(db, dialect); err != nil {
		db.Close()
		return nil, nil, err
	}
	return db, repo, nil
}
