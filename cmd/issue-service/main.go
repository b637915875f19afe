package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/k1networth/issue-tracker/internal/issue"
	"github.com/k1networth/issue-tracker/internal/shared/config"
	"github.com/k1networth/issue-tracker/internal/shared/db"
	"github.com/k1networth/issue-tracker/internal/shared/httpx"
	"github.com/k1networth/issue-tracker/internal/shared/logger"
)

const appName = "issue-service"

func main() {
	cfg := config.Load()
	log := logger.New(appName, cfg.AppEnv)

	ctx := context.Background()

	store, err := openStore(ctx, cfg)
	if err != nil {
		log.Error("store_open_failed",
			slog.String("driver", cfg.StoreDriver),
			slog.String("err", err.Error()),
		)
		os.Exit(1)
	}
	log.Info("store_ready", slog.String("driver", cfg.StoreDriver))

	issueH := &issue.Handler{
		Log:   log,
		Store: store,
	}

	reg := prometheus.NewRegistry()
	handler := httpx.NewRouter(log, reg, issueH)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	log.Info("http_listen", slog.String("addr", srv.Addr))

	go func() {
		err := srv.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			log.Error("http_server_error", slog.String("err", err.Error()))
		}
	}()

	httpx.WaitAndShutdown(log, srv, 10*time.Second)
}

func openStore(ctx context.Context, cfg config.Config) (issue.Store, error) {
	switch cfg.StoreDriver {
	case config.DriverPostgres:
		sqlDB, err := db.OpenPostgres(ctx, db.PostgresConfig{
			DatabaseURL:     cfg.DatabaseURL,
			MaxOpenConns:    cfg.DBMaxOpenConns,
			MaxIdleConns:    cfg.DBMaxIdleConns,
			ConnMaxLifetime: cfg.DBConnMaxLifetime,
			PingTimeout:     cfg.DBPingTimeout,
		})
		if err != nil {
			return nil, err
		}
		store := issue.NewPostgresStore(sqlDB)
		if err := store.EnsureSchema(ctx); err != nil {
			return nil, err
		}
		return store, nil

	case config.DriverMemory:
		return issue.NewMemoryStore(), nil

	default:
		sqlDB, err := db.OpenSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		store := issue.NewSQLiteStore(sqlDB)
		if err := store.EnsureSchema(ctx); err != nil {
			return nil, err
		}
		return store, nil
	}
}
