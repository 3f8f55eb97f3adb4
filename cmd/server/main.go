package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/revaya/roicalc/internal/config"
	"github.com/revaya/roicalc/internal/database"
	"github.com/revaya/roicalc/internal/handler/health"
	"github.com/revaya/roicalc/internal/migrations"
	"github.com/revaya/roicalc/internal/report"
	"github.com/revaya/roicalc/internal/server"
	"github.com/revaya/roicalc/internal/session"
	"github.com/revaya/roicalc/internal/submission"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, stdout io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := slog.New(slog.NewJSONHandler(stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))

	policy, err := cfg.Policy()
	if err != nil {
		return err
	}

	// --- SQLite ---
	if cfg.DBPath != database.Memory {
		if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0o755); err != nil {
			return fmt.Errorf("creating database directory: %w", err)
		}
	}
	db, err := database.Open(ctx, cfg.DBPath)
	if err != nil {
		return fmt.Errorf("connecting to sqlite: %w", err)
	}
	defer db.Close()

	applied, err := migrations.Run(ctx, db)
	if err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	logger.Info("connected to sqlite", "path", cfg.DBPath, "migrations_applied", applied)

	checks := map[string]health.Checker{
		"sqlite": database.Checker{DB: db},
	}

	// --- Result sessions ---
	var results session.Store
	if cfg.RedisURL != "" {
		rdb, err := openRedis(ctx, cfg.RedisURL)
		if err != nil {
			return fmt.Errorf("connecting to redis: %w", err)
		}
		defer rdb.Close()

		store := session.NewRedisStore(rdb, cfg.ResultsTTL)
		results = store
		checks["redis"] = store
		logger.Info("connected to redis", "ttl", cfg.ResultsTTL)
	} else {
		results = session.NewMemoryStore(cfg.ResultsTTL)
		logger.Warn("REDIS_URL not set, keeping results in memory")
	}

	// --- Admin ---
	admin := server.NewSQLAdminStore(db)
	if cfg.AdminEmail != "" && cfg.AdminPasswordHash != "" {
		if err := admin.EnsureAdmin(ctx, cfg.AdminEmail, cfg.AdminPasswordHash); err != nil {
			return err
		}
		logger.Info("admin account ready", "email", cfg.AdminEmail)
	}

	// --- Leads ---
	broker := server.NewBroker()
	submissions := submission.NewStore(db)
	dispatcher := submission.NewDispatcher(submissions, logger, cfg.SubmitTimeout)
	dispatcher.OnEvent(server.PublishLeads(broker))

	// --- Reports ---
	renderer := report.NewChromiumRenderer(cfg.ChromePath, cfg.ReportTimeout)
	if !renderer.Available() {
		logger.Warn("no chromium binary found, pdf export disabled")
	}

	// --- HTTP Server ---
	srv := server.New(cfg.HTTPAddr, server.Deps{
		Logger:         logger,
		Policy:         policy,
		Results:        results,
		Leads:          dispatcher,
		Lister:         submissions,
		Renderer:       renderer,
		Admin:          admin,
		Broker:         broker,
		Health:         checks,
		SPADir:         cfg.SPADir,
		FrameAncestors: cfg.FrameAncestors,
	})

	// --- Run ---
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("starting http server", "addr", cfg.HTTPAddr)
		return srv.Run(gctx)
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down http server")
		if err := srv.Shutdown(context.Background()); err != nil {
			return err
		}

		drainCtx, cancel := context.WithTimeout(context.Background(), cfg.SubmitTimeout+5*time.Second)
		defer cancel()
		if err := dispatcher.Wait(drainCtx); err != nil {
			logger.Error("pending submissions dropped", "error", err)
		}
		return nil
	})

	return g.Wait()
}

func openRedis(ctx context.Context, rawURL string) (*redis.Client, error) {
	opt, err := redis.ParseURL(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parsing redis url: %w", err)
	}
	rdb := redis.NewClient(opt)
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("pinging redis: %w", err)
	}
	return rdb, nil
}
