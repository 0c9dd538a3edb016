package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/marmota/failboard/internal/buildinfo"
	"github.com/marmota/failboard/internal/client/board"
	"github.com/marmota/failboard/internal/client/cli"
	"github.com/marmota/failboard/internal/client/config"
	"github.com/marmota/failboard/internal/client/httpx"
	"github.com/marmota/failboard/internal/client/metrics"
	"github.com/marmota/failboard/internal/client/services"
	"github.com/marmota/failboard/internal/client/session"
	"github.com/marmota/failboard/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	cfg, err := config.LoadConfig(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	log := logging.New(os.Stderr, cfg.LogLevel, cfg.LogFormat)

	store, db, err := openSession(ctx, cfg)
	if err != nil {
		return err
	}
	if db != nil {
		defer db.Close()
	}

	m := metrics.New()
	reg := prometheus.NewRegistry()
	if err := m.Register(reg); err != nil {
		return fmt.Errorf("register metrics: %w", err)
	}
	if cfg.MetricsAddr != "" {
		go func() {
			if err := metrics.Serve(ctx, cfg.MetricsAddr, reg, log); err != nil {
				log.Error(ctx, "metrics endpoint stopped", "error", err)
			}
		}()
	}

	api := httpx.New(cfg.HTTP(), store, httpx.WithLogger(log), httpx.WithMetrics(m))

	b := board.New(services.NewFailureService(api), board.WithLogger(log))
	app := cli.NewApp(
		services.NewAuthService(api, store),
		services.NewUserService(api),
		b,
		cli.WithLogger(log),
	)
	api.SetNavigator(app)

	log.Debug(ctx, "starting shell", "base_url", api.BaseURL(), "session_db", cfg.SessionDB)
	app.Run(ctx)
	return nil
}

func openSession(ctx context.Context, cfg *config.Config) (*session.Store, *sql.DB, error) {
	opts := []session.Option{session.WithTTL(cfg.TokenTTL)}
	if cfg.SessionDB == config.MemorySessionDB {
		return session.NewMemory(opts...), nil, nil
	}
	store, db, err := session.Open(ctx, cfg.SessionDB, opts...)
	if err != nil {
		return nil, nil, fmt.Errorf("open session %s: %w", cfg.SessionDB, err)
	}
	return store, db, nil
}
