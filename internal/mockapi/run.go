package mockapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/marmota/failboard/internal/logging"
)

// Run serves the API on cfg.Addr until ctx is canceled.
func Run(ctx context.Context, cfg Config, log logging.Logger) error {
	srv, err := New(cfg, WithLogger(log))
	if err != nil {
		return err
	}

	httpSrv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           srv.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info(ctx, "mock api listening", "addr", cfg.Addr, "seed_user", cfg.SeedUsername)
		errCh <- httpSrv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return httpSrv.Shutdown(shutdownCtx)
	}
}
