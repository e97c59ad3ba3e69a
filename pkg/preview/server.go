// Package preview serves a live rendering of the portfolio page. Every request
// reloads the data file and template, so edits show up on refresh without a
// rebuild. It is a single page preview, not a site router.
package preview

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/goliatone/go-portfolio/pkg/orchestrator"
	"github.com/goliatone/go-portfolio/pkg/sitedata"
)

const shutdownTimeout = 5 * time.Second

// Renderer produces the page for a request without writing it to disk.
type Renderer interface {
	Render(ctx context.Context, req orchestrator.Request) ([]byte, error)
}

// NewHandler returns a router serving the rendered page at / and a liveness
// probe at /healthz. req.OutputPath is ignored.
func NewHandler(renderer Renderer, req orchestrator.Request, logger *slog.Logger) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}
	req.OutputPath = ""

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		html, err := renderer.Render(r.Context(), req)
		if err != nil {
			status := http.StatusInternalServerError
			if errors.Is(err, sitedata.ErrNotFound) {
				status = http.StatusNotFound
			}
			logger.Error("preview render failed", "status", status, "error", err)
			http.Error(w, err.Error(), status)
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		if _, err := w.Write(html); err != nil {
			logger.Debug("preview write failed", "error", err)
		}
	})

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})

	return r
}

// Serve listens on addr until ctx is cancelled, then shuts the server down
// gracefully.
func Serve(ctx context.Context, addr string, handler http.Handler, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	logger.Info("preview server listening", "addr", addr)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	logger.Info("preview server stopped")
	return nil
}
