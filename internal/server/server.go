// Package server assembles the walletwise HTTP handler: Connect services
// behind their interceptors, plus health and metrics endpoints.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"connectrpc.com/connect"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/mmynk/walletwise/internal/auth"
	"github.com/mmynk/walletwise/internal/calculator"
	"github.com/mmynk/walletwise/internal/middleware"
	"github.com/mmynk/walletwise/internal/service"
	"github.com/mmynk/walletwise/internal/storage"
	"github.com/mmynk/walletwise/pkg/api/apiconnect"
)

// Options configures NewHandler.
type Options struct {
	Store           storage.Store
	JWTManager      *auth.JWTManager
	Engine          *calculator.Engine
	DefaultCurrency string
	Logger          *slog.Logger
	// Registry receives the RPC metrics and is served on /metrics.
	Registry *prometheus.Registry
}

// NewHandler builds the root HTTP handler. It speaks HTTP/1.1 and h2c.
func NewHandler(opts Options) http.Handler {
	logger := opts.Logger
	metrics := middleware.NewMetrics(opts.Registry)

	// Interceptors run outermost first.
	public := connect.WithInterceptors(
		metrics.Interceptor(),
		middleware.OptionalAuth(opts.JWTManager),
		middleware.LoggingInterceptor(logger),
	)
	private := connect.WithInterceptors(
		metrics.Interceptor(),
		middleware.RequireAuth(opts.JWTManager),
		middleware.LoggingInterceptor(logger),
	)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(requestLogger(logger))
	r.Use(chimw.Recoverer)
	r.Use(cors)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.HandlerFor(opts.Registry, promhttp.HandlerOpts{}))

	authenticator := auth.NewPasswordAuthenticator(opts.Store)
	mount := func(path string, h http.Handler) {
		r.Handle(path+"*", h)
	}
	mount(apiconnect.NewAuthServiceHandler(
		service.NewAuthService(authenticator, opts.JWTManager, opts.Store, logger), public))
	mount(apiconnect.NewCategoryServiceHandler(
		service.NewCategoryService(opts.Store, logger), public))
	mount(apiconnect.NewWalletServiceHandler(
		service.NewWalletService(opts.Store, opts.Engine, opts.DefaultCurrency, logger), private))
	mount(apiconnect.NewTransactionServiceHandler(
		service.NewTransactionService(opts.Store, logger), private))
	mount(apiconnect.NewSettlementServiceHandler(
		service.NewSettlementService(opts.Store, logger), private))

	return h2c.NewHandler(r, &http2.Server{})
}

// Run serves handler on addr until ctx is cancelled, then drains in-flight
// requests for up to shutdownTimeout.
func Run(ctx context.Context, addr string, handler http.Handler, shutdownTimeout time.Duration, logger *slog.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Connect server starting", "address", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down HTTP server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}
