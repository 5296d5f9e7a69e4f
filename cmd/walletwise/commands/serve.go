package commands

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/mmynk/walletwise/internal/auth"
	"github.com/mmynk/walletwise/internal/calculator"
	"github.com/mmynk/walletwise/internal/server"
)

func serveCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the Connect API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = cfg.Addr
			}
			if cfg.EphemeralSecret {
				slog.Warn("JWT_SECRET is not set, using a random secret; sessions end on restart")
			}

			store, err := openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			if err := seedCategories(cmd.Context(), store); err != nil {
				return err
			}

			registry := prometheus.NewRegistry()
			registry.MustRegister(
				collectors.NewGoCollector(),
				collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			)

			handler := server.NewHandler(server.Options{
				Store:           store,
				JWTManager:      auth.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL),
				Engine:          calculator.NewEngine(cfg.Balance),
				DefaultCurrency: cfg.DefaultCurrency,
				Logger:          slog.Default(),
				Registry:        registry,
			})

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return server.Run(ctx, addr, handler, cfg.ShutdownTimeout, slog.Default())
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from ADDR, :8080)")
	return cmd
}
