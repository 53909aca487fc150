package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aretw0/tessera"
	httpAdapter "github.com/aretw0/tessera/pkg/adapters/http"
	"github.com/aretw0/tessera/pkg/adapters/memory"
	"github.com/aretw0/tessera/pkg/adapters/redis"
	"github.com/aretw0/tessera/pkg/observability"
	"github.com/aretw0/tessera/pkg/ports"
	"github.com/aretw0/tessera/pkg/session"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long: `Serves named diagrams over a JSON API with live updates over SSE.
Diagrams live in this process's memory. With redis.addr set, each diagram
operation also holds a Redis lock on the diagram key. The lock only gives
mutual exclusion per key; replicas do not share diagram state.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := setup(cmd)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("port") {
			cfg.Server.Port, _ = cmd.Flags().GetInt("port")
		}
		if addr, _ := cmd.Flags().GetString("redis"); addr != "" {
			cfg.Redis.Addr = addr
		}

		metrics, err := observability.NewMetrics(prometheus.DefaultRegisterer)
		if err != nil {
			return err
		}
		streams := httpAdapter.NewStreamManager(logger)

		factory := func(id string) ports.Diagram {
			return tessera.New(
				tessera.WithName(id),
				tessera.WithLogger(logger),
				tessera.WithLayout(cfg.Layout),
				tessera.WithRemovalPolicy(cfg.RemovalPolicy()),
				tessera.WithLifecycleHooks(metrics.Hooks()),
			)
		}

		sessionOpts := []session.Option{
			session.WithLogger(logger),
			session.WithListener(streams.Publish),
		}
		if cfg.Redis.Addr != "" {
			dialCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			client, err := redis.Dial(dialCtx, cfg.Redis.Addr)
			cancel()
			if err != nil {
				return err
			}
			defer client.Close()

			sessionOpts = append(sessionOpts,
				session.WithLocker(redis.NewLocker(client, cfg.Redis.Prefix)),
				session.WithLockTTL(cfg.Redis.LockTTL),
			)
			logger.Info("Distributed locking enabled", "redis", cfg.Redis.Addr)
		}
		manager := session.NewManager(memory.NewStore(), factory, sessionOpts...)

		handler := httpAdapter.NewHandler(manager,
			httpAdapter.WithStreams(streams),
			httpAdapter.WithMetricsHandler(metrics.Handler()),
			httpAdapter.WithDeleteHook(metrics.Forget),
			httpAdapter.WithLogger(logger),
		)

		srv := &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		}

		// Channel to listen for errors coming from the listener.
		serverErrors := make(chan error, 1)

		go func() {
			logger.Info("Starting Tessera Server", "addr", srv.Addr, "policy", cfg.Policy)
			serverErrors <- srv.ListenAndServe()
		}()

		// Channel to listen for interrupt or terminate signals.
		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

		// Blocking main and waiting for shutdown.
		select {
		case err := <-serverErrors:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return fmt.Errorf("server error: %w", err)

		case sig := <-shutdown:
			logger.Info("Start shutdown", "signal", sig)

			// Give outstanding requests a deadline for completion.
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			// Asking listener to shut down and shed load.
			if err := srv.Shutdown(ctx); err != nil {
				logger.Error("Graceful shutdown did not complete", "timeout", 5*time.Second, "err", err)
				if err := srv.Close(); err != nil {
					return fmt.Errorf("error killing server: %w", err)
				}
			}
			logger.Info("Tessera Server stopped gracefully")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().IntP("port", "p", 8080, "Port to listen on (overrides server.port)")
	serveCmd.Flags().String("redis", "", "Redis address for distributed locking (overrides redis.addr)")
}
