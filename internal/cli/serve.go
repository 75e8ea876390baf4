package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/tillvoss/mindweave/internal/server"
	"github.com/tillvoss/mindweave/pkg/cache"
	"github.com/tillvoss/mindweave/pkg/pipeline"
)

// shutdownTimeout bounds graceful shutdown of in-flight requests.
const shutdownTimeout = 10 * time.Second

// serveCommand creates the serve command for running the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		configPath string
		port       int
		redisURL   string
		allowAll   bool
		noCache    bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the layout pipeline as an HTTP service",
		Long: `Run the layout pipeline as an HTTP service.

The serve command exposes the parse/layout/render pipeline over HTTP:

  GET  /healthz              liveness check
  POST /api/v1/scene         markdown in, laid-out scene JSON out
  POST /api/v1/render        markdown in, rendered artifact out

Caching uses Redis when --redis-url is set, otherwise the local file cache.
Flags override values from the config file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("port") && cfg.Server.Port != 0 {
				port = cfg.Server.Port
			}
			if !cmd.Flags().Changed("redis-url") && cfg.Server.RedisURL != "" {
				redisURL = cfg.Server.RedisURL
			}
			if !cmd.Flags().Changed("allow-all-origins") {
				allowAll = cfg.Server.AllowAllOrigins
			}
			return c.runServe(cmd.Context(), port, redisURL, allowAll, noCache)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "config file (default: mindweave.toml if present)")
	cmd.Flags().IntVarP(&port, "port", "p", defaultServePort, "port to listen on")
	cmd.Flags().StringVar(&redisURL, "redis-url", "", "redis URL for shared caching (e.g. redis://localhost:6379/0)")
	cmd.Flags().BoolVar(&allowAll, "allow-all-origins", false, "allow all CORS origins")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

// runServe starts the HTTP server and blocks until ctx is cancelled.
func (c *CLI) runServe(ctx context.Context, port int, redisURL string, allowAll, noCache bool) error {
	store, err := c.serveCache(ctx, redisURL, noCache)
	if err != nil {
		return err
	}
	runner := pipeline.NewRunner(store, nil, c.Logger)
	defer runner.Close()

	srv := server.New(server.Config{Port: port, AllowAll: allowAll}, runner, c.Logger)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	c.Logger.Info("server started", "port", port)
	printSuccess("Listening on http://localhost:%d", port)
	printDetail("Press Ctrl+C to stop")

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	c.Logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// serveCache picks the cache backend for the server: Redis when a URL is
// given, otherwise the local file cache.
func (c *CLI) serveCache(ctx context.Context, redisURL string, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	if redisURL != "" {
		store, err := cache.NewRedisCache(ctx, redisURL)
		if err != nil {
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		c.Logger.Info("using redis cache")
		return store, nil
	}
	return newCache(false)
}
