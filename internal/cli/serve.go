package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/mindmap/pkg/api"
	"github.com/matzehuels/mindmap/pkg/cache"
	"github.com/matzehuels/mindmap/pkg/observability"
	"github.com/matzehuels/mindmap/pkg/pipeline"
)

// redisAddrEnv supplies --redis when the flag is not given.
const redisAddrEnv = "MINDMAP_REDIS_ADDR"

type serveOpts struct {
	addr          string
	redisAddr     string
	redisPassword string
	redisDB       int
	origins       []string
	noCache       bool
	timeout       time.Duration
}

// serveCommand runs the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var opts serveOpts

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the layout API over HTTP",
		Long: `Serve the layout API over HTTP.

Routes: GET /healthz, POST /v1/layout, POST /v1/render?format=svg|png|json|dot.

Layouts and artifacts are cached in Redis when --redis (or ` + redisAddrEnv + `)
is set, and in the local cache directory otherwise.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.redisAddr == "" {
				opts.redisAddr = os.Getenv(redisAddrEnv)
			}
			return c.runServe(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", api.DefaultAddr, "listen address")
	cmd.Flags().StringVar(&opts.redisAddr, "redis", "", "Redis address for the shared cache (host:port)")
	cmd.Flags().StringVar(&opts.redisPassword, "redis-password", "", "Redis password")
	cmd.Flags().IntVar(&opts.redisDB, "redis-db", 0, "Redis database number")
	cmd.Flags().StringSliceVar(&opts.origins, "cors-origin", nil, "allowed CORS origins (default any)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", api.DefaultTimeout, "per-request timeout")
	return cmd
}

func (c *CLI) runServe(ctx context.Context, opts serveOpts) error {
	store, err := c.serveCache(ctx, opts)
	if err != nil {
		return err
	}
	runner := pipeline.NewRunner(store, nil, c.Logger)
	defer runner.Close()

	observability.NewLogHooks(c.Logger).Install()
	defer observability.Reset()

	cfg := api.Config{Addr: opts.addr, AllowedOrigins: opts.origins, Timeout: opts.timeout}
	srv := api.NewServer(api.NewRouter(runner, c.Logger, cfg), cfg)

	errCh := make(chan error, 1)
	go func() {
		c.Logger.Info("listening", "addr", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	c.Logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// serveCache picks Redis when an address is configured, otherwise the local
// file cache.
func (c *CLI) serveCache(ctx context.Context, opts serveOpts) (cache.Cache, error) {
	if opts.noCache {
		return cache.NewNullCache(), nil
	}
	if opts.redisAddr == "" {
		return c.newCache(false), nil
	}
	rc, err := cache.NewRedisCache(ctx, cache.RedisConfig{
		Addr:     opts.redisAddr,
		Password: opts.redisPassword,
		DB:       opts.redisDB,
	})
	if err != nil {
		return nil, fmt.Errorf("connect cache: %w", err)
	}
	c.Logger.Info("using redis cache", "addr", opts.redisAddr)
	return rc, nil
}
