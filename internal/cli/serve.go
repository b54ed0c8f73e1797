package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/deckgrid/deckgrid/internal/server"
	"github.com/deckgrid/deckgrid/pkg/cache"
	"github.com/deckgrid/deckgrid/pkg/pipeline"
)

// serveCommand creates the serve command for running the HTTP service.
func (c *CLI) serveCommand() *cobra.Command {
	var opts serveOptions

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the layout engine as an HTTP service",
		Long: `Run the layout engine as an HTTP service.

The server exposes POST /v1/decks/layout for composing manifests and the
scheme catalog under /v1/schemes. Composed documents are cached by manifest
hash; with --redis-addr the cache is shared across instances.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.Addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVar(&opts.RedisAddr, "redis-addr", "", "Redis address for a shared layout cache")
	cmd.Flags().StringVar(&opts.MongoURI, "mongo-uri", "", "MongoDB connection string for the scheme catalog")
	cmd.Flags().StringVar(&opts.LabelsURL, "labels-url", "", "annotation label service URL (default: local formatting)")
	cmd.Flags().BoolVar(&opts.NoCache, "no-cache", false, "disable the layout cache")

	return cmd
}

type serveOptions struct {
	Addr      string
	RedisAddr string
	MongoURI  string
	LabelsURL string
	NoCache   bool
}

// runServe wires the runner, catalog store, and router, then serves until
// the context is cancelled.
func (c *CLI) runServe(ctx context.Context, opts serveOptions) error {
	layoutCache, err := c.serveCache(ctx, opts)
	if err != nil {
		return err
	}
	defer layoutCache.Close()

	runner := pipeline.NewRunner(
		cache.WithHooks(layoutCache, "layout"),
		nil,
		newLabelEngine(opts.LabelsURL, layoutCache, c.Logger),
		c.Logger,
	)

	store, cleanup, err := c.openStore(ctx, opts.MongoURI)
	if err != nil {
		return err
	}
	defer cleanup()

	httpSrv := &http.Server{
		Addr:              opts.Addr,
		Handler:           server.New(runner, store, c.Logger).Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpSrv.ListenAndServe()
	}()
	c.Logger.Info("layout service listening", "addr", opts.Addr)

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		<-errCh
		c.Logger.Info("layout service stopped")
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// serveCache selects the server's layout cache backend.
func (c *CLI) serveCache(ctx context.Context, opts serveOptions) (cache.Cache, error) {
	if opts.NoCache {
		return cache.NewNullCache(), nil
	}
	if opts.RedisAddr != "" {
		rc, err := cache.NewRedisCache(ctx, cache.RedisConfig{Addr: opts.RedisAddr})
		if err != nil {
			return nil, fmt.Errorf("connect to layout cache: %w", err)
		}
		return rc, nil
	}
	return newCache(false), nil
}
