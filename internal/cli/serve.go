package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/schemavis/schemavis/internal/server"
	"github.com/schemavis/schemavis/pkg/cache"
	"github.com/schemavis/schemavis/pkg/pipeline"
	"github.com/schemavis/schemavis/pkg/store"
)

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	addr         string
	storeBackend string // "file" or "mongo"
	storeDir     string
	mongoURI     string
	mongoDB      string
	cacheBackend string // "file", "redis", or "none"
	redisURL     string
	theme        string
}

// serveCommand creates the serve command hosting documents and diagrams
// over HTTP.
func (c *CLI) serveCommand() *cobra.Command {
	opts := serveOpts{
		addr:         ":8080",
		storeBackend: "file",
		cacheBackend: "file",
		mongoDB:      appName,
	}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve schema documents and diagrams over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), &opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", opts.addr, "listen address")
	cmd.Flags().StringVar(&opts.storeBackend, "store", opts.storeBackend, "document store backend: file (default), mongo")
	cmd.Flags().StringVar(&opts.storeDir, "store-dir", "", "directory for the file store (default ~/.config/schemavis/documents)")
	cmd.Flags().StringVar(&opts.mongoURI, "mongo-uri", "mongodb://localhost:27017", "MongoDB connection URI")
	cmd.Flags().StringVar(&opts.mongoDB, "mongo-db", opts.mongoDB, "MongoDB database name")
	cmd.Flags().StringVar(&opts.cacheBackend, "cache", opts.cacheBackend, "artifact cache backend: file (default), redis, none")
	cmd.Flags().StringVar(&opts.redisURL, "redis-url", "redis://localhost:6379/0", "Redis connection URL")
	cmd.Flags().StringVar(&opts.theme, "theme", "", "TOML theme file")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, opts *serveOpts) error {
	style, err := loadTheme(opts.theme)
	if err != nil {
		return err
	}

	st, err := newDocumentStore(ctx, opts)
	if err != nil {
		return err
	}
	defer st.Close()

	cch, err := newServeCache(ctx, opts)
	if err != nil {
		return err
	}
	runner := pipeline.NewRunner(cch, nil, c.Logger)
	defer runner.Close()

	srv := server.New(runner, st, c.Logger, server.WithStyle(style))
	httpServer := &http.Server{
		Addr:              opts.addr,
		Handler:           srv.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = httpServer.Shutdown(shutdownCtx)
	}()

	c.Logger.Info("serving", "addr", opts.addr, "store", opts.storeBackend, "cache", opts.cacheBackend)
	if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// newDocumentStore constructs the document store backend.
func newDocumentStore(ctx context.Context, opts *serveOpts) (store.Store, error) {
	switch opts.storeBackend {
	case "file":
		return store.NewFileStore(opts.storeDir)
	case "mongo":
		return store.NewMongoStore(ctx, opts.mongoURI, opts.mongoDB)
	default:
		return nil, fmt.Errorf("invalid store backend: %q (must be 'file' or 'mongo')", opts.storeBackend)
	}
}

// newServeCache constructs the artifact cache backend.
func newServeCache(ctx context.Context, opts *serveOpts) (cache.Cache, error) {
	switch opts.cacheBackend {
	case "none":
		return cache.NewNullCache(), nil
	case "file":
		dir, err := cacheDir()
		if err != nil {
			return cache.NewNullCache(), nil
		}
		return cache.NewFileCache(dir)
	case "redis":
		return cache.NewRedisCache(ctx, opts.redisURL)
	default:
		return nil, fmt.Errorf("invalid cache backend: %q (must be 'file', 'redis', or 'none')", opts.cacheBackend)
	}
}
