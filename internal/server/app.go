// Package server wires the configured backends together and runs the HTTP
// API until a termination signal arrives.
package server

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/inkwell/internal/logging"
	"github.com/dmitrijs2005/inkwell/internal/server/assistant"
	"github.com/dmitrijs2005/inkwell/internal/server/blobstore"
	"github.com/dmitrijs2005/inkwell/internal/server/config"
	"github.com/dmitrijs2005/inkwell/internal/server/httpapi"
	"github.com/dmitrijs2005/inkwell/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/inkwell/internal/server/services"
	"golang.org/x/sync/errgroup"
)

type App struct {
	config  *config.Config
	logger  logging.Logger
	repos   repomanager.RepositoryManager
	storage *services.Storage
	http    *httpapi.Server
}

// NewApp opens the storage backend once and builds everything on top of it.
func NewApp(ctx context.Context, c *config.Config, out io.Writer) (*App, error) {
	logger := logging.New(c.LogFormat, c.LogLevel, out)

	repos, err := repomanager.New(ctx, c, logger)
	if err != nil {
		return nil, fmt.Errorf("storage init error: %w", err)
	}

	blobs, uploadDir, err := newBlobStore(ctx, c)
	if err != nil {
		_ = repos.Close()
		return nil, fmt.Errorf("upload store init error: %w", err)
	}

	answerer, err := assistant.New(assistant.Options{APIKey: c.AIAPIKey, BaseURL: c.AIBaseURL, Model: c.AIModel}, logger)
	if err != nil {
		_ = repos.Close()
		return nil, fmt.Errorf("assistant init error: %w", err)
	}
	if c.AIAPIKey == "" {
		logger.Warn(ctx, "no AI API key configured, assistant returns demo answers")
	}

	storage := services.NewStorage(repos, blobs, logger)
	srv := httpapi.NewServer(httpapi.Options{
		Address:           c.HTTPAddr,
		SecretKey:         c.SecretKey,
		AdminPasswordHash: c.AdminPasswordHash,
		TokenValidity:     c.TokenValidityDuration,
		AllowedOrigins:    c.AllowedOrigins,
		MaxUploadBytes:    c.MaxUploadBytes,
		UploadDir:         uploadDir,
		TrustProxyHeaders: c.TrustProxyHeaders,
	}, storage, answerer, logger)

	return &App{config: c, logger: logger, repos: repos, storage: storage, http: srv}, nil
}

// newBlobStore also returns the directory to serve under /uploads/ (empty for s3).
func newBlobStore(ctx context.Context, c *config.Config) (blobstore.Store, string, error) {
	switch c.UploadBackend {
	case config.UploadDisk, "":
		s, err := blobstore.NewDiskStore(c.UploadDir)
		if err != nil {
			return nil, "", err
		}
		return s, s.Dir(), nil
	case config.UploadS3:
		s, err := blobstore.NewS3Store(ctx, blobstore.S3Options{
			AccessKey:     c.S3AccessKey,
			SecretKey:     c.S3SecretKey,
			Region:        c.S3Region,
			Bucket:        c.S3Bucket,
			BaseEndpoint:  c.S3BaseEndpoint,
			PublicBaseURL: c.PublicBaseURL,
		})
		return s, "", err
	default:
		return nil, "", fmt.Errorf("unknown upload backend %q", c.UploadBackend)
	}
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// Run blocks until ctx is cancelled, a signal arrives or the server fails.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...", "backend", app.repos.Backend(), "upload_backend", app.config.UploadBackend)
	app.initSignalHandler(cancelFunc)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return app.http.Run(gctx)
	})

	err := g.Wait()
	if cerr := app.repos.Close(); cerr != nil {
		app.logger.Error(ctx, "closing storage failed", "error", cerr)
	}
	app.logger.Info(ctx, "App stopped")
	return err
}
