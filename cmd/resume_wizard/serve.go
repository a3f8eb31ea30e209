package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-wizard/internal/blobstore"
	"github.com/jonathan/resume-wizard/internal/config"
	"github.com/jonathan/resume-wizard/internal/db"
	"github.com/jonathan/resume-wizard/internal/handoff"
	"github.com/jonathan/resume-wizard/internal/logging"
	"github.com/jonathan/resume-wizard/internal/server"
	"github.com/jonathan/resume-wizard/internal/settings"
)

var (
	serveConfigPath string
	servePort       int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that hosts wizard sessions: resume upload, section editing, selection mapping and completion.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVarP(&serveConfigPath, "config", "c", "", "Path to a JSON or YAML config file")
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides config and PORT)")
	rootCmd.AddCommand(serveCmd)
}

// backends holds the stores chosen by configuration and closes them together.
type backends struct {
	db        *db.DB
	settings  settings.Store
	blobs     blobstore.Store
	publisher handoff.Publisher
}

func (b *backends) Close() {
	if b.publisher != nil {
		_ = b.publisher.Close()
	}
	if b.settings != nil {
		_ = b.settings.Close()
	}
	if b.db != nil {
		b.db.Close()
	}
}

// needsPostgres reports whether any backend is stored in PostgreSQL.
func needsPostgres(cfg config.Config) bool {
	return cfg.Settings.Backend == config.BackendPostgres || cfg.Handoff.Backend == config.BackendPostgres
}

// openBackends connects every store named by cfg. On error, whatever was
// already opened is closed.
func openBackends(ctx context.Context, cfg config.Config, logger *slog.Logger) (b *backends, err error) {
	b = &backends{}
	defer func() {
		if err != nil {
			b.Close()
			b = nil
		}
	}()

	if needsPostgres(cfg) {
		if cfg.DatabaseURL == "" {
			return nil, errors.New("DATABASE_URL is required for the postgres backends")
		}
		if b.db, err = db.Connect(ctx, cfg.DatabaseURL); err != nil {
			return nil, err
		}
		if err = b.db.Migrate(ctx); err != nil {
			return nil, err
		}
	}

	switch cfg.Settings.Backend {
	case config.BackendMemory:
		b.settings = settings.NewMemory()
	case config.BackendSQLite:
		store, err := settings.OpenSQLite(ctx, cfg.Settings.SQLitePath)
		if err != nil {
			return nil, err
		}
		b.settings = store
	case config.BackendPostgres:
		b.settings = settings.NewPostgres(b.db)
	default:
		return nil, fmt.Errorf("unknown settings backend %q", cfg.Settings.Backend)
	}

	switch cfg.Blob.Backend {
	case config.BackendMemory:
		b.blobs = blobstore.NewMemory()
	case config.BackendFS:
		store, err := blobstore.NewFS(cfg.Blob.Dir)
		if err != nil {
			return nil, err
		}
		b.blobs = store
	case config.BackendS3:
		store, err := blobstore.NewS3(ctx, blobstore.S3Options{
			Bucket:    cfg.Blob.Bucket,
			Region:    cfg.Blob.Region,
			Endpoint:  cfg.Blob.Endpoint,
			AccessKey: cfg.Blob.AccessKey,
			SecretKey: cfg.Blob.SecretKey,
			PathStyle: cfg.Blob.PathStyle,
		})
		if err != nil {
			return nil, err
		}
		b.blobs = store
	default:
		return nil, fmt.Errorf("unknown blob backend %q", cfg.Blob.Backend)
	}

	switch cfg.Handoff.Backend {
	case config.BackendLog:
		b.publisher = handoff.NewLog(logger)
	case config.BackendAMQP:
		pub, err := handoff.DialAMQP(cfg.Handoff.AMQPURL, cfg.Handoff.Queue)
		if err != nil {
			return nil, err
		}
		b.publisher = pub
	case config.BackendPostgres:
		b.publisher = handoff.NewPostgres(b.db, logger)
	default:
		return nil, fmt.Errorf("unknown handoff backend %q", cfg.Handoff.Backend)
	}

	return b, nil
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load(serveConfigPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if servePort != 0 {
		cfg.Port = servePort
	}

	logger := logging.Setup(logging.Options{Format: cfg.LogFormat, Level: cfg.LogLevel})

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	b, err := openBackends(ctx, cfg, logger)
	cancel()
	if err != nil {
		return fmt.Errorf("failed to open backends: %w", err)
	}
	defer b.Close()

	logger.Info("backends ready",
		slog.String("settings", cfg.Settings.Backend),
		slog.String("blob", cfg.Blob.Backend),
		slog.String("handoff", cfg.Handoff.Backend),
	)

	srv, err := server.New(server.Config{
		Port:           cfg.Port,
		Logger:         logger,
		Blobs:          b.blobs,
		Settings:       b.settings,
		Publisher:      b.publisher,
		MaxUploadBytes: cfg.MaxUploadBytes,
		AutosaveDelay:  cfg.AutosaveDelay.D(),
		MilestoneTTL:   cfg.MilestoneTTL.D(),
		ErrorTTL:       cfg.ErrorTTL.D(),
		IdleTTL:        cfg.SessionIdleTTL.D(),
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}
