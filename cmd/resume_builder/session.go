package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/jonathan/resume-builder/internal/config"
	"github.com/jonathan/resume-builder/internal/content"
	"github.com/jonathan/resume-builder/internal/editor"
	"github.com/jonathan/resume-builder/internal/export"
	"github.com/jonathan/resume-builder/internal/observability"
	"github.com/jonathan/resume-builder/internal/storage"
)

// Persistent flags shared by every command
var (
	rootConfigPath  string
	rootContentDir  string
	rootStore       string
	rootStatePath   string
	rootDatabaseURL string
	rootVerbose     bool
)

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&rootConfigPath, "config", "", "Path to a JSON or YAML config file (values can be overridden by other flags)")
	flags.StringVarP(&rootContentDir, "content", "c", "", "Directory holding experience/, projects/, education/ and skills/ (default \"resume-points\")")
	flags.StringVar(&rootStore, "store", "", "State backend: memory, file, badger or postgres (default \"file\")")
	flags.StringVar(&rootStatePath, "state", "", "State file (file store) or directory (badger store)")
	flags.StringVar(&rootDatabaseURL, "db-url", "", "PostgreSQL URL for the postgres store (defaults to RESUME_DATABASE_URL or DATABASE_URL)")
	flags.BoolVarP(&rootVerbose, "verbose", "v", false, "Enable debug logging")
}

// loadConfig reads the config file, applies flag overrides and fills in defaults
func loadConfig() (config.Config, error) {
	var cfg config.Config
	if rootConfigPath != "" {
		loaded, err := config.LoadConfig(rootConfigPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = *loaded
	}

	// Override with CLI flags (flags take precedence)
	if rootContentDir != "" {
		cfg.ContentDir = rootContentDir
	}
	if rootStore != "" {
		cfg.Store = rootStore
	}
	if rootStatePath != "" {
		cfg.StatePath = rootStatePath
	}
	if rootDatabaseURL != "" {
		cfg.DatabaseURL = rootDatabaseURL
	}
	if rootVerbose {
		cfg.Verbose = true
	}

	cfg = cfg.MergeWithDefaults(config.Defaults())
	cfg.ApplyEnv()
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// session bundles what a command needs to work on the persisted resume
type session struct {
	cfg    config.Config
	logger zerolog.Logger
	store  storage.Store
	editor *editor.Editor
}

// openSession loads the config, opens the state store and restores the editor
func openSession(ctx context.Context) (*session, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	logger := observability.NewLogger(os.Stderr, cfg.Verbose)

	store, err := storage.Open(ctx, storage.Options{
		Backend:     cfg.Store,
		Path:        cfg.ResolvedStatePath(),
		DatabaseURL: cfg.DatabaseURL,
		Logger:      logger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open state store: %w", err)
	}

	logger.Debug().Str("content", cfg.ContentDir).Str("store", cfg.Store).Msg("opening session")

	ed, err := editor.New(ctx, content.DirLoader{Root: cfg.ContentDir}, store, editor.Options{
		Logger:  logger,
		Contact: cfg.Contact(),
	})
	if err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to load resume content: %w", err)
	}

	return &session{cfg: cfg, logger: logger, store: store, editor: ed}, nil
}

func (s *session) Close() {
	if err := s.store.Close(); err != nil {
		s.logger.Warn().Err(err).Msg("failed to close state store")
	}
}

// exporter builds the configured PDF exporter, letting name override the config
func (s *session) exporter(name string) (export.Exporter, error) {
	if name == "" {
		name = s.cfg.Exporter
	}
	return export.New(name, export.Options{
		ChromePath: s.cfg.ChromePath,
		Timeout:    s.cfg.ExportTimeout(),
	})
}
