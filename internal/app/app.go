package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/five82/shelf/internal/config"
	"github.com/five82/shelf/internal/library"
	"github.com/five82/shelf/internal/prefs"
	"github.com/five82/shelf/internal/state"
	"github.com/five82/shelf/internal/ui"
)

// Options configure the dashboard. Non-zero values override the config file.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/shelf/prefs.toml
	APIURL     string
	PollEvery  int // seconds; zero keeps the configured refresh_seconds
}

// Run boots the dashboard until the user quits or the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	applyOverrides(&cfg, opts)

	logger, closeLog, err := openLogger(cfg.LogFile)
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	defer closeLog()

	client, err := library.NewClient(cfg.APIURL, cfg.RequestTimeout)
	if err != nil {
		return fmt.Errorf("init api client: %w", err)
	}
	logger.Info("shelf starting", "api", client.BaseURL(), "refresh", cfg.RefreshInterval)

	store := state.NewStore(client, logger)

	if cfg.RefreshInterval > 0 {
		StartPoller(ctx, store, cfg.RefreshInterval, logger)
	}

	userPrefs := prefs.Load(opts.PrefsPath)

	return ui.Run(ui.Options{
		Context:   ctx,
		Client:    client,
		Store:     store,
		Logger:    logger,
		LogFile:   cfg.LogFile,
		APIURL:    client.BaseURL(),
		ThemeName: userPrefs.Theme,
		PrefsPath: opts.PrefsPath,
	})
}

func applyOverrides(cfg *config.Config, opts Options) {
	if opts.APIURL != "" {
		cfg.APIURL = opts.APIURL
	}
	if opts.PollEvery > 0 {
		cfg.RefreshInterval = time.Duration(opts.PollEvery) * time.Second
	}
}

// openLogger writes slog text records to path, creating its directory.
// An empty path discards log output.
func openLogger(path string) (*slog.Logger, func(), error) {
	if path == "" {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), func() {}, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, err
	}
	handler := slog.NewTextHandler(file, &slog.HandlerOptions{Level: slog.LevelDebug})
	return slog.New(handler), func() { _ = file.Close() }, nil
}
