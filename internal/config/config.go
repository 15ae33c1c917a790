// Package config reads storybook settings from the environment.
package config

import (
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/metcalfc/storybook/internal/catalog/sample"
)

// Config holds runtime settings. Command line flags override these.
type Config struct {
	// CatalogDir is a content directory with books.json. Empty selects the
	// built-in sample library.
	CatalogDir  string        `env:"STORYBOOK_CATALOG"`
	LogFile     string        `env:"STORYBOOK_LOG"`
	LogLevel    slog.Level    `env:"STORYBOOK_LOG_LEVEL"    envDefault:"info"`
	LoadTimeout time.Duration `env:"STORYBOOK_LOAD_TIMEOUT" envDefault:"10s"`
	Mouse       bool          `env:"STORYBOOK_MOUSE"        envDefault:"true"`
}

// Load parses the process environment.
func Load() (Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// CatalogFS returns the file system the catalog is read from.
func (c Config) CatalogFS() fs.FS {
	if c.CatalogDir == "" {
		return sample.FS
	}
	return os.DirFS(c.CatalogDir)
}

// NewLogger returns a text logger writing to w at the configured level. A
// nil writer discards everything.
func (c Config) NewLogger(w io.Writer) *slog.Logger {
	if w == nil {
		return slog.New(slog.DiscardHandler)
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: c.LogLevel}))
}
