package config

import (
	"bytes"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"STORYBOOK_CATALOG", "STORYBOOK_LOG", "STORYBOOK_LOG_LEVEL", "STORYBOOK_LOAD_TIMEOUT", "STORYBOOK_MOUSE"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}

	cfg, err := Load()
	require.NoError(t, err)
	assert.Empty(t, cfg.CatalogDir)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.Equal(t, 10*time.Second, cfg.LoadTimeout)
	assert.True(t, cfg.Mouse)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("STORYBOOK_CATALOG", "/srv/books")
	t.Setenv("STORYBOOK_LOG", "/tmp/storybook.log")
	t.Setenv("STORYBOOK_LOG_LEVEL", "debug")
	t.Setenv("STORYBOOK_LOAD_TIMEOUT", "250ms")
	t.Setenv("STORYBOOK_MOUSE", "false")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "/srv/books", cfg.CatalogDir)
	assert.Equal(t, "/tmp/storybook.log", cfg.LogFile)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.Equal(t, 250*time.Millisecond, cfg.LoadTimeout)
	assert.False(t, cfg.Mouse)
}

func TestLoadInvalid(t *testing.T) {
	t.Setenv("STORYBOOK_LOAD_TIMEOUT", "soon")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse env")
}

func TestCatalogFS(t *testing.T) {
	_, err := fs.Stat(Config{}.CatalogFS(), "books.json")
	assert.NoError(t, err, "sample library should provide books.json")

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "books.json"), []byte("[]"), 0644))
	data, err := fs.ReadFile(Config{CatalogDir: dir}.CatalogFS(), "books.json")
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := Config{LogLevel: slog.LevelWarn}.NewLogger(&buf)

	logger.Info("hidden")
	logger.Warn("shown", slog.String("book", "ocean-friends"))

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "msg=shown book=ocean-friends")

	Config{}.NewLogger(nil).Error("discarded")
}
