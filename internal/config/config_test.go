package config

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mroizo75/hmsnova-reportgen/internal/draw"
	"github.com/mroizo75/hmsnova-reportgen/pkg/api"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "reportgen.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func apply(opts []api.Option) api.Options {
	o := api.DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	d := api.DefaultOptions()
	assert.Equal(t, "en", cfg.Language)
	assert.Equal(t, "a4", cfg.Page.Size)
	assert.Equal(t, d.MarginTop, cfg.Page.MarginTop)
	assert.Equal(t, d.ImageTimeout, cfg.Images.Timeout)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "hmsnova-reportgen", cfg.Document.Creator)
}

func TestLoadFile(t *testing.T) {
	// Given a config file with nested sections
	path := writeConfig(t, `
language: "no"
page:
  size: letter
  orientation: landscape
  margin_top: 20
document:
  author: HMS Nova
images:
  timeout: 3s
  concurrency: 2
  search_paths: [/srv/uploads]
  confined: true
  headers:
    Authorization: Bearer tenant-42
theme:
  primary: "#112233"
log:
  level: debug
  format: json
`)

	// When it is loaded
	cfg, err := Load(path)
	require.NoError(t, err)

	// Then every section is decoded
	assert.Equal(t, "no", cfg.Language)
	assert.Equal(t, "letter", cfg.Page.Size)
	assert.Equal(t, 20.0, cfg.Page.MarginTop)
	assert.Equal(t, 3*time.Second, cfg.Images.Timeout)
	assert.Equal(t, 2, cfg.Images.Concurrency)
	assert.Equal(t, []string{"/srv/uploads"}, cfg.Images.SearchPaths)
	assert.True(t, cfg.Images.Confined)
	assert.Equal(t, map[string]string{"authorization": "Bearer tenant-42"}, cfg.Images.Headers)
	assert.Equal(t, "json", cfg.Log.Format)

	o := apply(mustOptions(t, cfg))
	assert.Equal(t, api.PageOrientationLandscape, o.PageOrientation)
	assert.Equal(t, 612.0, o.PageWidth)
	assert.Equal(t, "HMS Nova", o.Author)
	assert.Equal(t, "Side %d av %d", o.Labels.Footer.PageOf)
	assert.Equal(t, draw.Color{R: 0x11, G: 0x22, B: 0x33}, o.Theme.Primary)
	assert.Equal(t, o.Theme.Primary, o.Theme.HeaderFill)
	assert.NotNil(t, o.Fetcher)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "page:\n  size: letter\n")
	t.Setenv("REPORTGEN_PAGE_SIZE", "a4")
	t.Setenv("REPORTGEN_DEBUG", "true")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "a4", cfg.Page.Size)
	assert.True(t, cfg.Debug)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestOptionsErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"page size", func(c *Config) { c.Page.Size = "b5" }},
		{"orientation", func(c *Config) { c.Page.Orientation = "diagonal" }},
		{"language", func(c *Config) { c.Language = "sv" }},
		{"colour", func(c *Config) { c.Theme.StatusOK = "grønn" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load("")
			require.NoError(t, err)
			tt.mutate(cfg)
			_, err = cfg.Options(".")
			assert.Error(t, err)
		})
	}
}

func mustOptions(t *testing.T, cfg *Config) []api.Option {
	t.Helper()
	opts, err := cfg.Options(t.TempDir())
	require.NoError(t, err)
	return opts
}

func TestImageTimeoutBoundsRemoteFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(5 * time.Second):
		}
	}))
	defer srv.Close()

	cfg, err := Load(writeConfig(t, "images:\n  timeout: 50ms\n"))
	require.NoError(t, err)
	opts, err := cfg.Options(t.TempDir())
	require.NoError(t, err)

	o := apply(opts)
	require.NotNil(t, o.Fetcher)

	start := time.Now()
	_, err = o.Fetcher.Fetch(context.Background(), srv.URL+"/slow.png")
	assert.Error(t, err)
	assert.Less(t, time.Since(start), 2*time.Second)
}
