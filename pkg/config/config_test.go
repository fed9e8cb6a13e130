package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/matzehuels/orgcanvas/pkg/errors"
)

func TestParse_Defaults(t *testing.T) {
	cfg, err := Parse([]byte(""))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if cfg.Store.Backend != BackendFile {
		t.Errorf("backend = %q, want file default", cfg.Store.Backend)
	}
	if cfg.Render.Format != "svg" || cfg.Render.Width != 1200 || cfg.Render.Height != 800 {
		t.Errorf("render defaults = %+v", cfg.Render)
	}
	if cfg.Serve.Addr != ":8080" {
		t.Errorf("serve addr = %q, want :8080", cfg.Serve.Addr)
	}
}

func TestParse_Overrides(t *testing.T) {
	doc := `
[store]
backend = "redis"

[store.redis]
addr = "localhost:6379"
db = 2

[render]
format = "png"
width = 1920
height = 1080
`
	cfg, err := Parse([]byte(doc))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if cfg.Store.Backend != BackendRedis || cfg.Store.Redis.Addr != "localhost:6379" || cfg.Store.Redis.DB != 2 {
		t.Errorf("store = %+v", cfg.Store)
	}
	if cfg.Render.Format != "png" || cfg.Render.Width != 1920 {
		t.Errorf("render = %+v", cfg.Render)
	}
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"unknown backend", `[store]` + "\n" + `backend = "sqlite"`},
		{"unknown format", `[render]` + "\n" + `format = "pdf"`},
		{"redis without addr", `[store]` + "\n" + `backend = "redis"`},
		{"mongo without uri", `[store]` + "\n" + `backend = "mongo"`},
		{"bad toml", `store = [`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			if !errors.Is(err, errors.ErrCodeInvalidConfig) {
				t.Errorf("Parse() error = %v, want invalid_config code", err)
			}
		})
	}
}

func TestLoad_MissingFileFallsBackToDefaults(t *testing.T) {
	t.Setenv("ORGCANVAS_CONFIG", filepath.Join(t.TempDir(), "nope.toml"))
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Store.Backend != BackendFile {
		t.Errorf("backend = %q, want file default", cfg.Store.Backend)
	}
}

func TestLoad_ExplicitMissingFileIsError(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Error("Load() with missing explicit path succeeded")
	}
}

func TestLoad_ReadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`[serve]`+"\n"+`addr = ":9090"`), 0600); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Serve.Addr != ":9090" {
		t.Errorf("addr = %q, want :9090", cfg.Serve.Addr)
	}
}
