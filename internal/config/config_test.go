package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != defaultPort {
		t.Errorf("port = %d, want %d", cfg.Port, defaultPort)
	}
	if !cfg.IsDev() {
		t.Error("default env should be development")
	}
	if cfg.Database.Path != defaultDBPath {
		t.Errorf("db path = %q", cfg.Database.Path)
	}
	if cfg.Upload.Backend != UploadBackendLocal {
		t.Errorf("upload backend = %q", cfg.Upload.Backend)
	}
	if cfg.TokenTTL() != defaultTokenTTL {
		t.Errorf("ttl = %v", cfg.TokenTTL())
	}
	if cfg.Comments.AllowGuest {
		t.Error("guest commenting must default to off")
	}
}

func TestLoadFileOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	raw := `
port: 8080
env: production
jwt_secret: topsecret
token_ttl_hours: 2
upload:
  backend: INLINE
  max_size_mb: 2
comments:
  allow_guest: true
`
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != 8080 || cfg.IsDev() {
		t.Errorf("port=%d dev=%v", cfg.Port, cfg.IsDev())
	}
	if cfg.TokenTTL() != 2*time.Hour {
		t.Errorf("ttl = %v, want 2h", cfg.TokenTTL())
	}
	// Backend is normalized to lower case.
	if cfg.Upload.Backend != UploadBackendInline {
		t.Errorf("backend = %q", cfg.Upload.Backend)
	}
	if cfg.UploadLimit() != 2*1024*1024 {
		t.Errorf("limit = %d", cfg.UploadLimit())
	}
	if !cfg.Comments.AllowGuest {
		t.Error("allow_guest not applied")
	}
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte("port: [not a number"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected a parse error")
	}
}
