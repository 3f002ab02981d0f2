package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultConfigPath is used when --config is not provided.
	DefaultConfigPath = "config.yml"

	defaultPort     = 3007
	defaultEnv      = "development"
	defaultDBPath   = "data/blog.db"
	defaultTokenTTL = 7 * 24 * time.Hour
)

// Upload backends.
const (
	UploadBackendLocal  = "local"
	UploadBackendInline = "inline"
)

// AppConfig holds runtime startup configuration loaded from YAML.
type AppConfig struct {
	Port           int            `yaml:"port"`
	Env            string         `yaml:"env"` // "development" | "production"
	JWTSecret      string         `yaml:"jwt_secret"`
	TokenTTLHours  int            `yaml:"token_ttl_hours"`
	AllowedOrigins []string       `yaml:"allowed_origins"`
	RedisURL       string         `yaml:"redis_url"`
	Database       DatabaseConfig `yaml:"database"`
	Upload         UploadConfig   `yaml:"upload"`
	Comments       CommentsConfig `yaml:"comments"`
	Admin          AdminConfig    `yaml:"admin"`
}

type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// UploadConfig controls the image upload endpoint. Backend is "local"
// (files written under Dir, served at /uploads) or "inline" (base64 data
// URL returned directly, nothing persisted).
type UploadConfig struct {
	Dir       string `yaml:"dir"`
	MaxSizeMB int    `yaml:"max_size_mb"`
	Backend   string `yaml:"backend"`
}

type CommentsConfig struct {
	// AllowGuest re-enables anonymous nickname/email commenting. Off by
	// default: commenting requires a registered, enabled account.
	AllowGuest bool `yaml:"allow_guest"`
}

// AdminConfig seeds the owner account on first startup.
type AdminConfig struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	Nickname string `yaml:"nickname"`
	Email    string `yaml:"email"`
}

// Load reads the YAML config at path. A missing file is not an error: the
// defaults make a local development server runnable with no config at all.
func Load(path string) (*AppConfig, error) {
	cfg := &AppConfig{}

	raw, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(raw, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	case os.IsNotExist(err):
		// fall through to defaults
	default:
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	cfg.normalize()
	return cfg, nil
}

func (c *AppConfig) normalize() {
	if c.Port <= 0 {
		c.Port = defaultPort
	}
	if c.Env == "" {
		c.Env = defaultEnv
	}
	if c.Database.Path == "" {
		c.Database.Path = defaultDBPath
	}
	if c.Upload.Dir == "" {
		c.Upload.Dir = "uploads"
	}
	if c.Upload.MaxSizeMB <= 0 {
		c.Upload.MaxSizeMB = 5
	}
	if c.Upload.Backend = strings.ToLower(strings.TrimSpace(c.Upload.Backend)); c.Upload.Backend == "" {
		c.Upload.Backend = UploadBackendLocal
	}
	if c.Admin.Username == "" {
		c.Admin.Username = "admin"
	}
	if c.Admin.Password == "" {
		c.Admin.Password = "admin123"
	}
	if c.Admin.Nickname == "" {
		c.Admin.Nickname = "管理员"
	}
	if c.Admin.Email == "" {
		c.Admin.Email = "admin@example.com"
	}
}

// IsDev reports whether the app runs in development mode.
func (c *AppConfig) IsDev() bool { return c.Env != "production" }

// TokenTTL returns the session token lifetime.
func (c *AppConfig) TokenTTL() time.Duration {
	if c.TokenTTLHours > 0 {
		return time.Duration(c.TokenTTLHours) * time.Hour
	}
	return defaultTokenTTL
}

// UploadLimit returns the upload size ceiling in bytes.
func (c *AppConfig) UploadLimit() int64 {
	return int64(c.Upload.MaxSizeMB) * 1024 * 1024
}
