package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

const (
	defaultPort          = "8080"
	defaultReadTimeout   = 15 * time.Second
	defaultWriteTimeout  = 15 * time.Second
	defaultIdleTimeout   = 60 * time.Second
	defaultAPITimeout    = 8 * time.Second
	defaultLocalesDir    = "locales"
	defaultTemplatesDir  = "templates"
	defaultPublicDir     = "public"
	defaultContentDir    = "content"
	defaultDefaultLocale = "pt"
)

var defaultSupportedLocales = []string{"pt", "en", "es"}

// Config captures all runtime configuration organised by concern.
type Config struct {
	Server  ServerConfig
	API     APIConfig
	Locale  LocaleConfig
	Assets  AssetsConfig
	Session SessionConfig
	Env     string
	Dev     bool
}

// ServerConfig configures HTTP server parameters.
type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// APIConfig points at the catalog backend. An empty BaseURL selects the
// offline sample-data client.
type APIConfig struct {
	BaseURL string
	Timeout time.Duration
}

// LocaleConfig configures the i18n bundle.
type LocaleConfig struct {
	Dir       string
	Default   string
	Supported []string
}

// AssetsConfig locates runtime asset directories.
type AssetsConfig struct {
	TemplatesDir string
	PublicDir    string
	ContentDir   string
}

// SessionConfig carries the session cookie signing material.
type SessionConfig struct {
	SigningKey []byte
	Secure     bool
}

// Load builds the configuration from the environment, applying defaults.
func Load() (Config, error) {
	cfg := Config{
		Server: ServerConfig{
			Port:         firstNonEmpty(os.Getenv("MILAGRES_WEB_PORT"), os.Getenv("PORT"), defaultPort),
			ReadTimeout:  lookupDuration("MILAGRES_WEB_READ_TIMEOUT", defaultReadTimeout),
			WriteTimeout: lookupDuration("MILAGRES_WEB_WRITE_TIMEOUT", defaultWriteTimeout),
			IdleTimeout:  lookupDuration("MILAGRES_WEB_IDLE_TIMEOUT", defaultIdleTimeout),
		},
		API: APIConfig{
			BaseURL: strings.TrimRight(strings.TrimSpace(os.Getenv("MILAGRES_WEB_API_URL")), "/"),
			Timeout: lookupDuration("MILAGRES_WEB_API_TIMEOUT", defaultAPITimeout),
		},
		Locale: LocaleConfig{
			Dir:       lookupString("MILAGRES_WEB_LOCALES_DIR", defaultLocalesDir),
			Default:   strings.ToLower(lookupString("MILAGRES_WEB_DEFAULT_LOCALE", defaultDefaultLocale)),
			Supported: lookupList("MILAGRES_WEB_SUPPORTED_LOCALES", defaultSupportedLocales),
		},
		Assets: AssetsConfig{
			TemplatesDir: lookupString("MILAGRES_WEB_TEMPLATES_DIR", defaultTemplatesDir),
			PublicDir:    lookupString("MILAGRES_WEB_PUBLIC_DIR", defaultPublicDir),
			ContentDir:   lookupString("MILAGRES_WEB_CONTENT_DIR", defaultContentDir),
		},
		Env: strings.ToLower(lookupString("MILAGRES_WEB_ENV", "local")),
		Dev: os.Getenv("MILAGRES_WEB_DEV") != "" || os.Getenv("DEV") != "",
	}
	cfg.Session.Secure = cfg.Env == "prod"
	if key := os.Getenv("MILAGRES_WEB_SESSION_SIGNING_KEY"); key != "" {
		cfg.Session.SigningKey = []byte(key)
	} else if cfg.Env == "prod" {
		return Config{}, fmt.Errorf("MILAGRES_WEB_SESSION_SIGNING_KEY is required when MILAGRES_WEB_ENV=prod")
	}
	if !contains(cfg.Locale.Supported, cfg.Locale.Default) {
		return Config{}, fmt.Errorf("default locale %q not in supported set %v", cfg.Locale.Default, cfg.Locale.Supported)
	}
	return cfg, nil
}

func lookupString(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func lookupDuration(key string, fallback time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

func lookupList(key string, fallback []string) []string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.ToLower(strings.TrimSpace(p)); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
