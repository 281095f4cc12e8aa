package config

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

const (
	defaultEnvFile         = ".env"
	defaultPort            = "8080"
	defaultReadTimeout     = 15 * time.Second
	defaultWriteTimeout    = 15 * time.Second
	defaultIdleTimeout     = 60 * time.Second
	defaultShutdownTimeout = 10 * time.Second
	defaultBaseURL         = "https://peakprinting.top"
	defaultLogLevel        = "info"
)

// Environments.
const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Config captures all runtime configuration organised by concern.
type Config struct {
	Server    ServerConfig
	Site      SiteConfig
	Paths     PathConfig
	Analytics AnalyticsConfig
	LogLevel  string
}

// ServerConfig configures HTTP server parameters.
type ServerConfig struct {
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

// SiteConfig describes the public site.
type SiteConfig struct {
	Environment string
	BaseURL     string
}

// PathConfig points at on-disk overrides. Empty values use the assets
// compiled into the binary.
type PathConfig struct {
	TemplatesDir string
	PublicDir    string
	CatalogFile  string
}

// AnalyticsConfig configures the browser script and the server-side collector.
type AnalyticsConfig struct {
	ScriptURL string
	WebsiteID string
	Endpoint  string
}

// Dev reports whether diagnostics and template reloading are enabled.
func (c Config) Dev() bool { return c.Site.Environment == EnvDevelopment }

// Addr is the listen address.
func (c Config) Addr() string { return ":" + c.Server.Port }

// ValidationError is returned when configuration fields are missing or invalid.
type ValidationError struct {
	fields []string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("config validation failed: missing or invalid fields [%s]", strings.Join(e.fields, ", "))
}

// Fields returns a copy of the missing/invalid field list.
func (e *ValidationError) Fields() []string {
	out := make([]string, len(e.fields))
	copy(out, e.fields)
	return out
}

// Option customises Load.
type Option func(*loaderOptions)

type loaderOptions struct {
	envFile      string
	envMap       map[string]string
	useSystemEnv bool
}

// WithEnvFile reads a dotenv file. An empty path disables it.
func WithEnvFile(path string) Option {
	return func(o *loaderOptions) {
		o.envFile = path
	}
}

// WithEnvMap supplies values that take precedence over every other source.
func WithEnvMap(values map[string]string) Option {
	return func(o *loaderOptions) {
		o.envMap = values
	}
}

// WithoutSystemEnv ignores the process environment.
func WithoutSystemEnv() Option {
	return func(o *loaderOptions) {
		o.useSystemEnv = false
	}
}

// Load resolves configuration from the option map, the process environment and
// the dotenv file, in that order of precedence.
func Load(_ context.Context, opts ...Option) (Config, error) {
	options := loaderOptions{
		envFile:      defaultEnvFile,
		useSystemEnv: true,
	}
	for _, opt := range opts {
		opt(&options)
	}

	dotEnvValues, err := loadDotEnv(options.envFile)
	if err != nil {
		return Config{}, err
	}

	lookup := func(key string) (string, bool) {
		if options.envMap != nil {
			if value, ok := options.envMap[key]; ok {
				return value, true
			}
		}
		if options.useSystemEnv {
			if value, ok := os.LookupEnv(key); ok {
				return value, true
			}
		}
		if dotEnvValues != nil {
			if value, ok := dotEnvValues[key]; ok {
				return value, true
			}
		}
		return "", false
	}

	p := parser{lookup: lookup}
	cfg := Config{
		Server: ServerConfig{
			Port:            stringWithDefault(lookup, "PEAK_WEB_PORT", stringWithDefault(lookup, "PORT", defaultPort)),
			ReadTimeout:     p.duration("PEAK_WEB_READ_TIMEOUT", defaultReadTimeout),
			WriteTimeout:    p.duration("PEAK_WEB_WRITE_TIMEOUT", defaultWriteTimeout),
			IdleTimeout:     p.duration("PEAK_WEB_IDLE_TIMEOUT", defaultIdleTimeout),
			ShutdownTimeout: p.duration("PEAK_WEB_SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
		},
		Site: SiteConfig{
			Environment: environment(lookup),
			BaseURL:     strings.TrimRight(stringWithDefault(lookup, "PEAK_WEB_BASE_URL", defaultBaseURL), "/"),
		},
		Paths: PathConfig{
			TemplatesDir: stringWithDefault(lookup, "PEAK_WEB_TEMPLATES_DIR", ""),
			PublicDir:    stringWithDefault(lookup, "PEAK_WEB_PUBLIC_DIR", ""),
			CatalogFile:  stringWithDefault(lookup, "PEAK_WEB_CATALOG_FILE", ""),
		},
		Analytics: AnalyticsConfig{
			ScriptURL: stringWithDefault(lookup, "PEAK_WEB_ANALYTICS_SCRIPT_URL", ""),
			WebsiteID: stringWithDefault(lookup, "PEAK_WEB_ANALYTICS_WEBSITE_ID", ""),
			Endpoint:  stringWithDefault(lookup, "PEAK_WEB_ANALYTICS_ENDPOINT", ""),
		},
		LogLevel: strings.ToLower(stringWithDefault(lookup, "LOG_LEVEL", defaultLogLevel)),
	}

	if err := validateConfig(cfg, p.invalid); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func environment(lookup func(string) (string, bool)) string {
	if env := strings.ToLower(stringWithDefault(lookup, "PEAK_WEB_ENV", "")); env != "" {
		switch env {
		case "dev":
			return EnvDevelopment
		case "prod":
			return EnvProduction
		}
		return env
	}
	if devFlag(lookup, "PEAK_WEB_DEV") || devFlag(lookup, "DEV") {
		return EnvDevelopment
	}
	return EnvProduction
}

// devFlag reports whether key holds a true boolean. Unset, false and
// unparseable values all leave the site in production.
func devFlag(lookup func(string) (string, bool), key string) bool {
	on, err := strconv.ParseBool(stringWithDefault(lookup, key, ""))
	return err == nil && on
}

func validateConfig(cfg Config, invalid []string) error {
	missing := append([]string(nil), invalid...)

	if port, err := strconv.Atoi(cfg.Server.Port); err != nil || port < 1 || port > 65535 {
		missing = append(missing, "Server.Port")
	}
	switch cfg.Site.Environment {
	case EnvDevelopment, EnvProduction:
	default:
		missing = append(missing, "Site.Environment")
	}
	if u, err := url.Parse(cfg.Site.BaseURL); err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		missing = append(missing, "Site.BaseURL")
	}
	if cfg.Analytics.WebsiteID == "" && (cfg.Analytics.ScriptURL != "" || cfg.Analytics.Endpoint != "") {
		missing = append(missing, "Analytics.WebsiteID")
	}

	if len(missing) > 0 {
		return &ValidationError{fields: missing}
	}
	return nil
}

type parser struct {
	lookup  func(string) (string, bool)
	invalid []string
}

var durationFields = map[string]string{
	"PEAK_WEB_READ_TIMEOUT":     "Server.ReadTimeout",
	"PEAK_WEB_WRITE_TIMEOUT":    "Server.WriteTimeout",
	"PEAK_WEB_IDLE_TIMEOUT":     "Server.IdleTimeout",
	"PEAK_WEB_SHUTDOWN_TIMEOUT": "Server.ShutdownTimeout",
}

func (p *parser) duration(key string, fallback time.Duration) time.Duration {
	value, ok := p.lookup(key)
	if !ok || value == "" {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil || d <= 0 {
		p.invalid = append(p.invalid, durationFields[key])
		return fallback
	}
	return d
}

func loadDotEnv(path string) (map[string]string, error) {
	if path == "" {
		return nil, nil
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		absPath = path
	}

	file, err := os.Open(absPath)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("config: unable to read %s: %w", absPath, err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	values := make(map[string]string)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		line = strings.TrimSpace(strings.TrimPrefix(line, "export "))
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		values[key] = strings.Trim(strings.TrimSpace(value), "\"'")
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("config: failed parsing %s: %w", absPath, err)
	}
	return values, nil
}

func stringWithDefault(lookup func(string) (string, bool), key, fallback string) string {
	if value, ok := lookup(key); ok && strings.TrimSpace(value) != "" {
		return strings.TrimSpace(value)
	}
	return fallback
}
