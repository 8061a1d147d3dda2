package config

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/terraincognita07/ssclab/internal/i18n"
	"github.com/terraincognita07/ssclab/internal/security"
)

const envPrefix = "SSCLAB"

// Config holds runtime settings read from SSCLAB_* environment variables.
type Config struct {
	DBPath          string        `envconfig:"DB_PATH" default:"data/ssclab.db"`
	Port            string        `envconfig:"PORT" default:"8080"`
	SecretKey       string        `envconfig:"SECRET_KEY"`
	UndoWindow      time.Duration `envconfig:"UNDO_WINDOW" default:"6s"`
	DefaultLanguage string        `envconfig:"DEFAULT_LANGUAGE" default:"en"`
	LogLevel        string        `envconfig:"LOG_LEVEL" default:"info"`
	SeedOnStart     bool          `envconfig:"SEED_ON_START" default:"true"`

	secretGenerated bool
}

func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process(envPrefix, &cfg); err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.normalize(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// GeneratedSecret reports whether the undo signing key was generated for this process.
func (cfg Config) GeneratedSecret() bool {
	return cfg.secretGenerated
}

func (cfg *Config) normalize() error {
	cfg.DBPath = strings.TrimSpace(cfg.DBPath)
	if cfg.DBPath == "" {
		return fmt.Errorf("SSCLAB_DB_PATH must not be empty")
	}
	cfg.Port = strings.TrimPrefix(strings.TrimSpace(cfg.Port), ":")
	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.UndoWindow <= 0 {
		return fmt.Errorf("SSCLAB_UNDO_WINDOW must be positive, got %s", cfg.UndoWindow)
	}
	cfg.DefaultLanguage = strings.ToLower(strings.TrimSpace(cfg.DefaultLanguage))
	if cfg.DefaultLanguage == "" {
		cfg.DefaultLanguage = i18n.LangEN
	}
	if _, err := ParseLevel(cfg.LogLevel); err != nil {
		return err
	}

	cfg.SecretKey = strings.TrimSpace(cfg.SecretKey)
	if cfg.SecretKey == "" {
		secret, err := security.SigningKey()
		if err != nil {
			return fmt.Errorf("generate secret key: %w", err)
		}
		cfg.SecretKey = secret
		cfg.secretGenerated = true
	}
	return nil
}

func ParseLevel(raw string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", raw)
	}
}

// NewLogger builds the process logger writing text records to output.
func (cfg Config) NewLogger(output io.Writer) *slog.Logger {
	level, err := ParseLevel(cfg.LogLevel)
	if err != nil {
		level = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(output, &slog.HandlerOptions{Level: level}))
}
