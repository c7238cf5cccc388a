// Package config loads settings from an optional YAML file, an optional .env
// file and the environment, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Gemini GeminiConfig `yaml:"gemini"`
	Script ScriptConfig `yaml:"script"`
	Export ExportConfig `yaml:"export"`
}

type GeminiConfig struct {
	APIKey      string        `yaml:"api_key"`
	Model       string        `yaml:"model"`
	Temperature *float32      `yaml:"temperature"`
	Timeout     time.Duration `yaml:"timeout"`
	BaseURL     string        `yaml:"base_url"`
}

type ScriptConfig struct {
	Language string `yaml:"language"`
	Tone     string `yaml:"tone"`
}

type ExportConfig struct {
	Dir    string `yaml:"dir"`
	Format string `yaml:"format"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Gemini: GeminiConfig{Model: "gemini-2.5-pro", Timeout: 5 * time.Minute},
		Script: ScriptConfig{Language: "Bahasa Indonesia", Tone: "Communicative, academic, and fluid"},
		Export: ExportConfig{Dir: ".", Format: "pdf"},
	}
}

// Load reads path (if non-empty), then .env in the working directory (if
// present), then environment variables.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return cfg, fmt.Errorf("load .env: %w", err)
	}
	applyEnv(&cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	cfg.Gemini.APIKey = getEnv("GEMINI_API_KEY", getEnv("GOOGLE_API_KEY", cfg.Gemini.APIKey))
	cfg.Gemini.Model = getEnv("GEMINI_MODEL", cfg.Gemini.Model)
	cfg.Gemini.BaseURL = getEnv("GEMINI_BASE_URL", cfg.Gemini.BaseURL)
	cfg.Gemini.Timeout = getEnvAsDuration("GEMINI_TIMEOUT", cfg.Gemini.Timeout)
	if v := os.Getenv("GEMINI_TEMPERATURE"); v != "" {
		if f, err := strconv.ParseFloat(v, 32); err == nil {
			t := float32(f)
			cfg.Gemini.Temperature = &t
		}
	}
	cfg.Script.Language = getEnv("SCRIPT_LANGUAGE", cfg.Script.Language)
	cfg.Script.Tone = getEnv("SCRIPT_TONE", cfg.Script.Tone)
	cfg.Export.Dir = getEnv("EXPORT_DIR", cfg.Export.Dir)
	cfg.Export.Format = getEnv("EXPORT_FORMAT", cfg.Export.Format)
}

// Validate checks the settings needed to call the model.
func (c Config) Validate() error {
	if c.Gemini.APIKey == "" {
		return errors.New("GEMINI_API_KEY is required")
	}
	switch strings.ToLower(c.Export.Format) {
	case "pdf", "xlsx", "json":
	default:
		return fmt.Errorf("export format %q is not one of pdf|xlsx|json", c.Export.Format)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
