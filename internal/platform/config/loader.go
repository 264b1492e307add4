package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Loader reads configuration from an optional yaml file layered over
// the built-in defaults, with API keys supplied via the environment.
type Loader struct {
	useDotEnv bool
	path      string
}

// NewLoader creates a loader reading the default config path.
func NewLoader() *Loader {
	return &Loader{
		useDotEnv: true,
		path:      "config.yaml",
	}
}

// WithDotEnv toggles loading variables from a .env file before reading config.
func (l *Loader) WithDotEnv(enabled bool) *Loader {
	l.useDotEnv = enabled
	return l
}

// WithPath overrides the config file path (useful for tests).
func (l *Loader) WithPath(path string) *Loader {
	if path != "" {
		l.path = path
	}
	return l
}

// Result captures the loaded configuration and its origin path.
type Result struct {
	Config *Config
	Path   string
}

// Load builds the effective configuration: defaults, then the yaml
// file if present, then environment overrides for secrets.
func (l *Loader) Load() (*Result, error) {
	if l.useDotEnv {
		if err := godotenv.Load(); err != nil {
			fmt.Println("no .env file found, using system environment")
		}
	}

	cfg := DefaultConfig()
	path := "defaults"

	if data, err := os.ReadFile(l.path); err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", l.path, err)
		}
		path = l.path
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config %s: %w", l.path, err)
	}

	applyEnvOverrides(cfg)

	return &Result{
		Config: cfg,
		Path:   path,
	}, nil
}

// applyEnvOverrides pulls secrets from the environment so they never
// need to live in the yaml file.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("TASKPILOT_ASR_API_KEY"); v != "" {
		cfg.ASR.APIKey = v
	}
	if v := os.Getenv("TASKPILOT_LLM_API_KEY"); v != "" {
		cfg.LLM.APIKey = v
	}
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		if cfg.ASR.APIKey == "" {
			cfg.ASR.APIKey = v
		}
		if cfg.LLM.APIKey == "" {
			cfg.LLM.APIKey = v
		}
	}
	if v := os.Getenv("TASKPILOT_TTS_VOICE"); v != "" {
		cfg.TTS.Voice = v
	}
}
