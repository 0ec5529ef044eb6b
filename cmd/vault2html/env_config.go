package main

import (
	"log/slog"
	"strconv"
	"strings"

	"github.com/alnah/go-vault2html/internal/config"
)

// envPrefix starts every recognized environment variable.
const envPrefix = "VAULT2HTML_"

// envConfig holds configuration from environment variables.
// Provides CI-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath string // VAULT2HTML_CONFIG: config file name or path
	Title      string // VAULT2HTML_TITLE: site title
	OutputDir  string // VAULT2HTML_OUTPUT_DIR: default output directory
	Assets     string // VAULT2HTML_ASSETS: custom asset directory
	Workers    int    // VAULT2HTML_WORKERS: parallel section rendering
}

// knownEnvVars lists valid VAULT2HTML_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"VAULT2HTML_CONFIG":     true,
	"VAULT2HTML_TITLE":      true,
	"VAULT2HTML_OUTPUT_DIR": true,
	"VAULT2HTML_ASSETS":     true,
	"VAULT2HTML_WORKERS":    true,
}

// loadEnvConfig reads configuration through getenv.
// An unparsable or non-positive VAULT2HTML_WORKERS is ignored.
func loadEnvConfig(getenv func(string) string) *envConfig {
	cfg := &envConfig{
		ConfigPath: getenv("VAULT2HTML_CONFIG"),
		Title:      getenv("VAULT2HTML_TITLE"),
		OutputDir:  getenv("VAULT2HTML_OUTPUT_DIR"),
		Assets:     getenv("VAULT2HTML_ASSETS"),
	}

	if workers := getenv("VAULT2HTML_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		}
	}

	return cfg
}

// warnUnknownEnvVars logs a warning for each unrecognized VAULT2HTML_*
// variable in environ.
func warnUnknownEnvVars(environ []string, logger *slog.Logger) {
	for _, env := range environ {
		if strings.HasPrefix(env, envPrefix) {
			name, _, _ := strings.Cut(env, "=")
			if !knownEnvVars[name] {
				logger.Warn("unknown environment variable (typo?)", "name", name)
			}
		}
	}
}

// applyEnvConfig applies environment values over the loaded config.
// Precedence: CLI flags > env vars > config file > defaults
// (CLI flags are applied later as builder options).
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.Title != "" {
		cfg.Site.Title = env.Title
	}
	if env.OutputDir != "" {
		cfg.Output.Dir = env.OutputDir
	}
	if env.Assets != "" {
		cfg.Assets.BasePath = env.Assets
	}
	if env.Workers > 0 {
		cfg.Render.Workers = env.Workers
	}
}
