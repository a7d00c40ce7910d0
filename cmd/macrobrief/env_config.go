package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/globalite/go-macrobrief/internal/config"
)

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	// Tier 1 - Essential
	ConfigPath string        // MACROBRIEF_CONFIG: config file path
	Sheet      string        // MACROBRIEF_SHEET: Google Sheet URL or ID
	Timeout    time.Duration // MACROBRIEF_TIMEOUT: PDF export timeout

	// Tier 2 - I/O
	Workbook  string // MACROBRIEF_WORKBOOK: default workbook path
	OutputDir string // MACROBRIEF_OUTPUT_DIR: default output directory
	Workers   int    // MACROBRIEF_WORKERS: parallel workers

	// Tier 3 - Extended
	HistoryDir     string // MACROBRIEF_HISTORY_DIR: snapshot directory
	HistoryPattern string // MACROBRIEF_HISTORY_PATTERN: snapshot timestamp pattern
	ImagePrefix    string // MACROBRIEF_IMAGE_PREFIX: hosted image base URL
	ImageExt       string // MACROBRIEF_IMAGE_EXT: hosted image extension
	AssetPath      string // MACROBRIEF_ASSET_PATH: custom asset directory
}

// knownEnvVars lists valid MACROBRIEF_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	// Tier 1 - Essential
	"MACROBRIEF_CONFIG":  true,
	"MACROBRIEF_SHEET":   true,
	"MACROBRIEF_TIMEOUT": true,
	// Tier 2 - I/O
	"MACROBRIEF_WORKBOOK":   true,
	"MACROBRIEF_OUTPUT_DIR": true,
	"MACROBRIEF_WORKERS":    true,
	// Tier 3 - Extended
	"MACROBRIEF_HISTORY_DIR":     true,
	"MACROBRIEF_HISTORY_PATTERN": true,
	"MACROBRIEF_IMAGE_PREFIX":    true,
	"MACROBRIEF_IMAGE_EXT":       true,
	"MACROBRIEF_ASSET_PATH":      true,
	// Diagnostics (read by the doctor command)
	"MACROBRIEF_CONTAINER": true,
}

// loadEnvConfig reads configuration from environment variables.
// Returns a struct with all recognized MACROBRIEF_* values.
func loadEnvConfig() *envConfig {
	cfg := &envConfig{
		// Tier 1
		ConfigPath: os.Getenv("MACROBRIEF_CONFIG"),
		Sheet:      os.Getenv("MACROBRIEF_SHEET"),
		// Tier 2
		Workbook:  os.Getenv("MACROBRIEF_WORKBOOK"),
		OutputDir: os.Getenv("MACROBRIEF_OUTPUT_DIR"),
		// Tier 3
		HistoryDir:     os.Getenv("MACROBRIEF_HISTORY_DIR"),
		HistoryPattern: os.Getenv("MACROBRIEF_HISTORY_PATTERN"),
		ImagePrefix:    os.Getenv("MACROBRIEF_IMAGE_PREFIX"),
		ImageExt:       os.Getenv("MACROBRIEF_IMAGE_EXT"),
		AssetPath:      os.Getenv("MACROBRIEF_ASSET_PATH"),
	}

	// Parse duration for timeout
	if timeout := os.Getenv("MACROBRIEF_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}

	// Parse int for workers
	if workers := os.Getenv("MACROBRIEF_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		}
	}

	return cfg
}

// warnUnknownEnvVars logs warnings for unrecognized MACROBRIEF_* variables.
// Helps catch typos like MACROBRIEF_WORKBOK instead of MACROBRIEF_WORKBOOK.
func warnUnknownEnvVars(w io.Writer) {
	for _, env := range os.Environ() {
		if strings.HasPrefix(env, "MACROBRIEF_") {
			name := strings.SplitN(env, "=", 2)[0]
			if !knownEnvVars[name] {
				fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
			}
		}
	}
}

// applyEnvConfig applies environment variable values to config.
// Only sets values if the env var is set AND the config value is empty/zero.
// This ensures: CLI flags > env vars > config file > defaults
// (CLI flags are applied later via mergeFlags)
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	// Tier 1 - Sheet (timeout handled separately in resolveTimeoutWithEnv)
	if env.Sheet != "" && cfg.Source.Sheet == "" {
		cfg.Source.Sheet = env.Sheet
	}

	// Tier 2 - I/O
	if env.Workbook != "" && cfg.Source.Workbook == "" {
		cfg.Source.Workbook = env.Workbook
	}
	if env.OutputDir != "" && cfg.Output.DefaultDir == "" {
		cfg.Output.DefaultDir = env.OutputDir
	}

	// Tier 3 - History
	if env.HistoryDir != "" && cfg.History.Dir == "" {
		cfg.History.Dir = env.HistoryDir
	}
	if env.HistoryPattern != "" && cfg.History.Pattern == "" {
		cfg.History.Pattern = env.HistoryPattern
	}

	// Tier 3 - Hosted images (prefix auto-enables)
	if env.ImagePrefix != "" && cfg.Images.Prefix == "" {
		cfg.Images.Prefix = env.ImagePrefix
		if !cfg.Images.Enabled {
			cfg.Images.Enabled = true
		}
	}
	if env.ImageExt != "" && cfg.Images.Extension == "" {
		cfg.Images.Extension = env.ImageExt
	}

	// Tier 3 - Assets
	if env.AssetPath != "" && cfg.Assets.BasePath == "" {
		cfg.Assets.BasePath = env.AssetPath
	}
}
