package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/globalite/go-macrobrief/internal/dateutil"
	"github.com/globalite/go-macrobrief/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
)

// Field length limits.
const (
	MaxSheetRefLength  = 2048 // Browser URL limit
	MaxPathLength      = 4096 // Common filesystem limit
	MaxTabNameLength   = 100  // Google Sheets tab name limit
	MaxPrefixLength    = 2048 // Browser URL limit
	MaxExtensionLength = 10   // "webp", "jpeg"
)

// Config holds all configuration for newsletter builds.
type Config struct {
	Source  SourceConfig  `yaml:"source"`
	Output  OutputConfig  `yaml:"output"`
	History HistoryConfig `yaml:"history"`
	Images  ImagesConfig  `yaml:"images"`
	PDF     PDFConfig     `yaml:"pdf"`
	Assets  AssetsConfig  `yaml:"assets"`
}

// SourceConfig defines where issue data comes from.
type SourceConfig struct {
	Sheet           string `yaml:"sheet"`           // Google Sheet URL or ID (empty = read the workbook)
	Workbook        string `yaml:"workbook"`        // Workbook path (default: "newsletter_data.xlsx")
	MetaTab         string `yaml:"metaTab"`         // Key/value settings tab (default: "meta")
	PointsTab       string `yaml:"pointsTab"`       // Ranked points tab (default: "points")
	DistributionTab string `yaml:"distributionTab"` // Ownership segments tab (default: "distribution")
	PriceTab        string `yaml:"priceTab"`        // Price history tab (default: "price")
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Default output directory (empty = next to source)
}

// HistoryConfig defines snapshot archiving options.
type HistoryConfig struct {
	Disabled bool   `yaml:"disabled"` // Skip writing dated snapshot workbooks
	Dir      string `yaml:"dir"`      // Snapshot directory (empty = "history" next to source)
	Pattern  string `yaml:"pattern"`  // Timestamp pattern or preset for snapshot names
}

// ImagesConfig defines hosted image resolution options.
type ImagesConfig struct {
	Enabled   bool   `yaml:"enabled"`
	Prefix    string `yaml:"prefix"`    // Base URL joined ahead of synthesized image names
	Extension string `yaml:"extension"` // Extension for synthesized names (empty = "png")
}

// PDFConfig defines PDF export options.
type PDFConfig struct {
	Enabled bool   `yaml:"enabled"` // Also export the issue as PDF
	Timeout string `yaml:"timeout"` // Export timeout, e.g. "30s", "2m" (empty = default)
}

// AssetsConfig defines asset loading options.
type AssetsConfig struct {
	BasePath string `yaml:"basePath"` // Empty = use embedded assets
}

// Validate checks field lengths and value constraints.
// Called automatically by LoadConfig, but available for consumers
// who construct Config manually (e.g., API adapters, library users).
func (c *Config) Validate() error {
	// Validate source fields
	if err := validateFieldLength("source.sheet", c.Source.Sheet, MaxSheetRefLength); err != nil {
		return err
	}
	if err := validateFieldLength("source.workbook", c.Source.Workbook, MaxPathLength); err != nil {
		return err
	}
	tabs := []struct {
		field string
		value string
	}{
		{"source.metaTab", c.Source.MetaTab},
		{"source.pointsTab", c.Source.PointsTab},
		{"source.distributionTab", c.Source.DistributionTab},
		{"source.priceTab", c.Source.PriceTab},
	}
	for _, tab := range tabs {
		if err := validateFieldLength(tab.field, tab.value, MaxTabNameLength); err != nil {
			return err
		}
	}

	// Validate output fields
	if err := validateFieldLength("output.defaultDir", c.Output.DefaultDir, MaxPathLength); err != nil {
		return err
	}

	// Validate history fields
	if err := validateFieldLength("history.dir", c.History.Dir, MaxPathLength); err != nil {
		return err
	}
	if c.History.Pattern != "" {
		if _, err := dateutil.ResolvePattern(c.History.Pattern); err != nil {
			return fmt.Errorf("history.pattern: invalid value %q (%v)", c.History.Pattern, err)
		}
	}

	// Validate image fields
	if err := validateFieldLength("images.prefix", c.Images.Prefix, MaxPrefixLength); err != nil {
		return err
	}
	if err := validateFieldLength("images.extension", c.Images.Extension, MaxExtensionLength); err != nil {
		return err
	}
	if strings.ContainsAny(c.Images.Extension, "/\\.") {
		return fmt.Errorf("images.extension: invalid value %q (must not contain slashes or dots)", c.Images.Extension)
	}

	// Validate pdf fields
	if c.PDF.Timeout != "" {
		if d, err := time.ParseDuration(c.PDF.Timeout); err != nil || d <= 0 {
			return fmt.Errorf("pdf.timeout: invalid value %q (want a positive duration like \"30s\")", c.PDF.Timeout)
		}
	}

	// Validate assets fields
	if err := validateFieldLength("assets.basePath", c.Assets.BasePath, MaxPathLength); err != nil {
		return err
	}

	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// DefaultConfig returns the built-in defaults. Empty fields fall back
// at use time: workbook "newsletter_data.xlsx", the conventional tab
// names, a "history" directory next to the source, and the standard
// snapshot timestamp pattern.
func DefaultConfig() *Config {
	return &Config{
		Source:  SourceConfig{Sheet: "", Workbook: ""},
		Output:  OutputConfig{DefaultDir: ""},
		History: HistoryConfig{Disabled: false},
		Images:  ImagesConfig{Enabled: false},
		PDF:     PDFConfig{Enabled: false},
		Assets:  AssetsConfig{BasePath: ""},
	}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if isFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yamlutil.UnmarshalStrict(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// isFilePath returns true if the string looks like a file path.
func isFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}

// resolveConfigPath searches for a config file by name in standard locations.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, ~/.config/macrobrief/
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	triedPaths := make([]string, 0, len(extensions)*2) // 2 locations

	// Try current directory first (both extensions)
	for _, ext := range extensions {
		localPath := name + ext
		if fileExists(localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	// Try user config directory (both extensions)
	userConfigDir, err := os.UserConfigDir()
	if err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(userConfigDir, "macrobrief", name+ext)
			if fileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}

// fileExists returns true if the path exists and is a regular file.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
