package main

// Notes:
// - mergeFlags: we test all flag override scenarios. Each flag category
//   (source, history, images, assets, pdf) is tested for both override
//   and preserve behavior, plus the auto-enable and disable precedence.
// - resolveConfig: we test the full layering (flags > env > file > defaults)
//   with real config files in temp directories.
// - serviceOptions: we test option construction, including timeout clamping.
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/globalite/go-macrobrief/internal/config"
	"github.com/globalite/go-macrobrief/internal/gsheet"
	"github.com/globalite/go-macrobrief/internal/workbook"
)

// ---------------------------------------------------------------------------
// TestMergeFlags - CLI flags override config values
// ---------------------------------------------------------------------------

func TestMergeFlags(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		flags *buildFlags
		cfg   *config.Config
		check func(t *testing.T, cfg *config.Config)
	}{
		{
			name:  "empty flags preserve config sheet",
			flags: &buildFlags{},
			cfg:   &config.Config{Source: config.SourceConfig{Sheet: "config-sheet-id-0123456"}},
			check: func(t *testing.T, cfg *config.Config) {
				if cfg.Source.Sheet != "config-sheet-id-0123456" {
					t.Errorf("Source.Sheet = %q, want config value", cfg.Source.Sheet)
				}
			},
		},
		{
			name:  "sheet overrides config",
			flags: &buildFlags{source: sourceFlags{sheet: "cli-sheet-id-0123456789"}},
			cfg:   &config.Config{Source: config.SourceConfig{Sheet: "config-sheet-id-0123456"}},
			check: func(t *testing.T, cfg *config.Config) {
				if cfg.Source.Sheet != "cli-sheet-id-0123456789" {
					t.Errorf("Source.Sheet = %q, want CLI value", cfg.Source.Sheet)
				}
			},
		},
		{
			name:  "meta tab overrides config",
			flags: &buildFlags{source: sourceFlags{metaTab: "settings"}},
			cfg:   &config.Config{Source: config.SourceConfig{MetaTab: "meta"}},
			check: func(t *testing.T, cfg *config.Config) {
				if cfg.Source.MetaTab != "settings" {
					t.Errorf("Source.MetaTab = %q, want settings", cfg.Source.MetaTab)
				}
			},
		},
		{
			name:  "points tab overrides config",
			flags: &buildFlags{source: sourceFlags{pointsTab: "stories"}},
			cfg:   &config.Config{Source: config.SourceConfig{PointsTab: "points"}},
			check: func(t *testing.T, cfg *config.Config) {
				if cfg.Source.PointsTab != "stories" {
					t.Errorf("Source.PointsTab = %q, want stories", cfg.Source.PointsTab)
				}
			},
		},
		{
			name:  "distribution tab overrides config",
			flags: &buildFlags{source: sourceFlags{distributionTab: "ownership"}},
			cfg:   &config.Config{Source: config.SourceConfig{DistributionTab: "distribution"}},
			check: func(t *testing.T, cfg *config.Config) {
				if cfg.Source.DistributionTab != "ownership" {
					t.Errorf("Source.DistributionTab = %q, want ownership", cfg.Source.DistributionTab)
				}
			},
		},
		{
			name:  "price tab overrides config",
			flags: &buildFlags{source: sourceFlags{priceTab: "quotes"}},
			cfg:   &config.Config{Source: config.SourceConfig{PriceTab: "price"}},
			check: func(t *testing.T, cfg *config.Config) {
				if cfg.Source.PriceTab != "quotes" {
					t.Errorf("Source.PriceTab = %q, want quotes", cfg.Source.PriceTab)
				}
			},
		},
		{
			name:  "history dir overrides config",
			flags: &buildFlags{history: historyFlags{dir: "/cli/archive"}},
			cfg:   &config.Config{History: config.HistoryConfig{Dir: "/config/archive"}},
			check: func(t *testing.T, cfg *config.Config) {
				if cfg.History.Dir != "/cli/archive" {
					t.Errorf("History.Dir = %q, want /cli/archive", cfg.History.Dir)
				}
			},
		},
		{
			name:  "history pattern overrides config",
			flags: &buildFlags{history: historyFlags{pattern: "compact"}},
			cfg:   &config.Config{History: config.HistoryConfig{Pattern: "iso"}},
			check: func(t *testing.T, cfg *config.Config) {
				if cfg.History.Pattern != "compact" {
					t.Errorf("History.Pattern = %q, want compact", cfg.History.Pattern)
				}
			},
		},
		{
			name:  "image prefix auto-enables images",
			flags: &buildFlags{images: imageFlags{prefix: "https://cdn.example.com"}},
			cfg:   &config.Config{},
			check: func(t *testing.T, cfg *config.Config) {
				if cfg.Images.Prefix != "https://cdn.example.com" {
					t.Errorf("Images.Prefix = %q, want CLI value", cfg.Images.Prefix)
				}
				if !cfg.Images.Enabled {
					t.Error("Images.Enabled should be true when prefix is set")
				}
			},
		},
		{
			name:  "image extension does not auto-enable",
			flags: &buildFlags{images: imageFlags{extension: "webp"}},
			cfg:   &config.Config{},
			check: func(t *testing.T, cfg *config.Config) {
				if cfg.Images.Extension != "webp" {
					t.Errorf("Images.Extension = %q, want webp", cfg.Images.Extension)
				}
				if cfg.Images.Enabled {
					t.Error("Images.Enabled should stay false without a prefix")
				}
			},
		},
		{
			name:  "asset path overrides config",
			flags: &buildFlags{assets: assetFlags{assetPath: "/cli/assets"}},
			cfg:   &config.Config{Assets: config.AssetsConfig{BasePath: "/config/assets"}},
			check: func(t *testing.T, cfg *config.Config) {
				if cfg.Assets.BasePath != "/cli/assets" {
					t.Errorf("Assets.BasePath = %q, want /cli/assets", cfg.Assets.BasePath)
				}
			},
		},
		{
			name:  "pdf flag enables export",
			flags: &buildFlags{pdf: true},
			cfg:   &config.Config{},
			check: func(t *testing.T, cfg *config.Config) {
				if !cfg.PDF.Enabled {
					t.Error("PDF.Enabled should be true when --pdf is set")
				}
			},
		},
		{
			name:  "pdf output path enables export",
			flags: &buildFlags{out: "issue.pdf"},
			cfg:   &config.Config{},
			check: func(t *testing.T, cfg *config.Config) {
				if !cfg.PDF.Enabled {
					t.Error("PDF.Enabled should be true for a .pdf output path")
				}
			},
		},
		{
			name:  "html output path leaves export off",
			flags: &buildFlags{out: "issue.html"},
			cfg:   &config.Config{},
			check: func(t *testing.T, cfg *config.Config) {
				if cfg.PDF.Enabled {
					t.Error("PDF.Enabled should stay false for an .html output path")
				}
			},
		},
		{
			name:  "no-history disables snapshots",
			flags: &buildFlags{history: historyFlags{disabled: true}},
			cfg:   &config.Config{},
			check: func(t *testing.T, cfg *config.Config) {
				if !cfg.History.Disabled {
					t.Error("History.Disabled should be true")
				}
			},
		},
		{
			name:  "no-images overrides prefix auto-enable",
			flags: &buildFlags{images: imageFlags{prefix: "https://cdn.example.com", disabled: true}},
			cfg:   &config.Config{Images: config.ImagesConfig{Enabled: true}},
			check: func(t *testing.T, cfg *config.Config) {
				if cfg.Images.Enabled {
					t.Error("Images.Enabled should be false when disabled flag is set")
				}
			},
		},
		{
			name:  "partial override preserves other tabs",
			flags: &buildFlags{source: sourceFlags{metaTab: "settings"}},
			cfg: &config.Config{Source: config.SourceConfig{
				MetaTab:   "meta",
				PointsTab: "points",
				PriceTab:  "price",
			}},
			check: func(t *testing.T, cfg *config.Config) {
				if cfg.Source.MetaTab != "settings" {
					t.Errorf("Source.MetaTab = %q, want settings", cfg.Source.MetaTab)
				}
				if cfg.Source.PointsTab != "points" {
					t.Errorf("Source.PointsTab = %q, want points (should be preserved)", cfg.Source.PointsTab)
				}
				if cfg.Source.PriceTab != "price" {
					t.Errorf("Source.PriceTab = %q, want price (should be preserved)", cfg.Source.PriceTab)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			mergeFlags(tt.flags, tt.cfg)
			tt.check(t, tt.cfg)
		})
	}
}

// ---------------------------------------------------------------------------
// TestResolveConfig - Configuration layering
// ---------------------------------------------------------------------------

func TestResolveConfig(t *testing.T) {
	t.Parallel()

	t.Run("defaults when nothing is set", func(t *testing.T) {
		t.Parallel()

		cfg, err := resolveConfig(&buildFlags{}, &envConfig{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.Source.Sheet != "" || cfg.Source.Workbook != "" {
			t.Errorf("expected empty source defaults, got %+v", cfg.Source)
		}
	})

	t.Run("config file loaded by path", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "config.yaml")
		content := "source:\n  workbook: /data/team.xlsx\nhistory:\n  pattern: iso\n"
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}

		flags := &buildFlags{common: commonFlags{config: path}}
		cfg, err := resolveConfig(flags, &envConfig{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.Source.Workbook != "/data/team.xlsx" {
			t.Errorf("Source.Workbook = %q, want /data/team.xlsx", cfg.Source.Workbook)
		}
		if cfg.History.Pattern != "iso" {
			t.Errorf("History.Pattern = %q, want iso", cfg.History.Pattern)
		}
	})

	t.Run("env config path used when flag empty", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "env.yaml")
		content := "output:\n  defaultDir: /env/out\n"
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}

		cfg, err := resolveConfig(&buildFlags{}, &envConfig{ConfigPath: path})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.Output.DefaultDir != "/env/out" {
			t.Errorf("Output.DefaultDir = %q, want /env/out", cfg.Output.DefaultDir)
		}
	})

	t.Run("flag overrides env and file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "config.yaml")
		content := "source:\n  metaTab: file-meta\n"
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}

		flags := &buildFlags{
			common: commonFlags{config: path},
			source: sourceFlags{metaTab: "flag-meta"},
		}
		cfg, err := resolveConfig(flags, &envConfig{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.Source.MetaTab != "flag-meta" {
			t.Errorf("Source.MetaTab = %q, want flag-meta", cfg.Source.MetaTab)
		}
	})

	t.Run("env fills fields the file leaves empty", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "config.yaml")
		content := "source:\n  metaTab: file-meta\n"
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}

		flags := &buildFlags{common: commonFlags{config: path}}
		envCfg := &envConfig{Workbook: "/env/data.xlsx"}
		cfg, err := resolveConfig(flags, envCfg)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.Source.Workbook != "/env/data.xlsx" {
			t.Errorf("Source.Workbook = %q, want /env/data.xlsx", cfg.Source.Workbook)
		}
		if cfg.Source.MetaTab != "file-meta" {
			t.Errorf("Source.MetaTab = %q, want file-meta", cfg.Source.MetaTab)
		}
	})

	t.Run("missing config file returns ErrConfigNotFound", func(t *testing.T) {
		t.Parallel()

		flags := &buildFlags{common: commonFlags{config: filepath.Join(t.TempDir(), "absent.yaml")}}
		_, err := resolveConfig(flags, &envConfig{})
		if !errors.Is(err, config.ErrConfigNotFound) {
			t.Errorf("error = %v, want %v", err, config.ErrConfigNotFound)
		}
	})

	t.Run("malformed config file returns ErrConfigParse", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "broken.yaml")
		if err := os.WriteFile(path, []byte("source: [broken"), 0644); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}

		flags := &buildFlags{common: commonFlags{config: path}}
		_, err := resolveConfig(flags, &envConfig{})
		if !errors.Is(err, config.ErrConfigParse) {
			t.Errorf("error = %v, want %v", err, config.ErrConfigParse)
		}
	})

	t.Run("invalid history pattern fails validation", func(t *testing.T) {
		t.Parallel()

		flags := &buildFlags{history: historyFlags{pattern: "[unclosed"}}
		_, err := resolveConfig(flags, &envConfig{})
		if err == nil {
			t.Error("expected validation error for unclosed bracket pattern")
		}
	})
}

// ---------------------------------------------------------------------------
// TestTabsFromConfig - Tab name resolution
// ---------------------------------------------------------------------------

func TestTabsFromConfig(t *testing.T) {
	t.Parallel()

	t.Run("defaults for empty config", func(t *testing.T) {
		t.Parallel()

		got := tabsFromConfig(&config.Config{})
		want := gsheet.DefaultTabs()
		if got != want {
			t.Errorf("tabsFromConfig() = %+v, want %+v", got, want)
		}
	})

	t.Run("config overrides defaults per tab", func(t *testing.T) {
		t.Parallel()

		cfg := &config.Config{}
		cfg.Source.MetaTab = "settings"
		cfg.Source.PriceTab = "quotes"

		got := tabsFromConfig(cfg)
		if got.Meta != "settings" {
			t.Errorf("Meta = %q, want settings", got.Meta)
		}
		if got.Points != "points" {
			t.Errorf("Points = %q, want points (default preserved)", got.Points)
		}
		if got.Distribution != "distribution" {
			t.Errorf("Distribution = %q, want distribution (default preserved)", got.Distribution)
		}
		if got.Price != "quotes" {
			t.Errorf("Price = %q, want quotes", got.Price)
		}
	})
}

// ---------------------------------------------------------------------------
// TestImageBackendFromConfig - Image backend conversion
// ---------------------------------------------------------------------------

func TestImageBackendFromConfig(t *testing.T) {
	t.Parallel()

	t.Run("nil when disabled", func(t *testing.T) {
		t.Parallel()

		cfg := &config.Config{}
		cfg.Images.Prefix = "https://cdn.example.com"
		if got := imageBackendFromConfig(cfg); got != nil {
			t.Errorf("imageBackendFromConfig() = %+v, want nil", got)
		}
	})

	t.Run("backend when enabled", func(t *testing.T) {
		t.Parallel()

		cfg := &config.Config{}
		cfg.Images.Enabled = true
		cfg.Images.Prefix = "https://cdn.example.com"
		cfg.Images.Extension = "webp"

		got := imageBackendFromConfig(cfg)
		if got == nil {
			t.Fatal("imageBackendFromConfig() = nil, want backend")
		}
		if got.Prefix != "https://cdn.example.com" {
			t.Errorf("Prefix = %q, want https://cdn.example.com", got.Prefix)
		}
		if got.Extension != "webp" {
			t.Errorf("Extension = %q, want webp", got.Extension)
		}
	})
}

// ---------------------------------------------------------------------------
// TestServiceOptions - Library option construction
// ---------------------------------------------------------------------------

func TestServiceOptions(t *testing.T) {
	t.Parallel()

	t.Run("no timeout and no assets", func(t *testing.T) {
		t.Parallel()

		opts, err := serviceOptions(&config.Config{}, 0)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(opts) != 0 {
			t.Errorf("got %d options, want 0", len(opts))
		}
	})

	t.Run("timeout adds option", func(t *testing.T) {
		t.Parallel()

		opts, err := serviceOptions(&config.Config{}, 30*time.Second)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(opts) != 1 {
			t.Errorf("got %d options, want 1", len(opts))
		}
	})

	t.Run("sub-second timeout is clamped, not rejected", func(t *testing.T) {
		t.Parallel()

		opts, err := serviceOptions(&config.Config{}, 500*time.Millisecond)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(opts) != 1 {
			t.Errorf("got %d options, want 1", len(opts))
		}
	})

	t.Run("asset path adds option", func(t *testing.T) {
		t.Parallel()

		cfg := &config.Config{}
		cfg.Assets.BasePath = t.TempDir()
		opts, err := serviceOptions(cfg, 0)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(opts) != 1 {
			t.Errorf("got %d options, want 1", len(opts))
		}
	})

	t.Run("missing asset directory returns error", func(t *testing.T) {
		t.Parallel()

		cfg := &config.Config{}
		cfg.Assets.BasePath = filepath.Join(t.TempDir(), "absent")
		_, err := serviceOptions(cfg, 0)
		if err == nil {
			t.Error("expected error for missing asset directory")
		}
	})
}

// ---------------------------------------------------------------------------
// TestHintFor - Actionable hints for known failure classes
// ---------------------------------------------------------------------------

func TestHintFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		err     error
		wantSub string
	}{
		{"timeout", context.DeadlineExceeded, "--timeout"},
		{"workbook not found", ErrWorkbookNotFound, "macrobrief init"},
		{"template exists", workbook.ErrTemplateExists, "--force"},
		{"write output", ErrWriteOutput, "writable"},
		{"tab empty", gsheet.ErrTabEmpty, "Anyone with the link"},
		{"config not found", config.ErrConfigNotFound, "--config"},
		{"unknown error", errors.New("mystery"), ""},
		{"nil error", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := hintFor(tt.err)
			if tt.wantSub == "" {
				if got != "" {
					t.Errorf("hintFor(%v) = %q, want empty", tt.err, got)
				}
				return
			}
			if !strings.Contains(got, tt.wantSub) {
				t.Errorf("hintFor(%v) = %q, should contain %q", tt.err, got, tt.wantSub)
			}
		})
	}
}
