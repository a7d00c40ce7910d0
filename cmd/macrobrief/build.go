package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	flag "github.com/spf13/pflag"
	"go.uber.org/automaxprocs/maxprocs"

	macrobrief "github.com/globalite/go-macrobrief"
	"github.com/globalite/go-macrobrief/internal/assets"
	"github.com/globalite/go-macrobrief/internal/config"
	"github.com/globalite/go-macrobrief/internal/dateutil"
	"github.com/globalite/go-macrobrief/internal/gsheet"
	"github.com/globalite/go-macrobrief/internal/hints"
	"github.com/globalite/go-macrobrief/internal/workbook"
)

// Sentinel errors for CLI operations.
var (
	ErrSheetWithPaths = errors.New("cannot combine --sheet with workbook paths")
	ErrWriteOutput    = errors.New("failed to write output file")
	ErrInvalidTimeout = errors.New("invalid timeout")
)

// runBuildCmd executes the build command and returns an exit code.
func runBuildCmd(args []string, env *Environment) int {
	flags, positional, err := parseBuildFlags(args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return ExitSuccess
		}
		fmt.Fprintln(env.Stderr, err)
		return ExitUsage
	}

	// Configure GOMAXPROCS with conditional logging.
	// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
	// in which case Go runtime defaults apply and the program continues safely.
	if flags.common.verbose {
		_, _ = maxprocs.Set(maxprocs.Logger(func(format string, args ...interface{}) {
			fmt.Fprintf(env.Stderr, format+"\n", args...)
		}))
	} else {
		_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...interface{}) {}))
	}

	warnUnknownEnvVars(env.Stderr)
	envCfg := loadEnvConfig()

	cfg, err := resolveConfig(flags, envCfg)
	if err != nil {
		fmt.Fprintf(env.Stderr, "%v%s\n", err, hintFor(err))
		return exitCodeFor(err)
	}

	timeout, err := resolveTimeoutWithEnv(flags.timeout, envCfg.Timeout, cfg.PDF.Timeout)
	if err != nil {
		fmt.Fprintln(env.Stderr, err)
		return exitCodeFor(err)
	}

	workers := flags.workers
	if workers == 0 {
		workers = envCfg.Workers
	}
	if err := validateWorkers(workers); err != nil {
		fmt.Fprintln(env.Stderr, err)
		return exitCodeFor(err)
	}

	opts, err := serviceOptions(cfg, timeout)
	if err != nil {
		fmt.Fprintf(env.Stderr, "%v%s\n", err, hintFor(err))
		return exitCodeFor(err)
	}

	poolSize := macrobrief.ResolvePoolSize(workers)
	if flags.common.verbose {
		fmt.Fprintf(env.Stderr, "Pool size: %d\n", poolSize)
	}
	pool := &poolAdapter{pool: macrobrief.NewServicePool(poolSize, opts...)}
	defer pool.Close()

	ctx, stop := notifyContext(context.Background())
	defer stop()

	if err := runBuild(ctx, positional, flags, cfg, pool, env); err != nil {
		fmt.Fprintf(env.Stderr, "%v%s\n", err, hintFor(err))
		return exitCodeFor(err)
	}
	return ExitSuccess
}

// resolveConfig loads configuration and applies the override layers:
// CLI flags > environment variables > config file > defaults.
func resolveConfig(flags *buildFlags, envCfg *envConfig) (*config.Config, error) {
	name := flags.common.config
	if name == "" {
		name = envCfg.ConfigPath
	}

	cfg := config.DefaultConfig()
	if name != "" {
		loaded, err := config.LoadConfig(name)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
		cfg = loaded
	}

	applyEnvConfig(envCfg, cfg)
	mergeFlags(flags, cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// mergeFlags merges CLI flags into config. CLI values override config values.
func mergeFlags(flags *buildFlags, cfg *config.Config) {
	// Source flags
	if flags.source.sheet != "" {
		cfg.Source.Sheet = flags.source.sheet
	}
	if flags.source.metaTab != "" {
		cfg.Source.MetaTab = flags.source.metaTab
	}
	if flags.source.pointsTab != "" {
		cfg.Source.PointsTab = flags.source.pointsTab
	}
	if flags.source.distributionTab != "" {
		cfg.Source.DistributionTab = flags.source.distributionTab
	}
	if flags.source.priceTab != "" {
		cfg.Source.PriceTab = flags.source.priceTab
	}

	// History flags
	if flags.history.dir != "" {
		cfg.History.Dir = flags.history.dir
	}
	if flags.history.pattern != "" {
		cfg.History.Pattern = flags.history.pattern
	}

	// Image flags (prefix auto-enables)
	if flags.images.prefix != "" {
		cfg.Images.Prefix = flags.images.prefix
		cfg.Images.Enabled = true
	}
	if flags.images.extension != "" {
		cfg.Images.Extension = flags.images.extension
	}

	// Asset flags
	if flags.assets.assetPath != "" {
		cfg.Assets.BasePath = flags.assets.assetPath
	}

	// PDF flag (an explicit .pdf output also enables export)
	if flags.pdf || strings.HasSuffix(flags.out, ".pdf") {
		cfg.PDF.Enabled = true
	}

	// Disable flags
	if flags.history.disabled {
		cfg.History.Disabled = true
	}
	if flags.images.disabled {
		cfg.Images.Enabled = false
	}
}

// resolveTimeoutWithEnv resolves the PDF export timeout.
// Priority: CLI flag > environment variable > config file.
// Returns 0 when nothing is set, leaving the library default in place.
func resolveTimeoutWithEnv(flagValue string, envValue time.Duration, configValue string) (time.Duration, error) {
	if flagValue != "" {
		return parseTimeout(flagValue)
	}
	if envValue > 0 {
		return envValue, nil
	}
	if configValue != "" {
		return parseTimeout(configValue)
	}
	return 0, nil
}

// parseTimeout parses a duration string and requires it to be positive.
func parseTimeout(value string) (time.Duration, error) {
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%w %q: use a duration like 30s or 2m", ErrInvalidTimeout, value)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%w %q: must be positive", ErrInvalidTimeout, value)
	}
	return d, nil
}

// serviceOptions builds library options from the resolved configuration.
// Timeouts outside the library bounds are clamped, not rejected.
func serviceOptions(cfg *config.Config, timeout time.Duration) ([]macrobrief.Option, error) {
	var opts []macrobrief.Option

	if timeout > 0 {
		if timeout < macrobrief.MinTimeout {
			timeout = macrobrief.MinTimeout
		}
		if timeout > macrobrief.MaxTimeout {
			timeout = macrobrief.MaxTimeout
		}
		opts = append(opts, macrobrief.WithTimeout(timeout))
	}

	if cfg.Assets.BasePath != "" {
		resolver, err := assets.NewAssetResolver(cfg.Assets.BasePath)
		if err != nil {
			return nil, fmt.Errorf("loading assets: %w", err)
		}
		opts = append(opts, macrobrief.WithAssetLoader(resolver))
	}

	return opts, nil
}

// runBuild orchestrates one run: resolve sources, snapshot them, render
// every issue, and report results.
func runBuild(ctx context.Context, positionalArgs []string, flags *buildFlags, cfg *config.Config, pool Pool, env *Environment) error {
	if cfg.Source.Sheet != "" && len(positionalArgs) > 0 {
		return fmt.Errorf("%w: %s", ErrSheetWithPaths, strings.Join(positionalArgs, " "))
	}

	var jobs []BuildJob
	var err error
	if cfg.Source.Sheet != "" {
		jobs, err = prepareSheetJob(ctx, cfg, flags, env)
	} else {
		jobs, err = discoverJobs(positionalArgs, cfg, flags, env)
	}
	if err != nil {
		return err
	}

	params := &buildParams{
		pdf:    cfg.PDF.Enabled,
		images: imageBackendFromConfig(cfg),
	}

	results := buildBatch(ctx, pool, jobs, params)

	failedCount := printResults(results, flags.common.quiet, flags.common.verbose, env)
	if failedCount > 0 {
		return fmt.Errorf("%d build(s) failed", failedCount)
	}
	return nil
}

// prepareSheetJob fetches the four tabs from a Google Sheet, archives a
// snapshot workbook, and returns the single resulting job.
func prepareSheetJob(ctx context.Context, cfg *config.Config, flags *buildFlags, env *Environment) ([]BuildJob, error) {
	sheetID, err := gsheet.ExtractID(cfg.Source.Sheet)
	if err != nil {
		return nil, err
	}

	fetched, err := gsheet.NewClient().FetchTables(ctx, sheetID, tabsFromConfig(cfg))
	if err != nil {
		return nil, err
	}

	tables := &workbook.Tables{
		Meta:         fetched.Meta,
		Points:       fetched.Points,
		Distribution: fetched.Distribution,
		Price:        fetched.Price,
	}

	job := BuildJob{
		SourcePath: cfg.Source.Sheet,
		OutputPath: sheetOutputPath(flags.out, cfg),
		Tables:     tables,
	}

	// Fetched tabs are archived before rendering, so a build failure
	// still leaves the source data on disk.
	if !cfg.History.Disabled {
		layout, err := dateutil.ResolvePattern(cfg.History.Pattern)
		if err != nil {
			return nil, err
		}
		dir := cfg.History.Dir
		if dir == "" {
			dir = "history"
		}
		if err := os.MkdirAll(dir, dirPermissions); err != nil {
			return nil, fmt.Errorf("creating history directory: %w", err)
		}
		snapshot := workbook.HistoryPath(dir, "newsletter", layout, env.Now())
		if err := workbook.WriteSnapshot(snapshot, *tables); err != nil {
			return nil, err
		}
		job.SnapshotPath = snapshot
	}

	return []BuildJob{job}, nil
}

// tabsFromConfig resolves tab names, falling back to the conventional ones.
func tabsFromConfig(cfg *config.Config) gsheet.Tabs {
	tabs := gsheet.DefaultTabs()
	if cfg.Source.MetaTab != "" {
		tabs.Meta = cfg.Source.MetaTab
	}
	if cfg.Source.PointsTab != "" {
		tabs.Points = cfg.Source.PointsTab
	}
	if cfg.Source.DistributionTab != "" {
		tabs.Distribution = cfg.Source.DistributionTab
	}
	if cfg.Source.PriceTab != "" {
		tabs.Price = cfg.Source.PriceTab
	}
	return tabs
}

// imageBackendFromConfig converts image settings to the library type.
func imageBackendFromConfig(cfg *config.Config) *macrobrief.ImageBackend {
	if !cfg.Images.Enabled {
		return nil
	}
	return &macrobrief.ImageBackend{
		Prefix:    cfg.Images.Prefix,
		Extension: cfg.Images.Extension,
	}
}

// hintFor returns an actionable hint for known failure classes, or "".
func hintFor(err error) string {
	switch {
	case errors.Is(err, macrobrief.ErrBrowserConnect):
		return hints.ForBrowserConnect()
	case errors.Is(err, context.DeadlineExceeded):
		return hints.ForTimeout()
	case errors.Is(err, config.ErrConfigNotFound):
		return hints.ForConfigNotFound(configHintPaths())
	case errors.Is(err, gsheet.ErrTabUnavailable), errors.Is(err, gsheet.ErrTabEmpty):
		return hints.ForSheetFetch()
	case errors.Is(err, ErrWorkbookNotFound):
		return hints.ForWorkbookNotFound()
	case errors.Is(err, workbook.ErrTemplateExists):
		return hints.ForTemplateExists()
	case errors.Is(err, ErrWriteOutput):
		return hints.ForOutputDirectory()
	}
	return ""
}

// configHintPaths lists conventional user config locations for hints.
func configHintPaths() []string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return nil
	}
	return []string{filepath.Join(dir, "macrobrief", "config.yaml")}
}
