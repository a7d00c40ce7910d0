package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	macrobrief "github.com/globalite/go-macrobrief"
	"github.com/globalite/go-macrobrief/internal/config"
	"github.com/globalite/go-macrobrief/internal/dateutil"
	"github.com/globalite/go-macrobrief/internal/workbook"
)

// Sentinel errors for source discovery.
var (
	ErrWorkbookNotFound   = errors.New("workbook not found")
	ErrInvalidExtension   = errors.New("file must have .xlsx extension")
	ErrInvalidWorkerCount = errors.New("invalid worker count")
)

// Default source and output names when nothing else is configured.
const (
	defaultWorkbookName = "newsletter_data.xlsx"
	defaultSheetOutput  = "newsletter.html"
)

// discoverJobs resolves workbook sources into build jobs. Without
// arguments the configured (or conventional) workbook is used. A
// directory argument is walked for workbooks.
func discoverJobs(positionalArgs []string, cfg *config.Config, flags *buildFlags, env *Environment) ([]BuildJob, error) {
	sources := positionalArgs
	if len(sources) == 0 {
		source := cfg.Source.Workbook
		if source == "" {
			source = defaultWorkbookName
		}
		sources = []string{source}
	}

	outputDir := flags.out
	if outputDir == "" {
		outputDir = cfg.Output.DefaultDir
	}

	layout := ""
	if !cfg.History.Disabled {
		var err error
		layout, err = dateutil.ResolvePattern(cfg.History.Pattern)
		if err != nil {
			return nil, err
		}
	}

	var jobs []BuildJob
	for _, source := range sources {
		info, err := os.Stat(source)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("%w: %s", ErrWorkbookNotFound, source)
			}
			return nil, err
		}

		if !info.IsDir() {
			if err := validateWorkbookExtension(source); err != nil {
				return nil, err
			}
			jobs = append(jobs, newWorkbookJob(source, outputDir, "", cfg, layout, env))
			continue
		}

		walked, err := walkWorkbooks(source, outputDir, cfg, layout, env)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, walked...)
	}

	if len(jobs) == 0 {
		return nil, fmt.Errorf("no workbooks found in %s", strings.Join(sources, ", "))
	}

	return jobs, nil
}

// newWorkbookJob builds the job for one workbook path.
func newWorkbookJob(source, outputDir, baseInputDir string, cfg *config.Config, layout string, env *Environment) BuildJob {
	job := BuildJob{
		SourcePath: source,
		OutputPath: resolveOutputPath(source, outputDir, baseInputDir),
	}
	if !cfg.History.Disabled {
		dir := cfg.History.Dir
		if dir == "" {
			dir = filepath.Join(filepath.Dir(source), "history")
		}
		base := strings.TrimSuffix(filepath.Base(source), filepath.Ext(source))
		job.SnapshotPath = workbook.HistoryPath(dir, base, layout, env.Now())
	}
	return job
}

// walkWorkbooks collects workbook jobs under a directory tree.
// Snapshot directories and Excel lock files (~$...) are skipped.
func walkWorkbooks(root, outputDir string, cfg *config.Config, layout string, env *Environment) ([]BuildJob, error) {
	var jobs []BuildJob
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("scanning %s: %w", path, err)
		}
		if d.IsDir() {
			if d.Name() == "history" && path != root {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) != ".xlsx" || strings.HasPrefix(d.Name(), "~$") {
			return nil
		}
		jobs = append(jobs, newWorkbookJob(path, outputDir, root, cfg, layout, env))
		return nil
	})
	return jobs, err
}

// resolveOutputPath determines the HTML output path for a workbook.
// A .pdf target is normalized to its .html sibling; the PDF itself
// lands next to it via pdfOutputPath.
func resolveOutputPath(inputPath, outputDir, baseInputDir string) string {
	ext := filepath.Ext(inputPath)
	base := strings.TrimSuffix(filepath.Base(inputPath), ext)

	if outputDir == "" {
		return filepath.Join(filepath.Dir(inputPath), base+".html")
	}

	if strings.HasSuffix(outputDir, ".html") {
		return outputDir
	}

	if strings.HasSuffix(outputDir, ".pdf") {
		return strings.TrimSuffix(outputDir, ".pdf") + ".html"
	}

	if baseInputDir != "" {
		relPath, err := filepath.Rel(baseInputDir, inputPath)
		if err == nil {
			relDir := filepath.Dir(relPath)
			return filepath.Join(outputDir, relDir, base+".html")
		}
	}

	return filepath.Join(outputDir, base+".html")
}

// sheetOutputPath determines the HTML output path for a fetched sheet.
func sheetOutputPath(flagOut string, cfg *config.Config) string {
	out := flagOut
	if out == "" {
		out = cfg.Output.DefaultDir
	}
	if out == "" {
		return defaultSheetOutput
	}
	if strings.HasSuffix(out, ".html") {
		return out
	}
	if strings.HasSuffix(out, ".pdf") {
		return strings.TrimSuffix(out, ".pdf") + ".html"
	}
	return filepath.Join(out, defaultSheetOutput)
}

// pdfOutputPath returns the PDF path corresponding to an HTML path.
func pdfOutputPath(htmlPath string) string {
	return strings.TrimSuffix(htmlPath, ".html") + ".pdf"
}

// validateWorkbookExtension checks that the file has an .xlsx extension.
func validateWorkbookExtension(path string) error {
	if ext := filepath.Ext(path); ext != ".xlsx" {
		return fmt.Errorf("%w: got %q", ErrInvalidExtension, ext)
	}
	return nil
}

// validateWorkers checks that the worker count is within valid bounds.
func validateWorkers(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: %d (must be >= 0, 0 means auto)", ErrInvalidWorkerCount, n)
	}
	if n > macrobrief.MaxPoolSize {
		return fmt.Errorf("%w: %d (maximum is %d)", ErrInvalidWorkerCount, n, macrobrief.MaxPoolSize)
	}
	return nil
}
