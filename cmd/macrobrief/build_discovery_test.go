package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/globalite/go-macrobrief/internal/config"
)

// discoveryEnv returns an Environment with a fixed clock for stable
// snapshot names.
func discoveryEnv() *Environment {
	return &Environment{
		Now: func() time.Time {
			return time.Date(2026, 1, 5, 9, 30, 0, 0, time.UTC)
		},
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

func TestDiscoverJobs(t *testing.T) {
	t.Parallel()

	// Create temp directory structure
	tempDir := t.TempDir()

	files := []string{
		"q1.xlsx",
		"q2.xlsx",
		"sub/q3.xlsx",
		"history/q1_2025-12-01_0900.xlsx", // snapshots must not be re-built
		"~$q1.xlsx",                       // Excel lock file
		"notes.txt",
	}

	for _, path := range files {
		fullPath := filepath.Join(tempDir, path)
		if err := os.MkdirAll(filepath.Dir(fullPath), 0750); err != nil {
			t.Fatalf("failed to create dir: %v", err)
		}
		if err := os.WriteFile(fullPath, []byte("stub"), 0644); err != nil {
			t.Fatalf("failed to write file: %v", err)
		}
	}

	t.Run("single file", func(t *testing.T) {
		t.Parallel()

		source := filepath.Join(tempDir, "q1.xlsx")
		jobs, err := discoverJobs([]string{source}, &config.Config{}, &buildFlags{}, discoveryEnv())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(jobs) != 1 {
			t.Fatalf("got %d jobs, want 1", len(jobs))
		}
		if jobs[0].SourcePath != source {
			t.Errorf("SourcePath = %q, want %q", jobs[0].SourcePath, source)
		}
		wantOut := filepath.Join(tempDir, "q1.html")
		if jobs[0].OutputPath != wantOut {
			t.Errorf("OutputPath = %q, want %q", jobs[0].OutputPath, wantOut)
		}
		wantSnapshot := filepath.Join(tempDir, "history", "q1_2026-01-05_0930.xlsx")
		if jobs[0].SnapshotPath != wantSnapshot {
			t.Errorf("SnapshotPath = %q, want %q", jobs[0].SnapshotPath, wantSnapshot)
		}
	})

	t.Run("directory skips snapshots and lock files", func(t *testing.T) {
		t.Parallel()

		jobs, err := discoverJobs([]string{tempDir}, &config.Config{}, &buildFlags{}, discoveryEnv())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(jobs) != 3 {
			t.Errorf("got %d jobs, want 3 (q1.xlsx, q2.xlsx, sub/q3.xlsx)", len(jobs))
		}
		for _, job := range jobs {
			base := filepath.Base(job.SourcePath)
			if base == "~$q1.xlsx" {
				t.Error("lock file should be skipped")
			}
			if filepath.Base(filepath.Dir(job.SourcePath)) == "history" {
				t.Error("history snapshots should be skipped")
			}
		}
	})

	t.Run("directory with output dir mirrors structure", func(t *testing.T) {
		t.Parallel()

		outputDir := filepath.Join(tempDir, "out")
		flags := &buildFlags{out: outputDir}
		jobs, err := discoverJobs([]string{tempDir}, &config.Config{}, flags, discoveryEnv())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		foundMirrored := false
		for _, job := range jobs {
			if filepath.Base(job.SourcePath) == "q3.xlsx" {
				wantOut := filepath.Join(outputDir, "sub", "q3.html")
				if job.OutputPath != wantOut {
					t.Errorf("OutputPath = %q, want %q", job.OutputPath, wantOut)
				}
				foundMirrored = true
			}
		}
		if !foundMirrored {
			t.Error("did not find q3.xlsx in results")
		}
	})

	t.Run("configured workbook used when no args", func(t *testing.T) {
		t.Parallel()

		source := filepath.Join(tempDir, "q2.xlsx")
		cfg := &config.Config{}
		cfg.Source.Workbook = source
		jobs, err := discoverJobs(nil, cfg, &buildFlags{}, discoveryEnv())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(jobs) != 1 || jobs[0].SourcePath != source {
			t.Errorf("jobs = %+v, want single job for %q", jobs, source)
		}
	})

	t.Run("missing default workbook", func(t *testing.T) {
		t.Parallel()

		cfg := &config.Config{}
		cfg.Source.Workbook = filepath.Join(tempDir, "absent.xlsx")
		_, err := discoverJobs(nil, cfg, &buildFlags{}, discoveryEnv())
		if !errors.Is(err, ErrWorkbookNotFound) {
			t.Errorf("error = %v, want %v", err, ErrWorkbookNotFound)
		}
	})

	t.Run("invalid extension returns error", func(t *testing.T) {
		t.Parallel()

		source := filepath.Join(tempDir, "notes.txt")
		_, err := discoverJobs([]string{source}, &config.Config{}, &buildFlags{}, discoveryEnv())
		if !errors.Is(err, ErrInvalidExtension) {
			t.Errorf("error = %v, want %v", err, ErrInvalidExtension)
		}
	})

	t.Run("history disabled leaves snapshot path empty", func(t *testing.T) {
		t.Parallel()

		source := filepath.Join(tempDir, "q1.xlsx")
		cfg := &config.Config{}
		cfg.History.Disabled = true
		jobs, err := discoverJobs([]string{source}, cfg, &buildFlags{}, discoveryEnv())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if jobs[0].SnapshotPath != "" {
			t.Errorf("SnapshotPath = %q, want empty", jobs[0].SnapshotPath)
		}
	})

	t.Run("custom history dir and pattern", func(t *testing.T) {
		t.Parallel()

		source := filepath.Join(tempDir, "q1.xlsx")
		cfg := &config.Config{}
		cfg.History.Dir = filepath.Join(tempDir, "archive")
		cfg.History.Pattern = "compact"
		jobs, err := discoverJobs([]string{source}, cfg, &buildFlags{}, discoveryEnv())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := filepath.Join(tempDir, "archive", "q1_20260105.xlsx")
		if jobs[0].SnapshotPath != want {
			t.Errorf("SnapshotPath = %q, want %q", jobs[0].SnapshotPath, want)
		}
	})

	t.Run("empty directory returns error", func(t *testing.T) {
		t.Parallel()

		emptyDir := t.TempDir()
		_, err := discoverJobs([]string{emptyDir}, &config.Config{}, &buildFlags{}, discoveryEnv())
		if err == nil {
			t.Error("expected error for directory without workbooks")
		}
	})
}

func TestResolveOutputPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		inputPath    string
		outputDir    string
		baseInputDir string
		want         string
	}{
		{
			name:      "no output dir - HTML next to source",
			inputPath: "/issues/q1.xlsx",
			outputDir: "",
			want:      "/issues/q1.html",
		},
		{
			name:      "output is HTML file",
			inputPath: "/issues/q1.xlsx",
			outputDir: "/out/issue.html",
			want:      "/out/issue.html",
		},
		{
			name:      "output is PDF file - normalized to HTML sibling",
			inputPath: "/issues/q1.xlsx",
			outputDir: "/out/issue.pdf",
			want:      "/out/issue.html",
		},
		{
			name:      "output is directory - single file",
			inputPath: "/issues/q1.xlsx",
			outputDir: "/out/",
			want:      "/out/q1.html",
		},
		{
			name:         "output is directory - mirror structure",
			inputPath:    "/issues/subdir/q1.xlsx",
			outputDir:    "/out",
			baseInputDir: "/issues",
			want:         "/out/subdir/q1.html",
		},
		{
			name:         "mirror structure with nested dirs",
			inputPath:    "/issues/a/b/c/q1.xlsx",
			outputDir:    "/out",
			baseInputDir: "/issues",
			want:         "/out/a/b/c/q1.html",
		},
		{
			// When filepath.Rel fails (e.g., different drives on Windows),
			// falls back to flat output in outputDir.
			name:         "filepath.Rel fallback - unrelated paths",
			inputPath:    "relative/q1.xlsx",
			outputDir:    "/out",
			baseInputDir: "/absolute/base",
			want:         "/out/q1.html",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := resolveOutputPath(tt.inputPath, tt.outputDir, tt.baseInputDir)
			if got != tt.want {
				t.Errorf("resolveOutputPath() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSheetOutputPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		flagOut string
		cfgDir  string
		want    string
	}{
		{
			name:    "defaults to newsletter.html",
			flagOut: "",
			cfgDir:  "",
			want:    "newsletter.html",
		},
		{
			name:    "config default dir",
			flagOut: "",
			cfgDir:  "dist",
			want:    filepath.Join("dist", "newsletter.html"),
		},
		{
			name:    "explicit HTML file",
			flagOut: "issue.html",
			want:    "issue.html",
		},
		{
			name:    "explicit PDF file - normalized to HTML sibling",
			flagOut: "issue.pdf",
			want:    "issue.html",
		},
		{
			name:    "directory",
			flagOut: "dist",
			want:    filepath.Join("dist", "newsletter.html"),
		},
		{
			name:    "flag wins over config dir",
			flagOut: "out/issue.html",
			cfgDir:  "dist",
			want:    "out/issue.html",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := &config.Config{}
			cfg.Output.DefaultDir = tt.cfgDir
			got := sheetOutputPath(tt.flagOut, cfg)
			if got != tt.want {
				t.Errorf("sheetOutputPath(%q) = %q, want %q", tt.flagOut, got, tt.want)
			}
		})
	}
}

func TestPDFOutputPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		htmlPath string
		want     string
	}{
		{"newsletter.html", "newsletter.pdf"},
		{"/out/issue.html", "/out/issue.pdf"},
		{filepath.Join("a", "b.html"), filepath.Join("a", "b.pdf")},
	}

	for _, tt := range tests {
		t.Run(tt.htmlPath, func(t *testing.T) {
			t.Parallel()

			got := pdfOutputPath(tt.htmlPath)
			if got != tt.want {
				t.Errorf("pdfOutputPath(%q) = %q, want %q", tt.htmlPath, got, tt.want)
			}
		})
	}
}

func TestValidateWorkbookExtension(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{
			name:    "valid .xlsx extension",
			path:    "data.xlsx",
			wantErr: false,
		},
		{
			name:    "legacy .xls extension",
			path:    "data.xls",
			wantErr: true,
		},
		{
			name:    "csv extension",
			path:    "data.csv",
			wantErr: true,
		},
		{
			name:    "no extension",
			path:    "data",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := validateWorkbookExtension(tt.path)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateWorkbookExtension() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateWorkers(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		n       int
		wantErr bool
	}{
		{"negative", -1, true},
		{"zero means auto", 0, false},
		{"one", 1, false},
		{"at maximum", 8, false},
		{"above maximum", 9, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := validateWorkers(tt.n)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateWorkers(%d) error = %v, wantErr %v", tt.n, err, tt.wantErr)
			}
		})
	}
}
