package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	macrobrief "github.com/globalite/go-macrobrief"
	"github.com/globalite/go-macrobrief/internal/render"
	"github.com/globalite/go-macrobrief/internal/workbook"
)

// File permission constants.
const (
	dirPermissions  = 0o750 // rwxr-x---: owner full, group read+execute
	filePermissions = 0o644 // rw-r--r--: owner read+write, others read
)

// ErrServiceInit reports that no build service could be created.
var ErrServiceInit = errors.New("failed to initialize build service")

// BuildJob describes one issue to build. Tables is pre-populated for
// sheet sources; for workbook sources it is nil and the file at
// SourcePath is read inside the worker.
type BuildJob struct {
	SourcePath   string
	OutputPath   string
	SnapshotPath string
	Tables       *workbook.Tables
}

// buildParams carries the per-run rendering settings shared by all jobs.
type buildParams struct {
	pdf    bool
	images *macrobrief.ImageBackend
}

// BuildResult holds the outcome of a single build.
type BuildResult struct {
	SourcePath   string
	OutputPath   string
	SnapshotPath string
	Points       int
	Segments     int
	Price        *macrobrief.PricePoint
	Err          error
	Duration     time.Duration
}

// buildBatch processes jobs concurrently using the service pool.
func buildBatch(ctx context.Context, pool Pool, jobs []BuildJob, params *buildParams) []BuildResult {
	if len(jobs) == 0 {
		return nil
	}

	concurrency := pool.Size()
	if concurrency > len(jobs) {
		concurrency = len(jobs)
	}

	results := make([]BuildResult, len(jobs))
	var wg sync.WaitGroup
	queue := make(chan int, len(jobs))

	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			svc := pool.Acquire()
			if svc == nil {
				// Service creation failed, mark remaining jobs as failed
				for idx := range queue {
					results[idx] = BuildResult{
						SourcePath: jobs[idx].SourcePath,
						Err:        ErrServiceInit,
					}
				}
				return
			}
			defer pool.Release(svc)

			for idx := range queue {
				if ctx.Err() != nil {
					results[idx] = BuildResult{
						SourcePath: jobs[idx].SourcePath,
						Err:        ctx.Err(),
					}
					continue
				}
				results[idx] = buildOne(ctx, svc, jobs[idx], params)
			}
		}()
	}

	for i := range jobs {
		queue <- i
	}
	close(queue)

	wg.Wait()
	return results
}

// buildOne processes a single job and returns the result. Workbook
// sources are archived before they are read, matching the sheet path
// where tabs are archived before rendering.
func buildOne(ctx context.Context, svc Builder, job BuildJob, params *buildParams) BuildResult {
	start := time.Now()
	result := BuildResult{
		SourcePath:   job.SourcePath,
		OutputPath:   job.OutputPath,
		SnapshotPath: job.SnapshotPath,
	}

	tables := job.Tables
	if tables == nil {
		if job.SnapshotPath != "" {
			if err := os.MkdirAll(filepath.Dir(job.SnapshotPath), dirPermissions); err != nil {
				result.Err = fmt.Errorf("creating history directory: %w", err)
				result.Duration = time.Since(start)
				return result
			}
			if err := workbook.CopySnapshot(job.SourcePath, job.SnapshotPath); err != nil {
				result.Err = err
				result.Duration = time.Since(start)
				return result
			}
		}

		read, err := workbook.ReadTables(job.SourcePath)
		if err != nil {
			result.Err = err
			result.Duration = time.Since(start)
			return result
		}
		tables = read
	}

	outDir := filepath.Dir(job.OutputPath)
	if err := os.MkdirAll(outDir, dirPermissions); err != nil {
		result.Err = fmt.Errorf("creating output directory: %w", err)
		result.Duration = time.Since(start)
		return result
	}

	rendered, err := svc.Render(ctx, macrobrief.Input{
		Meta:         tables.Meta,
		Points:       tables.Points,
		Distribution: tables.Distribution,
		Price:        tables.Price,
		ImageBackend: params.images,
		PDF:          params.pdf,
	})
	if err != nil {
		result.Err = err
		result.Duration = time.Since(start)
		return result
	}

	result.Points = rendered.Points
	result.Segments = rendered.Segments
	result.Price = rendered.Price

	// #nosec G306 -- HTML files are meant to be readable
	if err := os.WriteFile(job.OutputPath, []byte(rendered.HTML), filePermissions); err != nil {
		result.Err = fmt.Errorf("%w: %v", ErrWriteOutput, err)
		result.Duration = time.Since(start)
		return result
	}

	if params.pdf {
		// #nosec G306 -- PDFs are meant to be readable
		if err := os.WriteFile(pdfOutputPath(job.OutputPath), rendered.PDF, filePermissions); err != nil {
			result.Err = fmt.Errorf("%w: %v", ErrWriteOutput, err)
			result.Duration = time.Since(start)
			return result
		}
	}

	result.Duration = time.Since(start)
	return result
}

// ResultSummary holds the count of succeeded and failed builds.
type ResultSummary struct {
	Succeeded int
	Failed    int
}

// countResults tallies succeeded and failed builds.
func countResults(results []BuildResult) ResultSummary {
	var summary ResultSummary
	for _, r := range results {
		if r.Err != nil {
			summary.Failed++
		} else {
			summary.Succeeded++
		}
	}
	return summary
}

// printResults reports build outcomes. Failures always go to stderr;
// success reporting honors the quiet and verbose flags.
func printResults(results []BuildResult, quiet, verbose bool, env *Environment) int {
	summary := countResults(results)

	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(env.Stderr, "FAILED %s: %v\n", r.SourcePath, r.Err)
		}
	}

	if !quiet {
		if verbose {
			printResultsTable(results, env)
		} else {
			for _, r := range results {
				if r.Err != nil {
					continue
				}
				fmt.Fprintf(env.Stdout, "Created %s (%d points)\n", r.OutputPath, r.Points)
				if r.SnapshotPath != "" {
					fmt.Fprintf(env.Stdout, "Source snapshot saved: %s\n", r.SnapshotPath)
				}
			}
		}

		if len(results) > 1 {
			fmt.Fprintf(env.Stdout, "\n%d succeeded, %d failed\n", summary.Succeeded, summary.Failed)
		}
	}

	return summary.Failed
}

// printResultsTable renders successful builds as a table on stdout.
func printResultsTable(results []BuildResult, env *Environment) {
	t := table.NewWriter()
	t.SetOutputMirror(env.Stdout)
	t.SetStyle(table.StyleLight)
	t.Style().Options.DrawBorder = false
	t.AppendHeader(table.Row{"#", "Source", "Output", "Points", "Segments", "Price", "Time"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 4, Align: text.AlignRight, AlignHeader: text.AlignRight},
		{Number: 5, Align: text.AlignRight, AlignHeader: text.AlignRight},
		{Number: 6, Align: text.AlignRight, AlignHeader: text.AlignRight},
		{Number: 7, Align: text.AlignRight, AlignHeader: text.AlignRight},
	})

	row := 0
	for _, r := range results {
		if r.Err != nil {
			continue
		}
		row++
		price := "-"
		if r.Price != nil {
			price = render.FormatCurrency(r.Price.Price, r.Price.Currency)
		}
		t.AppendRow(table.Row{row, r.SourcePath, r.OutputPath, r.Points, r.Segments, price, r.Duration.Round(time.Millisecond)})
	}
	if row > 0 {
		t.Render()
	}
}
