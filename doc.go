// Package macrobrief renders the Globalite Macro Brief newsletter from
// spreadsheet data, with optional PDF export via headless Chrome.
//
// # Quick Start
//
// Create a service, render an issue, and close when done:
//
//	svc := macrobrief.New()
//	defer svc.Close()
//
//	result, err := svc.Render(ctx, macrobrief.Input{
//	    Meta:   metaCSV,
//	    Points: pointsCSV,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("index.html", []byte(result.HTML), 0644)
//
// The result carries the HTML document plus issue statistics. Set
// Input.PDF to also receive PDF bytes in result.PDF.
//
// # Rendering Pipeline
//
// Rendering follows these stages:
//
//  1. Tab parsing (forgiving CSV dialect, never fails)
//  2. Schema reading and validation (metadata, points, distribution, price)
//  3. Document assembly (content blocks, supply snapshot, price badge)
//  4. Optional PDF export via headless Chrome (go-rod)
//
// Identical input renders byte-identical HTML, so issues can be diffed
// and cached.
//
// # Configuration
//
// Use functional options to customize the service:
//
//	svc := macrobrief.New(
//	    macrobrief.WithTimeout(2 * time.Minute),
//	    macrobrief.WithAssetLoader(loader),
//	)
//
// Per-issue options are passed via Input:
//
//	result, err := svc.Render(ctx, macrobrief.Input{
//	    Meta:         metaCSV,
//	    Points:       pointsCSV,
//	    Distribution: distributionCSV,
//	    Price:        priceCSV,
//	    ImageBackend: &macrobrief.ImageBackend{Prefix: cdnPrefix, Extension: "webp"},
//	    PDF:          true,
//	})
//
// # Parallel Processing
//
// For batch builds, use ServicePool to manage multiple browser instances:
//
//	pool := macrobrief.NewServicePool(4)
//	defer pool.Close()
//
//	svc := pool.Acquire()
//	defer pool.Release(svc)
//	result, err := svc.Render(ctx, input)
//
// # Browser Requirements
//
// PDF export requires Chrome/Chromium. The go-rod library automatically
// downloads a managed Chromium instance on first run (~/.cache/rod/browser/).
// Use ROD_BROWSER_BIN to point at a pre-installed browser in containers.
package macrobrief
