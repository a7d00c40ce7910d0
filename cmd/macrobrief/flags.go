package main

import (
	"os"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// sourceFlags holds issue source flags.
type sourceFlags struct {
	sheet           string
	metaTab         string
	pointsTab       string
	distributionTab string
	priceTab        string
}

// historyFlags holds snapshot archiving flags.
type historyFlags struct {
	dir      string
	pattern  string
	disabled bool
}

// imageFlags holds hosted image resolution flags.
type imageFlags struct {
	prefix    string
	extension string
	disabled  bool
}

// assetFlags holds asset override flags.
type assetFlags struct {
	assetPath string
}

// buildFlags holds all flags for the build command.
type buildFlags struct {
	common  commonFlags
	out     string
	workers int
	timeout string
	pdf     bool
	source  sourceFlags
	history historyFlags
	images  imageFlags
	assets  assetFlags
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show detailed timing")
}

// addSourceFlags adds issue source flags to a FlagSet.
func addSourceFlags(fs *flag.FlagSet, f *sourceFlags) {
	fs.StringVarP(&f.sheet, "sheet", "s", "", "Google Sheet URL or ID")
	fs.StringVar(&f.metaTab, "meta-tab", "", "settings tab name (default \"meta\")")
	fs.StringVar(&f.pointsTab, "points-tab", "", "content points tab name (default \"points\")")
	fs.StringVar(&f.distributionTab, "distribution-tab", "", "ownership tab name (default \"distribution\")")
	fs.StringVar(&f.priceTab, "price-tab", "", "price history tab name (default \"price\")")
}

// addHistoryFlags adds snapshot archiving flags to a FlagSet.
func addHistoryFlags(fs *flag.FlagSet, f *historyFlags) {
	fs.StringVar(&f.dir, "history-dir", "", "snapshot directory (default \"history\" next to source)")
	fs.StringVar(&f.pattern, "history-pattern", "", "snapshot timestamp pattern or preset")
	fs.BoolVar(&f.disabled, "no-history", false, "skip writing the source snapshot")
}

// addImageFlags adds hosted image flags to a FlagSet.
func addImageFlags(fs *flag.FlagSet, f *imageFlags) {
	fs.StringVar(&f.prefix, "image-prefix", "", "base URL for hosted issue images")
	fs.StringVar(&f.extension, "image-ext", "", "extension for hosted image names (default \"png\")")
	fs.BoolVar(&f.disabled, "no-images", false, "disable hosted image resolution")
}

// addAssetFlags adds asset override flags to a FlagSet.
func addAssetFlags(fs *flag.FlagSet, f *assetFlags) {
	fs.StringVar(&f.assetPath, "asset-path", "", "custom asset directory")
}

// parseBuildFlags parses build command flags and returns positional args.
func parseBuildFlags(args []string) (*buildFlags, []string, error) {
	fs := flag.NewFlagSet("build", flag.ContinueOnError)
	f := &buildFlags{}

	// I/O flags
	fs.StringVarP(&f.out, "out", "o", "", "output file or directory")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "PDF export timeout (e.g., 30s, 2m)")
	fs.BoolVar(&f.pdf, "pdf", false, "also export the issue as PDF")

	// Flag groups
	addCommonFlags(fs, &f.common)
	addSourceFlags(fs, &f.source)
	addHistoryFlags(fs, &f.history)
	addImageFlags(fs, &f.images)
	addAssetFlags(fs, &f.assets)

	fs.Usage = func() { printBuildUsage(os.Stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	return f, fs.Args(), nil
}
