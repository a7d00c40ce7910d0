package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	flag "github.com/spf13/pflag"

	"github.com/globalite/go-macrobrief/internal/workbook"
)

// runInitCmd creates a starter workbook and returns an exit code.
func runInitCmd(args []string, env *Environment) int {
	fs := flag.NewFlagSet("init", flag.ContinueOnError)
	fs.SetOutput(env.Stderr)
	force := fs.BoolP("force", "f", false, "overwrite an existing workbook")
	fs.Usage = func() { printInitUsage(os.Stderr) }

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return ExitSuccess
		}
		fmt.Fprintln(env.Stderr, err)
		return ExitUsage
	}

	path := defaultWorkbookName
	if fs.NArg() > 0 {
		path = fs.Arg(0)
	}

	if err := initWorkbook(path, *force); err != nil {
		fmt.Fprintf(env.Stderr, "%v%s\n", err, hintFor(err))
		return exitCodeFor(err)
	}

	fmt.Fprintf(env.Stdout, "Template created: %s\n", path)
	return ExitSuccess
}

// initWorkbook validates the target path and writes the starter workbook.
func initWorkbook(path string, force bool) error {
	if err := validateWorkbookExtension(path); err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, dirPermissions); err != nil {
			return fmt.Errorf("creating workbook directory: %w", err)
		}
	}
	return workbook.CreateTemplate(path, force)
}
