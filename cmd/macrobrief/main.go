package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/globalite/go-macrobrief/internal/fileutil"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	os.Exit(runMain(os.Args, DefaultEnv()))
}

// runMain dispatches to the requested command and returns an exit code.
func runMain(args []string, env *Environment) int {
	if len(args) < 2 {
		printUsage(env.Stderr)
		return ExitUsage
	}

	switch args[1] {
	case "-h", "--help":
		printUsage(env.Stdout)
		return ExitSuccess
	case "--version":
		fmt.Fprintf(env.Stdout, "macrobrief %s\n", Version)
		return ExitSuccess
	}

	if isCommand(args[1]) {
		return runCommand(args[1], args[2:], env)
	}

	// Workbook paths and bare flags run an implicit build, so the
	// flag-only invocation style keeps working.
	if looksLikeWorkbook(args[1]) || strings.HasPrefix(args[1], "-") {
		return runBuildCmd(args[1:], env)
	}

	if fileutil.IsURL(args[1]) {
		fmt.Fprintf(env.Stderr, "pass Google Sheets links via --sheet: macrobrief build --sheet %s\n", args[1])
		return ExitUsage
	}

	fmt.Fprintf(env.Stderr, "unknown command: %s\n", args[1])
	printUsage(env.Stderr)
	return ExitUsage
}

// isCommand reports whether name is a known subcommand.
func isCommand(name string) bool {
	switch name {
	case "build", "init", "doctor", "version", "help":
		return true
	}
	return false
}

// runCommand executes a known subcommand.
func runCommand(name string, args []string, env *Environment) int {
	switch name {
	case "build":
		return runBuildCmd(args, env)
	case "init":
		return runInitCmd(args, env)
	case "doctor":
		return runDoctorCmd(args, env)
	case "version":
		fmt.Fprintf(env.Stdout, "macrobrief %s\n", Version)
		return ExitSuccess
	case "help":
		runHelp(args, env)
		return ExitSuccess
	}
	return ExitUsage
}

// looksLikeWorkbook reports whether the argument names an Excel workbook.
func looksLikeWorkbook(path string) bool {
	return strings.HasSuffix(path, ".xlsx")
}
