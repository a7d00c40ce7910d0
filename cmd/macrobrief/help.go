package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: macrobrief <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  build      Build newsletter issues from workbooks or a Google Sheet")
	fmt.Fprintln(w, "  init       Create a starter workbook")
	fmt.Fprintln(w, "  doctor     Diagnose the PDF export environment")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'macrobrief help <command>' for details on a specific command.")
}

// printBuildUsage prints usage for the build command.
func printBuildUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: macrobrief build [workbooks...] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Build newsletter issues from Excel workbooks or a Google Sheet.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  workbooks    Workbook files or directories (default: newsletter_data.xlsx)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --out <path>          Output file or directory")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -w, --workers <n>         Parallel workers (0 = auto)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Google Sheets:")
	fmt.Fprintln(w, "  -s, --sheet <ref>         Google Sheets URL or spreadsheet ID")
	fmt.Fprintln(w, "      --meta-tab <s>        Metadata tab name")
	fmt.Fprintln(w, "      --points-tab <s>      Points tab name")
	fmt.Fprintln(w, "      --distribution-tab <s> Distribution tab name")
	fmt.Fprintln(w, "      --price-tab <s>       Price tab name")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "History:")
	fmt.Fprintln(w, "      --history-dir <path>  Snapshot directory (default: history/ next to source)")
	fmt.Fprintln(w, "      --history-pattern <s> Snapshot timestamp pattern")
	fmt.Fprintln(w, "                            Tokens: YYYY, YY, MMMM, MMM, MM, M, DD, D, HH, mm, ss")
	fmt.Fprintln(w, "                            Presets (case-insensitive): iso, compact, minute, second")
	fmt.Fprintln(w, "                            Use [text] to escape literals: [issue-]YYYYMMDD")
	fmt.Fprintln(w, "      --no-history          Disable source snapshots")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Images:")
	fmt.Fprintln(w, "      --image-prefix <s>    Rewrite image paths with this prefix")
	fmt.Fprintln(w, "      --image-ext <s>       Force an image file extension")
	fmt.Fprintln(w, "      --no-images           Disable image path rewriting")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "PDF:")
	fmt.Fprintln(w, "      --pdf                 Also export the issue as PDF")
	fmt.Fprintln(w, "  -t, --timeout <d>         PDF export timeout (e.g., 30s, 2m)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Styling:")
	fmt.Fprintln(w, "      --asset-path <path>   Directory with custom style and template files")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show detailed timing")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Exit Codes:")
	fmt.Fprintln(w, "  0  Success")
	fmt.Fprintln(w, "  1  General error")
	fmt.Fprintln(w, "  2  Usage error (bad flags or config)")
	fmt.Fprintln(w, "  3  I/O error (missing workbook, unwritable output)")
	fmt.Fprintln(w, "  4  Sheet fetch error")
	fmt.Fprintln(w, "  5  Browser error (PDF export)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Examples:")
	fmt.Fprintln(w, "  macrobrief build                          Build newsletter_data.xlsx in place")
	fmt.Fprintln(w, "  macrobrief build data/q3.xlsx -o out/     Build one workbook into out/")
	fmt.Fprintln(w, "  macrobrief build ./issues/ --pdf          Build a directory, PDFs included")
	fmt.Fprintln(w, "  macrobrief build --sheet <url> -o brief.html")
	fmt.Fprintln(w, "  macrobrief build -c team -w 4 --history-pattern compact")
}

// printInitUsage prints usage for the init command.
func printInitUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: macrobrief init [path] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Create a starter workbook with example content.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  path    Workbook file to create (default: newsletter_data.xlsx)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -f, --force    Overwrite an existing workbook")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return
	}

	switch args[0] {
	case "build":
		printBuildUsage(env.Stdout)
	case "init":
		printInitUsage(env.Stdout)
	case "doctor":
		fmt.Fprintln(env.Stdout, "Usage: macrobrief doctor [--json]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Diagnose the PDF export environment.")
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: macrobrief version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: macrobrief help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
	}
}
