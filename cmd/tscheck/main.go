// Command tscheck runs the CORE's full pipeline — lex, parse, bind, check —
// over one or more source files and prints their diagnostics, playing the
// same role funxy's "test"/"-c" subcommands play for its own pipeline
// (cmd/funxy/main.go): a thin driver over packages that do the real work.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/mattn/go-isatty"

	"github.com/arborlang/tscore/internal/binder"
	"github.com/arborlang/tscore/internal/checker"
	"github.com/arborlang/tscore/internal/config"
	"github.com/arborlang/tscore/internal/diagnostics"
	"github.com/arborlang/tscore/internal/lexer"
	"github.com/arborlang/tscore/internal/parser"
	"github.com/arborlang/tscore/internal/types"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "usage: %s [--version] [--test] [--project tsconfig.yaml] <file.ts> [file2.ts ...]\n", os.Args[0])
		os.Exit(2)
	}

	args := os.Args[1:]
	opts := config.Default()
	var files []string
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--version", "-v":
			fmt.Println(config.Version)
			os.Exit(0)
		case "--test":
			config.IsTestMode = true
		case "--project", "-p":
			if i+1 >= len(args) {
				fmt.Fprintln(os.Stderr, "--project requires a path")
				os.Exit(2)
			}
			i++
			proj, err := config.LoadFile(args[i])
			if err != nil {
				fmt.Fprintf(os.Stderr, "reading project config: %v\n", err)
				os.Exit(2)
			}
			opts = proj.Options
			if len(proj.Files) > 0 {
				files = append(files, proj.Files...)
			}
		default:
			if !strings.HasSuffix(args[i], config.SourceFileExt) {
				fmt.Fprintf(os.Stderr, "%s: warning: expected a %s file\n", args[i], config.SourceFileExt)
			}
			files = append(files, args[i])
		}
	}

	runID := uuid.NewString()
	if config.IsTestMode {
		runID = "test-run"
	}
	color := isatty.IsTerminal(os.Stdout.Fd()) && os.Getenv("NO_COLOR") == ""

	exitCode := 0
	in := types.New()
	for _, path := range files {
		data, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", path, err)
			exitCode = 1
			continue
		}

		l := lexer.New(string(data))
		p := parser.New(l, path)
		prog := p.ParseProgram()
		for _, perr := range p.Errors {
			fmt.Fprintln(os.Stderr, perr)
			exitCode = 1
		}

		bound := binder.Bind(prog)
		c := checker.New(in, bound, opts)
		bag := c.Check(prog)

		for _, d := range bag.Sorted() {
			printDiagnostic(path, d, color, runID)
			exitCode = 1
		}
	}

	os.Exit(exitCode)
}

// printDiagnostic renders one diagnostic. Invariant-violation diagnostics
// (diagnostics.InternalError) carry the run's uuid so a report filed against
// one of these can be correlated back to the exact compilation run that
// produced it, even across the parallel worker partitions spec.md §5
// describes.
func printDiagnostic(path string, d diagnostics.Diagnostic, color bool, runID string) {
	msg := d.Message
	if d.Code == diagnostics.InternalError {
		msg = fmt.Sprintf("%s (run %s)", msg, runID)
	}
	if !color {
		fmt.Printf("%s:%d:%d - error TS%d: %s\n", path, d.Pos.Line, d.Pos.Column, int(d.Code), msg)
		return
	}
	fmt.Printf("\x1b[36m%s\x1b[0m:\x1b[33m%d\x1b[0m:\x1b[33m%d\x1b[0m - \x1b[31merror TS%d\x1b[0m: %s\n",
		path, d.Pos.Line, d.Pos.Column, int(d.Code), msg)
}
