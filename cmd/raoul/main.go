// Command raoul runs the Raoul compiler/VM pipeline end to end: it lexes,
// parses, type-checks, lowers to quadruples, and executes a source file.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ricglz/raoul/internal/ir"
	"github.com/ricglz/raoul/internal/lexer"
	"github.com/ricglz/raoul/internal/parser"
	"github.com/ricglz/raoul/internal/plot"
	"github.com/ricglz/raoul/internal/semantics"
	"github.com/ricglz/raoul/internal/vm"
)

// Exit codes mirror the three failure strata plus usage errors, the way
// a Unix compiler front end separates "bad invocation" from "bad program".
const (
	exitOK      = 0
	exitCompile = 1
	exitRuntime = 2
	exitUsage   = 64
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	debug := false
	var path string
	for _, arg := range args {
		switch arg {
		case "-d", "--debug":
			debug = true
		default:
			if path != "" {
				fmt.Fprintln(os.Stderr, "usage: raoul [-d|--debug] <source.ra>")
				return exitUsage
			}
			path = arg
		}
	}
	if path == "" {
		fmt.Fprintln(os.Stderr, "usage: raoul [-d|--debug] <source.ra>")
		return exitUsage
	}

	fullPath, err := filepath.Abs(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, "read error:", err)
		return exitUsage
	}

	src, err := os.ReadFile(fullPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "read error:", err)
		return exitUsage
	}

	tokens, err := lexer.Lex(string(src))
	if err != nil {
		fmt.Fprintln(os.Stderr, "lex error:", err)
		return exitCompile
	}

	prog, err := parser.Parse(tokens)
	if err != nil {
		fmt.Fprintln(os.Stderr, "parse error:", err)
		return exitCompile
	}

	syms, info, semErrs := semantics.Analyze(prog)
	if len(semErrs) > 0 {
		for _, e := range semErrs {
			fmt.Fprintln(os.Stderr, "semantic error:", e)
		}
		return exitCompile
	}

	quads := ir.Generate(prog, syms, info)

	if debug {
		fmt.Fprintln(os.Stderr, "Symbol Table")
		fmt.Fprint(os.Stderr, syms)
		fmt.Fprintln(os.Stderr)
		fmt.Fprintln(os.Stderr, "Quadruples")
		for i, q := range quads.Quads {
			fmt.Fprintf(os.Stderr, "%4d: %s\n", i, q)
		}
		fmt.Fprintln(os.Stderr)
	}

	machine := vm.New(quads)
	machine.MountPlotSink(plot.NewEbitenSink(filepath.Base(fullPath)))
	machine.Stdout = os.Stdout

	if err := machine.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "runtime error:", err)
		return exitRuntime
	}

	return exitOK
}
