// Command minic compiles a single Mini source file into RV32IM assembly
// text (spec.md §6's CLI contract). It is a thin driver over the pipeline
// implemented by the internal packages: it owns no compiler logic of its
// own.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Disha23112004/mini-compiler/internal/ast"
	"github.com/Disha23112004/mini-compiler/internal/codegen/riscv"
	"github.com/Disha23112004/mini-compiler/internal/diag"
	"github.com/Disha23112004/mini-compiler/internal/parse"
	"github.com/Disha23112004/mini-compiler/internal/sema"
)

func printUsage() {
	fmt.Fprintln(os.Stderr, "Usage: minic [-dump-ast] [-dump-sym] [-o file] <source.mini>")
	flag.PrintDefaults()
}

func main() {
	flag.Usage = printUsage
	dumpAST := flag.Bool("dump-ast", false, "print the built AST to stdout")
	dumpSym := flag.Bool("dump-sym", false, "print structs, globals, and functions to stdout")
	outputPath := flag.String("o", "", "write assembly to `file` ('-' for stdout); defaults to <basename>.s")
	flag.Parse()

	if flag.NArg() != 1 {
		printUsage()
		os.Exit(2)
	}
	os.Exit(run(flag.Arg(0), *outputPath, *dumpAST, *dumpSym))
}

func run(srcPath, outputPath string, dumpAST, dumpSym bool) int {
	src, err := os.ReadFile(srcPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "minic: %v\n", err)
		return 1
	}

	cst, err := parse.Parse(srcPath, string(src))
	if err != nil {
		fmt.Fprintf(os.Stderr, "minic: %v\n", err)
		return 1
	}

	prog := ast.Build(cst)
	res := sema.Analyze(prog)

	if res.Diags.HasErrors() {
		diag.Print(os.Stderr, srcPath, res.Diags.Diagnostics())
		return 1
	}

	if dumpAST {
		ast.DumpTree(os.Stdout, prog)
	}
	if dumpSym {
		sema.DumpSymbols(os.Stdout, prog, res)
	}

	out, closeOut, err := openOutput(srcPath, outputPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "minic: %v\n", err)
		return 1
	}
	defer closeOut()

	if err := riscv.Emit(prog, res, out); err != nil {
		fmt.Fprintf(os.Stderr, "minic: %v\n", err)
		return 1
	}
	return 0
}

// openOutput resolves the -o flag against spec.md §6's default
// (<basename>.s next to the source) and the andrewchambers-cc convention
// of "-" meaning stdout.
func openOutput(srcPath, outputPath string) (*os.File, func(), error) {
	if outputPath == "" {
		base := strings.TrimSuffix(filepath.Base(srcPath), filepath.Ext(srcPath))
		outputPath = filepath.Join(filepath.Dir(srcPath), base+".s")
	}
	if outputPath == "-" {
		return os.Stdout, func() {}, nil
	}
	f, err := os.Create(outputPath)
	if err != nil {
		return nil, nil, err
	}
	return f, func() { f.Close() }, nil
}
