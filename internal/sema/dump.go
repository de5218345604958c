package sema

import (
	"fmt"
	"io"

	"github.com/Disha23112004/mini-compiler/internal/ast"
)

// DumpSymbols writes a human-readable listing of res's structs, functions,
// and globals to w, for the CLI's -dump-sym switch. It is purely
// informational; codegen never reads it.
func DumpSymbols(w io.Writer, prog *ast.Program, res *Result) {
	fmt.Fprintln(w, "STRUCTS:")
	if len(res.Structs.Names()) == 0 {
		fmt.Fprintln(w, "  [empty]")
	}
	for _, name := range res.Structs.Names() {
		info, _ := res.Structs.Lookup(name)
		fmt.Fprintf(w, "  %s\n", name)
		for _, f := range info.Fields {
			fmt.Fprintf(w, "    %s: %s\n", f.Name, f.Type)
		}
	}

	fmt.Fprintln(w, "\nGLOBALS:")
	if len(prog.Globals) == 0 {
		fmt.Fprintln(w, "  [empty]")
	}
	for _, g := range prog.Globals {
		fmt.Fprintf(w, "  %s\n", g.Name)
	}

	fmt.Fprintln(w, "\nFUNCTIONS:")
	for _, name := range res.Funcs.Names() {
		sig, _ := res.Funcs.Lookup(name)
		fmt.Fprintf(w, "  %s(", name)
		for i, p := range sig.Params {
			if i > 0 {
				fmt.Fprint(w, ", ")
			}
			fmt.Fprint(w, p)
		}
		fmt.Fprintf(w, ") -> %s\n", sig.Ret)
	}
}
