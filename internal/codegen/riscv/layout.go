// Package riscv lowers a fully-typed AST (post sema.Analyze) into RV32IM
// assembly text. It trusts its input completely: every name resolves,
// every type annotation is filled in, every struct field is known. A
// violation of that trust is this package's own bug, not a user error, so
// it fails fast rather than emitting broken assembly (see fail in emit.go).
package riscv

import (
	"fmt"

	"github.com/Disha23112004/mini-compiler/internal/ast"
	"github.com/Disha23112004/mini-compiler/internal/symtab"
)

const wordSize = 4

// structLayout is a struct's size and per-field byte offset, precomputed
// once from its declaration order (§3.2/§4.4.1: offset(i) = 4*i, all
// fields word-sized regardless of declared type).
type structLayout struct {
	size    int
	offsets map[string]int
}

func buildStructLayouts(structs *symtab.StructTable) map[string]structLayout {
	out := make(map[string]structLayout)
	for _, name := range structs.Names() {
		info, _ := structs.Lookup(name)
		offsets := make(map[string]int, len(info.Fields))
		for i, f := range info.Fields {
			offsets[f.Name] = i * wordSize
		}
		out[name] = structLayout{size: len(info.Fields) * wordSize, offsets: offsets}
	}
	return out
}

func (e *emitter) structLayout(name string) structLayout {
	sl, ok := e.structs[name]
	if !ok {
		e.fail("reference to unregistered struct %q", name)
	}
	return sl
}

func (e *emitter) fieldOffset(structName, field string) int {
	sl := e.structLayout(structName)
	off, ok := sl.offsets[field]
	if !ok {
		e.fail("struct %q has no field %q", structName, field)
	}
	return off
}

// frame is the slot assignment for one function's activation record
// (§4.4.1): parameters first in declaration order, then locals, each at a
// fixed offset below the saved frame pointer.
type frame struct {
	slots map[string]int // name -> offset from fp (negative)
	size  int            // total bytes of param+local storage, rounded up by wordSize already
}

func buildFrame(fn *ast.FuncDecl) *frame {
	fr := &frame{slots: make(map[string]int)}
	n := 0
	for _, p := range fn.Params {
		n++
		fr.slots[p.Name] = -wordSize * n
	}
	for _, l := range fn.Locals {
		n++
		fr.slots[l.Name] = -wordSize * n
	}
	fr.size = wordSize * n
	return fr
}

func (fr *frame) slot(name string) (int, bool) {
	off, ok := fr.slots[name]
	return off, ok
}

func globalLabel(name string) string {
	return fmt.Sprintf("global_%s", name)
}
