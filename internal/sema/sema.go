// Package sema implements the semantic analyzer: it decides whether a
// program built by internal/ast is well-formed, filling in every
// expression's type annotation as it goes, and produces the completed
// symbol tables codegen needs. It never emits code.
package sema

import (
	"github.com/Disha23112004/mini-compiler/internal/ast"
	"github.com/Disha23112004/mini-compiler/internal/diag"
	"github.com/Disha23112004/mini-compiler/internal/symtab"
)

// Result is the outcome of analyzing a program: symbol tables usable by
// codegen, and the diagnostics recorded along the way. Codegen must only
// run when Diags.HasErrors() is false.
type Result struct {
	Structs *symtab.StructTable
	Funcs   *symtab.FunctionTable
	Diags   *diag.Collector
}

type Analyzer struct {
	structs *symtab.StructTable
	funcs   *symtab.FunctionTable
	scopes  *symtab.ValueScopeStack
	diags   *diag.Collector
}

// Analyze runs the five-pass analysis of §4.3 over prog.
func Analyze(prog *ast.Program) *Result {
	a := &Analyzer{
		structs: symtab.NewStructTable(),
		funcs:   symtab.NewFunctionTable(),
		scopes:  symtab.NewValueScopeStack(),
		diags:   &diag.Collector{},
	}

	first := a.collectStructs(prog.Structs)
	a.collectFunctions(prog.Funcs)
	a.resolveStructFields(prog.Structs, first)
	a.analyzeGlobals(prog.Globals)
	a.checkMain(prog.Funcs)
	for _, fn := range prog.Funcs {
		a.analyzeFunction(fn)
	}

	return &Result{Structs: a.structs, Funcs: a.funcs, Diags: a.diags}
}

// collectStructs is pass 1: register every struct name, deferring field
// resolution to pass 3. It returns, per name, the AST node that won the
// declaration race, so pass 3 can skip duplicates without corrupting the
// winning struct's field list.
func (a *Analyzer) collectStructs(structs []*ast.StructDecl) map[string]*ast.StructDecl {
	first := make(map[string]*ast.StructDecl)
	for _, s := range structs {
		if _, err := a.structs.Declare(s.Name); err != nil {
			a.diags.Add(diag.DuplicateStruct, s.Pos, "%v", err)
			continue
		}
		first[s.Name] = s
	}
	return first
}

// resolveStructFields is pass 3: struct names are all registered by now
// (pass 1), so field types referencing Struct(n) can be checked.
func (a *Analyzer) resolveStructFields(structs []*ast.StructDecl, first map[string]*ast.StructDecl) {
	for _, s := range structs {
		if first[s.Name] != s {
			continue // duplicate declaration, already diagnosed
		}
		info, _ := a.structs.Lookup(s.Name)
		for _, f := range s.Fields {
			info.Fields = append(info.Fields, symtab.Field{Name: f.Name, Type: a.resolveValueType(f.Type)})
		}
	}
}

// collectFunctions is pass 2: record every function's signature. Struct
// names referenced by parameter or return types are already registered
// (pass 1 runs first), so UnknownStruct is caught here.
func (a *Analyzer) collectFunctions(funcs []*ast.FuncDecl) {
	for _, f := range funcs {
		sig := &symtab.FuncSig{Name: f.Name, Ret: a.resolveReturnType(f.RetType)}
		for _, p := range f.Params {
			sig.Params = append(sig.Params, a.resolveValueType(p.Type))
		}
		if err := a.funcs.Declare(sig); err != nil {
			a.diags.Add(diag.DuplicateFunction, f.Pos, "%v", err)
		}
	}
}

// analyzeGlobals is pass 4: globals live in the outermost value scope,
// created with the scope stack and never popped — every function scope
// nests under it.
func (a *Analyzer) analyzeGlobals(globals []*ast.VarDecl) {
	for _, g := range globals {
		t := a.resolveValueType(g.Type)
		if err := a.scopes.Declare(g.Name, t, symtab.ClassGlobal); err != nil {
			a.diags.Add(diag.DuplicateInScope, g.Pos, "%v", err)
		}
	}
}

// checkMain is this compiler's supplement to spec.md: a program without a
// well-formed `main` cannot be linked against the runtime's entry glue.
func (a *Analyzer) checkMain(funcs []*ast.FuncDecl) {
	for _, f := range funcs {
		if f.Name != "main" {
			continue
		}
		if len(f.Params) != 0 {
			a.diags.Add(diag.InvalidMain, f.Pos, "main() function takes no arguments")
		}
		if f.RetType.Kind != ast.TInt {
			a.diags.Add(diag.InvalidMain, f.Pos, "main() must return an int")
		}
		return
	}
	if len(funcs) > 0 {
		a.diags.Add(diag.MissingMain, funcs[0].Pos, "program does not declare a main() function")
	}
}

// analyzeFunction is pass 5. Parameter and return types are pulled from
// the signature collectFunctions already resolved, rather than re-resolved
// here, so a bad struct reference in a signature is diagnosed exactly
// once.
func (a *Analyzer) analyzeFunction(fn *ast.FuncDecl) {
	sig, _ := a.funcs.Lookup(fn.Name)

	a.scopes.Push()
	defer a.scopes.Pop()

	for i, p := range fn.Params {
		pt := symtab.ErrorType()
		if sig != nil && i < len(sig.Params) {
			pt = sig.Params[i]
		}
		if err := a.scopes.Declare(p.Name, pt, symtab.ClassParam); err != nil {
			a.diags.Add(diag.DuplicateInScope, p.Pos, "%v", err)
		}
	}
	for _, l := range fn.Locals {
		lt := a.resolveValueType(l.Type)
		if err := a.scopes.Declare(l.Name, lt, symtab.ClassLocal); err != nil {
			a.diags.Add(diag.DuplicateInScope, l.Pos, "%v", err)
		}
	}

	retType := symtab.ErrorType()
	if sig != nil {
		retType = sig.Ret
	}
	a.analyzeBlock(fn.Body, retType)

	if retType.Kind != symtab.Void && retType.Kind != symtab.ErrorKind && !blockReturns(fn.Body) {
		a.diags.Add(diag.MissingReturn, fn.Pos, "function %q must return on every path", fn.Name)
	}
}

// resolveValueType resolves a syntactic int/bool/struct-name type
// reference against the struct table, recording UnknownStruct on failure.
func (a *Analyzer) resolveValueType(t *ast.TypeRef) symtab.Type {
	switch t.Kind {
	case ast.TInt:
		return symtab.IntType()
	case ast.TBool:
		return symtab.BoolType()
	case ast.TStruct:
		if _, ok := a.structs.Lookup(t.StructName); !ok {
			a.diags.Add(diag.UnknownStruct, t.Pos, "unknown struct %q", t.StructName)
			return symtab.ErrorType()
		}
		return symtab.StructType(t.StructName)
	default:
		panic("sema: resolveValueType called with a non-value type reference")
	}
}

func (a *Analyzer) resolveReturnType(t *ast.TypeRef) symtab.Type {
	if t.Kind == ast.TVoid {
		return symtab.VoidType()
	}
	return a.resolveValueType(t)
}
