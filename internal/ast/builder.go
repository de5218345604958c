package ast

import (
	"github.com/Disha23112004/mini-compiler/internal/parse"
)

// Build lifts a parsed concrete syntax tree into the typed-but-unannotated
// AST of §3.5, discarding purely syntactic structure (grouping
// parentheses are not represented as nodes in internal/parse either, so
// there is nothing to drop there). Build is total over a syntactically
// valid parse.Program; it never fails.
func Build(prog *parse.Program) *Program {
	out := &Program{}
	for _, s := range prog.Structs {
		out.Structs = append(out.Structs, buildStructDecl(s))
	}
	for _, g := range prog.Globals {
		out.Globals = append(out.Globals, buildVarDecl(g))
	}
	for _, f := range prog.Funcs {
		out.Funcs = append(out.Funcs, buildFuncDecl(f))
	}
	return out
}

func buildType(t *parse.TypeRef) *TypeRef {
	kind := map[parse.TypeKind]TypeKind{
		parse.TInt:    TInt,
		parse.TBool:   TBool,
		parse.TStruct: TStruct,
		parse.TVoid:   TVoid,
	}[t.Kind]
	return &TypeRef{Kind: kind, StructName: t.StructName, Pos: t.Pos}
}

func buildVarDecl(v *parse.VarDecl) *VarDecl {
	return &VarDecl{Type: buildType(v.Type), Name: v.Name, Pos: v.Pos}
}

func buildStructDecl(s *parse.StructDecl) *StructDecl {
	out := &StructDecl{Name: s.Name, Pos: s.Pos}
	for _, f := range s.Fields {
		out.Fields = append(out.Fields, buildVarDecl(f))
	}
	return out
}

func buildFuncDecl(f *parse.FuncDecl) *FuncDecl {
	out := &FuncDecl{Name: f.Name, RetType: buildType(f.RetType), Pos: f.Pos}
	for _, p := range f.Params {
		out.Params = append(out.Params, buildVarDecl(p))
	}
	for _, l := range f.Locals {
		out.Locals = append(out.Locals, buildVarDecl(l))
	}
	for _, s := range f.Body {
		out.Body = append(out.Body, buildStmt(s))
	}
	return out
}

func buildBlock(stmts []parse.Stmt) []Stmt {
	var out []Stmt
	for _, s := range stmts {
		out = append(out, buildStmt(s))
	}
	return out
}

func buildStmt(s parse.Stmt) Stmt {
	switch n := s.(type) {
	case *parse.AssignStmt:
		return &AssignStmt{baseStmt: baseStmt{n.Pos}, Target: buildLvalue(n.Target), Value: buildExpr(n.Value)}
	case *parse.IfStmt:
		return &IfStmt{baseStmt: baseStmt{n.Pos}, Guard: buildExpr(n.Guard), Then: buildBlock(n.Then), Else: buildBlock(n.Else)}
	case *parse.WhileStmt:
		return &WhileStmt{baseStmt: baseStmt{n.Pos}, Guard: buildExpr(n.Guard), Body: buildBlock(n.Body)}
	case *parse.ReturnStmt:
		var v Expr
		if n.Value != nil {
			v = buildExpr(n.Value)
		}
		return &ReturnStmt{baseStmt: baseStmt{n.Pos}, Value: v}
	case *parse.PrintStmt:
		return &PrintStmt{baseStmt: baseStmt{n.Pos}, Value: buildExpr(n.Value), Newline: n.Newline}
	case *parse.ReadStmt:
		// `read lvalue;` desugars to `lvalue = read;` so the analyzer and
		// code generator only ever see one shape for integer input.
		return &AssignStmt{baseStmt: baseStmt{n.Pos}, Target: buildLvalue(n.Target), Value: &ReadIntExpr{baseExpr{Pos: n.Pos}}}
	case *parse.DeleteStmt:
		return &DeleteStmt{baseStmt: baseStmt{n.Pos}, Value: buildExpr(n.Value)}
	case *parse.ExprStmt:
		return &InvokeStmt{baseStmt: baseStmt{n.Pos}, Call: buildExpr(n.Call).(*CallExpr)}
	}
	panic("ast: unreachable statement kind from a valid parse tree")
}

func buildLvalue(l parse.Lvalue) Lvalue {
	switch n := l.(type) {
	case *parse.IdentLvalue:
		return &VarLvalue{baseLvalue: baseLvalue{Pos: n.Pos}, Name: n.Name}
	case *parse.FieldLvalue:
		return &FieldLvalue{baseLvalue: baseLvalue{Pos: n.Pos}, Base: buildLvalue(n.Base), Field: n.Field}
	}
	panic("ast: unreachable lvalue kind from a valid parse tree")
}

func buildExpr(e parse.Expr) Expr {
	switch n := e.(type) {
	case *parse.IntLit:
		return &IntLit{baseExpr: baseExpr{Pos: n.Pos}, Value: n.Value}
	case *parse.BoolLit:
		return &BoolLit{baseExpr: baseExpr{Pos: n.Pos}, Value: n.Value}
	case *parse.NullLit:
		return &NullLit{baseExpr{Pos: n.Pos}}
	case *parse.IdentExpr:
		return &VarExpr{baseExpr: baseExpr{Pos: n.Pos}, Name: n.Name}
	case *parse.FieldExpr:
		return &FieldRead{baseExpr: baseExpr{Pos: n.Pos}, Base: buildExpr(n.Base), Field: n.Field}
	case *parse.BinaryExpr:
		return &BinaryExpr{baseExpr: baseExpr{Pos: n.Pos}, Op: n.Op, Lhs: buildExpr(n.Lhs), Rhs: buildExpr(n.Rhs)}
	case *parse.UnaryExpr:
		return &UnaryExpr{baseExpr: baseExpr{Pos: n.Pos}, Op: n.Op, Expr: buildExpr(n.Expr)}
	case *parse.CallExpr:
		out := &CallExpr{baseExpr: baseExpr{Pos: n.Pos}, Callee: n.Callee}
		for _, a := range n.Args {
			out.Args = append(out.Args, buildExpr(a))
		}
		return out
	case *parse.NewExpr:
		return &NewExpr{baseExpr: baseExpr{Pos: n.Pos}, StructName: n.StructName}
	case *parse.ReadExpr:
		return &ReadIntExpr{baseExpr{Pos: n.Pos}}
	}
	panic("ast: unreachable expression kind from a valid parse tree")
}
