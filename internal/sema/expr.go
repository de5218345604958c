package sema

import (
	"github.com/Disha23112004/mini-compiler/internal/ast"
	"github.com/Disha23112004/mini-compiler/internal/diag"
	"github.com/Disha23112004/mini-compiler/internal/symtab"
	"github.com/Disha23112004/mini-compiler/internal/token"
)

// typeExpr implements §4.3.1's expression typing table, annotating e with
// its result and returning that same type.
func (a *Analyzer) typeExpr(e ast.Expr) symtab.Type {
	var t symtab.Type
	switch n := e.(type) {
	case *ast.IntLit:
		t = symtab.IntType()
	case *ast.BoolLit:
		t = symtab.BoolType()
	case *ast.NullLit:
		t = symtab.NullType()
	case *ast.ReadIntExpr:
		t = symtab.IntType()
	case *ast.VarExpr:
		t = a.typeName(n.Name, n.Pos)
	case *ast.FieldRead:
		t = a.typeField(a.typeExpr(n.Base), n.Field, n.Pos)
	case *ast.NewExpr:
		t = a.typeNew(n)
	case *ast.UnaryExpr:
		t = a.typeUnary(n)
	case *ast.BinaryExpr:
		t = a.typeBinary(n)
	case *ast.CallExpr:
		t = a.typeCall(n)
	default:
		panic("sema: unreachable expression kind")
	}
	e.SetType(t)
	return t
}

func (a *Analyzer) typeName(name string, pos token.Position) symtab.Type {
	if entry, ok := a.scopes.Resolve(name); ok {
		return entry.Type
	}
	a.diags.Add(diag.UnknownName, pos, "undeclared name %q", name)
	return symtab.ErrorType()
}

func (a *Analyzer) typeField(baseT symtab.Type, field string, pos token.Position) symtab.Type {
	if baseT.Kind == symtab.ErrorKind {
		return symtab.ErrorType()
	}
	if baseT.Kind != symtab.StructKind {
		a.diags.Add(diag.TypeMismatch, pos, "cannot read field %q of non-struct type %s", field, baseT)
		return symtab.ErrorType()
	}
	info, ok := a.structs.Lookup(baseT.StructName)
	if !ok {
		return symtab.ErrorType() // unknown struct already diagnosed elsewhere
	}
	ft, ok := info.FieldType(field)
	if !ok {
		a.diags.Add(diag.UnknownField, pos, "struct %q has no field %q", baseT.StructName, field)
		return symtab.ErrorType()
	}
	return ft
}

func (a *Analyzer) typeNew(n *ast.NewExpr) symtab.Type {
	if _, ok := a.structs.Lookup(n.StructName); !ok {
		a.diags.Add(diag.UnknownStruct, n.Pos, "unknown struct %q", n.StructName)
		return symtab.ErrorType()
	}
	return symtab.StructType(n.StructName)
}

func (a *Analyzer) typeUnary(n *ast.UnaryExpr) symtab.Type {
	et := a.typeExpr(n.Expr)
	switch n.Op {
	case token.MINUS:
		if et.Kind != symtab.Int && et.Kind != symtab.ErrorKind {
			a.diags.Add(diag.TypeMismatch, n.Pos, "unary '-' requires int, got %s", et)
			return symtab.ErrorType()
		}
		return symtab.IntType()
	case token.NOT:
		if et.Kind != symtab.Bool && et.Kind != symtab.ErrorKind {
			a.diags.Add(diag.TypeMismatch, n.Pos, "unary '!' requires bool, got %s", et)
			return symtab.ErrorType()
		}
		return symtab.BoolType()
	default:
		panic("sema: unreachable unary operator")
	}
}

func (a *Analyzer) typeBinary(n *ast.BinaryExpr) symtab.Type {
	lt := a.typeExpr(n.Lhs)
	rt := a.typeExpr(n.Rhs)
	switch n.Op {
	case token.PLUS, token.MINUS, token.STAR, token.SLASH:
		if !isIntOrError(lt) || !isIntOrError(rt) {
			a.diags.Add(diag.TypeMismatch, n.Pos, "operator %s requires int operands, got %s and %s", n.Op, lt, rt)
			return symtab.ErrorType()
		}
		return symtab.IntType()
	case token.LT, token.GT, token.LE, token.GE:
		if !isIntOrError(lt) || !isIntOrError(rt) {
			a.diags.Add(diag.TypeMismatch, n.Pos, "operator %s requires int operands, got %s and %s", n.Op, lt, rt)
			return symtab.ErrorType()
		}
		return symtab.BoolType()
	case token.EQ, token.NEQ:
		if !lt.AssignableTo(rt) && !rt.AssignableTo(lt) {
			a.diags.Add(diag.TypeMismatch, n.Pos, "operator %s requires comparable operands, got %s and %s", n.Op, lt, rt)
			return symtab.ErrorType()
		}
		return symtab.BoolType()
	case token.AND, token.OR:
		if !isBoolOrError(lt) || !isBoolOrError(rt) {
			a.diags.Add(diag.TypeMismatch, n.Pos, "operator %s requires bool operands, got %s and %s", n.Op, lt, rt)
			return symtab.ErrorType()
		}
		return symtab.BoolType()
	default:
		panic("sema: unreachable binary operator")
	}
}

func (a *Analyzer) typeCall(n *ast.CallExpr) symtab.Type {
	sig, ok := a.funcs.Lookup(n.Callee)
	if !ok {
		a.diags.Add(diag.UnknownFunction, n.Pos, "undeclared function %q", n.Callee)
		for _, arg := range n.Args {
			a.typeExpr(arg)
		}
		return symtab.ErrorType()
	}
	if len(n.Args) != len(sig.Params) {
		a.diags.Add(diag.ArityMismatch, n.Pos, "function %q expects %d argument(s), got %d", n.Callee, len(sig.Params), len(n.Args))
		for _, arg := range n.Args {
			a.typeExpr(arg)
		}
		return sig.Ret
	}
	for i, arg := range n.Args {
		at := a.typeExpr(arg)
		if !at.AssignableTo(sig.Params[i]) {
			a.diags.Add(diag.TypeMismatch, arg.Position(), "argument %d to %q: cannot use %s as %s", i+1, n.Callee, at, sig.Params[i])
		}
	}
	return sig.Ret
}

func isIntOrError(t symtab.Type) bool { return t.Kind == symtab.Int || t.Kind == symtab.ErrorKind }
func isBoolOrError(t symtab.Type) bool { return t.Kind == symtab.Bool || t.Kind == symtab.ErrorKind }
