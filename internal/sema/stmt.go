package sema

import (
	"github.com/Disha23112004/mini-compiler/internal/ast"
	"github.com/Disha23112004/mini-compiler/internal/diag"
	"github.com/Disha23112004/mini-compiler/internal/symtab"
)

func (a *Analyzer) analyzeBlock(stmts []ast.Stmt, retType symtab.Type) {
	for _, s := range stmts {
		a.analyzeStmt(s, retType)
	}
}

// analyzeStmt implements §4.3.2's statement rules.
func (a *Analyzer) analyzeStmt(s ast.Stmt, retType symtab.Type) {
	switch n := s.(type) {
	case *ast.AssignStmt:
		a.analyzeAssign(n)
	case *ast.IfStmt:
		a.checkCondition(n.Guard)
		a.scopes.Push()
		a.analyzeBlock(n.Then, retType)
		a.scopes.Pop()
		if n.Else != nil {
			a.scopes.Push()
			a.analyzeBlock(n.Else, retType)
			a.scopes.Pop()
		}
	case *ast.WhileStmt:
		a.checkCondition(n.Guard)
		a.scopes.Push()
		a.analyzeBlock(n.Body, retType)
		a.scopes.Pop()
	case *ast.ReturnStmt:
		a.analyzeReturn(n, retType)
	case *ast.PrintStmt:
		vt := a.typeExpr(n.Value)
		if vt.Kind != symtab.Int && vt.Kind != symtab.ErrorKind {
			a.diags.Add(diag.InvalidPrintOperand, n.Pos, "print requires an int operand, got %s", vt)
		}
	case *ast.DeleteStmt:
		vt := a.typeExpr(n.Value)
		if vt.Kind != symtab.StructKind && vt.Kind != symtab.ErrorKind {
			a.diags.Add(diag.InvalidDelete, n.Pos, "delete requires a struct operand, got %s", vt)
		}
	case *ast.InvokeStmt:
		a.typeExpr(n.Call)
	default:
		panic("sema: unreachable statement kind")
	}
}

func (a *Analyzer) checkCondition(guard ast.Expr) {
	ct := a.typeExpr(guard)
	if ct.Kind != symtab.Bool && ct.Kind != symtab.ErrorKind {
		a.diags.Add(diag.InvalidCondition, guard.Position(), "condition must be bool, got %s", ct)
	}
}

// analyzeAssign handles both ordinary assignment and the `read lv;`
// statement, which the builder desugars to `lv = read;`: a read target
// must specifically be Int, which is a stricter rule than ordinary
// assignment compatibility, so it is checked before falling through to the
// general TypeMismatch path.
func (a *Analyzer) analyzeAssign(n *ast.AssignStmt) {
	lt := a.typeLvalue(n.Target)
	if _, isRead := n.Value.(*ast.ReadIntExpr); isRead {
		n.Value.SetType(symtab.IntType())
		if lt.Kind != symtab.Int && lt.Kind != symtab.ErrorKind {
			a.diags.Add(diag.InvalidReadTarget, n.Pos, "read target must be int, got %s", lt)
		}
		return
	}
	vt := a.typeExpr(n.Value)
	if !vt.AssignableTo(lt) {
		a.diags.Add(diag.TypeMismatch, n.Pos, "cannot assign %s to %s", vt, lt)
	}
}

func (a *Analyzer) analyzeReturn(n *ast.ReturnStmt, retType symtab.Type) {
	if n.Value == nil {
		if retType.Kind != symtab.Void && retType.Kind != symtab.ErrorKind {
			a.diags.Add(diag.InvalidReturn, n.Pos, "function must return a value of type %s", retType)
		}
		return
	}
	if retType.Kind == symtab.Void {
		a.diags.Add(diag.InvalidReturn, n.Pos, "void function must not return a value")
		a.typeExpr(n.Value)
		return
	}
	vt := a.typeExpr(n.Value)
	if !vt.AssignableTo(retType) {
		a.diags.Add(diag.InvalidReturn, n.Pos, "cannot return %s from a function returning %s", vt, retType)
	}
}
