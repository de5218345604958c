package sema

import (
	"github.com/Disha23112004/mini-compiler/internal/ast"
	"github.com/Disha23112004/mini-compiler/internal/symtab"
)

// typeLvalue mirrors typeExpr for assignment and read targets.
func (a *Analyzer) typeLvalue(lv ast.Lvalue) symtab.Type {
	var t symtab.Type
	switch n := lv.(type) {
	case *ast.VarLvalue:
		t = a.typeName(n.Name, n.Pos)
	case *ast.FieldLvalue:
		t = a.typeField(a.typeLvalue(n.Base), n.Field, n.Pos)
	default:
		panic("sema: unreachable lvalue kind")
	}
	lv.SetType(t)
	return t
}
