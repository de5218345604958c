package sema

import "github.com/Disha23112004/mini-compiler/internal/ast"

// blockReturns decides, per §4.3.3's syntactic and conservative rule,
// whether every path through stmts ends in a return. It looks only at the
// block's last statement: anything earlier is dead for this purpose, even
// an unconditional return buried in the middle of the block.
func blockReturns(stmts []ast.Stmt) bool {
	if len(stmts) == 0 {
		return false
	}
	return stmtReturns(stmts[len(stmts)-1])
}

func stmtReturns(s ast.Stmt) bool {
	switch n := s.(type) {
	case *ast.ReturnStmt:
		return true
	case *ast.IfStmt:
		return n.Else != nil && blockReturns(n.Then) && blockReturns(n.Else)
	default:
		return false
	}
}
