package ast

import (
	"fmt"
	"io"
	"strings"
)

// DumpTree writes a parenthesized tree form of prog to w, one top-level
// declaration per top-level line. It dispatches over the tagged-variant
// node set with ordinary type switches, matching the rest of this
// package — there is no per-node ToString method to keep in sync with
// new node kinds.
func DumpTree(w io.Writer, prog *Program) {
	p := &printer{w: w}
	p.dumpProgram(prog)
}

type printer struct {
	w io.Writer
}

func (p *printer) line(depth int, format string, args ...interface{}) {
	fmt.Fprintf(p.w, "%s%s\n", strings.Repeat("  ", depth), fmt.Sprintf(format, args...))
}

func (p *printer) dumpProgram(prog *Program) {
	p.line(0, "(program")
	for _, s := range prog.Structs {
		p.dumpStruct(s, 1)
	}
	for _, g := range prog.Globals {
		p.line(1, "(global %s %s)", typeRefString(g.Type), g.Name)
	}
	for _, f := range prog.Funcs {
		p.dumpFunc(f, 1)
	}
	p.line(0, ")")
}

func (p *printer) dumpStruct(s *StructDecl, depth int) {
	p.line(depth, "(struct %s", s.Name)
	for _, f := range s.Fields {
		p.line(depth+1, "(field %s %s)", typeRefString(f.Type), f.Name)
	}
	p.line(depth, ")")
}

func (p *printer) dumpFunc(f *FuncDecl, depth int) {
	var params []string
	for _, pr := range f.Params {
		params = append(params, fmt.Sprintf("%s %s", typeRefString(pr.Type), pr.Name))
	}
	p.line(depth, "(func %s (%s) %s", f.Name, strings.Join(params, ", "), typeRefString(f.RetType))
	for _, l := range f.Locals {
		p.line(depth+1, "(local %s %s)", typeRefString(l.Type), l.Name)
	}
	for _, s := range f.Body {
		p.dumpStmt(s, depth+1)
	}
	p.line(depth, ")")
}

func (p *printer) dumpStmt(s Stmt, depth int) {
	switch n := s.(type) {
	case *AssignStmt:
		p.line(depth, "(assign %s", exprTreeString(n.Target))
		p.dumpExprLine(n.Value, depth+1)
		p.line(depth, ")")
	case *IfStmt:
		p.line(depth, "(if %s", exprTreeString(n.Guard))
		for _, t := range n.Then {
			p.dumpStmt(t, depth+1)
		}
		if n.Else != nil {
			p.line(depth, "(else")
			for _, e := range n.Else {
				p.dumpStmt(e, depth+1)
			}
			p.line(depth, ")")
		}
		p.line(depth, ")")
	case *WhileStmt:
		p.line(depth, "(while %s", exprTreeString(n.Guard))
		for _, b := range n.Body {
			p.dumpStmt(b, depth+1)
		}
		p.line(depth, ")")
	case *ReturnStmt:
		if n.Value == nil {
			p.line(depth, "(return)")
		} else {
			p.line(depth, "(return %s)", exprTreeString(n.Value))
		}
	case *PrintStmt:
		op := "print"
		if n.Newline {
			op = "println"
		}
		p.line(depth, "(%s %s)", op, exprTreeString(n.Value))
	case *DeleteStmt:
		p.line(depth, "(delete %s)", exprTreeString(n.Value))
	case *InvokeStmt:
		p.line(depth, "(invoke %s)", exprTreeString(n.Call))
	default:
		p.line(depth, "(unknown-stmt %T)", n)
	}
}

func (p *printer) dumpExprLine(e Expr, depth int) {
	p.line(depth, "%s", exprTreeString(e))
}

func typeRefString(t *TypeRef) string {
	switch t.Kind {
	case TInt:
		return "int"
	case TBool:
		return "bool"
	case TStruct:
		return "struct " + t.StructName
	case TVoid:
		return "void"
	default:
		return "?"
	}
}

// exprTreeString renders an expression as a single parenthesized line;
// expressions in Mini are shallow enough that this never needs wrapping
// across multiple output lines.
func exprTreeString(e interface{}) string {
	switch n := e.(type) {
	case *IntLit:
		return fmt.Sprintf("%d", n.Value)
	case *BoolLit:
		return fmt.Sprintf("%t", n.Value)
	case *NullLit:
		return "null"
	case *ReadIntExpr:
		return "(read)"
	case *VarExpr:
		return n.Name
	case *FieldRead:
		return fmt.Sprintf("(field %s %s)", exprTreeString(n.Base), n.Field)
	case *UnaryExpr:
		return fmt.Sprintf("(%s %s)", n.Op, exprTreeString(n.Expr))
	case *BinaryExpr:
		return fmt.Sprintf("(%s %s %s)", n.Op, exprTreeString(n.Lhs), exprTreeString(n.Rhs))
	case *CallExpr:
		var args []string
		for _, a := range n.Args {
			args = append(args, exprTreeString(a))
		}
		return fmt.Sprintf("(call %s %s)", n.Callee, strings.Join(args, " "))
	case *NewExpr:
		return fmt.Sprintf("(new struct %s)", n.StructName)
	case *VarLvalue:
		return n.Name
	case *FieldLvalue:
		return fmt.Sprintf("(field %s %s)", exprTreeString(n.Base), n.Field)
	default:
		return fmt.Sprintf("(unknown-expr %T)", n)
	}
}
