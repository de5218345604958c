package riscv

import (
	"fmt"
	"io"

	"github.com/Disha23112004/mini-compiler/internal/ast"
	"github.com/Disha23112004/mini-compiler/internal/sema"
	"github.com/Disha23112004/mini-compiler/internal/symtab"
	"github.com/Disha23112004/mini-compiler/internal/token"
)

// InternalError is raised (via panic, recovered by Emit) when the
// generator's own invariants are violated by its input — per §4.4.5 this
// can only mean the AST reaching codegen was not actually well-typed, a
// bug in sema or in codegen itself, never a user-facing condition.
type InternalError struct{ Msg string }

func (e *InternalError) Error() string { return "internal codegen error: " + e.Msg }

type emitter struct {
	o        io.Writer
	structs  map[string]structLayout
	frame    *frame
	labelNum int
}

// Emit lowers prog (already Build-lifted and Analyze-checked, with res
// reporting no errors) into RV32IM assembly text written to o. Emit must
// never be called when res.Diags.HasErrors() is true.
func Emit(prog *ast.Program, res *sema.Result, o io.Writer) error {
	e := &emitter{o: o, structs: buildStructLayouts(res.Structs)}

	var caught error
	func() {
		defer func() {
			if r := recover(); r != nil {
				ie, ok := r.(*InternalError)
				if !ok {
					panic(r)
				}
				caught = ie
			}
		}()
		e.emitProgram(prog)
	}()
	return caught
}

func (e *emitter) fail(format string, args ...interface{}) {
	panic(&InternalError{Msg: fmt.Sprintf(format, args...)})
}

func (e *emitter) write(format string, args ...interface{}) {
	fmt.Fprintf(e.o, format, args...)
}

// writeIndented emits one instruction, indented the way GNU assembler
// listings conventionally are; labels are written with write, not this.
func (e *emitter) writeIndented(format string, args ...interface{}) {
	e.write("  "+format+"\n", args...)
}

func (e *emitter) emitProgram(prog *ast.Program) {
	e.write(".data\n")
	for _, g := range prog.Globals {
		e.write("%s: .word 0\n", globalLabel(g.Name))
	}
	e.write("\n.text\n")
	for _, fn := range prog.Funcs {
		e.emitFunc(fn)
	}
}

func (e *emitter) nextLabel() string {
	l := fmt.Sprintf("L%d", e.labelNum)
	e.labelNum++
	return l
}

// emitFunc lowers one function, including its uniform prologue/epilogue
// (§4.4.2 — no special-casing main, per spec.md's explicit divergence from
// the original's exit-path special case).
func (e *emitter) emitFunc(fn *ast.FuncDecl) {
	e.frame = buildFrame(fn)
	e.labelNum = 0

	e.write(".globl %s\n", fn.Name)
	e.write("%s:\n", fn.Name)
	e.writeIndented("addi sp, sp, -8")
	e.writeIndented("sw ra, 4(sp)")
	e.writeIndented("sw fp, 0(sp)")
	e.writeIndented("addi fp, sp, 0")
	if e.frame.size > 0 {
		e.writeIndented("addi sp, sp, -%d", e.frame.size)
	}
	for i, p := range fn.Params {
		if i >= 8 {
			e.fail("function %q has more than 8 parameters; stack-passed parameters are not yet supported", fn.Name)
		}
		off, _ := e.frame.slot(p.Name)
		e.writeIndented("sw a%d, %d(fp)", i, off)
	}

	for _, s := range fn.Body {
		e.emitStmt(s)
	}

	e.emitEpilogue()
}

// emitEpilogue is every function's single return sequence (§4.4.2).
// Non-void functions must have moved their result into a0 before this is
// called; resetting sp from fp here discards any scratch stack use from
// expression evaluation, which is why that discipline is safe.
func (e *emitter) emitEpilogue() {
	e.writeIndented("addi sp, fp, 0")
	e.writeIndented("lw fp, 0(sp)")
	e.writeIndented("lw ra, 4(sp)")
	e.writeIndented("addi sp, sp, 8")
	e.writeIndented("jr ra")
}

func (e *emitter) emitStmt(s ast.Stmt) {
	switch n := s.(type) {
	case *ast.AssignStmt:
		e.emitAssign(n)
	case *ast.IfStmt:
		e.emitIf(n)
	case *ast.WhileStmt:
		e.emitWhile(n)
	case *ast.ReturnStmt:
		e.emitReturn(n)
	case *ast.PrintStmt:
		e.emitExpr(n.Value)
		e.writeIndented("mv a0, t0")
		if n.Newline {
			e.writeIndented("jal print_int_newline")
		} else {
			e.writeIndented("jal print_int")
		}
	case *ast.DeleteStmt:
		e.emitExpr(n.Value)
		e.writeIndented("mv a0, t0")
		e.writeIndented("jal free")
	case *ast.InvokeStmt:
		e.emitExpr(n.Call)
	default:
		e.fail("unhandled statement kind %T", n)
	}
}

// emitAssign implements §4.4.3's lvalue-store rules. A plain Var target
// stores directly; a Field target must compute and stack the field's
// address before evaluating the rhs, since the rhs may itself clobber t2.
func (e *emitter) emitAssign(n *ast.AssignStmt) {
	switch target := n.Target.(type) {
	case *ast.VarLvalue:
		e.emitExpr(n.Value)
		e.storeVar(target.Name)
	case *ast.FieldLvalue:
		e.emitFieldAddr(target)
		e.writeIndented("addi sp, sp, -4")
		e.writeIndented("sw t2, 0(sp)")
		e.emitExpr(n.Value)
		e.writeIndented("lw t2, 0(sp)")
		e.writeIndented("addi sp, sp, 4")
		e.writeIndented("sw t0, 0(t2)")
	default:
		e.fail("unhandled lvalue kind %T", target)
	}
}

func (e *emitter) storeVar(name string) {
	if off, ok := e.frame.slot(name); ok {
		e.writeIndented("sw t0, %d(fp)", off)
		return
	}
	e.writeIndented("la t2, %s", globalLabel(name))
	e.writeIndented("sw t0, 0(t2)")
}

// emitFieldAddr lowers the pointer chain of an lvalue's base into t2 and
// adds the field's offset, leaving the field's address in t2.
func (e *emitter) emitFieldAddr(lv *ast.FieldLvalue) {
	e.emitLvalueLoad(lv.Base)
	e.writeIndented("mv t2, t0")
	structName := e.baseStructName(lv.Base.Type())
	off := e.fieldOffset(structName, lv.Field)
	if off != 0 {
		e.writeIndented("addi t2, t2, %d", off)
	}
}

// emitLvalueLoad evaluates an lvalue as a value (its current contents),
// used to read the base pointer of a field chain.
func (e *emitter) emitLvalueLoad(lv ast.Lvalue) {
	switch n := lv.(type) {
	case *ast.VarLvalue:
		e.loadVar(n.Name)
	case *ast.FieldLvalue:
		e.emitFieldAddr(n)
		e.writeIndented("lw t0, 0(t2)")
	default:
		e.fail("unhandled lvalue kind %T", n)
	}
}

func (e *emitter) baseStructName(t symtab.Type) string {
	if t.Kind != symtab.StructKind {
		e.fail("field access on non-struct type %s", t)
	}
	return t.StructName
}

func (e *emitter) emitIf(n *ast.IfStmt) {
	e.emitExpr(n.Guard)
	if n.Else == nil {
		lend := e.nextLabel()
		e.writeIndented("beq t0, x0, %s", lend)
		for _, s := range n.Then {
			e.emitStmt(s)
		}
		e.write("%s:\n", lend)
		return
	}
	lelse := e.nextLabel()
	lend := e.nextLabel()
	e.writeIndented("beq t0, x0, %s", lelse)
	for _, s := range n.Then {
		e.emitStmt(s)
	}
	e.writeIndented("j %s", lend)
	e.write("%s:\n", lelse)
	for _, s := range n.Else {
		e.emitStmt(s)
	}
	e.write("%s:\n", lend)
}

func (e *emitter) emitWhile(n *ast.WhileStmt) {
	ltop := e.nextLabel()
	lend := e.nextLabel()
	e.write("%s:\n", ltop)
	e.emitExpr(n.Guard)
	e.writeIndented("beq t0, x0, %s", lend)
	for _, s := range n.Body {
		e.emitStmt(s)
	}
	e.writeIndented("j %s", ltop)
	e.write("%s:\n", lend)
}

func (e *emitter) emitReturn(n *ast.ReturnStmt) {
	if n.Value != nil {
		e.emitExpr(n.Value)
		e.writeIndented("mv a0, t0")
	}
	e.emitEpilogue()
}

// emitExpr implements §4.4.3: every expression leaves its result in t0.
func (e *emitter) emitExpr(expr ast.Expr) {
	switch n := expr.(type) {
	case *ast.IntLit:
		e.writeIndented("li t0, %d", n.Value)
	case *ast.BoolLit:
		v := 0
		if n.Value {
			v = 1
		}
		e.writeIndented("li t0, %d", v)
	case *ast.NullLit:
		e.writeIndented("li t0, 0")
	case *ast.ReadIntExpr:
		e.writeIndented("jal read_int")
		e.writeIndented("mv t0, a0")
	case *ast.VarExpr:
		e.loadVar(n.Name)
	case *ast.FieldRead:
		e.emitFieldAddrFromExpr(n)
		e.writeIndented("lw t0, 0(t2)")
	case *ast.UnaryExpr:
		e.emitUnary(n)
	case *ast.BinaryExpr:
		e.emitBinary(n)
	case *ast.CallExpr:
		e.emitCall(n)
	case *ast.NewExpr:
		e.emitNew(n)
	default:
		e.fail("unhandled expression kind %T", n)
	}
}

func (e *emitter) loadVar(name string) {
	if off, ok := e.frame.slot(name); ok {
		e.writeIndented("lw t0, %d(fp)", off)
		return
	}
	e.writeIndented("la t0, %s", globalLabel(name))
	e.writeIndented("lw t0, 0(t0)")
}

// emitFieldAddrFromExpr mirrors emitFieldAddr for an expression-position
// field read (e.f), leaving the field's address in t2.
func (e *emitter) emitFieldAddrFromExpr(n *ast.FieldRead) {
	e.emitExpr(n.Base)
	e.writeIndented("mv t2, t0")
	structName := e.baseStructName(n.Base.Type())
	off := e.fieldOffset(structName, n.Field)
	if off != 0 {
		e.writeIndented("addi t2, t2, %d", off)
	}
}

func (e *emitter) emitUnary(n *ast.UnaryExpr) {
	e.emitExpr(n.Expr)
	switch n.Op {
	case token.MINUS:
		e.writeIndented("sub t0, x0, t0")
	case token.NOT:
		e.writeIndented("xori t0, t0, 1")
	default:
		e.fail("unhandled unary operator %s", n.Op)
	}
}

// emitBinary implements §4.4.3's stack-discipline protocol: lower the
// left operand, push it, lower the right operand, pop the left back into
// t1, then combine into t0 with the operand order the operator needs.
func (e *emitter) emitBinary(n *ast.BinaryExpr) {
	e.emitExpr(n.Lhs)
	e.writeIndented("addi sp, sp, -4")
	e.writeIndented("sw t0, 0(sp)")
	e.emitExpr(n.Rhs)
	e.writeIndented("lw t1, 0(sp)")
	e.writeIndented("addi sp, sp, 4")
	// t1 holds the left operand, t0 the right.
	switch n.Op {
	case token.PLUS:
		e.writeIndented("add t0, t1, t0")
	case token.MINUS:
		e.writeIndented("sub t0, t1, t0")
	case token.STAR:
		e.writeIndented("mul t0, t1, t0")
	case token.SLASH:
		e.writeIndented("div t0, t1, t0")
	case token.LT:
		e.writeIndented("slt t0, t1, t0")
	case token.GT:
		e.writeIndented("slt t0, t0, t1")
	case token.LE:
		e.writeIndented("slt t0, t0, t1")
		e.writeIndented("xori t0, t0, 1")
	case token.GE:
		e.writeIndented("slt t0, t1, t0")
		e.writeIndented("xori t0, t0, 1")
	case token.EQ:
		e.writeIndented("sub t0, t1, t0")
		e.writeIndented("seqz t0, t0")
	case token.NEQ:
		e.writeIndented("sub t0, t1, t0")
		e.writeIndented("snez t0, t0")
	case token.AND:
		e.writeIndented("and t0, t1, t0")
	case token.OR:
		e.writeIndented("or t0, t1, t0")
	default:
		e.fail("unhandled binary operator %s", n.Op)
	}
}

// emitCall implements §4.4.3's calling sequence: every argument is lowered
// to t0 and pushed, then popped in reverse into a0..a(k-1) so the first
// argument ends up in a0.
func (e *emitter) emitCall(n *ast.CallExpr) {
	if len(n.Args) > 8 {
		e.fail("call to %q has more than 8 arguments; stack-passed arguments are not yet supported", n.Callee)
	}
	for _, arg := range n.Args {
		e.emitExpr(arg)
		e.writeIndented("addi sp, sp, -4")
		e.writeIndented("sw t0, 0(sp)")
	}
	for i := len(n.Args) - 1; i >= 0; i-- {
		e.writeIndented("lw a%d, 0(sp)", i)
		e.writeIndented("addi sp, sp, 4")
	}
	e.writeIndented("jal %s", n.Callee)
	e.writeIndented("mv t0, a0")
}

func (e *emitter) emitNew(n *ast.NewExpr) {
	sl := e.structLayout(n.StructName)
	e.writeIndented("li a0, %d", sl.size)
	e.writeIndented("jal malloc")
	e.writeIndented("mv t0, a0")
}
