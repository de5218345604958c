package ast

import (
	"testing"

	"github.com/Disha23112004/mini-compiler/internal/parse"
	"github.com/Disha23112004/mini-compiler/internal/symtab"
)

func TestBuildLiftsStructsGlobalsAndFunctions(t *testing.T) {
	const src = `
struct Node {
	int v;
	struct Node next;
};

int total;

fun sum(struct Node n) int {
	int acc;
	acc = 0;
	while (n != null) {
		acc = acc + n.v;
		n = n.next;
	}
	return acc;
}
`
	parsed, err := parse.Parse("t.mini", src)
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	prog := Build(parsed)

	if len(prog.Structs) != 1 || prog.Structs[0].Name != "Node" {
		t.Fatalf("expected struct Node, got %+v", prog.Structs)
	}
	if prog.Structs[0].Fields[1].Type.Kind != TStruct || prog.Structs[0].Fields[1].Type.StructName != "Node" {
		t.Fatalf("expected self-referencing field type, got %+v", prog.Structs[0].Fields[1].Type)
	}
	if len(prog.Globals) != 1 || prog.Globals[0].Name != "total" {
		t.Fatalf("expected global 'total', got %+v", prog.Globals)
	}

	fn := prog.Funcs[0]
	if fn.Name != "sum" || len(fn.Params) != 1 {
		t.Fatalf("expected function 'sum' with one parameter, got %+v", fn)
	}

	whileStmt, ok := fn.Body[1].(*WhileStmt)
	if !ok {
		t.Fatalf("expected a while statement, got %T", fn.Body[1])
	}
	guard, ok := whileStmt.Guard.(*BinaryExpr)
	if !ok {
		t.Fatalf("expected the guard to be a binary expression, got %T", whileStmt.Guard)
	}
	if _, ok := guard.Rhs.(*NullLit); !ok {
		t.Fatalf("expected 'null' on the right of '!=', got %T", guard.Rhs)
	}

	assign, ok := whileStmt.Body[0].(*AssignStmt)
	if !ok {
		t.Fatalf("expected an assignment in the loop body, got %T", whileStmt.Body[0])
	}
	add, ok := assign.Value.(*BinaryExpr)
	if !ok {
		t.Fatalf("expected 'acc + n.v', got %T", assign.Value)
	}
	if _, ok := add.Rhs.(*FieldRead); !ok {
		t.Fatalf("expected a field read on the right of '+', got %T", add.Rhs)
	}
}

func TestBuildTypeAnnotationsStartUnresolved(t *testing.T) {
	const src = `
fun main() int {
	int x;
	x = 1 + 2;
	return x;
}
`
	parsed, err := parse.Parse("t.mini", src)
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	prog := Build(parsed)
	assign := prog.Funcs[0].Body[0].(*AssignStmt)
	if assign.Value.Type().Kind != symtab.Unresolved {
		t.Fatalf("expected an unresolved type annotation before analysis, got %+v", assign.Value.Type())
	}
}

func TestBuildInvokeStatement(t *testing.T) {
	const src = `
fun helper() void {
	return;
}

fun main() int {
	helper();
	return 0;
}
`
	parsed, err := parse.Parse("t.mini", src)
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	prog := Build(parsed)
	inv, ok := prog.Funcs[1].Body[0].(*InvokeStmt)
	if !ok {
		t.Fatalf("expected an invoke statement, got %T", prog.Funcs[1].Body[0])
	}
	if inv.Call.Callee != "helper" {
		t.Fatalf("expected a call to 'helper', got %q", inv.Call.Callee)
	}
}

func TestBuildDesugarsReadStatementToAssign(t *testing.T) {
	const src = `
fun main() int {
	int x;
	read x;
	return x;
}
`
	parsed, err := parse.Parse("t.mini", src)
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	prog := Build(parsed)
	assign, ok := prog.Funcs[0].Body[0].(*AssignStmt)
	if !ok {
		t.Fatalf("expected 'read x;' to desugar to an assignment, got %T", prog.Funcs[0].Body[0])
	}
	if _, ok := assign.Value.(*ReadIntExpr); !ok {
		t.Fatalf("expected the assignment's value to be ReadIntExpr, got %T", assign.Value)
	}
	target, ok := assign.Target.(*VarLvalue)
	if !ok || target.Name != "x" {
		t.Fatalf("expected the assignment target to be 'x', got %+v", assign.Target)
	}
}
