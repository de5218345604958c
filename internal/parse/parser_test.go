package parse

import (
	"testing"

	"github.com/Disha23112004/mini-compiler/internal/token"
)

func TestParseStructAndFunction(t *testing.T) {
	const src = `
struct Node {
	int value;
	struct Node next;
};

int total;

fun sum(struct Node n) int {
	int acc;
	acc = 0;
	while (n != null) {
		acc = acc + n.value;
		n = n.next;
	}
	return acc;
}
`
	prog, err := Parse("t.mini", src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(prog.Structs) != 1 || prog.Structs[0].Name != "Node" {
		t.Fatalf("expected one struct Node, got %+v", prog.Structs)
	}
	if len(prog.Structs[0].Fields) != 2 {
		t.Fatalf("expected 2 fields, got %d", len(prog.Structs[0].Fields))
	}
	if len(prog.Globals) != 1 || prog.Globals[0].Name != "total" {
		t.Fatalf("expected global 'total', got %+v", prog.Globals)
	}
	if len(prog.Funcs) != 1 || prog.Funcs[0].Name != "sum" {
		t.Fatalf("expected function 'sum', got %+v", prog.Funcs)
	}
	fn := prog.Funcs[0]
	if len(fn.Params) != 1 || fn.Params[0].Type.Kind != TStruct || fn.Params[0].Type.StructName != "Node" {
		t.Fatalf("unexpected params: %+v", fn.Params)
	}
	if len(fn.Body) != 3 {
		t.Fatalf("expected 3 statements in body, got %d: %+v", len(fn.Body), fn.Body)
	}
	if _, ok := fn.Body[1].(*WhileStmt); !ok {
		t.Fatalf("expected second statement to be a while loop, got %T", fn.Body[1])
	}
}

func TestParseExpressionPrecedence(t *testing.T) {
	const src = `
fun main() int {
	int x;
	x = 1 + 2 * 3 == 7 && !false || 1 < 2;
	return 0;
}
`
	prog, err := Parse("t.mini", src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assign := prog.Funcs[0].Body[0].(*AssignStmt)
	or, ok := assign.Value.(*BinaryExpr)
	if !ok || or.Op != token.OR {
		t.Fatalf("expected top-level OR, got %+v", assign.Value)
	}
	and, ok := or.Lhs.(*BinaryExpr)
	if !ok || and.Op != token.AND {
		t.Fatalf("expected AND as OR's left operand, got %+v", or.Lhs)
	}
	eq, ok := and.Lhs.(*BinaryExpr)
	if !ok || eq.Op != token.EQ {
		t.Fatalf("expected EQ as AND's left operand, got %+v", and.Lhs)
	}
	add, ok := eq.Lhs.(*BinaryExpr)
	if !ok || add.Op != token.PLUS {
		t.Fatalf("expected '+' under '==', got %+v", eq.Lhs)
	}
	mul, ok := add.Rhs.(*BinaryExpr)
	if !ok || mul.Op != token.STAR {
		t.Fatalf("expected '*' to bind tighter than '+', got %+v", add.Rhs)
	}
}

func TestParseIfElseAndCallStatement(t *testing.T) {
	const src = `
fun helper() void {
	print 1;
}

fun main() int {
	if (true) {
		helper();
	} else {
		println 0;
	}
	return 0;
}
`
	prog, err := Parse("t.mini", src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	main := prog.Funcs[1]
	ifs, ok := main.Body[0].(*IfStmt)
	if !ok {
		t.Fatalf("expected if statement, got %T", main.Body[0])
	}
	if len(ifs.Else) != 1 {
		t.Fatalf("expected an else branch with one statement, got %+v", ifs.Else)
	}
	exprStmt, ok := ifs.Then[0].(*ExprStmt)
	if !ok || exprStmt.Call.Callee != "helper" {
		t.Fatalf("expected call to 'helper', got %+v", ifs.Then[0])
	}
}

func TestParseNewDeleteReadPrint(t *testing.T) {
	const src = `
struct Box { int v; };

fun main() int {
	struct Box b;
	b = new struct Box;
	read b.v;
	print b.v;
	delete b;
	return 0;
}
`
	prog, err := Parse("t.mini", src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	main := prog.Funcs[0]
	assign := main.Body[0].(*AssignStmt)
	newExpr, ok := assign.Value.(*NewExpr)
	if !ok || newExpr.StructName != "Box" {
		t.Fatalf("expected `new struct Box`, got %+v", assign.Value)
	}
	if _, ok := main.Body[1].(*ReadStmt); !ok {
		t.Fatalf("expected read statement, got %T", main.Body[1])
	}
	if _, ok := main.Body[2].(*PrintStmt); !ok {
		t.Fatalf("expected print statement, got %T", main.Body[2])
	}
	if _, ok := main.Body[3].(*DeleteStmt); !ok {
		t.Fatalf("expected delete statement, got %T", main.Body[3])
	}
}

func TestParseSyntaxError(t *testing.T) {
	const src = `
fun main() int {
	return 0
}
`
	_, err := Parse("t.mini", src)
	if err == nil {
		t.Fatal("expected a syntax error for a missing semicolon")
	}
}

func TestParseRequiresAtLeastOneFunction(t *testing.T) {
	const src = `struct Empty { int x; };`
	_, err := Parse("t.mini", src)
	if err == nil {
		t.Fatal("expected an error when no function is declared")
	}
}
