package riscv

import (
	"regexp"
	"strings"
	"testing"

	"github.com/Disha23112004/mini-compiler/internal/ast"
	"github.com/Disha23112004/mini-compiler/internal/parse"
	"github.com/Disha23112004/mini-compiler/internal/sema"
)

func compileToAsm(t *testing.T, src string) string {
	t.Helper()
	prog, err := parse.Parse("test.mini", src)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	a := ast.Build(prog)
	res := sema.Analyze(a)
	if res.Diags.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", res.Diags.Diagnostics())
	}
	var buf strings.Builder
	if err := Emit(a, res, &buf); err != nil {
		t.Fatalf("emit error: %v", err)
	}
	return buf.String()
}

// countMatches counts non-overlapping occurrences of re as whole
// instruction mnemonics (word-boundary delimited).
func countMatches(asm, mnemonic string) int {
	re := regexp.MustCompile(`\b` + mnemonic + `\b`)
	return len(re.FindAllString(asm, -1))
}

func TestArithmeticScenarioEmitsMulAndAdd(t *testing.T) {
	asm := compileToAsm(t, `
fun main() int {
	int x;
	x = 3 + 4 * 2;
	println x;
	return 0;
}
`)
	if countMatches(asm, "mul") != 1 {
		t.Errorf("expected exactly one mul, got asm:\n%s", asm)
	}
	if countMatches(asm, "add") != 1 {
		t.Errorf("expected exactly one add, got asm:\n%s", asm)
	}
	if !strings.Contains(asm, "jal print_int_newline") {
		t.Errorf("expected a println call, got asm:\n%s", asm)
	}
}

func TestLinkedListScenarioEmitsOneMallocAndOneFree(t *testing.T) {
	asm := compileToAsm(t, `
struct N {
	int v;
	struct N next;
};

fun main() int {
	struct N a;
	a = new struct N;
	a.v = 42;
	a.next = null;
	println a.v;
	delete a;
	return 0;
}
`)
	if countMatches(asm, "jal") < 3 {
		t.Fatalf("expected calls to malloc, free and print_int_newline, got asm:\n%s", asm)
	}
	if !strings.Contains(asm, "jal malloc") {
		t.Errorf("expected jal malloc, got asm:\n%s", asm)
	}
	if !strings.Contains(asm, "jal free") {
		t.Errorf("expected jal free, got asm:\n%s", asm)
	}
	if countMatches(asm, "jal malloc") != 1 {
		t.Errorf("expected exactly one malloc call, got asm:\n%s", asm)
	}
}

func TestRecursiveFactorialEmitsSelfCall(t *testing.T) {
	asm := compileToAsm(t, `
fun factorial(int n) int {
	if (n < 2) {
		return 1;
	} else {
		return n * factorial(n - 1);
	}
}

fun main() int {
	println factorial(5);
	return 0;
}
`)
	if !strings.Contains(asm, "jal factorial") {
		t.Errorf("expected a recursive jal factorial, got asm:\n%s", asm)
	}
}

func TestStructFieldOffsetsAreFourTimesIndex(t *testing.T) {
	asm := compileToAsm(t, `
struct Pair {
	int a;
	int b;
};

fun main() int {
	struct Pair p;
	p = new struct Pair;
	p.a = 1;
	p.b = 2;
	return p.b;
}
`)
	// field "a" is at offset 0: no addi is emitted to reach it (address
	// already correct). Field "b" is at offset 4, so exactly one "addi t2,
	// t2, 4" should appear for each access.
	if countMatches(asm, "addi t2, t2, 4") < 1 {
		t.Errorf("expected an offset-4 field address computation, got asm:\n%s", asm)
	}
}

func TestEmptyVoidFunctionEmitsValidPrologueEpilogue(t *testing.T) {
	asm := compileToAsm(t, `
fun noop() void {
}

fun main() int {
	noop();
	return 0;
}
`)
	if !strings.Contains(asm, "noop:") {
		t.Fatalf("expected a noop label, got asm:\n%s", asm)
	}
	if countMatches(asm, "jr ra") < 2 {
		t.Errorf("expected an epilogue per function, got asm:\n%s", asm)
	}
}

func TestFunctionWithZeroParamsEmitsNoArgumentStores(t *testing.T) {
	asm := compileToAsm(t, `
fun answer() int {
	return 42;
}

fun main() int {
	return answer();
}
`)
	funcBody := asm[strings.Index(asm, "answer:"):strings.Index(asm, "main:")]
	if strings.Contains(funcBody, "sw a0,") {
		t.Errorf("expected no argument-store code for a zero-parameter function, got:\n%s", funcBody)
	}
}

func TestLabelsAreUniqueWithinAFunction(t *testing.T) {
	asm := compileToAsm(t, `
fun classify(int n) int {
	if (n < 0) {
		return 0;
	} else {
		if (n < 10) {
			return 1;
		} else {
			return 2;
		}
	}
}

fun main() int {
	return classify(5);
}
`)
	seen := map[string]bool{}
	re := regexp.MustCompile(`(?m)^(L\d+):`)
	for _, m := range re.FindAllStringSubmatch(asm, -1) {
		if seen[m[1]] {
			t.Fatalf("label %s emitted more than once:\n%s", m[1], asm)
		}
		seen[m[1]] = true
	}
	if len(seen) == 0 {
		t.Fatalf("expected at least one label, got asm:\n%s", asm)
	}
}

func TestExpressionStackDisciplineIsBalanced(t *testing.T) {
	// No locals or parameters, so the function's own frame setup never
	// emits a "sp,sp,-4"/"sp,sp,4" pair that could be confused with the
	// expression evaluator's push/pop traffic.
	asm := compileToAsm(t, `
fun main() int {
	return (1 + 2) * (3 - 4) / 5;
}
`)
	pushes := countMatches(asm, "addi sp, sp, -4")
	pops := countMatches(asm, "addi sp, sp, 4")
	if pushes != pops {
		t.Errorf("unbalanced stack discipline: %d pushes vs %d pops, asm:\n%s", pushes, pops, asm)
	}
}
