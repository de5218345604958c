package lexer

import (
	"testing"

	"github.com/Disha23112004/mini-compiler/internal/token"
)

func kinds(toks []token.Token) []token.Kind {
	ks := make([]token.Kind, len(toks))
	for i, t := range toks {
		ks[i] = t.Kind
	}
	return ks
}

func TestAllBasicTokens(t *testing.T) {
	const src = `struct N { int v; struct N next; };`
	toks, err := All("t.mini", src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []token.Kind{
		token.KW_STRUCT, token.IDENT, token.LBRACE,
		token.KW_INT, token.IDENT, token.SEMI,
		token.KW_STRUCT, token.IDENT, token.IDENT, token.SEMI,
		token.RBRACE, token.SEMI, token.EOF,
	}
	got := kinds(toks)
	if len(got) != len(want) {
		t.Fatalf("got %d tokens %v, want %d %v", len(got), got, len(want), want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d: got %s, want %s", i, got[i], want[i])
		}
	}
}

func TestOperatorsAndComments(t *testing.T) {
	const src = "x <= 3 && y != null // trailing\n/* block */ z >= 1"
	toks, err := All("t.mini", src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []token.Kind{
		token.IDENT, token.LE, token.INT_LIT, token.AND,
		token.IDENT, token.NEQ, token.KW_NULL,
		token.IDENT, token.GE, token.INT_LIT, token.EOF,
	}
	got := kinds(toks)
	if len(got) != len(want) {
		t.Fatalf("got %d tokens %v, want %d %v", len(got), got, len(want), want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d: got %s, want %s", i, got[i], want[i])
		}
	}
}

func TestPositionsTrackLineAndColumn(t *testing.T) {
	const src = "int x;\nbool y;"
	toks, err := All("t.mini", src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// "bool" starts on line 2, column 1.
	var boolTok token.Token
	for _, tk := range toks {
		if tk.Kind == token.KW_BOOL {
			boolTok = tk
		}
	}
	if boolTok.Pos.Line != 2 {
		t.Errorf("expected 'bool' on line 2, got %d", boolTok.Pos.Line)
	}
	if boolTok.Pos.Col != 1 {
		t.Errorf("expected 'bool' at column 1, got %d", boolTok.Pos.Col)
	}
}

func TestUnterminatedBlockComment(t *testing.T) {
	_, err := All("t.mini", "int x; /* oops")
	if err == nil {
		t.Fatal("expected an error for unterminated block comment")
	}
}

func TestInvalidNumericLiteral(t *testing.T) {
	_, err := All("t.mini", "int x; x = 3abc;")
	if err == nil {
		t.Fatal("expected an error for invalid numeric literal")
	}
}
