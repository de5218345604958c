package parse

import (
	"fmt"

	"github.com/Disha23112004/mini-compiler/internal/lexer"
	"github.com/Disha23112004/mini-compiler/internal/token"
)

// Error is a syntax error tied to a source position, surfaced from the
// external parser per spec.md §7 ("Parser errors are surfaced from the
// external parser and also skip codegen").
type Error struct {
	Pos token.Position
	Msg string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Pos, e.Msg)
}

// Parser is a hand-written recursive-descent parser over spec.md §6's
// surface grammar. It never fails half-open: on the first syntax error it
// returns immediately, matching the "black box" external-parser contract.
type Parser struct {
	toks []token.Token
	pos  int
}

// Parse scans and parses a complete Mini source file.
func Parse(file, src string) (*Program, error) {
	toks, err := lexer.All(file, src)
	if err != nil {
		return nil, err
	}
	p := &Parser{toks: toks}
	return p.parseProgram()
}

func (p *Parser) cur() token.Token  { return p.toks[p.pos] }
func (p *Parser) curPos() token.Position { return p.cur().Pos }

func (p *Parser) advance() token.Token {
	t := p.toks[p.pos]
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return t
}

func (p *Parser) at(k token.Kind) bool { return p.cur().Kind == k }

func (p *Parser) expect(k token.Kind) (token.Token, error) {
	if !p.at(k) {
		return token.Token{}, &Error{
			Pos: p.curPos(),
			Msg: fmt.Sprintf("expected %s, found %s", k, p.cur().Kind),
		}
	}
	return p.advance(), nil
}

func (p *Parser) parseProgram() (*Program, error) {
	prog := &Program{}
	for p.at(token.KW_STRUCT) && !p.isGlobalDecl() {
		s, err := p.parseStructDecl()
		if err != nil {
			return nil, err
		}
		prog.Structs = append(prog.Structs, s)
	}
	for p.at(token.KW_INT) || p.at(token.KW_BOOL) || p.isGlobalDecl() {
		g, err := p.parseVarDeclStmt()
		if err != nil {
			return nil, err
		}
		prog.Globals = append(prog.Globals, g)
	}
	for p.at(token.KW_FUN) {
		f, err := p.parseFuncDecl()
		if err != nil {
			return nil, err
		}
		prog.Funcs = append(prog.Funcs, f)
	}
	if !p.at(token.EOF) {
		return nil, &Error{Pos: p.curPos(), Msg: fmt.Sprintf("unexpected %s at top level", p.cur().Kind)}
	}
	if len(prog.Funcs) == 0 {
		return nil, &Error{Pos: p.curPos(), Msg: "program must declare at least one function"}
	}
	return prog, nil
}

// isGlobalDecl reports whether the parser is at `struct Name ident ;`
// (a global of struct type), as opposed to a struct declaration which is
// `struct Name { ...`.
func (p *Parser) isGlobalDecl() bool {
	if !p.at(token.KW_STRUCT) {
		return false
	}
	// Peek: struct IDENT IDENT -> global decl. struct IDENT { -> decl already
	// consumed above; this helper only runs once that case is excluded.
	return p.pos+2 < len(p.toks) &&
		p.toks[p.pos+1].Kind == token.IDENT &&
		p.toks[p.pos+2].Kind == token.IDENT
}

func (p *Parser) parseStructDecl() (*StructDecl, error) {
	pos := p.curPos()
	if _, err := p.expect(token.KW_STRUCT); err != nil {
		return nil, err
	}
	name, err := p.expect(token.IDENT)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.LBRACE); err != nil {
		return nil, err
	}
	decl := &StructDecl{Name: name.Text, Pos: pos}
	for !p.at(token.RBRACE) {
		f, err := p.parseVarDeclStmt()
		if err != nil {
			return nil, err
		}
		decl.Fields = append(decl.Fields, f)
	}
	if _, err := p.expect(token.RBRACE); err != nil {
		return nil, err
	}
	if _, err := p.expect(token.SEMI); err != nil {
		return nil, err
	}
	return decl, nil
}

// parseVarDeclStmt parses `type name ;` used by globals, struct fields,
// and function-local declarations. `void` is never a value type, so it is
// rejected here even though it is a valid return-type annotation.
func (p *Parser) parseVarDeclStmt() (*VarDecl, error) {
	tp, err := p.parseValueType()
	if err != nil {
		return nil, err
	}
	name, err := p.expect(token.IDENT)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.SEMI); err != nil {
		return nil, err
	}
	return &VarDecl{Type: tp, Name: name.Text, Pos: tp.Pos}, nil
}

// parseValueType parses `int` | `bool` | `struct Name` — any type that may
// be the type of a variable, field, or parameter.
func (p *Parser) parseValueType() (*TypeRef, error) {
	pos := p.curPos()
	switch {
	case p.at(token.KW_INT):
		p.advance()
		return &TypeRef{Kind: TInt, Pos: pos}, nil
	case p.at(token.KW_BOOL):
		p.advance()
		return &TypeRef{Kind: TBool, Pos: pos}, nil
	case p.at(token.KW_STRUCT):
		p.advance()
		name, err := p.expect(token.IDENT)
		if err != nil {
			return nil, err
		}
		return &TypeRef{Kind: TStruct, StructName: name.Text, Pos: pos}, nil
	}
	return nil, &Error{Pos: pos, Msg: fmt.Sprintf("expected a type, found %s", p.cur().Kind)}
}

// parseReturnType parses a function's return-type annotation: a value
// type, or `void`.
func (p *Parser) parseReturnType() (*TypeRef, error) {
	if p.at(token.KW_VOID) {
		pos := p.curPos()
		p.advance()
		return &TypeRef{Kind: TVoid, Pos: pos}, nil
	}
	return p.parseValueType()
}

func (p *Parser) parseFuncDecl() (*FuncDecl, error) {
	pos := p.curPos()
	if _, err := p.expect(token.KW_FUN); err != nil {
		return nil, err
	}
	name, err := p.expect(token.IDENT)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.LPAREN); err != nil {
		return nil, err
	}
	fn := &FuncDecl{Name: name.Text, Pos: pos}
	for !p.at(token.RPAREN) {
		if len(fn.Params) > 0 {
			if _, err := p.expect(token.COMMA); err != nil {
				return nil, err
			}
		}
		ptp, err := p.parseValueType()
		if err != nil {
			return nil, err
		}
		pname, err := p.expect(token.IDENT)
		if err != nil {
			return nil, err
		}
		fn.Params = append(fn.Params, &VarDecl{Type: ptp, Name: pname.Text, Pos: ptp.Pos})
	}
	if _, err := p.expect(token.RPAREN); err != nil {
		return nil, err
	}
	ret, err := p.parseReturnType()
	if err != nil {
		return nil, err
	}
	fn.RetType = ret
	if _, err := p.expect(token.LBRACE); err != nil {
		return nil, err
	}
	for p.startsVarDecl() {
		l, err := p.parseVarDeclStmt()
		if err != nil {
			return nil, err
		}
		fn.Locals = append(fn.Locals, l)
	}
	for !p.at(token.RBRACE) {
		s, err := p.parseStmt()
		if err != nil {
			return nil, err
		}
		fn.Body = append(fn.Body, s)
	}
	if _, err := p.expect(token.RBRACE); err != nil {
		return nil, err
	}
	return fn, nil
}

// startsVarDecl distinguishes a local declaration (`type name ;`) from the
// start of a statement. `int`/`bool` always start a declaration here;
// `struct Name ident ;` does too, but `struct` never starts a statement in
// this grammar so a lone struct-keyword lookahead suffices.
func (p *Parser) startsVarDecl() bool {
	return p.at(token.KW_INT) || p.at(token.KW_BOOL) || p.at(token.KW_STRUCT)
}

func (p *Parser) parseStmt() (Stmt, error) {
	pos := p.curPos()
	switch {
	case p.at(token.KW_IF):
		return p.parseIfStmt()
	case p.at(token.KW_WHILE):
		return p.parseWhileStmt()
	case p.at(token.KW_RETURN):
		p.advance()
		if p.at(token.SEMI) {
			p.advance()
			return &ReturnStmt{Pos: pos}, nil
		}
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.SEMI); err != nil {
			return nil, err
		}
		return &ReturnStmt{Value: e, Pos: pos}, nil
	case p.at(token.KW_PRINT) || p.at(token.KW_PRINTLN):
		newline := p.at(token.KW_PRINTLN)
		p.advance()
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.SEMI); err != nil {
			return nil, err
		}
		return &PrintStmt{Value: e, Newline: newline, Pos: pos}, nil
	case p.at(token.KW_READ):
		p.advance()
		lv, err := p.parseLvalue()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.SEMI); err != nil {
			return nil, err
		}
		return &ReadStmt{Target: lv, Pos: pos}, nil
	case p.at(token.KW_DELETE):
		p.advance()
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.SEMI); err != nil {
			return nil, err
		}
		return &DeleteStmt{Value: e, Pos: pos}, nil
	case p.at(token.IDENT):
		return p.parseAssignOrCallStmt(pos)
	}
	return nil, &Error{Pos: pos, Msg: fmt.Sprintf("unexpected %s at start of statement", p.cur().Kind)}
}

func (p *Parser) parseIfStmt() (*IfStmt, error) {
	pos := p.curPos()
	p.advance() // 'if'
	if _, err := p.expect(token.LPAREN); err != nil {
		return nil, err
	}
	guard, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.RPAREN); err != nil {
		return nil, err
	}
	then, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	stmt := &IfStmt{Guard: guard, Then: then, Pos: pos}
	if p.at(token.KW_ELSE) {
		p.advance()
		els, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		stmt.Else = els
	}
	return stmt, nil
}

func (p *Parser) parseWhileStmt() (*WhileStmt, error) {
	pos := p.curPos()
	p.advance() // 'while'
	if _, err := p.expect(token.LPAREN); err != nil {
		return nil, err
	}
	guard, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.RPAREN); err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &WhileStmt{Guard: guard, Body: body, Pos: pos}, nil
}

func (p *Parser) parseBlock() ([]Stmt, error) {
	if _, err := p.expect(token.LBRACE); err != nil {
		return nil, err
	}
	var stmts []Stmt
	for !p.at(token.RBRACE) {
		s, err := p.parseStmt()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, s)
	}
	if _, err := p.expect(token.RBRACE); err != nil {
		return nil, err
	}
	return stmts, nil
}

// parseAssignOrCallStmt disambiguates `lvalue = expr ;` from `call(...) ;`,
// both of which start with an identifier.
func (p *Parser) parseAssignOrCallStmt(pos token.Position) (Stmt, error) {
	name, _ := p.expect(token.IDENT)
	if p.at(token.LPAREN) {
		call, err := p.finishCallExpr(name.Text, pos)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.SEMI); err != nil {
			return nil, err
		}
		return &ExprStmt{Call: call, Pos: pos}, nil
	}
	lv, err := p.finishLvalue(&IdentLvalue{Name: name.Text, Pos: pos})
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.ASSIGN); err != nil {
		return nil, err
	}
	val, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.SEMI); err != nil {
		return nil, err
	}
	return &AssignStmt{Target: lv, Value: val, Pos: pos}, nil
}

func (p *Parser) parseLvalue() (Lvalue, error) {
	pos := p.curPos()
	name, err := p.expect(token.IDENT)
	if err != nil {
		return nil, err
	}
	return p.finishLvalue(&IdentLvalue{Name: name.Text, Pos: pos})
}

func (p *Parser) finishLvalue(base Lvalue) (Lvalue, error) {
	for p.at(token.DOT) {
		pos := p.curPos()
		p.advance()
		field, err := p.expect(token.IDENT)
		if err != nil {
			return nil, err
		}
		base = &FieldLvalue{Base: base, Field: field.Text, Pos: pos}
	}
	return base, nil
}

func (p *Parser) finishCallExpr(callee string, pos token.Position) (*CallExpr, error) {
	if _, err := p.expect(token.LPAREN); err != nil {
		return nil, err
	}
	call := &CallExpr{Callee: callee, Pos: pos}
	for !p.at(token.RPAREN) {
		if len(call.Args) > 0 {
			if _, err := p.expect(token.COMMA); err != nil {
				return nil, err
			}
		}
		arg, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		call.Args = append(call.Args, arg)
	}
	if _, err := p.expect(token.RPAREN); err != nil {
		return nil, err
	}
	return call, nil
}

// Expression grammar, lowest to highest precedence:
//   || && == != < > <= >=  + -  * /  unary(- !)  primary

func (p *Parser) parseExpr() (Expr, error) { return p.parseOr() }

func (p *Parser) parseOr() (Expr, error) {
	lhs, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.at(token.OR) {
		pos := p.curPos()
		p.advance()
		rhs, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		lhs = &BinaryExpr{Op: token.OR, Lhs: lhs, Rhs: rhs, Pos: pos}
	}
	return lhs, nil
}

func (p *Parser) parseAnd() (Expr, error) {
	lhs, err := p.parseEquality()
	if err != nil {
		return nil, err
	}
	for p.at(token.AND) {
		pos := p.curPos()
		p.advance()
		rhs, err := p.parseEquality()
		if err != nil {
			return nil, err
		}
		lhs = &BinaryExpr{Op: token.AND, Lhs: lhs, Rhs: rhs, Pos: pos}
	}
	return lhs, nil
}

func (p *Parser) parseEquality() (Expr, error) {
	lhs, err := p.parseRelational()
	if err != nil {
		return nil, err
	}
	for p.at(token.EQ) || p.at(token.NEQ) {
		op := p.cur().Kind
		pos := p.curPos()
		p.advance()
		rhs, err := p.parseRelational()
		if err != nil {
			return nil, err
		}
		lhs = &BinaryExpr{Op: op, Lhs: lhs, Rhs: rhs, Pos: pos}
	}
	return lhs, nil
}

func (p *Parser) parseRelational() (Expr, error) {
	lhs, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}
	for p.at(token.LT) || p.at(token.GT) || p.at(token.LE) || p.at(token.GE) {
		op := p.cur().Kind
		pos := p.curPos()
		p.advance()
		rhs, err := p.parseAdditive()
		if err != nil {
			return nil, err
		}
		lhs = &BinaryExpr{Op: op, Lhs: lhs, Rhs: rhs, Pos: pos}
	}
	return lhs, nil
}

func (p *Parser) parseAdditive() (Expr, error) {
	lhs, err := p.parseMultiplicative()
	if err != nil {
		return nil, err
	}
	for p.at(token.PLUS) || p.at(token.MINUS) {
		op := p.cur().Kind
		pos := p.curPos()
		p.advance()
		rhs, err := p.parseMultiplicative()
		if err != nil {
			return nil, err
		}
		lhs = &BinaryExpr{Op: op, Lhs: lhs, Rhs: rhs, Pos: pos}
	}
	return lhs, nil
}

func (p *Parser) parseMultiplicative() (Expr, error) {
	lhs, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for p.at(token.STAR) || p.at(token.SLASH) {
		op := p.cur().Kind
		pos := p.curPos()
		p.advance()
		rhs, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		lhs = &BinaryExpr{Op: op, Lhs: lhs, Rhs: rhs, Pos: pos}
	}
	return lhs, nil
}

func (p *Parser) parseUnary() (Expr, error) {
	if p.at(token.MINUS) || p.at(token.NOT) {
		op := p.cur().Kind
		pos := p.curPos()
		p.advance()
		e, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &UnaryExpr{Op: op, Expr: e, Pos: pos}, nil
	}
	return p.parsePrimary()
}

func (p *Parser) parsePrimary() (Expr, error) {
	pos := p.curPos()
	switch {
	case p.at(token.INT_LIT):
		tok := p.advance()
		var v int32
		for _, c := range tok.Text {
			v = v*10 + int32(c-'0')
		}
		return &IntLit{Value: v, Pos: pos}, nil
	case p.at(token.KW_TRUE):
		p.advance()
		return &BoolLit{Value: true, Pos: pos}, nil
	case p.at(token.KW_FALSE):
		p.advance()
		return &BoolLit{Value: false, Pos: pos}, nil
	case p.at(token.KW_NULL):
		p.advance()
		return &NullLit{Pos: pos}, nil
	case p.at(token.KW_READ):
		p.advance()
		return &ReadExpr{Pos: pos}, nil
	case p.at(token.KW_NEW):
		p.advance()
		if _, err := p.expect(token.KW_STRUCT); err != nil {
			return nil, err
		}
		name, err := p.expect(token.IDENT)
		if err != nil {
			return nil, err
		}
		return &NewExpr{StructName: name.Text, Pos: pos}, nil
	case p.at(token.LPAREN):
		p.advance()
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RPAREN); err != nil {
			return nil, err
		}
		return e, nil
	case p.at(token.IDENT):
		name := p.advance()
		if p.at(token.LPAREN) {
			return p.finishCallExpr(name.Text, pos)
		}
		var e Expr = &IdentExpr{Name: name.Text, Pos: pos}
		for p.at(token.DOT) {
			fpos := p.curPos()
			p.advance()
			field, err := p.expect(token.IDENT)
			if err != nil {
				return nil, err
			}
			e = &FieldExpr{Base: e, Field: field.Text, Pos: fpos}
		}
		return e, nil
	}
	return nil, &Error{Pos: pos, Msg: fmt.Sprintf("unexpected %s in expression", p.cur().Kind)}
}
