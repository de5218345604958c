// Package ast defines Mini's typed syntax tree: the node shapes of §3.5,
// lifted from a parsed concrete syntax tree by Build. Every concrete node
// type is a plain struct; there is no Visitor interface here — the
// semantic analyzer and code generator dispatch over these with ordinary
// Go type switches.
package ast

import (
	"github.com/Disha23112004/mini-compiler/internal/symtab"
	"github.com/Disha23112004/mini-compiler/internal/token"
)

// TypeKind names a syntactic type reference, as written in source, before
// struct names are resolved against a symtab.StructTable.
type TypeKind int

const (
	TInt TypeKind = iota
	TBool
	TStruct
	TVoid
)

// TypeRef is the syntax `int` | `bool` | `struct Name` | `void`.
type TypeRef struct {
	Kind       TypeKind
	StructName string
	Pos        token.Position
}

// Program is the root of a Mini source file: its struct declarations,
// global variables, and functions, in declaration order.
type Program struct {
	Structs []*StructDecl
	Globals []*VarDecl
	Funcs   []*FuncDecl
}

// StructDecl is `struct Name { (type name ;)+ };`.
type StructDecl struct {
	Name   string
	Fields []*VarDecl
	Pos    token.Position
}

// VarDecl is a `type name` pair: a global, a struct field, a parameter, or
// a function-local declaration.
type VarDecl struct {
	Type *TypeRef
	Name string
	Pos  token.Position
}

// FuncDecl is `fun name(params) return-type { local-decl* statement* }`.
type FuncDecl struct {
	Name    string
	Params  []*VarDecl
	RetType *TypeRef
	Locals  []*VarDecl
	Body    []Stmt
	Pos     token.Position
}

// Stmt is any Mini statement form (§3.5): Assign, If, While, Return,
// Print, Delete, or Invoke. A `read lv;` statement has no node of its own:
// Build represents it as an AssignStmt whose value is a ReadIntExpr.
type Stmt interface {
	stmtNode()
	Position() token.Position
}

type baseStmt struct{ Pos token.Position }

func (n baseStmt) Position() token.Position { return n.Pos }

type AssignStmt struct {
	baseStmt
	Target Lvalue
	Value  Expr
}

type IfStmt struct {
	baseStmt
	Guard Expr
	Then  []Stmt
	Else  []Stmt // nil when there is no else clause
}

type WhileStmt struct {
	baseStmt
	Guard Expr
	Body  []Stmt
}

type ReturnStmt struct {
	baseStmt
	Value Expr // nil for a bare `return;`
}

type PrintStmt struct {
	baseStmt
	Value   Expr
	Newline bool
}

type DeleteStmt struct {
	baseStmt
	Value Expr
}

// InvokeStmt is a call used as a statement, discarding its result.
type InvokeStmt struct {
	baseStmt
	Call *CallExpr
}

func (*AssignStmt) stmtNode() {}
func (*IfStmt) stmtNode()     {}
func (*WhileStmt) stmtNode()  {}
func (*ReturnStmt) stmtNode() {}
func (*PrintStmt) stmtNode()  {}
func (*DeleteStmt) stmtNode() {}
func (*InvokeStmt) stmtNode() {}

// Lvalue is an assignment/read target: a bare name or a field chain. Like
// Expr, it carries a type annotation filled in by the analyzer.
type Lvalue interface {
	lvalueNode()
	Position() token.Position
	Type() symtab.Type
	SetType(symtab.Type)
}

type baseLvalue struct {
	Pos token.Position
	Typ symtab.Type
}

func (n *baseLvalue) Position() token.Position { return n.Pos }
func (n *baseLvalue) Type() symtab.Type         { return n.Typ }
func (n *baseLvalue) SetType(t symtab.Type)     { n.Typ = t }

type VarLvalue struct {
	baseLvalue
	Name string
}

type FieldLvalue struct {
	baseLvalue
	Base  Lvalue
	Field string
}

func (*VarLvalue) lvalueNode()   {}
func (*FieldLvalue) lvalueNode() {}

// Expr is any Mini expression form (§3.5). Every expression carries a
// type annotation, the zero (symtab.Unresolved) type until the semantic
// analyzer fills it in; codegen relies on it being present.
type Expr interface {
	exprNode()
	Position() token.Position
	Type() symtab.Type
	SetType(symtab.Type)
}

type baseExpr struct {
	Pos token.Position
	Typ symtab.Type
}

func (n *baseExpr) Position() token.Position { return n.Pos }
func (n *baseExpr) Type() symtab.Type         { return n.Typ }
func (n *baseExpr) SetType(t symtab.Type)     { n.Typ = t }

type IntLit struct {
	baseExpr
	Value int32
}

type BoolLit struct {
	baseExpr
	Value bool
}

type NullLit struct{ baseExpr }

// VarExpr reads a variable, parameter, or global by name.
type VarExpr struct {
	baseExpr
	Name string
}

// FieldRead reads a field off a struct-typed expression.
type FieldRead struct {
	baseExpr
	Base  Expr
	Field string
}

type BinaryExpr struct {
	baseExpr
	Op       token.Kind
	Lhs, Rhs Expr
}

type UnaryExpr struct {
	baseExpr
	Op   token.Kind
	Expr Expr
}

type CallExpr struct {
	baseExpr
	Callee string
	Args   []Expr
}

// NewExpr allocates a fresh instance of a struct type.
type NewExpr struct {
	baseExpr
	StructName string
}

// ReadIntExpr is the expression form of integer input.
type ReadIntExpr struct{ baseExpr }

func (*IntLit) exprNode()      {}
func (*BoolLit) exprNode()     {}
func (*NullLit) exprNode()     {}
func (*VarExpr) exprNode()     {}
func (*FieldRead) exprNode()   {}
func (*BinaryExpr) exprNode()  {}
func (*UnaryExpr) exprNode()   {}
func (*CallExpr) exprNode()    {}
func (*NewExpr) exprNode()     {}
func (*ReadIntExpr) exprNode() {}
