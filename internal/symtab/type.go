// Package symtab implements Mini's type and scope model: the variants of
// §3.1, the struct and function signature tables, and the chain-of-scopes
// value lookup used while analyzing a function body.
package symtab

// Kind distinguishes the variants of a Mini type. The zero value,
// Unresolved, marks an expression's type annotation before the semantic
// analyzer has run; it is never a valid type for a fully analyzed AST.
type Kind int

const (
	Unresolved Kind = iota
	Int
	Bool
	StructKind
	Null
	Void
	// ErrorKind marks a node whose type could not be determined because a
	// diagnostic was already recorded for it. It is assignable to and from
	// every other type, so a single error does not cascade into a string
	// of unrelated TypeMismatch diagnostics over the same subtree.
	ErrorKind
)

func (k Kind) String() string {
	switch k {
	case Unresolved:
		return "<unresolved>"
	case Int:
		return "int"
	case Bool:
		return "bool"
	case StructKind:
		return "struct"
	case Null:
		return "null"
	case Void:
		return "void"
	case ErrorKind:
		return "<error>"
	}
	return "unknown"
}

// Type is a resolved Mini type: Int, Bool, Struct(name), Null, or Void.
// Null unifies with any Struct(_) type (see AssignableTo); Void is only
// ever valid as a function's return type.
type Type struct {
	Kind       Kind
	StructName string // set only when Kind == StructKind
}

func IntType() Type               { return Type{Kind: Int} }
func BoolType() Type              { return Type{Kind: Bool} }
func StructType(name string) Type { return Type{Kind: StructKind, StructName: name} }
func NullType() Type              { return Type{Kind: Null} }
func VoidType() Type              { return Type{Kind: Void} }
func ErrorType() Type             { return Type{Kind: ErrorKind} }

func (t Type) IsStruct() bool { return t.Kind == StructKind }

// Equal reports strict type equality: Struct(A) is not equal to Struct(B)
// and Null is not equal to any Struct(_), even though they unify for
// assignment purposes (see AssignableTo).
func (t Type) Equal(other Type) bool {
	if t.Kind == ErrorKind || other.Kind == ErrorKind {
		return true
	}
	if t.Kind != other.Kind {
		return false
	}
	if t.Kind == StructKind {
		return t.StructName == other.StructName
	}
	return true
}

// AssignableTo reports whether a value of type t may be used where a value
// of type want is expected: exact match, or Null against any Struct(_) in
// either direction.
func (t Type) AssignableTo(want Type) bool {
	if t.Kind == ErrorKind || want.Kind == ErrorKind {
		return true
	}
	if t.Equal(want) {
		return true
	}
	if t.Kind == Null && want.Kind == StructKind {
		return true
	}
	if want.Kind == Null && t.Kind == StructKind {
		return true
	}
	return false
}

func (t Type) String() string {
	switch t.Kind {
	case Int:
		return "int"
	case Bool:
		return "bool"
	case StructKind:
		return "struct " + t.StructName
	case Null:
		return "null"
	case Void:
		return "void"
	case Unresolved:
		return "<unresolved>"
	case ErrorKind:
		return "<error>"
	default:
		return "<invalid type>"
	}
}
