package symtab

import "testing"

func TestTypeEqualityAndAssignability(t *testing.T) {
	a := StructType("A")
	b := StructType("B")
	if a.Equal(b) {
		t.Fatal("struct types with different names must not be equal")
	}
	if !a.Equal(StructType("A")) {
		t.Fatal("struct types with the same name must be equal")
	}
	null := NullType()
	if null.Equal(a) {
		t.Fatal("Null and Struct(_) are not strictly equal")
	}
	if !null.AssignableTo(a) || !a.AssignableTo(null) {
		t.Fatal("Null must be assignable to/from any Struct(_) type")
	}
	if IntType().AssignableTo(BoolType()) {
		t.Fatal("int must not be assignable to bool")
	}
	if !ErrorType().AssignableTo(BoolType()) || !IntType().AssignableTo(ErrorType()) {
		t.Fatal("the error type must be assignable to and from anything, to avoid cascades")
	}
}

func TestStructTableDuplicateAndLookup(t *testing.T) {
	st := NewStructTable()
	info, err := st.Declare("Node")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	info.Fields = []Field{{Name: "v", Type: IntType()}, {Name: "next", Type: StructType("Node")}}

	if _, err := st.Declare("Node"); err == nil {
		t.Fatal("expected an error declaring 'Node' twice")
	}

	got, ok := st.Lookup("Node")
	if !ok || got != info {
		t.Fatal("expected to look up the declared struct")
	}
	idx, ok := got.FieldIndex("next")
	if !ok || idx != 1 {
		t.Fatalf("expected field 'next' at index 1, got %d, ok=%v", idx, ok)
	}
	if _, ok := got.FieldType("missing"); ok {
		t.Fatal("expected no type for an undeclared field")
	}
}

func TestFunctionTableDuplicate(t *testing.T) {
	ft := NewFunctionTable()
	sig := &FuncSig{Name: "sum", Params: []Type{IntType(), IntType()}, Ret: IntType()}
	if err := ft.Declare(sig); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := ft.Declare(sig); err == nil {
		t.Fatal("expected an error declaring 'sum' twice")
	}
	got, ok := ft.Lookup("sum")
	if !ok || got != sig {
		t.Fatal("expected to look up the declared function")
	}
}

func TestValueScopeStackShadowingAndDuplicate(t *testing.T) {
	s := NewValueScopeStack()
	if err := s.Declare("x", IntType(), ClassGlobal); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.Declare("x", BoolType(), ClassGlobal); err == nil {
		t.Fatal("expected an error redeclaring 'x' in the same scope")
	}

	s.Push()
	// Shadowing an outer-scope name is allowed.
	if err := s.Declare("x", BoolType(), ClassLocal); err != nil {
		t.Fatalf("unexpected error shadowing 'x': %v", err)
	}
	entry, ok := s.Resolve("x")
	if !ok || entry.Type.Kind != Bool {
		t.Fatalf("expected inner 'x' of type bool, got %+v, ok=%v", entry, ok)
	}
	s.Pop()

	entry, ok = s.Resolve("x")
	if !ok || entry.Type.Kind != Int {
		t.Fatalf("expected outer 'x' of type int after pop, got %+v, ok=%v", entry, ok)
	}

	if _, ok := s.Resolve("nonexistent"); ok {
		t.Fatal("expected no entry for an undeclared name")
	}
}
