package symtab

import "fmt"

// Field is one member of a struct declaration, in declaration order; its
// index in StructInfo.Fields is also its byte offset divided by 4.
type Field struct {
	Name string
	Type Type
}

// StructInfo is the resolved shape of one struct declaration.
type StructInfo struct {
	Name   string
	Fields []Field
}

// FieldIndex returns the declaration index of a field; its byte offset is
// 4*index.
func (s *StructInfo) FieldIndex(name string) (int, bool) {
	for i, f := range s.Fields {
		if f.Name == name {
			return i, true
		}
	}
	return 0, false
}

// FieldType returns the declared type of a field.
func (s *StructInfo) FieldType(name string) (Type, bool) {
	i, ok := s.FieldIndex(name)
	if !ok {
		return Type{}, false
	}
	return s.Fields[i].Type, true
}

// StructTable holds every struct declared in a program, keyed by name.
type StructTable struct {
	order  []string
	byName map[string]*StructInfo
}

func NewStructTable() *StructTable {
	return &StructTable{byName: make(map[string]*StructInfo)}
}

// Declare registers a new, as-yet-fieldless struct. Fields are attached to
// the returned *StructInfo once field types are resolvable (see sema's
// pass 3), since struct fields may reference other not-yet-seen structs.
func (t *StructTable) Declare(name string) (*StructInfo, error) {
	if _, ok := t.byName[name]; ok {
		return nil, fmt.Errorf("struct %q already declared", name)
	}
	info := &StructInfo{Name: name}
	t.byName[name] = info
	t.order = append(t.order, name)
	return info, nil
}

func (t *StructTable) Lookup(name string) (*StructInfo, bool) {
	info, ok := t.byName[name]
	return info, ok
}

// Names returns every declared struct name in declaration order.
func (t *StructTable) Names() []string { return t.order }
