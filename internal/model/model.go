package model

import "strings"

type Basic string

const (
	BasicBool   Basic = "bool"
	BasicInt    Basic = "int"
	BasicFloat  Basic = "float"
	BasicString Basic = "string"
)

// BasicTypes is the fixed set of built-in field types.
var BasicTypes = map[string]Basic{
	string(BasicBool):   BasicBool,
	string(BasicInt):    BasicInt,
	string(BasicFloat):  BasicFloat,
	string(BasicString): BasicString,
}

type Category string

const (
	CategoryBasic Category = "basic"
	CategoryEnum  Category = "enum"
	CategoryUser  Category = "user"
)

const (
	// CountScalar marks a var that is not an array.
	CountScalar = -2
	// CountDynamic marks a variable-length array, declared with empty brackets.
	CountDynamic = -1
)

const scopeSeparator = "::"

// Type is the resolved type of a var. Exactly one of Basic, Enum or Struct is
// set, depending on Category.
type Type struct {
	Token    string
	Category Category
	Basic    Basic
	Enum     *Enum
	Struct   *Struct
}

type Var struct {
	Name     string
	Type     Type
	Count    int
	Optional bool
	Default  string
	Line     int
}

type Enum struct {
	Name   string
	Owner  *Struct
	Values []EnumValue
	Line   int
}

type EnumValue struct {
	Label string
	Value int
}

type Struct struct {
	Name     string
	FullName string
	Parent   string
	Base     *Struct
	Outer    *Struct
	Vars     []*Var
	Children []*Struct
	Enums    []*Enum
	Line     int
}

// Schema is the result of parsing one schema source. It is not modified
// after the parser returns it.
type Schema struct {
	Structs           []*Struct
	StructsByName     map[string]*Struct
	EnumsByName       map[string]*Enum
	BinaryNamespace   string
	FriendlyNamespace string
}

func NewSchema() *Schema {
	return &Schema{
		Structs:       make([]*Struct, 0),
		StructsByName: make(map[string]*Struct),
		EnumsByName:   make(map[string]*Enum),
	}
}

func NewStruct(name string, parent string, outer *Struct) *Struct {
	return &Struct{
		Name:     name,
		FullName: MakeFullName(name, outer),
		Parent:   parent,
		Outer:    outer,
		Vars:     make([]*Var, 0),
		Children: make([]*Struct, 0),
		Enums:    make([]*Enum, 0),
	}
}

// MakeFullName qualifies name with the full name of its enclosing struct.
func MakeFullName(name string, outer *Struct) string {
	if outer == nil {
		return name
	}

	return outer.FullName + scopeSeparator + name
}

// SplitFullName returns the nesting path of a full name, outermost first.
func SplitFullName(fullName string) []string {
	return strings.Split(fullName, scopeSeparator)
}

func (s *Schema) AddStruct(st *Struct) {
	s.Structs = append(s.Structs, st)
}

// Walk calls fn for every struct in the schema, depth first, in declaration
// order. A struct is visited before its children.
func (s *Schema) Walk(fn func(st *Struct)) {
	for _, st := range s.Structs {
		st.Walk(fn)
	}
}

func (st *Struct) Walk(fn func(st *Struct)) {
	fn(st)

	for _, c := range st.Children {
		c.Walk(fn)
	}
}

func (st *Struct) AddVar(v *Var) {
	st.Vars = append(st.Vars, v)
}

func (st *Struct) AddChild(c *Struct) {
	st.Children = append(st.Children, c)
}

func (st *Struct) AddEnum(e *Enum) {
	st.Enums = append(st.Enums, e)
}

func (st *Struct) HasParent() bool {
	return st.Parent != ""
}

// IsFixedSize reports whether the struct has no variable-length data of its
// own. The parent chain is not consulted.
func (st *Struct) IsFixedSize() bool {
	for _, v := range st.Vars {
		if !v.IsFixedSize() {
			return false
		}
	}

	for _, c := range st.Children {
		if !c.IsFixedSize() {
			return false
		}
	}

	return true
}

// GoName is the identifier used for the struct in generated code. Nested
// structs are flattened by concatenating the path.
func (st *Struct) GoName() string {
	return strings.ReplaceAll(st.FullName, scopeSeparator, "")
}

func (e *Enum) GoName() string {
	if e.Owner == nil {
		return e.Name
	}

	return e.Owner.GoName() + e.Name
}

func (e *Enum) HasLabel(label string) bool {
	for _, v := range e.Values {
		if v.Label == label {
			return true
		}
	}

	return false
}

func (v *Var) IsFixedSize() bool {
	return v.Count != CountDynamic
}

func (v *Var) IsScalar() bool {
	return v.Count == CountScalar
}

func (v *Var) IsDynamic() bool {
	return v.Count == CountDynamic
}

// IsIndirect reports whether a fixed-size var is stored behind a pointer in
// the layout representation.
func (v *Var) IsIndirect() bool {
	return v.Type.Category == CategoryUser || v.Type.Basic == BasicString
}
