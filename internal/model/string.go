package model

import (
	"fmt"
	"strings"
)

func (s *Schema) String() string {
	sb := &stringBuilder{}

	sb.Linef("binary_namespace = %s", orNone(s.BinaryNamespace))
	sb.Linef("friendly_namespace = %s", orNone(s.FriendlyNamespace))

	for _, st := range s.Structs {
		st.writeTo(sb)
	}

	return sb.String()
}

func (st *Struct) String() string {
	sb := &stringBuilder{}
	st.writeTo(sb)
	return sb.String()
}

func (st *Struct) writeTo(sb *stringBuilder) {
	header := "struct " + st.FullName
	if st.HasParent() {
		header += " : " + st.Parent
	}

	if st.IsFixedSize() {
		header += " (fixed)"
	}

	sb.Linef("%s {", header)
	sb.Indent()

	for _, e := range st.Enums {
		sb.Linef("enum %s { %s }", e.Name, e.valuesString())
	}

	for _, v := range st.Vars {
		sb.Linef("%s", v.String())
	}

	for _, c := range st.Children {
		c.writeTo(sb)
	}

	sb.DeIndent()
	sb.Linef("}")
}

func (e *Enum) valuesString() string {
	vals := make([]string, len(e.Values))

	for i, v := range e.Values {
		vals[i] = fmt.Sprintf("%s = %d", v.Label, v.Value)
	}

	return strings.Join(vals, ", ")
}

func (v *Var) String() string {
	s := strings.Builder{}

	s.WriteString(v.Name)
	s.WriteString(": ")
	s.WriteString(v.Type.Token)
	s.WriteString(" <")
	s.WriteString(string(v.Type.Category))
	s.WriteString(">")

	if v.Optional {
		s.WriteString(" optional")
	}

	switch {
	case v.IsDynamic():
		s.WriteString("[]")
	case !v.IsScalar():
		s.WriteString(fmt.Sprintf("[%d]", v.Count))
	}

	if v.Default != "" {
		s.WriteString(" = ")
		s.WriteString(v.Default)
	}

	return s.String()
}

func orNone(s string) string {
	if s == "" {
		return "<none>"
	}

	return s
}
