package parse

import (
	"strconv"
	"strings"

	"github.com/koskimas/idlc/internal/model"
)

// Member names the generators add to every friendly struct.
var reservedMembers = []string{"Serialize", "SetDefaults"}

// resolve runs the checks that need the whole schema: parent references may
// point forward, so they are resolved only after parsing completes.
func resolve(s *model.Schema) error {
	var err error

	s.Walk(func(st *model.Struct) {
		if err == nil {
			err = resolveParent(s, st)
		}
	})
	if err != nil {
		return err
	}

	checks := []func(s *model.Schema, st *model.Struct) error{
		checkInheritanceCycle,
		checkContainment,
		checkMembers,
		checkDefaults,
	}

	for _, check := range checks {
		s.Walk(func(st *model.Struct) {
			if err == nil {
				err = check(s, st)
			}
		})
		if err != nil {
			return err
		}
	}

	return checkGoNames(s)
}

func resolveParent(s *model.Schema, st *model.Struct) error {
	if !st.HasParent() {
		return nil
	}

	for sc := st.Outer; sc != nil; sc = sc.Outer {
		if base, ok := s.StructsByName[model.MakeFullName(st.Parent, sc)]; ok {
			st.Base = base
			return nil
		}
	}

	if base, ok := s.StructsByName[st.Parent]; ok {
		st.Base = base
		return nil
	}

	return &UnknownParentError{Struct: st.FullName, Parent: st.Parent, Line: st.Line}
}

func checkInheritanceCycle(_ *model.Schema, st *model.Struct) error {
	seen := map[*model.Struct]bool{st: true}

	for b := st.Base; b != nil; b = b.Base {
		if seen[b] {
			return &InheritanceCycleError{Struct: st.FullName, Line: st.Line}
		}

		seen[b] = true
	}

	return nil
}

// checkContainment rejects structs that hold themselves by value, directly or
// through other structs. Variable-length fields are behind a slice and are
// fine.
func checkContainment(_ *model.Schema, st *model.Struct) error {
	return walkContained(st, st, map[*model.Struct]bool{})
}

func walkContained(root *model.Struct, st *model.Struct, visited map[*model.Struct]bool) error {
	if visited[st] {
		return nil
	}

	visited[st] = true

	if st.Base != nil {
		if st.Base == root {
			return &RecursiveStructError{Struct: root.FullName, Field: st.Parent, Line: st.Line}
		}

		if err := walkContained(root, st.Base, visited); err != nil {
			return err
		}
	}

	for _, v := range st.Vars {
		if v.Type.Category != model.CategoryUser || v.IsDynamic() {
			continue
		}

		if v.Type.Struct == root {
			return &RecursiveStructError{Struct: root.FullName, Field: v.Name, Line: v.Line}
		}

		if err := walkContained(root, v.Type.Struct, visited); err != nil {
			return err
		}
	}

	return nil
}

// checkMembers makes sure the Go names of a struct's members don't clash.
func checkMembers(_ *model.Schema, st *model.Struct) error {
	names := make(map[string]bool)

	for _, r := range reservedMembers {
		names[r] = true
	}

	if st.Base != nil {
		names[st.Base.GoName()] = true
	}

	for _, v := range st.Vars {
		goNames := []string{v.GoName()}
		if v.IsDynamic() {
			goNames = append(goNames, v.CountGoName())
		}

		for _, n := range goNames {
			if names[n] {
				return &DuplicateFieldError{Scope: st.FullName, Name: v.Name, Line: v.Line}
			}

			names[n] = true
		}
	}

	return nil
}

func checkDefaults(_ *model.Schema, st *model.Struct) error {
	for _, v := range st.Vars {
		if v.Default == "" {
			continue
		}

		if err := checkDefault(v); err != nil {
			return err
		}
	}

	return nil
}

func checkDefault(v *model.Var) error {
	if v.IsDynamic() {
		return invalidDefault(v, "variable-length arrays can't have defaults")
	}

	switch v.Type.Category {
	case model.CategoryUser:
		return invalidDefault(v, `struct type "%s" can't have a default`, v.Type.Token)
	case model.CategoryEnum:
		if !v.Type.Enum.HasLabel(v.Default) {
			return invalidDefault(v, `"%s" is not a label of enum "%s"`, v.Default, v.Type.Enum.Name)
		}

		return nil
	}

	var err error

	switch v.Type.Basic {
	case model.BasicBool:
		if v.Default != "true" && v.Default != "false" {
			return invalidDefault(v, "expected true or false")
		}
	case model.BasicInt:
		_, err = strconv.ParseInt(v.Default, 10, 32)
	case model.BasicFloat:
		if !isNumberLiteral(v.Default) {
			return invalidDefault(v, "not a valid %s literal", v.Type.Basic)
		}

		_, err = strconv.ParseFloat(v.Default, 32)
	case model.BasicString:
		_, err = strconv.Unquote(v.Default)
	}

	if err != nil {
		return invalidDefault(v, "not a valid %s literal", v.Type.Basic)
	}

	return nil
}

// isNumberLiteral reports whether s looks like a Go number literal, possibly
// signed. ParseFloat also accepts names like "Inf" and "NaN", which aren't
// literals in the generated code.
func isNumberLiteral(s string) bool {
	s = strings.TrimLeft(s, "+-")
	if s == "" {
		return false
	}

	if s[0] == '.' {
		return len(s) > 1 && s[1] >= '0' && s[1] <= '9'
	}

	return s[0] >= '0' && s[0] <= '9'
}

// checkGoNames makes sure flattened struct and enum names are unique, since
// they all end up at package level in the generated code together with the
// struct constructors.
func checkGoNames(s *model.Schema) error {
	names := make(map[string]bool)

	var err error
	declare := func(goName, name string, line int) {
		if err != nil {
			return
		}

		if names[goName] {
			err = &DuplicateTypeError{Name: name, Line: line}
			return
		}

		names[goName] = true
	}

	s.Walk(func(st *model.Struct) {
		declare(st.GoName(), st.FullName, st.Line)
		declare(st.ConstructorGoName(), st.FullName, st.Line)

		for _, e := range st.Enums {
			declare(e.GoName(), e.Name, e.Line)

			for _, ev := range e.Values {
				declare(e.ConstName(ev.Label), e.ConstName(ev.Label), e.Line)
			}
		}
	})

	return err
}
