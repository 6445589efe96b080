package model

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// countPrefix prefixes the element count field of a variable-length array in
// the layout representation.
const countPrefix = "Num"

const constructorPrefix = "New"

// PascalCase converts a snake_case or camelCase schema name to an exported Go
// identifier.
func PascalCase(name string) string {
	// Casers are stateful, so each call gets its own.
	caser := cases.Title(language.Und, cases.NoLower)
	parts := strings.Split(name, "_")

	var b strings.Builder
	for _, p := range parts {
		b.WriteString(caser.String(p))
	}

	return b.String()
}

func (v *Var) GoName() string {
	return PascalCase(v.Name)
}

// CountGoName is the name of the count field emitted for a variable-length
// array in the layout representation.
func (v *Var) CountGoName() string {
	return countPrefix + v.GoName()
}

// ConstructorGoName is the name of the function that allocates a struct with
// its defaults applied in the friendly representation.
func (st *Struct) ConstructorGoName() string {
	return constructorPrefix + st.GoName()
}

// ConstName is the Go constant generated for an enum label.
func (e *Enum) ConstName(label string) string {
	return e.GoName() + PascalCase(label)
}
