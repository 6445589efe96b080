package parse

import (
	"fmt"

	"github.com/koskimas/idlc/internal/model"
)

type UnknownTypeError struct {
	Token string
	Scope string
	Line  int
}

func (e *UnknownTypeError) Error() string {
	return fmt.Sprintf(`unknown type "%s" in struct "%s" on line %d`, e.Token, e.Scope, e.Line)
}

type MultiDeclarationSyntaxError struct {
	Found string
	Line  int
}

func (e *MultiDeclarationSyntaxError) Error() string {
	return fmt.Sprintf(`expected "," or ";" after variable declaration, got "%s" on line %d`, e.Found, e.Line)
}

type InvalidCountError struct {
	Token string
	Line  int
}

func (e *InvalidCountError) Error() string {
	return fmt.Sprintf(`invalid array size "%s" on line %d`, e.Token, e.Line)
}

type DuplicateTypeError struct {
	Name string
	Line int
}

func (e *DuplicateTypeError) Error() string {
	return fmt.Sprintf(`type "%s" redeclared on line %d`, e.Name, e.Line)
}

type DuplicateFieldError struct {
	Scope string
	Name  string
	Line  int
}

func (e *DuplicateFieldError) Error() string {
	return fmt.Sprintf(`"%s" clashes with another member of "%s" on line %d`, e.Name, e.Scope, e.Line)
}

type UnknownParentError struct {
	Struct string
	Parent string
	Line   int
}

func (e *UnknownParentError) Error() string {
	return fmt.Sprintf(`struct "%s" inherits from unknown struct "%s" on line %d`, e.Struct, e.Parent, e.Line)
}

type InheritanceCycleError struct {
	Struct string
	Line   int
}

func (e *InheritanceCycleError) Error() string {
	return fmt.Sprintf(`struct "%s" inherits from itself on line %d`, e.Struct, e.Line)
}

type RecursiveStructError struct {
	Struct string
	Field  string
	Line   int
}

func (e *RecursiveStructError) Error() string {
	return fmt.Sprintf(`field "%s" makes struct "%s" contain itself on line %d`, e.Field, e.Struct, e.Line)
}

type InvalidDefaultError struct {
	Var    string
	Value  string
	Reason string
	Line   int
}

func (e *InvalidDefaultError) Error() string {
	return fmt.Sprintf(`invalid default "%s" for "%s" on line %d: %s`, e.Value, e.Var, e.Line, e.Reason)
}

func invalidDefault(v *model.Var, reason string, args ...any) *InvalidDefaultError {
	return &InvalidDefaultError{
		Var:    v.Name,
		Value:  v.Default,
		Reason: fmt.Sprintf(reason, args...),
		Line:   v.Line,
	}
}
