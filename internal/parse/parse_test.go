package parse

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/koskimas/idlc/internal/lexer"
	"github.com/koskimas/idlc/internal/model"
	assert "github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, src string) *model.Schema {
	s, err := Parse(src)
	assert.NoError(t, err)
	return s
}

func TestParseRoundTripScenario(t *testing.T) {
	s := mustParse(t, `
		binary_namespace = bn; friendly_namespace = fn;
		struct Point { int x; int y; };
		struct Path { Point pts[]; };
	`)

	assert.Equal(t, "bn", s.BinaryNamespace)
	assert.Equal(t, "fn", s.FriendlyNamespace)
	assert.Len(t, s.Structs, 2)

	point := s.Structs[0]
	assert.Equal(t, "Point", point.FullName)
	assert.Len(t, point.Vars, 2)
	assert.Equal(t, model.CategoryBasic, point.Vars[0].Type.Category)
	assert.Equal(t, model.BasicInt, point.Vars[0].Type.Basic)
	assert.True(t, point.IsFixedSize())

	path := s.Structs[1]
	pts := path.Vars[0]
	assert.Equal(t, model.CountDynamic, pts.Count)
	assert.Equal(t, model.CategoryUser, pts.Type.Category)
	assert.Same(t, point, pts.Type.Struct)
	assert.False(t, path.IsFixedSize())
}

func TestParseNestedFullNames(t *testing.T) {
	s := mustParse(t, `
		struct Outer {
			struct Mid {
				struct Inner { int v; };
				Inner inner;
			};
			Mid mid;
		};
	`)

	names := make([]string, 0)
	s.Walk(func(st *model.Struct) {
		names = append(names, st.FullName)
		assert.Equal(t, st.FullName, model.MakeFullName(st.Name, st.Outer))
	})

	assert.Equal(t, []string{"Outer", "Outer::Mid", "Outer::Mid::Inner"}, names)
	assert.Equal(t, []string{"Outer", "Mid", "Inner"}, model.SplitFullName(names[2]))

	outer := s.Structs[0]
	assert.Same(t, s.StructsByName["Outer::Mid"], outer.Vars[0].Type.Struct)
	assert.Same(t, s.StructsByName["Outer::Mid::Inner"], outer.Children[0].Vars[0].Type.Struct)
}

func TestParseEnclosingScopeLookup(t *testing.T) {
	s := mustParse(t, `
		struct Outer {
			struct A { int v; };
			struct B { A a; };
		};
	`)

	b := s.StructsByName["Outer::B"]
	assert.Same(t, s.StructsByName["Outer::A"], b.Vars[0].Type.Struct)
}

func TestParseSiblingDeclaredLaterIsNotVisible(t *testing.T) {
	_, err := Parse(`
		struct A { B b; };
		struct B { int v; };
	`)

	var ute *UnknownTypeError
	assert.True(t, errors.As(err, &ute))
	assert.Equal(t, "B", ute.Token)
	assert.Equal(t, "A", ute.Scope)
	assert.Equal(t, 2, ute.Line)
}

func TestParseEnumValues(t *testing.T) {
	s := mustParse(t, `
		struct Light {
			enum Kind { A, B = 5, C };
			enum Other { X = 2 Y };
			Kind kind = B;
		};
	`)

	light := s.Structs[0]
	assert.Equal(t, []model.EnumValue{
		{Label: "A", Value: 0},
		{Label: "B", Value: 5},
		{Label: "C", Value: 6},
	}, light.Enums[0].Values)
	assert.Equal(t, []model.EnumValue{
		{Label: "X", Value: 2},
		{Label: "Y", Value: 3},
	}, light.Enums[1].Values)

	kind := light.Vars[0]
	assert.Equal(t, model.CategoryEnum, kind.Type.Category)
	assert.Same(t, light.Enums[0], kind.Type.Enum)
	assert.Equal(t, "B", kind.Default)
}

func TestParseMultiDeclaration(t *testing.T) {
	s := mustParse(t, `
		struct S {
			int a, b, c;
			float ? w = 1.5, h[4];
		};
	`)

	vars := s.Structs[0].Vars
	assert.Len(t, vars, 5)

	for _, v := range vars[:3] {
		assert.Equal(t, "int", v.Type.Token)
		assert.Equal(t, model.CountScalar, v.Count)
		assert.Empty(t, v.Default)
		assert.False(t, v.Optional)
	}

	assert.True(t, vars[3].Optional)
	assert.Equal(t, "1.5", vars[3].Default)
	assert.True(t, vars[4].Optional)
	assert.Equal(t, 4, vars[4].Count)
	assert.Empty(t, vars[4].Default)
}

func TestParseFloatDefaults(t *testing.T) {
	s := mustParse(t, `struct S { float a = 2, b = -1.5e3, c = .5, d = +0.25, e = 0x1p-2; };`)

	defaults := make([]string, 0)
	for _, v := range s.Structs[0].Vars {
		defaults = append(defaults, v.Default)
	}

	assert.Equal(t, []string{"2", "-1.5e3", ".5", "+0.25", "0x1p-2"}, defaults)
}

func TestParseExplicitDynamicCount(t *testing.T) {
	s := mustParse(t, `struct S { int xs[-1]; int ys[0]; };`)

	assert.Equal(t, model.CountDynamic, s.Structs[0].Vars[0].Count)
	assert.Equal(t, 0, s.Structs[0].Vars[1].Count)
}

func TestParseInheritance(t *testing.T) {
	s := mustParse(t, `
		struct B : A { int z; };
		struct A { int x; };
		struct Outer {
			struct Base { int v; };
			struct Derived : Base { int w; };
		};
	`)

	assert.Equal(t, "A", s.Structs[0].Parent)
	assert.Same(t, s.StructsByName["A"], s.Structs[0].Base)
	assert.Same(t, s.StructsByName["Outer::Base"], s.StructsByName["Outer::Derived"].Base)
}

func TestParseNamespaceOverwrite(t *testing.T) {
	s := mustParse(t, `binary_namespace = a; binary_namespace = b;`)

	assert.Equal(t, "b", s.BinaryNamespace)
	assert.Empty(t, s.FriendlyNamespace)
}

func TestParseClosingBraceStopsParsing(t *testing.T) {
	s := mustParse(t, `struct A { int x; }; }; this is never read`)

	assert.Len(t, s.Structs, 1)
}

func TestParseComments(t *testing.T) {
	s := mustParse(t, `
		// Points.
		struct Point { /* int z;
		float w; */ int x; // the x
		};
	`)

	assert.Len(t, s.Structs[0].Vars, 1)
	assert.Equal(t, "x", s.Structs[0].Vars[0].Name)
	assert.Equal(t, 4, s.Structs[0].Vars[0].Line)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name   string
		src    string
		target any
		line   int
	}{
		{"unknown field type", "struct A {\n Missing m;\n};", new(*UnknownTypeError), 2},
		{"missing semicolon after struct", "struct A { int x; }\nstruct B {};", new(*lexer.SyntaxError), 2},
		{"bad terminator", "struct A {\n int x y;\n};", new(*MultiDeclarationSyntaxError), 2},
		{"end of input", "struct A {\n int x;", new(*lexer.UnexpectedEndOfInputError), 2},
		{"bad count", "struct A { int x[n]; };", new(*InvalidCountError), 1},
		{"negative count", "struct A { int x[-2]; };", new(*InvalidCountError), 1},
		{"duplicate struct", "struct A {};\nstruct A {};", new(*DuplicateTypeError), 2},
		{"duplicate field", "struct A { int x;\n float x; };", new(*DuplicateFieldError), 2},
		{"count name clash", "struct A { int num_xs;\n int xs[]; };", new(*DuplicateFieldError), 2},
		{"unknown parent", "struct A {};\nstruct B : C {};", new(*UnknownParentError), 2},
		{"inheritance cycle", "struct A : B {};\nstruct B : A {};", new(*InheritanceCycleError), 1},
		{"self by value", "struct A {\n A self;\n};", new(*RecursiveStructError), 2},
		{"mutual by value", "struct A {\n struct B { A a; };\n B b;\n};", new(*RecursiveStructError), 2},
		{"bad int default", "struct A { int x = 1.5; };", new(*InvalidDefaultError), 1},
		{"bad bool default", "struct A { bool x = 1; };", new(*InvalidDefaultError), 1},
		{"unquoted string default", "struct A { string x = hi; };", new(*InvalidDefaultError), 1},
		{"unknown enum label", "struct A { enum E { X }; E e = Y; };", new(*InvalidDefaultError), 1},
		{"dynamic default", "struct A { int x[] = 1; };", new(*InvalidDefaultError), 1},
		{"top level garbage", "\nint x;", new(*lexer.SyntaxError), 2},
		{"keyword struct name", "struct func {};", new(*lexer.SyntaxError), 1},
		{"unterminated comment", "/* struct A {};", new(*lexer.UnterminatedCommentError), 1},
		{"stray comment end", "struct A {};\n*/", new(*lexer.UnmatchedCommentEndError), 2},
		{"inf float default", "struct A {\n float x = Inf; };", new(*InvalidDefaultError), 2},
		{"signed inf float default", "struct A { float x = +Inf; };", new(*InvalidDefaultError), 1},
		{"infinity float default", "struct A { float x = -Infinity; };", new(*InvalidDefaultError), 1},
		{"nan float default", "struct A { float x = NaN; };", new(*InvalidDefaultError), 1},
		{"nan fixed array default", "struct A { float x[2] = nan; };", new(*InvalidDefaultError), 1},
		{"struct named like a constructor", "struct Path {};\nstruct NewPath {};", new(*DuplicateTypeError), 2},
		{"constructor named like an earlier struct", "struct NewA {};\nstruct A {};", new(*DuplicateTypeError), 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.src)
			assert.Error(t, err)
			assert.True(t, errors.As(err, tt.target), "got %T: %v", err, err)
			assert.Equal(t, tt.line, errorLine(err))
		})
	}
}

func TestParseDynamicSelfReference(t *testing.T) {
	s := mustParse(t, `struct Node { Node children[]; };`)

	node := s.Structs[0]
	assert.Same(t, node, node.Vars[0].Type.Struct)
}

func TestParseFile(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "scene.idl")
	assert.NoError(t, os.WriteFile(p, []byte("struct A { int x; };"), 0600))

	s, err := ParseFile(p)
	assert.NoError(t, err)
	assert.Len(t, s.Structs, 1)

	_, err = ParseFile(filepath.Join(dir, "missing.idl"))
	assert.ErrorContains(t, err, "failed to read schema file")
}

func errorLine(err error) int {
	var (
		syntax    *lexer.SyntaxError
		eoi       *lexer.UnexpectedEndOfInputError
		comment   *lexer.UnterminatedCommentError
		stray     *lexer.UnmatchedCommentEndError
		unknown   *UnknownTypeError
		multi     *MultiDeclarationSyntaxError
		count     *InvalidCountError
		dupType   *DuplicateTypeError
		dupField  *DuplicateFieldError
		parent    *UnknownParentError
		cycle     *InheritanceCycleError
		recursive *RecursiveStructError
		def       *InvalidDefaultError
	)

	switch {
	case errors.As(err, &syntax):
		return syntax.Line
	case errors.As(err, &eoi):
		return eoi.Line
	case errors.As(err, &comment):
		return comment.Line
	case errors.As(err, &stray):
		return stray.Line
	case errors.As(err, &unknown):
		return unknown.Line
	case errors.As(err, &multi):
		return multi.Line
	case errors.As(err, &count):
		return count.Line
	case errors.As(err, &dupType):
		return dupType.Line
	case errors.As(err, &dupField):
		return dupField.Line
	case errors.As(err, &parent):
		return parent.Line
	case errors.As(err, &cycle):
		return cycle.Line
	case errors.As(err, &recursive):
		return recursive.Line
	case errors.As(err, &def):
		return def.Line
	}

	return -1
}
