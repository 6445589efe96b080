package gen

import (
	"github.com/dave/jennifer/jen"
	"github.com/koskimas/idlc/internal/model"
)

// GenerateBinary emits the fixed-shape layout representation: variable-length
// arrays become a count and a pointer, strings and structs are always behind a
// pointer since their size isn't known at this level.
func GenerateBinary(s *model.Schema, opts Options) (*jen.File, error) {
	if s.BinaryNamespace == "" {
		return nil, &MissingNamespaceError{Directive: "binary_namespace"}
	}

	f := newFile(s.BinaryNamespace, withDefaults(opts))

	s.Walk(func(st *model.Struct) {
		genEnums(f, st)
		genBinaryStruct(f, st)
	})

	return f, nil
}

func genBinaryStruct(f *jen.File, st *model.Struct) {
	f.Type().Id(st.GoName()).StructFunc(func(g *jen.Group) {
		if st.Base != nil {
			g.Id(st.Base.GoName())
		}

		for _, v := range st.Vars {
			genBinaryField(g, v)
		}
	})
	f.Line()
}

func genBinaryField(g *jen.Group, v *model.Var) {
	switch {
	case v.IsDynamic():
		g.Id(v.CountGoName()).Int32()
		g.Id(v.GoName()).Op("*").Add(binaryElemType(v.Type))
	case v.IsScalar():
		g.Id(v.GoName()).Add(binaryType(v.Type))
	default:
		g.Id(v.GoName()).Index(jen.Lit(v.Count)).Add(binaryType(v.Type))
	}
}

// binaryType is the type of an in-place value.
func binaryType(t model.Type) *jen.Statement {
	switch t.Category {
	case model.CategoryEnum:
		return jen.Id(t.Enum.GoName())
	case model.CategoryUser:
		return jen.Op("*").Id(t.Struct.GoName())
	}

	if t.Basic == model.BasicString {
		return jen.Op("*").Byte()
	}

	return basicType(t.Basic)
}

// binaryElemType is the element type a variable-length array points to.
func binaryElemType(t model.Type) *jen.Statement {
	if t.Category == model.CategoryUser {
		return jen.Id(t.Struct.GoName())
	}

	return binaryType(t)
}
