package gen

import (
	"fmt"

	"github.com/dave/jennifer/jen"
	"github.com/koskimas/idlc/internal/model"
)

// GenerateFriendly emits the owning representation: slices for
// variable-length arrays, inline fixed-size arrays and by-value structs, plus
// default-value constructors. The Serialize methods are bound to the types
// here and defined by GenerateSerializer.
func GenerateFriendly(s *model.Schema, opts Options) (*jen.File, error) {
	if s.FriendlyNamespace == "" {
		return nil, &MissingNamespaceError{Directive: "friendly_namespace"}
	}

	opts = withDefaults(opts)
	f := newFile(s.FriendlyNamespace, opts)

	s.Walk(func(st *model.Struct) {
		genEnums(f, st)
		genFriendlyStruct(f, st)
		genConstructor(f, st)
		genSetDefaults(f, st)
	})

	genSerializerBindings(f, s, opts)

	return f, nil
}

func genFriendlyStruct(f *jen.File, st *model.Struct) {
	f.Type().Id(st.GoName()).StructFunc(func(g *jen.Group) {
		if st.Base != nil {
			g.Id(st.Base.GoName())
		}

		for _, v := range st.Vars {
			g.Id(v.GoName()).Add(friendlyFieldType(v))
		}
	})
	f.Line()
}

func friendlyFieldType(v *model.Var) *jen.Statement {
	switch {
	case v.IsDynamic():
		// Elements are shared handles so that a struct's size doesn't
		// matter to the slice holding it.
		if v.Type.Category == model.CategoryUser {
			return jen.Index().Op("*").Id(v.Type.Struct.GoName())
		}

		return jen.Index().Add(friendlyType(v.Type))
	case v.IsScalar():
		return friendlyType(v.Type)
	}

	return jen.Index(jen.Lit(v.Count)).Add(friendlyType(v.Type))
}

func friendlyType(t model.Type) *jen.Statement {
	switch t.Category {
	case model.CategoryEnum:
		return jen.Id(t.Enum.GoName())
	case model.CategoryUser:
		return jen.Id(t.Struct.GoName())
	}

	return basicType(t.Basic)
}

func genConstructor(f *jen.File, st *model.Struct) {
	name := st.GoName()
	ctor := st.ConstructorGoName()

	f.Comment(fmt.Sprintf("%s returns a %s with its declared defaults applied.", ctor, name))
	f.Func().Id(ctor).Params().Op("*").Id(name).Block(
		jen.Id(idRecv).Op(":=").Op("&").Id(name).Values(),
		jen.Id(idRecv).Dot(idMethodDefaults).Call(),
		jen.Return(jen.Id(idRecv)),
	)
	f.Line()
}

func genSetDefaults(f *jen.File, st *model.Struct) {
	f.Func().Params(
		jen.Id(idRecv).Op("*").Id(st.GoName()),
	).Id(idMethodDefaults).Params().BlockFunc(func(g *jen.Group) {
		if st.Base != nil {
			g.Id(idRecv).Dot(st.Base.GoName()).Dot(idMethodDefaults).Call()
		}

		for _, v := range st.Vars {
			genFieldDefault(g, v)
		}
	})
	f.Line()
}

func genFieldDefault(g *jen.Group, v *model.Var) {
	field := jen.Id(idRecv).Dot(v.GoName())

	switch {
	case v.IsDynamic():
		// Elements are added by the caller.
	case v.Type.Category == model.CategoryUser && v.IsScalar():
		g.Add(field).Dot(idMethodDefaults).Call()
	case v.Type.Category == model.CategoryUser:
		g.For(jen.Id(idIndex).Op(":=").Range().Add(field.Clone())).Block(
			field.Clone().Index(jen.Id(idIndex)).Dot(idMethodDefaults).Call(),
		)
	case v.Default == "":
	case v.IsScalar():
		g.Add(field).Op("=").Add(defaultValue(v))
	default:
		g.For(jen.Id(idIndex).Op(":=").Range().Add(field.Clone())).Block(
			field.Clone().Index(jen.Id(idIndex)).Op("=").Add(defaultValue(v)),
		)
	}
}

// defaultValue renders the declared default. Literals were validated by the
// parser and are emitted verbatim.
func defaultValue(v *model.Var) jen.Code {
	if v.Type.Category == model.CategoryEnum {
		return jen.Id(v.Type.Enum.ConstName(v.Default))
	}

	return jen.Id(v.Default)
}

func genSerializerBindings(f *jen.File, s *model.Schema, opts Options) {
	f.Var().DefsFunc(func(g *jen.Group) {
		s.Walk(func(st *model.Struct) {
			g.Id("_").Qual(opts.WriterPackage, idTypeSerializer).Op("=").Parens(
				jen.Op("*").Id(st.GoName()),
			).Parens(jen.Nil())
		})
	})
}
