package gen

import (
	"fmt"

	"github.com/dave/jennifer/jen"
	"github.com/koskimas/idlc/internal/model"
)

// GenerateSerializer emits a Serialize method per struct that writes the
// friendly representation into a fixup.Writer so that the result matches the
// layout representation.
//
// Base fields are written first. Fixed-size values are written in place in
// declaration order; every field the layout keeps behind a pointer gets a
// fixup slot instead and its data is written after all in-place fields, in
// the same order. A variable-length array is its count followed by the
// elements; elements that are strings or structs are each preceded by a slot
// pointing at them.
func GenerateSerializer(s *model.Schema, opts Options) (*jen.File, error) {
	if s.FriendlyNamespace == "" {
		return nil, &MissingNamespaceError{Directive: "friendly_namespace"}
	}

	opts = withDefaults(opts)
	f := newFile(s.FriendlyNamespace, opts)
	f.Comment(fmt.Sprintf("Serialization for the types declared in %s.", fileName(opts, KindFriendly)))
	f.Line()

	s.Walk(func(st *model.Struct) {
		genSerialize(f, st, opts)
	})

	return f, nil
}

func genSerialize(f *jen.File, st *model.Struct, opts Options) {
	f.Func().Params(
		jen.Id(idRecv).Op("*").Id(st.GoName()),
	).Id(idMethodSerialize).Params(
		jen.Id(idWriter).Qual(opts.WriterPackage, idTypeWriter),
	).BlockFunc(func(g *jen.Group) {
		if st.Base != nil {
			g.Id(idRecv).Dot(st.Base.GoName()).Dot(idMethodSerialize).Call(jen.Id(idWriter))
		}

		deferred := make([]*model.Var, 0)

		for _, v := range st.Vars {
			if genInPlace(g, v, opts) {
				deferred = append(deferred, v)
			}
		}

		for _, v := range deferred {
			g.Line()
			g.Comment(v.Name)
			genDeferred(g, v)
		}
	})
	f.Line()
}

// genInPlace writes a field's in-place part. It returns true if the field has
// out-of-line data that must be written later.
func genInPlace(g *jen.Group, v *model.Var, opts Options) bool {
	field := jen.Id(idRecv).Dot(v.GoName())
	slot := fixupVarName(v)

	switch {
	case v.IsDynamic(), v.IsScalar() && v.IsIndirect():
		g.Id(slot).Op(":=").Add(createFixup())
		return true
	case v.IsIndirect():
		g.Var().Id(slot).Index(jen.Lit(v.Count)).Qual(opts.WriterPackage, idTypeHandle)
		g.For(jen.Id(idIndex).Op(":=").Range().Id(slot)).Block(
			jen.Id(slot).Index(jen.Id(idIndex)).Op("=").Add(createFixup()),
		)
		return true
	case v.IsScalar():
		g.Add(writeValue(v.Type, field))
	default:
		g.For(jen.List(jen.Id("_"), jen.Id(idElem)).Op(":=").Range().Add(field)).Block(
			writeValue(v.Type, jen.Id(idElem)),
		)
	}

	return false
}

func genDeferred(g *jen.Group, v *model.Var) {
	field := jen.Id(idRecv).Dot(v.GoName())
	slot := fixupVarName(v)

	switch {
	case v.IsDynamic():
		g.Add(insertFixup(jen.Id(slot)))
		g.Id(idWriter).Dot(idWriteCount).Call(jen.Len(field.Clone()))
		g.For(jen.List(jen.Id("_"), jen.Id(idElem)).Op(":=").Range().Add(field)).BlockFunc(func(g *jen.Group) {
			genDynamicElem(g, v)
		})
	case v.IsScalar():
		g.Add(insertFixup(jen.Id(slot)))
		g.Add(writeIndirect(v.Type, field))
	default:
		g.For(jen.Id(idIndex).Op(":=").Range().Add(field.Clone())).Block(
			insertFixup(jen.Id(slot).Index(jen.Id(idIndex))),
			writeIndirect(v.Type, field.Clone().Index(jen.Id(idIndex))),
		)
	}
}

func genDynamicElem(g *jen.Group, v *model.Var) {
	if !v.IsIndirect() {
		// Plain values are laid out back to back.
		g.Add(writeValue(v.Type, jen.Id(idElem)))
		return
	}

	g.Id(idLocalFixup).Op(":=").Add(createFixup())
	g.Add(insertFixup(jen.Id(idLocalFixup)))

	if v.Type.Category == model.CategoryUser {
		g.If(jen.Id(idElem).Op("==").Nil()).Block(
			jen.Id(idElem).Op("=").New(jen.Id(v.Type.Struct.GoName())),
		)
	}

	g.Add(writeIndirect(v.Type, jen.Id(idElem)))
}

func writeValue(t model.Type, value *jen.Statement) *jen.Statement {
	w := jen.Id(idWriter)

	if t.Category == model.CategoryEnum {
		return w.Dot(idWriteInt32).Call(jen.Int32().Call(value))
	}

	switch t.Basic {
	case model.BasicBool:
		return w.Dot(idWriteBool).Call(value)
	case model.BasicInt:
		return w.Dot(idWriteInt32).Call(value)
	case model.BasicFloat:
		return w.Dot(idWriteFloat32).Call(value)
	}

	return w.Dot(idWriteString).Call(value)
}

// writeIndirect writes the out-of-line data of a string or struct.
func writeIndirect(t model.Type, value *jen.Statement) *jen.Statement {
	if t.Category == model.CategoryUser {
		return value.Dot(idMethodSerialize).Call(jen.Id(idWriter))
	}

	return writeValue(t, value)
}

func createFixup() *jen.Statement {
	return jen.Id(idWriter).Dot(idCreateFixup).Call()
}

func insertFixup(handle *jen.Statement) *jen.Statement {
	return jen.Id(idWriter).Dot(idInsertFixup).Call(handle)
}

func fixupVarName(v *model.Var) string {
	return idFixupPrefix + v.GoName()
}
