package model

// Document is a plain, acyclic view of a Schema used for machine readable
// inspection output.
type Document struct {
	BinaryNamespace   string      `yaml:"binaryNamespace" msgpack:"binaryNamespace"`
	FriendlyNamespace string      `yaml:"friendlyNamespace" msgpack:"friendlyNamespace"`
	Structs           []StructDoc `yaml:"structs" msgpack:"structs"`
}

type StructDoc struct {
	Name      string      `yaml:"name" msgpack:"name"`
	FullName  string      `yaml:"fullName" msgpack:"fullName"`
	Parent    string      `yaml:"parent,omitempty" msgpack:"parent,omitempty"`
	FixedSize bool        `yaml:"fixedSize" msgpack:"fixedSize"`
	Line      int         `yaml:"line" msgpack:"line"`
	Enums     []EnumDoc   `yaml:"enums,omitempty" msgpack:"enums,omitempty"`
	Vars      []VarDoc    `yaml:"vars,omitempty" msgpack:"vars,omitempty"`
	Children  []StructDoc `yaml:"children,omitempty" msgpack:"children,omitempty"`
}

type EnumDoc struct {
	Name   string         `yaml:"name" msgpack:"name"`
	Values []EnumValueDoc `yaml:"values" msgpack:"values"`
}

type EnumValueDoc struct {
	Label string `yaml:"label" msgpack:"label"`
	Value int    `yaml:"value" msgpack:"value"`
}

type VarDoc struct {
	Name     string `yaml:"name" msgpack:"name"`
	Type     string `yaml:"type" msgpack:"type"`
	Category string `yaml:"category" msgpack:"category"`
	// Count is omitted for scalars and -1 for variable-length arrays.
	Count    *int   `yaml:"count,omitempty" msgpack:"count,omitempty"`
	Optional bool   `yaml:"optional,omitempty" msgpack:"optional,omitempty"`
	Default  string `yaml:"default,omitempty" msgpack:"default,omitempty"`
}

func (s *Schema) Export() Document {
	doc := Document{
		BinaryNamespace:   s.BinaryNamespace,
		FriendlyNamespace: s.FriendlyNamespace,
		Structs:           make([]StructDoc, 0, len(s.Structs)),
	}

	for _, st := range s.Structs {
		doc.Structs = append(doc.Structs, exportStruct(st))
	}

	return doc
}

func exportStruct(st *Struct) StructDoc {
	d := StructDoc{
		Name:      st.Name,
		FullName:  st.FullName,
		Parent:    st.Parent,
		FixedSize: st.IsFixedSize(),
		Line:      st.Line,
	}

	for _, e := range st.Enums {
		vals := make([]EnumValueDoc, 0, len(e.Values))
		for _, v := range e.Values {
			vals = append(vals, EnumValueDoc{Label: v.Label, Value: v.Value})
		}

		d.Enums = append(d.Enums, EnumDoc{Name: e.Name, Values: vals})
	}

	for _, v := range st.Vars {
		vd := VarDoc{
			Name:     v.Name,
			Type:     v.Type.Token,
			Category: string(v.Type.Category),
			Optional: v.Optional,
			Default:  v.Default,
		}

		if !v.IsScalar() {
			count := v.Count
			vd.Count = &count
		}

		d.Vars = append(d.Vars, vd)
	}

	for _, c := range st.Children {
		d.Children = append(d.Children, exportStruct(c))
	}

	return d
}
