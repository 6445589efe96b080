package gen

import (
	"bytes"
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"github.com/dave/jennifer/jen"
	"github.com/koskimas/idlc/internal/model"
	"golang.org/x/sync/errgroup"
)

// DefaultWriterPackage is the import path of the writer the generated
// serializers call into.
const DefaultWriterPackage = "github.com/koskimas/idlc/pkg/fixup"

const (
	idRecv       = "o"
	idWriter     = "w"
	idElem       = "e"
	idIndex      = "i"
	idLocalFixup = "local"

	idFixupPrefix     = "fixup"
	idMethodSerialize = "Serialize"
	idMethodDefaults  = "SetDefaults"

	idTypeWriter     = "Writer"
	idTypeHandle     = "Handle"
	idTypeSerializer = "Serializer"

	idWriteBool    = "WriteBool"
	idWriteInt32   = "WriteInt32"
	idWriteFloat32 = "WriteFloat32"
	idWriteString  = "WriteString"
	idWriteCount   = "WriteCount"
	idCreateFixup  = "CreateFixup"
	idInsertFixup  = "InsertFixup"

	defaultSourceName = "schema"
)

type Kind string

const (
	KindBinary     Kind = "binary"
	KindFriendly   Kind = "friendly"
	KindSerializer Kind = "serialize"
)

type Options struct {
	// SourceName is the schema file the code is generated from. Its base
	// name without extension prefixes the artifact file names.
	SourceName    string
	WriterPackage string
}

type Artifact struct {
	Kind     Kind
	Package  string
	FileName string
	Source   []byte
}

// Path is the artifact's location relative to the output directory.
func (a Artifact) Path() string {
	return filepath.Join(a.Package, a.FileName)
}

type MissingNamespaceError struct {
	Directive string
}

func (e *MissingNamespaceError) Error() string {
	return fmt.Sprintf(`"%s" must be set before generating code`, e.Directive)
}

// NamespaceConflictError is returned when both representations would be
// generated into the same package. Their type names are the same, so they
// can't share one.
type NamespaceConflictError struct {
	Namespace string
}

func (e *NamespaceConflictError) Error() string {
	return fmt.Sprintf(`"binary_namespace" and "friendly_namespace" are both "%s", they must be different packages`, e.Namespace)
}

type generator func(s *model.Schema, opts Options) (*jen.File, error)

// Generate renders the layout, friendly and serializer artifacts for s. The
// generators only read the schema, so they run concurrently.
func Generate(s *model.Schema, opts Options) ([]Artifact, error) {
	opts = withDefaults(opts)

	if err := checkNamespaces(s); err != nil {
		return nil, err
	}

	kinds := []struct {
		kind Kind
		pkg  string
		gen  generator
	}{
		{KindBinary, s.BinaryNamespace, GenerateBinary},
		{KindFriendly, s.FriendlyNamespace, GenerateFriendly},
		{KindSerializer, s.FriendlyNamespace, GenerateSerializer},
	}

	artifacts := make([]Artifact, len(kinds))

	var g errgroup.Group
	for i, k := range kinds {
		g.Go(func() error {
			f, err := k.gen(s, opts)
			if err != nil {
				return err
			}

			src, err := render(f)
			if err != nil {
				return fmt.Errorf(`failed to render %s code: %w`, k.kind, err)
			}

			artifacts[i] = Artifact{
				Kind:     k.kind,
				Package:  k.pkg,
				FileName: fileName(opts, k.kind),
				Source:   src,
			}

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return artifacts, nil
}

func checkNamespaces(s *model.Schema) error {
	if s.BinaryNamespace == "" {
		return &MissingNamespaceError{Directive: "binary_namespace"}
	}

	if s.FriendlyNamespace == "" {
		return &MissingNamespaceError{Directive: "friendly_namespace"}
	}

	if s.BinaryNamespace == s.FriendlyNamespace {
		return &NamespaceConflictError{Namespace: s.BinaryNamespace}
	}

	return nil
}

func withDefaults(opts Options) Options {
	if opts.SourceName == "" {
		opts.SourceName = defaultSourceName
	}

	if opts.WriterPackage == "" {
		opts.WriterPackage = DefaultWriterPackage
	}

	return opts
}

func newFile(pkg string, opts Options) *jen.File {
	f := jen.NewFile(pkg)
	f.HeaderComment(fmt.Sprintf("Code generated by idlc from %s. DO NOT EDIT.", filepath.Base(opts.SourceName)))
	f.ImportName(opts.WriterPackage, path.Base(opts.WriterPackage))
	return f
}

func render(f *jen.File) ([]byte, error) {
	var buf bytes.Buffer

	if err := f.Render(&buf); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func fileName(opts Options, kind Kind) string {
	base := filepath.Base(opts.SourceName)
	base = strings.TrimSuffix(base, filepath.Ext(base))

	return fmt.Sprintf("%s.%s.go", base, kind)
}

// genEnums emits the enums declared directly in st. Both representations
// carry them.
func genEnums(f *jen.File, st *model.Struct) {
	for _, e := range st.Enums {
		f.Type().Id(e.GoName()).Int32()
		f.Line()

		f.Const().DefsFunc(func(g *jen.Group) {
			for _, v := range e.Values {
				g.Id(e.ConstName(v.Label)).Id(e.GoName()).Op("=").Lit(v.Value)
			}
		})
		f.Line()
	}
}

func basicType(b model.Basic) *jen.Statement {
	switch b {
	case model.BasicBool:
		return jen.Bool()
	case model.BasicInt:
		return jen.Int32()
	case model.BasicFloat:
		return jen.Float32()
	}

	return jen.String()
}
