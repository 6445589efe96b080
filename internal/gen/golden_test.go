package gen

import (
	"bytes"
	"flag"
	"go/ast"
	"go/format"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"testing"

	"github.com/koskimas/idlc/internal/parse"
	assert "github.com/stretchr/testify/require"
)

// The packages under golden/ are the checked in output for golden/scene.idl.
// They are part of the module, so they are compiled and their own tests run
// the generated serializers against pkg/fixup.
var update = flag.Bool("update", false, "rewrite the golden packages")

const goldenDir = "golden"

func TestGenerateGolden(t *testing.T) {
	schemaPath := filepath.Join(goldenDir, "scene.idl")

	s, err := parse.ParseFile(schemaPath)
	assert.NoError(t, err)

	artifacts, err := Generate(s, Options{SourceName: schemaPath})
	assert.NoError(t, err)
	assert.Len(t, artifacts, 3)

	for _, a := range artifacts {
		goldenPath := filepath.Join(goldenDir, a.Path())

		if *update {
			assert.NoError(t, os.WriteFile(goldenPath, a.Source, 0o644))
			continue
		}

		golden, err := os.ReadFile(goldenPath)
		assert.NoError(t, err)

		assert.Equal(t, declarations(t, golden), declarations(t, a.Source), "generated %s differs from %s", a.Kind, goldenPath)
	}
}

// declarations lists the package clause, the import paths and every other
// top level declaration of src with whitespace collapsed, so that the
// comparison doesn't depend on how imports are grouped or fields aligned.
func declarations(t *testing.T, src []byte) []string {
	fset := token.NewFileSet()

	f, err := parser.ParseFile(fset, "", src, 0)
	assert.NoError(t, err)

	out := []string{"package " + f.Name.Name}

	for _, imp := range f.Imports {
		out = append(out, "import "+imp.Path.Value)
	}

	for _, d := range f.Decls {
		if gd, ok := d.(*ast.GenDecl); ok && gd.Tok == token.IMPORT {
			continue
		}

		var buf bytes.Buffer
		assert.NoError(t, format.Node(&buf, fset, d))
		out = append(out, flat(buf.Bytes()))
	}

	return out
}
