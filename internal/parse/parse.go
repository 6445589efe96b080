// Package parse builds a model.Schema from schema source text.
package parse

import (
	"fmt"
	"go/token"
	"os"
	"strconv"
	"unicode"

	"github.com/koskimas/idlc/internal/lexer"
	"github.com/koskimas/idlc/internal/model"
)

const (
	keywordStruct            = "struct"
	keywordEnum              = "enum"
	keywordBinaryNamespace   = "binary_namespace"
	keywordFriendlyNamespace = "friendly_namespace"
)

// parser holds the state threaded through the recursive descent.
type parser struct {
	tokens *lexer.Stream
	schema *model.Schema
	// userTypes holds full struct names and enum names.
	userTypes map[string]bool
}

func ParseFile(filePath string) (*model.Schema, error) {
	src, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf(`failed to read schema file "%s": %w`, filePath, err)
	}

	s, err := Parse(string(src))
	if err != nil {
		return nil, fmt.Errorf(`failed to parse schema file "%s": %w`, filePath, err)
	}

	return s, nil
}

// Parse parses and resolves a schema. Any error aborts the whole parse.
func Parse(src string) (*model.Schema, error) {
	tokens, err := lexer.Lex(src)
	if err != nil {
		return nil, err
	}

	p := &parser{
		tokens:    lexer.NewStream(tokens),
		schema:    model.NewSchema(),
		userTypes: make(map[string]bool),
	}

	if err := p.parse(); err != nil {
		return nil, err
	}

	if err := resolve(p.schema); err != nil {
		return nil, err
	}

	return p.schema, nil
}

func (p *parser) parse() error {
	for !p.tokens.EOF() {
		t, err := p.tokens.Advance()
		if err != nil {
			return err
		}

		switch t {
		case keywordStruct:
			st, err := p.parseStruct(nil)
			if err != nil {
				return err
			}

			p.schema.AddStruct(st)
		case keywordBinaryNamespace:
			ns, err := p.parseAssignment()
			if err != nil {
				return err
			}

			p.schema.BinaryNamespace = ns
		case keywordFriendlyNamespace:
			ns, err := p.parseAssignment()
			if err != nil {
				return err
			}

			p.schema.FriendlyNamespace = ns
		case "}":
			return p.tokens.Expect(";")
		default:
			return &lexer.SyntaxError{
				Expected: "struct, binary_namespace or friendly_namespace",
				Found:    t,
				Line:     p.tokens.Line(),
			}
		}
	}

	return nil
}

func (p *parser) parseAssignment() (string, error) {
	if err := p.tokens.Expect("="); err != nil {
		return "", err
	}

	value, err := p.advanceTypeName("namespace name")
	if err != nil {
		return "", err
	}

	return value, p.tokens.Expect(";")
}

func (p *parser) parseStruct(outer *model.Struct) (*model.Struct, error) {
	name, err := p.advanceTypeName("struct name")
	if err != nil {
		return nil, err
	}

	line := p.tokens.Line()

	parent := ""
	if p.tokens.ConsumeIf(":") {
		if parent, err = p.advanceTypeName("parent struct name"); err != nil {
			return nil, err
		}
	}

	st := model.NewStruct(name, parent, outer)
	st.Line = line

	// The name is visible from here on, so the body and later siblings can
	// refer to it.
	if p.userTypes[st.FullName] {
		return nil, &DuplicateTypeError{Name: st.FullName, Line: line}
	}

	p.userTypes[st.FullName] = true
	p.schema.StructsByName[st.FullName] = st

	if err := p.tokens.Expect("{"); err != nil {
		return nil, err
	}

	for {
		t, err := p.tokens.Advance()
		if err != nil {
			return nil, err
		}

		switch t {
		case "}":
			return st, p.tokens.Expect(";")
		case keywordStruct:
			child, err := p.parseStruct(st)
			if err != nil {
				return nil, err
			}

			st.AddChild(child)
		case keywordEnum:
			if err := p.parseEnum(st); err != nil {
				return nil, err
			}
		default:
			typ, ok := p.resolveType(t, st)
			if !ok {
				return nil, &UnknownTypeError{Token: t, Scope: st.FullName, Line: p.tokens.Line()}
			}

			if err := p.parseVars(st, typ); err != nil {
				return nil, err
			}
		}
	}
}

// resolveType looks name up qualified by scope and each enclosing scope, and
// then unqualified.
func (p *parser) resolveType(name string, scope *model.Struct) (model.Type, bool) {
	for sc := scope; sc != nil; sc = sc.Outer {
		if st, ok := p.schema.StructsByName[model.MakeFullName(name, sc)]; ok {
			return model.Type{Token: name, Category: model.CategoryUser, Struct: st}, true
		}
	}

	if e, ok := p.schema.EnumsByName[name]; ok {
		return model.Type{Token: name, Category: model.CategoryEnum, Enum: e}, true
	}

	if st, ok := p.schema.StructsByName[name]; ok {
		return model.Type{Token: name, Category: model.CategoryUser, Struct: st}, true
	}

	if b, ok := model.BasicTypes[name]; ok {
		return model.Type{Token: name, Category: model.CategoryBasic, Basic: b}, true
	}

	return model.Type{}, false
}

// parseVars parses a comma separated group of vars sharing one type. The
// optional marker applies to the whole group.
func (p *parser) parseVars(st *model.Struct, typ model.Type) error {
	optional := p.tokens.ConsumeIf("?")

	for {
		name, err := p.advanceIdentifier("variable name")
		if err != nil {
			return err
		}

		v := &model.Var{
			Name:     name,
			Type:     typ,
			Count:    model.CountScalar,
			Optional: optional,
			Line:     p.tokens.Line(),
		}

		if p.tokens.ConsumeIf("[") {
			if !p.tokens.ConsumeIf("]") {
				if v.Count, err = p.parseCount(); err != nil {
					return err
				}

				if err := p.tokens.Expect("]"); err != nil {
					return err
				}
			} else {
				v.Count = model.CountDynamic
			}
		}

		t, err := p.tokens.Advance()
		if err != nil {
			return err
		}

		if t == "=" {
			if v.Default, err = p.tokens.Advance(); err != nil {
				return err
			}

			if t, err = p.tokens.Advance(); err != nil {
				return err
			}
		}

		st.AddVar(v)

		switch t {
		case ",":
			continue
		case ";":
			return nil
		default:
			return &MultiDeclarationSyntaxError{Found: t, Line: p.tokens.Line()}
		}
	}
}

func (p *parser) parseCount() (int, error) {
	t, err := p.tokens.Advance()
	if err != nil {
		return 0, err
	}

	count, err := strconv.Atoi(t)
	if err != nil || count < model.CountDynamic {
		return 0, &InvalidCountError{Token: t, Line: p.tokens.Line()}
	}

	// [-1] is the explicit spelling of [].
	return count, nil
}

func (p *parser) parseEnum(owner *model.Struct) error {
	name, err := p.advanceTypeName("enum name")
	if err != nil {
		return err
	}

	e := &model.Enum{
		Name:  name,
		Owner: owner,
		Line:  p.tokens.Line(),
	}

	if err := p.tokens.Expect("{"); err != nil {
		return err
	}

	value := 0
	for {
		label, err := p.tokens.Advance()
		if err != nil {
			return err
		}

		if label == "}" {
			if err := p.tokens.Expect(";"); err != nil {
				return err
			}

			break
		}

		if !isIdentifier(label) {
			return &lexer.SyntaxError{Expected: "enum label", Found: label, Line: p.tokens.Line()}
		}

		if p.tokens.ConsumeIf("=") {
			t, err := p.tokens.Advance()
			if err != nil {
				return err
			}

			v, err := strconv.ParseInt(t, 10, 32)
			if err != nil {
				return &lexer.SyntaxError{Expected: "32-bit integer", Found: t, Line: p.tokens.Line()}
			}

			value = int(v)
		}

		if e.HasLabel(label) {
			return &DuplicateFieldError{Scope: e.Name, Name: label, Line: p.tokens.Line()}
		}

		e.Values = append(e.Values, model.EnumValue{Label: label, Value: value})
		value += 1

		p.tokens.ConsumeIf(",")
	}

	if p.userTypes[name] {
		return &DuplicateTypeError{Name: name, Line: e.Line}
	}

	p.userTypes[name] = true
	p.schema.EnumsByName[name] = e
	owner.AddEnum(e)

	return nil
}

func (p *parser) advanceIdentifier(what string) (string, error) {
	t, err := p.tokens.Advance()
	if err != nil {
		return "", err
	}

	if !isIdentifier(t) {
		return "", &lexer.SyntaxError{Expected: what, Found: t, Line: p.tokens.Line()}
	}

	return t, nil
}

// advanceTypeName is advanceIdentifier for names that end up verbatim in
// generated code.
func (p *parser) advanceTypeName(what string) (string, error) {
	t, err := p.advanceIdentifier(what)
	if err != nil {
		return "", err
	}

	if token.IsKeyword(t) {
		return "", &lexer.SyntaxError{Expected: what, Found: t, Line: p.tokens.Line()}
	}

	return t, nil
}

// isIdentifier accepts a letter followed by letters, digits and underscores.
func isIdentifier(s string) bool {
	if s == "" {
		return false
	}

	for i, r := range s {
		if unicode.IsLetter(r) || (i > 0 && (r == '_' || unicode.IsDigit(r))) {
			continue
		}

		return false
	}

	return true
}
