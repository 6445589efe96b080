package lexer

import (
	"errors"
	"testing"

	assert "github.com/stretchr/testify/require"
)

func texts(tokens []Token) []string {
	out := make([]string, len(tokens))
	for i, t := range tokens {
		out[i] = t.Text
	}
	return out
}

func lex(t *testing.T, src string) []Token {
	tokens, err := Lex(src)
	assert.NoError(t, err)
	return tokens
}

func TestLexPunctuation(t *testing.T) {
	tokens := lex(t, "struct B:A{int? xs[4],ys[];}")

	assert.Equal(t, []string{
		"struct", "B", ":", "A", "{",
		"int", "?", "xs", "[", "4", "]", ",", "ys", "[", "]", ";",
		"}",
	}, texts(tokens))
}

func TestLexLineNumbers(t *testing.T) {
	tokens := lex(t, "struct A\n\n{\n  int x;\n};\n")

	lines := make([]int, len(tokens))
	for i, tok := range tokens {
		lines[i] = tok.Line
	}

	assert.Equal(t, []int{1, 1, 3, 4, 4, 4, 5, 5}, lines)
}

func TestLexLineComment(t *testing.T) {
	assert.Equal(t, lex(t, "x;"), lex(t, "x; // comment"))
	assert.Empty(t, lex(t, "// only a comment\n   \n"))
}

func TestLexBlockCommentAcrossLines(t *testing.T) {
	src := "int a; /* int hidden;\nstill hidden\nint also_hidden; */ int b;\nint c;"

	tokens := lex(t, src)

	assert.Equal(t, []string{"int", "a", ";", "int", "b", ";", "int", "c", ";"}, texts(tokens))
	assert.Equal(t, 3, tokens[3].Line)
	assert.Equal(t, 4, tokens[6].Line)
}

func TestLexBlockCommentSameLine(t *testing.T) {
	assert.Equal(t, []string{"a", "c"}, texts(lex(t, "a/*b*/c")))
	assert.Equal(t, []string{"a", ";"}, texts(lex(t, "a /* b */ ; // c")))
}

func TestLexNestedBlockComments(t *testing.T) {
	src := "x /* outer /* inner */ still outer */ y"

	assert.Equal(t, []string{"x", "y"}, texts(lex(t, src)))
}

func TestLexLineCommentDoesNotOpenBlock(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, texts(lex(t, "a // /* not a block\nb")))
}

func TestLexUnmatchedCommentEnd(t *testing.T) {
	_, err := Lex("struct A {\n int x; */\n};")

	var uce *UnmatchedCommentEndError
	assert.True(t, errors.As(err, &uce))
	assert.Equal(t, 2, uce.Line)

	_, err = Lex("/* a */ */")
	assert.True(t, errors.As(err, &uce))
	assert.Equal(t, 1, uce.Line)
}

func TestLexUnterminatedComment(t *testing.T) {
	_, err := Lex("a\n/* open\nnever closed")

	var uce *UnterminatedCommentError
	assert.True(t, errors.As(err, &uce))
	assert.Equal(t, 2, uce.Line)
}
