package lexer

import (
	"fmt"
	"strings"
)

// EOF is returned by Peek when the stream is exhausted.
const EOF = ""

type UnexpectedEndOfInputError struct {
	Line int
}

func (e *UnexpectedEndOfInputError) Error() string {
	return fmt.Sprintf("unexpected end of input after line %d", e.Line)
}

type SyntaxError struct {
	Expected string
	Found    string
	Line     int
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf(`expected "%s", got "%s" on line %d`, e.Expected, e.Found, e.Line)
}

// Stream is a cursor over a token sequence.
type Stream struct {
	tokens []Token
	pos    int
	line   int
}

func NewStream(tokens []Token) *Stream {
	return &Stream{tokens: tokens}
}

// Advance consumes and returns the next token.
func (s *Stream) Advance() (string, error) {
	if s.EOF() {
		return "", &UnexpectedEndOfInputError{Line: s.line}
	}

	t := s.tokens[s.pos]
	s.pos += 1
	s.line = t.Line

	return t.Text, nil
}

func (s *Stream) Peek() string {
	if s.EOF() {
		return EOF
	}

	return s.tokens[s.pos].Text
}

// PeekLine returns the line of the next token, or of the last consumed one at
// the end of the stream.
func (s *Stream) PeekLine() int {
	if s.EOF() {
		return s.line
	}

	return s.tokens[s.pos].Line
}

func (s *Stream) ConsumeIf(expected string) bool {
	if s.EOF() || s.Peek() != expected {
		return false
	}

	s.pos += 1
	s.line = s.tokens[s.pos-1].Line

	return true
}

// Expect consumes one token per element of expected, failing on the first
// mismatch.
func (s *Stream) Expect(expected ...string) error {
	for _, e := range expected {
		t, err := s.Advance()
		if err != nil {
			return err
		}

		if t != e {
			return &SyntaxError{
				Expected: strings.Join(expected, " "),
				Found:    t,
				Line:     s.line,
			}
		}
	}

	return nil
}

// Line is the source line of the most recently consumed token.
func (s *Stream) Line() int {
	return s.line
}

func (s *Stream) EOF() bool {
	return s.pos >= len(s.tokens)
}
