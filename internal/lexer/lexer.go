// Package lexer turns schema source text into line-tagged tokens.
package lexer

import (
	"bufio"
	"fmt"
	"strings"
)

const (
	blockCommentStart = "/*"
	blockCommentEnd   = "*/"
	lineComment       = "//"
)

// punctuation is split into separate tokens regardless of surrounding whitespace.
var punctuation = []string{";", "(", ")", "[", "]", "{", "}", ",", ":", "?"}

type Token struct {
	Line int
	Text string
}

func (t Token) String() string {
	return fmt.Sprintf("%d:%s", t.Line, t.Text)
}

type UnterminatedCommentError struct {
	Line int
}

func (e *UnterminatedCommentError) Error() string {
	return fmt.Sprintf("unterminated block comment opened on line %d", e.Line)
}

// UnmatchedCommentEndError is a "*/" outside of any block comment.
type UnmatchedCommentEndError struct {
	Line int
}

func (e *UnmatchedCommentEndError) Error() string {
	return fmt.Sprintf(`"%s" without a matching "%s" on line %d`, blockCommentEnd, blockCommentStart, e.Line)
}

// Lex strips comments and blank lines from src and splits the rest into tokens.
func Lex(src string) ([]Token, error) {
	tokens := make([]Token, 0)

	depth := 0
	openedAt := 0
	lineNum := 0

	scanner := bufio.NewScanner(strings.NewReader(src))
	scanner.Buffer(make([]byte, 0, 64*1024), len(src)+1)

	for scanner.Scan() {
		lineNum += 1

		code, d, ok := stripComments(scanner.Text(), depth)
		if !ok {
			return nil, &UnmatchedCommentEndError{Line: lineNum}
		}

		depth = d

		if depth > 0 && openedAt == 0 {
			openedAt = lineNum
		} else if depth == 0 {
			openedAt = 0
		}

		for _, t := range splitLine(code) {
			tokens = append(tokens, Token{Line: lineNum, Text: t})
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read schema source: %w", err)
	}

	if depth > 0 {
		return nil, &UnterminatedCommentError{Line: openedAt}
	}

	return tokens, nil
}

// stripComments returns the parts of line that are outside of comments, given
// the block comment depth at the start of the line, and the depth at its end.
// It returns false if the line closes a block comment that isn't open.
func stripComments(line string, depth int) (string, int, bool) {
	var code strings.Builder

	for i := 0; i < len(line); {
		rest := line[i:]

		switch {
		case strings.HasPrefix(rest, blockCommentStart):
			depth += 1
			i += len(blockCommentStart)
		case depth > 0 && strings.HasPrefix(rest, blockCommentEnd):
			depth -= 1
			i += len(blockCommentEnd)
			// Keep tokens on both sides of a comment apart.
			code.WriteByte(' ')
		case depth > 0:
			i += 1
		case strings.HasPrefix(rest, lineComment):
			return code.String(), depth, true
		case strings.HasPrefix(rest, blockCommentEnd):
			return "", depth, false
		default:
			code.WriteByte(line[i])
			i += 1
		}
	}

	return code.String(), depth, true
}

func splitLine(line string) []string {
	for _, p := range punctuation {
		line = strings.ReplaceAll(line, p, " "+p+" ")
	}

	return strings.Fields(line)
}
