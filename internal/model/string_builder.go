package model

import (
	"fmt"
	"strings"
)

// stringBuilder is used to build the outputs of `String` methods in this package.
type stringBuilder struct {
	strings.Builder
	newLine bool
	indent  int
}

func (s *stringBuilder) Indent() {
	s.indent += 1
}

func (s *stringBuilder) DeIndent() {
	s.indent -= 1
}

// Linef writes a formatted line at the current indentation.
func (s *stringBuilder) Linef(format string, args ...any) {
	s.WriteString(fmt.Sprintf(format, args...))
	s.WriteNewLine()
}

func (s *stringBuilder) WriteNewLine() {
	_ = s.Builder.WriteByte('\n')
	s.newLine = true
}

func (s *stringBuilder) WriteString(str string) {
	s.checkNewline()
	_, _ = s.Builder.WriteString(str)
}

func (s *stringBuilder) checkNewline() {
	if s.newLine {
		s.newLine = false
		for i := 0; i < s.indent; i += 1 {
			_, _ = s.Builder.WriteString("  ")
		}
	}
}
