// Package builder provides the indentation-aware text buffer used by the
// code emitters.
package builder

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
)

// CodeBuilder builds C# source text with tracked indentation.
type CodeBuilder struct {
	buf       bytes.Buffer
	unit      string
	level     int
	indents   []string // indents[n] is the prefix for level n
	variables map[string]int
}

// New creates a CodeBuilder indenting with size spaces per level.
func New(size int) *CodeBuilder {
	if size <= 0 {
		size = 4
	}
	return &CodeBuilder{
		unit:    strings.Repeat(" ", size),
		indents: []string{""},
	}
}

// IndentLevel returns the current indentation level.
func (b *CodeBuilder) IndentLevel() int {
	return b.level
}

// IncreaseIndent increases the indentation level.
func (b *CodeBuilder) IncreaseIndent() {
	b.level++
}

// DecreaseIndent decreases the indentation level. At level 0 it does nothing
// and returns false.
func (b *CodeBuilder) DecreaseIndent() bool {
	if b.level == 0 {
		return false
	}
	b.level--
	return true
}

func (b *CodeBuilder) indent() string {
	for len(b.indents) <= b.level {
		b.indents = append(b.indents, b.indents[len(b.indents)-1]+b.unit)
	}
	return b.indents[b.level]
}

// AppendLine writes a single line at the current indentation level. Empty
// lines carry no trailing whitespace.
func (b *CodeBuilder) AppendLine(line string) {
	if line == "" {
		b.buf.WriteByte('\n')
		return
	}
	b.buf.WriteString(b.indent())
	b.buf.WriteString(line)
	b.buf.WriteByte('\n')
}

// AppendLineFormat writes a formatted line at the current indentation level.
func (b *CodeBuilder) AppendLineFormat(format string, args ...any) {
	b.AppendLine(fmt.Sprintf(format, args...))
}

// AppendBlankLine writes an empty line.
func (b *CodeBuilder) AppendBlankLine() {
	b.buf.WriteByte('\n')
}

// AppendLines writes each line of a multi-line string at the current level.
func (b *CodeBuilder) AppendLines(text string) {
	for _, line := range strings.Split(strings.TrimRight(text, "\n"), "\n") {
		b.AppendLine(line)
	}
}

// OpenBlock writes "{" and increases the indentation.
func (b *CodeBuilder) OpenBlock() {
	b.AppendLine("{")
	b.IncreaseIndent()
}

// CloseBlock decreases the indentation and writes "}" followed by suffix.
func (b *CodeBuilder) CloseBlock(suffix string) {
	b.DecreaseIndent()
	b.AppendLine("}" + suffix)
}

// GetUniqueVariableName returns base followed by a counter that increases
// with every call for the same base on this builder.
func (b *CodeBuilder) GetUniqueVariableName(base string) string {
	if b.variables == nil {
		b.variables = make(map[string]int)
	}
	n := b.variables[base]
	b.variables[base] = n + 1
	return base + strconv.Itoa(n)
}

// String returns the accumulated source code.
func (b *CodeBuilder) String() string {
	return b.buf.String()
}

// Len returns the current byte length.
func (b *CodeBuilder) Len() int {
	return b.buf.Len()
}

// Truncate discards everything written after the first n bytes.
func (b *CodeBuilder) Truncate(n int) {
	b.buf.Truncate(n)
}
