// Package source holds the text a lexer scans and a parser consumes, so
// lexers, parsers, and diagnostics can all refer back to the same backing
// file instead of threading raw strings through every layer individually.
package source

import "strings"

// File represents one source text being lexed, parsed, or converted.
type File struct {
	Name    string // display name, e.g. "<input>" or a file path
	Content string
	lines   []string // cached split lines
}

// New creates a File wrapping the given content.
func New(name, content string) *File {
	return &File{Name: name, Content: content}
}

// Lines returns the source split into lines, splitting and caching on
// first use.
func (f *File) Lines() []string {
	if f.lines == nil {
		f.lines = strings.Split(f.Content, "\n")
	}
	return f.lines
}

// Line returns the 1-based source line n, or "" if out of range.
func (f *File) Line(n int) string {
	lines := f.Lines()
	if n < 1 || n > len(lines) {
		return ""
	}
	return lines[n-1]
}
