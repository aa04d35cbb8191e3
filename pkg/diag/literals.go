package diag

import "github.com/dlclark/regexp2"

// suspiciousLineBreak matches a line terminator inside a string lexeme
// that was captured across the lexer's escape handling -- i.e. a raw
// newline/carriage-return that didn't arrive via a \n or \r escape.
// regexp2 (rather than the stdlib regexp package) is used here because
// it is the engine the rest of this codebase's JS-semantics regex
// handling is grounded on, and because its negative-lookbehind support
// is what makes "not preceded by a backslash" expressible directly.
var suspiciousLineBreak = regexp2.MustCompile(`(?<!\\)[\r\n]`, regexp2.None)

// CheckStringLexeme reports a warning diagnostic if the raw lexeme of a
// string literal (as captured by a lexer, including its surrounding
// quotes) contains an unescaped line terminator -- something that
// should be impossible for a well-formed single-line string but can
// slip through verbatim/backtick literals carried across the mapper.
func CheckStringLexeme(lexeme string, line, column int) (Diagnostic, bool) {
	m, err := suspiciousLineBreak.FindStringMatch(lexeme)
	if err != nil || m == nil {
		return Diagnostic{}, false
	}
	return NewWarning(TypeSemantic, line, column,
		"string literal spans a raw line break; verify it round-trips through the target language"), true
}
