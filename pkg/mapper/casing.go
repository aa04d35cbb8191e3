package mapper

import (
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// pascalCaser upper-cases a word's leading rune and leaves the rest of
// the string untouched (cases.NoLower keeps it from lower-casing an
// already-capitalized interior like "myHTTPServer").
var pascalCaser = cases.Title(language.English, cases.NoLower)

// pascalCaseOf returns name with its leading rune upper-cased via
// Unicode-aware title-casing, not a hand-rolled ASCII range check.
func pascalCaseOf(name string) string {
	return pascalCaser.String(name)
}

// isPascalCase reports whether name already follows the PascalCase
// convention sharp methods and properties are conventionally given.
func isPascalCase(name string) bool {
	if name == "" {
		return true
	}
	return unicode.IsUpper([]rune(name)[0])
}
