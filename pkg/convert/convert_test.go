package convert

import (
	"strings"
	"testing"
)

func TestConvertScriptToSharpSucceedsOnCleanInput(t *testing.T) {
	result := ConvertScriptToSharp("function add(a, b) { return a + b; }")
	if !result.Success {
		t.Fatalf("expected success, got errors %+v", result.Errors)
	}
	if !strings.Contains(result.ConvertedCode, "public static void add") {
		t.Fatalf("got code:\n%s", result.ConvertedCode)
	}
	if result.SyntaxAccuracy != 100 {
		t.Fatalf("got syntax accuracy %v", result.SyntaxAccuracy)
	}
}

func TestConvertSharpToScriptSucceedsOnCleanInput(t *testing.T) {
	result := ConvertSharpToScript("class Dog { public void Bark() { } }")
	if !result.Success {
		t.Fatalf("expected success, got errors %+v", result.Errors)
	}
	if !strings.Contains(result.ConvertedCode, "class Dog") {
		t.Fatalf("got code:\n%s", result.ConvertedCode)
	}
}

func TestConvertScriptToSharpReportsWarningsButStillSucceeds(t *testing.T) {
	result := ConvertScriptToSharp("a === b;")
	if !result.Success {
		t.Fatalf("expected success despite a lossy-but-recoverable rewrite, got errors %+v", result.Errors)
	}
	if len(result.Warnings) == 0 {
		t.Fatal("expected a warning about the strict-equality rewrite")
	}
}

func TestConvertScriptToSharpFailsOnSyntaxError(t *testing.T) {
	result := ConvertScriptToSharp("const x;")
	if result.Success {
		t.Fatal("expected failure for an uninitialized const")
	}
	if len(result.Errors) == 0 {
		t.Fatal("expected at least one error diagnostic")
	}
}

func TestConvertScriptToSharpEmptyInputReturnsErrEmptyInput(t *testing.T) {
	result := ConvertScriptToSharp("   \n\t")
	if result.Success {
		t.Fatal("expected failure for blank input")
	}
	if len(result.Errors) != 1 || result.Errors[0].Message != ErrEmptyInput.Error() {
		t.Fatalf("got %+v", result.Errors)
	}
}

func TestConvertSharpToScriptEmptyInputReturnsErrEmptyInput(t *testing.T) {
	result := ConvertSharpToScript("")
	if result.Success {
		t.Fatal("expected failure for empty input")
	}
	if len(result.Errors) != 1 || result.Errors[0].Message != ErrEmptyInput.Error() {
		t.Fatalf("got %+v", result.Errors)
	}
}

func TestParseScriptReportsCleanSyntax(t *testing.T) {
	result := ParseScript("let x = 1;")
	if !result.Success {
		t.Fatalf("expected success, got %+v", result.Errors)
	}
	if result.TokensProcessed == 0 || result.ASTNodes == 0 {
		t.Fatalf("expected non-zero metrics, got %+v", result)
	}
}

func TestParseSharpReportsSyntaxError(t *testing.T) {
	result := ParseSharp("class {")
	if result.Success {
		t.Fatal("expected failure for a missing type name")
	}
	if len(result.Errors) == 0 {
		t.Fatal("expected at least one error diagnostic")
	}
}

func TestParseScriptEmptyInputReturnsErrEmptyInput(t *testing.T) {
	result := ParseScript("")
	if result.Success {
		t.Fatal("expected failure for empty input")
	}
	if len(result.Errors) != 1 || result.Errors[0].Message != ErrEmptyInput.Error() {
		t.Fatalf("got %+v", result.Errors)
	}
}

func TestParseScriptWithOptionsCapsDiagnosticCount(t *testing.T) {
	result := ParseScriptWithOptions("const a; const b; const c;", Options{MaxDiagnostics: 1})
	if len(result.Errors)+len(result.Warnings) != 1 {
		t.Fatalf("expected exactly 1 diagnostic under the cap, got %d", len(result.Errors)+len(result.Warnings))
	}
}

func TestParseScriptWithOptionsRecoveryBudgetStopsEarly(t *testing.T) {
	const input = "let 1; let 1; let 1; let 1; let 1;"
	unbounded := ParseScript(input)
	bounded := ParseScriptWithOptions(input, Options{RecoveryBudget: 1})
	if len(bounded.Errors) >= len(unbounded.Errors) {
		t.Fatalf("expected the bounded run to give up earlier: bounded=%d unbounded=%d", len(bounded.Errors), len(unbounded.Errors))
	}
}

func TestConvertScriptToSharpRoundTripsClassDeclaration(t *testing.T) {
	result := ConvertScriptToSharp("class Animal { speak() { return 1; } }")
	if !result.Success {
		t.Fatalf("got errors %+v", result.Errors)
	}
	back := ConvertSharpToScript(result.ConvertedCode)
	if !back.Success {
		t.Fatalf("expected the sharp output to parse and convert back cleanly, got errors %+v", back.Errors)
	}
	if !strings.Contains(back.ConvertedCode, "class Animal") {
		t.Fatalf("got code:\n%s", back.ConvertedCode)
	}
}
