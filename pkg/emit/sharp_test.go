package emit

import (
	"strings"
	"testing"

	"xlate/pkg/ast"
	"xlate/pkg/metrics"
	"xlate/pkg/sharp"
	"xlate/pkg/source"
)

func parseSharpUnit(t *testing.T, input string) *ast.CompilationUnit {
	t.Helper()
	src := source.New("<test>", input)
	sink := &metrics.Sink{}
	p := sharp.NewParser(sharp.NewTokenStream(sharp.NewLexer(src)), sink, src)
	unit, diags := p.ParseCompilationUnit()
	for _, d := range diags {
		if d.Severity == "error" {
			t.Fatalf("unexpected parse error: %s", d.Message)
		}
	}
	return unit
}

func TestSharpEmitsTypeDeclarationWithNoProgramWrapper(t *testing.T) {
	unit := parseSharpUnit(t, "public class Greeter { public void Greet() { } }")
	out := Sharp(unit)
	if strings.Contains(out, "class Program") {
		t.Fatalf("expected no generated Program wrapper for a pure type declaration, got:\n%s", out)
	}
	if !strings.Contains(out, "public class Greeter") {
		t.Fatalf("got:\n%s", out)
	}
}

func TestSharpEmitsBareStatementsInsideGeneratedMain(t *testing.T) {
	unit := parseSharpUnit(t, "Console.WriteLine(1);")
	out := Sharp(unit)
	if !strings.Contains(out, "public class Program") {
		t.Fatalf("expected a generated Program wrapper, got:\n%s", out)
	}
	if !strings.Contains(out, "public static void Main(string[] args)") {
		t.Fatalf("expected a generated Main method, got:\n%s", out)
	}
}

func TestSharpEmitCombinesTypeDeclarationsAndBareStatements(t *testing.T) {
	unit := parseSharpUnit(t, "class Helper { } Console.WriteLine(1);")
	out := Sharp(unit)
	classIdx := strings.Index(out, "class Helper")
	programIdx := strings.Index(out, "class Program")
	if classIdx < 0 || programIdx < 0 {
		t.Fatalf("expected both Helper and a generated Program, got:\n%s", out)
	}
	if classIdx > programIdx {
		t.Fatalf("expected type declarations to print before the generated wrapper, got:\n%s", out)
	}
}

func TestSharpEmitRewritesConsoleLogToConsoleWriteLine(t *testing.T) {
	unit := parseSharpUnit(t, "class C { void M() { console.log(1); } }")
	out := Sharp(unit)
	if !strings.Contains(out, "Console.WriteLine(1);") {
		t.Fatalf("got:\n%s", out)
	}
}

func TestSharpEmitsUsingDirectives(t *testing.T) {
	unit := parseSharpUnit(t, "using System; class C { }")
	out := Sharp(unit)
	if !strings.HasPrefix(out, "using System;\n") {
		t.Fatalf("got:\n%s", out)
	}
}

func TestSharpEmitsAutoPropertyShorthand(t *testing.T) {
	unit := parseSharpUnit(t, "class Account { public int Balance { get; set; } }")
	out := Sharp(unit)
	if !strings.Contains(out, "int Balance { get; set; }") {
		t.Fatalf("got:\n%s", out)
	}
}

func TestSharpEmitsEnumMembersCommaSeparated(t *testing.T) {
	unit := parseSharpUnit(t, "enum Color { Red, Green, Blue }")
	out := Sharp(unit)
	if !strings.Contains(out, "Red,") || !strings.Contains(out, "Blue") || strings.Contains(out, "Blue,") {
		t.Fatalf("expected trailing member without a comma, got:\n%s", out)
	}
}

func TestSharpEmitsGenericTypeArguments(t *testing.T) {
	unit := parseSharpUnit(t, "class C { void M() { List<int> xs; } }")
	out := Sharp(unit)
	if !strings.Contains(out, "List<int> xs;") {
		t.Fatalf("got:\n%s", out)
	}
}
