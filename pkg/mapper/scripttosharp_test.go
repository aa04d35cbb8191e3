package mapper

import (
	"testing"

	"xlate/pkg/ast"
	"xlate/pkg/diag"
	"xlate/pkg/metrics"
	"xlate/pkg/script"
	"xlate/pkg/source"
)

func parseScript(t *testing.T, input string) *ast.Program {
	t.Helper()
	src := source.New("<test>", input)
	sink := &metrics.Sink{}
	p := script.NewParser(script.NewTokenStream(script.NewLexer(src)), sink, src)
	prog, diags := p.ParseProgram()
	for _, d := range diags {
		if d.Severity == diag.SeverityError {
			t.Fatalf("unexpected parse error: %s", d.Message)
		}
	}
	return prog
}

func TestScriptToSharpMapsFunctionToStaticMethod(t *testing.T) {
	prog := parseScript(t, "function add(a, b) { return a + b; }")
	m := NewScriptToSharp()
	unit := m.Map(prog)
	method, ok := unit.Members[0].(*ast.MethodDeclaration)
	if !ok {
		t.Fatalf("got %T", unit.Members[0])
	}
	if method.Name != "add" || len(method.Parameters) != 2 {
		t.Fatalf("got %+v", method)
	}
	if method.Modifiers[0] != "public" || method.Modifiers[1] != "static" {
		t.Fatalf("got modifiers %+v", method.Modifiers)
	}
}

func TestScriptToSharpLowercaseFunctionNameGetsInfoDiagnostic(t *testing.T) {
	prog := parseScript(t, "function doStuff() { return 1; }")
	m := NewScriptToSharp()
	m.Map(prog)
	found := false
	for _, d := range m.Diagnostics() {
		if d.Severity == diag.SeverityInfo {
			found = true
		}
	}
	if !found {
		t.Fatal("expected an info diagnostic about PascalCase convention")
	}
}

func TestScriptToSharpWarnsOnStringLiteralWithRawLineBreak(t *testing.T) {
	prog := parseScript(t, "let s = `a\nb`;")
	m := NewScriptToSharp()
	m.Map(prog)
	found := false
	for _, d := range m.Diagnostics() {
		if d.Severity == diag.SeverityWarning && d.Type == diag.TypeSemantic {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a warning about the raw line break, got %+v", m.Diagnostics())
	}
}

func TestScriptToSharpMapsClassWithExtendsAndFields(t *testing.T) {
	prog := parseScript(t, "class Dog extends Animal { bark() { return 1; } legs = 4; }")
	m := NewScriptToSharp()
	unit := m.Map(prog)
	decl := unit.Members[0].(*ast.TypeDeclaration)
	if decl.Name != "Dog" || len(decl.BaseTypes) != 1 || decl.BaseTypes[0].Name.String() != "Animal" {
		t.Fatalf("got %+v", decl)
	}
	if _, ok := decl.Members[0].(*ast.MethodDeclaration); !ok {
		t.Fatalf("member 0 got %T", decl.Members[0])
	}
	prop, ok := decl.Members[1].(*ast.PropertyDeclaration)
	if !ok || prop.Name != "Legs" {
		t.Fatalf("member 1 got %+v", decl.Members[1])
	}
}

func TestScriptToSharpMultiDeclaratorWarnsAndKeepsFirst(t *testing.T) {
	prog := parseScript(t, "let a = 1, b = 2;")
	m := NewScriptToSharp()
	unit := m.Map(prog)
	local, ok := unit.Statements[0].(*ast.LocalVariableDeclaration)
	if !ok || local.Name != "a" {
		t.Fatalf("got %+v", unit.Statements[0])
	}
	found := false
	for _, d := range m.Diagnostics() {
		if d.Severity == diag.SeverityWarning {
			found = true
		}
	}
	if !found {
		t.Fatal("expected a warning about the dropped declarator")
	}
}

func TestScriptToSharpStrictEqualityIsLoweredWithWarning(t *testing.T) {
	prog := parseScript(t, "a === b;")
	m := NewScriptToSharp()
	unit := m.Map(prog)
	stmt := unit.Statements[0].(*ast.ExpressionStatement)
	bin, ok := stmt.Expr.(*ast.BinaryExpression)
	if !ok || bin.Operator != "==" {
		t.Fatalf("got %+v", stmt.Expr)
	}
	found := false
	for _, d := range m.Diagnostics() {
		if d.Severity == diag.SeverityWarning {
			found = true
		}
	}
	if !found {
		t.Fatal("expected a warning about the lossy strict-equality rewrite")
	}
}

func TestScriptToSharpObjectLiteralBecomesArrayWithError(t *testing.T) {
	prog := parseScript(t, "let o = { a: 1, b: 2 };")
	m := NewScriptToSharp()
	unit := m.Map(prog)
	local := unit.Statements[0].(*ast.LocalVariableDeclaration)
	arr, ok := local.Init.(*ast.ArrayLiteral)
	if !ok || len(arr.Elements) != 2 {
		t.Fatalf("got %+v", local.Init)
	}
	found := false
	for _, d := range m.Diagnostics() {
		if d.Severity == diag.SeverityError {
			found = true
		}
	}
	if !found {
		t.Fatal("expected a mapping error for the object literal")
	}
}

func TestScriptToSharpNestedClassInBlockIsMappingError(t *testing.T) {
	prog := parseScript(t, "function outer() { class Inner { } }")
	m := NewScriptToSharp()
	unit := m.Map(prog)
	method := unit.Members[0].(*ast.MethodDeclaration)
	if len(method.Body.Statements) != 1 {
		t.Fatalf("got %+v", method.Body.Statements)
	}
	if _, ok := method.Body.Statements[0].(*ast.ExpressionStatement); !ok {
		t.Fatalf("got %T", method.Body.Statements[0])
	}
	found := false
	for _, d := range m.Diagnostics() {
		if d.Severity == diag.SeverityError {
			found = true
		}
	}
	if !found {
		t.Fatal("expected a mapping error for the nested class declaration")
	}
}
