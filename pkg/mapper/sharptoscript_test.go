package mapper

import (
	"testing"

	"xlate/pkg/ast"
	"xlate/pkg/diag"
	"xlate/pkg/metrics"
	"xlate/pkg/sharp"
	"xlate/pkg/source"
)

func parseSharp(t *testing.T, input string) *ast.CompilationUnit {
	t.Helper()
	src := source.New("<test>", input)
	sink := &metrics.Sink{}
	p := sharp.NewParser(sharp.NewTokenStream(sharp.NewLexer(src)), sink, src)
	unit, diags := p.ParseCompilationUnit()
	for _, d := range diags {
		if d.Severity == diag.SeverityError {
			t.Fatalf("unexpected parse error: %s", d.Message)
		}
	}
	return unit
}

func TestSharpToScriptDropsUsingDirectiveWithInfo(t *testing.T) {
	unit := parseSharp(t, "using System;")
	m := NewSharpToScript()
	prog := m.Map(unit)
	if len(prog.Body) != 0 {
		t.Fatalf("expected no statements, got %+v", prog.Body)
	}
	found := false
	for _, d := range m.Diagnostics() {
		if d.Severity == diag.SeverityInfo {
			found = true
		}
	}
	if !found {
		t.Fatal("expected an info diagnostic about the dropped using directive")
	}
}

func TestSharpToScriptWarnsOnStringLiteralWithRawLineBreak(t *testing.T) {
	unit := parseSharp(t, "var s = @\"a\nb\";")
	m := NewSharpToScript()
	m.Map(unit)
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

func TestSharpToScriptFlattensNamespaceMembers(t *testing.T) {
	unit := parseSharp(t, "namespace App { class Foo { } class Bar { } }")
	m := NewSharpToScript()
	prog := m.Map(unit)
	if len(prog.Body) != 2 {
		t.Fatalf("expected two hoisted classes, got %+v", prog.Body)
	}
	if _, ok := prog.Body[0].(*ast.ClassDeclaration); !ok {
		t.Fatalf("got %T", prog.Body[0])
	}
}

func TestSharpToScriptStructWarnsAndMapsAsClass(t *testing.T) {
	unit := parseSharp(t, "struct Point { }")
	m := NewSharpToScript()
	prog := m.Map(unit)
	if _, ok := prog.Body[0].(*ast.ClassDeclaration); !ok {
		t.Fatalf("got %T", prog.Body[0])
	}
	found := false
	for _, d := range m.Diagnostics() {
		if d.Severity == diag.SeverityWarning {
			found = true
		}
	}
	if !found {
		t.Fatal("expected a warning that struct has no direct L-dyn equivalent")
	}
}

func TestSharpToScriptConstructorBecomesNamedFunction(t *testing.T) {
	unit := parseSharp(t, "class Point { public Point(int x) { } }")
	m := NewSharpToScript()
	prog := m.Map(unit)
	cls := prog.Body[0].(*ast.ClassDeclaration)
	fn, ok := cls.Members[0].(*ast.FunctionDeclaration)
	if !ok || fn.Name != "constructor" || len(fn.Params) != 1 {
		t.Fatalf("got %+v", cls.Members[0])
	}
}

func TestSharpToScriptDoWhileLowersToWhileWithWarning(t *testing.T) {
	unit := parseSharp(t, "class C { void M() { do { x = 1; } while (x < 10); } }")
	m := NewSharpToScript()
	prog := m.Map(unit)
	cls := prog.Body[0].(*ast.ClassDeclaration)
	fn := cls.Members[0].(*ast.FunctionDeclaration)
	if _, ok := fn.Body.Statements[0].(*ast.WhileStatement); !ok {
		t.Fatalf("got %T", fn.Body.Statements[0])
	}
	found := false
	for _, d := range m.Diagnostics() {
		if d.Severity == diag.SeverityWarning {
			found = true
		}
	}
	if !found {
		t.Fatal("expected a warning about the dropped guaranteed first iteration")
	}
}

func TestSharpToScriptForEachLowersToForWithWarning(t *testing.T) {
	unit := parseSharp(t, "class C { void M() { foreach (int item in items) { } } }")
	m := NewSharpToScript()
	prog := m.Map(unit)
	cls := prog.Body[0].(*ast.ClassDeclaration)
	fn := cls.Members[0].(*ast.FunctionDeclaration)
	forStmt, ok := fn.Body.Statements[0].(*ast.ForStatement)
	if !ok {
		t.Fatalf("got %T", fn.Body.Statements[0])
	}
	init, ok := forStmt.Init.(*ast.VariableDeclaration)
	if !ok || init.Declarators[0].Name != "item" {
		t.Fatalf("got init %+v", forStmt.Init)
	}
	found := false
	for _, d := range m.Diagnostics() {
		if d.Severity == diag.SeverityWarning {
			found = true
		}
	}
	if !found {
		t.Fatal("expected a warning about the foreach-to-for lowering")
	}
}

func TestSharpToScriptConditionalExpressionKeepsThenBranchWithWarning(t *testing.T) {
	unit := parseSharp(t, "class C { void M() { x = a ? b : c; } }")
	m := NewSharpToScript()
	prog := m.Map(unit)
	cls := prog.Body[0].(*ast.ClassDeclaration)
	fn := cls.Members[0].(*ast.FunctionDeclaration)
	exprStmt := fn.Body.Statements[0].(*ast.ExpressionStatement)
	assign := exprStmt.Expr.(*ast.AssignmentExpression)
	ident, ok := assign.Value.(*ast.Identifier)
	if !ok || ident.Name != "b" {
		t.Fatalf("expected the 'then' branch to be kept, got %+v", assign.Value)
	}
	found := false
	for _, d := range m.Diagnostics() {
		if d.Severity == diag.SeverityWarning {
			found = true
		}
	}
	if !found {
		t.Fatal("expected a warning about the dropped ternary branch")
	}
}

func TestSharpToScriptEqualityIsRaisedToStrictWithWarning(t *testing.T) {
	unit := parseSharp(t, "class C { void M() { a == b; } }")
	m := NewSharpToScript()
	prog := m.Map(unit)
	cls := prog.Body[0].(*ast.ClassDeclaration)
	fn := cls.Members[0].(*ast.FunctionDeclaration)
	exprStmt := fn.Body.Statements[0].(*ast.ExpressionStatement)
	bin, ok := exprStmt.Expr.(*ast.BinaryExpression)
	if !ok || bin.Operator != "===" {
		t.Fatalf("got %+v", exprStmt.Expr)
	}
}

func TestSharpToScriptLocalVariableDeclarationBecomesVarBinding(t *testing.T) {
	unit := parseSharp(t, "class C { void M() { int n = 1; } }")
	m := NewSharpToScript()
	prog := m.Map(unit)
	cls := prog.Body[0].(*ast.ClassDeclaration)
	fn := cls.Members[0].(*ast.FunctionDeclaration)
	decl, ok := fn.Body.Statements[0].(*ast.VariableDeclaration)
	if !ok || decl.DeclKind != "var" || decl.Declarators[0].Name != "n" {
		t.Fatalf("got %+v", fn.Body.Statements[0])
	}
}
