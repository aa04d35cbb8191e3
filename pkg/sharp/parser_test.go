package sharp

import (
	"testing"

	"xlate/pkg/ast"
	"xlate/pkg/metrics"
	"xlate/pkg/source"
)

func parseUnit(t *testing.T, input string) (*ast.CompilationUnit, *metrics.Sink) {
	t.Helper()
	src := source.New("<test>", input)
	sink := &metrics.Sink{}
	p := NewParser(NewTokenStream(NewLexer(src)), sink, src)
	unit, diags := p.ParseCompilationUnit()
	for _, d := range diags {
		if d.Severity == "error" {
			t.Fatalf("unexpected error diagnostic: %s", d.Message)
		}
	}
	return unit, sink
}

func TestParseUsingDirectivesAndNamespace(t *testing.T) {
	unit, _ := parseUnit(t, `using System; using System.Collections.Generic; namespace App { class Foo { } }`)
	if len(unit.Usings) != 2 || unit.Usings[1].Name != "System.Collections.Generic" {
		t.Fatalf("got %+v", unit.Usings)
	}
	ns, ok := unit.Members[0].(*ast.NamespaceDeclaration)
	if !ok || ns.Name != "App" || len(ns.Members) != 1 {
		t.Fatalf("got %+v", unit.Members[0])
	}
}

func TestParseClassWithGenericsBaseTypesAndConstraint(t *testing.T) {
	unit, _ := parseUnit(t, `public class Box<T> : Container, IBox where T : IComparable { }`)
	decl, ok := unit.Members[0].(*ast.TypeDeclaration)
	if !ok {
		t.Fatalf("got %T", unit.Members[0])
	}
	if decl.DeclKind != ast.TypeDeclClass || decl.Name != "Box" {
		t.Fatalf("got %+v", decl)
	}
	if len(decl.Modifiers) != 1 || decl.Modifiers[0] != "public" {
		t.Fatalf("got modifiers %+v", decl.Modifiers)
	}
	if len(decl.TypeParameters) != 1 || decl.TypeParameters[0].Name != "T" {
		t.Fatalf("got type params %+v", decl.TypeParameters)
	}
	if len(decl.BaseTypes) != 2 {
		t.Fatalf("got base types %+v", decl.BaseTypes)
	}
	if len(decl.TypeParameters[0].Constraints) != 1 || decl.TypeParameters[0].Constraints[0].Name.String() != "IComparable" {
		t.Fatalf("got constraints %+v", decl.TypeParameters[0].Constraints)
	}
}

func TestParseEnumDeclaration(t *testing.T) {
	unit, _ := parseUnit(t, `enum Color { Red, Green, Blue }`)
	decl := unit.Members[0].(*ast.TypeDeclaration)
	if decl.DeclKind != ast.TypeDeclEnum {
		t.Fatalf("got %+v", decl)
	}
	if len(decl.EnumMembers) != 3 || decl.EnumMembers[2] != "Blue" {
		t.Fatalf("got %+v", decl.EnumMembers)
	}
}

func TestParseConstructorVsMethodVsFieldDisambiguation(t *testing.T) {
	unit, _ := parseUnit(t, `class Point {
		public Point(int x) { }
		public int Sum() { return 1; }
		public int X;
	}`)
	decl := unit.Members[0].(*ast.TypeDeclaration)
	if len(decl.Members) != 3 {
		t.Fatalf("got %d members: %+v", len(decl.Members), decl.Members)
	}
	if _, ok := decl.Members[0].(*ast.ConstructorDeclaration); !ok {
		t.Fatalf("member 0 got %T", decl.Members[0])
	}
	method, ok := decl.Members[1].(*ast.MethodDeclaration)
	if !ok || method.Name != "Sum" {
		t.Fatalf("member 1 got %T", decl.Members[1])
	}
	field, ok := decl.Members[2].(*ast.PropertyDeclaration)
	if !ok || field.Name != "X" || !field.HasGetter || !field.HasSetter {
		t.Fatalf("member 2 got %+v", decl.Members[2])
	}
}

func TestParsePropertyAutoAndExplicitAccessors(t *testing.T) {
	unit, _ := parseUnit(t, `class Account {
		public int Balance { get; set; }
		public int Overdraft { get { return 0; } }
	}`)
	decl := unit.Members[0].(*ast.TypeDeclaration)
	auto := decl.Members[0].(*ast.PropertyDeclaration)
	if !auto.HasGetter || !auto.HasSetter || auto.GetterBody != nil {
		t.Fatalf("got %+v", auto)
	}
	explicit := decl.Members[1].(*ast.PropertyDeclaration)
	if !explicit.HasGetter || explicit.HasSetter || explicit.GetterBody == nil {
		t.Fatalf("got %+v", explicit)
	}
}

func TestLooksLikeLocalDeclarationDistinguishesCallFromDeclaration(t *testing.T) {
	unit, _ := parseUnit(t, `class C { void M() { foo(); List<int> xs; int n = 1; } }`)
	decl := unit.Members[0].(*ast.TypeDeclaration)
	method := decl.Members[0].(*ast.MethodDeclaration)
	if len(method.Body.Statements) != 3 {
		t.Fatalf("got %d statements: %+v", len(method.Body.Statements), method.Body.Statements)
	}
	if _, ok := method.Body.Statements[0].(*ast.ExpressionStatement); !ok {
		t.Fatalf("statement 0 got %T", method.Body.Statements[0])
	}
	local, ok := method.Body.Statements[1].(*ast.LocalVariableDeclaration)
	if !ok || local.Name != "xs" {
		t.Fatalf("statement 1 got %+v", method.Body.Statements[1])
	}
	declType := local.DeclaredType.(*ast.NamedType)
	if declType.Name.String() != "List" || len(declType.TypeArguments) != 1 || declType.TypeArguments[0].Name.String() != "int" {
		t.Fatalf("got declared type %+v", local.DeclaredType)
	}
	if _, ok := method.Body.Statements[2].(*ast.LocalVariableDeclaration); !ok {
		t.Fatalf("statement 2 got %T", method.Body.Statements[2])
	}
}

func TestParseDoWhileAndForEach(t *testing.T) {
	unit, _ := parseUnit(t, `class C { void M() {
		do { x = x + 1; } while (x < 10);
		foreach (int item in items) { Console.WriteLine(item); }
	} }`)
	method := unit.Members[0].(*ast.TypeDeclaration).Members[0].(*ast.MethodDeclaration)
	doWhile, ok := method.Body.Statements[0].(*ast.DoWhileStatement)
	if !ok {
		t.Fatalf("statement 0 got %T", method.Body.Statements[0])
	}
	if bin, ok := doWhile.Condition.(*ast.BinaryExpression); !ok || bin.Operator != "<" {
		t.Fatalf("got condition %+v", doWhile.Condition)
	}
	forEach, ok := method.Body.Statements[1].(*ast.ForEachStatement)
	if !ok || forEach.Name != "item" || forEach.ElementType.Name.String() != "int" {
		t.Fatalf("statement 1 got %+v", method.Body.Statements[1])
	}
}

func TestParseConditionalBitwiseAndShiftPrecedence(t *testing.T) {
	unit, _ := parseUnit(t, `class C { void M() { x = a | b & c << 1 ? y : z; } }`)
	method := unit.Members[0].(*ast.TypeDeclaration).Members[0].(*ast.MethodDeclaration)
	exprStmt := method.Body.Statements[0].(*ast.ExpressionStatement)
	assign := exprStmt.Expr.(*ast.AssignmentExpression)
	cond, ok := assign.Value.(*ast.ConditionalExpression)
	if !ok {
		t.Fatalf("got %T", assign.Value)
	}
	or, ok := cond.Condition.(*ast.BinaryExpression)
	if !ok || or.Operator != "|" {
		t.Fatalf("got %+v", cond.Condition)
	}
	and, ok := or.Right.(*ast.BinaryExpression)
	if !ok || and.Operator != "&" {
		t.Fatalf("right of '|' got %+v", or.Right)
	}
	shift, ok := and.Right.(*ast.BinaryExpression)
	if !ok || shift.Operator != "<<" {
		t.Fatalf("right of '&' got %+v", and.Right)
	}
}

func TestParseNewExpressionConstruction(t *testing.T) {
	unit, _ := parseUnit(t, `class C { void M() { var p = new Point(1, 2); } }`)
	method := unit.Members[0].(*ast.TypeDeclaration).Members[0].(*ast.MethodDeclaration)
	local := method.Body.Statements[0].(*ast.LocalVariableDeclaration)
	call, ok := local.Init.(*ast.BinaryExpression)
	if !ok || call.Operator != "()" {
		t.Fatalf("got %+v", local.Init)
	}
	callee, ok := call.Left.(*ast.Identifier)
	if !ok || callee.Name != "new Point" {
		t.Fatalf("got callee %+v", call.Left)
	}
	args, ok := call.Right.(*ast.ArrayLiteral)
	if !ok || len(args.Elements) != 2 {
		t.Fatalf("got args %+v", call.Right)
	}
}

func TestTopLevelBareStatementsAreCollectedSeparatelyFromMembers(t *testing.T) {
	unit, _ := parseUnit(t, `using System; Console.WriteLine("hi");`)
	if len(unit.Members) != 0 {
		t.Fatalf("expected no members, got %+v", unit.Members)
	}
	if len(unit.Statements) != 1 {
		t.Fatalf("expected one top-level statement, got %+v", unit.Statements)
	}
}

func TestSynchronizeRecoversAfterBadMemberDeclaration(t *testing.T) {
	src := source.New("<test>", "namespace App { &&& class Good { } }")
	sink := &metrics.Sink{}
	p := NewParser(NewTokenStream(NewLexer(src)), sink, src)
	unit, diags := p.ParseCompilationUnit()
	hasError := false
	for _, d := range diags {
		if d.Severity == "error" {
			hasError = true
		}
	}
	if !hasError {
		t.Fatal("expected an error diagnostic for the stray tokens")
	}
	if sink.ErrorRecoveryCount == 0 {
		t.Fatal("expected synchronize to have run at least once")
	}
	ns := unit.Members[0].(*ast.NamespaceDeclaration)
	if len(ns.Members) != 1 {
		t.Fatalf("expected recovery to still parse the following class, got %+v", ns.Members)
	}
}

func TestForStatementPostIncrementIsPostfix(t *testing.T) {
	unit, _ := parseUnit(t, "class C { void M() { for (int i = 0; i < 10; i++) { } } }")
	method := unit.Members[0].(*ast.TypeDeclaration).Members[0].(*ast.MethodDeclaration)
	forStmt, ok := method.Body.Statements[0].(*ast.ForStatement)
	if !ok {
		t.Fatalf("got %T", method.Body.Statements[0])
	}
	u, ok := forStmt.Post.(*ast.UnaryExpression)
	if !ok || u.Operator != "++" || !u.Postfix {
		t.Fatalf("got post clause %#v", forStmt.Post)
	}
}

func TestMetricsSinkRecordsTokensAndNodes(t *testing.T) {
	_, sink := parseUnit(t, `class C { }`)
	if sink.TokensProcessed == 0 {
		t.Fatal("expected TokensProcessed to be recorded")
	}
	if sink.ASTNodes == 0 {
		t.Fatal("expected ASTNodes to be recorded")
	}
	if sink.SyntaxAccuracy() != 100 {
		t.Fatalf("got %v, want 100 for a clean parse", sink.SyntaxAccuracy())
	}
}
