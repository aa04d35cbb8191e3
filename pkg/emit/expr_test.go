package emit

import (
	"testing"

	"xlate/pkg/ast"
)

func identity(name string) string { return name }

func TestRenderBinaryUnwrapsSyntheticCallOperator(t *testing.T) {
	call := &ast.BinaryExpression{
		Operator: "()",
		Left:     &ast.Identifier{Name: "foo"},
		Right:    &ast.ArrayLiteral{Elements: []ast.Expression{&ast.Literal{ValueKind: ast.LiteralNumber, Raw: "1"}}},
	}
	got := renderExpr(call, identity)
	if got != "foo(1)" {
		t.Fatalf("got %q", got)
	}
}

func TestRenderBinaryUnwrapsSyntheticMemberAndIndexOperators(t *testing.T) {
	member := &ast.BinaryExpression{Operator: ".", Left: &ast.Identifier{Name: "foo"}, Right: &ast.Identifier{Name: "bar"}}
	index := &ast.BinaryExpression{Operator: "[]", Left: member, Right: &ast.Literal{ValueKind: ast.LiteralNumber, Raw: "0"}}
	got := renderExpr(index, identity)
	if got != "foo.bar[0]" {
		t.Fatalf("got %q", got)
	}
}

func TestRenderBinaryParenthesizesArithmeticOperators(t *testing.T) {
	bin := &ast.BinaryExpression{Operator: "+", Left: &ast.Identifier{Name: "a"}, Right: &ast.Identifier{Name: "b"}}
	got := renderExpr(bin, identity)
	if got != "(a + b)" {
		t.Fatalf("got %q", got)
	}
}

func TestRenderUnaryWordOperatorGetsASpace(t *testing.T) {
	u := &ast.UnaryExpression{Operator: "typeof", Operand: &ast.Identifier{Name: "x"}}
	got := renderExpr(u, identity)
	if got != "typeof x" {
		t.Fatalf("got %q", got)
	}
}

func TestRenderUnarySymbolOperatorHasNoSpace(t *testing.T) {
	u := &ast.UnaryExpression{Operator: "!", Operand: &ast.Identifier{Name: "x"}}
	got := renderExpr(u, identity)
	if got != "!x" {
		t.Fatalf("got %q", got)
	}
}

func TestRenderUnaryPostfixPlacesOperatorAfterOperand(t *testing.T) {
	u := &ast.UnaryExpression{Operator: "++", Operand: &ast.Identifier{Name: "i"}, Postfix: true}
	got := renderExpr(u, identity)
	if got != "i++" {
		t.Fatalf("got %q", got)
	}
}

func TestRenderExprAppliesCalleeRewrite(t *testing.T) {
	call := &ast.BinaryExpression{Operator: "()", Left: &ast.Identifier{Name: "console.log"}, Right: &ast.ArrayLiteral{}}
	got := renderExpr(call, func(name string) string {
		if name == "console.log" {
			return "Console.WriteLine"
		}
		return name
	})
	if got != "Console.WriteLine()" {
		t.Fatalf("got %q", got)
	}
}

func TestFormatStringLiteralEscapesQuotesAndBackslashes(t *testing.T) {
	got := formatStringLiteral(`"a\"b"`)
	want := `"a\"b"`
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestStringContentStripsVerbatimPrefixAndUnescapesDoubledQuotes(t *testing.T) {
	got := stringContent(`@"a""b"`)
	if got != `a"b` {
		t.Fatalf("got %q", got)
	}
}

func TestStringContentStripsRegularQuotes(t *testing.T) {
	got := stringContent(`"hello"`)
	if got != "hello" {
		t.Fatalf("got %q", got)
	}
}

func TestRenderExprConditionalExpression(t *testing.T) {
	cond := &ast.ConditionalExpression{
		Condition: &ast.Identifier{Name: "a"},
		Then:      &ast.Identifier{Name: "b"},
		Else:      &ast.Identifier{Name: "c"},
	}
	got := renderExpr(cond, identity)
	if got != "a ? b : c" {
		t.Fatalf("got %q", got)
	}
}
