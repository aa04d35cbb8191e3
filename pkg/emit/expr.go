package emit

import (
	"strings"

	"xlate/pkg/ast"
)

// rewriteCallee maps a cross-language standard-library surrogate call
// name to its target-language equivalent, e.g. "console.log" ->
// "Console.WriteLine" when emitting sharp, or the inverse when emitting
// script. Names with no surrogate pass through unchanged.
type rewriteCallee func(name string) string

// renderExpr renders e as a single-line expression string. Binary
// expressions are always fully parenthesized per the determinism
// contract; the synthetic "()"/"."/"[]" operators produced by both
// parsers' parseCallOrMemberTail are unwrapped into call, member, and
// index syntax rather than literal infix operators.
func renderExpr(e ast.Expression, rewrite rewriteCallee) string {
	switch v := e.(type) {
	case *ast.AssignmentExpression:
		return renderExpr(v.Target, rewrite) + " " + v.Operator + " " + renderExpr(v.Value, rewrite)
	case *ast.ConditionalExpression:
		return renderExpr(v.Condition, rewrite) + " ? " + renderExpr(v.Then, rewrite) + " : " + renderExpr(v.Else, rewrite)
	case *ast.BinaryExpression:
		return renderBinary(v, rewrite)
	case *ast.UnaryExpression:
		return renderUnary(v, rewrite)
	case *ast.Identifier:
		return v.Name
	case *ast.Literal:
		return renderLiteral(v)
	case *ast.ArrayLiteral:
		parts := make([]string, len(v.Elements))
		for i, el := range v.Elements {
			parts[i] = renderExpr(el, rewrite)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case *ast.ObjectLiteral:
		parts := make([]string, len(v.Properties))
		for i, p := range v.Properties {
			parts[i] = p.Key + ": " + renderExpr(p.Value, rewrite)
		}
		return "{ " + strings.Join(parts, ", ") + " }"
	case nil:
		return ""
	default:
		return ""
	}
}

func renderBinary(v *ast.BinaryExpression, rewrite rewriteCallee) string {
	switch v.Operator {
	case "()":
		callee := renderExpr(v.Left, rewrite)
		callee = rewrite(callee)
		args, _ := v.Right.(*ast.ArrayLiteral)
		var parts []string
		if args != nil {
			for _, a := range args.Elements {
				parts = append(parts, renderExpr(a, rewrite))
			}
		}
		return callee + "(" + strings.Join(parts, ", ") + ")"
	case ".":
		return renderExpr(v.Left, rewrite) + "." + renderExpr(v.Right, rewrite)
	case "[]":
		return renderExpr(v.Left, rewrite) + "[" + renderExpr(v.Right, rewrite) + "]"
	default:
		return "(" + renderExpr(v.Left, rewrite) + " " + v.Operator + " " + renderExpr(v.Right, rewrite) + ")"
	}
}

func renderUnary(v *ast.UnaryExpression, rewrite rewriteCallee) string {
	operand := renderExpr(v.Operand, rewrite)
	if v.Postfix {
		return operand + v.Operator
	}
	if len(v.Operator) > 0 && isWordOperator(v.Operator) {
		return v.Operator + " " + operand
	}
	return v.Operator + operand
}

func isWordOperator(op string) bool {
	c := op[0]
	return c >= 'a' && c <= 'z'
}

func renderLiteral(v *ast.Literal) string {
	switch v.ValueKind {
	case ast.LiteralString:
		return formatStringLiteral(v.Raw)
	default:
		return v.Raw
	}
}

// stringContent strips a string lexeme's surrounding quote syntax,
// unescaping a verbatim (`@"..."`) literal's doubled quotes so both
// forms reduce to the same plain content before re-escaping for output.
func stringContent(raw string) string {
	if strings.HasPrefix(raw, "@\"") && strings.HasSuffix(raw, "\"") && len(raw) >= 3 {
		inner := raw[2 : len(raw)-1]
		return strings.ReplaceAll(inner, "\"\"", "\"")
	}
	if len(raw) >= 2 {
		return raw[1 : len(raw)-1]
	}
	return raw
}

// formatStringLiteral renders content as a double-quoted literal with
// backslash-escaped backslashes and quotes, per the emission contract.
func formatStringLiteral(raw string) string {
	content := stringContent(raw)
	var b strings.Builder
	b.WriteByte('"')
	for i := 0; i < len(content); i++ {
		c := content[i]
		switch {
		case c == '\\' && i+1 < len(content):
			b.WriteByte(c)
			b.WriteByte(content[i+1])
			i++
		case c == '\\':
			b.WriteString(`\\`)
		case c == '"':
			b.WriteString(`\"`)
		default:
			b.WriteByte(c)
		}
	}
	b.WriteByte('"')
	return b.String()
}
