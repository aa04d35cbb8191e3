package ast

import (
	"fmt"
	"strings"
)

// Dump renders an indented, S-expression-like text tree of a node,
// for the `-ast` syntax-check mode. It never exposes the node values
// themselves -- only a string -- so callers outside this module can
// inspect parse structure without depending on the ast package.
func Dump(n Node) string {
	var b strings.Builder
	dump(&b, n, 0)
	return b.String()
}

func indent(b *strings.Builder, depth int) {
	b.WriteString(strings.Repeat("  ", depth))
}

func dump(b *strings.Builder, n Node, depth int) {
	if n == nil {
		indent(b, depth)
		b.WriteString("<nil>\n")
		return
	}
	indent(b, depth)
	fmt.Fprintf(b, "%s@%d", n.Kind(), n.NodeLine())

	switch v := n.(type) {
	case *Program:
		b.WriteString("\n")
		for _, s := range v.Body {
			dump(b, s, depth+1)
		}
		return
	case *CompilationUnit:
		b.WriteString("\n")
		for _, u := range v.Usings {
			dump(b, u, depth+1)
		}
		for _, m := range v.Members {
			dump(b, m, depth+1)
		}
		for _, s := range v.Statements {
			dump(b, s, depth+1)
		}
		return
	case *UsingDirective:
		fmt.Fprintf(b, " %s\n", v.Name)
		return
	case *NamespaceDeclaration:
		fmt.Fprintf(b, " %s\n", v.Name)
		for _, m := range v.Members {
			dump(b, m, depth+1)
		}
		return
	case *FunctionDeclaration:
		fmt.Fprintf(b, " %s(%s)\n", v.Name, paramNames(v.Params))
		dump(b, v.Body, depth+1)
		return
	case *ClassDeclaration:
		fmt.Fprintf(b, " %s", v.Name)
		if v.SuperClass != "" {
			fmt.Fprintf(b, " : %s", v.SuperClass)
		}
		b.WriteString("\n")
		for _, m := range v.Members {
			if node, ok := m.(Node); ok {
				dump(b, node, depth+1)
			}
		}
		return
	case *VariableDeclaration:
		fmt.Fprintf(b, " %s\n", v.DeclKind)
		for _, d := range v.Declarators {
			dump(b, d, depth+1)
		}
		return
	case *VariableDeclarator:
		fmt.Fprintf(b, " %s\n", v.Name)
		if v.Init != nil {
			dump(b, v.Init, depth+1)
		}
		return
	case *LocalVariableDeclaration:
		fmt.Fprintf(b, " %s\n", v.Name)
		if v.Init != nil {
			dump(b, v.Init, depth+1)
		}
		return
	case *TypeDeclaration:
		fmt.Fprintf(b, " %s %s\n", v.DeclKind, v.Name)
		for _, m := range v.Members {
			dump(b, m, depth+1)
		}
		return
	case *MethodDeclaration:
		fmt.Fprintf(b, " %s(%s)\n", v.Name, paramNames(v.Parameters))
		if v.Body != nil {
			dump(b, v.Body, depth+1)
		}
		return
	case *ConstructorDeclaration:
		fmt.Fprintf(b, " %s(%s)\n", v.Name, paramNames(v.Parameters))
		if v.Body != nil {
			dump(b, v.Body, depth+1)
		}
		return
	case *PropertyDeclaration:
		fmt.Fprintf(b, " %s\n", v.Name)
		return
	case *EventDeclaration:
		fmt.Fprintf(b, " %s\n", v.Name)
		return
	case *BlockStatement:
		b.WriteString("\n")
		for _, s := range v.Statements {
			dump(b, s, depth+1)
		}
		return
	case *IfStatement:
		b.WriteString("\n")
		dump(b, v.Condition, depth+1)
		dump(b, v.Then, depth+1)
		if v.Else != nil {
			dump(b, v.Else, depth+1)
		}
		return
	case *WhileStatement:
		b.WriteString("\n")
		dump(b, v.Condition, depth+1)
		dump(b, v.Body, depth+1)
		return
	case *DoWhileStatement:
		b.WriteString("\n")
		dump(b, v.Body, depth+1)
		dump(b, v.Condition, depth+1)
		return
	case *ForStatement:
		b.WriteString("\n")
		if v.Init != nil {
			dump(b, v.Init, depth+1)
		}
		if v.Condition != nil {
			dump(b, v.Condition, depth+1)
		}
		if v.Post != nil {
			dump(b, v.Post, depth+1)
		}
		dump(b, v.Body, depth+1)
		return
	case *ForEachStatement:
		fmt.Fprintf(b, " %s\n", v.Name)
		dump(b, v.Collection, depth+1)
		dump(b, v.Body, depth+1)
		return
	case *SwitchStatement:
		b.WriteString("\n")
		dump(b, v.Discriminant, depth+1)
		for _, c := range v.Cases {
			dump(b, c, depth+1)
		}
		return
	case *SwitchCase:
		b.WriteString("\n")
		if v.Test != nil {
			dump(b, v.Test, depth+1)
		}
		for _, s := range v.Body {
			dump(b, s, depth+1)
		}
		return
	case *ReturnStatement:
		b.WriteString("\n")
		if v.Value != nil {
			dump(b, v.Value, depth+1)
		}
		return
	case *ThrowStatement:
		b.WriteString("\n")
		dump(b, v.Value, depth+1)
		return
	case *TryStatement:
		b.WriteString("\n")
		dump(b, v.TryBlock, depth+1)
		if v.CatchBlock != nil {
			dump(b, v.CatchBlock, depth+1)
		}
		if v.FinallyBlock != nil {
			dump(b, v.FinallyBlock, depth+1)
		}
		return
	case *ExpressionStatement:
		b.WriteString("\n")
		dump(b, v.Expr, depth+1)
		return
	case *AssignmentExpression:
		fmt.Fprintf(b, " %s\n", v.Operator)
		dump(b, v.Target, depth+1)
		dump(b, v.Value, depth+1)
		return
	case *ConditionalExpression:
		b.WriteString("\n")
		dump(b, v.Condition, depth+1)
		dump(b, v.Then, depth+1)
		dump(b, v.Else, depth+1)
		return
	case *BinaryExpression:
		fmt.Fprintf(b, " %s\n", v.Operator)
		dump(b, v.Left, depth+1)
		dump(b, v.Right, depth+1)
		return
	case *UnaryExpression:
		fmt.Fprintf(b, " %s\n", v.Operator)
		dump(b, v.Operand, depth+1)
		return
	case *Identifier:
		fmt.Fprintf(b, " %s\n", v.Name)
		return
	case *Literal:
		fmt.Fprintf(b, " %s %s\n", v.ValueKind, v.Raw)
		return
	case *ArrayLiteral:
		b.WriteString("\n")
		for _, e := range v.Elements {
			dump(b, e, depth+1)
		}
		return
	case *ObjectLiteral:
		b.WriteString("\n")
		for _, p := range v.Properties {
			dump(b, p, depth+1)
		}
		return
	case *Property:
		fmt.Fprintf(b, " %s\n", v.Key)
		dump(b, v.Value, depth+1)
		return
	case *NamedType:
		fmt.Fprintf(b, " %s\n", v.Name.String())
		return
	case *BreakStatement, *ContinueStatement:
		b.WriteString("\n")
		return
	default:
		b.WriteString("\n")
		return
	}
}

func paramNames(params []*Parameter) string {
	names := make([]string, len(params))
	for i, p := range params {
		names[i] = p.Name
	}
	return strings.Join(names, ", ")
}
