package mapper

import (
	"xlate/pkg/ast"
	"xlate/pkg/diag"
)

// SharpToScript maps a sharp CompilationUnit into a script Program.
type SharpToScript struct {
	diags []diag.Diagnostic
}

func NewSharpToScript() *SharpToScript { return &SharpToScript{} }

func (m *SharpToScript) Diagnostics() []diag.Diagnostic { return m.diags }

func (m *SharpToScript) warn(line int, format string, args ...interface{}) {
	m.diags = append(m.diags, diag.NewWarning(diag.TypeSemantic, line, 1, format, args...))
}

func (m *SharpToScript) info(line int, format string, args ...interface{}) {
	m.diags = append(m.diags, diag.NewInfo(diag.TypeSemantic, line, 1, format, args...))
}

func (m *SharpToScript) errorf(line int, format string, args ...interface{}) {
	m.diags = append(m.diags, diag.New(diag.TypeASTConversionError, line, 1, format, args...))
}

// checkStringLexeme flags a string literal carried across the mapper
// whose raw lexeme contains an unescaped line break.
func (m *SharpToScript) checkStringLexeme(v *ast.Literal) {
	if v.ValueKind != ast.LiteralString {
		return
	}
	if d, ok := diag.CheckStringLexeme(v.Raw, v.Line, 1); ok {
		m.diags = append(m.diags, d)
	}
}

// Map converts unit to a script Program. Using-directives are dropped
// with an informational note, per the mapping rule; namespaces are
// flattened (their members hoisted to the top level) since L-dyn has
// no namespace concept.
func (m *SharpToScript) Map(unit *ast.CompilationUnit) *ast.Program {
	prog := &ast.Program{Base: ast.Base{Line: unit.Line}}
	for _, u := range unit.Usings {
		m.info(u.Line, "using directive %q dropped; L-dyn has no import-equivalent namespace concept", u.Name)
	}
	for _, member := range unit.Members {
		prog.Body = append(prog.Body, m.mapDeclaration(member)...)
	}
	for _, stmt := range unit.Statements {
		prog.Body = append(prog.Body, m.mapStatement(stmt))
	}
	return prog
}

func (m *SharpToScript) mapDeclaration(decl ast.Declaration) []ast.Statement {
	switch v := decl.(type) {
	case *ast.NamespaceDeclaration:
		var out []ast.Statement
		for _, member := range v.Members {
			out = append(out, m.mapDeclaration(member)...)
		}
		return out
	case *ast.TypeDeclaration:
		return []ast.Statement{m.mapTypeDeclaration(v)}
	case *ast.MethodDeclaration:
		return []ast.Statement{m.mapMethodDeclaration(v)}
	default:
		m.warn(decl.NodeLine(), "%s has no L-dyn top-level form in this subset; dropped", decl.Kind())
		return nil
	}
}

func (m *SharpToScript) mapTypeDeclaration(decl *ast.TypeDeclaration) *ast.ClassDeclaration {
	if decl.DeclKind != ast.TypeDeclClass {
		m.warn(decl.Line, "%s %q has no direct L-dyn equivalent; mapped as a plain class", decl.DeclKind, decl.Name)
	}
	cls := &ast.ClassDeclaration{Base: ast.Base{Line: decl.Line}, Name: decl.Name}
	if len(decl.BaseTypes) > 0 {
		cls.SuperClass = decl.BaseTypes[0].Name.String()
	}
	for _, member := range decl.Members {
		switch mv := member.(type) {
		case *ast.MethodDeclaration:
			cls.Members = append(cls.Members, m.mapMethodDeclaration(mv))
		case *ast.ConstructorDeclaration:
			fn := &ast.FunctionDeclaration{Base: ast.Base{Line: mv.Line}, Name: "constructor", Body: m.mapBlock(mv.Body)}
			for _, param := range mv.Parameters {
				fn.Params = append(fn.Params, &ast.Parameter{Base: ast.Base{Line: param.Line}, Name: param.Name})
			}
			cls.Members = append(cls.Members, fn)
		case *ast.PropertyDeclaration:
			if mv.GetterBody != nil || mv.SetterBody != nil {
				m.warn(mv.Line, "property %q accessor bodies have no L-dyn field equivalent; dropped", mv.Name)
			}
			cls.Members = append(cls.Members, &ast.VariableDeclaration{
				Base: ast.Base{Line: mv.Line}, DeclKind: "let",
				Declarators: []*ast.VariableDeclarator{{Base: ast.Base{Line: mv.Line}, Name: mv.Name}},
			})
		default:
			m.warn(member.NodeLine(), "%s has no L-dyn class-member form in this subset; dropped", member.Kind())
		}
	}
	return cls
}

func (m *SharpToScript) mapMethodDeclaration(method *ast.MethodDeclaration) *ast.FunctionDeclaration {
	fn := &ast.FunctionDeclaration{Base: ast.Base{Line: method.Line}, Name: method.Name, Body: m.mapBlock(method.Body)}
	for _, param := range method.Parameters {
		fn.Params = append(fn.Params, &ast.Parameter{Base: ast.Base{Line: param.Line}, Name: param.Name})
	}
	return fn
}

func (m *SharpToScript) mapBlock(block *ast.BlockStatement) *ast.BlockStatement {
	if block == nil {
		return &ast.BlockStatement{}
	}
	out := &ast.BlockStatement{Base: ast.Base{Line: block.Line}}
	for _, s := range block.Statements {
		out.Statements = append(out.Statements, m.mapStatement(s))
	}
	return out
}

func (m *SharpToScript) mapStatement(stmt ast.Statement) ast.Statement {
	switch v := stmt.(type) {
	case *ast.BlockStatement:
		return m.mapBlock(v)
	case *ast.IfStatement:
		out := &ast.IfStatement{Base: ast.Base{Line: v.Line}, Condition: m.mapExpression(v.Condition), Then: m.mapStatement(v.Then)}
		if v.Else != nil {
			out.Else = m.mapStatement(v.Else)
		}
		return out
	case *ast.WhileStatement:
		return &ast.WhileStatement{Base: ast.Base{Line: v.Line}, Condition: m.mapExpression(v.Condition), Body: m.mapStatement(v.Body)}
	case *ast.DoWhileStatement:
		m.warn(v.Line, "do-while has no L-dyn production in this subset; mapped to a while loop, losing the guaranteed first iteration")
		return &ast.WhileStatement{Base: ast.Base{Line: v.Line}, Condition: m.mapExpression(v.Condition), Body: m.mapStatement(v.Body)}
	case *ast.ForStatement:
		out := &ast.ForStatement{Base: ast.Base{Line: v.Line}}
		if v.Init != nil {
			out.Init = m.mapStatement(v.Init)
		}
		if v.Condition != nil {
			out.Condition = m.mapExpression(v.Condition)
		}
		if v.Post != nil {
			out.Post = m.mapExpression(v.Post)
		}
		out.Body = m.mapStatement(v.Body)
		return out
	case *ast.ForEachStatement:
		m.warn(v.Line, "foreach has no direct L-dyn production in this subset; mapped to a for loop that binds the collection itself to the element name, losing the per-element iteration")
		return &ast.ForStatement{
			Base: ast.Base{Line: v.Line},
			Init: &ast.VariableDeclaration{Base: ast.Base{Line: v.Line}, DeclKind: "let",
				Declarators: []*ast.VariableDeclarator{{Base: ast.Base{Line: v.Line}, Name: v.Name, Init: m.mapExpression(v.Collection)}}},
			Body: m.mapStatement(v.Body),
		}
	case *ast.SwitchStatement:
		out := &ast.SwitchStatement{Base: ast.Base{Line: v.Line}, Discriminant: m.mapExpression(v.Discriminant)}
		for _, c := range v.Cases {
			nc := &ast.SwitchCase{Base: ast.Base{Line: c.Line}}
			if c.Test != nil {
				nc.Test = m.mapExpression(c.Test)
			}
			for _, s := range c.Body {
				nc.Body = append(nc.Body, m.mapStatement(s))
			}
			out.Cases = append(out.Cases, nc)
		}
		return out
	case *ast.ReturnStatement:
		out := &ast.ReturnStatement{Base: ast.Base{Line: v.Line}}
		if v.Value != nil {
			out.Value = m.mapExpression(v.Value)
		}
		return out
	case *ast.ThrowStatement:
		out := &ast.ThrowStatement{Base: ast.Base{Line: v.Line}}
		if v.Value != nil {
			out.Value = m.mapExpression(v.Value)
		}
		return out
	case *ast.BreakStatement:
		return &ast.BreakStatement{Base: v.Base}
	case *ast.ContinueStatement:
		return &ast.ContinueStatement{Base: v.Base}
	case *ast.TryStatement:
		out := &ast.TryStatement{Base: ast.Base{Line: v.Line}, TryBlock: m.mapBlock(v.TryBlock), CatchParam: v.CatchParam}
		if v.CatchBlock != nil {
			out.CatchBlock = m.mapBlock(v.CatchBlock)
		}
		if v.FinallyBlock != nil {
			out.FinallyBlock = m.mapBlock(v.FinallyBlock)
		}
		return out
	case *ast.ExpressionStatement:
		return &ast.ExpressionStatement{Base: ast.Base{Line: v.Line}, Expr: m.mapExpression(v.Expr)}
	case *ast.LocalVariableDeclaration:
		out := &ast.VariableDeclaration{Base: ast.Base{Line: v.Line}, DeclKind: "var"}
		declarator := &ast.VariableDeclarator{Base: ast.Base{Line: v.Line}, Name: v.Name}
		if v.Init != nil {
			declarator.Init = m.mapExpression(v.Init)
		}
		out.Declarators = []*ast.VariableDeclarator{declarator}
		return out
	default:
		return stmt
	}
}

var binaryOpSharpToScript = map[string]string{
	"==": "===",
	"!=": "!==",
}

func (m *SharpToScript) mapExpression(expr ast.Expression) ast.Expression {
	switch v := expr.(type) {
	case *ast.AssignmentExpression:
		return &ast.AssignmentExpression{Base: ast.Base{Line: v.Line}, Operator: v.Operator, Target: m.mapExpression(v.Target), Value: m.mapExpression(v.Value)}
	case *ast.ConditionalExpression:
		// L-dyn has no ternary in this grammar subset; lower to the
		// corresponding if-expression shape is not representable as an
		// Expression, so fall back to the "then" branch with a warning.
		m.warn(v.Line, "conditional ('?:') expression has no L-dyn production in this subset; the 'then' branch was kept")
		return m.mapExpression(v.Then)
	case *ast.BinaryExpression:
		op := v.Operator
		if mapped, raise := binaryOpSharpToScript[op]; raise {
			m.warn(v.Line, "equality operator %q raised to %q; not semantically reversible for reference types", op, mapped)
			op = mapped
		}
		return &ast.BinaryExpression{Base: ast.Base{Line: v.Line}, Operator: op, Left: m.mapExpression(v.Left), Right: m.mapExpression(v.Right)}
	case *ast.UnaryExpression:
		return &ast.UnaryExpression{Base: ast.Base{Line: v.Line}, Operator: v.Operator, Operand: m.mapExpression(v.Operand), Postfix: v.Postfix}
	case *ast.Identifier:
		return &ast.Identifier{Base: ast.Base{Line: v.Line}, Name: v.Name}
	case *ast.Literal:
		m.checkStringLexeme(v)
		return &ast.Literal{Base: ast.Base{Line: v.Line}, ValueKind: v.ValueKind, Raw: v.Raw}
	case *ast.ArrayLiteral:
		out := &ast.ArrayLiteral{Base: ast.Base{Line: v.Line}}
		for _, e := range v.Elements {
			out.Elements = append(out.Elements, m.mapExpression(e))
		}
		return out
	default:
		return expr
	}
}
