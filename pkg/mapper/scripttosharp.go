// Package mapper implements the cross-language AST-to-AST transforms:
// script (L-dyn) trees to sharp (L-stat) trees and back. Every mapping
// function is total over the source language's declared node kinds;
// an unrecognized statement or expression kind is re-emitted as a
// same-shape pass-through, and every lossy rewrite or dropped
// declaration records a diagnostic rather than silently discarding
// information.
package mapper

import (
	"xlate/pkg/ast"
	"xlate/pkg/diag"
)

// ScriptToSharp maps a script Program into a sharp CompilationUnit,
// collecting every diagnostic the mapping raises along the way.
type ScriptToSharp struct {
	diags []diag.Diagnostic
}

func NewScriptToSharp() *ScriptToSharp { return &ScriptToSharp{} }

func (m *ScriptToSharp) Diagnostics() []diag.Diagnostic { return m.diags }

func (m *ScriptToSharp) warn(line int, format string, args ...interface{}) {
	m.diags = append(m.diags, diag.NewWarning(diag.TypeSemantic, line, 1, format, args...))
}

func (m *ScriptToSharp) info(line int, format string, args ...interface{}) {
	m.diags = append(m.diags, diag.NewInfo(diag.TypeSemantic, line, 1, format, args...))
}

func (m *ScriptToSharp) errorf(line int, format string, args ...interface{}) {
	m.diags = append(m.diags, diag.New(diag.TypeASTConversionError, line, 1, format, args...))
}

// checkStringLexeme flags a string literal carried across the mapper
// whose raw lexeme contains an unescaped line break.
func (m *ScriptToSharp) checkStringLexeme(v *ast.Literal) {
	if v.ValueKind != ast.LiteralString {
		return
	}
	if d, ok := diag.CheckStringLexeme(v.Raw, v.Line, 1); ok {
		m.diags = append(m.diags, d)
	}
}

var stringType = namedType("string", 0)
var voidType = namedType("void", 0)

func namedType(name string, line int) *ast.NamedType {
	return &ast.NamedType{Base: ast.Base{Line: line}, Name: &ast.QualifiedName{Base: ast.Base{Line: line}, Parts: []string{name}}}
}

// Map converts prog to a sharp CompilationUnit. Bare top-level
// statements are wrapped into the Main-method body; type declarations
// pass through as-is since the grammar describes top-level functions
// and classes, not bare executables, as L-dyn's only native top-level
// forms.
func (m *ScriptToSharp) Map(prog *ast.Program) *ast.CompilationUnit {
	unit := &ast.CompilationUnit{Base: ast.Base{Line: prog.Line}}
	for _, stmt := range prog.Body {
		switch v := stmt.(type) {
		case *ast.FunctionDeclaration:
			unit.Members = append(unit.Members, m.mapFunctionDeclaration(v))
		case *ast.ClassDeclaration:
			unit.Members = append(unit.Members, m.mapClassDeclaration(v))
		default:
			unit.Statements = append(unit.Statements, m.mapStatement(stmt))
		}
	}
	return unit
}

func (m *ScriptToSharp) mapFunctionDeclaration(fn *ast.FunctionDeclaration) *ast.MethodDeclaration {
	method := &ast.MethodDeclaration{
		Base:       ast.Base{Line: fn.Line},
		Modifiers:  []string{"public", "static"},
		ReturnType: voidType,
		Name:       fn.Name,
		Body:       m.mapBlock(fn.Body),
	}
	if !isPascalCase(method.Name) {
		m.info(fn.Line, "method %q does not follow PascalCase convention; consider %q", method.Name, pascalCaseOf(method.Name))
	}
	for _, param := range fn.Params {
		method.Parameters = append(method.Parameters, &ast.Parameter{Base: ast.Base{Line: param.Line}, Type: stringType, Name: param.Name})
	}
	return method
}

func (m *ScriptToSharp) mapClassDeclaration(cls *ast.ClassDeclaration) *ast.TypeDeclaration {
	decl := &ast.TypeDeclaration{
		Base:      ast.Base{Line: cls.Line},
		DeclKind:  ast.TypeDeclClass,
		Modifiers: []string{"public"},
		Name:      cls.Name,
	}
	if cls.SuperClass != "" {
		decl.BaseTypes = append(decl.BaseTypes, namedType(cls.SuperClass, cls.Line))
	}
	for _, member := range cls.Members {
		switch mv := member.(type) {
		case *ast.FunctionDeclaration:
			decl.Members = append(decl.Members, m.mapFunctionDeclaration(mv))
		case *ast.VariableDeclaration:
			decl.Members = append(decl.Members, m.mapFieldToProperty(mv)...)
		}
	}
	return decl
}

func (m *ScriptToSharp) mapFieldToProperty(decl *ast.VariableDeclaration) []ast.Declaration {
	var out []ast.Declaration
	for _, d := range decl.Declarators {
		if d.Init != nil {
			m.warn(d.Line, "field %q initializer has no L-stat auto-property equivalent in this subset; dropped", d.Name)
		}
		out = append(out, &ast.PropertyDeclaration{
			Base: ast.Base{Line: d.Line}, Modifiers: []string{"public"}, Type: stringType,
			Name: pascalCaseOf(d.Name), HasGetter: true, HasSetter: true,
		})
	}
	return out
}

func (m *ScriptToSharp) mapBlock(block *ast.BlockStatement) *ast.BlockStatement {
	if block == nil {
		return nil
	}
	out := &ast.BlockStatement{Base: ast.Base{Line: block.Line}}
	for _, s := range block.Statements {
		out.Statements = append(out.Statements, m.mapStatement(s))
	}
	return out
}

// mapStatement maps one script statement to its sharp structural
// equivalent. Unrecognized kinds pass through unchanged (conservative
// pass-through, since both ASTs share the same Go node types for most
// structure-preserving shapes).
func (m *ScriptToSharp) mapStatement(stmt ast.Statement) ast.Statement {
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
		return &ast.ThrowStatement{Base: ast.Base{Line: v.Line}, Value: m.mapExpression(v.Value)}
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
	case *ast.VariableDeclaration:
		return m.mapVariableDeclaration(v)
	case *ast.FunctionDeclaration, *ast.ClassDeclaration:
		// Nested declarations inside a block: leave as a comment-marker
		// expression statement, since sharp local statements cannot
		// directly nest a type or method declaration in this subset.
		m.errorf(stmt.NodeLine(), "nested %s cannot be represented as a sharp local statement", stmt.Kind())
		return &ast.ExpressionStatement{Base: ast.Base{Line: stmt.NodeLine()}, Expr: &ast.Literal{Base: ast.Base{Line: stmt.NodeLine()}, ValueKind: ast.LiteralNull, Raw: "null"}}
	default:
		return stmt
	}
}

// mapVariableDeclaration implements the "first declarator taken, a
// warning records the dropped count" resolution for multi-declarator
// `var`/`let`/`const` statements.
func (m *ScriptToSharp) mapVariableDeclaration(decl *ast.VariableDeclaration) *ast.LocalVariableDeclaration {
	if len(decl.Declarators) == 0 {
		return &ast.LocalVariableDeclaration{Base: ast.Base{Line: decl.Line}}
	}
	first := decl.Declarators[0]
	if len(decl.Declarators) > 1 {
		m.warn(decl.Line, "declaration has %d declarators; only %q was kept, %d were dropped", len(decl.Declarators), first.Name, len(decl.Declarators)-1)
	}
	out := &ast.LocalVariableDeclaration{Base: ast.Base{Line: decl.Line}, Name: first.Name}
	if first.Init != nil {
		out.Init = m.mapExpression(first.Init)
	}
	return out
}

var binaryOpScriptToSharp = map[string]string{
	"===": "==",
	"!==": "!=",
}

func (m *ScriptToSharp) mapExpression(expr ast.Expression) ast.Expression {
	switch v := expr.(type) {
	case *ast.AssignmentExpression:
		return &ast.AssignmentExpression{Base: ast.Base{Line: v.Line}, Operator: v.Operator, Target: m.mapExpression(v.Target), Value: m.mapExpression(v.Value)}
	case *ast.BinaryExpression:
		op := v.Operator
		if mapped, lossy := binaryOpScriptToSharp[op]; lossy {
			m.warn(v.Line, "strict equality operator %q cannot be represented in sharp; lowered to %q", op, mapped)
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
	case *ast.ObjectLiteral:
		// sharp has no object-literal expression; fall back to an
		// array literal of the property values so emission still
		// completes.
		m.errorf(v.Line, "object literal has no sharp equivalent; values carried positionally")
		out := &ast.ArrayLiteral{Base: ast.Base{Line: v.Line}}
		for _, p := range v.Properties {
			out.Elements = append(out.Elements, m.mapExpression(p.Value))
		}
		return out
	default:
		return expr
	}
}
