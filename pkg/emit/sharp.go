package emit

import "xlate/pkg/ast"

// sharpRewrite maps console.log to its L-stat surrogate when emitting
// sharp source; every other callee passes through unchanged.
func sharpRewrite(name string) string {
	if name == "console.log" {
		return "Console.WriteLine"
	}
	return name
}

// Sharp renders unit as sharp (L-stat) source text. Bare top-level
// statements are wrapped in a generated Program.Main only when present;
// a unit whose top level is entirely type declarations is emitted
// without any Main scaffolding at all.
func Sharp(unit *ast.CompilationUnit) string {
	p := newPrinter()
	for _, u := range unit.Usings {
		p.line("using " + u.Name + ";")
	}
	if len(unit.Usings) > 0 {
		p.raw("\n")
	}

	var typeDecls, bareMembers []ast.Declaration
	for _, member := range unit.Members {
		switch member.(type) {
		case *ast.NamespaceDeclaration, *ast.TypeDeclaration:
			typeDecls = append(typeDecls, member)
		default:
			bareMembers = append(bareMembers, member)
		}
	}
	for _, member := range typeDecls {
		printSharpDeclaration(p, member)
	}

	// Bare top-level methods/fields and bare executable statements have
	// no standalone C#-like surface form; both are hosted on a single
	// generated Program class, with statements folded into its Main.
	if len(bareMembers) > 0 || len(unit.Statements) > 0 {
		printSharpProgramWrapper(p, bareMembers, unit.Statements)
	}
	return p.String()
}

func printSharpProgramWrapper(p *printer, bareMembers []ast.Declaration, stmts []ast.Statement) {
	p.line("using System;")
	p.raw("\n")
	p.line("public class Program")
	p.line("{")
	p.indent()
	for _, member := range bareMembers {
		printSharpDeclaration(p, member)
	}
	if len(stmts) > 0 {
		p.line("public static void Main(string[] args)")
		p.line("{")
		p.indent()
		for _, s := range stmts {
			printSharpStatement(p, s)
		}
		p.unindent()
		p.line("}")
	}
	p.unindent()
	p.line("}")
}

func printSharpDeclaration(p *printer, decl ast.Declaration) {
	switch v := decl.(type) {
	case *ast.NamespaceDeclaration:
		p.line("namespace " + v.Name)
		p.line("{")
		p.indent()
		for _, member := range v.Members {
			printSharpDeclaration(p, member)
		}
		p.unindent()
		p.line("}")
	case *ast.TypeDeclaration:
		printSharpTypeDeclaration(p, v)
	case *ast.MethodDeclaration:
		printSharpMethod(p, v)
	case *ast.ConstructorDeclaration:
		printSharpConstructor(p, v)
	case *ast.PropertyDeclaration:
		printSharpProperty(p, v)
	case *ast.EventDeclaration:
		p.line(modifierPrefix(v.Modifiers) + "event " + renderNamedType(v.Type) + " " + v.Name + ";")
	default:
	}
}

func printSharpTypeDeclaration(p *printer, v *ast.TypeDeclaration) {
	header := modifierPrefix(v.Modifiers) + v.DeclKind.String() + " " + v.Name
	if len(v.TypeParameters) > 0 {
		names := make([]string, len(v.TypeParameters))
		for i, tp := range v.TypeParameters {
			names[i] = tp.Name
		}
		header += "<" + joinComma(names) + ">"
	}
	if len(v.BaseTypes) > 0 {
		names := make([]string, len(v.BaseTypes))
		for i, bt := range v.BaseTypes {
			names[i] = renderNamedType(bt)
		}
		header += " : " + joinComma(names)
	}
	p.line(header)
	p.line("{")
	p.indent()
	if v.DeclKind == ast.TypeDeclEnum {
		for i, member := range v.EnumMembers {
			suffix := ","
			if i == len(v.EnumMembers)-1 {
				suffix = ""
			}
			p.line(member + suffix)
		}
	} else {
		for _, member := range v.Members {
			printSharpDeclaration(p, member)
		}
	}
	p.unindent()
	p.line("}")
}

func printSharpMethod(p *printer, v *ast.MethodDeclaration) {
	params := renderSharpParams(v.Parameters)
	header := modifierPrefix(v.Modifiers) + renderNamedType(v.ReturnType) + " " + v.Name
	if len(v.TypeParameters) > 0 {
		names := make([]string, len(v.TypeParameters))
		for i, tp := range v.TypeParameters {
			names[i] = tp.Name
		}
		header += "<" + joinComma(names) + ">"
	}
	header += "(" + params + ")"
	if v.Body == nil {
		p.line(header + ";")
		return
	}
	p.line(header)
	p.line("{")
	p.indent()
	for _, s := range v.Body.Statements {
		printSharpStatement(p, s)
	}
	p.unindent()
	p.line("}")
}

func printSharpConstructor(p *printer, v *ast.ConstructorDeclaration) {
	header := modifierPrefix(v.Modifiers) + v.Name + "(" + renderSharpParams(v.Parameters) + ")"
	p.line(header)
	p.line("{")
	p.indent()
	if v.Body != nil {
		for _, s := range v.Body.Statements {
			printSharpStatement(p, s)
		}
	}
	p.unindent()
	p.line("}")
}

func printSharpProperty(p *printer, v *ast.PropertyDeclaration) {
	header := modifierPrefix(v.Modifiers) + renderNamedType(v.Type) + " " + v.Name
	if v.GetterBody == nil && v.SetterBody == nil {
		accessors := ""
		if v.HasGetter {
			accessors += "get; "
		}
		if v.HasSetter {
			accessors += "set; "
		}
		p.line(header + " { " + accessors + "}")
		return
	}
	p.line(header)
	p.line("{")
	p.indent()
	if v.HasGetter {
		if v.GetterBody != nil {
			p.line("get")
			p.line("{")
			p.indent()
			for _, s := range v.GetterBody.Statements {
				printSharpStatement(p, s)
			}
			p.unindent()
			p.line("}")
		} else {
			p.line("get;")
		}
	}
	if v.HasSetter {
		if v.SetterBody != nil {
			p.line("set")
			p.line("{")
			p.indent()
			for _, s := range v.SetterBody.Statements {
				printSharpStatement(p, s)
			}
			p.unindent()
			p.line("}")
		} else {
			p.line("set;")
		}
	}
	p.unindent()
	p.line("}")
}

func renderSharpParams(params []*ast.Parameter) string {
	parts := make([]string, len(params))
	for i, param := range params {
		prefix := ""
		for _, mod := range param.Modifiers {
			prefix += mod + " "
		}
		typ := "var"
		if param.Type != nil {
			typ = renderNamedType(param.Type)
		}
		parts[i] = prefix + typ + " " + param.Name
	}
	return joinComma(parts)
}

func renderNamedType(t *ast.NamedType) string {
	if t == nil {
		return "void"
	}
	name := t.Name.String()
	if len(t.TypeArguments) > 0 {
		args := make([]string, len(t.TypeArguments))
		for i, a := range t.TypeArguments {
			args[i] = renderNamedType(a)
		}
		name += "<" + joinComma(args) + ">"
	}
	return name
}

func modifierPrefix(modifiers []string) string {
	out := ""
	for _, mod := range modifiers {
		out += mod + " "
	}
	return out
}

func printSharpStatement(p *printer, stmt ast.Statement) {
	switch v := stmt.(type) {
	case *ast.BlockStatement:
		p.line("{")
		p.indent()
		for _, s := range v.Statements {
			printSharpStatement(p, s)
		}
		p.unindent()
		p.line("}")
	case *ast.IfStatement:
		p.line("if (" + renderExpr(v.Condition, sharpRewrite) + ")")
		p.line("{")
		p.indent()
		printSharpStatement(p, v.Then)
		p.unindent()
		if v.Else != nil {
			p.line("}")
			p.line("else")
			p.line("{")
			p.indent()
			printSharpStatement(p, v.Else)
			p.unindent()
		}
		p.line("}")
	case *ast.WhileStatement:
		p.line("while (" + renderExpr(v.Condition, sharpRewrite) + ")")
		p.line("{")
		p.indent()
		printSharpStatement(p, v.Body)
		p.unindent()
		p.line("}")
	case *ast.DoWhileStatement:
		p.line("do")
		p.line("{")
		p.indent()
		printSharpStatement(p, v.Body)
		p.unindent()
		p.line("} while (" + renderExpr(v.Condition, sharpRewrite) + ");")
	case *ast.ForStatement:
		p.line("for (" + renderSharpForClauses(v) + ")")
		p.line("{")
		p.indent()
		printSharpStatement(p, v.Body)
		p.unindent()
		p.line("}")
	case *ast.ForEachStatement:
		typ := "var"
		if v.ElementType != nil {
			typ = renderNamedType(v.ElementType)
		}
		p.line("foreach (" + typ + " " + v.Name + " in " + renderExpr(v.Collection, sharpRewrite) + ")")
		p.line("{")
		p.indent()
		printSharpStatement(p, v.Body)
		p.unindent()
		p.line("}")
	case *ast.SwitchStatement:
		p.line("switch (" + renderExpr(v.Discriminant, sharpRewrite) + ")")
		p.line("{")
		p.indent()
		for _, c := range v.Cases {
			if c.Test != nil {
				p.line("case " + renderExpr(c.Test, sharpRewrite) + ":")
			} else {
				p.line("default:")
			}
			p.indent()
			for _, s := range c.Body {
				printSharpStatement(p, s)
			}
			p.unindent()
		}
		p.unindent()
		p.line("}")
	case *ast.ReturnStatement:
		if v.Value != nil {
			p.line("return " + renderExpr(v.Value, sharpRewrite) + ";")
		} else {
			p.line("return;")
		}
	case *ast.ThrowStatement:
		p.line("throw " + renderExpr(v.Value, sharpRewrite) + ";")
	case *ast.BreakStatement:
		p.line("break;")
	case *ast.ContinueStatement:
		p.line("continue;")
	case *ast.TryStatement:
		p.line("try")
		p.line("{")
		p.indent()
		for _, s := range v.TryBlock.Statements {
			printSharpStatement(p, s)
		}
		p.unindent()
		if v.CatchBlock != nil {
			p.line("}")
			if v.CatchParam != "" {
				p.line("catch (Exception " + v.CatchParam + ")")
			} else {
				p.line("catch")
			}
			p.line("{")
			p.indent()
			for _, s := range v.CatchBlock.Statements {
				printSharpStatement(p, s)
			}
			p.unindent()
		}
		if v.FinallyBlock != nil {
			p.line("}")
			p.line("finally")
			p.line("{")
			p.indent()
			for _, s := range v.FinallyBlock.Statements {
				printSharpStatement(p, s)
			}
			p.unindent()
		}
		p.line("}")
	case *ast.ExpressionStatement:
		p.line(renderExpr(v.Expr, sharpRewrite) + ";")
	case *ast.LocalVariableDeclaration:
		typ := "var"
		if v.DeclaredType != nil {
			if nt, ok := v.DeclaredType.(*ast.NamedType); ok {
				typ = renderNamedType(nt)
			}
		}
		if v.Init != nil {
			p.line(typ + " " + v.Name + " = " + renderExpr(v.Init, sharpRewrite) + ";")
		} else {
			p.line(typ + " " + v.Name + ";")
		}
	default:
	}
}

func renderSharpForClauses(v *ast.ForStatement) string {
	init := ""
	if lv, ok := v.Init.(*ast.LocalVariableDeclaration); ok {
		typ := "var"
		if lv.DeclaredType != nil {
			if nt, ok := lv.DeclaredType.(*ast.NamedType); ok {
				typ = renderNamedType(nt)
			}
		}
		init = typ + " " + lv.Name
		if lv.Init != nil {
			init += " = " + renderExpr(lv.Init, sharpRewrite)
		}
	} else if es, ok := v.Init.(*ast.ExpressionStatement); ok {
		init = renderExpr(es.Expr, sharpRewrite)
	}
	cond := ""
	if v.Condition != nil {
		cond = renderExpr(v.Condition, sharpRewrite)
	}
	post := ""
	if v.Post != nil {
		post = renderExpr(v.Post, sharpRewrite)
	}
	return init + "; " + cond + "; " + post
}
