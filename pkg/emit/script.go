package emit

import "xlate/pkg/ast"

// scriptRewrite maps Console.WriteLine to its L-dyn surrogate when
// emitting script source; every other callee passes through unchanged.
func scriptRewrite(name string) string {
	if name == "Console.WriteLine" {
		return "console.log"
	}
	return name
}

// Script renders prog as script (L-dyn) source text.
func Script(prog *ast.Program) string {
	p := newPrinter()
	for _, stmt := range prog.Body {
		printScriptStatement(p, stmt)
	}
	return p.String()
}

func printScriptStatement(p *printer, stmt ast.Statement) {
	switch v := stmt.(type) {
	case *ast.FunctionDeclaration:
		printScriptFunction(p, v)
	case *ast.ClassDeclaration:
		printScriptClass(p, v)
	case *ast.VariableDeclaration:
		p.line(renderScriptVarDecl(v) + ";")
	case *ast.BlockStatement:
		printScriptBlock(p, v)
	case *ast.IfStatement:
		printScriptIf(p, v)
	case *ast.WhileStatement:
		p.line("while (" + renderExpr(v.Condition, scriptRewrite) + ") {")
		p.indent()
		printScriptStatement(p, v.Body)
		p.unindent()
		p.line("}")
	case *ast.ForStatement:
		p.line("for (" + renderScriptForClauses(v) + ") {")
		p.indent()
		printScriptStatement(p, v.Body)
		p.unindent()
		p.line("}")
	case *ast.SwitchStatement:
		printScriptSwitch(p, v)
	case *ast.ReturnStatement:
		if v.Value != nil {
			p.line("return " + renderExpr(v.Value, scriptRewrite) + ";")
		} else {
			p.line("return;")
		}
	case *ast.ThrowStatement:
		p.line("throw " + renderExpr(v.Value, scriptRewrite) + ";")
	case *ast.BreakStatement:
		p.line("break;")
	case *ast.ContinueStatement:
		p.line("continue;")
	case *ast.TryStatement:
		printScriptTry(p, v)
	case *ast.ExpressionStatement:
		p.line(renderExpr(v.Expr, scriptRewrite) + ";")
	default:
	}
}

func printScriptBlock(p *printer, block *ast.BlockStatement) {
	p.line("{")
	p.indent()
	for _, s := range block.Statements {
		printScriptStatement(p, s)
	}
	p.unindent()
	p.line("}")
}

func printScriptFunction(p *printer, fn *ast.FunctionDeclaration) {
	names := make([]string, len(fn.Params))
	for i, param := range fn.Params {
		names[i] = param.Name
	}
	p.line("function " + fn.Name + "(" + joinComma(names) + ") {")
	p.indent()
	if fn.Body != nil {
		for _, s := range fn.Body.Statements {
			printScriptStatement(p, s)
		}
	}
	p.unindent()
	p.line("}")
}

func printScriptClass(p *printer, cls *ast.ClassDeclaration) {
	header := "class " + cls.Name
	if cls.SuperClass != "" {
		header += " extends " + cls.SuperClass
	}
	p.line(header + " {")
	p.indent()
	for _, member := range cls.Members {
		switch mv := member.(type) {
		case *ast.FunctionDeclaration:
			names := make([]string, len(mv.Params))
			for i, param := range mv.Params {
				names[i] = param.Name
			}
			p.line(mv.Name + "(" + joinComma(names) + ") {")
			p.indent()
			if mv.Body != nil {
				for _, s := range mv.Body.Statements {
					printScriptStatement(p, s)
				}
			}
			p.unindent()
			p.line("}")
		case *ast.VariableDeclaration:
			for _, d := range mv.Declarators {
				if d.Init != nil {
					p.line(d.Name + " = " + renderExpr(d.Init, scriptRewrite) + ";")
				} else {
					p.line(d.Name + ";")
				}
			}
		}
	}
	p.unindent()
	p.line("}")
}

func renderScriptVarDecl(decl *ast.VariableDeclaration) string {
	kind := decl.DeclKind
	if kind == "" {
		kind = "let"
	}
	parts := make([]string, len(decl.Declarators))
	for i, d := range decl.Declarators {
		if d.Init != nil {
			parts[i] = d.Name + " = " + renderExpr(d.Init, scriptRewrite)
		} else {
			parts[i] = d.Name
		}
	}
	return kind + " " + joinComma(parts)
}

func renderScriptForClauses(v *ast.ForStatement) string {
	init := ""
	if decl, ok := v.Init.(*ast.VariableDeclaration); ok {
		init = renderScriptVarDecl(decl)
	} else if es, ok := v.Init.(*ast.ExpressionStatement); ok {
		init = renderExpr(es.Expr, scriptRewrite)
	}
	cond := ""
	if v.Condition != nil {
		cond = renderExpr(v.Condition, scriptRewrite)
	}
	post := ""
	if v.Post != nil {
		post = renderExpr(v.Post, scriptRewrite)
	}
	return init + "; " + cond + "; " + post
}

func printScriptIf(p *printer, v *ast.IfStatement) {
	p.line("if (" + renderExpr(v.Condition, scriptRewrite) + ") {")
	p.indent()
	printScriptStatement(p, v.Then)
	p.unindent()
	if v.Else != nil {
		p.line("} else {")
		p.indent()
		printScriptStatement(p, v.Else)
		p.unindent()
	}
	p.line("}")
}

func printScriptSwitch(p *printer, v *ast.SwitchStatement) {
	p.line("switch (" + renderExpr(v.Discriminant, scriptRewrite) + ") {")
	p.indent()
	for _, c := range v.Cases {
		if c.Test != nil {
			p.line("case " + renderExpr(c.Test, scriptRewrite) + ":")
		} else {
			p.line("default:")
		}
		p.indent()
		for _, s := range c.Body {
			printScriptStatement(p, s)
		}
		p.unindent()
	}
	p.unindent()
	p.line("}")
}

func printScriptTry(p *printer, v *ast.TryStatement) {
	p.line("try {")
	p.indent()
	for _, s := range v.TryBlock.Statements {
		printScriptStatement(p, s)
	}
	p.unindent()
	if v.CatchBlock != nil {
		if v.CatchParam != "" {
			p.line("} catch (" + v.CatchParam + ") {")
		} else {
			p.line("} catch {")
		}
		p.indent()
		for _, s := range v.CatchBlock.Statements {
			printScriptStatement(p, s)
		}
		p.unindent()
	}
	if v.FinallyBlock != nil {
		p.line("} finally {")
		p.indent()
		for _, s := range v.FinallyBlock.Statements {
			printScriptStatement(p, s)
		}
		p.unindent()
	}
	p.line("}")
}

func joinComma(parts []string) string {
	out := ""
	for i, s := range parts {
		if i > 0 {
			out += ", "
		}
		out += s
	}
	return out
}
