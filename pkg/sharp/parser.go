package sharp

import (
	"xlate/pkg/ast"
	"xlate/pkg/diag"
	"xlate/pkg/metrics"
	"xlate/pkg/source"
)

// Parser is a hand-written recursive-descent parser over a TokenStream,
// producing an *ast.CompilationUnit and a list of diagnostics. Every
// production increments the metrics sink's AST-node counter.
type Parser struct {
	ts    *TokenStream
	sink  *metrics.Sink
	src   *source.File
	diags []diag.Diagnostic

	recoveryBudget int
	recoveries     int
}

// NewParser creates a Parser over ts, recording metrics into sink.
func NewParser(ts *TokenStream, sink *metrics.Sink, src *source.File) *Parser {
	return &Parser{ts: ts, sink: sink, src: src}
}

// SetRecoveryBudget caps how many times synchronize may run before the
// parser gives up on further recovery and fast-forwards to the end of
// input instead. Zero (the default) means unlimited.
func (p *Parser) SetRecoveryBudget(n int) {
	p.recoveryBudget = n
}

func (p *Parser) node() { p.sink.NodeCreated() }

func (p *Parser) cur() Token       { return p.ts.Peek() }
func (p *Parser) peek() Token      { return p.ts.PeekAt(1) }
func (p *Parser) peekAt(n int) Token { return p.ts.PeekAt(n) }

func (p *Parser) addError(tok Token, format string, args ...interface{}) {
	p.diags = append(p.diags, diag.New(diag.TypeSyntax, tok.Line, tok.Column, format, args...))
}

func (p *Parser) addWarning(tok Token, format string, args ...interface{}) {
	p.diags = append(p.diags, diag.NewWarning(diag.TypeSyntax, tok.Line, tok.Column, format, args...))
}

func (p *Parser) consume(t TokenType, msg string) (Token, bool) {
	if p.cur().Type == t {
		return p.ts.Advance(), true
	}
	p.addError(p.cur(), "%s (got %s %q)", msg, p.cur().Type, p.cur().Literal)
	return p.cur(), false
}

// statementFirstSet mirrors the script parser's recovery boundary, plus
// the sharp-only control-flow and declaration keywords.
func statementFirstSet(t TokenType) bool {
	switch t {
	case VAR, CLASS, STRUCT, INTERFACE, ENUM, NAMESPACE, USING,
		IF, WHILE, DO, FOR, FOREACH, SWITCH,
		RETURN, THROW, BREAK, CONTINUE, TRY, LBRACE, RBRACE, EOF:
		return true
	default:
		return false
	}
}

func (p *Parser) synchronize() {
	p.sink.RecoveryRan()
	p.recoveries++
	if p.recoveryBudget > 0 && p.recoveries > p.recoveryBudget {
		p.addError(p.cur(), "error recovery budget exhausted, giving up on the rest of input")
		for p.cur().Type != EOF {
			p.ts.Advance()
		}
		return
	}
	for {
		t := p.cur().Type
		if t == EOF {
			return
		}
		if t == SEMICOLON {
			p.ts.Advance()
			return
		}
		if statementFirstSet(t) {
			return
		}
		p.ts.Advance()
	}
}

// ParseCompilationUnit parses the whole token stream into a unit.
func (p *Parser) ParseCompilationUnit() (*ast.CompilationUnit, []diag.Diagnostic) {
	p.sink.StartParse()
	p.sink.TokensProcessed = p.ts.NonEOFCount()

	unit := &ast.CompilationUnit{Base: ast.Base{Line: p.cur().Line}}
	p.node()

	for p.cur().Type == USING {
		unit.Usings = append(unit.Usings, p.parseUsingDirective())
	}

	for p.cur().Type != EOF {
		switch {
		case p.cur().Type == NAMESPACE:
			unit.Members = append(unit.Members, p.parseNamespaceDeclaration())
		case p.isTypeDeclStart():
			unit.Members = append(unit.Members, p.parseTypeDeclaration())
		case p.cur().Type == USING:
			unit.Usings = append(unit.Usings, p.parseUsingDirective())
		default:
			if stmt := p.parseStatement(); stmt != nil {
				unit.Statements = append(unit.Statements, stmt)
			}
		}
	}

	p.sink.StopParse()
	errs, warns := countSeverities(p.diags)
	p.sink.RecordDiagnosticCounts(errs, warns)
	return unit, p.diags
}

func countSeverities(diags []diag.Diagnostic) (errors, warnings int) {
	for _, d := range diags {
		switch d.Severity {
		case diag.SeverityError:
			errors++
		case diag.SeverityWarning:
			warnings++
		}
	}
	return
}

func (p *Parser) isTypeDeclStart() bool {
	i := 0
	for modifierKeywords[p.peekAt(i).Type] != "" {
		i++
	}
	switch p.peekAt(i).Type {
	case CLASS, STRUCT, INTERFACE, ENUM:
		return true
	default:
		return false
	}
}

func (p *Parser) parseUsingDirective() *ast.UsingDirective {
	tok := p.ts.Advance() // 'using'
	u := &ast.UsingDirective{Base: ast.Base{Line: tok.Line}}
	p.node()
	u.Name = p.parseDottedName()
	p.consume(SEMICOLON, "expected ';' after using directive")
	return u
}

// parseDottedName consumes `IDENT ('.' IDENT)*` and returns it joined
// with dots, for using-directives and namespace names.
func (p *Parser) parseDottedName() string {
	nameTok, ok := p.consume(IDENT, "expected a name")
	if !ok {
		return ""
	}
	name := nameTok.Literal
	for p.cur().Type == DOT {
		p.ts.Advance()
		if partTok, ok := p.consume(IDENT, "expected identifier after '.'"); ok {
			name += "." + partTok.Literal
		}
	}
	return name
}

func (p *Parser) parseNamespaceDeclaration() *ast.NamespaceDeclaration {
	tok := p.ts.Advance() // 'namespace'
	ns := &ast.NamespaceDeclaration{Base: ast.Base{Line: tok.Line}}
	p.node()
	ns.Name = p.parseDottedName()
	if _, ok := p.consume(LBRACE, "expected '{' to start namespace body"); !ok {
		p.synchronize()
		return ns
	}
	for p.cur().Type != RBRACE && p.cur().Type != EOF {
		switch {
		case p.cur().Type == NAMESPACE:
			ns.Members = append(ns.Members, p.parseNamespaceDeclaration())
		case p.isTypeDeclStart():
			ns.Members = append(ns.Members, p.parseTypeDeclaration())
		default:
			p.addError(p.cur(), "expected a type or namespace declaration")
			p.synchronize()
		}
	}
	p.consume(RBRACE, "expected '}' to close namespace body")
	return ns
}

// --- Type declarations ---------------------------------------------------

func (p *Parser) parseModifiers() []string {
	var mods []string
	for {
		name, ok := modifierKeywords[p.cur().Type]
		if !ok {
			return mods
		}
		mods = append(mods, name)
		p.ts.Advance()
	}
}

func (p *Parser) parseTypeDeclaration() *ast.TypeDeclaration {
	decl := &ast.TypeDeclaration{Base: ast.Base{Line: p.cur().Line}}
	p.node()
	decl.Modifiers = p.parseModifiers()

	switch p.cur().Type {
	case CLASS:
		decl.DeclKind = ast.TypeDeclClass
	case STRUCT:
		decl.DeclKind = ast.TypeDeclStruct
	case INTERFACE:
		decl.DeclKind = ast.TypeDeclInterface
	case ENUM:
		decl.DeclKind = ast.TypeDeclEnum
	default:
		p.addError(p.cur(), "expected 'class', 'struct', 'interface', or 'enum'")
		p.synchronize()
		return decl
	}
	p.ts.Advance()

	if nameTok, ok := p.consume(IDENT, "expected a type name"); ok {
		decl.Name = nameTok.Literal
	}

	if decl.DeclKind != ast.TypeDeclEnum && p.cur().Type == LT {
		decl.TypeParameters = p.parseTypeParameterList()
	}

	if p.cur().Type == COLON {
		p.ts.Advance()
		decl.BaseTypes = append(decl.BaseTypes, p.parseNamedType())
		for p.cur().Type == COMMA {
			p.ts.Advance()
			decl.BaseTypes = append(decl.BaseTypes, p.parseNamedType())
		}
	}

	for p.cur().Type == WHERE {
		p.parseTypeParameterConstraint(decl.TypeParameters)
	}

	if _, ok := p.consume(LBRACE, "expected '{' to start type body"); !ok {
		p.synchronize()
		return decl
	}

	if decl.DeclKind == ast.TypeDeclEnum {
		decl.EnumMembers = p.parseEnumMemberList()
	} else {
		for p.cur().Type != RBRACE && p.cur().Type != EOF {
			decl.Members = append(decl.Members, p.parseTypeMember())
		}
	}
	p.consume(RBRACE, "expected '}' to close type body")
	return decl
}

func (p *Parser) parseEnumMemberList() []string {
	var members []string
	for p.cur().Type != RBRACE && p.cur().Type != EOF {
		nameTok, ok := p.consume(IDENT, "expected enum member name")
		if !ok {
			p.synchronize()
			break
		}
		members = append(members, nameTok.Literal)
		if p.cur().Type == ASSIGN {
			p.ts.Advance()
			p.parseExpression() // explicit enum value, not retained
		}
		if p.cur().Type == COMMA {
			p.ts.Advance()
			continue
		}
		break
	}
	return members
}

func (p *Parser) parseTypeParameterList() []*ast.TypeParameter {
	p.ts.Advance() // '<'
	var params []*ast.TypeParameter
	for p.cur().Type != GT && p.cur().Type != EOF {
		nameTok, ok := p.consume(IDENT, "expected a type parameter name")
		if !ok {
			break
		}
		tp := &ast.TypeParameter{Base: ast.Base{Line: nameTok.Line}, Name: nameTok.Literal}
		p.node()
		params = append(params, tp)
		if p.cur().Type == COMMA {
			p.ts.Advance()
			continue
		}
		break
	}
	p.consume(GT, "expected '>' to close type parameter list")
	return params
}

// parseTypeParameterConstraint parses one `where T : Base1, Base2`
// clause and attaches the constraints to the matching type parameter.
func (p *Parser) parseTypeParameterConstraint(params []*ast.TypeParameter) {
	p.ts.Advance() // 'where'
	nameTok, ok := p.consume(IDENT, "expected a type parameter name in constraint clause")
	if !ok {
		p.synchronize()
		return
	}
	p.consume(COLON, "expected ':' in constraint clause")
	var constraints []*ast.NamedType
	constraints = append(constraints, p.parseNamedType())
	for p.cur().Type == COMMA {
		p.ts.Advance()
		constraints = append(constraints, p.parseNamedType())
	}
	for _, tp := range params {
		if tp.Name == nameTok.Literal {
			tp.Constraints = append(tp.Constraints, constraints...)
		}
	}
}

// parseTypeMember disambiguates a class/struct/interface member: an
// identifier immediately followed by '(' is a constructor; 'event'
// starts an event; otherwise a type precedes the member name, and a
// following '(' makes it a method while '{' or ';' makes it a property.
func (p *Parser) parseTypeMember() ast.Declaration {
	mods := p.parseModifiers()

	if p.cur().Type == EVENT {
		return p.parseEventDeclaration(mods)
	}
	if p.cur().Type == IDENT && p.peek().Type == LPAREN {
		return p.parseConstructorDeclaration(mods)
	}

	typ := p.parseNamedType()

	var typeParams []*ast.TypeParameter
	nameTok, ok := p.consume(IDENT, "expected a member name")
	if !ok {
		p.synchronize()
		return &ast.PropertyDeclaration{Base: ast.Base{Line: nameTok.Line}, Modifiers: mods, Type: typ, Name: nameTok.Literal}
	}

	if p.cur().Type == LT {
		typeParams = p.parseTypeParameterList()
	}

	switch p.cur().Type {
	case LPAREN:
		method := &ast.MethodDeclaration{
			Base: ast.Base{Line: nameTok.Line}, Modifiers: mods, ReturnType: typ,
			Name: nameTok.Literal, TypeParameters: typeParams,
		}
		p.node()
		method.Parameters = p.parseParameterList()
		if p.cur().Type == LBRACE {
			method.Body = p.parseBlockStatement()
		} else {
			p.consume(SEMICOLON, "expected ';' after abstract/interface method signature")
		}
		return method
	case LBRACE:
		return p.parsePropertyAccessors(mods, typ, nameTok)
	default:
		prop := &ast.PropertyDeclaration{Base: ast.Base{Line: nameTok.Line}, Modifiers: mods, Type: typ, Name: nameTok.Literal, HasGetter: true, HasSetter: true}
		p.node()
		if p.cur().Type == ASSIGN {
			p.ts.Advance()
			p.parseExpression() // field initializer, not retained on the node
		}
		p.consume(SEMICOLON, "expected ';' after field declaration")
		return prop
	}
}

func (p *Parser) parsePropertyAccessors(mods []string, typ *ast.NamedType, nameTok Token) *ast.PropertyDeclaration {
	prop := &ast.PropertyDeclaration{Base: ast.Base{Line: nameTok.Line}, Modifiers: mods, Type: typ, Name: nameTok.Literal}
	p.node()
	p.ts.Advance() // '{'
	for p.cur().Type != RBRACE && p.cur().Type != EOF {
		switch p.cur().Type {
		case GET:
			p.ts.Advance()
			prop.HasGetter = true
			if p.cur().Type == LBRACE {
				prop.GetterBody = p.parseBlockStatement()
			} else {
				p.consume(SEMICOLON, "expected ';' after auto-implemented getter")
			}
		case SET:
			p.ts.Advance()
			prop.HasSetter = true
			if p.cur().Type == LBRACE {
				prop.SetterBody = p.parseBlockStatement()
			} else {
				p.consume(SEMICOLON, "expected ';' after auto-implemented setter")
			}
		default:
			p.addError(p.cur(), "expected 'get' or 'set' in property accessor list")
			p.synchronize()
		}
	}
	p.consume(RBRACE, "expected '}' to close property accessor list")
	return prop
}

func (p *Parser) parseConstructorDeclaration(mods []string) *ast.ConstructorDeclaration {
	nameTok, _ := p.consume(IDENT, "expected constructor name")
	ctor := &ast.ConstructorDeclaration{Base: ast.Base{Line: nameTok.Line}, Modifiers: mods, Name: nameTok.Literal}
	p.node()
	ctor.Parameters = p.parseParameterList()
	ctor.Body = p.parseBlockStatement()
	return ctor
}

func (p *Parser) parseEventDeclaration(mods []string) *ast.EventDeclaration {
	tok := p.ts.Advance() // 'event'
	ev := &ast.EventDeclaration{Base: ast.Base{Line: tok.Line}, Modifiers: mods}
	p.node()
	ev.Type = p.parseNamedType()
	if nameTok, ok := p.consume(IDENT, "expected event name"); ok {
		ev.Name = nameTok.Literal
	}
	p.consume(SEMICOLON, "expected ';' after event declaration")
	return ev
}

// --- Types -----------------------------------------------------------

func (p *Parser) parseNamedType() *ast.NamedType {
	tok := p.cur()
	if name := builtinTypeName(tok.Type); name != "" {
		p.ts.Advance()
		qn := &ast.QualifiedName{Base: ast.Base{Line: tok.Line}, Parts: []string{name}}
		p.node()
		nt := &ast.NamedType{Base: ast.Base{Line: tok.Line}, Name: qn}
		p.node()
		return nt
	}
	qn := &ast.QualifiedName{Base: ast.Base{Line: tok.Line}}
	p.node()
	if nameTok, ok := p.consume(IDENT, "expected a type name"); ok {
		qn.Parts = append(qn.Parts, nameTok.Literal)
	}
	for p.cur().Type == DOT {
		p.ts.Advance()
		if partTok, ok := p.consume(IDENT, "expected identifier after '.'"); ok {
			qn.Parts = append(qn.Parts, partTok.Literal)
		}
	}
	nt := &ast.NamedType{Base: ast.Base{Line: tok.Line}, Name: qn}
	p.node()
	if p.cur().Type == LT {
		p.ts.Advance()
		nt.TypeArguments = append(nt.TypeArguments, p.parseNamedType())
		for p.cur().Type == COMMA {
			p.ts.Advance()
			nt.TypeArguments = append(nt.TypeArguments, p.parseNamedType())
		}
		p.consume(GT, "expected '>' to close generic type argument list")
	}
	return nt
}

func (p *Parser) parseParameterList() []*ast.Parameter {
	if _, ok := p.consume(LPAREN, "expected '(' to start parameter list"); !ok {
		return nil
	}
	var params []*ast.Parameter
	for p.cur().Type != RPAREN && p.cur().Type != EOF {
		param := &ast.Parameter{Base: ast.Base{Line: p.cur().Line}}
		p.node()
		for p.cur().Type == REF || p.cur().Type == OUT || p.cur().Type == PARAMS {
			param.Modifiers = append(param.Modifiers, string(p.ts.Advance().Type))
		}
		param.Type = p.parseNamedType()
		if nameTok, ok := p.consume(IDENT, "expected parameter name"); ok {
			param.Name = nameTok.Literal
		}
		if p.cur().Type == ASSIGN {
			p.ts.Advance()
			p.parseExpression() // default value, not retained on the node
		}
		params = append(params, param)
		if p.cur().Type == COMMA {
			p.ts.Advance()
			continue
		}
		break
	}
	p.consume(RPAREN, "expected ')' after parameters")
	return params
}

// --- Statements --------------------------------------------------------

func (p *Parser) parseStatement() ast.Statement {
	switch p.cur().Type {
	case VAR:
		return p.parseLocalVariableDeclaration()
	case IF:
		return p.parseIfStatement()
	case WHILE:
		return p.parseWhileStatement()
	case DO:
		return p.parseDoWhileStatement()
	case FOR:
		return p.parseForStatement()
	case FOREACH:
		return p.parseForEachStatement()
	case SWITCH:
		return p.parseSwitchStatement()
	case RETURN:
		return p.parseReturnStatement()
	case THROW:
		return p.parseThrowStatement()
	case BREAK:
		return p.parseBreakStatement()
	case CONTINUE:
		return p.parseContinueStatement()
	case TRY:
		return p.parseTryStatement()
	case LBRACE:
		return p.parseBlockStatement()
	case SEMICOLON:
		p.ts.Advance()
		return nil
	case EOF, RBRACE:
		return nil
	default:
		if p.looksLikeLocalDeclaration() {
			return p.parseLocalVariableDeclaration()
		}
		return p.parseExpressionStatement()
	}
}

// looksLikeLocalDeclaration performs bounded lookahead (no backtracking
// needed since the stream is fully buffered) to tell a typed local
// declaration (`Foo bar = 1;`, `List<int> xs;`) apart from an
// expression statement that merely starts with an identifier
// (`foo();`, `foo = 1;`).
func (p *Parser) looksLikeLocalDeclaration() bool {
	if builtinTypeKeywords[p.cur().Type] {
		return true
	}
	if p.cur().Type != IDENT {
		return false
	}
	i := 1
	if p.peekAt(i).Type == LT {
		depth := 1
		i++
		for depth > 0 {
			switch p.peekAt(i).Type {
			case LT:
				depth++
			case GT:
				depth--
			case EOF, SEMICOLON:
				return false
			}
			i++
		}
	}
	for p.peekAt(i).Type == DOT {
		i++
		if p.peekAt(i).Type != IDENT {
			return false
		}
		i++
	}
	if p.peekAt(i).Type != IDENT {
		return false
	}
	next := p.peekAt(i + 1).Type
	return next == ASSIGN || next == SEMICOLON
}

func (p *Parser) parseLocalVariableDeclaration() *ast.LocalVariableDeclaration {
	tok := p.cur()
	decl := &ast.LocalVariableDeclaration{Base: ast.Base{Line: tok.Line}}
	p.node()
	if p.cur().Type == VAR {
		p.ts.Advance()
	} else {
		decl.DeclaredType = p.parseNamedType()
	}
	if nameTok, ok := p.consume(IDENT, "expected variable name"); ok {
		decl.Name = nameTok.Literal
	}
	if p.cur().Type == ASSIGN {
		p.ts.Advance()
		decl.Init = p.parseExpression()
	} else if decl.DeclaredType == nil {
		p.addError(tok, "an implicitly-typed 'var' declaration must have an initializer")
	}
	p.consume(SEMICOLON, "expected ';' after local variable declaration")
	return decl
}

func (p *Parser) parseBlockStatement() *ast.BlockStatement {
	tok, ok := p.consume(LBRACE, "expected '{'")
	block := &ast.BlockStatement{Base: ast.Base{Line: tok.Line}}
	p.node()
	if !ok {
		p.synchronize()
		return block
	}
	for p.cur().Type != RBRACE && p.cur().Type != EOF {
		if stmt := p.parseStatement(); stmt != nil {
			block.Statements = append(block.Statements, stmt)
		}
	}
	p.consume(RBRACE, "expected '}' to close block")
	return block
}

func (p *Parser) parseIfStatement() *ast.IfStatement {
	tok := p.ts.Advance() // 'if'
	stmt := &ast.IfStatement{Base: ast.Base{Line: tok.Line}}
	p.node()
	if _, ok := p.consume(LPAREN, "expected '(' after 'if'"); ok {
		stmt.Condition = p.parseExpression()
		p.consume(RPAREN, "expected ')' after condition")
	}
	stmt.Then = p.parseStatement()
	if p.cur().Type == ELSE {
		p.ts.Advance()
		stmt.Else = p.parseStatement()
	}
	return stmt
}

func (p *Parser) parseWhileStatement() *ast.WhileStatement {
	tok := p.ts.Advance() // 'while'
	stmt := &ast.WhileStatement{Base: ast.Base{Line: tok.Line}}
	p.node()
	if _, ok := p.consume(LPAREN, "expected '(' after 'while'"); ok {
		stmt.Condition = p.parseExpression()
		p.consume(RPAREN, "expected ')' after condition")
	}
	stmt.Body = p.parseStatement()
	return stmt
}

func (p *Parser) parseDoWhileStatement() *ast.DoWhileStatement {
	tok := p.ts.Advance() // 'do'
	stmt := &ast.DoWhileStatement{Base: ast.Base{Line: tok.Line}}
	p.node()
	stmt.Body = p.parseStatement()
	if _, ok := p.consume(WHILE, "expected 'while' after do-block"); ok {
		if _, ok := p.consume(LPAREN, "expected '(' after 'while'"); ok {
			stmt.Condition = p.parseExpression()
			p.consume(RPAREN, "expected ')' after condition")
		}
	}
	p.consume(SEMICOLON, "expected ';' after do-while statement")
	return stmt
}

func (p *Parser) parseForStatement() *ast.ForStatement {
	tok := p.ts.Advance() // 'for'
	stmt := &ast.ForStatement{Base: ast.Base{Line: tok.Line}}
	p.node()
	if _, ok := p.consume(LPAREN, "expected '(' after 'for'"); !ok {
		p.synchronize()
		return stmt
	}
	if p.cur().Type != SEMICOLON {
		if p.looksLikeLocalDeclaration() {
			stmt.Init = p.parseLocalVariableDeclaration()
		} else {
			exprTok := p.cur()
			stmt.Init = &ast.ExpressionStatement{Base: ast.Base{Line: exprTok.Line}, Expr: p.parseExpression()}
			p.node()
			p.consume(SEMICOLON, "expected ';' after for-init")
		}
	} else {
		p.ts.Advance()
	}
	if p.cur().Type != SEMICOLON {
		stmt.Condition = p.parseExpression()
	}
	p.consume(SEMICOLON, "expected ';' after for-condition")
	if p.cur().Type != RPAREN {
		stmt.Post = p.parseExpression()
	}
	p.consume(RPAREN, "expected ')' after for-clauses")
	stmt.Body = p.parseStatement()
	return stmt
}

func (p *Parser) parseForEachStatement() *ast.ForEachStatement {
	tok := p.ts.Advance() // 'foreach'
	stmt := &ast.ForEachStatement{Base: ast.Base{Line: tok.Line}}
	p.node()
	if _, ok := p.consume(LPAREN, "expected '(' after 'foreach'"); !ok {
		p.synchronize()
		return stmt
	}
	if p.cur().Type == VAR {
		p.ts.Advance()
	} else {
		stmt.ElementType = p.parseNamedType()
	}
	if nameTok, ok := p.consume(IDENT, "expected element variable name"); ok {
		stmt.Name = nameTok.Literal
	}
	p.consume(IN, "expected 'in' in foreach statement")
	stmt.Collection = p.parseExpression()
	p.consume(RPAREN, "expected ')' after foreach clause")
	stmt.Body = p.parseStatement()
	return stmt
}

func (p *Parser) parseSwitchStatement() *ast.SwitchStatement {
	tok := p.ts.Advance() // 'switch'
	stmt := &ast.SwitchStatement{Base: ast.Base{Line: tok.Line}}
	p.node()
	if _, ok := p.consume(LPAREN, "expected '(' after 'switch'"); ok {
		stmt.Discriminant = p.parseExpression()
		p.consume(RPAREN, "expected ')' after switch discriminant")
	}
	if _, ok := p.consume(LBRACE, "expected '{' to start switch body"); !ok {
		p.synchronize()
		return stmt
	}
	for p.cur().Type == CASE || p.cur().Type == DEFAULT {
		caseTok := p.ts.Advance()
		c := &ast.SwitchCase{Base: ast.Base{Line: caseTok.Line}}
		p.node()
		if caseTok.Type == CASE {
			c.Test = p.parseExpression()
		}
		p.consume(COLON, "expected ':' after case label")
		for p.cur().Type != CASE && p.cur().Type != DEFAULT && p.cur().Type != RBRACE && p.cur().Type != EOF {
			if s := p.parseStatement(); s != nil {
				c.Body = append(c.Body, s)
			}
		}
		stmt.Cases = append(stmt.Cases, c)
	}
	p.consume(RBRACE, "expected '}' to close switch body")
	return stmt
}

func (p *Parser) parseReturnStatement() *ast.ReturnStatement {
	tok := p.ts.Advance() // 'return'
	stmt := &ast.ReturnStatement{Base: ast.Base{Line: tok.Line}}
	p.node()
	if p.cur().Type != SEMICOLON {
		stmt.Value = p.parseExpression()
	}
	p.consume(SEMICOLON, "expected ';' after return statement")
	return stmt
}

func (p *Parser) parseThrowStatement() *ast.ThrowStatement {
	tok := p.ts.Advance() // 'throw'
	stmt := &ast.ThrowStatement{Base: ast.Base{Line: tok.Line}}
	p.node()
	if p.cur().Type != SEMICOLON {
		stmt.Value = p.parseExpression()
	}
	p.consume(SEMICOLON, "expected ';' after throw statement")
	return stmt
}

func (p *Parser) parseBreakStatement() *ast.BreakStatement {
	tok := p.ts.Advance()
	stmt := &ast.BreakStatement{Base: ast.Base{Line: tok.Line}}
	p.node()
	p.consume(SEMICOLON, "expected ';' after break statement")
	return stmt
}

func (p *Parser) parseContinueStatement() *ast.ContinueStatement {
	tok := p.ts.Advance()
	stmt := &ast.ContinueStatement{Base: ast.Base{Line: tok.Line}}
	p.node()
	p.consume(SEMICOLON, "expected ';' after continue statement")
	return stmt
}

func (p *Parser) parseTryStatement() *ast.TryStatement {
	tok := p.ts.Advance() // 'try'
	stmt := &ast.TryStatement{Base: ast.Base{Line: tok.Line}}
	p.node()
	stmt.TryBlock = p.parseBlockStatement()
	if p.cur().Type == CATCH {
		p.ts.Advance()
		if p.cur().Type == LPAREN {
			p.ts.Advance()
			p.parseNamedType()
			if p.cur().Type == IDENT {
				stmt.CatchParam = p.ts.Advance().Literal
			}
			p.consume(RPAREN, "expected ')' after catch clause")
		}
		stmt.CatchBlock = p.parseBlockStatement()
	}
	if p.cur().Type == FINALLY {
		p.ts.Advance()
		stmt.FinallyBlock = p.parseBlockStatement()
	}
	if stmt.CatchBlock == nil && stmt.FinallyBlock == nil {
		p.addError(tok, "try statement requires a catch or finally clause")
	}
	return stmt
}

func (p *Parser) parseExpressionStatement() *ast.ExpressionStatement {
	tok := p.cur()
	stmt := &ast.ExpressionStatement{Base: ast.Base{Line: tok.Line}, Expr: p.parseExpression()}
	p.node()
	p.consume(SEMICOLON, "expected ';' after expression statement")
	return stmt
}

// --- Expressions: one function per precedence layer, the full L-stat
// superset cascade (conditional, bitwise, shift, on top of the layers
// shared with script). -------------------------------------------------

func (p *Parser) parseExpression() ast.Expression { return p.parseAssignExpr() }

var assignOps = map[TokenType]string{
	ASSIGN: "=", PLUS_ASSIGN: "+=", MINUS_ASSIGN: "-=",
	ASTERISK_ASSIGN: "*=", SLASH_ASSIGN: "/=", PERCENT_ASSIGN: "%=", COALESCE_ASSIGN: "??=",
}

func (p *Parser) parseAssignExpr() ast.Expression {
	left := p.parseCondExpr()
	if op, ok := assignOps[p.cur().Type]; ok {
		tok := p.ts.Advance()
		value := p.parseAssignExpr()
		node := &ast.AssignmentExpression{Base: ast.Base{Line: tok.Line}, Operator: op, Target: left, Value: value}
		p.node()
		return node
	}
	return left
}

func (p *Parser) parseCondExpr() ast.Expression {
	cond := p.parseLogOr()
	if p.cur().Type == QUESTION {
		tok := p.ts.Advance()
		then := p.parseExpression()
		p.consume(COLON, "expected ':' in conditional expression")
		els := p.parseCondExpr()
		node := &ast.ConditionalExpression{Base: ast.Base{Line: tok.Line}, Condition: cond, Then: then, Else: els}
		p.node()
		return node
	}
	return cond
}

func (p *Parser) parseLogOr() ast.Expression {
	left := p.parseLogAnd()
	for p.cur().Type == OR_OR {
		tok := p.ts.Advance()
		right := p.parseLogAnd()
		left = &ast.BinaryExpression{Base: ast.Base{Line: tok.Line}, Operator: "||", Left: left, Right: right}
		p.node()
	}
	return left
}

func (p *Parser) parseLogAnd() ast.Expression {
	left := p.parseBitOr()
	for p.cur().Type == AND_AND {
		tok := p.ts.Advance()
		right := p.parseBitOr()
		left = &ast.BinaryExpression{Base: ast.Base{Line: tok.Line}, Operator: "&&", Left: left, Right: right}
		p.node()
	}
	return left
}

func (p *Parser) parseBitOr() ast.Expression {
	left := p.parseBitXor()
	for p.cur().Type == PIPE {
		tok := p.ts.Advance()
		right := p.parseBitXor()
		left = &ast.BinaryExpression{Base: ast.Base{Line: tok.Line}, Operator: "|", Left: left, Right: right}
		p.node()
	}
	return left
}

func (p *Parser) parseBitXor() ast.Expression {
	left := p.parseBitAnd()
	for p.cur().Type == CARET {
		tok := p.ts.Advance()
		right := p.parseBitAnd()
		left = &ast.BinaryExpression{Base: ast.Base{Line: tok.Line}, Operator: "^", Left: left, Right: right}
		p.node()
	}
	return left
}

func (p *Parser) parseBitAnd() ast.Expression {
	left := p.parseEquality()
	for p.cur().Type == AMP {
		tok := p.ts.Advance()
		right := p.parseEquality()
		left = &ast.BinaryExpression{Base: ast.Base{Line: tok.Line}, Operator: "&", Left: left, Right: right}
		p.node()
	}
	return left
}

var equalityOps = map[TokenType]string{EQ: "==", NOT_EQ: "!="}

func (p *Parser) parseEquality() ast.Expression {
	left := p.parseRelational()
	for {
		op, ok := equalityOps[p.cur().Type]
		if !ok {
			return left
		}
		tok := p.ts.Advance()
		right := p.parseRelational()
		left = &ast.BinaryExpression{Base: ast.Base{Line: tok.Line}, Operator: op, Left: left, Right: right}
		p.node()
	}
}

func (p *Parser) parseRelational() ast.Expression {
	left := p.parseShift()
	for {
		var op string
		switch p.cur().Type {
		case LT:
			op = "<"
		case GT:
			op = ">"
		case LE:
			op = "<="
		case GE:
			op = ">="
		case INSTANCEOF:
			op = "instanceof"
		case IN:
			op = "in"
		default:
			return left
		}
		tok := p.ts.Advance()
		right := p.parseShift()
		left = &ast.BinaryExpression{Base: ast.Base{Line: tok.Line}, Operator: op, Left: left, Right: right}
		p.node()
	}
}

func (p *Parser) parseShift() ast.Expression {
	left := p.parseAdditive()
	for p.cur().Type == SHL || p.cur().Type == SHR {
		tok := p.ts.Advance()
		right := p.parseAdditive()
		left = &ast.BinaryExpression{Base: ast.Base{Line: tok.Line}, Operator: string(tok.Type), Left: left, Right: right}
		p.node()
	}
	return left
}

func (p *Parser) parseAdditive() ast.Expression {
	left := p.parseMultiplicative()
	for p.cur().Type == PLUS || p.cur().Type == MINUS {
		tok := p.ts.Advance()
		right := p.parseMultiplicative()
		left = &ast.BinaryExpression{Base: ast.Base{Line: tok.Line}, Operator: string(tok.Type), Left: left, Right: right}
		p.node()
	}
	return left
}

func (p *Parser) parseMultiplicative() ast.Expression {
	left := p.parseUnary()
	for p.cur().Type == ASTERISK || p.cur().Type == SLASH || p.cur().Type == PERCENT {
		tok := p.ts.Advance()
		right := p.parseUnary()
		left = &ast.BinaryExpression{Base: ast.Base{Line: tok.Line}, Operator: string(tok.Type), Left: left, Right: right}
		p.node()
	}
	return left
}

var unaryOps = map[TokenType]string{
	BANG: "!", MINUS: "-", PLUS: "+", INC: "++", DEC: "--", TYPEOF: "typeof", TILDE: "~",
}

func (p *Parser) parseUnary() ast.Expression {
	if op, ok := unaryOps[p.cur().Type]; ok {
		tok := p.ts.Advance()
		operand := p.parseUnary()
		node := &ast.UnaryExpression{Base: ast.Base{Line: tok.Line}, Operator: op, Operand: operand}
		p.node()
		return node
	}
	expr := p.parsePrimary()
	if p.cur().Type == INC || p.cur().Type == DEC {
		tok := p.ts.Advance()
		node := &ast.UnaryExpression{Base: ast.Base{Line: tok.Line}, Operator: unaryOps[tok.Type], Operand: expr, Postfix: true}
		p.node()
		return node
	}
	return expr
}

func (p *Parser) parsePrimary() ast.Expression {
	tok := p.cur()
	switch tok.Type {
	case IDENT:
		p.ts.Advance()
		node := &ast.Identifier{Base: ast.Base{Line: tok.Line}, Name: tok.Literal}
		p.node()
		return p.parseCallOrMemberTail(node)
	case NUMBER:
		p.ts.Advance()
		node := &ast.Literal{Base: ast.Base{Line: tok.Line}, ValueKind: ast.LiteralNumber, Raw: tok.Literal}
		p.node()
		return node
	case STRING:
		p.ts.Advance()
		node := &ast.Literal{Base: ast.Base{Line: tok.Line}, ValueKind: ast.LiteralString, Raw: tok.Literal}
		p.node()
		return node
	case TRUE:
		p.ts.Advance()
		node := &ast.Literal{Base: ast.Base{Line: tok.Line}, ValueKind: ast.LiteralBoolean, Raw: "true"}
		p.node()
		return node
	case FALSE:
		p.ts.Advance()
		node := &ast.Literal{Base: ast.Base{Line: tok.Line}, ValueKind: ast.LiteralBoolean, Raw: "false"}
		p.node()
		return node
	case NULL:
		p.ts.Advance()
		node := &ast.Literal{Base: ast.Base{Line: tok.Line}, ValueKind: ast.LiteralNull, Raw: "null"}
		p.node()
		return node
	case THIS:
		p.ts.Advance()
		node := &ast.Identifier{Base: ast.Base{Line: tok.Line}, Name: "this"}
		p.node()
		return p.parseCallOrMemberTail(node)
	case BASE:
		p.ts.Advance()
		node := &ast.Identifier{Base: ast.Base{Line: tok.Line}, Name: "base"}
		p.node()
		return p.parseCallOrMemberTail(node)
	case NEW:
		return p.parseNewExpression()
	case LPAREN:
		p.ts.Advance()
		expr := p.parseExpression()
		p.consume(RPAREN, "expected ')' to close grouped expression")
		return p.parseCallOrMemberTail(expr)
	case LBRACKET:
		return p.parseArrayLiteral()
	default:
		p.addError(tok, "unexpected token %s %q in expression", tok.Type, tok.Literal)
		p.ts.Advance()
		node := &ast.Identifier{Base: ast.Base{Line: tok.Line}, Name: ""}
		p.node()
		return node
	}
}

// parseNewExpression parses `new Type(args)`, folding the construction
// into the same "()" call shape the mapper and emitter already handle,
// with a leading synthetic "new " marker carried on the callee name.
func (p *Parser) parseNewExpression() ast.Expression {
	tok := p.ts.Advance() // 'new'
	typ := p.parseNamedType()
	callee := &ast.Identifier{Base: ast.Base{Line: tok.Line}, Name: "new " + typ.Name.String()}
	p.node()
	var args []ast.Expression
	if p.cur().Type == LPAREN {
		p.ts.Advance()
		for p.cur().Type != RPAREN && p.cur().Type != EOF {
			args = append(args, p.parseExpression())
			if p.cur().Type == COMMA {
				p.ts.Advance()
				continue
			}
			break
		}
		p.consume(RPAREN, "expected ')' after constructor arguments")
	}
	node := &ast.BinaryExpression{Base: ast.Base{Line: tok.Line}, Operator: "()", Left: callee, Right: argList(args, tok.Line)}
	p.node()
	return p.parseCallOrMemberTail(node)
}

func (p *Parser) parseCallOrMemberTail(expr ast.Expression) ast.Expression {
	for {
		switch p.cur().Type {
		case LPAREN:
			tok := p.ts.Advance()
			var args []ast.Expression
			for p.cur().Type != RPAREN && p.cur().Type != EOF {
				args = append(args, p.parseExpression())
				if p.cur().Type == COMMA {
					p.ts.Advance()
					continue
				}
				break
			}
			p.consume(RPAREN, "expected ')' after call arguments")
			expr = &ast.BinaryExpression{Base: ast.Base{Line: tok.Line}, Operator: "()", Left: expr, Right: argList(args, tok.Line)}
			p.node()
		case DOT:
			p.ts.Advance()
			nameTok, _ := p.consume(IDENT, "expected member name after '.'")
			expr = &ast.BinaryExpression{Base: ast.Base{Line: nameTok.Line}, Operator: ".", Left: expr, Right: &ast.Identifier{Base: ast.Base{Line: nameTok.Line}, Name: nameTok.Literal}}
			p.node()
		case LBRACKET:
			tok := p.ts.Advance()
			idx := p.parseExpression()
			p.consume(RBRACKET, "expected ']' after index expression")
			expr = &ast.BinaryExpression{Base: ast.Base{Line: tok.Line}, Operator: "[]", Left: expr, Right: idx}
			p.node()
		default:
			return expr
		}
	}
}

func argList(args []ast.Expression, line int) ast.Expression {
	return &ast.ArrayLiteral{Base: ast.Base{Line: line}, Elements: args}
}

func (p *Parser) parseArrayLiteral() ast.Expression {
	tok := p.ts.Advance() // '['
	lit := &ast.ArrayLiteral{Base: ast.Base{Line: tok.Line}}
	p.node()
	for p.cur().Type != RBRACKET && p.cur().Type != EOF {
		lit.Elements = append(lit.Elements, p.parseExpression())
		if p.cur().Type == COMMA {
			p.ts.Advance()
			continue
		}
		break
	}
	p.consume(RBRACKET, "expected ']' to close array literal")
	return p.parseCallOrMemberTail(lit)
}
