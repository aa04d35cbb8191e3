package script

import (
	"xlate/pkg/ast"
	"xlate/pkg/diag"
	"xlate/pkg/metrics"
	"xlate/pkg/source"
)

// Parser is a hand-written recursive-descent parser over a TokenStream,
// producing an *ast.Program and a list of diagnostics. Every production
// increments the metrics sink's AST-node counter; every diagnostic is
// appended to diags, never thrown past the parser's boundary.
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

func (p *Parser) cur() Token  { return p.ts.Peek() }
func (p *Parser) peek() Token { return p.ts.PeekAt(1) }

func (p *Parser) addError(tok Token, format string, args ...interface{}) {
	p.diags = append(p.diags, diag.New(diag.TypeSyntax, tok.Line, tok.Column, format, args...))
}

func (p *Parser) addWarning(tok Token, format string, args ...interface{}) {
	p.diags = append(p.diags, diag.NewWarning(diag.TypeSyntax, tok.Line, tok.Column, format, args...))
}

// consume returns the current token and advances if it matches t;
// otherwise it records a diagnostic and returns the current token
// without advancing, leaving recovery to the caller.
func (p *Parser) consume(t TokenType, msg string) (Token, bool) {
	if p.cur().Type == t {
		return p.ts.Advance(), true
	}
	p.addError(p.cur(), "%s (got %s %q)", msg, p.cur().Type, p.cur().Literal)
	return p.cur(), false
}

// statementFirstSet reports whether t can begin a new statement, used
// by panic-mode recovery to decide where to stop skipping tokens.
func statementFirstSet(t TokenType) bool {
	switch t {
	case VAR, LET, CONST, FUNCTION, CLASS, IF, WHILE, FOR, SWITCH,
		RETURN, THROW, BREAK, CONTINUE, TRY, LBRACE, RBRACE, EOF:
		return true
	default:
		return false
	}
}

// synchronize implements panic-mode recovery: advance tokens until the
// current token is ';' (consume it and return) or in the statement
// first-set (return without consuming), or until EOF.
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

// ParseProgram parses the whole token stream into a Program.
func (p *Parser) ParseProgram() (*ast.Program, []diag.Diagnostic) {
	p.sink.StartParse()
	p.sink.TokensProcessed = p.ts.NonEOFCount()

	prog := &ast.Program{Base: ast.Base{Line: p.cur().Line}}
	p.node()
	for p.cur().Type != EOF {
		stmt := p.parseStatement()
		if stmt != nil {
			prog.Body = append(prog.Body, stmt)
		}
	}

	p.sink.StopParse()
	errs, warns := countSeverities(p.diags)
	p.sink.RecordDiagnosticCounts(errs, warns)
	return prog, p.diags
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

// --- Statements ---------------------------------------------------------

func (p *Parser) parseStatement() ast.Statement {
	switch p.cur().Type {
	case VAR, LET, CONST:
		return p.parseVariableDeclaration()
	case FUNCTION:
		return p.parseFunctionDeclaration()
	case CLASS:
		return p.parseClassDeclaration()
	case IF:
		return p.parseIfStatement()
	case WHILE:
		return p.parseWhileStatement()
	case FOR:
		return p.parseForStatement()
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
		return p.parseExpressionStatement()
	}
}

func (p *Parser) parseVariableDeclaration() ast.Statement {
	kindTok := p.ts.Advance()
	decl := &ast.VariableDeclaration{Base: ast.Base{Line: kindTok.Line}, DeclKind: declKindText(kindTok.Type)}
	p.node()

	for {
		nameTok, ok := p.consume(IDENT, "expected variable name")
		if !ok {
			p.synchronize()
			return decl
		}
		declarator := &ast.VariableDeclarator{Base: ast.Base{Line: nameTok.Line}, Name: nameTok.Literal}
		p.node()
		if p.cur().Type == ASSIGN {
			p.ts.Advance()
			declarator.Init = p.parseExpression()
		} else if decl.DeclKind == "const" {
			p.addError(nameTok, "const declaration %q must have an initializer", nameTok.Literal)
		}
		decl.Declarators = append(decl.Declarators, declarator)
		if p.cur().Type != COMMA {
			break
		}
		p.ts.Advance()
	}

	if _, ok := p.consume(SEMICOLON, "expected ';' after variable declaration"); !ok {
		p.synchronize()
	}
	return decl
}

func declKindText(t TokenType) string {
	switch t {
	case VAR:
		return "var"
	case LET:
		return "let"
	default:
		return "const"
	}
}

func (p *Parser) parseFunctionDeclaration() *ast.FunctionDeclaration {
	tok := p.ts.Advance() // 'function'
	fn := &ast.FunctionDeclaration{Base: ast.Base{Line: tok.Line}}
	p.node()
	if nameTok, ok := p.consume(IDENT, "expected function name"); ok {
		fn.Name = nameTok.Literal
	}
	fn.Params = p.parseParameterList()
	fn.Body = p.parseBlockStatement()
	return fn
}

func (p *Parser) parseParameterList() []*ast.Parameter {
	if _, ok := p.consume(LPAREN, "expected '(' after function name"); !ok {
		return nil
	}
	var params []*ast.Parameter
	for p.cur().Type != RPAREN && p.cur().Type != EOF {
		nameTok, ok := p.consume(IDENT, "expected parameter name")
		if !ok {
			break
		}
		param := &ast.Parameter{Base: ast.Base{Line: nameTok.Line}, Name: nameTok.Literal}
		p.node()
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

func (p *Parser) parseClassDeclaration() *ast.ClassDeclaration {
	tok := p.ts.Advance() // 'class'
	cls := &ast.ClassDeclaration{Base: ast.Base{Line: tok.Line}}
	p.node()
	if nameTok, ok := p.consume(IDENT, "expected class name"); ok {
		cls.Name = nameTok.Literal
	}
	if p.cur().Type == IDENT && p.cur().Literal == "extends" {
		p.ts.Advance()
		if superTok, ok := p.consume(IDENT, "expected superclass name"); ok {
			cls.SuperClass = superTok.Literal
		}
	}
	if _, ok := p.consume(LBRACE, "expected '{' to start class body"); !ok {
		p.synchronize()
		return cls
	}
	for p.cur().Type != RBRACE && p.cur().Type != EOF {
		if p.peek().Type == LPAREN {
			cls.Members = append(cls.Members, p.parseMethodMember())
		} else {
			cls.Members = append(cls.Members, p.parseFieldMember())
		}
	}
	p.consume(RBRACE, "expected '}' to close class body")
	return cls
}

func (p *Parser) parseMethodMember() *ast.FunctionDeclaration {
	nameTok, _ := p.consume(IDENT, "expected method name")
	fn := &ast.FunctionDeclaration{Base: ast.Base{Line: nameTok.Line}, Name: nameTok.Literal}
	p.node()
	fn.Params = p.parseParameterList()
	fn.Body = p.parseBlockStatement()
	return fn
}

func (p *Parser) parseFieldMember() *ast.VariableDeclaration {
	nameTok, ok := p.consume(IDENT, "expected field name")
	if !ok {
		p.synchronize()
		return &ast.VariableDeclaration{Base: ast.Base{Line: nameTok.Line}, DeclKind: "let"}
	}
	declarator := &ast.VariableDeclarator{Base: ast.Base{Line: nameTok.Line}, Name: nameTok.Literal}
	p.node()
	if p.cur().Type == ASSIGN {
		p.ts.Advance()
		declarator.Init = p.parseExpression()
	}
	p.consume(SEMICOLON, "expected ';' after field declaration")
	decl := &ast.VariableDeclaration{Base: ast.Base{Line: nameTok.Line}, DeclKind: "let", Declarators: []*ast.VariableDeclarator{declarator}}
	p.node()
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
		stmt := p.parseStatement()
		if stmt != nil {
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

func (p *Parser) parseForStatement() *ast.ForStatement {
	tok := p.ts.Advance() // 'for'
	stmt := &ast.ForStatement{Base: ast.Base{Line: tok.Line}}
	p.node()
	if _, ok := p.consume(LPAREN, "expected '(' after 'for'"); !ok {
		p.synchronize()
		return stmt
	}
	if p.cur().Type != SEMICOLON {
		switch p.cur().Type {
		case VAR, LET, CONST:
			stmt.Init = p.parseVariableDeclaration()
		default:
			stmt.Init = p.parseExpressionStatementNoConsumeSemi()
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

// parseExpressionStatementNoConsumeSemi parses a bare expression
// statement for use inside a for-init clause, where the caller (not
// this function) consumes the following ';'.
func (p *Parser) parseExpressionStatementNoConsumeSemi() *ast.ExpressionStatement {
	tok := p.cur()
	stmt := &ast.ExpressionStatement{Base: ast.Base{Line: tok.Line}, Expr: p.parseExpression()}
	p.node()
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
	stmt := &ast.ThrowStatement{Base: ast.Base{Line: tok.Line}, Value: p.parseExpression()}
	p.node()
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
			if nameTok, ok := p.consume(IDENT, "expected catch parameter name"); ok {
				stmt.CatchParam = nameTok.Literal
			}
			p.consume(RPAREN, "expected ')' after catch parameter")
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

// --- Expressions: one function per precedence layer, matching the
// grammar cascade exactly so the resulting AST shape is provably
// precedence-correct regardless of how it was produced. ---------------

func (p *Parser) parseExpression() ast.Expression { return p.parseAssignExpr() }

var assignOps = map[TokenType]string{
	ASSIGN: "=", PLUS_ASSIGN: "+=", MINUS_ASSIGN: "-=",
	ASTERISK_ASSIGN: "*=", SLASH_ASSIGN: "/=", PERCENT_ASSIGN: "%=",
}

func (p *Parser) parseAssignExpr() ast.Expression {
	left := p.parseLogOr()
	if op, ok := assignOps[p.cur().Type]; ok {
		tok := p.ts.Advance()
		value := p.parseAssignExpr() // right-associative
		node := &ast.AssignmentExpression{Base: ast.Base{Line: tok.Line}, Operator: op, Target: left, Value: value}
		p.node()
		return node
	}
	return left
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
	left := p.parseEquality()
	for p.cur().Type == AND_AND {
		tok := p.ts.Advance()
		right := p.parseEquality()
		left = &ast.BinaryExpression{Base: ast.Base{Line: tok.Line}, Operator: "&&", Left: left, Right: right}
		p.node()
	}
	return left
}

var equalityOps = map[TokenType]string{EQ: "==", NOT_EQ: "!=", STRICT_EQ: "===", STRICT_NE: "!=="}

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
	left := p.parseAdditive()
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
		right := p.parseAdditive()
		left = &ast.BinaryExpression{Base: ast.Base{Line: tok.Line}, Operator: op, Left: left, Right: right}
		p.node()
	}
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
	case NULL, UNDEFINED:
		p.ts.Advance()
		node := &ast.Literal{Base: ast.Base{Line: tok.Line}, ValueKind: ast.LiteralNull, Raw: "null"}
		p.node()
		return node
	case THIS:
		p.ts.Advance()
		node := &ast.Identifier{Base: ast.Base{Line: tok.Line}, Name: "this"}
		p.node()
		return p.parseCallOrMemberTail(node)
	case LPAREN:
		p.ts.Advance()
		expr := p.parseExpression()
		p.consume(RPAREN, "expected ')' to close grouped expression")
		return p.parseCallOrMemberTail(expr)
	case LBRACKET:
		return p.parseArrayLiteral()
	case LBRACE:
		return p.parseObjectLiteral()
	default:
		p.addError(tok, "unexpected token %s %q in expression", tok.Type, tok.Literal)
		p.ts.Advance()
		node := &ast.Identifier{Base: ast.Base{Line: tok.Line}, Name: ""}
		p.node()
		return node
	}
}

// parseCallOrMemberTail folds trailing `(args)`, `[index]`, and `.name`
// onto an already-parsed primary expression as BinaryExpression nodes
// with the synthetic "()", "[]" and "." operators, the same call/member
// shape the sharp parser produces and both languages' mappers consume.
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
			nameTok, _ := p.consume(IDENT, "expected property name after '.'")
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

// argList packages a call's argument list as an ArrayLiteral so it can
// ride along as the right operand of a synthetic "()" BinaryExpression
// without introducing a dedicated CallExpression node.
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

func (p *Parser) parseObjectLiteral() ast.Expression {
	tok := p.ts.Advance() // '{'
	lit := &ast.ObjectLiteral{Base: ast.Base{Line: tok.Line}}
	p.node()
	for p.cur().Type != RBRACE && p.cur().Type != EOF {
		keyTok := p.cur()
		var key string
		switch keyTok.Type {
		case IDENT:
			key = keyTok.Literal
			p.ts.Advance()
		case STRING:
			key = unquote(keyTok.Literal)
			p.ts.Advance()
		case NUMBER:
			key = keyTok.Literal
			p.ts.Advance()
		default:
			p.addError(keyTok, "expected property key")
			p.ts.Advance()
		}
		p.consume(COLON, "expected ':' after property key")
		value := p.parseExpression()
		prop := &ast.Property{Base: ast.Base{Line: keyTok.Line}, Key: key, Value: value}
		p.node()
		lit.Properties = append(lit.Properties, prop)
		if p.cur().Type == COMMA {
			p.ts.Advance()
			continue
		}
		break
	}
	p.consume(RBRACE, "expected '}' to close object literal")
	return p.parseCallOrMemberTail(lit)
}

// unquote strips a string lexeme's surrounding quote characters for
// use as an identifier-like key; it does not interpret escapes.
func unquote(lexeme string) string {
	if len(lexeme) >= 2 {
		return lexeme[1 : len(lexeme)-1]
	}
	return lexeme
}
