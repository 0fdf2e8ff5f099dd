// parser.go — recursive-descent parser building the Moji AST.
//
// One token of lookahead drives statement dispatch: statements begin with a
// keyword glyph, except the identifier-led forms (assignment, ➕📜, ➖📜 and
// call statements), which are disambiguated by the *second* token. Expression
// precedence, lowest to highest: comparison → additive → multiplicative →
// unary (right-recursive) → postfix call/index → atom. Each binary level is
// "parse the next level, then fold operators left-associatively".
//
// The parser is not error-recovering: the first unexpected token aborts the
// parse with an expected-vs-found ParseError. A complete program must consume
// every token; anything after the 🌳 terminator is an error.
package moji

import "fmt"

// ParseError reports a token sequence that does not match the grammar.
// Line is 1-based, Col is 0-based. Incomplete marks errors caused by running
// out of input, which lets a REPL prompt for continuation lines.
type ParseError struct {
	Line       int
	Col        int
	Msg        string
	Incomplete bool
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("SYNTAX ERROR at %d:%d: %s", e.Line, e.Col+1, e.Msg)
}

// IsIncomplete reports whether err is a ParseError caused by premature end of
// input (more tokens could still form a valid program).
func IsIncomplete(err error) bool {
	pe, ok := err.(*ParseError)
	return ok && pe.Incomplete
}

// Parser consumes a token sequence and produces a Program.
type Parser struct {
	toks []Token
	pos  int
}

// NewParser creates a parser over the given tokens. The sequence must be
// terminated by an EOF token, as produced by the lexer.
func NewParser(toks []Token) *Parser {
	if len(toks) == 0 {
		toks = []Token{{Type: EOF, Line: 1}}
	}
	return &Parser{toks: toks}
}

// Parse reads a complete 🌱 ... 🌳 program and requires that nothing but EOF
// follows the terminator.
func Parse(toks []Token) (*Program, error) {
	return NewParser(toks).Program()
}

// ParseSource runs the lexer and parser in one step.
func ParseSource(src string) (*Program, error) {
	toks, err := Tokenize(src)
	if err != nil {
		return nil, err
	}
	return Parse(toks)
}

func (p *Parser) cur() Token { return p.toks[p.pos] }

func (p *Parser) peek() Token {
	if p.pos+1 < len(p.toks) {
		return p.toks[p.pos+1]
	}
	return p.toks[len(p.toks)-1]
}

func (p *Parser) advance() Token {
	t := p.toks[p.pos]
	if p.pos+1 < len(p.toks) {
		p.pos++
	}
	return t
}

func (p *Parser) errAt(tok Token, msg string) error {
	return &ParseError{Line: tok.Line, Col: tok.Col, Msg: msg, Incomplete: tok.Type == EOF}
}

// eat consumes the current token if it has the expected kind, else fails with
// an expected-vs-found error.
func (p *Parser) eat(tt TokenType) (Token, error) {
	t := p.cur()
	if t.Type != tt {
		return Token{}, p.errAt(t, fmt.Sprintf("expected %v, found %v", tt, t.Type))
	}
	return p.advance(), nil
}

// Program parses 🌱 stmt* 🌳 EOF.
func (p *Parser) Program() (*Program, error) {
	if _, err := p.eat(PROGRAM_START); err != nil {
		return nil, err
	}
	stmts, err := p.statements(PROGRAM_END)
	if err != nil {
		return nil, err
	}
	if _, err := p.eat(PROGRAM_END); err != nil {
		return nil, err
	}
	if t := p.cur(); t.Type != EOF {
		return nil, p.errAt(t, fmt.Sprintf("found %v after the 🌳 program terminator", t.Type))
	}
	return &Program{Statements: stmts}, nil
}

// Snippet parses a bare statement sequence with no 🌱/🌳 wrapper, for the REPL.
func (p *Parser) Snippet() (*Program, error) {
	stmts, err := p.statements(EOF)
	if err != nil {
		return nil, err
	}
	if _, err := p.eat(EOF); err != nil {
		return nil, err
	}
	return &Program{Statements: stmts}, nil
}

// statements accumulates statements until the end kind (🌳, 📦⛔ or EOF).
func (p *Parser) statements(end TokenType) ([]Stmt, error) {
	var out []Stmt
	for p.cur().Type != end && p.cur().Type != EOF {
		s, err := p.statement()
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

func (p *Parser) statement() (Stmt, error) {
	switch p.cur().Type {
	case KW_PRINT:
		return p.printStatement()
	case KW_READ:
		return p.readStatement()
	case KW_INT, KW_REAL, KW_STRING, KW_LIST:
		return p.varDeclaration()
	case KW_IF:
		return p.ifStatement()
	case KW_WHILE:
		return p.whileStatement()
	case KW_FOREACH:
		return p.forEachStatement()
	case BLOCK_START:
		return p.block()
	case KW_FUN:
		return p.funcDefinition()
	case KW_RETURN:
		return p.returnStatement()
	case KW_IMPORT:
		return p.importStatement()
	case KW_SAVE:
		return p.saveStatement()
	case KW_FAPPEND:
		return p.fileAppendStatement()
	case KW_SLEEP:
		return p.sleepStatement()
	case IDENT:
		switch p.peek().Type {
		case ASSIGN:
			return p.varAssignment()
		case KW_APPEND:
			return p.listAppend()
		case KW_REMOVE:
			return p.listRemove()
		case LPAREN:
			return p.callStatement()
		}
	}
	return nil, p.errAt(p.cur(), fmt.Sprintf("unexpected %v at start of statement", p.cur().Type))
}

// printStatement parses 🖨️ expr 🔚.
func (p *Parser) printStatement() (Stmt, error) {
	tok := p.advance()
	value, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.eat(END_STATEMENT); err != nil {
		return nil, err
	}
	return &Print{Tok: tok, Value: value}, nil
}

// readStatement parses 👀 name 🔚.
func (p *Parser) readStatement() (Stmt, error) {
	tok := p.advance()
	name, err := p.eat(IDENT)
	if err != nil {
		return nil, err
	}
	if _, err := p.eat(END_STATEMENT); err != nil {
		return nil, err
	}
	return &Read{Tok: tok, NameTok: name, Name: name.Literal.(string)}, nil
}

// varDeclaration parses typekw name [👉 expr] 🔚.
func (p *Parser) varDeclaration() (Stmt, error) {
	typeTok := p.advance()
	name, err := p.eat(IDENT)
	if err != nil {
		return nil, err
	}
	var value Expr
	if p.cur().Type == ASSIGN {
		p.advance()
		value, err = p.expression()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.eat(END_STATEMENT); err != nil {
		return nil, err
	}
	return &VariableDeclare{TypeTok: typeTok, NameTok: name, Name: name.Literal.(string), Value: value}, nil
}

// varAssignment parses name 👉 expr 🔚.
func (p *Parser) varAssignment() (Stmt, error) {
	name := p.advance()
	if _, err := p.eat(ASSIGN); err != nil {
		return nil, err
	}
	value, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.eat(END_STATEMENT); err != nil {
		return nil, err
	}
	return &VariableAssign{NameTok: name, Name: name.Literal.(string), Value: value}, nil
}

// listAppend parses name ➕📜 expr 🔚.
func (p *Parser) listAppend() (Stmt, error) {
	name := p.advance()
	p.advance() // ➕📜
	value, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.eat(END_STATEMENT); err != nil {
		return nil, err
	}
	return &ListAppend{NameTok: name, Name: name.Literal.(string), Value: value}, nil
}

// listRemove parses name ➖📜 expr 🔚, where expr is the index.
func (p *Parser) listRemove() (Stmt, error) {
	name := p.advance()
	p.advance() // ➖📜
	index, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.eat(END_STATEMENT); err != nil {
		return nil, err
	}
	return &ListRemove{NameTok: name, Name: name.Literal.(string), Index: index}, nil
}

// callStatement parses name(args) 🔚 — a call whose result is discarded.
func (p *Parser) callStatement() (Stmt, error) {
	expr, err := p.postfix()
	if err != nil {
		return nil, err
	}
	call, ok := expr.(*FunctionCall)
	if !ok {
		line, col := expr.Pos()
		return nil, &ParseError{Line: line, Col: col, Msg: "expected a function call statement"}
	}
	if _, err := p.eat(END_STATEMENT); err != nil {
		return nil, err
	}
	return call, nil
}

// ifStatement parses 🤔 expr block (🔀 expr block)* [🤨 block].
func (p *Parser) ifStatement() (Stmt, error) {
	tok := p.advance()
	node := &If{Tok: tok}

	cond, err := p.expression()
	if err != nil {
		return nil, err
	}
	body, err := p.block()
	if err != nil {
		return nil, err
	}
	node.Cases = append(node.Cases, IfCase{Cond: cond, Body: body})

	for p.cur().Type == KW_ELIF {
		p.advance()
		cond, err := p.expression()
		if err != nil {
			return nil, err
		}
		body, err := p.block()
		if err != nil {
			return nil, err
		}
		node.Cases = append(node.Cases, IfCase{Cond: cond, Body: body})
	}

	if p.cur().Type == KW_ELSE {
		p.advance()
		node.Else, err = p.block()
		if err != nil {
			return nil, err
		}
	}
	return node, nil
}

// whileStatement parses 🔁 expr block.
func (p *Parser) whileStatement() (Stmt, error) {
	tok := p.advance()
	cond, err := p.expression()
	if err != nil {
		return nil, err
	}
	body, err := p.block()
	if err != nil {
		return nil, err
	}
	return &While{Tok: tok, Cond: cond, Body: body}, nil
}

// forEachStatement parses 🔄 var expr block.
func (p *Parser) forEachStatement() (Stmt, error) {
	tok := p.advance()
	name, err := p.eat(IDENT)
	if err != nil {
		return nil, err
	}
	iter, err := p.expression()
	if err != nil {
		return nil, err
	}
	body, err := p.block()
	if err != nil {
		return nil, err
	}
	return &ForEach{Tok: tok, VarTok: name, Var: name.Literal.(string), Iter: iter, Body: body}, nil
}

// block parses 📦 stmt* 📦⛔.
func (p *Parser) block() (*Block, error) {
	tok, err := p.eat(BLOCK_START)
	if err != nil {
		return nil, err
	}
	stmts, err := p.statements(BLOCK_END)
	if err != nil {
		return nil, err
	}
	if _, err := p.eat(BLOCK_END); err != nil {
		return nil, err
	}
	return &Block{Tok: tok, Statements: stmts}, nil
}

// funcDefinition parses 🧩 name param* block. Parameter names are read
// greedily until the 📦 appears, so an identifier can never start the body.
func (p *Parser) funcDefinition() (Stmt, error) {
	tok := p.advance()
	name, err := p.eat(IDENT)
	if err != nil {
		return nil, err
	}
	var params []string
	for p.cur().Type == IDENT {
		params = append(params, p.advance().Literal.(string))
	}
	body, err := p.block()
	if err != nil {
		return nil, err
	}
	return &FunctionDefine{Tok: tok, NameTok: name, Name: name.Literal.(string), Params: params, Body: body}, nil
}

// returnStatement parses 🔙 [expr] 🔚.
func (p *Parser) returnStatement() (Stmt, error) {
	tok := p.advance()
	var value Expr
	var err error
	if p.cur().Type != END_STATEMENT {
		value, err = p.expression()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.eat(END_STATEMENT); err != nil {
		return nil, err
	}
	return &Return{Tok: tok, Value: value}, nil
}

// importStatement parses ⚙️ name 🔚.
func (p *Parser) importStatement() (Stmt, error) {
	tok := p.advance()
	name, err := p.eat(IDENT)
	if err != nil {
		return nil, err
	}
	if _, err := p.eat(END_STATEMENT); err != nil {
		return nil, err
	}
	return &Import{Tok: tok, NameTok: name, Module: name.Literal.(string)}, nil
}

// saveStatement parses 💾 data filename 🔚.
func (p *Parser) saveStatement() (Stmt, error) {
	tok := p.advance()
	data, err := p.expression()
	if err != nil {
		return nil, err
	}
	filename, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.eat(END_STATEMENT); err != nil {
		return nil, err
	}
	return &Save{Tok: tok, Data: data, Filename: filename}, nil
}

// fileAppendStatement parses ➕💾 data filename 🔚.
func (p *Parser) fileAppendStatement() (Stmt, error) {
	tok := p.advance()
	data, err := p.expression()
	if err != nil {
		return nil, err
	}
	filename, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.eat(END_STATEMENT); err != nil {
		return nil, err
	}
	return &FileAppend{Tok: tok, Data: data, Filename: filename}, nil
}

// sleepStatement parses ⏱️ expr 🔚.
func (p *Parser) sleepStatement() (Stmt, error) {
	tok := p.advance()
	duration, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.eat(END_STATEMENT); err != nil {
		return nil, err
	}
	return &Sleep{Tok: tok, Duration: duration}, nil
}

// --- expressions ---

// binaryLevel parses "next level, then fold ops left-associatively".
func (p *Parser) binaryLevel(next func() (Expr, error), ops ...TokenType) (Expr, error) {
	left, err := next()
	if err != nil {
		return nil, err
	}
	for {
		matched := false
		for _, op := range ops {
			if p.cur().Type == op {
				matched = true
				break
			}
		}
		if !matched {
			return left, nil
		}
		opTok := p.advance()
		right, err := next()
		if err != nil {
			return nil, err
		}
		left = &BinaryOp{Op: opTok, Left: left, Right: right}
	}
}

func (p *Parser) expression() (Expr, error) {
	return p.comparison()
}

func (p *Parser) comparison() (Expr, error) {
	return p.binaryLevel(p.additive, CMP_EQ, CMP_GT, CMP_LT)
}

func (p *Parser) additive() (Expr, error) {
	return p.binaryLevel(p.multiplicative, OP_PLUS, OP_MINUS)
}

func (p *Parser) multiplicative() (Expr, error) {
	return p.binaryLevel(p.unary, OP_MUL, OP_DIV)
}

// unary parses the right-recursive prefix forms: 🚫, 🎭 typekw, 📖.
func (p *Parser) unary() (Expr, error) {
	switch p.cur().Type {
	case NOT:
		op := p.advance()
		operand, err := p.unary()
		if err != nil {
			return nil, err
		}
		return &UnaryOp{Op: op, Operand: operand}, nil
	case KW_CAST:
		tok := p.advance()
		typeTok := p.cur()
		switch typeTok.Type {
		case KW_INT, KW_REAL, KW_STRING:
			p.advance()
		default:
			return nil, p.errAt(typeTok, fmt.Sprintf("expected 🔢, 👽 or 💬 after 🎭, found %v", typeTok.Type))
		}
		operand, err := p.unary()
		if err != nil {
			return nil, err
		}
		return &TypeCast{Tok: tok, Type: typeTok.Type, Operand: operand}, nil
	case KW_FREAD:
		tok := p.advance()
		filename, err := p.unary()
		if err != nil {
			return nil, err
		}
		return &FileReadExpr{Tok: tok, Filename: filename}, nil
	}
	return p.postfix()
}

// postfix parses an atom followed by any chain of calls and index reads.
func (p *Parser) postfix() (Expr, error) {
	expr, err := p.atom()
	if err != nil {
		return nil, err
	}
	for {
		switch p.cur().Type {
		case LPAREN:
			tok := p.advance()
			args, err := p.arguments(RPAREN)
			if err != nil {
				return nil, err
			}
			expr = &FunctionCall{Tok: tok, Callee: expr, Args: args}
		case LBRACKET:
			tok := p.advance()
			index, err := p.expression()
			if err != nil {
				return nil, err
			}
			if _, err := p.eat(RBRACKET); err != nil {
				return nil, err
			}
			expr = &ListIndexRead{Tok: tok, List: expr, Index: index}
		default:
			return expr, nil
		}
	}
}

// arguments parses [expr (, expr)*] up to and including the closing token.
func (p *Parser) arguments(close TokenType) ([]Expr, error) {
	var args []Expr
	if p.cur().Type == close {
		p.advance()
		return args, nil
	}
	for {
		arg, err := p.expression()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		if p.cur().Type == COMMA {
			p.advance()
			continue
		}
		if _, err := p.eat(close); err != nil {
			return nil, err
		}
		return args, nil
	}
}

func (p *Parser) atom() (Expr, error) {
	tok := p.cur()
	switch tok.Type {
	case INT:
		p.advance()
		return &NumberLiteral{Tok: tok, Int: tok.Literal.(int64)}, nil
	case REAL:
		p.advance()
		return &NumberLiteral{Tok: tok, IsReal: true, Real: tok.Literal.(float64)}, nil
	case STRING:
		p.advance()
		return &StringLiteral{Tok: tok, Value: tok.Literal.(string)}, nil
	case IDENT:
		p.advance()
		return &VariableRead{Tok: tok, Name: tok.Literal.(string)}, nil
	case LBRACKET:
		p.advance()
		elems, err := p.arguments(RBRACKET)
		if err != nil {
			return nil, err
		}
		return &ListLiteral{Tok: tok, Elems: elems}, nil
	case LPAREN:
		p.advance()
		expr, err := p.expression()
		if err != nil {
			return nil, err
		}
		if _, err := p.eat(RPAREN); err != nil {
			return nil, err
		}
		return expr, nil
	}
	return nil, p.errAt(tok, fmt.Sprintf("expected a number, string, list, identifier or '(', found %v", tok.Type))
}
