// parser.go — recursive-descent parser for Wolfera
//
// OVERVIEW
// --------
// Consumes the token stream from lexer.go and produces the tagged AST of
// ast.go. Expressions use precedence climbing with the fixed table
//
//	or < and < comparison < additive < multiplicative < power < unary < postfix
//
// where power ('^') is right-associative and postfix covers call '()',
// index '[]' and member '.'.
//
// The language is expression-oriented: control constructs (if, loops,
// switch, try, fun, struct, do) are parsed in expression position so they
// can appear nested inside larger expressions. Statements are separated by
// NEWLINE tokens (newlines or ';'); block bodies are '{ }' delimited, and
// functions, if-branches and loop bodies may instead use a single-expression
// arrow body: '-> expr'.
//
// Error policy: the first syntax error aborts the parse and is returned as a
// *Error of kind InvalidSyntax carrying the offending token's span. There is
// no recovery. An error whose offending token is EOF is flagged Incomplete,
// which the REPL uses to request continuation lines.
package wolfera

////////////////////////////////////////////////////////////////////////////////
//                                  PUBLIC API
////////////////////////////////////////////////////////////////////////////////

// Parse lexes and parses a complete source string and returns the program
// block.
func Parse(file, src string) (*BlockNode, *Error) {
	toks, err := NewLexer(file, src).Scan()
	if err != nil {
		return nil, err
	}
	return ParseTokens(file, src, toks)
}

// ParseTokens parses an already-lexed token stream. The source text is only
// used to enrich diagnostics.
func ParseTokens(file, src string, toks []Token) (*BlockNode, *Error) {
	p := &parser{file: file, src: src, toks: toks}
	return p.program()
}

//// END_OF_PUBLIC

////////////////////////////////////////////////////////////////////////////////
//                                   PRIVATE
////////////////////////////////////////////////////////////////////////////////

type parser struct {
	file string
	src  string
	toks []Token
	pos  int
}

func (p *parser) cur() Token { return p.toks[p.pos] }

func (p *parser) peek() Token {
	if p.pos+1 < len(p.toks) {
		return p.toks[p.pos+1]
	}
	return p.toks[len(p.toks)-1]
}

func (p *parser) advance() Token {
	t := p.toks[p.pos]
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return t
}

func (p *parser) check(tt TokenType) bool { return p.cur().Type == tt }

func (p *parser) accept(tt TokenType) bool {
	if p.check(tt) {
		p.advance()
		return true
	}
	return false
}

func (p *parser) errHere(msg string) *Error {
	tok := p.cur()
	e := syntaxErr(tok.Span, p.file, p.src, msg)
	e.Incomplete = tok.Type == EOF
	return e
}

func (p *parser) expect(tt TokenType, what string) (Token, *Error) {
	if !p.check(tt) {
		return Token{}, p.errHere("Expected " + what)
	}
	return p.advance(), nil
}

func (p *parser) skipNewlines() int {
	n := 0
	for p.check(NEWLINE) {
		p.advance()
		n++
	}
	return n
}

func spanBetween(from, to Span) Span {
	if from.IsZero() {
		return to
	}
	return Span{Line: from.Line, Col: from.Col, EndLine: to.EndLine, EndCol: to.EndCol}
}

func (p *parser) prevSpan() Span {
	if p.pos == 0 {
		return p.cur().Span
	}
	return p.toks[p.pos-1].Span
}

// --- program / blocks --------------------------------------------------------

func (p *parser) program() (*BlockNode, *Error) {
	blk, err := p.statements()
	if err != nil {
		return nil, err
	}
	if !p.check(EOF) {
		return nil, p.errHere("Token cannot appear after previous tokens")
	}
	return blk, nil
}

// statements parses newline-separated statements until EOF or '}'.
func (p *parser) statements() (*BlockNode, *Error) {
	start := p.cur().Span
	var stmts []Node
	p.skipNewlines()
	for !p.check(EOF) && !p.check(RCURLY) {
		st, err := p.statement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, st)
		if p.skipNewlines() == 0 {
			break
		}
	}
	blk := &BlockNode{Stmts: stmts}
	blk.span = spanBetween(start, p.prevSpan())
	return blk, nil
}

// block parses '{ statements }'.
func (p *parser) block() (Node, *Error) {
	p.skipNewlines()
	if _, err := p.expect(LCURLY, "'{'"); err != nil {
		return nil, err
	}
	blk, err := p.statements()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(RCURLY, "'}'"); err != nil {
		return nil, err
	}
	return blk, nil
}

// body parses either an arrow body '-> expr' or a braced block.
func (p *parser) body() (Node, *Error) {
	if p.accept(ARROW) {
		return p.expr()
	}
	return p.block()
}

// --- statements ---------------------------------------------------------------

func (p *parser) statement() (Node, *Error) {
	switch p.cur().Type {
	case RETURN:
		tok := p.advance()
		var val Node
		if !p.check(NEWLINE) && !p.check(EOF) && !p.check(RCURLY) {
			v, err := p.expr()
			if err != nil {
				return nil, err
			}
			val = v
		}
		n := &ReturnNode{Value: val}
		n.span = spanBetween(tok.Span, p.prevSpan())
		return n, nil
	case CONTINUE:
		tok := p.advance()
		n := &ContinueNode{}
		n.span = tok.Span
		return n, nil
	case BREAK:
		tok := p.advance()
		n := &BreakNode{}
		n.span = tok.Span
		return n, nil
	case IMPORT:
		return p.importStmt()
	case FROM:
		return p.fromImportStmt()
	}
	return p.expr()
}

func (p *parser) importStmt() (Node, *Error) {
	tok := p.advance() // 'import'
	if p.check(STRING) {
		str := p.advance()
		n := &ImportFileNode{Path: str.Literal.(string)}
		n.span = spanBetween(tok.Span, str.Span)
		return n, nil
	}
	path, err := p.dottedName()
	if err != nil {
		return nil, err
	}
	alias := ""
	if p.accept(AS) {
		id, err := p.expect(IDENT, "identifier")
		if err != nil {
			return nil, err
		}
		alias = id.Literal.(string)
	}
	n := &ImportNode{Path: path, Alias: alias}
	n.span = spanBetween(tok.Span, p.prevSpan())
	return n, nil
}

func (p *parser) fromImportStmt() (Node, *Error) {
	tok := p.advance() // 'from'
	path, err := p.dottedName()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(IMPORT, "'import'"); err != nil {
		return nil, err
	}
	if _, err := p.expect(LCURLY, "'{'"); err != nil {
		return nil, err
	}
	var names []string
	for {
		id, err := p.expect(IDENT, "identifier")
		if err != nil {
			return nil, err
		}
		names = append(names, id.Literal.(string))
		if !p.accept(COMMA) {
			break
		}
	}
	end, err := p.expect(RCURLY, "'}'")
	if err != nil {
		return nil, err
	}
	n := &FromImportNode{Path: path, Names: names}
	n.span = spanBetween(tok.Span, end.Span)
	return n, nil
}

func (p *parser) dottedName() ([]string, *Error) {
	id, err := p.expect(IDENT, "identifier")
	if err != nil {
		return nil, err
	}
	parts := []string{id.Literal.(string)}
	for p.accept(DOT) {
		id, err := p.expect(IDENT, "identifier")
		if err != nil {
			return nil, err
		}
		parts = append(parts, id.Literal.(string))
	}
	return parts, nil
}

// --- expressions ----------------------------------------------------------------

func (p *parser) expr() (Node, *Error) {
	// const declaration
	if p.check(CONST) {
		tok := p.advance()
		id, err := p.expect(IDENT, "identifier")
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(ASSIGN, "'='"); err != nil {
			return nil, err
		}
		val, err := p.expr()
		if err != nil {
			return nil, err
		}
		n := &AssignNode{Name: id.Literal.(string), Value: val, Const: true}
		n.span = spanBetween(tok.Span, val.Span())
		return n, nil
	}

	// plain assignment needs a two-token lookahead: IDENT '='
	if p.check(IDENT) && p.peek().Type == ASSIGN {
		id := p.advance()
		p.advance() // '='
		val, err := p.expr()
		if err != nil {
			return nil, err
		}
		n := &AssignNode{Name: id.Literal.(string), Value: val}
		n.span = spanBetween(id.Span, val.Span())
		return n, nil
	}

	node, err := p.orExpr()
	if err != nil {
		return nil, err
	}

	// index/member write targets surface here: a[i] = v, a.f = v
	if p.check(ASSIGN) {
		switch t := node.(type) {
		case *IndexGetNode:
			p.advance()
			val, err := p.expr()
			if err != nil {
				return nil, err
			}
			n := &IndexSetNode{Target: t.Target, Index: t.Index, Value: val}
			n.span = spanBetween(t.Span(), val.Span())
			return n, nil
		case *MemberGetNode:
			p.advance()
			val, err := p.expr()
			if err != nil {
				return nil, err
			}
			n := &MemberSetNode{Target: t.Target, Name: t.Name, Value: val}
			n.span = spanBetween(t.Span(), val.Span())
			return n, nil
		default:
			return nil, p.errHere("Invalid assignment")
		}
	}
	return node, nil
}

func (p *parser) binOp(next func() (Node, *Error), ops ...TokenType) (Node, *Error) {
	left, err := next()
	if err != nil {
		return nil, err
	}
	for {
		matched := false
		for _, op := range ops {
			if p.check(op) {
				matched = true
				break
			}
		}
		if !matched {
			break
		}
		opTok := p.advance()
		right, err := next()
		if err != nil {
			return nil, err
		}
		n := &BinOpNode{Op: opTok.Type, Left: left, Right: right}
		n.span = spanBetween(left.Span(), right.Span())
		left = n
	}
	return left, nil
}

func (p *parser) orExpr() (Node, *Error)  { return p.binOp(p.andExpr, OR) }
func (p *parser) andExpr() (Node, *Error) { return p.binOp(p.compExpr, AND) }

func (p *parser) compExpr() (Node, *Error) {
	return p.binOp(p.addExpr, EQ, NEQ, LESS, GREATER, LESS_EQ, GREATER_EQ)
}
func (p *parser) addExpr() (Node, *Error) { return p.binOp(p.mulExpr, PLUS, MINUS) }
func (p *parser) mulExpr() (Node, *Error) { return p.binOp(p.powExpr, MUL, DIV, MOD) }

// powExpr is right-associative: 2^3^2 == 2^(3^2).
func (p *parser) powExpr() (Node, *Error) {
	base, err := p.unaryExpr()
	if err != nil {
		return nil, err
	}
	if !p.check(POW) {
		return base, nil
	}
	p.advance()
	exp, err := p.powExpr()
	if err != nil {
		return nil, err
	}
	n := &BinOpNode{Op: POW, Left: base, Right: exp}
	n.span = spanBetween(base.Span(), exp.Span())
	return n, nil
}

func (p *parser) unaryExpr() (Node, *Error) {
	if p.check(MINUS) || p.check(PLUS) || p.check(NOT) {
		opTok := p.advance()
		operand, err := p.unaryExpr()
		if err != nil {
			return nil, err
		}
		if opTok.Type == PLUS {
			return operand, nil
		}
		n := &UnaryOpNode{Op: opTok.Type, Operand: operand}
		n.span = spanBetween(opTok.Span, operand.Span())
		return n, nil
	}
	return p.postfixExpr()
}

func (p *parser) postfixExpr() (Node, *Error) {
	node, err := p.atom()
	if err != nil {
		return nil, err
	}
	for {
		switch p.cur().Type {
		case LPAREN:
			p.advance()
			var args []Node
			if !p.check(RPAREN) {
				for {
					arg, err := p.expr()
					if err != nil {
						return nil, err
					}
					args = append(args, arg)
					if !p.accept(COMMA) {
						break
					}
				}
			}
			end, err := p.expect(RPAREN, "',' or ')'")
			if err != nil {
				return nil, err
			}
			n := &CallNode{Callee: node, Args: args}
			n.span = spanBetween(node.Span(), end.Span)
			node = n
		case LSQUARE:
			p.advance()
			idx, err := p.expr()
			if err != nil {
				return nil, err
			}
			end, err := p.expect(RSQUARE, "']'")
			if err != nil {
				return nil, err
			}
			n := &IndexGetNode{Target: node, Index: idx}
			n.span = spanBetween(node.Span(), end.Span)
			node = n
		case DOT:
			p.advance()
			id, err := p.expect(IDENT, "identifier")
			if err != nil {
				return nil, err
			}
			n := &MemberGetNode{Target: node, Name: id.Literal.(string)}
			n.span = spanBetween(node.Span(), id.Span)
			node = n
		default:
			return node, nil
		}
	}
}

// --- atoms ---------------------------------------------------------------------

func (p *parser) atom() (Node, *Error) {
	tok := p.cur()
	switch tok.Type {
	case INT:
		p.advance()
		n := &IntNode{Value: tok.Literal.(int64)}
		n.span = tok.Span
		return n, nil
	case FLOAT:
		p.advance()
		n := &FloatNode{Value: tok.Literal.(float64)}
		n.span = tok.Span
		return n, nil
	case STRING:
		p.advance()
		n := &StringNode{Value: tok.Literal.(string)}
		n.span = tok.Span
		return n, nil
	case FSTRING:
		return p.fstringAtom()
	case TRUE, FALSE:
		p.advance()
		n := &BoolNode{Value: tok.Type == TRUE}
		n.span = tok.Span
		return n, nil
	case NULL:
		p.advance()
		n := &NullNode{}
		n.span = tok.Span
		return n, nil
	case IDENT:
		p.advance()
		// 'Name{}' constructs a struct instance; anything else after the
		// identifier is left to the postfix chain.
		if p.check(LCURLY) && p.peek().Type == RCURLY {
			p.advance()
			end := p.advance()
			n := &StructInitNode{Name: tok.Literal.(string)}
			n.span = spanBetween(tok.Span, end.Span)
			return n, nil
		}
		n := &IdentNode{Name: tok.Literal.(string)}
		n.span = tok.Span
		return n, nil
	case LPAREN:
		p.advance()
		inner, err := p.expr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(RPAREN, "')'"); err != nil {
			return nil, err
		}
		return inner, nil
	case LSQUARE:
		return p.listAtom()
	case LCURLY:
		return p.dictAtom()
	case IF:
		return p.ifExpr()
	case FOR:
		return p.forExpr()
	case WHILE:
		return p.whileExpr()
	case FUN:
		return p.funcDef()
	case SWITCH:
		return p.switchExpr()
	case TRY:
		return p.tryExpr()
	case STRUCT:
		return p.structDef()
	case DO, NAMESPACE:
		p.advance()
		bodyBlk, err := p.block()
		if err != nil {
			return nil, err
		}
		n := &DoNode{Body: bodyBlk}
		n.span = spanBetween(tok.Span, bodyBlk.Span())
		return n, nil
	}
	return nil, p.errHere("Expected int, float, identifier, '+', '-', '(', '[', 'if', 'for', 'while', 'fun' or 'not'")
}

func (p *parser) listAtom() (Node, *Error) {
	start := p.advance() // '['
	var elems []Node
	if !p.check(RSQUARE) {
		for {
			el, err := p.expr()
			if err != nil {
				return nil, err
			}
			elems = append(elems, el)
			if !p.accept(COMMA) {
				break
			}
		}
	}
	end, err := p.expect(RSQUARE, "',' or ']'")
	if err != nil {
		return nil, err
	}
	n := &ListNode{Elems: elems}
	n.span = spanBetween(start.Span, end.Span)
	return n, nil
}

func (p *parser) dictAtom() (Node, *Error) {
	start := p.advance() // '{'
	var keys, vals []Node
	p.skipNewlines()
	if !p.check(RCURLY) {
		for {
			k, err := p.expr()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(COLON, "':'"); err != nil {
				return nil, err
			}
			v, err := p.expr()
			if err != nil {
				return nil, err
			}
			keys = append(keys, k)
			vals = append(vals, v)
			p.skipNewlines()
			if !p.accept(COMMA) {
				break
			}
			p.skipNewlines()
		}
		p.skipNewlines()
	}
	end, err := p.expect(RCURLY, "',' or '}'")
	if err != nil {
		return nil, err
	}
	n := &DictNode{Keys: keys, Vals: vals}
	n.span = spanBetween(start.Span, end.Span)
	return n, nil
}

func (p *parser) fstringAtom() (Node, *Error) {
	tok := p.advance()
	raw := tok.Literal.(string)
	n := &FStringNode{Raw: raw}
	n.span = tok.Span
	// The positional form consumes up to one trailing argument per empty
	// '{}' placeholder: f"a {} b {}", x, y
	want := countEmptyPlaceholders(raw)
	for len(n.Args) < want && p.check(COMMA) {
		p.advance()
		arg, err := p.expr()
		if err != nil {
			return nil, err
		}
		n.Args = append(n.Args, arg)
	}
	if len(n.Args) > 0 {
		n.span = spanBetween(tok.Span, p.prevSpan())
	}
	return n, nil
}

// countEmptyPlaceholders counts '{}' pairs in raw, skipping '{{' escapes.
func countEmptyPlaceholders(raw string) int {
	count := 0
	for i := 0; i < len(raw); i++ {
		if raw[i] != '{' {
			continue
		}
		if i+1 < len(raw) && raw[i+1] == '{' {
			i++
			continue
		}
		if i+1 < len(raw) && raw[i+1] == '}' {
			count++
			i++
		}
	}
	return count
}

// --- control-flow atoms ----------------------------------------------------------

func (p *parser) ifExpr() (Node, *Error) {
	start := p.advance() // 'if'
	n := &IfNode{}
	cond, err := p.expr()
	if err != nil {
		return nil, err
	}
	ifBody, err := p.body()
	if err != nil {
		return nil, err
	}
	n.Cases = append(n.Cases, IfCase{Cond: cond, Body: ifBody})
	for p.check(ELIF) {
		p.advance()
		c, err := p.expr()
		if err != nil {
			return nil, err
		}
		b, err := p.body()
		if err != nil {
			return nil, err
		}
		n.Cases = append(n.Cases, IfCase{Cond: c, Body: b})
	}
	if p.accept(ELSE) {
		b, err := p.body()
		if err != nil {
			return nil, err
		}
		n.Else = b
	}
	n.span = spanBetween(start.Span, p.prevSpan())
	return n, nil
}

func (p *parser) forExpr() (Node, *Error) {
	start := p.advance() // 'for'
	id, err := p.expect(IDENT, "identifier")
	if err != nil {
		return nil, err
	}
	switch {
	case p.accept(IN):
		iter, err := p.expr()
		if err != nil {
			return nil, err
		}
		bodyN, err := p.body()
		if err != nil {
			return nil, err
		}
		n := &ForInNode{Var: id.Literal.(string), Iter: iter, Body: bodyN}
		n.span = spanBetween(start.Span, bodyN.Span())
		return n, nil
	case p.accept(ASSIGN):
		startVal, err := p.expr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(TO, "'to'"); err != nil {
			return nil, err
		}
		endVal, err := p.expr()
		if err != nil {
			return nil, err
		}
		var stepVal Node
		if p.accept(STEP) {
			stepVal, err = p.expr()
			if err != nil {
				return nil, err
			}
		}
		bodyN, err := p.body()
		if err != nil {
			return nil, err
		}
		n := &ForRangeNode{Var: id.Literal.(string), Start: startVal, End: endVal, Step: stepVal, Body: bodyN}
		n.span = spanBetween(start.Span, bodyN.Span())
		return n, nil
	}
	return nil, p.errHere("Expected '=' or 'in'")
}

func (p *parser) whileExpr() (Node, *Error) {
	start := p.advance() // 'while'
	cond, err := p.expr()
	if err != nil {
		return nil, err
	}
	bodyN, err := p.body()
	if err != nil {
		return nil, err
	}
	n := &WhileNode{Cond: cond, Body: bodyN}
	n.span = spanBetween(start.Span, bodyN.Span())
	return n, nil
}

func (p *parser) funcDef() (Node, *Error) {
	start := p.advance() // 'fun'
	name := ""
	if p.check(IDENT) {
		name = p.advance().Literal.(string)
	}
	if _, err := p.expect(LPAREN, "'('"); err != nil {
		return nil, err
	}
	var params []Param
	seenDefault := false
	if !p.check(RPAREN) {
		for {
			id, err := p.expect(IDENT, "identifier")
			if err != nil {
				return nil, err
			}
			param := Param{Name: id.Literal.(string)}
			if p.accept(ASSIGN) {
				def, err := p.expr()
				if err != nil {
					return nil, err
				}
				param.Default = def
				seenDefault = true
			} else if seenDefault {
				return nil, p.errHere("Expected optional parameter")
			}
			params = append(params, param)
			if !p.accept(COMMA) {
				break
			}
		}
	}
	if _, err := p.expect(RPAREN, "',', ')' or '='"); err != nil {
		return nil, err
	}
	arrow := p.check(ARROW)
	bodyN, err := p.body()
	if err != nil {
		return nil, err
	}
	n := &FuncDefNode{Name: name, Params: params, Body: bodyN, Arrow: arrow}
	n.span = spanBetween(start.Span, bodyN.Span())
	return n, nil
}

func (p *parser) switchExpr() (Node, *Error) {
	start := p.advance() // 'switch'
	subject, err := p.expr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(LCURLY, "'{'"); err != nil {
		return nil, err
	}
	p.skipNewlines()
	n := &SwitchNode{Subject: subject}
	for p.check(CASE) {
		p.advance()
		match, err := p.expr()
		if err != nil {
			return nil, err
		}
		caseBody, err := p.block()
		if err != nil {
			return nil, err
		}
		n.Cases = append(n.Cases, SwitchCase{Match: match, Body: caseBody})
		p.skipNewlines()
	}
	if p.accept(ELSE) {
		elseBody, err := p.block()
		if err != nil {
			return nil, err
		}
		n.Else = elseBody
		p.skipNewlines()
	}
	end, err := p.expect(RCURLY, "'}'")
	if err != nil {
		return nil, err
	}
	n.span = spanBetween(start.Span, end.Span)
	return n, nil
}

func (p *parser) tryExpr() (Node, *Error) {
	start := p.advance() // 'try'
	tryBlk, err := p.block()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(CATCH, "'catch'"); err != nil {
		return nil, err
	}
	if _, err := p.expect(AS, "'as'"); err != nil {
		return nil, err
	}
	id, err := p.expect(IDENT, "identifier")
	if err != nil {
		return nil, err
	}
	catchBlk, err := p.block()
	if err != nil {
		return nil, err
	}
	n := &TryNode{Try: tryBlk, CatchVar: id.Literal.(string), Catch: catchBlk}
	n.span = spanBetween(start.Span, catchBlk.Span())
	return n, nil
}

func (p *parser) structDef() (Node, *Error) {
	start := p.advance() // 'struct'
	id, err := p.expect(IDENT, "identifier")
	if err != nil {
		return nil, err
	}
	p.skipNewlines()
	if _, err := p.expect(LCURLY, "'{'"); err != nil {
		return nil, err
	}
	p.skipNewlines()
	var fields []string
	for p.check(IDENT) {
		fields = append(fields, p.advance().Literal.(string))
		p.accept(COMMA)
		p.skipNewlines()
	}
	end, err := p.expect(RCURLY, "'}' or identifier")
	if err != nil {
		return nil, err
	}
	n := &StructDefNode{Name: id.Literal.(string), Fields: fields}
	n.span = spanBetween(start.Span, end.Span)
	return n, nil
}
