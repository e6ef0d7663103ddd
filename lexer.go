// lexer.go — scanner for Wolfera source text
//
// OVERVIEW
// --------
// Turns raw source into the flat token stream consumed by the parser
// (parser.go). The scanner is a single forward pass over bytes with 1-based
// lines and 0-based columns, matching the coordinates carried by Span
// (errors.go).
//
// Lexical shape of the language:
//   - '#' starts a line comment; '#*' ... '*#' is a block comment.
//   - Newlines and ';' are significant: both produce NEWLINE tokens, which
//     the parser uses as statement separators.
//   - Strings are double-quoted with \n \t \" \\ escapes. The prefix f"
//     produces an FSTRING token whose literal keeps '{'/'}' raw for the
//     interpolation pass (interpreter_eval.go).
//   - Numbers with a single '.' are FLOAT, otherwise INT.
//   - Identifiers admit letters, digits, '$' and '_'; keyword identifiers
//     become their dedicated token types.
//
// Errors are *Error values of kind IllegalCharacter or ExpectedCharacter.
package wolfera

import (
	"strconv"
	"strings"
)

////////////////////////////////////////////////////////////////////////////////
//                                  PUBLIC API
////////////////////////////////////////////////////////////////////////////////

// TokenType represents the kind of token.
type TokenType int

const (
	// Special
	EOF TokenType = iota
	NEWLINE

	// Literals & identifiers
	INT
	FLOAT
	STRING
	FSTRING
	IDENT

	// Operators
	PLUS
	MINUS
	MUL
	DIV
	MOD
	POW
	ASSIGN // "="
	EQ     // "=="
	NEQ    // "!="
	LESS
	GREATER
	LESS_EQ
	GREATER_EQ
	ARROW // "->"

	// Punctuation
	LPAREN
	RPAREN
	LSQUARE
	RSQUARE
	LCURLY
	RCURLY
	COLON
	COMMA
	DOT

	// Keywords
	AND
	OR
	NOT
	IF
	ELIF
	ELSE
	FOR
	TO
	STEP
	WHILE
	IN
	FUN
	RETURN
	CONTINUE
	BREAK
	IMPORT
	DO
	TRY
	CATCH
	AS
	FROM
	SWITCH
	CASE
	CONST
	NAMESPACE
	STRUCT
	TRUE
	FALSE
	NULL
)

var keywords = map[string]TokenType{
	"and":       AND,
	"or":        OR,
	"not":       NOT,
	"if":        IF,
	"elif":      ELIF,
	"else":      ELSE,
	"for":       FOR,
	"to":        TO,
	"step":      STEP,
	"while":     WHILE,
	"in":        IN,
	"fun":       FUN,
	"return":    RETURN,
	"continue":  CONTINUE,
	"break":     BREAK,
	"import":    IMPORT,
	"do":        DO,
	"try":       TRY,
	"catch":     CATCH,
	"as":        AS,
	"from":      FROM,
	"switch":    SWITCH,
	"case":      CASE,
	"const":     CONST,
	"namespace": NAMESPACE,
	"struct":    STRUCT,
	"true":      TRUE,
	"false":     FALSE,
	"null":      NULL,
}

// Token is one lexical unit. Literal holds the decoded payload for INT
// (int64), FLOAT (float64), STRING/FSTRING (string) and IDENT (string).
type Token struct {
	Type    TokenType
	Lexeme  string
	Literal interface{}
	Span    Span
}

// Lexer scans a Wolfera source string into tokens.
type Lexer struct {
	file string
	src  string

	start int // start index of current token
	cur   int // current index
	line  int // 1-based
	col   int // 0-based column within line

	tokStartLine int
	tokStartCol  int

	tokens []Token
}

// NewLexer creates a lexer for the given source. The file name is only used
// in diagnostics.
func NewLexer(file, src string) *Lexer {
	return &Lexer{file: file, src: src, line: 1}
}

// Scan tokenizes the whole source. The returned slice always ends with an
// EOF token when err is nil.
func (l *Lexer) Scan() ([]Token, *Error) {
	for !l.isAtEnd() {
		l.start = l.cur
		l.tokStartLine = l.line
		l.tokStartCol = l.col
		if err := l.scanToken(); err != nil {
			return nil, err
		}
	}
	l.tokStartLine = l.line
	l.tokStartCol = l.col
	l.addToken(EOF, nil)
	return l.tokens, nil
}

//// END_OF_PUBLIC

////////////////////////////////////////////////////////////////////////////////
//                                   PRIVATE
////////////////////////////////////////////////////////////////////////////////

func (l *Lexer) isAtEnd() bool { return l.cur >= len(l.src) }

func (l *Lexer) peek() (byte, bool) {
	if l.isAtEnd() {
		return 0, false
	}
	return l.src[l.cur], true
}

func (l *Lexer) peekN(n int) (byte, bool) {
	idx := l.cur + n
	if idx >= len(l.src) {
		return 0, false
	}
	return l.src[idx], true
}

func (l *Lexer) advance() (byte, bool) {
	if l.isAtEnd() {
		return 0, false
	}
	ch := l.src[l.cur]
	l.cur++
	if ch == '\n' {
		l.line++
		l.col = 0
	} else {
		l.col++
	}
	return ch, true
}

func (l *Lexer) match(expected byte) bool {
	if ch, ok := l.peek(); ok && ch == expected {
		l.advance()
		return true
	}
	return false
}

func (l *Lexer) addToken(tt TokenType, lit interface{}) {
	l.tokens = append(l.tokens, Token{
		Type:    tt,
		Lexeme:  l.src[l.start:l.cur],
		Literal: lit,
		Span: Span{
			Line:    l.tokStartLine,
			Col:     l.tokStartCol,
			EndLine: l.line,
			EndCol:  l.col,
		},
	})
}

func (l *Lexer) tokSpan() Span {
	return Span{Line: l.tokStartLine, Col: l.tokStartCol, EndLine: l.line, EndCol: l.col}
}

func (l *Lexer) scanToken() *Error {
	ch, _ := l.advance()
	switch ch {
	case ' ', '\t', '\r':
		// skip
	case '\n', ';':
		l.addToken(NEWLINE, nil)
	case '#':
		l.skipComment()
	case '+':
		l.addToken(PLUS, nil)
	case '*':
		l.addToken(MUL, nil)
	case '/':
		l.addToken(DIV, nil)
	case '%':
		l.addToken(MOD, nil)
	case '^':
		l.addToken(POW, nil)
	case '(':
		l.addToken(LPAREN, nil)
	case ')':
		l.addToken(RPAREN, nil)
	case '[':
		l.addToken(LSQUARE, nil)
	case ']':
		l.addToken(RSQUARE, nil)
	case '{':
		l.addToken(LCURLY, nil)
	case '}':
		l.addToken(RCURLY, nil)
	case ',':
		l.addToken(COMMA, nil)
	case ':':
		l.addToken(COLON, nil)
	case '.':
		l.addToken(DOT, nil)
	case '-':
		if l.match('>') {
			l.addToken(ARROW, nil)
		} else {
			l.addToken(MINUS, nil)
		}
	case '=':
		if l.match('=') {
			l.addToken(EQ, nil)
		} else {
			l.addToken(ASSIGN, nil)
		}
	case '<':
		if l.match('=') {
			l.addToken(LESS_EQ, nil)
		} else {
			l.addToken(LESS, nil)
		}
	case '>':
		if l.match('=') {
			l.addToken(GREATER_EQ, nil)
		} else {
			l.addToken(GREATER, nil)
		}
	case '!':
		if l.match('=') {
			l.addToken(NEQ, nil)
		} else {
			return lexErr(ErrExpectedChar, l.tokSpan(), l.file, l.src, "'=' (after '!')")
		}
	case '"':
		return l.scanString(false)
	default:
		if isDigit(ch) {
			l.scanNumber()
			return nil
		}
		if isIdentStart(ch) {
			return l.scanIdentifier(ch)
		}
		return lexErr(ErrIllegalChar, l.tokSpan(), l.file, l.src, "'"+string(ch)+"'")
	}
	return nil
}

func (l *Lexer) skipComment() {
	multiline := false
	if ch, ok := l.peek(); ok && ch == '*' {
		multiline = true
		l.advance()
	}
	for !l.isAtEnd() {
		ch, _ := l.advance()
		if multiline {
			if ch == '*' {
				if next, ok := l.peek(); ok && next == '#' {
					l.advance()
					return
				}
			}
		} else if ch == '\n' {
			// the newline terminating a line comment still separates statements
			l.addToken(NEWLINE, nil)
			return
		}
	}
}

func (l *Lexer) scanNumber() {
	dots := 0
	for {
		ch, ok := l.peek()
		if !ok {
			break
		}
		if ch == '.' {
			next, ok2 := l.peekN(1)
			if dots == 1 || !ok2 || !isDigit(next) {
				break
			}
			dots++
			l.advance()
			continue
		}
		if !isDigit(ch) {
			break
		}
		l.advance()
	}
	text := l.src[l.start:l.cur]
	if dots == 0 {
		n, _ := strconv.ParseInt(text, 10, 64)
		l.addToken(INT, n)
	} else {
		f, _ := strconv.ParseFloat(text, 64)
		l.addToken(FLOAT, f)
	}
}

// scanString consumes a double-quoted string body. For f-strings the '{' and
// '}' bytes pass through untouched so the evaluator can find interpolation
// segments; escapes are decoded in both cases.
func (l *Lexer) scanString(fstr bool) *Error {
	var b strings.Builder
	for {
		ch, ok := l.advance()
		if !ok {
			return lexErr(ErrExpectedChar, l.tokSpan(), l.file, l.src, "'\"' (unterminated string)")
		}
		if ch == '"' {
			break
		}
		if ch == '\\' {
			esc, ok := l.advance()
			if !ok {
				return lexErr(ErrExpectedChar, l.tokSpan(), l.file, l.src, "'\"' (unterminated string)")
			}
			switch esc {
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			case '\\':
				b.WriteByte('\\')
			case '"':
				b.WriteByte('"')
			default:
				b.WriteByte(esc)
			}
			continue
		}
		b.WriteByte(ch)
	}
	if fstr {
		l.addToken(FSTRING, b.String())
	} else {
		l.addToken(STRING, b.String())
	}
	return nil
}

func (l *Lexer) scanIdentifier(first byte) *Error {
	// f"..." is an f-string, not the identifier f.
	if first == 'f' {
		if ch, ok := l.peek(); ok && ch == '"' {
			l.advance()
			return l.scanString(true)
		}
	}
	for {
		ch, ok := l.peek()
		if !ok || !isIdentPart(ch) {
			break
		}
		l.advance()
	}
	name := l.src[l.start:l.cur]
	if tt, ok := keywords[name]; ok {
		l.addToken(tt, name)
	} else {
		l.addToken(IDENT, name)
	}
	return nil
}

// helpers

func isDigit(b byte) bool { return b >= '0' && b <= '9' }
func isIdentStart(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || b == '_' || b == '$'
}
func isIdentPart(b byte) bool { return isIdentStart(b) || isDigit(b) }
