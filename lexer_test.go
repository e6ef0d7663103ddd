package wolfera

import "testing"

func scanSrc(t *testing.T, src string) []Token {
	t.Helper()
	toks, err := NewLexer("<test>", src).Scan()
	if err != nil {
		t.Fatalf("scan %q: unexpected error: %s", src, err.Error())
	}
	return toks
}

func wantTypes(t *testing.T, toks []Token, want ...TokenType) {
	t.Helper()
	if len(toks) != len(want) {
		t.Fatalf("want %d tokens, got %d: %v", len(want), len(toks), toks)
	}
	for i, w := range want {
		if toks[i].Type != w {
			t.Fatalf("token %d: want %s, got %s (%q)", i, w, toks[i].Type, toks[i].Lexeme)
		}
	}
}

func Test_Lexer_BasicStream(t *testing.T) {
	toks := scanSrc(t, "x = 1 + 2.5")
	wantTypes(t, toks, IDENT, ASSIGN, INT, PLUS, FLOAT, EOF)
	if toks[2].Literal.(int64) != 1 {
		t.Fatalf("int literal: got %v", toks[2].Literal)
	}
	if toks[4].Literal.(float64) != 2.5 {
		t.Fatalf("float literal: got %v", toks[4].Literal)
	}
}

func Test_Lexer_NewlinesAndSemicolons(t *testing.T) {
	wantTypes(t, scanSrc(t, "1\n2;3"), INT, NEWLINE, INT, NEWLINE, INT, EOF)
}

func Test_Lexer_Comments(t *testing.T) {
	// the newline ending a line comment still separates statements
	wantTypes(t, scanSrc(t, "1 # comment\n2"), INT, NEWLINE, INT, EOF)
	wantTypes(t, scanSrc(t, "1 #* multi\nline *# 2"), INT, INT, EOF)
}

func Test_Lexer_Keywords(t *testing.T) {
	wantTypes(t, scanSrc(t, "if elif else for to step while fun"),
		IF, ELIF, ELSE, FOR, TO, STEP, WHILE, FUN, EOF)
	wantTypes(t, scanSrc(t, "true false null and or not"),
		TRUE, FALSE, NULL, AND, OR, NOT, EOF)
	wantTypes(t, scanSrc(t, "switch case const namespace struct try catch as from import do in"),
		SWITCH, CASE, CONST, NAMESPACE, STRUCT, TRY, CATCH, AS, FROM, IMPORT, DO, IN, EOF)
}

func Test_Lexer_Operators(t *testing.T) {
	wantTypes(t, scanSrc(t, "== != <= >= < > -> - ^ %"),
		EQ, NEQ, LESS_EQ, GREATER_EQ, LESS, GREATER, ARROW, MINUS, POW, MOD, EOF)
}

func Test_Lexer_StringEscapes(t *testing.T) {
	toks := scanSrc(t, `"a\n\t\"b\\"`)
	wantTypes(t, toks, STRING, EOF)
	if got := toks[0].Literal.(string); got != "a\n\t\"b\\" {
		t.Fatalf("string literal: got %q", got)
	}
}

func Test_Lexer_FStringKeepsBracesRaw(t *testing.T) {
	toks := scanSrc(t, `f"x = {x}"`)
	wantTypes(t, toks, FSTRING, EOF)
	if got := toks[0].Literal.(string); got != "x = {x}" {
		t.Fatalf("fstring literal: got %q", got)
	}
	// a lone f is still an identifier
	wantTypes(t, scanSrc(t, "f = 1"), IDENT, ASSIGN, INT, EOF)
}

func Test_Lexer_Identifiers(t *testing.T) {
	toks := scanSrc(t, "_x $y a1")
	wantTypes(t, toks, IDENT, IDENT, IDENT, EOF)
	if toks[1].Literal.(string) != "$y" {
		t.Fatalf("identifier: got %v", toks[1].Literal)
	}
}

func Test_Lexer_NumberDotNeedsDigit(t *testing.T) {
	// '1.foo' is member access on the integer, not a malformed float
	wantTypes(t, scanSrc(t, "1.x"), INT, DOT, IDENT, EOF)
	wantTypes(t, scanSrc(t, "1.5.x"), FLOAT, DOT, IDENT, EOF)
}

func Test_Lexer_IllegalCharacter(t *testing.T) {
	_, err := NewLexer("<test>", "x = ?").Scan()
	if err == nil || err.Kind != ErrIllegalChar {
		t.Fatalf("expected an illegal character error, got %v", err)
	}
	if err.Msg != "'?'" {
		t.Fatalf("unexpected message: %s", err.Msg)
	}
}

func Test_Lexer_UnterminatedString(t *testing.T) {
	_, err := NewLexer("<test>", `"abc`).Scan()
	if err == nil || err.Kind != ErrExpectedChar {
		t.Fatalf("expected an expected character error, got %v", err)
	}
}

func Test_Lexer_BangNeedsEquals(t *testing.T) {
	_, err := NewLexer("<test>", "1 ! 2").Scan()
	if err == nil || err.Kind != ErrExpectedChar {
		t.Fatalf("expected an expected character error, got %v", err)
	}
}

func Test_Lexer_Positions(t *testing.T) {
	toks := scanSrc(t, "a\n  b")
	if sp := toks[0].Span; sp.Line != 1 || sp.Col != 0 {
		t.Fatalf("a: got line %d col %d", sp.Line, sp.Col)
	}
	if sp := toks[2].Span; sp.Line != 2 || sp.Col != 2 {
		t.Fatalf("b: got line %d col %d", sp.Line, sp.Col)
	}
}
