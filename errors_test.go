package wolfera

import (
	"io"
	"strings"
	"testing"
)

func Test_Error_HeaderLine(t *testing.T) {
	e := &Error{Kind: ErrRuntime, Msg: "boom"}
	if got := e.Error(); got != "Runtime Error: boom" {
		t.Fatalf("got %q", got)
	}
	e = &Error{Kind: ErrSyntax, Msg: "bad", Span: Span{Line: 3, Col: 4, EndLine: 3, EndCol: 5}}
	if got := e.Error(); got != "Invalid Syntax: bad (line 3, column 5)" {
		t.Fatalf("got %q", got)
	}
}

func Test_Error_KindNames(t *testing.T) {
	names := map[ErrorKind]string{
		ErrIllegalChar:  "Illegal Character",
		ErrExpectedChar: "Expected Character",
		ErrSyntax:       "Invalid Syntax",
		ErrRuntime:      "Runtime Error",
		ErrImport:       "Import Error",
	}
	for kind, want := range names {
		if got := kind.Name(); got != want {
			t.Fatalf("kind %d: got %q, want %q", kind, got, want)
		}
	}
}

func Test_Error_RenderDivisionByZero(t *testing.T) {
	ip := New(Config{Stdout: io.Discard})
	_, err := ip.EvalSource("x = 1 / 0")
	if err == nil {
		t.Fatal("expected an error")
	}
	want := "Runtime Error: Division by zero (line 1, column 5)\n" +
		"\n" +
		"   1 | x = 1 / 0\n" +
		"     |     ^^^^^\n" +
		"\n" +
		"Hint: Make sure the divisor is not 0.\n"
	if got := err.Render(); got != want {
		t.Fatalf("render mismatch\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func Test_Error_RenderPicksTheRightLine(t *testing.T) {
	ip := New(Config{Stdout: io.Discard})
	_, err := ip.EvalSource("x = 1\ny = nope\n")
	if err == nil {
		t.Fatal("expected an error")
	}
	r := err.Render()
	if !strings.Contains(r, "   2 | y = nope") {
		t.Fatalf("snippet does not show line 2:\n%s", r)
	}
	if !strings.Contains(r, "(line 2, column 5)") {
		t.Fatalf("header position wrong:\n%s", r)
	}
}

func Test_Error_RenderWithoutSpanSkipsSnippet(t *testing.T) {
	e := &Error{Kind: ErrRuntime, Msg: "boom"}
	if got := e.Render(); got != "Runtime Error: boom\n" {
		t.Fatalf("got %q", got)
	}
}

func Test_Error_Hints(t *testing.T) {
	cases := []struct {
		kind ErrorKind
		msg  string
		want string
	}{
		{ErrRuntime, "Division by zero", "divisor"},
		{ErrRuntime, "'x' is not defined", "spelling"},
		{ErrRuntime, "Illegal operation: List < List", "operand types"},
		{ErrRuntime, "1 too many args passed into f", "parameter list"},
		{ErrSyntax, "Token cannot appear after previous tokens", "newline"},
		{ErrImport, "Can't find module 'm'", "search path"},
		{ErrIllegalChar, "'?'", "invalid character"},
	}
	for _, c := range cases {
		hint := hintFor(c.kind, c.msg)
		if !strings.Contains(hint, c.want) {
			t.Fatalf("hint for %q: got %q, want it to mention %q", c.msg, hint, c.want)
		}
	}
	if hint := hintFor(ErrRuntime, "something else entirely"); hint != "" {
		t.Fatalf("expected no hint, got %q", hint)
	}
}

func Test_Error_RenderClampsOutOfRangeSpans(t *testing.T) {
	e := &Error{
		Kind: ErrRuntime,
		Msg:  "boom",
		Span: Span{Line: 99, Col: 50, EndLine: 99, EndCol: 60},
		Src:  "short",
	}
	r := e.Render()
	if !strings.Contains(r, "   1 | short") {
		t.Fatalf("clamped snippet missing:\n%s", r)
	}
}
