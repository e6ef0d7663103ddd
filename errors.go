// errors.go — structured diagnostics and caret-snippet rendering
//
// What this file does
// -------------------
// Every failure surfaced to a Wolfera user flows through the single *Error
// type defined here: lexer, parser, evaluator and module loader all build
// their diagnostics with the same constructors. An Error carries a kind, a
// source span, the message, and the source text it was raised against, so it
// can be rendered on its own without reaching back into the interpreter.
//
// The rendered form is a caret snippet:
//
//	Runtime Error: Division by zero (line 2, column 5)
//
//	   2 | x = 1 / 0
//	     |     ^^^^^
//
//	Hint: Make sure the divisor is not 0.
//
// The hint line is chosen by a fixed kind/message lookup (see hintFor) and
// is omitted when no hint applies.
//
// Scope of the public API
// -----------------------
// Public:   ErrorKind, Span, Error, (*Error).Render, (*Error).RenderColor.
// Private:  constructors, caret-snippet renderer, hint table.
//
// Behavior guarantees
//   - Render never panics: line/column values are clamped to the source.
//   - Rendering is pure formatting; it never mutates interpreter state.
package wolfera

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

/* ===========================
   PUBLIC API
   =========================== */

// ErrorKind discriminates the diagnostic taxonomy.
type ErrorKind int

const (
	ErrIllegalChar ErrorKind = iota
	ErrExpectedChar
	ErrSyntax
	ErrRuntime
	ErrImport
)

// Name returns the user-facing label for the kind.
func (k ErrorKind) Name() string {
	switch k {
	case ErrIllegalChar:
		return "Illegal Character"
	case ErrExpectedChar:
		return "Expected Character"
	case ErrSyntax:
		return "Invalid Syntax"
	case ErrRuntime:
		return "Runtime Error"
	case ErrImport:
		return "Import Error"
	}
	return "Error"
}

// Span is a source range. Line is 1-based, Col is 0-based; EndCol is
// exclusive. A zero Span means "no position" (native code, synthetic values)
// and renders without a snippet.
type Span struct {
	Line    int
	Col     int
	EndLine int
	EndCol  int
}

// IsZero reports whether the span carries no source position.
func (s Span) IsZero() bool { return s.Line == 0 }

// Error is the single diagnostic object of the runtime. It is propagated as
// data through evaluation Results, never thrown as a host panic.
type Error struct {
	Kind ErrorKind
	Msg  string
	Span Span
	File string
	Src  string

	// Incomplete marks a syntax error whose offending token is EOF. The
	// REPL uses it to keep reading continuation lines.
	Incomplete bool
}

// Error implements the error interface with the one-line header form.
func (e *Error) Error() string {
	if e.Span.IsZero() {
		return fmt.Sprintf("%s: %s", e.Kind.Name(), e.Msg)
	}
	return fmt.Sprintf("%s: %s (line %d, column %d)", e.Kind.Name(), e.Msg, e.Span.Line, e.Span.Col+1)
}

// Render returns the full plain-text diagnostic: header, numbered source
// line, caret underline, and an optional hint.
func (e *Error) Render() string {
	var b strings.Builder
	b.WriteString(e.Error())
	if snippet := caretSnippet(e.Src, e.Span); snippet != "" {
		b.WriteString("\n\n")
		b.WriteString(snippet)
	}
	if hint := hintFor(e.Kind, e.Msg); hint != "" {
		b.WriteString("\n\nHint: ")
		b.WriteString(hint)
	}
	b.WriteString("\n")
	return b.String()
}

// RenderColor is Render with an ANSI-highlighted header, caret, and hint
// label, for terminal output.
func (e *Error) RenderColor() string {
	head := color.New(color.FgRed, color.Bold).Sprint(e.Kind.Name())
	rest := strings.TrimPrefix(e.Error(), e.Kind.Name())
	var b strings.Builder
	b.WriteString(head)
	b.WriteString(rest)
	if snippet := caretSnippet(e.Src, e.Span); snippet != "" {
		b.WriteString("\n\n")
		if j := strings.Index(snippet, "^"); j >= 0 {
			b.WriteString(snippet[:j])
			b.WriteString(color.New(color.FgRed).Sprint(snippet[j:]))
		} else {
			b.WriteString(snippet)
		}
	}
	if hint := hintFor(e.Kind, e.Msg); hint != "" {
		b.WriteString("\n\n")
		b.WriteString(color.New(color.FgYellow).Sprint("Hint: "))
		b.WriteString(hint)
	}
	b.WriteString("\n")
	return b.String()
}

//// END_OF_PUBLIC

/* ===========================
   PRIVATE: constructors
   =========================== */

func lexErr(kind ErrorKind, span Span, file, src, msg string) *Error {
	return &Error{Kind: kind, Msg: msg, Span: span, File: file, Src: src}
}

func syntaxErr(span Span, file, src, msg string) *Error {
	return &Error{Kind: ErrSyntax, Msg: msg, Span: span, File: file, Src: src}
}

/* ===========================
   PRIVATE: helpers & rendering
   =========================== */

// caretSnippet renders the numbered source line containing the span's start
// plus a caret underline covering the span's columns. Multi-line spans are
// clipped to the first line; the caret then runs to the end of that line.
func caretSnippet(src string, sp Span) string {
	if sp.IsZero() || src == "" {
		return ""
	}
	lines := strings.Split(src, "\n")
	line := sp.Line
	if line < 1 {
		line = 1
	}
	if line > len(lines) {
		line = len(lines)
	}
	lineTxt := lines[line-1]

	colStart := sp.Col
	if colStart < 0 {
		colStart = 0
	}
	if colStart > len(lineTxt) {
		colStart = len(lineTxt)
	}
	colEnd := sp.EndCol
	if sp.EndLine != sp.Line || colEnd > len(lineTxt) {
		colEnd = len(lineTxt)
	}
	if colEnd <= colStart {
		colEnd = colStart + 1
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%4d | %s\n", line, lineTxt)
	fmt.Fprintf(&b, "     | %s%s", strings.Repeat(" ", colStart), strings.Repeat("^", colEnd-colStart))
	return b.String()
}

// hintFor selects a short remediation hint by kind and message shape. The
// table is fixed so golden tests can assert on the output.
func hintFor(kind ErrorKind, msg string) string {
	switch {
	case strings.Contains(msg, "Token cannot appear after previous tokens"):
		return "You may be missing a newline or a '}'."
	case strings.Contains(msg, "Expected"):
		expected := strings.TrimSpace(strings.Replace(msg, "Expected", "", 1))
		if expected != "" {
			return fmt.Sprintf("Expected: %s. Check the syntax near the highlighted area.", expected)
		}
		return "Check the syntax near the highlighted area."
	case strings.Contains(msg, "Illegal operation"):
		return "Check operand types and whether the operation is supported for them."
	case strings.Contains(msg, "Division by zero"), strings.Contains(msg, "Modulo by zero"):
		return "Make sure the divisor is not 0."
	case strings.Contains(msg, "is not defined"):
		return "Check the spelling, or define the name before using it."
	case strings.Contains(msg, "too many args"), strings.Contains(msg, "too few args"):
		return "Check the function's parameter list and the call site."
	case strings.Contains(msg, "Unclosed '{' in f-string"):
		return "Add a closing '}' in the f-string."
	case strings.Contains(msg, "Empty expression in f-string"):
		return "Put an expression between '{' and '}'."
	case strings.Contains(msg, "Can't find module"):
		return "Check the module name and the configured module search path."
	case kind == ErrIllegalChar:
		return "Remove the invalid character or escape it."
	}
	return ""
}
