package wolfera

import (
	"strings"
	"testing"
)

func Test_Printer_FormatToken(t *testing.T) {
	toks := scanSrc(t, `x = 1 + 2.5 "s" f"t"`)
	got := make([]string, len(toks))
	for i, tok := range toks {
		got[i] = FormatToken(tok)
	}
	want := []string{"IDENT(x)", "ASSIGN", "INT(1)", "PLUS", "FLOAT(2.5)", `STRING(s)`, `FSTRING(t)`, "EOF"}
	for i, w := range want {
		if got[i] != w {
			t.Fatalf("token %d: got %q, want %q", i, got[i], w)
		}
	}
}

func Test_Printer_FormatTokensIncludesPositions(t *testing.T) {
	out := FormatTokens(scanSrc(t, "a\nb"))
	if !strings.Contains(out, "  1:0   IDENT(a)") {
		t.Fatalf("missing position line in:\n%s", out)
	}
	if !strings.Contains(out, "  2:0   IDENT(b)") {
		t.Fatalf("missing second line in:\n%s", out)
	}
}

func Test_Printer_FormatASTTree(t *testing.T) {
	prog := parseSrc(t, "1 + 2 * 3")
	want := `Block
└── BinOp(+)
    ├── Int(1)
    └── BinOp(*)
        ├── Int(2)
        └── Int(3)
`
	if got := FormatAST(prog); got != want {
		t.Fatalf("tree mismatch\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func Test_Printer_FormatASTControlFlow(t *testing.T) {
	out := FormatAST(parseSrc(t, `if x { 1 } else { 2 }`))
	for _, frag := range []string{"If", "cond: Ident(x)", "then: Block", "else: Block"} {
		if !strings.Contains(out, frag) {
			t.Fatalf("missing %q in:\n%s", frag, out)
		}
	}
	out = FormatAST(parseSrc(t, "fun add(a, b = 1) -> a + b"))
	for _, frag := range []string{"FuncDef(add)", "param a", "param b: Int(1)", "body: BinOp(+)"} {
		if !strings.Contains(out, frag) {
			t.Fatalf("missing %q in:\n%s", frag, out)
		}
	}
}

func Test_Printer_FormatASTImports(t *testing.T) {
	out := FormatAST(parseSrc(t, "import a.b as m"))
	if !strings.Contains(out, "Import(a.b as m)") {
		t.Fatalf("missing import label in:\n%s", out)
	}
	out = FormatAST(parseSrc(t, "from a import {x, y}"))
	if !strings.Contains(out, "FromImport(a: x, y)") {
		t.Fatalf("missing from-import label in:\n%s", out)
	}
}
