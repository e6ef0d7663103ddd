package wolfera

import (
	"strings"
	"testing"
)

func parseSrc(t *testing.T, src string) *BlockNode {
	t.Helper()
	prog, err := Parse("<test>", src)
	if err != nil {
		t.Fatalf("parse %q: unexpected error: %s", src, err.Error())
	}
	return prog
}

func parseErr(t *testing.T, src string) *Error {
	t.Helper()
	_, err := Parse("<test>", src)
	if err == nil {
		t.Fatalf("parse %q: expected an error", src)
	}
	return err
}

func onlyStmt(t *testing.T, blk *BlockNode) Node {
	t.Helper()
	if len(blk.Stmts) != 1 {
		t.Fatalf("want 1 statement, got %d", len(blk.Stmts))
	}
	return blk.Stmts[0]
}

func Test_Parser_Precedence(t *testing.T) {
	n := onlyStmt(t, parseSrc(t, "1 + 2 * 3"))
	add, ok := n.(*BinOpNode)
	if !ok || add.Op != PLUS {
		t.Fatalf("want BinOp(+) at the root, got %T", n)
	}
	mul, ok := add.Right.(*BinOpNode)
	if !ok || mul.Op != MUL {
		t.Fatalf("want BinOp(*) on the right, got %T", add.Right)
	}
}

func Test_Parser_PowerRightAssociative(t *testing.T) {
	n := onlyStmt(t, parseSrc(t, "2 ^ 3 ^ 2"))
	outer, ok := n.(*BinOpNode)
	if !ok || outer.Op != POW {
		t.Fatalf("want BinOp(^) at the root, got %T", n)
	}
	if inner, ok := outer.Right.(*BinOpNode); !ok || inner.Op != POW {
		t.Fatalf("want the nested power on the right, got %T", outer.Right)
	}
}

func Test_Parser_UnaryInsidePower(t *testing.T) {
	// the base of '^' is a unary expression, so -2^2 negates first
	n := onlyStmt(t, parseSrc(t, "-2 ^ 2"))
	pow, ok := n.(*BinOpNode)
	if !ok || pow.Op != POW {
		t.Fatalf("want BinOp(^) at the root, got %T", n)
	}
	if _, ok := pow.Left.(*UnaryOpNode); !ok {
		t.Fatalf("want UnaryOp on the left, got %T", pow.Left)
	}
}

func Test_Parser_ComparisonBelowLogic(t *testing.T) {
	n := onlyStmt(t, parseSrc(t, "1 < 2 and 3 < 4"))
	and, ok := n.(*BinOpNode)
	if !ok || and.Op != AND {
		t.Fatalf("want BinOp(and) at the root, got %T", n)
	}
}

func Test_Parser_AssignmentForms(t *testing.T) {
	if n := onlyStmt(t, parseSrc(t, "x = 1")); n.(*AssignNode).Const {
		t.Fatal("plain assignment parsed as const")
	}
	if n := onlyStmt(t, parseSrc(t, "const x = 1")); !n.(*AssignNode).Const {
		t.Fatal("const declaration lost its flag")
	}
	if _, ok := onlyStmt(t, parseSrc(t, "a[0] = 1")).(*IndexSetNode); !ok {
		t.Fatal("index assignment did not parse as IndexSet")
	}
	if _, ok := onlyStmt(t, parseSrc(t, "a.b = 1")).(*MemberSetNode); !ok {
		t.Fatal("member assignment did not parse as MemberSet")
	}
}

func Test_Parser_InvalidAssignmentTarget(t *testing.T) {
	err := parseErr(t, "1 = 2")
	if !strings.Contains(err.Msg, "Invalid assignment") {
		t.Fatalf("unexpected message: %s", err.Msg)
	}
}

func Test_Parser_LeftoverTokens(t *testing.T) {
	err := parseErr(t, "1 2")
	if err.Msg != "Token cannot appear after previous tokens" {
		t.Fatalf("unexpected message: %s", err.Msg)
	}
}

func Test_Parser_IncompleteInputIsFlagged(t *testing.T) {
	if err := parseErr(t, "1 +"); !err.Incomplete {
		t.Fatal("error at end of input not flagged incomplete")
	}
	if err := parseErr(t, "if x {"); !err.Incomplete {
		t.Fatal("unclosed block not flagged incomplete")
	}
	if err := parseErr(t, "1 = 2"); err.Incomplete {
		t.Fatal("mid-input error wrongly flagged incomplete")
	}
}

func Test_Parser_StructInitVersusBlock(t *testing.T) {
	if _, ok := onlyStmt(t, parseSrc(t, "Point{}")).(*StructInitNode); !ok {
		t.Fatal("Name{} did not parse as a struct init")
	}
	// 'if x { y }' must not treat 'x {' as a struct init
	n := onlyStmt(t, parseSrc(t, "if x { y }"))
	if _, ok := n.(*IfNode); !ok {
		t.Fatalf("want IfNode, got %T", n)
	}
}

func Test_Parser_FunctionForms(t *testing.T) {
	fn := onlyStmt(t, parseSrc(t, "fun add(a, b) -> a + b")).(*FuncDefNode)
	if fn.Name != "add" || len(fn.Params) != 2 || !fn.Arrow {
		t.Fatalf("unexpected parse: %+v", fn)
	}
	anon := onlyStmt(t, parseSrc(t, "fun(a, b = 1) { a }")).(*FuncDefNode)
	if anon.Name != "" || anon.Params[1].Default == nil {
		t.Fatalf("unexpected parse: %+v", anon)
	}
}

func Test_Parser_RequiredParamAfterOptionalFails(t *testing.T) {
	err := parseErr(t, "fun f(a = 1, b) -> a")
	if !strings.Contains(err.Msg, "optional parameter") {
		t.Fatalf("unexpected message: %s", err.Msg)
	}
}

func Test_Parser_ImportForms(t *testing.T) {
	imp := onlyStmt(t, parseSrc(t, "import a.b.c")).(*ImportNode)
	if len(imp.Path) != 3 || imp.Alias != "" {
		t.Fatalf("unexpected parse: %+v", imp)
	}
	aliased := onlyStmt(t, parseSrc(t, "import a.b as m")).(*ImportNode)
	if aliased.Alias != "m" {
		t.Fatalf("unexpected parse: %+v", aliased)
	}
	file := onlyStmt(t, parseSrc(t, `import "util.wf"`)).(*ImportFileNode)
	if file.Path != "util.wf" {
		t.Fatalf("unexpected parse: %+v", file)
	}
	from := onlyStmt(t, parseSrc(t, "from a.b import {x, y}")).(*FromImportNode)
	if len(from.Names) != 2 || from.Names[1] != "y" {
		t.Fatalf("unexpected parse: %+v", from)
	}
}

func Test_Parser_DictToleratesNewlines(t *testing.T) {
	src := `{
"a": 1,
"b": 2
}`
	d := onlyStmt(t, parseSrc(t, src)).(*DictNode)
	if len(d.Keys) != 2 {
		t.Fatalf("want 2 entries, got %d", len(d.Keys))
	}
}

func Test_Parser_FStringPositionalArgs(t *testing.T) {
	fs := onlyStmt(t, parseSrc(t, `f"{} + {} = {}", a, b, c`)).(*FStringNode)
	if len(fs.Args) != 3 {
		t.Fatalf("want 3 args, got %d", len(fs.Args))
	}
	// '{{' escapes do not count as placeholders
	plain := onlyStmt(t, parseSrc(t, `f"{{}}"`)).(*FStringNode)
	if len(plain.Args) != 0 {
		t.Fatalf("want no args, got %d", len(plain.Args))
	}
}

func Test_Parser_SpansCoverExpressions(t *testing.T) {
	n := onlyStmt(t, parseSrc(t, "x = 1 / 0"))
	sp := n.(*AssignNode).Value.Span()
	if sp.Line != 1 || sp.Col != 4 || sp.EndCol != 9 {
		t.Fatalf("unexpected span: %+v", sp)
	}
}
