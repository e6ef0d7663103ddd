package wolfera

import (
	"bytes"
	"io"
	"strings"
	"testing"
)

func Test_Builtin_Print(t *testing.T) {
	var out bytes.Buffer
	ip := New(Config{Stdout: &out})
	if _, err := ip.EvalSource(`print("hello")`); err != nil {
		t.Fatalf("unexpected error: %s", err.Error())
	}
	if out.String() != "hello\n" {
		t.Fatalf("got %q", out.String())
	}
	out.Reset()
	if _, err := ip.EvalSource("print([1, 2, 3])"); err != nil {
		t.Fatalf("unexpected error: %s", err.Error())
	}
	if out.String() != "1, 2, 3\n" {
		t.Fatalf("got %q", out.String())
	}
}

func Test_Builtin_PrintRet(t *testing.T) {
	wantStr(t, evalSrc(t, "print_ret(42)"), "42")
	wantStr(t, evalSrc(t, "print_ret(1.5)"), "1.5")
	wantStr(t, evalSrc(t, "print_ret(null)"), "null")
	wantStr(t, evalSrc(t, "print_ret(true)"), "true")
}

func Test_Builtin_Input(t *testing.T) {
	ip := New(Config{Stdin: strings.NewReader("hello world\n"), Stdout: io.Discard})
	v, err := ip.EvalSource("input()")
	if err != nil {
		t.Fatalf("unexpected error: %s", err.Error())
	}
	wantStr(t, v, "hello world")
}

func Test_Builtin_InputIntRetries(t *testing.T) {
	var out bytes.Buffer
	ip := New(Config{Stdin: strings.NewReader("abc\n42\n"), Stdout: &out})
	v, err := ip.EvalSource("input_int()")
	if err != nil {
		t.Fatalf("unexpected error: %s", err.Error())
	}
	wantInt(t, v, 42)
	if !strings.Contains(out.String(), "must be an integer") {
		t.Fatalf("no retry prompt in %q", out.String())
	}
}

func Test_Builtin_TypePredicates(t *testing.T) {
	wantBool(t, evalSrc(t, "is_num(1)"), true)
	wantBool(t, evalSrc(t, "is_num(1.5)"), true)
	wantBool(t, evalSrc(t, `is_num("1")`), false)
	wantBool(t, evalSrc(t, `is_str("x")`), true)
	wantBool(t, evalSrc(t, "is_str(1)"), false)
	wantBool(t, evalSrc(t, "is_list([])"), true)
	wantBool(t, evalSrc(t, "is_fun(fun() -> 1)"), true)
	wantBool(t, evalSrc(t, "is_fun(print)"), true)
	wantBool(t, evalSrc(t, "is_fun(1)"), false)
}

func Test_Builtin_ListMutation(t *testing.T) {
	wantIntList(t, evalSrc(t, "a = [1]\nappend(a, 2)\na"), 1, 2)
	wantInt(t, evalSrc(t, "a = [1, 2, 3]\npop(a, 0)"), 1)
	wantIntList(t, evalSrc(t, "a = [1, 2, 3]\npop(a, 0)\na"), 2, 3)
	wantIntList(t, evalSrc(t, "a = [1]\nextend(a, [2, 3])\na"), 1, 2, 3)
}

func Test_Builtin_PopOutOfBoundsFails(t *testing.T) {
	err := evalErr(t, "pop([1], 5)")
	if !strings.Contains(err.Msg, "out of bounds") {
		t.Fatalf("unexpected message: %s", err.Msg)
	}
}

func Test_Builtin_Len(t *testing.T) {
	wantInt(t, evalSrc(t, `len("hello")`), 5)
	wantInt(t, evalSrc(t, "len([1, 2, 3])"), 3)
	wantInt(t, evalSrc(t, `len({"a": 1, "b": 2})`), 2)
	err := evalErr(t, "len(1)")
	if !strings.Contains(err.Msg, "must be String, List or Dict") {
		t.Fatalf("unexpected message: %s", err.Msg)
	}
}

func Test_Builtin_Range(t *testing.T) {
	wantIntList(t, evalSrc(t, "range(4)"), 0, 1, 2, 3)
	wantIntList(t, evalSrc(t, "range(2, 5)"), 2, 3, 4)
	wantIntList(t, evalSrc(t, "range(6, 0, -2)"), 6, 4, 2)
	err := evalErr(t, "range(0, 5, 0)")
	if !strings.Contains(err.Msg, "step cannot be 0") {
		t.Fatalf("unexpected message: %s", err.Msg)
	}
}

func Test_Builtin_MapFilterReduce(t *testing.T) {
	wantIntList(t, evalSrc(t, "map(fun(x) -> x * 2, [1, 2, 3])"), 2, 4, 6)
	wantIntList(t, evalSrc(t, "filter(fun(x) -> x % 2 == 0, range(6))"), 0, 2, 4)
	wantInt(t, evalSrc(t, "reduce(fun(a, b) -> a + b, [1, 2, 3, 4])"), 10)
	wantInt(t, evalSrc(t, "reduce(fun(a, b) -> a + b, [1, 2], 10)"), 13)
	wantNull(t, evalSrc(t, "reduce(fun(a, b) -> a + b, [])"))
}

func Test_Builtin_HigherOrderPropagatesErrors(t *testing.T) {
	err := evalErr(t, "map(fun(x) -> x / 0, [1])")
	if err.Msg != "Division by zero" {
		t.Fatalf("unexpected message: %s", err.Msg)
	}
}

func Test_Builtin_ArityChecking(t *testing.T) {
	err := evalErr(t, "len()")
	if !strings.Contains(err.Msg, "too few args passed into len") {
		t.Fatalf("unexpected message: %s", err.Msg)
	}
	err = evalErr(t, "len(1, 2)")
	if !strings.Contains(err.Msg, "too many args passed into len") {
		t.Fatalf("unexpected message: %s", err.Msg)
	}
}
