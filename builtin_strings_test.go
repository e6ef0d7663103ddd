package wolfera

import (
	"strings"
	"testing"
)

func Test_Builtin_Join(t *testing.T) {
	wantStr(t, evalSrc(t, `join(["a", "b", "c"], "-")`), "a-b-c")
	wantStr(t, evalSrc(t, `join([1, 2, 3], ", ")`), "1, 2, 3")
	wantStr(t, evalSrc(t, `join(["x", "y"])`), "xy") // separator defaults to ""
}

func Test_Builtin_Split(t *testing.T) {
	wantIntList(t, evalSrc(t, `map(fun(s) -> len(s), split("aa b ccc"))`), 2, 1, 3)
	v := evalSrc(t, `split("a,b", ",")`)
	elems := v.Data.(*ListObject).Elems
	if len(elems) != 2 {
		t.Fatalf("got %s", Repr(v))
	}
	wantStr(t, elems[0], "a")
	wantStr(t, elems[1], "b")
	// empty separator splits into characters
	wantInt(t, evalSrc(t, `len(split("abc", ""))`), 3)
}

func Test_Builtin_Trim(t *testing.T) {
	wantStr(t, evalSrc(t, `trim("  x  ")`), "x")
	wantStr(t, evalSrc(t, `ltrim("  x  ")`), "x  ")
	wantStr(t, evalSrc(t, `rtrim("  x  ")`), "  x")
	wantStr(t, evalSrc(t, `trim("\t x \n")`), "x")
}

func Test_Builtin_PrefixSuffix(t *testing.T) {
	wantBool(t, evalSrc(t, `startswith("wolfera", "wolf")`), true)
	wantBool(t, evalSrc(t, `startswith("wolfera", "era")`), false)
	wantBool(t, evalSrc(t, `endswith("wolfera", "era")`), true)
	wantBool(t, evalSrc(t, `endswith("wolfera", "wolf")`), false)
}

func Test_Builtin_Contains(t *testing.T) {
	wantBool(t, evalSrc(t, `contains("wolfera", "olf")`), true)
	wantBool(t, evalSrc(t, `contains("wolfera", "xyz")`), false)
	wantBool(t, evalSrc(t, "contains([1, 2, 3], 2)"), true)
	wantBool(t, evalSrc(t, "contains([1, 2, 3], 9)"), false)
	err := evalErr(t, "contains(1, 2)")
	if !strings.Contains(err.Msg, "must be String or List") {
		t.Fatalf("unexpected message: %s", err.Msg)
	}
}

func Test_Builtin_StringArgChecking(t *testing.T) {
	err := evalErr(t, "trim(1)")
	if !strings.Contains(err.Msg, "must be String") {
		t.Fatalf("unexpected message: %s", err.Msg)
	}
}
