package wolfera

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeScript(t *testing.T, dir, name, src string) {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}
}

func moduleInterp(t *testing.T, dir string) *Interpreter {
	t.Helper()
	return New(Config{SearchPath: []string{dir}, Stdout: io.Discard})
}

func Test_Modules_ImportBindsModuleName(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, dir, "mathx.wf", "double = fun(n) -> n * 2\nbase = 10\n")
	ip := moduleInterp(t, dir)
	v, err := ip.EvalSource("import mathx\nmathx.double(21)")
	if err != nil {
		t.Fatalf("unexpected error: %s", err.Error())
	}
	wantInt(t, v, 42)
}

func Test_Modules_ImportAlias(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, dir, "mathx.wf", "base = 10\n")
	ip := moduleInterp(t, dir)
	v, err := ip.EvalSource("import mathx as m\nm.base")
	if err != nil {
		t.Fatalf("unexpected error: %s", err.Error())
	}
	wantInt(t, v, 10)
}

func Test_Modules_DottedImportBindsNestedPath(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, dir, filepath.Join("pkg", "util.wf"), "val = 7\n")
	ip := moduleInterp(t, dir)
	v, err := ip.EvalSource("import pkg.util\npkg.util.val")
	if err != nil {
		t.Fatalf("unexpected error: %s", err.Error())
	}
	wantInt(t, v, 7)
}

func Test_Modules_FromImport(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, dir, "mathx.wf", "double = fun(n) -> n * 2\nbase = 10\n")
	ip := moduleInterp(t, dir)
	v, err := ip.EvalSource("from mathx import {double, base}\ndouble(base)")
	if err != nil {
		t.Fatalf("unexpected error: %s", err.Error())
	}
	wantInt(t, v, 20)
}

func Test_Modules_FromImportMissingNameFails(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, dir, "mathx.wf", "base = 10\n")
	ip := moduleInterp(t, dir)
	_, err := ip.EvalSource("from mathx import {nope}")
	if err == nil || err.Kind != ErrImport {
		t.Fatalf("expected an import error, got %v", err)
	}
	if !strings.Contains(err.Msg, "Can't import 'nope'") {
		t.Fatalf("unexpected message: %s", err.Msg)
	}
}

func Test_Modules_MissingModuleFails(t *testing.T) {
	ip := New(Config{Stdout: io.Discard})
	_, err := ip.EvalSource("import definitely_not_there")
	if err == nil || err.Kind != ErrImport {
		t.Fatalf("expected an import error, got %v", err)
	}
	if err.Msg != "Can't find module 'definitely_not_there'" {
		t.Fatalf("unexpected message: %s", err.Msg)
	}
}

func Test_Modules_LoadedOnceAndCached(t *testing.T) {
	dir := t.TempDir()
	// the counter file proves the module body ran exactly once
	counter := filepath.Join(dir, "count.txt")
	writeScript(t, dir, "tracked.wf",
		`fd = open("`+counter+`", "a")`+"\n"+`write(fd, "x")`+"\n"+`close(fd)`+"\n"+"v = 1\n")
	ip := moduleInterp(t, dir)
	_, err := ip.EvalSource("import tracked\nimport tracked as t2\nt2.v")
	if err != nil {
		t.Fatalf("unexpected error: %s", err.Error())
	}
	data, rerr := os.ReadFile(counter)
	if rerr != nil {
		t.Fatal(rerr)
	}
	if string(data) != "x" {
		t.Fatalf("module body ran %d times", len(data))
	}
}

func Test_Modules_CircularImportFails(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, dir, "a.wf", "import b\nx = 1\n")
	writeScript(t, dir, "b.wf", "import a\ny = 2\n")
	ip := moduleInterp(t, dir)
	_, err := ip.EvalSource("import a")
	if err == nil || err.Kind != ErrImport {
		t.Fatalf("expected an import error, got %v", err)
	}
	if !strings.Contains(err.Msg, "Circular import") {
		t.Fatalf("unexpected message: %s", err.Msg)
	}
}

func Test_Modules_QuotedImportRunsInCurrentScope(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, dir, "inc.wf", "q = 7\n")
	ip := moduleInterp(t, dir)
	v, err := ip.EvalSource(`import "inc.wf"` + "\nq")
	if err != nil {
		t.Fatalf("unexpected error: %s", err.Error())
	}
	wantInt(t, v, 7)
}

func Test_Modules_ImporterDirectoryIsSearchedFirst(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, dir, "helper.wf", "h = 5\n")
	writeScript(t, dir, "main.wf", "import helper\nhelper.h")
	ip := New(Config{Stdout: io.Discard}) // no search path at all
	src, rerr := os.ReadFile(filepath.Join(dir, "main.wf"))
	if rerr != nil {
		t.Fatal(rerr)
	}
	v, err := ip.Run(filepath.Join(dir, "main.wf"), string(src))
	if err != nil {
		t.Fatalf("unexpected error: %s", err.Error())
	}
	wantInt(t, v, 5)
}

func Test_Modules_NativeTimeModule(t *testing.T) {
	ip := New(Config{Stdout: io.Discard})
	v, err := ip.EvalSource("import time\ntime.now()")
	if err != nil {
		t.Fatalf("unexpected error: %s", err.Error())
	}
	if v.Tag != VTFloat || v.Data.(float64) <= 0 {
		t.Fatalf("time.now(): got %s", Repr(v))
	}
	v, err = ip.EvalSource("import time\ntime.measure(fun() -> 1)")
	if err != nil {
		t.Fatalf("unexpected error: %s", err.Error())
	}
	if v.Tag != VTFloat || v.Data.(float64) < 0 {
		t.Fatalf("time.measure: got %s", Repr(v))
	}
}

func Test_Modules_ModuleMembersAreReadOnly(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, dir, "mathx.wf", "base = 10\n")
	ip := moduleInterp(t, dir)
	_, err := ip.EvalSource("import mathx\nmathx.base = 1")
	if err == nil || !strings.Contains(err.Msg, "Cannot assign to member of module") {
		t.Fatalf("expected a module assignment error, got %v", err)
	}
}
