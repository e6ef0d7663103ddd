// interpreter.go — interpreter state, Result/Signal plumbing, call machinery
//
// OVERVIEW
// --------
// The Interpreter owns everything a running program needs: the global
// environment, the native-module registry, the module cache, the open-file
// table of the I/O built-ins and the recursion-depth guard. There are no
// package-level singletons; two Interpreters never share state.
//
// Control flow is data. Every node evaluation returns a Result:
//
//	type Result struct {
//	    Value  Value
//	    Signal Signal   // SigNone | SigReturn | SigBreak | SigContinue
//	    Err    *Error
//	}
//
// return/break/continue and runtime errors ride the Result upward through
// the recursive walk until their handler: the call boundary for SigReturn,
// the nearest loop for SigBreak/SigContinue, the nearest try for Err. No
// host panic is ever used for language control flow. While an Err is set
// the Value field is meaningless and must be ignored; the constructors
// below enforce that invariant.
//
// PUBLIC API
// ----------
//	New(cfg Config) *Interpreter
//	(*Interpreter).Run(file, src string) (Value, *Error)
//	(*Interpreter).EvalSource(src string) (Value, *Error)
//	(*Interpreter).RegisterNative(name string, params []string, defaults []Value, impl NativeImpl)
//	(*Interpreter).RegisterNativeModule(name string, reg NativeRegistration)
//	(*Interpreter).Call(fn Value, args []Value, sp Span) (Value, *Error)
package wolfera

import (
	"bufio"
	"io"
	"os"
	"strconv"
)

////////////////////////////////////////////////////////////////////////////////
//                                  PUBLIC API
////////////////////////////////////////////////////////////////////////////////

// Signal is a non-value control-flow outcome travelling through Results.
type Signal int

const (
	SigNone Signal = iota
	SigReturn
	SigBreak
	SigContinue
)

// Result is the outcome of evaluating one node.
type Result struct {
	Value  Value
	Signal Signal
	Err    *Error
}

// Stop reports whether evaluation of siblings must halt: a signal or error
// is propagating.
func (r Result) Stop() bool { return r.Signal != SigNone || r.Err != nil }

// Config carries the knobs threaded into an Interpreter at construction.
// Zero values get sensible defaults (see New).
type Config struct {
	// SearchPath lists directories consulted when resolving imports, after
	// the importing file's directory and the working directory.
	SearchPath []string
	// RecursionLimit bounds evaluator nesting depth; exceeding it is a
	// RuntimeError rather than a host stack overflow.
	RecursionLimit int
	// Args is exposed to programs as the global 'argv' list.
	Args []string

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// NativeRegistration is the contract for native standard-library modules: a
// zero-argument function returning the module's name→value export mapping.
// It runs at most once, on first import; the mapping is treated as
// immutable afterwards.
type NativeRegistration func() map[string]Value

// NativeImpl is the host side of a native function.
type NativeImpl func(c *CallCtx) (Value, *Error)

// CallCtx is what a native function sees for one invocation.
type CallCtx struct {
	Ip   *Interpreter
	Args []Value
	Span Span
}

// Arg returns the i-th argument (defaults already applied).
func (c *CallCtx) Arg(i int) Value { return c.Args[i] }

// RTErr builds a RuntimeError positioned at the call site.
func (c *CallCtx) RTErr(msg string) *Error { return c.Ip.rtErr(c.Span, msg) }

// Interpreter is a complete, isolated Wolfera runtime.
type Interpreter struct {
	cfg     Config
	Globals *Env

	natives map[string]NativeRegistration
	modules map[string]*Module
	loading []string // import stack for cycle detection

	files  map[int]*os.File
	nextFD int

	stdin *bufio.Reader // wraps cfg.Stdin so buffered input survives calls

	depth int

	// source of the unit currently being evaluated, for error objects
	file string
	src  string
}

// New builds an interpreter with the standard global surface installed
// (built-in functions, argv, math_pi and the bundled native modules).
func New(cfg Config) *Interpreter {
	if cfg.RecursionLimit <= 0 {
		cfg.RecursionLimit = 10000
	}
	if cfg.Stdin == nil {
		cfg.Stdin = os.Stdin
	}
	if cfg.Stdout == nil {
		cfg.Stdout = os.Stdout
	}
	if cfg.Stderr == nil {
		cfg.Stderr = os.Stderr
	}
	ip := &Interpreter{
		cfg:     cfg,
		Globals: NewEnv(nil),
		natives: map[string]NativeRegistration{},
		modules: map[string]*Module{},
		files:   map[int]*os.File{},
		nextFD:  3,
	}
	ip.stdin = bufio.NewReader(cfg.Stdin)
	installGlobals(ip)
	registerCoreBuiltins(ip)
	registerStringBuiltins(ip)
	registerIOBuiltins(ip)
	registerTimeModule(ip)
	return ip
}

// Run parses and evaluates a complete source unit against the global
// environment. The returned value is the program block's value.
func (ip *Interpreter) Run(file, src string) (Value, *Error) {
	prog, err := Parse(file, src)
	if err != nil {
		return Value{}, err
	}
	prevFile, prevSrc := ip.file, ip.src
	ip.file, ip.src = file, src
	defer func() { ip.file, ip.src = prevFile, prevSrc }()

	res := ip.eval(prog, ip.Globals)
	if res.Err != nil {
		return Value{}, res.Err
	}
	if res.Signal == SigReturn {
		return res.Value, nil
	}
	return res.Value, nil
}

// EvalSource is Run with a synthetic file name, for REPLs and tests.
func (ip *Interpreter) EvalSource(src string) (Value, *Error) {
	return ip.Run("<stdin>", src)
}

// RegisterNative installs a built-in function in the global environment.
// defaults cover the trailing params that may be omitted at call sites.
func (ip *Interpreter) RegisterNative(name string, params []string, defaults []Value, impl NativeImpl) {
	fn := &NativeFunc{Name: name, Params: params, Defaults: defaults, Impl: impl}
	ip.Globals.Define(name, Value{Tag: VTNative, Data: fn})
}

// RegisterNativeModule makes a native module importable under the given
// name. Native modules shadow same-named script modules.
func (ip *Interpreter) RegisterNativeModule(name string, reg NativeRegistration) {
	ip.natives[name] = reg
}

// Call invokes a Function or NativeFunc value with already-evaluated
// arguments. It is the single call boundary: SigReturn is converted into
// the call's value here, and a Break/Continue escaping the body is an
// error.
func (ip *Interpreter) Call(fn Value, args []Value, sp Span) (Value, *Error) {
	switch fn.Tag {
	case VTNative:
		return ip.callNative(fn.Data.(*NativeFunc), args, sp)
	case VTFunc:
		return ip.callFunction(fn.Data.(*Function), args, sp)
	}
	return Value{}, ip.rtErr(sp, "Illegal operation: "+fn.TypeName()+" is not callable")
}

//// END_OF_PUBLIC

////////////////////////////////////////////////////////////////////////////////
//                                   PRIVATE
////////////////////////////////////////////////////////////////////////////////

// Result constructors. failRes deliberately zeroes the value so no partial
// result can leak past an error.

func okRes(v Value) Result      { return Result{Value: v} }
func failRes(err *Error) Result { return Result{Err: err} }
func sigRes(s Signal, v Value) Result {
	return Result{Value: v, Signal: s}
}

// rtErr builds a RuntimeError against the currently evaluated source unit.
func (ip *Interpreter) rtErr(sp Span, msg string) *Error {
	return &Error{Kind: ErrRuntime, Msg: msg, Span: sp, File: ip.file, Src: ip.src}
}

// importErr builds an ImportError against the current source unit.
func (ip *Interpreter) importErr(sp Span, msg string) *Error {
	return &Error{Kind: ErrImport, Msg: msg, Span: sp, File: ip.file, Src: ip.src}
}

func (ip *Interpreter) callFunction(fn *Function, args []Value, sp Span) (Value, *Error) {
	required := 0
	for _, p := range fn.Params {
		if p.Default == nil {
			required++
		}
	}
	if len(args) > len(fn.Params) {
		return Value{}, ip.rtErr(sp, strconv.Itoa(len(args)-len(fn.Params))+" too many args passed into "+fn.DisplayName())
	}
	if len(args) < required {
		return Value{}, ip.rtErr(sp, strconv.Itoa(required-len(args))+" too few args passed into "+fn.DisplayName())
	}

	// Parameters bind in a child of the captured environment: lexical
	// scoping, not dynamic. Defaults evaluate at call time in that same
	// frame, left to right, so later defaults can see earlier parameters.
	callEnv := NewEnv(fn.Env)
	for i, p := range fn.Params {
		var v Value
		if i < len(args) {
			v = args[i]
		} else {
			res := ip.eval(p.Default, callEnv)
			if res.Err != nil {
				return Value{}, res.Err
			}
			if res.Signal != SigNone {
				return Value{}, ip.rtErr(p.Default.Span(), "Illegal operation: control-flow signal in default value")
			}
			v = res.Value
		}
		callEnv.Define(p.Name, v)
	}

	res := ip.eval(fn.Body, callEnv)
	if res.Err != nil {
		return Value{}, res.Err
	}
	switch res.Signal {
	case SigReturn, SigNone:
		return res.Value, nil
	case SigBreak:
		return Value{}, ip.rtErr(sp, "Illegal operation: 'break' outside of a loop")
	case SigContinue:
		return Value{}, ip.rtErr(sp, "Illegal operation: 'continue' outside of a loop")
	}
	return res.Value, nil
}

func (ip *Interpreter) callNative(fn *NativeFunc, args []Value, sp Span) (Value, *Error) {
	required := len(fn.Params) - len(fn.Defaults)
	if len(args) > len(fn.Params) {
		return Value{}, ip.rtErr(sp, strconv.Itoa(len(args)-len(fn.Params))+" too many args passed into "+fn.Name)
	}
	if len(args) < required {
		return Value{}, ip.rtErr(sp, strconv.Itoa(required-len(args))+" too few args passed into "+fn.Name)
	}
	full := make([]Value, len(fn.Params))
	copy(full, args)
	for i := len(args); i < len(fn.Params); i++ {
		full[i] = fn.Defaults[i-required]
	}
	return fn.Impl(&CallCtx{Ip: ip, Args: full, Span: sp})
}

