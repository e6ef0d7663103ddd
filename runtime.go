// runtime.go — the predefined global surface
package wolfera

import "math"

// installGlobals seeds the constants every program sees before its first
// statement runs. argv mirrors Config.Args; scripts launched by the CLI get
// everything after the "--" separator.
func installGlobals(ip *Interpreter) {
	argv := make([]Value, len(ip.cfg.Args))
	for i, a := range ip.cfg.Args {
		argv[i] = Str(a)
	}
	ip.Globals.Define("argv", List(argv))
	ip.Globals.DefineConst("math_pi", Float(math.Pi))
}

// nativeVal wraps a host function as a callable Value, for module export
// tables that bypass RegisterNative.
func nativeVal(name string, params []string, defaults []Value, impl NativeImpl) Value {
	return Value{Tag: VTNative, Data: &NativeFunc{Name: name, Params: params, Defaults: defaults, Impl: impl}}
}
