// values.go — the runtime value system
//
// OVERVIEW
// --------
// Wolfera values are a tagged union: a small Value struct holding a tag and
// an interface payload. Numbers are split into Int (int64) and Float
// (float64); '/' always produces a Float, the other arithmetic operators
// stay in Int when both operands are Int.
//
// Mutable aggregates (List, Dict, struct instances, modules) hold pointers
// so aliasing works the way scripts expect: appending through one binding is
// visible through another.
//
// Payloads by tag:
//
//	VTNull       nil
//	VTBool       bool
//	VTInt        int64
//	VTFloat      float64
//	VTStr        string
//	VTList       *ListObject
//	VTDict       *DictObject
//	VTFunc       *Function
//	VTNative     *NativeFunc
//	VTStructType *StructType
//	VTStructInst *StructInstance
//	VTModule     *Module
//
// Equality, ordering and truthiness rules live here as free functions so
// both the operator dispatch (interpreter_ops.go) and built-ins share them.
package wolfera

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

////////////////////////////////////////////////////////////////////////////////
//                                  PUBLIC API
////////////////////////////////////////////////////////////////////////////////

// ValueTag discriminates the Value union.
type ValueTag int

const (
	VTNull ValueTag = iota
	VTBool
	VTInt
	VTFloat
	VTStr
	VTList
	VTDict
	VTFunc
	VTNative
	VTStructType
	VTStructInst
	VTModule
)

// Value is a single runtime value.
type Value struct {
	Tag  ValueTag
	Data interface{}
}

// Constructors.

func Null() Value              { return Value{Tag: VTNull} }
func Bool(b bool) Value        { return Value{Tag: VTBool, Data: b} }
func Int(n int64) Value        { return Value{Tag: VTInt, Data: n} }
func Float(f float64) Value    { return Value{Tag: VTFloat, Data: f} }
func Str(s string) Value       { return Value{Tag: VTStr, Data: s} }
func List(elems []Value) Value { return Value{Tag: VTList, Data: &ListObject{Elems: elems}} }

func Dict(entries map[string]Value) Value {
	if entries == nil {
		entries = map[string]Value{}
	}
	return Value{Tag: VTDict, Data: &DictObject{Entries: entries}}
}

// ListObject is the mutable backing store of a VTList value.
type ListObject struct {
	Elems []Value
}

// DictObject is the mutable backing store of a VTDict value. Keys are
// always strings; insertion order is not observable.
type DictObject struct {
	Entries map[string]Value
}

// Function is a user-defined function with its captured defining
// environment.
type Function struct {
	Name   string
	Params []Param
	Body   Node
	Env    *Env
}

// DisplayName is the name shown in arity errors and string conversion.
func (f *Function) DisplayName() string {
	if f.Name == "" {
		return "<anonymous>"
	}
	return f.Name
}

// NativeFunc is a host-implemented function. Impl receives the evaluated
// arguments through a CallCtx; defaults fill unsupplied trailing parameters.
type NativeFunc struct {
	Name     string
	Params   []string
	Defaults []Value // parallel to the trailing Params it covers
	Impl     func(c *CallCtx) (Value, *Error)
}

// StructType is the first-class value produced by a struct declaration.
type StructType struct {
	Name   string
	Fields []string
}

// StructInstance is one constructed value of a StructType. The field set is
// exactly the type's declared fields.
type StructInstance struct {
	Type   *StructType
	Fields map[string]Value
}

// Module is a resolved import: a named export surface. Nested modules occur
// for dotted import paths.
type Module struct {
	Name    string
	Exports map[string]Value
}

// TypeName returns the user-facing name of a value's kind.
func (v Value) TypeName() string {
	switch v.Tag {
	case VTNull:
		return "Null"
	case VTBool:
		return "Bool"
	case VTInt, VTFloat:
		return "Number"
	case VTStr:
		return "String"
	case VTList:
		return "List"
	case VTDict:
		return "Dict"
	case VTFunc, VTNative:
		return "Function"
	case VTStructType:
		return "StructType"
	case VTStructInst:
		return "Struct"
	case VTModule:
		return "Module"
	}
	return "Unknown"
}

// Truthy implements the language truthiness rule: null, false and numeric
// zero are falsy, everything else is truthy.
func Truthy(v Value) bool {
	switch v.Tag {
	case VTNull:
		return false
	case VTBool:
		return v.Data.(bool)
	case VTInt:
		return v.Data.(int64) != 0
	case VTFloat:
		return v.Data.(float64) != 0
	}
	return true
}

// IsNumeric reports whether the value participates in arithmetic. Bools
// count numerically (true=1, false=0) for comparison purposes.
func (v Value) IsNumeric() bool {
	return v.Tag == VTInt || v.Tag == VTFloat || v.Tag == VTBool
}

// AsFloat converts a numeric value to float64. Callers must check
// IsNumeric first.
func (v Value) AsFloat() float64 {
	switch v.Tag {
	case VTInt:
		return float64(v.Data.(int64))
	case VTFloat:
		return v.Data.(float64)
	case VTBool:
		if v.Data.(bool) {
			return 1
		}
		return 0
	}
	return 0
}

// ValueEquals is the language '==' relation: numeric values (including
// Bool) compare numerically, Strings by content, Lists and Dicts deeply,
// Null equals Null, and everything else by host identity. Cross-kind pairs
// outside the numeric family are unequal, never an error.
func ValueEquals(a, b Value) bool {
	if a.IsNumeric() && b.IsNumeric() {
		return a.AsFloat() == b.AsFloat()
	}
	if a.Tag != b.Tag {
		return false
	}
	switch a.Tag {
	case VTNull:
		return true
	case VTStr:
		return a.Data.(string) == b.Data.(string)
	case VTList:
		la, lb := a.Data.(*ListObject), b.Data.(*ListObject)
		if len(la.Elems) != len(lb.Elems) {
			return false
		}
		for i := range la.Elems {
			if !ValueEquals(la.Elems[i], lb.Elems[i]) {
				return false
			}
		}
		return true
	case VTDict:
		da, db := a.Data.(*DictObject), b.Data.(*DictObject)
		if len(da.Entries) != len(db.Entries) {
			return false
		}
		for k, va := range da.Entries {
			vb, ok := db.Entries[k]
			if !ok || !ValueEquals(va, vb) {
				return false
			}
		}
		return true
	}
	return a.Data == b.Data
}

// ToString renders a value the way print and string concatenation see it.
func ToString(v Value) string {
	switch v.Tag {
	case VTNull:
		return "null"
	case VTBool:
		if v.Data.(bool) {
			return "true"
		}
		return "false"
	case VTInt:
		return strconv.FormatInt(v.Data.(int64), 10)
	case VTFloat:
		return strconv.FormatFloat(v.Data.(float64), 'g', -1, 64)
	case VTStr:
		return v.Data.(string)
	case VTList:
		lo := v.Data.(*ListObject)
		parts := make([]string, len(lo.Elems))
		for i, el := range lo.Elems {
			parts[i] = ToString(el)
		}
		return strings.Join(parts, ", ")
	case VTDict:
		return dictString(v.Data.(*DictObject))
	case VTFunc:
		return fmt.Sprintf("<function %s>", v.Data.(*Function).DisplayName())
	case VTNative:
		return fmt.Sprintf("<built-in function %s>", v.Data.(*NativeFunc).Name)
	case VTStructType:
		return fmt.Sprintf("<struct %s>", v.Data.(*StructType).Name)
	case VTStructInst:
		return structInstString(v.Data.(*StructInstance))
	case VTModule:
		return fmt.Sprintf("<module %s>", v.Data.(*Module).Name)
	}
	return "<unknown>"
}

// Repr renders a value for REPL echo and AST dumps: like ToString except
// strings are quoted and lists bracketed.
func Repr(v Value) string {
	switch v.Tag {
	case VTStr:
		return strconv.Quote(v.Data.(string))
	case VTList:
		lo := v.Data.(*ListObject)
		parts := make([]string, len(lo.Elems))
		for i, el := range lo.Elems {
			parts[i] = Repr(el)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	}
	return ToString(v)
}

//// END_OF_PUBLIC

////////////////////////////////////////////////////////////////////////////////
//                                   PRIVATE
////////////////////////////////////////////////////////////////////////////////

// dictString renders entries in sorted key order so output is stable even
// though the language treats dict order as irrelevant.
func dictString(d *DictObject) string {
	keys := make([]string, 0, len(d.Entries))
	for k := range d.Entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s: %s", k, ToString(d.Entries[k]))
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

func structInstString(si *StructInstance) string {
	parts := make([]string, len(si.Type.Fields))
	for i, f := range si.Type.Fields {
		parts[i] = fmt.Sprintf("%s: %s", f, Repr(si.Fields[f]))
	}
	return si.Type.Name + " {" + strings.Join(parts, ", ") + "}"
}
