// interpreter_ops.go — binary and unary operator semantics
//
// Arithmetic stays in Int for Int op Int, except '/' which always produces
// a Float. A handful of operators are overloaded on container and string
// operands; everything outside the table below is an "Illegal operation"
// RuntimeError naming both operand kinds.
//
//	Str  * Int   repeat
//	Str  + any   stringify and concatenate (either side)
//	List + any   copy with the element appended
//	List * List  concatenation
//	List - Int   copy with the element at the index removed
//	List / Int   element at the index
//	Dict + Dict  merge, right side wins on key clashes
package wolfera

import (
	"fmt"
	"math"
	"strings"
)

func opSymbol(op TokenType) string {
	switch op {
	case PLUS:
		return "+"
	case MINUS:
		return "-"
	case MUL:
		return "*"
	case DIV:
		return "/"
	case MOD:
		return "%"
	case POW:
		return "^"
	case LESS:
		return "<"
	case GREATER:
		return ">"
	case LESS_EQ:
		return "<="
	case GREATER_EQ:
		return ">="
	case EQ:
		return "=="
	case NEQ:
		return "!="
	}
	return "?"
}

func (ip *Interpreter) illegalOp(sp Span, op TokenType, l, r Value) *Error {
	return ip.rtErr(sp, fmt.Sprintf("Illegal operation: %s %s %s", l.TypeName(), opSymbol(op), r.TypeName()))
}

func (ip *Interpreter) binaryOp(op TokenType, l, r Value, sp Span) (Value, *Error) {
	switch op {
	case EQ:
		return Bool(ValueEquals(l, r)), nil
	case NEQ:
		return Bool(!ValueEquals(l, r)), nil
	case LESS, GREATER, LESS_EQ, GREATER_EQ:
		return ip.compareOp(op, l, r, sp)
	case PLUS:
		return ip.addOp(l, r, sp)
	case MINUS:
		return ip.subOp(l, r, sp)
	case MUL:
		return ip.mulOp(l, r, sp)
	case DIV:
		return ip.divOp(l, r, sp)
	case MOD:
		return ip.modOp(l, r, sp)
	case POW:
		return ip.powOp(l, r, sp)
	}
	return Value{}, ip.illegalOp(sp, op, l, r)
}

func (ip *Interpreter) unaryOp(op TokenType, v Value, sp Span) (Value, *Error) {
	switch op {
	case NOT:
		return Bool(!Truthy(v)), nil
	case MINUS:
		switch v.Tag {
		case VTInt:
			return Int(-v.Data.(int64)), nil
		case VTFloat:
			return Float(-v.Data.(float64)), nil
		}
		return Value{}, ip.rtErr(sp, "Illegal operation: -"+v.TypeName())
	}
	return Value{}, ip.rtErr(sp, "Illegal operation: unary "+opSymbol(op))
}

// bothInt reports strict Int operands; arithmetic on Bool is not allowed
// even though Bool compares numerically.
func bothInt(l, r Value) bool  { return l.Tag == VTInt && r.Tag == VTInt }
func bothNums(l, r Value) bool { return (l.Tag == VTInt || l.Tag == VTFloat) && (r.Tag == VTInt || r.Tag == VTFloat) }

func (ip *Interpreter) compareOp(op TokenType, l, r Value, sp Span) (Value, *Error) {
	var cmp int
	switch {
	case l.IsNumeric() && r.IsNumeric():
		a, b := l.AsFloat(), r.AsFloat()
		switch {
		case a < b:
			cmp = -1
		case a > b:
			cmp = 1
		}
	case l.Tag == VTStr && r.Tag == VTStr:
		cmp = strings.Compare(l.Data.(string), r.Data.(string))
	default:
		return Value{}, ip.illegalOp(sp, op, l, r)
	}
	switch op {
	case LESS:
		return Bool(cmp < 0), nil
	case GREATER:
		return Bool(cmp > 0), nil
	case LESS_EQ:
		return Bool(cmp <= 0), nil
	default:
		return Bool(cmp >= 0), nil
	}
}

func (ip *Interpreter) addOp(l, r Value, sp Span) (Value, *Error) {
	switch {
	case bothInt(l, r):
		return Int(l.Data.(int64) + r.Data.(int64)), nil
	case bothNums(l, r):
		return Float(l.AsFloat() + r.AsFloat()), nil
	case l.Tag == VTStr:
		return Str(l.Data.(string) + ToString(r)), nil
	case r.Tag == VTStr:
		return Str(ToString(l) + r.Data.(string)), nil
	case l.Tag == VTList:
		src := l.Data.(*ListObject).Elems
		out := make([]Value, len(src), len(src)+1)
		copy(out, src)
		return List(append(out, r)), nil
	case l.Tag == VTDict && r.Tag == VTDict:
		le, re := l.Data.(*DictObject).Entries, r.Data.(*DictObject).Entries
		out := make(map[string]Value, len(le)+len(re))
		for k, v := range le {
			out[k] = v
		}
		for k, v := range re {
			out[k] = v
		}
		return Dict(out), nil
	}
	return Value{}, ip.illegalOp(sp, PLUS, l, r)
}

func (ip *Interpreter) subOp(l, r Value, sp Span) (Value, *Error) {
	switch {
	case bothInt(l, r):
		return Int(l.Data.(int64) - r.Data.(int64)), nil
	case bothNums(l, r):
		return Float(l.AsFloat() - r.AsFloat()), nil
	case l.Tag == VTList && r.Tag == VTInt:
		src := l.Data.(*ListObject).Elems
		idx, ok := normalizeIndex(r.Data.(int64), len(src))
		if !ok {
			return Value{}, ip.rtErr(sp, "Element at this index could not be removed from list because index is out of bounds")
		}
		out := make([]Value, 0, len(src)-1)
		out = append(out, src[:idx]...)
		out = append(out, src[idx+1:]...)
		return List(out), nil
	}
	return Value{}, ip.illegalOp(sp, MINUS, l, r)
}

func (ip *Interpreter) mulOp(l, r Value, sp Span) (Value, *Error) {
	switch {
	case bothInt(l, r):
		return Int(l.Data.(int64) * r.Data.(int64)), nil
	case bothNums(l, r):
		return Float(l.AsFloat() * r.AsFloat()), nil
	case l.Tag == VTStr && r.Tag == VTInt:
		return Str(repeatString(l.Data.(string), r.Data.(int64))), nil
	case l.Tag == VTInt && r.Tag == VTStr:
		return Str(repeatString(r.Data.(string), l.Data.(int64))), nil
	case l.Tag == VTList && r.Tag == VTList:
		a, b := l.Data.(*ListObject).Elems, r.Data.(*ListObject).Elems
		out := make([]Value, 0, len(a)+len(b))
		out = append(out, a...)
		out = append(out, b...)
		return List(out), nil
	}
	return Value{}, ip.illegalOp(sp, MUL, l, r)
}

func (ip *Interpreter) divOp(l, r Value, sp Span) (Value, *Error) {
	switch {
	case bothNums(l, r):
		if r.AsFloat() == 0 {
			return Value{}, ip.rtErr(sp, "Division by zero")
		}
		return Float(l.AsFloat() / r.AsFloat()), nil
	case l.Tag == VTList && r.Tag == VTInt:
		src := l.Data.(*ListObject).Elems
		idx, ok := normalizeIndex(r.Data.(int64), len(src))
		if !ok {
			return Value{}, ip.rtErr(sp, "Element at this index could not be retrieved from list because index is out of bounds")
		}
		return src[idx], nil
	}
	return Value{}, ip.illegalOp(sp, DIV, l, r)
}

func (ip *Interpreter) modOp(l, r Value, sp Span) (Value, *Error) {
	switch {
	case bothInt(l, r):
		if r.Data.(int64) == 0 {
			return Value{}, ip.rtErr(sp, "Modulo by zero")
		}
		return Int(l.Data.(int64) % r.Data.(int64)), nil
	case bothNums(l, r):
		if r.AsFloat() == 0 {
			return Value{}, ip.rtErr(sp, "Modulo by zero")
		}
		return Float(math.Mod(l.AsFloat(), r.AsFloat())), nil
	}
	return Value{}, ip.illegalOp(sp, MOD, l, r)
}

func (ip *Interpreter) powOp(l, r Value, sp Span) (Value, *Error) {
	if !bothNums(l, r) {
		return Value{}, ip.illegalOp(sp, POW, l, r)
	}
	if bothInt(l, r) && r.Data.(int64) >= 0 {
		base, exp := l.Data.(int64), r.Data.(int64)
		var out int64 = 1
		for ; exp > 0; exp-- {
			out *= base
		}
		return Int(out), nil
	}
	return Float(math.Pow(l.AsFloat(), r.AsFloat())), nil
}

// --- indexing -------------------------------------------------------------------

// normalizeIndex resolves a possibly negative index against a length.
func normalizeIndex(i int64, length int) (int, bool) {
	if i < 0 {
		i += int64(length)
	}
	if i < 0 || i >= int64(length) {
		return 0, false
	}
	return int(i), true
}

func (ip *Interpreter) indexGet(target, index Value, sp Span) (Value, *Error) {
	switch target.Tag {
	case VTList:
		if index.Tag != VTInt {
			return Value{}, ip.rtErr(sp, "List index must be Number, got "+index.TypeName())
		}
		src := target.Data.(*ListObject).Elems
		idx, ok := normalizeIndex(index.Data.(int64), len(src))
		if !ok {
			return Value{}, ip.rtErr(sp, fmt.Sprintf("Index %d out of bounds for List of length %d", index.Data.(int64), len(src)))
		}
		return src[idx], nil
	case VTStr:
		if index.Tag != VTInt {
			return Value{}, ip.rtErr(sp, "String index must be Number, got "+index.TypeName())
		}
		runes := []rune(target.Data.(string))
		idx, ok := normalizeIndex(index.Data.(int64), len(runes))
		if !ok {
			return Value{}, ip.rtErr(sp, fmt.Sprintf("Index %d out of bounds for String of length %d", index.Data.(int64), len(runes)))
		}
		return Str(string(runes[idx])), nil
	case VTDict:
		if index.Tag != VTStr {
			return Value{}, ip.rtErr(sp, "Dict key must be String, got "+index.TypeName())
		}
		key := index.Data.(string)
		if v, ok := target.Data.(*DictObject).Entries[key]; ok {
			return v, nil
		}
		return Value{}, ip.rtErr(sp, "Key '"+key+"' not found in dict")
	}
	return Value{}, ip.rtErr(sp, "Illegal operation: "+target.TypeName()+" is not indexable")
}

// indexSet mutates Lists and Dicts in place; both are reference values.
func (ip *Interpreter) indexSet(target, index, val Value, sp Span) *Error {
	switch target.Tag {
	case VTList:
		if index.Tag != VTInt {
			return ip.rtErr(sp, "List index must be Number, got "+index.TypeName())
		}
		lo := target.Data.(*ListObject)
		idx, ok := normalizeIndex(index.Data.(int64), len(lo.Elems))
		if !ok {
			return ip.rtErr(sp, fmt.Sprintf("Index %d out of bounds for List of length %d", index.Data.(int64), len(lo.Elems)))
		}
		lo.Elems[idx] = val
		return nil
	case VTDict:
		if index.Tag != VTStr {
			return ip.rtErr(sp, "Dict key must be String, got "+index.TypeName())
		}
		target.Data.(*DictObject).Entries[index.Data.(string)] = val
		return nil
	}
	return ip.rtErr(sp, "Illegal operation: "+target.TypeName()+" does not support index assignment")
}

// --- member access --------------------------------------------------------------

func (ip *Interpreter) memberGet(target Value, name string, sp Span) (Value, *Error) {
	switch target.Tag {
	case VTModule:
		mod := target.Data.(*Module)
		if v, ok := mod.Exports[name]; ok {
			return v, nil
		}
		return Value{}, ip.rtErr(sp, "'"+name+"' is not defined in module '"+mod.Name+"'")
	case VTStructInst:
		si := target.Data.(*StructInstance)
		if v, ok := si.Fields[name]; ok {
			return v, nil
		}
		return Value{}, ip.rtErr(sp, "Struct '"+si.Type.Name+"' has no field '"+name+"'")
	}
	return Value{}, ip.rtErr(sp, "Illegal operation: "+target.TypeName()+" has no members")
}

func (ip *Interpreter) memberSet(target Value, name string, val Value, sp Span) *Error {
	switch target.Tag {
	case VTStructInst:
		si := target.Data.(*StructInstance)
		if _, ok := si.Fields[name]; !ok {
			return ip.rtErr(sp, "Struct '"+si.Type.Name+"' has no field '"+name+"'")
		}
		si.Fields[name] = val
		return nil
	case VTModule:
		return ip.rtErr(sp, "Cannot assign to member of module '"+target.Data.(*Module).Name+"'")
	}
	return ip.rtErr(sp, "Illegal operation: "+target.TypeName()+" does not support member assignment")
}

func repeatString(s string, n int64) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat(s, int(n))
}
