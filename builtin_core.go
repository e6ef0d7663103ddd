// builtin_core.go — the core built-in functions
//
// Everything here is installed into the global environment by New via
// registerCoreBuiltins: console I/O, type predicates, list primitives and
// the higher-order trio map/filter/reduce. String helpers live in
// builtin_strings.go and file handles in builtin_io.go.
package wolfera

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// argument accessors shared by all built-ins; each returns a RuntimeError
// naming the expected kind when the caller passed something else.

func (c *CallCtx) listArg(i int) (*ListObject, *Error) {
	v := c.Arg(i)
	if v.Tag != VTList {
		return nil, c.RTErr(fmt.Sprintf("Argument %d must be List, got %s", i+1, v.TypeName()))
	}
	return v.Data.(*ListObject), nil
}

func (c *CallCtx) strArg(i int) (string, *Error) {
	v := c.Arg(i)
	if v.Tag != VTStr {
		return "", c.RTErr(fmt.Sprintf("Argument %d must be String, got %s", i+1, v.TypeName()))
	}
	return v.Data.(string), nil
}

func (c *CallCtx) intArg(i int) (int64, *Error) {
	v := c.Arg(i)
	if v.Tag != VTInt {
		return 0, c.RTErr(fmt.Sprintf("Argument %d must be Number, got %s", i+1, v.TypeName()))
	}
	return v.Data.(int64), nil
}

func (c *CallCtx) funcArg(i int) (Value, *Error) {
	v := c.Arg(i)
	if v.Tag != VTFunc && v.Tag != VTNative {
		return Value{}, c.RTErr(fmt.Sprintf("Argument %d must be Function, got %s", i+1, v.TypeName()))
	}
	return v, nil
}

func registerCoreBuiltins(ip *Interpreter) {
	ip.RegisterNative("print", []string{"value"}, nil, biPrint)
	ip.RegisterNative("print_ret", []string{"value"}, nil, biPrintRet)
	ip.RegisterNative("input", nil, nil, biInput)
	ip.RegisterNative("input_int", nil, nil, biInputInt)
	ip.RegisterNative("clear", nil, nil, biClear)
	ip.RegisterNative("cls", nil, nil, biClear)

	ip.RegisterNative("is_num", []string{"value"}, nil, tagPredicate(VTInt, VTFloat))
	ip.RegisterNative("is_str", []string{"value"}, nil, tagPredicate(VTStr))
	ip.RegisterNative("is_list", []string{"value"}, nil, tagPredicate(VTList))
	ip.RegisterNative("is_fun", []string{"value"}, nil, tagPredicate(VTFunc, VTNative))

	ip.RegisterNative("append", []string{"list", "value"}, nil, biAppend)
	ip.RegisterNative("pop", []string{"list", "index"}, nil, biPop)
	ip.RegisterNative("extend", []string{"listA", "listB"}, nil, biExtend)
	ip.RegisterNative("len", []string{"value"}, nil, biLen)
	ip.RegisterNative("range", []string{"start", "end", "step"}, []Value{Null(), Int(1)}, biRange)

	ip.RegisterNative("map", []string{"fn", "list"}, nil, biMap)
	ip.RegisterNative("filter", []string{"fn", "list"}, nil, biFilter)
	ip.RegisterNative("reduce", []string{"fn", "list", "initial"}, []Value{Null()}, biReduce)
}

func biPrint(c *CallCtx) (Value, *Error) {
	fmt.Fprintln(c.Ip.cfg.Stdout, ToString(c.Arg(0)))
	return Null(), nil
}

func biPrintRet(c *CallCtx) (Value, *Error) {
	return Str(ToString(c.Arg(0))), nil
}

func biInput(c *CallCtx) (Value, *Error) {
	line, err := c.Ip.readLine()
	if err != nil {
		return Value{}, c.RTErr("Could not read input: " + err.Error())
	}
	return Str(line), nil
}

func biInputInt(c *CallCtx) (Value, *Error) {
	for {
		line, err := c.Ip.readLine()
		if err != nil {
			return Value{}, c.RTErr("Could not read input: " + err.Error())
		}
		n, perr := strconv.ParseInt(strings.TrimSpace(line), 10, 64)
		if perr == nil {
			return Int(n), nil
		}
		fmt.Fprintf(c.Ip.cfg.Stdout, "'%s' must be an integer. Try again!\n", strings.TrimSpace(line))
	}
}

func biClear(c *CallCtx) (Value, *Error) {
	fmt.Fprint(c.Ip.cfg.Stdout, "\033[2J\033[H")
	return Null(), nil
}

func tagPredicate(tags ...ValueTag) NativeImpl {
	return func(c *CallCtx) (Value, *Error) {
		for _, t := range tags {
			if c.Arg(0).Tag == t {
				return Bool(true), nil
			}
		}
		return Bool(false), nil
	}
}

func biAppend(c *CallCtx) (Value, *Error) {
	lo, err := c.listArg(0)
	if err != nil {
		return Value{}, err
	}
	lo.Elems = append(lo.Elems, c.Arg(1))
	return Null(), nil
}

func biPop(c *CallCtx) (Value, *Error) {
	lo, err := c.listArg(0)
	if err != nil {
		return Value{}, err
	}
	i, err := c.intArg(1)
	if err != nil {
		return Value{}, err
	}
	idx, ok := normalizeIndex(i, len(lo.Elems))
	if !ok {
		return Value{}, c.RTErr("Element at this index could not be removed from list because index is out of bounds")
	}
	out := lo.Elems[idx]
	lo.Elems = append(lo.Elems[:idx], lo.Elems[idx+1:]...)
	return out, nil
}

func biExtend(c *CallCtx) (Value, *Error) {
	dst, err := c.listArg(0)
	if err != nil {
		return Value{}, err
	}
	src, err := c.listArg(1)
	if err != nil {
		return Value{}, err
	}
	dst.Elems = append(dst.Elems, src.Elems...)
	return Null(), nil
}

func biLen(c *CallCtx) (Value, *Error) {
	switch v := c.Arg(0); v.Tag {
	case VTStr:
		return Int(int64(len([]rune(v.Data.(string))))), nil
	case VTList:
		return Int(int64(len(v.Data.(*ListObject).Elems))), nil
	case VTDict:
		return Int(int64(len(v.Data.(*DictObject).Entries))), nil
	default:
		return Value{}, c.RTErr("Argument must be String, List or Dict, got " + v.TypeName())
	}
}

// biRange follows the one/two/three argument convention: range(n) counts
// from 0, range(a, b) from a, range(a, b, step) with an explicit stride.
func biRange(c *CallCtx) (Value, *Error) {
	start, err := c.intArg(0)
	if err != nil {
		return Value{}, err
	}
	var end int64
	if c.Arg(1).Tag == VTNull {
		start, end = 0, start
	} else {
		end, err = c.intArg(1)
		if err != nil {
			return Value{}, err
		}
	}
	step, err := c.intArg(2)
	if err != nil {
		return Value{}, err
	}
	if step == 0 {
		return Value{}, c.RTErr("range step cannot be 0")
	}
	var out []Value
	for i := start; (step > 0 && i < end) || (step < 0 && i > end); i += step {
		out = append(out, Int(i))
	}
	return List(out), nil
}

func biMap(c *CallCtx) (Value, *Error) {
	fn, err := c.funcArg(0)
	if err != nil {
		return Value{}, err
	}
	lo, err := c.listArg(1)
	if err != nil {
		return Value{}, err
	}
	out := make([]Value, len(lo.Elems))
	for i, el := range lo.Elems {
		v, cerr := c.Ip.Call(fn, []Value{el}, c.Span)
		if cerr != nil {
			return Value{}, cerr
		}
		out[i] = v
	}
	return List(out), nil
}

func biFilter(c *CallCtx) (Value, *Error) {
	fn, err := c.funcArg(0)
	if err != nil {
		return Value{}, err
	}
	lo, err := c.listArg(1)
	if err != nil {
		return Value{}, err
	}
	var out []Value
	for _, el := range lo.Elems {
		v, cerr := c.Ip.Call(fn, []Value{el}, c.Span)
		if cerr != nil {
			return Value{}, cerr
		}
		if Truthy(v) {
			out = append(out, el)
		}
	}
	return List(out), nil
}

// biReduce folds left. With no initial value the first element seeds the
// accumulator; reducing an empty list without an initial value yields null.
func biReduce(c *CallCtx) (Value, *Error) {
	fn, err := c.funcArg(0)
	if err != nil {
		return Value{}, err
	}
	lo, err := c.listArg(1)
	if err != nil {
		return Value{}, err
	}
	acc := c.Arg(2)
	elems := lo.Elems
	if acc.Tag == VTNull {
		if len(elems) == 0 {
			return Null(), nil
		}
		acc, elems = elems[0], elems[1:]
	}
	for _, el := range elems {
		v, cerr := c.Ip.Call(fn, []Value{acc, el}, c.Span)
		if cerr != nil {
			return Value{}, cerr
		}
		acc = v
	}
	return acc, nil
}

// readLine pulls one newline-terminated line from the buffered stdin,
// without the terminator. A final unterminated line is still returned.
func (ip *Interpreter) readLine() (string, error) {
	line, err := ip.stdin.ReadString('\n')
	if err == io.EOF && line != "" {
		err = nil
	}
	if err != nil {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
