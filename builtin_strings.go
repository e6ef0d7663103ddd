// builtin_strings.go — string-oriented built-ins
package wolfera

import "strings"

func registerStringBuiltins(ip *Interpreter) {
	ip.RegisterNative("join", []string{"list", "sep"}, []Value{Str("")}, biJoin)
	ip.RegisterNative("split", []string{"str", "sep"}, []Value{Str(" ")}, biSplit)
	ip.RegisterNative("trim", []string{"str"}, nil, trimWith(strings.TrimSpace))
	ip.RegisterNative("ltrim", []string{"str"}, nil, trimWith(func(s string) string {
		return strings.TrimLeft(s, " \t\r\n")
	}))
	ip.RegisterNative("rtrim", []string{"str"}, nil, trimWith(func(s string) string {
		return strings.TrimRight(s, " \t\r\n")
	}))
	ip.RegisterNative("startswith", []string{"str", "prefix"}, nil, biStartswith)
	ip.RegisterNative("endswith", []string{"str", "suffix"}, nil, biEndswith)
	ip.RegisterNative("contains", []string{"haystack", "needle"}, nil, biContains)
}

func biJoin(c *CallCtx) (Value, *Error) {
	lo, err := c.listArg(0)
	if err != nil {
		return Value{}, err
	}
	sep, err := c.strArg(1)
	if err != nil {
		return Value{}, err
	}
	parts := make([]string, len(lo.Elems))
	for i, el := range lo.Elems {
		parts[i] = ToString(el)
	}
	return Str(strings.Join(parts, sep)), nil
}

func biSplit(c *CallCtx) (Value, *Error) {
	s, err := c.strArg(0)
	if err != nil {
		return Value{}, err
	}
	sep, err := c.strArg(1)
	if err != nil {
		return Value{}, err
	}
	var parts []string
	if sep == "" {
		for _, r := range s {
			parts = append(parts, string(r))
		}
	} else {
		parts = strings.Split(s, sep)
	}
	out := make([]Value, len(parts))
	for i, p := range parts {
		out[i] = Str(p)
	}
	return List(out), nil
}

func trimWith(fn func(string) string) NativeImpl {
	return func(c *CallCtx) (Value, *Error) {
		s, err := c.strArg(0)
		if err != nil {
			return Value{}, err
		}
		return Str(fn(s)), nil
	}
}

func biStartswith(c *CallCtx) (Value, *Error) {
	s, err := c.strArg(0)
	if err != nil {
		return Value{}, err
	}
	prefix, err := c.strArg(1)
	if err != nil {
		return Value{}, err
	}
	return Bool(strings.HasPrefix(s, prefix)), nil
}

func biEndswith(c *CallCtx) (Value, *Error) {
	s, err := c.strArg(0)
	if err != nil {
		return Value{}, err
	}
	suffix, err := c.strArg(1)
	if err != nil {
		return Value{}, err
	}
	return Bool(strings.HasSuffix(s, suffix)), nil
}

// contains works on both kinds of containers: substring search on Strings,
// element search (by value equality) on Lists.
func biContains(c *CallCtx) (Value, *Error) {
	switch v := c.Arg(0); v.Tag {
	case VTStr:
		sub, err := c.strArg(1)
		if err != nil {
			return Value{}, err
		}
		return Bool(strings.Contains(v.Data.(string), sub)), nil
	case VTList:
		for _, el := range v.Data.(*ListObject).Elems {
			if ValueEquals(el, c.Arg(1)) {
				return Bool(true), nil
			}
		}
		return Bool(false), nil
	default:
		return Value{}, c.RTErr("Argument 1 must be String or List, got " + v.TypeName())
	}
}
