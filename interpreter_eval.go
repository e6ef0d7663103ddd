// interpreter_eval.go — the tree walk
//
// eval is a single recursive switch over the AST node types (ast.go). Every
// arm observes the same short-circuit discipline: the moment a child Result
// carries a signal or error, evaluation of siblings stops and the Result
// propagates. The handlers that absorb signals are callFunction
// (interpreter.go) for SigReturn, the loop arms here for SigBreak and
// SigContinue, and the TryNode arm for errors.
//
// The language is expression-oriented: each arm produces a value. Loops
// accumulate one value per iteration into a List; if yields the taken
// branch's value; switch yields the matched body's value; do and function
// bodies yield their last statement's value.
package wolfera

import (
	"fmt"
	"sort"
	"strings"
)

// eval evaluates one node against an environment. The depth counter guards
// against unbounded recursion, both deep AST nesting and runaway
// language-level calls, turning either into a RuntimeError instead of a
// host stack overflow.
func (ip *Interpreter) eval(n Node, env *Env) Result {
	ip.depth++
	defer func() { ip.depth-- }()
	if ip.depth > ip.cfg.RecursionLimit {
		return failRes(ip.rtErr(n.Span(), "Maximum recursion depth exceeded"))
	}

	switch node := n.(type) {
	case *IntNode:
		return okRes(Int(node.Value))
	case *FloatNode:
		return okRes(Float(node.Value))
	case *StringNode:
		return okRes(Str(node.Value))
	case *BoolNode:
		return okRes(Bool(node.Value))
	case *NullNode:
		return okRes(Null())
	case *FStringNode:
		return ip.evalFString(node, env)
	case *IdentNode:
		if v, ok := env.Get(node.Name); ok {
			return okRes(v)
		}
		return failRes(ip.rtErr(node.Span(), "'"+node.Name+"' is not defined"))
	case *ListNode:
		elems := make([]Value, 0, len(node.Elems))
		for _, el := range node.Elems {
			res := ip.eval(el, env)
			if res.Stop() {
				return res
			}
			elems = append(elems, res.Value)
		}
		return okRes(List(elems))
	case *DictNode:
		entries := make(map[string]Value, len(node.Keys))
		for i, kn := range node.Keys {
			kres := ip.eval(kn, env)
			if kres.Stop() {
				return kres
			}
			if kres.Value.Tag != VTStr {
				return failRes(ip.rtErr(kn.Span(), "Non-string key for dict: '"+ToString(kres.Value)+"'"))
			}
			vres := ip.eval(node.Vals[i], env)
			if vres.Stop() {
				return vres
			}
			entries[kres.Value.Data.(string)] = vres.Value
		}
		return okRes(Dict(entries))

	case *BlockNode:
		last := Null()
		for _, st := range node.Stmts {
			res := ip.eval(st, env)
			if res.Stop() {
				return res
			}
			last = res.Value
		}
		return okRes(last)

	case *AssignNode:
		res := ip.eval(node.Value, env)
		if res.Stop() {
			return res
		}
		if node.Const {
			if env.IsConst(node.Name) {
				return failRes(ip.rtErr(node.Span(), "Assignment to constant variable '"+node.Name+"'"))
			}
			env.DefineConst(node.Name, res.Value)
			return okRes(res.Value)
		}
		if !env.Assign(node.Name, res.Value) {
			return failRes(ip.rtErr(node.Span(), "Assignment to constant variable '"+node.Name+"'"))
		}
		return okRes(res.Value)

	case *BinOpNode:
		return ip.evalBinOp(node, env)
	case *UnaryOpNode:
		res := ip.eval(node.Operand, env)
		if res.Stop() {
			return res
		}
		v, err := ip.unaryOp(node.Op, res.Value, node.Span())
		if err != nil {
			return failRes(err)
		}
		return okRes(v)

	case *IndexGetNode:
		tres := ip.eval(node.Target, env)
		if tres.Stop() {
			return tres
		}
		ires := ip.eval(node.Index, env)
		if ires.Stop() {
			return ires
		}
		v, err := ip.indexGet(tres.Value, ires.Value, node.Span())
		if err != nil {
			return failRes(err)
		}
		return okRes(v)
	case *IndexSetNode:
		tres := ip.eval(node.Target, env)
		if tres.Stop() {
			return tres
		}
		ires := ip.eval(node.Index, env)
		if ires.Stop() {
			return ires
		}
		vres := ip.eval(node.Value, env)
		if vres.Stop() {
			return vres
		}
		if err := ip.indexSet(tres.Value, ires.Value, vres.Value, node.Span()); err != nil {
			return failRes(err)
		}
		return okRes(vres.Value)
	case *MemberGetNode:
		tres := ip.eval(node.Target, env)
		if tres.Stop() {
			return tres
		}
		v, err := ip.memberGet(tres.Value, node.Name, node.Span())
		if err != nil {
			return failRes(err)
		}
		return okRes(v)
	case *MemberSetNode:
		tres := ip.eval(node.Target, env)
		if tres.Stop() {
			return tres
		}
		vres := ip.eval(node.Value, env)
		if vres.Stop() {
			return vres
		}
		if err := ip.memberSet(tres.Value, node.Name, vres.Value, node.Span()); err != nil {
			return failRes(err)
		}
		return okRes(vres.Value)

	case *IfNode:
		for _, c := range node.Cases {
			cres := ip.eval(c.Cond, env)
			if cres.Stop() {
				return cres
			}
			if Truthy(cres.Value) {
				return ip.eval(c.Body, env)
			}
		}
		if node.Else != nil {
			return ip.eval(node.Else, env)
		}
		return okRes(Null())

	case *ForRangeNode:
		return ip.evalForRange(node, env)
	case *ForInNode:
		return ip.evalForIn(node, env)
	case *WhileNode:
		return ip.evalWhile(node, env)
	case *SwitchNode:
		return ip.evalSwitch(node, env)

	case *ReturnNode:
		val := Null()
		if node.Value != nil {
			res := ip.eval(node.Value, env)
			if res.Stop() {
				return res
			}
			val = res.Value
		}
		return sigRes(SigReturn, val)
	case *BreakNode:
		return sigRes(SigBreak, Null())
	case *ContinueNode:
		return sigRes(SigContinue, Null())

	case *TryNode:
		res := ip.eval(node.Try, env)
		if res.Err == nil {
			return res
		}
		if res.Err.Kind != ErrRuntime && res.Err.Kind != ErrImport {
			return res
		}
		catchEnv := NewEnv(env)
		catchEnv.Define(node.CatchVar, Str(res.Err.Kind.Name()+": "+res.Err.Msg))
		return ip.eval(node.Catch, catchEnv)

	case *DoNode:
		return ip.eval(node.Body, NewEnv(env))

	case *FuncDefNode:
		fn := &Function{Name: node.Name, Params: node.Params, Body: node.Body, Env: env}
		v := Value{Tag: VTFunc, Data: fn}
		if node.Name != "" {
			env.Define(node.Name, v)
		}
		return okRes(v)

	case *CallNode:
		cres := ip.eval(node.Callee, env)
		if cres.Stop() {
			return cres
		}
		args := make([]Value, 0, len(node.Args))
		for _, a := range node.Args {
			ares := ip.eval(a, env)
			if ares.Stop() {
				return ares
			}
			args = append(args, ares.Value)
		}
		v, err := ip.Call(cres.Value, args, node.Span())
		if err != nil {
			return failRes(err)
		}
		return okRes(v)

	case *StructDefNode:
		st := &StructType{Name: node.Name, Fields: node.Fields}
		v := Value{Tag: VTStructType, Data: st}
		env.Define(node.Name, v)
		return okRes(v)
	case *StructInitNode:
		tv, ok := env.Get(node.Name)
		if !ok {
			return failRes(ip.rtErr(node.Span(), "'"+node.Name+"' is not defined"))
		}
		if tv.Tag != VTStructType {
			return failRes(ip.rtErr(node.Span(), "Illegal operation: '"+node.Name+"' is not a struct type"))
		}
		st := tv.Data.(*StructType)
		fields := make(map[string]Value, len(st.Fields))
		for _, f := range st.Fields {
			fields[f] = Null()
		}
		return okRes(Value{Tag: VTStructInst, Data: &StructInstance{Type: st, Fields: fields}})

	case *ImportNode:
		return ip.evalImport(node, env)
	case *ImportFileNode:
		return ip.evalImportFile(node, env)
	case *FromImportNode:
		return ip.evalFromImport(node, env)
	}

	return failRes(ip.rtErr(n.Span(), fmt.Sprintf("Illegal operation: unhandled node %T", n)))
}

// --- operators ----------------------------------------------------------------

func (ip *Interpreter) evalBinOp(node *BinOpNode, env *Env) Result {
	// and/or short-circuit on truthiness and yield the deciding operand.
	if node.Op == AND || node.Op == OR {
		lres := ip.eval(node.Left, env)
		if lres.Stop() {
			return lres
		}
		truthy := Truthy(lres.Value)
		if (node.Op == AND && !truthy) || (node.Op == OR && truthy) {
			return lres
		}
		return ip.eval(node.Right, env)
	}

	lres := ip.eval(node.Left, env)
	if lres.Stop() {
		return lres
	}
	rres := ip.eval(node.Right, env)
	if rres.Stop() {
		return rres
	}
	v, err := ip.binaryOp(node.Op, lres.Value, rres.Value, node.Span())
	if err != nil {
		return failRes(err)
	}
	return okRes(v)
}

// --- loops ---------------------------------------------------------------------

// runLoopBody evaluates one iteration and folds the result into the
// accumulator. done=true ends the loop (break or propagation).
func (ip *Interpreter) runLoopBody(body Node, env *Env, acc *[]Value) (done bool, out Result) {
	res := ip.eval(body, env)
	if res.Err != nil || res.Signal == SigReturn {
		return true, res
	}
	switch res.Signal {
	case SigBreak:
		return true, okRes(Null())
	case SigContinue:
		return false, okRes(Null())
	}
	*acc = append(*acc, res.Value)
	return false, okRes(Null())
}

func (ip *Interpreter) evalForRange(node *ForRangeNode, env *Env) Result {
	sres := ip.eval(node.Start, env)
	if sres.Stop() {
		return sres
	}
	eres := ip.eval(node.End, env)
	if eres.Stop() {
		return eres
	}
	step := Int(1)
	if node.Step != nil {
		stres := ip.eval(node.Step, env)
		if stres.Stop() {
			return stres
		}
		step = stres.Value
	}
	for _, v := range []Value{sres.Value, eres.Value, step} {
		if v.Tag != VTInt && v.Tag != VTFloat {
			return failRes(ip.rtErr(node.Span(), "Illegal operation: for-loop bounds must be Number, got "+v.TypeName()))
		}
	}
	if step.AsFloat() == 0 {
		return failRes(ip.rtErr(node.Span(), "Illegal operation: for-loop step cannot be 0"))
	}

	// The loop variable lives in its own scope and does not leak.
	loopEnv := NewEnv(env)
	var acc []Value

	allInt := sres.Value.Tag == VTInt && eres.Value.Tag == VTInt && step.Tag == VTInt
	if allInt {
		start, end, by := sres.Value.Data.(int64), eres.Value.Data.(int64), step.Data.(int64)
		for i := start; (by > 0 && i < end) || (by < 0 && i > end); i += by {
			loopEnv.Define(node.Var, Int(i))
			if done, res := ip.runLoopBody(node.Body, loopEnv, &acc); done {
				if res.Err != nil || res.Signal == SigReturn {
					return res
				}
				break
			}
		}
	} else {
		start, end, by := sres.Value.AsFloat(), eres.Value.AsFloat(), step.AsFloat()
		for i := start; (by > 0 && i < end) || (by < 0 && i > end); i += by {
			loopEnv.Define(node.Var, Float(i))
			if done, res := ip.runLoopBody(node.Body, loopEnv, &acc); done {
				if res.Err != nil || res.Signal == SigReturn {
					return res
				}
				break
			}
		}
	}
	return okRes(List(acc))
}

func (ip *Interpreter) evalForIn(node *ForInNode, env *Env) Result {
	ires := ip.eval(node.Iter, env)
	if ires.Stop() {
		return ires
	}
	items, err := iterItems(ires.Value)
	if err != nil {
		return failRes(ip.rtErr(node.Iter.Span(), err.Error()))
	}

	loopEnv := NewEnv(env)
	var acc []Value
	for _, item := range items {
		loopEnv.Define(node.Var, item)
		if done, res := ip.runLoopBody(node.Body, loopEnv, &acc); done {
			if res.Err != nil || res.Signal == SigReturn {
				return res
			}
			break
		}
	}
	return okRes(List(acc))
}

func (ip *Interpreter) evalWhile(node *WhileNode, env *Env) Result {
	loopEnv := NewEnv(env)
	var acc []Value
	for {
		cres := ip.eval(node.Cond, env)
		if cres.Stop() {
			return cres
		}
		if !Truthy(cres.Value) {
			break
		}
		if done, res := ip.runLoopBody(node.Body, loopEnv, &acc); done {
			if res.Err != nil || res.Signal == SigReturn {
				return res
			}
			break
		}
	}
	return okRes(List(acc))
}

func (ip *Interpreter) evalSwitch(node *SwitchNode, env *Env) Result {
	sres := ip.eval(node.Subject, env)
	if sres.Stop() {
		return sres
	}
	for _, c := range node.Cases {
		mres := ip.eval(c.Match, env)
		if mres.Stop() {
			return mres
		}
		if ValueEquals(sres.Value, mres.Value) {
			return ip.eval(c.Body, env)
		}
	}
	if node.Else != nil {
		return ip.eval(node.Else, env)
	}
	return okRes(Null())
}

// --- f-strings ------------------------------------------------------------------

// evalFString walks the raw literal, substituting '{}' placeholders from
// the trailing positional arguments and re-parsing '{expr}' segments as
// full sub-expressions evaluated in the current environment. '{{' and '}}'
// escape literal braces.
func (ip *Interpreter) evalFString(node *FStringNode, env *Env) Result {
	args := make([]Value, 0, len(node.Args))
	for _, a := range node.Args {
		res := ip.eval(a, env)
		if res.Stop() {
			return res
		}
		args = append(args, res.Value)
	}

	raw := node.Raw
	var b strings.Builder
	nextArg := 0
	for i := 0; i < len(raw); {
		ch := raw[i]
		if ch == '{' {
			if i+1 < len(raw) && raw[i+1] == '{' {
				b.WriteByte('{')
				i += 2
				continue
			}
			end := strings.IndexByte(raw[i+1:], '}')
			if end < 0 {
				return failRes(ip.rtErr(node.Span(), "Unclosed '{' in f-string"))
			}
			end += i + 1
			exprText := strings.TrimSpace(raw[i+1 : end])
			if exprText == "" {
				if nextArg >= len(args) {
					return failRes(ip.rtErr(node.Span(),
						fmt.Sprintf("F-string has %d placeholders but %d arguments", countEmptyPlaceholders(raw), len(args))))
				}
				b.WriteString(ToString(args[nextArg]))
				nextArg++
				i = end + 1
				continue
			}
			v, err := ip.evalFStringExpr(exprText, env, node.Span())
			if err != nil {
				return failRes(err)
			}
			b.WriteString(ToString(v))
			i = end + 1
			continue
		}
		if ch == '}' && i+1 < len(raw) && raw[i+1] == '}' {
			b.WriteByte('}')
			i += 2
			continue
		}
		b.WriteByte(ch)
		i++
	}
	if nextArg < len(args) {
		return failRes(ip.rtErr(node.Span(),
			fmt.Sprintf("F-string has %d placeholders but %d arguments", nextArg, len(args))))
	}
	return okRes(Str(b.String()))
}

// evalFStringExpr is the secondary parse pass for one '{expr}' segment.
func (ip *Interpreter) evalFStringExpr(exprText string, env *Env, sp Span) (Value, *Error) {
	prog, perr := Parse("<f-string>", exprText)
	if perr != nil {
		return Value{}, ip.rtErr(sp, "Invalid expression in f-string: "+perr.Msg)
	}
	if len(prog.Stmts) != 1 {
		return Value{}, ip.rtErr(sp, "f-string expression must be a single expression")
	}
	res := ip.eval(prog.Stmts[0], env)
	if res.Err != nil {
		// re-anchor to the f-string literal so the caret lands in real source
		return Value{}, ip.rtErr(sp, res.Err.Msg)
	}
	if res.Signal != SigNone {
		return Value{}, ip.rtErr(sp, "Illegal operation: control-flow signal in f-string")
	}
	return res.Value, nil
}

// --- iteration helper -----------------------------------------------------------

// iterItems flattens an iterable value for for-in: list elements, string
// characters, or dict keys (sorted, so iteration is deterministic).
func iterItems(v Value) ([]Value, error) {
	switch v.Tag {
	case VTList:
		lo := v.Data.(*ListObject)
		out := make([]Value, len(lo.Elems))
		copy(out, lo.Elems)
		return out, nil
	case VTStr:
		s := v.Data.(string)
		out := make([]Value, 0, len(s))
		for _, r := range s {
			out = append(out, Str(string(r)))
		}
		return out, nil
	case VTDict:
		d := v.Data.(*DictObject)
		keys := make([]string, 0, len(d.Entries))
		for k := range d.Entries {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		out := make([]Value, len(keys))
		for i, k := range keys {
			out[i] = Str(k)
		}
		return out, nil
	}
	return nil, fmt.Errorf("Illegal operation: %s is not iterable", v.TypeName())
}
