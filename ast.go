// ast.go — tagged AST node types
//
// One struct per construct, all implementing Node. Nodes are built once by
// the parser and never mutated afterwards; every node carries the source
// span of its construct for diagnostics. The evaluator dispatches on the
// concrete type (interpreter_eval.go).
package wolfera

// Node is the interface of every AST node.
type Node interface {
	Span() Span
}

// nodeSpan gives every node its Span accessor via embedding.
type nodeSpan struct {
	span Span
}

func (n nodeSpan) Span() Span { return n.span }

// --- literals ---------------------------------------------------------------

type IntNode struct {
	nodeSpan
	Value int64
}

type FloatNode struct {
	nodeSpan
	Value float64
}

type StringNode struct {
	nodeSpan
	Value string
}

// FStringNode is an interpolated string. Raw keeps '{'/'}' untouched; Args
// holds the trailing expressions of the positional placeholder form
// (f"a {} b", x). Interpolated segments are parsed lazily at evaluation.
type FStringNode struct {
	nodeSpan
	Raw  string
	Args []Node
}

type BoolNode struct {
	nodeSpan
	Value bool
}

type NullNode struct {
	nodeSpan
}

type IdentNode struct {
	nodeSpan
	Name string
}

type ListNode struct {
	nodeSpan
	Elems []Node
}

// DictNode holds parallel key/value expression slices in source order.
type DictNode struct {
	nodeSpan
	Keys []Node
	Vals []Node
}

// --- operators and assignment ----------------------------------------------

type BinOpNode struct {
	nodeSpan
	Op    TokenType
	Left  Node
	Right Node
}

type UnaryOpNode struct {
	nodeSpan
	Op      TokenType
	Operand Node
}

// AssignNode covers both plain assignment and const declaration.
type AssignNode struct {
	nodeSpan
	Name  string
	Value Node
	Const bool
}

type IndexGetNode struct {
	nodeSpan
	Target Node
	Index  Node
}

type IndexSetNode struct {
	nodeSpan
	Target Node
	Index  Node
	Value  Node
}

type MemberGetNode struct {
	nodeSpan
	Target Node
	Name   string
}

type MemberSetNode struct {
	nodeSpan
	Target Node
	Name   string
	Value  Node
}

// --- control flow ------------------------------------------------------------

// BlockNode is an ordered statement sequence: the program root and every
// '{ }' body.
type BlockNode struct {
	nodeSpan
	Stmts []Node
}

type IfCase struct {
	Cond Node
	Body Node
}

type IfNode struct {
	nodeSpan
	Cases []IfCase
	Else  Node // nil when absent
}

type ForRangeNode struct {
	nodeSpan
	Var   string
	Start Node
	End   Node
	Step  Node // nil means 1
	Body  Node
}

type ForInNode struct {
	nodeSpan
	Var  string
	Iter Node
	Body Node
}

type WhileNode struct {
	nodeSpan
	Cond Node
	Body Node
}

type SwitchCase struct {
	Match Node
	Body  Node
}

type SwitchNode struct {
	nodeSpan
	Subject Node
	Cases   []SwitchCase
	Else    Node // nil when absent
}

type ReturnNode struct {
	nodeSpan
	Value Node // nil returns null
}

type BreakNode struct {
	nodeSpan
}

type ContinueNode struct {
	nodeSpan
}

type TryNode struct {
	nodeSpan
	Try      Node
	CatchVar string
	Catch    Node
}

// DoNode is a 'do { ... }' block; 'namespace { ... }' parses to the same
// node.
type DoNode struct {
	nodeSpan
	Body Node
}

// --- functions ----------------------------------------------------------------

type Param struct {
	Name    string
	Default Node // nil means required
}

type FuncDefNode struct {
	nodeSpan
	Name   string // "" for anonymous functions
	Params []Param
	Body   Node
	Arrow  bool // '-> expr' body: the expression's value is the result
}

type CallNode struct {
	nodeSpan
	Callee Node
	Args   []Node
}

// --- structs ------------------------------------------------------------------

type StructDefNode struct {
	nodeSpan
	Name   string
	Fields []string
}

type StructInitNode struct {
	nodeSpan
	Name string
}

// --- modules ------------------------------------------------------------------

// ImportNode covers 'import a.b.c [as alias]'.
type ImportNode struct {
	nodeSpan
	Path  []string
	Alias string // "" when no alias
}

// ImportFileNode covers 'import "script.wf"': the file executes directly in
// the current environment.
type ImportFileNode struct {
	nodeSpan
	Path string
}

type FromImportNode struct {
	nodeSpan
	Path  []string
	Names []string
}
