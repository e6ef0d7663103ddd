// printer.go — debug renderers for the token stream and the AST
//
// Backs the CLI's --tokens and --ast flags (cmd/wolfera). The AST renderer
// draws the familiar box-drawing tree:
//
//	BinOp(+)
//	├── Int(1)
//	└── BinOp(*)
//	    ├── Int(2)
//	    └── Int(3)
package wolfera

import (
	"fmt"
	"strings"
)

var tokenTypeNames = map[TokenType]string{
	EOF: "EOF", NEWLINE: "NEWLINE",
	INT: "INT", FLOAT: "FLOAT", STRING: "STRING", FSTRING: "FSTRING", IDENT: "IDENT",
	PLUS: "PLUS", MINUS: "MINUS", MUL: "MUL", DIV: "DIV", MOD: "MOD", POW: "POW",
	ASSIGN: "ASSIGN", EQ: "EQ", NEQ: "NEQ", LESS: "LESS", GREATER: "GREATER",
	LESS_EQ: "LESS_EQ", GREATER_EQ: "GREATER_EQ", ARROW: "ARROW",
	LPAREN: "LPAREN", RPAREN: "RPAREN", LSQUARE: "LSQUARE", RSQUARE: "RSQUARE",
	LCURLY: "LCURLY", RCURLY: "RCURLY", COLON: "COLON", COMMA: "COMMA", DOT: "DOT",
	AND: "AND", OR: "OR", NOT: "NOT", IF: "IF", ELIF: "ELIF", ELSE: "ELSE",
	FOR: "FOR", TO: "TO", STEP: "STEP", WHILE: "WHILE", IN: "IN", FUN: "FUN",
	RETURN: "RETURN", CONTINUE: "CONTINUE", BREAK: "BREAK", IMPORT: "IMPORT",
	DO: "DO", TRY: "TRY", CATCH: "CATCH", AS: "AS", FROM: "FROM",
	SWITCH: "SWITCH", CASE: "CASE", CONST: "CONST", NAMESPACE: "NAMESPACE",
	STRUCT: "STRUCT", TRUE: "TRUE", FALSE: "FALSE", NULL: "NULL",
}

func (t TokenType) String() string {
	if name, ok := tokenTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("TokenType(%d)", int(t))
}

// FormatToken renders one token for the --tokens dump.
func FormatToken(tok Token) string {
	switch tok.Type {
	case INT, FLOAT:
		return fmt.Sprintf("%s(%s)", tok.Type, tok.Lexeme)
	case STRING, FSTRING, IDENT:
		return fmt.Sprintf("%s(%v)", tok.Type, tok.Literal)
	}
	return tok.Type.String()
}

// FormatTokens renders the whole stream, one token per line with its
// position.
func FormatTokens(toks []Token) string {
	var b strings.Builder
	for _, tok := range toks {
		fmt.Fprintf(&b, "%3d:%-3d %s\n", tok.Span.Line, tok.Span.Col, FormatToken(tok))
	}
	return b.String()
}

// FormatAST renders a parse tree for the --ast dump.
func FormatAST(n Node) string {
	var b strings.Builder
	b.WriteString(nodeLabel(n))
	b.WriteByte('\n')
	writeKids(&b, nodeKids(n), "")
	return b.String()
}

//// END_OF_PUBLIC

////////////////////////////////////////////////////////////////////////////////
//                                   PRIVATE
////////////////////////////////////////////////////////////////////////////////

// kid is one labelled edge of the rendered tree. leaf carries pre-rendered
// text for edges that are not nodes (names, paths).
type kid struct {
	label string
	node  Node
	leaf  string
}

func writeKids(b *strings.Builder, kids []kid, prefix string) {
	for i, k := range kids {
		branch, next := "├── ", prefix+"│   "
		if i == len(kids)-1 {
			branch, next = "└── ", prefix+"    "
		}
		b.WriteString(prefix)
		b.WriteString(branch)
		if k.label != "" {
			b.WriteString(k.label)
			b.WriteString(": ")
		}
		if k.node != nil {
			b.WriteString(nodeLabel(k.node))
			b.WriteByte('\n')
			writeKids(b, nodeKids(k.node), next)
		} else {
			b.WriteString(k.leaf)
			b.WriteByte('\n')
		}
	}
}

func nodeLabel(n Node) string {
	switch node := n.(type) {
	case *IntNode:
		return fmt.Sprintf("Int(%d)", node.Value)
	case *FloatNode:
		return fmt.Sprintf("Float(%g)", node.Value)
	case *StringNode:
		return fmt.Sprintf("String(%q)", node.Value)
	case *FStringNode:
		return fmt.Sprintf("FString(%q)", node.Raw)
	case *BoolNode:
		return fmt.Sprintf("Bool(%t)", node.Value)
	case *NullNode:
		return "Null"
	case *IdentNode:
		return "Ident(" + node.Name + ")"
	case *ListNode:
		return "List"
	case *DictNode:
		return "Dict"
	case *BinOpNode:
		return "BinOp(" + opSymbolOrName(node.Op) + ")"
	case *UnaryOpNode:
		return "UnaryOp(" + opSymbolOrName(node.Op) + ")"
	case *AssignNode:
		if node.Const {
			return "ConstAssign(" + node.Name + ")"
		}
		return "Assign(" + node.Name + ")"
	case *IndexGetNode:
		return "IndexGet"
	case *IndexSetNode:
		return "IndexSet"
	case *MemberGetNode:
		return "MemberGet(" + node.Name + ")"
	case *MemberSetNode:
		return "MemberSet(" + node.Name + ")"
	case *BlockNode:
		return "Block"
	case *IfNode:
		return "If"
	case *ForRangeNode:
		return "For(" + node.Var + ")"
	case *ForInNode:
		return "ForIn(" + node.Var + ")"
	case *WhileNode:
		return "While"
	case *SwitchNode:
		return "Switch"
	case *ReturnNode:
		return "Return"
	case *BreakNode:
		return "Break"
	case *ContinueNode:
		return "Continue"
	case *TryNode:
		return "Try(catch as " + node.CatchVar + ")"
	case *DoNode:
		return "Do"
	case *FuncDefNode:
		name := node.Name
		if name == "" {
			name = "<anonymous>"
		}
		return "FuncDef(" + name + ")"
	case *CallNode:
		return "Call"
	case *StructDefNode:
		return "StructDef(" + node.Name + ")"
	case *StructInitNode:
		return "StructInit(" + node.Name + ")"
	case *ImportNode:
		label := "Import(" + strings.Join(node.Path, ".") + ")"
		if node.Alias != "" {
			label = "Import(" + strings.Join(node.Path, ".") + " as " + node.Alias + ")"
		}
		return label
	case *ImportFileNode:
		return fmt.Sprintf("ImportFile(%q)", node.Path)
	case *FromImportNode:
		return "FromImport(" + strings.Join(node.Path, ".") + ": " + strings.Join(node.Names, ", ") + ")"
	}
	return fmt.Sprintf("%T", n)
}

func opSymbolOrName(op TokenType) string {
	switch op {
	case AND:
		return "and"
	case OR:
		return "or"
	case NOT:
		return "not"
	}
	return opSymbol(op)
}

func nodeKids(n Node) []kid {
	switch node := n.(type) {
	case *FStringNode:
		kids := make([]kid, len(node.Args))
		for i, a := range node.Args {
			kids[i] = kid{node: a}
		}
		return kids
	case *ListNode:
		kids := make([]kid, len(node.Elems))
		for i, el := range node.Elems {
			kids[i] = kid{node: el}
		}
		return kids
	case *DictNode:
		var kids []kid
		for i := range node.Keys {
			kids = append(kids, kid{label: "key", node: node.Keys[i]}, kid{label: "value", node: node.Vals[i]})
		}
		return kids
	case *BinOpNode:
		return []kid{{node: node.Left}, {node: node.Right}}
	case *UnaryOpNode:
		return []kid{{node: node.Operand}}
	case *AssignNode:
		return []kid{{node: node.Value}}
	case *IndexGetNode:
		return []kid{{label: "target", node: node.Target}, {label: "index", node: node.Index}}
	case *IndexSetNode:
		return []kid{{label: "target", node: node.Target}, {label: "index", node: node.Index}, {label: "value", node: node.Value}}
	case *MemberGetNode:
		return []kid{{node: node.Target}}
	case *MemberSetNode:
		return []kid{{label: "target", node: node.Target}, {label: "value", node: node.Value}}
	case *BlockNode:
		kids := make([]kid, len(node.Stmts))
		for i, st := range node.Stmts {
			kids[i] = kid{node: st}
		}
		return kids
	case *IfNode:
		var kids []kid
		for _, c := range node.Cases {
			kids = append(kids, kid{label: "cond", node: c.Cond}, kid{label: "then", node: c.Body})
		}
		if node.Else != nil {
			kids = append(kids, kid{label: "else", node: node.Else})
		}
		return kids
	case *ForRangeNode:
		kids := []kid{{label: "start", node: node.Start}, {label: "end", node: node.End}}
		if node.Step != nil {
			kids = append(kids, kid{label: "step", node: node.Step})
		}
		return append(kids, kid{label: "body", node: node.Body})
	case *ForInNode:
		return []kid{{label: "in", node: node.Iter}, {label: "body", node: node.Body}}
	case *WhileNode:
		return []kid{{label: "cond", node: node.Cond}, {label: "body", node: node.Body}}
	case *SwitchNode:
		kids := []kid{{label: "subject", node: node.Subject}}
		for _, c := range node.Cases {
			kids = append(kids, kid{label: "case", node: c.Match}, kid{label: "body", node: c.Body})
		}
		if node.Else != nil {
			kids = append(kids, kid{label: "else", node: node.Else})
		}
		return kids
	case *ReturnNode:
		if node.Value != nil {
			return []kid{{node: node.Value}}
		}
		return nil
	case *TryNode:
		return []kid{{label: "try", node: node.Try}, {label: "catch", node: node.Catch}}
	case *DoNode:
		return []kid{{node: node.Body}}
	case *FuncDefNode:
		var kids []kid
		for _, p := range node.Params {
			if p.Default != nil {
				kids = append(kids, kid{label: "param " + p.Name, node: p.Default})
			} else {
				kids = append(kids, kid{leaf: "param " + p.Name})
			}
		}
		return append(kids, kid{label: "body", node: node.Body})
	case *CallNode:
		kids := []kid{{label: "callee", node: node.Callee}}
		for _, a := range node.Args {
			kids = append(kids, kid{label: "arg", node: a})
		}
		return kids
	case *StructDefNode:
		kids := make([]kid, len(node.Fields))
		for i, f := range node.Fields {
			kids[i] = kid{leaf: f}
		}
		return kids
	}
	return nil
}
