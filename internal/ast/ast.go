// Package ast defines the restricted node set the analyzer accepts as input.
//
// Nodes are built by an external tokenizer/parser (out of scope for this
// module) or decoded from JSON by the CLI/RPC hosts; the analyzer itself
// never constructs or mutates a node, it only reads one.
package ast

import "github.com/jingwhale/blockpy/internal/token"

// Node is satisfied by every AST shape the analyzer understands. Pos
// returns the position the external parser recorded for this node.
type Node interface {
	Pos() token.Position
	astNode()
}

// NameCtx distinguishes how a Name node is used at a given occurrence.
type NameCtx int

const (
	Load NameCtx = iota
	Store
	Del
)

type base struct {
	Position token.Position
}

func (b base) Pos() token.Position { return b.Position }
func (base) astNode()              {}

// Module is the root of a source unit: a flat sequence of statements
// executed in the module's own (scope 0) top-level scope.
type Module struct {
	base
	Body []Node
}

// Assign is `targets = value`. More than one entry in Targets is the chained
// form `a = b = value`, each target receiving the whole value; tuple
// unpacking is a single Tuple or List target.
type Assign struct {
	base
	Targets []Node // each a Name, Tuple, List, Attribute, or Subscript
	Value   Node
}

type BinOp struct {
	base
	Op    string // "+","-","*","/","%","**", comparisons, "and","or"
	Left  Node
	Right Node
}

type UnaryOp struct {
	base
	Op      string // "not","-"
	Operand Node
}

type Call struct {
	base
	Func Node // usually a Name or Attribute
	Args []Node
}

type If struct {
	base
	Test   Node
	Body   []Node
	Orelse []Node
}

type While struct {
	base
	Test   Node
	Body   []Node
	Orelse []Node
}

type For struct {
	base
	Target Node // Name (or tuple of Names) bound each iteration
	Iter   Node
	Body   []Node
	Orelse []Node
}

// ListComp is `[elt for target in iter]`.
type ListComp struct {
	base
	Elt    Node
	Target Node
	Iter   Node
}

type FunctionDef struct {
	base
	Name   string
	Params []string
	Body   []Node
}

type Return struct {
	base
	Value Node // nil for a bare `return`
}

type Attribute struct {
	base
	Value Node
	Attr  string
}

type Subscript struct {
	base
	Value Node
	Index Node
}

type Name struct {
	base
	Id  string
	Ctx NameCtx
}

type Num struct {
	base
	Value float64
}

type Str struct {
	base
	Value string
}

type Bool struct {
	base
	Value bool
}

type NoneLiteral struct {
	base
}

type List struct {
	base
	Elts []Node
}

type Tuple struct {
	base
	Elts []Node
}

type DictEntry struct {
	Key   Node
	Value Node
}

type Dict struct {
	base
	Entries []DictEntry
}

type SetLit struct {
	base
	Elts []Node
}

// With models `with open(...) as name: body`; Item is the Name bound by
// the `as` clause (nil if absent).
type With struct {
	base
	Context Node
	Item    Node
	Body    []Node
}

type Pass struct {
	base
}

func NewModule(pos token.Position, body []Node) *Module { return &Module{base{pos}, body} }

// The constructors below let callers outside this package (tests, the
// fixture builders a CLI or RPC caller might assemble by hand) build AST
// values without reaching into the unexported base field directly.

func NewAssign(pos token.Position, targets []Node, value Node) *Assign {
	return &Assign{base{pos}, targets, value}
}

func NewBinOp(pos token.Position, op string, left, right Node) *BinOp {
	return &BinOp{base{pos}, op, left, right}
}

func NewUnaryOp(pos token.Position, op string, operand Node) *UnaryOp {
	return &UnaryOp{base{pos}, op, operand}
}

func NewCall(pos token.Position, fn Node, args []Node) *Call {
	return &Call{base{pos}, fn, args}
}

func NewIf(pos token.Position, test Node, body, orelse []Node) *If {
	return &If{base{pos}, test, body, orelse}
}

func NewWhile(pos token.Position, test Node, body, orelse []Node) *While {
	return &While{base{pos}, test, body, orelse}
}

func NewFor(pos token.Position, target, iter Node, body, orelse []Node) *For {
	return &For{base{pos}, target, iter, body, orelse}
}

func NewListComp(pos token.Position, elt, target, iter Node) *ListComp {
	return &ListComp{base{pos}, elt, target, iter}
}

func NewFunctionDef(pos token.Position, name string, params []string, body []Node) *FunctionDef {
	return &FunctionDef{base{pos}, name, params, body}
}

func NewReturn(pos token.Position, value Node) *Return {
	return &Return{base{pos}, value}
}

func NewAttribute(pos token.Position, value Node, attr string) *Attribute {
	return &Attribute{base{pos}, value, attr}
}

func NewSubscript(pos token.Position, value, index Node) *Subscript {
	return &Subscript{base{pos}, value, index}
}

func NewName(pos token.Position, id string, ctx NameCtx) *Name {
	return &Name{base{pos}, id, ctx}
}

func NewNum(pos token.Position, value float64) *Num { return &Num{base{pos}, value} }

func NewStr(pos token.Position, value string) *Str { return &Str{base{pos}, value} }

func NewBool(pos token.Position, value bool) *Bool { return &Bool{base{pos}, value} }

func NewNone(pos token.Position) *NoneLiteral { return &NoneLiteral{base{pos}} }

func NewList(pos token.Position, elts []Node) *List { return &List{base{pos}, elts} }

func NewTuple(pos token.Position, elts []Node) *Tuple { return &Tuple{base{pos}, elts} }

func NewDict(pos token.Position, entries []DictEntry) *Dict { return &Dict{base{pos}, entries} }

func NewSet(pos token.Position, elts []Node) *SetLit { return &SetLit{base{pos}, elts} }

func NewWith(pos token.Position, context, item Node, body []Node) *With {
	return &With{base{pos}, context, item, body}
}

func NewPass(pos token.Position) *Pass { return &Pass{base{pos}} }
