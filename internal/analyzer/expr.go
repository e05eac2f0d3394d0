package analyzer

import (
	"github.com/jingwhale/blockpy/internal/ast"
	"github.com/jingwhale/blockpy/internal/diagnostics"
	"github.com/jingwhale/blockpy/internal/symbols"
	"github.com/jingwhale/blockpy/internal/types"
)

func (a *Analyzer) visitBinOp(n *ast.BinOp) types.Type {
	left := a.visit(n.Left)
	right := a.visit(n.Right)
	result, ok := types.BinOp(n.Op, left, right)
	if !ok {
		a.raise(diagnostics.IncompatibleTypes, diagnostics.Data{
			Position: n.Pos(), Left: left.String(), Right: right.String(), Operation: n.Op,
		})
		return types.TUnknown
	}
	return result
}

func (a *Analyzer) visitUnaryOp(n *ast.UnaryOp) types.Type {
	return a.visit(n.Operand)
}

// rootName descends Name/Call/Attribute/Subscript chains to the root Name,
// used both to identify a call's callee and to refine append-store targets.
func rootName(n ast.Node) (string, bool) {
	switch node := n.(type) {
	case *ast.Name:
		return node.Id, true
	case *ast.Attribute:
		return rootName(node.Value)
	case *ast.Subscript:
		return rootName(node.Value)
	case *ast.Call:
		return rootName(node.Func)
	default:
		return "", false
	}
}

func (a *Analyzer) visitCall(n *ast.Call) types.Type {
	funcType := a.visit(n.Func)
	callee, _ := rootName(n.Func)
	args := make([]types.Type, len(n.Args))
	for i, arg := range n.Args {
		args[i] = a.visit(arg)
	}
	fn, ok := funcType.(*types.TFunction)
	if !ok {
		// A bound attribute method with no further argument dependency
		// (e.g. Dict.items()) already produced its result type when the
		// Attribute itself was visited; pass it through unchanged.
		if _, isAttr := n.Func.(*ast.Attribute); isAttr {
			return funcType
		}
		a.raise(diagnostics.NotAFunction, diagnostics.Data{Name: callee, Position: n.Pos()})
		return types.TUnknown
	}
	a.callDepth++
	if a.callDepth > a.cfg.MaxCallDepth {
		a.callDepth--
		a.fail(n.Pos(), "call depth exceeded: recursive inlining guard tripped")
	}
	result := fn.Call(args, n.Pos().Line, n.Pos().Column)
	a.callDepth--
	return result
}

func (a *Analyzer) visitAttribute(n *ast.Attribute) types.Type {
	valType := a.visit(n.Value)

	if n.Attr == "append" {
		if valType.Tag() != types.ListTag {
			a.raise(diagnostics.AppendToNonList, diagnostics.Data{Position: n.Pos(), Type: valType.String()})
		}
		return appendFunction(a, valType, n)
	}
	if n.Attr == "items" && valType.Tag() == types.DictTag {
		d := valType.(*types.TDict)
		return &types.TList{Empty: d.Empty, Subtype: types.TTuple{Subtypes: []types.Type{d.Keys, d.Values}}}
	}
	return types.TUnknown
}

// appendFunction returns the synthetic Function value bound to `.append`,
// whose call narrows the receiver list's subtype in place and, when the
// receiver descends from an identifiable root name, refines that name's
// stored type too (4.E).
func appendFunction(a *Analyzer, receiver types.Type, n *ast.Attribute) types.Type {
	list, _ := receiver.(*types.TList)
	return &types.TFunction{
		Name: "append",
		Call: func(args []types.Type, line, col int) types.Type {
			if list != nil && len(args) > 0 {
				// The receiver is the same *TList instance recorded in the
				// name table (mutable tags share their instance, 3.
				// Lifecycles), so mutating it here is already visible to
				// every table entry that still points at this variable —
				// no separate re-store is needed to refine the name table.
				list.Empty = false
				list.Subtype = args[0]
			}
			return types.TNone
		},
	}
}

func (a *Analyzer) visitSubscript(n *ast.Subscript) types.Type {
	valType := a.visit(n.Value)
	a.visit(n.Index)
	return types.IndexSequenceType(valType, 0)
}

func (a *Analyzer) visitName(n *ast.Name) types.Type {
	if n.Id == unconnected {
		a.raise(diagnostics.UnconnectedBlocks, diagnostics.Data{Position: n.Pos()})
	}
	if n.Ctx != ast.Load {
		lookup := symbols.FindInScope(a.table, a.scopes, a.paths, n.Id)
		if lookup.Exists {
			return lookup.State.Type
		}
		return types.TUnknown
	}

	switch n.Id {
	case "True", "False":
		return types.TBool
	case "None":
		return types.TNone
	}
	lookup := symbols.FindInScope(a.table, a.scopes, a.paths, n.Id)
	if !lookup.Exists {
		if fn, ok := a.builtins[n.Id]; ok {
			return fn
		}
	}
	return a.load(n.Id, n.Pos()).Type
}

func (a *Analyzer) visitList(n *ast.List) types.Type {
	if len(n.Elts) == 0 {
		return types.NewEmptyList()
	}
	var sub types.Type
	for _, e := range n.Elts {
		sub = a.visit(e)
	}
	return &types.TList{Empty: false, Subtype: sub}
}

func (a *Analyzer) visitTuple(n *ast.Tuple) types.Type {
	if len(n.Elts) == 0 {
		return types.NewEmptyTuple()
	}
	subs := make([]types.Type, len(n.Elts))
	for i, e := range n.Elts {
		subs[i] = a.visit(e)
	}
	return types.TTuple{Empty: false, Subtypes: subs}
}

func (a *Analyzer) visitSet(n *ast.SetLit) types.Type {
	if len(n.Elts) == 0 {
		return types.NewEmptySet()
	}
	var sub types.Type
	for _, e := range n.Elts {
		sub = a.visit(e)
	}
	return &types.TSet{Empty: false, Subtype: sub}
}

func (a *Analyzer) visitDict(n *ast.Dict) types.Type {
	if len(n.Entries) == 0 {
		return types.NewEmptyDict()
	}
	var keys, values types.Type
	for _, entry := range n.Entries {
		keys = a.visit(entry.Key)
		values = a.visit(entry.Value)
	}
	return &types.TDict{Empty: false, Keys: keys, Values: values}
}
