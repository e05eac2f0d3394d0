package analyzer

import (
	"github.com/jingwhale/blockpy/internal/ast"
	"github.com/jingwhale/blockpy/internal/diagnostics"
	"github.com/jingwhale/blockpy/internal/state"
	"github.com/jingwhale/blockpy/internal/token"
	"github.com/jingwhale/blockpy/internal/types"
)

// visit is the single dispatch point every node passes through: the
// pre-dispatch Action-after-return check, then a type switch by AST shape.
func (a *Analyzer) visit(n ast.Node) types.Type {
	a.checkActionAfterReturn(n.Pos())
	switch node := n.(type) {
	case *ast.Assign:
		return a.visitAssign(node)
	case *ast.BinOp:
		return a.visitBinOp(node)
	case *ast.UnaryOp:
		return a.visitUnaryOp(node)
	case *ast.Call:
		return a.visitCall(node)
	case *ast.If:
		return a.visitIf(node)
	case *ast.While:
		return a.visitWhile(node)
	case *ast.For:
		return a.visitFor(node)
	case *ast.ListComp:
		return a.visitListComp(node)
	case *ast.FunctionDef:
		return a.visitFunctionDef(node)
	case *ast.Return:
		return a.visitReturn(node)
	case *ast.Attribute:
		return a.visitAttribute(node)
	case *ast.Subscript:
		return a.visitSubscript(node)
	case *ast.Name:
		return a.visitName(node)
	case *ast.Num:
		return types.TNum
	case *ast.Str:
		return types.TStr
	case *ast.Bool:
		return types.TBool
	case *ast.NoneLiteral:
		return types.TNone
	case *ast.List:
		return a.visitList(node)
	case *ast.Tuple:
		return a.visitTuple(node)
	case *ast.Dict:
		return a.visitDict(node)
	case *ast.SetLit:
		return a.visitSet(node)
	case *ast.With:
		return a.visitWith(node)
	case *ast.Pass:
		return types.TNone
	default:
		a.fail(n.Pos(), "unrecognized AST node")
		return types.TUnknown
	}
}

// visitBlock visits a statement sequence, raising Unnecessary Pass when a
// Pass shares a block with statements that actually do something. An empty
// sequence is legitimate here (e.g. an if with no else) and raises nothing.
func (a *Analyzer) visitBlock(body []ast.Node) {
	for _, n := range body {
		if _, isPass := n.(*ast.Pass); isPass && len(body) > 1 {
			a.raise(diagnostics.UnnecessaryPass, diagnostics.Data{Position: n.Pos()})
			continue
		}
		a.visit(n)
	}
}

// visitRequiredBlock is visitBlock for a body the grammar requires to be
// non-empty (an if/while/for/function body, as opposed to an optional
// orelse clause): a zero-length sequence here raises Empty Body.
func (a *Analyzer) visitRequiredBlock(pos token.Position, body []ast.Node) {
	if len(body) == 0 {
		a.raise(diagnostics.EmptyBody, diagnostics.Data{Position: pos})
		return
	}
	a.visitBlock(body)
}

// destructure implements the Assign/With/For target-walker: Name -> store;
// Tuple/List -> recurse with indexSequenceType(type, i) per element.
func (a *Analyzer) destructure(target ast.Node, t types.Type, store func(name string, t types.Type, pos token.Position) *state.State) {
	switch tgt := target.(type) {
	case *ast.Name:
		if _, isBuiltin := a.builtins[tgt.Id]; isBuiltin {
			a.raise(diagnostics.AliasedBuiltin, diagnostics.Data{Name: tgt.Id, Position: tgt.Pos()})
		}
		store(tgt.Id, t, tgt.Pos())
	case *ast.Tuple:
		for i, elt := range tgt.Elts {
			a.destructure(elt, types.IndexSequenceType(t, i), store)
		}
	case *ast.List:
		for i, elt := range tgt.Elts {
			a.destructure(elt, types.IndexSequenceType(t, i), store)
		}
	case *ast.Attribute, *ast.Subscript:
		a.visit(tgt)
	default:
		a.fail(target.Pos(), "unsupported assignment target")
	}
}

// visitAssign deliberately does NOT pre-visit the target list as ordinary
// expressions (see SPEC_FULL.md 9: the distilled original's pre-visit
// causes spurious reads against not-yet-defined names on first assignment).
func (a *Analyzer) visitAssign(n *ast.Assign) types.Type {
	valType := a.visit(n.Value)
	for _, target := range n.Targets {
		a.destructure(target, valType, a.store)
	}
	return valType
}

func (a *Analyzer) visitIf(n *ast.If) types.Type {
	a.visit(n.Test)

	parent := a.currentPath()
	leftPath := a.pushPath()
	a.visitRequiredBlock(n.Pos(), n.Body)
	a.popPath()

	rightPath := a.pushPath()
	a.visitBlock(n.Orelse)
	a.popPath()

	a.combine(parent, leftPath, rightPath, n.Pos())
	return types.TNone
}

// visitWhile visits body and orelse under separate fresh paths exactly as
// If, then re-visits the test once more to model one extra loop iteration,
// per SPEC_FULL.md 9 (no fixed-point iteration is performed).
func (a *Analyzer) visitWhile(n *ast.While) types.Type {
	a.visit(n.Test)

	parent := a.currentPath()
	leftPath := a.pushPath()
	a.visitRequiredBlock(n.Pos(), n.Body)
	a.popPath()

	rightPath := a.pushPath()
	a.visitBlock(n.Orelse)
	a.popPath()

	a.visit(n.Test)
	a.combine(parent, leftPath, rightPath, n.Pos())
	return types.TNone
}

// visitFor visits body and orelse in the current path (no fixed-point
// iteration and no fork: the restricted language has no break, so orelse
// always runs after the loop completes).
func (a *Analyzer) visitFor(n *ast.For) types.Type {
	iterType := a.resolveIterationSource(n.Iter, n.Target, n.Pos())

	elemType := types.IndexSequenceType(iterType, 0)
	a.destructure(n.Target, elemType, a.storeIter)

	a.visitRequiredBlock(n.Pos(), n.Body)
	a.visitBlock(n.Orelse)
	return types.TNone
}

// resolveIterationSource implements the iteration-source rules For and
// ListComp share (SPEC_FULL.md 4.D: "Same iteration-source rules as For"):
// Unconnected blocks on a "___" iterator name, Empty/Non-list iterations on
// a non-Unknown iterator type, and Iteration variable is iteration list
// when the target name equals the iterator name.
func (a *Analyzer) resolveIterationSource(iter, target ast.Node, pos token.Position) types.Type {
	var iterType types.Type
	if name, ok := iter.(*ast.Name); ok {
		if name.Id == unconnected {
			a.raise(diagnostics.UnconnectedBlocks, diagnostics.Data{Position: pos})
		}
		iterType = a.load(name.Id, pos).Type
	} else {
		iterType = a.visit(iter)
	}

	// An Unknown source is already a signaled failure (undefined read or
	// out-of-scope read); it is not additionally "non-list".
	if iterType.Tag() != types.Unknown {
		if types.IsEmptyList(iterType) {
			a.raise(diagnostics.EmptyIterations, diagnostics.Data{Position: pos})
		} else if !types.IsSequence(iterType) {
			a.raise(diagnostics.NonListIterations, diagnostics.Data{Position: pos})
		}
	}

	if targetName, ok := target.(*ast.Name); ok {
		if iterName, ok := iter.(*ast.Name); ok && iterName.Id == targetName.Id {
			a.raise(diagnostics.IterationVariableIsIterationList, diagnostics.Data{Name: targetName.Id, Position: pos})
		}
	}
	return iterType
}

func (a *Analyzer) visitListComp(n *ast.ListComp) types.Type {
	iterType := a.resolveIterationSource(n.Iter, n.Target, n.Pos())
	elemType := types.IndexSequenceType(iterType, 0)
	a.destructure(n.Target, elemType, a.storeIter)
	eltType := a.visit(n.Elt)
	return &types.TList{Empty: false, Subtype: eltType}
}

func (a *Analyzer) visitReturn(n *ast.Return) types.Type {
	if !a.inFunctionScope() {
		a.raise(diagnostics.ReturnOutsideFunction, diagnostics.Data{Position: n.Pos()})
		return types.TNone
	}
	var valType types.Type = types.TNone
	if n.Value != nil {
		valType = a.visit(n.Value)
	}
	a.store(returnSlot, valType, n.Pos())
	return valType
}

func (a *Analyzer) visitWith(n *ast.With) types.Type {
	ctxType := a.visit(n.Context)
	if n.Item != nil {
		a.destructure(n.Item, ctxType, a.store)
	}
	a.visitRequiredBlock(n.Pos(), n.Body)
	return types.TNone
}
