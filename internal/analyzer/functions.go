package analyzer

import (
	"github.com/jingwhale/blockpy/internal/ast"
	"github.com/jingwhale/blockpy/internal/symbols"
	"github.com/jingwhale/blockpy/internal/token"
	"github.com/jingwhale/blockpy/internal/types"
)

// visitFunctionDef implements 4.D's FunctionDef rule: the stored Function's
// definition snapshots the defining scope chain, and each invocation swaps
// the analyzer's live scope chain for [newScope, ...definingScope] rather
// than extending the caller's chain — closures see their own lexical
// scope, not the call site's.
func (a *Analyzer) visitFunctionDef(n *ast.FunctionDef) types.Type {
	definingScopes := a.scopes

	fn := &types.TFunction{
		Name: n.Name,
		Call: func(args []types.Type, line, col int) types.Type {
			pos := token.Position{Line: line, Column: col}
			_, restore := a.pushScope(definingScopes)
			defer a.popScope(restore)

			for i, param := range n.Params {
				var argType types.Type = types.TUnknown
				if i < len(args) {
					argType = types.CopyType(args[i])
				}
				a.store(param, argType, pos)
			}
			a.visitRequiredBlock(n.Pos(), n.Body)

			var retType types.Type = types.TNone
			lookup := symbols.FindInScope(a.table, a.scopes, a.paths, returnSlot)
			if lookup.Exists && lookup.InScope {
				retType = lookup.State.Type
			}
			return retType
		},
	}
	a.store(n.Name, fn, n.Pos())
	return fn
}
