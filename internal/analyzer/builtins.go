package analyzer

import "github.com/jingwhale/blockpy/internal/types"

// registerBuiltins installs the synthetic Function values 4.E names. Each
// definition ignores its arguments unless the built-in's semantics depend
// on them (none here do — append's narrowing lives in expr.go since it is
// resolved through attribute lookup, not name lookup).
func (a *Analyzer) registerBuiltins() {
	a.builtins = map[string]types.Type{
		"range": &types.TFunction{Name: "range", Call: func(args []types.Type, line, col int) types.Type {
			return &types.TList{Empty: false, Subtype: types.TNum}
		}},
		"set": &types.TFunction{Name: "set", Call: func(args []types.Type, line, col int) types.Type {
			return types.NewEmptySet()
		}},
		"print": &types.TFunction{Name: "print", Call: func(args []types.Type, line, col int) types.Type {
			return types.TNone
		}},
		"input": &types.TFunction{Name: "input", Call: func(args []types.Type, line, col int) types.Type {
			return types.TStr
		}},
		"open": &types.TFunction{Name: "open", Call: func(args []types.Type, line, col int) types.Type {
			return types.TFile
		}},
	}
}
