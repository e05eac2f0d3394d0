// Package analyzer implements the flow-sensitive visitor core (4.D), the
// function-call evaluator (4.E), and the report aggregator (4.F) on top of
// the type lattice (internal/types), state model (internal/state), and
// name/scope/path tables (internal/symbols).
//
// Dispatch is a plain recursive type switch over ast.Node, grounded on the
// other_examples semantic-pass style (typeCheck(n *Node) switching on node
// kind) rather than a double-dispatch Visitor, because every rule must
// return an inferred types.Type to its caller.
package analyzer

import (
	"fmt"
	"strings"

	"github.com/jingwhale/blockpy/internal/ast"
	"github.com/jingwhale/blockpy/internal/diagnostics"
	"github.com/jingwhale/blockpy/internal/report"
	"github.com/jingwhale/blockpy/internal/state"
	"github.com/jingwhale/blockpy/internal/symbols"
	"github.com/jingwhale/blockpy/internal/token"
	"github.com/jingwhale/blockpy/internal/types"
)

const returnSlot = "*return"
const unconnected = "___"

// Config is the subset of internal/config that bears on how an analysis
// runs; it is passed in rather than imported to keep analyzer free of a
// dependency on the host's YAML loading concerns.
type Config struct {
	DisabledIssues map[diagnostics.Kind]bool
	MaxCallDepth   int
}

func DefaultConfig() Config {
	return Config{DisabledIssues: map[diagnostics.Kind]bool{}, MaxCallDepth: 64}
}

// Analyzer owns every piece of mutable state for exactly one analysis
// (5. Concurrency & Resource Model): no instance is ever reused across runs.
type Analyzer struct {
	cfg      Config
	table    *symbols.Table
	counters *symbols.Counters
	scopes   symbols.ScopeStack
	paths    symbols.PathStack
	builder  *report.Builder
	builtins map[string]types.Type
	callDepth int
}

func New(cfg Config) *Analyzer {
	a := &Analyzer{
		cfg:      cfg,
		table:    symbols.NewTable(),
		counters: symbols.NewCounters(),
		scopes:   symbols.ScopeStack{symbols.ModuleScope},
		paths:    symbols.PathStack{0},
		builder:  report.NewBuilder(),
	}
	a.registerBuiltins()
	return a
}

// Analyze is the single public entry point (6.3): analyzer.Analyze(mod, cfg).
// A recover() here is the sole boundary where an internal panic becomes a
// *diagnostics.Error, so a caller never observes a partial report.
func Analyze(mod *ast.Module, cfg Config) (rep *report.Report) {
	a := New(cfg)
	defer func() {
		if r := recover(); r != nil {
			if aerr, ok := r.(*diagnostics.Error); ok {
				rep = report.Failed(aerr)
				return
			}
			rep = report.Failed(diagnostics.NewError(token.Position{}, fmt.Sprintf("internal analyzer failure: %v", r)))
		}
	}()
	for _, n := range mod.Body {
		a.visit(n)
	}
	a.finishScope()
	return a.builder.Finish(a.flattenTable())
}

func (a *Analyzer) fail(pos token.Position, msg string) {
	panic(diagnostics.NewError(pos, msg))
}

func (a *Analyzer) raise(kind diagnostics.Kind, data diagnostics.Data) {
	if a.cfg.DisabledIssues[kind] {
		return
	}
	a.builder.Raise(kind, data)
}

func (a *Analyzer) currentPath() symbols.PathId { return a.paths[0] }

// pushScope is the scoped-acquisition idiom 4.C calls for: it swaps the
// live scope chain for base with a freshly minted ScopeId pushed on top
// and hands back the chain to restore, for use as
// `newScope, restore := a.pushScope(base); defer a.popScope(restore)`.
// A function invocation re-enters its *defining* scope chain rather than
// extending the caller's live one, so the swap takes an explicit base
// instead of always building on a.scopes.
func (a *Analyzer) pushScope(base symbols.ScopeStack) (newScope symbols.ScopeId, restore symbols.ScopeStack) {
	restore = a.scopes
	newScope = a.counters.NewScope()
	a.scopes = base.Push(newScope)
	return newScope, restore
}

// popScope runs finish-scope (4.F) against the scope being left, then
// restores the chain pushScope saved — the matching half of the pair, run
// via defer so an analyzer-internal panic mid-body cannot leave the chain
// unbalanced.
func (a *Analyzer) popScope(restore symbols.ScopeStack) {
	a.finishScope()
	a.scopes = restore
}

func (a *Analyzer) pushPath() symbols.PathId {
	id := a.counters.NewPath()
	a.paths = a.paths.Push(id)
	return id
}

func (a *Analyzer) popPath() {
	a.paths = a.paths.Pop()
}

// finishScope implements 4.F's finish-scope: for every name on the current
// path whose scope prefix equals the current scope chain, raise
// Overwritten/Unread as appropriate. Runs on every scope exit, including
// module completion.
func (a *Analyzer) finishScope() {
	for _, name := range a.table.Names(a.currentPath()) {
		if !symbols.SameScope(name, a.scopes) {
			continue
		}
		s, _ := a.table.Get(a.currentPath(), name)
		bare := name[strings.LastIndex(name, "/")+1:]
		if s.Over == state.Yes {
			a.raise(diagnostics.OverwrittenVariables, diagnostics.Data{Name: bare})
		}
		if s.Read == state.No {
			a.raise(diagnostics.UnreadVariables, diagnostics.Data{Name: bare})
		}
	}
}

// flattenTable realizes the Report's "variables" name map: fully-scoped
// name -> its latest State, across every path still in the table (branch
// paths are deleted by combine once they have been joined into their parent).
func (a *Analyzer) flattenTable() map[string]*state.State {
	out := map[string]*state.State{}
	for _, p := range a.table.Paths() {
		for _, name := range a.table.Names(p) {
			s, _ := a.table.Get(p, name)
			out[name] = s
		}
	}
	return out
}

// inFunctionScope reports whether the innermost scope is a function body
// (anything deeper than the module scope).
func (a *Analyzer) inFunctionScope() bool {
	return len(a.scopes) > 1
}

// checkActionAfterReturn implements the 4.D pre-dispatch rule: inside a
// function scope, once *return has been set, any further node raises
// Action after return.
func (a *Analyzer) checkActionAfterReturn(pos token.Position) {
	if !a.inFunctionScope() {
		return
	}
	lookup := symbols.FindInScope(a.table, a.scopes, a.paths, returnSlot)
	if lookup.Exists && lookup.InScope && lookup.State.Set == state.Yes {
		a.raise(diagnostics.ActionAfterReturn, diagnostics.Data{Position: pos})
	}
}
