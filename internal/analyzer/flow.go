package analyzer

import (
	"github.com/jingwhale/blockpy/internal/diagnostics"
	"github.com/jingwhale/blockpy/internal/state"
	"github.com/jingwhale/blockpy/internal/symbols"
	"github.com/jingwhale/blockpy/internal/token"
	"github.com/jingwhale/blockpy/internal/types"
)

// store implements 4.B's store operator.
func (a *Analyzer) store(name string, t types.Type, pos token.Position) *state.State {
	lookup := symbols.FindInScope(a.table, a.scopes, a.paths, name)
	if !lookup.Exists {
		full := symbols.FullyScopedName(a.scopes, name)
		s := state.Fresh(full, t, state.Yes, state.No, state.No, state.MethodStore)
		a.table.Set(a.currentPath(), full, s)
		return s
	}

	succ := state.Trace(lookup.State, state.MethodStore)
	if !lookup.InScope {
		a.raise(diagnostics.WriteOutOfScope, diagnostics.Data{Name: name, Position: pos})
	}
	// Unknown never equals anything, even itself (4.A); a prior or new
	// Unknown type is already a signaled failure and must not cascade into
	// a spurious Type changes on top of it.
	if t.Tag() != types.Unknown && lookup.State.Type.Tag() != types.Unknown && !types.Equal(t, lookup.State.Type) {
		a.raise(diagnostics.TypeChanges, diagnostics.Data{
			Name: name, Position: pos, Old: lookup.State.Type.String(), New: t.String(),
		})
	}
	succ.Type = t
	if lookup.State.Set == state.Yes && lookup.State.Read == state.No {
		succ.Over = state.Yes
	} else {
		succ.Set = state.Yes
		succ.Read = state.No
	}
	a.table.Set(a.currentPath(), lookup.ScopedName, succ)
	return succ
}

// storeIter is store's variant used for For/comprehension loop targets: it
// immediately marks read=yes so the loop variable is never flagged unread.
func (a *Analyzer) storeIter(name string, t types.Type, pos token.Position) *state.State {
	s := state.Trace(a.store(name, t, pos), state.MethodStoreIter)
	s.Read = state.Yes
	a.table.Set(a.currentPath(), s.Name, s)
	return s
}

// load implements 4.B's load operator.
func (a *Analyzer) load(name string, pos token.Position) *state.State {
	lookup := symbols.FindInScope(a.table, a.scopes, a.paths, name)
	if !lookup.Exists {
		full := symbols.FullyScopedName(a.scopes, name)
		if oos := symbols.FindOutOfScope(a.table, name); oos.Exists {
			a.raise(diagnostics.ReadOutOfScope, diagnostics.Data{Name: name, Position: pos})
		} else {
			a.raise(diagnostics.UndefinedVariables, diagnostics.Data{Name: name, Position: pos})
		}
		s := state.Fresh(full, types.TUnknown, state.No, state.Yes, state.No, state.MethodLoad)
		a.table.Set(a.currentPath(), full, s)
		return s
	}

	succ := state.Trace(lookup.State, state.MethodLoad)
	if lookup.State.Set == state.No {
		a.raise(diagnostics.UndefinedVariables, diagnostics.Data{Name: name, Position: pos})
	} else if lookup.State.Set == state.Maybe {
		a.raise(diagnostics.PossiblyUndefinedVariables, diagnostics.Data{Name: name, Position: pos})
	}
	succ.Read = state.Yes

	if !lookup.InScope && lookup.State.Type != nil && lookup.State.Type.Tag() == types.FuncTag {
		a.table.Set(a.currentPath(), lookup.ScopedName, succ)
	} else {
		full := symbols.FullyScopedName(a.scopes, name)
		a.table.Set(a.currentPath(), full, succ)
	}
	return succ
}

// combine joins two branch paths back into the parent, implementing the
// If/While join: every name touched in either child is combined; a name
// present on only one side degrades via combine-states' nil-r rule.
func (a *Analyzer) combine(parentPath symbols.PathId, leftPath, rightPath symbols.PathId, pos token.Position) {
	seen := map[string]bool{}
	names := append(append([]string{}, a.table.Names(leftPath)...), a.table.Names(rightPath)...)
	for _, name := range names {
		if seen[name] {
			continue
		}
		seen[name] = true
		l, lok := a.table.Get(leftPath, name)
		r, rok := a.table.Get(rightPath, name)
		var joined *state.State
		var changed bool
		switch {
		case lok && rok:
			joined, changed = state.CombineStates(name, l, r)
		case lok:
			joined, changed = state.CombineStates(name, l, nil)
		case rok:
			joined, changed = state.CombineStates(name, r, nil)
		}
		if changed {
			a.raise(diagnostics.TypeChanges, diagnostics.Data{Name: name, Position: pos})
		}
		if joined != nil {
			a.table.Set(parentPath, name, joined)
		}
	}
	// Every name touched on either branch has now been folded into
	// parentPath; drop the branch paths themselves so their pre-join states
	// don't linger in the table under dead PathIds (flattenTable only ever
	// walks the table's live paths, but a discarded branch path was never
	// removed from it otherwise).
	a.table.DeletePath(leftPath)
	a.table.DeletePath(rightPath)
}
