package symbols

import (
	"strings"

	"github.com/jingwhale/blockpy/internal/state"
)

// Table is the name map: PathId -> (fully-scoped name -> State).
type Table struct {
	paths map[PathId]map[string]*state.State
}

func NewTable() *Table {
	return &Table{paths: map[PathId]map[string]*state.State{}}
}

func (t *Table) pathMap(p PathId) map[string]*state.State {
	m, ok := t.paths[p]
	if !ok {
		m = map[string]*state.State{}
		t.paths[p] = m
	}
	return m
}

// Get returns the State for a fully-scoped name on a given path, if any.
func (t *Table) Get(p PathId, fullName string) (*state.State, bool) {
	m, ok := t.paths[p]
	if !ok {
		return nil, false
	}
	s, ok := m[fullName]
	return s, ok
}

// Set inserts or replaces the State for a fully-scoped name on a path.
func (t *Table) Set(p PathId, fullName string, s *state.State) {
	t.pathMap(p)[fullName] = s
}

// Names returns every fully-scoped name recorded on a path.
func (t *Table) Names(p PathId) []string {
	m, ok := t.paths[p]
	if !ok {
		return nil
	}
	out := make([]string, 0, len(m))
	for name := range m {
		out = append(out, name)
	}
	return out
}

// Paths returns every PathId that has at least one recorded name.
func (t *Table) Paths() []PathId {
	out := make([]PathId, 0, len(t.paths))
	for p := range t.paths {
		out = append(out, p)
	}
	return out
}

// DeletePath discards every name recorded on p. Used once a branch path has
// been folded into its parent by combine, so the pre-join path does not
// linger in the table under a now-dead PathId.
func (t *Table) DeletePath(p PathId) {
	delete(t.paths, p)
}

// All returns the complete name map, keyed by PathId.
func (t *Table) All() map[PathId]map[string]*state.State {
	return t.paths
}

// Lookup is the result of FindInScope.
type Lookup struct {
	Exists     bool
	InScope    bool
	ScopedName string
	State      *state.State
}

// FindInScope implements find-in-scope(name): walk outward from the
// innermost scope, trying each suffix of the scope chain against every
// PathId in the path chain. InScope is true only when the match came from
// the full (innermost) chain.
func FindInScope(t *Table, scopes ScopeStack, paths PathStack, name string) Lookup {
	for depth := 0; depth <= len(scopes); depth++ {
		suffix := scopes[depth:]
		candidate := FullyScopedName(suffix, name)
		for _, p := range paths {
			if s, ok := t.Get(p, candidate); ok {
				return Lookup{Exists: true, InScope: depth == 0, ScopedName: candidate, State: s}
			}
		}
	}
	return Lookup{}
}

// FindOutOfScope implements find-out-of-scope(name): scan every PathId in
// the whole table for an entry whose last "/"-separated segment equals
// name, regardless of which scope produced it.
func FindOutOfScope(t *Table, name string) Lookup {
	for _, m := range t.paths {
		for full, s := range m {
			idx := strings.LastIndex(full, "/")
			bare := full
			if idx >= 0 {
				bare = full[idx+1:]
			}
			if bare == name {
				return Lookup{Exists: true, InScope: false, ScopedName: full, State: s}
			}
		}
	}
	return Lookup{}
}

// SameScope implements same-scope(fullName, scopeChain): the scope prefix
// of fullName (everything before its last segment) equals the reversed
// scope chain joined the same way FullyScopedName does.
func SameScope(fullName string, scopes ScopeStack) bool {
	idx := strings.LastIndex(fullName, "/")
	if idx < 0 {
		return false
	}
	prefix := fullName[:idx]
	want := strings.TrimSuffix(FullyScopedName(scopes, "x"), "/x")
	return prefix == want
}
