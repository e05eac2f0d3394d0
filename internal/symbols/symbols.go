// Package symbols implements the name/scope/path tables of 4.C: a name
// map keyed by PathId and fully-scoped name, and the scope/path stacks the
// walker pushes and pops around every scope- or branch-introducing node.
//
// The thin-entry-file convention (a short doc comment describing the
// split, real logic in sibling files) follows the teacher's own
// symbols/symbol_table.go.
package symbols

import (
	"fmt"
	"strings"
)

// ScopeId and PathId are the monotonic counters the data model names.
// Scope 0 is always the module scope.
type ScopeId int
type PathId int

const ModuleScope ScopeId = 0

// Counters hands out fresh ScopeIds and PathIds for one analysis. It is
// reset only by constructing a new one, never mutated by more than one
// analyzer instance at a time (5. Concurrency & Resource Model).
type Counters struct {
	nextScope ScopeId
	nextPath  PathId
}

// NewCounters returns counters with scope 0 and path 0 already consumed,
// matching "Scope 0 is the module" / "the outermost PathId is the module path".
func NewCounters() *Counters {
	return &Counters{nextScope: 1, nextPath: 1}
}

func (c *Counters) NewScope() ScopeId {
	id := c.nextScope
	c.nextScope++
	return id
}

func (c *Counters) NewPath() PathId {
	id := c.nextPath
	c.nextPath++
	return id
}

// ScopeStack is innermost-first, matching the data model's "innermost first" phrasing.
type ScopeStack []ScopeId

func (s ScopeStack) Push(id ScopeId) ScopeStack { return append(ScopeStack{id}, s...) }
func (s ScopeStack) Pop() ScopeStack            { return s[1:] }

// PathStack mirrors ScopeStack for PathIds.
type PathStack []PathId

func (s PathStack) Push(id PathId) PathStack { return append(PathStack{id}, s...) }
func (s PathStack) Pop() PathStack           { return s[1:] }

// FullyScopedName joins the scope chain (innermost first) in module order
// then appends the bare name, e.g. scopes [2,0] + "x" -> "0/2/x".
func FullyScopedName(scopes ScopeStack, name string) string {
	parts := make([]string, len(scopes))
	for i, s := range scopes {
		parts[len(scopes)-1-i] = fmt.Sprintf("%d", s)
	}
	return strings.Join(parts, "/") + "/" + name
}
