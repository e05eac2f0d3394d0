// Package state implements the per-name flow fact (State) and the pure
// operators over it: trace-state and combine-states. The store and load
// operators live in internal/analyzer (flow.go), which builds on these.
//
// States are never mutated after insertion; every update in this package
// returns a new State whose Prev link points at its predecessor, which is
// exactly the "ordered sequence of prior snapshots" the data model calls
// trace.
package state

import "github.com/jingwhale/blockpy/internal/types"

// Axis is one of the three per-name tracking dimensions.
type Axis string

const (
	No    Axis = "no"
	Yes   Axis = "yes"
	Maybe Axis = "maybe"
)

// Method names the operation that produced a State, recorded on the
// successor so its trace reads like a log.
type Method string

const (
	MethodStore    Method = "store"
	MethodLoad     Method = "load"
	MethodCombine  Method = "combine"
	MethodDegrade  Method = "degrade"
	MethodStoreIter Method = "store-iter"
)

// State is a single name's flow fact at one point in the walk.
type State struct {
	Name   string
	Type   types.Type
	Set    Axis
	Read   Axis
	Over   Axis
	Method Method
	Prev   *State
}

// History returns the full linked trace, most recent first.
func (s *State) History() []*State {
	var out []*State
	for cur := s; cur != nil; cur = cur.Prev {
		out = append(out, cur)
	}
	return out
}

// Fresh constructs the first State for a name with no predecessor.
func Fresh(name string, t types.Type, set, read, over Axis, method Method) *State {
	return &State{Name: name, Type: t, Set: set, Read: read, Over: over, Method: method}
}

// Trace implements trace-state(s, method): a successor carrying the same
// axes and type, linked back to s.
func Trace(prev *State, method Method) *State {
	return &State{
		Name: prev.Name, Type: prev.Type,
		Set: prev.Set, Read: prev.Read, Over: prev.Over,
		Method: method, Prev: prev,
	}
}

// degrade implements the join-time axis rule: no->no, yes->maybe, maybe->maybe.
func degrade(a Axis) Axis {
	if a == No {
		return No
	}
	return Maybe
}

// CombineStates implements combine-states(l, r). If r is nil, every axis
// on l degrades by the join rule. Otherwise a differing Type raises a
// Type-changes signal (returned as typeChanged) and axes keep their
// common value or fall to Maybe.
func CombineStates(name string, l, r *State) (result *State, typeChanged bool) {
	if r == nil {
		return &State{
			Name: name, Type: l.Type,
			Set: degrade(l.Set), Read: degrade(l.Read), Over: degrade(l.Over),
			Method: MethodDegrade, Prev: l,
		}, false
	}
	resultType := l.Type
	// Unknown never equals anything, even itself, so two branches that both
	// failed independently (and so both carry Unknown) must not be reported
	// as a type change on top of whatever already caused the Unknown.
	if l.Type.Tag() != types.Unknown && r.Type.Tag() != types.Unknown && !types.Equal(l.Type, r.Type) {
		typeChanged = true
	}
	joinAxis := func(a, b Axis) Axis {
		if a == b {
			return a
		}
		return Maybe
	}
	return &State{
		Name: name, Type: resultType,
		Set: joinAxis(l.Set, r.Set), Read: joinAxis(l.Read, r.Read), Over: joinAxis(l.Over, r.Over),
		Method: MethodCombine, Prev: l,
	}, typeChanged
}
