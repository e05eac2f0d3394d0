// Package report assembles the final Report value the public entry point
// returns: the categorized issue list plus the full and top-level variable
// dumps (4.F).
package report

import (
	"strings"

	"github.com/jingwhale/blockpy/internal/diagnostics"
	"github.com/jingwhale/blockpy/internal/state"
)

// Report is the shape described in 6.2.
type Report struct {
	Success           bool
	Error             error
	Issues            map[diagnostics.Kind][]diagnostics.Data
	Variables         map[string]*state.State
	TopLevelVariables map[string]*state.State
}

// Failed builds the {success:false} shape a *diagnostics.Error produces.
func Failed(err error) *Report {
	return &Report{
		Success: false,
		Error:   err,
		Issues:  map[diagnostics.Kind][]diagnostics.Data{},
	}
}

// Builder accumulates issues in visit order and flattens the name map at
// the end of analysis. It is owned by exactly one analyzer run.
type Builder struct {
	issues map[diagnostics.Kind][]diagnostics.Data
}

func NewBuilder() *Builder {
	return &Builder{issues: map[diagnostics.Kind][]diagnostics.Data{}}
}

// Raise appends an issue; order of calls is preserved, matching "ordered
// sequence... matches the order in which the AST was visited."
func (b *Builder) Raise(kind diagnostics.Kind, data diagnostics.Data) {
	b.issues[kind] = append(b.issues[kind], data)
}

// Finish flattens a fully-scoped-name -> State map into the Report,
// deriving TopLevelVariables as the subset of module-path entries whose
// fully-scoped name has exactly two segments (module scope + bare name).
func (b *Builder) Finish(variables map[string]*state.State) *Report {
	top := map[string]*state.State{}
	for full, s := range variables {
		segments := strings.Split(full, "/")
		if len(segments) == 2 && segments[0] == "0" {
			top[segments[1]] = s
		}
	}
	return &Report{
		Success:           true,
		Issues:            b.issues,
		Variables:         variables,
		TopLevelVariables: top,
	}
}
