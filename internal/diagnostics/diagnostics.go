// Package diagnostics defines the accumulated issue kinds the analyzer can
// raise, and the single unrecoverable-failure type that aborts a run.
//
// The distinction mirrors the teacher's own error model (cmd/lsp's
// DiagnosticError versus a terminating parse/analysis error): diagnostics
// are collected and returned to the caller; an Error aborts the analysis,
// and the single public entry point returns a failed report in place of a
// partial one.
package diagnostics

import "github.com/jingwhale/blockpy/internal/token"

// Kind is one of the 24 named issue kinds the core can raise.
type Kind string

const (
	ParserFailure                  Kind = "Parser Failure"
	UnconnectedBlocks               Kind = "Unconnected blocks"
	EmptyBody                       Kind = "Empty Body"
	UnnecessaryPass                 Kind = "Unnecessary Pass"
	UnreadVariables                 Kind = "Unread variables"
	UndefinedVariables               Kind = "Undefined variables"
	PossiblyUndefinedVariables       Kind = "Possibly undefined variables"
	OverwrittenVariables             Kind = "Overwritten variables"
	AppendToNonList                  Kind = "Append to non-list"
	UsedIterationList                Kind = "Used iteration list"
	UnusedIterationVariable          Kind = "Unused iteration variable"
	NonListIterations                Kind = "Non-list iterations"
	EmptyIterations                  Kind = "Empty iterations"
	TypeChanges                      Kind = "Type changes"
	IterationVariableIsIterationList Kind = "Iteration variable is iteration list"
	UnknownFunctions                 Kind = "Unknown functions"
	NotAFunction                     Kind = "Not a function"
	ActionAfterReturn                Kind = "Action after return"
	IncompatibleTypes                Kind = "Incompatible types"
	ReturnOutsideFunction            Kind = "Return outside function"
	ReadOutOfScope                   Kind = "Read out of scope"
	WriteOutOfScope                  Kind = "Write out of scope"
	AliasedBuiltin                   Kind = "Aliased built-in"
	MethodNotInType                  Kind = "Method not in Type"
)

// AllKinds lists every kind in a fixed order, used to give the report a
// deterministic key ordering regardless of map iteration.
var AllKinds = []Kind{
	ParserFailure, UnconnectedBlocks, EmptyBody, UnnecessaryPass,
	UnreadVariables, UndefinedVariables, PossiblyUndefinedVariables,
	OverwrittenVariables, AppendToNonList, UsedIterationList,
	UnusedIterationVariable, NonListIterations, EmptyIterations,
	TypeChanges, IterationVariableIsIterationList, UnknownFunctions,
	NotAFunction, ActionAfterReturn, IncompatibleTypes,
	ReturnOutsideFunction, ReadOutOfScope, WriteOutOfScope,
	AliasedBuiltin, MethodNotInType,
}

// Data carries whichever optional fields a given issue needs. Fields left
// zero-valued are simply omitted by renderers.
type Data struct {
	Name      string
	Scope     string
	Position  token.Position
	Type      string
	Old       string
	New       string
	Left      string
	Right     string
	Operation string
}

// Error is an unrecoverable analyzer failure: a malformed AST or a caller
// contract violation. It is the only thing that can make a Report
// unsuccessful; every other problem is raised as an accumulated Kind
// instead.
type Error struct {
	Msg string
	Pos token.Position
}

func (e *Error) Error() string {
	if e.Pos.Zero() {
		return e.Msg
	}
	return e.Pos.String() + ": " + e.Msg
}

func NewError(pos token.Position, msg string) *Error {
	return &Error{Msg: msg, Pos: pos}
}
