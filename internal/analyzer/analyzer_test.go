package analyzer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jingwhale/blockpy/internal/analyzer"
	"github.com/jingwhale/blockpy/internal/ast"
	"github.com/jingwhale/blockpy/internal/diagnostics"
	"github.com/jingwhale/blockpy/internal/token"
	"github.com/jingwhale/blockpy/internal/types"
)

var p = token.Position{Line: 1, Column: 0}

func mod(body ...ast.Node) *ast.Module { return ast.NewModule(p, body) }

func name(id string) *ast.Name { return ast.NewName(p, id, ast.Load) }

func store(id string) *ast.Name { return ast.NewName(p, id, ast.Store) }

func call(fn string, args ...ast.Node) *ast.Call {
	return ast.NewCall(p, name(fn), args)
}

// 1. x = 5; print(x) -> no issues; topLevelVariables.x = Num, set/read yes, over no.
func TestScenario1AssignThenRead(t *testing.T) {
	m := mod(
		ast.NewAssign(p, []ast.Node{store("x")}, ast.NewNum(p, 5)),
		call("print", name("x")),
	)
	rep := analyzer.Analyze(m, analyzer.DefaultConfig())
	require.True(t, rep.Success)
	assert.Empty(t, rep.Issues[diagnostics.UndefinedVariables])
	assert.Empty(t, rep.Issues[diagnostics.UnreadVariables])

	x, ok := rep.TopLevelVariables["x"]
	require.True(t, ok)
	assert.Equal(t, types.Num, x.Type.Tag())
	assert.EqualValues(t, "yes", x.Set)
	assert.EqualValues(t, "yes", x.Read)
	assert.EqualValues(t, "no", x.Over)
}

// 2. print(y) -> Undefined variables: y.
func TestScenario2UndefinedRead(t *testing.T) {
	m := mod(call("print", name("y")))
	rep := analyzer.Analyze(m, analyzer.DefaultConfig())
	require.True(t, rep.Success)
	require.Len(t, rep.Issues[diagnostics.UndefinedVariables], 1)
	assert.Equal(t, "y", rep.Issues[diagnostics.UndefinedVariables][0].Name)
}

// 3. x = 5; x = 7 -> Overwritten variables: x, Unread variables: x.
func TestScenario3Overwrite(t *testing.T) {
	m := mod(
		ast.NewAssign(p, []ast.Node{store("x")}, ast.NewNum(p, 5)),
		ast.NewAssign(p, []ast.Node{store("x")}, ast.NewNum(p, 7)),
	)
	rep := analyzer.Analyze(m, analyzer.DefaultConfig())
	require.True(t, rep.Success)
	require.Len(t, rep.Issues[diagnostics.OverwrittenVariables], 1)
	require.Len(t, rep.Issues[diagnostics.UnreadVariables], 1)
	assert.Equal(t, "x", rep.Issues[diagnostics.OverwrittenVariables][0].Name)
	assert.Equal(t, "x", rep.Issues[diagnostics.UnreadVariables][0].Name)
}

// 4. if c: x = 1; print(x) -> Possibly undefined variables: x.
func TestScenario4PossiblyUndefinedAcrossBranch(t *testing.T) {
	m := mod(
		ast.NewAssign(p, []ast.Node{store("c")}, ast.NewBool(p, true)),
		ast.NewIf(p, name("c"), []ast.Node{ast.NewAssign(p, []ast.Node{store("x")}, ast.NewNum(p, 1))}, nil),
		call("print", name("x")),
	)
	rep := analyzer.Analyze(m, analyzer.DefaultConfig())
	require.True(t, rep.Success)
	require.Len(t, rep.Issues[diagnostics.PossiblyUndefinedVariables], 1)
	assert.Equal(t, "x", rep.Issues[diagnostics.PossiblyUndefinedVariables][0].Name)
}

// 5. xs = []; xs.append(3); print(xs[0]) -> no issues; xs.type = List{subtype:Num}.
func TestScenario5AppendNarrowsList(t *testing.T) {
	m := mod(
		ast.NewAssign(p, []ast.Node{store("xs")}, ast.NewList(p, nil)),
		ast.NewCall(p, ast.NewAttribute(p, name("xs"), "append"), []ast.Node{ast.NewNum(p, 3)}),
		call("print", ast.NewSubscript(p, name("xs"), ast.NewNum(p, 0))),
	)
	rep := analyzer.Analyze(m, analyzer.DefaultConfig())
	require.True(t, rep.Success)
	assert.Empty(t, rep.Issues[diagnostics.AppendToNonList])
	assert.Empty(t, rep.Issues[diagnostics.UndefinedVariables])

	xs, ok := rep.TopLevelVariables["xs"]
	require.True(t, ok)
	list, ok := xs.Type.(*types.TList)
	require.True(t, ok)
	assert.False(t, list.Empty)
	assert.Equal(t, types.Num, list.Subtype.Tag())
}

// 6. for x in x: pass -> Iteration variable is iteration list: x, plus
// Undefined variables: x at the iter position.
func TestScenario6IterationVariableIsIterationList(t *testing.T) {
	m := mod(ast.NewFor(p, store("x"), name("x"), []ast.Node{ast.NewPass(p)}, nil))
	rep := analyzer.Analyze(m, analyzer.DefaultConfig())
	require.True(t, rep.Success)
	require.Len(t, rep.Issues[diagnostics.IterationVariableIsIterationList], 1)
	require.Len(t, rep.Issues[diagnostics.UndefinedVariables], 1)
}

// while c: x = 1 else: x = 2; print(x) -> orelse is actually visited and
// joined like If's two arms, so x is set on both sides and print(x) raises
// nothing (regression test: orelse used to have no AST field at all, so it
// was silently dropped and x would have surfaced as Possibly undefined).
func TestWhileOrelseJoinsLikeIf(t *testing.T) {
	m := mod(
		ast.NewAssign(p, []ast.Node{store("c")}, ast.NewBool(p, true)),
		ast.NewWhile(p, name("c"),
			[]ast.Node{ast.NewAssign(p, []ast.Node{store("x")}, ast.NewNum(p, 1))},
			[]ast.Node{ast.NewAssign(p, []ast.Node{store("x")}, ast.NewNum(p, 2))},
		),
		call("print", name("x")),
	)
	rep := analyzer.Analyze(m, analyzer.DefaultConfig())
	require.True(t, rep.Success)
	assert.Empty(t, rep.Issues[diagnostics.PossiblyUndefinedVariables])
	assert.Empty(t, rep.Issues[diagnostics.UndefinedVariables])
}

// xs = [1]; for x in xs: pass else: y = 5; print(y) -> orelse runs in the
// current path (no fork), so y is plainly set before print(y) reads it.
func TestForOrelseRunsInCurrentPath(t *testing.T) {
	m := mod(
		ast.NewAssign(p, []ast.Node{store("xs")}, ast.NewList(p, []ast.Node{ast.NewNum(p, 1)})),
		ast.NewFor(p, store("x"), name("xs"),
			[]ast.Node{ast.NewPass(p)},
			[]ast.Node{ast.NewAssign(p, []ast.Node{store("y")}, ast.NewNum(p, 5))},
		),
		call("print", name("y")),
	)
	rep := analyzer.Analyze(m, analyzer.DefaultConfig())
	require.True(t, rep.Success)
	assert.Empty(t, rep.Issues[diagnostics.PossiblyUndefinedVariables])
	assert.Empty(t, rep.Issues[diagnostics.UndefinedVariables])
}

// Analyzing the same branching program with fresh analyzers repeatedly must
// yield the same joined state for names touched inside the branch — stale
// pre-join entries left behind under dead PathIds would otherwise make
// Report.Variables/TopLevelVariables depend on Go's randomized map order.
func TestBranchJoinIsDeterministicAcrossRuns(t *testing.T) {
	build := func() *ast.Module {
		return mod(
			ast.NewAssign(p, []ast.Node{store("c")}, ast.NewBool(p, true)),
			ast.NewIf(p, name("c"), []ast.Node{ast.NewAssign(p, []ast.Node{store("x")}, ast.NewNum(p, 1))}, nil),
			call("print", name("x")),
		)
	}
	for i := 0; i < 20; i++ {
		rep := analyzer.Analyze(build(), analyzer.DefaultConfig())
		require.True(t, rep.Success)
		x, ok := rep.TopLevelVariables["x"]
		require.True(t, ok)
		require.EqualValues(t, "maybe", x.Set, "run %d", i)
		require.EqualValues(t, "yes", x.Read, "run %d", i)
		require.EqualValues(t, "no", x.Over, "run %d", i)
	}
}

// 7. "a" + 1 -> Incompatible types: op=Add, left=Str, right=Num.
func TestScenario7IncompatibleTypes(t *testing.T) {
	m := mod(ast.NewBinOp(p, "+", ast.NewStr(p, "a"), ast.NewNum(p, 1)))
	rep := analyzer.Analyze(m, analyzer.DefaultConfig())
	require.True(t, rep.Success)
	require.Len(t, rep.Issues[diagnostics.IncompatibleTypes], 1)
	issue := rep.Issues[diagnostics.IncompatibleTypes][0]
	assert.Equal(t, "+", issue.Operation)
	assert.Equal(t, "Str", issue.Left)
	assert.Equal(t, "Num", issue.Right)
}

// 8. def f(): return 1 \n return 2 -> Return outside function; f has type
// Function; calling f() infers Num.
func TestScenario8ReturnOutsideFunctionAndCall(t *testing.T) {
	m := mod(
		ast.NewFunctionDef(p, "f", nil, []ast.Node{ast.NewReturn(p, ast.NewNum(p, 1))}),
		ast.NewReturn(p, ast.NewNum(p, 2)),
		ast.NewAssign(p, []ast.Node{store("result")}, call("f")),
	)
	rep := analyzer.Analyze(m, analyzer.DefaultConfig())
	require.True(t, rep.Success)
	require.Len(t, rep.Issues[diagnostics.ReturnOutsideFunction], 1)

	f, ok := rep.TopLevelVariables["f"]
	require.True(t, ok)
	assert.Equal(t, types.FuncTag, f.Type.Tag())

	result, ok := rep.TopLevelVariables["result"]
	require.True(t, ok)
	assert.Equal(t, types.Num, result.Type.Tag())
}

// ys = [x for x in xs] over xs = [1] -> no issues; ys.type = List{subtype:Num}.
func TestListCompInfersElementType(t *testing.T) {
	m := mod(
		ast.NewAssign(p, []ast.Node{store("xs")}, ast.NewList(p, []ast.Node{ast.NewNum(p, 1)})),
		ast.NewAssign(p, []ast.Node{store("ys")}, ast.NewListComp(p, name("x"), store("x"), name("xs"))),
	)
	rep := analyzer.Analyze(m, analyzer.DefaultConfig())
	require.True(t, rep.Success)
	assert.Empty(t, rep.Issues[diagnostics.UndefinedVariables])
	assert.Empty(t, rep.Issues[diagnostics.NonListIterations])
	assert.Empty(t, rep.Issues[diagnostics.EmptyIterations])

	ys, ok := rep.TopLevelVariables["ys"]
	require.True(t, ok)
	list, ok := ys.Type.(*types.TList)
	require.True(t, ok)
	assert.Equal(t, types.Num, list.Subtype.Tag())
}

// [x for x in ___] -> Unconnected blocks, same as any other reference to
// the placeholder name.
func TestListCompUnconnectedIterator(t *testing.T) {
	m := mod(ast.NewAssign(p, []ast.Node{store("ys")}, ast.NewListComp(p, name("x"), store("x"), name("___"))))
	rep := analyzer.Analyze(m, analyzer.DefaultConfig())
	require.True(t, rep.Success)
	require.Len(t, rep.Issues[diagnostics.UnconnectedBlocks], 1)
}

// [y for y in xs] over xs = [] -> Empty iterations, same rule as For.
func TestListCompEmptyIterationSource(t *testing.T) {
	m := mod(
		ast.NewAssign(p, []ast.Node{store("xs")}, ast.NewList(p, nil)),
		ast.NewAssign(p, []ast.Node{store("ys")}, ast.NewListComp(p, name("y"), store("y"), name("xs"))),
	)
	rep := analyzer.Analyze(m, analyzer.DefaultConfig())
	require.True(t, rep.Success)
	require.Len(t, rep.Issues[diagnostics.EmptyIterations], 1)
}

// [y for y in xs] over xs = 5 -> Non-list iterations, same rule as For.
func TestListCompNonListIterationSource(t *testing.T) {
	m := mod(
		ast.NewAssign(p, []ast.Node{store("xs")}, ast.NewNum(p, 5)),
		ast.NewAssign(p, []ast.Node{store("ys")}, ast.NewListComp(p, name("y"), store("y"), name("xs"))),
	)
	rep := analyzer.Analyze(m, analyzer.DefaultConfig())
	require.True(t, rep.Success)
	require.Len(t, rep.Issues[diagnostics.NonListIterations], 1)
}

// [x for x in x] -> Iteration variable is iteration list, plus Undefined
// variables at the iter position — the ListComp analogue of scenario 6.
func TestListCompIterationVariableIsIterationList(t *testing.T) {
	m := mod(ast.NewAssign(p, []ast.Node{store("ys")}, ast.NewListComp(p, name("x"), store("x"), name("x"))))
	rep := analyzer.Analyze(m, analyzer.DefaultConfig())
	require.True(t, rep.Success)
	require.Len(t, rep.Issues[diagnostics.IterationVariableIsIterationList], 1)
	require.Len(t, rep.Issues[diagnostics.UndefinedVariables], 1)
}

// if True: with a body of zero statements -> Empty Body: the body the
// grammar requires to be non-empty was given nothing at all.
func TestEmptyBodyOnRequiredBlock(t *testing.T) {
	m := mod(ast.NewIf(p, ast.NewBool(p, true), nil, nil))
	rep := analyzer.Analyze(m, analyzer.DefaultConfig())
	require.True(t, rep.Success)
	require.Len(t, rep.Issues[diagnostics.EmptyBody], 1)
}

// if True: pass; x = 1 -> Unnecessary Pass: a pass sharing a block with a
// real statement is vestigial.
func TestUnnecessaryPassAlongsideRealStatement(t *testing.T) {
	m := mod(ast.NewIf(p, ast.NewBool(p, true), []ast.Node{
		ast.NewPass(p),
		ast.NewAssign(p, []ast.Node{store("x")}, ast.NewNum(p, 1)),
	}, nil))
	rep := analyzer.Analyze(m, analyzer.DefaultConfig())
	require.True(t, rep.Success)
	require.Len(t, rep.Issues[diagnostics.UnnecessaryPass], 1)
}

// print = 1 -> Aliased built-in: shadowing a built-in name is worth flagging.
func TestAliasedBuiltinOnAssignToBuiltinName(t *testing.T) {
	m := mod(ast.NewAssign(p, []ast.Node{store("print")}, ast.NewNum(p, 1)))
	rep := analyzer.Analyze(m, analyzer.DefaultConfig())
	require.True(t, rep.Success)
	require.Len(t, rep.Issues[diagnostics.AliasedBuiltin], 1)
	assert.Equal(t, "print", rep.Issues[diagnostics.AliasedBuiltin][0].Name)
}
