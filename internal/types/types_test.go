package types_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jingwhale/blockpy/internal/types"
)

func TestEqualEmptyListIsPolymorphic(t *testing.T) {
	empty := types.NewEmptyList()
	nums := &types.TList{Subtype: types.TNum}
	strs := &types.TList{Subtype: types.TStr}

	assert.True(t, types.Equal(empty, nums))
	assert.True(t, types.Equal(nums, empty))
	assert.True(t, types.Equal(empty, strs))
	assert.False(t, types.Equal(nums, strs))
}

func TestEqualUnknownNeverEqual(t *testing.T) {
	assert.False(t, types.Equal(types.TUnknown, types.TUnknown))
	assert.False(t, types.Equal(types.TUnknown, types.TNum))
	assert.False(t, types.Equal(nil, types.TNum))
}

func TestEqualTagMismatch(t *testing.T) {
	assert.False(t, types.Equal(types.TNum, types.TStr))
	assert.True(t, types.Equal(types.TBool, types.TBool))
}

func TestIndexSequenceType(t *testing.T) {
	tup := types.TTuple{Subtypes: []types.Type{types.TNum, types.TStr}}
	assert.Equal(t, types.Num, types.IndexSequenceType(tup, 0).Tag())
	assert.Equal(t, types.Str, types.IndexSequenceType(tup, 1).Tag())
	assert.Equal(t, types.Unknown, types.IndexSequenceType(tup, 2).Tag())

	list := &types.TList{Subtype: types.TBool}
	assert.Equal(t, types.Bool, types.IndexSequenceType(list, 0).Tag())

	assert.Equal(t, types.Str, types.IndexSequenceType(types.TStr, 0).Tag())
	assert.Equal(t, types.Unknown, types.IndexSequenceType(types.TBool, 0).Tag())
}

func TestIsSequence(t *testing.T) {
	assert.True(t, types.IsSequence(types.NewEmptyList()))
	assert.True(t, types.IsSequence(types.NewEmptySet()))
	assert.True(t, types.IsSequence(types.NewEmptyTuple()))
	assert.True(t, types.IsSequence(types.TStr))
	assert.False(t, types.IsSequence(types.TNum))
	assert.False(t, types.IsSequence(nil))
}

func TestIsEmptyList(t *testing.T) {
	assert.True(t, types.IsEmptyList(types.NewEmptyList()))
	assert.False(t, types.IsEmptyList(&types.TList{Subtype: types.TNum}))
	assert.False(t, types.IsEmptyList(types.TNum))
}

func TestMergeTypesList(t *testing.T) {
	empty := types.NewEmptyList()
	nums := &types.TList{Subtype: types.TNum}

	merged := types.MergeTypes(empty, nums)
	assert.False(t, merged.(*types.TList).Empty)
	assert.Equal(t, types.Num, merged.(*types.TList).Subtype.Tag())

	merged2 := types.MergeTypes(nums, empty)
	assert.Equal(t, types.Num, merged2.(*types.TList).Subtype.Tag())
}

func TestMergeTypesTuple(t *testing.T) {
	left := types.TTuple{Subtypes: []types.Type{types.TNum}}
	right := types.TTuple{Subtypes: []types.Type{types.TStr}}
	merged := types.MergeTypes(left, right).(types.TTuple)
	assert.Len(t, merged.Subtypes, 2)
	assert.Equal(t, types.Num, merged.Subtypes[0].Tag())
	assert.Equal(t, types.Str, merged.Subtypes[1].Tag())
}

func TestBinOpTable(t *testing.T) {
	cases := []struct {
		op          string
		left, right types.Type
		wantTag     types.Tag
		ok          bool
	}{
		{"+", types.TNum, types.TNum, types.Num, true},
		{"+", types.TStr, types.TStr, types.Str, true},
		{"+", types.TStr, types.TNum, types.Unknown, false},
		{"*", types.TNum, types.TStr, types.Str, true},
		{"*", types.TStr, types.TNum, types.Str, true},
		{"-", types.TNum, types.TNum, types.Num, true},
		{"-", types.TStr, types.TStr, types.Unknown, false},
		{"/", types.TNum, types.TNum, types.Num, true},
		{"%", types.TNum, types.TNum, types.Num, true},
		{"**", types.TNum, types.TNum, types.Num, true},
	}
	for _, c := range cases {
		result, ok := types.BinOp(c.op, c.left, c.right)
		assert.Equal(t, c.ok, ok, "op %s", c.op)
		assert.Equal(t, c.wantTag, result.Tag(), "op %s", c.op)
	}
}

func TestCopyTypeSharesMutableInstance(t *testing.T) {
	list := &types.TList{Subtype: types.TNum}
	copied := types.CopyType(list)
	assert.Same(t, list, copied)
}
