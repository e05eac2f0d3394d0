package ast_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jingwhale/blockpy/internal/ast"
)

func TestDecodeModuleAssignAndCall(t *testing.T) {
	data := []byte(`{
		"_astname": "Module",
		"body": [
			{
				"_astname": "Assign",
				"targets": [{"_astname": "Name", "id": "x", "ctx": "Store"}],
				"value": {"_astname": "Num", "num": 5}
			},
			{
				"_astname": "Call",
				"func": {"_astname": "Name", "id": "print", "ctx": "Load"},
				"args": [{"_astname": "Name", "id": "x", "ctx": "Load"}]
			}
		]
	}`)

	mod, err := ast.DecodeModule(data)
	require.NoError(t, err)
	require.Len(t, mod.Body, 2)

	assign, ok := mod.Body[0].(*ast.Assign)
	require.True(t, ok)
	require.Len(t, assign.Targets, 1)
	target, ok := assign.Targets[0].(*ast.Name)
	require.True(t, ok)
	assert.Equal(t, "x", target.Id)
	assert.Equal(t, ast.Store, target.Ctx)

	call, ok := mod.Body[1].(*ast.Call)
	require.True(t, ok)
	assert.Len(t, call.Args, 1)
}

func TestDecodeModuleRejectsNonModuleRoot(t *testing.T) {
	_, err := ast.DecodeModule([]byte(`{"_astname": "Num", "num": 1}`))
	assert.Error(t, err)
}

func TestDecodeModuleUnknownKind(t *testing.T) {
	_, err := ast.DecodeModule([]byte(`{"_astname": "Module", "body": [{"_astname": "Bogus"}]}`))
	assert.Error(t, err)
}

func TestDecodeDictRequiresMatchingKeysAndValues(t *testing.T) {
	_, err := ast.DecodeModule([]byte(`{
		"_astname": "Module",
		"body": [{
			"_astname": "Assign",
			"targets": [{"_astname": "Name", "id": "d", "ctx": "Store"}],
			"value": {
				"_astname": "Dict",
				"keys": [{"_astname": "Str", "str": "a"}],
				"values": []
			}
		}]
	}`))
	assert.Error(t, err)
}
