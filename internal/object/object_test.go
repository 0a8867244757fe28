package object

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestArrayStringMixedOrder(t *testing.T) {
	arr := NewArray()
	arr.Append(&Number{Value: 1})
	arr.AppendKeyed("name", &String{Value: "loom"})
	arr.Append(&Number{Value: 2})

	assert.Equal(t, "[1,name:loom,2,]", arr.String())
}

func TestAssignIndexReplacesSlotRegardlessOfKind(t *testing.T) {
	arr := NewArray()
	arr.AppendKeyed("a", &Number{Value: 1})

	err := arr.AssignIndex(0, &Number{Value: 9})
	assert.NoError(t, err)
	assert.Equal(t, "[9,]", arr.String())
}

func TestAssignKeyNeverTouchesSlotList(t *testing.T) {
	arr := NewArray()
	arr.AssignKey("new", &Number{Value: 1})

	assert.Equal(t, "[]", arr.String())
	assert.Equal(t, &Number{Value: 1}, arr.Map["new"])
}

func TestAssignIndexOutOfRange(t *testing.T) {
	arr := NewArray()
	err := arr.AssignIndex(0, &Number{Value: 1})
	assert.Error(t, err)
}

func TestIsFalsey(t *testing.T) {
	assert.True(t, IsFalsey(FALSE))
	assert.True(t, IsFalsey(NULL))
	assert.True(t, IsFalsey(VOID))
	assert.True(t, IsFalsey(NONE))
	assert.True(t, IsFalsey(&Number{Value: 0}))
	assert.False(t, IsFalsey(TRUE))
	assert.False(t, IsFalsey(&Number{Value: 1}))
	assert.False(t, IsFalsey(&String{Value: ""}))
}

func TestEqual(t *testing.T) {
	assert.True(t, Equal(&Number{Value: 5}, &Number{Value: 5}))
	assert.False(t, Equal(&Number{Value: 5}, &Number{Value: 6}))
	assert.True(t, Equal(NONE, NONE))
	assert.False(t, Equal(NONE, NULL))
	assert.True(t, Equal(&String{Value: "x"}, &String{Value: "x"}))
}

func TestIsReturnLike(t *testing.T) {
	assert.True(t, IsReturnLike(&Return{Value: NULL}))
	assert.True(t, IsReturnLike(&BlockReturn{Value: NULL}))
	assert.False(t, IsReturnLike(NONE))
}
