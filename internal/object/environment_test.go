package object

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAssignMutatesAncestorInPlace(t *testing.T) {
	root := NewRootEnvironment()
	root.Define("x", &Number{Value: 1})
	child := NewChild(root)

	ok := child.Assign("x", &Number{Value: 2})
	assert.True(t, ok)

	v, _ := root.Get("x")
	assert.Equal(t, &Number{Value: 2}, v)
}

func TestAssignUnknownNameIsSilentNoOp(t *testing.T) {
	root := NewRootEnvironment()
	ok := root.Assign("missing", &Number{Value: 1})
	assert.False(t, ok)
	_, found := root.Get("missing")
	assert.False(t, found)
}

func TestDefineShadowsWithoutMutatingParent(t *testing.T) {
	root := NewRootEnvironment()
	root.Define("x", &Number{Value: 1})
	child := NewChild(root)
	child.Define("x", &Number{Value: 99})

	childVal, _ := child.Get("x")
	rootVal, _ := root.Get("x")
	assert.Equal(t, int32(99), childVal.(*Number).Value)
	assert.Equal(t, int32(1), rootVal.(*Number).Value)
}

func TestStringSortsKeysAndNestsChildren(t *testing.T) {
	root := NewRootEnvironment()
	root.Define("b", &Number{Value: 2})
	root.Define("a", &Number{Value: 1})
	child := NewChild(root)
	child.Define("c", &Number{Value: 3})

	assert.Equal(t, "a: 1 \nb: 2 \n{\nc: 3 \n}\n\n", root.String())
}

func TestWatchForIsPerEnvironmentInstance(t *testing.T) {
	root := NewRootEnvironment()
	w := &Watch{Name: "x", Home: root}
	root.SetWatch("x", w)

	child := NewChild(root)
	_, onChild := child.WatchFor("x")
	_, onRoot := root.WatchFor("x")
	assert.False(t, onChild)
	assert.True(t, onRoot)
}
