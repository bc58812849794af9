package tracker

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMarkDirtyPropagatesUpward(t *testing.T) {
	tr := New()
	root := tr.Root()
	a := root.NewChild()
	b := root.NewChild()
	leaf := a.NewChild()

	require.False(t, root.IsDirty())
	require.False(t, a.IsDirty())
	require.False(t, b.IsDirty())
	require.False(t, leaf.IsDirty())

	leaf.MarkDirty()

	require.True(t, leaf.IsDirty())
	require.True(t, a.IsDirty())
	require.True(t, root.IsDirty())
	// Propagation is strictly upward, never sideways.
	require.False(t, b.IsDirty())

	// Idempotent.
	leaf.MarkDirty()
	require.True(t, leaf.IsDirty())
	require.False(t, b.IsDirty())
}

func TestMarkDirtyDoesNotFlowDownward(t *testing.T) {
	tr := New()
	parent := tr.Root().NewChild()
	child := parent.NewChild()

	parent.MarkDirty()

	require.True(t, parent.IsDirty())
	require.True(t, tr.Root().IsDirty())
	require.False(t, child.IsDirty())
}

func TestMarkDirtyStopsAtDirtyAncestor(t *testing.T) {
	tr := New()
	a := tr.Root().NewChild()
	b := a.NewChild()
	c := b.NewChild()

	b.MarkDirty()
	require.True(t, a.IsDirty())
	require.False(t, c.IsDirty())

	// The walk from c stops at b, which is already dirty; the root stays
	// dirty from the first call.
	c.MarkDirty()
	require.True(t, c.IsDirty())
	require.True(t, tr.Root().IsDirty())
}

func TestZeroNodeIsDetached(t *testing.T) {
	var n Node

	require.False(t, n.Valid())
	n.MarkDirty() // no-op
	require.False(t, n.IsDirty())

	child := n.NewChild()
	require.False(t, child.Valid())
	child.MarkDirty()
	require.False(t, child.IsDirty())
}

func TestValid(t *testing.T) {
	tr := New()
	require.True(t, tr.Root().Valid())
	require.True(t, tr.Root().NewChild().Valid())
}
