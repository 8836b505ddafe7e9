package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ring(g *Graph, names ...string) []*Action {
	nodes := make([]*Action, len(names))
	for i, name := range names {
		nodes[i] = NewAction(g, name, func() {})
	}
	for i := range nodes {
		After(nodes[(i+1)%len(nodes)], nodes[i])
	}
	return nodes
}

func TestHasCycle_Rings(t *testing.T) {
	for _, size := range []int{2, 3, 4} {
		g := New(1)
		names := make([]string, size)
		for i := range names {
			names[i] = string(rune('a' + i))
		}
		ring(g, names...)
		assert.True(t, g.HasCycle(), "ring of %d", size)
		g.Close()
	}
}

func TestHasCycle_OrderingLoop(t *testing.T) {
	g := New(1)
	defer g.Close()

	t1 := NewAction(g, "t1", func() {})
	t2 := NewAction(g, "t2", func() {})
	t3 := NewAction(g, "t3", func() {})
	t4 := NewAction(g, "t4", func() {})
	After(t2, t1)
	After(t3, t2)
	After(t4, t3)
	After(t1, t4)

	assert.True(t, g.HasCycle())
}

func TestHasCycle_DagIsClean(t *testing.T) {
	g := New(1)
	defer g.Close()
	buildDiamond(t, g)
	assert.False(t, g.HasCycle())
}

func TestHasCycle_CycleEmbeddedInLargerDag(t *testing.T) {
	g := New(1)
	defer g.Close()

	root := NewTask(g, "root", func() int { return 1 })
	fan1 := NewTask1(g, "fan1", func(x int) int { return x })
	fan2 := NewTask1(g, "fan2", func(x int) int { return x })
	require.NoError(t, Bind(fan1, 0, root))
	require.NoError(t, Bind(fan2, 0, root))

	assert.False(t, g.HasCycle())

	// Attach a small ordering loop below one branch.
	x := NewAction(g, "x", func() {})
	y := NewAction(g, "y", func() {})
	z := NewAction(g, "z", func() {})
	After(x, fan1)
	After(y, x)
	After(z, y)
	After(x, z)

	assert.True(t, g.HasCycle())
}

func TestHasCycle_ValueEdges(t *testing.T) {
	g := New(1)
	defer g.Close()

	p := NewTask1(g, "p", func(x int) int { return x })
	q := NewTask1(g, "q", func(x int) int { return x })
	require.NoError(t, Bind(q, 0, p))
	require.NoError(t, Bind(p, 0, q))

	assert.True(t, g.HasCycle())
}
