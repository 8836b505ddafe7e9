package graph

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExporter_Mermaid(t *testing.T) {
	g := New(1)
	defer g.Close()
	buildDiamond(t, g)

	out := NewExporter(g).Mermaid()
	assert.True(t, strings.HasPrefix(out, "flowchart TD\n"))
	assert.Contains(t, out, `n0["a"]`)
	assert.Contains(t, out, `n3["d"]`)
	assert.Contains(t, out, `-->|"arg 0"|`)
	assert.Contains(t, out, `-->|"arg 1"|`)
}

func TestExporter_MermaidDirectionAndOrderingEdges(t *testing.T) {
	g := New(1)
	defer g.Close()

	first := NewAction(g, "first", func() {})
	second := NewAction(g, "second", func() {})
	After(second, first)

	out := NewExporter(g).MermaidWithOptions(MermaidOptions{Direction: "LR"})
	assert.True(t, strings.HasPrefix(out, "flowchart LR\n"))
	assert.Contains(t, out, "n0 -.-> n1")
}

func TestExporter_DOT(t *testing.T) {
	g := New(1)
	defer g.Close()

	p := NewTask(g, "make value", func() int { return 1 })
	q := NewTask1(g, "use value", func(x int) int { return x })
	require.NoError(t, Bind(q, 0, p))
	follow := NewAction(g, "follow up", func() {})
	After(follow, q)

	out, err := NewExporter(g).DOT()
	require.NoError(t, err)
	assert.Contains(t, out, "digraph tasks")
	assert.Contains(t, out, `"make value"`)
	assert.Contains(t, out, "n0->n1")
	assert.Contains(t, out, "arg 0")
	assert.Contains(t, out, "dashed")
}
