package graph

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/awalterschulze/gographviz"
)

// Exporter renders a graph's structure for documentation and debugging.
// Value edges are drawn solid and labelled with the argument position they
// deliver into; ordering edges are drawn dashed.
type Exporter struct {
	graph *Graph
}

// NewExporter creates an exporter for the given graph.
func NewExporter(g *Graph) *Exporter {
	return &Exporter{graph: g}
}

// MermaidOptions configures Mermaid rendering.
type MermaidOptions struct {
	// Direction of the flowchart, e.g. "TD" or "LR". Defaults to "TD".
	Direction string
}

// Mermaid renders the graph as a top-down Mermaid flowchart.
func (e *Exporter) Mermaid() string {
	return e.MermaidWithOptions(MermaidOptions{Direction: "TD"})
}

// MermaidWithOptions renders the graph as a Mermaid flowchart.
func (e *Exporter) MermaidWithOptions(opts MermaidOptions) string {
	direction := opts.Direction
	if direction == "" {
		direction = "TD"
	}

	ids := e.nodeIDs()
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("flowchart %s\n", direction))
	for _, c := range e.graph.nodes {
		sb.WriteString(fmt.Sprintf("    %s[%q]\n", ids[c], c.name))
	}
	for _, ed := range e.graph.edges {
		if ed.ordering {
			sb.WriteString(fmt.Sprintf("    %s -.-> %s\n", ids[ed.from], ids[ed.to]))
		} else {
			sb.WriteString(fmt.Sprintf("    %s -->|%q| %s\n", ids[ed.from], fmt.Sprintf("arg %d", ed.pos), ids[ed.to]))
		}
	}
	return sb.String()
}

// DOT renders the graph in Graphviz DOT form.
func (e *Exporter) DOT() (string, error) {
	gv := gographviz.NewGraph()
	if err := gv.SetName("tasks"); err != nil {
		return "", err
	}
	if err := gv.SetDir(true); err != nil {
		return "", err
	}

	ids := e.nodeIDs()
	for _, c := range e.graph.nodes {
		attrs := map[string]string{
			"label": strconv.Quote(c.name),
			"shape": "box",
		}
		if err := gv.AddNode("tasks", ids[c], attrs); err != nil {
			return "", err
		}
	}
	for _, ed := range e.graph.edges {
		attrs := map[string]string{}
		if ed.ordering {
			attrs["style"] = "dashed"
		} else {
			attrs["label"] = strconv.Quote(fmt.Sprintf("arg %d", ed.pos))
		}
		if err := gv.AddEdge(ids[ed.from], ids[ed.to], true, attrs); err != nil {
			return "", err
		}
	}
	return gv.String(), nil
}

// nodeIDs assigns stable identifiers in insertion order; task names are free
// text and become labels instead.
func (e *Exporter) nodeIDs() map[*core]string {
	ids := make(map[*core]string, len(e.graph.nodes))
	for i, c := range e.graph.nodes {
		ids[c] = fmt.Sprintf("n%d", i)
	}
	return ids
}
