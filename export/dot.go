package export

import (
	"context"
	"fmt"
	"strings"

	"github.com/anvanster/codegraph/graph"
)

var dotNodeStyle = map[graph.NodeKind]string{
	graph.NodeFile:      "shape=box,color=gray",
	graph.NodeFunction:  "shape=ellipse,color=blue",
	graph.NodeClass:     "shape=box,color=green",
	graph.NodeModule:    "shape=box3d,color=gray",
	graph.NodeVariable:  "shape=plaintext,color=black",
	graph.NodeType:      "shape=diamond,color=orange",
	graph.NodeInterface: "shape=hexagon,color=purple",
	graph.NodeGeneric:   "shape=plaintext,color=black",
}

/*
DOT renders s as a Graphviz directed graph, with node shape/color keyed
by discriminator and labels from the "name" property (or a synthesized
"<Kind>#id" label when absent). Node and edge identifiers are the
graph-local ids, stable across runs (§4.5).
*/
func DOT(ctx context.Context, s *graph.Store, g Guardrails) (*Result, error) {
	total, err := countEntities(ctx, s)
	if err != nil {
		return nil, err
	}
	warn, err := checkSize(total, g)
	if err != nil {
		return nil, err
	}

	var b strings.Builder
	b.WriteString("digraph codegraph {\n")

	if err := s.ScanNodes(ctx, func(n *graph.Node) error {
		label := n.Props.StringOr("name", "")
		if label == "" {
			label = fmt.Sprintf("%s#%d", n.Kind, n.ID)
		}
		style := dotNodeStyle[n.Kind]
		fmt.Fprintf(&b, "  n%d [label=%q,%s];\n", n.ID, label, style)
		return nil
	}); err != nil {
		return nil, err
	}

	if err := s.ScanEdges(ctx, func(e *graph.Edge) error {
		fmt.Fprintf(&b, "  n%d -> n%d [label=%q];\n", e.Source, e.Target, string(e.Kind))
		return nil
	}); err != nil {
		return nil, err
	}

	b.WriteString("}\n")
	return &Result{Data: []byte(b.String()), Warning: warn, Size: total}, nil
}
