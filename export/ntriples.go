package export

import (
	"bytes"
	"context"
	"fmt"

	"github.com/anvanster/codegraph/graph"
)

/*
baseURI prefixes every graph-local id to build a stable, de-referenceable
subject/object URI (§4.5).
*/
const baseURI = "urn:codegraph:"

/*
ntripleScalarProps lists which node properties are projected as literal
triples alongside the edge triples; kept small and deliberate rather
than dumping every property, since most are mapper bookkeeping rather
than semantically triple-worthy facts.
*/
var ntripleScalarProps = []string{"name", "path"}

func nodeURI(id uint64) string { return fmt.Sprintf("<%sn%d>", baseURI, id) }

func predicateURI(kind graph.EdgeKind) string { return fmt.Sprintf("<%s%s>", baseURI, kind) }

/*
NTriples renders s as N-Triples: one "<subject> <predicate> <object> ."
line per edge, using stable graph-local-id URIs, plus one literal triple
per node per populated property in ntripleScalarProps (§4.5).
*/
func NTriples(ctx context.Context, s *graph.Store, g Guardrails) (*Result, error) {
	total, err := countEntities(ctx, s)
	if err != nil {
		return nil, err
	}
	warn, err := checkSize(total, g)
	if err != nil {
		return nil, err
	}

	var b bytes.Buffer

	if err := s.ScanNodes(ctx, func(n *graph.Node) error {
		for _, key := range ntripleScalarProps {
			v, ok := n.Props.Get(key)
			if !ok || v.Kind != graph.KindString || v.Str == "" {
				continue
			}
			fmt.Fprintf(&b, "%s <%s%s> %q .\n", nodeURI(n.ID), baseURI, key, v.Str)
		}
		return nil
	}); err != nil {
		return nil, err
	}

	if err := s.ScanEdges(ctx, func(e *graph.Edge) error {
		fmt.Fprintf(&b, "%s %s %s .\n", nodeURI(e.Source), predicateURI(e.Kind), nodeURI(e.Target))
		return nil
	}); err != nil {
		return nil, err
	}

	return &Result{Data: b.Bytes(), Warning: warn, Size: total}, nil
}
