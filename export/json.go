package export

import (
	"context"

	"github.com/ugorji/go/codec"

	"github.com/anvanster/codegraph/graph"
)

var jsonHandle = &codec.JsonHandle{Indent: 2}

type jsonProperty struct {
	Key   string      `codec:"key"`
	Value interface{} `codec:"value"`
}

type jsonNode struct {
	ID         uint64         `codec:"id"`
	Kind       graph.NodeKind `codec:"kind"`
	Properties []jsonProperty `codec:"properties"`
}

type jsonEdge struct {
	ID         uint64         `codec:"id"`
	Source     uint64         `codec:"source"`
	Target     uint64         `codec:"target"`
	Kind       graph.EdgeKind `codec:"kind"`
	Properties []jsonProperty `codec:"properties"`
}

type jsonDocument struct {
	Nodes []jsonNode `codec:"nodes"`
	Edges []jsonEdge `codec:"edges"`
}

func propertiesToJSON(p *graph.PropertyMap) []jsonProperty {
	keys := p.Keys()
	out := make([]jsonProperty, 0, len(keys))
	for _, k := range keys {
		v, _ := p.Get(k)
		out = append(out, jsonProperty{Key: k, Value: jsonScalar(v)})
	}
	return out
}

func jsonScalar(v graph.Value) interface{} {
	switch v.Kind {
	case graph.KindString:
		return v.Str
	case graph.KindInt64:
		return v.Int
	case graph.KindFloat64:
		return v.Float
	case graph.KindBool:
		return v.Bool
	case graph.KindStringList:
		return v.StrList
	case graph.KindInt64List:
		return v.IntList
	default:
		return nil
	}
}

/*
JSON renders s as a { "nodes": [...], "edges": [...] } document, both
arrays in ascending-id order, using github.com/ugorji/go/codec's JSON
handle for marshaling (§4.5).
*/
func JSON(ctx context.Context, s *graph.Store, g Guardrails) (*Result, error) {
	total, err := countEntities(ctx, s)
	if err != nil {
		return nil, err
	}
	warn, err := checkSize(total, g)
	if err != nil {
		return nil, err
	}

	doc := jsonDocument{}

	if err := s.ScanNodes(ctx, func(n *graph.Node) error {
		doc.Nodes = append(doc.Nodes, jsonNode{ID: n.ID, Kind: n.Kind, Properties: propertiesToJSON(n.Props)})
		return nil
	}); err != nil {
		return nil, err
	}

	if err := s.ScanEdges(ctx, func(e *graph.Edge) error {
		doc.Edges = append(doc.Edges, jsonEdge{ID: e.ID, Source: e.Source, Target: e.Target, Kind: e.Kind, Properties: propertiesToJSON(e.Props)})
		return nil
	}); err != nil {
		return nil, err
	}

	var buf []byte
	enc := codec.NewEncoderBytes(&buf, jsonHandle)
	if err := enc.Encode(doc); err != nil {
		return nil, err
	}

	return &Result{Data: buf, Warning: warn, Size: total}, nil
}

/*
JSONFiltered renders only the nodes pred accepts, plus - if includeEdges
is set - every edge whose endpoints both pass pred, grounded on the
original CodeGraph::export_json_filtered. Unlike JSON, it does not run
the size guardrail check: the predicate is the caller's own size
control, matching the original's export_json_filtered.
*/
func JSONFiltered(ctx context.Context, s *graph.Store, pred func(*graph.Node) bool, includeEdges bool) (*Result, error) {
	doc := jsonDocument{}
	kept := make(map[uint64]bool)

	if err := s.ScanNodes(ctx, func(n *graph.Node) error {
		if !pred(n) {
			return nil
		}
		kept[n.ID] = true
		doc.Nodes = append(doc.Nodes, jsonNode{ID: n.ID, Kind: n.Kind, Properties: propertiesToJSON(n.Props)})
		return nil
	}); err != nil {
		return nil, err
	}

	if includeEdges {
		if err := s.ScanEdges(ctx, func(e *graph.Edge) error {
			if !kept[e.Source] || !kept[e.Target] {
				return nil
			}
			doc.Edges = append(doc.Edges, jsonEdge{ID: e.ID, Source: e.Source, Target: e.Target, Kind: e.Kind, Properties: propertiesToJSON(e.Props)})
			return nil
		}); err != nil {
			return nil, err
		}
	}

	var buf []byte
	enc := codec.NewEncoderBytes(&buf, jsonHandle)
	if err := enc.Encode(doc); err != nil {
		return nil, err
	}

	return &Result{Data: buf, Size: len(doc.Nodes)}, nil
}
