package graph

import (
	"context"

	cgerrors "github.com/anvanster/codegraph/errors"
)

/*
Dump is an in-memory snapshot of a whole graph, used by ExportGraph and
ImportGraph to round-trip a store (P6, spec §8). Modeled on eliasdb's
ExportPartition/ImportPartition (graph/import_export.go), generalized
from eliasdb's single JSON text format to a structured value any C5
exporter can still render as bytes.
*/
type Dump struct {
	Nodes []NodeRecord
	Edges []EdgeRecord
}

type NodeRecord struct {
	ID    uint64
	Kind  NodeKind
	Props *PropertyMap
}

type EdgeRecord struct {
	ID     uint64
	Source uint64
	Target uint64
	Kind   EdgeKind
	Props  *PropertyMap
}

/*
ExportGraph snapshots every node and edge in ascending id order.
*/
func ExportGraph(ctx context.Context, s *Store) (*Dump, error) {
	d := &Dump{}

	if err := s.ScanNodes(ctx, func(n *Node) error {
		d.Nodes = append(d.Nodes, NodeRecord{ID: n.ID, Kind: n.Kind, Props: n.Props})
		return nil
	}); err != nil {
		return nil, cgerrors.Wrap(cgerrors.ErrStorage, err, "exporting nodes")
	}

	if err := s.ScanEdges(ctx, func(e *Edge) error {
		d.Edges = append(d.Edges, EdgeRecord{ID: e.ID, Source: e.Source, Target: e.Target, Kind: e.Kind, Props: e.Props})
		return nil
	}); err != nil {
		return nil, cgerrors.Wrap(cgerrors.ErrStorage, err, "exporting edges")
	}

	return d, nil
}

/*
ImportGraph rebuilds an isomorphic graph from a Dump into s (expected
empty). Old ids in d are remapped to the ids the target store allocates,
since id allocation is store-local (P4); the resulting adjacency
structure is isomorphic to the exported one even though raw ids differ.
*/
func ImportGraph(ctx context.Context, s *Store, d *Dump) error {
	remap := make(map[uint64]uint64, len(d.Nodes))

	inputs := make([]NodeInput, len(d.Nodes))
	for i, n := range d.Nodes {
		inputs[i] = NodeInput{Kind: n.Kind, Props: n.Props}
	}
	newIDs, err := s.BatchAddNodes(ctx, inputs)
	if err != nil {
		return cgerrors.Wrap(cgerrors.ErrBatchFailed, err, "importing nodes")
	}
	for i, n := range d.Nodes {
		remap[n.ID] = newIDs[i]
	}

	edgeInputs := make([]EdgeInput, len(d.Edges))
	for i, e := range d.Edges {
		edgeInputs[i] = EdgeInput{
			Source: remap[e.Source],
			Target: remap[e.Target],
			Kind:   e.Kind,
			Props:  e.Props,
		}
	}
	if _, err := s.BatchAddEdges(ctx, edgeInputs); err != nil {
		return cgerrors.Wrap(cgerrors.ErrBatchFailed, err, "importing edges")
	}

	return nil
}
