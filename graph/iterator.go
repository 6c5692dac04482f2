package graph

import (
	"context"

	cgerrors "github.com/anvanster/codegraph/errors"
)

/*
NodeIDIterator is a cursor over every node id in ascending order,
grounded on eliasdb's NodeKeyIterator (graph/iterator.go): a caller that
only needs ids doesn't have to pay for materializing full records.
*/
type NodeIDIterator struct {
	ids []uint64
	pos int
}

/*
NewNodeIDIterator builds an iterator over every node currently in s.
*/
func NewNodeIDIterator(ctx context.Context, s *Store) (*NodeIDIterator, error) {
	var ids []uint64
	err := s.ScanNodes(ctx, func(n *Node) error {
		ids = append(ids, n.ID)
		return nil
	})
	if err != nil {
		return nil, cgerrors.Wrap(cgerrors.ErrStorage, err, "building node iterator")
	}
	return &NodeIDIterator{ids: ids}, nil
}

func (it *NodeIDIterator) HasNext() bool {
	return it.pos < len(it.ids)
}

func (it *NodeIDIterator) Next() uint64 {
	id := it.ids[it.pos]
	it.pos++
	return id
}

/*
EdgeIDIterator is the edge analogue of NodeIDIterator.
*/
type EdgeIDIterator struct {
	ids []uint64
	pos int
}

func NewEdgeIDIterator(ctx context.Context, s *Store) (*EdgeIDIterator, error) {
	var ids []uint64
	err := s.ScanEdges(ctx, func(e *Edge) error {
		ids = append(ids, e.ID)
		return nil
	})
	if err != nil {
		return nil, cgerrors.Wrap(cgerrors.ErrStorage, err, "building edge iterator")
	}
	return &EdgeIDIterator{ids: ids}, nil
}

func (it *EdgeIDIterator) HasNext() bool {
	return it.pos < len(it.ids)
}

func (it *EdgeIDIterator) Next() uint64 {
	id := it.ids[it.pos]
	it.pos++
	return id
}
