package algo

import (
	"context"

	"github.com/gammazero/deque"

	"github.com/anvanster/codegraph/graph"
)

/*
BFS visits every node reachable from source under opts, returning each in
discovery order paired with its depth. The visited set prevents
revisits, which is what makes this terminate on cyclic graphs (§4.3,
P7). Discovery order at each depth follows the insertion order of the
outgoing-edge set, per the tie-break rule of §4.3.
*/
func BFS(ctx context.Context, s *graph.Store, source uint64, opts TraversalOptions) ([]Discovery, error) {
	visited := map[uint64]bool{source: true}
	var out []Discovery

	type frame struct {
		id    uint64
		depth int
	}

	var q deque.Deque[frame]
	q.PushBack(frame{source, 0})

	for q.Len() > 0 {
		f := q.PopFront()
		out = append(out, Discovery{ID: f.id, Depth: f.depth})

		if !withinDepth(f.depth+1, opts.MaxDepth) {
			continue
		}

		neighbors, err := s.GetNeighbors(ctx, f.id, opts.Direction, opts.EdgeKind)
		if err != nil {
			return nil, err
		}

		for _, n := range neighbors {
			if visited[n] {
				continue
			}
			visited[n] = true
			q.PushBack(frame{n, f.depth + 1})
		}
	}

	return out, nil
}
