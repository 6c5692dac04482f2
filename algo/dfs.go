package algo

import (
	"context"

	"github.com/gammazero/deque"

	"github.com/anvanster/codegraph/graph"
)

/*
DFS visits every node reachable from source under opts using an explicit
stack (no recursion, so arbitrarily deep graphs can't blow a call stack),
returning nodes in pre-order of first discovery.
*/
func DFS(ctx context.Context, s *graph.Store, source uint64, opts TraversalOptions) ([]uint64, error) {
	visited := map[uint64]bool{}
	var out []uint64

	type frame struct {
		id    uint64
		depth int
	}

	var stack deque.Deque[frame]
	stack.PushBack(frame{source, 0})

	for stack.Len() > 0 {
		f := stack.PopBack()
		if visited[f.id] {
			continue
		}
		visited[f.id] = true
		out = append(out, f.id)

		if !withinDepth(f.depth+1, opts.MaxDepth) {
			continue
		}

		neighbors, err := s.GetNeighbors(ctx, f.id, opts.Direction, opts.EdgeKind)
		if err != nil {
			return nil, err
		}

		// Push in reverse so the first neighbor is popped (and thus
		// visited) first, matching the outgoing-edge insertion order.
		for i := len(neighbors) - 1; i >= 0; i-- {
			if !visited[neighbors[i]] {
				stack.PushBack(frame{neighbors[i], f.depth + 1})
			}
		}
	}

	return out, nil
}
