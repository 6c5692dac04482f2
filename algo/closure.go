package algo

import (
	"context"

	"github.com/anvanster/codegraph/graph"
)

/*
TransitiveClosure is BFS specialized to one or more edge kinds, following
direction dir (Outgoing for dependencies, Incoming for dependents), up to
an optional max depth. When more than one kind is given, a node's
neighbor set is the union across kinds per hop (§4.3).
*/
func TransitiveClosure(ctx context.Context, s *graph.Store, source uint64, kinds []graph.EdgeKind, dir graph.Direction, maxDepth *int) ([]Discovery, error) {
	if len(kinds) <= 1 {
		var k *graph.EdgeKind
		if len(kinds) == 1 {
			k = &kinds[0]
		}
		return BFS(ctx, s, source, TraversalOptions{MaxDepth: maxDepth, EdgeKind: k, Direction: dir})
	}

	visited := map[uint64]bool{source: true}
	out := []Discovery{{ID: source, Depth: 0}}
	frontier := []uint64{source}
	depth := 0

	for len(frontier) > 0 {
		if maxDepth != nil && depth >= *maxDepth {
			break
		}
		depth++

		var next []uint64
		for _, node := range frontier {
			for i := range kinds {
				neighbors, err := s.GetNeighbors(ctx, node, dir, &kinds[i])
				if err != nil {
					return nil, err
				}
				for _, n := range neighbors {
					if visited[n] {
						continue
					}
					visited[n] = true
					out = append(out, Discovery{ID: n, Depth: depth})
					next = append(next, n)
				}
			}
		}
		frontier = next
	}

	return out, nil
}

/*
CircularDeps is SCC restricted to Imports/ImportsFrom edges, keeping only
components that actually indicate a cycle: size >= 2, or a single node
with a self-loop (§4.3).
*/
func CircularDeps(ctx context.Context, s *graph.Store) ([][]uint64, error) {
	components, err := SCC(ctx, s, nil, []graph.EdgeKind{graph.EdgeImports, graph.EdgeImportsFrom})
	if err != nil {
		return nil, err
	}

	var cycles [][]uint64
	for _, comp := range components {
		if isCycle(ctx, s, comp) {
			cycles = append(cycles, comp)
		}
	}
	return cycles, nil
}

func isCycle(ctx context.Context, s *graph.Store, comp []uint64) bool {
	if len(comp) >= 2 {
		return true
	}
	if len(comp) == 1 {
		ids, err := s.GetEdgesBetween(ctx, comp[0], comp[0], nil)
		return err == nil && len(ids) > 0
	}
	return false
}
