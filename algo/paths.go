package algo

import (
	"context"

	cgerrors "github.com/anvanster/codegraph/errors"
	"github.com/anvanster/codegraph/graph"
	"github.com/anvanster/codegraph/internal/glog"
)

/*
DefaultPathCeiling is the ceiling AllPaths applies when it is given a
non-positive ceiling, and the one CallChain always passes; a caller of
AllPaths that passes its own positive ceiling replaces it. See §4.3's
"depth bound is mandatory... refuse to enumerate without one above a
configured ceiling".
*/
const DefaultPathCeiling = 32

/*
AllPaths enumerates every simple path (no repeated node) from source to
target of length at most maxLen edges, following edges of kind (nil =
any kind). maxLen must be a positive bound no greater than ceiling (use
DefaultPathCeiling if the caller has no tighter one); a non-positive or
over-ceiling maxLen is refused with ErrDepthExceeded rather than run
unbounded, since the search is exponential in the worst case (§4.3).
*/
func AllPaths(ctx context.Context, s *graph.Store, source, target uint64, maxLen int, edgeKind *graph.EdgeKind, ceiling int) ([][]uint64, error) {
	if ceiling <= 0 {
		ceiling = DefaultPathCeiling
	}
	log := glog.Get("algo")
	if maxLen <= 0 {
		log.Warn().Int("max_len", maxLen).Msg("depth-exceeded: all-paths requires a positive max length")
		return nil, cgerrors.New(cgerrors.ErrDepthExceeded, "all-paths requires a positive max length")
	}
	if maxLen > ceiling {
		log.Warn().Int("max_len", maxLen).Int("ceiling", ceiling).Msg("depth-exceeded: max length exceeds ceiling")
		return nil, cgerrors.New(cgerrors.ErrDepthExceeded, "max length %d exceeds ceiling %d", maxLen, ceiling)
	}

	var paths [][]uint64
	visited := map[uint64]bool{source: true}
	current := []uint64{source}

	var walk func(node uint64) error
	walk = func(node uint64) error {
		if node == target {
			paths = append(paths, append([]uint64(nil), current...))
			return nil
		}
		if len(current)-1 >= maxLen {
			return nil
		}

		neighbors, err := s.GetNeighbors(ctx, node, graph.Outgoing, edgeKind)
		if err != nil {
			return err
		}

		for _, n := range neighbors {
			if visited[n] {
				continue
			}
			visited[n] = true
			current = append(current, n)

			if err := walk(n); err != nil {
				return err
			}

			current = current[:len(current)-1]
			visited[n] = false
		}
		return nil
	}

	if err := walk(source); err != nil {
		return nil, err
	}
	return paths, nil
}

/*
CallChain is all-paths specialized to Calls edges, per §4.3.
*/
func CallChain(ctx context.Context, s *graph.Store, caller, callee uint64, maxLen int) ([][]uint64, error) {
	kind := graph.EdgeCalls
	return AllPaths(ctx, s, caller, callee, maxLen, &kind, DefaultPathCeiling)
}
