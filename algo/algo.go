/*
Package algo implements the graph algorithm layer (C3): BFS, DFS,
strongly-connected components, bounded path enumeration and transitive
closure, all read through graph.Store's adjacency index (never
bypassing it), with explicit work-stacks so no algorithm recurses
unboundedly (§4.3).
*/
package algo

import (
	"github.com/anvanster/codegraph/graph"
)

/*
TraversalOptions bounds a BFS/DFS/closure walk: MaxDepth (nil = no bound,
but AllPaths always requires one - see §4.3), an optional edge-kind
filter, and which direction to follow.
*/
type TraversalOptions struct {
	MaxDepth  *int
	EdgeKind  *graph.EdgeKind
	Direction graph.Direction
}

/*
Discovery pairs a reached node id with the depth (hop count from the
source) at which BFS first reached it.
*/
type Discovery struct {
	ID    uint64
	Depth int
}

func withinDepth(depth int, max *int) bool {
	return max == nil || depth <= *max
}
