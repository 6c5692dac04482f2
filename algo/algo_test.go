package algo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/anvanster/codegraph/graph"
	"github.com/anvanster/codegraph/storage"
)

func newTestStore(t *testing.T) (*graph.Store, context.Context) {
	ctx := context.Background()
	s, err := graph.Open(ctx, storage.NewMemoryBackend())
	require.NoError(t, err)
	return s, ctx
}

/*
TestCircularImports covers scenario 3 of spec §8: a 3-node import cycle.
*/
func TestCircularImports(t *testing.T) {
	s, ctx := newTestStore(t)

	a, _ := s.AddNode(ctx, graph.NodeFile, nil)
	b, _ := s.AddNode(ctx, graph.NodeFile, nil)
	c, _ := s.AddNode(ctx, graph.NodeFile, nil)

	_, _ = s.AddEdge(ctx, a, b, graph.EdgeImports, nil)
	_, _ = s.AddEdge(ctx, b, c, graph.EdgeImports, nil)
	_, _ = s.AddEdge(ctx, c, a, graph.EdgeImports, nil)

	cycles, err := CircularDeps(ctx, s)
	require.NoError(t, err)
	require.Len(t, cycles, 1)
	require.ElementsMatch(t, []uint64{a, b, c}, cycles[0])

	kind := graph.EdgeImports
	disc, err := BFS(ctx, s, a, TraversalOptions{EdgeKind: &kind, Direction: graph.Outgoing})
	require.NoError(t, err)
	require.Len(t, disc, 3)
}

/*
TestBoundedAllPaths covers scenario 4: a diamond-shaped call graph.
*/
func TestBoundedAllPaths(t *testing.T) {
	s, ctx := newTestStore(t)

	n1, _ := s.AddNode(ctx, graph.NodeFunction, nil)
	n2, _ := s.AddNode(ctx, graph.NodeFunction, nil)
	n3, _ := s.AddNode(ctx, graph.NodeFunction, nil)

	_, _ = s.AddEdge(ctx, n1, n2, graph.EdgeCalls, nil)
	_, _ = s.AddEdge(ctx, n2, n3, graph.EdgeCalls, nil)
	_, _ = s.AddEdge(ctx, n1, n3, graph.EdgeCalls, nil)

	paths, err := CallChain(ctx, s, n1, n3, 3)
	require.NoError(t, err)
	require.Len(t, paths, 2)
	require.ElementsMatch(t, [][]uint64{{n1, n3}, {n1, n2, n3}}, paths)

	paths1, err := CallChain(ctx, s, n1, n3, 1)
	require.NoError(t, err)
	require.Equal(t, [][]uint64{{n1, n3}}, paths1)
}

func TestAllPathsRequiresPositiveBound(t *testing.T) {
	s, ctx := newTestStore(t)
	n1, _ := s.AddNode(ctx, graph.NodeFunction, nil)

	_, err := AllPaths(ctx, s, n1, n1, 0, nil, 0)
	require.Error(t, err)

	_, err = AllPaths(ctx, s, n1, n1, 1000, nil, 10)
	require.Error(t, err)
}

func TestBFSVisitedPreventsRevisitOnCycle(t *testing.T) {
	s, ctx := newTestStore(t)

	a, _ := s.AddNode(ctx, graph.NodeFile, nil)
	b, _ := s.AddNode(ctx, graph.NodeFile, nil)
	_, _ = s.AddEdge(ctx, a, b, graph.EdgeImports, nil)
	_, _ = s.AddEdge(ctx, b, a, graph.EdgeImports, nil)

	disc, err := BFS(ctx, s, a, TraversalOptions{})
	require.NoError(t, err)
	require.Len(t, disc, 2)
}

func TestDFSPreOrder(t *testing.T) {
	s, ctx := newTestStore(t)

	a, _ := s.AddNode(ctx, graph.NodeFunction, nil)
	b, _ := s.AddNode(ctx, graph.NodeFunction, nil)
	c, _ := s.AddNode(ctx, graph.NodeFunction, nil)
	_, _ = s.AddEdge(ctx, a, b, graph.EdgeCalls, nil)
	_, _ = s.AddEdge(ctx, a, c, graph.EdgeCalls, nil)

	order, err := DFS(ctx, s, a, TraversalOptions{})
	require.NoError(t, err)
	require.Equal(t, []uint64{a, b, c}, order)
}

func TestSCCPartitionsAndMutualReachability(t *testing.T) {
	s, ctx := newTestStore(t)

	a, _ := s.AddNode(ctx, graph.NodeFunction, nil)
	b, _ := s.AddNode(ctx, graph.NodeFunction, nil)
	c, _ := s.AddNode(ctx, graph.NodeFunction, nil)
	d, _ := s.AddNode(ctx, graph.NodeFunction, nil)

	_, _ = s.AddEdge(ctx, a, b, graph.EdgeCalls, nil)
	_, _ = s.AddEdge(ctx, b, a, graph.EdgeCalls, nil)
	_, _ = s.AddEdge(ctx, b, c, graph.EdgeCalls, nil)
	_, _ = s.AddEdge(ctx, c, d, graph.EdgeCalls, nil)

	comps, err := SCC(ctx, s, nil, nil)
	require.NoError(t, err)

	total := 0
	for _, c := range comps {
		total += len(c)
	}
	require.Equal(t, 4, total)

	var abComp []uint64
	for _, comp := range comps {
		if len(comp) == 2 {
			abComp = comp
		}
	}
	require.ElementsMatch(t, []uint64{a, b}, abComp)
}

func TestTransitiveClosureMaxDepth(t *testing.T) {
	s, ctx := newTestStore(t)

	a, _ := s.AddNode(ctx, graph.NodeFile, nil)
	b, _ := s.AddNode(ctx, graph.NodeFile, nil)
	c, _ := s.AddNode(ctx, graph.NodeFile, nil)
	_, _ = s.AddEdge(ctx, a, b, graph.EdgeImports, nil)
	_, _ = s.AddEdge(ctx, b, c, graph.EdgeImports, nil)

	depth1 := 1
	disc, err := TransitiveClosure(ctx, s, a, []graph.EdgeKind{graph.EdgeImports}, graph.Outgoing, &depth1)
	require.NoError(t, err)
	require.Len(t, disc, 2) // a (depth0) + b (depth1), not c
}
