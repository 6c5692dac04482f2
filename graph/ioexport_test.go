package graph

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/anvanster/codegraph/storage"
)

func TestExportImportRoundTripIsomorphic(t *testing.T) {
	ctx := context.Background()
	s1, _ := Open(ctx, storage.NewMemoryBackend())

	n1, _ := s1.AddNode(ctx, NodeFile, nameProps("a.rs"))
	n2, _ := s1.AddNode(ctx, NodeFunction, nameProps("main"))
	n3, _ := s1.AddNode(ctx, NodeFunction, nameProps("helper"))
	_, _ = s1.AddEdge(ctx, n1, n2, EdgeContains, nil)
	_, _ = s1.AddEdge(ctx, n2, n3, EdgeCalls, nil)

	dump, err := ExportGraph(ctx, s1)
	require.NoError(t, err)
	require.Len(t, dump.Nodes, 3)
	require.Len(t, dump.Edges, 2)

	s2, _ := Open(ctx, storage.NewMemoryBackend())
	require.NoError(t, ImportGraph(ctx, s2, dump))

	var kinds []NodeKind
	require.NoError(t, s2.ScanNodes(ctx, func(n *Node) error {
		kinds = append(kinds, n.Kind)
		return nil
	}))
	require.ElementsMatch(t, []NodeKind{NodeFile, NodeFunction, NodeFunction}, kinds)

	// Structure is isomorphic: the file has out-degree 1 (its Contains edge),
	// matching the source graph regardless of the new ids assigned.
	var fileID uint64
	require.NoError(t, s2.ScanNodes(ctx, func(n *Node) error {
		if n.Kind == NodeFile {
			fileID = n.ID
		}
		return nil
	}))
	out, err := s2.GetNeighbors(ctx, fileID, Outgoing, nil)
	require.NoError(t, err)
	require.Len(t, out, 1)
}
