package graph

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	cgerrors "github.com/anvanster/codegraph/errors"
	"github.com/anvanster/codegraph/storage"
)

func newTestStore(t *testing.T) (*Store, context.Context) {
	ctx := context.Background()
	backend := storage.NewMemoryBackend()
	s, err := Open(ctx, backend)
	require.NoError(t, err)
	return s, ctx
}

func nameProps(name string) *PropertyMap {
	p := NewPropertyMap()
	p.Set("name", StringValue(name))
	return p
}

/*
failingBackend wraps a real storage.Backend and fails every WriteBatch
call with err, leaving reads and the wrapped backend's own state
untouched. Used to exercise a genuine backend commit-time failure,
as opposed to a validation error caught before WriteBatch is ever
called.
*/
type failingBackend struct {
	storage.Backend
	err error
}

func (b *failingBackend) WriteBatch(ctx context.Context, muts []storage.Mutation) error {
	return b.err
}

/*
TestMinimalStore covers scenario 1 of spec §8: a File node, a Function
node, a Contains edge, and the neighbor queries both ends expect.
*/
func TestMinimalStore(t *testing.T) {
	s, ctx := newTestStore(t)

	fileProps := NewPropertyMap()
	fileProps.Set("path", StringValue("a.rs"))
	n1, err := s.AddNode(ctx, NodeFile, fileProps)
	require.NoError(t, err)

	fnProps := NewPropertyMap()
	fnProps.Set("name", StringValue("main"))
	fnProps.Set("line_start", Int64Value(1))
	fnProps.Set("line_end", Int64Value(10))
	n2, err := s.AddNode(ctx, NodeFunction, fnProps)
	require.NoError(t, err)

	e1, err := s.AddEdge(ctx, n1, n2, EdgeContains, nil)
	require.NoError(t, err)
	require.NotZero(t, e1)

	out, err := s.GetNeighbors(ctx, n1, Outgoing, nil)
	require.NoError(t, err)
	require.Equal(t, []uint64{n2}, out)

	in, err := s.GetNeighbors(ctx, n2, Incoming, nil)
	require.NoError(t, err)
	require.Equal(t, []uint64{n1}, in)
}

/*
TestCascadingDelete covers scenario 2: deleting a node removes every
incident edge in the same atomic unit (I1), leaving unrelated nodes
untouched.
*/
func TestCascadingDelete(t *testing.T) {
	s, ctx := newTestStore(t)

	n1, _ := s.AddNode(ctx, NodeFile, nameProps("a.rs"))
	n2, _ := s.AddNode(ctx, NodeFunction, nameProps("main"))
	n3, _ := s.AddNode(ctx, NodeFunction, nameProps("helper"))

	e1, _ := s.AddEdge(ctx, n1, n2, EdgeContains, nil)
	_, err := s.AddEdge(ctx, n2, n3, EdgeCalls, nil)
	require.NoError(t, err)

	require.NoError(t, s.DeleteNode(ctx, n2))

	_, err = s.GetNode(ctx, n2)
	require.ErrorIs(t, err, cgerrors.ErrNotFound)

	_, err = s.GetEdge(ctx, e1)
	require.ErrorIs(t, err, cgerrors.ErrNotFound)

	_, err = s.GetNode(ctx, n3)
	require.NoError(t, err)

	out, err := s.GetNeighbors(ctx, n1, Outgoing, nil)
	require.NoError(t, err)
	require.Empty(t, out)
}

func TestDoubleDeleteReturnsNotFound(t *testing.T) {
	s, ctx := newTestStore(t)

	n1, _ := s.AddNode(ctx, NodeFile, nameProps("a.rs"))
	require.NoError(t, s.DeleteNode(ctx, n1))

	err := s.DeleteNode(ctx, n1)
	require.ErrorIs(t, err, cgerrors.ErrNotFound)
}

func TestAddEdgeMissingEndpoint(t *testing.T) {
	s, ctx := newTestStore(t)

	n1, _ := s.AddNode(ctx, NodeFile, nameProps("a.rs"))

	_, err := s.AddEdge(ctx, n1, 9999, EdgeContains, nil)
	require.ErrorIs(t, err, cgerrors.ErrNotFound)
}

func TestIDsStrictlyIncreasing(t *testing.T) {
	s, ctx := newTestStore(t)

	n1, _ := s.AddNode(ctx, NodeFile, nil)
	n2, _ := s.AddNode(ctx, NodeFile, nil)
	require.Greater(t, n2, n1)

	require.NoError(t, s.DeleteNode(ctx, n1))
	n3, _ := s.AddNode(ctx, NodeFile, nil)
	require.Greater(t, n3, n2)
}

func TestSelfLoop(t *testing.T) {
	s, ctx := newTestStore(t)

	n1, _ := s.AddNode(ctx, NodeFunction, nameProps("recurse"))
	_, err := s.AddEdge(ctx, n1, n1, EdgeCalls, nil)
	require.NoError(t, err)

	out, _ := s.GetNeighbors(ctx, n1, Outgoing, nil)
	require.Equal(t, []uint64{n1}, out)

	in, _ := s.GetNeighbors(ctx, n1, Incoming, nil)
	require.Equal(t, []uint64{n1}, in)
}

func TestParallelEdgesDistinct(t *testing.T) {
	s, ctx := newTestStore(t)

	n1, _ := s.AddNode(ctx, NodeFunction, nameProps("a"))
	n2, _ := s.AddNode(ctx, NodeFunction, nameProps("b"))

	e1, _ := s.AddEdge(ctx, n1, n2, EdgeCalls, nil)
	e2, _ := s.AddEdge(ctx, n1, n2, EdgeCalls, nil)
	require.NotEqual(t, e1, e2)

	ids, err := s.GetEdgesBetween(ctx, n1, n2, nil)
	require.NoError(t, err)
	require.ElementsMatch(t, []uint64{e1, e2}, ids)
}

func TestBatchAddAtomicFailureLeavesStateUnchanged(t *testing.T) {
	s, ctx := newTestStore(t)

	n1, _ := s.AddNode(ctx, NodeFile, nil)

	_, err := s.BatchAddEdges(ctx, []EdgeInput{
		{Source: n1, Target: n1, Kind: EdgeContains},
		{Source: n1, Target: 9999, Kind: EdgeContains}, // bad target aborts whole batch
	})
	require.Error(t, err)

	ids, err := s.GetEdgesBetween(ctx, n1, n1, nil)
	require.NoError(t, err)
	require.Empty(t, ids, "a failed batch must not leave partial edges")
}

/*
TestWriteBatchFailureLeavesStoreUnchanged covers scenario 5 of spec §8:
a genuine backend commit failure (as opposed to a pre-batch validation
error) must surface as batch-failed and leave the in-memory node/edge
counts and id watermarks exactly as they were before the call.
*/
func TestWriteBatchFailureLeavesStoreUnchanged(t *testing.T) {
	ctx := context.Background()
	backend := storage.NewMemoryBackend()
	s, err := Open(ctx, backend)
	require.NoError(t, err)

	n1, err := s.AddNode(ctx, NodeFile, nil)
	require.NoError(t, err)

	injected := errors.New("disk full")
	s.backend = &failingBackend{Backend: backend, err: injected}

	_, err = s.AddNode(ctx, NodeFunction, nil)
	require.Error(t, err)
	require.True(t, cgerrors.Is(err, cgerrors.ErrBatchFailed), "a backend WriteBatch failure must surface as batch-failed")

	count := 0
	require.NoError(t, s.ScanNodes(ctx, func(*Node) error { count++; return nil }))
	require.Equal(t, 1, count, "a failed batch must not leave a partially-added node behind")

	s.backend = backend
	n2, err := s.AddNode(ctx, NodeFile, nil)
	require.NoError(t, err)
	require.Equal(t, n1+1, n2, "the id watermark must not have advanced past the failed attempt")
}

func TestReopenFidelity(t *testing.T) {
	ctx := context.Background()
	backend := storage.NewMemoryBackend()

	s1, err := Open(ctx, backend)
	require.NoError(t, err)

	n1, _ := s1.AddNode(ctx, NodeFile, nameProps("a.rs"))
	n2, _ := s1.AddNode(ctx, NodeFunction, nameProps("main"))
	_, _ = s1.AddEdge(ctx, n1, n2, EdgeContains, nil)
	require.NoError(t, s1.Close())

	s2, err := Open(ctx, backend)
	require.NoError(t, err)

	out, err := s2.GetNeighbors(ctx, n1, Outgoing, nil)
	require.NoError(t, err)
	require.Equal(t, []uint64{n2}, out)

	n3, err := s2.AddNode(ctx, NodeFile, nil)
	require.NoError(t, err)
	require.Greater(t, n3, n2)
}

func TestUpdateNodeLastWriteWins(t *testing.T) {
	s, ctx := newTestStore(t)

	p := NewPropertyMap()
	p.Set("name", StringValue("foo"))
	n1, _ := s.AddNode(ctx, NodeFunction, p)

	p2 := NewPropertyMap()
	p2.Set("name", StringValue("bar"))
	require.NoError(t, s.UpdateNode(ctx, n1, p2))

	got, err := s.GetNode(ctx, n1)
	require.NoError(t, err)
	require.Equal(t, "bar", got.Props.StringOr("name", ""))
}

func TestClearResetsGraphAndIDWatermarks(t *testing.T) {
	s, ctx := newTestStore(t)

	file, _ := s.AddNode(ctx, NodeFile, nameProps("a.go"))
	fn, _ := s.AddNode(ctx, NodeFunction, nameProps("Foo"))
	_, _ = s.AddEdge(ctx, file, fn, EdgeContains, nil)

	require.NoError(t, s.Clear(ctx))

	count := 0
	require.NoError(t, s.ScanNodes(ctx, func(*Node) error { count++; return nil }))
	require.Equal(t, 0, count)
	require.NoError(t, s.ScanEdges(ctx, func(*Edge) error { count++; return nil }))
	require.Equal(t, 0, count)

	newID, err := s.AddNode(ctx, NodeFile, nil)
	require.NoError(t, err)
	require.Equal(t, uint64(1), newID, "id allocator must restart from its initial watermark after Clear")
}
