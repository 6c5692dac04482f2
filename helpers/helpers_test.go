package helpers

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

func TestAddFileFunctionClassAndCalls(t *testing.T) {
	s, ctx := newTestStore(t)

	file, err := AddFile(ctx, s, "src/a.go", "go")
	require.NoError(t, err)

	caller, err := AddFunction(ctx, s, file, "caller")
	require.NoError(t, err)
	callee, err := AddFunction(ctx, s, file, "callee")
	require.NoError(t, err)

	_, err = RecordCall(ctx, s, caller, callee, 42)
	require.NoError(t, err)

	callees, err := Callees(ctx, s, caller)
	require.NoError(t, err)
	require.Equal(t, []uint64{callee}, callees)

	callers, err := Callers(ctx, s, callee)
	require.NoError(t, err)
	require.Equal(t, []uint64{caller}, callers)

	fns, err := FunctionsInFile(ctx, s, file)
	require.NoError(t, err)
	require.ElementsMatch(t, []uint64{caller, callee}, fns)
}

func TestDependenciesAndTransitiveClosure(t *testing.T) {
	s, ctx := newTestStore(t)

	a, _ := AddFile(ctx, s, "a.go", "go")
	b, _ := AddFile(ctx, s, "b.go", "go")
	c, _ := AddFile(ctx, s, "c.go", "go")

	_, err := RecordImport(ctx, s, a, b, nil)
	require.NoError(t, err)
	_, err = RecordImport(ctx, s, b, c, nil)
	require.NoError(t, err)

	deps, err := Dependencies(ctx, s, a)
	require.NoError(t, err)
	require.Equal(t, []uint64{b}, deps)

	transitive, err := TransitiveDependencies(ctx, s, a, nil)
	require.NoError(t, err)
	require.ElementsMatch(t, []uint64{b, c}, transitive)

	dependents, err := TransitiveDependents(ctx, s, c, nil)
	require.NoError(t, err)
	require.ElementsMatch(t, []uint64{a, b}, dependents)
}

func TestCircularDependenciesViaHelper(t *testing.T) {
	s, ctx := newTestStore(t)

	a, _ := AddFile(ctx, s, "a.go", "go")
	b, _ := AddFile(ctx, s, "b.go", "go")

	_, err := RecordImport(ctx, s, a, b, nil)
	require.NoError(t, err)
	_, err = RecordImport(ctx, s, b, a, nil)
	require.NoError(t, err)

	cycles, err := CircularDependencies(ctx, s)
	require.NoError(t, err)
	require.Len(t, cycles, 1)
	require.ElementsMatch(t, []uint64{a, b}, cycles[0])
}

func TestAddClassLinkedToFile(t *testing.T) {
	s, ctx := newTestStore(t)
	file, _ := AddFile(ctx, s, "a.go", "go")

	cls, err := AddClass(ctx, s, file, "Widget")
	require.NoError(t, err)

	containsKind := graph.EdgeContains
	contained, err := s.GetNeighbors(ctx, file, graph.Outgoing, &containsKind)
	require.NoError(t, err)
	require.Equal(t, []uint64{cls}, contained)
}
