package ir

import (
	"context"
	"testing"
	"time"

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

func TestMapBasicFile(t *testing.T) {
	s, ctx := newTestStore(t)
	m := New(s)

	file := FileIR{
		Path:     "src/a.go",
		Language: "go",
		Functions: []FunctionDescriptor{
			{Name: "alpha", StartLine: 1, EndLine: 5},
			{Name: "beta", StartLine: 7, EndLine: 12},
		},
		Calls: []CallRelationship{
			{Caller: "alpha", Callee: "beta", Line: 3},
		},
	}

	summary, err := m.Map(ctx, file, 10*time.Millisecond)
	require.NoError(t, err)
	require.NotZero(t, summary.FileNodeID)
	require.Len(t, summary.FunctionIDs, 2)

	fileNode, err := s.GetNode(ctx, summary.FileNodeID)
	require.NoError(t, err)
	require.Equal(t, graph.NodeFile, fileNode.Kind)
	require.Equal(t, "src/a.go", fileNode.Props.StringOr("path", ""))

	callsKind := graph.EdgeCalls
	var callerID uint64
	for _, id := range summary.FunctionIDs {
		n, err := s.GetNode(ctx, id)
		require.NoError(t, err)
		if n.Props.StringOr("name", "") == "alpha" {
			callerID = id
		}
	}
	require.NotZero(t, callerID)
	callees, err := s.GetNeighbors(ctx, callerID, graph.Outgoing, &callsKind)
	require.NoError(t, err)
	require.Len(t, callees, 1)
}

func TestMapUpsertsExistingFile(t *testing.T) {
	s, ctx := newTestStore(t)
	m := New(s)

	file1 := FileIR{Path: "src/a.go", Language: "go", Functions: []FunctionDescriptor{{Name: "one"}}}
	s1, err := m.Map(ctx, file1, 0)
	require.NoError(t, err)

	file2 := FileIR{Path: "src/a.go", Language: "go", Functions: []FunctionDescriptor{{Name: "two"}}}
	s2, err := m.Map(ctx, file2, 0)
	require.NoError(t, err)

	require.Equal(t, s1.FileNodeID, s2.FileNodeID, "mapping the same path twice must reuse the File node")
}

func TestMapImportCreatesExternalModule(t *testing.T) {
	s, ctx := newTestStore(t)
	m := New(s)

	file := FileIR{
		Path:     "src/a.go",
		Language: "go",
		Imports: []ImportRelationship{
			{Importer: "src/a.go", Imported: "fmt", IsExternal: true},
		},
	}

	summary, err := m.Map(ctx, file, 0)
	require.NoError(t, err)
	require.Len(t, summary.ModuleIDs, 1)

	mod, err := s.GetNode(ctx, summary.ModuleIDs[0])
	require.NoError(t, err)
	v, ok := mod.Props.Get("is_external")
	require.True(t, ok)
	require.True(t, v.Bool)

	importsKind := graph.EdgeImports
	targets, err := s.GetNeighbors(ctx, summary.FileNodeID, graph.Outgoing, &importsKind)
	require.NoError(t, err)
	require.Equal(t, summary.ModuleIDs, targets)
}

func TestMapClassWithMethodsAndInheritance(t *testing.T) {
	s, ctx := newTestStore(t)
	m := New(s)

	file := FileIR{
		Path:     "src/shapes.go",
		Language: "go",
		Classes: []ClassDescriptor{
			{
				Name:      "Circle",
				BaseClasses: []string{"Shape"},
				Methods:   []FunctionDescriptor{{Name: "Area"}},
			},
		},
		Inheritances: []InheritanceRelationship{
			{Child: "Circle", Parent: "Shape"},
		},
	}

	summary, err := m.Map(ctx, file, 0)
	require.NoError(t, err)
	require.Len(t, summary.ClassIDs, 2) // Circle + external Shape placeholder
	require.Len(t, summary.FunctionIDs, 1)

	containsKind := graph.EdgeContains
	var circleID uint64
	for _, id := range summary.ClassIDs {
		n, _ := s.GetNode(ctx, id)
		if n.Props.StringOr("name", "") == "Circle" {
			circleID = id
		}
	}
	require.NotZero(t, circleID)
	methods, err := s.GetNeighbors(ctx, circleID, graph.Outgoing, &containsKind)
	require.NoError(t, err)
	require.Len(t, methods, 1)

	extendsKind := graph.EdgeExtends
	parents, err := s.GetNeighbors(ctx, circleID, graph.Outgoing, &extendsKind)
	require.NoError(t, err)
	require.Len(t, parents, 1)
}

func TestMapCarriesFileAttributesAndParameters(t *testing.T) {
	s, ctx := newTestStore(t)
	m := New(s)

	file := FileIR{
		Path:     "src/a.go",
		Language: "go",
		Module:   &ModuleDescriptor{Name: "a", LineCount: 40, Attributes: []string{"generated"}},
		Functions: []FunctionDescriptor{
			{
				Name: "alpha",
				Parameters: []Parameter{
					{Name: "x", Type: "int"},
					{Name: "y", Type: "string", Default: `"z"`},
					{Name: "bare"},
				},
			},
		},
	}

	summary, err := m.Map(ctx, file, 0)
	require.NoError(t, err)

	fileNode, err := s.GetNode(ctx, summary.FileNodeID)
	require.NoError(t, err)
	attrsVal, ok := fileNode.Props.Get("attributes")
	require.True(t, ok)
	require.Equal(t, []string{"generated"}, attrsVal.StrList)

	require.Len(t, summary.FunctionIDs, 1)
	fn, err := s.GetNode(ctx, summary.FunctionIDs[0])
	require.NoError(t, err)
	paramsVal, ok := fn.Props.Get("parameters")
	require.True(t, ok)
	require.Equal(t, []string{"x:int", `y:string="z"`, "bare"}, paramsVal.StrList)
}

func TestMapWiresFileModulesAsModuleNodes(t *testing.T) {
	s, ctx := newTestStore(t)
	m := New(s)

	file := FileIR{
		Path:     "src/a.go",
		Language: "go",
		Modules: []ModuleDescriptor{
			{Name: "sub", Path: "src/a/sub.go", Language: "go", LineCount: 12, Documentation: "nested module"},
		},
		Imports: []ImportRelationship{
			{Importer: "src/a.go", Imported: "sub", IsExternal: false},
		},
	}

	summary, err := m.Map(ctx, file, 0)
	require.NoError(t, err)
	require.Len(t, summary.ModuleIDs, 1, "a Module node from file.Modules and its reuse by an import must not double-count")

	mod, err := s.GetNode(ctx, summary.ModuleIDs[0])
	require.NoError(t, err)
	require.Equal(t, "sub", mod.Props.StringOr("name", ""))
	require.Equal(t, "src/a/sub.go", mod.Props.StringOr("path", ""))
	require.Equal(t, "nested module", mod.Props.StringOr("documentation", ""))
	v, ok := mod.Props.Get("is_external")
	require.True(t, ok)
	require.False(t, v.Bool, "a module described in file.Modules is not an external placeholder")

	containsKind := graph.EdgeContains
	contained, err := s.GetNeighbors(ctx, summary.FileNodeID, graph.Outgoing, &containsKind)
	require.NoError(t, err)
	require.Contains(t, contained, summary.ModuleIDs[0])

	importsKind := graph.EdgeImports
	imported, err := s.GetNeighbors(ctx, summary.FileNodeID, graph.Outgoing, &importsKind)
	require.NoError(t, err)
	require.Equal(t, summary.ModuleIDs, imported, "the import must resolve to the same Module node file.Modules created")
}

func TestBatchAddGraphRejectsUnknownEndpointAtomically(t *testing.T) {
	s, ctx := newTestStore(t)

	before := 0
	require.NoError(t, s.ScanNodes(ctx, func(*graph.Node) error { before++; return nil }))

	nodes := []graph.NodeInput{{Kind: graph.NodeFunction}}
	edges := []graph.GraphEdgeInput{
		{Source: graph.NewNodeRef(0), Target: graph.ExistingNode(9999), Kind: graph.EdgeCalls},
	}
	_, _, err := s.BatchAddGraph(ctx, nodes, edges)
	require.Error(t, err)

	after := 0
	require.NoError(t, s.ScanNodes(ctx, func(*graph.Node) error { after++; return nil }))
	require.Equal(t, before, after, "a rejected BatchAddGraph must not leave a partially-created node behind")
}
