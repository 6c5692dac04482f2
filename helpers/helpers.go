/*
Package helpers implements the convenience layer (C8): thin functions
on top of graph.Store, algo and query that simplify common front-end
and reporting tasks. They define no new invariants (§4.8).
*/
package helpers

import (
	"context"

	"github.com/anvanster/codegraph/algo"
	"github.com/anvanster/codegraph/graph"
)

/*
AddFile creates a File node with path and language properties.
*/
func AddFile(ctx context.Context, s *graph.Store, path, language string) (uint64, error) {
	props := graph.NewPropertyMap()
	props.Set("path", graph.StringValue(path))
	props.Set("language", graph.StringValue(language))
	return s.AddNode(ctx, graph.NodeFile, props)
}

/*
AddFunction creates a Function node named name and links it to file with
a Contains edge.
*/
func AddFunction(ctx context.Context, s *graph.Store, file uint64, name string) (uint64, error) {
	props := graph.NewPropertyMap()
	props.Set("name", graph.StringValue(name))
	fn, err := s.AddNode(ctx, graph.NodeFunction, props)
	if err != nil {
		return 0, err
	}
	if _, err := s.AddEdge(ctx, file, fn, graph.EdgeContains, nil); err != nil {
		return 0, err
	}
	return fn, nil
}

/*
AddClass creates a Class node named name and links it to file with a
Contains edge.
*/
func AddClass(ctx context.Context, s *graph.Store, file uint64, name string) (uint64, error) {
	props := graph.NewPropertyMap()
	props.Set("name", graph.StringValue(name))
	cls, err := s.AddNode(ctx, graph.NodeClass, props)
	if err != nil {
		return 0, err
	}
	if _, err := s.AddEdge(ctx, file, cls, graph.EdgeContains, nil); err != nil {
		return 0, err
	}
	return cls, nil
}

/*
RecordCall adds a Calls edge from caller to callee carrying the
call-site line.
*/
func RecordCall(ctx context.Context, s *graph.Store, caller, callee uint64, line int) (uint64, error) {
	props := graph.NewPropertyMap()
	props.Set("line", graph.Int64Value(int64(line)))
	return s.AddEdge(ctx, caller, callee, graph.EdgeCalls, props)
}

/*
RecordImport adds an Imports edge from file to module carrying the
imported symbol list.
*/
func RecordImport(ctx context.Context, s *graph.Store, file, module uint64, symbols []string) (uint64, error) {
	props := graph.NewPropertyMap()
	props.Set("symbols", graph.StringListValue(symbols))
	return s.AddEdge(ctx, file, module, graph.EdgeImports, props)
}

/*
Callers returns the ids of every node with an outgoing Calls edge into fn.
*/
func Callers(ctx context.Context, s *graph.Store, fn uint64) ([]uint64, error) {
	kind := graph.EdgeCalls
	return s.GetNeighbors(ctx, fn, graph.Incoming, &kind)
}

/*
Callees returns the ids of every node fn has an outgoing Calls edge to.
*/
func Callees(ctx context.Context, s *graph.Store, fn uint64) ([]uint64, error) {
	kind := graph.EdgeCalls
	return s.GetNeighbors(ctx, fn, graph.Outgoing, &kind)
}

/*
FunctionsInFile returns the ids of every Function node reachable from
file via a direct Contains edge.
*/
func FunctionsInFile(ctx context.Context, s *graph.Store, file uint64) ([]uint64, error) {
	kind := graph.EdgeContains
	contained, err := s.GetNeighbors(ctx, file, graph.Outgoing, &kind)
	if err != nil {
		return nil, err
	}
	var out []uint64
	for _, id := range contained {
		n, err := s.GetNode(ctx, id)
		if err != nil {
			continue
		}
		if n.Kind == graph.NodeFunction {
			out = append(out, id)
		}
	}
	return out, nil
}

/*
Dependencies returns the ids of every file directly imported by file.
*/
func Dependencies(ctx context.Context, s *graph.Store, file uint64) ([]uint64, error) {
	kind := graph.EdgeImports
	return s.GetNeighbors(ctx, file, graph.Outgoing, &kind)
}

/*
Dependents returns the ids of every file that directly imports file.
*/
func Dependents(ctx context.Context, s *graph.Store, file uint64) ([]uint64, error) {
	kind := graph.EdgeImports
	return s.GetNeighbors(ctx, file, graph.Incoming, &kind)
}

/*
TransitiveDependencies returns every file transitively reachable from
file via Imports edges, up to maxDepth (nil = unbounded).
*/
func TransitiveDependencies(ctx context.Context, s *graph.Store, file uint64, maxDepth *int) ([]uint64, error) {
	disc, err := algo.TransitiveClosure(ctx, s, file, []graph.EdgeKind{graph.EdgeImports}, graph.Outgoing, maxDepth)
	if err != nil {
		return nil, err
	}
	return dropSource(disc, file), nil
}

/*
TransitiveDependents returns every file that transitively imports file,
up to maxDepth (nil = unbounded).
*/
func TransitiveDependents(ctx context.Context, s *graph.Store, file uint64, maxDepth *int) ([]uint64, error) {
	disc, err := algo.TransitiveClosure(ctx, s, file, []graph.EdgeKind{graph.EdgeImports}, graph.Incoming, maxDepth)
	if err != nil {
		return nil, err
	}
	return dropSource(disc, file), nil
}

func dropSource(disc []algo.Discovery, source uint64) []uint64 {
	out := make([]uint64, 0, len(disc))
	for _, d := range disc {
		if d.ID != source {
			out = append(out, d.ID)
		}
	}
	return out
}

/*
CircularDependencies extracts every import cycle in the graph.
*/
func CircularDependencies(ctx context.Context, s *graph.Store) ([][]uint64, error) {
	return algo.CircularDeps(ctx, s)
}
