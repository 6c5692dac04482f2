/*
Package query implements the fluent query builder (C4): a composable
filter chain over graph.Store producing a sequence of node ids, with a
fixed pushdown execution order so user predicates never run before
type/property filters have reduced the candidate set (§4.4).
*/
package query

import (
	"context"
	"strings"

	"github.com/gobwas/glob"

	cgerrors "github.com/anvanster/codegraph/errors"
	"github.com/anvanster/codegraph/graph"
)

/*
stage identifies which pushdown tier a filter belongs to; filters run in
ascending stage order regardless of the order Where* was called in,
per §4.4's "implementations must not run user predicates before
type/property filters have reduced the set".
*/
type stage int

const (
	stageDiscriminator stage = iota
	stageProperty
	stageFile
	stagePredicate
)

type filter struct {
	stage stage
	match func(ctx context.Context, s *graph.Store, n *graph.Node) (bool, error)
}

/*
Query is a composable, reusable filter chain. Build one with New, add
filters with the Where* methods (each returns the same *Query for
chaining), and run it with Execute, Count or Exists.
*/
type Query struct {
	s       *graph.Store
	filters []filter
	limit   int
}

/*
New starts a query over s with no filters (matches every node).
*/
func New(s *graph.Store) *Query {
	return &Query{s: s}
}

func (q *Query) add(st stage, match func(context.Context, *graph.Store, *graph.Node) (bool, error)) *Query {
	q.filters = append(q.filters, filter{stage: st, match: match})
	return q
}

/*
WhereKind keeps only nodes of the given discriminator. Runs first in
pushdown stage order (§4.4): every later filter only ever evaluates
nodes this one has already let through, regardless of the order Where*
was called in.
*/
func (q *Query) WhereKind(kind graph.NodeKind) *Query {
	return q.add(stageDiscriminator, func(_ context.Context, _ *graph.Store, n *graph.Node) (bool, error) {
		return n.Kind == kind, nil
	})
}

/*
WhereProperty keeps nodes whose property key has an exact value match.
*/
func (q *Query) WhereProperty(key string, value graph.Value) *Query {
	return q.add(stageProperty, func(_ context.Context, _ *graph.Store, n *graph.Node) (bool, error) {
		v, ok := n.Props.Get(key)
		return ok && v.Equal(value), nil
	})
}

/*
WhereNameContains keeps nodes whose "name" property contains substr.
*/
func (q *Query) WhereNameContains(substr string) *Query {
	return q.add(stageProperty, func(_ context.Context, _ *graph.Store, n *graph.Node) (bool, error) {
		name := n.Props.StringOr("name", "")
		return strings.Contains(name, substr), nil
	})
}

/*
WherePropertyExists keeps nodes that have key set, regardless of value.
*/
func (q *Query) WherePropertyExists(key string) *Query {
	return q.add(stageProperty, func(_ context.Context, _ *graph.Store, n *graph.Node) (bool, error) {
		_, ok := n.Props.Get(key)
		return ok, nil
	})
}

/*
WhereNameMatches keeps nodes whose "name" property matches pattern.
pattern is anchor-aware: a leading "^" requires a prefix match, a
trailing "$" requires a suffix match, both together require an exact
match, and neither requires only a substring match.
*/
func (q *Query) WhereNameMatches(pattern string) *Query {
	return q.add(stageProperty, func(_ context.Context, _ *graph.Store, n *graph.Node) (bool, error) {
		name := n.Props.StringOr("name", "")
		return nameMatchesPattern(pattern, name), nil
	})
}

func nameMatchesPattern(pattern, name string) bool {
	anchoredStart := strings.HasPrefix(pattern, "^")
	anchoredEnd := strings.HasSuffix(pattern, "$")
	pattern = strings.TrimSuffix(strings.TrimPrefix(pattern, "^"), "$")

	switch {
	case anchoredStart && anchoredEnd:
		return name == pattern
	case anchoredStart:
		return strings.HasPrefix(name, pattern)
	case anchoredEnd:
		return strings.HasSuffix(name, pattern)
	default:
		return strings.Contains(name, pattern)
	}
}

/*
WhereInFile keeps nodes contained (directly, via an incoming Contains
edge) by the File node at exactly path.
*/
func (q *Query) WhereInFile(path string) *Query {
	return q.add(stageFile, func(ctx context.Context, s *graph.Store, n *graph.Node) (bool, error) {
		return nodeFilePathMatches(ctx, s, n, func(p string) bool { return p == path })
	})
}

/*
WhereFilePattern keeps nodes whose containing File's path matches the
given glob pattern (e.g. a double-star pattern like src/** matching any
nested *.go file).
*/
func (q *Query) WhereFilePattern(pattern string) *Query {
	g, err := glob.Compile(pattern, '/')
	return q.add(stageFile, func(ctx context.Context, s *graph.Store, n *graph.Node) (bool, error) {
		if err != nil {
			return false, cgerrors.Wrap(cgerrors.ErrInvalidArgument, err, "compiling file pattern %q", pattern)
		}
		return nodeFilePathMatches(ctx, s, n, g.Match)
	})
}

/*
WherePredicate keeps nodes for which pred returns true. Runs last,
after every built-in filter has pruned the candidate set (§4.4).
*/
func (q *Query) WherePredicate(pred func(*graph.Node) bool) *Query {
	return q.add(stagePredicate, func(_ context.Context, _ *graph.Store, n *graph.Node) (bool, error) {
		return pred(n), nil
	})
}

/*
Limit caps the number of results Execute returns; it has no effect on
Count or Exists. A non-positive n is treated as no limit.
*/
func (q *Query) Limit(n int) *Query {
	q.limit = n
	return q
}

/*
nodeFilePathMatches resolves n's containing File (n itself, if n is a
File; otherwise the source of an incoming Contains edge) and tests its
"path" property with match.
*/
func nodeFilePathMatches(ctx context.Context, s *graph.Store, n *graph.Node, match func(string) bool) (bool, error) {
	if n.Kind == graph.NodeFile {
		return match(n.Props.StringOr("path", "")), nil
	}

	containsKind := graph.EdgeContains
	files, err := s.GetNeighbors(ctx, n.ID, graph.Incoming, &containsKind)
	if err != nil {
		return false, err
	}
	for _, fid := range files {
		file, err := s.GetNode(ctx, fid)
		if err != nil {
			continue
		}
		if file.Kind == graph.NodeFile && match(file.Props.StringOr("path", "")) {
			return true, nil
		}
	}
	return false, nil
}

/*
ordered returns the filters sorted into pushdown stage order, preserving
within-stage relative insertion order (stable sort).
*/
func (q *Query) ordered() []filter {
	byStage := make(map[stage][]filter)
	for _, f := range q.filters {
		byStage[f.stage] = append(byStage[f.stage], f)
	}
	var out []filter
	for st := stageDiscriminator; st <= stagePredicate; st++ {
		out = append(out, byStage[st]...)
	}
	return out
}

func (q *Query) matches(ctx context.Context, n *graph.Node) (bool, error) {
	for _, f := range q.ordered() {
		ok, err := f.match(ctx, q.s, n)
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}
	}
	return true, nil
}

/*
Execute runs the filter chain and returns every matching node id in
ascending id order.
*/
func (q *Query) Execute(ctx context.Context) ([]uint64, error) {
	var out []uint64
	err := q.s.ScanNodes(ctx, func(n *graph.Node) error {
		ok, err := q.matches(ctx, n)
		if err != nil {
			return err
		}
		if ok {
			out = append(out, n.ID)
			if q.limit > 0 && len(out) >= q.limit {
				return errStopScan
			}
		}
		return nil
	})
	if err != nil && err != errStopScan {
		return nil, err
	}
	return out, nil
}

/*
Count returns the number of matching nodes without building the id list.
*/
func (q *Query) Count(ctx context.Context) (int, error) {
	n := 0
	err := q.s.ScanNodes(ctx, func(node *graph.Node) error {
		ok, err := q.matches(ctx, node)
		if err != nil {
			return err
		}
		if ok {
			n++
		}
		return nil
	})
	return n, err
}

var errStopScan = cgerrors.New(cgerrors.ErrInvalidArgument, "internal: scan stopped early")

/*
Exists reports whether any node matches, short-circuiting on the first
by stopping the underlying scan as soon as it finds one.
*/
func (q *Query) Exists(ctx context.Context) (bool, error) {
	found := false
	err := q.s.ScanNodes(ctx, func(node *graph.Node) error {
		ok, err := q.matches(ctx, node)
		if err != nil {
			return err
		}
		if ok {
			found = true
			return errStopScan
		}
		return nil
	})
	if err != nil && err != errStopScan {
		return false, err
	}
	return found, nil
}
