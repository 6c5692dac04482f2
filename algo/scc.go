package algo

import (
	"context"

	"github.com/anvanster/codegraph/graph"
)

/*
SCC returns the strongly-connected components of the graph (or, if nodes
is non-nil, of the subgraph induced by those node ids), following only
outgoing edges whose kind is in edgeKinds (empty/nil = every kind).
Components are returned as ordered lists; a component of size >= 2, or a
single node with a self-loop, indicates a cycle (§4.3, P8).

Implemented as Tarjan's algorithm with an explicit work stack instead of
recursion, so it tolerates graphs of arbitrary depth without blowing the
call stack (§4.3's "must not recurse unboundedly" requirement).
*/
func SCC(ctx context.Context, s *graph.Store, nodes []uint64, edgeKinds []graph.EdgeKind) ([][]uint64, error) {
	var nodeList []uint64
	var allowed map[uint64]bool

	if nodes != nil {
		nodeList = nodes
		allowed = make(map[uint64]bool, len(nodes))
		for _, n := range nodes {
			allowed[n] = true
		}
	} else {
		if err := s.ScanNodes(ctx, func(n *graph.Node) error {
			nodeList = append(nodeList, n.ID)
			return nil
		}); err != nil {
			return nil, err
		}
	}

	t := &tarjan{
		s:         s,
		ctx:       ctx,
		edgeKinds: edgeKinds,
		allowed:   allowed,
		indices:  make(map[uint64]int),
		lowlink:  make(map[uint64]int),
		onStack:  make(map[uint64]bool),
	}

	for _, v := range nodeList {
		if _, ok := t.indices[v]; ok {
			continue
		}
		if err := t.strongConnect(v); err != nil {
			return nil, err
		}
	}

	return t.components, nil
}

type tarjan struct {
	s         *graph.Store
	ctx       context.Context
	edgeKinds []graph.EdgeKind
	allowed   map[uint64]bool // nil = every node allowed

	index      int
	indices    map[uint64]int
	lowlink    map[uint64]int
	onStack    map[uint64]bool
	stack      []uint64
	components [][]uint64
}

type tarjanFrame struct {
	v         uint64
	neighbors []uint64
	i         int
}

/*
neighbors returns the outgoing neighbors of v, unioned (and deduplicated)
across edgeKinds, or every kind if edgeKinds is empty.
*/
func (t *tarjan) neighbors(v uint64) ([]uint64, error) {
	if len(t.edgeKinds) == 0 {
		return t.s.GetNeighbors(t.ctx, v, graph.Outgoing, nil)
	}

	seen := map[uint64]bool{}
	var out []uint64
	for i := range t.edgeKinds {
		ns, err := t.s.GetNeighbors(t.ctx, v, graph.Outgoing, &t.edgeKinds[i])
		if err != nil {
			return nil, err
		}
		for _, n := range ns {
			if !seen[n] {
				seen[n] = true
				out = append(out, n)
			}
		}
	}
	return out, nil
}

/*
strongConnect runs Tarjan's algorithm from root using an explicit frame
stack to simulate the recursive calls of the textbook formulation.
*/
func (t *tarjan) strongConnect(root uint64) error {
	var work []*tarjanFrame

	push := func(v uint64) error {
		t.indices[v] = t.index
		t.lowlink[v] = t.index
		t.index++
		t.stack = append(t.stack, v)
		t.onStack[v] = true

		neighbors, err := t.neighbors(v)
		if err != nil {
			return err
		}
		if t.allowed != nil {
			filtered := neighbors[:0:0]
			for _, n := range neighbors {
				if t.allowed[n] {
					filtered = append(filtered, n)
				}
			}
			neighbors = filtered
		}
		work = append(work, &tarjanFrame{v: v, neighbors: neighbors})
		return nil
	}

	if err := push(root); err != nil {
		return err
	}

	for len(work) > 0 {
		f := work[len(work)-1]

		if f.i < len(f.neighbors) {
			w := f.neighbors[f.i]
			f.i++

			if _, ok := t.indices[w]; !ok {
				if err := push(w); err != nil {
					return err
				}
				continue
			} else if t.onStack[w] {
				if t.lowlink[w] < t.lowlink[f.v] {
					t.lowlink[f.v] = t.lowlink[w]
				}
			}
			continue
		}

		// All neighbors processed: pop this frame and propagate lowlink
		// to the parent, emitting a component if f.v is a root.
		work = work[:len(work)-1]

		if t.lowlink[f.v] == t.indices[f.v] {
			var comp []uint64
			for {
				n := len(t.stack) - 1
				w := t.stack[n]
				t.stack = t.stack[:n]
				t.onStack[w] = false
				comp = append(comp, w)
				if w == f.v {
					break
				}
			}
			t.components = append(t.components, comp)
		}

		if len(work) > 0 {
			parent := work[len(work)-1]
			if t.lowlink[f.v] < t.lowlink[parent.v] {
				t.lowlink[parent.v] = t.lowlink[f.v]
			}
		}
	}

	return nil
}
