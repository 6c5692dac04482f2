package graph

import (
	"context"
	"encoding/binary"
	"sync"

	cgerrors "github.com/anvanster/codegraph/errors"
	"github.com/anvanster/codegraph/internal/glog"
	"github.com/anvanster/codegraph/storage"
)

/*
CurrentSchemaVersion is written to m:schema-version when a new graph is
created and checked on every Open (§6.3).
*/
const CurrentSchemaVersion = 1

/*
Store is the graph store (C2): CRUD for typed nodes and edges on top of a
storage.Backend, an adjacency index kept coherent with every mutation,
and the two id allocators (§4.2). Single-writer, multi-reader per §5: mu
guards both the backend write and the index update as one logical step.
*/
type Store struct {
	mu      sync.RWMutex
	backend storage.Backend
	index   *adjacencyIndex

	nextNodeID uint64
	nextEdgeID uint64
}

/*
Open creates a Store over backend, reloading the adjacency index and id
watermarks from any existing data (§4.2 Reload). A freshly-created
backend gets its schema-version metadata written; an existing one with a
mismatched version fails to open (§6.3).
*/
func Open(ctx context.Context, backend storage.Backend) (*Store, error) {
	log := glog.Get("graph")

	s := &Store{backend: backend, index: newAdjacencyIndex(), nextNodeID: 1, nextEdgeID: 1}

	version, ok, err := backend.Get(ctx, []byte(metaSchemaVersion))
	if err != nil {
		return nil, cgerrors.Wrap(cgerrors.ErrStorage, err, "reading schema version")
	}

	if !ok {
		if err := backend.Put(ctx, []byte(metaSchemaVersion), encodeUint64(CurrentSchemaVersion)); err != nil {
			return nil, cgerrors.Wrap(cgerrors.ErrStorage, err, "writing schema version")
		}
	} else if decodeUint64(version) != CurrentSchemaVersion {
		return nil, cgerrors.New(cgerrors.ErrStorage, "schema version mismatch: store has %d, core expects %d",
			decodeUint64(version), CurrentSchemaVersion)
	}

	if err := s.reload(ctx); err != nil {
		return nil, err
	}

	log.Info().Uint64("next_node_id", s.nextNodeID).Uint64("next_edge_id", s.nextEdgeID).Msg("graph store opened")
	return s, nil
}

/*
reload rebuilds the adjacency index and id watermarks by scanning every
persisted node and edge (§4.2 Reload, P3).
*/
func (s *Store) reload(ctx context.Context) error {
	var maxNodeID, maxEdgeID uint64

	if err := s.backend.ScanPrefix(ctx, nodePrefix(), func(key, value []byte) error {
		id := decodeIDKey(key, prefixNode)
		if id > maxNodeID {
			maxNodeID = id
		}
		return nil
	}); err != nil {
		return cgerrors.Wrap(cgerrors.ErrStorage, err, "scanning nodes on reload")
	}

	if err := s.backend.ScanPrefix(ctx, edgePrefix(), func(key, value []byte) error {
		e, err := decodeEdge(value)
		if err != nil {
			return err
		}
		if e.ID > maxEdgeID {
			maxEdgeID = e.ID
		}
		s.index.addEdge(e)
		return nil
	}); err != nil {
		return cgerrors.Wrap(cgerrors.ErrStorage, err, "scanning edges on reload")
	}

	if v, ok, err := s.backend.Get(ctx, []byte(metaNextNodeID)); err == nil && ok {
		s.nextNodeID = decodeUint64(v)
	} else if maxNodeID > 0 {
		s.nextNodeID = maxNodeID + 1
	}

	if v, ok, err := s.backend.Get(ctx, []byte(metaNextEdgeID)); err == nil && ok {
		s.nextEdgeID = decodeUint64(v)
	} else if maxEdgeID > 0 {
		s.nextEdgeID = maxEdgeID + 1
	}

	if s.nextNodeID <= maxNodeID {
		s.nextNodeID = maxNodeID + 1
	}
	if s.nextEdgeID <= maxEdgeID {
		s.nextEdgeID = maxEdgeID + 1
	}

	return nil
}

func encodeUint64(v uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, v)
	return b
}

func decodeUint64(b []byte) uint64 {
	return binary.BigEndian.Uint64(b)
}

/*
AddNode allocates the next node id, persists the record and its updated
watermark in one batch, and returns the id. Never fails except on
storage error (§4.2).
*/
func (s *Store) AddNode(ctx context.Context, kind NodeKind, props *PropertyMap) (uint64, error) {
	if !kind.Valid() {
		return 0, cgerrors.New(cgerrors.ErrInvalidArgument, "unknown node kind %q", kind)
	}
	if props == nil {
		props = NewPropertyMap()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextNodeID
	n := &Node{ID: id, Kind: kind, Props: props}

	data, err := encodeNode(n)
	if err != nil {
		return 0, cgerrors.Wrap(cgerrors.ErrInvalidArgument, err, "encoding node")
	}

	muts := []storage.Mutation{
		storage.Put(nodeKey(id), data),
		storage.Put([]byte(metaNextNodeID), encodeUint64(id+1)),
	}
	if err := s.backend.WriteBatch(ctx, muts); err != nil {
		return 0, cgerrors.Wrap(cgerrors.ErrBatchFailed, err, "adding node")
	}

	s.nextNodeID = id + 1
	return id, nil
}

/*
GetNode fetches a node record. Returns ErrNotFound if absent.
*/
func (s *Store) GetNode(ctx context.Context, id uint64) (*Node, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.getNodeLocked(ctx, id)
}

func (s *Store) getNodeLocked(ctx context.Context, id uint64) (*Node, error) {
	data, ok, err := s.backend.Get(ctx, nodeKey(id))
	if err != nil {
		return nil, cgerrors.Wrap(cgerrors.ErrStorage, err, "fetching node %d", id)
	}
	if !ok {
		return nil, cgerrors.New(cgerrors.ErrNotFound, "node %d", id)
	}
	return decodeNode(data)
}

/*
UpdateNode replaces a node's properties atomically. ErrNotFound if absent.
*/
func (s *Store) UpdateNode(ctx context.Context, id uint64, props *PropertyMap) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, err := s.getNodeLocked(ctx, id)
	if err != nil {
		return err
	}
	existing.Props = props

	data, err := encodeNode(existing)
	if err != nil {
		return cgerrors.Wrap(cgerrors.ErrInvalidArgument, err, "encoding node")
	}

	if err := s.backend.WriteBatch(ctx, []storage.Mutation{storage.Put(nodeKey(id), data)}); err != nil {
		return cgerrors.Wrap(cgerrors.ErrBatchFailed, err, "updating node %d", id)
	}
	return nil
}

/*
DeleteNode atomically removes the node and every edge incident to it
(I1), updating the adjacency index only after the batch commits (§4.2).
*/
func (s *Store) DeleteNode(ctx context.Context, id uint64) error {
	log := glog.Get("graph")

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.getNodeLocked(ctx, id); err != nil {
		return err
	}

	incident := s.incidentEdgesLocked(ctx, id)

	muts := []storage.Mutation{storage.Delete(nodeKey(id))}
	for _, e := range incident {
		muts = append(muts, storage.Delete(edgeKey(e.ID)))
	}

	if err := s.backend.WriteBatch(ctx, muts); err != nil {
		return cgerrors.Wrap(cgerrors.ErrBatchFailed, err, "deleting node %d", id)
	}

	for _, e := range incident {
		s.index.removeEdge(e)
	}
	delete(s.index.outgoing, id)
	delete(s.index.incoming, id)

	if len(incident) > 0 {
		log.Debug().Uint64("node", id).Int("cascaded_edges", len(incident)).Msg("cascading delete")
	}
	return nil
}

/*
Clear deletes every node and edge in the store and resets both id
allocators back to their initial watermark, grounded on the original
CodeGraph's clear(): a destructive full reset for callers (test
harnesses, REPL-style tools) that want an empty graph without reopening
the backend. It is not transactional with respect to concurrent readers
started before it runs - like DeleteNode, it holds mu for its duration.
*/
func (s *Store) Clear(ctx context.Context) error {
	log := glog.Get("graph")

	s.mu.Lock()
	defer s.mu.Unlock()

	var muts []storage.Mutation
	nodeCount, edgeCount := 0, 0

	if err := s.backend.ScanPrefix(ctx, nodePrefix(), func(k, _ []byte) error {
		muts = append(muts, storage.Delete(append([]byte(nil), k...)))
		nodeCount++
		return nil
	}); err != nil {
		return cgerrors.Wrap(cgerrors.ErrStorage, err, "clearing nodes")
	}
	if err := s.backend.ScanPrefix(ctx, edgePrefix(), func(k, _ []byte) error {
		muts = append(muts, storage.Delete(append([]byte(nil), k...)))
		edgeCount++
		return nil
	}); err != nil {
		return cgerrors.Wrap(cgerrors.ErrStorage, err, "clearing edges")
	}

	muts = append(muts,
		storage.Put([]byte(metaNextNodeID), encodeUint64(1)),
		storage.Put([]byte(metaNextEdgeID), encodeUint64(1)),
	)

	if err := s.backend.WriteBatch(ctx, muts); err != nil {
		return cgerrors.Wrap(cgerrors.ErrBatchFailed, err, "clearing graph")
	}

	s.index = newAdjacencyIndex()
	s.nextNodeID = 1
	s.nextEdgeID = 1

	log.Info().Int("nodes", nodeCount).Int("edges", edgeCount).Msg("graph cleared")
	return nil
}

/*
incidentEdgesLocked resolves every edge (both directions, de-duplicated)
touching node, by id, reading full records from the backend. Caller must
hold mu.
*/
func (s *Store) incidentEdgesLocked(ctx context.Context, node uint64) []*Edge {
	seen := make(map[uint64]bool)
	var out []*Edge

	ids := s.index.edgesFor(node, Both, nil)
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		if e, err := s.getEdgeLocked(ctx, id); err == nil {
			out = append(out, e)
		}
	}
	return out
}

/*
AddEdge allocates the next edge id, validates both endpoints exist, and
persists the record with the updated watermark in one batch; the
adjacency index is updated only after that batch succeeds (§4.2).
*/
func (s *Store) AddEdge(ctx context.Context, source, target uint64, kind EdgeKind, props *PropertyMap) (uint64, error) {
	if !kind.Valid() {
		return 0, cgerrors.New(cgerrors.ErrInvalidArgument, "unknown edge kind %q", kind)
	}
	if props == nil {
		props = NewPropertyMap()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.getNodeLocked(ctx, source); err != nil {
		return 0, cgerrors.New(cgerrors.ErrNotFound, "edge source %d", source)
	}
	if _, err := s.getNodeLocked(ctx, target); err != nil {
		return 0, cgerrors.New(cgerrors.ErrNotFound, "edge target %d", target)
	}

	id := s.nextEdgeID
	e := &Edge{ID: id, Source: source, Target: target, Kind: kind, Props: props}

	data, err := encodeEdge(e)
	if err != nil {
		return 0, cgerrors.Wrap(cgerrors.ErrInvalidArgument, err, "encoding edge")
	}

	muts := []storage.Mutation{
		storage.Put(edgeKey(id), data),
		storage.Put([]byte(metaNextEdgeID), encodeUint64(id+1)),
	}
	if err := s.backend.WriteBatch(ctx, muts); err != nil {
		return 0, cgerrors.Wrap(cgerrors.ErrBatchFailed, err, "adding edge")
	}

	s.nextEdgeID = id + 1
	s.index.addEdge(e)
	return id, nil
}

/*
GetEdge fetches an edge record. Returns ErrNotFound if absent.
*/
func (s *Store) GetEdge(ctx context.Context, id uint64) (*Edge, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.getEdgeLocked(ctx, id)
}

func (s *Store) getEdgeLocked(ctx context.Context, id uint64) (*Edge, error) {
	data, ok, err := s.backend.Get(ctx, edgeKey(id))
	if err != nil {
		return nil, cgerrors.Wrap(cgerrors.ErrStorage, err, "fetching edge %d", id)
	}
	if !ok {
		return nil, cgerrors.New(cgerrors.ErrNotFound, "edge %d", id)
	}
	return decodeEdge(data)
}

/*
UpdateEdge replaces an edge's properties atomically. ErrNotFound if absent.
*/
func (s *Store) UpdateEdge(ctx context.Context, id uint64, props *PropertyMap) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, err := s.getEdgeLocked(ctx, id)
	if err != nil {
		return err
	}
	existing.Props = props

	data, err := encodeEdge(existing)
	if err != nil {
		return cgerrors.Wrap(cgerrors.ErrInvalidArgument, err, "encoding edge")
	}

	if err := s.backend.WriteBatch(ctx, []storage.Mutation{storage.Put(edgeKey(id), data)}); err != nil {
		return cgerrors.Wrap(cgerrors.ErrBatchFailed, err, "updating edge %d", id)
	}
	return nil
}

/*
DeleteEdge removes an edge and updates the adjacency index.
*/
func (s *Store) DeleteEdge(ctx context.Context, id uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, err := s.getEdgeLocked(ctx, id)
	if err != nil {
		return err
	}

	if err := s.backend.WriteBatch(ctx, []storage.Mutation{storage.Delete(edgeKey(id))}); err != nil {
		return cgerrors.Wrap(cgerrors.ErrBatchFailed, err, "deleting edge %d", id)
	}

	s.index.removeEdge(e)
	return nil
}

/*
NodeInput/EdgeInput describe one record for batch creation.
*/
type NodeInput struct {
	Kind  NodeKind
	Props *PropertyMap
}

type EdgeInput struct {
	Source, Target uint64
	Kind           EdgeKind
	Props          *PropertyMap
}

/*
BatchAddNodes persists every node in one atomic backend batch, allocating
contiguous ids. On failure the index and id counters are left untouched
(§4.2, P5).
*/
func (s *Store) BatchAddNodes(ctx context.Context, inputs []NodeInput) ([]uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := make([]uint64, len(inputs))
	muts := make([]storage.Mutation, 0, len(inputs)+1)

	id := s.nextNodeID
	for i, in := range inputs {
		if !in.Kind.Valid() {
			return nil, cgerrors.New(cgerrors.ErrInvalidArgument, "unknown node kind %q", in.Kind)
		}
		props := in.Props
		if props == nil {
			props = NewPropertyMap()
		}
		n := &Node{ID: id, Kind: in.Kind, Props: props}
		data, err := encodeNode(n)
		if err != nil {
			return nil, cgerrors.Wrap(cgerrors.ErrInvalidArgument, err, "encoding node")
		}
		muts = append(muts, storage.Put(nodeKey(id), data))
		ids[i] = id
		id++
	}
	muts = append(muts, storage.Put([]byte(metaNextNodeID), encodeUint64(id)))

	if err := s.backend.WriteBatch(ctx, muts); err != nil {
		return nil, cgerrors.Wrap(cgerrors.ErrBatchFailed, err, "batch adding %d nodes", len(inputs))
	}

	s.nextNodeID = id
	return ids, nil
}

/*
BatchAddEdges persists every edge in one atomic backend batch; endpoints
must already exist (no node was just created in the same call - pair
this with BatchAddNodes run first if needed). The index is updated only
once the whole batch has committed.
*/
func (s *Store) BatchAddEdges(ctx context.Context, inputs []EdgeInput) ([]uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := make([]uint64, len(inputs))
	edges := make([]*Edge, len(inputs))
	muts := make([]storage.Mutation, 0, len(inputs)+1)

	id := s.nextEdgeID
	for i, in := range inputs {
		if !in.Kind.Valid() {
			return nil, cgerrors.New(cgerrors.ErrInvalidArgument, "unknown edge kind %q", in.Kind)
		}
		if _, err := s.getNodeLocked(ctx, in.Source); err != nil {
			return nil, cgerrors.New(cgerrors.ErrNotFound, "edge source %d", in.Source)
		}
		if _, err := s.getNodeLocked(ctx, in.Target); err != nil {
			return nil, cgerrors.New(cgerrors.ErrNotFound, "edge target %d", in.Target)
		}
		props := in.Props
		if props == nil {
			props = NewPropertyMap()
		}
		e := &Edge{ID: id, Source: in.Source, Target: in.Target, Kind: in.Kind, Props: props}
		data, err := encodeEdge(e)
		if err != nil {
			return nil, cgerrors.Wrap(cgerrors.ErrInvalidArgument, err, "encoding edge")
		}
		muts = append(muts, storage.Put(edgeKey(id), data))
		ids[i] = id
		edges[i] = e
		id++
	}
	muts = append(muts, storage.Put([]byte(metaNextEdgeID), encodeUint64(id)))

	if err := s.backend.WriteBatch(ctx, muts); err != nil {
		return nil, cgerrors.Wrap(cgerrors.ErrBatchFailed, err, "batch adding %d edges", len(inputs))
	}

	s.nextEdgeID = id
	for _, e := range edges {
		s.index.addEdge(e)
	}
	return ids, nil
}

/*
BatchAddGraph persists a set of new nodes and a set of new edges in a
single atomic backend batch. Edge endpoints may reference either an
already-persisted node or one of the nodes being created in this same
call (identified by its index into nodes, via NodeRef). This is what
the IR mapper uses to apply one file's worth of mutations as one
indivisible unit (§4.6's "all writes for one IR are grouped into one
batch"), something BatchAddNodes followed by BatchAddEdges cannot do
since the latter requires endpoints to already be persisted.
*/
func (s *Store) BatchAddGraph(ctx context.Context, nodes []NodeInput, edges []GraphEdgeInput) ([]uint64, []uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	nodeIDs := make([]uint64, len(nodes))
	muts := make([]storage.Mutation, 0, len(nodes)+len(edges)+2)

	id := s.nextNodeID
	for i, in := range nodes {
		if !in.Kind.Valid() {
			return nil, nil, cgerrors.New(cgerrors.ErrInvalidArgument, "unknown node kind %q", in.Kind)
		}
		props := in.Props
		if props == nil {
			props = NewPropertyMap()
		}
		n := &Node{ID: id, Kind: in.Kind, Props: props}
		data, err := encodeNode(n)
		if err != nil {
			return nil, nil, cgerrors.Wrap(cgerrors.ErrInvalidArgument, err, "encoding node")
		}
		muts = append(muts, storage.Put(nodeKey(id), data))
		nodeIDs[i] = id
		id++
	}
	muts = append(muts, storage.Put([]byte(metaNextNodeID), encodeUint64(id)))
	finalNodeID := id

	resolve := func(ref NodeRef) (uint64, error) {
		if ref.IsNew {
			if ref.Index < 0 || ref.Index >= len(nodeIDs) {
				return 0, cgerrors.New(cgerrors.ErrInvalidArgument, "edge references out-of-range new node index %d", ref.Index)
			}
			return nodeIDs[ref.Index], nil
		}
		if _, err := s.getNodeLocked(ctx, ref.ID); err != nil {
			return 0, cgerrors.New(cgerrors.ErrNotFound, "edge endpoint %d", ref.ID)
		}
		return ref.ID, nil
	}

	edgeIDs := make([]uint64, len(edges))
	edgeRecs := make([]*Edge, len(edges))

	eid := s.nextEdgeID
	for i, in := range edges {
		if !in.Kind.Valid() {
			return nil, nil, cgerrors.New(cgerrors.ErrInvalidArgument, "unknown edge kind %q", in.Kind)
		}
		source, err := resolve(in.Source)
		if err != nil {
			return nil, nil, err
		}
		target, err := resolve(in.Target)
		if err != nil {
			return nil, nil, err
		}
		props := in.Props
		if props == nil {
			props = NewPropertyMap()
		}
		e := &Edge{ID: eid, Source: source, Target: target, Kind: in.Kind, Props: props}
		data, err := encodeEdge(e)
		if err != nil {
			return nil, nil, cgerrors.Wrap(cgerrors.ErrInvalidArgument, err, "encoding edge")
		}
		muts = append(muts, storage.Put(edgeKey(eid), data))
		edgeIDs[i] = eid
		edgeRecs[i] = e
		eid++
	}
	muts = append(muts, storage.Put([]byte(metaNextEdgeID), encodeUint64(eid)))

	if err := s.backend.WriteBatch(ctx, muts); err != nil {
		return nil, nil, cgerrors.Wrap(cgerrors.ErrBatchFailed, err, "batch adding %d nodes and %d edges", len(nodes), len(edges))
	}

	s.nextNodeID = finalNodeID
	s.nextEdgeID = eid
	for _, e := range edgeRecs {
		s.index.addEdge(e)
	}
	return nodeIDs, edgeIDs, nil
}

/*
NodeRef identifies an edge endpoint for BatchAddGraph: either an
existing persisted node id, or the index of a node being created in
the same call.
*/
type NodeRef struct {
	IsNew bool
	Index int
	ID    uint64
}

/*
ExistingNode builds a NodeRef to an already-persisted node.
*/
func ExistingNode(id uint64) NodeRef { return NodeRef{ID: id} }

/*
NewNodeRef builds a NodeRef to the node at position index among the
nodes slice passed to the same BatchAddGraph call.
*/
func NewNodeRef(index int) NodeRef { return NodeRef{IsNew: true, Index: index} }

/*
GraphEdgeInput is EdgeInput generalized to accept NodeRef endpoints, for
use with BatchAddGraph.
*/
type GraphEdgeInput struct {
	Source, Target NodeRef
	Kind           EdgeKind
	Props          *PropertyMap
}

/*
GetNeighbors returns the deduplicated neighbor node ids reachable from id
in the given direction, optionally restricted to one edge kind (§4.2).
*/
func (s *Store) GetNeighbors(ctx context.Context, id uint64, dir Direction, kind *EdgeKind) ([]uint64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	edgeIDs := s.index.edgesFor(id, dir, kind)

	seen := make(map[uint64]bool)
	var out []uint64
	for _, eid := range edgeIDs {
		e, err := s.getEdgeLocked(ctx, eid)
		if err != nil {
			continue
		}
		var other uint64
		switch {
		case dir == Outgoing:
			other = e.Target
		case dir == Incoming:
			other = e.Source
		case e.Source == id:
			other = e.Target
		default:
			other = e.Source
		}
		if !seen[other] {
			seen[other] = true
			out = append(out, other)
		}
	}
	return out, nil
}

/*
GetEdgesBetween returns the ids of every edge from source to target,
optionally restricted to one edge kind.
*/
func (s *Store) GetEdgesBetween(ctx context.Context, source, target uint64, kind *EdgeKind) ([]uint64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := s.index.edgesFor(source, Outgoing, kind)
	var out []uint64
	for _, id := range ids {
		e, err := s.getEdgeLocked(ctx, id)
		if err != nil {
			continue
		}
		if e.Target == target {
			out = append(out, id)
		}
	}
	return out, nil
}

/*
ScanNodes calls fn for every node in ascending id order.
*/
func (s *Store) ScanNodes(ctx context.Context, fn func(*Node) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.backend.ScanPrefix(ctx, nodePrefix(), func(key, value []byte) error {
		n, err := decodeNode(value)
		if err != nil {
			return err
		}
		return fn(n)
	})
}

/*
ScanEdges calls fn for every edge in ascending id order.
*/
func (s *Store) ScanEdges(ctx context.Context, fn func(*Edge) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.backend.ScanPrefix(ctx, edgePrefix(), func(key, value []byte) error {
		e, err := decodeEdge(value)
		if err != nil {
			return err
		}
		return fn(e)
	})
}

/*
Flush forces the backend to persist any buffered writes.
*/
func (s *Store) Flush() error {
	return s.backend.Flush()
}

/*
Close flushes and releases the backend's resources.
*/
func (s *Store) Close() error {
	if err := s.backend.Flush(); err != nil {
		return err
	}
	return s.backend.Close()
}
