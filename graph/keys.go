package graph

import "encoding/binary"

/*
Key prefixes, per spec §4.1's key layout: nodes under n:, edges under
e:, metadata under m:.
*/
const (
	prefixNode = "n:"
	prefixEdge = "e:"
	prefixMeta = "m:"
)

const (
	metaNextNodeID    = "m:next-node-id"
	metaNextEdgeID    = "m:next-edge-id"
	metaSchemaVersion = "m:schema-version"
)

/*
nodeKey encodes a node id as n: followed by its fixed-width big-endian
bytes, so raw byte comparison (and hence scan_prefix order) matches
ascending numeric id order.
*/
func nodeKey(id uint64) []byte {
	return idKey(prefixNode, id)
}

func edgeKey(id uint64) []byte {
	return idKey(prefixEdge, id)
}

func idKey(prefix string, id uint64) []byte {
	buf := make([]byte, len(prefix)+8)
	copy(buf, prefix)
	binary.BigEndian.PutUint64(buf[len(prefix):], id)
	return buf
}

/*
decodeIDKey extracts the id from a key produced by idKey.
*/
func decodeIDKey(key []byte, prefix string) uint64 {
	return binary.BigEndian.Uint64(key[len(prefix):])
}

func nodePrefix() []byte { return []byte(prefixNode) }
func edgePrefix() []byte { return []byte(prefixEdge) }
