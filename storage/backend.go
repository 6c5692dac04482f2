/*
Package storage implements the key-value persistence layer (C1) underneath
the graph store. A Backend is deliberately minimal: put, get, delete,
ordered prefix scan and an atomic batch of mutations. Everything the graph
store needs - node/edge records, id watermarks, schema version - is just
bytes under a key with a string prefix (§4.1).
*/
package storage

import "context"

/*
OpKind distinguishes the two mutation types a Batch can carry.
*/
type OpKind int

const (
	OpPut OpKind = iota
	OpDelete
)

/*
Mutation is one put or delete inside a Batch.
*/
type Mutation struct {
	Kind  OpKind
	Key   []byte
	Value []byte // ignored for OpDelete
}

/*
Put returns a put mutation.
*/
func Put(key, value []byte) Mutation {
	return Mutation{Kind: OpPut, Key: key, Value: value}
}

/*
Delete returns a delete mutation.
*/
func Delete(key []byte) Mutation {
	return Mutation{Kind: OpDelete, Key: key}
}

/*
Entry is one (key, value) pair yielded by a prefix scan.
*/
type Entry struct {
	Key   []byte
	Value []byte
}

/*
Backend is the storage contract every implementation (in-memory,
bbolt-backed) satisfies. Get of a missing key returns (nil, false, nil) -
absence is not an error. All I/O failures are reported as an
*errors.GraphError of kind ErrStorage by callers wrapping Backend, not by
Backend itself, so a Backend can stay a plain key-value abstraction.
*/
type Backend interface {
	/*
		Put stores value under key, overwriting any existing value.
	*/
	Put(ctx context.Context, key, value []byte) error

	/*
		Get returns the value stored under key, or ok=false if key is absent.
	*/
	Get(ctx context.Context, key []byte) (value []byte, ok bool, err error)

	/*
		Delete removes key. Deleting an absent key is not an error.
	*/
	Delete(ctx context.Context, key []byte) error

	/*
		ScanPrefix calls fn for every (key, value) pair whose key starts with
		prefix, in ascending key order. fn returning an error stops the scan
		and the error is returned to the caller.
	*/
	ScanPrefix(ctx context.Context, prefix []byte, fn func(key, value []byte) error) error

	/*
		WriteBatch applies every mutation atomically and durably: on success
		all mutations are visible to subsequent reads; on failure none are.
	*/
	WriteBatch(ctx context.Context, muts []Mutation) error

	/*
		Flush forces any buffered writes to durable storage.
	*/
	Flush() error

	/*
		Close releases the backend's resources. Flush is implied.
	*/
	Close() error
}
