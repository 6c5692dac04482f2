package storage

import (
	"context"

	"go.etcd.io/bbolt"

	"github.com/anvanster/codegraph/internal/glog"
)

var boltBucket = []byte("kv")

/*
BoltBackend is the durable Backend implementation, grounded on
Adalanche's use of go.etcd.io/bbolt for embedded persistence
(modules/persistence/database.go): one bbolt file per graph, one bucket
holding every n:/e:/m: key. bbolt's Update/View transactions give the
write-ahead-log/crash-safety guarantee §4.1 requires without hand-rolling
one: a transaction either commits in full or not at all, and a crash
mid-commit leaves the file at the last committed state on reopen.
*/
type BoltBackend struct {
	db   *bbolt.DB
	path string
}

/*
OpenBoltBackend opens (creating if absent) a bbolt-backed backend at path.
*/
func OpenBoltBackend(path string) (*BoltBackend, error) {
	log := glog.Get("storage")

	db, err := bbolt.Open(path, 0600, nil)
	if err != nil {
		log.Error().Err(err).Str("path", path).Msg("failed to open bolt backend")
		return nil, err
	}

	if err := db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(boltBucket)
		return err
	}); err != nil {
		db.Close()
		return nil, err
	}

	log.Info().Str("path", path).Msg("opened bolt backend")
	return &BoltBackend{db: db, path: path}, nil
}

func (b *BoltBackend) Put(ctx context.Context, key, value []byte) error {
	return b.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(boltBucket).Put(key, value)
	})
}

func (b *BoltBackend) Get(ctx context.Context, key []byte) ([]byte, bool, error) {
	var out []byte
	err := b.db.View(func(tx *bbolt.Tx) error {
		v := tx.Bucket(boltBucket).Get(key)
		if v != nil {
			out = make([]byte, len(v))
			copy(out, v)
		}
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return out, out != nil, nil
}

func (b *BoltBackend) Delete(ctx context.Context, key []byte) error {
	return b.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(boltBucket).Delete(key)
	})
}

func (b *BoltBackend) ScanPrefix(ctx context.Context, prefix []byte, fn func(key, value []byte) error) error {
	return b.db.View(func(tx *bbolt.Tx) error {
		c := tx.Bucket(boltBucket).Cursor()
		for k, v := c.Seek(prefix); k != nil && hasPrefix(k, prefix); k, v = c.Next() {
			kk := append([]byte(nil), k...)
			vv := append([]byte(nil), v...)
			if err := fn(kk, vv); err != nil {
				return err
			}
		}
		return nil
	})
}

/*
WriteBatch applies every mutation inside a single bbolt transaction: if
any mutation fails, the whole transaction rolls back and none of it is
visible, satisfying the atomic-batch contract of §4.1/§4.2.
*/
func (b *BoltBackend) WriteBatch(ctx context.Context, muts []Mutation) error {
	log := glog.Get("storage")

	err := b.db.Update(func(tx *bbolt.Tx) error {
		bkt := tx.Bucket(boltBucket)
		for _, mut := range muts {
			var err error
			switch mut.Kind {
			case OpPut:
				err = bkt.Put(mut.Key, mut.Value)
			case OpDelete:
				err = bkt.Delete(mut.Key)
			}
			if err != nil {
				return err
			}
		}
		return nil
	})

	if err != nil {
		log.Warn().Err(err).Int("mutations", len(muts)).Msg("batch rejected, rolled back")
	}
	return err
}

func (b *BoltBackend) Flush() error {
	return b.db.Sync()
}

func (b *BoltBackend) Close() error {
	return b.db.Close()
}

func hasPrefix(k, prefix []byte) bool {
	if len(k) < len(prefix) {
		return false
	}
	for i := range prefix {
		if k[i] != prefix[i] {
			return false
		}
	}
	return true
}
