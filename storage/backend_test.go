package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func backendFactories(t *testing.T) map[string]Backend {
	mem := NewMemoryBackend()

	bolt, err := OpenBoltBackend(filepath.Join(t.TempDir(), "test.bolt"))
	require.NoError(t, err)
	t.Cleanup(func() { bolt.Close() })

	return map[string]Backend{
		"memory": mem,
		"bolt":   bolt,
	}
}

func TestBackendPutGetDelete(t *testing.T) {
	ctx := context.Background()

	for name, b := range backendFactories(t) {
		t.Run(name, func(t *testing.T) {
			_, ok, err := b.Get(ctx, []byte("n:1"))
			require.NoError(t, err)
			require.False(t, ok)

			require.NoError(t, b.Put(ctx, []byte("n:1"), []byte("hello")))

			v, ok, err := b.Get(ctx, []byte("n:1"))
			require.NoError(t, err)
			require.True(t, ok)
			require.Equal(t, "hello", string(v))

			require.NoError(t, b.Delete(ctx, []byte("n:1")))
			_, ok, err = b.Get(ctx, []byte("n:1"))
			require.NoError(t, err)
			require.False(t, ok)

			// Deleting an absent key is not an error.
			require.NoError(t, b.Delete(ctx, []byte("n:1")))
		})
	}
}

func TestBackendScanPrefixOrder(t *testing.T) {
	ctx := context.Background()

	for name, b := range backendFactories(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, b.Put(ctx, []byte("n:0000000000000003"), []byte("c")))
			require.NoError(t, b.Put(ctx, []byte("n:0000000000000001"), []byte("a")))
			require.NoError(t, b.Put(ctx, []byte("n:0000000000000002"), []byte("b")))
			require.NoError(t, b.Put(ctx, []byte("e:0000000000000001"), []byte("edge")))

			var got []string
			err := b.ScanPrefix(ctx, []byte("n:"), func(k, v []byte) error {
				got = append(got, string(v))
				return nil
			})
			require.NoError(t, err)
			require.Equal(t, []string{"a", "b", "c"}, got)
		})
	}
}

func TestBackendWriteBatchAtomic(t *testing.T) {
	ctx := context.Background()

	for name, b := range backendFactories(t) {
		t.Run(name, func(t *testing.T) {
			err := b.WriteBatch(ctx, []Mutation{
				Put([]byte("n:1"), []byte("x")),
				Put([]byte("n:2"), []byte("y")),
			})
			require.NoError(t, err)

			v1, ok, _ := b.Get(ctx, []byte("n:1"))
			require.True(t, ok)
			require.Equal(t, "x", string(v1))

			v2, ok, _ := b.Get(ctx, []byte("n:2"))
			require.True(t, ok)
			require.Equal(t, "y", string(v2))

			// A batch mixing a put and a delete of a key written earlier.
			err = b.WriteBatch(ctx, []Mutation{
				Delete([]byte("n:1")),
				Put([]byte("n:3"), []byte("z")),
			})
			require.NoError(t, err)

			_, ok, _ = b.Get(ctx, []byte("n:1"))
			require.False(t, ok)
		})
	}
}

func TestBoltBackendReopenFidelity(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "reopen.bolt")

	b, err := OpenBoltBackend(path)
	require.NoError(t, err)
	require.NoError(t, b.Put(ctx, []byte("n:1"), []byte("hello")))
	require.NoError(t, b.Close())

	b2, err := OpenBoltBackend(path)
	require.NoError(t, err)
	defer b2.Close()

	v, ok, err := b2.Get(ctx, []byte("n:1"))
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "hello", string(v))
}
