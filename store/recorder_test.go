package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestRecordingStore tracks the changes written through the wrapper
func TestRecordingStore(t *testing.T) {
	db := NewRecordingStore(MemStore())
	rec, ok := db.(Recorder)
	require.True(t, ok)

	// no changes at start
	assert.Equal(t, 0, len(rec.KVPairs()))

	k, v := []byte("lemur"), []byte("leap")
	db.Set(k, v)
	assert.Equal(t, v, db.Get(k))
	assert.Equal(t, map[string][]byte{"lemur": v}, rec.KVPairs())

	// deletes are recorded with the sentinel value
	db.Delete(k)
	assert.Nil(t, db.Get(k))
	change := rec.KVPairs()["lemur"]
	assert.True(t, IsDeleted(change))
}

// TestRecordingStoreCacheWrap ensures writes through a cache layer
// land in the record once the cache is written
func TestRecordingStoreCacheWrap(t *testing.T) {
	db := NewRecordingStore(MemStore())
	cached, ok := db.(CacheableKVStore)
	require.True(t, ok)
	rec := db.(Recorder)

	k, v := []byte("otter"), []byte("river")

	cache := cached.CacheWrap()
	cache.Set(k, v)
	// nothing recorded until the cache is written out
	assert.Equal(t, 0, len(rec.KVPairs()))
	assert.Nil(t, db.Get(k))

	cache.Write()
	assert.Equal(t, v, db.Get(k))
	assert.Equal(t, map[string][]byte{"otter": v}, rec.KVPairs())

	// a discarded cache leaves no trace
	c2 := cached.CacheWrap()
	c2.Delete(k)
	c2.Discard()
	assert.Equal(t, v, db.Get(k))
	assert.False(t, IsDeleted(rec.KVPairs()["otter"]))
}

// TestRecordingStorePlain covers the non-cacheable base store variant
func TestRecordingStorePlain(t *testing.T) {
	db := NewRecordingStore(EmptyKVStore{})
	_, cacheable := db.(CacheableKVStore)
	assert.False(t, cacheable)

	rec := db.(Recorder)
	db.Set([]byte("a"), []byte("1"))
	db.Delete([]byte("b"))

	changes := rec.KVPairs()
	assert.Equal(t, 2, len(changes))
	assert.Equal(t, []byte("1"), changes["a"])
	assert.True(t, IsDeleted(changes["b"]))
	assert.False(t, IsDeleted(changes["a"]))
	assert.False(t, IsDeleted(nil))
}
