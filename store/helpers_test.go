package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestEmptyKVStore returns nothing and accepts everything
func TestEmptyKVStore(t *testing.T) {
	e := EmptyKVStore{}
	k, v := []byte("walrus"), []byte("tusk")

	assert.Nil(t, e.Get(k))
	assert.False(t, e.Has(k))

	// writes are accepted and dropped
	e.Set(k, v)
	e.Delete(k)
	assert.Nil(t, e.Get(k))

	iter := e.Iterator(nil, nil)
	assert.False(t, iter.Valid())
	iter.Close()

	iter = e.ReverseIterator(nil, nil)
	assert.False(t, iter.Valid())
	iter.Close()
}

// TestNonAtomicBatch piles up ops and writes them once
func TestNonAtomicBatch(t *testing.T) {
	out := MemStore()
	batch := NewNonAtomicBatch(out)

	k, v := []byte("gopher"), []byte("burrow")
	k2, v2 := []byte("badger"), []byte("sett")

	batch.Set(k, v)
	batch.Set(k2, v2)
	batch.Delete(k2)

	// nothing written before Write is called
	assert.Nil(t, out.Get(k))
	assert.Nil(t, out.Get(k2))

	// ShowOps returns all pending ops in order and is a copy
	ops := batch.ShowOps()
	assert.Equal(t, 3, len(ops))
	ops[0] = DelOp(k)
	assert.Equal(t, SetOp(k, v), batch.ShowOps()[0])

	batch.Write()
	assert.Equal(t, v, out.Get(k))
	assert.Nil(t, out.Get(k2))

	// batch is reset after Write
	assert.Equal(t, 0, len(batch.ShowOps()))
	batch.Write()
	assert.Equal(t, v, out.Get(k))
}

// TestOpApply checks both op flavors against a live store
func TestOpApply(t *testing.T) {
	db := MemStore()
	k, v := []byte("marmot"), []byte("alpine")

	SetOp(k, v).Apply(db)
	assert.Equal(t, v, db.Get(k))

	DelOp(k).Apply(db)
	assert.Nil(t, db.Get(k))
}
