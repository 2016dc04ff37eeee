package store

import "github.com/swaplock/swaplock"

// Move references for all storage types into this package
// for shorter names everywhere

type KVStore = swaplock.KVStore
type Iterator = swaplock.Iterator
type CacheableKVStore = swaplock.CacheableKVStore
type KVCacheWrap = swaplock.KVCacheWrap

// Model groups a key-value pair.
type Model struct {
	Key   []byte
	Value []byte
}

// SetDeleter is a subset of KVStore that can write and delete.
type SetDeleter interface {
	Set(key, value []byte)
	Delete(key []byte)
}

// Batch can write a group of operations at once.
type Batch interface {
	SetDeleter
	Write()
}
