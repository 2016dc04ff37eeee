package store

// Recorder interface is implemented by anything returned from
// NewRecordingStore
type Recorder interface {
	KVPairs() map[string][]byte
}

// NewRecordingStore initializes a recording store wrapping this base store,
// using the cached alternative if possible. Every Set and Delete that goes
// through the wrapper is remembered, which allows tooling to display the
// state changes an instruction performed.
func NewRecordingStore(db KVStore) KVStore {
	changes := make(map[string][]byte)
	if cached, ok := db.(CacheableKVStore); ok {
		return &cacheableRecordingStore{
			CacheableKVStore: cached,
			changes:          changes,
		}
	}
	return &recordingStore{
		KVStore: db,
		changes: changes,
	}
}

// recordDelete marks a deleted key in the change set. Nil means the key was
// written with a nil value, this non-nil empty sentinel means removal.
var recordDelete = make([]byte, 0)

// IsDeleted returns true if the recorded change marks a removal.
func IsDeleted(change []byte) bool {
	return change != nil && len(change) == 0
}

// recordingStore wraps a normal KVStore and records any change operations
type recordingStore struct {
	KVStore
	// changes is a map from key to the last written value, or to
	// recordDelete when the key was removed
	changes map[string][]byte
}

var _ KVStore = (*recordingStore)(nil)
var _ Recorder = (*recordingStore)(nil)

// KVPairs returns the content of changes
func (r *recordingStore) KVPairs() map[string][]byte {
	return r.changes
}

func (r *recordingStore) Set(key, value []byte) {
	r.changes[string(key)] = value
	r.KVStore.Set(key, value)
}

func (r *recordingStore) Delete(key []byte) {
	r.changes[string(key)] = recordDelete
	r.KVStore.Delete(key)
}

// cacheableRecordingStore is a recordingStore that also supports CacheWrap
type cacheableRecordingStore struct {
	CacheableKVStore
	changes map[string][]byte
}

var _ CacheableKVStore = (*cacheableRecordingStore)(nil)
var _ Recorder = (*cacheableRecordingStore)(nil)

// KVPairs returns the content of changes
func (r *cacheableRecordingStore) KVPairs() map[string][]byte {
	return r.changes
}

func (r *cacheableRecordingStore) Set(key, value []byte) {
	r.changes[string(key)] = value
	r.CacheableKVStore.Set(key, value)
}

func (r *cacheableRecordingStore) Delete(key []byte) {
	r.changes[string(key)] = recordDelete
	r.CacheableKVStore.Delete(key)
}

// CacheWrap returns a cache layer whose Write applies to this store, so
// writes performed through the cache are recorded as well.
func (r *cacheableRecordingStore) CacheWrap() KVCacheWrap {
	return NewBTreeCacheWrap(r, NewNonAtomicBatch(r), nil)
}
