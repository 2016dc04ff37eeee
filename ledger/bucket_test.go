package ledger

import (
	"testing"

	"github.com/swaplock/swaplock"
	"github.com/swaplock/swaplock/errors"
	"github.com/swaplock/swaplock/store"
	"github.com/swaplock/swaplock/swaptest"
	"github.com/swaplock/swaplock/swaptest/assert"
)

func TestAccountBucketRoundTrip(t *testing.T) {
	db := store.MemStore()
	bucket := NewAccountBucket()

	addr := swaptest.RandomAddr(t)
	owner := swaptest.RandomAddr(t)
	acct := &swaplock.Account{
		Address: addr,
		Balance: 842,
		Owner:   owner,
		Data:    []byte("opaque program state"),
	}
	assert.Nil(t, bucket.Save(db, acct))
	assert.Equal(t, true, bucket.Has(db, addr))

	got, err := bucket.Get(db, addr)
	assert.Nil(t, err)
	assert.Equal(t, addr, got.Address)
	assert.Equal(t, uint64(842), got.Balance)
	assert.Equal(t, owner, got.Owner)
	assert.Equal(t, []byte("opaque program state"), got.Data)
}

func TestAccountBucketMissing(t *testing.T) {
	db := store.MemStore()
	bucket := NewAccountBucket()
	addr := swaptest.RandomAddr(t)

	assert.Equal(t, false, bucket.Has(db, addr))
	if _, err := bucket.Get(db, addr); !errors.ErrNotFound.Is(err) {
		t.Fatalf("want not found, got %+v", err)
	}

	// a fresh account is returned but nothing is stored yet
	acct, err := bucket.GetOrCreate(db, addr)
	assert.Nil(t, err)
	assert.Equal(t, addr, acct.Address)
	assert.Equal(t, uint64(0), acct.Balance)
	assert.Equal(t, false, bucket.Has(db, addr))
}

func TestAccountBucketDelete(t *testing.T) {
	db := store.MemStore()
	bucket := NewAccountBucket()
	addr := swaptest.RandomAddr(t)

	assert.Nil(t, bucket.Save(db, &swaplock.Account{Address: addr, Balance: 1}))
	assert.Equal(t, true, bucket.Has(db, addr))

	bucket.Delete(db, addr)
	assert.Equal(t, false, bucket.Has(db, addr))

	// deleting an account that does not exist is a noop
	bucket.Delete(db, addr)
}

func TestAccountBucketRejectsInvalid(t *testing.T) {
	db := store.MemStore()
	bucket := NewAccountBucket()

	short := swaplock.Address("too-short")
	if _, err := bucket.Get(db, short); !errors.ErrInvalidInput.Is(err) {
		t.Fatalf("want invalid input, got %+v", err)
	}
	err := bucket.Save(db, &swaplock.Account{Address: short})
	if !errors.ErrInvalidInput.Is(err) {
		t.Fatalf("want invalid input, got %+v", err)
	}
}
