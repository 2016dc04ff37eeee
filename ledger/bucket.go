package ledger

import (
	"github.com/swaplock/swaplock"
	"github.com/swaplock/swaplock/errors"
)

// accountPrefix is the store namespace all account records live under.
const accountPrefix = "acct:"

// AccountBucket reads and writes per-address account records. All programs
// share one namespace. The bucket itself is a stateless view, the KVStore
// is passed to every call so the same bucket works against the committed
// store and any cache layer.
type AccountBucket struct{}

// NewAccountBucket returns a bucket for the account namespace.
func NewAccountBucket() AccountBucket {
	return AccountBucket{}
}

// DBKey returns the storage key for the given address.
func (b AccountBucket) DBKey(addr swaplock.Address) []byte {
	return append([]byte(accountPrefix), addr...)
}

// Get loads the account stored under the address. Returns ErrNotFound when
// no account exists there.
func (b AccountBucket) Get(db swaplock.KVStore, addr swaplock.Address) (*swaplock.Account, error) {
	if err := addr.Validate(); err != nil {
		return nil, err
	}
	raw := db.Get(b.DBKey(addr))
	if raw == nil {
		return nil, errors.Wrapf(errors.ErrNotFound, "account %s", addr)
	}
	acct := swaplock.Account{Address: addr.Clone()}
	if err := acct.Unmarshal(raw); err != nil {
		return nil, errors.Wrapf(err, "account %s", addr)
	}
	return &acct, nil
}

// GetOrCreate loads the account or returns a fresh zero-balance account
// ready to be saved under the address.
func (b AccountBucket) GetOrCreate(db swaplock.KVStore, addr swaplock.Address) (*swaplock.Account, error) {
	acct, err := b.Get(db, addr)
	if errors.ErrNotFound.Is(err) {
		return &swaplock.Account{Address: addr.Clone()}, nil
	}
	return acct, err
}

// Has returns true if an account exists under the address.
func (b AccountBucket) Has(db swaplock.KVStore, addr swaplock.Address) bool {
	return db.Has(b.DBKey(addr))
}

// Save validates and persists the account under its address.
func (b AccountBucket) Save(db swaplock.KVStore, acct *swaplock.Account) error {
	if err := acct.Validate(); err != nil {
		return err
	}
	raw, err := acct.Marshal()
	if err != nil {
		return err
	}
	db.Set(b.DBKey(acct.Address), raw)
	return nil
}

// Delete removes the account record. Deleting a missing account is a noop.
func (b AccountBucket) Delete(db swaplock.KVStore, addr swaplock.Address) {
	db.Delete(b.DBKey(addr))
}
