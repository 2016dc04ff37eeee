package ledger

import (
	"github.com/swaplock/swaplock"
	"github.com/swaplock/swaplock/errors"
)

const optAccounts = "accounts"

// GenesisAccount is used to parse one account declaration from the genesis
// file. Owner and DataSize are optional and declare a program owned account
// with zeroed state, the way a client pre-allocates a record account before
// handing it to a program.
type GenesisAccount struct {
	Address  swaplock.Address `json:"address"`
	Balance  uint64           `json:"balance"`
	Owner    swaplock.Address `json:"owner,omitempty"`
	DataSize int              `json:"data_size,omitempty"`
}

// Initializer fulfils the Initializer interface to load native balance
// accounts from the genesis file.
type Initializer struct{}

var _ swaplock.Initializer = Initializer{}

// FromGenesis will parse initial account info from genesis and save it to
// the database.
func (Initializer) FromGenesis(opts swaplock.Options, db swaplock.KVStore) error {
	accts := []GenesisAccount{}
	if err := opts.ReadOptions(optAccounts, &accts); err != nil {
		return errors.Wrap(err, "cannot load accounts")
	}
	bucket := NewAccountBucket()
	for i, a := range accts {
		if err := a.Address.Validate(); err != nil {
			return errors.Wrapf(err, "account #%d", i)
		}
		if a.DataSize < 0 {
			return errors.Wrapf(errors.ErrInvalidInput, "account #%d: negative data size", i)
		}
		acct := &swaplock.Account{
			Address: a.Address,
			Balance: a.Balance,
			Owner:   a.Owner,
		}
		if a.DataSize > 0 {
			acct.Data = make([]byte, a.DataSize)
		}
		if err := bucket.Save(db, acct); err != nil {
			return errors.Wrapf(err, "account #%d", i)
		}
	}
	return nil
}

// FromGenesis loads the genesis declarations into the ledger store. The
// ledger's own account loader always runs first so program loaders can
// rely on native accounts being present.
func (l *Ledger) FromGenesis(opts swaplock.Options, inits ...swaplock.Initializer) error {
	all := append([]swaplock.Initializer{Initializer{}}, inits...)
	for _, init := range all {
		if err := init.FromGenesis(opts, l.db); err != nil {
			return err
		}
	}
	return nil
}
