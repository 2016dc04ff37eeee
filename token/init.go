package token

import (
	"github.com/swaplock/swaplock"
	"github.com/swaplock/swaplock/errors"
)

const optTokenAccounts = "token_accounts"

// GenesisTokenAccount is used to parse one token account declaration from
// the genesis file.
type GenesisTokenAccount struct {
	Address   swaplock.Address `json:"address"`
	Asset     swaplock.Address `json:"asset"`
	Authority swaplock.Address `json:"authority"`
	Amount    uint64           `json:"amount"`
}

// Initializer fulfils the Initializer interface to load token accounts
// from the genesis file.
type Initializer struct{}

var _ swaplock.Initializer = Initializer{}

// FromGenesis will parse initial token account state from genesis and save
// it to the database. Native accounts load before this runs, so a token
// account declared in both places keeps its native balance.
func (Initializer) FromGenesis(opts swaplock.Options, db swaplock.KVStore) error {
	accts := []GenesisTokenAccount{}
	if err := opts.ReadOptions(optTokenAccounts, &accts); err != nil {
		return errors.Wrap(err, "cannot load token accounts")
	}
	ctrl := NewController()
	for i, a := range accts {
		if err := ctrl.Issue(db, a.Address, a.Asset, a.Authority, a.Amount); err != nil {
			return errors.Wrapf(err, "token account #%d", i)
		}
	}
	return nil
}
