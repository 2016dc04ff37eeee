package ledger

import (
	"encoding/json"
	"testing"

	"github.com/swaplock/swaplock"
	"github.com/swaplock/swaplock/errors"
	"github.com/swaplock/swaplock/store"
	"github.com/swaplock/swaplock/swaptest"
	"github.com/swaplock/swaplock/swaptest/assert"
)

func accountOpts(t testing.TB, accts ...GenesisAccount) swaplock.Options {
	t.Helper()
	raw, err := json.Marshal(accts)
	assert.Nil(t, err)
	return swaplock.Options{optAccounts: raw}
}

func TestGenesisAccounts(t *testing.T) {
	alice := swaptest.RandomAddr(t)
	bob := swaptest.RandomAddr(t)
	record := swaptest.RandomAddr(t)
	program := swaptest.RandomAddr(t)
	opts := accountOpts(t,
		GenesisAccount{Address: alice, Balance: 100},
		GenesisAccount{Address: bob, Balance: 0},
		GenesisAccount{Address: record, Balance: 7, Owner: program, DataSize: 121},
	)

	db := store.MemStore()
	var ini Initializer
	assert.Nil(t, ini.FromGenesis(opts, db))

	bucket := NewAccountBucket()
	acct, err := bucket.Get(db, alice)
	assert.Nil(t, err)
	assert.Equal(t, uint64(100), acct.Balance)
	assert.Nil(t, acct.Owner)

	acct, err = bucket.Get(db, bob)
	assert.Nil(t, err)
	assert.Equal(t, uint64(0), acct.Balance)

	// a pre-allocated program account starts with zeroed state
	acct, err = bucket.Get(db, record)
	assert.Nil(t, err)
	assert.Equal(t, program, acct.Owner)
	assert.Equal(t, make([]byte, 121), acct.Data)
}

func TestGenesisWithoutAccounts(t *testing.T) {
	db := store.MemStore()
	var ini Initializer
	assert.Nil(t, ini.FromGenesis(swaplock.Options{}, db))
}

func TestGenesisBrokenDeclarations(t *testing.T) {
	db := store.MemStore()
	var ini Initializer

	opts := swaplock.Options{optAccounts: json.RawMessage(`{"not": "a list"`)}
	if err := ini.FromGenesis(opts, db); err == nil {
		t.Fatal("broken accounts json must not load")
	}

	opts = swaplock.Options{optAccounts: json.RawMessage(`[{"address": "", "balance": 5}]`)}
	err := ini.FromGenesis(opts, db)
	if !errors.ErrInvalidInput.Is(err) {
		t.Fatalf("want invalid input, got %+v", err)
	}

	opts = accountOpts(t, GenesisAccount{Address: swaptest.RandomAddr(t), DataSize: -1})
	err = ini.FromGenesis(opts, db)
	if !errors.ErrInvalidInput.Is(err) {
		t.Fatalf("negative data size: want invalid input, got %+v", err)
	}
}

// A program initializer must observe the native accounts, the ledger loads
// them before handing control over.
type balanceProbe struct {
	addr swaplock.Address
	seen uint64
}

func (p *balanceProbe) FromGenesis(opts swaplock.Options, db swaplock.KVStore) error {
	acct, err := NewAccountBucket().Get(db, p.addr)
	if err != nil {
		return err
	}
	p.seen = acct.Balance
	return nil
}

func TestLedgerFromGenesisRunsAccountsFirst(t *testing.T) {
	alice := swaptest.RandomAddr(t)
	opts := accountOpts(t, GenesisAccount{Address: alice, Balance: 42})

	l := NewLedger(store.MemStore())
	probe := &balanceProbe{addr: alice}
	assert.Nil(t, l.FromGenesis(opts, probe))
	assert.Equal(t, uint64(42), probe.seen)

	acct, err := l.Account(alice)
	assert.Nil(t, err)
	assert.Equal(t, uint64(42), acct.Balance)
}
