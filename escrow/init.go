package escrow

import (
	"github.com/swaplock/swaplock"
	"github.com/swaplock/swaplock/errors"
	"github.com/swaplock/swaplock/ledger"
	"github.com/swaplock/swaplock/token"
)

const optEscrows = "escrows"

// GenesisEscrow is a swap declared open from the first block. The temp
// token account must be declared in the token genesis section, custody
// moves to the vault as part of initialization.
type GenesisEscrow struct {
	Record           swaplock.Address  `json:"record"`
	Initializer      swaplock.Address  `json:"initializer"`
	TempTokenAccount swaplock.Address  `json:"temp_token_account"`
	ReceivingAccount swaplock.Address  `json:"receiving_account"`
	ExpectedAmount   uint64            `json:"expected_amount"`
	UnlockTime       swaplock.UnixTime `json:"unlock_time"`
	Timeout          swaplock.UnixTime `json:"timeout"`
}

// Initializer fulfils the Initializer interface to load open escrows from
// the genesis file.
type Initializer struct{}

var _ swaplock.Initializer = (*Initializer)(nil)

// FromGenesis will parse initial escrows from genesis and save them to the
// database.
func (Initializer) FromGenesis(opts swaplock.Options, db swaplock.KVStore) error {
	var escrows []GenesisEscrow
	if err := opts.ReadOptions(optEscrows, &escrows); err != nil {
		return errors.Wrap(err, "read escrows")
	}
	accounts := ledger.NewAccountBucket()
	tokens := token.NewController()
	for i, e := range escrows {
		if err := openGenesisEscrow(db, accounts, tokens, e); err != nil {
			return errors.Wrapf(err, "escrow #%d", i)
		}
	}
	return nil
}

func openGenesisEscrow(db swaplock.KVStore, accounts ledger.AccountBucket, tokens token.Controller, e GenesisEscrow) error {
	record := &EscrowRecord{
		IsInitialized:               true,
		Initializer:                 e.Initializer,
		TempTokenAccount:            e.TempTokenAccount,
		InitializerReceivingAccount: e.ReceivingAccount,
		ExpectedAmount:              e.ExpectedAmount,
		UnlockTime:                  e.UnlockTime,
		Timeout:                     e.Timeout,
	}
	if err := record.Validate(); err != nil {
		return err
	}
	if err := e.Record.Validate(); err != nil {
		return errors.Wrap(err, "record address")
	}

	acct, err := accounts.GetOrCreate(db, e.Record)
	if err != nil {
		return err
	}
	if len(acct.Owner) != 0 || len(acct.Data) != 0 {
		return errors.Wrapf(errors.ErrDuplicate, "account %s already in use", e.Record)
	}
	raw, err := record.Marshal()
	if err != nil {
		return err
	}
	acct.Owner = ProgramAddress
	acct.Data = raw
	if err := accounts.Save(db, acct); err != nil {
		return err
	}

	// custody of the declared deposit moves to the vault, the genesis
	// author only states who funded the account
	ta, err := tokens.TokenAccount(db, e.TempTokenAccount)
	if err != nil {
		return errors.Wrap(err, "temp token account")
	}
	if ta.Authority.Equals(VaultAddress()) {
		return nil
	}
	return tokens.SetAuthority(db, e.TempTokenAccount, ta.Authority, VaultAddress())
}
