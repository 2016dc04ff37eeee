package escrow

import (
	"github.com/swaplock/swaplock"
	"github.com/swaplock/swaplock/errors"
	"github.com/swaplock/swaplock/ledger"
	"github.com/swaplock/swaplock/token"
)

// role describes one position in an operation's account list: a name for
// error messages and the access the operation requires there. Flags the
// operation does not require are not forbidden, a client may pass more
// access than needed, never less.
type role struct {
	name     string
	signer   bool
	writable bool
}

var initEscrowRoles = []role{
	{name: "initializer", signer: true},
	{name: "temp token account", writable: true},
	{name: "receiving account"},
	{name: "record account", writable: true},
	{name: "rent oracle"},
	{name: "token program"},
}

var exchangeRoles = []role{
	{name: "taker", signer: true},
	{name: "taker source account", writable: true},
	{name: "taker destination account", writable: true},
	{name: "temp token account", writable: true},
	{name: "initializer main account", writable: true},
	{name: "receiving account", writable: true},
	{name: "record account", writable: true},
	{name: "token program"},
}

var cancelRoles = []role{
	{name: "initializer", signer: true},
	{name: "temp token account", writable: true},
	{name: "refund account"},
	{name: "record account", writable: true},
	{name: "token program"},
}

var resetTimeLockRoles = []role{
	{name: "initializer", signer: true},
	{name: "record account", writable: true},
}

// checkRoles matches the ordered metas against the roles an operation
// requires. Accounts past the required list are ignored, only the named
// positions are ever read.
func checkRoles(metas []swaplock.AccountMeta, roles []role) error {
	if len(metas) < len(roles) {
		return errors.Wrapf(errors.ErrInvalidInput, "expected %d accounts, got %d", len(roles), len(metas))
	}
	for i, r := range roles {
		if r.signer && !metas[i].IsSigner {
			return errors.Wrapf(errors.ErrUnauthorized, "%s (account %d) must sign", r.name, i)
		}
		if r.writable && !metas[i].IsWritable {
			return errors.Wrapf(errors.ErrInvalidInput, "%s (account %d) must be writable", r.name, i)
		}
	}
	return nil
}

// InitEscrowAccounts is the account list of an init operation, bound by
// position.
type InitEscrowAccounts struct {
	Initializer      swaplock.AccountMeta
	TempTokenAccount swaplock.AccountMeta
	ReceivingAccount swaplock.AccountMeta
	RecordAccount    swaplock.AccountMeta
	RentOracle       swaplock.AccountMeta
	TokenProgram     swaplock.AccountMeta
}

func bindInitEscrow(metas []swaplock.AccountMeta) (*InitEscrowAccounts, error) {
	if err := checkRoles(metas, initEscrowRoles); err != nil {
		return nil, err
	}
	a := &InitEscrowAccounts{
		Initializer:      metas[0],
		TempTokenAccount: metas[1],
		ReceivingAccount: metas[2],
		RecordAccount:    metas[3],
		RentOracle:       metas[4],
		TokenProgram:     metas[5],
	}
	if !a.RentOracle.Address.Equals(ledger.RentOracleAddress) {
		return nil, errors.Wrap(errors.ErrInvalidInput, "account 4 is not the rent oracle")
	}
	if !a.TokenProgram.Address.Equals(token.ProgramAddress) {
		return nil, errors.Wrap(errors.ErrInvalidInput, "account 5 is not the token program")
	}
	return a, nil
}

// ExchangeAccounts is the account list of an exchange operation, bound by
// position.
type ExchangeAccounts struct {
	Taker            swaplock.AccountMeta
	TakerSource      swaplock.AccountMeta
	TakerDestination swaplock.AccountMeta
	TempTokenAccount swaplock.AccountMeta
	InitializerMain  swaplock.AccountMeta
	ReceivingAccount swaplock.AccountMeta
	RecordAccount    swaplock.AccountMeta
	TokenProgram     swaplock.AccountMeta
}

func bindExchange(metas []swaplock.AccountMeta) (*ExchangeAccounts, error) {
	if err := checkRoles(metas, exchangeRoles); err != nil {
		return nil, err
	}
	a := &ExchangeAccounts{
		Taker:            metas[0],
		TakerSource:      metas[1],
		TakerDestination: metas[2],
		TempTokenAccount: metas[3],
		InitializerMain:  metas[4],
		ReceivingAccount: metas[5],
		RecordAccount:    metas[6],
		TokenProgram:     metas[7],
	}
	if !a.TokenProgram.Address.Equals(token.ProgramAddress) {
		return nil, errors.Wrap(errors.ErrInvalidInput, "account 7 is not the token program")
	}
	return a, nil
}

// CancelAccounts is the account list of a cancel operation, bound by
// position.
type CancelAccounts struct {
	Initializer      swaplock.AccountMeta
	TempTokenAccount swaplock.AccountMeta
	RefundAccount    swaplock.AccountMeta
	RecordAccount    swaplock.AccountMeta
	TokenProgram     swaplock.AccountMeta
}

func bindCancel(metas []swaplock.AccountMeta) (*CancelAccounts, error) {
	if err := checkRoles(metas, cancelRoles); err != nil {
		return nil, err
	}
	a := &CancelAccounts{
		Initializer:      metas[0],
		TempTokenAccount: metas[1],
		RefundAccount:    metas[2],
		RecordAccount:    metas[3],
		TokenProgram:     metas[4],
	}
	if !a.TokenProgram.Address.Equals(token.ProgramAddress) {
		return nil, errors.Wrap(errors.ErrInvalidInput, "account 4 is not the token program")
	}
	return a, nil
}

// ResetTimeLockAccounts is the account list of a reset operation, bound by
// position.
type ResetTimeLockAccounts struct {
	Initializer   swaplock.AccountMeta
	RecordAccount swaplock.AccountMeta
}

func bindResetTimeLock(metas []swaplock.AccountMeta) (*ResetTimeLockAccounts, error) {
	if err := checkRoles(metas, resetTimeLockRoles); err != nil {
		return nil, err
	}
	return &ResetTimeLockAccounts{
		Initializer:   metas[0],
		RecordAccount: metas[1],
	}, nil
}
