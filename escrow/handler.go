package escrow

import (
	"context"

	"github.com/swaplock/swaplock"
	"github.com/swaplock/swaplock/errors"
	"github.com/swaplock/swaplock/ledger"
	"github.com/swaplock/swaplock/token"
)

const (
	initEscrowCost    int64 = 300
	exchangeCost      int64 = 0
	cancelCost        int64 = 0
	resetTimeLockCost int64 = 50
)

// ProgramAddress is the well known address the escrow program registers
// under. Record accounts are owned by this address.
var ProgramAddress = swaplock.NewCondition("escrow", "program", []byte("swaplock")).Address()

// vaultSeed is the static derivation seed of the custody authority. One
// vault guards the deposits of every open swap of this program.
var vaultSeed = []byte("escrow")

// VaultCondition returns the derived condition holding authority over temp
// token accounts while their swap is open. No key satisfies it, only the
// program acting on its own behalf.
func VaultCondition() swaplock.Condition {
	return swaplock.NewCondition("escrow", "vault", vaultSeed)
}

// VaultAddress returns the address form of VaultCondition.
func VaultAddress() swaplock.Address {
	return VaultCondition().Address()
}

// RegisterRoutes will instantiate and register all handlers in this
// package.
func RegisterRoutes(r swaplock.Registry, tokens token.Controller, rent swaplock.RentPolicy) {
	accounts := ledger.NewAccountBucket()

	r.Handle(pathInitEscrow, initEscrowHandler{accounts: accounts, tokens: tokens, rent: rent})
	r.Handle(pathExchange, exchangeHandler{accounts: accounts, tokens: tokens})
	r.Handle(pathCancel, cancelHandler{accounts: accounts, tokens: tokens})
	r.Handle(pathResetTimeLock, resetTimeLockHandler{accounts: accounts})
}

// initEscrowHandler opens a swap: it fills the record and moves the
// offered deposit under the program's custody authority.
type initEscrowHandler struct {
	accounts ledger.AccountBucket
	tokens   token.Controller
	rent     swaplock.RentPolicy
}

var _ swaplock.Handler = initEscrowHandler{}

// Check verifies the operation without applying it.
func (h initEscrowHandler) Check(ctx context.Context, db swaplock.KVStore, tx swaplock.Tx) (*swaplock.CheckResult, error) {
	if _, _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &swaplock.CheckResult{GasAllocated: initEscrowCost}, nil
}

// Deliver opens the swap once it passed validation.
func (h initEscrowHandler) Deliver(ctx context.Context, db swaplock.KVStore, tx swaplock.Tx) (*swaplock.DeliverResult, error) {
	msg, accts, oe, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}

	oe.record = &EscrowRecord{
		IsInitialized:               true,
		Initializer:                 accts.Initializer.Address,
		TempTokenAccount:            accts.TempTokenAccount.Address,
		InitializerReceivingAccount: accts.ReceivingAccount.Address,
		ExpectedAmount:              msg.Amount,
		UnlockTime:                  msg.UnlockTime,
		Timeout:                     msg.Timeout,
	}
	if err := saveRecord(h.accounts, db, oe); err != nil {
		return nil, err
	}

	// from here on only the derived vault can move the deposit
	err = h.tokens.SetAuthority(db, accts.TempTokenAccount.Address, accts.Initializer.Address, VaultAddress())
	if err != nil {
		return nil, err
	}

	return &swaplock.DeliverResult{Data: oe.acct.Address}, nil
}

// validate ensures the record account can take a new swap and that the
// deposit is in place to take custody of.
func (h initEscrowHandler) validate(ctx context.Context, db swaplock.KVStore, tx swaplock.Tx) (*InitEscrowMsg, *InitEscrowAccounts, *openEscrow, error) {
	rmsg, err := tx.GetMsg()
	if err != nil {
		return nil, nil, nil, errors.Wrap(err, "get message")
	}
	msg, ok := rmsg.(*InitEscrowMsg)
	if !ok {
		return nil, nil, nil, errors.Wrapf(errors.ErrInvalidMsg, "unknown message type %T", rmsg)
	}
	if err := msg.Validate(); err != nil {
		return nil, nil, nil, err
	}
	accts, err := bindInitEscrow(tx.GetAccounts())
	if err != nil {
		return nil, nil, nil, err
	}

	now, err := blockNow(ctx)
	if err != nil {
		return nil, nil, nil, err
	}
	if msg.Timeout <= now {
		return nil, nil, nil, errors.Wrap(ErrInvalidTimeOut, "timeout is not in the future")
	}

	oe, err := fetchRecordAccount(h.accounts, db, accts.RecordAccount.Address)
	if err != nil {
		return nil, nil, nil, err
	}
	if oe.record.IsInitialized {
		return nil, nil, nil, errors.Wrapf(errors.ErrInvalidState, "record %s already holds an open swap", oe.acct.Address)
	}
	if !h.rent.IsExempt(oe.acct.Balance, RecordSize) {
		return nil, nil, nil, errors.Wrapf(ErrNotRentExempt, "record account %s holds %d", oe.acct.Address, oe.acct.Balance)
	}

	// the deposit must already sit in the temp account, controlled by
	// the initializer until custody moves
	ta, err := h.tokens.TokenAccount(db, accts.TempTokenAccount.Address)
	if err != nil {
		return nil, nil, nil, errors.Wrap(err, "temp token account")
	}
	if !ta.Authority.Equals(accts.Initializer.Address) {
		return nil, nil, nil, errors.Wrap(errors.ErrUnauthorized, "temp token account is not controlled by the initializer")
	}

	return msg, accts, oe, nil
}

// exchangeHandler completes a swap: the taker pays the expected amount to
// the initializer's receiving account and collects the full held deposit.
// Both the temp account and the record are closed, their native balances
// return to the initializer.
type exchangeHandler struct {
	accounts ledger.AccountBucket
	tokens   token.Controller
}

var _ swaplock.Handler = exchangeHandler{}

// Check verifies the operation without applying it.
func (h exchangeHandler) Check(ctx context.Context, db swaplock.KVStore, tx swaplock.Tx) (*swaplock.CheckResult, error) {
	if _, _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &swaplock.CheckResult{GasAllocated: exchangeCost}, nil
}

// Deliver executes the swap once it passed validation.
func (h exchangeHandler) Deliver(ctx context.Context, db swaplock.KVStore, tx swaplock.Tx) (*swaplock.DeliverResult, error) {
	msg, accts, oe, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}

	// the taker pays what the initializer asked for
	err = h.tokens.Transfer(db, accts.TakerSource.Address, accts.ReceivingAccount.Address, accts.Taker.Address, msg.Amount)
	if err != nil {
		return nil, asProtocolErr(err)
	}

	// the full held deposit goes to the taker, whatever its size
	held, err := h.tokens.Balance(db, accts.TempTokenAccount.Address)
	if err != nil {
		return nil, err
	}
	err = h.tokens.Transfer(db, accts.TempTokenAccount.Address, accts.TakerDestination.Address, VaultAddress(), held)
	if err != nil {
		return nil, asProtocolErr(err)
	}

	err = h.tokens.CloseAccount(db, accts.TempTokenAccount.Address, VaultAddress(), accts.InitializerMain.Address)
	if err != nil {
		return nil, asProtocolErr(err)
	}
	if err := closeRecord(h.accounts, db, oe, accts.InitializerMain.Address); err != nil {
		return nil, err
	}

	return &swaplock.DeliverResult{Data: oe.acct.Address}, nil
}

// validate ensures the swap is open, inside its window, correctly paid and
// that the passed accounts are the recorded ones.
func (h exchangeHandler) validate(ctx context.Context, db swaplock.KVStore, tx swaplock.Tx) (*ExchangeMsg, *ExchangeAccounts, *openEscrow, error) {
	rmsg, err := tx.GetMsg()
	if err != nil {
		return nil, nil, nil, errors.Wrap(err, "get message")
	}
	msg, ok := rmsg.(*ExchangeMsg)
	if !ok {
		return nil, nil, nil, errors.Wrapf(errors.ErrInvalidMsg, "unknown message type %T", rmsg)
	}
	if err := msg.Validate(); err != nil {
		return nil, nil, nil, err
	}
	accts, err := bindExchange(tx.GetAccounts())
	if err != nil {
		return nil, nil, nil, err
	}

	oe, err := fetchOpenRecord(h.accounts, db, accts.RecordAccount.Address)
	if err != nil {
		return nil, nil, nil, err
	}
	if !accts.TempTokenAccount.Address.Equals(oe.record.TempTokenAccount) {
		return nil, nil, nil, errors.Wrap(errors.ErrInvalidInput, "temp token account does not match the record")
	}
	if !accts.InitializerMain.Address.Equals(oe.record.Initializer) {
		return nil, nil, nil, errors.Wrap(errors.ErrInvalidInput, "initializer account does not match the record")
	}
	if !accts.ReceivingAccount.Address.Equals(oe.record.InitializerReceivingAccount) {
		return nil, nil, nil, errors.Wrap(errors.ErrInvalidInput, "receiving account does not match the record")
	}

	now, err := blockNow(ctx)
	if err != nil {
		return nil, nil, nil, err
	}
	if now < oe.record.UnlockTime {
		return nil, nil, nil, errors.Wrapf(ErrInvalidUnlockTime, "unlocks at %d", oe.record.UnlockTime)
	}
	if now > oe.record.Timeout {
		return nil, nil, nil, errors.Wrapf(ErrInvalidTimeOut, "timed out at %d", oe.record.Timeout)
	}
	if msg.Amount != oe.record.ExpectedAmount {
		return nil, nil, nil, errors.Wrapf(ErrExpectedAmountMismatch, "expected %d, got %d", oe.record.ExpectedAmount, msg.Amount)
	}

	return msg, accts, oe, nil
}

// cancelHandler aborts a swap at the initializer's request. There is no
// time gate, the initializer can always retreat. The deposit is refunded
// into the token account passed at the refund position, which allows
// recovering into a fresh account when the recorded one is gone.
type cancelHandler struct {
	accounts ledger.AccountBucket
	tokens   token.Controller
}

var _ swaplock.Handler = cancelHandler{}

// Check verifies the operation without applying it.
func (h cancelHandler) Check(ctx context.Context, db swaplock.KVStore, tx swaplock.Tx) (*swaplock.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &swaplock.CheckResult{GasAllocated: cancelCost}, nil
}

// Deliver aborts the swap once it passed validation.
func (h cancelHandler) Deliver(ctx context.Context, db swaplock.KVStore, tx swaplock.Tx) (*swaplock.DeliverResult, error) {
	accts, oe, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}

	held, err := h.tokens.Balance(db, accts.TempTokenAccount.Address)
	if err != nil {
		return nil, err
	}
	err = h.tokens.Transfer(db, accts.TempTokenAccount.Address, accts.RefundAccount.Address, VaultAddress(), held)
	if err != nil {
		return nil, asProtocolErr(err)
	}

	err = h.tokens.CloseAccount(db, accts.TempTokenAccount.Address, VaultAddress(), accts.Initializer.Address)
	if err != nil {
		return nil, asProtocolErr(err)
	}
	if err := closeRecord(h.accounts, db, oe, accts.Initializer.Address); err != nil {
		return nil, err
	}

	return &swaplock.DeliverResult{Data: oe.acct.Address}, nil
}

// validate ensures the swap is open and that the initializer who opened it
// signed the cancellation.
func (h cancelHandler) validate(ctx context.Context, db swaplock.KVStore, tx swaplock.Tx) (*CancelAccounts, *openEscrow, error) {
	rmsg, err := tx.GetMsg()
	if err != nil {
		return nil, nil, errors.Wrap(err, "get message")
	}
	if _, ok := rmsg.(*CancelMsg); !ok {
		return nil, nil, errors.Wrapf(errors.ErrInvalidMsg, "unknown message type %T", rmsg)
	}
	accts, err := bindCancel(tx.GetAccounts())
	if err != nil {
		return nil, nil, err
	}

	oe, err := fetchOpenRecord(h.accounts, db, accts.RecordAccount.Address)
	if err != nil {
		return nil, nil, err
	}
	if !accts.Initializer.Address.Equals(oe.record.Initializer) {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "only the initializer can cancel")
	}
	if !accts.TempTokenAccount.Address.Equals(oe.record.TempTokenAccount) {
		return nil, nil, errors.Wrap(errors.ErrInvalidInput, "temp token account does not match the record")
	}

	return accts, oe, nil
}

// resetTimeLockHandler replaces the time window of an open swap. Only the
// initializer can move the window and the new one must still allow an
// exchange.
type resetTimeLockHandler struct {
	accounts ledger.AccountBucket
}

var _ swaplock.Handler = resetTimeLockHandler{}

// Check verifies the operation without applying it.
func (h resetTimeLockHandler) Check(ctx context.Context, db swaplock.KVStore, tx swaplock.Tx) (*swaplock.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &swaplock.CheckResult{GasAllocated: resetTimeLockCost}, nil
}

// Deliver overwrites the window once it passed validation.
func (h resetTimeLockHandler) Deliver(ctx context.Context, db swaplock.KVStore, tx swaplock.Tx) (*swaplock.DeliverResult, error) {
	msg, oe, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}

	oe.record.UnlockTime = msg.UnlockTime
	oe.record.Timeout = msg.Timeout
	if err := saveRecord(h.accounts, db, oe); err != nil {
		return nil, err
	}

	return &swaplock.DeliverResult{Data: oe.acct.Address}, nil
}

// validate ensures the swap is open, the initializer signed and the new
// window is not already dead.
func (h resetTimeLockHandler) validate(ctx context.Context, db swaplock.KVStore, tx swaplock.Tx) (*ResetTimeLockMsg, *openEscrow, error) {
	rmsg, err := tx.GetMsg()
	if err != nil {
		return nil, nil, errors.Wrap(err, "get message")
	}
	msg, ok := rmsg.(*ResetTimeLockMsg)
	if !ok {
		return nil, nil, errors.Wrapf(errors.ErrInvalidMsg, "unknown message type %T", rmsg)
	}
	if err := msg.Validate(); err != nil {
		return nil, nil, err
	}
	accts, err := bindResetTimeLock(tx.GetAccounts())
	if err != nil {
		return nil, nil, err
	}

	now, err := blockNow(ctx)
	if err != nil {
		return nil, nil, err
	}
	if msg.Timeout <= now {
		return nil, nil, errors.Wrap(ErrInvalidTimeOut, "timeout is not in the future")
	}

	oe, err := fetchOpenRecord(h.accounts, db, accts.RecordAccount.Address)
	if err != nil {
		return nil, nil, err
	}
	if !accts.Initializer.Address.Equals(oe.record.Initializer) {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "only the initializer can reset the time lock")
	}

	return msg, oe, nil
}

// openEscrow pairs a record account with its decoded state.
type openEscrow struct {
	acct   *swaplock.Account
	record *EscrowRecord
}

// fetchRecordAccount loads an account owned by the escrow program and
// decodes its record data, initialized or not.
func fetchRecordAccount(accounts ledger.AccountBucket, db swaplock.KVStore, addr swaplock.Address) (*openEscrow, error) {
	acct, err := accounts.Get(db, addr)
	if err != nil {
		return nil, err
	}
	if !acct.Owner.Equals(ProgramAddress) {
		return nil, errors.Wrapf(errors.ErrInvalidType, "account %s is not an escrow record", addr)
	}
	record := &EscrowRecord{}
	if err := record.Unmarshal(acct.Data); err != nil {
		return nil, errors.Wrapf(err, "record account %s", addr)
	}
	return &openEscrow{acct: acct, record: record}, nil
}

// fetchOpenRecord loads a record account and requires an open swap in it.
func fetchOpenRecord(accounts ledger.AccountBucket, db swaplock.KVStore, addr swaplock.Address) (*openEscrow, error) {
	oe, err := fetchRecordAccount(accounts, db, addr)
	if err != nil {
		return nil, err
	}
	if !oe.record.IsInitialized {
		return nil, errors.Wrapf(errors.ErrInvalidState, "record %s holds no open swap", addr)
	}
	return oe, nil
}

// saveRecord writes the record back into its account data.
func saveRecord(accounts ledger.AccountBucket, db swaplock.KVStore, oe *openEscrow) error {
	raw, err := oe.record.Marshal()
	if err != nil {
		return err
	}
	oe.acct.Data = raw
	return accounts.Save(db, oe.acct)
}

// closeRecord zeroes the record and moves the account's native balance to
// dest. The drained account stays in place, closed and uninitialized look
// the same and the storage can be reused once it is funded again.
func closeRecord(accounts ledger.AccountBucket, db swaplock.KVStore, oe *openEscrow, dest swaplock.Address) error {
	refund := oe.acct.Balance
	oe.acct.Balance = 0
	oe.acct.Data = make([]byte, RecordSize)
	if err := accounts.Save(db, oe.acct); err != nil {
		return err
	}
	if refund == 0 {
		return nil
	}
	recipient, err := accounts.GetOrCreate(db, dest)
	if err != nil {
		return err
	}
	total := recipient.Balance + refund
	if total < recipient.Balance {
		return errors.Wrap(ErrAmountOverflow, "refund balance")
	}
	recipient.Balance = total
	return accounts.Save(db, recipient)
}

// blockNow returns the current block time as a unix timestamp.
func blockNow(ctx context.Context) (swaplock.UnixTime, error) {
	t, err := swaplock.BlockTime(ctx)
	if err != nil {
		return 0, err
	}
	return swaplock.AsUnixTime(t), nil
}

// asProtocolErr maps arithmetic overflow in the custody layer onto the
// program's own error code. Anything else passes through.
func asProtocolErr(err error) error {
	if errors.ErrOverflow.Is(err) {
		return errors.Wrap(ErrAmountOverflow, "custody arithmetic")
	}
	return err
}
