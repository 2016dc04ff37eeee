package ledger

import (
	"context"
	"fmt"

	"github.com/swaplock/swaplock"
	"github.com/swaplock/swaplock/errors"
)

// Decoder turns raw instruction data into a program message. Every
// registered program provides one, it is the single boundary where wire
// bytes become typed messages.
type Decoder func(data []byte) (swaplock.Msg, error)

type program struct {
	decode Decoder
	router *Router
}

// Ledger is the reference runtime. It holds the account store, the
// registered programs and executes one instruction at a time against a
// cache layer that is dropped whenever the handler fails.
type Ledger struct {
	db       swaplock.CacheableKVStore
	programs map[string]*program
	accounts AccountBucket
}

// NewLedger returns a runtime over the given store with no programs
// registered.
func NewLedger(db swaplock.CacheableKVStore) *Ledger {
	return &Ledger{
		db:       db,
		programs: make(map[string]*program),
		accounts: NewAccountBucket(),
	}
}

// RegisterProgram claims the program address and returns the registry the
// program must attach its handlers to. Panics when the address is taken,
// program registration is a startup time wiring problem.
func (l *Ledger) RegisterProgram(addr swaplock.Address, decode Decoder) swaplock.Registry {
	if err := addr.Validate(); err != nil {
		panic(fmt.Sprintf("invalid program address: %+v", err))
	}
	if decode == nil {
		panic("program decoder is required")
	}
	if _, ok := l.programs[string(addr)]; ok {
		panic(fmt.Sprintf("program %s is already registered", addr))
	}
	p := &program{
		decode: decode,
		router: NewRouter(),
	}
	l.programs[string(addr)] = p
	return p.router
}

// Execute runs a single instruction to completion. The signers list names
// the addresses whose signatures the caller verified, any account meta
// claiming the signer role must be backed by it. Every write the handler
// performs is buffered and only written to the ledger store when the
// handler returns no error.
func (l *Ledger) Execute(ctx context.Context, ix *swaplock.Instruction, signers ...swaplock.Address) (*swaplock.DeliverResult, error) {
	tx, handler, err := l.route(ix, signers)
	if err != nil {
		return nil, err
	}

	cache := l.db.CacheWrap()
	res, err := handler.Deliver(ctx, cache, tx)
	if err != nil {
		cache.Discard()
		return nil, err
	}
	cache.Write()
	return res, nil
}

// Check runs the instruction's validation path without persisting any
// state change.
func (l *Ledger) Check(ctx context.Context, ix *swaplock.Instruction, signers ...swaplock.Address) (*swaplock.CheckResult, error) {
	tx, handler, err := l.route(ix, signers)
	if err != nil {
		return nil, err
	}

	cache := l.db.CacheWrap()
	defer cache.Discard()
	return handler.Check(ctx, cache, tx)
}

// route validates the instruction envelope and resolves it into the
// transaction and handler to run. No state is touched here.
func (l *Ledger) route(ix *swaplock.Instruction, signers []swaplock.Address) (swaplock.Tx, swaplock.Handler, error) {
	if ix == nil {
		return nil, nil, errors.Wrap(errors.ErrEmpty, "instruction")
	}
	if err := ix.Validate(); err != nil {
		return nil, nil, err
	}

	prog, ok := l.programs[string(ix.Program)]
	if !ok {
		return nil, nil, errors.Wrapf(errors.ErrNotFound, "program %s", ix.Program)
	}

	// A signer flag is a claim the program trusts. It must be backed by
	// a signature the caller verified before any handler runs.
	for i, meta := range ix.Accounts {
		if !meta.IsSigner {
			continue
		}
		if !isSigner(meta.Address, signers) {
			return nil, nil, errors.Wrapf(errors.ErrUnauthorized, "account %d claims an unverified signer", i)
		}
	}

	msg, err := prog.decode(ix.Data)
	if err != nil {
		return nil, nil, err
	}
	if err := msg.Validate(); err != nil {
		return nil, nil, err
	}

	tx := &ledgerTx{msg: msg, accounts: ix.Accounts}
	return tx, prog.router.Handler(msg.Path()), nil
}

func isSigner(addr swaplock.Address, signers []swaplock.Address) bool {
	for _, s := range signers {
		if addr.Equals(s) {
			return true
		}
	}
	return false
}

// CreateAccount persists a fresh account record. Fails with ErrDuplicate
// when the address is already taken.
func (l *Ledger) CreateAccount(addr swaplock.Address, balance uint64, owner swaplock.Address, data []byte) (*swaplock.Account, error) {
	if l.accounts.Has(l.db, addr) {
		return nil, errors.Wrapf(errors.ErrDuplicate, "account %s", addr)
	}
	acct := &swaplock.Account{
		Address: addr.Clone(),
		Balance: balance,
		Owner:   owner.Clone(),
		Data:    data,
	}
	if err := l.accounts.Save(l.db, acct); err != nil {
		return nil, err
	}
	return acct, nil
}

// Fund adds to the native balance of an account, creating a plain balance
// account when the address holds none yet.
func (l *Ledger) Fund(addr swaplock.Address, amount uint64) error {
	acct, err := l.accounts.GetOrCreate(l.db, addr)
	if err != nil {
		return err
	}
	total := acct.Balance + amount
	if total < acct.Balance {
		return errors.Wrapf(errors.ErrOverflow, "funding account %s", addr)
	}
	acct.Balance = total
	return l.accounts.Save(l.db, acct)
}

// Account returns the stored account record.
func (l *Ledger) Account(addr swaplock.Address) (*swaplock.Account, error) {
	return l.accounts.Get(l.db, addr)
}

// DB exposes the backing store. Programs maintaining their own state
// layouts, the genesis loaders and tooling read and write through it.
func (l *Ledger) DB() swaplock.CacheableKVStore {
	return l.db
}

// ledgerTx feeds a decoded message and the instruction's account list to a
// handler.
type ledgerTx struct {
	msg      swaplock.Msg
	accounts []swaplock.AccountMeta
}

var _ swaplock.Tx = (*ledgerTx)(nil)

func (tx *ledgerTx) GetMsg() (swaplock.Msg, error) {
	return tx.msg, nil
}

func (tx *ledgerTx) GetAccounts() []swaplock.AccountMeta {
	return tx.accounts
}
