package token

import (
	"github.com/swaplock/swaplock"
	"github.com/swaplock/swaplock/errors"
	"github.com/swaplock/swaplock/ledger"
)

// ProgramAddress is the well-known address of the token custody program.
// Every token account's ledger record is owned by it.
var ProgramAddress = swaplock.NewCondition("token", "program", []byte("custody")).Address()

// Controller exposes the token custody primitive to other programs. All
// reads and writes go through the KVStore passed per call, so a controller
// used inside a handler inherits the handler's all-or-nothing execution.
type Controller struct {
	accounts ledger.AccountBucket
}

// NewController returns a controller over the shared account namespace.
func NewController() Controller {
	return Controller{accounts: ledger.NewAccountBucket()}
}

// TokenAccount loads the token state held by the ledger account at addr.
func (c Controller) TokenAccount(db swaplock.KVStore, addr swaplock.Address) (*TokenAccount, error) {
	_, state, err := c.load(db, addr)
	return state, err
}

// Balance returns the amount the token account currently holds.
func (c Controller) Balance(db swaplock.KVStore, addr swaplock.Address) (uint64, error) {
	_, state, err := c.load(db, addr)
	if err != nil {
		return 0, err
	}
	return state.Amount, nil
}

// Issue initializes a token account at addr holding the given amount of
// the asset. An existing plain balance account at the address is adopted,
// its native balance staying untouched. Fails when the address already
// carries program-owned state.
func (c Controller) Issue(db swaplock.KVStore, addr, asset, authority swaplock.Address, amount uint64) error {
	state := &TokenAccount{
		Address:   addr.Clone(),
		Asset:     asset.Clone(),
		Authority: authority.Clone(),
		Amount:    amount,
	}
	if err := state.Validate(); err != nil {
		return err
	}
	acct, err := c.accounts.GetOrCreate(db, addr)
	if err != nil {
		return err
	}
	if len(acct.Owner) != 0 || len(acct.Data) != 0 {
		return errors.Wrapf(errors.ErrDuplicate, "account %s is already in use", addr)
	}
	raw, err := state.Marshal()
	if err != nil {
		return err
	}
	acct.Owner = ProgramAddress
	acct.Data = raw
	return c.accounts.Save(db, acct)
}

// Transfer moves amount of the held asset from src to dest. The authority
// must be the one stored on the source account. Callers pass an address
// they verified themselves, either a checked signer or a program-derived
// authority they control.
func (c Controller) Transfer(db swaplock.KVStore, src, dest, authority swaplock.Address, amount uint64) error {
	if src.Equals(dest) {
		return errors.Wrap(errors.ErrInvalidInput, "transfer to self")
	}
	srcAcct, from, err := c.load(db, src)
	if err != nil {
		return err
	}
	if !from.Authority.Equals(authority) {
		return errors.Wrapf(errors.ErrUnauthorized, "authority does not control %s", src)
	}
	dstAcct, to, err := c.load(db, dest)
	if err != nil {
		return err
	}
	if !from.Asset.Equals(to.Asset) {
		return errors.Wrapf(errors.ErrInvalidInput, "account %s holds a different asset", dest)
	}
	if from.Amount < amount {
		return errors.Wrapf(errors.ErrInsufficientAmount, "account %s holds %d", src, from.Amount)
	}
	total := to.Amount + amount
	if total < to.Amount {
		return errors.Wrap(errors.ErrOverflow, "destination amount")
	}
	from.Amount -= amount
	to.Amount = total
	if err := c.store(db, srcAcct, from); err != nil {
		return err
	}
	return c.store(db, dstAcct, to)
}

// SetAuthority hands control of the token account over to next. Only the
// current authority may do this.
func (c Controller) SetAuthority(db swaplock.KVStore, addr, authority, next swaplock.Address) error {
	acct, state, err := c.load(db, addr)
	if err != nil {
		return err
	}
	if !state.Authority.Equals(authority) {
		return errors.Wrapf(errors.ErrUnauthorized, "authority does not control %s", addr)
	}
	if err := next.Validate(); err != nil {
		return errors.Wrap(err, "next authority")
	}
	state.Authority = next.Clone()
	return c.store(db, acct, state)
}

// CloseAccount removes a drained token account and credits its native
// balance to dest. Only the current authority may close, and only once the
// account holds no tokens.
func (c Controller) CloseAccount(db swaplock.KVStore, addr, authority, dest swaplock.Address) error {
	if addr.Equals(dest) {
		return errors.Wrap(errors.ErrInvalidInput, "close to self")
	}
	acct, state, err := c.load(db, addr)
	if err != nil {
		return err
	}
	if !state.Authority.Equals(authority) {
		return errors.Wrapf(errors.ErrUnauthorized, "authority does not control %s", addr)
	}
	if state.Amount != 0 {
		return errors.Wrapf(errors.ErrInvalidState, "account %s still holds %d tokens", addr, state.Amount)
	}
	recipient, err := c.accounts.GetOrCreate(db, dest)
	if err != nil {
		return err
	}
	total := recipient.Balance + acct.Balance
	if total < recipient.Balance {
		return errors.Wrap(errors.ErrOverflow, "destination balance")
	}
	recipient.Balance = total
	if err := c.accounts.Save(db, recipient); err != nil {
		return err
	}
	c.accounts.Delete(db, addr)
	return nil
}

// load reads the ledger account at addr and decodes its token state.
func (c Controller) load(db swaplock.KVStore, addr swaplock.Address) (*swaplock.Account, *TokenAccount, error) {
	acct, err := c.accounts.Get(db, addr)
	if err != nil {
		return nil, nil, err
	}
	if !acct.Owner.Equals(ProgramAddress) {
		return nil, nil, errors.Wrapf(errors.ErrInvalidType, "account %s is not a token account", addr)
	}
	var state TokenAccount
	if err := state.Unmarshal(acct.Data); err != nil {
		return nil, nil, errors.Wrapf(err, "token account %s", addr)
	}
	state.Address = addr.Clone()
	return acct, &state, nil
}

// store writes the token state back into the ledger account.
func (c Controller) store(db swaplock.KVStore, acct *swaplock.Account, state *TokenAccount) error {
	raw, err := state.Marshal()
	if err != nil {
		return err
	}
	acct.Data = raw
	return c.accounts.Save(db, acct)
}
