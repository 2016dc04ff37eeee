package token

import (
	"encoding/binary"

	"github.com/swaplock/swaplock"
	"github.com/swaplock/swaplock/errors"
)

// AccountSize is the exact marshaled size of a token account state: asset
// (32), authority (32) and amount (8).
const AccountSize = 2*swaplock.AddressLength + 8

// TokenAccount is the state stored in the data of every ledger account the
// token program owns: which asset it holds, who may move it and how much
// it currently holds.
type TokenAccount struct {
	// Address of the ledger account carrying this state. It is set when
	// the state is loaded and is not part of the marshaled value.
	Address   swaplock.Address `json:"address"`
	Asset     swaplock.Address `json:"asset"`
	Authority swaplock.Address `json:"authority"`
	Amount    uint64           `json:"amount"`
}

// Validate ensures the state can be persisted.
func (t *TokenAccount) Validate() error {
	if err := t.Address.Validate(); err != nil {
		return errors.Wrap(err, "address")
	}
	if err := t.Asset.Validate(); err != nil {
		return errors.Wrap(err, "asset")
	}
	if err := t.Authority.Validate(); err != nil {
		return errors.Wrap(err, "authority")
	}
	return nil
}

// Marshal encodes the state as the fixed little-endian layout.
func (t *TokenAccount) Marshal() ([]byte, error) {
	if err := t.Asset.Validate(); err != nil {
		return nil, errors.Wrap(err, "asset")
	}
	if err := t.Authority.Validate(); err != nil {
		return nil, errors.Wrap(err, "authority")
	}
	raw := make([]byte, AccountSize)
	copy(raw, t.Asset)
	copy(raw[swaplock.AddressLength:], t.Authority)
	binary.LittleEndian.PutUint64(raw[2*swaplock.AddressLength:], t.Amount)
	return raw, nil
}

// Unmarshal decodes the state from its fixed layout. The address must be
// assigned by the caller as it is the storage key.
func (t *TokenAccount) Unmarshal(raw []byte) error {
	if len(raw) != AccountSize {
		return errors.Wrapf(errors.ErrInvalidState, "token account state is %d bytes", len(raw))
	}
	t.Asset = swaplock.Address(raw[:swaplock.AddressLength]).Clone()
	t.Authority = swaplock.Address(raw[swaplock.AddressLength : 2*swaplock.AddressLength]).Clone()
	t.Amount = binary.LittleEndian.Uint64(raw[2*swaplock.AddressLength:])
	return nil
}
