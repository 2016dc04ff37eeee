package swaplock

import (
	"encoding/binary"

	"github.com/swaplock/swaplock/errors"
)

// accountHeadSize is the fixed part of a marshaled account: balance (8),
// owner (32) and data length (4).
const accountHeadSize = 8 + AddressLength + 4

// Account is the ledger entity stored per address. The native balance backs
// storage rent, the data belongs to the owning program. An account with an
// empty Owner is a plain balance account no program writes to.
type Account struct {
	// Address is the key the account is stored under. It is set when the
	// account is loaded and is not part of the marshaled value.
	Address Address `json:"address"`
	Balance uint64  `json:"balance"`
	Owner   Address `json:"owner"`
	Data    []byte  `json:"data"`
}

// Validate ensures the account is filled in a way that can be persisted.
func (a *Account) Validate() error {
	if err := a.Address.Validate(); err != nil {
		return errors.Wrap(err, "address")
	}
	if len(a.Owner) != 0 {
		if err := a.Owner.Validate(); err != nil {
			return errors.Wrap(err, "owner")
		}
	}
	return nil
}

// Copy returns an independent copy of this account.
func (a *Account) Copy() *Account {
	data := make([]byte, len(a.Data))
	copy(data, a.Data)
	return &Account{
		Address: a.Address.Clone(),
		Balance: a.Balance,
		Owner:   a.Owner.Clone(),
		Data:    data,
	}
}

// Marshal encodes the account value as a fixed little-endian layout:
// balance, owner (zeros when no program owns the account), data length and
// the raw data. The address is the storage key and is not included.
func (a *Account) Marshal() ([]byte, error) {
	raw := make([]byte, accountHeadSize+len(a.Data))
	binary.LittleEndian.PutUint64(raw, a.Balance)
	if len(a.Owner) != 0 {
		if err := a.Owner.Validate(); err != nil {
			return nil, errors.Wrap(err, "owner")
		}
		copy(raw[8:], a.Owner)
	}
	binary.LittleEndian.PutUint32(raw[8+AddressLength:], uint32(len(a.Data)))
	copy(raw[accountHeadSize:], a.Data)
	return raw, nil
}

// Unmarshal decodes an account value. The address must be assigned by the
// caller as it is the storage key.
func (a *Account) Unmarshal(raw []byte) error {
	if len(raw) < accountHeadSize {
		return errors.Wrapf(errors.ErrInvalidInput, "account value too short: %d", len(raw))
	}
	balance := binary.LittleEndian.Uint64(raw)
	owner := Address(raw[8 : 8+AddressLength])
	dataLen := binary.LittleEndian.Uint32(raw[8+AddressLength:])
	if int(dataLen) != len(raw)-accountHeadSize {
		return errors.Wrapf(errors.ErrInvalidInput, "account data length mismatch: %d", dataLen)
	}
	a.Balance = balance
	if isZeroAddress(owner) {
		a.Owner = nil
	} else {
		a.Owner = owner.Clone()
	}
	a.Data = make([]byte, dataLen)
	copy(a.Data, raw[accountHeadSize:])
	return nil
}

func isZeroAddress(a Address) bool {
	for _, c := range a {
		if c != 0 {
			return false
		}
	}
	return true
}

// AccountMeta names an account an instruction touches, together with the
// access the operation claims on it. The order of metas is fixed per
// operation and carries meaning. Signer flags are only trusted after the
// runtime verified them against the authenticated signers.
type AccountMeta struct {
	Address    Address `json:"address"`
	IsSigner   bool    `json:"signer"`
	IsWritable bool    `json:"writable"`
}

// NewAccountMeta returns a writable account meta.
func NewAccountMeta(addr Address, isSigner bool) AccountMeta {
	return AccountMeta{Address: addr, IsSigner: isSigner, IsWritable: true}
}

// NewReadonlyAccountMeta returns a read-only account meta.
func NewReadonlyAccountMeta(addr Address, isSigner bool) AccountMeta {
	return AccountMeta{Address: addr, IsSigner: isSigner, IsWritable: false}
}

// Instruction is the wire unit of execution: the program to run, the
// ordered accounts it may touch and the encoded message.
type Instruction struct {
	Program  Address       `json:"program"`
	Accounts []AccountMeta `json:"accounts"`
	Data     []byte        `json:"data"`
}

// Validate ensures the instruction can be routed.
func (ix *Instruction) Validate() error {
	if err := ix.Program.Validate(); err != nil {
		return errors.Wrap(err, "program")
	}
	for i, meta := range ix.Accounts {
		if err := meta.Address.Validate(); err != nil {
			return errors.Wrapf(err, "account %d", i)
		}
	}
	if len(ix.Data) == 0 {
		return errors.Wrap(errors.ErrEmpty, "instruction data")
	}
	return nil
}

// RentPolicy computes the minimum native balance an account must hold to be
// exempt from storage rent collection. It mirrors the rent oracle exposed
// by the host chain.
type RentPolicy interface {
	// MinimumBalance returns the balance required for an account with
	// the given data size to be rent exempt.
	MinimumBalance(dataLen int) uint64
	// IsExempt returns true if the given balance frees an account with
	// the given data size from rent collection.
	IsExempt(balance uint64, dataLen int) bool
}
