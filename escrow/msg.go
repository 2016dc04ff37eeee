package escrow

import (
	"encoding/binary"

	"github.com/swaplock/swaplock"
	"github.com/swaplock/swaplock/errors"
)

const (
	pathInitEscrow    = "escrow/init"
	pathExchange      = "escrow/exchange"
	pathCancel        = "escrow/cancel"
	pathResetTimeLock = "escrow/reset_timelock"
)

// Marshaled sizes, tag byte included.
const (
	initEscrowMsgSize    = 1 + 8 + 8 + 8
	exchangeMsgSize      = 1 + 8
	cancelMsgSize        = 1
	resetTimeLockMsgSize = 1 + 8 + 8
)

var (
	_ swaplock.Msg = (*InitEscrowMsg)(nil)
	_ swaplock.Msg = (*ExchangeMsg)(nil)
	_ swaplock.Msg = (*CancelMsg)(nil)
	_ swaplock.Msg = (*ResetTimeLockMsg)(nil)
)

// InitEscrowMsg opens a swap. Amount is what the initializer expects to
// receive, not what they deposit. The deposit is whatever the temp token
// account holds when custody moves to the program.
type InitEscrowMsg struct {
	Amount     uint64            `json:"amount"`
	UnlockTime swaplock.UnixTime `json:"unlock_time"`
	Timeout    swaplock.UnixTime `json:"timeout"`
}

// Path returns the routing path for this message.
func (InitEscrowMsg) Path() string {
	return pathInitEscrow
}

// Validate ensures the time window could ever produce an exchange.
func (m *InitEscrowMsg) Validate() error {
	return validateWindow(m.UnlockTime, m.Timeout)
}

// Marshal encodes the message as tag 0 plus three little endian integers.
func (m *InitEscrowMsg) Marshal() ([]byte, error) {
	raw := make([]byte, initEscrowMsgSize)
	raw[0] = tagInitEscrow
	binary.LittleEndian.PutUint64(raw[1:], m.Amount)
	binary.LittleEndian.PutUint64(raw[9:], uint64(m.UnlockTime))
	binary.LittleEndian.PutUint64(raw[17:], uint64(m.Timeout))
	return raw, nil
}

// Unmarshal decodes the message, requiring the exact wire size.
func (m *InitEscrowMsg) Unmarshal(raw []byte) error {
	if len(raw) != initEscrowMsgSize || raw[0] != tagInitEscrow {
		return errors.Wrapf(ErrInvalidInstruction, "init escrow instruction is %d bytes", len(raw))
	}
	m.Amount = binary.LittleEndian.Uint64(raw[1:9])
	m.UnlockTime = swaplock.UnixTime(int64(binary.LittleEndian.Uint64(raw[9:17])))
	m.Timeout = swaplock.UnixTime(int64(binary.LittleEndian.Uint64(raw[17:25])))
	return nil
}

// ExchangeMsg completes a swap. Amount must equal the expected amount
// stored in the record, the taker states it explicitly so that a stale
// client cannot be tricked into paying more than it signed up for.
type ExchangeMsg struct {
	Amount uint64 `json:"amount"`
}

// Path returns the routing path for this message.
func (ExchangeMsg) Path() string {
	return pathExchange
}

// Validate does nothing. Any amount is well formed on its own, the match
// against the record happens in the handler.
func (m *ExchangeMsg) Validate() error {
	return nil
}

// Marshal encodes the message as tag 1 plus the amount, little endian.
func (m *ExchangeMsg) Marshal() ([]byte, error) {
	raw := make([]byte, exchangeMsgSize)
	raw[0] = tagExchange
	binary.LittleEndian.PutUint64(raw[1:], m.Amount)
	return raw, nil
}

// Unmarshal decodes the message, requiring the exact wire size.
func (m *ExchangeMsg) Unmarshal(raw []byte) error {
	if len(raw) != exchangeMsgSize || raw[0] != tagExchange {
		return errors.Wrapf(ErrInvalidInstruction, "exchange instruction is %d bytes", len(raw))
	}
	m.Amount = binary.LittleEndian.Uint64(raw[1:9])
	return nil
}

// CancelMsg aborts a swap. Only the initializer can cancel, and can do so
// at any time, the time lock binds the exchange and not the retreat.
type CancelMsg struct {
}

// Path returns the routing path for this message.
func (CancelMsg) Path() string {
	return pathCancel
}

// Validate does nothing, the message carries no payload.
func (m *CancelMsg) Validate() error {
	return nil
}

// Marshal encodes the message as the bare tag 2.
func (m *CancelMsg) Marshal() ([]byte, error) {
	return []byte{tagCancel}, nil
}

// Unmarshal decodes the message, rejecting any payload bytes.
func (m *CancelMsg) Unmarshal(raw []byte) error {
	if len(raw) != cancelMsgSize || raw[0] != tagCancel {
		return errors.Wrapf(ErrInvalidInstruction, "cancel instruction is %d bytes", len(raw))
	}
	return nil
}

// ResetTimeLockMsg replaces the time window of an open swap with a new
// one. Both bounds are overwritten together, there is no partial update.
type ResetTimeLockMsg struct {
	UnlockTime swaplock.UnixTime `json:"unlock_time"`
	Timeout    swaplock.UnixTime `json:"timeout"`
}

// Path returns the routing path for this message.
func (ResetTimeLockMsg) Path() string {
	return pathResetTimeLock
}

// Validate ensures the new window could ever produce an exchange.
func (m *ResetTimeLockMsg) Validate() error {
	return validateWindow(m.UnlockTime, m.Timeout)
}

// Marshal encodes the message as tag 3 plus two little endian integers.
func (m *ResetTimeLockMsg) Marshal() ([]byte, error) {
	raw := make([]byte, resetTimeLockMsgSize)
	raw[0] = tagResetTimeLock
	binary.LittleEndian.PutUint64(raw[1:], uint64(m.UnlockTime))
	binary.LittleEndian.PutUint64(raw[9:], uint64(m.Timeout))
	return raw, nil
}

// Unmarshal decodes the message, requiring the exact wire size.
func (m *ResetTimeLockMsg) Unmarshal(raw []byte) error {
	if len(raw) != resetTimeLockMsgSize || raw[0] != tagResetTimeLock {
		return errors.Wrapf(ErrInvalidInstruction, "reset time lock instruction is %d bytes", len(raw))
	}
	m.UnlockTime = swaplock.UnixTime(int64(binary.LittleEndian.Uint64(raw[1:9])))
	m.Timeout = swaplock.UnixTime(int64(binary.LittleEndian.Uint64(raw[9:17])))
	return nil
}

// validateWindow rejects windows that could never be exchanged. The unlock
// must come strictly before the timeout, and neither bound may be negative.
func validateWindow(unlock, timeout swaplock.UnixTime) error {
	if err := unlock.Validate(); err != nil {
		return errors.Wrap(err, "unlock time")
	}
	if err := timeout.Validate(); err != nil {
		return errors.Wrap(err, "timeout")
	}
	if unlock >= timeout {
		return errors.Wrap(ErrInvalidTimeOut, "timeout must be after the unlock time")
	}
	return nil
}
