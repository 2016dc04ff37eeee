package escrow

import (
	"encoding/binary"

	"github.com/swaplock/swaplock"
	"github.com/swaplock/swaplock/errors"
)

// RecordSize is the exact marshaled size of an escrow record: the
// initialized flag, three addresses and three little endian integers.
// Record accounts must be allocated with exactly this much data.
const RecordSize = 1 + 3*swaplock.AddressLength + 3*8

// EscrowRecord is the state of one swap, stored in the data of an account
// owned by the escrow program. A zeroed record and a closed one look the
// same, closing a swap returns its storage to the uninitialized state.
type EscrowRecord struct {
	IsInitialized               bool              `json:"is_initialized"`
	Initializer                 swaplock.Address  `json:"initializer"`
	TempTokenAccount            swaplock.Address  `json:"temp_token_account"`
	InitializerReceivingAccount swaplock.Address  `json:"initializer_receiving_account"`
	ExpectedAmount              uint64            `json:"expected_amount"`
	UnlockTime                  swaplock.UnixTime `json:"unlock_time"`
	Timeout                     swaplock.UnixTime `json:"timeout"`
}

var _ swaplock.Persistent = (*EscrowRecord)(nil)

// Validate ensures an initialized record is complete. A record that is not
// initialized carries no constraints, it is free storage.
func (r *EscrowRecord) Validate() error {
	if !r.IsInitialized {
		return nil
	}
	if err := r.Initializer.Validate(); err != nil {
		return errors.Wrap(err, "initializer")
	}
	if err := r.TempTokenAccount.Validate(); err != nil {
		return errors.Wrap(err, "temp token account")
	}
	if err := r.InitializerReceivingAccount.Validate(); err != nil {
		return errors.Wrap(err, "receiving account")
	}
	return validateWindow(r.UnlockTime, r.Timeout)
}

// Marshal encodes the record into its fixed RecordSize layout.
func (r *EscrowRecord) Marshal() ([]byte, error) {
	raw := make([]byte, RecordSize)
	if r.IsInitialized {
		raw[0] = 1
	}
	copy(raw[1:], r.Initializer)
	copy(raw[1+swaplock.AddressLength:], r.TempTokenAccount)
	copy(raw[1+2*swaplock.AddressLength:], r.InitializerReceivingAccount)
	rest := raw[1+3*swaplock.AddressLength:]
	binary.LittleEndian.PutUint64(rest, r.ExpectedAmount)
	binary.LittleEndian.PutUint64(rest[8:], uint64(r.UnlockTime))
	binary.LittleEndian.PutUint64(rest[16:], uint64(r.Timeout))
	return raw, nil
}

// Unmarshal decodes a record, requiring exactly RecordSize bytes. Zeroed
// addresses decode as nil so that a closed record compares equal to a
// fresh one.
func (r *EscrowRecord) Unmarshal(raw []byte) error {
	if len(raw) != RecordSize {
		return errors.Wrapf(errors.ErrInvalidState, "escrow record is %d bytes", len(raw))
	}
	switch raw[0] {
	case 0:
		r.IsInitialized = false
	case 1:
		r.IsInitialized = true
	default:
		return errors.Wrapf(errors.ErrInvalidState, "invalid initialized flag %d", raw[0])
	}
	r.Initializer = recordAddress(raw[1:])
	r.TempTokenAccount = recordAddress(raw[1+swaplock.AddressLength:])
	r.InitializerReceivingAccount = recordAddress(raw[1+2*swaplock.AddressLength:])
	rest := raw[1+3*swaplock.AddressLength:]
	r.ExpectedAmount = binary.LittleEndian.Uint64(rest)
	r.UnlockTime = swaplock.UnixTime(int64(binary.LittleEndian.Uint64(rest[8:])))
	r.Timeout = swaplock.UnixTime(int64(binary.LittleEndian.Uint64(rest[16:])))
	return nil
}

func recordAddress(raw []byte) swaplock.Address {
	addr := swaplock.Address(raw[:swaplock.AddressLength])
	for _, c := range addr {
		if c != 0 {
			return addr.Clone()
		}
	}
	return nil
}
