package escrow

import (
	"github.com/swaplock/swaplock"
	"github.com/swaplock/swaplock/errors"
)

// Wire tags. The first byte of the instruction data selects the operation,
// the rest is the fixed size little endian payload of that operation.
const (
	tagInitEscrow byte = iota
	tagExchange
	tagCancel
	tagResetTimeLock
)

// DecodeMsg is the single boundary where raw instruction bytes become a
// typed message. Unknown tags, undersized payloads and trailing bytes all
// fail with ErrInvalidInstruction. The ledger never sees partially decoded
// data.
func DecodeMsg(data []byte) (swaplock.Msg, error) {
	if len(data) == 0 {
		return nil, errors.Wrap(ErrInvalidInstruction, "empty instruction data")
	}

	var msg swaplock.Msg
	switch tag := data[0]; tag {
	case tagInitEscrow:
		msg = &InitEscrowMsg{}
	case tagExchange:
		msg = &ExchangeMsg{}
	case tagCancel:
		msg = &CancelMsg{}
	case tagResetTimeLock:
		msg = &ResetTimeLockMsg{}
	default:
		return nil, errors.Wrapf(ErrInvalidInstruction, "unknown tag %d", tag)
	}

	if err := msg.Unmarshal(data); err != nil {
		return nil, err
	}
	return msg, nil
}
