package escrow

import (
	"github.com/swaplock/swaplock/errors"
)

var (
	// ErrInvalidInstruction is returned when instruction bytes carry an
	// unknown tag, an undersized payload or trailing garbage.
	ErrInvalidInstruction = errors.Register(1000, "invalid instruction")

	// ErrNotRentExempt is returned when the record account does not hold
	// the minimum balance for its size at init time.
	ErrNotRentExempt = errors.Register(1001, "not rent exempt")

	// ErrExpectedAmountMismatch is returned when the taker's amount does
	// not equal the amount the initializer expects.
	ErrExpectedAmountMismatch = errors.Register(1002, "expected amount mismatch")

	// ErrAmountOverflow is returned when a custody transfer's arithmetic
	// would overflow.
	ErrAmountOverflow = errors.Register(1003, "amount overflow")

	// ErrInvalidUnlockTime is returned on an exchange before the unlock
	// time.
	ErrInvalidUnlockTime = errors.Register(1004, "cannot exchange before unlock time")

	// ErrInvalidTimeOut is returned on an exchange after the timeout,
	// and when a new time window could never be exchanged at all.
	ErrInvalidTimeOut = errors.Register(1005, "cannot exchange after time out")
)
