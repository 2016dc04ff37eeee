package escrow

import (
	"github.com/swaplock/swaplock"
	"github.com/swaplock/swaplock/ledger"
	"github.com/swaplock/swaplock/token"
)

// InitEscrowInstruction builds the instruction that opens a swap. Amount
// is what the initializer expects to receive, the deposit is whatever the
// temp token account holds.
func InitEscrowInstruction(
	initializer, tempToken, receiving, record swaplock.Address,
	amount uint64,
	unlock, timeout swaplock.UnixTime,
) (*swaplock.Instruction, error) {
	msg := &InitEscrowMsg{Amount: amount, UnlockTime: unlock, Timeout: timeout}
	if err := msg.Validate(); err != nil {
		return nil, err
	}
	data, err := msg.Marshal()
	if err != nil {
		return nil, err
	}
	return &swaplock.Instruction{
		Program: ProgramAddress,
		Accounts: []swaplock.AccountMeta{
			swaplock.NewAccountMeta(initializer, true),
			swaplock.NewAccountMeta(tempToken, false),
			swaplock.NewReadonlyAccountMeta(receiving, false),
			swaplock.NewAccountMeta(record, false),
			swaplock.NewReadonlyAccountMeta(ledger.RentOracleAddress, false),
			swaplock.NewReadonlyAccountMeta(token.ProgramAddress, false),
		},
		Data: data,
	}, nil
}

// ExchangeInstruction builds the instruction that completes a swap. The
// taker pays amount from source and collects the deposit into destination.
func ExchangeInstruction(
	taker, source, destination swaplock.Address,
	tempToken, initializerMain, receiving, record swaplock.Address,
	amount uint64,
) (*swaplock.Instruction, error) {
	msg := &ExchangeMsg{Amount: amount}
	if err := msg.Validate(); err != nil {
		return nil, err
	}
	data, err := msg.Marshal()
	if err != nil {
		return nil, err
	}
	return &swaplock.Instruction{
		Program: ProgramAddress,
		Accounts: []swaplock.AccountMeta{
			swaplock.NewAccountMeta(taker, true),
			swaplock.NewAccountMeta(source, false),
			swaplock.NewAccountMeta(destination, false),
			swaplock.NewAccountMeta(tempToken, false),
			swaplock.NewAccountMeta(initializerMain, false),
			swaplock.NewAccountMeta(receiving, false),
			swaplock.NewAccountMeta(record, false),
			swaplock.NewReadonlyAccountMeta(token.ProgramAddress, false),
		},
		Data: data,
	}, nil
}

// CancelInstruction builds the instruction that aborts a swap, refunding
// the deposit into the given token account.
func CancelInstruction(
	initializer, tempToken, refund, record swaplock.Address,
) (*swaplock.Instruction, error) {
	data, err := (&CancelMsg{}).Marshal()
	if err != nil {
		return nil, err
	}
	return &swaplock.Instruction{
		Program: ProgramAddress,
		Accounts: []swaplock.AccountMeta{
			swaplock.NewAccountMeta(initializer, true),
			swaplock.NewAccountMeta(tempToken, false),
			swaplock.NewReadonlyAccountMeta(refund, false),
			swaplock.NewAccountMeta(record, false),
			swaplock.NewReadonlyAccountMeta(token.ProgramAddress, false),
		},
		Data: data,
	}, nil
}

// ResetTimeLockInstruction builds the instruction that replaces the time
// window of an open swap.
func ResetTimeLockInstruction(
	initializer, record swaplock.Address,
	unlock, timeout swaplock.UnixTime,
) (*swaplock.Instruction, error) {
	msg := &ResetTimeLockMsg{UnlockTime: unlock, Timeout: timeout}
	if err := msg.Validate(); err != nil {
		return nil, err
	}
	data, err := msg.Marshal()
	if err != nil {
		return nil, err
	}
	return &swaplock.Instruction{
		Program: ProgramAddress,
		Accounts: []swaplock.AccountMeta{
			swaplock.NewAccountMeta(initializer, true),
			swaplock.NewAccountMeta(record, false),
		},
		Data: data,
	}, nil
}
