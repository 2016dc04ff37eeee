package main

import (
	"flag"
	"fmt"
	"io"

	"github.com/swaplock/swaplock/escrow"
)

func cmdInitEscrow(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprintln(flag.CommandLine.Output(), `
Create an instruction that opens a time-locked swap. The deposit is whatever
the temp token account holds. The expected amount is what the taker must pay
to collect it, and the exchange is only possible within the declared window.
		`)
		fl.PrintDefaults()
	}
	var (
		initializerFl = flAddress(fl, "initializer", "", "Address opening the swap. Must sign the instruction.")
		tempFl        = flAddress(fl, "temp", "", "Token account holding the deposit. Its authority moves to the program.")
		receivingFl   = flAddress(fl, "receiving", "", "Token account that is to receive the taker's payment.")
		recordFl      = flAddress(fl, "record", "", "Pre-funded account the escrow record is written into.")
		amountFl      = fl.Uint64("amount", 0, "Amount of the counter asset expected in return.")
		unlockFl      = flTime(fl, "unlock", nil, "Moment the exchange window opens, as 'YYYY-MM-DD HH:MM' in UTC or unix seconds.")
		timeoutFl     = flTime(fl, "timeout", nil, "Moment the exchange window closes, as 'YYYY-MM-DD HH:MM' in UTC or unix seconds.")
	)
	fl.Parse(args)

	ix, err := escrow.InitEscrowInstruction(
		*initializerFl, *tempFl, *receivingFl, *recordFl,
		*amountFl, unlockFl.UnixTime(), timeoutFl.UnixTime())
	if err != nil {
		return err
	}
	return writeIx(output, ix)
}

func cmdExchange(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprintln(flag.CommandLine.Output(), `
Create an instruction that completes an open swap. The taker pays the
expected amount from the source account and collects the whole deposit into
the destination account.
		`)
		fl.PrintDefaults()
	}
	var (
		takerFl     = flAddress(fl, "taker", "", "Address completing the swap. Must sign the instruction.")
		sourceFl    = flAddress(fl, "source", "", "Taker's token account the payment is taken from.")
		destFl      = flAddress(fl, "destination", "", "Taker's token account the deposit is paid into.")
		tempFl      = flAddress(fl, "temp", "", "Program controlled token account holding the deposit.")
		mainFl      = flAddress(fl, "initializer-main", "", "Initializer's main account the freed rent returns to.")
		receivingFl = flAddress(fl, "receiving", "", "Initializer's token account the payment goes to.")
		recordFl    = flAddress(fl, "record", "", "Account holding the escrow record.")
		amountFl    = fl.Uint64("amount", 0, "Payment amount. Must equal the recorded expected amount.")
	)
	fl.Parse(args)

	ix, err := escrow.ExchangeInstruction(
		*takerFl, *sourceFl, *destFl,
		*tempFl, *mainFl, *receivingFl, *recordFl,
		*amountFl)
	if err != nil {
		return err
	}
	return writeIx(output, ix)
}

func cmdCancel(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprintln(flag.CommandLine.Output(), `
Create an instruction that aborts an open swap. Only the initializer can
cancel. The deposit is refunded into the given token account and the record
account's rent returns to the initializer.
		`)
		fl.PrintDefaults()
	}
	var (
		initializerFl = flAddress(fl, "initializer", "", "Address that opened the swap. Must sign the instruction.")
		tempFl        = flAddress(fl, "temp", "", "Program controlled token account holding the deposit.")
		refundFl      = flAddress(fl, "refund", "", "Token account the deposit is refunded into.")
		recordFl      = flAddress(fl, "record", "", "Account holding the escrow record.")
	)
	fl.Parse(args)

	ix, err := escrow.CancelInstruction(*initializerFl, *tempFl, *refundFl, *recordFl)
	if err != nil {
		return err
	}
	return writeIx(output, ix)
}

func cmdResetTimeLock(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprintln(flag.CommandLine.Output(), `
Create an instruction that replaces the exchange window of an open swap.
Only the initializer can reset the window.
		`)
		fl.PrintDefaults()
	}
	var (
		initializerFl = flAddress(fl, "initializer", "", "Address that opened the swap. Must sign the instruction.")
		recordFl      = flAddress(fl, "record", "", "Account holding the escrow record.")
		unlockFl      = flTime(fl, "unlock", nil, "New window opening, as 'YYYY-MM-DD HH:MM' in UTC or unix seconds.")
		timeoutFl     = flTime(fl, "timeout", nil, "New window closing, as 'YYYY-MM-DD HH:MM' in UTC or unix seconds.")
	)
	fl.Parse(args)

	ix, err := escrow.ResetTimeLockInstruction(
		*initializerFl, *recordFl,
		unlockFl.UnixTime(), timeoutFl.UnixTime())
	if err != nil {
		return err
	}
	return writeIx(output, ix)
}
