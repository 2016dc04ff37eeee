package main

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/ioutil"
	"strings"

	"github.com/swaplock/swaplock"
	"github.com/swaplock/swaplock/escrow"
)

func cmdViewInstruction(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Decode and display an instruction summary. This command is helpful when
receiving a serialized instruction. Before signing you should check what
kind of operation are you authorizing.
`)
		fl.PrintDefaults()
	}
	fl.Parse(args)

	ix, err := readIx(input)
	if err != nil {
		return fmt.Errorf("cannot read instruction: %s", err)
	}
	msg, err := escrow.DecodeMsg(ix.Data)
	if err != nil {
		return fmt.Errorf("cannot decode instruction data: %s", err)
	}

	summary := struct {
		Program  swaplock.Address       `json:"program"`
		Accounts []swaplock.AccountMeta `json:"accounts"`
		Path     string                 `json:"path"`
		Message  swaplock.Msg           `json:"message"`
	}{
		Program:  ix.Program,
		Accounts: ix.Accounts,
		Path:     msg.Path(),
		Message:  msg,
	}
	pretty, err := json.MarshalIndent(summary, "", "\t")
	if err != nil {
		return fmt.Errorf("cannot JSON serialize: %s", err)
	}
	_, err = output.Write(pretty)
	return err
}

func cmdViewRecord(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), `
Decode and display an escrow record. The input is the %d byte content of a
record account, either raw or hex encoded.
`, escrow.RecordSize)
		fl.PrintDefaults()
	}
	fl.Parse(args)

	raw, err := ioutil.ReadAll(input)
	if err != nil {
		return fmt.Errorf("cannot read record data: %s", err)
	}
	if len(raw) == 0 {
		return errors.New("no input data")
	}
	if len(raw) != escrow.RecordSize {
		dec, err := hex.DecodeString(strings.TrimSpace(string(raw)))
		if err != nil {
			return fmt.Errorf("record data must be %d raw bytes or their hex form", escrow.RecordSize)
		}
		raw = dec
	}

	var rec escrow.EscrowRecord
	if err := rec.Unmarshal(raw); err != nil {
		return fmt.Errorf("cannot deserialize record: %s", err)
	}
	pretty, err := json.MarshalIndent(rec, "", "\t")
	if err != nil {
		return fmt.Errorf("cannot JSON serialize: %s", err)
	}
	_, err = output.Write(pretty)
	return err
}
