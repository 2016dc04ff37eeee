package main

import (
	"bytes"
	"testing"

	"github.com/swaplock/swaplock"
	"github.com/swaplock/swaplock/escrow"
	"github.com/swaplock/swaplock/ledger"
	"github.com/swaplock/swaplock/swaptest/assert"
	"github.com/swaplock/swaplock/token"
)

func cliAddr(name string) swaplock.Address {
	return swaplock.NewCondition("test", "addr", []byte(name)).Address()
}

func TestCmdInitEscrowHappyPath(t *testing.T) {
	alice := cliAddr("alice")
	temp := cliAddr("temp")
	receiving := cliAddr("receiving")
	record := cliAddr("record")

	var output bytes.Buffer
	args := []string{
		"-initializer", alice.String(),
		"-temp", temp.String(),
		"-receiving", receiving.String(),
		"-record", record.String(),
		"-amount", "1000",
		"-unlock", "1700000000",
		"-timeout", "1700003600",
	}
	if err := cmdInitEscrow(nil, &output, args); err != nil {
		t.Fatalf("cannot create an init escrow instruction: %s", err)
	}

	ix, err := readIx(&output)
	if err != nil {
		t.Fatalf("cannot unmarshal created instruction: %s", err)
	}
	assert.Equal(t, escrow.ProgramAddress, ix.Program)

	decoded, err := escrow.DecodeMsg(ix.Data)
	if err != nil {
		t.Fatalf("cannot decode instruction data: %s", err)
	}
	msg := decoded.(*escrow.InitEscrowMsg)
	assert.Equal(t, uint64(1000), msg.Amount)
	assert.Equal(t, swaplock.UnixTime(1700000000), msg.UnlockTime)
	assert.Equal(t, swaplock.UnixTime(1700003600), msg.Timeout)

	assert.Equal(t, 6, len(ix.Accounts))
	assert.Equal(t, alice, ix.Accounts[0].Address)
	assert.Equal(t, true, ix.Accounts[0].IsSigner)
	assert.Equal(t, temp, ix.Accounts[1].Address)
	assert.Equal(t, receiving, ix.Accounts[2].Address)
	assert.Equal(t, false, ix.Accounts[2].IsWritable)
	assert.Equal(t, record, ix.Accounts[3].Address)
	assert.Equal(t, ledger.RentOracleAddress, ix.Accounts[4].Address)
	assert.Equal(t, token.ProgramAddress, ix.Accounts[5].Address)
}

func TestCmdInitEscrowDateTimeWindow(t *testing.T) {
	var output bytes.Buffer
	args := []string{
		"-initializer", cliAddr("alice").String(),
		"-temp", cliAddr("temp").String(),
		"-receiving", cliAddr("receiving").String(),
		"-record", cliAddr("record").String(),
		"-amount", "5",
		"-unlock", "2023-11-14 22:13",
		"-timeout", "2023-11-14 23:13",
	}
	if err := cmdInitEscrow(nil, &output, args); err != nil {
		t.Fatalf("cannot create an init escrow instruction: %s", err)
	}

	ix, err := readIx(&output)
	if err != nil {
		t.Fatalf("cannot unmarshal created instruction: %s", err)
	}
	decoded, err := escrow.DecodeMsg(ix.Data)
	if err != nil {
		t.Fatalf("cannot decode instruction data: %s", err)
	}
	msg := decoded.(*escrow.InitEscrowMsg)
	assert.Equal(t, swaplock.UnixTime(1699999980), msg.UnlockTime)
	assert.Equal(t, swaplock.UnixTime(1700003580), msg.Timeout)
}

func TestCmdExchangeHappyPath(t *testing.T) {
	bob := cliAddr("bob")
	source := cliAddr("source")
	destination := cliAddr("destination")
	temp := cliAddr("temp")
	main := cliAddr("alice-main")
	receiving := cliAddr("receiving")
	record := cliAddr("record")

	var output bytes.Buffer
	args := []string{
		"-taker", bob.String(),
		"-source", source.String(),
		"-destination", destination.String(),
		"-temp", temp.String(),
		"-initializer-main", main.String(),
		"-receiving", receiving.String(),
		"-record", record.String(),
		"-amount", "1000",
	}
	if err := cmdExchange(nil, &output, args); err != nil {
		t.Fatalf("cannot create an exchange instruction: %s", err)
	}

	ix, err := readIx(&output)
	if err != nil {
		t.Fatalf("cannot unmarshal created instruction: %s", err)
	}
	decoded, err := escrow.DecodeMsg(ix.Data)
	if err != nil {
		t.Fatalf("cannot decode instruction data: %s", err)
	}
	assert.Equal(t, uint64(1000), decoded.(*escrow.ExchangeMsg).Amount)

	assert.Equal(t, 8, len(ix.Accounts))
	assert.Equal(t, bob, ix.Accounts[0].Address)
	assert.Equal(t, true, ix.Accounts[0].IsSigner)
	assert.Equal(t, source, ix.Accounts[1].Address)
	assert.Equal(t, destination, ix.Accounts[2].Address)
	assert.Equal(t, temp, ix.Accounts[3].Address)
	assert.Equal(t, main, ix.Accounts[4].Address)
	assert.Equal(t, receiving, ix.Accounts[5].Address)
	assert.Equal(t, record, ix.Accounts[6].Address)
	assert.Equal(t, token.ProgramAddress, ix.Accounts[7].Address)
}

func TestCmdCancelHappyPath(t *testing.T) {
	alice := cliAddr("alice")
	temp := cliAddr("temp")
	refund := cliAddr("refund")
	record := cliAddr("record")

	var output bytes.Buffer
	args := []string{
		"-initializer", alice.String(),
		"-temp", temp.String(),
		"-refund", refund.String(),
		"-record", record.String(),
	}
	if err := cmdCancel(nil, &output, args); err != nil {
		t.Fatalf("cannot create a cancel instruction: %s", err)
	}

	ix, err := readIx(&output)
	if err != nil {
		t.Fatalf("cannot unmarshal created instruction: %s", err)
	}
	if _, ok := mustDecode(t, ix.Data).(*escrow.CancelMsg); !ok {
		t.Fatal("expected a cancel message")
	}

	assert.Equal(t, 5, len(ix.Accounts))
	assert.Equal(t, alice, ix.Accounts[0].Address)
	assert.Equal(t, true, ix.Accounts[0].IsSigner)
	assert.Equal(t, temp, ix.Accounts[1].Address)
	assert.Equal(t, refund, ix.Accounts[2].Address)
	assert.Equal(t, record, ix.Accounts[3].Address)
	assert.Equal(t, token.ProgramAddress, ix.Accounts[4].Address)
}

func TestCmdResetTimeLockHappyPath(t *testing.T) {
	alice := cliAddr("alice")
	record := cliAddr("record")

	var output bytes.Buffer
	args := []string{
		"-initializer", alice.String(),
		"-record", record.String(),
		"-unlock", "1700000000",
		"-timeout", "1700007200",
	}
	if err := cmdResetTimeLock(nil, &output, args); err != nil {
		t.Fatalf("cannot create a reset time lock instruction: %s", err)
	}

	ix, err := readIx(&output)
	if err != nil {
		t.Fatalf("cannot unmarshal created instruction: %s", err)
	}

	// the reset instruction carries its own tag, not the cancel one
	assert.Equal(t, byte(3), ix.Data[0])
	msg := mustDecode(t, ix.Data).(*escrow.ResetTimeLockMsg)
	assert.Equal(t, swaplock.UnixTime(1700000000), msg.UnlockTime)
	assert.Equal(t, swaplock.UnixTime(1700007200), msg.Timeout)

	assert.Equal(t, 2, len(ix.Accounts))
	assert.Equal(t, alice, ix.Accounts[0].Address)
	assert.Equal(t, true, ix.Accounts[0].IsSigner)
	assert.Equal(t, record, ix.Accounts[1].Address)
}

func mustDecode(t testing.TB, data []byte) swaplock.Msg {
	t.Helper()
	msg, err := escrow.DecodeMsg(data)
	if err != nil {
		t.Fatalf("cannot decode instruction data: %s", err)
	}
	return msg
}
