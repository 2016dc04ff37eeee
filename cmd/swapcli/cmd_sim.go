package main

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"io/ioutil"
	"sort"

	"github.com/swaplock/swaplock"
	"github.com/swaplock/swaplock/escrow"
	"github.com/swaplock/swaplock/ledger"
	"github.com/swaplock/swaplock/store"
	"github.com/swaplock/swaplock/token"
)

// simScript is the input document of the simulate command: the genesis
// state and an ordered list of instructions to execute against it.
type simScript struct {
	Genesis swaplock.Options `json:"genesis"`
	Steps   []simStep        `json:"steps"`
}

type simStep struct {
	Time        swaplock.UnixTime     `json:"time"`
	Signers     []swaplock.Address    `json:"signers"`
	Instruction *swaplock.Instruction `json:"instruction"`
}

type simResult struct {
	Step    int         `json:"step"`
	Path    string      `json:"path,omitempty"`
	Error   string      `json:"error,omitempty"`
	Changes []simChange `json:"changes,omitempty"`
}

type simChange struct {
	Key     string `json:"key"`
	Value   string `json:"value,omitempty"`
	Deleted bool   `json:"deleted,omitempty"`
}

func cmdSimulate(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Run a scripted simulation against a fresh in-memory ledger.

The input document declares the genesis state and an ordered list of steps.
Each step names the block time, the verified signers and the instruction to
execute, in the representation the build commands produce. Steps run in
order. A failing step reports its error, leaves no state change behind and
the script continues. The output lists every step's outcome together with
the store changes it committed.
`)
		fl.PrintDefaults()
	}
	fl.Parse(args)

	raw, err := ioutil.ReadAll(input)
	if err != nil {
		return fmt.Errorf("cannot read script: %s", err)
	}
	var script simScript
	if err := json.Unmarshal(raw, &script); err != nil {
		return fmt.Errorf("cannot deserialize script: %s", err)
	}

	db := store.NewRecordingStore(store.MemStore())
	rec := db.(store.Recorder)
	l := ledger.NewLedger(db.(swaplock.CacheableKVStore))
	reg := l.RegisterProgram(escrow.ProgramAddress, escrow.DecodeMsg)
	escrow.RegisterRoutes(reg, token.NewController(), ledger.StdRent{})

	if err := l.FromGenesis(script.Genesis, token.Initializer{}, escrow.Initializer{}); err != nil {
		return fmt.Errorf("cannot load genesis: %s", err)
	}
	// genesis writes belong to no step
	drainChanges(rec)

	results := make([]simResult, 0, len(script.Steps))
	for i, step := range script.Steps {
		res := simResult{Step: i + 1}
		if step.Instruction != nil {
			if msg, err := escrow.DecodeMsg(step.Instruction.Data); err == nil {
				res.Path = msg.Path()
			}
		}

		ctx := swaplock.WithHeight(context.Background(), int64(i+1))
		ctx = swaplock.WithBlockTime(ctx, step.Time.Time())
		if _, err := l.Execute(ctx, step.Instruction, step.Signers...); err != nil {
			res.Error = err.Error()
		}
		res.Changes = drainChanges(rec)
		results = append(results, res)
	}

	pretty, err := json.MarshalIndent(results, "", "\t")
	if err != nil {
		return fmt.Errorf("cannot JSON serialize: %s", err)
	}
	_, err = output.Write(pretty)
	return err
}

// drainChanges empties the recorder and returns what was committed since
// the previous drain, sorted by key.
func drainChanges(rec store.Recorder) []simChange {
	pairs := rec.KVPairs()
	changes := make([]simChange, 0, len(pairs))
	for key, value := range pairs {
		c := simChange{Key: hex.EncodeToString([]byte(key))}
		if store.IsDeleted(value) {
			c.Deleted = true
		} else {
			c.Value = hex.EncodeToString(value)
		}
		changes = append(changes, c)
		delete(pairs, key)
	}
	sort.Slice(changes, func(i, j int) bool { return changes[i].Key < changes[j].Key })
	return changes
}
