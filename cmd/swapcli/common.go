package main

import (
	"encoding/json"
	"errors"
	"io"
	"io/ioutil"

	"github.com/swaplock/swaplock"
)

// writeIx serializes the instruction as JSON. Every build command produces
// this representation so that commands can be combined with a unix pipe.
func writeIx(w io.Writer, ix *swaplock.Instruction) error {
	raw, err := json.Marshal(ix)
	if err != nil {
		return err
	}
	raw = append(raw, '\n')
	_, err = w.Write(raw)
	return err
}

// readIx deserializes an instruction written with writeIx.
func readIx(r io.Reader) (*swaplock.Instruction, error) {
	raw, err := ioutil.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, errors.New("no input data")
	}
	var ix swaplock.Instruction
	if err := json.Unmarshal(raw, &ix); err != nil {
		return nil, err
	}
	return &ix, nil
}
