package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/swaplock/swaplock"
)

// flagDie is called when a flag default value cannot be parsed. It is a
// variable so that tests can overwrite it and observe the failure instead
// of terminating the process.
var flagDie = func(description string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, description+"\n", args...)
	os.Exit(2)
}

// flAddress returns a value that is being initialized with given default value
// and optionally overwritten by a command line argument if provided. This
// function follows Go's flag package convention.
// If given value cannot be deserialized to required type, process is
// terminated.
func flAddress(fl *flag.FlagSet, name, defaultVal, usage string) *swaplock.Address {
	var a swaplock.Address
	if defaultVal != "" {
		var err error
		a, err = swaplock.ParseAddress(defaultVal)
		if err != nil {
			flagDie("Cannot parse %q swaplock.Address flag value. %s", name, err)
		}
	}
	fl.Var(&a, name, usage)
	return &a
}

// flTime returns a value that is being initialized with given default value
// and optionally overwritten by a command line argument if provided. This
// function follows Go's flag package convention.
func flTime(fl *flag.FlagSet, name string, defaultVal func() time.Time, usage string) *flagTime {
	var t flagTime
	if defaultVal != nil {
		t.time = defaultVal().UTC()
	}
	fl.Var(&t, name, usage)
	return &t
}

// flagTimeFormat is the text representation accepted and produced by the
// flagTime flag value, interpreted in UTC.
const flagTimeFormat = "2006-01-02 15:04"

type flagTime struct {
	time time.Time
}

func (t *flagTime) String() string {
	if t == nil || t.time.IsZero() {
		return ""
	}
	return t.time.UTC().Format(flagTimeFormat)
}

func (t *flagTime) Set(raw string) error {
	// A plain decimal value is interpreted as unix seconds so that
	// scripts do not have to format dates.
	if sec, err := strconv.ParseInt(raw, 10, 64); err == nil {
		t.time = time.Unix(sec, 0).UTC()
		return nil
	}
	val, err := time.Parse(flagTimeFormat, raw)
	if err != nil {
		return fmt.Errorf("expected unix seconds or %q formatted time: %s", flagTimeFormat, err)
	}
	t.time = val.UTC()
	return nil
}

// Time returns the moment this flag holds.
func (t *flagTime) Time() time.Time {
	return t.time
}

// UnixTime returns the moment this flag holds as unix seconds.
func (t *flagTime) UnixTime() swaplock.UnixTime {
	return swaplock.AsUnixTime(t.time)
}
