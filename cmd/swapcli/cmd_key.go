package main

import (
	"encoding/hex"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/ioutil"
	"os"

	"github.com/stellar/go/exp/crypto/derivation"
	"github.com/swaplock/swaplock/crypto"
	"golang.org/x/crypto/ed25519"
)

func cmdKeygen(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Generate a new private key.

When successful a new file with binary content containing private key is
created. This command fails if the private key file already exists.
`)
		fl.PrintDefaults()
	}
	var (
		keyPathFl = fl.String("key", env("SWAPCLI_PRIV_KEY", os.Getenv("HOME")+"/.swaplock.priv.key"),
			"Path to the private key file that instructions should be signed with. You can use SWAPCLI_PRIV_KEY environment variable to set it.")
		seedFl = fl.String("seed", "", "Hex encoded seed for deterministic key generation. A random key is generated when not provided.")
		pathFl = fl.String("path", "", "Optional SLIP-0010 derivation path applied to the seed, for example \"m/44'/540'/0'\".")
	)
	fl.Parse(args)

	if _, err := os.Stat(*keyPathFl); !os.IsNotExist(err) {
		// Do not allow to overwrite already existing private key. User
		// must manually delete it first to ensure we do not delete
		// such crucial data by an accident (bad command usage).
		return fmt.Errorf("private key file %q already exists, delete this file and try again", *keyPathFl)
	}

	key, err := generateKey(*seedFl, *pathFl)
	if err != nil {
		return err
	}

	fd, err := os.OpenFile(*keyPathFl, os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return fmt.Errorf("cannot create private key file: %s", err)
	}
	defer fd.Close()

	if _, err := fd.Write(key.Ed25519); err != nil {
		return fmt.Errorf("cannot write private key: %s", err)
	}
	if err := fd.Close(); err != nil {
		return fmt.Errorf("cannot close private key file: %s", err)
	}
	return nil
}

// generateKey creates an ed25519 private key. With a seed the result is
// deterministic, optionally after SLIP-0010 derivation along the given path.
func generateKey(hexSeed, path string) (*crypto.PrivateKey, error) {
	if hexSeed == "" {
		if path != "" {
			return nil, errors.New("a derivation path requires a seed")
		}
		return crypto.GenPrivKeyEd25519(), nil
	}
	seed, err := hex.DecodeString(hexSeed)
	if err != nil {
		return nil, fmt.Errorf("cannot decode seed: %s", err)
	}
	if path != "" {
		key, err := derivation.DeriveForPath(path, seed)
		if err != nil {
			return nil, fmt.Errorf("cannot derive key for path %q: %s", path, err)
		}
		pub, err := key.PublicKey()
		if err != nil {
			return nil, fmt.Errorf("cannot derive public key: %s", err)
		}
		return &crypto.PrivateKey{Ed25519: append(key.Key, pub...)}, nil
	}
	if len(seed) != ed25519.SeedSize {
		return nil, fmt.Errorf("seed must be %d bytes, got %d", ed25519.SeedSize, len(seed))
	}
	return crypto.PrivKeyEd25519FromSeed(seed), nil
}

func cmdKeyaddr(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Print out the address associated with your private key.
`)
		fl.PrintDefaults()
	}
	var (
		keyPathFl = fl.String("key", env("SWAPCLI_PRIV_KEY", os.Getenv("HOME")+"/.swaplock.priv.key"),
			"Path to the private key file that instructions should be signed with. You can use SWAPCLI_PRIV_KEY environment variable to set it.")
	)
	fl.Parse(args)

	raw, err := ioutil.ReadFile(*keyPathFl)
	if err != nil {
		return fmt.Errorf("cannot read private key file: %s", err)
	}

	if len(raw) != ed25519.PrivateKeySize {
		return fmt.Errorf("invalid private key length: %d", len(raw))
	}

	key := &crypto.PrivateKey{Ed25519: raw}
	_, err = fmt.Fprintln(output, key.PublicKey().Address())
	return err
}
