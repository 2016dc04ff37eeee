package base58

import (
	"github.com/btcsuite/btcutil/base58"
	"github.com/swaplock/swaplock/errors"
)

// Encode converts given bytes into their base58 text representation.
func Encode(payload []byte) string {
	return base58.Encode(payload)
}

// Decode converts given base58 encoded representation into the raw payload.
func Decode(raw string) ([]byte, error) {
	if len(raw) == 0 {
		return nil, errors.Wrap(errors.ErrEmpty, "base58 decode")
	}
	payload := base58.Decode(raw)
	if len(payload) == 0 {
		return nil, errors.Wrap(errors.ErrInvalidInput, "base58 decode")
	}
	return payload, nil
}
