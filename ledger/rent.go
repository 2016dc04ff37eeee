package ledger

import (
	"github.com/swaplock/swaplock"
)

const (
	// rentPerByteYear is the charge for keeping one byte of account
	// storage alive for one epoch year.
	rentPerByteYear uint64 = 3480
	// exemptionYears is how many years worth of rent an account must
	// hold at once to be exempt from collection.
	exemptionYears uint64 = 2
	// accountOverhead is the storage footprint every account pays for on
	// top of its own data.
	accountOverhead uint64 = 128
)

// RentOracleAddress is the well-known read-only account an instruction
// names to declare it depends on the rent rule.
var RentOracleAddress = swaplock.NewCondition("ledger", "oracle", []byte("rent")).Address()

// StdRent is the ledger's standard rent policy. An account holding two
// years worth of rent for its size is never charged.
type StdRent struct{}

var _ swaplock.RentPolicy = StdRent{}

// MinimumBalance returns the exemption threshold for an account with the
// given data size.
func (StdRent) MinimumBalance(dataLen int) uint64 {
	return (accountOverhead + uint64(dataLen)) * rentPerByteYear * exemptionYears
}

// IsExempt returns true if the balance meets the exemption threshold for
// the given data size.
func (r StdRent) IsExempt(balance uint64, dataLen int) bool {
	return balance >= r.MinimumBalance(dataLen)
}
