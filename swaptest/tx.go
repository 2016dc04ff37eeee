package swaptest

import "github.com/swaplock/swaplock"

// Tx is a test transaction carrying a fixed message and account list.
type Tx struct {
	// Msg is the message that is to be processed by this transaction.
	Msg swaplock.Msg
	// Accounts is the ordered account list, as if resolved from an
	// instruction.
	Accounts []swaplock.AccountMeta
	// Err if set is returned by GetMsg.
	Err error
}

var _ swaplock.Tx = (*Tx)(nil)

func (tx *Tx) GetMsg() (swaplock.Msg, error) {
	return tx.Msg, tx.Err
}

func (tx *Tx) GetAccounts() []swaplock.AccountMeta {
	return tx.Accounts
}

// Msg is a test message with a configurable path and serialized form.
type Msg struct {
	// RoutePath is returned by the Path method, consumed by the router.
	RoutePath string
	// Serialized represents the serialized form of this message.
	Serialized []byte
	// Err if set is returned by any method call.
	Err error
}

var _ swaplock.Msg = (*Msg)(nil)

func (m *Msg) Path() string {
	return m.RoutePath
}

func (m *Msg) Validate() error {
	return m.Err
}

func (m *Msg) Unmarshal(b []byte) error {
	m.Serialized = b
	return m.Err
}

func (m *Msg) Marshal() ([]byte, error) {
	return m.Serialized, m.Err
}
