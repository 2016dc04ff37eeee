package swaplock

// Msg is a request for the ledger to take an action (make a state
// transition). It is just the request, and must be validated by the
// handlers. All authentication information is in the wrapping Tx.
type Msg interface {
	Persistent

	// Path returns the message path.
	// This is used by the router to locate the proper handler. Msg
	// should be created alongside the handler that corresponds to it.
	//
	// Must be alphanumeric [0-9A-Za-z_\-/]+
	Path() string

	// Validate performs static validation that requires no state access.
	Validate() error
}

// Marshaller is anything that can be represented in binary.
//
// Marshal may validate the data before serializing it and unless you
// previously validated the struct, errors should be expected.
type Marshaller interface {
	Marshal() ([]byte, error)
}

// Persistent supports Marshal and Unmarshal.
//
// This is separated from Marshaller, as Unmarshal almost always requires a
// pointer, and functions that only need to marshal bytes can use the
// Marshaller interface to access non-pointers.
//
// As with Marshaller, this may do internal validation on the data and
// errors should be expected.
type Persistent interface {
	Marshaller
	Unmarshal([]byte) error
}

// Tx is the unit a handler executes: the decoded message together with the
// ordered accounts the instruction names. The runtime resolves the account
// metas, verifying every claimed signer, before any handler runs.
type Tx interface {
	// GetMsg returns the action we wish to execute.
	GetMsg() (Msg, error)

	// GetAccounts returns the ordered account metas named by the
	// instruction. Position carries meaning, every operation defines its
	// own account order.
	GetAccounts() []AccountMeta
}

// GetPath returns the path of the message, or (missing) if no message.
func GetPath(tx Tx) string {
	msg, err := tx.GetMsg()
	if err == nil && msg != nil {
		return msg.Path()
	}
	return "(missing)"
}
