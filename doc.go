/*

Package swaplock defines the primitives shared by every program running on
the swaplock ledger: addresses and conditions, unix time, block context,
account handles, instructions, the message and handler contracts, and the
key-value store interfaces state is kept in.

The escrow protocol itself lives in the escrow package. The ledger package
provides a reference in-memory runtime that routes instructions to the
registered programs. Subpackages depend on this package, never the other
way around.

*/

package swaplock
