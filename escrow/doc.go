/*
Package escrow implements a time locked token swap between two parties
that never have to trust each other.

The initializer deposits tokens of one asset into a temp token account,
opens a swap stating the amount of another asset they expect in return
and the time window in which the trade may happen. Custody of the
deposit moves to a derived vault authority that no key controls. Any
taker who pays the expected amount inside the window receives the full
deposit. The initializer can cancel at any time to recover the deposit,
and can move the time window of an open swap.

State lives in record accounts owned by the escrow program. Closing a
swap, by exchange or by cancel, zeroes the record and returns the
account's native balance, so closed storage is indistinguishable from
storage that was never used.
*/
package escrow
