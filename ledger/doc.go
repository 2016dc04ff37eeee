/*
Package ledger provides a reference in-memory runtime for account-based
programs.

The ledger stores one account record per address, routes instructions to
the program registered under the instruction's program address and executes
every operation all-or-nothing: handler writes go into a cache layer that
is only written out when the handler succeeds.

This runtime exists so programs, their tests and the command line tooling
can run complete scenarios without a host chain. It deliberately implements
only the pieces programs observe: accounts, signer verification, atomic
execution, the rent rule and genesis loading.
*/
package ledger
