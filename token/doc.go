/*
Package token implements the custody primitive other programs build on.

A token account is a ledger account owned by the token program whose data
holds a fixed layout triple: the asset it holds, the authority allowed to
move it and the current amount. The Controller exposes balance reads,
transfers, authority handover, account closing and issuance. Every check a
transfer needs, authority, matching asset, sufficient amount, overflow,
happens here so calling programs only reason about who the authority is.
*/
package token
