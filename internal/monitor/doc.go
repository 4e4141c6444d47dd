// Package monitor holds the canonical monitor record shared by the declared
// and remote side of a reconciliation run, together with the two pure
// operations the reconciler builds on: indexing records by name and deciding
// whether two records with the same name describe the same monitor.
//
// # Records
//
// A Record mirrors the subset of the Datadog monitor document that alertstate
// manages. The remote ID is only set on records fetched from Datadog; declared
// records never carry one, identity is resolved by name at run time.
//
// # Semantic diff
//
// Two records are considered equal when their projections match:
//
//   - message
//   - name
//   - priority
//   - query
//   - tags (order-insensitive)
//   - type (compared as string)
//
// The options block is never compared. Changing only options on a declared
// record does not trigger an update.
package monitor
