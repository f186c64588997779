// Package secrets holds the in-memory secret collections and the sync ledger.
//
// [Store] keeps global secrets and per-repository secrets, each as an
// insertion-ordered set keyed by name. [Ledger] remembers, per repository,
// when each secret was last pushed to GitHub.
//
// Both types are built from and flattened back to the model snapshot
// types, so uniqueness is enforced on load as well as on mutation.
package secrets
