// Package core provides the business logic layer for ghsecrets.
//
// This package contains all core functionality separated from UI concerns.
// Functions in this package return structured results instead of printing;
// rendering belongs in the cmd package.
//
// # Design Principles
//
//   - Functions return errors instead of printing to stdout/stderr
//   - The whole secrets snapshot is loaded once by [NewManager], mutated in
//     memory and written back by [Manager.Save]
//   - Remote calls go through the [Remote] interface so the sync logic can
//     be tested without GitHub
//
// # Sync
//
// [Manager.SyncSecret] pushes one secret to every effective repository:
//
//  1. Resolve the target repositories (explicit, allow-list, or remote list
//     minus the deny-list).
//  2. Resolve the effective secret per repository with
//     [Manager.ResolveSecret]: a repository secret overrides a global one.
//  3. Skip pairs whose ledger timestamp is not older than the secret's
//     update time, push the rest and record the sync.
//
// The first remote failure stops the run. Pairs pushed before it stay
// recorded in the ledger, so saving after a failed run and running again
// only retries what is left.
//
// # Repository Sets
//
// [Manager.BootstrapRepositories] snapshots the remote list minus the
// deny-list into the allow-list. [Manager.NewRepositories] reports remote
// repositories that are neither allowed nor denied.
package core
