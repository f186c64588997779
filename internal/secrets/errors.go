package secrets

import "errors"

var (
	// ErrRepositoryNotTracked is returned when a repository has no secret list
	ErrRepositoryNotTracked = errors.New("repository not tracked")

	// ErrSecretNotFound is returned when a lookup misses
	ErrSecretNotFound = errors.New("secret not found")

	// ErrNeverSynced is returned when the ledger has no record for a pair
	ErrNeverSynced = errors.New("secret never synced")
)
