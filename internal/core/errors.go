package core

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingToken is returned when a remote operation has no token
	ErrMissingToken = errors.New("github token is not configured")

	// ErrInvalidSecretName is returned for names GitHub would reject
	ErrInvalidSecretName = errors.New("invalid secret name")

	// ErrInvalidRepository is returned for names not shaped owner/name
	ErrInvalidRepository = errors.New("invalid repository name")
)

// SyncError wraps the remote failure that stopped a sync run
type SyncError struct {
	Secret     string
	Repository string
	Err        error
}

func (e *SyncError) Error() string {
	return fmt.Sprintf("failed to sync %s to %s: %v", e.Secret, e.Repository, e.Err)
}

func (e *SyncError) Unwrap() error {
	return e.Err
}
