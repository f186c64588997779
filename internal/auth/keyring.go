package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/zalando/go-keyring"
)

const (
	// keyringService is the service name used for keyring entries
	keyringService = "ghsecrets"

	// keyringTimeout is the timeout for keyring operations
	keyringTimeout = 5 * time.Second
)

// KeyringError represents an error during keyring operations
type KeyringError struct {
	Operation string
	Err       error
}

func (e *KeyringError) Error() string {
	return fmt.Sprintf("keyring %s failed: %v", e.Operation, e.Err)
}

func (e *KeyringError) Unwrap() error {
	return e.Err
}

// keyringKey generates a consistent key format for storing tokens
func keyringKey(profileName string) string {
	return "profile:" + profileName
}

// SetToken stores a token in the system keyring with timeout
func SetToken(profileName, token string) error {
	return withTimeout("set", func() error {
		return keyring.Set(keyringService, keyringKey(profileName), token)
	})
}

// GetToken retrieves a token from the system keyring with timeout
func GetToken(profileName string) (string, error) {
	var token string

	err := withTimeout("get", func() error {
		var err error

		token, err = keyring.Get(keyringService, keyringKey(profileName))

		return err
	})

	return token, err
}

// DeleteToken removes a token from the system keyring. A missing entry is
// not an error.
func DeleteToken(profileName string) error {
	err := withTimeout("delete", func() error {
		return keyring.Delete(keyringService, keyringKey(profileName))
	})

	if errors.Is(err, keyring.ErrNotFound) {
		return nil
	}

	return err
}

// withTimeout runs a keyring call in a goroutine since some backends
// (D-Bus secret service) can block indefinitely.
func withTimeout(operation string, fn func() error) error {
	ctx, cancel := context.WithTimeout(context.Background(), keyringTimeout)
	defer cancel()

	errCh := make(chan error, 1)

	go func() {
		errCh <- fn()
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return &KeyringError{Operation: operation, Err: err}
		}

		return nil
	case <-ctx.Done():
		return &KeyringError{Operation: operation, Err: ctx.Err()}
	}
}
