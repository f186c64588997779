package remote

import "fmt"

// AuthError indicates GitHub rejected the token
type AuthError struct {
	Operation string
	Err       error
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("%s: authentication failed: %v", e.Operation, e.Err)
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

// NotFoundError indicates the repository does not exist or the token
// lacks permission to see it
type NotFoundError struct {
	Operation  string
	Repository string
	Err        error
}

func (e *NotFoundError) Error() string {
	if e.Repository == "" {
		return fmt.Sprintf("%s: not found: %v", e.Operation, e.Err)
	}

	return fmt.Sprintf("%s: repository %s not found or not accessible: %v", e.Operation, e.Repository, e.Err)
}

func (e *NotFoundError) Unwrap() error {
	return e.Err
}
