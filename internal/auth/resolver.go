// Package auth resolves the GitHub token from multiple sources in priority order.
package auth

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// Environment variables checked for a token, in order
const (
	EnvToken       = "GITHUB_SECRETS_GITHUB_TOKEN"
	EnvGitHubToken = "GITHUB_TOKEN"
)

// ErrTokenNotFound is returned when no source provides a token
var ErrTokenNotFound = errors.New("token not found")

// Source indicates where a token was found
type Source string

const (
	SourceFlag    Source = "flag"
	SourceEnv     Source = "env"
	SourceKeyring Source = "keyring"
	SourceConfig  Source = "config"
	SourceNone    Source = "none"
)

// Result contains the resolved token and its source
type Result struct {
	Token  string
	Source Source
	Name   string // The specific source name (e.g., "GITHUB_TOKEN", "keyring:default")
}

// TokenProvider is a function that attempts to provide a token.
// Returns the token and source name if found, or empty string if not available.
// Returns an error only for unexpected failures (not for missing token).
type TokenProvider func() (token string, sourceName string, err error)

// Resolver resolves tokens from multiple sources in priority order
type Resolver struct {
	providers   []TokenProvider
	helpMessage string
}

// NewResolver creates an empty resolver.
func NewResolver() *Resolver {
	return &Resolver{providers: make([]TokenProvider, 0)}
}

// WithFlagValue adds a flag value as a source.
func (r *Resolver) WithFlagValue(value string) *Resolver {
	r.providers = append(r.providers, func() (string, string, error) {
		if value != "" {
			return value, "flag", nil
		}

		return "", "", nil
	})

	return r
}

// WithEnvs adds environment variables as token sources (checked in order)
func (r *Resolver) WithEnvs(envVars ...string) *Resolver {
	for _, envVar := range envVars {
		r.providers = append(r.providers, func() (string, string, error) {
			if token := os.Getenv(envVar); token != "" {
				return token, envVar, nil
			}

			return "", "", nil
		})
	}

	return r
}

// WithKeyring adds the system keyring entry of a profile as a source.
// An unavailable keyring counts as a missing token.
func (r *Resolver) WithKeyring(profile string) *Resolver {
	r.providers = append(r.providers, func() (string, string, error) {
		token, err := GetToken(profile)
		if err != nil {
			return "", "", nil
		}

		return token, "keyring:" + profile, nil
	})

	return r
}

// WithConfigValue adds the token stored in the secrets snapshot.
func (r *Resolver) WithConfigValue(value string) *Resolver {
	r.providers = append(r.providers, func() (string, string, error) {
		if value != "" {
			return value, "config", nil
		}

		return "", "", nil
	})

	return r
}

// WithProvider adds a custom token provider
func (r *Resolver) WithProvider(provider TokenProvider) *Resolver {
	r.providers = append(r.providers, provider)
	return r
}

// WithHelpMessage sets the help message shown when no token is found
func (r *Resolver) WithHelpMessage(msg string) *Resolver {
	r.helpMessage = msg
	return r
}

// Resolve attempts to find a token from all configured sources in order.
// Returns the first token found, or ErrTokenNotFound.
func (r *Resolver) Resolve() (*Result, error) {
	for _, provider := range r.providers {
		token, sourceName, err := provider()
		if err != nil {
			return nil, fmt.Errorf("token provider error: %w", err)
		}

		if token != "" {
			return &Result{
				Token:  token,
				Source: categorizeSource(sourceName),
				Name:   sourceName,
			}, nil
		}
	}

	if r.helpMessage != "" {
		return nil, fmt.Errorf("%w\n\n%s", ErrTokenNotFound, r.helpMessage)
	}

	return nil, ErrTokenNotFound
}

// categorizeSource determines the Source category from a source name
func categorizeSource(name string) Source {
	switch {
	case name == "flag":
		return SourceFlag
	case strings.HasPrefix(name, "keyring"):
		return SourceKeyring
	case name == "config":
		return SourceConfig
	case strings.Contains(name, "TOKEN"):
		return SourceEnv
	default:
		return SourceNone
	}
}
