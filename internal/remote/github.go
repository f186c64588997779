// Package remote talks to GitHub: it lists the repositories a token can
// see and writes repository Actions secrets.
package remote

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/go-github/v82/github"
	"github.com/inovacc/ghsecrets/internal/model"
	"golang.org/x/crypto/nacl/box"
	"golang.org/x/oauth2"
)

// GitHub implements the remote collaborator on top of go-github.
type GitHub struct {
	baseURL *url.URL
	logger  *slog.Logger
}

// Option configures a GitHub remote
type Option func(*GitHub)

// WithBaseURL points the client at a GitHub Enterprise or test API root.
func WithBaseURL(u *url.URL) Option {
	return func(g *GitHub) {
		g.baseURL = u
	}
}

// WithLogger sets the logger used for request tracing.
func WithLogger(logger *slog.Logger) Option {
	return func(g *GitHub) {
		g.logger = logger
	}
}

// NewGitHub creates a GitHub remote.
func NewGitHub(opts ...Option) *GitHub {
	g := &GitHub{logger: slog.Default()}
	for _, opt := range opts {
		opt(g)
	}

	return g
}

// client creates a new authenticated GitHub client for token.
func (g *GitHub) client(ctx context.Context, token string) *github.Client {
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	client := github.NewClient(oauth2.NewClient(ctx, ts))

	if g.baseURL != nil {
		base := *g.baseURL
		if !strings.HasSuffix(base.Path, "/") {
			base.Path += "/"
		}

		client.BaseURL = &base
	}

	return client
}

// ListRepositoryNames returns the full names ("owner/name") of every
// repository the token's user can access, following pagination.
func (g *GitHub) ListRepositoryNames(ctx context.Context, token string) ([]string, error) {
	client := g.client(ctx, token)

	opts := &github.RepositoryListByAuthenticatedUserOptions{
		ListOptions: github.ListOptions{PerPage: 100},
	}

	var names []string

	for {
		repos, resp, err := client.Repositories.ListByAuthenticatedUser(ctx, opts)
		if err != nil {
			return nil, classify("list repositories", "", err)
		}

		for _, repo := range repos {
			names = append(names, repo.GetFullName())
		}

		if resp.NextPage == 0 {
			break
		}

		opts.Page = resp.NextPage
	}

	g.logger.Debug("listed repositories", slog.Int("count", len(names)))

	return names, nil
}

// UpsertRepositorySecret seals the secret value with the repository public
// key and writes it. It returns true when GitHub created the secret and
// false when an existing one was replaced.
func (g *GitHub) UpsertRepositorySecret(ctx context.Context, secret model.Secret, repository, token string) (bool, error) {
	owner, name, err := SplitFullName(repository)
	if err != nil {
		return false, err
	}

	client := g.client(ctx, token)

	key, _, err := client.Actions.GetRepoPublicKey(ctx, owner, name)
	if err != nil {
		return false, classify("get public key", repository, err)
	}

	sealed, err := Seal(key.GetKey(), secret.Value)
	if err != nil {
		return false, fmt.Errorf("failed to encrypt secret %s for %s: %w", secret.Name, repository, err)
	}

	resp, err := client.Actions.CreateOrUpdateRepoSecret(ctx, owner, name, &github.EncryptedSecret{
		Name:           secret.Name,
		KeyID:          key.GetKeyID(),
		EncryptedValue: sealed,
	})
	if err != nil {
		return false, classify("update secret "+secret.Name, repository, err)
	}

	created := resp.StatusCode == http.StatusCreated

	g.logger.Debug("wrote repository secret",
		slog.String("repository", repository),
		slog.String("secret", secret.Name),
		slog.Bool("created", created),
	)

	return created, nil
}

// Seal encrypts value for a base64 encoded curve25519 public key using an
// anonymous sealed box, the format GitHub expects for Actions secrets.
func Seal(publicKey, value string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(publicKey)
	if err != nil {
		return "", fmt.Errorf("failed to decode public key: %w", err)
	}

	if len(raw) != 32 {
		return "", fmt.Errorf("invalid public key length %d", len(raw))
	}

	var recipient [32]byte
	copy(recipient[:], raw)

	out, err := box.SealAnonymous(nil, []byte(value), &recipient, rand.Reader)
	if err != nil {
		return "", err
	}

	return base64.StdEncoding.EncodeToString(out), nil
}

// SplitFullName splits "owner/name".
func SplitFullName(repository string) (string, string, error) {
	owner, name, ok := strings.Cut(repository, "/")
	if !ok || owner == "" || name == "" || strings.Contains(name, "/") {
		return "", "", fmt.Errorf("invalid repository name %q, want owner/name", repository)
	}

	return owner, name, nil
}

func classify(operation, repository string, err error) error {
	var ghErr *github.ErrorResponse
	if errors.As(err, &ghErr) && ghErr.Response != nil {
		switch ghErr.Response.StatusCode {
		case http.StatusUnauthorized, http.StatusForbidden:
			return &AuthError{Operation: operation, Err: err}
		case http.StatusNotFound:
			return &NotFoundError{Operation: operation, Repository: repository, Err: err}
		}
	}

	if repository != "" {
		return fmt.Errorf("failed to %s for %s: %w", operation, repository, err)
	}

	return fmt.Errorf("failed to %s: %w", operation, err)
}
