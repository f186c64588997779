package core

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/inovacc/ghsecrets/internal/model"
	"github.com/inovacc/ghsecrets/internal/secrets"
	"github.com/inovacc/ghsecrets/internal/store"
)

// ConfigStore loads and saves a whole secrets snapshot.
type ConfigStore interface {
	Load() (*model.SecretsConfig, error)
	Save(cfg *model.SecretsConfig) error
}

// Remote is the GitHub surface the sync logic consumes.
type Remote interface {
	ListRepositoryNames(ctx context.Context, token string) ([]string, error)
	UpsertRepositorySecret(ctx context.Context, secret model.Secret, repository, token string) (bool, error)
}

// Scope tells whether a secret applies globally or to one repository
type Scope string

const (
	ScopeGlobal Scope = "global"
	ScopeLocal  Scope = "local"
)

var secretNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Manager is the in-memory secrets aggregate of one profile.
type Manager struct {
	config ConfigStore
	remote Remote
	logger *slog.Logger
	now    func() time.Time

	store   *secrets.Store
	ledger  *secrets.Ledger
	include []string
	exclude []string

	token         string
	tokenOverride string
}

// Option configures a Manager
type Option func(*Manager)

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		m.now = now
	}
}

// NewManager loads the snapshot from config. A missing snapshot starts an
// empty configuration.
func NewManager(config ConfigStore, remote Remote, opts ...Option) (*Manager, error) {
	m := &Manager{
		config: config,
		remote: remote,
		logger: slog.Default(),
		now:    time.Now,
	}

	for _, opt := range opts {
		opt(m)
	}

	cfg, err := config.Load()

	switch {
	case errors.Is(err, store.ErrConfigNotFound):
		cfg = &model.SecretsConfig{}
	case err != nil:
		return nil, fmt.Errorf("failed to load secrets config: %w", err)
	}

	m.store = secrets.NewStore(cfg.GlobalSecrets, cfg.RepositorySecrets)
	m.ledger = secrets.NewLedger(cfg.LastSynced)
	m.include = slices.Clone(cfg.IncludeRepositories)
	m.exclude = slices.Clone(cfg.ExcludeRepositories)
	m.token = cfg.Token

	return m, nil
}

// Snapshot returns the persisted shape of the current state.
func (m *Manager) Snapshot() *model.SecretsConfig {
	global, repos := m.store.Snapshot()

	return &model.SecretsConfig{
		Token:               m.token,
		IncludeRepositories: slices.Clone(m.include),
		ExcludeRepositories: slices.Clone(m.exclude),
		GlobalSecrets:       global,
		RepositorySecrets:   repos,
		LastSynced:          m.ledger.Snapshot(),
	}
}

// Save writes the whole snapshot back.
func (m *Manager) Save() error {
	if err := m.config.Save(m.Snapshot()); err != nil {
		return fmt.Errorf("failed to save secrets config: %w", err)
	}

	return nil
}

// Store exposes the secret collections for read access.
func (m *Manager) Store() *secrets.Store {
	return m.store
}

// Ledger exposes the sync ledger for read access.
func (m *Manager) Ledger() *secrets.Ledger {
	return m.ledger
}

// SetToken stores token in the snapshot.
func (m *Manager) SetToken(token string) {
	m.token = token
}

// UseToken overrides the token for this process without persisting it.
func (m *Manager) UseToken(token string) {
	m.tokenOverride = token
}

// StoredToken returns the token kept in the snapshot.
func (m *Manager) StoredToken() string {
	return m.token
}

func (m *Manager) requireToken() (string, error) {
	if m.tokenOverride != "" {
		return m.tokenOverride, nil
	}

	if m.token != "" {
		return m.token, nil
	}

	return "", ErrMissingToken
}

// AddSecret creates or updates a secret, globally when repository is
// empty. It returns true when the secret was created.
func (m *Manager) AddSecret(name, value, repository string) (bool, error) {
	if err := ValidateSecretName(name); err != nil {
		return false, err
	}

	secret := model.NewSecret(name, value, m.now())

	if repository == "" {
		return m.store.AddGlobal(secret), nil
	}

	if err := ValidateRepository(repository); err != nil {
		return false, err
	}

	return m.store.AddRepository(secret, repository), nil
}

// RemoveSecret deletes a secret, globally when repository is empty. It
// reports whether something was removed; removing from an untracked
// repository fails with secrets.ErrRepositoryNotTracked.
//
// Ledger entries of the removed secret are dropped where the name no
// longer resolves to the same secret, so a global value shadowed until now
// is pushed on the next sync.
func (m *Manager) RemoveSecret(name, repository string) (bool, error) {
	if repository != "" {
		removed, err := m.store.RemoveFromRepository(name, repository)
		if err != nil {
			return false, err
		}

		if removed {
			m.ledger.ForgetRepository(name, repository)
		}

		return removed, nil
	}

	if !m.store.Remove(name) {
		return false, nil
	}

	for _, repo := range m.ledger.Repositories() {
		if local, err := m.store.RepositoryHasSecret(name, repo); err == nil && local {
			continue
		}

		m.ledger.ForgetRepository(name, repo)
	}

	return true, nil
}

// SecretEntry is a listing row
type SecretEntry struct {
	Name       string
	Scope      Scope
	Repository string
	Created    time.Time
	Updated    time.Time
}

// Secrets lists global secrets first, then repository secrets, in
// insertion order.
func (m *Manager) Secrets() []SecretEntry {
	var out []SecretEntry

	for _, s := range m.store.Global() {
		out = append(out, SecretEntry{Name: s.Name, Scope: ScopeGlobal, Created: s.Created, Updated: s.Updated})
	}

	for _, repo := range m.store.Repositories() {
		local, _ := m.store.RepositorySecrets(repo)
		for _, s := range local {
			out = append(out, SecretEntry{Name: s.Name, Scope: ScopeLocal, Repository: repo, Created: s.Created, Updated: s.Updated})
		}
	}

	return out
}

// ResolveSecret returns the secret that applies to repository for name.
// A repository secret overrides a global secret of the same name.
// Untracked repositories fall back to the global secret.
func (m *Manager) ResolveSecret(name, repository string) (model.Secret, Scope, bool) {
	if local, err := m.store.GetFromRepository(name, repository); err == nil {
		return local, ScopeLocal, true
	}

	if global, err := m.store.Get(name); err == nil {
		return global, ScopeGlobal, true
	}

	return model.Secret{}, "", false
}

// ValidateSecretName checks a name against GitHub's secret naming rules.
func ValidateSecretName(name string) error {
	if !secretNamePattern.MatchString(name) {
		return fmt.Errorf("%w %q: use letters, digits and underscores, not starting with a digit", ErrInvalidSecretName, name)
	}

	if strings.HasPrefix(strings.ToUpper(name), "GITHUB_") {
		return fmt.Errorf("%w %q: the GITHUB_ prefix is reserved", ErrInvalidSecretName, name)
	}

	return nil
}

// ValidateRepository checks that repository is shaped owner/name.
func ValidateRepository(repository string) error {
	owner, name, ok := strings.Cut(repository, "/")
	if !ok || owner == "" || name == "" || strings.Contains(name, "/") {
		return fmt.Errorf("%w %q, want owner/name", ErrInvalidRepository, repository)
	}

	return nil
}
