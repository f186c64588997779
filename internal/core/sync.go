package core

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/inovacc/ghsecrets/internal/model"
	"github.com/inovacc/ghsecrets/internal/secrets"
)

// NeverSynced stands in for a missing ledger record. It predates any
// secret this tool can hold, so a never-synced pair is always stale.
var NeverSynced = time.Unix(0, 0).UTC()

// Outcome is what happened to one (secret, repository) pair
type Outcome string

const (
	OutcomeCreated  Outcome = "created"
	OutcomeUpdated  Outcome = "updated"
	OutcomeUpToDate Outcome = "up-to-date"
)

// SyncResult describes one (secret, repository) pair of a sync run
type SyncResult struct {
	Secret     string
	Repository string
	Scope      Scope
	Outcome    Outcome
}

// SyncReport collects the results of a sync run in processing order
type SyncReport struct {
	Results []SyncResult
}

// Written returns the number of remote writes performed.
func (r *SyncReport) Written() int {
	n := 0

	for _, res := range r.Results {
		if res.Outcome != OutcomeUpToDate {
			n++
		}
	}

	return n
}

// SyncSecret pushes name to repository, or to every effective repository
// when repository is empty. Pairs already current are skipped. The report
// is returned even when a remote failure stops the run.
func (m *Manager) SyncSecret(ctx context.Context, name, repository string) (*SyncReport, error) {
	token, err := m.requireToken()
	if err != nil {
		return nil, err
	}

	if !m.store.HasSecret(name) && !m.hasLocalSecret(name) {
		return nil, fmt.Errorf("%w: %s", secrets.ErrSecretNotFound, name)
	}

	targets, err := m.targets(ctx, repository)
	if err != nil {
		return nil, err
	}

	report := &SyncReport{}

	return report, m.syncName(ctx, token, name, targets, report)
}

// SyncAll pushes every known secret: global names first, then names that
// only exist on repositories.
func (m *Manager) SyncAll(ctx context.Context, repository string) (*SyncReport, error) {
	token, err := m.requireToken()
	if err != nil {
		return nil, err
	}

	targets, err := m.targets(ctx, repository)
	if err != nil {
		return nil, err
	}

	report := &SyncReport{}
	names := append(m.store.GlobalNames(), m.store.LocalNames()...)

	for _, name := range names {
		if err := m.syncName(ctx, token, name, targets, report); err != nil {
			return report, err
		}
	}

	return report, nil
}

func (m *Manager) targets(ctx context.Context, repository string) ([]string, error) {
	if repository == "" {
		return m.EffectiveRepositories(ctx)
	}

	if err := ValidateRepository(repository); err != nil {
		return nil, err
	}

	return []string{repository}, nil
}

func (m *Manager) hasLocalSecret(name string) bool {
	for _, repo := range m.store.Repositories() {
		if ok, err := m.store.RepositoryHasSecret(name, repo); err == nil && ok {
			return true
		}
	}

	return false
}

// syncName walks targets for one name. A global name resolves on every
// repository; a local-only name resolves only where a repository secret
// exists, so other repositories are skipped.
func (m *Manager) syncName(ctx context.Context, token, name string, targets []string, report *SyncReport) error {
	for _, repo := range targets {
		secret, scope, ok := m.ResolveSecret(name, repo)
		if !ok {
			continue
		}

		if err := m.syncPair(ctx, token, secret, scope, repo, report); err != nil {
			return err
		}
	}

	return nil
}

func (m *Manager) syncPair(ctx context.Context, token string, secret model.Secret, scope Scope, repo string, report *SyncReport) error {
	last := m.lastSynced(secret.Name, repo)

	if !last.Before(secret.Updated) {
		m.logger.Debug("secret already synced",
			slog.String("secret", secret.Name),
			slog.String("repository", repo),
		)

		report.Results = append(report.Results, SyncResult{
			Secret:     secret.Name,
			Repository: repo,
			Scope:      scope,
			Outcome:    OutcomeUpToDate,
		})

		return nil
	}

	created, err := m.remote.UpsertRepositorySecret(ctx, secret, repo, token)
	if err != nil {
		return &SyncError{Secret: secret.Name, Repository: repo, Err: err}
	}

	outcome := OutcomeUpdated
	if created {
		outcome = OutcomeCreated
	}

	report.Results = append(report.Results, SyncResult{
		Secret:     secret.Name,
		Repository: repo,
		Scope:      scope,
		Outcome:    outcome,
	})

	// A clock behind the secret's update time would leave the pair stale forever.
	at := m.now()
	if at.Before(secret.Updated) {
		at = secret.Updated
	}

	m.ledger.RecordSync(secret.Name, repo, at)

	m.logger.Info("synced secret",
		slog.String("secret", secret.Name),
		slog.String("repository", repo),
		slog.String("scope", string(scope)),
		slog.String("outcome", string(outcome)),
	)

	return nil
}

func (m *Manager) lastSynced(name, repo string) time.Time {
	last, err := m.ledger.LastSynced(name, repo)
	if errors.Is(err, secrets.ErrNeverSynced) {
		return NeverSynced
	}

	return last
}
