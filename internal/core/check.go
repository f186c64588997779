package core

import (
	"context"
	"slices"
	"time"
)

// PendingSync is a (secret, repository) pair whose remote value is stale
type PendingSync struct {
	Secret     string
	Repository string
	Scope      Scope
	LastSynced time.Time // zero when never synced
	Updated    time.Time
}

// CheckReport is the dry-run health of a profile
type CheckReport struct {
	NewRepositories []string
	Unsynced        []PendingSync
}

// OK reports whether every secret is current everywhere and no remote
// repository is waiting to be included or excluded.
func (r *CheckReport) OK() bool {
	return len(r.NewRepositories) == 0 && len(r.Unsynced) == 0
}

// Check reports new repositories and stale pairs without writing anything.
// A repository with no applicable secrets has nothing pending.
func (m *Manager) Check(ctx context.Context) (*CheckReport, error) {
	remote, err := m.remoteRepositories(ctx)
	if err != nil {
		return nil, err
	}

	effective := slices.Clone(m.include)
	if len(effective) == 0 {
		effective = difference(remote, m.exclude)
	}

	report := &CheckReport{
		NewRepositories: difference(remote, m.include, m.exclude),
	}

	for _, repo := range effective {
		for _, name := range m.applicableNames(repo) {
			secret, scope, ok := m.ResolveSecret(name, repo)
			if !ok {
				continue
			}

			last, err := m.ledger.LastSynced(name, repo)
			if err == nil && !last.Before(secret.Updated) {
				continue
			}

			report.Unsynced = append(report.Unsynced, PendingSync{
				Secret:     name,
				Repository: repo,
				Scope:      scope,
				LastSynced: last,
				Updated:    secret.Updated,
			})
		}
	}

	return report, nil
}

// applicableNames returns the global names followed by the local-only
// names of repo.
func (m *Manager) applicableNames(repo string) []string {
	names := m.store.GlobalNames()

	local, err := m.store.RepositorySecrets(repo)
	if err != nil {
		return names
	}

	for _, s := range local {
		if !slices.Contains(names, s.Name) {
			names = append(names, s.Name)
		}
	}

	return names
}
