package secrets

import (
	"fmt"
	"slices"
	"time"

	"github.com/inovacc/ghsecrets/internal/model"
)

// Ledger records, per repository, when each secret was last synced.
type Ledger struct {
	repos map[string][]model.SyncRecord
	order []string
}

// NewLedger builds a ledger from snapshot entries. Duplicate records for a
// secret keep the latest timestamp.
func NewLedger(entries []model.RepositorySyncRecords) *Ledger {
	l := &Ledger{repos: make(map[string][]model.SyncRecord)}

	for _, entry := range entries {
		for _, record := range entry.Records {
			if last, err := l.LastSynced(record.SecretName, entry.Repository); err == nil && last.After(record.LastUpdated) {
				continue
			}

			l.RecordSync(record.SecretName, entry.Repository, record.LastUpdated)
		}
	}

	return l
}

// Snapshot flattens the ledger into its persisted shape.
func (l *Ledger) Snapshot() []model.RepositorySyncRecords {
	var out []model.RepositorySyncRecords

	for _, repo := range l.order {
		records := l.repos[repo]
		if len(records) == 0 {
			continue
		}

		out = append(out, model.RepositorySyncRecords{
			Repository: repo,
			Records:    slices.Clone(records),
		})
	}

	return out
}

// LastSynced returns when name was last synced to repo.
func (l *Ledger) LastSynced(name, repo string) (time.Time, error) {
	for _, record := range l.repos[repo] {
		if record.SecretName == name {
			return record.LastUpdated, nil
		}
	}

	return time.Time{}, fmt.Errorf("%w: %s in %s", ErrNeverSynced, name, repo)
}

// RecordSync upserts the record for (repo, name). It returns true when no
// record existed before.
func (l *Ledger) RecordSync(name, repo string, at time.Time) bool {
	records, ok := l.repos[repo]
	if !ok {
		l.order = append(l.order, repo)
	}

	for i := range records {
		if records[i].SecretName == name {
			records[i].LastUpdated = at
			return false
		}
	}

	l.repos[repo] = append(records, model.SyncRecord{SecretName: name, LastUpdated: at})

	return true
}

// Repositories returns the repositories with ledger entries in first-seen order.
func (l *Ledger) Repositories() []string {
	return slices.Clone(l.order)
}

// Records returns the records of repo.
func (l *Ledger) Records(repo string) []model.SyncRecord {
	return slices.Clone(l.repos[repo])
}

// Forget drops every record of name. Removing a secret locally does not
// delete it on GitHub, so a later re-add is pushed again.
func (l *Ledger) Forget(name string) {
	for repo, records := range l.repos {
		l.repos[repo] = slices.DeleteFunc(records, func(r model.SyncRecord) bool {
			return r.SecretName == name
		})
	}
}

// ForgetRepository drops the record of name for one repository.
func (l *Ledger) ForgetRepository(name, repo string) {
	records, ok := l.repos[repo]
	if !ok {
		return
	}

	l.repos[repo] = slices.DeleteFunc(records, func(r model.SyncRecord) bool {
		return r.SecretName == name
	})
}
