package secrets

import (
	"fmt"
	"slices"

	"github.com/inovacc/ghsecrets/internal/model"
)

// Store holds global secrets and per-repository secrets.
type Store struct {
	global *Set
	repos  map[string]*Set
	order  []string
}

// NewStore builds a store from snapshot lists. Duplicate names collapse
// into one secret holding the last value.
func NewStore(global []model.Secret, repos []model.RepositorySecrets) *Store {
	s := &Store{
		global: NewSet(),
		repos:  make(map[string]*Set),
	}

	for _, secret := range global {
		s.global.Put(secret)
	}

	for _, entry := range repos {
		set := s.repository(entry.Repository)
		for _, secret := range entry.Secrets {
			set.Put(secret)
		}
	}

	return s
}

// Snapshot flattens the store into its persisted shape.
func (s *Store) Snapshot() ([]model.Secret, []model.RepositorySecrets) {
	var repos []model.RepositorySecrets

	for _, name := range s.order {
		repos = append(repos, model.RepositorySecrets{
			Repository: name,
			Secrets:    s.repos[name].All(),
		})
	}

	global := s.global.All()
	if len(global) == 0 {
		global = nil
	}

	return global, repos
}

// repository returns the secret list of repo, creating it when absent.
func (s *Store) repository(repo string) *Set {
	set, ok := s.repos[repo]
	if !ok {
		set = NewSet()
		s.repos[repo] = set
		s.order = append(s.order, repo)
	}

	return set
}

func (s *Store) tracked(repo string) (*Set, error) {
	set, ok := s.repos[repo]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrRepositoryNotTracked, repo)
	}

	return set, nil
}

// AddGlobal inserts or updates a global secret. It returns true when the
// name was not present before.
func (s *Store) AddGlobal(secret model.Secret) bool {
	return s.global.Put(secret)
}

// AddRepository inserts or updates a secret of repo, tracking repo if needed.
func (s *Store) AddRepository(secret model.Secret, repo string) bool {
	return s.repository(repo).Put(secret)
}

// Remove deletes a global secret. Removing an absent name is a no-op.
func (s *Store) Remove(name string) bool {
	return s.global.Delete(name)
}

// RemoveFromRepository deletes a secret of repo. An untracked repo is an
// error; an absent name in a tracked repo is a no-op returning false.
func (s *Store) RemoveFromRepository(name, repo string) (bool, error) {
	set, err := s.tracked(repo)
	if err != nil {
		return false, err
	}

	return set.Delete(name), nil
}

// Get returns the global secret with the given name.
func (s *Store) Get(name string) (model.Secret, error) {
	secret, ok := s.global.Get(name)
	if !ok {
		return model.Secret{}, fmt.Errorf("%w: global secret %s", ErrSecretNotFound, name)
	}

	return secret, nil
}

// GetFromRepository returns the secret of repo with the given name.
func (s *Store) GetFromRepository(name, repo string) (model.Secret, error) {
	set, err := s.tracked(repo)
	if err != nil {
		return model.Secret{}, err
	}

	secret, ok := set.Get(name)
	if !ok {
		return model.Secret{}, fmt.Errorf("%w: %s in %s", ErrSecretNotFound, name, repo)
	}

	return secret, nil
}

// HasSecret reports whether a global secret exists.
func (s *Store) HasSecret(name string) bool {
	return s.global.Has(name)
}

// RepositoryHasSecret reports whether repo has a local secret with the
// name. It fails with ErrRepositoryNotTracked for unknown repositories so
// callers can tell "repo unknown" from "secret absent".
func (s *Store) RepositoryHasSecret(name, repo string) (bool, error) {
	set, err := s.tracked(repo)
	if err != nil {
		return false, err
	}

	return set.Has(name), nil
}

// Global returns the global secrets in insertion order.
func (s *Store) Global() []model.Secret {
	return s.global.All()
}

// GlobalNames returns the global secret names in insertion order.
func (s *Store) GlobalNames() []string {
	return s.global.Names()
}

// Repositories returns the tracked repositories in insertion order.
func (s *Store) Repositories() []string {
	return slices.Clone(s.order)
}

// RepositorySecrets returns the local secrets of repo.
func (s *Store) RepositorySecrets(repo string) ([]model.Secret, error) {
	set, err := s.tracked(repo)
	if err != nil {
		return nil, err
	}

	return set.All(), nil
}

// LocalNames returns every repository secret name that is not also a
// global name, in first-seen order.
func (s *Store) LocalNames() []string {
	var names []string

	seen := make(map[string]struct{})

	for _, repo := range s.order {
		for _, name := range s.repos[repo].Names() {
			if s.global.Has(name) {
				continue
			}

			if _, ok := seen[name]; ok {
				continue
			}

			seen[name] = struct{}{}
			names = append(names, name)
		}
	}

	return names
}
