package core

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
)

// IncludeRepositories returns the explicit allow-list; empty means unset.
func (m *Manager) IncludeRepositories() []string {
	return slices.Clone(m.include)
}

// ExcludeRepositories returns the deny-list.
func (m *Manager) ExcludeRepositories() []string {
	return slices.Clone(m.exclude)
}

// remoteRepositories lists the repositories visible to the token.
func (m *Manager) remoteRepositories(ctx context.Context) ([]string, error) {
	token, err := m.requireToken()
	if err != nil {
		return nil, err
	}

	names, err := m.remote.ListRepositoryNames(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("failed to list repositories: %w", err)
	}

	return names, nil
}

// EffectiveRepositories returns the allow-list verbatim when it is set and
// otherwise the remote list minus the deny-list.
func (m *Manager) EffectiveRepositories(ctx context.Context) ([]string, error) {
	if len(m.include) > 0 {
		return slices.Clone(m.include), nil
	}

	remote, err := m.remoteRepositories(ctx)
	if err != nil {
		return nil, err
	}

	return difference(remote, m.exclude), nil
}

// BootstrapRepositories sets the allow-list to the remote list minus the
// deny-list and returns it. It is a one-time snapshot, not a filter.
func (m *Manager) BootstrapRepositories(ctx context.Context) ([]string, error) {
	remote, err := m.remoteRepositories(ctx)
	if err != nil {
		return nil, err
	}

	m.include = difference(remote, m.exclude)

	m.logger.Info("bootstrapped repositories",
		slog.Int("included", len(m.include)),
		slog.Int("excluded", len(remote)-len(m.include)),
	)

	return slices.Clone(m.include), nil
}

// NewRepositories returns remote repositories that are neither on the
// allow-list nor on the deny-list.
func (m *Manager) NewRepositories(ctx context.Context) ([]string, error) {
	remote, err := m.remoteRepositories(ctx)
	if err != nil {
		return nil, err
	}

	return difference(remote, m.include, m.exclude), nil
}

// IncludeRepository adds repository to the allow-list and drops it from
// the deny-list. It reports whether the allow-list changed.
func (m *Manager) IncludeRepository(repository string) (bool, error) {
	if err := ValidateRepository(repository); err != nil {
		return false, err
	}

	m.exclude = slices.DeleteFunc(m.exclude, func(r string) bool { return r == repository })

	if slices.Contains(m.include, repository) {
		return false, nil
	}

	m.include = append(m.include, repository)

	return true, nil
}

// ExcludeRepository adds repository to the deny-list and drops it from
// the allow-list. It reports whether the deny-list changed.
func (m *Manager) ExcludeRepository(repository string) (bool, error) {
	if err := ValidateRepository(repository); err != nil {
		return false, err
	}

	m.include = slices.DeleteFunc(m.include, func(r string) bool { return r == repository })

	if slices.Contains(m.exclude, repository) {
		return false, nil
	}

	m.exclude = append(m.exclude, repository)

	return true, nil
}

// difference returns the items of list not present in any of remove,
// keeping list order and dropping duplicates.
func difference(list []string, remove ...[]string) []string {
	skip := make(map[string]struct{})

	for _, r := range remove {
		for _, name := range r {
			skip[name] = struct{}{}
		}
	}

	out := make([]string, 0, len(list))

	for _, name := range list {
		if _, ok := skip[name]; ok {
			continue
		}

		skip[name] = struct{}{}
		out = append(out, name)
	}

	return out
}
