package secrets

import (
	"slices"

	"github.com/inovacc/ghsecrets/internal/model"
)

// Set is an insertion-ordered collection of secrets unique by name.
type Set struct {
	names []string
	items map[string]*model.Secret
}

// NewSet returns an empty set.
func NewSet() *Set {
	return &Set{items: make(map[string]*model.Secret)}
}

// Put inserts the secret or updates the value of the secret with the same
// name. It reports whether the name was new. An update keeps the existing
// position and creation time.
func (s *Set) Put(secret model.Secret) bool {
	if existing, ok := s.items[secret.Name]; ok {
		existing.Update(secret.Value, secret.Updated)
		return false
	}

	stored := secret
	s.items[secret.Name] = &stored
	s.names = append(s.names, secret.Name)

	return true
}

// Get returns a copy of the named secret.
func (s *Set) Get(name string) (model.Secret, bool) {
	secret, ok := s.items[name]
	if !ok {
		return model.Secret{}, false
	}

	return *secret, true
}

// Has reports whether the name is present.
func (s *Set) Has(name string) bool {
	_, ok := s.items[name]
	return ok
}

// Delete removes the name and reports whether it was present.
func (s *Set) Delete(name string) bool {
	if _, ok := s.items[name]; !ok {
		return false
	}

	delete(s.items, name)
	s.names = slices.DeleteFunc(s.names, func(n string) bool { return n == name })

	return true
}

// Len returns the number of secrets.
func (s *Set) Len() int {
	return len(s.names)
}

// Names returns the secret names in insertion order.
func (s *Set) Names() []string {
	return slices.Clone(s.names)
}

// All returns copies of the secrets in insertion order.
func (s *Set) All() []model.Secret {
	out := make([]model.Secret, 0, len(s.names))
	for _, name := range s.names {
		out = append(out, *s.items[name])
	}

	return out
}
