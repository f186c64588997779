package model

import "time"

// Secret is a named value scoped either globally or to one repository
type Secret struct {
	// Name is the secret name, unique within its scope
	Name string `yaml:"name" json:"name"`

	// Value is the plain secret value
	Value string `yaml:"value" json:"value"`

	// Created is when the name was first added to its scope
	Created time.Time `yaml:"created" json:"created"`

	// Updated is when the value last changed
	Updated time.Time `yaml:"updated" json:"updated"`
}

// NewSecret returns a secret created and updated at the given time.
func NewSecret(name, value string, at time.Time) Secret {
	return Secret{
		Name:    name,
		Value:   value,
		Created: at,
		Updated: at,
	}
}

// Update sets the value and refreshes Updated. Updated always moves
// forward, even when the clock reading does not.
func (s *Secret) Update(value string, at time.Time) {
	if !at.After(s.Updated) {
		at = s.Updated.Add(time.Nanosecond)
	}

	s.Value = value
	s.Updated = at
}

// SyncRecord is the last time a secret was pushed to one repository
type SyncRecord struct {
	SecretName  string    `yaml:"secret_name" json:"secret_name"`
	LastUpdated time.Time `yaml:"last_updated" json:"last_updated"`
}
