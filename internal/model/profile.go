package model

import "time"

// DefaultProfileName is created on first use when no profile exists
const DefaultProfileName = "default"

// Profile maps a name to a secrets snapshot file
type Profile struct {
	// Name is the unique identifier for this profile
	Name string `json:"name"`

	// ConfigPath is the YAML snapshot this profile reads and writes
	ConfigPath string `json:"config_path"`

	// Active indicates if this is the current profile
	Active bool `json:"active"`

	// CreatedAt is when the profile was created
	CreatedAt time.Time `json:"created_at"`

	// LastUsedAt is when the profile was last made current
	LastUsedAt time.Time `json:"last_used_at,omitzero"`
}
