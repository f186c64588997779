// Package model defines the data structures used throughout ghsecrets.
//
// These are plain, serializable shapes. Invariants such as name
// uniqueness are enforced by the secrets package, which converts to and
// from these types at the persistence boundary.
//
// # Secret
//
// The [Secret] struct is a named value with creation and update times:
//
//	type Secret struct {
//	    Name    string    // Unique within its scope
//	    Value   string    // Plain value pushed to GitHub
//	    Created time.Time // First time the name was added
//	    Updated time.Time // Last time the value changed
//	}
//
// # SecretsConfig
//
// The [SecretsConfig] struct is the whole snapshot written to a profile's
// YAML file: secrets, the sync ledger, repository lists and the token.
//
// # Profile
//
// The [Profile] struct names one snapshot file. Profiles live in the bbolt
// registry, not in the snapshot.
package model
