// Package store provides the persistence layer for ghsecrets.
//
// Two backends live here:
//   - [File] reads and writes a profile's secrets snapshot as YAML. The
//     whole snapshot is replaced on every save.
//   - [Bolt] is the profile registry, an embedded bbolt database in the
//     application directory that maps profile names to snapshot paths and
//     remembers the current profile.
//
// # Singleton Pattern
//
// Use [GetDB] to obtain the registry for the application directory:
//
//	registry, err := store.GetDB()
//	profiles, err := registry.ListProfiles()
package store
