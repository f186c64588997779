package core

import (
	"errors"
	"fmt"
	"time"

	"github.com/inovacc/ghsecrets/internal/application"
	"github.com/inovacc/ghsecrets/internal/model"
	"github.com/inovacc/ghsecrets/internal/store"
)

var (
	// ErrProfileNotFound is returned when a profile doesn't exist
	ErrProfileNotFound = errors.New("profile not found")

	// ErrProfileExists is returned when trying to create a profile that already exists
	ErrProfileExists = errors.New("profile already exists")

	// ErrProfileActive is returned when deleting the current profile
	ErrProfileActive = errors.New("profile is active")

	// ErrReservedProfileName is returned for names the application keeps for itself
	ErrReservedProfileName = errors.New("profile name is reserved")
)

var reservedProfileNames = map[string]struct{}{
	"app": {},
}

// ProfileManager handles profile operations
type ProfileManager struct {
	store   store.ProfileStore
	pathFor func(name string) (string, error)
	now     func() time.Time
}

// NewProfileManager creates a ProfileManager over the given registry.
func NewProfileManager(registry store.ProfileStore) *ProfileManager {
	return &ProfileManager{
		store:   registry,
		pathFor: application.ProfilePath,
		now:     time.Now,
	}
}

// CreateProfile registers name. An empty path puts the snapshot in the
// application directory.
func (pm *ProfileManager) CreateProfile(name, path string) (*model.Profile, error) {
	if name == "" {
		return nil, errors.New("profile name is required")
	}

	if _, ok := reservedProfileNames[name]; ok {
		return nil, fmt.Errorf("%w: %s", ErrReservedProfileName, name)
	}

	exists, err := pm.store.ProfileExists(name)
	if err != nil {
		return nil, fmt.Errorf("failed to check profile existence: %w", err)
	}

	if exists {
		return nil, fmt.Errorf("%w: %s", ErrProfileExists, name)
	}

	if path == "" {
		if path, err = pm.pathFor(name); err != nil {
			return nil, err
		}
	}

	profile := &model.Profile{
		Name:       name,
		ConfigPath: path,
		CreatedAt:  pm.now(),
	}

	if err := pm.store.SaveProfile(profile); err != nil {
		return nil, fmt.Errorf("failed to save profile: %w", err)
	}

	return profile, nil
}

// GetProfile retrieves a profile by name
func (pm *ProfileManager) GetProfile(name string) (*model.Profile, error) {
	profile, err := pm.store.GetProfile(name)
	if err != nil {
		return nil, err
	}

	if profile == nil {
		return nil, fmt.Errorf("%w: %s", ErrProfileNotFound, name)
	}

	return profile, nil
}

// SetProfile makes name the current profile.
func (pm *ProfileManager) SetProfile(name string) error {
	exists, err := pm.store.ProfileExists(name)
	if err != nil {
		return fmt.Errorf("failed to check profile existence: %w", err)
	}

	if !exists {
		return fmt.Errorf("%w: %s", ErrProfileNotFound, name)
	}

	return pm.store.SetActiveProfile(name)
}

// DeleteProfile removes a profile. The current profile cannot be removed.
// Its snapshot file is left on disk.
func (pm *ProfileManager) DeleteProfile(name string) error {
	profile, err := pm.GetProfile(name)
	if err != nil {
		return err
	}

	if profile.Active {
		return fmt.Errorf("%w: %s", ErrProfileActive, name)
	}

	return pm.store.DeleteProfile(name)
}

// CurrentProfile returns the active profile, creating and activating
// the default profile on first use.
func (pm *ProfileManager) CurrentProfile() (*model.Profile, error) {
	profile, err := pm.store.GetActiveProfile()
	if err != nil {
		return nil, err
	}

	if profile != nil {
		return profile, nil
	}

	exists, err := pm.store.ProfileExists(model.DefaultProfileName)
	if err != nil {
		return nil, fmt.Errorf("failed to check profile existence: %w", err)
	}

	if !exists {
		if _, err := pm.CreateProfile(model.DefaultProfileName, ""); err != nil {
			return nil, err
		}
	}

	if err := pm.store.SetActiveProfile(model.DefaultProfileName); err != nil {
		return nil, err
	}

	return pm.GetProfile(model.DefaultProfileName)
}

// ListProfiles returns all profiles in creation order
func (pm *ProfileManager) ListProfiles() ([]model.Profile, error) {
	return pm.store.ListProfiles()
}
