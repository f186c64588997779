package store

import (
	"fmt"
	"sync"

	"github.com/inovacc/ghsecrets/internal/application"
	"github.com/inovacc/ghsecrets/internal/model"
)

// ProfileStore defines the profile registry operations used by the app.
type ProfileStore interface {
	SaveProfile(profile *model.Profile) error
	GetProfile(name string) (*model.Profile, error)
	GetActiveProfile() (*model.Profile, error)
	SetActiveProfile(name string) error
	ListProfiles() ([]model.Profile, error)
	DeleteProfile(name string) error
	ProfileExists(name string) (bool, error)
	Close() error
}

var (
	once   sync.Once
	db     ProfileStore
	errNew error
)

// GetDB returns the registry stored in the application directory.
func GetDB() (ProfileStore, error) {
	once.Do(lazyInit)

	return db, errNew
}

func lazyInit() {
	path, err := application.RegistryPath()
	if err != nil {
		errNew = err
		return
	}

	instance, err := NewBolt(path)
	if err != nil {
		errNew = fmt.Errorf("failed to open profile registry: %w", err)
		return
	}

	db = instance
}
