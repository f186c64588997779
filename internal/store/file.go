package store

import (
	"errors"
	"fmt"

	"github.com/inovacc/ghsecrets/internal/encoding"
	"github.com/inovacc/ghsecrets/internal/model"
)

// ErrConfigNotFound is returned by File.Load when no snapshot exists yet
var ErrConfigNotFound = errors.New("secrets config not found")

// File persists a secrets snapshot as a YAML file.
type File struct {
	Path string
}

// NewFile returns a snapshot store for path.
func NewFile(path string) *File {
	return &File{Path: path}
}

// Load reads the whole snapshot.
func (f *File) Load() (*model.SecretsConfig, error) {
	cfg, err := encoding.LoadYAML[model.SecretsConfig](f.Path)
	if err != nil {
		return nil, err
	}

	if cfg == nil {
		return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, f.Path)
	}

	return cfg, nil
}

// Save replaces the snapshot on disk.
func (f *File) Save(cfg *model.SecretsConfig) error {
	if cfg == nil {
		return errors.New("config is required")
	}

	return encoding.SaveYAML(f.Path, cfg)
}

// Location returns the snapshot path.
func (f *File) Location() string {
	return f.Path
}
