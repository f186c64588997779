package store

import (
	"encoding/binary"
	"errors"
	"time"

	"github.com/inovacc/ghsecrets/internal/encoding"
	"github.com/inovacc/ghsecrets/internal/model"
	"go.etcd.io/bbolt"
)

const (
	boltBucketProfiles = "profiles" // key: name -> Profile JSON
	boltBucketOrder    = "order"    // key: big-endian sequence -> name
)

// ErrProfileMissing is returned by SetActiveProfile for unknown names
var ErrProfileMissing = errors.New("profile not found")

type Bolt struct {
	storage *bbolt.DB
}

// NewBolt opens (or creates) the registry at path.
func NewBolt(path string) (*Bolt, error) {
	if err := encoding.EnsureParentDir(path); err != nil {
		return nil, err
	}

	instance, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, err
	}

	if err := instance.Update(func(tx *bbolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists([]byte(boltBucketProfiles)); err != nil {
			return err
		}

		if _, err := tx.CreateBucketIfNotExists([]byte(boltBucketOrder)); err != nil {
			return err
		}

		return nil
	}); err != nil {
		_ = instance.Close()

		return nil, err
	}

	return &Bolt{storage: instance}, nil
}

// Close closes the database.
func (b *Bolt) Close() error {
	return b.storage.Close()
}

// SaveProfile saves or updates a profile. New names are appended to the
// listing order.
func (b *Bolt) SaveProfile(profile *model.Profile) error {
	if profile == nil {
		return errors.New("profile is required")
	}

	if profile.Name == "" {
		return errors.New("profile name is required")
	}

	data, err := encoding.ToJSON(profile)
	if err != nil {
		return err
	}

	return b.storage.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(boltBucketProfiles))

		if bucket.Get([]byte(profile.Name)) == nil {
			order := tx.Bucket([]byte(boltBucketOrder))

			seq, err := order.NextSequence()
			if err != nil {
				return err
			}

			if err := order.Put(sequenceKey(seq), []byte(profile.Name)); err != nil {
				return err
			}
		}

		return bucket.Put([]byte(profile.Name), data)
	})
}

// GetProfile retrieves a profile by name. A missing profile is nil, nil.
func (b *Bolt) GetProfile(name string) (*model.Profile, error) {
	var profile *model.Profile

	err := b.storage.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(boltBucketProfiles))
		v := bucket.Get([]byte(name))

		if v == nil {
			return nil
		}

		p, err := encoding.ParseJSON[model.Profile](v)
		if err != nil {
			return err
		}

		profile = p

		return nil
	})

	return profile, err
}

// GetActiveProfile retrieves the current profile, nil if none is set.
func (b *Bolt) GetActiveProfile() (*model.Profile, error) {
	var profile *model.Profile

	err := b.storage.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(boltBucketProfiles))

		return bucket.ForEach(func(k, v []byte) error {
			p, err := encoding.ParseJSON[model.Profile](v)
			if err != nil {
				return err
			}

			if p.Active {
				profile = p
			}

			return nil
		})
	})

	return profile, err
}

// SetActiveProfile marks name as the current profile and clears the flag
// on every other profile.
func (b *Bolt) SetActiveProfile(name string) error {
	return b.storage.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(boltBucketProfiles))

		if bucket.Get([]byte(name)) == nil {
			return ErrProfileMissing
		}

		return bucket.ForEach(func(k, val []byte) error {
			p, err := encoding.ParseJSON[model.Profile](val)
			if err != nil {
				return err
			}

			p.Active = string(k) == name

			if p.Active {
				p.LastUsedAt = time.Now()
			}

			data, err := encoding.ToJSON(p)
			if err != nil {
				return err
			}

			return bucket.Put(k, data)
		})
	})
}

// ListProfiles retrieves all profiles in creation order.
func (b *Bolt) ListProfiles() ([]model.Profile, error) {
	var profiles []model.Profile

	err := b.storage.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(boltBucketProfiles))
		order := tx.Bucket([]byte(boltBucketOrder))

		return order.ForEach(func(_, name []byte) error {
			v := bucket.Get(name)
			if v == nil {
				return nil
			}

			p, err := encoding.ParseJSON[model.Profile](v)
			if err != nil {
				return err
			}

			profiles = append(profiles, *p)

			return nil
		})
	})

	return profiles, err
}

// DeleteProfile removes a profile by name
func (b *Bolt) DeleteProfile(name string) error {
	return b.storage.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(boltBucketProfiles))
		order := tx.Bucket([]byte(boltBucketOrder))

		var stale [][]byte

		if err := order.ForEach(func(k, v []byte) error {
			if string(v) == name {
				stale = append(stale, append([]byte(nil), k...))
			}

			return nil
		}); err != nil {
			return err
		}

		for _, k := range stale {
			if err := order.Delete(k); err != nil {
				return err
			}
		}

		return bucket.Delete([]byte(name))
	})
}

// ProfileExists checks if a profile exists by name
func (b *Bolt) ProfileExists(name string) (bool, error) {
	var exists bool

	err := b.storage.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(boltBucketProfiles))
		exists = bucket.Get([]byte(name)) != nil

		return nil
	})

	return exists, err
}

func sequenceKey(seq uint64) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, seq)

	return key
}
