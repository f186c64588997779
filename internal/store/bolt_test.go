package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/inovacc/ghsecrets/internal/model"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) *Bolt {
	t.Helper()

	db, err := NewBolt(filepath.Join(t.TempDir(), "registry", "test.bolt"))
	require.NoError(t, err)

	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Logf("failed to close database: %v", err)
		}
	})

	return db
}

func TestBolt_SaveProfile(t *testing.T) {
	db := setupTestDB(t)

	tests := []struct {
		name    string
		profile *model.Profile
		wantErr bool
	}{
		{
			name:    "valid profile",
			profile: &model.Profile{Name: "work", ConfigPath: "/tmp/work.yaml", CreatedAt: time.Now()},
		},
		{
			name:    "nil profile",
			profile: nil,
			wantErr: true,
		},
		{
			name:    "empty name",
			profile: &model.Profile{ConfigPath: "/tmp/x.yaml"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := db.SaveProfile(tt.profile)
			if tt.wantErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)

			got, err := db.GetProfile(tt.profile.Name)
			require.NoError(t, err)
			require.NotNil(t, got)
			require.Equal(t, tt.profile.ConfigPath, got.ConfigPath)
		})
	}
}

func TestBolt_GetProfile_Missing(t *testing.T) {
	db := setupTestDB(t)

	got, err := db.GetProfile("nope")
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestBolt_ListProfiles_CreationOrder(t *testing.T) {
	db := setupTestDB(t)

	for _, name := range []string{"zeta", "alpha", "mid"} {
		require.NoError(t, db.SaveProfile(&model.Profile{Name: name}))
	}

	// Re-saving keeps the original position.
	require.NoError(t, db.SaveProfile(&model.Profile{Name: "zeta", ConfigPath: "/new"}))

	profiles, err := db.ListProfiles()
	require.NoError(t, err)
	require.Len(t, profiles, 3)
	require.Equal(t, "zeta", profiles[0].Name)
	require.Equal(t, "/new", profiles[0].ConfigPath)
	require.Equal(t, "alpha", profiles[1].Name)
	require.Equal(t, "mid", profiles[2].Name)
}

func TestBolt_SetActiveProfile(t *testing.T) {
	db := setupTestDB(t)

	require.NoError(t, db.SaveProfile(&model.Profile{Name: "a", Active: true}))
	require.NoError(t, db.SaveProfile(&model.Profile{Name: "b"}))

	require.NoError(t, db.SetActiveProfile("b"))

	active, err := db.GetActiveProfile()
	require.NoError(t, err)
	require.NotNil(t, active)
	require.Equal(t, "b", active.Name)
	require.False(t, active.LastUsedAt.IsZero())

	a, err := db.GetProfile("a")
	require.NoError(t, err)
	require.False(t, a.Active)

	require.ErrorIs(t, db.SetActiveProfile("missing"), ErrProfileMissing)
}

func TestBolt_DeleteProfile(t *testing.T) {
	db := setupTestDB(t)

	require.NoError(t, db.SaveProfile(&model.Profile{Name: "a"}))
	require.NoError(t, db.SaveProfile(&model.Profile{Name: "b"}))
	require.NoError(t, db.DeleteProfile("a"))

	exists, err := db.ProfileExists("a")
	require.NoError(t, err)
	require.False(t, exists)

	profiles, err := db.ListProfiles()
	require.NoError(t, err)
	require.Len(t, profiles, 1)
	require.Equal(t, "b", profiles[0].Name)
}
