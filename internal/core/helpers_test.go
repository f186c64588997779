package core

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/inovacc/ghsecrets/internal/model"
	"github.com/inovacc/ghsecrets/internal/store"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const (
	testToken = "ghp_test"
	repo1     = "testghuser/test-repo-1"
	repo2     = "testghuser/test-repo-2"
	repo3     = "testghuser/test-repo-3"
)

var t0 = time.Date(2021, 2, 20, 12, 0, 0, 0, time.UTC)

// mockRemote implements Remote for testing.
type mockRemote struct {
	mock.Mock
}

func (m *mockRemote) ListRepositoryNames(ctx context.Context, token string) ([]string, error) {
	args := m.Called(ctx, token)

	names, ok := args.Get(0).([]string)
	if !ok {
		return nil, args.Error(1)
	}

	return names, args.Error(1)
}

func (m *mockRemote) UpsertRepositorySecret(ctx context.Context, secret model.Secret, repository, token string) (bool, error) {
	args := m.Called(ctx, secret, repository, token)

	return args.Bool(0), args.Error(1)
}

// memConfig is an in-memory ConfigStore.
type memConfig struct {
	cfg   *model.SecretsConfig
	saves int
}

func (c *memConfig) Load() (*model.SecretsConfig, error) {
	if c.cfg == nil {
		return nil, store.ErrConfigNotFound
	}

	return c.cfg, nil
}

func (c *memConfig) Save(cfg *model.SecretsConfig) error {
	c.cfg = cfg
	c.saves++

	return nil
}

// fakeClock advances only when told to.
type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

func (c *fakeClock) Tick() {
	c.now = c.now.Add(time.Second)
}

// baseConfig holds one global secret "a" and the token.
func baseConfig() *model.SecretsConfig {
	return &model.SecretsConfig{
		Token:         testToken,
		GlobalSecrets: []model.Secret{model.NewSecret("a", "b", t0)},
	}
}

func newTestManager(t *testing.T, cfg *model.SecretsConfig) (*Manager, *mockRemote, *fakeClock) {
	t.Helper()

	remote := new(mockRemote)
	clock := &fakeClock{now: t0}

	m, err := NewManager(&memConfig{cfg: cfg}, remote,
		WithClock(clock.Now),
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)
	require.NoError(t, err)

	return m, remote, clock
}

// secretNamed matches a secret argument by name and value.
func secretNamed(name, value string) any {
	return mock.MatchedBy(func(s model.Secret) bool {
		return s.Name == name && s.Value == value
	})
}
