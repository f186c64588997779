package core

import (
	"errors"
	"testing"
	"time"

	"github.com/inovacc/ghsecrets/internal/model"
	"github.com/inovacc/ghsecrets/internal/secrets"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var errRemoteDown = errors.New("remote down")

func TestSyncSecret_Global(t *testing.T) {
	cfg := baseConfig()
	cfg.IncludeRepositories = []string{repo1, repo2}

	m, remote, clock := newTestManager(t, cfg)
	remote.On("UpsertRepositorySecret", mock.Anything, secretNamed("a", "b"), repo1, testToken).Return(true, nil).Once()
	remote.On("UpsertRepositorySecret", mock.Anything, secretNamed("a", "b"), repo2, testToken).Return(false, nil).Once()

	clock.Tick()

	report, err := m.SyncSecret(t.Context(), "a", "")
	require.NoError(t, err)
	remote.AssertExpectations(t)

	assert.Equal(t, 2, report.Written())
	assert.Equal(t, []SyncResult{
		{Secret: "a", Repository: repo1, Scope: ScopeGlobal, Outcome: OutcomeCreated},
		{Secret: "a", Repository: repo2, Scope: ScopeGlobal, Outcome: OutcomeUpdated},
	}, report.Results)

	want := []model.SyncRecord{{SecretName: "a", LastUpdated: clock.Now()}}
	assert.Equal(t, want, m.Ledger().Records(repo1))
	assert.Equal(t, want, m.Ledger().Records(repo2))
}

func TestSyncSecret_GlobalAlreadySynced(t *testing.T) {
	cfg := baseConfig()
	cfg.IncludeRepositories = []string{repo1, repo2}
	cfg.LastSynced = []model.RepositorySyncRecords{
		{Repository: repo1, Records: []model.SyncRecord{{SecretName: "a", LastUpdated: t0.Add(time.Second)}}},
		{Repository: repo2, Records: []model.SyncRecord{{SecretName: "a", LastUpdated: t0.Add(time.Second)}}},
	}

	m, remote, clock := newTestManager(t, cfg)
	clock.Tick()
	clock.Tick()

	report, err := m.SyncSecret(t.Context(), "a", "")
	require.NoError(t, err)

	remote.AssertNotCalled(t, "UpsertRepositorySecret", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	assert.Zero(t, report.Written())
	require.Len(t, report.Results, 2)
	assert.Equal(t, OutcomeUpToDate, report.Results[0].Outcome)
}

func TestSyncSecret_Local(t *testing.T) {
	cfg := baseConfig()
	cfg.IncludeRepositories = []string{repo1, repo2}

	m, remote, clock := newTestManager(t, cfg)

	_, err := m.AddSecret("temp", "val", repo1)
	require.NoError(t, err)

	remote.On("UpsertRepositorySecret", mock.Anything, secretNamed("temp", "val"), repo1, testToken).Return(true, nil).Once()

	clock.Tick()

	_, err = m.SyncSecret(t.Context(), "temp", "")
	require.NoError(t, err)
	remote.AssertExpectations(t)
	remote.AssertNumberOfCalls(t, "UpsertRepositorySecret", 1)

	assert.Equal(t, []model.SyncRecord{{SecretName: "temp", LastUpdated: clock.Now()}}, m.Ledger().Records(repo1))
	assert.NotContains(t, m.Ledger().Repositories(), repo2)
}

func TestSyncSecret_LocalAlreadySynced(t *testing.T) {
	cfg := baseConfig()
	cfg.IncludeRepositories = []string{repo1, repo2}

	m, remote, clock := newTestManager(t, cfg)

	_, err := m.AddSecret("temp", "val", repo1)
	require.NoError(t, err)

	clock.Tick()
	m.Ledger().RecordSync("temp", repo1, clock.Now())
	clock.Tick()

	_, err = m.SyncSecret(t.Context(), "temp", "")
	require.NoError(t, err)
	remote.AssertNotCalled(t, "UpsertRepositorySecret", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestSyncSecret_SecondRunIsNoop(t *testing.T) {
	cfg := baseConfig()
	cfg.IncludeRepositories = []string{repo1, repo2}

	m, remote, clock := newTestManager(t, cfg)
	remote.On("UpsertRepositorySecret", mock.Anything, mock.Anything, mock.Anything, testToken).Return(true, nil)

	clock.Tick()

	_, err := m.SyncSecret(t.Context(), "a", "")
	require.NoError(t, err)

	clock.Tick()

	report, err := m.SyncSecret(t.Context(), "a", "")
	require.NoError(t, err)

	remote.AssertNumberOfCalls(t, "UpsertRepositorySecret", 2)
	assert.Zero(t, report.Written())
}

func TestSyncSecret_LocalOverridesGlobal(t *testing.T) {
	cfg := baseConfig()
	cfg.IncludeRepositories = []string{repo1, repo2}

	m, remote, clock := newTestManager(t, cfg)

	_, err := m.AddSecret("a", "x", repo1)
	require.NoError(t, err)

	remote.On("UpsertRepositorySecret", mock.Anything, secretNamed("a", "x"), repo1, testToken).Return(true, nil).Once()
	remote.On("UpsertRepositorySecret", mock.Anything, secretNamed("a", "b"), repo2, testToken).Return(true, nil).Once()

	clock.Tick()

	report, err := m.SyncSecret(t.Context(), "a", "")
	require.NoError(t, err)
	remote.AssertExpectations(t)

	require.Len(t, report.Results, 2)
	assert.Equal(t, ScopeLocal, report.Results[0].Scope)
	assert.Equal(t, ScopeGlobal, report.Results[1].Scope)
}

func TestSyncSecret_ValueChangePushesAgain(t *testing.T) {
	cfg := &model.SecretsConfig{Token: testToken, IncludeRepositories: []string{repo1}}

	m, remote, clock := newTestManager(t, cfg)

	_, err := m.AddSecret("K", "v1", "")
	require.NoError(t, err)

	remote.On("UpsertRepositorySecret", mock.Anything, secretNamed("K", "v1"), repo1, testToken).Return(true, nil).Once()
	remote.On("UpsertRepositorySecret", mock.Anything, secretNamed("K", "v2"), repo1, testToken).Return(false, nil).Once()

	clock.Tick()

	_, err = m.SyncSecret(t.Context(), "K", "")
	require.NoError(t, err)

	clock.Tick()

	created, err := m.AddSecret("K", "v2", "")
	require.NoError(t, err)
	assert.False(t, created)

	clock.Tick()

	report, err := m.SyncSecret(t.Context(), "K", "")
	require.NoError(t, err)
	remote.AssertExpectations(t)

	require.Len(t, report.Results, 1)
	assert.Equal(t, OutcomeUpdated, report.Results[0].Outcome)
}

func TestSyncSecret_MissingToken(t *testing.T) {
	cfg := baseConfig()
	cfg.Token = ""
	cfg.IncludeRepositories = []string{repo1}

	m, remote, _ := newTestManager(t, cfg)

	report, err := m.SyncSecret(t.Context(), "a", "")
	require.ErrorIs(t, err, ErrMissingToken)
	assert.Nil(t, report)

	_, err = m.SyncAll(t.Context(), "")
	require.ErrorIs(t, err, ErrMissingToken)

	remote.AssertNotCalled(t, "UpsertRepositorySecret", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	remote.AssertNotCalled(t, "ListRepositoryNames", mock.Anything, mock.Anything)
}

func TestSyncSecret_TokenOverride(t *testing.T) {
	cfg := baseConfig()
	cfg.Token = ""
	cfg.IncludeRepositories = []string{repo1}

	m, remote, clock := newTestManager(t, cfg)
	m.UseToken("ghp_flag")

	remote.On("UpsertRepositorySecret", mock.Anything, secretNamed("a", "b"), repo1, "ghp_flag").Return(true, nil).Once()

	clock.Tick()

	_, err := m.SyncSecret(t.Context(), "a", "")
	require.NoError(t, err)
	remote.AssertExpectations(t)
	assert.Empty(t, m.Snapshot().Token)
}

func TestSyncSecret_StopsOnFirstFailure(t *testing.T) {
	cfg := baseConfig()
	cfg.IncludeRepositories = []string{repo1, repo2, repo3}

	m, remote, clock := newTestManager(t, cfg)
	remote.On("UpsertRepositorySecret", mock.Anything, mock.Anything, repo1, testToken).Return(true, nil).Once()
	remote.On("UpsertRepositorySecret", mock.Anything, mock.Anything, repo2, testToken).Return(false, errRemoteDown).Once()

	clock.Tick()

	report, err := m.SyncSecret(t.Context(), "a", "")
	require.ErrorIs(t, err, errRemoteDown)

	var syncErr *SyncError
	require.ErrorAs(t, err, &syncErr)
	assert.Equal(t, "a", syncErr.Secret)
	assert.Equal(t, repo2, syncErr.Repository)

	require.NotNil(t, report)
	require.Len(t, report.Results, 1)
	assert.Equal(t, repo1, report.Results[0].Repository)

	assert.Len(t, m.Ledger().Records(repo1), 1)
	assert.Empty(t, m.Ledger().Records(repo2))
	remote.AssertNotCalled(t, "UpsertRepositorySecret", mock.Anything, mock.Anything, repo3, mock.Anything)
}

func TestSyncSecret_UnknownName(t *testing.T) {
	m, remote, _ := newTestManager(t, baseConfig())

	_, err := m.SyncSecret(t.Context(), "nope", "")
	require.ErrorIs(t, err, secrets.ErrSecretNotFound)
	remote.AssertNotCalled(t, "ListRepositoryNames", mock.Anything, mock.Anything)
}

func TestSyncSecret_SingleRepository(t *testing.T) {
	cfg := baseConfig()
	cfg.IncludeRepositories = []string{repo1, repo2}

	m, remote, clock := newTestManager(t, cfg)
	remote.On("UpsertRepositorySecret", mock.Anything, secretNamed("a", "b"), repo3, testToken).Return(true, nil).Once()

	clock.Tick()

	report, err := m.SyncSecret(t.Context(), "a", repo3)
	require.NoError(t, err)
	remote.AssertExpectations(t)
	require.Len(t, report.Results, 1)

	_, err = m.SyncSecret(t.Context(), "a", "not-a-repo")
	require.ErrorIs(t, err, ErrInvalidRepository)
}

func TestSyncSecret_UsesRemoteListWithoutIncludeList(t *testing.T) {
	cfg := baseConfig()
	cfg.ExcludeRepositories = []string{repo2}

	m, remote, clock := newTestManager(t, cfg)
	remote.On("ListRepositoryNames", mock.Anything, testToken).Return([]string{repo1, repo2, repo3}, nil).Once()
	remote.On("UpsertRepositorySecret", mock.Anything, mock.Anything, repo1, testToken).Return(true, nil).Once()
	remote.On("UpsertRepositorySecret", mock.Anything, mock.Anything, repo3, testToken).Return(true, nil).Once()

	clock.Tick()

	_, err := m.SyncSecret(t.Context(), "a", "")
	require.NoError(t, err)
	remote.AssertExpectations(t)
	remote.AssertNotCalled(t, "UpsertRepositorySecret", mock.Anything, mock.Anything, repo2, mock.Anything)
}

func TestSyncSecret_ClockBehindSecret(t *testing.T) {
	future := t0.Add(time.Hour)
	cfg := &model.SecretsConfig{
		Token:               testToken,
		IncludeRepositories: []string{repo1},
		GlobalSecrets:       []model.Secret{model.NewSecret("a", "b", future)},
	}

	m, remote, _ := newTestManager(t, cfg)
	remote.On("UpsertRepositorySecret", mock.Anything, mock.Anything, repo1, testToken).Return(true, nil).Once()

	_, err := m.SyncSecret(t.Context(), "a", "")
	require.NoError(t, err)

	last, err := m.Ledger().LastSynced("a", repo1)
	require.NoError(t, err)
	assert.Equal(t, future, last)

	report, err := m.SyncSecret(t.Context(), "a", "")
	require.NoError(t, err)
	assert.Zero(t, report.Written())
	remote.AssertNumberOfCalls(t, "UpsertRepositorySecret", 1)
}

func TestSyncAll(t *testing.T) {
	cfg := baseConfig()
	cfg.IncludeRepositories = []string{repo1, repo2}

	m, remote, clock := newTestManager(t, cfg)

	_, err := m.AddSecret("temp", "val", repo1)
	require.NoError(t, err)

	remote.On("UpsertRepositorySecret", mock.Anything, mock.Anything, mock.Anything, testToken).Return(true, nil)

	clock.Tick()

	report, err := m.SyncAll(t.Context(), "")
	require.NoError(t, err)

	got := make([][2]string, 0, len(report.Results))
	for _, res := range report.Results {
		got = append(got, [2]string{res.Secret, res.Repository})
	}

	assert.Equal(t, [][2]string{
		{"a", repo1},
		{"a", repo2},
		{"temp", repo1},
	}, got)
	assert.Equal(t, 3, report.Written())
}

func TestSyncAll_StopsOnFirstFailure(t *testing.T) {
	cfg := baseConfig()
	cfg.IncludeRepositories = []string{repo1}
	cfg.GlobalSecrets = append(cfg.GlobalSecrets, model.NewSecret("z", "y", t0))

	m, remote, clock := newTestManager(t, cfg)
	remote.On("UpsertRepositorySecret", mock.Anything, secretNamed("a", "b"), repo1, testToken).Return(false, errRemoteDown).Once()

	clock.Tick()

	report, err := m.SyncAll(t.Context(), "")
	require.ErrorIs(t, err, errRemoteDown)
	require.NotNil(t, report)
	assert.Empty(t, report.Results)
	remote.AssertNumberOfCalls(t, "UpsertRepositorySecret", 1)
}
