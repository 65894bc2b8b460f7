package service

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"osint-pivot/internal/logger"
	"osint-pivot/internal/models"
	"osint-pivot/internal/repository"
)

var testDefaults = []string{"password", "secret", "token"}

func newSettings(repo repository.SettingsRepository) (*SettingsService, *fakePublisher) {
	pub := &fakePublisher{}
	return NewSettingsService(repo, pub, logger.NewNop(), testDefaults), pub
}

func TestSettingsService_Defaults(t *testing.T) {
	svc, _ := newSettings(newMemRepository())
	require.NoError(t, svc.Load(context.Background()))

	s := svc.Get()
	assert.Nil(t, s.CustomKeywords)
	assert.True(t, s.NotFiltersEnabled)
	assert.Equal(t, models.DefaultDomainLevel, s.DomainLevel)

	kws, custom := svc.Keywords()
	assert.Equal(t, testDefaults, kws)
	assert.False(t, custom)
}

func TestSettingsService_UploadKeywords_RoundTripAfterReload(t *testing.T) {
	ctx := context.Background()
	repo := newMemRepository()
	svc, pub := newSettings(repo)

	stored, err := svc.UploadKeywords(ctx, []string{" Secret ", "api_key", "", "Secret", "token", "api_key"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Secret", "api_key", "token"}, stored)
	assert.Equal(t, 1, pub.Count(models.ActionSettingsUpdate))

	reloaded, _ := newSettings(repo)
	require.NoError(t, reloaded.Load(ctx))
	kws, custom := reloaded.Keywords()
	assert.True(t, custom)
	assert.Equal(t, stored, kws)
}

func TestSettingsService_RoundTripSQLite(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "settings.db")

	repo, err := repository.NewSQLiteRepository(path)
	require.NoError(t, err)
	svc, _ := newSettings(repo)
	_, err = svc.UploadKeywords(ctx, []string{"b", "a", "b"})
	require.NoError(t, err)
	_, err = svc.SetNotFilters(ctx, boolPtr(false))
	require.NoError(t, err)
	require.NoError(t, svc.SetDomainLevel(ctx, 3))
	require.NoError(t, repo.Close())

	repo, err = repository.NewSQLiteRepository(path)
	require.NoError(t, err)
	defer repo.Close()
	reloaded, _ := newSettings(repo)
	require.NoError(t, reloaded.Load(ctx))

	assert.Equal(t, models.Settings{
		CustomKeywords:    []string{"b", "a"},
		NotFiltersEnabled: false,
		DomainLevel:       3,
	}, reloaded.Get())
}

func TestSettingsService_ResetKeywords(t *testing.T) {
	ctx := context.Background()
	svc, _ := newSettings(newMemRepository())

	_, err := svc.UploadKeywords(ctx, []string{"x"})
	require.NoError(t, err)
	require.NoError(t, svc.ResetKeywords(ctx))

	assert.Equal(t, testDefaults, svc.EffectiveKeywords())
}

func TestSettingsService_UploadOnlyBlanksClearsCustom(t *testing.T) {
	svc, _ := newSettings(newMemRepository())

	stored, err := svc.UploadKeywords(context.Background(), []string{" ", ""})
	require.NoError(t, err)
	assert.Empty(t, stored)
	assert.Equal(t, testDefaults, svc.EffectiveKeywords())
}

func TestSettingsService_SetNotFilters(t *testing.T) {
	ctx := context.Background()
	repo := newMemRepository()
	svc, pub := newSettings(repo)

	enabled, err := svc.SetNotFilters(ctx, nil)
	require.NoError(t, err)
	assert.False(t, enabled)

	enabled, err = svc.SetNotFilters(ctx, nil)
	require.NoError(t, err)
	assert.True(t, enabled)

	enabled, err = svc.SetNotFilters(ctx, boolPtr(false))
	require.NoError(t, err)
	assert.False(t, enabled)
	assert.Equal(t, "false", repo.data[KeyNotFilters])
	assert.Equal(t, 3, pub.Count(models.ActionSettingsUpdate))
}

func TestSettingsService_SetDomainLevel(t *testing.T) {
	ctx := context.Background()
	repo := newMemRepository()
	svc, _ := newSettings(repo)

	require.NoError(t, svc.SetDomainLevel(ctx, 1))
	assert.Equal(t, 1, svc.Get().DomainLevel)

	for _, bad := range []int{0, 4, -1} {
		assert.ErrorIs(t, svc.SetDomainLevel(ctx, bad), ErrInvalidDomainLevel)
	}
	assert.Equal(t, 1, svc.Get().DomainLevel)
	assert.Equal(t, "1", repo.data[KeyDomainLevel])
}

func TestSettingsService_WriteFailureLeavesStateUnchanged(t *testing.T) {
	ctx := context.Background()
	repo := newMemRepository()
	repo.setErr = errors.New("disk full")
	svc, pub := newSettings(repo)

	_, err := svc.UploadKeywords(ctx, []string{"x"})
	assert.Error(t, err)
	assert.Error(t, svc.SetDomainLevel(ctx, 3))
	enabled, err := svc.SetNotFilters(ctx, nil)
	assert.Error(t, err)
	assert.True(t, enabled)

	assert.Equal(t, models.Settings{NotFiltersEnabled: true, DomainLevel: 2}, svc.Get())
	assert.Equal(t, 0, pub.Count(models.ActionSettingsUpdate))
}

func TestSettingsService_LoadIgnoresCorruptValues(t *testing.T) {
	repo := newMemRepository()
	repo.data[KeyCustomKeywords] = "not json"
	repo.data[KeyNotFilters] = "maybe"
	repo.data[KeyDomainLevel] = "7"
	svc, _ := newSettings(repo)

	require.NoError(t, svc.Load(context.Background()))
	assert.Equal(t, models.Settings{NotFiltersEnabled: true, DomainLevel: 2}, svc.Get())
}

func TestSettingsService_LoadRepositoryError(t *testing.T) {
	repo := newMemRepository()
	repo.getErr = errors.New("connection refused")
	svc, _ := newSettings(repo)

	assert.Error(t, svc.Load(context.Background()))
	assert.Equal(t, 2, svc.Get().DomainLevel)
}

func boolPtr(b bool) *bool { return &b }
