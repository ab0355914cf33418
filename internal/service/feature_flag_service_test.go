package service_test

import (
	"context"
	"errors"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"lookescolar-server/internal/metrics"
	"lookescolar-server/internal/model"
	"lookescolar-server/internal/service"
	"testing"
	"time"
)

func TestFeatureFlagService_CachesForTTL(t *testing.T) {
	ctx := context.Background()
	clock := &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}

	repo := new(MockTenantFeatureRepository)
	repo.On("Get", ctx, "school-1").
		Return(&model.TenantFeatures{TenantID: "school-1", Flags: map[string]bool{"downloads": true}}, nil).Once()
	repo.On("Get", ctx, "school-1").
		Return(&model.TenantFeatures{TenantID: "school-1", Flags: map[string]bool{"downloads": false}}, nil).Once()

	svc := service.NewFeatureFlagService(repo, 0, clock)

	first, err := svc.Get(ctx, "school-1")
	require.NoError(t, err)
	assert.True(t, first.Enabled("downloads"))

	clock.Advance(4 * time.Minute)
	cached, err := svc.Get(ctx, "school-1")
	require.NoError(t, err)
	assert.True(t, cached.Enabled("downloads"))

	clock.Advance(time.Minute)
	fresh, err := svc.Get(ctx, "school-1")
	require.NoError(t, err)
	assert.False(t, fresh.Enabled("downloads"))

	repo.AssertNumberOfCalls(t, "Get", 2)
}

func TestFeatureFlagService_MissDropsExpiredTenants(t *testing.T) {
	ctx := context.Background()
	clock := &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}

	repo := new(MockTenantFeatureRepository)
	for _, tenant := range []string{"school-1", "school-2", "school-3"} {
		repo.On("Get", ctx, tenant).Return(&model.TenantFeatures{TenantID: tenant}, nil)
	}

	svc := service.NewFeatureFlagService(repo, time.Minute, clock)

	_, err := svc.Get(ctx, "school-1")
	require.NoError(t, err)
	_, err = svc.Get(ctx, "school-2")
	require.NoError(t, err)
	assert.Equal(t, float64(2), testutil.ToFloat64(metrics.FeatureFlagCacheEntries))

	clock.Advance(2 * time.Minute)
	_, err = svc.Get(ctx, "school-3")
	require.NoError(t, err)
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.FeatureFlagCacheEntries))
}

func TestFeatureFlagService_SetInvalidates(t *testing.T) {
	ctx := context.Background()
	clock := &fakeClock{now: time.Unix(0, 0)}

	repo := new(MockTenantFeatureRepository)
	repo.On("Get", ctx, "school-1").
		Return(&model.TenantFeatures{TenantID: "school-1", Flags: map[string]bool{}}, nil).Once()
	repo.On("Put", ctx, mock.MatchedBy(func(f *model.TenantFeatures) bool {
		return f.TenantID == "school-1" && f.Flags["family_portal"]
	})).Return(nil)
	repo.On("Get", ctx, "school-1").
		Return(&model.TenantFeatures{TenantID: "school-1", Flags: map[string]bool{"family_portal": true}}, nil).Once()

	svc := service.NewFeatureFlagService(repo, time.Minute, clock)

	before, err := svc.Get(ctx, "school-1")
	require.NoError(t, err)
	assert.False(t, before.Enabled("family_portal"))

	_, err = svc.Set(ctx, "school-1", map[string]bool{"family_portal": true})
	require.NoError(t, err)

	after, err := svc.Get(ctx, "school-1")
	require.NoError(t, err)
	assert.True(t, after.Enabled("family_portal"))
	repo.AssertExpectations(t)
}

func TestFeatureFlagService_Errors(t *testing.T) {
	ctx := context.Background()
	repo := new(MockTenantFeatureRepository)
	repo.On("Get", ctx, "school-1").Return(nil, errors.New("db down"))
	repo.On("Put", ctx, mock.Anything).Return(errors.New("db down"))

	svc := service.NewFeatureFlagService(repo, time.Minute, nil)

	_, err := svc.Get(ctx, "school-1")
	assert.Error(t, err)
	_, err = svc.Set(ctx, "school-1", map[string]bool{"x": true})
	assert.Error(t, err)
	_, err = svc.Get(ctx, "")
	assert.Error(t, err)
}
