package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"

	"github.com/tailtown/pricingservice/internal/domain"
)

func newTestCache(t *testing.T) (*Cache, *miniredis.Miniredis) {
	t.Helper()
	srv := miniredis.RunT(t)
	c, err := NewCache(srv.Addr(), "", 0)
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	return c, srv
}

func TestCache_SetGetRoundTrip(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	cfg := domain.DepositConfig{
		TenantID:          "camp-bowwow",
		DefaultAmountType: domain.AmountTypePercentage,
		DefaultPercentage: 25,
		RefundPolicy:      domain.RefundPolicyTiered,
		RefundTiers: []domain.RefundTier{
			{DaysBeforeStart: 7, RefundPercentage: 100},
		},
	}
	require.NoError(t, c.Set(ctx, DepositConfigKey(cfg.TenantID), cfg, DefaultTTL))

	var got domain.DepositConfig
	require.NoError(t, c.Get(ctx, DepositConfigKey(cfg.TenantID), &got))
	require.Equal(t, cfg.DefaultPercentage, got.DefaultPercentage)
	require.Equal(t, cfg.RefundPolicy, got.RefundPolicy)
	require.Len(t, got.RefundTiers, 1)
}

func TestCache_MissIsTyped(t *testing.T) {
	c, _ := newTestCache(t)

	var got domain.DepositConfig
	err := c.Get(context.Background(), DepositConfigKey("nobody"), &got)
	require.ErrorIs(t, err, ErrMiss)
}

func TestCache_DeleteInvalidates(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	key := RulesKey("t1", "deposit")
	require.NoError(t, c.Set(ctx, key, []domain.Rule{}, DefaultTTL))
	require.NoError(t, c.Delete(ctx, key))

	var got []domain.Rule
	require.ErrorIs(t, c.Get(ctx, key, &got), ErrMiss)
}

func TestCache_EntriesExpire(t *testing.T) {
	c, srv := newTestCache(t)
	ctx := context.Background()

	key := CapacityKey("t1", "standard")
	require.NoError(t, c.Set(ctx, key, domain.SuiteCapacity{SuiteType: "standard"}, time.Minute))

	srv.FastForward(2 * time.Minute)

	var got domain.SuiteCapacity
	require.ErrorIs(t, c.Get(ctx, key, &got), ErrMiss)
}
