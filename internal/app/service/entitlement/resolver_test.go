package entitlement

import (
	"testing"
	"time"

	"github.com/samber/lo"
	"github.com/stretchr/testify/require"

	"github.com/stockbrief/membership/internal/models"
	"github.com/stockbrief/membership/pkg/types"
)

func TestResolve(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	future := now.Add(24 * time.Hour)
	past := now.Add(-24 * time.Hour)

	cases := []struct {
		name       string
		user       *models.User
		wantPrem   bool
		wantTier   types.Tier
		wantSource *types.EntitlementSource
	}{
		{
			name:     "no grants resolves free",
			user:     &models.User{SubscriptionTier: types.TierFree},
			wantPrem: false,
			wantTier: types.TierFree,
		},
		{
			name: "live store subscription wins",
			user: &models.User{
				SubscriptionTier:      types.TierPlatinum,
				SubscriptionStatus:    types.SubscriptionStatusActive,
				SubscriptionExpiry:    &future,
				SubscriptionProductID: "platinum_monthly",
			},
			wantPrem:   true,
			wantTier:   types.TierPlatinum,
			wantSource: lo.ToPtr(types.EntitlementSourceSubscription),
		},
		{
			name: "store beats referral when both live",
			user: &models.User{
				SubscriptionTier:      types.TierDiamond,
				SubscriptionStatus:    types.SubscriptionStatusActive,
				SubscriptionExpiry:    &future,
				SubscriptionProductID: "diamond_yearly",
				ReferralPremiumExpiry: lo.ToPtr(future.Add(48 * time.Hour)),
			},
			wantPrem:   true,
			wantTier:   types.TierDiamond,
			wantSource: lo.ToPtr(types.EntitlementSourceSubscription),
		},
		{
			name: "expired store falls back to referral",
			user: &models.User{
				SubscriptionTier:      types.TierGold,
				SubscriptionStatus:    types.SubscriptionStatusActive,
				SubscriptionExpiry:    &past,
				SubscriptionProductID: "gold_monthly",
				ReferralPremiumExpiry: &future,
			},
			wantPrem:   true,
			wantTier:   types.TierGold,
			wantSource: lo.ToPtr(types.EntitlementSourceReferral),
		},
		{
			name: "store expiry exactly now counts as expired",
			user: &models.User{
				SubscriptionTier:      types.TierGold,
				SubscriptionStatus:    types.SubscriptionStatusActive,
				SubscriptionExpiry:    &now,
				SubscriptionProductID: "gold_monthly",
			},
			wantPrem: false,
			wantTier: types.TierFree,
		},
		{
			name: "inactive status blocks store even before expiry",
			user: &models.User{
				SubscriptionTier:      types.TierGold,
				SubscriptionStatus:    types.SubscriptionStatusInactive,
				SubscriptionExpiry:    &future,
				SubscriptionProductID: "gold_monthly",
			},
			wantPrem: false,
			wantTier: types.TierFree,
		},
		{
			name: "referral-mirrored subscription columns resolve as referral",
			user: &models.User{
				SubscriptionTier:      types.TierGold,
				SubscriptionStatus:    types.SubscriptionStatusActive,
				SubscriptionExpiry:    &future,
				ReferralPremiumExpiry: &future,
			},
			wantPrem:   true,
			wantTier:   types.TierGold,
			wantSource: lo.ToPtr(types.EntitlementSourceReferral),
		},
		{
			name: "referral premium is capped at gold",
			user: &models.User{
				SubscriptionTier:      types.TierDiamond,
				SubscriptionStatus:    types.SubscriptionStatusActive,
				SubscriptionExpiry:    &future,
				ReferralPremiumExpiry: &future,
			},
			wantPrem:   true,
			wantTier:   types.TierGold,
			wantSource: lo.ToPtr(types.EntitlementSourceReferral),
		},
		{
			name: "referral expiry exactly now counts as expired",
			user: &models.User{
				ReferralPremiumExpiry: &now,
			},
			wantPrem: false,
			wantTier: types.TierFree,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Resolve(tc.user, now)
			require.Equal(t, tc.wantPrem, got.IsPremium)
			require.Equal(t, tc.wantTier, got.Tier)
			if tc.wantSource == nil {
				require.Nil(t, got.Source)
				require.Nil(t, got.ExpiresAt)
			} else {
				require.NotNil(t, got.Source)
				require.Equal(t, *tc.wantSource, *got.Source)
				require.NotNil(t, got.ExpiresAt)
			}
		})
	}
}

func TestApplyReferralGrant(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("first grant sets expiry from now", func(t *testing.T) {
		u := &models.User{}
		expiry := ApplyReferralGrant(u, Reward{TotalDays: 7, Tier: types.TierGold}, now)
		require.Equal(t, now.AddDate(0, 0, 7), expiry)
		require.Equal(t, 7, u.ReferralPremiumDays)
		require.Equal(t, types.TierGold, u.SubscriptionTier)
		require.Equal(t, types.SubscriptionStatusActive, u.SubscriptionStatus)
		require.Empty(t, u.SubscriptionProductID)
	})

	t.Run("regrant extends the live expiry", func(t *testing.T) {
		u := &models.User{}
		first := ApplyReferralGrant(u, Reward{TotalDays: 7, Tier: types.TierGold}, now)
		second := ApplyReferralGrant(u, Reward{TotalDays: 30, Tier: types.TierGold}, now)
		require.Equal(t, first.AddDate(0, 0, 30), second)
		require.Equal(t, 30, u.ReferralPremiumDays)
	})

	t.Run("grant never touches the store product id", func(t *testing.T) {
		u := &models.User{SubscriptionProductID: "gold_monthly"}
		ApplyReferralGrant(u, Reward{TotalDays: 60, Tier: types.TierPlatinum}, now)
		require.Equal(t, "gold_monthly", u.SubscriptionProductID)
	})
}
