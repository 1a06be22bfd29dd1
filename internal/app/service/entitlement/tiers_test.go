package entitlement

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/stockbrief/membership/pkg/types"
)

func TestCalculateReward(t *testing.T) {
	cases := []struct {
		name      string
		referrals int
		wantDays  int
		wantTier  types.Tier
	}{
		{"zero referrals", 0, 0, types.TierFree},
		{"below lowest threshold", 4, 0, types.TierFree},
		{"first threshold", 5, 7, types.TierGold},
		{"between first and second", 9, 7, types.TierGold},
		{"second threshold", 10, 30, types.TierGold},
		{"between second and third", 14, 30, types.TierGold},
		{"third threshold", 15, 60, types.TierPlatinum},
		{"between third and fourth", 49, 60, types.TierPlatinum},
		{"fourth threshold", 50, 365, types.TierDiamond},
		{"far above fourth", 500, 365, types.TierDiamond},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			reward := CalculateReward(tc.referrals)
			require.Equal(t, tc.wantDays, reward.TotalDays)
			require.Equal(t, tc.wantTier, reward.Tier)
		})
	}
}

func TestCalculateReward_MonotonicInReferrals(t *testing.T) {
	prev := CalculateReward(0)
	for n := 1; n <= 60; n++ {
		cur := CalculateReward(n)
		require.GreaterOrEqual(t, cur.TotalDays, prev.TotalDays, "days must not shrink at %d referrals", n)
		require.GreaterOrEqual(t, cur.Tier.Rank(), prev.Tier.Rank(), "tier must not shrink at %d referrals", n)
		prev = cur
	}
}

func TestValidateTierThresholds(t *testing.T) {
	require.NoError(t, ValidateTierThresholds())
}
