package types

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTierOrdering(t *testing.T) {
	require.True(t, TierGold.AtLeast(TierFree))
	require.True(t, TierPlatinum.AtLeast(TierGold))
	require.True(t, TierDiamond.AtLeast(TierPlatinum))
	require.True(t, TierDiamond.AtLeast(TierDiamond))
	require.False(t, TierFree.AtLeast(TierGold))
	require.False(t, TierGold.AtLeast(TierPlatinum))
}

func TestTierKnown(t *testing.T) {
	for _, tier := range []Tier{TierFree, TierGold, TierPlatinum, TierDiamond} {
		require.True(t, tier.Known(), "%s", tier)
	}
	require.False(t, Tier("vip").Known())
	require.Equal(t, -1, Tier("vip").Rank())
}

func TestReferralStatusTransitions(t *testing.T) {
	cases := []struct {
		from, to ReferralStatus
		want     bool
	}{
		{ReferralStatusPending, ReferralStatusCompleted, true},
		{ReferralStatusPending, ReferralStatusRewarded, true},
		{ReferralStatusCompleted, ReferralStatusRewarded, true},
		{ReferralStatusCompleted, ReferralStatusPending, false},
		{ReferralStatusRewarded, ReferralStatusCompleted, false},
		{ReferralStatusRewarded, ReferralStatusPending, false},
		{ReferralStatusPending, ReferralStatusPending, false},
		{ReferralStatusPending, ReferralStatus("bogus"), false},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, tc.from.CanTransitionTo(tc.to), "%s -> %s", tc.from, tc.to)
	}
}
