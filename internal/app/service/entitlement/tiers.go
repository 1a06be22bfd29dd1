package entitlement

import (
	"fmt"

	"github.com/stockbrief/membership/pkg/types"
)

// TierThreshold maps a completed-referral count to the reward it unlocks.
type TierThreshold struct {
	Referrals int
	GrantDays int
	Tier      types.Tier
}

// tierThresholds is ordered ascending by Referrals; the highest qualifying
// entry wins. The ordering is validated once at service construction, see
// ValidateTierThresholds.
var tierThresholds = []TierThreshold{
	{Referrals: 5, GrantDays: 7, Tier: types.TierGold},
	{Referrals: 10, GrantDays: 30, Tier: types.TierGold},
	{Referrals: 15, GrantDays: 60, Tier: types.TierPlatinum},
	{Referrals: 50, GrantDays: 365, Tier: types.TierDiamond},
}

// Reward is the payout for a referral count: the day grant and the tier label.
type Reward struct {
	TotalDays int        `json:"total_days"`
	Tier      types.Tier `json:"tier"`
}

// CalculateReward maps a completed-referral count to its reward by keeping
// the last threshold entry with Referrals <= count (thresholds are
// inclusive). Below the lowest threshold the reward is zero days on free.
func CalculateReward(completedReferrals int) Reward {
	reward := Reward{TotalDays: 0, Tier: types.TierFree}
	for _, t := range tierThresholds {
		if completedReferrals < t.Referrals {
			break
		}
		reward = Reward{TotalDays: t.GrantDays, Tier: t.Tier}
	}
	return reward
}

// ValidateTierThresholds checks the table invariants: thresholds strictly
// increasing, grants positive and non-decreasing, tiers known and
// non-decreasing. More referrals must never yield a smaller reward.
func ValidateTierThresholds() error {
	if len(tierThresholds) == 0 {
		return fmt.Errorf("tier threshold table is empty")
	}
	for i, t := range tierThresholds {
		if t.Referrals <= 0 || t.GrantDays <= 0 {
			return fmt.Errorf("tier threshold %d has non-positive values", i)
		}
		if !t.Tier.Known() || t.Tier == types.TierFree {
			return fmt.Errorf("tier threshold %d has invalid tier %q", i, t.Tier)
		}
		if i == 0 {
			continue
		}
		prev := tierThresholds[i-1]
		if t.Referrals <= prev.Referrals {
			return fmt.Errorf("tier thresholds not strictly increasing at %d", i)
		}
		if t.GrantDays < prev.GrantDays {
			return fmt.Errorf("tier grant days decrease at %d", i)
		}
		if t.Tier.Rank() < prev.Tier.Rank() {
			return fmt.Errorf("tier rank decreases at %d", i)
		}
	}
	return nil
}
