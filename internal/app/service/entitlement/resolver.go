package entitlement

import (
	"time"

	"github.com/stockbrief/membership/internal/models"
	"github.com/stockbrief/membership/pkg/types"
)

// Resolve computes the single active entitlement for a user at the given
// instant. Precedence is strict: a live store subscription always wins over
// referral premium, which in turn beats free. Referral-sourced access is
// hard-capped at gold no matter which tier the reward table stored.
func Resolve(u *models.User, now time.Time) *types.Entitlement {
	switch {
	case u.HasActiveStoreSubscription(now):
		src := types.EntitlementSourceSubscription
		exp := *u.SubscriptionExpiry
		return &types.Entitlement{IsPremium: true, Tier: u.SubscriptionTier, ExpiresAt: &exp, Source: &src}
	case u.HasActiveReferralPremium(now):
		src := types.EntitlementSourceReferral
		exp := *u.ReferralPremiumExpiry
		return &types.Entitlement{IsPremium: true, Tier: types.TierGold, ExpiresAt: &exp, Source: &src}
	default:
		return &types.Entitlement{IsPremium: false, Tier: types.TierFree}
	}
}
