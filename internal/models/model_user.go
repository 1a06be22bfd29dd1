package models

import (
	"time"

	"gorm.io/datatypes"

	"github.com/stockbrief/membership/pkg/types"
)

// User carries the denormalized entitlement state for one account: the
// store-subscription fields written by the RevenueCat sync paths and the
// referral-premium fields written by the referral reward flow.
type User struct {
	ID          string `gorm:"column:id;type:uuid;primary_key" json:"id"`
	Email       string `gorm:"column:email;type:varchar(255);uniqueIndex" json:"email"`
	DisplayName string `gorm:"column:display_name;type:varchar(128)" json:"display_name"`

	SubscriptionTier   types.Tier               `gorm:"column:subscription_tier;type:varchar(32);not null;default:'free'" json:"subscription_tier"`
	SubscriptionStatus types.SubscriptionStatus `gorm:"column:subscription_status;type:varchar(32);not null;default:'inactive'" json:"subscription_status"`
	SubscriptionExpiry *time.Time               `gorm:"column:subscription_expiry;default:null" json:"subscription_expiry"`
	// SubscriptionProductID is set only by store purchase paths (sync,
	// receipt verification, webhooks). Referral grants never set it.
	SubscriptionProductID string `gorm:"column:subscription_product_id;type:varchar(128)" json:"subscription_product_id"`

	// ReferralCode is generated once and immutable afterwards.
	ReferralCode string `gorm:"column:referral_code;type:varchar(24);uniqueIndex;default:null" json:"referral_code"`
	// ReferralPremiumDays holds the day count of the latest qualifying grant.
	ReferralPremiumDays int `gorm:"column:referral_premium_days;not null;default:0" json:"referral_premium_days"`
	// ReferralPremiumExpiry is monotonically non-decreasing across grants.
	ReferralPremiumExpiry *time.Time `gorm:"column:referral_premium_expiry;default:null" json:"referral_premium_expiry"`

	Extra     datatypes.JSON `gorm:"column:extra;type:jsonb;default:'{}'" json:"extra"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

// HasActiveStoreSubscription reports whether a paid store subscription is
// live at the given instant. An expiry exactly equal to now counts as
// expired. The product id check keeps referral-mirrored subscription
// columns from masquerading as a store purchase.
func (u *User) HasActiveStoreSubscription(now time.Time) bool {
	return u != nil &&
		u.SubscriptionStatus == types.SubscriptionStatusActive &&
		u.SubscriptionExpiry != nil &&
		u.SubscriptionExpiry.After(now) &&
		u.SubscriptionProductID != ""
}

// HasActiveReferralPremium reports whether referral-earned premium is live
// at the given instant, strict comparison as for store subscriptions.
func (u *User) HasActiveReferralPremium(now time.Time) bool {
	return u != nil &&
		u.ReferralPremiumExpiry != nil &&
		u.ReferralPremiumExpiry.After(now)
}
