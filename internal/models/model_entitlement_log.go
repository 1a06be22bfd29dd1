package models

import (
	"time"

	"gorm.io/datatypes"

	"github.com/stockbrief/membership/pkg/types"
)

// EntitlementSnapshot is the entitlement-relevant slice of a user row,
// captured before and after each change.
type EntitlementSnapshot struct {
	SubscriptionTier      types.Tier               `json:"subscription_tier"`
	SubscriptionStatus    types.SubscriptionStatus `json:"subscription_status"`
	SubscriptionExpiry    *time.Time               `json:"subscription_expiry"`
	SubscriptionProductID string                   `json:"subscription_product_id"`
	ReferralPremiumDays   int                      `json:"referral_premium_days"`
	ReferralPremiumExpiry *time.Time               `json:"referral_premium_expiry"`
}

// SnapshotOf copies the entitlement fields out of a user row. Nil in, nil out.
func SnapshotOf(u *User) *EntitlementSnapshot {
	if u == nil {
		return nil
	}
	return &EntitlementSnapshot{
		SubscriptionTier:      u.SubscriptionTier,
		SubscriptionStatus:    u.SubscriptionStatus,
		SubscriptionExpiry:    u.SubscriptionExpiry,
		SubscriptionProductID: u.SubscriptionProductID,
		ReferralPremiumDays:   u.ReferralPremiumDays,
		ReferralPremiumExpiry: u.ReferralPremiumExpiry,
	}
}

// EntitlementLog is the append-only history of entitlement changes.
// Use case: troubleshooting and grant auditing.
type EntitlementLog struct {
	ID     string                        `gorm:"column:id;type:uuid;primary_key" json:"id"`
	UserID string                        `gorm:"column:user_id;type:uuid;index:idx_entitlement_log_user;not null" json:"user_id"`
	Reason types.EntitlementChangeReason `gorm:"column:reason;type:varchar(64);not null" json:"reason"`
	// Before stores the entitlement fields before the change, JSON encoded.
	Before datatypes.JSONType[*EntitlementSnapshot] `gorm:"column:before;type:jsonb;default:'null'" json:"before"`
	// After stores the entitlement fields after the change, JSON encoded.
	After datatypes.JSONType[*EntitlementSnapshot] `gorm:"column:after;type:jsonb;default:'null'" json:"after"`
	// Extra stores additional context such as operator id or webhook event id.
	Extra     datatypes.JSONMap `gorm:"column:extra;type:jsonb;default:'{}'" json:"extra"`
	CreatedAt time.Time         `json:"created_at"`
}

func (EntitlementLog) TableName() string {
	return "entitlement_log"
}
