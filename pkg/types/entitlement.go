package types

import "time"

// EntitlementSource identifies which grant produced the resolved access level.
type EntitlementSource string

const (
	EntitlementSourceSubscription EntitlementSource = "subscription"
	EntitlementSourceReferral     EntitlementSource = "referral"
)

// Entitlement is the resolved, currently-valid access level for a user.
// Source is nil when the user is on the free tier.
type Entitlement struct {
	IsPremium bool               `json:"is_premium"`
	Tier      Tier               `json:"tier"`
	ExpiresAt *time.Time         `json:"expires_at"`
	Source    *EntitlementSource `json:"source"`
}

type EntitlementChangeReason string

const (
	EntitlementChangeReasonReferralReward EntitlementChangeReason = "referral_reward"
	EntitlementChangeReasonStoreSync      EntitlementChangeReason = "store_sync"
	EntitlementChangeReasonReceiptVerify  EntitlementChangeReason = "receipt_verify"
	EntitlementChangeReasonWebhook        EntitlementChangeReason = "webhook"
	EntitlementChangeReasonAdminGrant     EntitlementChangeReason = "admin_grant"
	EntitlementChangeReasonCancel         EntitlementChangeReason = "cancel"
)
