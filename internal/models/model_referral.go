package models

import (
	"time"

	"github.com/stockbrief/membership/pkg/types"
)

// Referral is an edge from a referrer to a referred signup. Status moves
// forward only: pending -> completed -> rewarded. RewardDays and RewardedAt
// are set when the referral is paid out.
type Referral struct {
	ID             string               `gorm:"column:id;type:uuid;primary_key" json:"id"`
	ReferrerUserID string               `gorm:"column:referrer_user_id;type:uuid;not null;index:idx_referrer_status,priority:1" json:"referrer_user_id"`
	ReferredUserID string               `gorm:"column:referred_user_id;type:uuid;not null;index" json:"referred_user_id"`
	ReferralCode   string               `gorm:"column:referral_code;type:varchar(24);not null;index" json:"referral_code"`
	Status         types.ReferralStatus `gorm:"column:status;type:varchar(32);not null;index:idx_referrer_status,priority:2" json:"status"`
	RewardDays     *int                 `gorm:"column:reward_days;default:null" json:"reward_days"`
	RewardedAt     *time.Time           `gorm:"column:rewarded_at;default:null" json:"rewarded_at"`
	CreatedAt      time.Time            `json:"created_at"`
	UpdatedAt      time.Time            `json:"updated_at"`
}

func (Referral) TableName() string {
	return "referral"
}

// CountsTowardReward reports whether the referral participates in the
// referrer's qualifying count.
func (r *Referral) CountsTowardReward() bool {
	return r != nil &&
		(r.Status == types.ReferralStatusCompleted || r.Status == types.ReferralStatusRewarded)
}
