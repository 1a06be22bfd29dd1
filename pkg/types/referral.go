package types

// ReferralStatus is the lifecycle state of a referral edge.
// Transitions are forward-only: pending -> completed -> rewarded.
type ReferralStatus string

const (
	ReferralStatusPending   ReferralStatus = "pending"
	ReferralStatusCompleted ReferralStatus = "completed"
	ReferralStatusRewarded  ReferralStatus = "rewarded"
)

var referralStatusOrder = map[ReferralStatus]int{
	ReferralStatusPending:   0,
	ReferralStatusCompleted: 1,
	ReferralStatusRewarded:  2,
}

// CanTransitionTo reports whether moving from s to next is a forward transition.
func (s ReferralStatus) CanTransitionTo(next ReferralStatus) bool {
	a, okA := referralStatusOrder[s]
	b, okB := referralStatusOrder[next]
	return okA && okB && b > a
}
