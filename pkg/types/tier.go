package types

// Tier is an ordered access level. Ordering: free < gold < platinum < diamond.
type Tier string

const (
	TierFree     Tier = "free"
	TierGold     Tier = "gold"
	TierPlatinum Tier = "platinum"
	TierDiamond  Tier = "diamond"
)

var tierRank = map[Tier]int{
	TierFree:     0,
	TierGold:     1,
	TierPlatinum: 2,
	TierDiamond:  3,
}

// Rank returns the ordinal position of the tier. Unknown tiers rank below free.
func (t Tier) Rank() int {
	if r, ok := tierRank[t]; ok {
		return r
	}
	return -1
}

func (t Tier) Known() bool {
	_, ok := tierRank[t]
	return ok
}

// AtLeast reports whether t grants access at level other or higher.
func (t Tier) AtLeast(other Tier) bool {
	return t.Rank() >= other.Rank()
}

type SubscriptionStatus string

const (
	SubscriptionStatusActive   SubscriptionStatus = "active"
	SubscriptionStatusInactive SubscriptionStatus = "inactive"
)
