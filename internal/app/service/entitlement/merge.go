package entitlement

import "time"

// MergeExpiry extends a referral-premium expiry by totalDays calendar days,
// anchored at whichever is later: now or the still-active current expiry.
// Re-running a grant therefore always extends and never shortens. The
// arithmetic is date-based (AddDate), so partial-day drift is acceptable.
func MergeExpiry(now time.Time, current *time.Time, totalDays int) time.Time {
	anchor := now
	if current != nil && current.After(anchor) {
		anchor = *current
	}
	return anchor.AddDate(0, 0, totalDays)
}
