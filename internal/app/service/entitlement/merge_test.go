package entitlement

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestMergeExpiry(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("no current expiry anchors at now", func(t *testing.T) {
		got := MergeExpiry(now, nil, 7)
		require.Equal(t, now.AddDate(0, 0, 7), got)
	})

	t.Run("expired current expiry anchors at now", func(t *testing.T) {
		expired := now.AddDate(0, 0, -3)
		got := MergeExpiry(now, &expired, 30)
		require.Equal(t, now.AddDate(0, 0, 30), got)
	})

	t.Run("future current expiry anchors at current", func(t *testing.T) {
		future := now.AddDate(0, 0, 10)
		got := MergeExpiry(now, &future, 30)
		require.Equal(t, future.AddDate(0, 0, 30), got)
	})

	t.Run("current equal to now anchors at now", func(t *testing.T) {
		cur := now
		got := MergeExpiry(now, &cur, 7)
		require.Equal(t, now.AddDate(0, 0, 7), got)
	})

	t.Run("zero days returns the anchor", func(t *testing.T) {
		future := now.AddDate(0, 0, 5)
		require.Equal(t, future, MergeExpiry(now, &future, 0))
	})
}

func TestMergeExpiry_NeverShortens(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	expiry := MergeExpiry(now, nil, 7)
	for i := 0; i < 10; i++ {
		next := MergeExpiry(now, &expiry, 7)
		require.True(t, next.After(expiry), "iteration %d must extend", i)
		expiry = next
	}
	require.Equal(t, now.AddDate(0, 0, 77), expiry)
}
