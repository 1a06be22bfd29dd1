package apple

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestReceiptInfoExpiresAt(t *testing.T) {
	t.Run("subscription row", func(t *testing.T) {
		r := &ReceiptInfo{ExpiresDateMs: "1767225600000"}
		got := r.ExpiresAt()
		require.NotNil(t, got)
		require.Equal(t, time.UnixMilli(1767225600000), *got)
	})

	t.Run("non-subscription row has no expiry", func(t *testing.T) {
		r := &ReceiptInfo{}
		require.Nil(t, r.ExpiresAt())
	})

	t.Run("garbage expiry is nil", func(t *testing.T) {
		r := &ReceiptInfo{ExpiresDateMs: "soon"}
		require.Nil(t, r.ExpiresAt())
	})

	t.Run("nil receiver", func(t *testing.T) {
		var r *ReceiptInfo
		require.Nil(t, r.ExpiresAt())
	})
}
