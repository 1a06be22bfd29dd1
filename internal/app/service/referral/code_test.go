package referral

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestGenerateCode(t *testing.T) {
	now := time.Date(2026, 7, 4, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		name        string
		displayName string
		email       string
		wantPrefix  string
	}{
		{"plain name", "Jane Doe", "jane@example.com", "JANE"},
		{"lowercased name", "bob", "bob@example.com", "BOBX"},
		{"name with digits and symbols", "a1-b2 c3!", "x@example.com", "ABCX"},
		{"empty name falls back to email", "", "carol.smith@example.com", "CARO"},
		{"no usable letters anywhere", "123", "99@example.com", "USER"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			code := GenerateCode(tc.displayName, tc.email, "user-1", now)
			require.Len(t, code, 12)
			require.Equal(t, tc.wantPrefix, code[:4])
			require.Regexp(t, `^[A-Z]{4}\d{4}2026$`, code)
		})
	}
}

func TestGenerateCode_StablePerUser(t *testing.T) {
	now := time.Date(2026, 7, 4, 0, 0, 0, 0, time.UTC)
	a := GenerateCode("Jane Doe", "jane@example.com", "user-1", now)
	b := GenerateCode("Jane Doe", "jane@example.com", "user-1", now)
	require.Equal(t, a, b)

	c := GenerateCode("Jane Doe", "jane@example.com", "user-2", now)
	require.NotEqual(t, a, c, "suffix must vary with the user id")
}

func TestGenerateCode_YearFollowsClock(t *testing.T) {
	code := GenerateCode("Jane", "", "user-1", time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC))
	require.Equal(t, "2027", code[8:])
}
