package referral

import (
	"hash/fnv"
	"strings"
	"time"
	"unicode"
)

const codeNameLetters = 4

// GenerateCode builds a referral code from four letters of the user's name,
// a four-digit suffix derived from the user id, and the current year, e.g.
// "JANE48212026". Codes are generated once per user and never change.
func GenerateCode(displayName, email, userID string, now time.Time) string {
	name := lettersOf(displayName)
	if name == "" {
		if at := strings.IndexByte(email, '@'); at > 0 {
			name = lettersOf(email[:at])
		}
	}
	if name == "" {
		name = "USER"
	}
	if len(name) > codeNameLetters {
		name = name[:codeNameLetters]
	}
	for len(name) < codeNameLetters {
		name += "X"
	}

	return name + idSuffix(userID) + now.Format("2006")
}

// idSuffix reduces an arbitrary user id to a stable four-digit string.
func idSuffix(userID string) string {
	h := fnv.New32a()
	_, _ = h.Write([]byte(userID))
	n := h.Sum32() % 10000
	digits := []byte{'0', '0', '0', '0'}
	for i := 3; i >= 0 && n > 0; i-- {
		digits[i] = byte('0' + n%10)
		n /= 10
	}
	return string(digits)
}

func lettersOf(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsLetter(r) && r < 128 {
			b.WriteRune(unicode.ToUpper(r))
		}
		if b.Len() >= codeNameLetters {
			break
		}
	}
	return b.String()
}
