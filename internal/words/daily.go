package words

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"time"
)

// DateKey returns YYYY-MM-DD in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// DayIndex returns a deterministic index in [0, n) for the UTC day of t:
// HMAC-SHA256(salt, YYYY-MM-DD), first 8 bytes, mod n.
func DayIndex(t time.Time, salt string, n int) int {
	if n <= 0 {
		return 0
	}
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(DateKey(t)))
	sum := h.Sum(nil)
	return int(binary.BigEndian.Uint64(sum[:8]) % uint64(n))
}

// DatePicker picks the same index for every draw on a given UTC day.
type DatePicker struct {
	Salt string
	Now  func() time.Time // nil means time.Now
}

func (d DatePicker) Pick(n int) int {
	now := time.Now
	if d.Now != nil {
		now = d.Now
	}
	return DayIndex(now(), d.Salt, n)
}
