package util

import (
	"crypto/rand"
	"math/big"
	"strings"
	"time"
)

const idAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// Length of the random suffix of generated ids.
const (
	SuffixLength = 5
	UserIDLength = 14
)

// RandomString returns n characters drawn from [A-Za-z0-9].
func RandomString(n int) string {
	var sb strings.Builder
	sb.Grow(n)
	limit := big.NewInt(int64(len(idAlphabet)))
	for range n {
		idx, err := rand.Int(rand.Reader, limit)
		if err != nil {
			// crypto/rand does not fail on supported platforms.
			panic(err)
		}
		sb.WriteByte(idAlphabet[idx.Int64()])
	}

	return sb.String()
}

// TransactionID builds YYYYMMDD(entry date)_HHmmss(now)_XXXXX. Sorting these ids
// lexicographically orders entries by their business date.
func TransactionID(entryDate, now time.Time) string {
	return entryDate.Format("20060102") + "_" + now.Format("150405") + "_" + RandomString(SuffixLength)
}

// MoveID builds DDMMYYYY_HHmmss_XXXXX.
func MoveID(now time.Time) string {
	return now.Format("02012006_150405") + "_" + RandomString(SuffixLength)
}

// TagID builds HHmmss_XXXXX.
func TagID(now time.Time) string {
	return now.Format("150405") + "_" + RandomString(SuffixLength)
}

// UserID returns a new customer or delivery person id.
func UserID() string {
	return RandomString(UserIDLength)
}

// ExportFileName builds prefix_DDMMYYYY_HHmmss.ext.
func ExportFileName(prefix string, now time.Time, ext string) string {
	return prefix + "_" + now.Format("02012006_150405") + "." + ext
}

// EpochMillis converts t to milliseconds since the Unix epoch, the unit of
// every audit timestamp.
func EpochMillis(t time.Time) int64 {
	return t.UnixMilli()
}

// AttendanceKey formats the date key of the attendance map (YYYYMMDD).
func AttendanceKey(t time.Time) string {
	return t.Format("20060102")
}

// ContainsFold reports whether substr is within s, ignoring case.
func ContainsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
