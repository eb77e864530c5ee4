package util

import (
	"regexp"
	"testing"
	"time"
)

func TestRandomString(t *testing.T) {
	t.Parallel()

	re := regexp.MustCompile(`^[A-Za-z0-9]{14}$`)
	if got := RandomString(UserIDLength); !re.MatchString(got) {
		t.Fatalf("RandomString(%d) = %q, want 14 alphanumerics", UserIDLength, got)
	}
	if got := RandomString(0); got != "" {
		t.Fatalf("RandomString(0) = %q, want empty", got)
	}
}

func TestGeneratedIDs(t *testing.T) {
	t.Parallel()

	entryDate := time.Date(2024, time.March, 5, 0, 0, 0, 0, time.Local)
	now := time.Date(2024, time.March, 7, 9, 4, 30, 0, time.Local)

	tests := []struct {
		name    string
		got     string
		pattern string
	}{
		{name: "transaction id", got: TransactionID(entryDate, now), pattern: `^20240305_090430_[A-Za-z0-9]{5}$`},
		{name: "move id", got: MoveID(now), pattern: `^07032024_090430_[A-Za-z0-9]{5}$`},
		{name: "tag id", got: TagID(now), pattern: `^090430_[A-Za-z0-9]{5}$`},
		{name: "export file", got: ExportFileName("inventory", now, "xlsx"), pattern: `^inventory_07032024_090430\.xlsx$`},
		{name: "attendance key", got: AttendanceKey(now), pattern: `^20240307$`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if !regexp.MustCompile(tt.pattern).MatchString(tt.got) {
				t.Fatalf("%s = %q, want match for %s", tt.name, tt.got, tt.pattern)
			}
		})
	}
}

func TestTransactionIDSortsByEntryDate(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, time.March, 7, 23, 59, 59, 0, time.Local)
	earlier := TransactionID(time.Date(2024, time.January, 31, 0, 0, 0, 0, time.Local), now)
	later := TransactionID(time.Date(2024, time.February, 1, 0, 0, 0, 0, time.Local), now.Add(-23*time.Hour))

	if earlier >= later {
		t.Fatalf("expected %q < %q", earlier, later)
	}
}

func TestContainsFold(t *testing.T) {
	t.Parallel()

	if !ContainsFold("Ramesh Kumar", "kum") {
		t.Fatal("expected case-insensitive match")
	}
	if ContainsFold("Ramesh", "suresh") {
		t.Fatal("unexpected match")
	}
}
