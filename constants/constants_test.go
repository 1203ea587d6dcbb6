package constants

import (
	"regexp"
	"testing"
	"time"
)

func TestTimeFormat(t *testing.T) {
	// Check that the global regexp can match constant TimeFormatYearSeconds.
	re := regexp.MustCompile(TimeFormatYearSecondsRegex)
	if !re.MatchString(TimeFormatYearSeconds) {
		t.Fatal("Mismatch between TimeFormatYearSeconds and regexp in constant TimeFormatYearSecondsRegex.")
	}
	// The daily salt must render as exactly eight digits.
	re = regexp.MustCompile(TimeFormatDailySaltRegex)
	got := time.Date(2025, 3, 7, 23, 59, 0, 0, time.UTC).Format(TimeFormatDailySalt)
	if !re.MatchString(got) || got != "20250307" {
		t.Fatalf("expected daily salt 20250307; got %v", got)
	}
}
