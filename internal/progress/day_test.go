package progress_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/vytor/deckpulse/internal/progress"
)

func TestDayCutoff_BeforeRollover(t *testing.T) {
	now := time.Date(2026, 1, 10, 2, 0, 0, 0, time.Local)
	cutoff := progress.DayCutoff(now, 4)
	want := time.Date(2026, 1, 10, 4, 0, 0, 0, time.Local)
	assert.Equal(t, want.Unix(), cutoff, "2am belongs to the previous study day")
}

func TestDayCutoff_AfterRollover(t *testing.T) {
	now := time.Date(2026, 1, 10, 9, 30, 0, 0, time.Local)
	cutoff := progress.DayCutoff(now, 4)
	want := time.Date(2026, 1, 11, 4, 0, 0, 0, time.Local)
	assert.Equal(t, want.Unix(), cutoff)
}

func TestDayCutoff_ExactlyAtRollover(t *testing.T) {
	now := time.Date(2026, 1, 10, 4, 0, 0, 0, time.Local)
	cutoff := progress.DayCutoff(now, 4)
	want := time.Date(2026, 1, 11, 4, 0, 0, 0, time.Local)
	assert.Equal(t, want.Unix(), cutoff, "the cutoff is exclusive")
}

func TestTodayNumber_AdvancesDaily(t *testing.T) {
	cutoff := progress.DayCutoff(time.Date(2026, 1, 10, 9, 0, 0, 0, time.Local), 4)
	assert.Equal(t, progress.TodayNumber(cutoff)+1, progress.TodayNumber(cutoff+86400))
}

func TestTodayStartMs(t *testing.T) {
	var cutoff int64 = 1_700_000_000
	assert.Equal(t, (cutoff-86400)*1000, progress.TodayStartMs(cutoff))
}

func TestDateKeys_OffsetsAreDistinctDays(t *testing.T) {
	cutoff := progress.DayCutoff(time.Date(2026, 1, 10, 9, 0, 0, 0, time.Local), 4)

	today := progress.DateKey(cutoff, 0)
	yesterday := progress.DateKey(cutoff, -1)
	assert.NotEqual(t, today, yesterday)
	assert.Len(t, today, 10)
	assert.Len(t, progress.DisplayDate(cutoff, 0), 5)

	// The storage key and the display label describe the same instant.
	ts := time.Unix(cutoff-43200, 0)
	assert.Equal(t, ts.Format("2006-01-02"), today)
	assert.Equal(t, ts.Format("02/01"), progress.DisplayDate(cutoff, 0))
}
