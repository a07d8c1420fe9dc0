// Package progress holds the pure aggregation algorithms: the HP and XP
// folds, the level ladder, trend series assembly and the deck-tree math.
// Everything here is deterministic over its inputs so the service layer
// can cache results by value.
package progress

import "time"

// DayCutoff returns the epoch second at which the current scheduler day
// ends: the next occurrence of rolloverHour, local time. An answer at
// 02:00 with rollover 4 still belongs to yesterday's session.
func DayCutoff(now time.Time, rolloverHour int) int64 {
	cut := time.Date(now.Year(), now.Month(), now.Day(), rolloverHour, 0, 0, 0, now.Location())
	if !cut.After(now) {
		cut = cut.Add(24 * time.Hour)
	}
	return cut.Unix()
}

// TodayNumber converts a cutoff into the scheduler day number used by
// card due fields.
func TodayNumber(cutoff int64) int {
	return int(cutoff/86400) - 1
}

// TodayStartMs returns the exclusive lower bound, in epoch milliseconds,
// for events belonging to the current day.
func TodayStartMs(cutoff int64) int64 {
	return (cutoff - 86400) * 1000
}

// DateKey returns the stable storage key ("YYYY-MM-DD") for the day at
// the given offset from today. The half-day shift centers the timestamp
// inside the scheduler day so DST and rollover never flip the date.
func DateKey(cutoff int64, offset int) string {
	return dayTime(cutoff, offset).Format("2006-01-02")
}

// DisplayDate returns the short "DD/MM" label for the day at offset.
func DisplayDate(cutoff int64, offset int) string {
	return dayTime(cutoff, offset).Format("02/01")
}

func dayTime(cutoff int64, offset int) time.Time {
	return time.Unix(cutoff+int64(offset)*86400-43200, 0)
}
