package models

// Review outcomes as reported by the scheduler (1-4).
const (
	OutcomeFail = 1
	OutcomeHard = 2
	OutcomeGood = 3
	OutcomeEasy = 4
)

// Review event types.
const (
	ReviewTypeNew        = 0
	ReviewTypeReview     = 1
	ReviewTypeRelearning = 2
)

// ReviewEvent is one row of the append-only review log. ID is epoch
// milliseconds of the answer and the ordering key. Factor, Lapses,
// Interval and Reps mirror the card's scheduling state as reported by
// the host scheduler alongside the event.
type ReviewEvent struct {
	ID       int64 `json:"id"`
	CardID   int64 `json:"card_id"`
	Outcome  int   `json:"outcome"`
	TimeMs   int64 `json:"time_ms"`
	Factor   int   `json:"factor"`
	Lapses   int   `json:"lapses"`
	Interval int   `json:"interval"`
	Reps     int   `json:"reps"`
	Type     int   `json:"type"`
}

// DayAggregate is one calendar day's worth of review-log aggregates for a
// deck subtree, as produced by the ranked trend query. DayOffset is 0 for
// today and negative for past days. StreakAttempts/StreakHits count review
// events whose per-card repetition rank reached the streak threshold.
type DayAggregate struct {
	DayOffset      int
	Passed         int
	Total          int
	AvgEase        float64
	New            int
	Learn          int
	Review         int
	StreakAttempts int
	StreakHits     int
}
