package models

// DeckStatsSnapshot is the per-deck daily statistics tuple handed to the
// rendering/export collaborator. String fields hold "-" when the value is
// unknown (no data, or the aggregation degraded); the presentation layer
// relies on that shape and never sees an error instead.
type DeckStatsSnapshot struct {
	DeckID        int64       `json:"deck_id"`
	Maturity      string      `json:"maturity"`       // mature-card count, "-" when unknown
	Retention     string      `json:"retention"`      // today's retention %, "-" without reviews
	TotalCards    int         `json:"total_cards"`    // all cards in the subtree
	Tomorrow      int         `json:"tomorrow"`       // review cards due tomorrow
	DoneToday     int         `json:"done_today"`     // reviews answered today
	Speed         string      `json:"speed"`          // cards per minute
	Ease          string      `json:"ease"`           // average ease as a percentage
	Leeches       int         `json:"leeches"`        // cards at or past the lapse threshold
	MatureCount   int         `json:"mature_count"`   // numeric twin of Maturity
	AvgTime       string      `json:"avg_time"`       // average seconds per card
	TotalTimeMs   int64       `json:"total_time_ms"`  // time spent today
	TotalStars    int         `json:"total_stars"`    // all-time daily-goal multiples
	PassedToday   int         `json:"passed_today"`   // non-Fail answers today
	OutcomeCounts map[int]int `json:"outcome_counts"` // today's histogram, keys 1-4
	MaturityPct   string      `json:"maturity_pct"`   // mature/total %, "-" when unknown
	MaturityRank  string      `json:"maturity_rank"`  // named rank for the maturity percentage
	MatureCardIDs []int64     `json:"mature_card_ids,omitempty"`
	StreakQty     int         `json:"streak_qty"` // today's successful streak-rank reviews
	StreakPct     int         `json:"streak_pct"` // success % among today's streak-rank reviews

	// Chart payloads, populated only when chart generation is enabled.
	RetentionSeries []TrendPoint `json:"retention_series,omitempty"`
	ReviewSeries    []TrendPoint `json:"review_series,omitempty"`
	EaseSeries      []TrendPoint `json:"ease_series,omitempty"`
}

// RpgState is the gamified daily score for one deck.
type RpgState struct {
	HP    int `json:"hp"`     // 0-100, today's health after all reviews
	XP    int `json:"xp"`     // signed, includes children's XP recursively
	HPPct int `json:"hp_pct"` // HP as a bar percentage
}

// GlobalLevel maps cumulative XP onto the named tier ladder.
type GlobalLevel struct {
	Title      string  `json:"title"`
	Color      string  `json:"color"`
	LevelPct   float64 `json:"level_pct"`    // progress within the tier, 0-1
	GlobalPct  float64 `json:"global_pct"`   // progress toward the top tier, 0-1
	XPInLevel  int     `json:"xp_in_level"`  // XP accumulated past the tier floor
	XPForLevel int     `json:"xp_for_level"` // XP between floor and ceiling, 0 when open-ended
	MaxTier    bool    `json:"max_tier"`
	Cursed     bool    `json:"cursed"`
}

// TrendPoint is one day of a historical trend series. Value carries the
// retention/ease/streak figure; the review-count mode fills the three
// count fields instead.
type TrendPoint struct {
	Date   string `json:"date"` // display date, DD/MM
	Value  int    `json:"value"`
	New    int    `json:"new,omitempty"`
	Learn  int    `json:"learn,omitempty"`
	Review int    `json:"review,omitempty"`
}

// HistoryPoint is one persisted (ease, retention) snapshot for one deck
// and calendar day.
type HistoryPoint struct {
	Ease      int `json:"ease"`
	Retention int `json:"retention"`
}

// DaySummary is one day of the global activity series: how many cards
// were answered and how much XP they were worth, plus the tier that XP
// alone would map to.
type DaySummary struct {
	Date  string `json:"date"`
	Cards int    `json:"cards"`
	XP    int    `json:"xp"`
	Tier  string `json:"tier"`
}

// GlobalSummary aggregates the pinned decks into the totals row plus the
// global progression state.
type GlobalSummary struct {
	TotalNew      int          `json:"total_new"`
	TotalLearn    int          `json:"total_learn"`
	TotalReview   int          `json:"total_review"`
	TotalCards    int          `json:"total_cards"`
	TotalTomorrow int          `json:"total_tomorrow"`
	TotalLeeches  int          `json:"total_leeches"`
	TotalStreak   int          `json:"total_streak"`
	StreakPct     string       `json:"streak_pct"`
	ReviewsToday  int          `json:"reviews_today"`
	PassedToday   int          `json:"passed_today"`
	TotalTimeMs   int64        `json:"total_time_ms"`
	Retention     string       `json:"retention"`
	Speed         string       `json:"speed"`
	AvgTime       string       `json:"avg_time"`
	Ease          string       `json:"ease"`
	GoalSum       int          `json:"goal_sum"`
	Stars         int          `json:"stars"`
	EstimatedTime string       `json:"estimated_time"`
	XP            int          `json:"xp"`
	Level         GlobalLevel  `json:"level"`
	StreakDays    int          `json:"streak_days"`    // consecutive study days
	LastReviewAt  string       `json:"last_review_at"` // HH:MM:SS of the newest event
	OutcomeCounts map[int]int  `json:"outcome_counts"` // today's global histogram
	Days          []DaySummary `json:"days,omitempty"`
}
