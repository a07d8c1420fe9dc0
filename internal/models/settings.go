package models

// Settings are the runtime-tunable parameters that feed both aggregations.
// Every computation takes an immutable copy so a change mid-recursion can
// never produce an inconsistent tree.
type Settings struct {
	StreakThreshold int  `json:"streak_threshold"` // consecutive correct answers for maturity
	LeechThreshold  int  `json:"leech_threshold"`  // lapses before a card counts as a leech
	ChartDays       int  `json:"chart_days"`       // trend window, minimum 3
	ShowCharts      bool `json:"show_charts"`
	DefaultGoal     int  `json:"default_goal"` // daily goal for decks without one
}

// Normalize clamps out-of-range values to their minimums.
func (s Settings) Normalize() Settings {
	if s.StreakThreshold < 1 {
		s.StreakThreshold = 1
	}
	if s.LeechThreshold < 1 {
		s.LeechThreshold = 1
	}
	if s.ChartDays < 3 {
		s.ChartDays = 3
	}
	if s.DefaultGoal < 1 {
		s.DefaultGoal = 1
	}
	return s
}
