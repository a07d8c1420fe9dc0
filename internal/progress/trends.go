package progress

import (
	"math"

	"github.com/vytor/deckpulse/internal/models"
)

// TrendMode selects which figure a trend series carries.
type TrendMode string

const (
	ModeRetention TrendMode = "retention"
	ModeEase      TrendMode = "ease"
	ModeReviews   TrendMode = "reviews"
	ModeStreakQty TrendMode = "streak_qty"
	ModeStreakPct TrendMode = "streak_pct"
)

// LiveValues are today's freshly computed retention and ease, used to
// backfill days whose value would otherwise resolve to zero.
type LiveValues struct {
	Retention int
	Ease      int
}

// BuildSeries assembles the day-by-day trend window from the ranked
// per-day aggregates. Retention and ease resolve through three layers in
// order: the persisted history snapshot, the aggregates, then the live
// value; the count modes come from the aggregates alone. The series
// always has exactly days entries (minimum 3), oldest first.
func BuildSeries(mode TrendMode, aggs []models.DayAggregate, history map[string]models.HistoryPoint, live LiveValues, cutoff int64, days int) []models.TrendPoint {
	if days < 3 {
		days = 3
	}

	byOffset := make(map[int]models.DayAggregate, len(aggs))
	for _, a := range aggs {
		byOffset[a.DayOffset] = a
	}

	points := make([]models.TrendPoint, 0, days)
	for i := days - 1; i >= 0; i-- {
		offset := -i
		key := DateKey(cutoff, offset)
		p := models.TrendPoint{Date: DisplayDate(cutoff, offset)}
		agg, hasAgg := byOffset[offset]

		switch mode {
		case ModeRetention, ModeEase:
			if h, ok := history[key]; ok {
				if mode == ModeRetention {
					p.Value = h.Retention
				} else {
					p.Value = h.Ease
				}
			}
			if p.Value == 0 && hasAgg {
				if mode == ModeRetention {
					if agg.Total > 0 {
						p.Value = int(math.Round(float64(agg.Passed) / float64(agg.Total) * 100))
					}
				} else if agg.AvgEase != 0 {
					p.Value = int(agg.AvgEase / 10)
				}
			}
			if p.Value == 0 {
				if mode == ModeRetention {
					p.Value = live.Retention
				} else {
					p.Value = live.Ease
				}
			}
		case ModeReviews:
			if hasAgg {
				p.New = agg.New
				p.Learn = agg.Learn
				p.Review = agg.Review
			}
		case ModeStreakQty:
			if hasAgg {
				p.Value = agg.StreakHits
			}
		case ModeStreakPct:
			if hasAgg && agg.StreakAttempts > 0 {
				p.Value = int(math.Round(float64(agg.StreakHits) / float64(agg.StreakAttempts) * 100))
			}
		}
		points = append(points, p)
	}
	return points
}
