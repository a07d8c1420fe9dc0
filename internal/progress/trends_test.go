package progress_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vytor/deckpulse/internal/models"
	"github.com/vytor/deckpulse/internal/progress"
)

func trendCutoff() int64 {
	return progress.DayCutoff(time.Date(2026, 1, 10, 9, 0, 0, 0, time.Local), 4)
}

func TestBuildSeries_ExactWindowLength(t *testing.T) {
	cutoff := trendCutoff()

	points := progress.BuildSeries(progress.ModeRetention, nil, nil, progress.LiveValues{}, cutoff, 7)
	assert.Len(t, points, 7)

	points = progress.BuildSeries(progress.ModeRetention, nil, nil, progress.LiveValues{}, cutoff, 1)
	assert.Len(t, points, 3, "window is clamped to at least 3 days")
}

func TestBuildSeries_RetentionResolutionLayers(t *testing.T) {
	cutoff := trendCutoff()

	aggs := []models.DayAggregate{
		{DayOffset: 0, Passed: 8, Total: 10},
	}
	history := map[string]models.HistoryPoint{
		progress.DateKey(cutoff, -1): {Retention: 70},
	}
	live := progress.LiveValues{Retention: 50}

	points := progress.BuildSeries(progress.ModeRetention, aggs, history, live, cutoff, 3)
	require.Len(t, points, 3)
	assert.Equal(t, 50, points[0].Value, "no history or aggregate falls back to the live value")
	assert.Equal(t, 70, points[1].Value, "persisted history wins")
	assert.Equal(t, 80, points[2].Value, "aggregate fills days without history")
}

func TestBuildSeries_HistoryZeroFallsThrough(t *testing.T) {
	cutoff := trendCutoff()

	aggs := []models.DayAggregate{{DayOffset: 0, Passed: 6, Total: 10}}
	history := map[string]models.HistoryPoint{
		progress.DateKey(cutoff, 0): {Retention: 0},
	}

	points := progress.BuildSeries(progress.ModeRetention, aggs, history, progress.LiveValues{}, cutoff, 3)
	assert.Equal(t, 60, points[2].Value, "a zero history value defers to the aggregate")
}

func TestBuildSeries_EaseScalesFactor(t *testing.T) {
	cutoff := trendCutoff()
	aggs := []models.DayAggregate{{DayOffset: 0, AvgEase: 2480}}

	points := progress.BuildSeries(progress.ModeEase, aggs, nil, progress.LiveValues{}, cutoff, 3)
	assert.Equal(t, 248, points[2].Value)
}

func TestBuildSeries_ReviewsCarriesPerTypeCounts(t *testing.T) {
	cutoff := trendCutoff()
	aggs := []models.DayAggregate{
		{DayOffset: -1, New: 4, Learn: 2, Review: 9},
	}

	points := progress.BuildSeries(progress.ModeReviews, aggs, nil, progress.LiveValues{}, cutoff, 3)
	require.Len(t, points, 3)
	assert.Equal(t, 4, points[1].New)
	assert.Equal(t, 2, points[1].Learn)
	assert.Equal(t, 9, points[1].Review)
	assert.Zero(t, points[2].New, "missing days stay at zero")
}

func TestBuildSeries_StreakModes(t *testing.T) {
	cutoff := trendCutoff()
	aggs := []models.DayAggregate{
		{DayOffset: 0, StreakAttempts: 8, StreakHits: 6},
	}

	points := progress.BuildSeries(progress.ModeStreakQty, aggs, nil, progress.LiveValues{}, cutoff, 3)
	assert.Equal(t, 6, points[2].Value)

	points = progress.BuildSeries(progress.ModeStreakPct, aggs, nil, progress.LiveValues{}, cutoff, 3)
	assert.Equal(t, 75, points[2].Value)

	noAttempts := []models.DayAggregate{{DayOffset: 0}}
	points = progress.BuildSeries(progress.ModeStreakPct, noAttempts, nil, progress.LiveValues{}, cutoff, 3)
	assert.Zero(t, points[2].Value)
}

func TestBuildSeries_DatesAscendOldestFirst(t *testing.T) {
	cutoff := trendCutoff()
	points := progress.BuildSeries(progress.ModeRetention, nil, nil, progress.LiveValues{}, cutoff, 3)

	assert.Equal(t, progress.DisplayDate(cutoff, -2), points[0].Date)
	assert.Equal(t, progress.DisplayDate(cutoff, 0), points[2].Date)
}
