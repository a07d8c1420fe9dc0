package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "github.com/vytor/deckpulse/internal/errors"
	"github.com/vytor/deckpulse/internal/models"
	"github.com/vytor/deckpulse/internal/progress"
	"github.com/vytor/deckpulse/internal/services"
	"github.com/vytor/deckpulse/internal/testutil/mocks"
)

type fixtures struct {
	decks    *mocks.MockDeckRepository
	cards    *mocks.MockCardRepository
	revlog   *mocks.MockReviewLogRepository
	settings *mocks.MockSettingsRepository
	history  *mocks.MockStatsHistoryRepository
	svc      services.AggregationService
}

func newFixtures() *fixtures {
	f := &fixtures{
		decks:    new(mocks.MockDeckRepository),
		cards:    new(mocks.MockCardRepository),
		revlog:   new(mocks.MockReviewLogRepository),
		settings: new(mocks.MockSettingsRepository),
		history:  new(mocks.MockStatsHistoryRepository),
	}
	f.svc = services.NewAggregationService(f.decks, f.cards, f.revlog, f.settings, f.history, 4)
	return f
}

func defaultSettings() models.Settings {
	return models.Settings{
		StreakThreshold: 3,
		LeechThreshold:  10,
		ChartDays:       7,
		ShowCharts:      false,
		DefaultGoal:     100,
	}
}

func TestDeckRPG_ParentAggregatesChildren(t *testing.T) {
	f := newFixtures()
	ctx := context.Background()

	f.settings.On("Load", mock.Anything).Return(defaultSettings(), nil)

	// Parent 1 has no events of its own; children 2 and 3 did all the work.
	f.revlog.On("EventsForDecks", mock.Anything, []int64{1}, mock.Anything).Return([]models.ReviewEvent{}, nil)
	f.revlog.On("EventsForDecks", mock.Anything, []int64{2}, mock.Anything).Return([]models.ReviewEvent{
		{ID: 1, CardID: 21, Outcome: models.OutcomeGood, Factor: 2000, Reps: 3, Interval: 5},
	}, nil)
	f.revlog.On("EventsForDecks", mock.Anything, []int64{3}, mock.Anything).Return([]models.ReviewEvent{
		{ID: 2, CardID: 31, Outcome: models.OutcomeFail, Factor: 2500},
	}, nil)
	f.revlog.On("PrevTime", mock.Anything, mock.Anything, mock.Anything).Return(int64(0), false, nil)

	f.decks.On("ChildIDs", mock.Anything, int64(1)).Return([]int64{2, 3}, nil)
	f.decks.On("ChildIDs", mock.Anything, int64(2)).Return([]int64{}, nil)
	f.decks.On("ChildIDs", mock.Anything, int64(3)).Return([]int64{}, nil)

	state, err := f.svc.DeckRPG(ctx, 1)
	require.NoError(t, err)

	// Child 2: +12 XP, 100 HP. Child 3: -2 XP, 84 HP.
	assert.Equal(t, 10, state.XP)
	assert.Equal(t, 84, state.HP, "an idle parent reflects its weakest child")
	assert.Equal(t, 84, state.HPPct)
}

func TestDeckRPG_OwnEventsKeepOwnHP(t *testing.T) {
	f := newFixtures()
	ctx := context.Background()

	f.settings.On("Load", mock.Anything).Return(defaultSettings(), nil)
	f.revlog.On("EventsForDecks", mock.Anything, []int64{1}, mock.Anything).Return([]models.ReviewEvent{
		{ID: 1, CardID: 11, Outcome: models.OutcomeGood, Factor: 2500},
	}, nil)
	f.revlog.On("EventsForDecks", mock.Anything, []int64{2}, mock.Anything).Return([]models.ReviewEvent{
		{ID: 2, CardID: 21, Outcome: models.OutcomeFail, Factor: 2500},
	}, nil)
	f.revlog.On("PrevTime", mock.Anything, mock.Anything, mock.Anything).Return(int64(0), false, nil)
	f.decks.On("ChildIDs", mock.Anything, int64(1)).Return([]int64{2}, nil)
	f.decks.On("ChildIDs", mock.Anything, int64(2)).Return([]int64{}, nil)

	state, err := f.svc.DeckRPG(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 100, state.HP, "a parent with its own activity keeps its own HP")
	assert.Equal(t, -1, state.XP, "children's XP still accumulates")
}

func TestDeckRPG_DegradesToSafeDefault(t *testing.T) {
	f := newFixtures()
	ctx := context.Background()

	f.settings.On("Load", mock.Anything).Return(defaultSettings(), nil)
	f.revlog.On("EventsForDecks", mock.Anything, mock.Anything, mock.Anything).Return(nil, errors.New("disk gone"))

	state, err := f.svc.DeckRPG(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, models.RpgState{HP: 100, XP: 0, HPPct: 100}, state)
}

func TestDeckStats_DegradesToPlaceholder(t *testing.T) {
	f := newFixtures()
	ctx := context.Background()

	f.settings.On("Load", mock.Anything).Return(defaultSettings(), nil)
	f.settings.On("DeckGoal", mock.Anything, int64(7)).Return(100, nil)
	f.decks.On("SubtreeIDs", mock.Anything, int64(7)).Return(nil, errors.New("disk gone"))

	snap, err := f.svc.DeckStats(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, "-", snap.Maturity)
	assert.Equal(t, "-", snap.Retention)
	assert.Equal(t, "-", snap.Ease)
	assert.Equal(t, map[int]int{1: 0, 2: 0, 3: 0, 4: 0}, snap.OutcomeCounts)
	assert.Zero(t, snap.TotalCards)
}

func TestDeckStats_HappyPath(t *testing.T) {
	f := newFixtures()
	ctx := context.Background()

	f.settings.On("Load", mock.Anything).Return(defaultSettings(), nil)
	f.settings.On("DeckGoal", mock.Anything, int64(1)).Return(10, nil)
	f.decks.On("SubtreeIDs", mock.Anything, int64(1)).Return([]int64{1, 2}, nil)
	f.cards.On("CountInDecks", mock.Anything, []int64{1, 2}).Return(40, nil)
	f.cards.On("MatureCardIDs", mock.Anything, []int64{1, 2}, 3).Return([]int64{5, 6, 7, 8}, nil)
	f.revlog.On("EventsForDecks", mock.Anything, []int64{1, 2}, mock.Anything).Return([]models.ReviewEvent{
		{ID: 1, CardID: 5, Outcome: models.OutcomeGood, TimeMs: 4000, Reps: 4, Type: models.ReviewTypeReview},
		{ID: 2, CardID: 6, Outcome: models.OutcomeFail, TimeMs: 8000, Reps: 5, Type: models.ReviewTypeReview},
		{ID: 3, CardID: 7, Outcome: models.OutcomeEasy, TimeMs: 3000, Reps: 1, Type: models.ReviewTypeNew},
	}, nil)
	f.cards.On("DueOn", mock.Anything, []int64{1, 2}, mock.Anything).Return(12, nil)
	f.cards.On("AverageEase", mock.Anything, []int64{1, 2}).Return(2480.0, nil)
	f.cards.On("LeechCount", mock.Anything, []int64{1, 2}, 10).Return(2, nil)
	f.revlog.On("DayCounts", mock.Anything, []int64{1, 2}, mock.Anything).Return([]int{25, 7, 12}, nil)
	f.history.On("Get", mock.Anything, int64(1), mock.Anything).Return(models.HistoryPoint{}, false, nil)
	f.history.On("Put", mock.Anything, int64(1), mock.Anything, models.HistoryPoint{Ease: 248, Retention: 67}).Return(nil)

	snap, err := f.svc.DeckStats(ctx, 1)
	require.NoError(t, err)

	assert.Equal(t, "4", snap.Maturity)
	assert.Equal(t, 4, snap.MatureCount)
	assert.Equal(t, "10%", snap.MaturityPct)
	assert.Equal(t, "Novato", snap.MaturityRank)
	assert.Equal(t, 40, snap.TotalCards)
	assert.Equal(t, 3, snap.DoneToday)
	assert.Equal(t, 2, snap.PassedToday)
	assert.Equal(t, "67%", snap.Retention)
	assert.Equal(t, int64(15000), snap.TotalTimeMs)
	assert.Equal(t, "5.0s", snap.AvgTime)
	assert.Equal(t, "12.0", snap.Speed)
	assert.Equal(t, 12, snap.Tomorrow)
	assert.Equal(t, "248%", snap.Ease)
	assert.Equal(t, 2, snap.Leeches)
	assert.Equal(t, 2+0+1, snap.TotalStars, "per-day counts divided by the goal")
	assert.Equal(t, map[int]int{1: 1, 2: 0, 3: 1, 4: 1}, snap.OutcomeCounts)
	assert.Equal(t, 1, snap.StreakQty, "card 5 passed at streak rank")
	assert.Equal(t, 50, snap.StreakPct)
	assert.Empty(t, snap.RetentionSeries, "charts disabled")

	// Second call hits the cache, no extra repository traffic.
	again, err := f.svc.DeckStats(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, snap, again)
	f.cards.AssertNumberOfCalls(t, "CountInDecks", 1)

	// Invalidation forces a recompute.
	f.svc.Invalidate()
	_, err = f.svc.DeckStats(ctx, 1)
	require.NoError(t, err)
	f.cards.AssertNumberOfCalls(t, "CountInDecks", 2)
}

func TestDeckStats_NoReviewsFallsBackToRecentTimes(t *testing.T) {
	f := newFixtures()
	ctx := context.Background()

	f.settings.On("Load", mock.Anything).Return(defaultSettings(), nil)
	f.settings.On("DeckGoal", mock.Anything, int64(1)).Return(100, nil)
	f.decks.On("SubtreeIDs", mock.Anything, int64(1)).Return([]int64{1}, nil)
	f.cards.On("CountInDecks", mock.Anything, []int64{1}).Return(10, nil)
	f.cards.On("MatureCardIDs", mock.Anything, []int64{1}, 3).Return([]int64{}, nil)
	f.revlog.On("EventsForDecks", mock.Anything, []int64{1}, mock.Anything).Return([]models.ReviewEvent{}, nil)
	f.revlog.On("RecentTimes", mock.Anything, []int64{1}, 100).Return([]int64{6000, 4000}, nil)
	f.cards.On("DueOn", mock.Anything, []int64{1}, mock.Anything).Return(0, nil)
	f.cards.On("AverageEase", mock.Anything, []int64{1}).Return(0.0, nil)
	f.cards.On("LeechCount", mock.Anything, []int64{1}, 10).Return(0, nil)
	f.revlog.On("DayCounts", mock.Anything, []int64{1}, mock.Anything).Return([]int{}, nil)
	f.history.On("Get", mock.Anything, int64(1), mock.Anything).Return(models.HistoryPoint{}, false, nil)
	f.history.On("Put", mock.Anything, int64(1), mock.Anything, mock.Anything).Return(nil)

	snap, err := f.svc.DeckStats(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "-", snap.Retention, "no reviews today")
	assert.Equal(t, "5.0s", snap.AvgTime, "estimated from the last answers on record")
	assert.Equal(t, "12.0", snap.Speed)
}

func TestDeckTrends_WindowOverride(t *testing.T) {
	f := newFixtures()
	ctx := context.Background()

	f.settings.On("Load", mock.Anything).Return(defaultSettings(), nil)
	f.decks.On("SubtreeIDs", mock.Anything, int64(1)).Return([]int64{1}, nil)
	f.revlog.On("DailyAggregates", mock.Anything, []int64{1}, mock.Anything, 3, 5).Return([]models.DayAggregate{
		{DayOffset: 0, New: 2, Learn: 1, Review: 4, Total: 7},
	}, nil)
	f.history.On("GetDays", mock.Anything, int64(1), mock.Anything).Return(map[string]models.HistoryPoint{}, nil)
	f.revlog.On("EventsForDecks", mock.Anything, []int64{1}, mock.Anything).Return([]models.ReviewEvent{}, nil)
	f.cards.On("AverageEase", mock.Anything, []int64{1}).Return(0.0, nil)

	points, err := f.svc.DeckTrends(ctx, 1, progress.ModeReviews, 5)
	require.NoError(t, err)
	require.Len(t, points, 5, "the requested window wins over the configured one")
	today := points[len(points)-1]
	assert.Equal(t, 2, today.New)
	assert.Equal(t, 1, today.Learn)
	assert.Equal(t, 4, today.Review)
}

func TestRecordReview(t *testing.T) {
	f := newFixtures()
	ctx := context.Background()

	err := f.svc.RecordReview(ctx, models.ReviewEvent{CardID: 5, Outcome: 3})
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrCodeValidation, appErr.Code, "missing event id")

	err = f.svc.RecordReview(ctx, models.ReviewEvent{ID: 1, CardID: 5, Outcome: 9})
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrCodeValidation, appErr.Code, "outcome out of range")

	event := models.ReviewEvent{ID: 1, CardID: 5, Outcome: models.OutcomeGood, Factor: 2400}
	f.revlog.On("Insert", mock.Anything, event).Return(nil)
	require.NoError(t, f.svc.RecordReview(ctx, event))
	f.revlog.AssertCalled(t, "Insert", mock.Anything, event)
}

func TestGlobalSummary_NothingPinned(t *testing.T) {
	f := newFixtures()
	ctx := context.Background()

	cfg := defaultSettings()
	f.settings.On("Load", mock.Anything).Return(cfg, nil)
	f.settings.On("PinnedIDs", mock.Anything).Return([]int64{}, nil)
	f.decks.On("Tree", mock.Anything, mock.Anything).Return(&models.DeckNode{DeckID: 0}, nil)
	f.revlog.On("StudyDayOffsets", mock.Anything, mock.Anything).Return([]int{}, nil)
	f.revlog.On("LastEventID", mock.Anything).Return(int64(0), nil)
	f.revlog.On("OutcomeHistogram", mock.Anything, mock.Anything).Return(map[int]int{}, nil)

	sum, err := f.svc.GlobalSummary(ctx)
	require.NoError(t, err)

	assert.Zero(t, sum.XP)
	assert.Equal(t, "Aldeão", sum.Level.Title)
	assert.Equal(t, "0%", sum.StreakPct)
	assert.Equal(t, "-", sum.Retention)
	assert.Equal(t, "-", sum.Ease)
	assert.Equal(t, "-", sum.EstimatedTime)
	assert.Equal(t, "--:--:--", sum.LastReviewAt)
	assert.Zero(t, sum.StreakDays)
}

func TestGlobalSummary_StreakAnchorsOnYesterday(t *testing.T) {
	f := newFixtures()
	ctx := context.Background()

	cfg := defaultSettings()
	f.settings.On("Load", mock.Anything).Return(cfg, nil)
	f.settings.On("PinnedIDs", mock.Anything).Return([]int64{}, nil)
	f.decks.On("Tree", mock.Anything, mock.Anything).Return(&models.DeckNode{DeckID: 0}, nil)
	f.revlog.On("StudyDayOffsets", mock.Anything, mock.Anything).Return([]int{-1, -2, -3, -5}, nil)
	f.revlog.On("LastEventID", mock.Anything).Return(int64(0), nil)
	f.revlog.On("OutcomeHistogram", mock.Anything, mock.Anything).Return(map[int]int{}, nil)

	sum, err := f.svc.GlobalSummary(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, sum.StreakDays, "no review yet today keeps yesterday's run alive")
}

func TestToggleSelected(t *testing.T) {
	f := newFixtures()

	assert.True(t, f.svc.ToggleSelected(3))
	assert.True(t, f.svc.ToggleSelected(1))
	assert.Equal(t, []int64{1, 3}, f.svc.SelectedIDs())

	assert.False(t, f.svc.ToggleSelected(3), "toggling again deselects")
	assert.Equal(t, []int64{1}, f.svc.SelectedIDs())
}

func TestUpdateSettingsInvalidatesCaches(t *testing.T) {
	f := newFixtures()
	ctx := context.Background()

	cfg := defaultSettings()
	f.settings.On("Load", mock.Anything).Return(cfg, nil)
	f.settings.On("Save", mock.Anything, cfg).Return(nil)
	f.revlog.On("EventsForDecks", mock.Anything, []int64{1}, mock.Anything).Return([]models.ReviewEvent{}, nil)
	f.decks.On("ChildIDs", mock.Anything, int64(1)).Return([]int64{}, nil)

	_, err := f.svc.DeckRPG(ctx, 1)
	require.NoError(t, err)
	_, err = f.svc.DeckRPG(ctx, 1)
	require.NoError(t, err)
	f.revlog.AssertNumberOfCalls(t, "EventsForDecks", 1)

	require.NoError(t, f.svc.UpdateSettings(ctx, cfg))

	_, err = f.svc.DeckRPG(ctx, 1)
	require.NoError(t, err)
	f.revlog.AssertNumberOfCalls(t, "EventsForDecks", 2)
}
