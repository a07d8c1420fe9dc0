package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/vytor/deckpulse/internal/models"
)

// MockDeckRepository is a mock implementation of repository.DeckRepository
type MockDeckRepository struct {
	mock.Mock
}

func (m *MockDeckRepository) Tree(ctx context.Context, today int) (*models.DeckNode, error) {
	args := m.Called(ctx, today)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DeckNode), args.Error(1)
}

func (m *MockDeckRepository) Get(ctx context.Context, deckID int64) (*models.Deck, error) {
	args := m.Called(ctx, deckID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Deck), args.Error(1)
}

func (m *MockDeckRepository) SubtreeIDs(ctx context.Context, deckID int64) ([]int64, error) {
	args := m.Called(ctx, deckID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int64), args.Error(1)
}

func (m *MockDeckRepository) ChildIDs(ctx context.Context, deckID int64) ([]int64, error) {
	args := m.Called(ctx, deckID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int64), args.Error(1)
}

// MockCardRepository is a mock implementation of repository.CardRepository
type MockCardRepository struct {
	mock.Mock
}

func (m *MockCardRepository) CountInDecks(ctx context.Context, deckIDs []int64) (int, error) {
	args := m.Called(ctx, deckIDs)
	return args.Int(0), args.Error(1)
}

func (m *MockCardRepository) MatureCardIDs(ctx context.Context, deckIDs []int64, threshold int) ([]int64, error) {
	args := m.Called(ctx, deckIDs, threshold)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int64), args.Error(1)
}

func (m *MockCardRepository) DueOn(ctx context.Context, deckIDs []int64, day int) (int, error) {
	args := m.Called(ctx, deckIDs, day)
	return args.Int(0), args.Error(1)
}

func (m *MockCardRepository) AverageEase(ctx context.Context, deckIDs []int64) (float64, error) {
	args := m.Called(ctx, deckIDs)
	return args.Get(0).(float64), args.Error(1)
}

func (m *MockCardRepository) LeechCount(ctx context.Context, deckIDs []int64, threshold int) (int, error) {
	args := m.Called(ctx, deckIDs, threshold)
	return args.Int(0), args.Error(1)
}

func (m *MockCardRepository) Upsert(ctx context.Context, card models.Card) error {
	args := m.Called(ctx, card)
	return args.Error(0)
}

// MockReviewLogRepository is a mock implementation of repository.ReviewLogRepository
type MockReviewLogRepository struct {
	mock.Mock
}

func (m *MockReviewLogRepository) EventsForDecks(ctx context.Context, deckIDs []int64, sinceID int64) ([]models.ReviewEvent, error) {
	args := m.Called(ctx, deckIDs, sinceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ReviewEvent), args.Error(1)
}

func (m *MockReviewLogRepository) OutcomeHistogram(ctx context.Context, sinceID int64) (map[int]int, error) {
	args := m.Called(ctx, sinceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[int]int), args.Error(1)
}

func (m *MockReviewLogRepository) RecentTimes(ctx context.Context, deckIDs []int64, limit int) ([]int64, error) {
	args := m.Called(ctx, deckIDs, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int64), args.Error(1)
}

func (m *MockReviewLogRepository) PrevTime(ctx context.Context, cardID, beforeID int64) (int64, bool, error) {
	args := m.Called(ctx, cardID, beforeID)
	return args.Get(0).(int64), args.Bool(1), args.Error(2)
}

func (m *MockReviewLogRepository) DayCounts(ctx context.Context, deckIDs []int64, cutoff int64) ([]int, error) {
	args := m.Called(ctx, deckIDs, cutoff)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int), args.Error(1)
}

func (m *MockReviewLogRepository) StudyDayOffsets(ctx context.Context, cutoff int64) ([]int, error) {
	args := m.Called(ctx, cutoff)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int), args.Error(1)
}

func (m *MockReviewLogRepository) LastEventID(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockReviewLogRepository) DailyAggregates(ctx context.Context, deckIDs []int64, cutoff int64, streakThreshold, days int) ([]models.DayAggregate, error) {
	args := m.Called(ctx, deckIDs, cutoff, streakThreshold, days)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.DayAggregate), args.Error(1)
}

func (m *MockReviewLogRepository) Insert(ctx context.Context, event models.ReviewEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

// MockSettingsRepository is a mock implementation of repository.SettingsRepository
type MockSettingsRepository struct {
	mock.Mock
}

func (m *MockSettingsRepository) Load(ctx context.Context) (models.Settings, error) {
	args := m.Called(ctx)
	return args.Get(0).(models.Settings), args.Error(1)
}

func (m *MockSettingsRepository) Save(ctx context.Context, s models.Settings) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockSettingsRepository) DeckGoal(ctx context.Context, deckID int64) (int, error) {
	args := m.Called(ctx, deckID)
	return args.Int(0), args.Error(1)
}

func (m *MockSettingsRepository) SetDeckGoal(ctx context.Context, deckID int64, goal int) error {
	args := m.Called(ctx, deckID, goal)
	return args.Error(0)
}

func (m *MockSettingsRepository) PinnedIDs(ctx context.Context) ([]int64, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int64), args.Error(1)
}

func (m *MockSettingsRepository) Pin(ctx context.Context, deckID int64) error {
	args := m.Called(ctx, deckID)
	return args.Error(0)
}

func (m *MockSettingsRepository) Unpin(ctx context.Context, deckID int64) error {
	args := m.Called(ctx, deckID)
	return args.Error(0)
}

// MockStatsHistoryRepository is a mock implementation of repository.StatsHistoryRepository
type MockStatsHistoryRepository struct {
	mock.Mock
}

func (m *MockStatsHistoryRepository) Get(ctx context.Context, deckID int64, day string) (models.HistoryPoint, bool, error) {
	args := m.Called(ctx, deckID, day)
	return args.Get(0).(models.HistoryPoint), args.Bool(1), args.Error(2)
}

func (m *MockStatsHistoryRepository) GetDays(ctx context.Context, deckID int64, days []string) (map[string]models.HistoryPoint, error) {
	args := m.Called(ctx, deckID, days)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]models.HistoryPoint), args.Error(1)
}

func (m *MockStatsHistoryRepository) Put(ctx context.Context, deckID int64, day string, point models.HistoryPoint) error {
	args := m.Called(ctx, deckID, day, point)
	return args.Error(0)
}
