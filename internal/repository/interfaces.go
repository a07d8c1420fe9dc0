package repository

import (
	"context"

	"github.com/vytor/deckpulse/internal/models"
)

// DeckRepository handles deck tree access
type DeckRepository interface {
	// Tree returns a virtual root whose children are the top-level decks,
	// each node carrying its own due-today counts. today is the scheduler
	// day number used to decide which review cards are due.
	Tree(ctx context.Context, today int) (*models.DeckNode, error)
	Get(ctx context.Context, deckID int64) (*models.Deck, error)
	// SubtreeIDs returns the ids of the deck and all of its descendants.
	SubtreeIDs(ctx context.Context, deckID int64) ([]int64, error)
	ChildIDs(ctx context.Context, deckID int64) ([]int64, error)
}

// CardRepository handles card scheduling-state queries
type CardRepository interface {
	CountInDecks(ctx context.Context, deckIDs []int64) (int, error)
	// MatureCardIDs returns the cards with reps >= threshold whose count of
	// non-Fail reviews since their most recent Fail reaches the threshold.
	// Recomputed per call so backdated or imported lapses are honored.
	MatureCardIDs(ctx context.Context, deckIDs []int64, threshold int) ([]int64, error)
	DueOn(ctx context.Context, deckIDs []int64, day int) (int, error)
	// AverageEase averages factor over non-suspended, non-new cards.
	// Returns 0 when the set is empty.
	AverageEase(ctx context.Context, deckIDs []int64) (float64, error)
	LeechCount(ctx context.Context, deckIDs []int64, threshold int) (int, error)
	Upsert(ctx context.Context, card models.Card) error
}

// ReviewLogRepository handles the append-only review log
type ReviewLogRepository interface {
	// EventsForDecks lists events with id > sinceID for cards in the deck
	// set, joined with the cards' current scheduling state, ordered by id
	// ascending.
	EventsForDecks(ctx context.Context, deckIDs []int64, sinceID int64) ([]models.ReviewEvent, error)
	// OutcomeHistogram counts events with id > sinceID per outcome, over
	// the whole log.
	OutcomeHistogram(ctx context.Context, sinceID int64) (map[int]int, error)
	// RecentTimes returns the elapsed times of the most recent events for
	// the deck set, newest first, capped at limit.
	RecentTimes(ctx context.Context, deckIDs []int64, limit int) ([]int64, error)
	// PrevTime returns the elapsed time of the card's most recent event
	// before beforeID; ok is false when the card has no earlier event.
	PrevTime(ctx context.Context, cardID, beforeID int64) (timeMs int64, ok bool, err error)
	// DayCounts returns per-calendar-day review counts for the deck set
	// over all time. Unbounded by design: the historical-stars metric
	// scans the full log.
	DayCounts(ctx context.Context, deckIDs []int64, cutoff int64) ([]int, error)
	// StudyDayOffsets returns the distinct day offsets (0 = today,
	// negative = past) on which any review happened, descending.
	StudyDayOffsets(ctx context.Context, cutoff int64) ([]int, error)
	// LastEventID returns the id of the newest event, or 0 on an empty log.
	LastEventID(ctx context.Context) (int64, error)
	// DailyAggregates returns per-day aggregates for the deck set over the
	// most recent days, ranking each event by its per-card repetition
	// number to attribute streak attempts.
	DailyAggregates(ctx context.Context, deckIDs []int64, cutoff int64, streakThreshold, days int) ([]models.DayAggregate, error)
	Insert(ctx context.Context, event models.ReviewEvent) error
}

// SettingsRepository handles persisted configuration
type SettingsRepository interface {
	Load(ctx context.Context) (models.Settings, error)
	Save(ctx context.Context, s models.Settings) error
	DeckGoal(ctx context.Context, deckID int64) (int, error)
	SetDeckGoal(ctx context.Context, deckID int64, goal int) error
	PinnedIDs(ctx context.Context) ([]int64, error)
	Pin(ctx context.Context, deckID int64) error
	Unpin(ctx context.Context, deckID int64) error
}

// StatsHistoryRepository handles the persisted per-day stats snapshots
type StatsHistoryRepository interface {
	Get(ctx context.Context, deckID int64, day string) (models.HistoryPoint, bool, error)
	GetDays(ctx context.Context, deckID int64, days []string) (map[string]models.HistoryPoint, error)
	Put(ctx context.Context, deckID int64, day string, point models.HistoryPoint) error
}
