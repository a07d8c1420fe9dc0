package sqlite

import (
	"context"
	"database/sql"

	"github.com/vytor/deckpulse/internal/logger"
	"github.com/vytor/deckpulse/internal/models"
	"github.com/vytor/deckpulse/internal/repository"
)

type cardRepository struct {
	db *sql.DB
}

// NewCardRepository creates a new CardRepository implementation
func NewCardRepository(db *sql.DB) repository.CardRepository {
	return &cardRepository{db: db}
}

func (r *cardRepository) CountInDecks(ctx context.Context, deckIDs []int64) (int, error) {
	if len(deckIDs) == 0 {
		return 0, nil
	}
	var count int
	query := `SELECT COUNT(*) FROM cards WHERE deck_id IN (` + placeholders(len(deckIDs)) + `)`
	err := r.db.QueryRowContext(ctx, query, int64Args(deckIDs)...).Scan(&count)
	if err != nil {
		logger.FromContext(ctx).WithPrefix("card_repo").Error("failed to count cards: %v", err)
		return 0, err
	}
	return count, nil
}

func (r *cardRepository) MatureCardIDs(ctx context.Context, deckIDs []int64, threshold int) ([]int64, error) {
	log := logger.FromContext(ctx).WithPrefix("card_repo")
	if len(deckIDs) == 0 {
		return nil, nil
	}
	log.Debug("querying mature cards: decks=%d, threshold=%d", len(deckIDs), threshold)

	// Count correct answers since the most recent lapse, per card, fresh on
	// every call. The id set must match what a browser search for the same
	// predicate would return.
	query := `
SELECT c.id FROM cards c
WHERE c.deck_id IN (` + placeholders(len(deckIDs)) + `)
AND c.reps >= ?
AND (
    SELECT COUNT(*)
    FROM revlog r
    WHERE r.card_id = c.id
    AND r.id > COALESCE((
        SELECT MAX(r2.id)
        FROM revlog r2
        WHERE r2.card_id = c.id AND r2.ease = 1
    ), 0)
    AND r.ease > 1
) >= ?
ORDER BY c.id
`
	args := append(int64Args(deckIDs), threshold, threshold)
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query mature cards: %v", err)
		return nil, err
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			log.Error("failed to scan mature card id: %v", err)
			return nil, err
		}
		ids = append(ids, id)
	}
	log.Debug("found %d mature cards", len(ids))
	return ids, rows.Err()
}

func (r *cardRepository) DueOn(ctx context.Context, deckIDs []int64, day int) (int, error) {
	if len(deckIDs) == 0 {
		return 0, nil
	}
	var count int
	query := `SELECT COUNT(*) FROM cards WHERE deck_id IN (` + placeholders(len(deckIDs)) + `) AND queue = ? AND due = ?`
	args := append(int64Args(deckIDs), models.QueueReview, day)
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&count)
	if err != nil {
		logger.FromContext(ctx).WithPrefix("card_repo").Error("failed to count due cards: %v", err)
		return 0, err
	}
	return count, nil
}

func (r *cardRepository) AverageEase(ctx context.Context, deckIDs []int64) (float64, error) {
	if len(deckIDs) == 0 {
		return 0, nil
	}
	var avg sql.NullFloat64
	query := `SELECT AVG(factor) FROM cards WHERE deck_id IN (` + placeholders(len(deckIDs)) + `) AND queue > 0`
	err := r.db.QueryRowContext(ctx, query, int64Args(deckIDs)...).Scan(&avg)
	if err != nil {
		logger.FromContext(ctx).WithPrefix("card_repo").Error("failed to average ease: %v", err)
		return 0, err
	}
	return avg.Float64, nil
}

func (r *cardRepository) LeechCount(ctx context.Context, deckIDs []int64, threshold int) (int, error) {
	if len(deckIDs) == 0 {
		return 0, nil
	}
	var count int
	query := `SELECT COUNT(*) FROM cards WHERE deck_id IN (` + placeholders(len(deckIDs)) + `) AND lapses >= ?`
	args := append(int64Args(deckIDs), threshold)
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&count)
	if err != nil {
		logger.FromContext(ctx).WithPrefix("card_repo").Error("failed to count leeches: %v", err)
		return 0, err
	}
	return count, nil
}

func (r *cardRepository) Upsert(ctx context.Context, card models.Card) error {
	log := logger.FromContext(ctx).WithPrefix("card_repo")
	_, err := r.db.ExecContext(ctx, `
INSERT INTO cards (id, deck_id, queue, due, factor, reps, lapses, ivl)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
    deck_id = excluded.deck_id,
    queue = excluded.queue,
    due = excluded.due,
    factor = excluded.factor,
    reps = excluded.reps,
    lapses = excluded.lapses,
    ivl = excluded.ivl
`, card.ID, card.DeckID, card.Queue, card.Due, card.Factor, card.Reps, card.Lapses, card.Interval)
	if err != nil {
		log.Error("failed to upsert card: %v", err)
	}
	return err
}
