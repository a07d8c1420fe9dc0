package sqlite

import (
	"context"
	"database/sql"

	"github.com/Masterminds/squirrel"

	"github.com/vytor/deckpulse/internal/logger"
	"github.com/vytor/deckpulse/internal/models"
	"github.com/vytor/deckpulse/internal/repository"
)

type reviewLogRepository struct {
	db *sql.DB
}

// NewReviewLogRepository creates a new ReviewLogRepository implementation
func NewReviewLogRepository(db *sql.DB) repository.ReviewLogRepository {
	return &reviewLogRepository{db: db}
}

func (r *reviewLogRepository) EventsForDecks(ctx context.Context, deckIDs []int64, sinceID int64) ([]models.ReviewEvent, error) {
	log := logger.FromContext(ctx).WithPrefix("revlog_repo")
	if len(deckIDs) == 0 {
		return nil, nil
	}

	query, args, err := sqlBuilder.
		Select("r.id", "r.card_id", "r.ease", "r.time_ms", "r.factor", "r.lapses", "r.ivl", "r.reps", "r.type").
		From("revlog r").
		Join("cards c ON c.id = r.card_id").
		Where(squirrel.Eq{"c.deck_id": deckIDs}).
		Where(squirrel.Gt{"r.id": sinceID}).
		OrderBy("r.id ASC").
		ToSql()
	if err != nil {
		log.Error("failed to build events query: %v", err)
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query events: %v", err)
		return nil, err
	}
	defer rows.Close()

	var events []models.ReviewEvent
	for rows.Next() {
		var e models.ReviewEvent
		if err := rows.Scan(&e.ID, &e.CardID, &e.Outcome, &e.TimeMs, &e.Factor, &e.Lapses, &e.Interval, &e.Reps, &e.Type); err != nil {
			log.Error("failed to scan event: %v", err)
			return nil, err
		}
		events = append(events, e)
	}
	log.Debug("loaded %d events since id=%d", len(events), sinceID)
	return events, rows.Err()
}

func (r *reviewLogRepository) OutcomeHistogram(ctx context.Context, sinceID int64) (map[int]int, error) {
	log := logger.FromContext(ctx).WithPrefix("revlog_repo")

	rows, err := r.db.QueryContext(ctx, `
SELECT ease, COUNT(*) FROM revlog WHERE id > ? GROUP BY ease
`, sinceID)
	if err != nil {
		log.Error("failed to query outcome histogram: %v", err)
		return nil, err
	}
	defer rows.Close()

	counts := make(map[int]int)
	for rows.Next() {
		var ease, count int
		if err := rows.Scan(&ease, &count); err != nil {
			return nil, err
		}
		counts[ease] = count
	}
	return counts, rows.Err()
}

func (r *reviewLogRepository) RecentTimes(ctx context.Context, deckIDs []int64, limit int) ([]int64, error) {
	log := logger.FromContext(ctx).WithPrefix("revlog_repo")
	if len(deckIDs) == 0 || limit <= 0 {
		return nil, nil
	}

	query := `
SELECT r.time_ms
FROM revlog r
JOIN cards c ON c.id = r.card_id
WHERE c.deck_id IN (` + placeholders(len(deckIDs)) + `)
ORDER BY r.id DESC
LIMIT ?
`
	args := append(int64Args(deckIDs), limit)
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query recent times: %v", err)
		return nil, err
	}
	defer rows.Close()

	var times []int64
	for rows.Next() {
		var t int64
		if err := rows.Scan(&t); err != nil {
			return nil, err
		}
		times = append(times, t)
	}
	return times, rows.Err()
}

func (r *reviewLogRepository) PrevTime(ctx context.Context, cardID, beforeID int64) (int64, bool, error) {
	var t int64
	err := r.db.QueryRowContext(ctx, `
SELECT time_ms FROM revlog
WHERE card_id = ? AND id < ?
ORDER BY id DESC
LIMIT 1
`, cardID, beforeID).Scan(&t)
	if err == sql.ErrNoRows {
		return 0, false, nil
	}
	if err != nil {
		logger.FromContext(ctx).WithPrefix("revlog_repo").Error("failed to query previous time: %v", err)
		return 0, false, err
	}
	return t, true, nil
}

func (r *reviewLogRepository) DayCounts(ctx context.Context, deckIDs []int64, cutoff int64) ([]int, error) {
	log := logger.FromContext(ctx).WithPrefix("revlog_repo")
	if len(deckIDs) == 0 {
		return nil, nil
	}

	// Full-log scan, grouped into rollover-aligned days. Offsets are not
	// returned; the star metric only needs the per-day volumes.
	query := `
SELECT COUNT(*)
FROM revlog r
JOIN cards c ON c.id = r.card_id
WHERE c.deck_id IN (` + placeholders(len(deckIDs)) + `)
GROUP BY CAST((r.id / 1000 - ?) / 86400 AS INTEGER)
`
	args := append(int64Args(deckIDs), cutoff)
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query day counts: %v", err)
		return nil, err
	}
	defer rows.Close()

	var counts []int
	for rows.Next() {
		var count int
		if err := rows.Scan(&count); err != nil {
			return nil, err
		}
		counts = append(counts, count)
	}
	return counts, rows.Err()
}

func (r *reviewLogRepository) StudyDayOffsets(ctx context.Context, cutoff int64) ([]int, error) {
	log := logger.FromContext(ctx).WithPrefix("revlog_repo")

	rows, err := r.db.QueryContext(ctx, `
SELECT DISTINCT CAST((id / 1000 - ?) / 86400 AS INTEGER) AS day_offset
FROM revlog
ORDER BY day_offset DESC
`, cutoff)
	if err != nil {
		log.Error("failed to query study days: %v", err)
		return nil, err
	}
	defer rows.Close()

	var offsets []int
	for rows.Next() {
		var offset int
		if err := rows.Scan(&offset); err != nil {
			return nil, err
		}
		offsets = append(offsets, offset)
	}
	return offsets, rows.Err()
}

func (r *reviewLogRepository) LastEventID(ctx context.Context) (int64, error) {
	var id sql.NullInt64
	err := r.db.QueryRowContext(ctx, `SELECT MAX(id) FROM revlog`).Scan(&id)
	if err != nil {
		logger.FromContext(ctx).WithPrefix("revlog_repo").Error("failed to query last event id: %v", err)
		return 0, err
	}
	return id.Int64, nil
}

func (r *reviewLogRepository) DailyAggregates(ctx context.Context, deckIDs []int64, cutoff int64, streakThreshold, days int) ([]models.DayAggregate, error) {
	log := logger.FromContext(ctx).WithPrefix("revlog_repo")
	if len(deckIDs) == 0 {
		return nil, nil
	}

	// rep_count ranks each event within its card's history so long-run
	// cards can be told apart from fresh ones per day.
	query := `
WITH ranked AS (
    SELECT
        r.id,
        r.card_id,
        r.ease,
        r.type,
        ROW_NUMBER() OVER (PARTITION BY r.card_id ORDER BY r.id) AS rep_count
    FROM revlog r
    JOIN cards c ON c.id = r.card_id
    WHERE c.deck_id IN (` + placeholders(len(deckIDs)) + `)
)
SELECT
    CAST((id / 1000 - ?) / 86400 AS INTEGER) AS day_offset,
    SUM(CASE WHEN ease > 1 THEN 1 ELSE 0 END) AS passed,
    COUNT(*) AS total,
    AVG((SELECT factor FROM cards WHERE cards.id = ranked.card_id)) AS avg_ease,
    SUM(CASE WHEN type = 0 THEN 1 ELSE 0 END) AS cnt_new,
    SUM(CASE WHEN type = 2 THEN 1 ELSE 0 END) AS cnt_lrn,
    SUM(CASE WHEN type = 1 THEN 1 ELSE 0 END) AS cnt_rev,
    SUM(CASE WHEN rep_count >= ? AND type = 1 THEN 1 ELSE 0 END) AS streak_attempts,
    SUM(CASE WHEN rep_count >= ? AND type = 1 AND ease > 1 THEN 1 ELSE 0 END) AS streak_hits
FROM ranked
GROUP BY day_offset
ORDER BY day_offset DESC
LIMIT ?
`
	args := append(int64Args(deckIDs), cutoff, streakThreshold, streakThreshold, days)
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query daily aggregates: %v", err)
		return nil, err
	}
	defer rows.Close()

	var aggs []models.DayAggregate
	for rows.Next() {
		var a models.DayAggregate
		var avgEase sql.NullFloat64
		if err := rows.Scan(&a.DayOffset, &a.Passed, &a.Total, &avgEase, &a.New, &a.Learn, &a.Review, &a.StreakAttempts, &a.StreakHits); err != nil {
			log.Error("failed to scan daily aggregate: %v", err)
			return nil, err
		}
		a.AvgEase = avgEase.Float64
		aggs = append(aggs, a)
	}
	log.Debug("loaded %d daily aggregates", len(aggs))
	return aggs, rows.Err()
}

func (r *reviewLogRepository) Insert(ctx context.Context, event models.ReviewEvent) error {
	log := logger.FromContext(ctx).WithPrefix("revlog_repo")

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("failed to begin transaction: %v", err)
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
INSERT INTO revlog (id, card_id, ease, time_ms, factor, lapses, ivl, reps, type)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
`, event.ID, event.CardID, event.Outcome, event.TimeMs, event.Factor, event.Lapses, event.Interval, event.Reps, event.Type)
	if err != nil {
		log.Error("failed to insert review event: %v", err)
		return err
	}

	// Mirror the card's scheduling state from the event so aggregates
	// read a consistent snapshot.
	_, err = tx.ExecContext(ctx, `
UPDATE cards SET factor = ?, lapses = ?, ivl = ?, reps = ?
WHERE id = ?
`, event.Factor, event.Lapses, event.Interval, event.Reps, event.CardID)
	if err != nil {
		log.Error("failed to mirror card state: %v", err)
		return err
	}

	if err := tx.Commit(); err != nil {
		log.Error("failed to commit review event: %v", err)
		return err
	}
	return nil
}
