package sqlite

import (
	"context"
	"database/sql"

	"github.com/vytor/deckpulse/internal/logger"
	"github.com/vytor/deckpulse/internal/models"
	"github.com/vytor/deckpulse/internal/repository"
)

type statsHistoryRepository struct {
	db *sql.DB
}

// NewStatsHistoryRepository creates a new StatsHistoryRepository implementation
func NewStatsHistoryRepository(db *sql.DB) repository.StatsHistoryRepository {
	return &statsHistoryRepository{db: db}
}

func (r *statsHistoryRepository) Get(ctx context.Context, deckID int64, day string) (models.HistoryPoint, bool, error) {
	var p models.HistoryPoint
	err := r.db.QueryRowContext(ctx, `
SELECT ease, retention FROM stats_history WHERE deck_id = ? AND day = ?
`, deckID, day).Scan(&p.Ease, &p.Retention)
	if err == sql.ErrNoRows {
		return models.HistoryPoint{}, false, nil
	}
	if err != nil {
		logger.FromContext(ctx).WithPrefix("history_repo").Error("failed to get history point: %v", err)
		return models.HistoryPoint{}, false, err
	}
	return p, true, nil
}

func (r *statsHistoryRepository) GetDays(ctx context.Context, deckID int64, days []string) (map[string]models.HistoryPoint, error) {
	log := logger.FromContext(ctx).WithPrefix("history_repo")
	if len(days) == 0 {
		return map[string]models.HistoryPoint{}, nil
	}

	args := make([]any, 0, len(days)+1)
	args = append(args, deckID)
	for _, d := range days {
		args = append(args, d)
	}
	query := `
SELECT day, ease, retention FROM stats_history
WHERE deck_id = ? AND day IN (` + placeholders(len(days)) + `)
`
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query history days: %v", err)
		return nil, err
	}
	defer rows.Close()

	points := make(map[string]models.HistoryPoint)
	for rows.Next() {
		var day string
		var p models.HistoryPoint
		if err := rows.Scan(&day, &p.Ease, &p.Retention); err != nil {
			return nil, err
		}
		points[day] = p
	}
	return points, rows.Err()
}

func (r *statsHistoryRepository) Put(ctx context.Context, deckID int64, day string, point models.HistoryPoint) error {
	log := logger.FromContext(ctx).WithPrefix("history_repo")
	_, err := r.db.ExecContext(ctx, `
INSERT INTO stats_history (deck_id, day, ease, retention) VALUES (?, ?, ?, ?)
ON CONFLICT(deck_id, day) DO UPDATE SET
    ease = excluded.ease,
    retention = excluded.retention
`, deckID, day, point.Ease, point.Retention)
	if err != nil {
		log.Error("failed to put history point: %v", err)
	}
	return err
}
