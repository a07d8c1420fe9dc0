package sqlite

import (
	"context"
	"database/sql"
	"strconv"

	"github.com/vytor/deckpulse/internal/logger"
	"github.com/vytor/deckpulse/internal/models"
	"github.com/vytor/deckpulse/internal/repository"
)

const (
	keyStreakThreshold = "streak_threshold"
	keyLeechThreshold  = "leech_threshold"
	keyChartDays       = "chart_days"
	keyShowCharts      = "show_charts"
	keyDefaultGoal     = "default_goal"
)

type settingsRepository struct {
	db       *sql.DB
	defaults models.Settings
}

// NewSettingsRepository creates a new SettingsRepository implementation.
// defaults fill in any key missing from the settings table.
func NewSettingsRepository(db *sql.DB, defaults models.Settings) repository.SettingsRepository {
	return &settingsRepository{db: db, defaults: defaults.Normalize()}
}

func (r *settingsRepository) Load(ctx context.Context) (models.Settings, error) {
	log := logger.FromContext(ctx).WithPrefix("settings_repo")

	rows, err := r.db.QueryContext(ctx, `SELECT key, value FROM settings`)
	if err != nil {
		log.Error("failed to load settings: %v", err)
		return r.defaults, err
	}
	defer rows.Close()

	s := r.defaults
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			log.Error("failed to scan setting: %v", err)
			return r.defaults, err
		}
		switch key {
		case keyStreakThreshold:
			if n, err := strconv.Atoi(value); err == nil {
				s.StreakThreshold = n
			}
		case keyLeechThreshold:
			if n, err := strconv.Atoi(value); err == nil {
				s.LeechThreshold = n
			}
		case keyChartDays:
			if n, err := strconv.Atoi(value); err == nil {
				s.ChartDays = n
			}
		case keyShowCharts:
			s.ShowCharts = value == "1" || value == "true"
		case keyDefaultGoal:
			if n, err := strconv.Atoi(value); err == nil {
				s.DefaultGoal = n
			}
		}
	}
	if err := rows.Err(); err != nil {
		return r.defaults, err
	}
	return s.Normalize(), nil
}

func (r *settingsRepository) Save(ctx context.Context, s models.Settings) error {
	log := logger.FromContext(ctx).WithPrefix("settings_repo")
	s = s.Normalize()

	showCharts := "0"
	if s.ShowCharts {
		showCharts = "1"
	}
	pairs := map[string]string{
		keyStreakThreshold: strconv.Itoa(s.StreakThreshold),
		keyLeechThreshold:  strconv.Itoa(s.LeechThreshold),
		keyChartDays:       strconv.Itoa(s.ChartDays),
		keyShowCharts:      showCharts,
		keyDefaultGoal:     strconv.Itoa(s.DefaultGoal),
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("failed to begin transaction: %v", err)
		return err
	}
	defer tx.Rollback()

	for key, value := range pairs {
		if _, err := tx.ExecContext(ctx, `
INSERT INTO settings (key, value) VALUES (?, ?)
ON CONFLICT(key) DO UPDATE SET value = excluded.value
`, key, value); err != nil {
			log.Error("failed to save setting %s: %v", key, err)
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		log.Error("failed to commit settings: %v", err)
		return err
	}
	log.Info("settings saved")
	return nil
}

func (r *settingsRepository) DeckGoal(ctx context.Context, deckID int64) (int, error) {
	var goal int
	err := r.db.QueryRowContext(ctx, `SELECT goal FROM deck_goals WHERE deck_id = ?`, deckID).Scan(&goal)
	if err == sql.ErrNoRows {
		return r.defaults.DefaultGoal, nil
	}
	if err != nil {
		logger.FromContext(ctx).WithPrefix("settings_repo").Error("failed to load deck goal: %v", err)
		return 0, err
	}
	return goal, nil
}

func (r *settingsRepository) SetDeckGoal(ctx context.Context, deckID int64, goal int) error {
	log := logger.FromContext(ctx).WithPrefix("settings_repo")
	_, err := r.db.ExecContext(ctx, `
INSERT INTO deck_goals (deck_id, goal) VALUES (?, ?)
ON CONFLICT(deck_id) DO UPDATE SET goal = excluded.goal
`, deckID, goal)
	if err != nil {
		log.Error("failed to set deck goal: %v", err)
		return err
	}
	log.Debug("deck goal set: deck=%d, goal=%d", deckID, goal)
	return nil
}

func (r *settingsRepository) PinnedIDs(ctx context.Context) ([]int64, error) {
	log := logger.FromContext(ctx).WithPrefix("settings_repo")

	rows, err := r.db.QueryContext(ctx, `
SELECT deck_id FROM pinned_decks ORDER BY position, deck_id
`)
	if err != nil {
		log.Error("failed to load pinned decks: %v", err)
		return nil, err
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *settingsRepository) Pin(ctx context.Context, deckID int64) error {
	log := logger.FromContext(ctx).WithPrefix("settings_repo")
	_, err := r.db.ExecContext(ctx, `
INSERT INTO pinned_decks (deck_id, position)
VALUES (?, COALESCE((SELECT MAX(position) FROM pinned_decks), 0) + 1)
ON CONFLICT(deck_id) DO NOTHING
`, deckID)
	if err != nil {
		log.Error("failed to pin deck: %v", err)
		return err
	}
	log.Debug("deck pinned: %d", deckID)
	return nil
}

func (r *settingsRepository) Unpin(ctx context.Context, deckID int64) error {
	log := logger.FromContext(ctx).WithPrefix("settings_repo")
	_, err := r.db.ExecContext(ctx, `DELETE FROM pinned_decks WHERE deck_id = ?`, deckID)
	if err != nil {
		log.Error("failed to unpin deck: %v", err)
		return err
	}
	log.Debug("deck unpinned: %d", deckID)
	return nil
}
