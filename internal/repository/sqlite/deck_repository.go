package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/vytor/deckpulse/internal/logger"
	"github.com/vytor/deckpulse/internal/models"
	"github.com/vytor/deckpulse/internal/repository"
)

type deckRepository struct {
	db *sql.DB
}

// NewDeckRepository creates a new DeckRepository implementation
func NewDeckRepository(db *sql.DB) repository.DeckRepository {
	return &deckRepository{db: db}
}

func (r *deckRepository) Tree(ctx context.Context, today int) (*models.DeckNode, error) {
	log := logger.FromContext(ctx).WithPrefix("deck_repo")
	log.Debug("building deck tree: today=%d", today)

	rows, err := r.db.QueryContext(ctx, `
SELECT id, parent_id, name
FROM decks
ORDER BY name
`)
	if err != nil {
		log.Error("failed to query decks: %v", err)
		return nil, err
	}
	defer rows.Close()

	type deckRow struct {
		id     int64
		parent sql.NullInt64
	}
	nodes := make(map[int64]*models.DeckNode)
	var order []deckRow
	for rows.Next() {
		var id int64
		var parent sql.NullInt64
		var name string
		if err := rows.Scan(&id, &parent, &name); err != nil {
			log.Error("failed to scan deck row: %v", err)
			return nil, err
		}
		nodes[id] = &models.DeckNode{DeckID: id, Name: name}
		order = append(order, deckRow{id: id, parent: parent})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := r.fillCounts(ctx, nodes, today); err != nil {
		return nil, err
	}

	root := &models.DeckNode{DeckID: 0, Name: ""}
	for _, d := range order {
		node := nodes[d.id]
		if d.parent.Valid {
			if parent, ok := nodes[d.parent.Int64]; ok {
				parent.Children = append(parent.Children, node)
				continue
			}
		}
		root.Children = append(root.Children, node)
	}
	log.Debug("deck tree built: %d decks", len(nodes))
	return root, nil
}

func (r *deckRepository) fillCounts(ctx context.Context, nodes map[int64]*models.DeckNode, today int) error {
	assign := func(query string, args []any, set func(n *models.DeckNode, count int)) error {
		rows, err := r.db.QueryContext(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		for rows.Next() {
			var deckID int64
			var count int
			if err := rows.Scan(&deckID, &count); err != nil {
				return err
			}
			if n, ok := nodes[deckID]; ok {
				set(n, count)
			}
		}
		return rows.Err()
	}

	if err := assign(`SELECT deck_id, COUNT(*) FROM cards WHERE queue = ? GROUP BY deck_id`,
		[]any{models.QueueNew},
		func(n *models.DeckNode, c int) { n.NewCount = c }); err != nil {
		return err
	}
	if err := assign(`SELECT deck_id, COUNT(*) FROM cards WHERE queue = ? GROUP BY deck_id`,
		[]any{models.QueueLearn},
		func(n *models.DeckNode, c int) { n.LearnCount = c }); err != nil {
		return err
	}
	return assign(`SELECT deck_id, COUNT(*) FROM cards WHERE queue = ? AND due <= ? GROUP BY deck_id`,
		[]any{models.QueueReview, today},
		func(n *models.DeckNode, c int) { n.ReviewCount = c })
}

func (r *deckRepository) Get(ctx context.Context, deckID int64) (*models.Deck, error) {
	log := logger.FromContext(ctx).WithPrefix("deck_repo")

	var d models.Deck
	var parent sql.NullInt64
	err := r.db.QueryRowContext(ctx, `
SELECT id, parent_id, name
FROM decks
WHERE id = ?
`, deckID).Scan(&d.ID, &parent, &d.Name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("deck not found: id=%d", deckID)
		} else {
			log.Error("failed to get deck: %v", err)
		}
		return nil, err
	}
	if parent.Valid {
		d.ParentID = parent.Int64
	}
	return &d, nil
}

func (r *deckRepository) SubtreeIDs(ctx context.Context, deckID int64) ([]int64, error) {
	log := logger.FromContext(ctx).WithPrefix("deck_repo")

	rows, err := r.db.QueryContext(ctx, `
WITH RECURSIVE subtree(id) AS (
    SELECT id FROM decks WHERE id = ?
    UNION ALL
    SELECT d.id FROM decks d JOIN subtree s ON d.parent_id = s.id
)
SELECT id FROM subtree
`, deckID)
	if err != nil {
		log.Error("failed to query subtree: %v", err)
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
	log.Debug("subtree of %d has %d decks", deckID, len(ids))
	return ids, rows.Err()
}

func (r *deckRepository) ChildIDs(ctx context.Context, deckID int64) ([]int64, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id FROM decks WHERE parent_id = ? ORDER BY name
`, deckID)
	if err != nil {
		logger.FromContext(ctx).WithPrefix("deck_repo").Error("failed to query children: %v", err)
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
