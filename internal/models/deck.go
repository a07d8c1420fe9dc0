package models

import "strings"

// Card queues.
const (
	QueueSuspended = -1
	QueueNew       = 0
	QueueLearn     = 1
	QueueReview    = 2
)

// Card is the scheduling state of one flashcard, mirrored from the host
// scheduler. For review-queue cards Due is a scheduler day number.
type Card struct {
	ID       int64 `json:"id"`
	DeckID   int64 `json:"deck_id"`
	Queue    int   `json:"queue"`
	Due      int   `json:"due"`
	Factor   int   `json:"factor"`
	Reps     int   `json:"reps"`
	Lapses   int   `json:"lapses"`
	Interval int   `json:"interval"`
}

// Deck is a stored deck row. Name is the full hierarchical name with
// segments joined by "::".
type Deck struct {
	ID       int64  `json:"id"`
	ParentID int64  `json:"parent_id,omitempty"`
	Name     string `json:"name"`
}

// DeckNode is one node of the due tree: the deck plus its due-today
// counts and its children, ordered by name. Counts are snapshots of what
// is due today, not cumulative totals.
type DeckNode struct {
	DeckID      int64       `json:"deck_id"`
	Name        string      `json:"name"`
	NewCount    int         `json:"new_count"`
	LearnCount  int         `json:"learn_count"`
	ReviewCount int         `json:"review_count"`
	Children    []*DeckNode `json:"children,omitempty"`
}

// BaseName returns the last segment of the deck's hierarchical name.
func (n *DeckNode) BaseName() string {
	if idx := strings.LastIndex(n.Name, "::"); idx >= 0 {
		return n.Name[idx+2:]
	}
	return n.Name
}
