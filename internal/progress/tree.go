package progress

import (
	"fmt"

	"github.com/vytor/deckpulse/internal/models"
)

// Seconds budgeted per pending card when estimating study time.
const (
	secondsPerNew    = 15
	secondsPerLearn  = 10
	secondsPerReview = 8
)

// FindNode walks the tree for the deck with the given id. A visited set
// guards against malformed trees with repeated ids.
func FindNode(root *models.DeckNode, deckID int64) *models.DeckNode {
	return findNode(root, deckID, make(map[int64]bool))
}

func findNode(node *models.DeckNode, deckID int64, seen map[int64]bool) *models.DeckNode {
	if node == nil || seen[node.DeckID] {
		return nil
	}
	seen[node.DeckID] = true
	if node.DeckID == deckID {
		return node
	}
	for _, child := range node.Children {
		if n := findNode(child, deckID, seen); n != nil {
			return n
		}
	}
	return nil
}

// VisualCounts returns the pending counts a row should display. A leaf
// shows its own counts; a parent shows, per type, whichever is larger
// between its own counts and the sum of its children's visual counts, so
// a capped parent never under-reports its subtree.
func VisualCounts(node *models.DeckNode) (newCount, learnCount, reviewCount int) {
	if len(node.Children) == 0 {
		return node.NewCount, node.LearnCount, node.ReviewCount
	}
	var sumNew, sumLearn, sumReview int
	for _, child := range node.Children {
		n, l, r := VisualCounts(child)
		sumNew += n
		sumLearn += l
		sumReview += r
	}
	return maxInt(sumNew, node.NewCount), maxInt(sumLearn, node.LearnCount), maxInt(sumReview, node.ReviewCount)
}

// EstimatedSeconds projects how long the node's pending work will take.
// Like VisualCounts, a parent reports the larger of its own budget and
// its children's combined budget.
func EstimatedSeconds(node *models.DeckNode) int {
	own := node.NewCount*secondsPerNew + node.LearnCount*secondsPerLearn + node.ReviewCount*secondsPerReview
	children := 0
	for _, child := range node.Children {
		children += EstimatedSeconds(child)
	}
	return maxInt(own, children)
}

// FormatDuration renders a second count for a table cell. Sub-hour values
// drop their remainder.
func FormatDuration(totalSeconds int) string {
	switch {
	case totalSeconds <= 0:
		return "-"
	case totalSeconds < 60:
		return fmt.Sprintf("%ds", totalSeconds)
	case totalSeconds < 3600:
		return fmt.Sprintf("%dm", totalSeconds/60)
	default:
		hours := totalSeconds / 3600
		minutes := (totalSeconds % 3600) / 60
		if minutes > 0 {
			return fmt.Sprintf("%dh %dm", hours, minutes)
		}
		return fmt.Sprintf("%dh", hours)
	}
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
