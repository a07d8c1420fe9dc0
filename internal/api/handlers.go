package api

import (
	"net/http"
	"strconv"

	"github.com/vytor/deckpulse/internal/errors"
	"github.com/vytor/deckpulse/internal/logger"
	"github.com/vytor/deckpulse/internal/models"
	"github.com/vytor/deckpulse/internal/progress"
	"github.com/vytor/deckpulse/internal/services"
)

type Server struct {
	Aggregations services.AggregationService
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}

// deckTreeNode mirrors a DeckNode plus the rolled-up display figures the
// deck list renders: visual counts (max of own and children's sums) and
// the estimated study time for the subtree.
type deckTreeNode struct {
	DeckID        int64           `json:"deck_id"`
	Name          string          `json:"name"`
	NewCount      int             `json:"new_count"`
	LearnCount    int             `json:"learn_count"`
	ReviewCount   int             `json:"review_count"`
	VisualNew     int             `json:"visual_new"`
	VisualLearn   int             `json:"visual_learn"`
	VisualReview  int             `json:"visual_review"`
	EstimatedTime string          `json:"estimated_time"`
	Children      []*deckTreeNode `json:"children,omitempty"`
}

func buildDeckTreeResponse(n *models.DeckNode) *deckTreeNode {
	vn, vl, vr := progress.VisualCounts(n)
	out := &deckTreeNode{
		DeckID:        n.DeckID,
		Name:          n.Name,
		NewCount:      n.NewCount,
		LearnCount:    n.LearnCount,
		ReviewCount:   n.ReviewCount,
		VisualNew:     vn,
		VisualLearn:   vl,
		VisualReview:  vr,
		EstimatedTime: progress.FormatDuration(progress.EstimatedSeconds(n)),
	}
	for _, child := range n.Children {
		out.Children = append(out.Children, buildDeckTreeResponse(child))
	}
	return out
}

func (s *Server) handleDecks(w http.ResponseWriter, r *http.Request) {
	tree, err := s.Aggregations.DeckTree(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, buildDeckTreeResponse(tree))
}

func (s *Server) handleDeckStats(w http.ResponseWriter, r *http.Request) {
	deckID, err := deckIDParam(r)
	if err != nil {
		handleError(w, r, err)
		return
	}
	snap, err := s.Aggregations.DeckStats(r.Context(), deckID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, snap)
}

func (s *Server) handleDeckRPG(w http.ResponseWriter, r *http.Request) {
	deckID, err := deckIDParam(r)
	if err != nil {
		handleError(w, r, err)
		return
	}
	state, err := s.Aggregations.DeckRPG(r.Context(), deckID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, state)
}

var trendModes = map[string]progress.TrendMode{
	"retention":  progress.ModeRetention,
	"ease":       progress.ModeEase,
	"reviews":    progress.ModeReviews,
	"streak_qty": progress.ModeStreakQty,
	"streak_pct": progress.ModeStreakPct,
}

func (s *Server) handleDeckTrends(w http.ResponseWriter, r *http.Request) {
	deckID, err := deckIDParam(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	modeParam := r.URL.Query().Get("mode")
	if modeParam == "" {
		modeParam = "retention"
	}
	mode, ok := trendModes[modeParam]
	if !ok {
		handleError(w, r, errors.NewBadRequestError("unknown trend mode: "+modeParam))
		return
	}

	days := 0
	if daysParam := r.URL.Query().Get("days"); daysParam != "" {
		days, err = strconv.Atoi(daysParam)
		if err != nil || days < 1 {
			handleError(w, r, errors.NewBadRequestError("days must be a positive integer"))
			return
		}
	}

	points, err := s.Aggregations.DeckTrends(r.Context(), deckID, mode, days)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, map[string]any{
		"deck_id": deckID,
		"mode":    modeParam,
		"points":  points,
	})
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	sum, err := s.Aggregations.GlobalSummary(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, sum)
}

func (s *Server) handleRecordReview(w http.ResponseWriter, r *http.Request) {
	var event models.ReviewEvent
	if err := decodeBody(r, &event); err != nil {
		handleError(w, r, err)
		return
	}
	if err := s.Aggregations.RecordReview(r.Context(), event); err != nil {
		handleError(w, r, err)
		return
	}
	logger.FromContext(r.Context()).Debug("review accepted: card=%d", event.CardID)
	respondJSON(w, r, http.StatusCreated, map[string]string{"status": "recorded"})
}

func (s *Server) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	cfg, err := s.Aggregations.Settings(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, cfg)
}

func (s *Server) handleUpdateSettings(w http.ResponseWriter, r *http.Request) {
	var cfg models.Settings
	if err := decodeBody(r, &cfg); err != nil {
		handleError(w, r, err)
		return
	}
	if err := s.Aggregations.UpdateSettings(r.Context(), cfg); err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, cfg.Normalize())
}

func (s *Server) handleSetGoal(w http.ResponseWriter, r *http.Request) {
	deckID, err := deckIDParam(r)
	if err != nil {
		handleError(w, r, err)
		return
	}
	var body struct {
		Goal int `json:"goal"`
	}
	if err := decodeBody(r, &body); err != nil {
		handleError(w, r, err)
		return
	}
	if err := s.Aggregations.SetDeckGoal(r.Context(), deckID, body.Goal); err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, map[string]any{"deck_id": deckID, "goal": body.Goal})
}

func (s *Server) handlePin(w http.ResponseWriter, r *http.Request) {
	deckID, err := deckIDParam(r)
	if err != nil {
		handleError(w, r, err)
		return
	}
	if err := s.Aggregations.Pin(r.Context(), deckID); err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, map[string]any{"deck_id": deckID, "pinned": true})
}

func (s *Server) handleUnpin(w http.ResponseWriter, r *http.Request) {
	deckID, err := deckIDParam(r)
	if err != nil {
		handleError(w, r, err)
		return
	}
	if err := s.Aggregations.Unpin(r.Context(), deckID); err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, map[string]any{"deck_id": deckID, "pinned": false})
}

func (s *Server) handleToggleSelect(w http.ResponseWriter, r *http.Request) {
	deckID, err := deckIDParam(r)
	if err != nil {
		handleError(w, r, err)
		return
	}
	selected := s.Aggregations.ToggleSelected(deckID)
	respondJSON(w, r, http.StatusOK, map[string]any{
		"deck_id":  deckID,
		"selected": selected,
		"all":      s.Aggregations.SelectedIDs(),
	})
}
