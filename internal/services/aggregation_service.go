package services

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/vytor/deckpulse/internal/errors"
	"github.com/vytor/deckpulse/internal/logger"
	"github.com/vytor/deckpulse/internal/models"
	"github.com/vytor/deckpulse/internal/progress"
	"github.com/vytor/deckpulse/internal/repository"
)

// AggregationService handles deck analytics and progression business logic
type AggregationService interface {
	DeckTree(ctx context.Context) (*models.DeckNode, error)
	DeckStats(ctx context.Context, deckID int64) (models.DeckStatsSnapshot, error)
	DeckRPG(ctx context.Context, deckID int64) (models.RpgState, error)
	DeckTrends(ctx context.Context, deckID int64, mode progress.TrendMode, days int) ([]models.TrendPoint, error)
	GlobalSummary(ctx context.Context) (models.GlobalSummary, error)
	RecordReview(ctx context.Context, event models.ReviewEvent) error
	Settings(ctx context.Context) (models.Settings, error)
	UpdateSettings(ctx context.Context, s models.Settings) error
	SetDeckGoal(ctx context.Context, deckID int64, goal int) error
	Pin(ctx context.Context, deckID int64) error
	Unpin(ctx context.Context, deckID int64) error
	ToggleSelected(deckID int64) bool
	SelectedIDs() []int64
	Invalidate()
}

type dailyKey struct {
	DeckID    int64
	Streak    int
	Leech     int
	Goal      int
	Cutoff    int64
	ChartDays int
	Show      bool
}

type rpgKey struct {
	DeckID int64
	Cutoff int64
	Leech  int
}

type aggregationService struct {
	decks    repository.DeckRepository
	cards    repository.CardRepository
	revlog   repository.ReviewLogRepository
	settings repository.SettingsRepository
	history  repository.StatsHistoryRepository

	rolloverHour int
	now          func() time.Time

	dailyCache *progress.Cache[dailyKey, models.DeckStatsSnapshot]
	rpgCache   *progress.Cache[rpgKey, models.RpgState]

	selMu    sync.Mutex
	selected map[int64]bool
}

// NewAggregationService creates a new AggregationService
func NewAggregationService(
	decks repository.DeckRepository,
	cards repository.CardRepository,
	revlog repository.ReviewLogRepository,
	settings repository.SettingsRepository,
	history repository.StatsHistoryRepository,
	rolloverHour int,
) AggregationService {
	return &aggregationService{
		decks:        decks,
		cards:        cards,
		revlog:       revlog,
		settings:     settings,
		history:      history,
		rolloverHour: rolloverHour,
		now:          time.Now,
		dailyCache:   progress.NewCache[dailyKey, models.DeckStatsSnapshot](),
		rpgCache:     progress.NewCache[rpgKey, models.RpgState](),
		selected:     make(map[int64]bool),
	}
}

func (s *aggregationService) cutoff() int64 {
	return progress.DayCutoff(s.now(), s.rolloverHour)
}

func (s *aggregationService) DeckTree(ctx context.Context) (*models.DeckNode, error) {
	log := logger.FromContext(ctx)
	log.Debug("getting deck tree")

	tree, err := s.decks.Tree(ctx, progress.TodayNumber(s.cutoff()))
	if err != nil {
		log.Error("failed to get deck tree: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return tree, nil
}

func (s *aggregationService) Settings(ctx context.Context) (models.Settings, error) {
	cfg, err := s.settings.Load(ctx)
	if err != nil {
		return models.Settings{}, errors.NewInternalError(err)
	}
	return cfg, nil
}

// DeckStats never surfaces repository failures: a deck row must always
// render, so any error degrades to the placeholder snapshot.
func (s *aggregationService) DeckStats(ctx context.Context, deckID int64) (models.DeckStatsSnapshot, error) {
	log := logger.FromContext(ctx)
	cutoff := s.cutoff()

	cfg, err := s.settings.Load(ctx)
	if err != nil {
		log.Error("%v", errors.NewDegradedError("deck stats", err))
		return placeholderSnapshot(deckID), nil
	}
	goal, err := s.settings.DeckGoal(ctx, deckID)
	if err != nil {
		goal = cfg.DefaultGoal
	}

	key := dailyKey{
		DeckID: deckID, Streak: cfg.StreakThreshold, Leech: cfg.LeechThreshold,
		Goal: goal, Cutoff: cutoff, ChartDays: cfg.ChartDays, Show: cfg.ShowCharts,
	}
	if snap, ok := s.dailyCache.Get(key); ok {
		return snap, nil
	}

	snap, err := s.computeDeckStats(ctx, deckID, cfg, goal, cutoff)
	if err != nil {
		log.Error("%v", errors.NewDegradedError("deck stats", err))
		return placeholderSnapshot(deckID), nil
	}
	s.dailyCache.Set(key, snap)
	return snap, nil
}

func (s *aggregationService) computeDeckStats(ctx context.Context, deckID int64, cfg models.Settings, goal int, cutoff int64) (models.DeckStatsSnapshot, error) {
	log := logger.FromContext(ctx)
	snap := placeholderSnapshot(deckID)

	deckIDs, err := s.decks.SubtreeIDs(ctx, deckID)
	if err != nil {
		return snap, err
	}
	if len(deckIDs) == 0 {
		return snap, nil
	}

	snap.TotalCards, err = s.cards.CountInDecks(ctx, deckIDs)
	if err != nil {
		return snap, err
	}

	matureIDs, err := s.cards.MatureCardIDs(ctx, deckIDs, cfg.StreakThreshold)
	if err != nil {
		return snap, err
	}
	snap.MatureCardIDs = matureIDs
	snap.MatureCount = len(matureIDs)
	snap.Maturity = fmt.Sprintf("%d", snap.MatureCount)
	if snap.TotalCards > 0 {
		snap.MaturityPct = fmt.Sprintf("%.0f%%", float64(snap.MatureCount)/float64(snap.TotalCards)*100)
	} else {
		snap.MaturityPct = "0%"
	}
	snap.MaturityRank, _ = progress.MaturityRank(snap.MatureCount, snap.TotalCards)

	events, err := s.revlog.EventsForDecks(ctx, deckIDs, progress.TodayStartMs(cutoff))
	if err != nil {
		return snap, err
	}

	retention := 0
	streakAttempts := 0
	for _, e := range events {
		snap.DoneToday++
		snap.TotalTimeMs += e.TimeMs
		if e.Outcome > models.OutcomeFail {
			snap.PassedToday++
		}
		if _, ok := snap.OutcomeCounts[e.Outcome]; ok {
			snap.OutcomeCounts[e.Outcome]++
		}
		if e.Type == models.ReviewTypeReview && e.Reps >= cfg.StreakThreshold {
			streakAttempts++
			if e.Outcome > models.OutcomeFail {
				snap.StreakQty++
			}
		}
	}
	if snap.DoneToday > 0 {
		retention = int(math.Round(float64(snap.PassedToday) / float64(snap.DoneToday) * 100))
		snap.Retention = fmt.Sprintf("%d%%", retention)
	}
	if streakAttempts > 0 {
		snap.StreakPct = int(math.Round(float64(snap.StreakQty) / float64(streakAttempts) * 100))
	}

	if snap.DoneToday > 0 {
		if minutes := float64(snap.TotalTimeMs) / 60000; minutes > 0 {
			snap.Speed = fmt.Sprintf("%.1f", float64(snap.DoneToday)/minutes)
		}
		snap.AvgTime = fmt.Sprintf("%.1fs", float64(snap.TotalTimeMs)/1000/float64(snap.DoneToday))
	} else {
		// No reviews today: estimate pace from the last answers on
		// record so the row is never blank for an active deck.
		times, err := s.revlog.RecentTimes(ctx, deckIDs, 100)
		if err != nil {
			return snap, err
		}
		if len(times) > 0 {
			var totalMs int64
			for _, t := range times {
				totalMs += t
			}
			snap.AvgTime = fmt.Sprintf("%.1fs", float64(totalMs)/1000/float64(len(times)))
			if minutes := float64(totalMs) / 60000; minutes > 0 {
				snap.Speed = fmt.Sprintf("%.1f", float64(len(times))/minutes)
			}
		}
	}

	snap.Tomorrow, err = s.cards.DueOn(ctx, deckIDs, progress.TodayNumber(cutoff)+1)
	if err != nil {
		return snap, err
	}

	avgEase, err := s.cards.AverageEase(ctx, deckIDs)
	if err != nil {
		return snap, err
	}
	easeVal := 0
	if avgEase > 0 {
		easeVal = int(avgEase / 10)
		snap.Ease = fmt.Sprintf("%d%%", easeVal)
	}

	snap.Leeches, err = s.cards.LeechCount(ctx, deckIDs, cfg.LeechThreshold)
	if err != nil {
		return snap, err
	}

	snap.TotalStars, err = s.historicalStars(ctx, deckIDs, goal, cutoff)
	if err != nil {
		return snap, err
	}

	// Persist today's (ease, retention) pair so the trend charts can show
	// it after the raw events age out. Written only on change.
	todayKey := progress.DateKey(cutoff, 0)
	saved, found, err := s.history.Get(ctx, deckID, todayKey)
	if err == nil {
		if !found || saved.Ease != easeVal || saved.Retention != retention {
			point := models.HistoryPoint{Ease: easeVal, Retention: retention}
			if err := s.history.Put(ctx, deckID, todayKey, point); err != nil {
				log.Warn("failed to persist stats history: %v", err)
			}
		}
	}

	if cfg.ShowCharts {
		live := progress.LiveValues{Retention: retention, Ease: easeVal}
		aggs, history, err := s.trendInputs(ctx, deckID, deckIDs, cfg, cutoff)
		if err != nil {
			return snap, err
		}
		snap.RetentionSeries = progress.BuildSeries(progress.ModeRetention, aggs, history, live, cutoff, cfg.ChartDays)
		snap.ReviewSeries = progress.BuildSeries(progress.ModeReviews, aggs, history, live, cutoff, cfg.ChartDays)
		snap.EaseSeries = progress.BuildSeries(progress.ModeEase, aggs, history, live, cutoff, cfg.ChartDays)
	}

	return snap, nil
}

func (s *aggregationService) historicalStars(ctx context.Context, deckIDs []int64, goal int, cutoff int64) (int, error) {
	if goal <= 0 {
		return 0, nil
	}
	counts, err := s.revlog.DayCounts(ctx, deckIDs, cutoff)
	if err != nil {
		return 0, err
	}
	stars := 0
	for _, count := range counts {
		stars += count / goal
	}
	return stars, nil
}

func (s *aggregationService) trendInputs(ctx context.Context, deckID int64, deckIDs []int64, cfg models.Settings, cutoff int64) ([]models.DayAggregate, map[string]models.HistoryPoint, error) {
	aggs, err := s.revlog.DailyAggregates(ctx, deckIDs, cutoff, cfg.StreakThreshold, cfg.ChartDays)
	if err != nil {
		return nil, nil, err
	}
	days := make([]string, 0, cfg.ChartDays)
	for i := cfg.ChartDays - 1; i >= 0; i-- {
		days = append(days, progress.DateKey(cutoff, -i))
	}
	history, err := s.history.GetDays(ctx, deckID, days)
	if err != nil {
		return nil, nil, err
	}
	return aggs, history, nil
}

// DeckRPG folds the deck's own events into HP and XP and aggregates its
// children recursively. Like DeckStats it degrades instead of failing: a
// broken branch scores as untouched.
func (s *aggregationService) DeckRPG(ctx context.Context, deckID int64) (models.RpgState, error) {
	log := logger.FromContext(ctx)

	cfg, err := s.settings.Load(ctx)
	if err != nil {
		log.Error("%v", errors.NewDegradedError("deck rpg", err))
		return models.RpgState{HP: 100, XP: 0, HPPct: 100}, nil
	}
	state := s.rpgRecurse(ctx, deckID, s.cutoff(), cfg.LeechThreshold, make(map[int64]bool))
	return state, nil
}

func (s *aggregationService) rpgRecurse(ctx context.Context, deckID int64, cutoff int64, leechThreshold int, visited map[int64]bool) models.RpgState {
	log := logger.FromContext(ctx)
	safe := models.RpgState{HP: 100, XP: 0, HPPct: 100}
	if visited[deckID] {
		log.Warn("deck tree cycle detected at deck %d", deckID)
		return safe
	}
	visited[deckID] = true

	key := rpgKey{DeckID: deckID, Cutoff: cutoff, Leech: leechThreshold}
	if state, ok := s.rpgCache.Get(key); ok {
		return state
	}

	// Own events only; each child contributes through its own recursion.
	events, err := s.revlog.EventsForDecks(ctx, []int64{deckID}, progress.TodayStartMs(cutoff))
	if err != nil {
		log.Error("%v", errors.NewDegradedError("deck rpg", err))
		return safe
	}

	hp := progress.FoldHP(events)
	xpRes := progress.FoldXP(events, leechThreshold, func(cardID, beforeID int64) (int64, bool) {
		t, ok, err := s.revlog.PrevTime(ctx, cardID, beforeID)
		if err != nil {
			return 0, false
		}
		return t, ok
	})

	childIDs, err := s.decks.ChildIDs(ctx, deckID)
	if err != nil {
		log.Error("%v", errors.NewDegradedError("deck rpg", err))
		return safe
	}

	xp := xpRes.XP
	minChildHP := 100
	for _, childID := range childIDs {
		child := s.rpgRecurse(ctx, childID, cutoff, leechThreshold, visited)
		xp += child.XP
		if child.HP < minChildHP {
			minChildHP = child.HP
		}
	}

	// A parent with no activity of its own reflects its weakest child.
	if len(events) == 0 && len(childIDs) > 0 {
		hp = minChildHP
	}

	state := models.RpgState{HP: hp, XP: xp, HPPct: hp}
	s.rpgCache.Set(key, state)
	return state
}

// DeckTrends builds one trend series on demand. Aggregate failures are
// logged and treated as an empty window so the chart still renders.
func (s *aggregationService) DeckTrends(ctx context.Context, deckID int64, mode progress.TrendMode, days int) ([]models.TrendPoint, error) {
	log := logger.FromContext(ctx)

	cfg, err := s.settings.Load(ctx)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	if days > 0 {
		cfg.ChartDays = days
	}
	cutoff := s.cutoff()

	deckIDs, err := s.decks.SubtreeIDs(ctx, deckID)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}

	aggs, history, err := s.trendInputs(ctx, deckID, deckIDs, cfg, cutoff)
	if err != nil {
		log.Error("%v", errors.NewDegradedError("deck trends", err))
		aggs, history = nil, nil
	}

	live, err := s.liveValues(ctx, deckIDs, cutoff)
	if err != nil {
		log.Error("%v", errors.NewDegradedError("deck trends", err))
		live = progress.LiveValues{}
	}

	return progress.BuildSeries(mode, aggs, history, live, cutoff, cfg.ChartDays), nil
}

func (s *aggregationService) liveValues(ctx context.Context, deckIDs []int64, cutoff int64) (progress.LiveValues, error) {
	var live progress.LiveValues

	events, err := s.revlog.EventsForDecks(ctx, deckIDs, progress.TodayStartMs(cutoff))
	if err != nil {
		return live, err
	}
	if len(events) > 0 {
		passed := 0
		for _, e := range events {
			if e.Outcome > models.OutcomeFail {
				passed++
			}
		}
		live.Retention = int(math.Round(float64(passed) / float64(len(events)) * 100))
	}

	avgEase, err := s.cards.AverageEase(ctx, deckIDs)
	if err != nil {
		return live, err
	}
	if avgEase > 0 {
		live.Ease = int(avgEase / 10)
	}
	return live, nil
}

func (s *aggregationService) GlobalSummary(ctx context.Context) (models.GlobalSummary, error) {
	log := logger.FromContext(ctx)
	cutoff := s.cutoff()

	cfg, err := s.settings.Load(ctx)
	if err != nil {
		return models.GlobalSummary{}, errors.NewInternalError(err)
	}

	pinned, err := s.settings.PinnedIDs(ctx)
	if err != nil {
		return models.GlobalSummary{}, errors.NewInternalError(err)
	}

	tree, err := s.decks.Tree(ctx, progress.TodayNumber(cutoff))
	if err != nil {
		return models.GlobalSummary{}, errors.NewInternalError(err)
	}

	sum := models.GlobalSummary{OutcomeCounts: map[int]int{1: 0, 2: 0, 3: 0, 4: 0}}
	totalSeconds := 0
	allSubtree := make(map[int64]bool)

	for _, deckID := range pinned {
		if node := progress.FindNode(tree, deckID); node != nil {
			n, l, r := progress.VisualCounts(node)
			sum.TotalNew += n
			sum.TotalLearn += l
			sum.TotalReview += r
			totalSeconds += progress.EstimatedSeconds(node)
		}

		goal, err := s.settings.DeckGoal(ctx, deckID)
		if err != nil {
			goal = cfg.DefaultGoal
		}
		sum.GoalSum += goal

		snap, _ := s.DeckStats(ctx, deckID)
		sum.TotalCards += snap.TotalCards
		sum.TotalTomorrow += snap.Tomorrow
		sum.TotalLeeches += snap.Leeches
		sum.TotalStreak += snap.MatureCount
		sum.ReviewsToday += snap.DoneToday
		sum.PassedToday += snap.PassedToday
		sum.TotalTimeMs += snap.TotalTimeMs
		sum.Stars += snap.TotalStars

		rpg, _ := s.DeckRPG(ctx, deckID)
		sum.XP += rpg.XP

		if ids, err := s.decks.SubtreeIDs(ctx, deckID); err == nil {
			for _, id := range ids {
				allSubtree[id] = true
			}
		}
	}

	sum.EstimatedTime = progress.FormatDuration(totalSeconds)
	sum.Level = progress.LevelFor(sum.XP)

	sum.StreakPct = "0%"
	if sum.TotalCards > 0 {
		sum.StreakPct = fmt.Sprintf("%.0f%%", float64(sum.TotalStreak)/float64(sum.TotalCards)*100)
	}
	sum.Retention = "-"
	sum.AvgTime = "-"
	if sum.ReviewsToday > 0 {
		sum.Retention = fmt.Sprintf("%.0f%%", float64(sum.PassedToday)/float64(sum.ReviewsToday)*100)
		sum.AvgTime = fmt.Sprintf("%.1fs", float64(sum.TotalTimeMs)/1000/float64(sum.ReviewsToday))
	}
	sum.Speed = "-"
	if sum.TotalTimeMs > 0 {
		if minutes := float64(sum.TotalTimeMs) / 60000; minutes > 0 {
			sum.Speed = fmt.Sprintf("%.1f", float64(sum.ReviewsToday)/minutes)
		}
	}

	// Ease over the pinned roots only, not their subtrees.
	sum.Ease = "-"
	if len(pinned) > 0 {
		if avgEase, err := s.cards.AverageEase(ctx, pinned); err == nil && avgEase > 0 {
			sum.Ease = fmt.Sprintf("%.0f%%", avgEase/10)
		}
	}

	sum.StreakDays = s.globalStreakDays(ctx, cutoff)
	sum.LastReviewAt = s.lastReviewClock(ctx)

	if histogram, err := s.revlog.OutcomeHistogram(ctx, progress.TodayStartMs(cutoff)); err == nil {
		for outcome, count := range histogram {
			if _, ok := sum.OutcomeCounts[outcome]; ok {
				sum.OutcomeCounts[outcome] = count
			}
		}
	}

	if cfg.ShowCharts {
		ids := make([]int64, 0, len(allSubtree))
		for id := range allSubtree {
			ids = append(ids, id)
		}
		days, err := s.dailySummaries(ctx, ids, cfg, cutoff)
		if err != nil {
			log.Error("%v", errors.NewDegradedError("global summary", err))
		} else {
			if len(days) > 0 {
				// Today's row reflects the live totals, not a refold.
				days[len(days)-1].Cards = sum.ReviewsToday
				days[len(days)-1].XP = sum.XP
				days[len(days)-1].Tier = progress.TierName(sum.XP)
			}
			sum.Days = days
		}
	}

	return sum, nil
}

func (s *aggregationService) dailySummaries(ctx context.Context, deckIDs []int64, cfg models.Settings, cutoff int64) ([]models.DaySummary, error) {
	if len(deckIDs) == 0 {
		return nil, nil
	}
	sinceMs := (cutoff - int64(cfg.ChartDays)*86400) * 1000
	events, err := s.revlog.EventsForDecks(ctx, deckIDs, sinceMs)
	if err != nil {
		return nil, err
	}

	byDay := make(map[int][]models.ReviewEvent)
	for _, e := range events {
		offset := int((e.ID/1000 - cutoff) / 86400)
		byDay[offset] = append(byDay[offset], e)
	}

	prevTime := func(cardID, beforeID int64) (int64, bool) {
		t, ok, err := s.revlog.PrevTime(ctx, cardID, beforeID)
		if err != nil {
			return 0, false
		}
		return t, ok
	}

	days := make([]models.DaySummary, 0, cfg.ChartDays)
	for i := cfg.ChartDays - 1; i >= 0; i-- {
		offset := -i
		dayEvents := byDay[offset]
		xp := 0
		if len(dayEvents) > 0 {
			xp = progress.FoldXP(dayEvents, cfg.LeechThreshold, prevTime).XP
		}
		days = append(days, models.DaySummary{
			Date:  progress.DisplayDate(cutoff, offset),
			Cards: len(dayEvents),
			XP:    xp,
			Tier:  progress.TierName(xp),
		})
	}
	return days, nil
}

func (s *aggregationService) globalStreakDays(ctx context.Context, cutoff int64) int {
	offsets, err := s.revlog.StudyDayOffsets(ctx, cutoff)
	if err != nil || len(offsets) == 0 {
		return 0
	}
	seen := make(map[int]bool, len(offsets))
	for _, o := range offsets {
		seen[o] = true
	}
	// The run may anchor on today or, before today's first review, on
	// yesterday.
	check := 0
	if !seen[0] {
		if !seen[-1] {
			return 0
		}
		check = -1
	}
	streak := 0
	for seen[check] {
		streak++
		check--
	}
	return streak
}

func (s *aggregationService) lastReviewClock(ctx context.Context) string {
	id, err := s.revlog.LastEventID(ctx)
	if err != nil || id == 0 {
		return "--:--:--"
	}
	return time.UnixMilli(id).Format("15:04:05")
}

func (s *aggregationService) RecordReview(ctx context.Context, event models.ReviewEvent) error {
	log := logger.FromContext(ctx)

	if event.ID == 0 || event.CardID == 0 {
		return errors.NewValidationError("event", "id and card_id are required")
	}
	if event.Outcome < models.OutcomeFail || event.Outcome > models.OutcomeEasy {
		return errors.NewValidationError("outcome", "must be between 1 and 4")
	}

	if err := s.revlog.Insert(ctx, event); err != nil {
		log.Error("failed to record review: %v", err)
		return errors.NewInternalError(err)
	}
	s.Invalidate()
	log.Debug("review recorded: card=%d, outcome=%d", event.CardID, event.Outcome)
	return nil
}

func (s *aggregationService) UpdateSettings(ctx context.Context, cfg models.Settings) error {
	if err := s.settings.Save(ctx, cfg); err != nil {
		return errors.NewInternalError(err)
	}
	s.Invalidate()
	return nil
}

func (s *aggregationService) SetDeckGoal(ctx context.Context, deckID int64, goal int) error {
	if goal < 1 {
		return errors.NewValidationError("goal", "must be at least 1")
	}
	if err := s.settings.SetDeckGoal(ctx, deckID, goal); err != nil {
		return errors.NewInternalError(err)
	}
	s.Invalidate()
	return nil
}

func (s *aggregationService) Pin(ctx context.Context, deckID int64) error {
	if _, err := s.decks.Get(ctx, deckID); err != nil {
		return errors.NewNotFoundError("deck", deckID)
	}
	if err := s.settings.Pin(ctx, deckID); err != nil {
		return errors.NewInternalError(err)
	}
	return nil
}

func (s *aggregationService) Unpin(ctx context.Context, deckID int64) error {
	if err := s.settings.Unpin(ctx, deckID); err != nil {
		return errors.NewInternalError(err)
	}
	return nil
}

// ToggleSelected flips a deck in the group-study selection and reports
// whether it is now selected. The selection is in-memory session state.
func (s *aggregationService) ToggleSelected(deckID int64) bool {
	s.selMu.Lock()
	defer s.selMu.Unlock()
	if s.selected[deckID] {
		delete(s.selected, deckID)
		return false
	}
	s.selected[deckID] = true
	return true
}

func (s *aggregationService) SelectedIDs() []int64 {
	s.selMu.Lock()
	defer s.selMu.Unlock()
	ids := make([]int64, 0, len(s.selected))
	for id := range s.selected {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Invalidate drops both aggregate caches. Called whenever a review lands
// or settings change.
func (s *aggregationService) Invalidate() {
	s.dailyCache.Clear()
	s.rpgCache.Clear()
}

func placeholderSnapshot(deckID int64) models.DeckStatsSnapshot {
	return models.DeckStatsSnapshot{
		DeckID:        deckID,
		Maturity:      "-",
		Retention:     "-",
		Speed:         "-",
		Ease:          "-",
		AvgTime:       "-",
		MaturityPct:   "-",
		MaturityRank:  "-",
		OutcomeCounts: map[int]int{1: 0, 2: 0, 3: 0, 4: 0},
	}
}
