package progress

import "github.com/vytor/deckpulse/internal/models"

// Damage and heal tuning for the HP fold.
const (
	baseDamage       = 15
	failStreakLimit  = 3
	failStreakDamage = 25
	maxHP            = 100
)

// PrevTimeFunc looks up the elapsed time of a card's most recent review
// before the given event id. ok is false when the card has no earlier
// review. FoldXP calls it at most once per card.
type PrevTimeFunc func(cardID, beforeID int64) (timeMs int64, ok bool)

// XPResult carries the outputs of one XP fold over a day's events.
type XPResult struct {
	XP     int
	Passed int
	Total  int
}

// FoldHP replays the day's events against a 100-point health bar. Damage
// on a failure scales with how weak the card's ease already is, a third
// consecutive failure costs an extra chunk and resets the run, and passes
// heal a little. Intermediate HP may go negative so a strong finish can
// recover it; only the final value is clamped to [0, 100].
func FoldHP(events []models.ReviewEvent) int {
	hp := maxHP
	failStreak := 0
	for _, e := range events {
		if e.Outcome == models.OutcomeFail {
			hp -= baseDamage + (2600-e.Factor)/100
			failStreak++
			if failStreak >= failStreakLimit {
				hp -= failStreakDamage
				failStreak = 0
			}
			continue
		}
		failStreak = 0
		heal := 2
		if e.Outcome == models.OutcomeHard {
			heal = 1
		}
		if hp += heal; hp > maxHP {
			hp = maxHP
		}
	}
	if hp < 0 {
		hp = 0
	}
	return hp
}

// FoldXP replays the day's events and scores each one. Weak cards are
// worth more, answer streaks multiply the gain, leeches pay a bounty,
// established cards earn nothing, and a noticeable speed-up or slow-down
// against the card's previous answer nudges the gain. A session with a
// meaningful volume gets a retention bonus or penalty on top.
func FoldXP(events []models.ReviewEvent, leechThreshold int, prevTime PrevTimeFunc) XPResult {
	var res XPResult
	streak := 0
	// Per-card elapsed time of the latest pass seen so far; seeded from
	// prevTime the first time a card passes within the fold.
	lastTimes := make(map[int64]int64)

	for _, e := range events {
		res.Total++
		baseXP := 1
		if e.Factor < 2500 {
			baseXP = (2600 - e.Factor) / 50
		}

		if e.Outcome == models.OutcomeFail {
			res.XP -= baseXP * 2
			streak = 0
			continue
		}

		res.Passed++
		streak++
		gain := float64(baseXP)

		if (e.Reps > 10 && e.Factor > 1900) || e.Interval > 100 {
			// Established card: no grind value left.
			gain = 0
		} else {
			if e.Lapses >= leechThreshold {
				gain += 15
			}
			if gain > 0 {
				switch {
				case streak >= 10:
					gain *= 2.0
				case streak >= 5:
					gain *= 1.5
				}
			}
		}

		prev, ok := lastTimes[e.CardID]
		if !ok && prevTime != nil {
			prev, ok = prevTime(e.CardID, e.ID)
		}
		if ok {
			diff := e.TimeMs - prev
			if diff < -500 {
				gain += 2
			} else if diff > 500 {
				gain -= 2
				if gain < 0 {
					gain = 0
				}
			}
		}

		res.XP += int(gain)
		lastTimes[e.CardID] = e.TimeMs
	}

	if res.Total > 5 {
		retention := float64(res.Passed) / float64(res.Total)
		if retention >= 0.95 {
			res.XP += 50
		} else if retention < 0.80 {
			res.XP -= 50
		}
	}
	return res
}
