package progress

import "github.com/vytor/deckpulse/internal/models"

type tier struct {
	floor int
	title string
	color string
}

// The ladder. The last floor is open-ended.
var tiers = []tier{
	{0, "Aldeão", "#a0a0a0"},
	{100, "Recruta", "#cd7f32"},
	{300, "Soldado", "#c0c0c0"},
	{600, "Veterano", "#ffd700"},
	{1000, "Elite", "#00ced1"},
	{1500, "Mestre", "#9932cc"},
	{2500, "Grão-Mestre", "#ff4500"},
	{4000, "LENDA", "#ff00ff"},
}

const topFloor = 4000

// LevelFor maps cumulative XP onto the tier ladder. Negative totals get
// the cursed state, the top tier is open-ended.
func LevelFor(totalXP int) models.GlobalLevel {
	if totalXP < 0 {
		return models.GlobalLevel{
			Title:      "Amaldiçoado",
			Color:      "#555",
			XPForLevel: 100,
			Cursed:     true,
		}
	}
	if totalXP >= topFloor {
		last := tiers[len(tiers)-1]
		return models.GlobalLevel{
			Title:     last.title,
			Color:     last.color,
			LevelPct:  1.0,
			GlobalPct: 1.0,
			XPInLevel: totalXP,
			MaxTier:   true,
		}
	}

	current := tiers[0]
	next := tiers[1]
	for i := 1; i < len(tiers); i++ {
		if totalXP < tiers[i].floor {
			current = tiers[i-1]
			next = tiers[i]
			break
		}
	}
	span := next.floor - current.floor
	return models.GlobalLevel{
		Title:      current.title,
		Color:      current.color,
		LevelPct:   float64(totalXP-current.floor) / float64(span),
		GlobalPct:  float64(totalXP) / float64(topFloor),
		XPInLevel:  totalXP - current.floor,
		XPForLevel: span,
	}
}

// TierName returns just the tier title for an XP total, for per-day
// summary annotations.
func TierName(totalXP int) string {
	return LevelFor(totalXP).Title
}

var maturityRanks = []string{
	"Novato", "Iniciante", "Praticante", "Estudante", "Dedicado",
	"Experiente", "Proficiente", "Especialista", "Mestre", "Lenda",
}

// MaturityRank names the collection's maturity band from the share of
// mature cards. An empty collection is Novato at 0%.
func MaturityRank(matureCount, totalCards int) (string, float64) {
	if totalCards == 0 {
		return maturityRanks[0], 0
	}
	pct := float64(matureCount) / float64(totalCards) * 100
	for i, rank := range maturityRanks[:len(maturityRanks)-1] {
		if pct <= float64((i+1)*10) {
			return rank, pct
		}
	}
	return maturityRanks[len(maturityRanks)-1], pct
}
