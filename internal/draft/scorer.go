package draft

import (
	"sort"

	"github.com/obaflips/court-reads/internal/models"
	"github.com/obaflips/court-reads/internal/rng"
)

// Personality identifies one of the scripted draft opponents.
type Personality struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Emoji       string `json:"emoji"`
	Description string `json:"description"`
	Color       string `json:"color"`
}

// The four AI personalities, in the order they are offered to the user.
var (
	AnalyticsNerd = Personality{
		ID:          "analytics",
		Name:        "The Analytics Nerd",
		Emoji:       "🤓",
		Description: "Picks high-efficiency characters with great stats",
		Color:       "blue",
	}
	Storyteller = Personality{
		ID:          "storyteller",
		Name:        "The Storyteller",
		Emoji:       "📚",
		Description: "Prioritizes characters from highly-rated books and series",
		Color:       "purple",
	}
	BalancedBuilder = Personality{
		ID:          "balanced",
		Name:        "The Balanced Builder",
		Emoji:       "⚖️",
		Description: "Focuses on positional needs and team balance",
		Color:       "green",
	}
	Wildcard = Personality{
		ID:          "wildcard",
		Name:        "The Wildcard",
		Emoji:       "🎲",
		Description: "Unpredictable picks with occasional steals",
		Color:       "orange",
	}
)

// Personalities lists every AI opponent.
var Personalities = []Personality{AnalyticsNerd, Storyteller, BalancedBuilder, Wildcard}

// PersonalityByID looks up a personality; ok is false for unknown IDs.
func PersonalityByID(id string) (Personality, bool) {
	for _, p := range Personalities {
		if p.ID == id {
			return p, true
		}
	}
	return Personality{}, false
}

func characterStats(c models.EnrichedCharacter) *models.Stats {
	if c.Player == nil {
		return nil
	}
	return c.Player.Stats
}

func bookRating(c models.EnrichedCharacter) float64 {
	if c.BookRating == 0 {
		return 3
	}
	return c.BookRating
}

func statOr(v, fallback float64) float64 {
	if v == 0 {
		return fallback
	}
	return v
}

// scoreForAnalytics weights player efficiency heavily, with book rating
// as a secondary signal.
func scoreForAnalytics(c models.EnrichedCharacter, roster []models.EnrichedCharacter, _ rng.Source) float64 {
	score := 0.0

	if stats := characterStats(c); stats != nil {
		score += statOr(stats.PER, 15) * 3
		score += statOr(stats.PPG, 15) * 2
		score += statOr(stats.RPG, 5) * 1
		score += statOr(stats.APG, 3) * 1.5
	}

	score += bookRating(c) * 5

	if !NeedsPosition(roster, playerPosition(c)) {
		score *= 0.7
	}

	return score
}

// scoreForStoryteller chases book ratings, series stacking, and good
// taglines.
func scoreForStoryteller(c models.EnrichedCharacter, roster []models.EnrichedCharacter, _ rng.Source) float64 {
	score := bookRating(c) * 20

	if c.SeriesName != "" {
		score += 15
		for _, member := range roster {
			if member.SeriesName == c.SeriesName {
				score += 10
			}
		}
	}

	if len(c.Tagline) > 20 {
		score += 8
	}

	if !NeedsPosition(roster, playerPosition(c)) {
		score *= 0.8
	}

	return score
}

// scoreForBalanced fills positional needs first, then takes quality as
// a tiebreak.
func scoreForBalanced(c models.EnrichedCharacter, roster []models.EnrichedCharacter, _ rng.Source) float64 {
	score := 0.0
	category := PositionCategory(playerPosition(c))

	for _, need := range PositionalNeeds(roster) {
		if need.Position == category {
			score += 50 * float64(need.Priority)
			break
		}
	}

	if !NeedsPosition(roster, playerPosition(c)) {
		score -= 30
	}

	score += bookRating(c) * 5
	if stats := characterStats(c); stats != nil {
		score += statOr(stats.PER, 15) * 1
	}

	return score
}

// scoreForWildcard is mostly noise, with an occasional quality bonus.
func scoreForWildcard(c models.EnrichedCharacter, roster []models.EnrichedCharacter, src rng.Source) float64 {
	score := src.Float64() * 50

	if src.Float64() > 0.7 {
		score += bookRating(c) * 10
		if stats := characterStats(c); stats != nil {
			score += statOr(stats.PER, 15) * 2
		}
	}

	if !NeedsPosition(roster, playerPosition(c)) {
		score *= 0.6
	}

	return score
}

type scoreFunc func(models.EnrichedCharacter, []models.EnrichedCharacter, rng.Source) float64

func scorerFor(personality Personality) scoreFunc {
	switch personality.ID {
	case AnalyticsNerd.ID:
		return scoreForAnalytics
	case Storyteller.ID:
		return scoreForStoryteller
	case BalancedBuilder.ID:
		return scoreForBalanced
	case Wildcard.ID:
		return scoreForWildcard
	default:
		return scoreForBalanced
	}
}

// topPickWeights is the sampling ladder over the top-scored candidates;
// slots past the ladder default to 0.1.
var topPickWeights = []float64{0.6, 0.3, 0.1}

// AIPick scores every available character with the personality's
// strategy and samples one of the top three, so an AI usually but not
// always takes its best-scored candidate. Returns nil only when the
// pool is empty.
func AIPick(personality Personality, available []models.EnrichedCharacter, roster []models.EnrichedCharacter, src rng.Source) *models.EnrichedCharacter {
	if len(available) == 0 {
		return nil
	}

	scoreFn := scorerFor(personality)

	type scored struct {
		character models.EnrichedCharacter
		score     float64
	}
	candidates := make([]scored, len(available))
	for i, c := range available {
		candidates[i] = scored{character: c, score: scoreFn(c, roster, src)}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})

	top := candidates
	if len(top) > 3 {
		top = top[:3]
	}

	draw := src.Float64()
	cumulative := 0.0
	for i := range top {
		if i < len(topPickWeights) {
			cumulative += topPickWeights[i]
		} else {
			cumulative += 0.1
		}
		if draw < cumulative {
			pick := top[i].character
			return &pick
		}
	}

	pick := top[0].character
	return &pick
}

// RecommendedPick is the auto-pick used for the user's team; it is the
// Balanced Builder strategy, nothing more.
func RecommendedPick(available []models.EnrichedCharacter, roster []models.EnrichedCharacter, src rng.Source) *models.EnrichedCharacter {
	return AIPick(BalancedBuilder, available, roster, src)
}

// IsValidPick checks a user pick against roster size and position max
// caps. A character with no position is a universally valid flex pick.
// Minimum requirements are deliberately not enforced here: a drafter
// may finish with zero centers.
func IsValidPick(c models.EnrichedCharacter, roster []models.EnrichedCharacter, maxRosterSize int) bool {
	if len(roster) >= maxRosterSize {
		return false
	}

	position := playerPosition(c)
	if position == "" {
		return true
	}

	return NeedsPosition(roster, position)
}
