package sim

import (
	"sort"
	"strings"

	"github.com/obaflips/court-reads/internal/models"
)

// Opponent team name used in momentum highlights.
const hofTeamName = "Hall of Fame Legends"

var scoringTemplates = []string{
	"{character} channeled the ancient power of the realm to drain a contested three from beyond the arc!",
	"The legendary {character} rose through the paint like a dragon ascending, throwing down a thunderous dunk!",
	"{character} wove through defenders with mystical agility, finishing with a silky floater!",
	"Like a shadow in the night, {character} emerged for a clutch mid-range jumper!",
	"{character} summoned their inner champion with an and-one finish at the rim!",
	"The warrior {character} powered through the defense for a statement layup!",
	"{character} pulled up from the logo like a sorcerer casting a spell - SPLASH!",
}

var playmakingTemplates = []string{
	"{character} orchestrated the offense like a grand strategist, threading a no-look dime!",
	"With the vision of an ancient oracle, {character} found the open warrior for an easy bucket!",
	"{character} commanded the court like royalty, delivering a cross-court laser pass!",
	"The mastermind {character} drew the defense and kicked it out for a wide-open three!",
}

var defenseTemplates = []string{
	"{character} rose like a guardian titan to swat away the shot attempt!",
	"The sentinel {character} picked the pocket with thief-like precision!",
	"{character} locked down their opponent like a shadow binding spell!",
}

var momentumTemplates = []string{
	"The {teamName} went on a devastating 12-0 run!",
	"Momentum shifted as {teamName} found their rhythm!",
	"The crowd erupted as {teamName} pulled away in the final quarter!",
}

// highlightCandidate tags a composed highlight for the shuffle phase.
// Pinned entries keep their position; everything else gets reordered.
type highlightCandidate struct {
	models.Highlight
	pinned bool
}

// highlights builds 3-5 narrated moments from the two box scores in
// two phases: compose a tagged candidate list, then shuffle only the
// non-pinned entries. The user star's scoring highlight is pinned at
// the top so the reel always opens on the user's team.
func (s *Simulator) highlights(userBox, hofBox []models.BoxScoreLine, userTeamName string, userWon bool) []models.Highlight {
	candidates := s.composeHighlights(userBox, hofBox, userTeamName, userWon)
	return s.shuffleUnpinned(candidates)
}

func (s *Simulator) composeHighlights(userBox, hofBox []models.BoxScoreLine, userTeamName string, userWon bool) []highlightCandidate {
	userStars := sortByImpact(userBox)
	hofStars := sortByImpact(hofBox)

	target := 3 + s.src.Intn(3)

	var out []highlightCandidate
	if len(userStars) > 0 {
		out = append(out, highlightCandidate{
			Highlight: models.Highlight{
				Text: s.fill(scoringTemplates, "{character}", userStars[0].CharacterName),
				Team: "user",
				Type: "scoring",
			},
			pinned: true,
		})
	}
	if len(hofStars) > 0 {
		out = append(out, highlightCandidate{Highlight: models.Highlight{
			Text: s.fill(scoringTemplates, "{character}", hofStars[0].CharacterName),
			Team: "hof",
			Type: "scoring",
		}})
	}
	if len(userStars) > 1 && userStars[1].Assists >= 3 {
		out = append(out, highlightCandidate{Highlight: models.Highlight{
			Text: s.fill(playmakingTemplates, "{character}", userStars[1].CharacterName),
			Team: "user",
			Type: "playmaking",
		}})
	}
	if len(userStars) > 2 && len(out) < target {
		out = append(out, highlightCandidate{Highlight: models.Highlight{
			Text: s.fill(defenseTemplates, "{character}", userStars[2].CharacterName),
			Team: "user",
			Type: "defense",
		}})
	}
	if len(out) < target {
		team, name := "hof", hofTeamName
		if userWon {
			team, name = "user", userTeamName
		}
		out = append(out, highlightCandidate{Highlight: models.Highlight{
			Text: s.fill(momentumTemplates, "{teamName}", name),
			Team: team,
			Type: "momentum",
		}})
	}
	return out
}

// shuffleUnpinned reorders the non-pinned candidates among themselves;
// every pinned entry stays at its composed index.
func (s *Simulator) shuffleUnpinned(candidates []highlightCandidate) []models.Highlight {
	loose := make([]int, 0, len(candidates))
	for i, c := range candidates {
		if !c.pinned {
			loose = append(loose, i)
		}
	}
	if len(loose) > 1 {
		values := make([]models.Highlight, len(loose))
		for j, i := range loose {
			values[j] = candidates[i].Highlight
		}
		s.src.Shuffle(len(values), func(i, j int) {
			values[i], values[j] = values[j], values[i]
		})
		for j, i := range loose {
			candidates[i].Highlight = values[j]
		}
	}

	out := make([]models.Highlight, len(candidates))
	for i, c := range candidates {
		out[i] = c.Highlight
	}
	return out
}

func (s *Simulator) fill(templates []string, placeholder, value string) string {
	t := templates[s.src.Intn(len(templates))]
	return strings.ReplaceAll(t, placeholder, value)
}

func sortByImpact(boxScore []models.BoxScoreLine) []models.BoxScoreLine {
	stars := make([]models.BoxScoreLine, len(boxScore))
	copy(stars, boxScore)
	sort.SliceStable(stars, func(i, j int) bool {
		return stars[i].Impact > stars[j].Impact
	})
	return stars
}
