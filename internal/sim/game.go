package sim

import (
	"math"

	"github.com/obaflips/court-reads/internal/models"
	"github.com/obaflips/court-reads/internal/rng"
)

const (
	minScore = 95
	maxScore = 135

	// Share of the base score used as symmetric variance.
	scoreVariance = 0.15
)

// Simulator runs exhibition games. All randomness flows through the
// injected source so games can be replayed deterministically.
type Simulator struct {
	src rng.Source
}

func NewSimulator(src rng.Source) *Simulator {
	return &Simulator{src: src}
}

// Simulate plays one game between the user's lineup and the Hall of
// Fame lineup and returns the full result: final score, box scores,
// MVPs, and highlights. Ties are broken before box scores are built,
// so individual points always distribute toward the final margin.
func (s *Simulator) Simulate(userLineup, hofLineup []models.LineupSlot, userTeamName string) *models.GameResult {
	userPlayers := PrepareLineup(userLineup)
	hofPlayers := PrepareLineup(hofLineup)

	userStats := TeamStats(userPlayers)
	hofStats := TeamStats(hofPlayers)

	userScore := s.teamScore(userStats)
	hofScore := s.teamScore(hofStats)

	// No ties: bump one side by 1-3 on a coin flip.
	if userScore == hofScore {
		bump := 1 + s.src.Intn(3)
		if s.src.Float64() > 0.5 {
			userScore += bump
		} else {
			hofScore += bump
		}
	}

	userWon := userScore > hofScore

	userBox := s.boxScore(userPlayers, userScore)
	hofBox := s.boxScore(hofPlayers, hofScore)

	userMVP := topImpact(userBox)
	hofMVP := topImpact(hofBox)

	// The winning side's MVP takes game MVP, except a losing MVP who
	// out-performed everyone on the floor steals it.
	winnerMVP, loserMVP := hofMVP, userMVP
	if userWon {
		winnerMVP, loserMVP = userMVP, hofMVP
	}
	gameMVP := winnerMVP
	if gameMVP == nil || (loserMVP != nil && loserMVP.Impact > gameMVP.Impact) {
		gameMVP = loserMVP
	}

	return &models.GameResult{
		UserScore:     userScore,
		HOFScore:      hofScore,
		UserWon:       userWon,
		UserBoxScore:  userBox,
		HOFBoxScore:   hofBox,
		UserMVP:       userMVP,
		HOFMVP:        hofMVP,
		GameMVP:       gameMVP,
		Highlights:    s.highlights(userBox, hofBox, userTeamName, userWon),
		UserTeamStats: userStats,
		HOFTeamStats:  hofStats,
	}
}

// teamScore converts aggregate team stats to a final score:
// 0.8*PPG + 0.3*RPG + 0.2*APG with +/-15% variance, clamped to a
// realistic 95-135 range.
func (s *Simulator) teamScore(stats models.TeamStats) int {
	base := stats.PPG*0.8 + stats.RPG*0.3 + stats.APG*0.2
	variance := base * scoreVariance
	score := base + rng.InRange(s.src, -variance, variance)

	score = math.Max(minScore, math.Min(maxScore, score))
	return int(math.Round(score))
}

// boxScore distributes the team's final points across players in
// proportion to their share of the team PPG, then rolls rebounds and
// assists off each player's averages. Every player scores at least 2.
func (s *Simulator) boxScore(players []GamePlayer, teamScore int) []models.BoxScoreLine {
	if len(players) == 0 {
		return nil
	}

	totalPPG := 0.0
	for _, p := range players {
		totalPPG += p.Stats.PPG
	}

	lines := make([]models.BoxScoreLine, 0, len(players))
	for _, p := range players {
		// All-zero lineups split the scoring load evenly.
		share := 1.0 / float64(len(players))
		if totalPPG > 0 {
			share = p.Stats.PPG / totalPPG
		}
		basePoints := float64(teamScore) * share

		points := int(math.Round(basePoints + rng.InRange(s.src, -3, 5)))
		if points < 2 {
			points = 2
		}

		rebounds := int(math.Round(p.Stats.RPG * rng.InRange(s.src, 0.7, 1.3)))
		if rebounds < 0 {
			rebounds = 0
		}
		assists := int(math.Round(p.Stats.APG * rng.InRange(s.src, 0.6, 1.2)))
		if assists < 0 {
			assists = 0
		}

		lines = append(lines, models.BoxScoreLine{
			CharacterName: p.CharacterName,
			PlayerName:    p.PlayerName,
			Number:        p.Number,
			Points:        points,
			Rebounds:      rebounds,
			Assists:       assists,
			Impact:        float64(points) + 0.5*float64(rebounds) + 0.8*float64(assists),
		})
	}
	return lines
}

// topImpact returns a pointer into boxScore at the line with the
// highest impact rating, or nil for an empty box score.
func topImpact(boxScore []models.BoxScoreLine) *models.BoxScoreLine {
	var mvp *models.BoxScoreLine
	for i := range boxScore {
		if mvp == nil || boxScore[i].Impact > mvp.Impact {
			mvp = &boxScore[i]
		}
	}
	return mvp
}
