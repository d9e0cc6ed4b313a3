// Package sim turns a finalized lineup into a simulated exhibition
// game against the Hall of Fame roster: a final score, two box scores,
// an MVP, and narrated highlights. Everything here is pure computation
// over in-memory records; randomness comes from an injected source.
package sim

import (
	"fmt"

	"github.com/obaflips/court-reads/internal/models"
)

// GamePlayer is the prepared shape the simulator works with: display
// attribution plus resolved per-game rates.
type GamePlayer struct {
	CharacterName string
	PlayerName    string
	Number        string
	Stats         models.Stats
}

// PrepareLineup converts lineup slots into game players, applying the
// display and stats defaults: unknown names, jersey "00", and the
// 15/5/3 fallback stat line.
func PrepareLineup(lineup []models.LineupSlot) []GamePlayer {
	players := make([]GamePlayer, 0, len(lineup))
	for _, slot := range lineup {
		p := GamePlayer{CharacterName: "Unknown", PlayerName: "Unknown", Number: "00"}
		if slot.Character != nil && slot.Character.Name != "" {
			p.CharacterName = slot.Character.Name
		}
		if slot.Player != nil {
			if slot.Player.Name != "" {
				p.PlayerName = slot.Player.Name
			}
			if slot.Player.Number != "" {
				p.Number = slot.Player.Number
			}
		}
		switch {
		case slot.PlayerStats != nil:
			p.Stats = *slot.PlayerStats
		case slot.Player != nil && slot.Player.Stats != nil:
			p.Stats = *slot.Player.Stats
		default:
			p.Stats = models.DefaultStats()
		}
		players = append(players, p)
	}
	return players
}

// TeamStats sums points, rebounds, and assists per game across the
// lineup. The result is a team total (the sum of individual averages),
// not a per-game mean.
func TeamStats(players []GamePlayer) models.TeamStats {
	total := models.TeamStats{}
	for _, p := range players {
		total.PPG += p.Stats.PPG
		total.RPG += p.Stats.RPG
		total.APG += p.Stats.APG
	}
	return total
}

// FormattedTeamStats is the one-decimal display rendering of a team
// stat line. Formatting only; no rounding feeds back into simulation.
type FormattedTeamStats struct {
	PPG string `json:"ppg"`
	RPG string `json:"rpg"`
	APG string `json:"apg"`
}

// FormatTeamStats renders each total to one decimal for display.
func FormatTeamStats(stats models.TeamStats) FormattedTeamStats {
	return FormattedTeamStats{
		PPG: fmt.Sprintf("%.1f", stats.PPG),
		RPG: fmt.Sprintf("%.1f", stats.RPG),
		APG: fmt.Sprintf("%.1f", stats.APG),
	}
}
