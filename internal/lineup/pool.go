// Package lineup builds starting fives outside the draft flow: the
// character pool itself, quick-pick selections, stat-sorted auto
// lineups, and the Hall of Fame opponent.
package lineup

import (
	"github.com/obaflips/court-reads/internal/models"
)

// BuildPool enriches every character that has a player comp with its
// book context and resolved stats. Characters without a comp are not
// draftable and are dropped here. Pool order follows book order, so
// downstream "first character of the book" lookups stay stable.
func BuildPool(books []models.Book, characters []models.Character,
	players []models.ResolvedPlayer, series []models.Series) []models.EnrichedCharacter {

	playersByID := make(map[string]models.ResolvedPlayer, len(players))
	for _, p := range players {
		playersByID[p.ID] = p
	}
	seriesByID := make(map[string]models.Series, len(series))
	for _, s := range series {
		seriesByID[s.ID] = s
	}
	charsByBook := make(map[string][]models.Character, len(books))
	for _, c := range characters {
		charsByBook[c.BookID] = append(charsByBook[c.BookID], c)
	}

	var pool []models.EnrichedCharacter
	for _, book := range books {
		for _, char := range charsByBook[book.ID] {
			player, ok := playersByID[char.PlayerID]
			if !ok {
				continue
			}
			p := player
			ec := models.EnrichedCharacter{
				Character:  char,
				BookTitle:  book.Title,
				BookRating: book.Rating,
				Player:     &p,
			}
			if s, ok := seriesByID[book.SeriesID]; ok {
				ec.SeriesName = s.Name
			}
			pool = append(pool, ec)
		}
	}
	return pool
}

// slotFor builds the lineup slot for one enriched character.
func slotFor(book *models.Book, ec models.EnrichedCharacter) models.LineupSlot {
	slot := models.LineupSlot{
		Book:      book,
		Character: &ec.Character,
		Player:    ec.Player,
	}
	if ec.Player != nil && ec.Player.Stats != nil {
		slot.PlayerStats = ec.Player.Stats
	} else {
		stats := models.DefaultStats()
		slot.PlayerStats = &stats
	}
	return slot
}

// statsOf is the nil-safe stats accessor used by the sorters.
func statsOf(ec models.EnrichedCharacter) models.Stats {
	if ec.Player != nil && ec.Player.Stats != nil {
		return *ec.Player.Stats
	}
	return models.Stats{}
}
