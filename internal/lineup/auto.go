package lineup

import (
	"sort"

	"github.com/obaflips/court-reads/internal/models"
)

// AutoLineups holds the three stat-sorted showcase fives.
type AutoLineups struct {
	AllNBA     []models.LineupSlot `json:"allNba"`
	AllOffense []models.LineupSlot `json:"allOffense"`
	AllDefense []models.LineupSlot `json:"allDefense"`
}

// bookEntry pairs a book with its lead character, the one showcased
// in auto lineups.
type bookEntry struct {
	book models.Book
	lead models.EnrichedCharacter
}

// Generate builds the All-NBA (by PER), All-Offense (by PPG), and
// All-Defense (by steals plus blocks) lineups. One entry per book,
// using the book's first pool character.
func Generate(books []models.Book, pool []models.EnrichedCharacter) AutoLineups {
	entries := leadEntries(books, pool)
	if len(entries) == 0 {
		return AutoLineups{}
	}

	return AutoLineups{
		AllNBA: topFive(entries, func(s models.Stats) float64 {
			return s.PER
		}),
		AllOffense: topFive(entries, func(s models.Stats) float64 {
			return s.PPG
		}),
		AllDefense: topFive(entries, func(s models.Stats) float64 {
			return s.SPG + s.BPG
		}),
	}
}

func leadEntries(books []models.Book, pool []models.EnrichedCharacter) []bookEntry {
	leadByBook := make(map[string]models.EnrichedCharacter, len(books))
	for _, ec := range pool {
		if _, ok := leadByBook[ec.BookID]; !ok {
			leadByBook[ec.BookID] = ec
		}
	}

	var entries []bookEntry
	for _, book := range books {
		if lead, ok := leadByBook[book.ID]; ok {
			entries = append(entries, bookEntry{book: book, lead: lead})
		}
	}
	return entries
}

func topFive(entries []bookEntry, metric func(models.Stats) float64) []models.LineupSlot {
	sorted := make([]bookEntry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return metric(statsOf(sorted[i].lead)) > metric(statsOf(sorted[j].lead))
	})

	if len(sorted) > LineupSize {
		sorted = sorted[:LineupSize]
	}
	lineup := make([]models.LineupSlot, 0, len(sorted))
	for _, e := range sorted {
		book := e.book
		lineup = append(lineup, slotFor(&book, e.lead))
	}
	return lineup
}
