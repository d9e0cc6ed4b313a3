package lineup

import (
	"sort"
	"time"

	"github.com/obaflips/court-reads/internal/models"
)

// HallOfFame selects the opponent lineup: the five highest-rated books
// that have a drafted-comp character, rating descending with the more
// recently finished book winning ties. Each book sends its first pool
// character.
func HallOfFame(books []models.Book, pool []models.EnrichedCharacter) []models.LineupSlot {
	entries := leadEntries(books, pool)

	rated := entries[:0]
	for _, e := range entries {
		if e.book.Rating > 0 {
			rated = append(rated, e)
		}
	}

	sort.SliceStable(rated, func(i, j int) bool {
		a, b := rated[i].book, rated[j].book
		if a.Rating != b.Rating {
			return a.Rating > b.Rating
		}
		return finishedAt(a).After(finishedAt(b))
	})

	if len(rated) > LineupSize {
		rated = rated[:LineupSize]
	}
	lineup := make([]models.LineupSlot, 0, len(rated))
	for _, e := range rated {
		book := e.book
		lineup = append(lineup, slotFor(&book, e.lead))
	}
	return lineup
}

// finishedAt parses the spreadsheet's date column. Unparseable dates
// sort as the zero time, i.e. last among equal ratings.
func finishedAt(book models.Book) time.Time {
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, book.DateFinished); err == nil {
			return t
		}
	}
	return time.Time{}
}
