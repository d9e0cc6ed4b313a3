package lineup

import (
	"errors"
	"fmt"

	"github.com/obaflips/court-reads/internal/draft"
	"github.com/obaflips/court-reads/internal/models"
)

// LineupSize is the number of starters in a finalized lineup.
const LineupSize = 5

var ErrWrongSize = errors.New("lineup must have exactly 5 players")

// QuickPick builds a lineup straight from a hand-picked set of pool
// characters, the no-draft path. With enforcePositions set the
// selection must carry at least two guards and two forwards/centers.
func QuickPick(pool []models.EnrichedCharacter, characterIDs []string, enforcePositions bool) ([]models.LineupSlot, error) {
	if len(characterIDs) != LineupSize {
		return nil, ErrWrongSize
	}

	byID := make(map[string]models.EnrichedCharacter, len(pool))
	for _, ec := range pool {
		byID[ec.ID] = ec
	}

	picked := make([]models.EnrichedCharacter, 0, LineupSize)
	seen := make(map[string]struct{}, LineupSize)
	for _, id := range characterIDs {
		if _, dup := seen[id]; dup {
			return nil, fmt.Errorf("character %s selected twice", id)
		}
		seen[id] = struct{}{}
		ec, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("character %s is not in the pool", id)
		}
		picked = append(picked, ec)
	}

	if enforcePositions {
		if err := validatePositions(picked); err != nil {
			return nil, err
		}
	}

	lineup := make([]models.LineupSlot, 0, LineupSize)
	for _, ec := range picked {
		book := &models.Book{ID: ec.BookID, Title: ec.BookTitle, Rating: ec.BookRating}
		lineup = append(lineup, slotFor(book, ec))
	}
	return lineup, nil
}

// validatePositions enforces the two-guard, two-frontcourt minimum.
func validatePositions(picked []models.EnrichedCharacter) error {
	guards, frontcourt := 0, 0
	for _, ec := range picked {
		pos := ""
		if ec.Player != nil {
			pos = ec.Player.Position
		}
		if draft.IsGuard(pos) {
			guards++
		}
		if draft.IsFrontcourt(pos) {
			frontcourt++
		}
	}
	if guards < 2 {
		return fmt.Errorf("need at least 2 guards, you have %d", guards)
	}
	if frontcourt < 2 {
		return fmt.Errorf("need at least 2 forwards/centers, you have %d", frontcourt)
	}
	return nil
}
