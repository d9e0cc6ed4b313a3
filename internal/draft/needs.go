package draft

import "github.com/obaflips/court-reads/internal/models"

// PositionSlot describes the roster rule for one canonical position.
type PositionSlot struct {
	Label    string `json:"label"`
	Required int    `json:"required"`
	Max      int    `json:"max"`
}

// RosterPositions is the fixed requirement table: one of each core
// position required, two max, with FLEX soaking up the rest.
var RosterPositions = map[string]PositionSlot{
	PosPG:   {Label: "Point Guard", Required: 1, Max: 2},
	PosSG:   {Label: "Shooting Guard", Required: 1, Max: 2},
	PosSF:   {Label: "Small Forward", Required: 1, Max: 2},
	PosPF:   {Label: "Power Forward", Required: 1, Max: 2},
	PosC:    {Label: "Center", Required: 1, Max: 2},
	PosFlex: {Label: "Flex", Required: 0, Max: 4},
}

// corePositions is the evaluation order for positional needs, so the
// returned list is stable for equal priorities.
var corePositions = []string{PosPG, PosSG, PosSF, PosPF, PosC}

// PositionalNeed is an unmet roster requirement. Priority is the
// shortfall against the required count.
type PositionalNeed struct {
	Position string `json:"position"`
	Priority int    `json:"priority"`
}

func playerPosition(c models.EnrichedCharacter) string {
	if c.Player == nil {
		return ""
	}
	return c.Player.Position
}

func countCategory(roster []models.EnrichedCharacter, category string) int {
	n := 0
	for _, member := range roster {
		if PositionCategory(playerPosition(member)) == category {
			n++
		}
	}
	return n
}

// NeedsPosition reports whether the roster has room for another player
// at the given position's category, i.e. whether the category is still
// below its max. It says nothing about required minimums.
func NeedsPosition(roster []models.EnrichedCharacter, position string) bool {
	category := PositionCategory(position)
	slot, ok := RosterPositions[category]
	if !ok {
		slot = RosterPositions[PosFlex]
	}
	return countCategory(roster, category) < slot.Max
}

// PositionalNeeds returns the required positions the roster has not yet
// filled, highest shortfall first.
func PositionalNeeds(roster []models.EnrichedCharacter) []PositionalNeed {
	needs := []PositionalNeed{}
	for _, pos := range corePositions {
		slot := RosterPositions[pos]
		if count := countCategory(roster, pos); count < slot.Required {
			needs = append(needs, PositionalNeed{Position: pos, Priority: slot.Required - count})
		}
	}
	// Stable sort by descending priority; equal priorities keep the
	// PG..C evaluation order.
	for i := 1; i < len(needs); i++ {
		for j := i; j > 0 && needs[j].Priority > needs[j-1].Priority; j-- {
			needs[j], needs[j-1] = needs[j-1], needs[j]
		}
	}
	return needs
}
