package draft

// Pick is one slot in a precomputed draft order. Round and Number are
// 1-indexed; TeamIndex is the team on the clock.
type Pick struct {
	Round     int `json:"round"`
	Number    int `json:"pick"`
	TeamIndex int `json:"teamIndex"`
}

// SnakeDraftOrder generates the full pick sequence for numTeams over
// numRounds in snake order: ascending team index on even (0-indexed)
// rounds, descending on odd, so every team gets one early and one late
// pick across any two consecutive rounds. The sequence is computed once
// and never mutated; the draft's position is an index into it.
func SnakeDraftOrder(numTeams, numRounds int) []Pick {
	order := make([]Pick, 0, numTeams*numRounds)

	for round := 0; round < numRounds; round++ {
		for pick := 0; pick < numTeams; pick++ {
			teamIndex := pick
			if round%2 == 1 {
				teamIndex = numTeams - 1 - pick
			}
			order = append(order, Pick{
				Round:     round + 1,
				Number:    len(order) + 1,
				TeamIndex: teamIndex,
			})
		}
	}

	return order
}
