package draft

import (
	"testing"

	"github.com/obaflips/court-reads/internal/models"
	"github.com/obaflips/court-reads/internal/rng"
)

func testCharacter(id, name, position string, bookRating float64) models.EnrichedCharacter {
	return models.EnrichedCharacter{
		Character:  models.Character{ID: id, Name: name},
		BookTitle:  "Test Book",
		BookRating: bookRating,
		Player: &models.ResolvedPlayer{
			Player: models.Player{ID: "p-" + id, Name: name + " Comp", Position: position},
			Stats:  &models.Stats{PPG: 20, RPG: 6, APG: 4, PER: 18},
		},
	}
}

func TestNeedsPositionMaxCap(t *testing.T) {
	roster := []models.EnrichedCharacter{
		testCharacter("1", "A", "PG", 4),
		testCharacter("2", "B", "PG", 4),
	}

	if NeedsPosition(roster, "PG") {
		t.Error("PG at max of 2 should not be needed")
	}
	if !NeedsPosition(roster, "C") {
		t.Error("empty C slot should be needed")
	}
}

func TestPositionalNeedsSortedByShortfall(t *testing.T) {
	roster := []models.EnrichedCharacter{
		testCharacter("1", "A", "PG", 4),
		testCharacter("2", "B", "SF", 4),
	}

	needs := PositionalNeeds(roster)
	if len(needs) != 3 {
		t.Fatalf("expected 3 unmet positions, got %d", len(needs))
	}
	for _, need := range needs {
		if need.Position == PosPG || need.Position == PosSF {
			t.Errorf("filled position %s reported as a need", need.Position)
		}
		if need.Priority != 1 {
			t.Errorf("position %s priority %d, want 1", need.Position, need.Priority)
		}
	}
}

// A candidate filling an unmet requirement must outscore an otherwise
// identical candidate at a maxed-out position under the balanced strategy.
func TestBalancedStrategyNeedBonus(t *testing.T) {
	roster := []models.EnrichedCharacter{
		testCharacter("1", "A", "PG", 4),
		testCharacter("2", "B", "PG", 4),
	}

	center := testCharacter("3", "Needed", "C", 4)
	extraGuard := testCharacter("4", "Redundant", "PG", 4)

	src := rng.NewSeeded(1)
	centerScore := scoreForBalanced(center, roster, src)
	guardScore := scoreForBalanced(extraGuard, roster, src)

	if centerScore <= guardScore {
		t.Errorf("center filling a need scored %.1f, maxed guard scored %.1f; want center strictly higher",
			centerScore, guardScore)
	}
}

func TestStorytellerSeriesStacking(t *testing.T) {
	seriesmate := testCharacter("1", "A", "PG", 4)
	seriesmate.SeriesName = "The Saga"
	roster := []models.EnrichedCharacter{seriesmate}

	inSeries := testCharacter("2", "B", "SG", 4)
	inSeries.SeriesName = "The Saga"
	standalone := testCharacter("3", "C", "SG", 4)

	src := rng.NewSeeded(1)
	if a, b := scoreForStoryteller(inSeries, roster, src), scoreForStoryteller(standalone, roster, src); a <= b {
		t.Errorf("series character scored %.1f, standalone %.1f; want series strictly higher", a, b)
	}
}

func TestAIPickEmptyPool(t *testing.T) {
	if pick := AIPick(AnalyticsNerd, nil, nil, rng.NewSeeded(1)); pick != nil {
		t.Errorf("expected nil pick from empty pool, got %v", pick.Name)
	}
}

func TestAIPickComesFromTopThree(t *testing.T) {
	pool := []models.EnrichedCharacter{}
	for _, c := range []struct {
		id     string
		rating float64
		per    float64
	}{
		{"1", 5, 30}, {"2", 5, 28}, {"3", 4.5, 25}, {"4", 2, 8}, {"5", 1.5, 6},
	} {
		ch := testCharacter(c.id, "Char"+c.id, "PG", c.rating)
		ch.Player.Stats.PER = c.per
		pool = append(pool, ch)
	}

	top := map[string]bool{"1": true, "2": true, "3": true}
	src := rng.NewSeeded(42)
	for i := 0; i < 50; i++ {
		pick := AIPick(AnalyticsNerd, pool, nil, src)
		if pick == nil {
			t.Fatal("unexpected nil pick")
		}
		if !top[pick.ID] {
			t.Fatalf("iteration %d picked %s, outside the top 3 by analytics score", i, pick.ID)
		}
	}
}

func TestIsValidPick(t *testing.T) {
	fullRoster := make([]models.EnrichedCharacter, MaxRosterSize)
	for i := range fullRoster {
		fullRoster[i] = testCharacter(string(rune('a'+i)), "X", "FLEX", 3)
	}

	if IsValidPick(testCharacter("n", "New", "PG", 4), fullRoster, MaxRosterSize) {
		t.Error("pick into a full roster must be invalid regardless of character")
	}

	noPosition := testCharacter("n", "New", "", 4)
	noPosition.Player.Position = ""
	if !IsValidPick(noPosition, []models.EnrichedCharacter{}, MaxRosterSize) {
		t.Error("character without a position is always a valid flex pick")
	}

	roster := []models.EnrichedCharacter{
		testCharacter("1", "A", "PG", 4),
		testCharacter("2", "B", "PG", 4),
	}
	if IsValidPick(testCharacter("3", "C", "PG", 4), roster, MaxRosterSize) {
		t.Error("third PG against a max of 2 must be invalid")
	}
}

// Documents the permissive validation: nothing forces the required
// minimum of one player per core position, so a roster can legally
// finish without a center.
func TestIsValidPickDoesNotEnforceMinimums(t *testing.T) {
	roster := []models.EnrichedCharacter{
		testCharacter("1", "A", "PG", 4),
		testCharacter("2", "B", "SG", 4),
		testCharacter("3", "C", "SF", 4),
		testCharacter("4", "D", "PF", 4),
	}

	fifthGuard := testCharacter("5", "E", "SG", 4)
	if !IsValidPick(fifthGuard, roster, MaxRosterSize) {
		t.Error("second SG should be valid even though the roster still lacks a center")
	}
}

func TestRecommendedPickUsesBalancedStrategy(t *testing.T) {
	// With four core positions filled, the balanced strategy strongly
	// prefers the candidate covering the last unmet requirement.
	roster := []models.EnrichedCharacter{
		testCharacter("1", "A", "PG", 4),
		testCharacter("2", "B", "SG", 4),
		testCharacter("3", "C", "SF", 4),
		testCharacter("4", "D", "PF", 4),
	}
	pool := []models.EnrichedCharacter{
		testCharacter("5", "Guard", "SG", 3),
		testCharacter("6", "Center", "C", 3),
		testCharacter("7", "Wing", "SF", 3),
	}

	hits := 0
	src := rng.NewSeeded(7)
	for i := 0; i < 40; i++ {
		pick := RecommendedPick(pool, roster, src)
		if pick == nil {
			t.Fatal("unexpected nil recommendation")
		}
		if pick.ID == "6" {
			hits++
		}
	}
	// The top-weighted slot carries 0.6 of the mass; the center should
	// win well over half the trials.
	if hits < 20 {
		t.Errorf("center recommended only %d/40 times; balanced strategy should favor the unmet need", hits)
	}
}
