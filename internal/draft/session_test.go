package draft

import (
	"errors"
	"fmt"
	"testing"

	"github.com/obaflips/court-reads/internal/models"
	"github.com/obaflips/court-reads/internal/rng"
)

func testTeams() []Team {
	analytics := AnalyticsNerd
	storyteller := Storyteller
	return []Team{
		{Index: 0, Name: "Your Team", IsUser: true},
		{Index: 1, Name: analytics.Name, Personality: &analytics},
		{Index: 2, Name: storyteller.Name, Personality: &storyteller},
	}
}

func testPool(size int) []models.EnrichedCharacter {
	positions := []string{"PG", "SG", "SF", "PF", "C"}
	pool := make([]models.EnrichedCharacter, size)
	for i := range pool {
		pool[i] = testCharacter(
			fmt.Sprintf("char-%d", i),
			fmt.Sprintf("Character %d", i),
			positions[i%len(positions)],
			3.5,
		)
	}
	return pool
}

func runDraft(t *testing.T, s *Session) {
	t.Helper()
	for s.Phase() == PhaseDrafting {
		_, team, ok := s.OnClock()
		if !ok {
			t.Fatal("drafting phase but nobody on the clock")
		}
		var err error
		if team.IsUser {
			_, err = s.AutoPick()
		} else {
			_, err = s.AdvanceAI()
		}
		if err != nil {
			t.Fatalf("pick failed: %v", err)
		}
	}
}

func TestSessionLifecycle(t *testing.T) {
	s := NewSession(testTeams(), testPool(20), DefaultRounds, rng.NewSeeded(3))

	if s.Phase() != PhaseSetup {
		t.Fatalf("new session phase %q, want setup", s.Phase())
	}
	if _, err := s.AutoPick(); !errors.Is(err, ErrNotDrafting) {
		t.Fatalf("pick before start returned %v, want ErrNotDrafting", err)
	}

	if err := s.Start(); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}
	if err := s.Start(); !errors.Is(err, ErrAlreadyStarted) {
		t.Fatalf("second Start() returned %v, want ErrAlreadyStarted", err)
	}

	runDraft(t, s)

	if s.Phase() != PhaseComplete {
		t.Fatalf("phase after final pick %q, want complete", s.Phase())
	}
	for i := 0; i < 3; i++ {
		if roster := s.Roster(i); len(roster) != DefaultRounds {
			t.Errorf("team %d finished with %d characters, want %d", i, len(roster), DefaultRounds)
		}
	}
	if _, err := s.AutoPick(); !errors.Is(err, ErrNotDrafting) {
		t.Errorf("pick after completion returned %v, want ErrNotDrafting", err)
	}
}

// After any sequence of picks, pool size plus roster sizes equals the
// initial pool, and no character appears twice.
func TestSessionConservation(t *testing.T) {
	initial := 20
	s := NewSession(testTeams(), testPool(initial), DefaultRounds, rng.NewSeeded(9))
	if err := s.Start(); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}
	runDraft(t, s)

	snap := s.State()
	total := len(snap.Available)
	seen := map[string]string{}
	for _, c := range snap.Available {
		seen[c.ID] = "pool"
	}
	for i, roster := range snap.Rosters {
		total += len(roster)
		for _, c := range roster {
			if where, dup := seen[c.ID]; dup {
				t.Errorf("character %s in roster %d also present in %s", c.ID, i, where)
			}
			seen[c.ID] = fmt.Sprintf("roster %d", i)
		}
	}

	if total != initial {
		t.Errorf("pool + rosters = %d characters, want %d", total, initial)
	}
	if len(snap.History) != 15 {
		t.Errorf("history has %d picks, want 15", len(snap.History))
	}
}

func TestSessionTurnEnforcement(t *testing.T) {
	s := NewSession(testTeams(), testPool(20), DefaultRounds, rng.NewSeeded(5))
	if err := s.Start(); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}

	// Pick 1 belongs to the user (team 0 in round 1).
	if _, err := s.AdvanceAI(); !errors.Is(err, ErrNotAITurn) {
		t.Errorf("AdvanceAI on the user's turn returned %v, want ErrNotAITurn", err)
	}

	if _, err := s.MakeUserPick("char-0"); err != nil {
		t.Fatalf("user pick failed: %v", err)
	}

	// Now an AI is on the clock.
	if _, err := s.MakeUserPick("char-1"); !errors.Is(err, ErrNotUserTurn) {
		t.Errorf("user pick on an AI turn returned %v, want ErrNotUserTurn", err)
	}
	if _, err := s.AutoPick(); !errors.Is(err, ErrNotUserTurn) {
		t.Errorf("auto pick on an AI turn returned %v, want ErrNotUserTurn", err)
	}
}

func TestSessionRejectsDraftedCharacter(t *testing.T) {
	s := NewSession(testTeams(), testPool(20), DefaultRounds, rng.NewSeeded(5))
	if err := s.Start(); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}

	if _, err := s.MakeUserPick("char-0"); err != nil {
		t.Fatalf("user pick failed: %v", err)
	}
	for i := 0; i < 4; i++ { // AI picks through round 2 back to the user
		if _, err := s.AdvanceAI(); err != nil {
			t.Fatalf("AI pick %d failed: %v", i, err)
		}
	}

	_, team, ok := s.OnClock()
	if !ok || !team.IsUser {
		t.Fatalf("expected the user back on the clock at pick 6")
	}
	if _, err := s.MakeUserPick("char-0"); !errors.Is(err, ErrNotAvailable) {
		t.Errorf("re-picking a drafted character returned %v, want ErrNotAvailable", err)
	}
}

func TestSessionStateSnapshotIsolation(t *testing.T) {
	s := NewSession(testTeams(), testPool(20), DefaultRounds, rng.NewSeeded(5))
	if err := s.Start(); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}

	snap := s.State()
	if snap.OnClock == nil || !snap.OnClock.IsUser {
		t.Fatal("expected the user on the clock at pick 1")
	}

	snap.Available = snap.Available[:0]
	snap.Rosters[0] = append(snap.Rosters[0], testPool(1)[0])

	fresh := s.State()
	if len(fresh.Available) != 20 {
		t.Errorf("snapshot mutation leaked into the session pool: %d characters", len(fresh.Available))
	}
	if len(fresh.Rosters[0]) != 0 {
		t.Errorf("snapshot mutation leaked into roster 0: %d characters", len(fresh.Rosters[0]))
	}
}
