package store

import (
	"path/filepath"
	"testing"

	"github.com/obaflips/court-reads/internal/models"
)

func sampleTeam(name string) *SavedTeam {
	stats := models.DefaultStats()
	return &SavedTeam{
		Name:   name,
		Source: "draft",
		Lineup: []models.LineupSlot{
			{
				Book:      &models.Book{ID: "b1", Title: "The Final Empire", Rating: 5},
				Character: &models.Character{ID: "c1", Name: "Vin"},
				Player: &models.ResolvedPlayer{
					Player: models.Player{ID: "p1", Name: "Stephen Curry", Position: "PG"},
				},
				PlayerStats: &stats,
			},
		},
	}
}

// openStores returns every backend the test environment can run.
func openStores(t *testing.T) map[string]TeamStore {
	t.Helper()
	sqlite, err := NewSQLiteStore(filepath.Join(t.TempDir(), "teams.db"))
	if err != nil {
		t.Fatalf("open sqlite store: %v", err)
	}
	return map[string]TeamStore{
		"memory": NewMemoryStore(),
		"sqlite": sqlite,
	}
}

func TestTeamStoreRoundTrip(t *testing.T) {
	for name, s := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			defer s.Close()

			team := sampleTeam("The Midnight Wolves")
			if err := s.SaveTeam(team); err != nil {
				t.Fatalf("SaveTeam: %v", err)
			}
			if team.ID == "" {
				t.Fatal("SaveTeam should assign an ID")
			}

			got, err := s.GetTeam(team.ID)
			if err != nil {
				t.Fatalf("GetTeam: %v", err)
			}
			if got.Name != team.Name || got.Source != "draft" {
				t.Errorf("got %+v, want saved fields back", got)
			}
			if len(got.Lineup) != 1 || got.Lineup[0].Character.Name != "Vin" {
				t.Errorf("lineup did not survive the round trip: %+v", got.Lineup)
			}
			if got.Lineup[0].PlayerStats == nil || got.Lineup[0].PlayerStats.PPG != 15 {
				t.Errorf("player stats lost in persistence: %+v", got.Lineup[0].PlayerStats)
			}
		})
	}
}

func TestTeamStoreRecordResult(t *testing.T) {
	for name, s := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			defer s.Close()

			team := sampleTeam("The Ember Guard")
			if err := s.SaveTeam(team); err != nil {
				t.Fatalf("SaveTeam: %v", err)
			}

			for _, won := range []bool{true, true, false} {
				if err := s.RecordResult(team.ID, won); err != nil {
					t.Fatalf("RecordResult: %v", err)
				}
			}

			got, err := s.GetTeam(team.ID)
			if err != nil {
				t.Fatalf("GetTeam: %v", err)
			}
			if got.Wins != 2 || got.Losses != 1 {
				t.Errorf("record = %d-%d, want 2-1", got.Wins, got.Losses)
			}

			if err := s.RecordResult("missing", true); err != ErrNotFound {
				t.Errorf("RecordResult(missing) = %v, want ErrNotFound", err)
			}
		})
	}
}

func TestTeamStoreListAndDelete(t *testing.T) {
	for name, s := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			defer s.Close()

			first := sampleTeam("First Five")
			second := sampleTeam("Second Five")
			for _, team := range []*SavedTeam{first, second} {
				if err := s.SaveTeam(team); err != nil {
					t.Fatalf("SaveTeam: %v", err)
				}
			}

			teams, err := s.ListTeams()
			if err != nil {
				t.Fatalf("ListTeams: %v", err)
			}
			if len(teams) != 2 {
				t.Fatalf("listed %d teams, want 2", len(teams))
			}

			if err := s.DeleteTeam(first.ID); err != nil {
				t.Fatalf("DeleteTeam: %v", err)
			}
			if _, err := s.GetTeam(first.ID); err != ErrNotFound {
				t.Errorf("GetTeam(deleted) = %v, want ErrNotFound", err)
			}
			if err := s.DeleteTeam(first.ID); err != ErrNotFound {
				t.Errorf("double delete = %v, want ErrNotFound", err)
			}
		})
	}
}
