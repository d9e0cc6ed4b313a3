package store

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/obaflips/court-reads/internal/models"
)

// MemoryStore implements TeamStore with in-memory storage, the
// development default.
type MemoryStore struct {
	mu    sync.RWMutex
	teams map[string]*SavedTeam
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{teams: make(map[string]*SavedTeam)}
}

func (m *MemoryStore) SaveTeam(team *SavedTeam) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if team.ID == "" {
		team.ID = uuid.NewString()
	}
	if team.CreatedAt.IsZero() {
		team.CreatedAt = time.Now()
	}

	stored := *team
	stored.Lineup = append([]models.LineupSlot(nil), team.Lineup...)
	m.teams[team.ID] = &stored
	return nil
}

func (m *MemoryStore) GetTeam(id string) (*SavedTeam, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	team, ok := m.teams[id]
	if !ok {
		return nil, ErrNotFound
	}
	out := *team
	out.Lineup = append([]models.LineupSlot(nil), team.Lineup...)
	return &out, nil
}

func (m *MemoryStore) ListTeams() ([]*SavedTeam, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*SavedTeam, 0, len(m.teams))
	for _, team := range m.teams {
		t := *team
		t.Lineup = append([]models.LineupSlot(nil), team.Lineup...)
		out = append(out, &t)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (m *MemoryStore) RecordResult(id string, won bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	team, ok := m.teams[id]
	if !ok {
		return ErrNotFound
	}
	if won {
		team.Wins++
	} else {
		team.Losses++
	}
	return nil
}

func (m *MemoryStore) DeleteTeam(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.teams[id]; !ok {
		return ErrNotFound
	}
	delete(m.teams, id)
	return nil
}

func (m *MemoryStore) Close() error { return nil }
