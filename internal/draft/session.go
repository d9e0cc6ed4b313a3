package draft

import (
	"errors"
	"fmt"
	"sync"

	"github.com/obaflips/court-reads/internal/models"
	"github.com/obaflips/court-reads/internal/rng"
)

// Phase is the draft session lifecycle state.
type Phase string

const (
	PhaseSetup    Phase = "setup"
	PhaseDrafting Phase = "drafting"
	PhaseComplete Phase = "complete"
)

// Draft shape: every team fills a 5-person lineup, one pick per round.
const (
	DefaultRounds = 5
	MaxRosterSize = 10
)

var (
	ErrNotDrafting    = errors.New("draft is not in progress")
	ErrAlreadyStarted = errors.New("draft already started")
	ErrNotUserTurn    = errors.New("not the user's turn")
	ErrNotAITurn      = errors.New("not an AI team's turn")
	ErrInvalidPick    = errors.New("pick violates position limits")
	ErrNotAvailable   = errors.New("character is not available")
)

// Team is one draft participant: the user or an AI personality.
type Team struct {
	Index       int          `json:"index"`
	Name        string       `json:"name"`
	IsUser      bool         `json:"isUser"`
	Personality *Personality `json:"personality,omitempty"`
}

// PickRecord is one committed pick in the draft history.
type PickRecord struct {
	Pick
	Character models.EnrichedCharacter `json:"character"`
	Team      Team                     `json:"team"`
}

// Session runs one draft from setup to completion. Picks are committed
// strictly one at a time under the session lock: the pool loses exactly
// one character, the acting team's roster gains it, and the history
// grows by one entry before the next pick can begin.
type Session struct {
	mu      sync.Mutex
	teams   []Team
	rounds  int
	order   []Pick
	index   int
	phase   Phase
	pool    []models.EnrichedCharacter
	rosters [][]models.EnrichedCharacter
	history []PickRecord
	src     rng.Source
}

// Snapshot is a read-only copy of session state for rendering.
type Snapshot struct {
	Phase     Phase                        `json:"phase"`
	Teams     []Team                       `json:"teams"`
	Order     []Pick                       `json:"order"`
	PickIndex int                          `json:"pickIndex"`
	OnClock   *Team                        `json:"onClock,omitempty"`
	Available []models.EnrichedCharacter   `json:"available"`
	Rosters   [][]models.EnrichedCharacter `json:"rosters"`
	History   []PickRecord                 `json:"history"`
}

// NewSession creates a session in the setup phase. The pool is copied;
// the caller's slice is not mutated by the draft.
func NewSession(teams []Team, pool []models.EnrichedCharacter, rounds int, src rng.Source) *Session {
	if rounds <= 0 {
		rounds = DefaultRounds
	}
	poolCopy := make([]models.EnrichedCharacter, len(pool))
	copy(poolCopy, pool)

	rosters := make([][]models.EnrichedCharacter, len(teams))
	for i := range rosters {
		rosters[i] = []models.EnrichedCharacter{}
	}

	return &Session{
		teams:   teams,
		rounds:  rounds,
		phase:   PhaseSetup,
		pool:    poolCopy,
		rosters: rosters,
		src:     src,
	}
}

// Start generates the snake order and begins drafting.
func (s *Session) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != PhaseSetup {
		return ErrAlreadyStarted
	}

	s.order = SnakeDraftOrder(len(s.teams), s.rounds)
	s.index = 0
	s.phase = PhaseDrafting
	return nil
}

// OnClock returns the pick and team currently up. ok is false outside
// the drafting phase.
func (s *Session) OnClock() (Pick, Team, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.onClockLocked()
}

func (s *Session) onClockLocked() (Pick, Team, bool) {
	if s.phase != PhaseDrafting || s.index >= len(s.order) {
		return Pick{}, Team{}, false
	}
	pick := s.order[s.index]
	return pick, s.teams[pick.TeamIndex], true
}

// MakeUserPick commits a pick chosen by the user. The character must be
// in the pool and legal under the position max caps.
func (s *Session) MakeUserPick(characterID string) (*PickRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	pick, team, ok := s.onClockLocked()
	if !ok {
		return nil, ErrNotDrafting
	}
	if !team.IsUser {
		return nil, ErrNotUserTurn
	}

	character, found := s.findAvailableLocked(characterID)
	if !found {
		return nil, fmt.Errorf("%w: %s", ErrNotAvailable, characterID)
	}
	if !IsValidPick(character, s.rosters[pick.TeamIndex], MaxRosterSize) {
		return nil, ErrInvalidPick
	}

	return s.commitLocked(pick, team, character), nil
}

// AutoPick commits a recommended pick for the user's team.
func (s *Session) AutoPick() (*PickRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	pick, team, ok := s.onClockLocked()
	if !ok {
		return nil, ErrNotDrafting
	}
	if !team.IsUser {
		return nil, ErrNotUserTurn
	}

	choice := RecommendedPick(s.pool, s.rosters[pick.TeamIndex], s.src)
	if choice == nil {
		return nil, ErrNotAvailable
	}

	return s.commitLocked(pick, team, *choice), nil
}

// AdvanceAI commits the current AI team's pick using its personality.
func (s *Session) AdvanceAI() (*PickRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	pick, team, ok := s.onClockLocked()
	if !ok {
		return nil, ErrNotDrafting
	}
	if team.IsUser || team.Personality == nil {
		return nil, ErrNotAITurn
	}

	choice := AIPick(*team.Personality, s.pool, s.rosters[pick.TeamIndex], s.src)
	if choice == nil {
		return nil, ErrNotAvailable
	}

	return s.commitLocked(pick, team, *choice), nil
}

// commitLocked applies one pick atomically: pool shrinks by one, the
// roster and history grow by one, and the position index advances.
// Reaching the end of the order completes the draft.
func (s *Session) commitLocked(pick Pick, team Team, character models.EnrichedCharacter) *PickRecord {
	for i := range s.pool {
		if s.pool[i].ID == character.ID {
			s.pool = append(s.pool[:i], s.pool[i+1:]...)
			break
		}
	}

	s.rosters[pick.TeamIndex] = append(s.rosters[pick.TeamIndex], character)

	record := PickRecord{Pick: pick, Character: character, Team: team}
	s.history = append(s.history, record)

	s.index++
	if s.index >= len(s.order) {
		s.phase = PhaseComplete
	}

	return &record
}

func (s *Session) findAvailableLocked(characterID string) (models.EnrichedCharacter, bool) {
	for _, c := range s.pool {
		if c.ID == characterID {
			return c, true
		}
	}
	return models.EnrichedCharacter{}, false
}

// Roster returns a copy of one team's roster.
func (s *Session) Roster(teamIndex int) []models.EnrichedCharacter {
	s.mu.Lock()
	defer s.mu.Unlock()

	if teamIndex < 0 || teamIndex >= len(s.rosters) {
		return nil
	}
	roster := make([]models.EnrichedCharacter, len(s.rosters[teamIndex]))
	copy(roster, s.rosters[teamIndex])
	return roster
}

// Phase returns the current lifecycle state.
func (s *Session) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

// State returns a deep-enough copy of the session for JSON rendering;
// mutating the snapshot never touches live draft state.
func (s *Session) State() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		Phase:     s.phase,
		Teams:     append([]Team{}, s.teams...),
		Order:     append([]Pick{}, s.order...),
		PickIndex: s.index,
		Available: append([]models.EnrichedCharacter{}, s.pool...),
		Rosters:   make([][]models.EnrichedCharacter, len(s.rosters)),
		History:   append([]PickRecord{}, s.history...),
	}
	for i, roster := range s.rosters {
		snap.Rosters[i] = append([]models.EnrichedCharacter{}, roster...)
	}
	if _, team, ok := s.onClockLocked(); ok {
		onClock := team
		snap.OnClock = &onClock
	}
	return snap
}
