package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/obaflips/court-reads/internal/draft"
	"github.com/obaflips/court-reads/internal/lineup"
	"github.com/obaflips/court-reads/internal/logger"
	"github.com/obaflips/court-reads/internal/models"
	"github.com/obaflips/court-reads/internal/pubsub"
	"github.com/obaflips/court-reads/internal/rng"
	"github.com/obaflips/court-reads/internal/sim"
	"github.com/obaflips/court-reads/internal/store"
	"github.com/obaflips/court-reads/internal/teamname"
)

// APIHandlers contains all API handler methods. The draft pool, auto
// lineups, and hall of fame lineup are built once at startup from the
// reading log; they only change on restart.
type APIHandlers struct {
	books    []models.Book
	pool     []models.EnrichedCharacter
	auto     lineup.AutoLineups
	hof      []models.LineupSlot
	store    store.TeamStore
	pubsub   *pubsub.PubSub
	sim      *sim.Simulator
	namer    *teamname.Generator
	sessions *sessionManager
	src      rng.Source
}

// NewAPIHandlers creates a new API handlers instance.
func NewAPIHandlers(books []models.Book, pool []models.EnrichedCharacter, ts store.TeamStore, ps *pubsub.PubSub, src rng.Source) *APIHandlers {
	return &APIHandlers{
		books:    books,
		pool:     pool,
		auto:     lineup.Generate(books, pool),
		hof:      lineup.HallOfFame(books, pool),
		store:    ts,
		pubsub:   ps,
		sim:      sim.NewSimulator(src),
		namer:    teamname.NewGenerator(src),
		sessions: newSessionManager(),
		src:      src,
	}
}

// GetPool returns the full draft pool.
func (h *APIHandlers) GetPool(w http.ResponseWriter, r *http.Request) {
	logger.Debug("Getting draft pool")
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"pool":  h.pool,
		"count": len(h.pool),
	})
}

// GetAutoLineups returns the stat-derived All-NBA, All-Offense, and
// All-Defense lineups.
func (h *APIHandlers) GetAutoLineups(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(h.auto)
}

// GetHallOfFameLineup returns the opponent lineup built from the
// highest-rated finished books.
func (h *APIHandlers) GetHallOfFameLineup(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"lineup":    h.hof,
		"teamStats": sim.FormatTeamStats(sim.TeamStats(sim.PrepareLineup(h.hof))),
	})
}

// StartDraft creates a new draft session and begins it.
func (h *APIHandlers) StartDraft(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req struct {
		TeamName     string   `json:"teamName"`
		Rounds       int      `json:"rounds"`
		UserPosition int      `json:"userPosition"`
		Opponents    []string `json:"opponents"`
	}
	// An empty body means all defaults.
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	opponents := make([]draft.Personality, 0, len(req.Opponents))
	for _, id := range req.Opponents {
		p, ok := draft.PersonalityByID(id)
		if !ok {
			http.Error(w, fmt.Sprintf("unknown personality: %s", id), http.StatusBadRequest)
			return
		}
		opponents = append(opponents, p)
	}
	if len(opponents) == 0 {
		opponents = append(opponents, draft.Personalities...)
	}

	userPosition := req.UserPosition
	if userPosition <= 0 || userPosition > len(opponents)+1 {
		userPosition = 1 + h.src.Intn(len(opponents)+1)
	}

	teamName := req.TeamName
	if teamName == "" {
		teamName = "Your Team"
	}

	teams := make([]draft.Team, 0, len(opponents)+1)
	oppIdx := 0
	for i := 0; i < len(opponents)+1; i++ {
		if i == userPosition-1 {
			teams = append(teams, draft.Team{Index: i, Name: teamName, IsUser: true})
			continue
		}
		p := opponents[oppIdx]
		oppIdx++
		teams = append(teams, draft.Team{Index: i, Name: p.Name, Personality: &p})
	}

	rounds := req.Rounds
	if rounds <= 0 {
		rounds = draft.DefaultRounds
	}
	if rounds > draft.MaxRosterSize {
		rounds = draft.MaxRosterSize
	}
	// Every pick must be fillable from the pool.
	if max := len(h.pool) / len(teams); rounds > max {
		rounds = max
	}
	if rounds == 0 {
		http.Error(w, "not enough characters in the pool for this many teams", http.StatusBadRequest)
		return
	}

	session := draft.NewSession(teams, h.pool, rounds, h.src)
	if err := session.Start(); err != nil {
		logger.Error("Failed to start draft", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	live := h.sessions.add(session, userPosition-1)
	logger.Info("Draft started", "session_id", live.ID, "teams", len(teams), "rounds", rounds)
	h.pubsub.Publish(pubsub.DraftStartEvent(live.ID, len(teams), rounds))

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"sessionId": live.ID,
		"state":     session.State(),
	})
}

// GetDraftState returns the current state of one draft session.
func (h *APIHandlers) GetDraftState(w http.ResponseWriter, r *http.Request) {
	live, ok := h.sessions.get(r.URL.Query().Get("session"))
	if !ok {
		http.Error(w, "session not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(live.Session.State())
}

// DraftPick handles the user's character selection.
func (h *APIHandlers) DraftPick(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req struct {
		SessionID   string `json:"sessionId"`
		CharacterID string `json:"characterId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("Failed to decode draft pick request", "error", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	live, ok := h.sessions.get(req.SessionID)
	if !ok {
		http.Error(w, "session not found", http.StatusNotFound)
		return
	}

	logger.Info("Drafting character", "session_id", req.SessionID, "character_id", req.CharacterID)
	record, err := live.Session.MakeUserPick(req.CharacterID)
	if err != nil {
		logger.Error("Failed to draft character", "error", err, "character_id", req.CharacterID)
		http.Error(w, err.Error(), pickStatus(err))
		return
	}

	h.publishPick(live, record)
	h.respondPick(w, live, record)
}

// AutoPick commits a recommended pick for the user's team.
func (h *APIHandlers) AutoPick(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req struct {
		SessionID string `json:"sessionId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	live, ok := h.sessions.get(req.SessionID)
	if !ok {
		http.Error(w, "session not found", http.StatusNotFound)
		return
	}

	record, err := live.Session.AutoPick()
	if err != nil {
		http.Error(w, err.Error(), pickStatus(err))
		return
	}

	h.publishPick(live, record)
	h.respondPick(w, live, record)
}

// AdvanceAI commits the next AI team's pick.
func (h *APIHandlers) AdvanceAI(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req struct {
		SessionID string `json:"sessionId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	live, ok := h.sessions.get(req.SessionID)
	if !ok {
		http.Error(w, "session not found", http.StatusNotFound)
		return
	}

	record, err := live.Session.AdvanceAI()
	if err != nil {
		http.Error(w, err.Error(), pickStatus(err))
		return
	}

	h.publishPick(live, record)
	h.respondPick(w, live, record)
}

// ResetDraft discards a draft session.
func (h *APIHandlers) ResetDraft(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req struct {
		SessionID string `json:"sessionId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	logger.Info("Resetting draft", "session_id", req.SessionID)
	h.sessions.remove(req.SessionID)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]bool{"ok": true})
}

// QuickPick validates a hand-picked starting five and returns the
// finished lineup with its aggregate stats.
func (h *APIHandlers) QuickPick(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req struct {
		CharacterIDs     []string `json:"characterIds"`
		EnforcePositions bool     `json:"enforcePositions"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	slots, err := lineup.QuickPick(h.pool, req.CharacterIDs, req.EnforcePositions)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"lineup":    slots,
		"teamStats": sim.FormatTeamStats(sim.TeamStats(sim.PrepareLineup(slots))),
	})
}

// Simulate runs one exhibition game against the Hall of Fame lineup.
// Results are returned, never stored; hit the endpoint again for a
// rematch.
func (h *APIHandlers) Simulate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req struct {
		SessionID    string   `json:"sessionId"`
		TeamID       string   `json:"teamId"`
		CharacterIDs []string `json:"characterIds"`
		TeamName     string   `json:"teamName"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	userLineup, teamName, err := h.resolveLineup(req.SessionID, req.TeamID, req.CharacterIDs)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if req.TeamName != "" {
		teamName = req.TeamName
	}
	if teamName == "" {
		teamName = h.namer.Generate(userLineup)
	}

	logger.Info("Simulating game", "team_name", teamName, "players", len(userLineup))
	result := h.sim.Simulate(userLineup, h.hof, teamName)

	h.pubsub.Publish(pubsub.SimResultEvent(req.SessionID, result.UserScore, result.HOFScore, result.UserWon))

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

// TeamNameOptions generates candidate team names from a lineup's books.
func (h *APIHandlers) TeamNameOptions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req struct {
		SessionID    string   `json:"sessionId"`
		CharacterIDs []string `json:"characterIds"`
		Count        int      `json:"count"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	slots, _, err := h.resolveLineup(req.SessionID, "", req.CharacterIDs)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	count := req.Count
	if count <= 0 {
		count = 3
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"names": h.namer.Options(slots, count),
	})
}

// SaveTeam persists a finalized lineup under a name.
func (h *APIHandlers) SaveTeam(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req struct {
		Name         string   `json:"name"`
		Source       string   `json:"source"`
		SessionID    string   `json:"sessionId"`
		CharacterIDs []string `json:"characterIds"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	slots, _, err := h.resolveLineup(req.SessionID, "", req.CharacterIDs)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	source := req.Source
	if source == "" {
		if req.SessionID != "" {
			source = "draft"
		} else {
			source = "quick-pick"
		}
	}

	name := req.Name
	if name == "" {
		name = h.namer.Generate(slots)
	}

	team := &store.SavedTeam{
		Name:      name,
		Source:    source,
		Lineup:    slots,
		CreatedAt: time.Now(),
	}
	if err := h.store.SaveTeam(team); err != nil {
		logger.Error("Failed to save team", "error", err, "name", name)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	logger.Info("Team saved", "team_id", team.ID, "name", team.Name, "source", team.Source)
	h.pubsub.Publish(pubsub.Event{
		Type: pubsub.EventTeamSaved,
		Payload: map[string]interface{}{
			"teamId": team.ID,
			"name":   team.Name,
			"source": team.Source,
		},
	})

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(team)
}

// ListTeams returns all saved teams, newest first.
func (h *APIHandlers) ListTeams(w http.ResponseWriter, r *http.Request) {
	teams, err := h.store.ListTeams()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"teams": teams,
		"count": len(teams),
	})
}

// GetTeam returns one saved team by id.
func (h *APIHandlers) GetTeam(w http.ResponseWriter, r *http.Request) {
	team, err := h.store.GetTeam(r.URL.Query().Get("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(team)
}

// RecordResult records a win or loss against a saved team's record.
func (h *APIHandlers) RecordResult(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req struct {
		TeamID string `json:"teamId"`
		Won    bool   `json:"won"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.store.RecordResult(req.TeamID, req.Won); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]bool{"ok": true})
}

// DeleteTeam removes a saved team.
func (h *APIHandlers) DeleteTeam(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost && r.Method != http.MethodDelete {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req struct {
		TeamID string `json:"teamId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.store.DeleteTeam(req.TeamID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]bool{"ok": true})
}

// EventsSSE provides Server-Sent Events for realtime updates.
func (h *APIHandlers) EventsSSE(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")

	eventChan := h.pubsub.Subscribe()
	defer h.pubsub.Unsubscribe(eventChan)

	fmt.Fprintf(w, "data: {\"type\":\"connected\"}\n\n")
	if f, ok := w.(http.Flusher); ok {
		f.Flush()
	}

	for {
		select {
		case event := <-eventChan:
			data, _ := json.Marshal(event)
			fmt.Fprintf(w, "data: %s\n\n", data)
			if f, ok := w.(http.Flusher); ok {
				f.Flush()
			}
		case <-r.Context().Done():
			logger.Debug("SSE client disconnected")
			return
		case <-time.After(30 * time.Second):
			fmt.Fprintf(w, ": keepalive\n\n")
			if f, ok := w.(http.Flusher); ok {
				f.Flush()
			}
		}
	}
}

// Health reports liveness plus basic counts.
func (h *APIHandlers) Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":   "ok",
		"poolSize": len(h.pool),
		"books":    len(h.books),
	})
}

// resolveLineup builds a starting five from whichever source the
// request carried: an explicit character list, a completed draft
// session's user roster, or a saved team.
func (h *APIHandlers) resolveLineup(sessionID, teamID string, characterIDs []string) ([]models.LineupSlot, string, error) {
	switch {
	case len(characterIDs) > 0:
		slots, err := lineup.QuickPick(h.pool, characterIDs, false)
		return slots, "", err
	case sessionID != "":
		live, ok := h.sessions.get(sessionID)
		if !ok {
			return nil, "", errors.New("session not found")
		}
		roster := live.Session.Roster(live.UserIndex)
		if len(roster) < lineup.LineupSize {
			return nil, "", fmt.Errorf("roster has %d players, need %d", len(roster), lineup.LineupSize)
		}
		slots := make([]models.LineupSlot, 0, lineup.LineupSize)
		for _, c := range roster[:lineup.LineupSize] {
			slots = append(slots, slotFromCharacter(c))
		}
		state := live.Session.State()
		return slots, state.Teams[live.UserIndex].Name, nil
	case teamID != "":
		team, err := h.store.GetTeam(teamID)
		if err != nil {
			return nil, "", err
		}
		return team.Lineup, team.Name, nil
	default:
		return nil, "", errors.New("no lineup source: provide characterIds, sessionId, or teamId")
	}
}

func slotFromCharacter(c models.EnrichedCharacter) models.LineupSlot {
	character := c.Character
	slot := models.LineupSlot{
		Book:      &models.Book{ID: c.BookID, Title: c.BookTitle, Rating: c.BookRating},
		Character: &character,
		Player:    c.Player,
	}
	if c.Player != nil && c.Player.Stats != nil {
		slot.PlayerStats = c.Player.Stats
	}
	return slot
}

func (h *APIHandlers) publishPick(live *liveSession, record *draft.PickRecord) {
	playerName := ""
	if record.Character.Player != nil {
		playerName = record.Character.Player.Name
	}
	h.pubsub.Publish(pubsub.DraftPickEvent(
		live.ID, record.Team.Name, record.Character.ID, record.Character.Name,
		record.Round, record.Number,
	))
	logger.Debug("Pick committed", "team", record.Team.Name, "character", record.Character.Name, "player", playerName)

	if live.Session.Phase() == draft.PhaseComplete {
		logger.Info("Draft complete", "session_id", live.ID)
		h.pubsub.Publish(pubsub.DraftCompleteEvent(live.ID))
	}
}

func (h *APIHandlers) respondPick(w http.ResponseWriter, live *liveSession, record *draft.PickRecord) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"pick":  record,
		"state": live.Session.State(),
	})
}

// pickStatus maps draft engine errors to HTTP statuses.
func pickStatus(err error) int {
	switch {
	case errors.Is(err, draft.ErrNotDrafting):
		return http.StatusConflict
	case errors.Is(err, draft.ErrNotUserTurn), errors.Is(err, draft.ErrNotAITurn):
		return http.StatusConflict
	case errors.Is(err, draft.ErrInvalidPick), errors.Is(err, draft.ErrNotAvailable):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
