package fuzz

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/obaflips/court-reads/internal/handlers"
	"github.com/obaflips/court-reads/internal/lineup"
	"github.com/obaflips/court-reads/internal/logger"
	"github.com/obaflips/court-reads/internal/models"
	"github.com/obaflips/court-reads/internal/pubsub"
	"github.com/obaflips/court-reads/internal/rng"
	"github.com/obaflips/court-reads/internal/store"
)

func init() {
	logger.Init("error")
}

func newAPI() *handlers.APIHandlers {
	stats := models.Stats{PPG: 25, RPG: 6, APG: 5, SPG: 1.2, BPG: 0.6, PER: 22}
	var books []models.Book
	var chars []models.Character
	var players []models.ResolvedPlayer
	ids := []string{"c1", "c2", "c3", "c4", "c5", "c6"}
	names := []string{"Vin", "Kaz", "Kvothe", "Kaladin", "Jon", "Bilbo"}
	positions := []string{"PG", "PG", "SG", "PF", "SF", "C"}
	for i, id := range ids {
		bookID := "b" + id
		playerID := "p" + id
		books = append(books, models.Book{ID: bookID, Title: names[i] + "'s Book", Rating: 4, DateFinished: "2026-01-01"})
		chars = append(chars, models.Character{ID: id, Name: names[i], BookID: bookID, PlayerID: playerID})
		s := stats
		players = append(players, models.ResolvedPlayer{
			Player: models.Player{ID: playerID, Name: names[i] + " Comp", Position: positions[i]},
			Stats:  &s,
		})
	}
	pool := lineup.BuildPool(books, chars, players, nil)
	return handlers.NewAPIHandlers(books, pool, store.NewMemoryStore(), pubsub.New(), rng.New())
}

func fuzzPost(api http.HandlerFunc, path, data string) {
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(data))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	api(w, req)
}

// FuzzHTTPStartDraft fuzzes the draft start endpoint.
func FuzzHTTPStartDraft(f *testing.F) {
	f.Add(`{"teamName":"Shelf Squad","rounds":5,"userPosition":1}`)
	f.Add(`{"rounds":-1,"userPosition":99,"opponents":["analytics","bogus"]}`)
	f.Add(``)
	f.Add(`{not json`)

	f.Fuzz(func(t *testing.T, data string) {
		api := newAPI()
		fuzzPost(api.StartDraft, "/api/draft/start", data)
	})
}

// FuzzHTTPDraftPick fuzzes the user pick endpoint.
func FuzzHTTPDraftPick(f *testing.F) {
	f.Add(`{"sessionId":"abc","characterId":"c1"}`)
	f.Add(`{"sessionId":"","characterId":""}`)
	f.Add(`{"characterId":"c999"}`)

	f.Fuzz(func(t *testing.T, data string) {
		api := newAPI()
		fuzzPost(api.DraftPick, "/api/draft/pick", data)
	})
}

// FuzzHTTPQuickPick fuzzes the quick pick endpoint.
func FuzzHTTPQuickPick(f *testing.F) {
	f.Add(`{"characterIds":["c1","c2","c3","c4","c5"]}`)
	f.Add(`{"characterIds":["c1","c1","c1","c1","c1"],"enforcePositions":true}`)
	f.Add(`{"characterIds":[]}`)

	f.Fuzz(func(t *testing.T, data string) {
		api := newAPI()
		fuzzPost(api.QuickPick, "/api/lineup/quick-pick", data)
	})
}

// FuzzHTTPSimulate fuzzes the game simulation endpoint.
func FuzzHTTPSimulate(f *testing.F) {
	f.Add(`{"characterIds":["c1","c2","c3","c4","c5"],"teamName":"The Mist Walkers"}`)
	f.Add(`{"sessionId":"nope"}`)
	f.Add(`{"teamId":"missing"}`)

	f.Fuzz(func(t *testing.T, data string) {
		api := newAPI()
		fuzzPost(api.Simulate, "/api/simulate", data)
	})
}

// FuzzHTTPSaveTeam fuzzes the team save endpoint.
func FuzzHTTPSaveTeam(f *testing.F) {
	f.Add(`{"name":"Keepers","characterIds":["c1","c2","c3","c4","c5"]}`)
	f.Add(`{"name":"","source":"draft"}`)
	f.Add(`{"characterIds":["x"]}`)

	f.Fuzz(func(t *testing.T, data string) {
		api := newAPI()
		fuzzPost(api.SaveTeam, "/api/teams/save", data)
	})
}
