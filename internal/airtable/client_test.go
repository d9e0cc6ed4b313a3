package airtable

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("Authorization = %q, want bearer token", got)
		}
		if !strings.HasPrefix(r.URL.Path, "/appTestBase/") {
			t.Errorf("path %q missing base ID", r.URL.Path)
		}

		table := strings.TrimPrefix(r.URL.Path, "/appTestBase/")
		w.Header().Set("Content-Type", "application/json")

		switch table {
		case "Books":
			if r.URL.Query().Get("sort[0][field]") != "Date Finished" {
				t.Errorf("Books missing date sort, query %q", r.URL.RawQuery)
			}
			json.NewEncoder(w).Encode(map[string]interface{}{
				"records": []map[string]interface{}{
					{
						"id": "recBook1",
						"fields": map[string]interface{}{
							"Title":         "The Final Empire",
							"Author":        "Brandon Sanderson",
							"Rating":        4.5,
							"Date Finished": "2026-01-15",
							"Characters":    []string{"recChar1", "recChar2"},
							"Series":        []string{"recSeries1"},
						},
					},
				},
			})
		case "Characters":
			json.NewEncoder(w).Encode(map[string]interface{}{
				"records": []map[string]interface{}{
					{
						"id": "recChar1",
						"fields": map[string]interface{}{
							"Name":    "Vin",
							"Tagline": "Mist-cloaked closer who takes over fourth quarters",
							"Book":    []string{"recBook1"},
							"Player":  []string{"recPlayer1"},
						},
					},
					{
						"id": "recChar2",
						"fields": map[string]interface{}{
							"Name": "Sazed",
							"Book": []string{"recBook1"},
						},
					},
				},
			})
		case "Players":
			json.NewEncoder(w).Encode(map[string]interface{}{
				"records": []map[string]interface{}{
					{
						"id": "recPlayer1",
						"fields": map[string]interface{}{
							"Name":     "Stephen Curry",
							"Number":   "30",
							"Position": "PG",
						},
					},
				},
			})
		case "Series":
			json.NewEncoder(w).Encode(map[string]interface{}{
				"records": []map[string]interface{}{
					{
						"id": "recSeries1",
						"fields": map[string]interface{}{
							"Name":        "Mistborn",
							"Total Books": float64(3),
						},
					},
				},
			})
		default:
			http.NotFound(w, r)
		}
	}))
}

func TestGetBooks(t *testing.T) {
	srv := newTestServer(t)
	defer srv.Close()

	client := NewWithBaseURL("test-key", "appTestBase", srv.URL)
	books, err := client.GetBooks(context.Background())
	if err != nil {
		t.Fatalf("GetBooks: %v", err)
	}
	if len(books) != 1 {
		t.Fatalf("got %d books, want 1", len(books))
	}

	b := books[0]
	if b.ID != "recBook1" || b.Title != "The Final Empire" || b.Rating != 4.5 {
		t.Errorf("unexpected book %+v", b)
	}
	if len(b.CharacterIDs) != 2 || b.SeriesID != "recSeries1" {
		t.Errorf("links not decoded: %+v", b)
	}
}

func TestGetAllDataLinks(t *testing.T) {
	srv := newTestServer(t)
	defer srv.Close()

	client := NewWithBaseURL("test-key", "appTestBase", srv.URL)
	data, err := client.GetAllData(context.Background())
	if err != nil {
		t.Fatalf("GetAllData: %v", err)
	}

	if len(data.Books) != 1 || len(data.Characters) != 2 ||
		len(data.Players) != 1 || len(data.Series) != 1 {
		t.Fatalf("unexpected table sizes: %d/%d/%d/%d",
			len(data.Books), len(data.Characters), len(data.Players), len(data.Series))
	}
	if data.Characters[0].PlayerID != "recPlayer1" {
		t.Errorf("character player link = %q, want recPlayer1", data.Characters[0].PlayerID)
	}
	if data.Characters[1].PlayerID != "" {
		t.Errorf("character without comp should have empty PlayerID, got %q", data.Characters[1].PlayerID)
	}
}

func TestFetchTablePagination(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Query().Get("offset") == "" {
			json.NewEncoder(w).Encode(map[string]interface{}{
				"records": []map[string]interface{}{{"id": "rec1", "fields": map[string]interface{}{"Name": "A"}}},
				"offset":  "page2",
			})
			return
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"records": []map[string]interface{}{{"id": "rec2", "fields": map[string]interface{}{"Name": "B"}}},
		})
	}))
	defer srv.Close()

	client := NewWithBaseURL("test-key", "appTestBase", srv.URL)
	chars, err := client.GetCharacters(context.Background())
	if err != nil {
		t.Fatalf("GetCharacters: %v", err)
	}
	if len(chars) != 2 || calls != 2 {
		t.Errorf("got %d records over %d calls, want 2 over 2", len(chars), calls)
	}
}

func TestFetchTableErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	client := NewWithBaseURL("test-key", "appTestBase", srv.URL)
	if _, err := client.GetPlayers(context.Background()); err == nil {
		t.Fatal("expected error on non-200 status")
	}
}
