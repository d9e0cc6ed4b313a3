// Package airtable reads the book-tracker base: Books, Characters,
// Players, and Series tables. The base is the system of record for
// everything except NBA season stats.
package airtable

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/oauth2"

	"github.com/obaflips/court-reads/internal/models"
)

const defaultBaseURL = "https://api.airtable.com/v0"

// Client talks to one Airtable base over its REST API. The bearer
// token rides on the underlying oauth2 transport.
type Client struct {
	httpClient *http.Client
	baseURL    string
	baseID     string
}

// New builds a client for the given base using a static bearer token.
func New(apiKey, baseID string) *Client {
	src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: apiKey})
	httpClient := oauth2.NewClient(context.Background(), src)
	httpClient.Timeout = 15 * time.Second
	return &Client{
		httpClient: httpClient,
		baseURL:    defaultBaseURL,
		baseID:     baseID,
	}
}

// NewWithBaseURL is New pointed at an alternate endpoint, for tests.
func NewWithBaseURL(apiKey, baseID, baseURL string) *Client {
	c := New(apiKey, baseID)
	c.baseURL = baseURL
	return c
}

type record struct {
	ID     string                 `json:"id"`
	Fields map[string]interface{} `json:"fields"`
}

type listResponse struct {
	Records []record `json:"records"`
	Offset  string   `json:"offset,omitempty"`
}

// sortSpec is one sort[i][field]/sort[i][direction] pair.
type sortSpec struct {
	Field     string
	Direction string
}

type fetchOptions struct {
	Sort       []sortSpec
	MaxRecords int
}

// fetchTable lists records from one table, following pagination
// offsets until the table is exhausted.
func (c *Client) fetchTable(ctx context.Context, table string, opts fetchOptions) ([]record, error) {
	var records []record
	offset := ""

	for {
		params := url.Values{}
		for i, s := range opts.Sort {
			dir := s.Direction
			if dir == "" {
				dir = "asc"
			}
			params.Set(fmt.Sprintf("sort[%d][field]", i), s.Field)
			params.Set(fmt.Sprintf("sort[%d][direction]", i), dir)
		}
		if opts.MaxRecords > 0 {
			params.Set("maxRecords", fmt.Sprintf("%d", opts.MaxRecords))
		}
		if offset != "" {
			params.Set("offset", offset)
		}

		u := fmt.Sprintf("%s/%s/%s?%s", c.baseURL, c.baseID, url.PathEscape(table), params.Encode())
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf("airtable %s: %w", table, err)
		}

		var page listResponse
		err = json.NewDecoder(resp.Body).Decode(&page)
		resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("airtable %s: status %d", table, resp.StatusCode)
		}
		if err != nil {
			return nil, fmt.Errorf("airtable %s: decode: %w", table, err)
		}

		records = append(records, page.Records...)
		if page.Offset == "" {
			break
		}
		offset = page.Offset
	}
	return records, nil
}

// GetBooks lists books, most recently finished first.
func (c *Client) GetBooks(ctx context.Context) ([]models.Book, error) {
	records, err := c.fetchTable(ctx, "Books", fetchOptions{
		Sort: []sortSpec{{Field: "Date Finished", Direction: "desc"}},
	})
	if err != nil {
		return nil, err
	}

	books := make([]models.Book, 0, len(records))
	for _, r := range records {
		books = append(books, models.Book{
			ID:             r.ID,
			Title:          str(r.Fields, "Title"),
			Author:         str(r.Fields, "Author"),
			Rating:         num(r.Fields, "Rating"),
			DateFinished:   str(r.Fields, "Date Finished"),
			SeriesPosition: str(r.Fields, "Series Position"),
			CoverURL:       str(r.Fields, "Cover URL"),
			PurchaseURL:    str(r.Fields, "Purchase URL"),
			CharacterIDs:   links(r.Fields, "Characters"),
			SeriesID:       firstLink(r.Fields, "Series"),
		})
	}
	return books, nil
}

func (c *Client) GetCharacters(ctx context.Context) ([]models.Character, error) {
	records, err := c.fetchTable(ctx, "Characters", fetchOptions{})
	if err != nil {
		return nil, err
	}

	chars := make([]models.Character, 0, len(records))
	for _, r := range records {
		chars = append(chars, models.Character{
			ID:          r.ID,
			Name:        str(r.Fields, "Name"),
			Description: str(r.Fields, "Description"),
			Tagline:     str(r.Fields, "Tagline"),
			BookID:      firstLink(r.Fields, "Book"),
			PlayerID:    firstLink(r.Fields, "Player"),
		})
	}
	return chars, nil
}

func (c *Client) GetPlayers(ctx context.Context) ([]models.Player, error) {
	records, err := c.fetchTable(ctx, "Players", fetchOptions{})
	if err != nil {
		return nil, err
	}

	players := make([]models.Player, 0, len(records))
	for _, r := range records {
		players = append(players, models.Player{
			ID:          r.ID,
			Name:        str(r.Fields, "Name"),
			Number:      str(r.Fields, "Number"),
			CurrentTeam: str(r.Fields, "Current Team"),
			Position:    str(r.Fields, "Position"),
			VideoURL:    str(r.Fields, "Video URL"),
		})
	}
	return players, nil
}

func (c *Client) GetSeries(ctx context.Context) ([]models.Series, error) {
	records, err := c.fetchTable(ctx, "Series", fetchOptions{})
	if err != nil {
		return nil, err
	}

	series := make([]models.Series, 0, len(records))
	for _, r := range records {
		series = append(series, models.Series{
			ID:         r.ID,
			Name:       str(r.Fields, "Name"),
			TeamName:   str(r.Fields, "Team Name"),
			TotalBooks: int(num(r.Fields, "Total Books")),
		})
	}
	return series, nil
}

// Data is the linked snapshot of the whole base.
type Data struct {
	Books      []models.Book
	Characters []models.Character
	Players    []models.Player
	Series     []models.Series
}

// GetAllData fetches all four tables concurrently.
func (c *Client) GetAllData(ctx context.Context) (*Data, error) {
	var data Data
	errs := make(chan error, 4)

	go func() { var err error; data.Books, err = c.GetBooks(ctx); errs <- err }()
	go func() { var err error; data.Characters, err = c.GetCharacters(ctx); errs <- err }()
	go func() { var err error; data.Players, err = c.GetPlayers(ctx); errs <- err }()
	go func() { var err error; data.Series, err = c.GetSeries(ctx); errs <- err }()

	for i := 0; i < 4; i++ {
		if err := <-errs; err != nil {
			return nil, err
		}
	}
	return &data, nil
}

func str(fields map[string]interface{}, key string) string {
	if v, ok := fields[key].(string); ok {
		return v
	}
	return ""
}

func num(fields map[string]interface{}, key string) float64 {
	if v, ok := fields[key].(float64); ok {
		return v
	}
	return 0
}

// links reads an Airtable linked-record field, a JSON array of IDs.
func links(fields map[string]interface{}, key string) []string {
	raw, ok := fields[key].([]interface{})
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func firstLink(fields map[string]interface{}, key string) string {
	if ids := links(fields, key); len(ids) > 0 {
		return ids[0]
	}
	return ""
}
