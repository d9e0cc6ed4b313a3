// Package nbastats resolves NBA season averages for player comps.
// Resolution order: cache, curated fallback table, the balldontlie
// API, and finally the league-average generic line. The provider
// never fails a lookup; the worst case is the generic line.
package nbastats

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/obaflips/court-reads/internal/logger"
	"github.com/obaflips/court-reads/internal/models"
)

const (
	defaultAPIBaseURL = "https://api.balldontlie.io/v1"
	defaultSeason     = 2023
)

// Provider resolves player stats. Resolved lines are mirrored into an
// in-memory snapshot so the warehouse sync can export them without
// re-hitting any source.
type Provider struct {
	httpClient *http.Client
	apiBaseURL string
	apiKey     string
	season     int
	cache      Cache

	mu       sync.RWMutex
	resolved map[string]models.Stats
}

// Option configures a Provider.
type Option func(*Provider)

// WithAPIKey enables authenticated balldontlie requests.
func WithAPIKey(key string) Option {
	return func(p *Provider) { p.apiKey = key }
}

// WithAPIBaseURL points the provider at an alternate endpoint, for tests.
func WithAPIBaseURL(u string) Option {
	return func(p *Provider) { p.apiBaseURL = u }
}

// WithSeason overrides the season queried for averages.
func WithSeason(season int) Option {
	return func(p *Provider) { p.season = season }
}

// NewProvider builds a provider over the given cache. A nil cache
// disables the cache layer (fallback table and API still apply).
func NewProvider(cache Cache, opts ...Option) *Provider {
	p := &Provider{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		apiBaseURL: defaultAPIBaseURL,
		season:     defaultSeason,
		cache:      cache,
		resolved:   make(map[string]models.Stats),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Resolve returns season stats for one player name. Lookups never
// fail; unknown players get the generic league-average line.
func (p *Provider) Resolve(ctx context.Context, playerName string) models.Stats {
	if p.cache != nil {
		if stats, err := p.cache.Get(ctx, playerName); err != nil {
			logger.Warn("Stats cache read failed", "player", playerName, "error", err)
		} else if stats != nil {
			p.remember(playerName, *stats)
			return *stats
		}
	}

	if stats, ok := lookupFallback(playerName); ok {
		if stats.PER == 0 {
			stats.PER = CalculatePER(stats)
		}
		p.remember(playerName, stats)
		return stats
	}

	if stats, err := p.fetchFromAPI(ctx, playerName); err != nil {
		logger.Warn("Stats API lookup failed", "player", playerName, "error", err)
	} else if stats != nil {
		if p.cache != nil {
			if err := p.cache.Set(ctx, playerName, *stats); err != nil {
				logger.Warn("Stats cache write failed", "player", playerName, "error", err)
			}
		}
		p.remember(playerName, *stats)
		return *stats
	}

	stats := models.DefaultStats()
	p.remember(playerName, stats)
	return stats
}

// ResolveAll attaches stats to every player, preserving order.
func (p *Provider) ResolveAll(ctx context.Context, players []models.Player) []models.ResolvedPlayer {
	out := make([]models.ResolvedPlayer, 0, len(players))
	for _, player := range players {
		stats := p.Resolve(ctx, player.Name)
		out = append(out, models.ResolvedPlayer{Player: player, Stats: &stats})
	}
	return out
}

// Snapshot copies every stat line resolved so far, for the warehouse
// export loop.
func (p *Provider) Snapshot() map[string]models.Stats {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make(map[string]models.Stats, len(p.resolved))
	for name, stats := range p.resolved {
		out[name] = stats
	}
	return out
}

func (p *Provider) remember(playerName string, stats models.Stats) {
	p.mu.Lock()
	p.resolved[playerName] = stats
	p.mu.Unlock()
}

type apiPlayer struct {
	ID int `json:"id"`
}

type apiSeasonAverages struct {
	Pts   float64 `json:"pts"`
	Reb   float64 `json:"reb"`
	Ast   float64 `json:"ast"`
	Stl   float64 `json:"stl"`
	Blk   float64 `json:"blk"`
	FGPct float64 `json:"fg_pct"`
}

// fetchFromAPI searches the player by name and pulls their season
// averages. Returns (nil, nil) when the player or their averages are
// simply absent.
func (p *Provider) fetchFromAPI(ctx context.Context, playerName string) (*models.Stats, error) {
	var search struct {
		Data []apiPlayer `json:"data"`
	}
	q := url.Values{"search": {playerName}}
	if err := p.getJSON(ctx, "/players?"+q.Encode(), &search); err != nil {
		return nil, err
	}
	if len(search.Data) == 0 {
		return nil, nil
	}

	var averages struct {
		Data []apiSeasonAverages `json:"data"`
	}
	path := fmt.Sprintf("/season_averages?season=%d&player_ids[]=%d", p.season, search.Data[0].ID)
	if err := p.getJSON(ctx, path, &averages); err != nil {
		return nil, err
	}
	if len(averages.Data) == 0 {
		return nil, nil
	}

	avg := averages.Data[0]
	stats := models.Stats{
		PPG:   avg.Pts,
		RPG:   avg.Reb,
		APG:   avg.Ast,
		SPG:   avg.Stl,
		BPG:   avg.Blk,
		FGPct: avg.FGPct,
	}
	stats.PER = CalculatePER(stats)
	return &stats, nil
}

func (p *Provider) getJSON(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.apiBaseURL+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if p.apiKey != "" {
		req.Header.Set("Authorization", p.apiKey)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("stats api: status %d for %s", resp.StatusCode, path)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
