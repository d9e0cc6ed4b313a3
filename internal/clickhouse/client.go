// Package clickhouse exports resolved season stat lines to a
// ClickHouse warehouse for offline analysis of draft value versus
// simulated performance. The draft and simulation paths never read
// from here; only the analysis endpoint does.
package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"

	"github.com/obaflips/court-reads/internal/models"
)

// Client wraps the warehouse connection.
type Client struct {
	conn driver.Conn
}

// NewClient connects to ClickHouse and verifies the connection.
func NewClient(addr, database, username, password string) (*Client, error) {
	conn, err := clickhouse.Open(&clickhouse.Options{
		Addr: []string{addr},
		Auth: clickhouse.Auth{
			Database: database,
			Username: username,
			Password: password,
		},
	})

	if err != nil {
		return nil, fmt.Errorf("failed to connect to ClickHouse: %w", err)
	}

	if err := conn.Ping(context.Background()); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping ClickHouse: %w", err)
	}

	return &Client{conn: conn}, nil
}

// EnsureSchema creates the stats table on first run.
func (c *Client) EnsureSchema(ctx context.Context) error {
	ddl := `
		CREATE TABLE IF NOT EXISTS player_season_stats (
			player_name String,
			ppg Float64,
			rpg Float64,
			apg Float64,
			spg Float64,
			bpg Float64,
			fg_pct Float64,
			per Float64,
			synced_at DateTime
		) ENGINE = ReplacingMergeTree(synced_at)
		ORDER BY player_name
	`
	return c.conn.Exec(ctx, ddl)
}

// SyncPlayerStats batch-inserts the current stat snapshot. Rows for
// the same player replace older ones on merge.
func (c *Client) SyncPlayerStats(ctx context.Context, stats map[string]models.Stats) error {
	if len(stats) == 0 {
		return nil
	}

	batch, err := c.conn.PrepareBatch(ctx, `
		INSERT INTO player_season_stats
		(player_name, ppg, rpg, apg, spg, bpg, fg_pct, per, synced_at)`)
	if err != nil {
		return fmt.Errorf("prepare stats batch: %w", err)
	}

	now := time.Now()
	for name, s := range stats {
		if err := batch.Append(name, s.PPG, s.RPG, s.APG, s.SPG, s.BPG, s.FGPct, s.PER, now); err != nil {
			return fmt.Errorf("append stats for %s: %w", name, err)
		}
	}
	return batch.Send()
}

// TopPerformers reads the warehouse back for the analysis endpoint:
// the highest-PER lines currently synced.
func (c *Client) TopPerformers(ctx context.Context, limit int) (map[string]float64, error) {
	query := `
		SELECT player_name, max(per) AS per
		FROM player_season_stats
		GROUP BY player_name
		ORDER BY per DESC
		LIMIT $1
	`
	rows, err := c.conn.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string]float64)
	for rows.Next() {
		var name string
		var per float64
		if err := rows.Scan(&name, &per); err != nil {
			return nil, err
		}
		out[name] = per
	}
	return out, nil
}

// Close closes the warehouse connection.
func (c *Client) Close() error {
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}
