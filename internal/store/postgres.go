package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"
)

// PostgresStore implements TeamStore on PostgreSQL for multi-instance
// deployments. Schema mirrors the SQLite store with a JSONB lineup.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(dsn string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("connect postgres: %w", err)
	}

	s := &PostgresStore{db: db}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *PostgresStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS teams (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		source TEXT NOT NULL,
		lineup JSONB NOT NULL,
		wins INTEGER NOT NULL DEFAULT 0,
		losses INTEGER NOT NULL DEFAULT 0,
		created_at TIMESTAMPTZ NOT NULL
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

func (s *PostgresStore) SaveTeam(team *SavedTeam) error {
	if team.ID == "" {
		team.ID = uuid.NewString()
	}
	if team.CreatedAt.IsZero() {
		team.CreatedAt = time.Now()
	}

	lineup, err := json.Marshal(team.Lineup)
	if err != nil {
		return fmt.Errorf("marshal lineup: %w", err)
	}

	_, err = s.db.Exec(`
		INSERT INTO teams (id, name, source, lineup, wins, losses, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			source = EXCLUDED.source,
			lineup = EXCLUDED.lineup,
			wins = EXCLUDED.wins,
			losses = EXCLUDED.losses`,
		team.ID, team.Name, team.Source, string(lineup),
		team.Wins, team.Losses, team.CreatedAt)
	return err
}

func (s *PostgresStore) GetTeam(id string) (*SavedTeam, error) {
	row := s.db.QueryRow(`
		SELECT id, name, source, lineup, wins, losses, created_at
		FROM teams WHERE id = $1`, id)
	team, err := scanPostgresTeam(row.Scan)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	return team, err
}

func (s *PostgresStore) ListTeams() ([]*SavedTeam, error) {
	rows, err := s.db.Query(`
		SELECT id, name, source, lineup, wins, losses, created_at
		FROM teams ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var teams []*SavedTeam
	for rows.Next() {
		team, err := scanPostgresTeam(rows.Scan)
		if err != nil {
			return nil, err
		}
		teams = append(teams, team)
	}
	return teams, rows.Err()
}

func (s *PostgresStore) RecordResult(id string, won bool) error {
	column := "losses"
	if won {
		column = "wins"
	}
	res, err := s.db.Exec(
		fmt.Sprintf("UPDATE teams SET %s = %s + 1 WHERE id = $1", column, column), id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) DeleteTeam(id string) error {
	res, err := s.db.Exec(`DELETE FROM teams WHERE id = $1`, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) Close() error {
	return s.db.Close()
}

func scanPostgresTeam(scan func(dest ...interface{}) error) (*SavedTeam, error) {
	var team SavedTeam
	var lineup []byte

	if err := scan(&team.ID, &team.Name, &team.Source, &lineup,
		&team.Wins, &team.Losses, &team.CreatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(lineup, &team.Lineup); err != nil {
		return nil, fmt.Errorf("decode lineup for team %s: %w", team.ID, err)
	}
	return &team, nil
}
