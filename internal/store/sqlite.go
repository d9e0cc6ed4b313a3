package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/obaflips/court-reads/internal/models"
)

// SQLiteStore implements TeamStore on a local SQLite file. Lineups
// are stored as a JSON column; there is no relational value in the
// individual slots.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}

	s := &SQLiteStore{db: db}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLiteStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS teams (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		source TEXT NOT NULL,
		lineup TEXT NOT NULL,
		wins INTEGER NOT NULL DEFAULT 0,
		losses INTEGER NOT NULL DEFAULT 0,
		created_at INTEGER NOT NULL
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

func (s *SQLiteStore) SaveTeam(team *SavedTeam) error {
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
		INSERT OR REPLACE INTO teams (id, name, source, lineup, wins, losses, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		team.ID, team.Name, team.Source, string(lineup),
		team.Wins, team.Losses, team.CreatedAt.Unix())
	return err
}

func (s *SQLiteStore) GetTeam(id string) (*SavedTeam, error) {
	row := s.db.QueryRow(`
		SELECT id, name, source, lineup, wins, losses, created_at
		FROM teams WHERE id = ?`, id)
	team, err := scanTeam(row.Scan)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	return team, err
}

func (s *SQLiteStore) ListTeams() ([]*SavedTeam, error) {
	rows, err := s.db.Query(`
		SELECT id, name, source, lineup, wins, losses, created_at
		FROM teams ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var teams []*SavedTeam
	for rows.Next() {
		team, err := scanTeam(rows.Scan)
		if err != nil {
			return nil, err
		}
		teams = append(teams, team)
	}
	return teams, rows.Err()
}

func (s *SQLiteStore) RecordResult(id string, won bool) error {
	column := "losses"
	if won {
		column = "wins"
	}
	res, err := s.db.Exec(
		fmt.Sprintf("UPDATE teams SET %s = %s + 1 WHERE id = ?", column, column), id)
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

func (s *SQLiteStore) DeleteTeam(id string) error {
	res, err := s.db.Exec(`DELETE FROM teams WHERE id = ?`, id)
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

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// scanTeam decodes one row regardless of whether it came from
// QueryRow or Rows.
func scanTeam(scan func(dest ...interface{}) error) (*SavedTeam, error) {
	var team SavedTeam
	var lineup string
	var createdAt int64

	if err := scan(&team.ID, &team.Name, &team.Source, &lineup,
		&team.Wins, &team.Losses, &createdAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(lineup), &team.Lineup); err != nil {
		return nil, fmt.Errorf("decode lineup for team %s: %w", team.ID, err)
	}
	if team.Lineup == nil {
		team.Lineup = []models.LineupSlot{}
	}
	team.CreatedAt = time.Unix(createdAt, 0)
	return &team, nil
}
