// Package store persists finalized teams: the lineup a user locked
// in, its name, and its running exhibition record. Draft sessions in
// progress are memory-only and never stored.
package store

import (
	"errors"
	"time"

	"github.com/obaflips/court-reads/internal/models"
)

var ErrNotFound = errors.New("team not found")

// SavedTeam is one locked-in starting five.
type SavedTeam struct {
	ID        string              `json:"id"`
	Name      string              `json:"name"`
	Source    string              `json:"source"` // "draft" or "quick-pick"
	Lineup    []models.LineupSlot `json:"lineup"`
	Wins      int                 `json:"wins"`
	Losses    int                 `json:"losses"`
	CreatedAt time.Time           `json:"createdAt"`
}

// TeamStore is the persistence interface for saved teams.
type TeamStore interface {
	SaveTeam(team *SavedTeam) error
	GetTeam(id string) (*SavedTeam, error)
	ListTeams() ([]*SavedTeam, error)
	RecordResult(id string, won bool) error
	DeleteTeam(id string) error
	Close() error
}
