package gamebus

import (
	"time"

	"github.com/google/uuid"
	"github.com/polyladder/server/business/types/name"
)

// Warning is a non-fatal note emitted while recording a game. Warnings ride
// alongside a successful result and never fail the operation.
type Warning string

const (
	WarnUnevenSides   Warning = "sides have uneven player counts"
	WarnRematch       Warning = "this exact matchup has been recorded before"
	WarnNotesNotSaved Warning = "game created but the notes could not be saved"
)

// Game represents an individual recorded game.
type Game struct {
	ID        uuid.UUID
	GuildID   int64
	Name      name.Name
	IsRanked  bool
	IsMobile  bool
	Notes     string
	Sides     [][]Player
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Player represents a resolved participant on one side of a game.
type Player struct {
	ExternalID int64
	Name       string
}

// NewGame contains information needed to record a new game. Sides hold the
// external ids of the proposed players, grouped by side.
type NewGame struct {
	GuildID  int64
	Name     name.Name
	IsRanked bool
	IsMobile bool
	Notes    string
	Sides    [][]int64
}
