package gameapp

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/polyladder/server/app/sdk/errs"
	"github.com/polyladder/server/business/domain/gamebus"
	"github.com/polyladder/server/business/types/name"
)

// NewGame defines the payload for recording a new game. The sides carry the
// external ids of the players, grouped by side.
type NewGame struct {
	GameName string    `json:"game_name" validate:"required"`
	GuildID  int64     `json:"guild_id" validate:"required"`
	IsRanked bool      `json:"is_ranked"`
	IsMobile *bool     `json:"is_mobile"`
	Notes    string    `json:"notes"`
	Sides    [][]int64 `json:"sides_discord_ids" validate:"required,min=2,dive,min=1"`
}

// Decode implements the decoder interface.
func (app *NewGame) Decode(data []byte) error {
	return json.Unmarshal(data, app)
}

// Validate checks the data in the model is considered clean.
func (app NewGame) Validate() error {
	if err := errs.Check(app); err != nil {
		return fmt.Errorf("validate: %w", err)
	}

	return nil
}

func toBusNewGame(app NewGame) (gamebus.NewGame, error) {
	nme, err := name.Parse(app.GameName)
	if err != nil {
		return gamebus.NewGame{}, fmt.Errorf("parse name: %w", err)
	}

	// Mobile unless the caller says otherwise.
	isMobile := true
	if app.IsMobile != nil {
		isMobile = *app.IsMobile
	}

	return gamebus.NewGame{
		GuildID:  app.GuildID,
		Name:     nme,
		IsRanked: app.IsRanked,
		IsMobile: isMobile,
		Notes:    app.Notes,
		Sides:    app.Sides,
	}, nil
}

// =============================================================================

// CreatedGame is the response to a successful create.
type CreatedGame struct {
	GameID   string   `json:"game_id"`
	Warnings []string `json:"warnings,omitempty"`
}

// Encode implements the encoder interface.
func (app CreatedGame) Encode() ([]byte, string, error) {
	data, err := json.Marshal(app)
	return data, "application/json", err
}

func toAppCreatedGame(bus gamebus.Game, warnings []gamebus.Warning) CreatedGame {
	ws := make([]string, len(warnings))
	for i, w := range warnings {
		ws[i] = string(w)
	}

	return CreatedGame{
		GameID:   bus.ID.String(),
		Warnings: ws,
	}
}

// =============================================================================

// Player represents a participant on one side of a game.
type Player struct {
	ExternalID int64  `json:"external_id"`
	Name       string `json:"name"`
}

// Game represents information about an individual game.
type Game struct {
	ID        string     `json:"id"`
	GuildID   int64      `json:"guild_id"`
	Name      string     `json:"name"`
	IsRanked  bool       `json:"is_ranked"`
	IsMobile  bool       `json:"is_mobile"`
	Notes     string     `json:"notes,omitempty"`
	Sides     [][]Player `json:"sides"`
	CreatedAt string     `json:"created_at"`
	UpdatedAt string     `json:"updated_at"`
}

// Encode implements the encoder interface.
func (app Game) Encode() ([]byte, string, error) {
	data, err := json.Marshal(app)
	return data, "application/json", err
}

func toAppGame(bus gamebus.Game) Game {
	sides := make([][]Player, len(bus.Sides))
	for i, side := range bus.Sides {
		players := make([]Player, len(side))
		for j, p := range side {
			players[j] = Player{
				ExternalID: p.ExternalID,
				Name:       p.Name,
			}
		}
		sides[i] = players
	}

	return Game{
		ID:        bus.ID.String(),
		GuildID:   bus.GuildID,
		Name:      bus.Name.String(),
		IsRanked:  bus.IsRanked,
		IsMobile:  bus.IsMobile,
		Notes:     bus.Notes,
		Sides:     sides,
		CreatedAt: bus.CreatedAt.Format(time.RFC3339),
		UpdatedAt: bus.UpdatedAt.Format(time.RFC3339),
	}
}
