package gamedb

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/polyladder/server/business/domain/gamebus"
	"github.com/polyladder/server/business/types/name"
)

type gameDB struct {
	ID        uuid.UUID `db:"game_id"`
	GuildID   int64     `db:"guild_id"`
	Name      string    `db:"name"`
	IsRanked  bool      `db:"is_ranked"`
	IsMobile  bool      `db:"is_mobile"`
	Notes     string    `db:"notes"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

type lineupDB struct {
	GameID   uuid.UUID `db:"game_id"`
	SideNum  int       `db:"side_num"`
	Position int       `db:"position"`
	MemberID uuid.UUID `db:"member_id"`
}

type playerDB struct {
	SideNum    int    `db:"side_num"`
	Position   int    `db:"position"`
	ExternalID int64  `db:"external_id"`
	Name       string `db:"name"`
}

func toDBGame(bus gamebus.Game) gameDB {
	return gameDB{
		ID:        bus.ID,
		GuildID:   bus.GuildID,
		Name:      bus.Name.String(),
		IsRanked:  bus.IsRanked,
		IsMobile:  bus.IsMobile,
		Notes:     bus.Notes,
		CreatedAt: bus.CreatedAt.UTC(),
		UpdatedAt: bus.UpdatedAt.UTC(),
	}
}

func toBusGame(db gameDB, players []playerDB) (gamebus.Game, error) {
	nme, err := name.Parse(db.Name)
	if err != nil {
		return gamebus.Game{}, fmt.Errorf("parse name: %w", err)
	}

	var sides [][]gamebus.Player
	for _, p := range players {
		for p.SideNum >= len(sides) {
			sides = append(sides, nil)
		}
		sides[p.SideNum] = append(sides[p.SideNum], gamebus.Player{
			ExternalID: p.ExternalID,
			Name:       p.Name,
		})
	}

	return gamebus.Game{
		ID:        db.ID,
		GuildID:   db.GuildID,
		Name:      nme,
		IsRanked:  db.IsRanked,
		IsMobile:  db.IsMobile,
		Notes:     db.Notes,
		Sides:     sides,
		CreatedAt: db.CreatedAt.In(time.Local),
		UpdatedAt: db.UpdatedAt.In(time.Local),
	}, nil
}
