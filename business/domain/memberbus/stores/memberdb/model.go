package memberdb

import (
	"time"

	"github.com/google/uuid"
	"github.com/polyladder/server/business/domain/memberbus"
)

type gameIDDB struct {
	GameID uuid.UUID `db:"game_id"`
}

type memberDB struct {
	ID         uuid.UUID `db:"member_id"`
	ExternalID int64     `db:"external_id"`
	Name       string    `db:"name"`
	CreatedAt  time.Time `db:"created_at"`
	UpdatedAt  time.Time `db:"updated_at"`
}

func toBusMember(db memberDB) memberbus.Member {
	return memberbus.Member{
		ID:         db.ID,
		ExternalID: db.ExternalID,
		Name:       db.Name,
		CreatedAt:  db.CreatedAt.In(time.Local),
		UpdatedAt:  db.UpdatedAt.In(time.Local),
	}
}
