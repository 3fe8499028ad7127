package appdb

import (
	"time"

	"github.com/polyladder/server/business/domain/appbus"
	"github.com/polyladder/server/business/types/scope"
)

type appDB struct {
	ID         string    `db:"app_id"`
	SecretHash []byte    `db:"secret_hash"`
	Scopes     string    `db:"scopes"`
	Enabled    bool      `db:"enabled"`
	CreatedAt  time.Time `db:"created_at"`
}

func toDBApp(bus appbus.App) appDB {
	return appDB{
		ID:         bus.ID,
		SecretHash: bus.SecretHash,
		Scopes:     bus.Scopes.String(),
		Enabled:    bus.Enabled,
		CreatedAt:  bus.CreatedAt.UTC(),
	}
}

func toBusApp(db appDB) appbus.App {
	return appbus.App{
		ID:         db.ID,
		SecretHash: db.SecretHash,
		Scopes:     scope.ParseSet(db.Scopes),
		Enabled:    db.Enabled,
		CreatedAt:  db.CreatedAt.In(time.Local),
	}
}
