package tenantdb

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/polyladder/server/business/domain/tenantbus"
)

type guildDB struct {
	ID            int64     `db:"guild_id"`
	Name          string    `db:"name"`
	CommandPrefix string    `db:"command_prefix"`
	Settings      []byte    `db:"settings"`
	CreatedAt     time.Time `db:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"`
}

func toDBGuild(bus tenantbus.Guild) (guildDB, error) {
	settings := bus.Settings
	if settings == nil {
		settings = map[string]string{}
	}

	data, err := json.Marshal(settings)
	if err != nil {
		return guildDB{}, fmt.Errorf("marshal settings: %w", err)
	}

	return guildDB{
		ID:            bus.ID,
		Name:          bus.Name,
		CommandPrefix: bus.CommandPrefix,
		Settings:      data,
		CreatedAt:     bus.CreatedAt.UTC(),
		UpdatedAt:     bus.UpdatedAt.UTC(),
	}, nil
}

func toBusGuild(db guildDB) (tenantbus.Guild, error) {
	settings := map[string]string{}
	if len(db.Settings) > 0 {
		if err := json.Unmarshal(db.Settings, &settings); err != nil {
			return tenantbus.Guild{}, fmt.Errorf("unmarshal settings: %w", err)
		}
	}

	return tenantbus.Guild{
		ID:            db.ID,
		Name:          db.Name,
		CommandPrefix: db.CommandPrefix,
		Settings:      settings,
		CreatedAt:     db.CreatedAt.In(time.Local),
		UpdatedAt:     db.UpdatedAt.In(time.Local),
	}, nil
}
