// Package tenantdb contains guild configuration related CRUD functionality.
package tenantdb

import (
	"context"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/polyladder/server/business/domain/tenantbus"
	"github.com/polyladder/server/business/sdk/sqldb"
	"github.com/polyladder/server/foundation/logger"
)

// Store manages the set of APIs for guild configuration database access.
type Store struct {
	log *logger.Logger
	db  sqlx.ExtContext
}

// NewStore constructs the api for data access.
func NewStore(log *logger.Logger, db *sqlx.DB) *Store {
	return &Store{
		log: log,
		db:  db,
	}
}

// Create inserts a new guild configuration into the database.
func (s *Store) Create(ctx context.Context, g tenantbus.Guild) error {
	const q = `
	INSERT INTO guilds
		(guild_id, name, command_prefix, settings, created_at, updated_at)
	VALUES
		(:guild_id, :name, :command_prefix, :settings, :created_at, :updated_at)`

	dbG, err := toDBGuild(g)
	if err != nil {
		return fmt.Errorf("todbguild: %w", err)
	}

	if err := sqldb.NamedExecContext(ctx, s.log, s.db, q, dbG); err != nil {
		return fmt.Errorf("namedexeccontext: %w", err)
	}

	return nil
}

// Update replaces a guild configuration in the database.
func (s *Store) Update(ctx context.Context, g tenantbus.Guild) error {
	const q = `
	UPDATE
		guilds
	SET
		name = :name,
		command_prefix = :command_prefix,
		settings = :settings,
		updated_at = :updated_at
	WHERE
		guild_id = :guild_id`

	dbG, err := toDBGuild(g)
	if err != nil {
		return fmt.Errorf("todbguild: %w", err)
	}

	if err := sqldb.NamedExecContext(ctx, s.log, s.db, q, dbG); err != nil {
		return fmt.Errorf("namedexeccontext: %w", err)
	}

	return nil
}

// QueryByID gets the specified guild configuration from the database.
func (s *Store) QueryByID(ctx context.Context, guildID int64) (tenantbus.Guild, error) {
	data := struct {
		ID int64 `db:"guild_id"`
	}{
		ID: guildID,
	}

	const q = `
	SELECT
		guild_id, name, command_prefix, settings, created_at, updated_at
	FROM
		guilds
	WHERE
		guild_id = :guild_id`

	var dbG guildDB
	if err := sqldb.NamedQueryStruct(ctx, s.log, s.db, q, data, &dbG); err != nil {
		if errors.Is(err, sqldb.ErrDBNotFound) {
			return tenantbus.Guild{}, fmt.Errorf("db: %w", tenantbus.ErrNotFound)
		}
		return tenantbus.Guild{}, fmt.Errorf("db: %w", err)
	}

	return toBusGuild(dbG)
}
