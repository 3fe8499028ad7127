// Package appdb contains application credential related CRUD functionality.
package appdb

import (
	"context"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/polyladder/server/business/domain/appbus"
	"github.com/polyladder/server/business/sdk/sqldb"
	"github.com/polyladder/server/foundation/logger"
)

// Store manages the set of APIs for application database access.
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

// Create inserts a new application into the database.
func (s *Store) Create(ctx context.Context, app appbus.App) error {
	const q = `
	INSERT INTO applications
		(app_id, secret_hash, scopes, enabled, created_at)
	VALUES
		(:app_id, :secret_hash, :scopes, :enabled, :created_at)`

	if err := sqldb.NamedExecContext(ctx, s.log, s.db, q, toDBApp(app)); err != nil {
		var dupErr sqldb.ErrDBDuplicatedEntry
		if errors.As(err, &dupErr) {
			return fmt.Errorf("namedexeccontext: %w", appbus.ErrUniqueID)
		}
		return fmt.Errorf("namedexeccontext: %w", err)
	}

	return nil
}

// QueryByID gets the specified application from the database.
func (s *Store) QueryByID(ctx context.Context, appID string) (appbus.App, error) {
	data := struct {
		ID string `db:"app_id"`
	}{
		ID: appID,
	}

	const q = `
	SELECT
		app_id, secret_hash, scopes, enabled, created_at
	FROM
		applications
	WHERE
		app_id = :app_id`

	var dbApp appDB
	if err := sqldb.NamedQueryStruct(ctx, s.log, s.db, q, data, &dbApp); err != nil {
		if errors.Is(err, sqldb.ErrDBNotFound) {
			return appbus.App{}, fmt.Errorf("db: %w", appbus.ErrNotFound)
		}
		return appbus.App{}, fmt.Errorf("db: %w", err)
	}

	return toBusApp(dbApp), nil
}
