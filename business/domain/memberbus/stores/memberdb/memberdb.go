// Package memberdb contains member related read functionality.
package memberdb

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/polyladder/server/business/domain/memberbus"
	"github.com/polyladder/server/business/sdk/sqldb"
	"github.com/polyladder/server/foundation/logger"
)

// Store manages the set of APIs for member database access.
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

// QueryByExternalID gets the member with the specified external id from the
// database.
func (s *Store) QueryByExternalID(ctx context.Context, externalID int64) (memberbus.Member, error) {
	data := struct {
		ExternalID int64 `db:"external_id"`
	}{
		ExternalID: externalID,
	}

	const q = `
	SELECT
		member_id, external_id, name, created_at, updated_at
	FROM
		members
	WHERE
		external_id = :external_id`

	var dbMbr memberDB
	if err := sqldb.NamedQueryStruct(ctx, s.log, s.db, q, data, &dbMbr); err != nil {
		if errors.Is(err, sqldb.ErrDBNotFound) {
			return memberbus.Member{}, fmt.Errorf("db: %w", memberbus.ErrNotFound)
		}
		return memberbus.Member{}, fmt.Errorf("db: %w", err)
	}

	return toBusMember(dbMbr), nil
}

// QueryGameIDs gets the ids of the games the member appears in, ordered by
// when the game was recorded.
func (s *Store) QueryGameIDs(ctx context.Context, memberID uuid.UUID) ([]uuid.UUID, error) {
	data := struct {
		MemberID uuid.UUID `db:"member_id"`
	}{
		MemberID: memberID,
	}

	const q = `
	SELECT
		l.game_id
	FROM
		lineups AS l
	JOIN
		games AS g ON g.game_id = l.game_id
	WHERE
		l.member_id = :member_id
	ORDER BY
		g.created_at`

	var rows []gameIDDB
	if err := sqldb.NamedQuerySlice(ctx, s.log, s.db, q, data, &rows); err != nil {
		return nil, fmt.Errorf("db: %w", err)
	}

	ids := make([]uuid.UUID, len(rows))
	for i, row := range rows {
		ids[i] = row.GameID
	}

	return ids, nil
}
