// Package gamedb contains game related CRUD functionality. A game, its
// lineups, and the member rows they reference are written in a single
// transaction; notes live outside of it.
package gamedb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/polyladder/server/business/domain/gamebus"
	"github.com/polyladder/server/business/sdk/sqldb"
	"github.com/polyladder/server/foundation/logger"
)

// Store manages the set of APIs for game database access.
type Store struct {
	log *logger.Logger
	db  *sqlx.DB
}

// NewStore constructs the api for data access.
func NewStore(log *logger.Logger, db *sqlx.DB) *Store {
	return &Store{
		log: log,
		db:  db,
	}
}

// Create inserts a new game with its lineups into the database. Member rows
// are upserted so a player's latest known name wins. Reports a warning when
// the exact set of members has been recorded before in the guild.
func (s *Store) Create(ctx context.Context, game gamebus.Game) ([]gamebus.Warning, error) {
	var warnings []gamebus.Warning

	tran := func(tx sqlx.ExtContext) error {
		const qGame = `
		INSERT INTO games
			(game_id, guild_id, name, is_ranked, is_mobile, notes, created_at, updated_at)
		VALUES
			(:game_id, :guild_id, :name, :is_ranked, :is_mobile, :notes, :created_at, :updated_at)`

		if err := sqldb.NamedExecContext(ctx, s.log, tx, qGame, toDBGame(game)); err != nil {
			return fmt.Errorf("namedexeccontext: game: %w", err)
		}

		for sideNum, side := range game.Sides {
			for pos, player := range side {
				memberID, err := s.upsertMember(ctx, tx, player)
				if err != nil {
					return fmt.Errorf("upsert member: externalID[%d]: %w", player.ExternalID, err)
				}

				lineup := lineupDB{
					GameID:   game.ID,
					SideNum:  sideNum,
					Position: pos,
					MemberID: memberID,
				}

				const qLineup = `
				INSERT INTO lineups
					(game_id, side_num, position, member_id)
				VALUES
					(:game_id, :side_num, :position, :member_id)`

				if err := sqldb.NamedExecContext(ctx, s.log, tx, qLineup, lineup); err != nil {
					return fmt.Errorf("namedexeccontext: lineup: %w", err)
				}
			}
		}

		rematch, err := s.hasIdenticalLineup(ctx, tx, game.ID, game.GuildID)
		if err != nil {
			return fmt.Errorf("rematch check: %w", err)
		}
		if rematch {
			warnings = append(warnings, gamebus.WarnRematch)
		}

		return nil
	}

	if err := sqldb.WithinTran(ctx, s.log, s.db, tran); err != nil {
		return nil, fmt.Errorf("tran: %w", err)
	}

	return warnings, nil
}

// UpdateNotes replaces the free-text notes of an existing game. Runs outside
// of the create transaction on purpose.
func (s *Store) UpdateNotes(ctx context.Context, gameID uuid.UUID, notes string) error {
	data := struct {
		ID        uuid.UUID `db:"game_id"`
		Notes     string    `db:"notes"`
		UpdatedAt time.Time `db:"updated_at"`
	}{
		ID:        gameID,
		Notes:     notes,
		UpdatedAt: time.Now().UTC(),
	}

	const q = `
	UPDATE
		games
	SET
		notes = :notes,
		updated_at = :updated_at
	WHERE
		game_id = :game_id`

	if err := sqldb.NamedExecContext(ctx, s.log, s.db, q, data); err != nil {
		return fmt.Errorf("namedexeccontext: %w", err)
	}

	return nil
}

// QueryByID gets the specified game and its lineups from the database.
func (s *Store) QueryByID(ctx context.Context, gameID uuid.UUID) (gamebus.Game, error) {
	data := struct {
		ID uuid.UUID `db:"game_id"`
	}{
		ID: gameID,
	}

	const qGame = `
	SELECT
		game_id, guild_id, name, is_ranked, is_mobile, notes, created_at, updated_at
	FROM
		games
	WHERE
		game_id = :game_id`

	var dbGame gameDB
	if err := sqldb.NamedQueryStruct(ctx, s.log, s.db, qGame, data, &dbGame); err != nil {
		if errors.Is(err, sqldb.ErrDBNotFound) {
			return gamebus.Game{}, fmt.Errorf("db: %w", gamebus.ErrNotFound)
		}
		return gamebus.Game{}, fmt.Errorf("db: %w", err)
	}

	const qLineups = `
	SELECT
		l.side_num, l.position, m.external_id, m.name
	FROM
		lineups AS l
	JOIN
		members AS m ON m.member_id = l.member_id
	WHERE
		l.game_id = :game_id
	ORDER BY
		l.side_num, l.position`

	var dbPlayers []playerDB
	if err := sqldb.NamedQuerySlice(ctx, s.log, s.db, qLineups, data, &dbPlayers); err != nil {
		return gamebus.Game{}, fmt.Errorf("db: lineups: %w", err)
	}

	return toBusGame(dbGame, dbPlayers)
}

// upsertMember inserts the member row for a player or refreshes its name,
// returning the member's id either way.
func (s *Store) upsertMember(ctx context.Context, tx sqlx.ExtContext, player gamebus.Player) (uuid.UUID, error) {
	now := time.Now().UTC()

	data := struct {
		ID         uuid.UUID `db:"member_id"`
		ExternalID int64     `db:"external_id"`
		Name       string    `db:"name"`
		CreatedAt  time.Time `db:"created_at"`
		UpdatedAt  time.Time `db:"updated_at"`
	}{
		ID:         uuid.New(),
		ExternalID: player.ExternalID,
		Name:       player.Name,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	const q = `
	INSERT INTO members
		(member_id, external_id, name, created_at, updated_at)
	VALUES
		(:member_id, :external_id, :name, :created_at, :updated_at)
	ON CONFLICT ON CONSTRAINT uq_members_external_id DO UPDATE
	SET
		name = EXCLUDED.name,
		updated_at = EXCLUDED.updated_at
	RETURNING member_id`

	var row struct {
		ID uuid.UUID `db:"member_id"`
	}
	if err := sqldb.NamedQueryStruct(ctx, s.log, tx, q, data, &row); err != nil {
		return uuid.UUID{}, err
	}

	return row.ID, nil
}

// hasIdenticalLineup reports whether another game in the guild was recorded
// with exactly the same set of members.
func (s *Store) hasIdenticalLineup(ctx context.Context, tx sqlx.ExtContext, gameID uuid.UUID, guildID int64) (bool, error) {
	data := struct {
		GameID  uuid.UUID `db:"game_id"`
		GuildID int64     `db:"guild_id"`
	}{
		GameID:  gameID,
		GuildID: guildID,
	}

	const q = `
	SELECT
		COUNT(*) AS matches
	FROM (
		SELECT
			l.game_id
		FROM
			lineups AS l
		JOIN
			games AS g ON g.game_id = l.game_id
		WHERE
			g.guild_id = :guild_id AND l.game_id <> :game_id
		GROUP BY
			l.game_id
		HAVING
			ARRAY_AGG(l.member_id ORDER BY l.member_id) = (
				SELECT ARRAY_AGG(member_id ORDER BY member_id)
				FROM lineups
				WHERE game_id = :game_id
			)
	) AS identical`

	var row struct {
		Matches int `db:"matches"`
	}
	if err := sqldb.NamedQueryStruct(ctx, s.log, tx, q, data, &row); err != nil {
		return false, err
	}

	return row.Matches > 0, nil
}
