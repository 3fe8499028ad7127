// Package gamebus provides business access to recorded games. Game creation
// resolves every proposed player against the membership universe before a
// single row is written, so the failure surface stays in front of the
// database.
package gamebus

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/polyladder/server/business/domain/identitybus"
	"github.com/polyladder/server/foundation/logger"
	"github.com/polyladder/server/foundation/otel"
)

var (
	ErrNotFound = errors.New("game not found")

	// ErrInvalid marks a game proposal the rules reject before any
	// resolution or persistence happens.
	ErrInvalid = errors.New("invalid game")
)

// Resolver defines the behavior required to resolve a proposed player to a
// live identity within the guild.
type Resolver interface {
	Resolve(ctx context.Context, guildID int64, memberID int64) (identitybus.Identity, error)
}

// Storer defines the behavior required by the gamebus to interact with the
// database. Create may report non-fatal warnings alongside success.
type Storer interface {
	Create(ctx context.Context, game Game) ([]Warning, error)
	UpdateNotes(ctx context.Context, gameID uuid.UUID, notes string) error
	QueryByID(ctx context.Context, gameID uuid.UUID) (Game, error)
}

// Core manages the set of APIs for game access.
type Core struct {
	log      *logger.Logger
	resolver Resolver
	storer   Storer
}

// NewCore constructs a core for game api access.
func NewCore(log *logger.Logger, resolver Resolver, storer Storer) *Core {
	return &Core{
		log:      log,
		resolver: resolver,
		storer:   storer,
	}
}

// Create validates the proposed game, resolves every player, and records the
// game. Resolution is sequential and fails on the first unresolvable player.
// Notes are attached as a second mutation after the create; a failure there
// surfaces as a warning, never as an error.
func (c *Core) Create(ctx context.Context, ng NewGame) (Game, []Warning, error) {
	ctx, span := otel.AddSpan(ctx, "business.gamebus.create")
	defer span.End()

	if err := validate(ng); err != nil {
		return Game{}, nil, err
	}

	sides := make([][]Player, len(ng.Sides))
	for sideNum, side := range ng.Sides {
		players := make([]Player, len(side))
		for pos, externalID := range side {
			idn, err := c.resolver.Resolve(ctx, ng.GuildID, externalID)
			if err != nil {
				return Game{}, nil, fmt.Errorf("resolve: externalID[%d]: %w", externalID, err)
			}

			players[pos] = Player{
				ExternalID: idn.ID,
				Name:       idn.Name,
			}
		}
		sides[sideNum] = players
	}

	// Resolution can take a while across many players. Don't write a
	// game nobody is waiting for.
	if err := ctx.Err(); err != nil {
		return Game{}, nil, fmt.Errorf("create: %w", err)
	}

	now := time.Now()
	game := Game{
		ID:        uuid.New(),
		GuildID:   ng.GuildID,
		Name:      ng.Name,
		IsRanked:  ng.IsRanked,
		IsMobile:  ng.IsMobile,
		Sides:     sides,
		CreatedAt: now,
		UpdatedAt: now,
	}

	warnings := sideWarnings(sides)

	storeWarnings, err := c.storer.Create(ctx, game)
	if err != nil {
		return Game{}, nil, fmt.Errorf("create: %w", err)
	}
	warnings = append(warnings, storeWarnings...)

	if ng.Notes != "" {
		if err := c.storer.UpdateNotes(ctx, game.ID, ng.Notes); err != nil {
			c.log.Error(ctx, "gamebus: attach notes", "gameID", game.ID, "err", err)
			warnings = append(warnings, WarnNotesNotSaved)
		} else {
			game.Notes = ng.Notes
		}
	}

	return game, warnings, nil
}

// QueryByID finds the game identified by the given id.
func (c *Core) QueryByID(ctx context.Context, gameID uuid.UUID) (Game, error) {
	ctx, span := otel.AddSpan(ctx, "business.gamebus.querybyid")
	defer span.End()

	game, err := c.storer.QueryByID(ctx, gameID)
	if err != nil {
		return Game{}, fmt.Errorf("query: gameID[%s]: %w", gameID, err)
	}

	return game, nil
}

func validate(ng NewGame) error {
	if len(ng.Sides) < 2 {
		return fmt.Errorf("a game needs at least 2 sides: %w", ErrInvalid)
	}

	seen := make(map[int64]struct{})
	for sideNum, side := range ng.Sides {
		if len(side) == 0 {
			return fmt.Errorf("side %d has no players: %w", sideNum+1, ErrInvalid)
		}
		for _, externalID := range side {
			if _, dup := seen[externalID]; dup {
				return fmt.Errorf("player %d appears more than once: %w", externalID, ErrInvalid)
			}
			seen[externalID] = struct{}{}
		}
	}

	return nil
}

func sideWarnings(sides [][]Player) []Warning {
	size := len(sides[0])
	for _, side := range sides[1:] {
		if len(side) != size {
			return []Warning{WarnUnevenSides}
		}
	}

	return nil
}
