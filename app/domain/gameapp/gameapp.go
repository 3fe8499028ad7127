// Package gameapp maintains the app layer api for the game domain.
package gameapp

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/polyladder/server/app/sdk/errs"
	"github.com/polyladder/server/business/domain/gamebus"
	"github.com/polyladder/server/business/domain/identitybus"
	"github.com/polyladder/server/business/sdk/web"
)

type app struct {
	gameBus *gamebus.Core
}

func newApp(gameBus *gamebus.Core) *app {
	return &app{
		gameBus: gameBus,
	}
}

// create records a new game with the proposed sides.
func (a *app) create(ctx context.Context, r *http.Request) web.Encoder {
	var app NewGame
	if err := web.Decode(r, &app); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	ng, err := toBusNewGame(app)
	if err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	game, warnings, err := a.gameBus.Create(ctx, ng)
	if err != nil {
		switch {
		case errors.Is(err, gamebus.ErrInvalid):
			return errs.New(errs.InvalidArgument, err)

		case errors.Is(err, identitybus.ErrGuildNotFound):
			return errs.Errorf(errs.NotFound, "guild not found by ID %d", ng.GuildID)

		case errors.Is(err, identitybus.ErrMemberNotFound):
			return errs.New(errs.NotFound, err)

		default:
			return errs.Errorf(errs.InternalOnlyLog, "create: game[%+v]: %s", app, err)
		}
	}

	return toAppCreatedGame(game, warnings)
}

// queryByID returns the game identified by the id in the path.
func (a *app) queryByID(ctx context.Context, r *http.Request) web.Encoder {
	gameID, err := uuid.Parse(web.Param(r, "game_id"))
	if err != nil {
		return errs.NewFieldErrors("game_id", err)
	}

	game, err := a.gameBus.QueryByID(ctx, gameID)
	if err != nil {
		if errors.Is(err, gamebus.ErrNotFound) {
			return errs.New(errs.NotFound, errors.New("game not found"))
		}
		return errs.Errorf(errs.InternalOnlyLog, "query: gameID[%s]: %s", gameID, err)
	}

	return toAppGame(game)
}
