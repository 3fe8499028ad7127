// Package userapp maintains the app layer api for the user domain.
package userapp

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/polyladder/server/app/sdk/errs"
	"github.com/polyladder/server/app/sdk/mid"
	"github.com/polyladder/server/business/domain/memberbus"
	"github.com/polyladder/server/business/sdk/web"
	"github.com/polyladder/server/business/types/scope"
)

type app struct {
	memberBus *memberbus.Core
}

func newApp(memberBus *memberbus.Core) *app {
	return &app{
		memberBus: memberBus,
	}
}

// queryByExternalID returns the user known by the given external id. The
// game history is included only when the caller also holds games:read.
func (a *app) queryByExternalID(ctx context.Context, r *http.Request) web.Encoder {
	externalID, err := strconv.ParseInt(web.Param(r, "external_id"), 10, 64)
	if err != nil {
		return errs.NewFieldErrors("external_id", err)
	}

	mbr, err := a.memberBus.QueryByExternalID(ctx, externalID)
	if err != nil {
		if errors.Is(err, memberbus.ErrNotFound) {
			return errs.New(errs.NotFound, errors.New("user not found"))
		}
		return errs.Errorf(errs.InternalOnlyLog, "query: externalID[%d]: %s", externalID, err)
	}

	usr := toAppUser(mbr)

	scopes, err := mid.GetScopes(ctx)
	if err != nil {
		return errs.Errorf(errs.Internal, "scopes missing in context: %s", err)
	}

	if scopes.Has(scope.GamesRead) {
		gameIDs, err := a.memberBus.QueryGameIDs(ctx, mbr.ID)
		if err != nil {
			return errs.Errorf(errs.InternalOnlyLog, "query games: memberID[%s]: %s", mbr.ID, err)
		}

		games := make([]string, len(gameIDs))
		for i, id := range gameIDs {
			games[i] = id.String()
		}
		usr.Games = games
	}

	return usr
}
