package mid

import (
	"context"
	"net/http"

	"github.com/polyladder/server/app/sdk/auth"
	"github.com/polyladder/server/app/sdk/errs"
	"github.com/polyladder/server/business/sdk/web"
	"github.com/polyladder/server/business/types/scope"
)

// Authorize checks that the authenticated application holds the required
// scope. Runs after Authenticate; a missing scope set means the route was
// wired without it.
func Authorize(ath *auth.Auth, required scope.Scope) web.MidFunc {
	m := func(next web.HandlerFunc) web.HandlerFunc {
		h := func(ctx context.Context, r *http.Request) web.Encoder {
			scopes, err := GetScopes(ctx)
			if err != nil {
				return errs.New(errs.Unauthenticated, err)
			}

			if err := ath.Authorize(ctx, scopes, required); err != nil {
				return errs.Errorf(errs.PermissionDenied, "not authorised for scope %s", required)
			}

			return next(ctx, r)
		}

		return h
	}

	return m
}
