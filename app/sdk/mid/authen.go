package mid

import (
	"context"
	"errors"
	"net/http"

	"github.com/polyladder/server/app/sdk/auth"
	"github.com/polyladder/server/app/sdk/errs"
	"github.com/polyladder/server/business/sdk/web"
)

// Authenticate validates the HTTP Basic credentials in the request and binds
// the granted scope set to the context. Missing or bad credentials both
// surface as Unauthenticated; the errors middleware attaches the challenge
// header.
func Authenticate(ath *auth.Auth) web.MidFunc {
	m := func(next web.HandlerFunc) web.HandlerFunc {
		h := func(ctx context.Context, r *http.Request) web.Encoder {
			appID, secret, ok := r.BasicAuth()
			if !ok {
				return errs.New(errs.Unauthenticated, errors.New("missing basic auth credentials"))
			}

			scopes, err := ath.Authenticate(ctx, appID, secret)
			if err != nil {
				if errors.Is(err, auth.ErrUnauthenticated) {
					return errs.New(errs.Unauthenticated, err)
				}
				return errs.New(errs.Internal, err)
			}

			ctx = setAppID(ctx, appID)
			ctx = setScopes(ctx, scopes)

			return next(ctx, r)
		}

		return h
	}

	return m
}
