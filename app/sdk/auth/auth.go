// Package auth provides authentication and authorization support for the
// HTTP surface. Callers present an application id and secret via HTTP Basic
// auth; a successful authentication yields the scope set granted to the
// application.
package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/polyladder/server/business/domain/appbus"
	"github.com/polyladder/server/business/types/scope"
	"github.com/polyladder/server/foundation/logger"
)

// Set of auth error variables.
var (
	ErrUnauthenticated = errors.New("incorrect app id or secret")
	ErrForbidden       = errors.New("attempted action is not allowed")
)

// Config represents information required to initialize auth.
type Config struct {
	Log    *logger.Logger
	AppBus *appbus.Core
}

// Auth is used to authenticate and authorize API applications.
type Auth struct {
	log    *logger.Logger
	appBus *appbus.Core
}

// New creates an Auth to support authentication/authorization.
func New(cfg Config) *Auth {
	return &Auth{
		log:    cfg.Log,
		appBus: cfg.AppBus,
	}
}

// Authenticate resolves the credential pair to its granted scope set. The
// caller never learns whether the id or the secret was wrong.
func (a *Auth) Authenticate(ctx context.Context, appID string, secret string) (scope.Set, error) {
	scopes, err := a.appBus.Authenticate(ctx, appID, secret)
	if err != nil {
		if errors.Is(err, appbus.ErrAuthenticationFailure) {
			a.log.Info(ctx, "auth: failed app authentication", "appID", appID)
			return nil, ErrUnauthenticated
		}
		return nil, fmt.Errorf("authenticate: appID[%s]: %w", appID, err)
	}

	a.log.Info(ctx, "auth: successful app authentication", "appID", appID)

	return scopes, nil
}

// Authorize checks that the granted scope set contains the required scope.
func (a *Auth) Authorize(ctx context.Context, granted scope.Set, required scope.Scope) error {
	if !granted.Has(required) {
		return fmt.Errorf("%w: scope %q not granted", ErrForbidden, required)
	}

	return nil
}
