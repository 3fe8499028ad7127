// Package appbus provides business access to the API applications that are
// allowed to call the HTTP surface.
package appbus

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/polyladder/server/business/types/scope"
	"github.com/polyladder/server/foundation/logger"
	"github.com/polyladder/server/foundation/otel"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrNotFound              = errors.New("application not found")
	ErrUniqueID              = errors.New("application id is not unique")
	ErrAuthenticationFailure = errors.New("authentication failed")
)

// Storer defines the behavior required by the appbus to interact with the
// database.
type Storer interface {
	Create(ctx context.Context, app App) error
	QueryByID(ctx context.Context, appID string) (App, error)
}

// Core manages the set of APIs for application credential access.
type Core struct {
	log    *logger.Logger
	storer Storer
}

// NewCore constructs a core for application credential api access.
func NewCore(log *logger.Logger, storer Storer) *Core {
	return &Core{
		log:    log,
		storer: storer,
	}
}

// Create registers a new API application. The secret is stored only as a
// bcrypt hash.
func (c *Core) Create(ctx context.Context, na NewApp) (App, error) {
	ctx, span := otel.AddSpan(ctx, "business.appbus.create")
	defer span.End()

	hash, err := bcrypt.GenerateFromPassword([]byte(na.Secret), bcrypt.DefaultCost)
	if err != nil {
		return App{}, fmt.Errorf("generatefrompassword: %w", err)
	}

	app := App{
		ID:         na.ID,
		SecretHash: hash,
		Scopes:     na.Scopes,
		Enabled:    true,
		CreatedAt:  time.Now(),
	}

	if err := c.storer.Create(ctx, app); err != nil {
		return App{}, fmt.Errorf("create: %w", err)
	}

	return app, nil
}

// Authenticate resolves an application credential pair to the scope set it
// was granted. A credential either resolves to exactly one set or fails with
// ErrAuthenticationFailure; the caller never learns which part was wrong.
func (c *Core) Authenticate(ctx context.Context, appID string, secret string) (scope.Set, error) {
	ctx, span := otel.AddSpan(ctx, "business.appbus.authenticate")
	defer span.End()

	app, err := c.storer.QueryByID(ctx, appID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrAuthenticationFailure
		}
		return nil, fmt.Errorf("query: appID[%s]: %w", appID, err)
	}

	if !app.Enabled {
		return nil, ErrAuthenticationFailure
	}

	if err := bcrypt.CompareHashAndPassword(app.SecretHash, []byte(secret)); err != nil {
		return nil, ErrAuthenticationFailure
	}

	return app.Scopes, nil
}
