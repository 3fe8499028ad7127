package auth_test

import (
	"context"
	"io"
	"testing"

	"github.com/polyladder/server/app/sdk/auth"
	"github.com/polyladder/server/business/domain/appbus"
	"github.com/polyladder/server/business/types/scope"
	"github.com/polyladder/server/foundation/logger"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type mockStorer struct {
	apps map[string]appbus.App
}

func (m *mockStorer) Create(ctx context.Context, app appbus.App) error {
	m.apps[app.ID] = app
	return nil
}

func (m *mockStorer) QueryByID(ctx context.Context, appID string) (appbus.App, error) {
	app, exists := m.apps[appID]
	if !exists {
		return appbus.App{}, appbus.ErrNotFound
	}
	return app, nil
}

func newTestAuth(t *testing.T) *auth.Auth {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("secret1"), bcrypt.MinCost)
	require.NoError(t, err)

	storer := &mockStorer{
		apps: map[string]appbus.App{
			"app1": {
				ID:         "app1",
				SecretHash: hash,
				Scopes:     scope.ParseSet("users:read games:read"),
				Enabled:    true,
			},
			"app2": {
				ID:         "app2",
				SecretHash: hash,
				Scopes:     scope.ParseSet("games:read"),
				Enabled:    false,
			},
		},
	}

	log := logger.New(io.Discard, logger.LevelInfo, "TEST", nil)

	return auth.New(auth.Config{
		Log:    log,
		AppBus: appbus.NewCore(log, storer),
	})
}

func TestAuthenticate(t *testing.T) {
	ath := newTestAuth(t)

	scopes, err := ath.Authenticate(context.Background(), "app1", "secret1")
	require.NoError(t, err)
	require.True(t, scopes.Equal(scope.ParseSet("users:read games:read")))
}

func TestAuthenticateWrongSecret(t *testing.T) {
	ath := newTestAuth(t)

	_, err := ath.Authenticate(context.Background(), "app1", "wrong")
	require.ErrorIs(t, err, auth.ErrUnauthenticated)
}

func TestAuthenticateUnknownApp(t *testing.T) {
	ath := newTestAuth(t)

	_, err := ath.Authenticate(context.Background(), "nobody", "secret1")
	require.ErrorIs(t, err, auth.ErrUnauthenticated, "unknown id and bad secret are indistinguishable")
}

func TestAuthenticateDisabledApp(t *testing.T) {
	ath := newTestAuth(t)

	_, err := ath.Authenticate(context.Background(), "app2", "secret1")
	require.ErrorIs(t, err, auth.ErrUnauthenticated)
}

func TestAuthorize(t *testing.T) {
	ath := newTestAuth(t)
	ctx := context.Background()

	granted := scope.ParseSet("users:read games:read")

	require.NoError(t, ath.Authorize(ctx, granted, scope.UsersRead))
	require.NoError(t, ath.Authorize(ctx, granted, scope.GamesRead))
	require.ErrorIs(t, ath.Authorize(ctx, granted, scope.GamesNew), auth.ErrForbidden)
	require.ErrorIs(t, ath.Authorize(ctx, nil, scope.UsersRead), auth.ErrForbidden)
}
