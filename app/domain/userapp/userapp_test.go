package userapp_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/polyladder/server/app/domain/userapp"
	"github.com/polyladder/server/app/sdk/auth"
	"github.com/polyladder/server/app/sdk/mid"
	"github.com/polyladder/server/business/domain/appbus"
	"github.com/polyladder/server/business/domain/memberbus"
	"github.com/polyladder/server/business/sdk/web"
	"github.com/polyladder/server/business/types/scope"
	"github.com/polyladder/server/foundation/logger"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"
	"golang.org/x/crypto/bcrypt"
)

type fakeAppStorer struct {
	apps map[string]appbus.App
}

func (f *fakeAppStorer) Create(ctx context.Context, app appbus.App) error {
	f.apps[app.ID] = app
	return nil
}

func (f *fakeAppStorer) QueryByID(ctx context.Context, appID string) (appbus.App, error) {
	app, exists := f.apps[appID]
	if !exists {
		return appbus.App{}, appbus.ErrNotFound
	}
	return app, nil
}

type fakeMemberStorer struct {
	member  memberbus.Member
	gameIDs []uuid.UUID
}

func (f *fakeMemberStorer) QueryByExternalID(ctx context.Context, externalID int64) (memberbus.Member, error) {
	if externalID != f.member.ExternalID {
		return memberbus.Member{}, memberbus.ErrNotFound
	}
	return f.member, nil
}

func (f *fakeMemberStorer) QueryGameIDs(ctx context.Context, memberID uuid.UUID) ([]uuid.UUID, error) {
	return f.gameIDs, nil
}

func newTestServer(t *testing.T) (*httptest.Server, *fakeMemberStorer) {
	t.Helper()

	log := logger.New(io.Discard, logger.LevelInfo, "TEST", nil)

	hash, err := bcrypt.GenerateFromPassword([]byte("secret1"), bcrypt.MinCost)
	require.NoError(t, err)

	appStorer := &fakeAppStorer{
		apps: map[string]appbus.App{
			"full": {
				ID:         "full",
				SecretHash: hash,
				Scopes:     scope.ParseSet("users:read games:read"),
				Enabled:    true,
			},
			"usersonly": {
				ID:         "usersonly",
				SecretHash: hash,
				Scopes:     scope.ParseSet("users:read"),
				Enabled:    true,
			},
		},
	}

	members := &fakeMemberStorer{
		member: memberbus.Member{
			ID:         uuid.New(),
			ExternalID: 555,
			Name:       "alice",
			CreatedAt:  time.Now(),
			UpdatedAt:  time.Now(),
		},
		gameIDs: []uuid.UUID{uuid.New(), uuid.New()},
	}

	authClient := auth.New(auth.Config{
		Log:    log,
		AppBus: appbus.NewCore(log, appStorer),
	})

	app := web.NewApp(log.Info, noop.NewTracerProvider().Tracer("test"), mid.Errors(log))

	userapp.Routes(app, userapp.Config{
		Auth:      authClient,
		MemberBus: memberbus.NewCore(log, members),
	})

	srv := httptest.NewServer(app)
	t.Cleanup(srv.Close)

	return srv, members
}

func get(t *testing.T, srv *httptest.Server, path, appID, secret string) *http.Response {
	t.Helper()

	req, err := http.NewRequest(http.MethodGet, srv.URL+path, nil)
	require.NoError(t, err)
	req.SetBasicAuth(appID, secret)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)

	return resp
}

func TestQueryUserWithGames(t *testing.T) {
	srv, members := newTestServer(t)

	resp := get(t, srv, "/v1/users/555", "full", "secret1")
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body userapp.User
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Equal(t, int64(555), body.ExternalID)
	require.Equal(t, "alice", body.Name)
	require.Len(t, body.Games, len(members.gameIDs), "games:read embeds the game history")
}

func TestQueryUserWithoutGamesScope(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := get(t, srv, "/v1/users/555", "usersonly", "secret1")
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body userapp.User
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Empty(t, body.Games, "game history needs games:read")
}

func TestQueryUserNotFound(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := get(t, srv, "/v1/users/999", "full", "secret1")
	defer resp.Body.Close()
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestQueryUserBadID(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := get(t, srv, "/v1/users/not-a-number", "full", "secret1")
	defer resp.Body.Close()
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
