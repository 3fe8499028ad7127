package memberapi_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/polyladder/server/business/domain/identitybus"
	"github.com/polyladder/server/business/domain/identitybus/stores/memberapi"
	"github.com/polyladder/server/foundation/logger"
	"github.com/stretchr/testify/require"
)

func newFakeDiscord(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()

	mux.HandleFunc("GET /users/@me/guilds", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bot token123", r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode([]map[string]any{
			{"id": "100"},
			{"id": "200"},
		})
	})

	mux.HandleFunc("GET /guilds/100/members/1", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"nick":  "Ace",
			"roles": []string{"10", "11"},
			"user":  map[string]any{"id": "1", "username": "alice"},
		})
	})

	mux.HandleFunc("GET /guilds/100/members/2", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"nick":  "",
			"roles": []string{},
			"user":  map[string]any{"id": "2", "username": "bob"},
		})
	})

	mux.HandleFunc("GET /guilds/100/members/", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})

	mux.HandleFunc("GET /guilds/100/roles", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]map[string]any{
			{"id": "10", "position": 1},
			{"id": "11", "position": 5},
			{"id": "12", "position": 9},
		})
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	return srv
}

func newTestStore(t *testing.T) *memberapi.Store {
	t.Helper()

	srv := newFakeDiscord(t)

	store := memberapi.NewStore(memberapi.Config{
		Log:     logger.New(io.Discard, logger.LevelInfo, "TEST", nil),
		BaseURL: srv.URL,
		Token:   "token123",
	})

	require.NoError(t, store.LoadGuilds(context.Background()))

	return store
}

func TestGuildAvailable(t *testing.T) {
	store := newTestStore(t)

	require.True(t, store.GuildAvailable(100))
	require.True(t, store.GuildAvailable(200))
	require.False(t, store.GuildAvailable(999))
}

func TestFetchMember(t *testing.T) {
	store := newTestStore(t)

	idn, err := store.FetchMember(context.Background(), 100, 1)
	require.NoError(t, err)
	require.Equal(t, "Ace", idn.Name, "nickname wins over the username")
	require.Equal(t, 5, idn.TopRoleRank, "rank is the highest held role position")
}

func TestFetchMemberUsernameFallback(t *testing.T) {
	store := newTestStore(t)

	idn, err := store.FetchMember(context.Background(), 100, 2)
	require.NoError(t, err)
	require.Equal(t, "bob", idn.Name)
	require.Zero(t, idn.TopRoleRank)
}

func TestFetchMemberNotFound(t *testing.T) {
	store := newTestStore(t)

	_, err := store.FetchMember(context.Background(), 100, 42)
	require.ErrorIs(t, err, identitybus.ErrMemberNotFound)
}
