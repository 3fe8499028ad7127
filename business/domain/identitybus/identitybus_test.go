package identitybus_test

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/polyladder/server/business/domain/identitybus"
	"github.com/polyladder/server/foundation/logger"
	"github.com/stretchr/testify/require"
)

type fakeUniverse struct {
	guilds     map[int64]bool
	members    map[int64]identitybus.Identity
	fetchCalls int
	fetchErr   error
}

func (f *fakeUniverse) GuildAvailable(guildID int64) bool {
	return f.guilds[guildID]
}

func (f *fakeUniverse) FetchMember(ctx context.Context, guildID int64, memberID int64) (identitybus.Identity, error) {
	f.fetchCalls++

	if f.fetchErr != nil {
		return identitybus.Identity{}, f.fetchErr
	}

	idn, exists := f.members[memberID]
	if !exists {
		return identitybus.Identity{}, identitybus.ErrMemberNotFound
	}

	return idn, nil
}

func newTestCore(t *testing.T, universe *fakeUniverse) *identitybus.Core {
	t.Helper()

	return identitybus.NewCore(identitybus.Config{
		Log:      logger.New(io.Discard, logger.LevelInfo, "TEST", nil),
		Universe: universe,
		CacheTTL: time.Minute,
	})
}

func TestResolveUnknownGuild(t *testing.T) {
	universe := &fakeUniverse{guilds: map[int64]bool{}}
	core := newTestCore(t, universe)

	_, err := core.Resolve(context.Background(), 100, 1)

	require.ErrorIs(t, err, identitybus.ErrGuildNotFound)
	require.Zero(t, universe.fetchCalls, "no member lookup without the guild")
}

func TestResolveCachesMember(t *testing.T) {
	universe := &fakeUniverse{
		guilds: map[int64]bool{100: true},
		members: map[int64]identitybus.Identity{
			1: {ID: 1, GuildID: 100, Name: "alice", TopRoleRank: 3},
		},
	}
	core := newTestCore(t, universe)

	idn, err := core.Resolve(context.Background(), 100, 1)
	require.NoError(t, err)
	require.Equal(t, "alice", idn.Name)
	require.Equal(t, 3, idn.TopRoleRank)

	_, err = core.Resolve(context.Background(), 100, 1)
	require.NoError(t, err)
	require.Equal(t, 1, universe.fetchCalls, "second resolve is served from the cache")
}

func TestResolveUnknownMember(t *testing.T) {
	universe := &fakeUniverse{
		guilds:  map[int64]bool{100: true},
		members: map[int64]identitybus.Identity{},
	}
	core := newTestCore(t, universe)

	_, err := core.Resolve(context.Background(), 100, 1)

	require.ErrorIs(t, err, identitybus.ErrMemberNotFound)
}

func TestResolveTransientFailure(t *testing.T) {
	universe := &fakeUniverse{
		guilds:   map[int64]bool{100: true},
		fetchErr: errors.New("connection reset"),
	}
	core := newTestCore(t, universe)

	_, err := core.Resolve(context.Background(), 100, 1)

	require.Error(t, err)
	require.ErrorIs(t, err, identitybus.ErrUnavailable)
	require.NotErrorIs(t, err, identitybus.ErrMemberNotFound)
}
