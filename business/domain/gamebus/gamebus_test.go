package gamebus_test

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/google/uuid"
	"github.com/polyladder/server/business/domain/gamebus"
	"github.com/polyladder/server/business/domain/identitybus"
	"github.com/polyladder/server/business/types/name"
	"github.com/polyladder/server/foundation/logger"
	"github.com/stretchr/testify/require"
)

type mockResolver struct {
	identities map[int64]identitybus.Identity
	calls      int
}

func (m *mockResolver) Resolve(ctx context.Context, guildID int64, memberID int64) (identitybus.Identity, error) {
	m.calls++

	idn, exists := m.identities[memberID]
	if !exists {
		return identitybus.Identity{}, identitybus.ErrMemberNotFound
	}

	return idn, nil
}

type mockStorer struct {
	created  []gamebus.Game
	warnings []gamebus.Warning
	notes    map[uuid.UUID]string
	notesErr error
}

func (m *mockStorer) Create(ctx context.Context, game gamebus.Game) ([]gamebus.Warning, error) {
	m.created = append(m.created, game)
	return m.warnings, nil
}

func (m *mockStorer) UpdateNotes(ctx context.Context, gameID uuid.UUID, notes string) error {
	if m.notesErr != nil {
		return m.notesErr
	}

	if m.notes == nil {
		m.notes = make(map[uuid.UUID]string)
	}
	m.notes[gameID] = notes

	return nil
}

func (m *mockStorer) QueryByID(ctx context.Context, gameID uuid.UUID) (gamebus.Game, error) {
	for _, g := range m.created {
		if g.ID == gameID {
			return g, nil
		}
	}
	return gamebus.Game{}, gamebus.ErrNotFound
}

func newTestCore(t *testing.T, resolver *mockResolver, storer *mockStorer) *gamebus.Core {
	t.Helper()

	log := logger.New(io.Discard, logger.LevelInfo, "TEST", nil)

	return gamebus.NewCore(log, resolver, storer)
}

func testIdentities(guildID int64, memberIDs ...int64) map[int64]identitybus.Identity {
	m := make(map[int64]identitybus.Identity, len(memberIDs))
	for _, id := range memberIDs {
		m[id] = identitybus.Identity{
			ID:      id,
			GuildID: guildID,
			Name:    "player",
		}
	}
	return m
}

func TestCreateRejectsSingleSide(t *testing.T) {
	resolver := &mockResolver{identities: testIdentities(100, 1, 2)}
	storer := &mockStorer{}
	core := newTestCore(t, resolver, storer)

	_, _, err := core.Create(context.Background(), gamebus.NewGame{
		GuildID: 100,
		Name:    name.MustParse("Test Game"),
		Sides:   [][]int64{{1, 2}},
	})

	require.ErrorIs(t, err, gamebus.ErrInvalid)
	require.Zero(t, resolver.calls, "validation failures must not reach the resolver")
	require.Empty(t, storer.created)
}

func TestCreateRejectsEmptySide(t *testing.T) {
	resolver := &mockResolver{identities: testIdentities(100, 1, 2)}
	storer := &mockStorer{}
	core := newTestCore(t, resolver, storer)

	_, _, err := core.Create(context.Background(), gamebus.NewGame{
		GuildID: 100,
		Name:    name.MustParse("Test Game"),
		Sides:   [][]int64{{1}, {}},
	})

	require.ErrorIs(t, err, gamebus.ErrInvalid)
	require.Zero(t, resolver.calls)
}

func TestCreateRejectsDuplicatePlayer(t *testing.T) {
	resolver := &mockResolver{identities: testIdentities(100, 1, 2)}
	storer := &mockStorer{}
	core := newTestCore(t, resolver, storer)

	_, _, err := core.Create(context.Background(), gamebus.NewGame{
		GuildID: 100,
		Name:    name.MustParse("Test Game"),
		Sides:   [][]int64{{1, 2}, {1}},
	})

	require.ErrorIs(t, err, gamebus.ErrInvalid)
	require.Zero(t, resolver.calls, "duplicates are caught before any resolution")
	require.Empty(t, storer.created)
}

func TestCreateFailsFastOnUnknownMember(t *testing.T) {
	resolver := &mockResolver{identities: testIdentities(100, 1)}
	storer := &mockStorer{}
	core := newTestCore(t, resolver, storer)

	_, _, err := core.Create(context.Background(), gamebus.NewGame{
		GuildID: 100,
		Name:    name.MustParse("Test Game"),
		Sides:   [][]int64{{1, 99}, {2}},
	})

	require.ErrorIs(t, err, identitybus.ErrMemberNotFound)
	require.Equal(t, 2, resolver.calls, "resolution stops at the first unknown member")
	require.Empty(t, storer.created, "nothing is written when resolution fails")
}

func TestCreateUnevenSidesWarning(t *testing.T) {
	resolver := &mockResolver{identities: testIdentities(100, 1, 2, 3)}
	storer := &mockStorer{warnings: []gamebus.Warning{gamebus.WarnRematch}}
	core := newTestCore(t, resolver, storer)

	_, warnings, err := core.Create(context.Background(), gamebus.NewGame{
		GuildID: 100,
		Name:    name.MustParse("Test Game"),
		Sides:   [][]int64{{1, 2}, {3}},
	})

	require.NoError(t, err)
	require.Contains(t, warnings, gamebus.WarnUnevenSides)
	require.Contains(t, warnings, gamebus.WarnRematch)
}

func TestCreateEvenSidesNoWarning(t *testing.T) {
	resolver := &mockResolver{identities: testIdentities(100, 1, 2, 3, 4)}
	storer := &mockStorer{}
	core := newTestCore(t, resolver, storer)

	_, warnings, err := core.Create(context.Background(), gamebus.NewGame{
		GuildID: 100,
		Name:    name.MustParse("Test Game"),
		Sides:   [][]int64{{1, 2}, {3, 4}},
	})

	require.NoError(t, err)
	require.Empty(t, warnings)
}

func TestCreateAttachesNotes(t *testing.T) {
	resolver := &mockResolver{identities: testIdentities(100, 1, 2)}
	storer := &mockStorer{}
	core := newTestCore(t, resolver, storer)

	game, warnings, err := core.Create(context.Background(), gamebus.NewGame{
		GuildID: 100,
		Name:    name.MustParse("Test Game"),
		Notes:   "first blood",
		Sides:   [][]int64{{1}, {2}},
	})

	require.NoError(t, err)
	require.Empty(t, warnings)
	require.Equal(t, "first blood", game.Notes)
	require.Equal(t, "first blood", storer.notes[game.ID])
}

func TestCreateNotesFailureIsWarning(t *testing.T) {
	resolver := &mockResolver{identities: testIdentities(100, 1, 2)}
	storer := &mockStorer{notesErr: errors.New("disk full")}
	core := newTestCore(t, resolver, storer)

	game, warnings, err := core.Create(context.Background(), gamebus.NewGame{
		GuildID: 100,
		Name:    name.MustParse("Test Game"),
		Notes:   "first blood",
		Sides:   [][]int64{{1}, {2}},
	})

	require.NoError(t, err, "a failed notes attach never fails the create")
	require.Len(t, storer.created, 1)
	require.Contains(t, warnings, gamebus.WarnNotesNotSaved)
	require.Empty(t, game.Notes)
}

func TestCreateCanceledContext(t *testing.T) {
	resolver := &mockResolver{identities: testIdentities(100, 1, 2)}
	storer := &mockStorer{}
	core := newTestCore(t, resolver, storer)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := core.Create(ctx, gamebus.NewGame{
		GuildID: 100,
		Name:    name.MustParse("Test Game"),
		Sides:   [][]int64{{1}, {2}},
	})

	require.ErrorIs(t, err, context.Canceled)
	require.Empty(t, storer.created, "no write for a caller that is gone")
}
