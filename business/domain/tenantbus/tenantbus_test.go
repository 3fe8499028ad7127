package tenantbus_test

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/polyladder/server/business/domain/tenantbus"
	"github.com/polyladder/server/foundation/logger"
	"github.com/stretchr/testify/require"
)

type mockStorer struct {
	guilds map[int64]tenantbus.Guild
	err    error
}

func (m *mockStorer) Create(ctx context.Context, g tenantbus.Guild) error { return m.err }
func (m *mockStorer) Update(ctx context.Context, g tenantbus.Guild) error { return m.err }

func (m *mockStorer) QueryByID(ctx context.Context, guildID int64) (tenantbus.Guild, error) {
	if m.err != nil {
		return tenantbus.Guild{}, m.err
	}

	g, exists := m.guilds[guildID]
	if !exists {
		return tenantbus.Guild{}, tenantbus.ErrNotFound
	}

	return g, nil
}

func newTestCore(t *testing.T, storer *mockStorer) *tenantbus.Core {
	t.Helper()

	return tenantbus.NewCore(logger.New(io.Discard, logger.LevelInfo, "TEST", nil), storer)
}

func TestPrefixConfiguredGuild(t *testing.T) {
	core := newTestCore(t, &mockStorer{
		guilds: map[int64]tenantbus.Guild{
			100: {ID: 100, CommandPrefix: "!"},
		},
	})

	require.Equal(t, "!", core.Prefix(context.Background(), 100))
}

func TestPrefixUnknownGuildFallsBack(t *testing.T) {
	core := newTestCore(t, &mockStorer{guilds: map[int64]tenantbus.Guild{}})

	require.Equal(t, tenantbus.DefaultPrefix, core.Prefix(context.Background(), 999))
}

func TestPrefixStoreFailureFallsBack(t *testing.T) {
	core := newTestCore(t, &mockStorer{err: errors.New("connection refused")})

	require.Equal(t, tenantbus.DefaultPrefix, core.Prefix(context.Background(), 100), "prefix resolution is fail-open")
}

func TestSetting(t *testing.T) {
	core := newTestCore(t, &mockStorer{
		guilds: map[int64]tenantbus.Guild{
			100: {ID: 100, Settings: map[string]string{"announce_channel": "general"}},
		},
	})

	v, err := core.Setting(context.Background(), 100, "announce_channel")
	require.NoError(t, err)
	require.Equal(t, "general", v)

	_, err = core.Setting(context.Background(), 100, "missing")
	require.ErrorIs(t, err, tenantbus.ErrSettingNotFound)
}
