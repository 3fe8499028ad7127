package gatebus_test

import (
	"context"
	"io"
	"testing"

	"github.com/polyladder/server/business/domain/gatebus"
	"github.com/polyladder/server/foundation/logger"
	"github.com/stretchr/testify/require"
)

type stubPrefixes struct {
	prefixes map[int64]string
	fallback string
}

func (s stubPrefixes) Prefix(ctx context.Context, guildID int64) string {
	if p, exists := s.prefixes[guildID]; exists {
		return p
	}
	return s.fallback
}

func newTestCore(t *testing.T) *gatebus.Core {
	t.Helper()

	return gatebus.NewCore(gatebus.Config{
		Log: logger.New(io.Discard, logger.LevelInfo, "TEST", nil),
		Prefixes: stubPrefixes{
			prefixes: map[int64]string{100: "!"},
			fallback: "$",
		},
		MentionTrigger: "<@42>",
		PrimaryGuildID: 100,
		MinRoleName:    "Rider",
		MinRoleRank:    2,
	})
}

func TestTriggers(t *testing.T) {
	core := newTestCore(t)

	require.Equal(t, []string{"<@42>", "!"}, core.Triggers(context.Background(), 100))
	require.Equal(t, []string{"<@42>", "$"}, core.Triggers(context.Background(), 999), "unknown guilds get the default prefix")
}

func TestCheckDeniesDirectMessages(t *testing.T) {
	core := newTestCore(t)

	d := core.Check(context.Background(), gatebus.Command{
		GuildID:  0,
		MemberID: 1,
		Content:  "help",
	})

	require.Equal(t, gatebus.DeniedNoGuild, d.Verdict)
	require.Empty(t, d.Reply, "direct messages are dropped without a reply")
}

func TestCheckPrimaryGuildRole(t *testing.T) {
	core := newTestCore(t)

	d := core.Check(context.Background(), gatebus.Command{
		GuildID:     100,
		MemberID:    1,
		TopRoleRank: 1,
		Content:     "help",
	})

	require.Equal(t, gatebus.DeniedInsufficientRole, d.Verdict)
	require.Equal(t, `You must attain "Rider" role to use this bot`, d.Reply)

	d = core.Check(context.Background(), gatebus.Command{
		GuildID:     100,
		MemberID:    1,
		TopRoleRank: 2,
		Content:     "help",
	})

	require.Equal(t, gatebus.Allowed, d.Verdict)
}

func TestCheckSecondaryGuildSkipsRoleGate(t *testing.T) {
	core := newTestCore(t)

	d := core.Check(context.Background(), gatebus.Command{
		GuildID:     200,
		MemberID:    1,
		TopRoleRank: 0,
		Content:     "help",
	})

	require.Equal(t, gatebus.Allowed, d.Verdict, "the role gate only applies to the primary guild")
}
