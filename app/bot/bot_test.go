package bot_test

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/polyladder/server/app/bot"
	"github.com/polyladder/server/business/domain/gatebus"
	"github.com/polyladder/server/foundation/logger"
	"github.com/stretchr/testify/require"
)

type stubPrefixes struct{}

func (stubPrefixes) Prefix(ctx context.Context, guildID int64) string { return "$" }

type recordingReplier struct {
	replies []string
}

func (r *recordingReplier) Reply(ctx context.Context, channelID int64, msg string) error {
	r.replies = append(r.replies, msg)
	return nil
}

func newTestDispatcher(t *testing.T, replier *recordingReplier) *bot.Dispatcher {
	t.Helper()

	log := logger.New(io.Discard, logger.LevelInfo, "TEST", nil)

	gate := gatebus.NewCore(gatebus.Config{
		Log:            log,
		Prefixes:       stubPrefixes{},
		MentionTrigger: "<@42>",
		PrimaryGuildID: 100,
		MinRoleName:    "Rider",
		MinRoleRank:    2,
	})

	return bot.NewDispatcher(bot.Config{
		Log:     log,
		Gate:    gate,
		Replier: replier,
	})
}

func TestDispatchIgnoresNonCommands(t *testing.T) {
	replier := &recordingReplier{}
	d := newTestDispatcher(t, replier)

	handled := false
	d.Handle("ping", func(ctx context.Context, req bot.Request) error {
		handled = true
		return nil
	})

	d.Dispatch(context.Background(), bot.Message{
		GuildID:   200,
		ChannelID: 5,
		AuthorID:  1,
		Content:   "just chatting about ping",
	})

	require.False(t, handled)
	require.Empty(t, replier.replies)
}

func TestDispatchRunsHandler(t *testing.T) {
	replier := &recordingReplier{}
	d := newTestDispatcher(t, replier)

	var got bot.Request
	d.Handle("game", func(ctx context.Context, req bot.Request) error {
		got = req
		return nil
	})

	d.Dispatch(context.Background(), bot.Message{
		GuildID:   200,
		ChannelID: 5,
		AuthorID:  1,
		Content:   "$game win alice bob",
	})

	require.Equal(t, "game", got.Command)
	require.Equal(t, []string{"win", "alice", "bob"}, got.Args)
	require.Empty(t, replier.replies)
}

func TestDispatchMentionTrigger(t *testing.T) {
	replier := &recordingReplier{}
	d := newTestDispatcher(t, replier)

	handled := false
	d.Handle("help", func(ctx context.Context, req bot.Request) error {
		handled = true
		return nil
	})

	d.Dispatch(context.Background(), bot.Message{
		GuildID:   200,
		ChannelID: 5,
		AuthorID:  1,
		Content:   "<@42> help",
	})

	require.True(t, handled)
}

func TestDispatchDirectMessageDenied(t *testing.T) {
	replier := &recordingReplier{}
	d := newTestDispatcher(t, replier)

	handled := false
	d.Handle("ping", func(ctx context.Context, req bot.Request) error {
		handled = true
		return nil
	})

	d.Dispatch(context.Background(), bot.Message{
		GuildID:   0,
		ChannelID: 5,
		AuthorID:  1,
		Content:   "$ping",
	})

	require.False(t, handled)
	require.Empty(t, replier.replies, "direct messages are dropped silently")
}

func TestDispatchInsufficientRoleReplies(t *testing.T) {
	replier := &recordingReplier{}
	d := newTestDispatcher(t, replier)

	handled := false
	d.Handle("ping", func(ctx context.Context, req bot.Request) error {
		handled = true
		return nil
	})

	d.Dispatch(context.Background(), bot.Message{
		GuildID:    100,
		ChannelID:  5,
		AuthorID:   1,
		AuthorRank: 1,
		Content:    "$ping",
	})

	require.False(t, handled)
	require.Equal(t, []string{`You must attain "Rider" role to use this bot`}, replier.replies)
}

func TestDispatchUnknownCommandIgnored(t *testing.T) {
	replier := &recordingReplier{}
	d := newTestDispatcher(t, replier)

	d.Dispatch(context.Background(), bot.Message{
		GuildID:   200,
		ChannelID: 5,
		AuthorID:  1,
		Content:   "$nosuchcommand",
	})

	require.Empty(t, replier.replies)
}

func TestDispatchExpectedErrorsIgnored(t *testing.T) {
	replier := &recordingReplier{}
	d := newTestDispatcher(t, replier)

	d.Handle("game", func(ctx context.Context, req bot.Request) error {
		return bot.ErrUsage
	})

	d.Dispatch(context.Background(), bot.Message{
		GuildID:   200,
		ChannelID: 5,
		AuthorID:  1,
		Content:   "$game",
	})

	require.Empty(t, replier.replies)
}

func TestDispatchUnhandledErrorReplies(t *testing.T) {
	replier := &recordingReplier{}
	d := newTestDispatcher(t, replier)

	d.Handle("game", func(ctx context.Context, req bot.Request) error {
		return errors.New("nil pointer somewhere deep")
	})

	d.Dispatch(context.Background(), bot.Message{
		GuildID:   200,
		ChannelID: 5,
		AuthorID:  1,
		Content:   "$game win",
	})

	require.Equal(t, []string{"Unhandled error."}, replier.replies, "internals never leak into the reply")
}
