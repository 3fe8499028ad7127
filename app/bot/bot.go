// Package bot maintains the command surface of the service. Inbound chat
// messages are matched against the guild's triggers, admitted through the
// gate, and dispatched to registered command handlers. Errors that come out
// of a handler are classified: expected ones are logged and dropped,
// everything else is logged as critical and answered with a generic reply.
package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/polyladder/server/business/domain/gatebus"
	"github.com/polyladder/server/foundation/logger"
)

// Set of error variables command handlers report with. Anything on this
// list is considered part of normal operation.
var (
	ErrUnknownCommand = errors.New("unknown command")
	ErrUsage          = errors.New("bad command usage")
	ErrCheckFailed    = errors.New("command check failed")
)

// Replier defines the behavior required to answer the author of a message.
type Replier interface {
	Reply(ctx context.Context, channelID int64, msg string) error
}

// HandlerFunc represents a function that handles a dispatched command.
type HandlerFunc func(ctx context.Context, req Request) error

// Config is the required properties to construct the dispatcher.
type Config struct {
	Log     *logger.Logger
	Gate    *gatebus.Core
	Replier Replier
}

// Dispatcher routes inbound messages to command handlers.
type Dispatcher struct {
	log      *logger.Logger
	gate     *gatebus.Core
	replier  Replier
	handlers map[string]HandlerFunc
}

// NewDispatcher constructs a dispatcher for message handling.
func NewDispatcher(cfg Config) *Dispatcher {
	return &Dispatcher{
		log:      cfg.Log,
		gate:     cfg.Gate,
		replier:  cfg.Replier,
		handlers: make(map[string]HandlerFunc),
	}
}

// Handle registers a command handler under the given name. Names are
// matched case-insensitively.
func (d *Dispatcher) Handle(name string, fn HandlerFunc) {
	d.handlers[strings.ToLower(name)] = fn
}

// Dispatch processes a single inbound message. Messages that don't match a
// trigger are not commands and are dropped without a trace. Dispatch never
// returns an error; everything that goes wrong past the trigger match is
// reported through the logs and, when warranted, a reply.
func (d *Dispatcher) Dispatch(ctx context.Context, msg Message) {
	content, triggered := d.trigger(ctx, msg)
	if !triggered {
		return
	}

	decision := d.gate.Check(ctx, gatebus.Command{
		GuildID:     msg.GuildID,
		ChannelID:   msg.ChannelID,
		MemberID:    msg.AuthorID,
		TopRoleRank: msg.AuthorRank,
		Content:     content,
	})

	switch decision.Verdict {
	case gatebus.DeniedNoGuild:
		return

	case gatebus.DeniedInsufficientRole:
		d.send(ctx, msg.ChannelID, decision.Reply)
		return
	}

	fields := strings.Fields(content)
	if len(fields) == 0 {
		return
	}

	name := strings.ToLower(fields[0])

	handler, exists := d.handlers[name]
	if !exists {
		d.report(ctx, msg, name, ErrUnknownCommand)
		return
	}

	req := Request{
		Message: msg,
		Command: name,
		Args:    fields[1:],
	}

	if err := handler(ctx, req); err != nil {
		d.report(ctx, msg, name, err)
	}
}

// trigger checks the message against the guild's triggers and returns the
// content with the matched trigger stripped.
func (d *Dispatcher) trigger(ctx context.Context, msg Message) (string, bool) {
	for _, t := range d.gate.Triggers(ctx, msg.GuildID) {
		if strings.HasPrefix(msg.Content, t) {
			return strings.TrimSpace(strings.TrimPrefix(msg.Content, t)), true
		}
	}

	return "", false
}

// report applies the error classification: expected errors are logged at
// warn level and dropped, everything else is critical and gets a generic
// reply that leaks no internals.
func (d *Dispatcher) report(ctx context.Context, msg Message, command string, err error) {
	if errors.Is(err, ErrUnknownCommand) || errors.Is(err, ErrUsage) || errors.Is(err, ErrCheckFailed) {
		d.log.Warn(ctx, "bot: ignored error in command", "command", command, "err", err)
		return
	}

	d.log.Error(ctx, "bot: unhandled error in command", "command", command, "guildID", msg.GuildID, "err", fmt.Sprintf("%+v", err))

	d.send(ctx, msg.ChannelID, "Unhandled error.")
}

func (d *Dispatcher) send(ctx context.Context, channelID int64, reply string) {
	if err := d.replier.Reply(ctx, channelID, reply); err != nil {
		d.log.Error(ctx, "bot: send reply", "channelID", channelID, "err", err)
	}
}
