// Package gatebus decides whether an inbound command may enter the system at
// all. It owns trigger recognition and the tenant-level admission rules that
// run before any command handler.
package gatebus

import (
	"context"
	"fmt"

	"github.com/polyladder/server/foundation/logger"
	"github.com/polyladder/server/foundation/otel"
)

// PrefixSource defines the behavior required to look up the command prefix
// for a guild. Implementations must never fail; unknown guilds fall back to
// the default prefix.
type PrefixSource interface {
	Prefix(ctx context.Context, guildID int64) string
}

// Config is the required properties to construct the gate.
type Config struct {
	Log            *logger.Logger
	Prefixes       PrefixSource
	MentionTrigger string
	PrimaryGuildID int64
	MinRoleName    string
	MinRoleRank    int
}

// Core manages command admission.
type Core struct {
	log            *logger.Logger
	prefixes       PrefixSource
	mentionTrigger string
	primaryGuildID int64
	minRoleName    string
	minRoleRank    int
}

// NewCore constructs a core for command admission.
func NewCore(cfg Config) *Core {
	return &Core{
		log:            cfg.Log,
		prefixes:       cfg.Prefixes,
		mentionTrigger: cfg.MentionTrigger,
		primaryGuildID: cfg.PrimaryGuildID,
		minRoleName:    cfg.MinRoleName,
		minRoleRank:    cfg.MinRoleRank,
	}
}

// Triggers returns the set of prefixes that mark a message as a command for
// the given guild: the mention trigger plus the guild's own prefix. This
// never fails; a guild without configuration gets the default prefix.
func (c *Core) Triggers(ctx context.Context, guildID int64) []string {
	triggers := make([]string, 0, 2)
	if c.mentionTrigger != "" {
		triggers = append(triggers, c.mentionTrigger)
	}

	return append(triggers, c.prefixes.Prefix(ctx, guildID))
}

// Check applies the admission rules to a triggered command. Commands outside
// any guild are denied without a reply. Within the primary guild the author
// must hold at least the configured minimum role; elsewhere membership in the
// guild is enough.
func (c *Core) Check(ctx context.Context, cmd Command) Decision {
	ctx, span := otel.AddSpan(ctx, "business.gatebus.check")
	defer span.End()

	if cmd.GuildID == 0 {
		c.log.Info(ctx, "gatebus: denied direct message", "memberID", cmd.MemberID)
		return Decision{Verdict: DeniedNoGuild}
	}

	if cmd.GuildID == c.primaryGuildID && cmd.TopRoleRank < c.minRoleRank {
		c.log.Info(ctx, "gatebus: denied insufficient role", "guildID", cmd.GuildID, "memberID", cmd.MemberID, "rank", cmd.TopRoleRank)
		return Decision{
			Verdict: DeniedInsufficientRole,
			Reply:   fmt.Sprintf("You must attain %q role to use this bot", c.minRoleName),
		}
	}

	return Decision{Verdict: Allowed}
}
