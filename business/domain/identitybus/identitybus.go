// Package identitybus resolves external member identities within a guild's
// membership universe. A cache sits in front of the remote universe so the
// common path never suspends; cache hits are stale-but-safe and are never
// revalidated mid-request.
package identitybus

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/polyladder/server/foundation/logger"
	"github.com/polyladder/server/foundation/otel"
	"github.com/viccon/sturdyc"
)

var (
	ErrGuildNotFound  = errors.New("guild not found")
	ErrMemberNotFound = errors.New("member not found")

	// ErrUnavailable marks remote failures that are not a definitive
	// not-found, so callers can decide whether to retry.
	ErrUnavailable = errors.New("membership lookup unavailable")
)

// Universe defines the behavior required of the external membership system.
// Implementations return ErrMemberNotFound when the universe definitively
// reports the member does not exist; any other error is treated as transient.
type Universe interface {
	GuildAvailable(guildID int64) bool
	FetchMember(ctx context.Context, guildID int64, memberID int64) (Identity, error)
}

// Config is the required properties to construct the resolver.
type Config struct {
	Log      *logger.Logger
	Universe Universe
	CacheTTL time.Duration
}

// Core manages identity resolution with a cache-then-fetch strategy.
type Core struct {
	log      *logger.Logger
	universe Universe
	cache    *sturdyc.Client[Identity]
}

// NewCore constructs a core for identity resolution.
func NewCore(cfg Config) *Core {
	const (
		capacity           = 10_000
		numShards          = 64
		evictionPercentage = 10
	)

	ttl := cfg.CacheTTL
	if ttl == 0 {
		ttl = 5 * time.Minute
	}

	return &Core{
		log:      cfg.Log,
		universe: cfg.Universe,
		cache:    sturdyc.New[Identity](capacity, numShards, ttl, evictionPercentage),
	}
}

// Resolve returns the live identity for a member within a guild. The guild
// must be known to the universe before any member lookup is attempted. On a
// cache miss the member is fetched remotely; failed fetches are not cached.
func (c *Core) Resolve(ctx context.Context, guildID int64, memberID int64) (Identity, error) {
	ctx, span := otel.AddSpan(ctx, "business.identitybus.resolve")
	defer span.End()

	if !c.universe.GuildAvailable(guildID) {
		return Identity{}, fmt.Errorf("resolve: guildID[%d]: %w", guildID, ErrGuildNotFound)
	}

	fetch := func(ctx context.Context) (Identity, error) {
		idn, err := c.universe.FetchMember(ctx, guildID, memberID)
		if err != nil {
			if errors.Is(err, ErrMemberNotFound) {
				return Identity{}, fmt.Errorf("fetch: memberID[%d]: %w", memberID, ErrMemberNotFound)
			}
			return Identity{}, fmt.Errorf("fetch: memberID[%d]: %s: %w", memberID, err, ErrUnavailable)
		}
		return idn, nil
	}

	idn, err := c.cache.GetOrFetch(ctx, cacheKey(guildID, memberID), fetch)
	if err != nil {
		return Identity{}, err
	}

	return idn, nil
}

func cacheKey(guildID int64, memberID int64) string {
	return strconv.FormatInt(guildID, 10) + ":" + strconv.FormatInt(memberID, 10)
}
