// Package tenantbus provides business access to the per-guild configuration
// that drives command handling. Guild settings are maintained out of band;
// this core only reads them.
package tenantbus

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/polyladder/server/foundation/logger"
	"github.com/polyladder/server/foundation/otel"
)

var (
	ErrNotFound        = errors.New("guild not found")
	ErrSettingNotFound = errors.New("setting not found")
)

// DefaultPrefix is the process-wide command prefix used when a guild has no
// configuration of its own. Prefix resolution is fail-open: a misconfigured
// guild must not make the whole bot unusable.
const DefaultPrefix = "$"

// Storer defines the behavior required by the tenantbus to interact with the
// database.
type Storer interface {
	Create(ctx context.Context, g Guild) error
	Update(ctx context.Context, g Guild) error
	QueryByID(ctx context.Context, guildID int64) (Guild, error)
}

// Core manages the set of APIs for guild configuration access.
type Core struct {
	log    *logger.Logger
	storer Storer
}

// NewCore constructs a core for guild configuration access.
func NewCore(log *logger.Logger, storer Storer) *Core {
	return &Core{
		log:    log,
		storer: storer,
	}
}

// Create adds a new guild configuration to the system.
func (c *Core) Create(ctx context.Context, ng NewGuild) (Guild, error) {
	ctx, span := otel.AddSpan(ctx, "business.tenantbus.create")
	defer span.End()

	now := time.Now()

	prefix := ng.CommandPrefix
	if prefix == "" {
		prefix = DefaultPrefix
	}

	g := Guild{
		ID:            ng.ID,
		Name:          ng.Name,
		CommandPrefix: prefix,
		Settings:      ng.Settings,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := c.storer.Create(ctx, g); err != nil {
		return Guild{}, fmt.Errorf("create: %w", err)
	}

	return g, nil
}

// Update modifies the configuration of a guild.
func (c *Core) Update(ctx context.Context, g Guild, ug UpdateGuild) (Guild, error) {
	ctx, span := otel.AddSpan(ctx, "business.tenantbus.update")
	defer span.End()

	if ug.Name != nil {
		g.Name = *ug.Name
	}

	if ug.CommandPrefix != nil {
		g.CommandPrefix = *ug.CommandPrefix
	}

	if ug.Settings != nil {
		g.Settings = ug.Settings
	}

	g.UpdatedAt = time.Now()

	if err := c.storer.Update(ctx, g); err != nil {
		return Guild{}, fmt.Errorf("update: %w", err)
	}

	return g, nil
}

// QueryByID finds the guild configuration by the specified ID.
func (c *Core) QueryByID(ctx context.Context, guildID int64) (Guild, error) {
	ctx, span := otel.AddSpan(ctx, "business.tenantbus.queryByID")
	defer span.End()

	g, err := c.storer.QueryByID(ctx, guildID)
	if err != nil {
		return Guild{}, fmt.Errorf("query: guildID[%d]: %w", guildID, err)
	}

	return g, nil
}

// Prefix resolves the command prefix for a guild. Unknown guilds are logged
// and fall back to the process-wide default; this method never fails.
func (c *Core) Prefix(ctx context.Context, guildID int64) string {
	ctx, span := otel.AddSpan(ctx, "business.tenantbus.prefix")
	defer span.End()

	g, err := c.storer.QueryByID(ctx, guildID)
	if err != nil {
		c.log.Error(ctx, "prefix: message from unconfigured guild, using default", "guild_id", guildID, "err", err)
		return DefaultPrefix
	}

	if g.CommandPrefix == "" {
		return DefaultPrefix
	}

	return g.CommandPrefix
}

// Setting returns the value of a single named guild setting.
func (c *Core) Setting(ctx context.Context, guildID int64, key string) (string, error) {
	ctx, span := otel.AddSpan(ctx, "business.tenantbus.setting")
	defer span.End()

	g, err := c.storer.QueryByID(ctx, guildID)
	if err != nil {
		return "", fmt.Errorf("query: guildID[%d]: %w", guildID, err)
	}

	v, exists := g.Settings[key]
	if !exists {
		return "", fmt.Errorf("guildID[%d] key[%s]: %w", guildID, key, ErrSettingNotFound)
	}

	return v, nil
}
