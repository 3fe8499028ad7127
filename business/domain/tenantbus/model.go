package tenantbus

import "time"

// Guild represents one community the bot serves and its configuration.
type Guild struct {
	ID            int64
	Name          string
	CommandPrefix string
	Settings      map[string]string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewGuild contains information needed to register a guild configuration.
type NewGuild struct {
	ID            int64
	Name          string
	CommandPrefix string
	Settings      map[string]string
}

// UpdateGuild contains information needed to update a guild configuration.
type UpdateGuild struct {
	Name          *string
	CommandPrefix *string
	Settings      map[string]string
}
