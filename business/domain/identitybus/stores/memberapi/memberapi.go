// Package memberapi implements the membership universe against the Discord
// REST API. The guild list is loaded once at startup, mirroring the gateway
// client's guild cache; member lookups hit the API directly.
package memberapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/polyladder/server/business/domain/identitybus"
	"github.com/polyladder/server/foundation/logger"
)

// DefaultAPIURL is the versioned Discord REST endpoint.
const DefaultAPIURL = "https://discord.com/api/v10"

// Store manages membership lookups against the Discord REST API.
type Store struct {
	log     *logger.Logger
	client  *http.Client
	baseURL string
	token   string

	mu     sync.RWMutex
	guilds map[int64]struct{}
}

// Config is the required properties to use the store.
type Config struct {
	Log     *logger.Logger
	BaseURL string
	Token   string
}

// NewStore constructs the api for membership access.
func NewStore(cfg Config) *Store {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultAPIURL
	}

	return &Store{
		log:     cfg.Log,
		client:  &http.Client{Timeout: 10 * time.Second},
		baseURL: baseURL,
		token:   cfg.Token,
		guilds:  map[int64]struct{}{},
	}
}

// LoadGuilds fetches the set of guilds the bot belongs to. Call once at
// startup before serving requests.
func (s *Store) LoadGuilds(ctx context.Context) error {
	var list []struct {
		ID string `json:"id"`
	}

	if err := s.get(ctx, "/users/@me/guilds", &list); err != nil {
		return fmt.Errorf("load guilds: %w", err)
	}

	guilds := make(map[int64]struct{}, len(list))
	for _, g := range list {
		id, err := strconv.ParseInt(g.ID, 10, 64)
		if err != nil {
			return fmt.Errorf("load guilds: parse id %q: %w", g.ID, err)
		}
		guilds[id] = struct{}{}
	}

	s.mu.Lock()
	s.guilds = guilds
	s.mu.Unlock()

	s.log.Info(ctx, "memberapi: guilds loaded", "count", len(guilds))

	return nil
}

// GuildAvailable reports whether the guild is known to the bot. This is a
// cache-only check and never suspends.
func (s *Store) GuildAvailable(guildID int64) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, exists := s.guilds[guildID]
	return exists
}

// FetchMember retrieves a member of the guild along with the rank of their
// highest role.
func (s *Store) FetchMember(ctx context.Context, guildID int64, memberID int64) (identitybus.Identity, error) {
	var member struct {
		Nick  string   `json:"nick"`
		Roles []string `json:"roles"`
		User  struct {
			ID       string `json:"id"`
			Username string `json:"username"`
		} `json:"user"`
	}

	path := fmt.Sprintf("/guilds/%d/members/%d", guildID, memberID)
	if err := s.get(ctx, path, &member); err != nil {
		return identitybus.Identity{}, err
	}

	rank, err := s.topRoleRank(ctx, guildID, member.Roles)
	if err != nil {
		return identitybus.Identity{}, err
	}

	name := member.Nick
	if name == "" {
		name = member.User.Username
	}

	return identitybus.Identity{
		ID:          memberID,
		GuildID:     guildID,
		Name:        name,
		TopRoleRank: rank,
	}, nil
}

// topRoleRank maps the member's role ids to the highest role position in
// the guild.
func (s *Store) topRoleRank(ctx context.Context, guildID int64, roleIDs []string) (int, error) {
	var roles []struct {
		ID       string `json:"id"`
		Position int    `json:"position"`
	}

	path := fmt.Sprintf("/guilds/%d/roles", guildID)
	if err := s.get(ctx, path, &roles); err != nil {
		return 0, err
	}

	held := make(map[string]struct{}, len(roleIDs))
	for _, id := range roleIDs {
		held[id] = struct{}{}
	}

	rank := 0
	for _, r := range roles {
		if _, ok := held[r.ID]; ok && r.Position > rank {
			rank = r.Position
		}
	}

	return rank, nil
}

func (s *Store) get(ctx context.Context, path string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Authorization", "Bot "+s.token)

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return identitybus.ErrMemberNotFound

	case resp.StatusCode != http.StatusOK:
		return fmt.Errorf("unexpected status %d on %s", resp.StatusCode, path)
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	return nil
}
