package identitybus

// Identity represents a member resolved within a guild's membership
// universe. The value is transient and never authoritative; the membership
// system owns the member.
type Identity struct {
	ID          int64
	GuildID     int64
	Name        string
	TopRoleRank int
}
