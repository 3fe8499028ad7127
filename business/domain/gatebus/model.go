package gatebus

// Verdict is the outcome of an admission check.
type Verdict int

const (
	Allowed Verdict = iota
	DeniedNoGuild
	DeniedInsufficientRole
)

// String implements the fmt.Stringer interface.
func (v Verdict) String() string {
	switch v {
	case Allowed:
		return "ALLOWED"
	case DeniedNoGuild:
		return "DENIED_NO_GUILD"
	case DeniedInsufficientRole:
		return "DENIED_INSUFFICIENT_ROLE"
	}
	return "UNKNOWN"
}

// Command represents an inbound message that matched a trigger. A zero
// GuildID means the message arrived outside of any guild.
type Command struct {
	GuildID     int64
	ChannelID   int64
	MemberID    int64
	TopRoleRank int
	Content     string
}

// Decision is the result of an admission check. Reply, when set, should be
// sent back to the author.
type Decision struct {
	Verdict Verdict
	Reply   string
}
