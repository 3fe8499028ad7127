package bot

// Message represents an inbound chat message as delivered by the transport.
// A zero GuildID means the message arrived via direct message. AuthorRank is
// the position of the author's highest role within the guild.
type Message struct {
	GuildID    int64
	ChannelID  int64
	AuthorID   int64
	AuthorRank int
	Content    string
}

// Request carries a matched command and its arguments to a handler.
type Request struct {
	Message Message
	Command string
	Args    []string
}
