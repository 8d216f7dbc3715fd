package model

// Multiplier is one named percentage bonus tracked for a Dank Memer user.
type Multiplier struct {
	UserID  string `db:"user_id"`
	Name    string `db:"name"`
	Percent int    `db:"percent"`
}

// DankStat is one scraped per-user counter (coins gained, dailies
// claimed, ...).
type DankStat struct {
	UserID string `db:"user_id"`
	Metric string `db:"metric"`
	Value  int64  `db:"value"`
}

// WishlistEntry is one wished Karuta character. Series plus character is
// the natural key used for all remove/edit actions.
type WishlistEntry struct {
	UserID    string `db:"user_id"`
	Series    string `db:"series"`
	Character string `db:"character"`
	AddedAt   int64  `db:"added_at"`
}

// NukeSession tracks one 7w7 nuke event in a channel. ClaimCount is only
// ever moved by atomic in-database increments.
type NukeSession struct {
	ChannelID  string `db:"channel_id"`
	GuildID    string `db:"guild_id"`
	StarterID  string `db:"starter_id"`
	StartedAt  int64  `db:"started_at"`
	ClaimCount int64  `db:"claim_count"`
	EndedAt    int64  `db:"ended_at"`
}
