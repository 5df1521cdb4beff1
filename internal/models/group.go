package models

// MaxRosterSize is the maximum number of players in a home game.
const MaxRosterSize = 10

// Group represents the home game hosted by this server instance.
// A group is provisioned on first join: the shared access code is hashed and
// stored together with the initial roster.
type Group struct {
	// Players is the ordered roster of player names. Insertion order is
	// preserved for display and for deterministic tie-breaking in rankings.
	Players []string

	// CreatedAt is the Unix timestamp when the group was provisioned.
	CreatedAt int64
}
