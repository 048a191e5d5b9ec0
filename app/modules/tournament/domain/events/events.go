package tournamentevents

import "time"

// Topics
const (
	// ScoreUpdatedV1 is published after every applied hole score change.
	ScoreUpdatedV1 = "tournament.score.updated.v1"
)

// Metadata keys set on published messages.
const (
	MetadataTopic         = "topic"
	MetadataCorrelationID = "correlation_id"
)

// ScoreUpdatedPayloadV1 describes a single hole score change. Score and
// Previous are nil when the hole is (or was) empty.
type ScoreUpdatedPayloadV1 struct {
	TeamID      int       `json:"team_id"`
	PlayerID    int       `json:"player_id"`
	PlayerName  string    `json:"player_name"`
	HoleIndex   int       `json:"hole_index"`
	Score       *int      `json:"score"`
	Previous    *int      `json:"previous"`
	Gross       int       `json:"gross"`
	Net         float64   `json:"net"`
	HolesPlayed int       `json:"holes_played"`
	UpdatedAt   time.Time `json:"updated_at"`
}
