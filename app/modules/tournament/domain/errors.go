package tournamentdomain

import "errors"

// Lookup and input errors. None of them are fatal: an update that fails with
// one of these leaves the state untouched.
var (
	ErrTeamNotFound    = errors.New("team not found")
	ErrPlayerNotFound  = errors.New("player not found")
	ErrPairingNotFound = errors.New("pairing not found")
	ErrHoleOutOfRange  = errors.New("hole index out of range")
	ErrInvalidScore    = errors.New("invalid score value")
	ErrScoreOutOfRange = errors.New("score outside allowed bounds")
	ErrUnknownGroup    = errors.New("unknown group")
	ErrUnknownView     = errors.New("unknown view")
)
