package tournamenthandlers

import (
	"net/http"

	"github.com/ThreeDotsLabs/watermill/message"
)

// Handlers serves the HTTP API and consumes score events.
type Handlers interface {
	// HTTP
	HandleGetCourse(w http.ResponseWriter, r *http.Request)
	HandleGetTeams(w http.ResponseWriter, r *http.Request)
	HandleGetPairings(w http.ResponseWriter, r *http.Request)
	HandleGetPairingDetail(w http.ResponseWriter, r *http.Request)
	HandleGetPlayer(w http.ResponseWriter, r *http.Request)
	HandleGetScorecard(w http.ResponseWriter, r *http.Request)
	HandleGetStrokes(w http.ResponseWriter, r *http.Request)
	HandleGetGroupLeaderboard(w http.ResponseWriter, r *http.Request)
	HandleGetGroupChart(w http.ResponseWriter, r *http.Request)
	HandleGetIndividualLeaderboard(w http.ResponseWriter, r *http.Request)
	HandleExportStandings(w http.ResponseWriter, r *http.Request)
	HandleGetView(w http.ResponseWriter, r *http.Request)
	HandleUpdateScore(w http.ResponseWriter, r *http.Request)
	HandleImportScorecard(w http.ResponseWriter, r *http.Request)
	HandleHealth(w http.ResponseWriter, r *http.Request)

	// Events
	HandleScoreUpdated(msg *message.Message) ([]*message.Message, error)
	HandleForwardScoreUpdated(msg *message.Message) ([]*message.Message, error)
}
