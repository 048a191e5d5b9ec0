package tournamenthandlers

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes mounts the tournament API under /api. Only score writes go
// through the rate limiter; reads are cheap snapshots.
func RegisterRoutes(r chi.Router, h Handlers, limiter *IPRateLimiter) {
	r.Get("/healthz", h.HandleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Use(CorrelationMiddleware)

		r.Get("/course", h.HandleGetCourse)
		r.Get("/strokes", h.HandleGetStrokes)
		r.Get("/view", h.HandleGetView)

		r.Get("/pairings", h.HandleGetPairings)
		r.Get("/pairings/{pairingID}", h.HandleGetPairingDetail)

		r.Get("/players/{playerID}", h.HandleGetPlayer)
		r.Get("/players/{playerID}/scorecard", h.HandleGetScorecard)

		r.Route("/leaderboard", func(r chi.Router) {
			r.Get("/individual", h.HandleGetIndividualLeaderboard)
			r.Get("/export.xlsx", h.HandleExportStandings)
			r.Get("/groups/{group}", h.HandleGetGroupLeaderboard)
			r.Get("/groups/{group}/chart.png", h.HandleGetGroupChart)
		})

		r.Get("/teams", h.HandleGetTeams)
		r.Group(func(r chi.Router) {
			r.Use(RateLimitMiddleware(limiter))
			r.Put("/teams/{teamID}/players/{playerID}/holes/{hole}", h.HandleUpdateScore)
			r.Post("/teams/{teamID}/scorecards", h.HandleImportScorecard)
		})
	})
}
