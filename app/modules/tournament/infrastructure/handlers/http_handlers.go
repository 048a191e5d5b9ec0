package tournamenthandlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/Black-And-White-Club/frolf-bot-shared/observability/attr"
	tournamentservice "github.com/Black-And-White-Club/golf-tournament/app/modules/tournament/application"
	tournamentdomain "github.com/Black-And-White-Club/golf-tournament/app/modules/tournament/domain"
	"github.com/Black-And-White-Club/golf-tournament/app/modules/tournament/infrastructure/export"
	"github.com/Black-And-White-Club/golf-tournament/app/modules/tournament/infrastructure/parsers"
	"github.com/go-chi/chi/v5"
)

func (h *TournamentHandlers) HandleGetCourse(w http.ResponseWriter, r *http.Request) {
	course := h.service.GetCourse(r.Context())
	writeJSON(w, http.StatusOK, map[string]any{
		"course":    course,
		"par_out":   course.ParOut(),
		"par_in":    course.ParIn(),
		"par_total": course.ParTotal(),
		"yardage":   course.TotalYardage(),
	})
}

func (h *TournamentHandlers) HandleGetTeams(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.service.GetTeams(r.Context()))
}

func (h *TournamentHandlers) HandleGetPairings(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.service.GetPairings(r.Context()))
}

func (h *TournamentHandlers) HandleGetPairingDetail(w http.ResponseWriter, r *http.Request) {
	id, ok := intURLParam(w, r, "pairingID")
	if !ok {
		return
	}
	detail, err := h.service.PairingDetail(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

func (h *TournamentHandlers) HandleGetPlayer(w http.ResponseWriter, r *http.Request) {
	id, ok := intURLParam(w, r, "playerID")
	if !ok {
		return
	}
	ref, err := h.service.FindPlayer(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ref)
}

func (h *TournamentHandlers) HandleGetScorecard(w http.ResponseWriter, r *http.Request) {
	id, ok := intURLParam(w, r, "playerID")
	if !ok {
		return
	}
	card, err := h.service.Scorecard(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, card)
}

// HandleGetStrokes answers ?handicap=22.9&stroke_index=1. Without a stroke
// index it returns the whole-course allocation.
func (h *TournamentHandlers) HandleGetStrokes(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()

	handicap, err := strconv.ParseFloat(q.Get("handicap"), 64)
	if err == nil {
		err = tournamentservice.ValidateHandicap(handicap)
	}
	if err != nil {
		http.Error(w, tournamentservice.ErrInvalidHandicap.Error(), http.StatusBadRequest)
		return
	}

	if raw := q.Get("stroke_index"); raw != "" {
		si, err := strconv.Atoi(raw)
		if err != nil {
			http.Error(w, "stroke_index must be an integer", http.StatusBadRequest)
			return
		}
		strokes, err := h.service.StrokesReceived(ctx, handicap, si)
		if err != nil {
			h.writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"handicap":     handicap,
			"stroke_index": si,
			"strokes":      strokes,
		})
		return
	}

	course := h.service.GetCourse(ctx)
	writeJSON(w, http.StatusOK, map[string]any{
		"handicap":        handicap,
		"course_handicap": tournamentdomain.RoundHandicap(handicap),
		"holes":           tournamentdomain.Allocation(course, handicap),
		"total":           tournamentdomain.TotalStrokes(course, handicap),
	})
}

func (h *TournamentHandlers) HandleGetGroupLeaderboard(w http.ResponseWriter, r *http.Request) {
	group, err := tournamentdomain.ParseGroup(chi.URLParam(r, "group"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"group":     group,
		"standings": h.service.GroupLeaderboard(r.Context(), group),
	})
}

func (h *TournamentHandlers) HandleGetGroupChart(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	group, err := tournamentdomain.ParseGroup(chi.URLParam(r, "group"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	png, err := export.RenderGroupChart(h.service.GetTeams(ctx), group, h.options.Palette)
	if err != nil {
		h.logger.ErrorContext(ctx, "Failed to render group chart",
			attr.String("group", string(group)),
			attr.Error(err),
		)
		http.Error(w, "failed to render chart", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", export.ContentTypePNG)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(png)
}

// HandleGetIndividualLeaderboard includes the display rank so clients don't
// need to know the unranked marker.
func (h *TournamentHandlers) HandleGetIndividualLeaderboard(w http.ResponseWriter, r *http.Request) {
	type row struct {
		tournamentdomain.PlayerStanding
		DisplayRank string `json:"display_rank"`
	}

	standings := h.service.IndividualLeaderboard(r.Context())
	rows := make([]row, 0, len(standings))
	for _, st := range standings {
		rows = append(rows, row{PlayerStanding: st, DisplayRank: st.DisplayRank()})
	}
	writeJSON(w, http.StatusOK, rows)
}

func (h *TournamentHandlers) HandleExportStandings(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	data, err := export.WriteStandings(h.service.Snapshot(ctx), h.now())
	if err != nil {
		h.logger.ErrorContext(ctx, "Failed to export standings", attr.Error(err))
		http.Error(w, "failed to export standings", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", export.ContentTypeXLSX)
	w.Header().Set("Content-Disposition", `attachment; filename="standings.xlsx"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// HandleGetView resolves a screen. The current screen comes from kind and
// its parameters; an optional action moves from it first:
// back, toggle_leaderboard, open_pairing (target=pairing id) or
// open_scorecard (target=player id).
func (h *TournamentHandlers) HandleGetView(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	params := map[string]string{}
	for _, key := range []string{"pairing_id", "player_id"} {
		if q.Has(key) {
			params[key] = q.Get(key)
		}
	}

	view, err := tournamentdomain.ParseView(q.Get("kind"), params)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	switch action := q.Get("action"); action {
	case "":
	case "back":
		view = tournamentdomain.Back(view)
	case "toggle_leaderboard":
		view = tournamentdomain.ToggleLeaderboard(view)
	case "open_pairing", "open_scorecard":
		target, err := strconv.Atoi(q.Get("target"))
		if err != nil {
			http.Error(w, "target must be an integer id", http.StatusBadRequest)
			return
		}
		if action == "open_pairing" {
			view = tournamentdomain.OpenPairing(target)
		} else {
			view = tournamentdomain.OpenScorecard(view, target)
		}
	default:
		http.Error(w, fmt.Sprintf("unknown action %q", action), http.StatusBadRequest)
		return
	}

	screen, err := h.service.ResolveView(r.Context(), view)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, screen)
}

type updateScoreBody struct {
	Value string `json:"value"`
}

// HandleUpdateScore records one hole. The hole in the URL is 1-based.
func (h *TournamentHandlers) HandleUpdateScore(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	teamID, ok := intURLParam(w, r, "teamID")
	if !ok {
		return
	}
	playerID, ok := intURLParam(w, r, "playerID")
	if !ok {
		return
	}
	hole, ok := intURLParam(w, r, "hole")
	if !ok {
		return
	}

	var body updateScoreBody
	if err := json.NewDecoder(io.LimitReader(r.Body, 4096)).Decode(&body); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	result, err := h.service.UpdateScore(ctx, tournamentservice.UpdateScoreRequest{
		TeamID:    teamID,
		PlayerID:  playerID,
		HoleIndex: hole - 1,
		Value:     body.Value,
	})
	if err != nil {
		h.logger.ErrorContext(ctx, "Score update failed", attr.Error(err))
		http.Error(w, "score update failed", http.StatusInternalServerError)
		return
	}
	if failure := tournamentservice.FailureError(result); failure != nil {
		h.writeError(w, r, failure)
		return
	}
	writeJSON(w, http.StatusOK, result.Success)
}

// HandleImportScorecard accepts a multipart "file" field holding a CSV or
// XLSX card for the team in the URL.
func (h *TournamentHandlers) HandleImportScorecard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	teamID, ok := intURLParam(w, r, "teamID")
	if !ok {
		return
	}
	team, found := h.service.Snapshot(ctx).FindTeam(teamID)
	if !found {
		h.writeError(w, r, fmt.Errorf("%w: %d", tournamentdomain.ErrTeamNotFound, teamID))
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.options.MaxUploadBytes)
	if err := r.ParseMultipartForm(h.options.MaxUploadBytes); err != nil {
		http.Error(w, "invalid upload", http.StatusBadRequest)
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "missing file field", http.StatusBadRequest)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		http.Error(w, "failed to read upload", http.StatusBadRequest)
		return
	}

	parser, err := h.parsers.GetParser(header.Filename)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	card, err := parser.Parse(data, header.Filename)
	if err != nil {
		h.logger.WarnContext(ctx, "Unreadable scorecard upload",
			attr.String("file_name", header.Filename),
			attr.Int("file_size", len(data)),
			attr.Error(err),
		)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	entries, unmatched := parsers.Entries(card, team)
	result, err := h.service.ImportScorecard(ctx, teamID, entries)
	if err != nil {
		h.logger.ErrorContext(ctx, "Scorecard import failed", attr.Error(err))
		http.Error(w, "scorecard import failed", http.StatusInternalServerError)
		return
	}
	if failure := tournamentservice.FailureError(result); failure != nil {
		h.writeError(w, r, failure)
		return
	}

	if unmatched == nil {
		unmatched = []string{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"summary":           result.Success,
		"unmatched_players": unmatched,
	})
}

func (h *TournamentHandlers) HandleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// statusFor maps domain and service errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, tournamentdomain.ErrTeamNotFound),
		errors.Is(err, tournamentdomain.ErrPlayerNotFound),
		errors.Is(err, tournamentdomain.ErrPairingNotFound):
		return http.StatusNotFound
	case errors.Is(err, tournamentdomain.ErrScoreOutOfRange):
		return http.StatusUnprocessableEntity
	case errors.Is(err, tournamentdomain.ErrHoleOutOfRange),
		errors.Is(err, tournamentdomain.ErrInvalidScore),
		errors.Is(err, tournamentdomain.ErrUnknownGroup),
		errors.Is(err, tournamentdomain.ErrUnknownView),
		errors.Is(err, tournamentservice.ErrInvalidStrokeIndex),
		errors.Is(err, tournamentservice.ErrInvalidHandicap),
		errors.Is(err, tournamentservice.ErrEmptyImport):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (h *TournamentHandlers) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		h.logger.ErrorContext(r.Context(), "Request failed",
			attr.String("path", r.URL.Path),
			attr.Error(err),
		)
		writeJSON(w, status, map[string]string{"error": "internal error"})
		return
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

// writeJSON encodes before writing the header; an encode failure is a 500.
func writeJSON(w http.ResponseWriter, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(append(body, '\n'))
}

func intURLParam(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	v, err := strconv.Atoi(chi.URLParam(r, name))
	if err != nil {
		http.Error(w, fmt.Sprintf("%s must be an integer", name), http.StatusBadRequest)
		return 0, false
	}
	return v, true
}
