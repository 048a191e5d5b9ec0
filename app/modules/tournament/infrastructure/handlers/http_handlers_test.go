package tournamenthandlers

import (
	"bytes"
	"encoding/json"
	"math"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	loggerfrolfbot "github.com/Black-And-White-Club/frolf-bot-shared/observability/otel/logging"
	tournamentservice "github.com/Black-And-White-Club/golf-tournament/app/modules/tournament/application"
	"github.com/Black-And-White-Club/golf-tournament/app/modules/tournament/infrastructure/export"
	"github.com/Black-And-White-Club/golf-tournament/app/modules/tournament/infrastructure/fixture"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.opentelemetry.io/otel/trace/noop"
	"golang.org/x/time/rate"
)

func newTestServer(t *testing.T, limiter *IPRateLimiter) http.Handler {
	t.Helper()

	state, err := fixture.Default()
	require.NoError(t, err)

	tracer := noop.NewTracerProvider().Tracer("test")
	metrics := NewFakeMetrics()
	svc := tournamentservice.NewTournamentService(
		tournamentservice.NewStore(state),
		nil,
		loggerfrolfbot.NoOpLogger,
		metrics,
		tracer,
		tournamentservice.DefaultOptions(),
	)

	h := NewTournamentHandlers(svc, nil, loggerfrolfbot.NoOpLogger, tracer, metrics, Options{
		MaxUploadBytes: 1 << 20,
		Palette:        export.DefaultPalette,
	}).(*TournamentHandlers)
	h.now = func() time.Time { return time.Date(2025, 6, 14, 12, 0, 0, 0, time.UTC) }

	if limiter == nil {
		limiter = NewIPRateLimiter(rate.Inf, 1)
	}
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	RegisterRoutes(r, h, limiter)
	return r
}

func do(t *testing.T, srv http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func TestHandleGetCourse(t *testing.T) {
	srv := newTestServer(t, nil)

	rec := do(t, srv, http.MethodGet, "/api/course", "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, float64(72), body["par_total"])
	assert.Equal(t, float64(6155), body["yardage"])
	assert.NotEmpty(t, rec.Header().Get(middleware.RequestIDHeader))
}

func TestHandleGetPlayer(t *testing.T) {
	srv := newTestServer(t, nil)

	tests := []struct {
		name     string
		target   string
		wantCode int
		wantName string
	}{
		{name: "found", target: "/api/players/3", wantCode: http.StatusOK, wantName: "John Wong"},
		{name: "unknown id", target: "/api/players/99", wantCode: http.StatusNotFound},
		{name: "not a number", target: "/api/players/abc", wantCode: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, srv, http.MethodGet, tt.target, "")
			assert.Equal(t, tt.wantCode, rec.Code)
			if tt.wantName != "" {
				body := decode(t, rec)
				assert.Equal(t, tt.wantName, body["name"])
				assert.Equal(t, "Team 1", body["team_name"])
			}
		})
	}
}

func TestHandleUpdateScore(t *testing.T) {
	tests := []struct {
		name     string
		target   string
		body     string
		wantCode int
	}{
		{name: "records a score", target: "/api/teams/1/players/1/holes/1", body: `{"value":"5"}`, wantCode: http.StatusOK},
		{name: "blank clears", target: "/api/teams/1/players/1/holes/1", body: `{"value":""}`, wantCode: http.StatusOK},
		{name: "above bounds", target: "/api/teams/1/players/1/holes/1", body: `{"value":"16"}`, wantCode: http.StatusUnprocessableEntity},
		{name: "not a number", target: "/api/teams/1/players/1/holes/1", body: `{"value":"abc"}`, wantCode: http.StatusBadRequest},
		{name: "hole 19", target: "/api/teams/1/players/1/holes/19", body: `{"value":"4"}`, wantCode: http.StatusBadRequest},
		{name: "unknown team", target: "/api/teams/9/players/1/holes/1", body: `{"value":"4"}`, wantCode: http.StatusNotFound},
		{name: "player on another team", target: "/api/teams/2/players/1/holes/1", body: `{"value":"4"}`, wantCode: http.StatusNotFound},
		{name: "bad body", target: "/api/teams/1/players/1/holes/1", body: `{`, wantCode: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newTestServer(t, nil)
			rec := do(t, srv, http.MethodPut, tt.target, tt.body)
			assert.Equal(t, tt.wantCode, rec.Code, rec.Body.String())
		})
	}
}

func TestHandleUpdateScore_ThenScorecard(t *testing.T) {
	srv := newTestServer(t, nil)

	rec := do(t, srv, http.MethodPut, "/api/teams/1/players/1/holes/1", `{"value":"5"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	update := decode(t, rec)
	assert.Equal(t, float64(5), update["score"])
	assert.Nil(t, update["previous"])
	assert.Equal(t, float64(5), update["gross"])

	rec = do(t, srv, http.MethodPut, "/api/teams/1/players/1/holes/10", `{"value":"6"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, srv, http.MethodGet, "/api/players/1/scorecard", "")
	require.Equal(t, http.StatusOK, rec.Code)
	card := decode(t, rec)
	assert.Equal(t, float64(5), card["out"])
	assert.Equal(t, float64(6), card["in"])
	assert.Equal(t, float64(11), card["gross"])
	assert.Equal(t, float64(23), card["total_strokes"])

	rec = do(t, srv, http.MethodGet, "/api/leaderboard/individual", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var rows []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rows))
	require.Len(t, rows, 8)
	assert.Equal(t, "1", rows[0]["display_rank"])
	assert.Equal(t, "-", rows[1]["display_rank"])
}

func TestHandleGetStrokes(t *testing.T) {
	srv := newTestServer(t, nil)

	rec := do(t, srv, http.MethodGet, "/api/strokes?handicap=22.9&stroke_index=1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(2), decode(t, rec)["strokes"])

	rec = do(t, srv, http.MethodGet, "/api/strokes?handicap=38.7", "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, float64(39), body["total"])
	assert.Equal(t, float64(39), body["course_handicap"])

	tests := []struct {
		name  string
		query string
	}{
		{name: "not a number", query: "handicap=x"},
		{name: "missing", query: ""},
		{name: "negative", query: "handicap=-1"},
		{name: "NaN", query: "handicap=NaN"},
		{name: "NaN with stroke index", query: "handicap=NaN&stroke_index=1"},
		{name: "infinity", query: "handicap=Inf"},
		{name: "positive infinity", query: "handicap=%2BInf&stroke_index=3"},
		{name: "negative infinity", query: "handicap=-Inf"},
		{name: "stroke index 19", query: "handicap=10&stroke_index=19"},
		{name: "stroke index not a number", query: "handicap=10&stroke_index=x"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, srv, http.MethodGet, "/api/strokes?"+tt.query, "")
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.NotEmpty(t, rec.Body.String())
		})
	}
}

func TestWriteJSON_UnencodableValue(t *testing.T) {
	rec := httptest.NewRecorder()
	writeJSON(rec, http.StatusOK, map[string]any{"handicap": math.NaN()})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestHandleLeaderboards(t *testing.T) {
	srv := newTestServer(t, nil)

	rec := do(t, srv, http.MethodGet, "/api/leaderboard/groups/a", "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "A", body["group"])
	assert.Len(t, body["standings"], 1)

	assert.Equal(t, http.StatusBadRequest, do(t, srv, http.MethodGet, "/api/leaderboard/groups/C", "").Code)

	rec = do(t, srv, http.MethodGet, "/api/leaderboard/groups/B/chart.png", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, export.ContentTypePNG, rec.Header().Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("\x89PNG")))

	rec = do(t, srv, http.MethodGet, "/api/leaderboard/export.xlsx", "")
	require.Equal(t, http.StatusOK, rec.Code)
	f, err := excelize.OpenReader(bytes.NewReader(rec.Body.Bytes()))
	require.NoError(t, err)
	defer f.Close()
	assert.Contains(t, f.GetSheetList(), export.SheetIndividual)
}

func TestHandleGetPairings(t *testing.T) {
	srv := newTestServer(t, nil)

	rec := do(t, srv, http.MethodGet, "/api/pairings", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var pairings []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &pairings))
	assert.Len(t, pairings, 2)

	rec = do(t, srv, http.MethodGet, "/api/pairings/2", "")
	require.Equal(t, http.StatusOK, rec.Code)
	detail := decode(t, rec)
	team1 := detail["team1"].([]any)
	require.Len(t, team1, 2)
	assert.Equal(t, "Jon Chen", team1[0].(map[string]any)["name"])

	assert.Equal(t, http.StatusNotFound, do(t, srv, http.MethodGet, "/api/pairings/7", "").Code)
}

func TestHandleGetView(t *testing.T) {
	srv := newTestServer(t, nil)

	tests := []struct {
		name     string
		query    string
		wantCode int
		wantKind string
		wantBack string
	}{
		{name: "default is pairings", query: "", wantCode: http.StatusOK, wantKind: "pairings", wantBack: "pairings"},
		{name: "toggle to leaderboard", query: "?kind=pairings&action=toggle_leaderboard", wantCode: http.StatusOK, wantKind: "leaderboard", wantBack: "pairings"},
		{name: "open pairing", query: "?action=open_pairing&target=1", wantCode: http.StatusOK, wantKind: "pairing-detail", wantBack: "pairings"},
		{name: "scorecard from pairing", query: "?kind=pairing-detail&pairing_id=1&action=open_scorecard&target=2", wantCode: http.StatusOK, wantKind: "scorecard", wantBack: "pairing-detail"},
		{name: "back from scorecard", query: "?kind=scorecard&player_id=2&pairing_id=1&action=back", wantCode: http.StatusOK, wantKind: "pairing-detail", wantBack: "pairings"},
		{name: "unknown kind", query: "?kind=bogus", wantCode: http.StatusBadRequest},
		{name: "unknown action", query: "?action=jump", wantCode: http.StatusBadRequest},
		{name: "bad target", query: "?action=open_pairing&target=x", wantCode: http.StatusBadRequest},
		{name: "unknown pairing", query: "?kind=pairing-detail&pairing_id=9", wantCode: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, srv, http.MethodGet, "/api/view"+tt.query, "")
			require.Equal(t, tt.wantCode, rec.Code, rec.Body.String())
			if tt.wantCode != http.StatusOK {
				return
			}
			body := decode(t, rec)
			assert.Equal(t, tt.wantKind, body["kind"])
			assert.Equal(t, tt.wantBack, body["back_kind"])
		})
	}
}

func multipartUpload(t *testing.T, fileName, content string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", fileName)
	require.NoError(t, err)
	_, err = fw.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func TestHandleImportScorecard(t *testing.T) {
	csv := "player,1,2,3\nAndy Yang,5,4,\n2,20,4,4\nNobody,3,3,3\n"

	tests := []struct {
		name          string
		target        string
		fileName      string
		wantCode      int
		wantApplied   float64
		wantRejected  int
		wantUnmatched []any
	}{
		{
			name:          "applies matched rows",
			target:        "/api/teams/1/scorecards",
			fileName:      "team1.csv",
			wantCode:      http.StatusOK,
			wantApplied:   4,
			wantRejected:  1,
			wantUnmatched: []any{"Nobody"},
		},
		{name: "unknown team", target: "/api/teams/9/scorecards", fileName: "team1.csv", wantCode: http.StatusNotFound},
		{name: "unsupported file", target: "/api/teams/1/scorecards", fileName: "team1.pdf", wantCode: http.StatusBadRequest},
		{name: "nobody on this team", target: "/api/teams/2/scorecards", fileName: "team1.csv", wantCode: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newTestServer(t, nil)
			body, contentType := multipartUpload(t, tt.fileName, csv)
			req := httptest.NewRequest(http.MethodPost, tt.target, body)
			req.Header.Set("Content-Type", contentType)
			rec := httptest.NewRecorder()
			srv.ServeHTTP(rec, req)

			require.Equal(t, tt.wantCode, rec.Code, rec.Body.String())
			if tt.wantCode != http.StatusOK {
				return
			}
			out := decode(t, rec)
			summary := out["summary"].(map[string]any)
			assert.Equal(t, tt.wantApplied, summary["applied"])
			assert.Len(t, summary["rejected"], tt.wantRejected)
			assert.Equal(t, tt.wantUnmatched, out["unmatched_players"])
		})
	}
}

func TestHandleUpdateScore_RateLimited(t *testing.T) {
	srv := newTestServer(t, NewIPRateLimiter(0, 1))

	rec := do(t, srv, http.MethodPut, "/api/teams/1/players/1/holes/1", `{"value":"5"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, srv, http.MethodPut, "/api/teams/1/players/1/holes/2", `{"value":"5"}`)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "1", rec.Header().Get("Retry-After"))

	// Reads are not limited.
	assert.Equal(t, http.StatusOK, do(t, srv, http.MethodGet, "/api/teams", "").Code)
}

func TestHandleHealth(t *testing.T) {
	srv := newTestServer(t, nil)
	rec := do(t, srv, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", decode(t, rec)["status"])
}
