package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadConfig_FromFile(t *testing.T) {
	path := writeConfig(t, `
http:
  addr: ":9000"
  score_rate_limit: 2.5
  score_rate_burst: 4
  shutdown_timeout: 3s
nats:
  url: nats://localhost:4222
  subject: live.scores
scoring:
  enforce_bounds: false
  min_score: 1
  max_score: 12
tournament:
  fixture: ./fixture.yaml
export:
  s3_bucket: standings
observability:
  environment: production
  version: 1.4.0
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, ":9000", cfg.HTTP.Addr)
	assert.Equal(t, 2.5, cfg.HTTP.ScoreRateLimit)
	assert.Equal(t, 4, cfg.HTTP.ScoreRateBurst)
	assert.Equal(t, 3*time.Second, cfg.HTTP.ShutdownTimeout)
	assert.Equal(t, "nats://localhost:4222", cfg.NATS.URL)
	assert.Equal(t, "live.scores", cfg.NATS.Subject)
	assert.False(t, cfg.Scoring.BoundsEnforced())
	assert.Equal(t, 12, cfg.Scoring.MaxScore)
	assert.Equal(t, "./fixture.yaml", cfg.Tournament.Fixture)
	assert.Equal(t, "standings", cfg.Export.S3Bucket)
	assert.Equal(t, "production", cfg.Observability.Environment)

	obsCfg := ToObsConfig(cfg)
	assert.Equal(t, "golf-tournament", obsCfg.ServiceName)
	assert.Equal(t, "1.4.0", obsCfg.Version)
}

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTP.Addr)
	assert.Equal(t, 5.0, cfg.HTTP.ScoreRateLimit)
	assert.Equal(t, 20, cfg.HTTP.ScoreRateBurst)
	assert.Equal(t, int64(1<<20), cfg.HTTP.MaxUploadBytes)
	assert.Empty(t, cfg.NATS.URL)
	assert.Equal(t, "tournament.scores", cfg.NATS.Subject)
	assert.True(t, cfg.Scoring.BoundsEnforced())
	assert.Equal(t, 1, cfg.Scoring.MinScore)
	assert.Equal(t, 15, cfg.Scoring.MaxScore)
	assert.Equal(t, "development", cfg.Observability.Environment)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	path := writeConfig(t, "http:\n  addr: \":9000\"\n")
	t.Setenv("HTTP_ADDR", ":7000")
	t.Setenv("NATS_URL", "nats://nats:4222")
	t.Setenv("SCORING_ENFORCE_BOUNDS", "false")
	t.Setenv("SCORE_RATE_BURST", "9")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, ":7000", cfg.HTTP.Addr)
	assert.Equal(t, "nats://nats:4222", cfg.NATS.URL)
	assert.False(t, cfg.Scoring.BoundsEnforced())
	assert.Equal(t, 9, cfg.HTTP.ScoreRateBurst)
}

func TestLoadConfig_Invalid(t *testing.T) {
	_, err := LoadConfig(writeConfig(t, "http: [not a map"))
	assert.Error(t, err)

	_, err = LoadConfig(writeConfig(t, "scoring:\n  min_score: 10\n  max_score: 3\n"))
	assert.Error(t, err)

	t.Setenv("SCORE_RATE_LIMIT", "fast")
	_, err = LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadConfig_ScoreBoundDefaults(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantMin int
		wantMax int
	}{
		{name: "neither set", body: "scoring: {}\n", wantMin: 1, wantMax: 15},
		{name: "only min", body: "scoring:\n  min_score: 2\n", wantMin: 2, wantMax: 15},
		{name: "only max", body: "scoring:\n  max_score: 10\n", wantMin: 1, wantMax: 10},
		{name: "both", body: "scoring:\n  min_score: 3\n  max_score: 9\n", wantMin: 3, wantMax: 9},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := LoadConfig(writeConfig(t, tt.body))
			require.NoError(t, err)
			assert.Equal(t, tt.wantMin, cfg.Scoring.MinScore)
			assert.Equal(t, tt.wantMax, cfg.Scoring.MaxScore)
		})
	}

	_, err := LoadConfig(writeConfig(t, "scoring:\n  min_score: 20\n"))
	assert.Error(t, err, "a min above the default max is still rejected")
}
