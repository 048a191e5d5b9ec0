package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	obs "github.com/Black-And-White-Club/frolf-bot-shared/observability"
)

// Config struct to hold the configuration settings
type Config struct {
	HTTP          HTTPConfig          `yaml:"http"`
	NATS          NATSConfig          `yaml:"nats"`
	Scoring       ScoringConfig       `yaml:"scoring"`
	Tournament    TournamentConfig    `yaml:"tournament"`
	Export        ExportConfig        `yaml:"export"`
	Observability ObservabilityConfig `yaml:"observability"`
}

// HTTPConfig holds the API server settings.
type HTTPConfig struct {
	Addr            string        `yaml:"addr"`
	ScoreRateLimit  float64       `yaml:"score_rate_limit"` // score updates per second per client
	ScoreRateBurst  int           `yaml:"score_rate_burst"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	MaxUploadBytes  int64         `yaml:"max_upload_bytes"`
}

// NATSConfig holds NATS configuration. An empty URL disables forwarding.
type NATSConfig struct {
	URL     string `yaml:"url"`
	Subject string `yaml:"subject"`
}

// ScoringConfig controls score input validation.
type ScoringConfig struct {
	EnforceBounds *bool `yaml:"enforce_bounds"`
	MinScore      int   `yaml:"min_score"`
	MaxScore      int   `yaml:"max_score"`
}

// BoundsEnforced defaults to true when enforce_bounds is not set.
func (s ScoringConfig) BoundsEnforced() bool {
	return s.EnforceBounds == nil || *s.EnforceBounds
}

// TournamentConfig points at the course/roster fixture. Empty uses the
// embedded default.
type TournamentConfig struct {
	Fixture string `yaml:"fixture"`
}

// ExportConfig holds where `export` publishes the standings workbook.
type ExportConfig struct {
	S3Bucket string `yaml:"s3_bucket"`
	S3Prefix string `yaml:"s3_prefix"`
}

// ObservabilityConfig holds configuration for observability components
type ObservabilityConfig struct {
	LokiURL         string  `yaml:"loki_url"`
	MetricsAddress  string  `yaml:"metrics_address"`
	TempoEndpoint   string  `yaml:"tempo_endpoint"`
	TempoInsecure   bool    `yaml:"tempo_insecure"`
	TempoSampleRate float64 `yaml:"tempo_sample_rate"`
	Environment     string  `yaml:"environment"`
	Version         string  `yaml:"version"`
	OTLPEndpoint    string  `yaml:"otlp_endpoint"`
	OTLPTransport   string  `yaml:"otlp_transport"` // grpc|http
	OTLPLogsEnabled bool    `yaml:"otlp_logs_enabled"`
}

// LoadConfig loads the configuration from a YAML file. A missing file falls
// back to environment variables and defaults.
func LoadConfig(filename string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(filename)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config: %w", err)
		}
	case os.IsNotExist(err):
		// env + defaults only
	default:
		return nil, fmt.Errorf("failed to read config %s: %w", filename, err)
	}

	if err := applyEnv(&cfg); err != nil {
		return nil, err
	}
	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// --- OVERRIDE WITH ENV VARS IF PRESENT ---
func applyEnv(cfg *Config) error {
	if v := os.Getenv("HTTP_ADDR"); v != "" {
		cfg.HTTP.Addr = v
	}
	if v := os.Getenv("SCORE_RATE_LIMIT"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("invalid SCORE_RATE_LIMIT value: %w", err)
		}
		cfg.HTTP.ScoreRateLimit = f
	}
	if v := os.Getenv("SCORE_RATE_BURST"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid SCORE_RATE_BURST value: %w", err)
		}
		cfg.HTTP.ScoreRateBurst = n
	}
	if v := os.Getenv("NATS_URL"); v != "" {
		cfg.NATS.URL = v
	}
	if v := os.Getenv("NATS_SUBJECT"); v != "" {
		cfg.NATS.Subject = v
	}
	if v := os.Getenv("SCORING_ENFORCE_BOUNDS"); v != "" {
		enforce := v == "true"
		cfg.Scoring.EnforceBounds = &enforce
	}
	if v := os.Getenv("TOURNAMENT_FIXTURE"); v != "" {
		cfg.Tournament.Fixture = v
	}
	if v := os.Getenv("EXPORT_S3_BUCKET"); v != "" {
		cfg.Export.S3Bucket = v
	}
	if v := os.Getenv("EXPORT_S3_PREFIX"); v != "" {
		cfg.Export.S3Prefix = v
	}
	if v := os.Getenv("LOKI_URL"); v != "" {
		cfg.Observability.LokiURL = v
	}
	if v := os.Getenv("METRICS_ADDRESS"); v != "" {
		cfg.Observability.MetricsAddress = v
	}
	if v := os.Getenv("TEMPO_ENDPOINT"); v != "" {
		cfg.Observability.TempoEndpoint = v
	}
	if v := os.Getenv("TEMPO_INSECURE"); v != "" {
		cfg.Observability.TempoInsecure = v == "true"
	}
	if v := os.Getenv("TEMPO_SAMPLE_RATE"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("invalid TEMPO_SAMPLE_RATE value: %w", err)
		}
		cfg.Observability.TempoSampleRate = f
	}
	if v := os.Getenv("OTLP_ENDPOINT"); v != "" {
		cfg.Observability.OTLPEndpoint = v
	}
	if v := os.Getenv("OTLP_TRANSPORT"); v != "" {
		cfg.Observability.OTLPTransport = v
	}
	if v := os.Getenv("OTLP_LOGS_ENABLED"); v != "" {
		cfg.Observability.OTLPLogsEnabled = v == "true"
	}
	if v := os.Getenv("ENV"); v != "" {
		cfg.Observability.Environment = v
	}
	return nil
}

func applyDefaults(cfg *Config) {
	if cfg.HTTP.Addr == "" {
		cfg.HTTP.Addr = ":8080"
	}
	if cfg.HTTP.ScoreRateLimit == 0 {
		cfg.HTTP.ScoreRateLimit = 5
	}
	if cfg.HTTP.ScoreRateBurst == 0 {
		cfg.HTTP.ScoreRateBurst = 20
	}
	if cfg.HTTP.ShutdownTimeout == 0 {
		cfg.HTTP.ShutdownTimeout = 10 * time.Second
	}
	if cfg.HTTP.MaxUploadBytes == 0 {
		cfg.HTTP.MaxUploadBytes = 1 << 20
	}
	if cfg.NATS.Subject == "" {
		cfg.NATS.Subject = "tournament.scores"
	}
	if cfg.Scoring.MinScore == 0 {
		cfg.Scoring.MinScore = 1
	}
	if cfg.Scoring.MaxScore == 0 {
		cfg.Scoring.MaxScore = 15
	}
	if cfg.Observability.Environment == "" {
		cfg.Observability.Environment = "development"
	}
	if cfg.Observability.Version == "" {
		cfg.Observability.Version = "dev"
	}
	if cfg.Observability.TempoSampleRate == 0 {
		cfg.Observability.TempoSampleRate = 0.1
	}
}

// Validate rejects settings the server cannot start with.
func (c *Config) Validate() error {
	if c.Scoring.MinScore > c.Scoring.MaxScore {
		return fmt.Errorf("scoring.min_score (%d) is greater than scoring.max_score (%d)", c.Scoring.MinScore, c.Scoring.MaxScore)
	}
	if c.HTTP.ScoreRateLimit < 0 || c.HTTP.ScoreRateBurst < 0 {
		return fmt.Errorf("http score rate limit and burst must not be negative")
	}
	return nil
}

// ToObsConfig maps the observability section onto the shared init config.
// Metrics are served on the API router, so the shared metrics listener stays
// off.
func ToObsConfig(appCfg *Config) obs.Config {
	return obs.Config{
		ServiceName:     "golf-tournament",
		Environment:     appCfg.Observability.Environment,
		Version:         appCfg.Observability.Version,
		LokiURL:         appCfg.Observability.LokiURL,
		TempoEndpoint:   appCfg.Observability.TempoEndpoint,
		TempoInsecure:   appCfg.Observability.TempoInsecure,
		TempoSampleRate: appCfg.Observability.TempoSampleRate,
		OTLPEndpoint:    appCfg.Observability.OTLPEndpoint,
		OTLPTransport:   appCfg.Observability.OTLPTransport,
		LogsEnabled:     appCfg.Observability.OTLPLogsEnabled,
	}
}
