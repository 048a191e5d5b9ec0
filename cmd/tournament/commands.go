package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/Black-And-White-Club/frolf-bot-shared/observability"
	"github.com/Black-And-White-Club/frolf-bot-shared/observability/attr"
	"github.com/Black-And-White-Club/golf-tournament/app"
	"github.com/Black-And-White-Club/golf-tournament/app/modules/tournament"
	tournamentservice "github.com/Black-And-White-Club/golf-tournament/app/modules/tournament/application"
	tournamentdomain "github.com/Black-And-White-Club/golf-tournament/app/modules/tournament/domain"
	"github.com/Black-And-White-Club/golf-tournament/app/modules/tournament/infrastructure/export"
	"github.com/Black-And-White-Club/golf-tournament/app/modules/tournament/infrastructure/fixture"
	"github.com/Black-And-White-Club/golf-tournament/app/modules/tournament/infrastructure/parsers"
	"github.com/Black-And-White-Club/golf-tournament/config"
	"github.com/urfave/cli/v2"
	"go.opentelemetry.io/otel/trace/noop"
)

func fixtureFlag() cli.Flag {
	return &cli.StringFlag{
		Name:  "fixture",
		Usage: "course and roster YAML; defaults to tournament.fixture or the built-in course",
	}
}

func scoresFlag() cli.Flag {
	return &cli.StringSliceFlag{
		Name:  "scores",
		Usage: "apply a scorecard file before reporting, as TEAM_ID=PATH (.csv or .xlsx); repeatable",
	}
}

func newCLI() *cli.App {
	return &cli.App{
		Name:  "tournament",
		Usage: "golf tournament scoring server and tools",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Value:   "config.yaml",
				Usage:   "path to the configuration file",
				EnvVars: []string{"TOURNAMENT_CONFIG"},
			},
		},
		Commands: []*cli.Command{
			serveCommand(),
			leaderboardCommand(),
			strokesCommand(),
			exportCommand(),
		},
	}
}

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "run the scoring API and event processing",
		Flags: []cli.Flag{fixtureFlag()},
		Action: func(c *cli.Context) error {
			ctx, cancel := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
			defer cancel()

			cfg, err := config.LoadConfig(c.String("config"))
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			obs, err := observability.Init(ctx, config.ToObsConfig(cfg))
			if err != nil {
				return fmt.Errorf("failed to initialize observability: %w", err)
			}
			logger := obs.Provider.Logger
			tracer := obs.Provider.TracerProvider.Tracer("golf-tournament")

			state, err := loadState(c, cfg)
			if err != nil {
				return err
			}

			application, err := app.NewApp(ctx, cfg, logger, tracer, state)
			if err != nil {
				return err
			}
			defer application.Close()

			logger.Info("Starting tournament server")
			if err := application.Run(ctx); err != nil {
				return err
			}
			logger.Info("Tournament server stopped")
			return nil
		},
	}
}

func leaderboardCommand() *cli.Command {
	return &cli.Command{
		Name:  "leaderboard",
		Usage: "print group and individual standings",
		Flags: []cli.Flag{
			fixtureFlag(),
			scoresFlag(),
			&cli.StringFlag{Name: "group", Usage: "only print this group (A or B)"},
			&cli.BoolFlag{Name: "json", Usage: "print JSON instead of tables"},
		},
		Action: func(c *cli.Context) error {
			m, err := offlineModule(c)
			if err != nil {
				return err
			}
			defer m.Close()
			svc := m.Service()

			groups := tournamentdomain.Groups
			if g := c.String("group"); g != "" {
				group, err := tournamentdomain.ParseGroup(g)
				if err != nil {
					return err
				}
				groups = []tournamentdomain.Group{group}
			}

			if c.Bool("json") {
				out := map[string]any{}
				for _, g := range groups {
					out["group_"+strings.ToLower(string(g))] = svc.GroupLeaderboard(c.Context, g)
				}
				if c.String("group") == "" {
					out["individual"] = svc.IndividualLeaderboard(c.Context)
				}
				enc := json.NewEncoder(c.App.Writer)
				enc.SetIndent("", "  ")
				return enc.Encode(out)
			}

			for _, g := range groups {
				writeGroupTable(c.App.Writer, g, svc.GroupLeaderboard(c.Context, g))
			}
			if c.String("group") == "" {
				writeIndividualTable(c.App.Writer, svc.IndividualLeaderboard(c.Context))
			}
			return nil
		},
	}
}

func strokesCommand() *cli.Command {
	return &cli.Command{
		Name:  "strokes",
		Usage: "show handicap strokes received per hole",
		Flags: []cli.Flag{
			fixtureFlag(),
			&cli.Float64Flag{Name: "handicap", Usage: "handicap index", Required: true},
			&cli.IntFlag{Name: "stroke-index", Usage: "only report this stroke index (1-18)"},
		},
		Action: func(c *cli.Context) error {
			m, err := offlineModule(c)
			if err != nil {
				return err
			}
			defer m.Close()
			svc := m.Service()
			idx := c.Float64("handicap")
			if err := tournamentservice.ValidateHandicap(idx); err != nil {
				return err
			}

			if c.IsSet("stroke-index") {
				n, err := svc.StrokesReceived(c.Context, idx, c.Int("stroke-index"))
				if err != nil {
					return err
				}
				fmt.Fprintln(c.App.Writer, n)
				return nil
			}

			course := svc.GetCourse(c.Context)
			alloc := tournamentdomain.Allocation(course, idx)
			tw := tabwriter.NewWriter(c.App.Writer, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "Hole\tPar\tSI\tStrokes")
			for i, h := range course.Holes {
				fmt.Fprintf(tw, "%d\t%d\t%d\t%d\n", h.Number, h.Par, h.StrokeIndex, alloc[i])
			}
			fmt.Fprintf(tw, "Total\t%d\t\t%d\n", course.ParTotal(), tournamentdomain.TotalStrokes(course, idx))
			return tw.Flush()
		},
	}
}

func exportCommand() *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "write the standings workbook and group charts",
		Flags: []cli.Flag{
			fixtureFlag(),
			scoresFlag(),
			&cli.StringFlag{Name: "out", Value: "standings.xlsx", Usage: "workbook output path"},
			&cli.StringFlag{Name: "chart-dir", Usage: "also write one PNG chart per group into this directory"},
			&cli.BoolFlag{Name: "upload", Usage: "upload the files to export.s3_bucket"},
		},
		Action: func(c *cli.Context) error {
			m, err := offlineModule(c)
			if err != nil {
				return err
			}
			defer m.Close()
			svc := m.Service()
			now := time.Now().UTC()

			files := map[string][]byte{}
			workbook, err := export.WriteStandings(svc.Snapshot(c.Context), now)
			if err != nil {
				return err
			}
			if err := writeFile(c.String("out"), workbook); err != nil {
				return err
			}
			files[filepath.Base(c.String("out"))] = workbook
			fmt.Fprintf(c.App.Writer, "wrote %s\n", c.String("out"))

			if dir := c.String("chart-dir"); dir != "" {
				for _, g := range tournamentdomain.Groups {
					png, err := export.RenderGroupChart(svc.GetTeams(c.Context), g, export.DefaultPalette)
					if err != nil {
						return err
					}
					name := "group-" + strings.ToLower(string(g)) + ".png"
					path := filepath.Join(dir, name)
					if err := writeFile(path, png); err != nil {
						return err
					}
					files[name] = png
					fmt.Fprintf(c.App.Writer, "wrote %s\n", path)
				}
			}

			if !c.Bool("upload") {
				return nil
			}
			cfg, err := config.LoadConfig(c.String("config"))
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			uploader, err := export.NewS3Uploader(c.Context, cfg.Export.S3Bucket, cfg.Export.S3Prefix, offlineLogger(c.App.ErrWriter, cfg))
			if err != nil {
				return err
			}
			return uploadAll(c.Context, c.App.Writer, uploader, files, now)
		},
	}
}

type uploader interface {
	Upload(ctx context.Context, name, contentType string, data []byte, at time.Time) (string, error)
}

func uploadAll(ctx context.Context, w io.Writer, u uploader, files map[string][]byte, at time.Time) error {
	for name, data := range files {
		contentType := export.ContentTypeXLSX
		if strings.HasSuffix(name, ".png") {
			contentType = export.ContentTypePNG
		}
		key, err := u.Upload(ctx, name, contentType, data, at)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "uploaded %s\n", key)
	}
	return nil
}

// offlineModule builds the tournament module without HTTP or an event bus
// and applies any --scores files.
func offlineModule(c *cli.Context) (*tournament.Module, error) {
	cfg, err := config.LoadConfig(c.String("config"))
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	state, err := loadState(c, cfg)
	if err != nil {
		return nil, err
	}
	m, err := tournament.NewModule(c.Context, cfg, tournament.Deps{
		Logger: offlineLogger(c.App.ErrWriter, cfg),
		Tracer: noop.NewTracerProvider().Tracer("tournament-cli"),
	}, state)
	if err != nil {
		return nil, err
	}
	for _, arg := range c.StringSlice("scores") {
		if err := applyScores(c.Context, c.App.ErrWriter, m.Service(), arg); err != nil {
			m.Close()
			return nil, err
		}
	}
	return m, nil
}

func loadState(c *cli.Context, cfg *config.Config) (tournamentdomain.State, error) {
	path := cfg.Tournament.Fixture
	if c.IsSet("fixture") {
		path = c.String("fixture")
	}
	return fixture.Load(path)
}

// offlineLogger carries the same service attributes as the serve logger but
// writes warnings and errors to w, leaving stdout to command output.
func offlineLogger(w io.Writer, cfg *config.Config) *slog.Logger {
	obsCfg := config.ToObsConfig(cfg)
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelWarn})).With(
		attr.String("service", obsCfg.ServiceName),
		attr.String("environment", obsCfg.Environment),
		attr.String("version", obsCfg.Version),
	)
}

// applyScores imports one TEAM_ID=PATH scorecard file.
func applyScores(ctx context.Context, w io.Writer, svc tournamentservice.Service, arg string) error {
	teamArg, path, ok := strings.Cut(arg, "=")
	if !ok {
		return fmt.Errorf("invalid --scores %q, want TEAM_ID=PATH", arg)
	}
	teamID, err := strconv.Atoi(teamArg)
	if err != nil {
		return fmt.Errorf("invalid team id in --scores %q: %w", arg, err)
	}
	team, found := svc.Snapshot(ctx).FindTeam(teamID)
	if !found {
		return fmt.Errorf("%w: %d", tournamentdomain.ErrTeamNotFound, teamID)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read scorecard: %w", err)
	}
	parser, err := parsers.NewFactory().GetParser(path)
	if err != nil {
		return err
	}
	card, err := parser.Parse(data, filepath.Base(path))
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}

	entries, unmatched := parsers.Entries(card, team)
	for _, name := range unmatched {
		fmt.Fprintf(w, "%s: no player %q on %s\n", path, name, team.Name)
	}
	result, err := svc.ImportScorecard(ctx, teamID, entries)
	if err != nil {
		return err
	}
	if err := tournamentservice.FailureError(result); err != nil {
		return fmt.Errorf("import %s: %w", path, err)
	}
	for _, rej := range result.Success.Rejected {
		fmt.Fprintf(w, "%s: rejected player %d hole %d: %s\n", path, rej.PlayerID, rej.HoleIndex+1, rej.Reason)
	}
	return nil
}

func writeGroupTable(w io.Writer, g tournamentdomain.Group, rows []tournamentdomain.TeamStanding) {
	fmt.Fprintf(w, "Group %s\n", g)
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "Pos\tTeam\tGross\tHcp\tNet")
	for i, st := range rows {
		fmt.Fprintf(tw, "%d\t%s\t%d\t%.1f\t%.1f\n", i+1, st.Team.Name, st.Gross, tournamentdomain.TeamHandicap(st.Team), st.Net)
	}
	tw.Flush()
	fmt.Fprintln(w)
}

func writeIndividualTable(w io.Writer, rows []tournamentdomain.PlayerStanding) {
	fmt.Fprintln(w, "Individual")
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "Rank\tPlayer\tTeam\tHcp\tGross\tNet")
	for _, st := range rows {
		net := "-"
		if st.Ranked {
			net = strconv.FormatFloat(st.Net, 'f', 1, 64)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%.1f\t%d\t%s\n", st.DisplayRank(), st.Player.Name, st.TeamName, st.Player.HandicapIndex, st.Gross, net)
	}
	tw.Flush()
}

func writeFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
