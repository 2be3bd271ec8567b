package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/preston-bernstein/saturday-stats/internal/app/teams"
	"github.com/preston-bernstein/saturday-stats/internal/config"
	"github.com/preston-bernstein/saturday-stats/internal/domain/games"
	domainteams "github.com/preston-bernstein/saturday-stats/internal/domain/teams"
	"github.com/preston-bernstein/saturday-stats/internal/gamecast"
	"github.com/preston-bernstein/saturday-stats/internal/logging"
	"github.com/preston-bernstein/saturday-stats/internal/roster"
	"github.com/preston-bernstein/saturday-stats/internal/server"
)

const (
	appVersion  = "dev"
	serviceName = "saturday-stats"
)

func main() {
	if os.Getenv("SKIP_SERVER_RUN") == "1" {
		return
	}

	_ = godotenv.Load(".env")

	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          serviceName,
		Short:        "Live college football dashboard service",
		Version:      appVersion,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}
	root.AddCommand(serveCmd())
	root.AddCommand(teamsCmd())
	root.AddCommand(situationCmd())
	return root
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP and frame push server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}
}

func runServe(parent context.Context) error {
	if parent == nil {
		parent = context.Background()
	}
	cfg := config.Load()
	logger := logging.NewLogger(logging.Config{
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
		Service: serviceName,
		Version: appVersion,
	})

	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv, err := server.New(cfg, logger)
	if err != nil {
		logging.Error(logger, "server setup failed", err)
		return err
	}
	srv.Run(ctx, stop)
	return nil
}

func teamsCmd() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "teams",
		Short: "List the team roster used for name matching",
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := loadTeams(file)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, t := range items {
				fmt.Fprintf(out, "%-6s %-24s %-20s %s\n", t.Abbreviation, t.School, t.Mascot, t.Conference)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "roster YAML file (defaults to the embedded roster)")
	return cmd
}

func situationCmd() *cobra.Command {
	var (
		file       string
		home       string
		away       string
		possession string
		lastPlay   string
		period     int
	)
	cmd := &cobra.Command{
		Use:     "situation [text]",
		Short:   "Print the field view derived from a situation string",
		Example: `  saturday-stats situation "3rd & 4 at UGA 35" --home "Georgia Bulldogs" --away "Alabama Crimson Tide" --possession away`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := loadTeams(file)
			if err != nil {
				return err
			}
			g := games.Game{
				ID:                "cli",
				HomeTeam:          home,
				AwayTeam:          away,
				Status:            games.StatusInProgress,
				CurrentPeriod:     period,
				CurrentPossession: games.Possession(possession).Normalize(),
				CurrentSituation:  args[0],
				LastPlay:          lastPlay,
			}
			return writeView(cmd.OutOrStdout(), gamecast.BuildView(g, teams.NewService(items)))
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "roster YAML file (defaults to the embedded roster)")
	cmd.Flags().StringVar(&home, "home", "", "home team display name")
	cmd.Flags().StringVar(&away, "away", "", "away team display name")
	cmd.Flags().StringVar(&possession, "possession", "none", "possessing side: home, away or none")
	cmd.Flags().StringVar(&lastPlay, "last-play", "", "last play description")
	cmd.Flags().IntVar(&period, "period", 1, "current period")
	return cmd
}

func loadTeams(file string) ([]domainteams.Team, error) {
	if file == "" {
		return roster.Default()
	}
	return roster.Load(file)
}

func writeView(w io.Writer, v gamecast.View) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
