package commands

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"issueflow/internal/config"
	"issueflow/internal/github"
	"issueflow/internal/logging"
	"issueflow/internal/tracker"
)

var (
	// Version, Commit, and BuildDate are set at build time via ldflags.
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"

	verbose bool
	cfg     *config.AppConfig

	// repository selection, overriding the environment
	flagOwner    string
	flagRepo     string
	flagSnapshot string
)

var rootCmd = &cobra.Command{
	Use:   "issueflow",
	Short: "issueflow computes elapsed-time metrics from issue tracker data",
	Long: `issueflow fetches issue histories from GitHub and computes elapsed-time
metrics over them: time-to-close distributions, open-issue aging, triage
latency and per-user activity, with optional Mermaid charts.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Init(verbose)

		var err error
		cfg, err = config.Load()
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to load configuration")
		}
		if flagOwner != "" {
			cfg.GitHub.Owner = flagOwner
		}
		if flagRepo != "" {
			cfg.GitHub.Repo = flagRepo
		}

		log.Info().
			Str("version", Version).
			Str("commit", Commit).
			Str("buildDate", BuildDate).
			Msg("issueflow starting")
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&flagOwner, "owner", "", "GitHub repository owner (overrides GITHUB_OWNER)")
	rootCmd.PersistentFlags().StringVar(&flagRepo, "repo", "", "GitHub repository name (overrides GITHUB_REPO)")
	rootCmd.PersistentFlags().StringVar(&flagSnapshot, "snapshot", "", "path to an issue snapshot file (defaults to the configured snapshot dir)")
}

// snapshotPath resolves the snapshot file for the current invocation.
func snapshotPath() (string, error) {
	if flagSnapshot != "" {
		return flagSnapshot, nil
	}
	if cfg.GitHub.Owner == "" || cfg.GitHub.Repo == "" {
		return "", fmt.Errorf("no repository selected: set --owner/--repo, GITHUB_OWNER/GITHUB_REPO, or pass --snapshot")
	}
	return cfg.SnapshotPath(cfg.GitHub.Owner, cfg.GitHub.Repo), nil
}

// loadIssues reads the snapshot for the selected repository.
func loadIssues() ([]tracker.Issue, error) {
	path, err := snapshotPath()
	if err != nil {
		return nil, err
	}
	issues, err := github.SnapshotStore{}.Load(path)
	if err != nil {
		return nil, fmt.Errorf("no snapshot at %s (run 'issueflow fetch' first): %w", path, err)
	}
	return issues, nil
}

// repoTitle names the dataset for report headers.
func repoTitle() string {
	if cfg.GitHub.Owner != "" && cfg.GitHub.Repo != "" {
		return cfg.GitHub.Owner + "/" + cfg.GitHub.Repo
	}
	if flagSnapshot != "" {
		return flagSnapshot
	}
	return "Issue Metrics"
}
