package commands

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"issueflow/internal/github"
)

var fetchNoEvents bool

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Fetch issues and their histories from GitHub into a local snapshot",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg.GitHub.Owner == "" || cfg.GitHub.Repo == "" {
			return fmt.Errorf("no repository selected: set --owner/--repo or GITHUB_OWNER/GITHUB_REPO")
		}
		if fetchNoEvents {
			cfg.GitHub.WithEvents = false
		}

		client := github.NewClient(cfg.GitHub)
		issues, err := client.FetchIssues(cmd.Context())
		if err != nil {
			return err
		}

		path := cfg.SnapshotPath(cfg.GitHub.Owner, cfg.GitHub.Repo)
		if flagSnapshot != "" {
			path = flagSnapshot
		}
		if err := (github.SnapshotStore{}).Save(path, issues); err != nil {
			return err
		}

		log.Info().Int("issues", len(issues)).Str("path", path).Msg("Snapshot complete")
		fmt.Printf("Fetched %d issues from %s into %s\n", len(issues), repoTitle(), path)
		return nil
	},
}

func init() {
	fetchCmd.Flags().BoolVar(&fetchNoEvents, "no-events", false, "skip per-issue event histories (faster, loses close/assignment precision)")
	rootCmd.AddCommand(fetchCmd)
}
