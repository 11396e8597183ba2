package commands

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/tripsplit-dev/tripsplit/internal/buildinfo"
)

// RepoEnv names the environment variable that selects the trip repository.
const RepoEnv = "TRIPSPLIT_REPO"

type rootOptions struct {
	repo string
}

// repoDir resolves the trip repository: --repo, then $TRIPSPLIT_REPO, then ".".
func (o *rootOptions) repoDir() string {
	if o.repo != "" {
		return o.repo
	}
	if dir := os.Getenv(RepoEnv); dir != "" {
		return dir
	}
	return "."
}

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:     "tripsplit",
		Short:   "Split shared trip expenses and work out who pays whom",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// .env never overrides variables already set in the environment.
			if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
				return fmt.Errorf("loading .env: %w", err)
			}
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&opts.repo, "repo", "", "trip repository directory (default $"+RepoEnv+" or .)")

	rootCmd.AddCommand(
		newInitCommand(opts),
		newMemberCommand(opts),
		newExpenseCommand(opts),
		newImportCommand(opts),
		newSplitCommand(),
		newBalancesCommand(opts),
		newSettleCommand(opts),
		newServeCommand(opts),
	)

	return rootCmd
}
