package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tripsplit-dev/tripsplit/internal/config"
	"github.com/tripsplit-dev/tripsplit/internal/gitops"
	"github.com/tripsplit-dev/tripsplit/internal/members"
	"github.com/tripsplit-dev/tripsplit/internal/model"
)

func newInitCommand(opts *rootOptions) *cobra.Command {
	var name string
	var currency string
	var memberFlags []string

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a new trip repository",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := opts.repoDir()
			if len(args) > 0 {
				dir = args[0]
			}

			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			roster, err := parseMemberFlags(memberFlags)
			if err != nil {
				return err
			}

			hash, err := runInit(absDir, name, currency, roster)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Initialized trip %q at %s (%s)\n", name, absDir, hash)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "trip name (required)")
	_ = cmd.MarkFlagRequired("name")
	cmd.Flags().StringVar(&currency, "currency", "USD", "currency label shown next to amounts")
	cmd.Flags().StringArrayVar(&memberFlags, "member", nil, "add a member as ID or ID=Display Name (repeatable)")

	return cmd
}

// parseMemberFlags turns "ana=Ana Lima" or "ana" flags into members.
func parseMemberFlags(entries []string) (*members.Service, error) {
	svc := members.NewService(nil)
	for _, entry := range entries {
		id, name, _ := strings.Cut(entry, "=")
		m := model.Member{ID: strings.TrimSpace(id), Name: strings.TrimSpace(name)}
		if err := svc.Add(m); err != nil {
			return nil, fmt.Errorf("--member %q: %w", entry, err)
		}
	}
	return svc, nil
}

func runInit(dir, name, currency string, roster *members.Service) (string, error) {
	if _, err := os.Stat(filepath.Join(dir, config.FileName)); err == nil {
		return "", fmt.Errorf("%s already exists in %s", config.FileName, dir)
	}

	// Create directory structure.
	dirs := []string{
		"members",
		"expenses",
		"import",
		filepath.Join("import", "processed"),
		"exports",
	}
	for _, d := range dirs {
		if err := os.MkdirAll(filepath.Join(dir, d), 0o755); err != nil {
			return "", fmt.Errorf("creating directory %s: %w", d, err)
		}
	}

	// Write tripsplit.yaml.
	cfg := config.Default(name, currency)
	if err := config.Save(filepath.Join(dir, config.FileName), cfg); err != nil {
		return "", fmt.Errorf("writing config: %w", err)
	}

	// Write roster.
	if err := roster.Save(dir); err != nil {
		return "", fmt.Errorf("writing roster: %w", err)
	}

	// Write .gitignore.
	gitignore := "exports/\n.env\n"
	if err := os.WriteFile(filepath.Join(dir, ".gitignore"), []byte(gitignore), 0o644); err != nil {
		return "", fmt.Errorf("writing .gitignore: %w", err)
	}

	// Keep otherwise empty directories in git.
	for _, d := range []string{"expenses", "import"} {
		if err := os.WriteFile(filepath.Join(dir, d, ".gitkeep"), []byte{}, 0o644); err != nil {
			return "", fmt.Errorf("writing .gitkeep: %w", err)
		}
	}

	// Initialize git and create initial commit.
	if err := gitops.Init(dir); err != nil {
		return "", fmt.Errorf("git init: %w", err)
	}

	author := gitops.Author{Name: cfg.Git.AuthorName, Email: cfg.Git.AuthorEmail}
	hash, err := gitops.CommitAll(dir, "init: Start trip "+name, author)
	if err != nil {
		return "", fmt.Errorf("initial commit: %w", err)
	}
	return hash, nil
}
