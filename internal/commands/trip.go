package commands

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/tripsplit-dev/tripsplit/internal/config"
	"github.com/tripsplit-dev/tripsplit/internal/gitops"
	"github.com/tripsplit-dev/tripsplit/internal/ledger"
	"github.com/tripsplit-dev/tripsplit/internal/members"
	"github.com/tripsplit-dev/tripsplit/internal/model"
	"github.com/tripsplit-dev/tripsplit/internal/report"
)

// trip is an opened trip repository.
type trip struct {
	root    string
	cfg     *config.Config
	members *members.Service
	ledger  *ledger.Service
}

func openTrip(opts *rootOptions) (*trip, error) {
	root, err := filepath.Abs(opts.repoDir())
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}

	cfg, err := config.Load(filepath.Join(root, config.FileName))
	if err != nil {
		return nil, fmt.Errorf("%s is not a trip repository (run `tripsplit init`): %w", root, err)
	}

	roster, err := members.Load(root)
	if err != nil {
		return nil, err
	}

	return &trip{
		root:    root,
		cfg:     cfg,
		members: roster,
		ledger:  ledger.NewService(root, roster),
	}, nil
}

func (t *trip) author() gitops.Author {
	return gitops.Author{Name: t.cfg.Git.AuthorName, Email: t.cfg.Git.AuthorEmail}
}

// commit records paths in git when auto-commit is on. Failures only warn:
// the ledger file is already written.
func (t *trip) commit(cmd *cobra.Command, message string, paths ...string) {
	if !t.cfg.Git.AutoCommit || len(paths) == 0 {
		return
	}
	if _, err := gitops.CommitPaths(t.root, message, t.author(), paths...); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: auto-commit failed: %v\n", err)
	}
}

// namer shows members by display name, falling back to the raw ID.
func (t *trip) namer() report.Namer {
	return func(id string) string {
		if m, ok := t.members.Get(id); ok {
			return m.DisplayName()
		}
		return id
	}
}

func (t *trip) expenses() ([]model.Expense, error) {
	return t.ledger.ReadAll()
}
