package commands

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/tripsplit-dev/tripsplit/internal/model"
	"github.com/tripsplit-dev/tripsplit/internal/money"
	"github.com/tripsplit-dev/tripsplit/internal/report"
	"github.com/tripsplit-dev/tripsplit/internal/split"
)

func newSplitCommand() *cobra.Command {
	splitCmd := &cobra.Command{
		Use:   "split",
		Short: "Calculate shares without recording anything",
	}
	splitCmd.AddCommand(newSplitEqualCommand(), newSplitCustomCommand())
	return splitCmd
}

func newSplitEqualCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "equal <amount> <participant>...",
		Short: "Split an amount equally",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := money.Parse(args[0])
			if err != nil {
				return err
			}
			shares, err := split.Equal(amount, args[1:])
			if err != nil {
				return err
			}
			return report.WriteShares(cmd.OutOrStdout(), shares, report.IDNamer, "")
		},
	}
}

func newSplitCustomCommand() *cobra.Command {
	var percent bool

	cmd := &cobra.Command{
		Use:   "custom <amount> <participant=value>...",
		Short: "Split an amount by explicit amounts or percentages",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := money.Parse(args[0])
			if err != nil {
				return err
			}
			mode := split.ModeAmount
			if percent {
				mode = split.ModePercentage
			}
			inputs, err := parseInputs(args[1:], mode)
			if err != nil {
				return err
			}
			shares, err := split.Custom(amount, inputs)
			if err != nil {
				return err
			}
			return report.WriteShares(cmd.OutOrStdout(), shares, report.IDNamer, "")
		},
	}

	cmd.Flags().BoolVar(&percent, "percent", false, "values are percentages of the amount")

	return cmd
}

// parseInputs turns "ana=40.00" assignments into split inputs of one mode.
func parseInputs(entries []string, mode split.Mode) ([]split.Input, error) {
	inputs := make([]split.Input, 0, len(entries))
	for _, entry := range entries {
		participant, value, ok := strings.Cut(entry, "=")
		if !ok || participant == "" {
			return nil, fmt.Errorf("expected participant=value, got %q", entry)
		}
		value = strings.TrimSuffix(strings.TrimSpace(value), "%")

		switch mode {
		case split.ModePercentage:
			pct, err := decimal.NewFromString(value)
			if err != nil {
				return nil, fmt.Errorf("parsing percentage %q: %w", entry, err)
			}
			inputs = append(inputs, split.ByPercentage(participant, pct))
		default:
			amount, err := money.Parse(value)
			if err != nil {
				return nil, err
			}
			inputs = append(inputs, split.ByAmount(participant, amount))
		}
	}
	return inputs, nil
}

// expenseShares picks the split for a recorded expense. With no amounts or
// percentages the expense is split equally over participants, or over the
// whole roster when none are named.
func expenseShares(amount decimal.Decimal, participants, amounts, percents, roster []string) ([]model.Share, error) {
	if len(participants) > 0 && (len(amounts) > 0 || len(percents) > 0) {
		return nil, fmt.Errorf("participants are only accepted for equal splits")
	}

	switch {
	case len(amounts) > 0:
		inputs, err := parseInputs(amounts, split.ModeAmount)
		if err != nil {
			return nil, err
		}
		return split.Custom(amount, inputs)
	case len(percents) > 0:
		inputs, err := parseInputs(percents, split.ModePercentage)
		if err != nil {
			return nil, err
		}
		return split.Custom(amount, inputs)
	default:
		if len(participants) == 0 {
			participants = roster
		}
		return split.Equal(amount, participants)
	}
}
