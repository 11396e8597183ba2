package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tripsplit-dev/tripsplit/internal/importer"
	"github.com/tripsplit-dev/tripsplit/internal/ledger"
	"github.com/tripsplit-dev/tripsplit/internal/model"
	"github.com/tripsplit-dev/tripsplit/internal/split"
)

func newImportCommand(opts *rootOptions) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Record every CSV in import/ as expenses",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := openTrip(opts)
			if err != nil {
				return err
			}

			parser := importer.DefaultRegistry().Get(format)
			if parser == nil {
				return fmt.Errorf("unknown import format %q", format)
			}

			files, err := importer.Scan(t.root)
			if err != nil {
				return err
			}
			if len(files) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Nothing to import.")
				return nil
			}

			for _, file := range files {
				n, err := importFile(t, parser, file)
				if err != nil {
					return fmt.Errorf("importing %s: %w", file.Name, err)
				}
				if err := importer.MarkProcessed(t.root, file.Name); err != nil {
					return err
				}
				t.commit(cmd, fmt.Sprintf("import: %d expenses from %s", n, file.Name),
					"expenses", "import")
				fmt.Fprintf(cmd.OutOrStdout(), "Imported %d expenses from %s\n", n, file.Name)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "generic", "import file format")

	return cmd
}

// importFile records each row of file. Rows that carry their own split keep
// it; the rest are split equally over the whole roster. Every row is checked
// before anything is written.
func importFile(t *trip, parser importer.Parser, file importer.FileInfo) (int, error) {
	f, err := os.Open(file.Path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	rows, err := parser.Parse(f)
	if err != nil {
		return 0, err
	}

	params := make([]ledger.AddParams, len(rows))
	for i, row := range rows {
		p, err := t.importRow(row)
		if err != nil {
			return 0, fmt.Errorf("row %d: %w", i+1, err)
		}
		params[i] = p
	}

	for i, p := range params {
		if _, err := t.ledger.Add(p); err != nil {
			return i, fmt.Errorf("row %d: %w", i+1, err)
		}
	}
	return len(rows), nil
}

func (t *trip) importRow(row importer.Row) (ledger.AddParams, error) {
	payer, ok := t.members.Resolve(row.Payer)
	if !ok {
		return ledger.AddParams{}, fmt.Errorf("unknown payer %q", row.Payer)
	}

	var shares []model.Share
	var err error
	if row.Splits == nil {
		shares, err = split.Equal(row.Amount, t.members.IDs())
	} else {
		inputs := make([]split.Input, len(row.Splits))
		for k, s := range row.Splits {
			id, ok := t.members.Resolve(s.Participant)
			if !ok {
				return ledger.AddParams{}, fmt.Errorf("unknown participant %q", s.Participant)
			}
			inputs[k] = split.ByAmount(id, s.Amount)
		}
		shares, err = split.Custom(row.Amount, inputs)
	}
	if err != nil {
		return ledger.AddParams{}, err
	}

	return ledger.AddParams{
		Date:        row.Date,
		Description: row.Description,
		Payer:       payer,
		Amount:      row.Amount,
		Splits:      shares,
	}, nil
}
