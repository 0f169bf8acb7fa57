package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/ednq/internal/extract"
)

// ColumnsOptions holds flags for the columns command.
type ColumnsOptions struct {
	*RootOptions
	Kinds bool
}

// ColumnResult is one result column in JSON output.
type ColumnResult struct {
	Label string `json:"label"`
	Kind  string `json:"kind"`
}

// NewColumnsCommand creates the columns command.
func NewColumnsCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ColumnsOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "columns [file]",
		Short: "List the result columns of a query",
		Long: `Print the result column labels of the :find clause of a Datalog
query, one per line. The query text does not need to be valid EDN.

Example:
  echo '[:find ?name (count ?e) :where [?e :person/name ?name]]' | ednq columns`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runColumns(opts, args, cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.Kinds, "kinds", false, "also print the kind of each column")

	return cmd
}

func runColumns(opts *ColumnsOptions, args []string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	text, _, err := readInput(cmd, args)
	if err != nil {
		return formatter.fail(ExitCommandError, ErrCodeInput, err.Error(), nil)
	}

	cols := columnResults(extract.Projection(strings.TrimSpace(text)))
	opts.log().Debug("projection read", "columns", len(cols))

	if formatter.Format == "json" {
		return formatter.Success(cols)
	}
	for _, c := range cols {
		if opts.Kinds {
			fmt.Fprintf(formatter.Writer, "%s\t%s\n", c.Label, c.Kind)
			continue
		}
		fmt.Fprintln(formatter.Writer, c.Label)
	}
	return nil
}

func columnResults(cols []extract.Column) []ColumnResult {
	out := make([]ColumnResult, len(cols))
	for i, c := range cols {
		out[i] = ColumnResult{Label: c.Label, Kind: c.Kind.String()}
	}
	return out
}
