package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/ednq/internal/edn"
	"github.com/roach88/ednq/internal/extract"
)

// ExtractOptions holds flags for the extract command.
type ExtractOptions struct {
	*RootOptions
	Stop   bool
	Parse  bool
	Pretty bool
}

// ExtractResult is the JSON payload of the extract command.
type ExtractResult struct {
	Query string `json:"query"`
}

// NewExtractCommand creates the extract command.
func NewExtractCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ExtractOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "extract [file]",
		Short: "Pull a query literal out of model output",
		Long: `Recover the Datalog query literal from free-form generator output
read from a file or stdin. Code fences and answer labels are stripped.

Example:
  ednq extract --stop response.txt
  ednq extract --parse --pretty < response.txt`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExtract(opts, args, cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.Stop, "stop", false, "cut the output at the first configured stop sequence")
	cmd.Flags().BoolVar(&opts.Parse, "parse", false, "require the literal to read as EDN and rewrite it")
	cmd.Flags().BoolVarP(&opts.Pretty, "pretty", "p", false, "pretty layout (implies --parse)")

	return cmd
}

func runExtract(opts *ExtractOptions, args []string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)
	cfg := opts.config()

	text, name, err := readInput(cmd, args)
	if err != nil {
		return formatter.fail(ExitCommandError, ErrCodeInput, err.Error(), nil)
	}
	if opts.Stop {
		text = extract.TruncateAtStop(text, cfg.NLQ.StopSequences)
	}

	query, err := extract.QueryLiteral(text)
	if err != nil {
		return failExtraction(formatter, name, err)
	}
	opts.log().Debug("query literal found", "input", name, "length", len(query))

	if opts.Parse || opts.Pretty {
		v, err := edn.Parse(query, cfg.readOptions(nil)...)
		if err != nil {
			return formatter.fail(ExitFailure, ErrCodeParse, fmt.Sprintf("%s: %v", name, err), parseErrorDetails(err))
		}
		writeOpts := cfg.writeOptions(opts.Pretty)
		if formatter.Format != "json" {
			if c := colorOption(opts.Color, formatter.Writer); c != nil {
				writeOpts = append(writeOpts, c)
			}
		}
		query = edn.Write(v, writeOpts...)
	}

	if formatter.Format == "json" {
		return formatter.Success(ExtractResult{Query: query})
	}
	fmt.Fprintln(formatter.Writer, query)
	return nil
}

func failExtraction(formatter *OutputFormatter, name string, err error) error {
	code := ErrCodeNotFound
	if errors.Is(err, extract.ErrEmpty) {
		code = ErrCodeEmpty
	}
	return formatter.fail(ExitFailure, code, fmt.Sprintf("%s: %v", name, err), nil)
}
