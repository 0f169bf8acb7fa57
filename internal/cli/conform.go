package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/ednq/internal/conformance"
	"github.com/roach88/ednq/internal/edn"
)

// ConformOptions holds flags for the conform command.
type ConformOptions struct {
	*RootOptions
	EDN bool
}

// ConformResult is one suite report in JSON output.
type ConformResult struct {
	Suite    string           `json:"suite"`
	Passed   int              `json:"passed"`
	Failed   int              `json:"failed"`
	Failures []ConformFailure `json:"failures"`
}

// ConformFailure is one failed case in JSON output.
type ConformFailure struct {
	Case    string `json:"case"`
	Message string `json:"message"`
}

// NewConformCommand creates the conform command.
func NewConformCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ConformOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "conform <suite.yaml>...",
		Short: "Run conformance suites",
		Long: `Run YAML conformance suites against the reader, writer and
extractor and report the cases that do not hold.

Exit codes:
  0 - All cases passed
  1 - One or more cases failed
  2 - Command error (suite file missing or invalid)`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConform(opts, args, cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.EDN, "edn", false, "print each report as EDN")

	return cmd
}

func runConform(opts *ConformOptions, paths []string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)
	logger := opts.log()

	suites := make([]*conformance.Suite, len(paths))
	for i, path := range paths {
		s, err := conformance.Load(path)
		if err != nil {
			return formatter.fail(ExitCommandError, ErrCodeSuiteInvalid, fmt.Sprintf("%s: %v", path, err), nil)
		}
		suites[i] = s
	}

	reports := make([]*conformance.Report, len(suites))
	failed := 0
	for i, s := range suites {
		reports[i] = conformance.Run(s, logger)
		failed += len(reports[i].Failures)
	}

	switch {
	case formatter.Format == "json":
		out := make([]ConformResult, len(reports))
		for i, r := range reports {
			out[i] = ConformResult{
				Suite:    r.Suite,
				Passed:   r.Passed,
				Failed:   len(r.Failures),
				Failures: make([]ConformFailure, len(r.Failures)),
			}
			for j, f := range r.Failures {
				out[i].Failures[j] = ConformFailure{Case: f.Case, Message: f.Message}
			}
		}
		if err := formatter.Success(out); err != nil {
			return err
		}
	case opts.EDN:
		cfg := opts.config()
		for _, r := range reports {
			fmt.Fprintln(formatter.Writer, edn.Write(r.Value(), cfg.writeOptions(true)...))
		}
	default:
		for _, r := range reports {
			if r.Pass() {
				fmt.Fprintf(formatter.Writer, "✓ %s: %d passed\n", r.Suite, r.Passed)
				continue
			}
			fmt.Fprintf(formatter.Writer, "✗ %s: %d passed, %d failed\n", r.Suite, r.Passed, len(r.Failures))
			for _, f := range r.Failures {
				fmt.Fprintf(formatter.Writer, "  %s: %s\n", f.Case, f.Message)
			}
		}
	}

	if failed > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%s: %d case(s) failed", ErrCodeSuiteFailed, failed))
	}
	return nil
}
