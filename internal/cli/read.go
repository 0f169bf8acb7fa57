package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/ednq/internal/edn"
)

// ReadOptions holds flags for the read command.
type ReadOptions struct {
	*RootOptions
	Pretty          bool
	Clauses         bool
	All             bool
	Strict          bool
	LenientFallback bool
}

// ReadResult is one value in JSON output.
type ReadResult struct {
	EDN   string `json:"edn"`
	Value any    `json:"value"`
}

// ClauseResult is one query clause in JSON output.
type ClauseResult struct {
	Keyword string   `json:"keyword"`
	Args    []string `json:"args"`
}

// NewReadCommand creates the read command.
func NewReadCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ReadOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "read [file]",
		Short: "Read EDN and write it back",
		Long: `Read one EDN value from a file or stdin and write it back in
compact or pretty form.

With --clauses the value must be a Datalog query and each clause is
printed on its own line. With --lenient-fallback unreadable input is
passed through as an opaque string instead of failing.

Example:
  echo '[:find ?e :where [?e :a 1]]' | ednq read --pretty
  ednq read --all --format json values.edn`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRead(opts, args, cmd)
		},
	}

	cmd.Flags().BoolVarP(&opts.Pretty, "pretty", "p", false, "indented, query-aware layout")
	cmd.Flags().BoolVar(&opts.Clauses, "clauses", false, "print the clauses of a Datalog query")
	cmd.Flags().BoolVar(&opts.All, "all", false, "read every top-level value")
	cmd.Flags().BoolVar(&opts.Strict, "strict", false, "reject input the lenient reader would repair (overrides config)")
	cmd.Flags().BoolVar(&opts.LenientFallback, "lenient-fallback", false, "pass unreadable input through as a string")

	return cmd
}

func runRead(opts *ReadOptions, args []string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)
	cfg := opts.config()
	logger := opts.log()

	text, name, err := readInput(cmd, args)
	if err != nil {
		return formatter.fail(ExitCommandError, ErrCodeInput, err.Error(), nil)
	}

	var strict *bool
	if cmd.Flags().Changed("strict") {
		strict = &opts.Strict
	}
	readOpts := cfg.readOptions(strict)

	var values []edn.Value
	if opts.All {
		values, err = edn.ParseAll(text, readOpts...)
	} else {
		var v edn.Value
		v, err = edn.Parse(text, readOpts...)
		values = []edn.Value{v}
	}
	if err != nil {
		if !opts.LenientFallback {
			return formatter.fail(ExitFailure, ErrCodeParse, fmt.Sprintf("%s: %v", name, err), parseErrorDetails(err))
		}
		logger.Warn("input unreadable, passing through as text", "input", name, "error", err)
		values = []edn.Value{edn.String(strings.TrimSpace(text))}
	}
	logger.Debug("read values", "input", name, "count", len(values))

	if opts.Clauses {
		return outputClauses(formatter, values)
	}

	writeOpts := cfg.writeOptions(opts.Pretty)
	if formatter.Format == "json" {
		results := make([]ReadResult, len(values))
		for i, v := range values {
			results[i] = ReadResult{EDN: edn.Write(v, writeOpts...), Value: edn.ToGo(v)}
		}
		if opts.All {
			return formatter.Success(results)
		}
		return formatter.Success(results[0])
	}

	if c := colorOption(opts.Color, formatter.Writer); c != nil {
		writeOpts = append(writeOpts, c)
	}
	for _, v := range values {
		fmt.Fprintln(formatter.Writer, edn.Write(v, writeOpts...))
	}
	return nil
}

func outputClauses(formatter *OutputFormatter, values []edn.Value) error {
	var all []ClauseResult
	for _, v := range values {
		clauses, err := edn.SplitQuery(v)
		if err != nil {
			return formatter.fail(ExitFailure, ErrCodeNotQuery, err.Error(), edn.Write(v))
		}
		for _, c := range clauses {
			args := make([]string, len(c.Args))
			for i, a := range c.Args {
				args[i] = edn.Write(a)
			}
			all = append(all, ClauseResult{Keyword: string(c.Keyword), Args: args})
		}
	}

	if formatter.Format == "json" {
		return formatter.Success(all)
	}
	for _, c := range all {
		if len(c.Args) == 0 {
			fmt.Fprintln(formatter.Writer, c.Keyword)
			continue
		}
		fmt.Fprintf(formatter.Writer, "%s %s\n", c.Keyword, strings.Join(c.Args, " "))
	}
	return nil
}

// parseErrorDetails exposes the position of a reader error in JSON output.
func parseErrorDetails(err error) interface{} {
	var pe *edn.ParseError
	if !errors.As(err, &pe) {
		return nil
	}
	return map[string]int{
		"offset": pe.Pos.Offset,
		"line":   pe.Pos.Line,
		"column": pe.Pos.Column,
	}
}
