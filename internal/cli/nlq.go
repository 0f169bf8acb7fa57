package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/ednq/internal/edn"
	"github.com/roach88/ednq/internal/extract"
	"github.com/roach88/ednq/internal/store"
)

// QueryHashDomain separates query IDs from other hashes of the same value.
const QueryHashDomain = "ednq/query/v1"

// NLQOptions holds flags for the nlq command.
type NLQOptions struct {
	*RootOptions
	Raw      bool
	Prompt   string
	Database string
}

// InferenceEnvelope is what the inference scripts print: a success flag
// and either the generated text or an error.
type InferenceEnvelope struct {
	Success bool   `json:"success"`
	Result  string `json:"result,omitempty"`
	Error   string `json:"error,omitempty"`
}

// NLQResult is the JSON payload of a successful nlq run.
type NLQResult struct {
	ID      string   `json:"id"`
	Seq     int64    `json:"seq,omitempty"`
	Query   string   `json:"query"`
	Pretty  string   `json:"pretty"`
	Columns []string `json:"columns"`

	value edn.Value
}

// NewNLQCommand creates the nlq command.
func NewNLQCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &NLQOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "nlq [file]",
		Short: "Turn an inference response into a validated query",
		Long: `Read the JSON envelope printed by an inference script
({"success": true, "result": "..."}), cut the generated text at the
first stop sequence, extract the query literal, check that it reads as
EDN and list its result columns.

Every attempt is recorded in the history database when --db or
history.db is set.

Example:
  python infer.py "who is older than 30" | ednq nlq --prompt "who is older than 30" --db history.db
  ednq nlq --raw completion.txt`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runNLQ(opts, args, cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.Raw, "raw", false, "input is the generated text, not a JSON envelope")
	cmd.Flags().StringVar(&opts.Prompt, "prompt", "", "natural-language question, kept in the history")
	cmd.Flags().StringVar(&opts.Database, "db", "", "history database (overrides history.db)")

	return cmd
}

func runNLQ(opts *NLQOptions, args []string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)
	cfg := opts.config()
	logger := opts.log()
	ctx := cmdContext(cmd)

	input, name, err := readInput(cmd, args)
	if err != nil {
		return formatter.fail(ExitCommandError, ErrCodeInput, err.Error(), nil)
	}

	dbPath := cfg.History.DB
	if opts.Database != "" {
		dbPath = opts.Database
	}
	var st *store.Store
	if dbPath != "" {
		st, err = store.Open(dbPath)
		if err != nil {
			return formatter.fail(ExitCommandError, ErrCodeDatabase, err.Error(), nil)
		}
		defer func() {
			if closeErr := st.Close(); closeErr != nil {
				logger.Error("error closing database", "error", closeErr)
			}
		}()
		logger.Debug("history database open", "path", dbPath)
	}

	attempt := store.Extraction{Prompt: opts.Prompt, Raw: input, Columns: []string{}}
	record := func() (int64, error) {
		if st == nil {
			return 0, nil
		}
		seq, err := st.Record(ctx, attempt)
		if err != nil {
			return 0, err
		}
		logger.Debug("attempt recorded", "seq", seq, "ok", attempt.OK)
		return seq, nil
	}
	failAttempt := func(exit int, code, message string, details interface{}) error {
		attempt.Error = message
		if _, err := record(); err != nil {
			logger.Error("failed to record attempt", "error", err)
		}
		return formatter.fail(exit, code, message, details)
	}

	generated := input
	if !opts.Raw {
		var env InferenceEnvelope
		if err := json.Unmarshal([]byte(input), &env); err != nil {
			return formatter.fail(ExitCommandError, ErrCodeInput, fmt.Sprintf("%s: invalid inference envelope: %v", name, err), nil)
		}
		if !env.Success {
			return failAttempt(ExitFailure, ErrCodeInference, fmt.Sprintf("inference failed: %s", env.Error), nil)
		}
		generated = env.Result
		attempt.Raw = env.Result
	}

	res, err := resolveQuery(generated, cfg, logger)
	if err != nil {
		var pe *edn.ParseError
		switch {
		case errors.As(err, &pe):
			return failAttempt(ExitFailure, ErrCodeParse, err.Error(), parseErrorDetails(err))
		case errors.Is(err, extract.ErrEmpty):
			return failAttempt(ExitFailure, ErrCodeEmpty, err.Error(), nil)
		default:
			return failAttempt(ExitFailure, ErrCodeNotFound, err.Error(), nil)
		}
	}

	attempt.ID = res.ID
	attempt.Query = res.Query
	attempt.Columns = res.Columns
	attempt.OK = true
	seq, err := record()
	if err != nil {
		return formatter.fail(ExitCommandError, ErrCodeDatabase, err.Error(), nil)
	}
	res.Seq = seq

	if formatter.Format == "json" {
		return formatter.Success(res)
	}
	pretty := res.Pretty
	if c := colorOption(opts.Color, formatter.Writer); c != nil {
		pretty = edn.Write(res.value, append(cfg.writeOptions(true), c)...)
	}
	fmt.Fprintln(formatter.Writer, pretty)
	fmt.Fprintf(formatter.Writer, "; columns: %s\n", strings.Join(res.Columns, " "))
	return nil
}

// resolveQuery runs generated text through stop truncation, literal
// extraction, reading and projection.
func resolveQuery(generated string, cfg *Config, logger *slog.Logger) (*NLQResult, error) {
	text := extract.TruncateAtStop(generated, cfg.NLQ.StopSequences)

	literal, err := extract.QueryLiteral(text)
	if err != nil {
		return nil, err
	}
	logger.Debug("query literal found", "literal", literal)

	v, err := edn.Parse(literal, cfg.readOptions(nil)...)
	if err != nil {
		return nil, err
	}

	columns := extract.ProjectionColumns(literal)
	if columns == nil {
		columns = []string{}
	}

	return &NLQResult{
		ID:      edn.Hash(QueryHashDomain, v),
		Query:   edn.Write(v),
		Pretty:  edn.Write(v, cfg.writeOptions(true)...),
		Columns: columns,
		value:   v,
	}, nil
}
