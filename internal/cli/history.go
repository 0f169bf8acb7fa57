package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/ednq/internal/store"
)

// HistoryOptions holds flags for the history command.
type HistoryOptions struct {
	*RootOptions
	Database string
	Limit    int
	ID       string
}

// HistoryEntry is one recorded attempt in JSON output.
type HistoryEntry struct {
	Seq     int64    `json:"seq"`
	ID      string   `json:"id,omitempty"`
	Prompt  string   `json:"prompt,omitempty"`
	Query   string   `json:"query,omitempty"`
	Columns []string `json:"columns"`
	OK      bool     `json:"ok"`
	Error   string   `json:"error,omitempty"`
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &HistoryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded nlq attempts",
		Long: `List the attempts recorded by nlq, newest first. With --id, show
the latest successful attempt for a query ID.

Example:
  ednq history --db history.db --limit 5
  ednq history --db history.db --id 3f2a...`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "history database (overrides history.db)")
	cmd.Flags().IntVarP(&opts.Limit, "limit", "n", 20, "attempts to list (0 for all)")
	cmd.Flags().StringVar(&opts.ID, "id", "", "show the latest successful attempt with this query ID")

	return cmd
}

func runHistory(opts *HistoryOptions, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)
	logger := opts.log()
	ctx := cmdContext(cmd)

	dbPath := opts.config().History.DB
	if opts.Database != "" {
		dbPath = opts.Database
	}
	if dbPath == "" {
		return formatter.fail(ExitCommandError, ErrCodeDatabase, "no history database: set --db or history.db", nil)
	}

	st, err := store.Open(dbPath)
	if err != nil {
		return formatter.fail(ExitCommandError, ErrCodeDatabase, err.Error(), nil)
	}
	defer func() {
		if closeErr := st.Close(); closeErr != nil {
			logger.Error("error closing database", "error", closeErr)
		}
	}()

	var entries []store.Extraction
	if opts.ID != "" {
		e, err := st.Lookup(ctx, opts.ID)
		if errors.Is(err, store.ErrNotFound) {
			return formatter.fail(ExitFailure, ErrCodeNotFound, err.Error(), nil)
		}
		if err != nil {
			return formatter.fail(ExitCommandError, ErrCodeDatabase, err.Error(), nil)
		}
		entries = []store.Extraction{e}
	} else {
		entries, err = st.Recent(ctx, opts.Limit)
		if err != nil {
			return formatter.fail(ExitCommandError, ErrCodeDatabase, err.Error(), nil)
		}
	}
	logger.Debug("history read", "path", dbPath, "entries", len(entries))

	if formatter.Format == "json" {
		out := make([]HistoryEntry, len(entries))
		for i, e := range entries {
			out[i] = HistoryEntry{
				Seq:     e.Seq,
				ID:      e.ID,
				Prompt:  e.Prompt,
				Query:   e.Query,
				Columns: e.Columns,
				OK:      e.OK,
				Error:   e.Error,
			}
		}
		return formatter.Success(out)
	}

	if len(entries) == 0 {
		fmt.Fprintln(formatter.Writer, "No attempts recorded.")
		return nil
	}
	for _, e := range entries {
		if e.OK {
			fmt.Fprintf(formatter.Writer, "#%d ✓ %s %s\n", e.Seq, shortID(e.ID), e.Query)
		} else {
			fmt.Fprintf(formatter.Writer, "#%d ✗ %s\n", e.Seq, e.Error)
		}
		if e.Prompt != "" {
			formatter.VerboseLog("    prompt: %s", e.Prompt)
		}
	}
	return nil
}

func shortID(id string) string {
	if len(id) > 12 {
		return id[:12]
	}
	return id
}
