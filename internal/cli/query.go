package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/tickreg/internal/ir"
	"github.com/roach88/tickreg/internal/registry"
)

// QueryOptions holds flags for the query command.
type QueryOptions struct {
	*RootOptions
	At []int64 // instants to query, in the order given
}

// QueryAnswer is the active event at one instant.
type QueryAnswer struct {
	At    int64         `json:"at"`
	Found bool          `json:"found"`
	Event *ir.GameEvent `json:"event,omitempty"`
	ID    string        `json:"id,omitempty"`
	Seq   int64         `json:"seq,omitempty"`
}

// NewQueryCommand creates the query command.
func NewQueryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &QueryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "query <catalog-dir>",
		Short: "Show the active event at given instants",
		Long: `Register a CUE event catalog and report, for each --at instant, the
event active at that instant.

An instant with no active event is reported as not found; that is not an
error. The catalog must register cleanly (see validate).

Examples:
  tickreg query ./catalog --at 0
  tickreg query ./catalog --at 0 --at 5 --at 15
  tickreg query ./catalog --at 3,7 --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(opts, args[0], cmd)
		},
	}

	cmd.Flags().Int64SliceVar(&opts.At, "at", nil, "instant to query (repeatable)")
	_ = cmd.MarkFlagRequired("at")

	return cmd
}

func runQuery(opts *QueryOptions, catalogDir string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	for _, t := range opts.At {
		if t < 0 {
			return formatter.Fail(ExitCommandError, ErrCodeBadFlag, fmt.Sprintf("--at must be >= 0, got %d", t))
		}
	}

	reg, issue := buildRegistry(catalogDir, opts.logger())
	if issue != nil {
		return formatter.Reject(*issue)
	}

	answers := make([]QueryAnswer, 0, len(opts.At))
	for _, t := range opts.At {
		answers = append(answers, answerAt(reg, t))
	}

	if formatter.Format == "json" {
		return formatter.Success(answers)
	}

	w := formatter.Writer
	for _, a := range answers {
		if !a.Found {
			fmt.Fprintf(w, "%d: -\n", a.At)
			continue
		}
		fmt.Fprintf(w, "%d: %s\n", a.At, *a.Event)
	}
	return nil
}

func answerAt(reg *registry.Registry, t int64) QueryAnswer {
	entry, ok := reg.Find(t)
	if !ok {
		return QueryAnswer{At: t}
	}
	return QueryAnswer{
		At:    t,
		Found: true,
		Event: &entry.Event,
		ID:    entry.ID,
		Seq:   entry.Seq,
	}
}
