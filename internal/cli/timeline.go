package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/tickreg/internal/ir"
)

// TimelineOptions holds flags for the timeline command.
type TimelineOptions struct {
	*RootOptions
	From int64
	To   int64
}

// TimelineSpan is one activation span in command output.
type TimelineSpan struct {
	Start int64       `json:"start"`
	End   int64       `json:"end"`
	Event ir.EventDoc `json:"event"`
	Seq   int64       `json:"seq"`
}

// NewTimelineCommand creates the timeline command.
func NewTimelineCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TimelineOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "timeline <catalog-dir>",
		Short: "List activation spans in a window",
		Long: `Register a CUE event catalog and list which event is active over
[from, to), as half-open spans ordered by start.

Consecutive set instants are merged into one span.

Examples:
  tickreg timeline ./catalog --to 50
  tickreg timeline ./catalog --from 10 --to 30 --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTimeline(opts, args[0], cmd)
		},
	}

	cmd.Flags().Int64Var(&opts.From, "from", 0, "window start (inclusive)")
	cmd.Flags().Int64Var(&opts.To, "to", 0, "window end (exclusive)")
	_ = cmd.MarkFlagRequired("to")

	return cmd
}

func runTimeline(opts *TimelineOptions, catalogDir string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	if opts.From < 0 {
		return formatter.Fail(ExitCommandError, ErrCodeBadFlag, fmt.Sprintf("--from must be >= 0, got %d", opts.From))
	}
	if opts.To < opts.From {
		return formatter.Fail(ExitCommandError, ErrCodeBadFlag, fmt.Sprintf("--to %d is before --from %d", opts.To, opts.From))
	}

	reg, issue := buildRegistry(catalogDir, opts.logger())
	if issue != nil {
		return formatter.Reject(*issue)
	}

	spans := reg.Timeline(opts.From, opts.To)
	out := make([]TimelineSpan, len(spans))
	for i, s := range spans {
		out[i] = TimelineSpan{
			Start: s.Start,
			End:   s.End,
			Event: ir.DocForEvent(s.Entry.Event),
			Seq:   s.Entry.Seq,
		}
	}

	if formatter.Format == "json" {
		return formatter.Success(out)
	}

	w := formatter.Writer
	if len(out) == 0 {
		fmt.Fprintf(w, "No events active in [%d,%d)\n", opts.From, opts.To)
		return nil
	}
	for i, s := range out {
		fmt.Fprintf(w, "[%d,%d) %s\n", s.Start, s.End, spans[i].Entry.Event.Kind)
	}
	return nil
}
