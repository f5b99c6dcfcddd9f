package main

import (
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"netimpact/internal/domain"
	"netimpact/internal/loader"
	"netimpact/internal/watcher"
)

var (
	watchCurrent  string
	watchDebounce time.Duration
)

var watchCmd = &cobra.Command{
	Use:   "watch <proposed-config>",
	Short: "Re-analyze a proposal whenever the file changes",
	Long: `Watches a proposed configuration file and re-runs the analysis on every
save, printing a fresh report each time. Useful while editing a change
proposal. Stop with Ctrl-C.

Example:
  netimpact watch proposed.yaml --current running.cfg`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().StringVarP(&watchCurrent, "current", "c", "", "current configuration file")
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", 500*time.Millisecond, "settle time after a change")
}

func runWatch(cmd *cobra.Command, args []string) error {
	current := domain.NewTree()
	if watchCurrent != "" {
		var err error
		if current, err = loader.Load(watchCurrent); err != nil {
			return err
		}
	}

	analyzer, err := newAnalyzer()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	analyze := func() {
		proposed, err := loader.Load(args[0])
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "load %s: %v\n", args[0], err)
			return
		}
		result, err := analyzer.Analyze(current, proposed)
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "analyze: %v\n", err)
			return
		}
		fmt.Fprintf(out, "--- %s ---\n", time.Now().Format("15:04:05"))
		if err := renderResult(out, result); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "render: %v\n", err)
		}
	}

	// Run once up front so the first report does not wait for a save.
	analyze()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	w := watcher.New(args[0], analyze, logger).WithDebounce(watchDebounce)
	if err := w.Watch(ctx); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}
