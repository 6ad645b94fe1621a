package cli

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/junhyuk/finadvisor/internal/schedule"
)

var (
	watchQuery       string
	watchCron        string
	watchEvery       time.Duration
	watchAt          string
	watchMetricsAddr string
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Run a research query on a schedule",
	Long: `Run the same research query repeatedly on a schedule. Each tick runs in a
fresh session and saves its report to the output directory.

Exactly one of --cron, --every or --at must be given.

Examples:
  finadvisor watch --query "How is NVDA doing?" --every 6h
  finadvisor watch --query "How is NVDA doing?" --cron "0 9 * * 1-5"
  finadvisor watch --query "How is NVDA doing?" --at 2026-09-01T09:00:00Z`,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().StringVar(&watchQuery, "query", "", "research query to run on each tick (required)")
	watchCmd.Flags().StringVar(&watchCron, "cron", "", "cron expression (minute granularity)")
	watchCmd.Flags().DurationVar(&watchEvery, "every", 0, "fixed interval between runs (e.g. 6h)")
	watchCmd.Flags().StringVar(&watchAt, "at", "", "run once at an RFC3339 time")
	watchCmd.Flags().StringVar(&watchMetricsAddr, "metrics-addr", "", "expose Prometheus metrics on this address (e.g. :9090)")
	_ = watchCmd.MarkFlagRequired("query")
	rootCmd.AddCommand(watchCmd)
}

func watchSchedule() (schedule.Schedule, error) {
	set := 0
	var s schedule.Schedule

	if watchCron != "" {
		set++
		s = schedule.Schedule{Kind: schedule.KindCron, Expr: watchCron}
	}
	if watchEvery > 0 {
		set++
		s = schedule.Schedule{Kind: schedule.KindEvery, Every: watchEvery}
	}
	if watchAt != "" {
		set++
		s = schedule.Schedule{Kind: schedule.KindAt, At: watchAt}
	}

	if set != 1 {
		return schedule.Schedule{}, fmt.Errorf("exactly one of --cron, --every or --at must be given")
	}

	return s, nil
}

func runWatch(cmd *cobra.Command, args []string) error {
	sched, err := watchSchedule()
	if err != nil {
		return err
	}

	app, err := newApp()
	if err != nil {
		return err
	}
	defer app.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	addr := watchMetricsAddr
	if addr == "" {
		addr = app.cfg.Metrics.Addr
	}
	app.serveMetrics(ctx, addr)

	job := func(ctx context.Context) {
		sessionID := newSessionID("watch")
		fmt.Printf("Researching: %s\n\n", watchQuery)

		res, err := app.research(ctx, sessionID, watchQuery)
		if err != nil {
			app.log.Error().Err(err).Str("session_id", sessionID).Msg("scheduled research failed")
			return
		}
		if res.Answer != "" {
			fmt.Printf("\n%s\n", res.Answer)
		}
	}

	sch, err := schedule.New(sched, job, func(o *schedule.Options) {
		o.Logger = app.log.GetZerolog()
	})
	if err != nil {
		return err
	}

	if err := sch.Run(ctx); err != nil && err != context.Canceled {
		return err
	}

	return nil
}
