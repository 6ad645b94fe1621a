package schedule

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// Job is the work a scheduler triggers on each tick.
type Job func(ctx context.Context)

// Options configures a Scheduler.
type Options struct {
	Logger zerolog.Logger
}

// Scheduler repeatedly runs a job according to a schedule. An "at"
// schedule fires once; "every" and "cron" schedules fire until the
// context is cancelled.
type Scheduler struct {
	schedule Schedule
	job      Job
	logger   zerolog.Logger
}

// New creates a scheduler for the given schedule and job.
func New(s Schedule, job Job, optFns ...func(o *Options)) (*Scheduler, error) {
	opts := Options{Logger: zerolog.Nop()}
	for _, fn := range optFns {
		fn(&opts)
	}

	if job == nil {
		return nil, fmt.Errorf("job is required")
	}
	if err := Validate(s); err != nil {
		return nil, fmt.Errorf("invalid schedule: %w", err)
	}

	return &Scheduler{schedule: s, job: job, logger: opts.Logger}, nil
}

// Run blocks, executing the job at each scheduled time, until the context
// is cancelled. For "at" schedules it returns after the single run.
func (s *Scheduler) Run(ctx context.Context) error {
	for {
		next, err := NextRun(s.schedule, time.Now())
		if err != nil {
			return err
		}

		wait := time.Until(next)
		if wait < 0 {
			if s.schedule.Kind == KindAt {
				return fmt.Errorf("scheduled time %s is in the past", s.schedule.At)
			}
			wait = 0
		}

		s.logger.Info().
			Time("next_run", next).
			Str("kind", string(s.schedule.Kind)).
			Msg("next research run scheduled")

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}

		s.job(ctx)

		if s.schedule.Kind == KindAt {
			return nil
		}
	}
}
