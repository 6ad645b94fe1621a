// Package schedule runs recurring research jobs on at/every/cron
// schedules.
package schedule

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
)

// Kind represents the type of schedule
type Kind string

const (
	KindAt    Kind = "at"
	KindEvery Kind = "every"
	KindCron  Kind = "cron"
)

// Schedule represents a time specification for job execution
type Schedule struct {
	Kind Kind `json:"kind"`

	// For "at" schedules: ISO 8601 timestamp
	At string `json:"at,omitempty"`

	// For "every" schedules
	Every time.Duration `json:"every,omitempty"`

	// For "cron" schedules: 5-field cron expression plus optional timezone
	Expr string `json:"expr,omitempty"`
	TZ   string `json:"tz,omitempty"`
}

// cronParser accepts standard 5-field cron expressions.
var cronParser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)

// NextRun calculates the next run time after now.
func NextRun(s Schedule, now time.Time) (time.Time, error) {
	switch s.Kind {
	case KindAt:
		if s.At == "" {
			return time.Time{}, fmt.Errorf("'at' schedule requires 'at' field")
		}
		t, err := time.Parse(time.RFC3339, s.At)
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid timestamp: %w", err)
		}
		return t, nil

	case KindEvery:
		if s.Every <= 0 {
			return time.Time{}, fmt.Errorf("'every' schedule requires a positive interval")
		}
		return now.Add(s.Every), nil

	case KindCron:
		if s.Expr == "" {
			return time.Time{}, fmt.Errorf("'cron' schedule requires 'expr' field")
		}
		sched, err := cronParser.Parse(s.Expr)
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid cron expression: %w", err)
		}
		if s.TZ != "" {
			loc, err := time.LoadLocation(s.TZ)
			if err != nil {
				return time.Time{}, fmt.Errorf("invalid timezone: %w", err)
			}
			now = now.In(loc)
		}
		return sched.Next(now), nil

	default:
		return time.Time{}, fmt.Errorf("unknown schedule kind: %s", s.Kind)
	}
}

// Validate checks that the schedule is well formed.
func Validate(s Schedule) error {
	_, err := NextRun(s, time.Now())
	return err
}
