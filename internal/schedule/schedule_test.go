package schedule

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextRun(t *testing.T) {
	now := time.Date(2025, 6, 2, 8, 30, 0, 0, time.UTC)

	t.Run("at schedule", func(t *testing.T) {
		next, err := NextRun(Schedule{Kind: KindAt, At: "2025-12-25T14:00:00Z"}, now)
		require.NoError(t, err)
		assert.Equal(t, time.Date(2025, 12, 25, 14, 0, 0, 0, time.UTC), next.UTC())
	})

	t.Run("at requires field", func(t *testing.T) {
		_, err := NextRun(Schedule{Kind: KindAt}, now)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "requires 'at' field")
	})

	t.Run("at invalid timestamp", func(t *testing.T) {
		_, err := NextRun(Schedule{Kind: KindAt, At: "invalid"}, now)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "invalid timestamp")
	})

	t.Run("every schedule", func(t *testing.T) {
		next, err := NextRun(Schedule{Kind: KindEvery, Every: time.Hour}, now)
		require.NoError(t, err)
		assert.Equal(t, now.Add(time.Hour), next)
	})

	t.Run("every requires positive interval", func(t *testing.T) {
		_, err := NextRun(Schedule{Kind: KindEvery}, now)
		assert.Error(t, err)
	})

	t.Run("cron schedule", func(t *testing.T) {
		next, err := NextRun(Schedule{Kind: KindCron, Expr: "0 9 * * *"}, now)
		require.NoError(t, err)
		assert.Equal(t, time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC), next.UTC())
	})

	t.Run("cron invalid expression", func(t *testing.T) {
		_, err := NextRun(Schedule{Kind: KindCron, Expr: "not a cron"}, now)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "invalid cron expression")
	})

	t.Run("cron invalid timezone", func(t *testing.T) {
		_, err := NextRun(Schedule{Kind: KindCron, Expr: "0 9 * * *", TZ: "Mars/Olympus"}, now)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "invalid timezone")
	})

	t.Run("unknown kind", func(t *testing.T) {
		_, err := NextRun(Schedule{Kind: "sometimes"}, now)
		assert.Error(t, err)
	})
}

func TestSchedulerNew(t *testing.T) {
	t.Run("requires job", func(t *testing.T) {
		_, err := New(Schedule{Kind: KindEvery, Every: time.Minute}, nil)
		assert.Error(t, err)
	})

	t.Run("rejects invalid schedule", func(t *testing.T) {
		_, err := New(Schedule{Kind: KindCron, Expr: "bad"}, func(context.Context) {})
		assert.Error(t, err)
	})
}

func TestSchedulerRun(t *testing.T) {
	t.Run("every schedule fires until cancelled", func(t *testing.T) {
		var runs atomic.Int32

		s, err := New(Schedule{Kind: KindEvery, Every: 10 * time.Millisecond}, func(context.Context) {
			runs.Add(1)
		})
		require.NoError(t, err)

		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
		defer cancel()

		err = s.Run(ctx)
		assert.ErrorIs(t, err, context.DeadlineExceeded)
		assert.GreaterOrEqual(t, runs.Load(), int32(2))
	})

	t.Run("at schedule fires once", func(t *testing.T) {
		var runs atomic.Int32

		at := time.Now().Add(20 * time.Millisecond).Format(time.RFC3339Nano)
		s, err := New(Schedule{Kind: KindAt, At: at}, func(context.Context) {
			runs.Add(1)
		})
		require.NoError(t, err)

		require.NoError(t, s.Run(context.Background()))
		assert.Equal(t, int32(1), runs.Load())
	})

	t.Run("at schedule in the past errors", func(t *testing.T) {
		at := time.Now().Add(-time.Hour).Format(time.RFC3339)
		s, err := New(Schedule{Kind: KindAt, At: at}, func(context.Context) {})
		require.NoError(t, err)

		assert.Error(t, s.Run(context.Background()))
	})
}
