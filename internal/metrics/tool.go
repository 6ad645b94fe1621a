package metrics

import (
	"time"

	"github.com/hupe1980/agentmesh/core"
	"github.com/hupe1980/agentmesh/tool"
)

// InstrumentedTool wraps a tool and records execution counts, durations,
// and errors for it.
type InstrumentedTool struct {
	inner   tool.Tool
	metrics *Metrics
}

// InstrumentTool wraps a single tool with metrics recording.
func InstrumentTool(t tool.Tool, m *Metrics) *InstrumentedTool {
	return &InstrumentedTool{inner: t, metrics: m}
}

// InstrumentTools wraps a slice of tools with metrics recording.
func InstrumentTools(tools []tool.Tool, m *Metrics) []tool.Tool {
	wrapped := make([]tool.Tool, len(tools))
	for i, t := range tools {
		wrapped[i] = InstrumentTool(t, m)
	}
	return wrapped
}

func (t *InstrumentedTool) Name() string { return t.inner.Name() }

func (t *InstrumentedTool) Description() string { return t.inner.Description() }

func (t *InstrumentedTool) Parameters() map[string]any { return t.inner.Parameters() }

// Call delegates to the wrapped tool and observes the outcome.
func (t *InstrumentedTool) Call(toolCtx *core.ToolContext, args map[string]any) (any, error) {
	start := time.Now()

	result, err := t.inner.Call(toolCtx, args)

	t.metrics.ToolExecutionDuration.WithLabelValues(t.Name()).Observe(time.Since(start).Seconds())
	if err != nil {
		t.metrics.ToolExecutionsTotal.WithLabelValues(t.Name(), "error").Inc()
		t.metrics.ToolExecutionErrorsTotal.WithLabelValues(t.Name(), "execution").Inc()
		return nil, err
	}

	t.metrics.ToolExecutionsTotal.WithLabelValues(t.Name(), "success").Inc()
	return result, nil
}
