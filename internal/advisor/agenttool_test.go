package advisor

import (
	"context"
	"fmt"
	"testing"

	"github.com/hupe1980/agentmesh/core"
	"github.com/hupe1980/agentmesh/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/junhyuk/finadvisor/internal/metrics"
)

// staticModel always answers with a fixed text and finishes the turn.
type staticModel struct {
	text string
}

func (m *staticModel) Generate(ctx context.Context, req model.Request) (<-chan model.Response, <-chan error) {
	respCh := make(chan model.Response, 1)
	errCh := make(chan error, 1)

	respCh <- model.Response{
		Content:      core.Content{Role: "assistant", Parts: []core.Part{core.TextPart{Text: m.text}}},
		FinishReason: "stop",
	}
	close(respCh)
	close(errCh)

	return respCh, errCh
}

func (m *staticModel) Info() model.Info {
	return model.Info{Name: "static", Provider: "test"}
}

// failingModel always reports a generation error.
type failingModel struct{}

func (m *failingModel) Generate(ctx context.Context, req model.Request) (<-chan model.Response, <-chan error) {
	respCh := make(chan model.Response)
	errCh := make(chan error, 1)

	errCh <- fmt.Errorf("model unavailable")
	close(respCh)
	close(errCh)

	return respCh, errCh
}

func (m *failingModel) Info() model.Info {
	return model.Info{Name: "failing", Provider: "test"}
}

func TestAgentToolMetadata(t *testing.T) {
	analyst := NewNewsAnalyst(&staticModel{text: "ok"}, NewSaveAdviceReportTool())
	at := NewAgentTool(analyst, StateKeyNewsAnalyst)

	assert.Equal(t, "NewsAnalyst", at.Name())
	assert.NotEmpty(t, at.Description())

	props, ok := at.Parameters()["properties"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, props, "request")
}

func TestAgentToolCall(t *testing.T) {
	t.Run("returns response and writes state", func(t *testing.T) {
		analyst := NewDataAnalyst(&staticModel{text: "NVDA looks fairly valued."}, nil)
		at := NewAgentTool(analyst, StateKeyDataAnalyst)

		fix := newToolContextFixture()
		res, err := at.Call(fix.toolCtx, map[string]any{"request": "Analyze NVDA"})

		require.NoError(t, err)
		assert.Equal(t, "NVDA looks fairly valued.", res)

		v, ok := fix.toolCtx.GetState(StateKeyDataAnalyst)
		require.True(t, ok)
		assert.Equal(t, "NVDA looks fairly valued.", v)
	})

	t.Run("accepts query alias", func(t *testing.T) {
		analyst := NewDataAnalyst(&staticModel{text: "done"}, nil)
		at := NewAgentTool(analyst, StateKeyDataAnalyst)

		fix := newToolContextFixture()
		res, err := at.Call(fix.toolCtx, map[string]any{"query": "Analyze NVDA"})

		require.NoError(t, err)
		assert.Equal(t, "done", res)
	})

	t.Run("requires a request", func(t *testing.T) {
		analyst := NewDataAnalyst(&staticModel{text: "unused"}, nil)
		at := NewAgentTool(analyst, StateKeyDataAnalyst)

		fix := newToolContextFixture()
		_, err := at.Call(fix.toolCtx, map[string]any{"request": "  "})

		require.Error(t, err)
	})
}

func TestAgentToolMetrics(t *testing.T) {
	t.Run("successful run is observed", func(t *testing.T) {
		m := metrics.NewMetrics()
		analyst := NewDataAnalyst(&staticModel{text: "NVDA looks fairly valued."}, nil)
		at := NewAgentTool(analyst, StateKeyDataAnalyst, func(o *AgentToolOptions) { o.Metrics = m })

		fix := newToolContextFixture()
		_, err := at.Call(fix.toolCtx, map[string]any{"request": "Analyze NVDA"})
		require.NoError(t, err)

		assert.Equal(t, 1.0, counterValue(t, m, "agent_executions_total",
			map[string]string{"agent": "DataAnalyst", "status": "success"}))
		assert.Equal(t, uint64(1), histogramCount(t, m, "agent_execution_duration_seconds"))
		assert.Equal(t, 0.0, counterValue(t, m, "agent_execution_errors_total", nil))
	})

	t.Run("failed run is recorded as an error", func(t *testing.T) {
		m := metrics.NewMetrics()
		analyst := NewDataAnalyst(&failingModel{}, nil)
		at := NewAgentTool(analyst, StateKeyDataAnalyst, func(o *AgentToolOptions) { o.Metrics = m })

		fix := newToolContextFixture()
		_, err := at.Call(fix.toolCtx, map[string]any{"request": "Analyze NVDA"})
		require.Error(t, err)

		assert.Equal(t, 1.0, counterValue(t, m, "agent_executions_total",
			map[string]string{"agent": "DataAnalyst", "status": "error"}))
		assert.Equal(t, 1.0, counterValue(t, m, "agent_execution_errors_total",
			map[string]string{"agent": "DataAnalyst", "error_type": "run"}))
		assert.Equal(t, uint64(1), histogramCount(t, m, "agent_execution_duration_seconds"))
	})

	t.Run("nil metrics is a no-op", func(t *testing.T) {
		analyst := NewDataAnalyst(&staticModel{text: "ok"}, nil)
		at := NewAgentTool(analyst, StateKeyDataAnalyst, func(o *AgentToolOptions) { o.Metrics = nil })

		fix := newToolContextFixture()
		_, err := at.Call(fix.toolCtx, map[string]any{"request": "Analyze NVDA"})
		require.NoError(t, err)
	})
}

// counterValue sums the samples of a counter family whose labels match.
func counterValue(t *testing.T, m *metrics.Metrics, name string, labels map[string]string) float64 {
	t.Helper()

	families, err := m.Registry().Gather()
	require.NoError(t, err)

	var total float64
	for _, f := range families {
		if f.GetName() != name {
			continue
		}
	samples:
		for _, sample := range f.GetMetric() {
			got := make(map[string]string)
			for _, lp := range sample.GetLabel() {
				got[lp.GetName()] = lp.GetValue()
			}
			for k, v := range labels {
				if got[k] != v {
					continue samples
				}
			}
			total += sample.GetCounter().GetValue()
		}
	}
	return total
}

// histogramCount sums the sample counts of a histogram family.
func histogramCount(t *testing.T, m *metrics.Metrics, name string) uint64 {
	t.Helper()

	families, err := m.Registry().Gather()
	require.NoError(t, err)

	var total uint64
	for _, f := range families {
		if f.GetName() != name {
			continue
		}
		for _, sample := range f.GetMetric() {
			total += sample.GetHistogram().GetSampleCount()
		}
	}
	return total
}
