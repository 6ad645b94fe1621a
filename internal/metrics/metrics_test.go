package metrics

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	meshartifact "github.com/hupe1980/agentmesh/artifact"
	"github.com/hupe1980/agentmesh/core"
	"github.com/hupe1980/agentmesh/logging"
	"github.com/hupe1980/agentmesh/memory"
	"github.com/hupe1980/agentmesh/session"
	"github.com/hupe1980/agentmesh/tool"
)

func newToolContext() *core.ToolContext {
	emit := make(chan core.Event, 16)
	resume := make(chan struct{}, 1)
	runCtx := core.NewRunContext(
		context.Background(),
		"sess-test", "run-test",
		core.AgentInfo{Name: "TestAgent", Type: "test"},
		core.Content{},
		10,
		emit, resume,
		core.NewSession("sess-test"),
		session.NewInMemoryStore(),
		meshartifact.NewInMemoryStore(),
		memory.NewInMemoryStore(),
		logging.NoOpLogger{},
	)
	return core.NewToolContext(runCtx, "fc-test")
}

func TestNewMetrics(t *testing.T) {
	m := NewMetrics()

	if m == nil {
		t.Fatal("NewMetrics returned nil")
	}

	if m.registry == nil {
		t.Error("Registry is nil")
	}

	// Verify agent metrics
	if m.AgentExecutionsTotal == nil {
		t.Error("AgentExecutionsTotal is nil")
	}
	if m.AgentExecutionDuration == nil {
		t.Error("AgentExecutionDuration is nil")
	}
	if m.AgentExecutionErrorsTotal == nil {
		t.Error("AgentExecutionErrorsTotal is nil")
	}

	// Verify tool metrics
	if m.ToolExecutionsTotal == nil {
		t.Error("ToolExecutionsTotal is nil")
	}
	if m.ToolExecutionDuration == nil {
		t.Error("ToolExecutionDuration is nil")
	}
	if m.ToolExecutionErrorsTotal == nil {
		t.Error("ToolExecutionErrorsTotal is nil")
	}

	// Verify research run metrics
	if m.ResearchRunsTotal == nil {
		t.Error("ResearchRunsTotal is nil")
	}
	if m.ResearchRunDuration == nil {
		t.Error("ResearchRunDuration is nil")
	}
	if m.ReportsGeneratedTotal == nil {
		t.Error("ReportsGeneratedTotal is nil")
	}
}

func TestHandler(t *testing.T) {
	m := NewMetrics()

	m.AgentExecutionsTotal.WithLabelValues("FinancialAdvisor", "success").Inc()
	m.ResearchRunsTotal.WithLabelValues("success").Inc()
	m.ReportsGeneratedTotal.Inc()

	srv := httptest.NewServer(m.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	if err != nil {
		t.Fatalf("failed to scrape metrics: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status: %d", resp.StatusCode)
	}

	buf := make([]byte, 64*1024)
	n, _ := resp.Body.Read(buf)
	body := string(buf[:n])

	for _, want := range []string{
		"agent_executions_total",
		"research_runs_total",
		"reports_generated_total",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("metrics output missing %q", want)
		}
	}
}

func TestRegistry(t *testing.T) {
	m := NewMetrics()

	if m.Registry() != m.registry {
		t.Error("Registry() did not return the underlying registry")
	}
}

func TestInstrumentedTool(t *testing.T) {
	m := NewMetrics()

	okTool := tool.NewFunctionTool(
		"echo",
		"Echo the input back.",
		map[string]any{
			"type": "object",
			"properties": map[string]any{
				"text": map[string]any{"type": "string"},
			},
		},
		func(toolCtx *core.ToolContext, args map[string]any) (any, error) {
			return args["text"], nil
		},
	)

	wrapped := InstrumentTool(okTool, m)

	if wrapped.Name() != "echo" {
		t.Errorf("Name() = %q, want echo", wrapped.Name())
	}
	if wrapped.Description() == "" {
		t.Error("Description() is empty")
	}
	if wrapped.Parameters() == nil {
		t.Error("Parameters() is nil")
	}

	result, err := wrapped.Call(newToolContext(), map[string]any{"text": "hi"})
	if err != nil {
		t.Fatalf("Call failed: %v", err)
	}
	if result != "hi" {
		t.Errorf("Call result = %v, want hi", result)
	}

	count := testCounterValue(t, m, "tool_executions_total")
	if count != 1 {
		t.Errorf("tool_executions_total = %v, want 1", count)
	}
}

func TestInstrumentTools(t *testing.T) {
	m := NewMetrics()

	raw := []tool.Tool{
		tool.NewFunctionTool("a", "A.", map[string]any{"type": "object"}, nil),
		tool.NewFunctionTool("b", "B.", map[string]any{"type": "object"}, nil),
	}

	wrapped := InstrumentTools(raw, m)
	if len(wrapped) != 2 {
		t.Fatalf("len = %d, want 2", len(wrapped))
	}
	if wrapped[0].Name() != "a" || wrapped[1].Name() != "b" {
		t.Error("wrapped tools lost their names")
	}
}

// testCounterValue sums all samples of a counter family in the registry.
func testCounterValue(t *testing.T, m *Metrics, name string) float64 {
	t.Helper()

	families, err := m.Registry().Gather()
	if err != nil {
		t.Fatalf("failed to gather metrics: %v", err)
	}
	var total float64
	for _, f := range families {
		if f.GetName() != name {
			continue
		}
		for _, sample := range f.GetMetric() {
			total += sample.GetCounter().GetValue()
		}
	}
	return total
}
