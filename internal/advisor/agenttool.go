package advisor

import (
	"fmt"
	"strings"
	"time"

	"github.com/hupe1980/agentmesh/agent"
	"github.com/hupe1980/agentmesh/core"
	"github.com/hupe1980/agentmesh/runner"

	"github.com/junhyuk/finadvisor/internal/metrics"
)

// AgentToolOptions configures an AgentTool.
type AgentToolOptions struct {
	Metrics *metrics.Metrics
}

// AgentTool exposes an analyst agent as a callable tool. The wrapped agent
// runs to completion in its own session, the final response is returned to
// the caller, and a copy is written into the calling session's state under
// the agent's output key so later tools can read it.
type AgentTool struct {
	agent     *agent.ModelAgent
	outputKey string
	metrics   *metrics.Metrics
}

// NewAgentTool wraps an agent as a tool.
func NewAgentTool(a *agent.ModelAgent, outputKey string, optFns ...func(o *AgentToolOptions)) *AgentTool {
	var opts AgentToolOptions
	for _, fn := range optFns {
		fn(&opts)
	}
	return &AgentTool{agent: a, outputKey: outputKey, metrics: opts.Metrics}
}

func (t *AgentTool) Name() string { return t.agent.Name() }

func (t *AgentTool) Description() string { return t.agent.Description() }

func (t *AgentTool) Parameters() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"request": map[string]any{
				"type":        "string",
				"description": fmt.Sprintf("The research request to hand to %s.", t.agent.Name()),
			},
		},
		"required": []string{"request"},
	}
}

// Call runs the wrapped agent with the given request and collects its final
// response text.
func (t *AgentTool) Call(toolCtx *core.ToolContext, args map[string]any) (any, error) {
	request, _ := args["request"].(string)
	if request == "" {
		request, _ = args["query"].(string)
	}
	if strings.TrimSpace(request) == "" {
		return nil, fmt.Errorf("request is required")
	}

	start := time.Now()

	run := runner.New(t.agent, func(o *runner.Options) {
		o.Logger = toolCtx.Logger()
	})

	sessionID := fmt.Sprintf("%s-%s", toolCtx.SessionID(), strings.ToLower(t.agent.Name()))
	content := core.Content{Role: "user", Parts: []core.Part{core.TextPart{Text: request}}}

	_, eventsCh, errorsCh, err := run.Run(toolCtx.Context(), sessionID, content)
	if err != nil {
		t.observe(start, "error", "start")
		return nil, fmt.Errorf("failed to run %s: %w", t.agent.Name(), err)
	}

	var runErr error
	var final string

	for eventsCh != nil || errorsCh != nil {
		select {
		case ev, ok := <-eventsCh:
			if !ok {
				eventsCh = nil
				continue
			}
			if ev.Author != t.agent.Name() || !ev.IsFinalResponse() {
				continue
			}
			if text := eventText(ev); text != "" {
				final = text
			}
		case err, ok := <-errorsCh:
			if !ok {
				errorsCh = nil
				continue
			}
			if err != nil && runErr == nil {
				runErr = err
			}
		}
	}

	if runErr != nil {
		t.observe(start, "error", "run")
		return nil, fmt.Errorf("%s failed: %w", t.agent.Name(), runErr)
	}
	if final == "" {
		t.observe(start, "error", "empty_response")
		return nil, fmt.Errorf("%s produced no response", t.agent.Name())
	}

	if t.outputKey != "" {
		toolCtx.SetState(t.outputKey, final)
	}

	t.observe(start, "success", "")
	return final, nil
}

// observe records the run for the wrapped agent.
func (t *AgentTool) observe(start time.Time, status, errorType string) {
	if t.metrics == nil {
		return
	}
	t.metrics.AgentExecutionsTotal.WithLabelValues(t.agent.Name(), status).Inc()
	t.metrics.AgentExecutionDuration.WithLabelValues(t.agent.Name()).Observe(time.Since(start).Seconds())
	if errorType != "" {
		t.metrics.AgentExecutionErrorsTotal.WithLabelValues(t.agent.Name(), errorType).Inc()
	}
}

// eventText joins the text parts of an event.
func eventText(ev core.Event) string {
	if ev.Content == nil {
		return ""
	}
	var sb strings.Builder
	for _, part := range ev.Content.Parts {
		if tp, ok := part.(core.TextPart); ok {
			sb.WriteString(tp.Text)
		}
	}
	return strings.TrimSpace(sb.String())
}
