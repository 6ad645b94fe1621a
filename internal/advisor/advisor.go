// Package advisor assembles the financial research agent graph: an
// orchestrator that consults four analyst agents as tools and saves the
// combined findings as an investment advice report.
package advisor

import (
	"context"
	"fmt"
	"time"

	"github.com/hupe1980/agentmesh/agent"
	meshartifact "github.com/hupe1980/agentmesh/artifact"
	"github.com/hupe1980/agentmesh/core"
	"github.com/hupe1980/agentmesh/logging"
	"github.com/hupe1980/agentmesh/memory"
	"github.com/hupe1980/agentmesh/runner"
	"github.com/hupe1980/agentmesh/session"
	"github.com/hupe1980/agentmesh/tool"
	"github.com/rs/zerolog"

	"github.com/junhyuk/finadvisor/internal/config"
	"github.com/junhyuk/finadvisor/internal/market"
	"github.com/junhyuk/finadvisor/internal/metrics"
	"github.com/junhyuk/finadvisor/internal/search"
)

const advisorInstruction = `You are FinancialAdvisor, an investment research orchestrator. You answer investment questions by delegating research to four analyst agents and then combining their findings into clear advice.

**Available analyst tools**
- **SectorAnalyst**: finds candidate companies and tickers in a sector when the user has not named one.
- **DataAnalyst**: collects company profile, price history, and key financial metrics for a ticker.
- **FinancialAnalyst**: analyzes income statements, balance sheets, and cash flow statements for a ticker.
- **NewsAnalyst**: researches recent news coverage and sentiment for a company or industry.
- **save_advice_report**: assembles and saves the final report; call it exactly once, at the end.

**Workflow**
1. If the user has not named a specific ticker, call SectorAnalyst first to pick candidates and choose the most suitable primary ticker.
2. For the primary ticker, call DataAnalyst, FinancialAnalyst, and NewsAnalyst, passing each a focused research request.
3. Once all analysts have reported, write a summary with concrete investment advice: a stance (buy/hold/avoid), the key reasons, and the main risks.
4. Call save_advice_report with that summary and the primary ticker, then present the summary to the user and mention that the full report was saved.

Base every claim on the analysts' findings. Do not invent data, and keep citations the analysts provided.`

// Options configures the advisor assembly.
type Options struct {
	SessionStore  core.SessionStore
	ArtifactStore core.ArtifactStore
	MemoryStore   core.MemoryStore
	MeshLogger    logging.Logger
	Metrics       *metrics.Metrics
	Logger        zerolog.Logger
}

// Advisor owns the assembled agent graph and the runner executing it.
type Advisor struct {
	root          *agent.ModelAgent
	runner        *runner.Runner
	sessionStore  core.SessionStore
	artifactStore core.ArtifactStore
	metrics       *metrics.Metrics
	logger        zerolog.Logger
}

// New builds the advisor graph from configuration.
func New(cfg *config.Config, optFns ...func(o *Options)) (*Advisor, error) {
	opts := Options{
		SessionStore:  session.NewInMemoryStore(),
		ArtifactStore: meshartifact.NewInMemoryStore(),
		MemoryStore:   memory.NewInMemoryStore(),
		MeshLogger:    logging.NoOpLogger{},
		Logger:        zerolog.Nop(),
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	llm, err := newModel(cfg.AI)
	if err != nil {
		return nil, fmt.Errorf("failed to build model: %w", err)
	}

	searchClient := search.NewClient(cfg.Search.APIKey, func(o *search.Options) {
		o.Endpoint = cfg.Search.Endpoint
		o.Limit = cfg.Search.Limit
		o.Timeout = time.Duration(cfg.Search.TimeoutS) * time.Second
		o.Logger = opts.Logger
	})
	marketClient := market.NewClient(func(o *market.Options) {
		o.Endpoint = cfg.Market.Endpoint
		o.UserAgent = cfg.Market.UserAgent
		o.Timeout = time.Duration(cfg.Market.TimeoutS) * time.Second
		o.Logger = opts.Logger
	})

	webSearch := tool.Tool(search.NewTool(searchClient))
	dataTools := market.DataTools(marketClient)
	statementTools := market.StatementTools(marketClient)
	reportTool := tool.Tool(NewSaveAdviceReportTool())

	if opts.Metrics != nil {
		webSearch = metrics.InstrumentTool(webSearch, opts.Metrics)
		dataTools = metrics.InstrumentTools(dataTools, opts.Metrics)
		statementTools = metrics.InstrumentTools(statementTools, opts.Metrics)
		reportTool = metrics.InstrumentTool(reportTool, opts.Metrics)
	}

	dataAnalyst := NewDataAnalyst(llm, dataTools)
	financialAnalyst := NewFinancialAnalyst(llm, statementTools)
	newsAnalyst := NewNewsAnalyst(llm, webSearch)
	sectorAnalyst := NewSectorAnalyst(llm, webSearch)

	root := agent.NewModelAgent("FinancialAdvisor", llm, func(o *agent.ModelAgentOptions) {
		o.Instruction = agent.NewInstructionFromText(advisorInstruction)
		o.AllowTransfer = false
	})
	root.SetDescription("Investment research orchestrator that consults analyst agents and produces advice reports.")
	agentToolOpts := func(o *AgentToolOptions) { o.Metrics = opts.Metrics }
	root.RegisterTools(
		NewAgentTool(financialAnalyst, StateKeyFinancialAnalyst, agentToolOpts),
		NewAgentTool(newsAnalyst, StateKeyNewsAnalyst, agentToolOpts),
		NewAgentTool(dataAnalyst, StateKeyDataAnalyst, agentToolOpts),
		NewAgentTool(sectorAnalyst, StateKeySectorAnalyst, agentToolOpts),
		reportTool,
	)

	run := runner.New(root, func(o *runner.Options) {
		o.SessionStore = opts.SessionStore
		o.ArtifactStore = opts.ArtifactStore
		o.MemoryStore = opts.MemoryStore
		o.Logger = opts.MeshLogger
	})

	return &Advisor{
		root:          root,
		runner:        run,
		sessionStore:  opts.SessionStore,
		artifactStore: opts.ArtifactStore,
		metrics:       opts.Metrics,
		logger:        opts.Logger,
	}, nil
}

// Root returns the orchestrator agent.
func (a *Advisor) Root() *agent.ModelAgent { return a.root }

// Result holds the outcome of one research run.
type Result struct {
	SessionID string
	RunID     string
	Answer    string
	Report    string
	Artifacts []string
}

// ResearchOptions configures a single research run.
type ResearchOptions struct {
	// OnEvent is called for every event the run emits, in order.
	OnEvent func(core.Event)
}

// Research runs one research query through the advisor graph and collects
// the answer, the saved report, and the artifact ids.
func (a *Advisor) Research(ctx context.Context, sessionID, query string, optFns ...func(o *ResearchOptions)) (*Result, error) {
	var opts ResearchOptions
	for _, fn := range optFns {
		fn(&opts)
	}

	start := time.Now()

	runID, eventsCh, errorsCh, err := a.runner.Run(ctx, sessionID, core.Content{
		Role:  "user",
		Parts: []core.Part{core.TextPart{Text: query}},
	})
	if err != nil {
		a.observeRun(start, "error")
		return nil, fmt.Errorf("failed to start research run: %w", err)
	}

	a.logger.Info().
		Str("session_id", sessionID).
		Str("run_id", runID).
		Msg("research run started")

	var runErr error
	var answer string

	for eventsCh != nil || errorsCh != nil {
		select {
		case ev, ok := <-eventsCh:
			if !ok {
				eventsCh = nil
				continue
			}
			if opts.OnEvent != nil {
				opts.OnEvent(ev)
			}
			if ev.Author == a.root.Name() && ev.IsFinalResponse() {
				if text := eventText(ev); text != "" {
					answer = text
				}
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
		a.observeRun(start, "error")
		return nil, fmt.Errorf("research run failed: %w", runErr)
	}

	result := &Result{
		SessionID: sessionID,
		RunID:     runID,
		Answer:    answer,
	}

	if sess, err := a.sessionStore.Get(sessionID); err == nil && sess != nil {
		if v, ok := sess.GetState(StateKeyReport); ok {
			result.Report, _ = v.(string)
		}
	}
	if ids, err := a.artifactStore.List(sessionID); err == nil {
		result.Artifacts = ids
	}

	a.observeRun(start, "success")
	if result.Report != "" && a.metrics != nil {
		a.metrics.ReportsGeneratedTotal.Inc()
	}

	return result, nil
}

// Artifact returns the raw bytes of a saved artifact.
func (a *Advisor) Artifact(sessionID, artifactID string) ([]byte, error) {
	return a.artifactStore.Get(sessionID, artifactID)
}

func (a *Advisor) observeRun(start time.Time, status string) {
	if a.metrics == nil {
		return
	}
	a.metrics.ResearchRunsTotal.WithLabelValues(status).Inc()
	a.metrics.ResearchRunDuration.Observe(time.Since(start).Seconds())
	a.metrics.AgentExecutionsTotal.WithLabelValues(a.root.Name(), status).Inc()
}
