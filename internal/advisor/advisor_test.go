package advisor

import (
	"testing"

	"github.com/hupe1980/agentmesh/agent"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/junhyuk/finadvisor/internal/config"
	"github.com/junhyuk/finadvisor/internal/market"
	"github.com/junhyuk/finadvisor/internal/search"
)

func testConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.AI.APIKey = "sk-test"
	cfg.Search.APIKey = "fc-test"
	return cfg
}

func TestNewModel(t *testing.T) {
	t.Run("openai", func(t *testing.T) {
		cfg := testConfig().AI
		llm, err := newModel(cfg)
		require.NoError(t, err)
		assert.Equal(t, "openai", llm.Info().Provider)
	})

	t.Run("anthropic", func(t *testing.T) {
		cfg := testConfig().AI
		cfg.Provider = "anthropic"
		cfg.Model = "claude-sonnet-4-20250514"
		cfg.APIKey = "sk-ant-test"

		llm, err := newModel(cfg)
		require.NoError(t, err)
		assert.Equal(t, "anthropic", llm.Info().Provider)
	})

	t.Run("unsupported provider", func(t *testing.T) {
		cfg := testConfig().AI
		cfg.Provider = "ollama"

		_, err := newModel(cfg)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unsupported AI provider")
	})
}

func TestNew(t *testing.T) {
	adv, err := New(testConfig())
	require.NoError(t, err)

	root := adv.Root()
	assert.Equal(t, "FinancialAdvisor", root.Name())
	assert.NotEmpty(t, root.Description())

	// The orchestrator consults the four analysts and the report tool.
	for _, name := range []string{
		"DataAnalyst",
		"FinancialAnalyst",
		"NewsAnalyst",
		"SectorAnalyst",
		"save_advice_report",
	} {
		assert.True(t, root.HasTool(name), "missing tool %s", name)
	}
	assert.Len(t, root.GetTools(), 5)
}

func TestAnalystRegistrations(t *testing.T) {
	searchClient := search.NewClient("fc-test")
	webSearch := search.NewTool(searchClient)
	marketClient := market.NewClient()
	llm := &staticModel{text: "ok"}

	tests := []struct {
		name        string
		agent       *agent.ModelAgent
		outputKey   string
		instruction string
		tools       []string
	}{
		{
			name:        "DataAnalyst",
			agent:       NewDataAnalyst(llm, market.DataTools(marketClient)),
			outputKey:   StateKeyDataAnalyst,
			instruction: dataAnalystInstruction,
			tools:       []string{"get_company_info", "get_stock_price", "get_financial_metrics"},
		},
		{
			name:        "FinancialAnalyst",
			agent:       NewFinancialAnalyst(llm, market.StatementTools(marketClient)),
			outputKey:   StateKeyFinancialAnalyst,
			instruction: financialAnalystInstruction,
			tools:       []string{"get_income_statement", "get_balance_sheet", "get_cash_flow"},
		},
		{
			name:        "NewsAnalyst",
			agent:       NewNewsAnalyst(llm, webSearch),
			outputKey:   StateKeyNewsAnalyst,
			instruction: newsAnalystInstruction,
			tools:       []string{"web_search"},
		},
		{
			name:        "SectorAnalyst",
			agent:       NewSectorAnalyst(llm, webSearch),
			outputKey:   StateKeySectorAnalyst,
			instruction: sectorAnalystInstruction,
			tools:       []string{"web_search"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.name, tt.agent.Name())
			assert.NotEmpty(t, tt.agent.Description())
			assert.NotEmpty(t, tt.instruction)
			assert.Equal(t, tt.outputKey, tt.agent.GetOutputKey())

			for _, tool := range tt.tools {
				assert.True(t, tt.agent.HasTool(tool), "missing tool %s", tool)
			}
			assert.Len(t, tt.agent.GetTools(), len(tt.tools))

			// Analysts are leaves; only the orchestrator delegates.
			assert.Empty(t, tt.agent.SubAgents())
		})
	}
}

func TestNewRejectsUnknownProvider(t *testing.T) {
	cfg := testConfig()
	cfg.AI.Provider = "bedrock"

	_, err := New(cfg)
	require.Error(t, err)
}
