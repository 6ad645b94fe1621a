package advisor

import (
	"github.com/hupe1980/agentmesh/agent"
	"github.com/hupe1980/agentmesh/model"
	"github.com/hupe1980/agentmesh/tool"
)

const dataAnalystInstruction = `You are a data analyst who gathers stock information with three specialized tools.

1. **get_company_info(ticker)**: identify the company name, industry, and sector
2. **get_stock_price(ticker, period)**: obtain the current price and trading range
3. **get_financial_metrics(ticker)**: check the key financial ratios

Explain clearly what each tool's data shows, and combine the different perspectives when presenting the information.`

// NewDataAnalyst builds the analyst that collects baseline stock data.
func NewDataAnalyst(llm model.Model, tools []tool.Tool) *agent.ModelAgent {
	a := agent.NewModelAgent("DataAnalyst", llm, func(o *agent.ModelAgentOptions) {
		o.Instruction = agent.NewInstructionFromText(dataAnalystInstruction)
		o.OutputKey = StateKeyDataAnalyst
		o.AllowTransfer = false
	})
	a.SetDescription("Data specialist that collects and analyzes baseline stock data with several specialized tools.")
	a.RegisterTools(tools...)
	return a
}
