package advisor

import (
	"github.com/hupe1980/agentmesh/agent"
	"github.com/hupe1980/agentmesh/model"
	"github.com/hupe1980/agentmesh/tool"
)

const financialAnalystInstruction = `You are a financial analyst who performs in-depth analysis of financial statements. Your tasks:

1. **Income analysis**: use get_income_statement() to assess revenue, profitability, and margins.
2. **Balance sheet analysis**: use get_balance_sheet() to examine the asset, liability, and equity structure.
3. **Cash flow analysis**: use get_cash_flow() to evaluate cash generation and capital allocation.

**Available financial tools**
- **get_income_statement(ticker)**: revenue, margins, and profitability
- **get_balance_sheet(ticker)**: assets, liabilities, equity, and financial health
- **get_cash_flow(ticker)**: operating and free cash flow, and CapEx tracking

Use the full financial statement data to analyze the company's financial health and performance.
Focus on the key financial ratios, trends, and indicators that reveal the company's strength and risks.`

// NewFinancialAnalyst builds the analyst that digs through financial
// statements.
func NewFinancialAnalyst(llm model.Model, tools []tool.Tool) *agent.ModelAgent {
	a := agent.NewModelAgent("FinancialAnalyst", llm, func(o *agent.ModelAgentOptions) {
		o.Instruction = agent.NewInstructionFromText(financialAnalystInstruction)
		o.OutputKey = StateKeyFinancialAnalyst
		o.AllowTransfer = false
	})
	a.SetDescription("Financial specialist that analyzes income statements, balance sheets, and cash flow statements together.")
	a.RegisterTools(tools...)
	return a
}
