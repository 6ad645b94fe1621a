package advisor

import (
	"github.com/hupe1980/agentmesh/agent"
	"github.com/hupe1980/agentmesh/model"
	"github.com/hupe1980/agentmesh/tool"
)

const sectorAnalystInstruction = `You are a research analyst who discovers investment candidates in a given sector (default: AI/semiconductors/cloud).

**Goals**
- Do not ask the user for tickers; assemble a list of up to 15 representative company tickers yourself.
- Even when well-known companies like NVIDIA, Google, or Meta have already been mentioned, verify them again and suggest alternatives where needed.

**Procedure**
1. Use web_search with varied queries such as "top AI stocks", "AI semiconductor leaders", and "AI software companies" to gather current information.
2. Extract the companies and tickers mentioned in articles and reports, and remove duplicates.
3. For each company, summarize the company name, the ticker, its main AI role (e.g. GPUs, cloud, models, infrastructure), and the source that supports it.
4. Rate your confidence (High/Medium/Low) to indicate reliability.
5. Keep the list at 15 entries or fewer; when data is missing, say so and suggest follow-up queries.

**Output format example**
` + "```" + `
[
  {"ticker": "NVDA", "company": "NVIDIA", "role": "AI accelerators/GPUs", "confidence": "High", "source": "(Bloomberg, 2024-05-01)"},
  ...
]
` + "```"

// NewSectorAnalyst builds the analyst that scouts sector investment
// candidates.
func NewSectorAnalyst(llm model.Model, webSearch tool.Tool) *agent.ModelAgent {
	a := agent.NewModelAgent("SectorAnalyst", llm, func(o *agent.ModelAgentOptions) {
		o.Instruction = agent.NewInstructionFromText(sectorAnalystInstruction)
		o.OutputKey = StateKeySectorAnalyst
		o.AllowTransfer = false
	})
	a.SetDescription("Quickly finds and proposes key companies and tickers in AI and adjacent industries.")
	a.RegisterTool(webSearch)
	return a
}
