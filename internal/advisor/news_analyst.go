package advisor

import (
	"github.com/hupe1980/agentmesh/agent"
	"github.com/hupe1980/agentmesh/model"
	"github.com/hupe1980/agentmesh/tool"
)

const newsAnalystInstruction = `You are a news analyst who tracks current news in real time and provides insights that support investment decisions.

**Procedure**
1. Use web_search to find at least 10 news items about the company or industry from the last 30 days.
2. For each article, note the date, the source, the key points, and the market impact or investment implications.
3. Summarize the overall sentiment of the coverage in one line (positive/neutral/negative), and give a short risk and opportunity assessment tied to the user's goal.
4. If no meaningful news is found, state that clearly and suggest alternative search keywords or a time to check again.

**Available web tools**
- **web_search**: Firecrawl-backed company news search

Do not copy external API results verbatim; select the key information and add context.
Always cite sources in parentheses, e.g. (Bloomberg, 2024-05-01).`

// NewNewsAnalyst builds the analyst that researches recent news coverage.
func NewNewsAnalyst(llm model.Model, webSearch tool.Tool) *agent.ModelAgent {
	a := agent.NewModelAgent("NewsAnalyst", llm, func(o *agent.ModelAgentOptions) {
		o.Instruction = agent.NewInstructionFromText(newsAnalystInstruction)
		o.OutputKey = StateKeyNewsAnalyst
		o.AllowTransfer = false
	})
	a.SetDescription("Explores and summarizes real web content with a web search tool.")
	a.RegisterTool(webSearch)
	return a
}
