package advisor

import (
	"fmt"
	"strings"

	"github.com/hupe1980/agentmesh/core"
	"github.com/hupe1980/agentmesh/tool"
)

// State keys the analysts write their findings under.
const (
	StateKeyDataAnalyst      = "data_analyst_result"
	StateKeyFinancialAnalyst = "financial_analyst_result"
	StateKeyNewsAnalyst      = "news_analyst_result"
	StateKeySectorAnalyst    = "sector_analyst_result"
	StateKeyReport           = "report"
)

// ReportArtifactID returns the artifact name the advice report is saved
// under for a ticker.
func ReportArtifactID(ticker string) string {
	return fmt.Sprintf("%s_investment_advice.md", ticker)
}

// RenderReport assembles the final markdown report from the advisor's
// summary and the four analyst sections.
func RenderReport(summary, sector, data, financial, news string) string {
	section := func(s string) string {
		if strings.TrimSpace(s) == "" {
			return "_No findings available._"
		}
		return strings.TrimSpace(s)
	}

	var sb strings.Builder
	sb.WriteString("# Summary & Investment Advice\n\n")
	sb.WriteString(section(summary))
	sb.WriteString("\n\n## Sector Analyst Report\n\n")
	sb.WriteString(section(sector))
	sb.WriteString("\n\n## Data Analyst Report\n\n")
	sb.WriteString(section(data))
	sb.WriteString("\n\n## Financial Analyst Report\n\n")
	sb.WriteString(section(financial))
	sb.WriteString("\n\n## News Analyst Report\n\n")
	sb.WriteString(section(news))
	sb.WriteString("\n")
	return sb.String()
}

// NewSaveAdviceReportTool builds the tool the advisor calls once all
// analysts are done. It gathers their findings from session state, renders
// the markdown report, stores it under the report state key, and saves it
// as a session artifact named after the ticker.
func NewSaveAdviceReportTool() *tool.FunctionTool {
	schema := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"summary": map[string]any{
				"type":        "string",
				"description": "Overall summary and investment advice drawn from the analyst reports.",
			},
			"ticker": map[string]any{
				"type":        "string",
				"description": "Primary stock ticker the advice is for, e.g. 'NVDA'.",
			},
		},
		"required": []string{"summary", "ticker"},
	}

	return tool.NewFunctionTool(
		"save_advice_report",
		"Assemble the final investment advice report from the analyst results and save it as a markdown artifact.",
		schema,
		func(toolCtx *core.ToolContext, args map[string]any) (any, error) {
			summary, _ := args["summary"].(string)
			ticker, _ := args["ticker"].(string)
			ticker = strings.ToUpper(strings.TrimSpace(ticker))
			if ticker == "" {
				return nil, fmt.Errorf("ticker is required")
			}

			stateText := func(key string) string {
				v, ok := toolCtx.GetState(key)
				if !ok {
					return ""
				}
				s, _ := v.(string)
				return s
			}

			report := RenderReport(
				summary,
				stateText(StateKeySectorAnalyst),
				stateText(StateKeyDataAnalyst),
				stateText(StateKeyFinancialAnalyst),
				stateText(StateKeyNewsAnalyst),
			)

			toolCtx.SetState(StateKeyReport, report)

			filename := ReportArtifactID(ticker)
			if err := toolCtx.SaveArtifact(filename, []byte(report)); err != nil {
				return nil, fmt.Errorf("failed to save report artifact: %w", err)
			}

			toolCtx.Logger().Info("advice report saved", "artifact", filename, "bytes", len(report))

			return map[string]any{
				"success": true,
			}, nil
		},
	)
}
