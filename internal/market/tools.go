package market

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/hupe1980/agentmesh/core"
	"github.com/hupe1980/agentmesh/tool"
)

// errorResponse is the shared failure shape for all market tools.
func errorResponse(ticker, message string) map[string]any {
	return map[string]any{
		"ticker":  ticker,
		"success": false,
		"error":   message,
	}
}

// numberOrNA converts an optional Yahoo value to its raw number, or the
// literal "NA" when the field was missing.
func numberOrNA(v Value) any {
	if !v.Valid {
		return "NA"
	}
	return v.Raw
}

func stringOrNA(s string) string {
	if s == "" {
		return "NA"
	}
	return s
}

func tickerArg(args map[string]any) (string, bool) {
	raw, ok := args["ticker"].(string)
	if !ok {
		return "", false
	}
	ticker := strings.ToUpper(strings.TrimSpace(raw))
	return ticker, ticker != ""
}

func tickerSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"ticker": map[string]any{
				"type":        "string",
				"description": "Stock ticker symbol, e.g. 'AAPL'",
			},
		},
		"required": []string{"ticker"},
	}
}

// DataTools returns the tools the data analyst works with.
func DataTools(c *Client) []tool.Tool {
	return []tool.Tool{
		NewCompanyInfoTool(c),
		NewStockPriceTool(c),
		NewFinancialMetricsTool(c),
	}
}

// StatementTools returns the financial statement tools.
func StatementTools(c *Client) []tool.Tool {
	return []tool.Tool{
		NewIncomeStatementTool(c),
		NewBalanceSheetTool(c),
		NewCashFlowTool(c),
	}
}

// NewCompanyInfoTool reports the company name, industry, and sector for
// a ticker.
func NewCompanyInfoTool(c *Client) *tool.FunctionTool {
	return tool.NewFunctionTool(
		"get_company_info",
		"Get basic company information (official name, industry, sector) for a stock ticker.",
		tickerSchema(),
		func(toolCtx *core.ToolContext, args map[string]any) (any, error) {
			ticker, ok := tickerArg(args)
			if !ok {
				return errorResponse("", "no ticker was provided"), nil
			}

			summary, err := c.QuoteSummary(toolCtx.Context(), ticker, "price", "assetProfile")
			if err != nil {
				return errorResponse(ticker, fmt.Sprintf("failed to fetch company info: %v", err)), nil
			}
			if summary.Price == nil && summary.AssetProfile == nil {
				return errorResponse(ticker, "company information not found"), nil
			}

			out := map[string]any{
				"ticker":       ticker,
				"success":      true,
				"company_name": "NA",
				"industry":     "NA",
				"sector":       "NA",
			}
			if summary.Price != nil {
				name := summary.Price.LongName
				if name == "" {
					name = summary.Price.ShortName
				}
				out["company_name"] = stringOrNA(name)
			}
			if summary.AssetProfile != nil {
				out["industry"] = stringOrNA(summary.AssetProfile.Industry)
				out["sector"] = stringOrNA(summary.AssetProfile.Sector)
			}

			return out, nil
		},
	)
}

// NewStockPriceTool reports price history for a period together with the
// current market price.
func NewStockPriceTool(c *Client) *tool.FunctionTool {
	schema := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"ticker": map[string]any{
				"type":        "string",
				"description": "Stock ticker symbol, e.g. 'AAPL'",
			},
			"period": map[string]any{
				"type":        "string",
				"description": "History range: 1d, 5d, 1mo, 3mo, 6mo, 1y, 2y, 5y, 10y, ytd, or max. Defaults to 1mo.",
			},
		},
		"required": []string{"ticker"},
	}

	return tool.NewFunctionTool(
		"get_stock_price",
		"Get price history (OHLCV candles) for a period plus the current market price of a stock.",
		schema,
		func(toolCtx *core.ToolContext, args map[string]any) (any, error) {
			ticker, ok := tickerArg(args)
			if !ok {
				return errorResponse("", "no ticker was provided"), nil
			}

			period, _ := args["period"].(string)
			if period == "" {
				period = "1mo"
			}
			if !ValidPeriod(period) {
				return errorResponse(ticker, fmt.Sprintf("invalid period %q", period)), nil
			}

			hist, err := c.History(toolCtx.Context(), ticker, period)
			if err != nil {
				return errorResponse(ticker, fmt.Sprintf("failed to fetch price data: %v", err)), nil
			}
			if len(hist.Candles) == 0 {
				return errorResponse(ticker, fmt.Sprintf("no price history for period %s", period)), nil
			}

			historyJSON, err := json.Marshal(hist.Candles)
			if err != nil {
				return errorResponse(ticker, fmt.Sprintf("failed to encode price history: %v", err)), nil
			}

			// The live quote is best effort; fall back to the last close.
			var currentPrice any
			if summary, err := c.QuoteSummary(toolCtx.Context(), ticker, "price"); err == nil &&
				summary.Price != nil && summary.Price.RegularMarketPrice.Valid {
				currentPrice = summary.Price.RegularMarketPrice.Raw
			} else if latest, ok := hist.LatestClose(); ok {
				currentPrice = latest
			}

			priceSummary := map[string]any{}
			if latest, ok := hist.LatestClose(); ok {
				priceSummary["latest_close"] = latest
				priceSummary["period_candles"] = len(hist.Candles)
				if pct, ok := hist.ChangePct(); ok {
					priceSummary["change_pct"] = pct
				}
			}

			return map[string]any{
				"ticker":        ticker,
				"success":       true,
				"history":       string(historyJSON),
				"current_price": currentPrice,
				"price_summary": priceSummary,
				"period":        period,
			}, nil
		},
	)
}

// NewFinancialMetricsTool reports valuation and risk metrics for a ticker.
func NewFinancialMetricsTool(c *Client) *tool.FunctionTool {
	return tool.NewFunctionTool(
		"get_financial_metrics",
		"Get key financial metrics for a stock: market cap, P/E ratio, dividend yield, and beta.",
		tickerSchema(),
		func(toolCtx *core.ToolContext, args map[string]any) (any, error) {
			ticker, ok := tickerArg(args)
			if !ok {
				return errorResponse("", "no ticker was provided"), nil
			}

			summary, err := c.QuoteSummary(toolCtx.Context(), ticker, "price", "summaryDetail", "defaultKeyStatistics")
			if err != nil {
				return errorResponse(ticker, fmt.Sprintf("failed to fetch financial metrics: %v", err)), nil
			}
			if summary.SummaryDetail == nil && summary.Price == nil {
				return errorResponse(ticker, "financial metrics not found"), nil
			}

			marketCap := Value{}
			if summary.Price != nil {
				marketCap = summary.Price.MarketCap
			}
			detail := SummaryDetail{}
			if summary.SummaryDetail != nil {
				detail = *summary.SummaryDetail
				if !marketCap.Valid {
					marketCap = detail.MarketCap
				}
			}

			return map[string]any{
				"ticker":         ticker,
				"success":        true,
				"market_cap":     numberOrNA(marketCap),
				"pe_ratio":       numberOrNA(detail.TrailingPE),
				"dividend_yield": numberOrNA(detail.DividendYield),
				"beta":           numberOrNA(detail.Beta),
			}, nil
		},
	)
}

// NewIncomeStatementTool reports annual income statements as JSON.
func NewIncomeStatementTool(c *Client) *tool.FunctionTool {
	return tool.NewFunctionTool(
		"get_income_statement",
		"Get annual income statements for a stock: revenue, costs, operating income, and net income.",
		tickerSchema(),
		func(toolCtx *core.ToolContext, args map[string]any) (any, error) {
			ticker, ok := tickerArg(args)
			if !ok {
				return errorResponse("", "no ticker was provided"), nil
			}

			summary, err := c.QuoteSummary(toolCtx.Context(), ticker, "incomeStatementHistory")
			if err != nil {
				return errorResponse(ticker, fmt.Sprintf("failed to fetch income statement: %v", err)), nil
			}
			if summary.IncomeStatementHistory == nil || len(summary.IncomeStatementHistory.Statements) == 0 {
				return errorResponse(ticker, "income statement not found"), nil
			}

			data, err := json.Marshal(summary.IncomeStatementHistory.Statements)
			if err != nil {
				return errorResponse(ticker, fmt.Sprintf("failed to encode income statement: %v", err)), nil
			}

			return map[string]any{
				"ticker":           ticker,
				"success":          true,
				"income_statement": string(data),
			}, nil
		},
	)
}

// NewBalanceSheetTool reports annual balance sheets as JSON.
func NewBalanceSheetTool(c *Client) *tool.FunctionTool {
	return tool.NewFunctionTool(
		"get_balance_sheet",
		"Get annual balance sheets for a stock: assets, liabilities, and stockholder equity.",
		tickerSchema(),
		func(toolCtx *core.ToolContext, args map[string]any) (any, error) {
			ticker, ok := tickerArg(args)
			if !ok {
				return errorResponse("", "no ticker was provided"), nil
			}

			summary, err := c.QuoteSummary(toolCtx.Context(), ticker, "balanceSheetHistory")
			if err != nil {
				return errorResponse(ticker, fmt.Sprintf("failed to fetch balance sheet: %v", err)), nil
			}
			if summary.BalanceSheetHistory == nil || len(summary.BalanceSheetHistory.Statements) == 0 {
				return errorResponse(ticker, "balance sheet not found"), nil
			}

			data, err := json.Marshal(summary.BalanceSheetHistory.Statements)
			if err != nil {
				return errorResponse(ticker, fmt.Sprintf("failed to encode balance sheet: %v", err)), nil
			}

			return map[string]any{
				"ticker":        ticker,
				"success":       true,
				"balance_sheet": string(data),
			}, nil
		},
	)
}

// NewCashFlowTool reports annual cash flow statements as JSON.
func NewCashFlowTool(c *Client) *tool.FunctionTool {
	return tool.NewFunctionTool(
		"get_cash_flow",
		"Get annual cash flow statements for a stock: operating, investing, and financing cash flows.",
		tickerSchema(),
		func(toolCtx *core.ToolContext, args map[string]any) (any, error) {
			ticker, ok := tickerArg(args)
			if !ok {
				return errorResponse("", "no ticker was provided"), nil
			}

			summary, err := c.QuoteSummary(toolCtx.Context(), ticker, "cashflowStatementHistory")
			if err != nil {
				return errorResponse(ticker, fmt.Sprintf("failed to fetch cash flow: %v", err)), nil
			}
			if summary.CashflowStatementHistory == nil || len(summary.CashflowStatementHistory.Statements) == 0 {
				return errorResponse(ticker, "cash flow statement not found"), nil
			}

			data, err := json.Marshal(summary.CashflowStatementHistory.Statements)
			if err != nil {
				return errorResponse(ticker, fmt.Sprintf("failed to encode cash flow: %v", err)), nil
			}

			return map[string]any{
				"ticker":    ticker,
				"success":   true,
				"cash_flow": string(data),
			}, nil
		},
	)
}
