package market

import (
	"encoding/json"
	"time"
)

// Value is a numeric field as Yahoo Finance reports it, either a bare
// number or an object carrying the raw number plus a display string.
// Valid is false when the field was absent or null.
type Value struct {
	Raw   float64
	Fmt   string
	Valid bool
}

// UnmarshalJSON accepts both the object form {"raw": 1.5, "fmt": "1.50"}
// and a bare number.
func (v *Value) UnmarshalJSON(data []byte) error {
	if string(data) == "null" || string(data) == "{}" {
		v.Valid = false
		return nil
	}

	var obj struct {
		Raw *float64 `json:"raw"`
		Fmt string   `json:"fmt"`
	}
	if err := json.Unmarshal(data, &obj); err == nil {
		if obj.Raw == nil {
			v.Valid = false
			return nil
		}
		v.Raw = *obj.Raw
		v.Fmt = obj.Fmt
		v.Valid = true
		return nil
	}

	var num float64
	if err := json.Unmarshal(data, &num); err != nil {
		return err
	}
	v.Raw = num
	v.Valid = true
	return nil
}

// MarshalJSON emits the raw number, or null when unset, so tool output
// stays plain JSON a model can read.
func (v Value) MarshalJSON() ([]byte, error) {
	if !v.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(v.Raw)
}

type apiError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

// QuoteSummary holds the quoteSummary modules this package requests.
// Pointers stay nil for modules that were not asked for.
type QuoteSummary struct {
	Price                    *Price                    `json:"price"`
	SummaryDetail            *SummaryDetail            `json:"summaryDetail"`
	AssetProfile             *AssetProfile             `json:"assetProfile"`
	KeyStatistics            *KeyStatistics            `json:"defaultKeyStatistics"`
	IncomeStatementHistory   *IncomeStatementHistory   `json:"incomeStatementHistory"`
	BalanceSheetHistory      *BalanceSheetHistory      `json:"balanceSheetHistory"`
	CashflowStatementHistory *CashflowStatementHistory `json:"cashflowStatementHistory"`
}

type Price struct {
	Symbol             string `json:"symbol"`
	LongName           string `json:"longName"`
	ShortName          string `json:"shortName"`
	Currency           string `json:"currency"`
	RegularMarketPrice Value  `json:"regularMarketPrice"`
	MarketCap          Value  `json:"marketCap"`
}

type SummaryDetail struct {
	MarketCap     Value `json:"marketCap"`
	TrailingPE    Value `json:"trailingPE"`
	DividendYield Value `json:"dividendYield"`
	Beta          Value `json:"beta"`
}

type AssetProfile struct {
	Industry            string `json:"industry"`
	Sector              string `json:"sector"`
	Country             string `json:"country"`
	Website             string `json:"website"`
	LongBusinessSummary string `json:"longBusinessSummary"`
}

type KeyStatistics struct {
	EnterpriseValue   Value `json:"enterpriseValue"`
	ForwardPE         Value `json:"forwardPE"`
	ProfitMargins     Value `json:"profitMargins"`
	SharesOutstanding Value `json:"sharesOutstanding"`
	BookValue         Value `json:"bookValue"`
	PriceToBook       Value `json:"priceToBook"`
	TrailingEps       Value `json:"trailingEps"`
}

type IncomeStatementHistory struct {
	Statements []IncomeStatement `json:"incomeStatementHistory"`
}

type IncomeStatement struct {
	EndDate                Value `json:"endDate"`
	TotalRevenue           Value `json:"totalRevenue"`
	CostOfRevenue          Value `json:"costOfRevenue"`
	GrossProfit            Value `json:"grossProfit"`
	TotalOperatingExpenses Value `json:"totalOperatingExpenses"`
	OperatingIncome        Value `json:"operatingIncome"`
	Ebit                   Value `json:"ebit"`
	IncomeBeforeTax        Value `json:"incomeBeforeTax"`
	NetIncome              Value `json:"netIncome"`
}

type BalanceSheetHistory struct {
	Statements []BalanceSheet `json:"balanceSheetStatements"`
}

type BalanceSheet struct {
	EndDate                 Value `json:"endDate"`
	Cash                    Value `json:"cash"`
	Inventory               Value `json:"inventory"`
	TotalCurrentAssets      Value `json:"totalCurrentAssets"`
	TotalAssets             Value `json:"totalAssets"`
	TotalCurrentLiabilities Value `json:"totalCurrentLiabilities"`
	LongTermDebt            Value `json:"longTermDebt"`
	TotalLiabilities        Value `json:"totalLiab"`
	StockholderEquity       Value `json:"totalStockholderEquity"`
}

type CashflowStatementHistory struct {
	Statements []CashflowStatement `json:"cashflowStatements"`
}

type CashflowStatement struct {
	EndDate                 Value `json:"endDate"`
	NetIncome               Value `json:"netIncome"`
	OperatingCashFlow       Value `json:"totalCashFromOperatingActivities"`
	CapitalExpenditures     Value `json:"capitalExpenditures"`
	InvestingCashFlow       Value `json:"totalCashflowsFromInvestingActivities"`
	FinancingCashFlow       Value `json:"totalCashFromFinancingActivities"`
	ChangeInCash            Value `json:"changeInCash"`
}

// Candle is one daily bar from the chart endpoint.
type Candle struct {
	Time   time.Time `json:"time"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume int64     `json:"volume"`
}

// History is the parsed price history for one ticker and period.
// Candles with no close (exchange holidays, halted sessions) are dropped
// during parsing.
type History struct {
	Ticker   string   `json:"ticker"`
	Period   string   `json:"period"`
	Currency string   `json:"currency"`
	Candles  []Candle `json:"candles"`
}

// LatestClose returns the most recent close, or false when the history
// is empty.
func (h *History) LatestClose() (float64, bool) {
	if len(h.Candles) == 0 {
		return 0, false
	}
	return h.Candles[len(h.Candles)-1].Close, true
}

// ChangePct returns the percent change from the first to the last close.
func (h *History) ChangePct() (float64, bool) {
	if len(h.Candles) == 0 {
		return 0, false
	}
	first := h.Candles[0].Close
	if first == 0 {
		return 0, false
	}
	last := h.Candles[len(h.Candles)-1].Close
	return (last - first) / first * 100, true
}
