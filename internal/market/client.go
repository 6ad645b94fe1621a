// Package market fetches quotes, price history, and financial statements
// from the Yahoo Finance public API and exposes them as agent tools.
package market

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const (
	// DefaultEndpoint is the Yahoo Finance query host.
	DefaultEndpoint = "https://query1.finance.yahoo.com"

	// DefaultUserAgent identifies the client; Yahoo rejects empty agents.
	DefaultUserAgent = "finadvisor/0.1"
)

// validPeriods are the history ranges the chart endpoint accepts.
var validPeriods = map[string]struct{}{
	"1d": {}, "5d": {}, "1mo": {}, "3mo": {}, "6mo": {},
	"1y": {}, "2y": {}, "5y": {}, "10y": {}, "ytd": {}, "max": {},
}

// ValidPeriod reports whether period is an accepted history range.
func ValidPeriod(period string) bool {
	_, ok := validPeriods[period]
	return ok
}

// Options configures a Client.
type Options struct {
	Endpoint  string
	UserAgent string
	Timeout   time.Duration
	Logger    zerolog.Logger
}

// Client talks to the Yahoo Finance API.
type Client struct {
	endpoint   string
	userAgent  string
	httpClient *http.Client
	logger     zerolog.Logger
}

// NewClient creates a market data client.
func NewClient(optFns ...func(o *Options)) *Client {
	opts := Options{
		Endpoint:  DefaultEndpoint,
		UserAgent: DefaultUserAgent,
		Timeout:   30 * time.Second,
		Logger:    zerolog.Nop(),
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	return &Client{
		endpoint:   strings.TrimRight(opts.Endpoint, "/"),
		userAgent:  opts.UserAgent,
		httpClient: &http.Client{Timeout: opts.Timeout},
		logger:     opts.Logger,
	}
}

// QuoteSummary fetches the named quoteSummary modules for a ticker.
func (c *Client) QuoteSummary(ctx context.Context, ticker string, modules ...string) (*QuoteSummary, error) {
	if ticker == "" {
		return nil, fmt.Errorf("ticker is required")
	}
	if len(modules) == 0 {
		return nil, fmt.Errorf("at least one module is required")
	}

	u := fmt.Sprintf("%s/v10/finance/quoteSummary/%s?modules=%s",
		c.endpoint, url.PathEscape(ticker), url.QueryEscape(strings.Join(modules, ",")))

	var envelope struct {
		QuoteSummary struct {
			Result []QuoteSummary `json:"result"`
			Error  *apiError      `json:"error"`
		} `json:"quoteSummary"`
	}
	if err := c.get(ctx, u, &envelope); err != nil {
		return nil, err
	}

	if envelope.QuoteSummary.Error != nil {
		return nil, fmt.Errorf("quote summary for %s: %s", ticker, envelope.QuoteSummary.Error.Description)
	}
	if len(envelope.QuoteSummary.Result) == 0 {
		return nil, fmt.Errorf("no quote summary data for %s", ticker)
	}

	return &envelope.QuoteSummary.Result[0], nil
}

// History fetches daily candles for a ticker over the given period.
func (c *Client) History(ctx context.Context, ticker, period string) (*History, error) {
	if ticker == "" {
		return nil, fmt.Errorf("ticker is required")
	}
	if !ValidPeriod(period) {
		return nil, fmt.Errorf("invalid period %q", period)
	}

	u := fmt.Sprintf("%s/v8/finance/chart/%s?range=%s&interval=1d",
		c.endpoint, url.PathEscape(ticker), url.QueryEscape(period))

	var envelope struct {
		Chart struct {
			Result []struct {
				Meta struct {
					Currency           string  `json:"currency"`
					Symbol             string  `json:"symbol"`
					RegularMarketPrice float64 `json:"regularMarketPrice"`
				} `json:"meta"`
				Timestamp  []int64 `json:"timestamp"`
				Indicators struct {
					Quote []struct {
						Open   []*float64 `json:"open"`
						High   []*float64 `json:"high"`
						Low    []*float64 `json:"low"`
						Close  []*float64 `json:"close"`
						Volume []*int64   `json:"volume"`
					} `json:"quote"`
				} `json:"indicators"`
			} `json:"result"`
			Error *apiError `json:"error"`
		} `json:"chart"`
	}
	if err := c.get(ctx, u, &envelope); err != nil {
		return nil, err
	}

	if envelope.Chart.Error != nil {
		return nil, fmt.Errorf("price history for %s: %s", ticker, envelope.Chart.Error.Description)
	}
	if len(envelope.Chart.Result) == 0 {
		return nil, fmt.Errorf("no price history for %s", ticker)
	}

	result := envelope.Chart.Result[0]
	hist := &History{
		Ticker:   ticker,
		Period:   period,
		Currency: result.Meta.Currency,
	}

	if len(result.Indicators.Quote) == 0 {
		return hist, nil
	}
	quote := result.Indicators.Quote[0]

	at := func(vals []*float64, i int) float64 {
		if i < len(vals) && vals[i] != nil {
			return *vals[i]
		}
		return 0
	}

	for i, ts := range result.Timestamp {
		if i >= len(quote.Close) || quote.Close[i] == nil {
			continue
		}
		candle := Candle{
			Time:  time.Unix(ts, 0).UTC(),
			Open:  at(quote.Open, i),
			High:  at(quote.High, i),
			Low:   at(quote.Low, i),
			Close: *quote.Close[i],
		}
		if i < len(quote.Volume) && quote.Volume[i] != nil {
			candle.Volume = *quote.Volume[i]
		}
		hist.Candles = append(hist.Candles, candle)
	}

	return hist, nil
}

func (c *Client) get(ctx context.Context, rawURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	c.logger.Debug().Str("url", rawURL).Msg("market request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("market request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	// Yahoo returns its error envelope with a 404 for unknown tickers,
	// so decode those bodies instead of failing on status alone.
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNotFound {
		return fmt.Errorf("market request returned status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode market response: %w", err)
	}

	return nil
}
