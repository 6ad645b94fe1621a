// Package search wraps the Firecrawl search API behind an agent tool. The
// provider owns result ranking, scraping and caching; this package only issues
// the HTTP call and normalizes the response for LLM consumption.
package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const defaultEndpoint = "https://api.firecrawl.dev/v1/search"

// Result is a single normalized search hit
type Result struct {
	Title    string `json:"title"`
	URL      string `json:"url"`
	Markdown string `json:"markdown"`
}

// Client calls the Firecrawl search API
type Client struct {
	apiKey     string
	endpoint   string
	limit      int
	httpClient *http.Client
	logger     zerolog.Logger
}

// Options configures the search client
type Options struct {
	Endpoint string
	Limit    int
	Timeout  time.Duration
	Logger   zerolog.Logger
}

// NewClient creates a Firecrawl search client
func NewClient(apiKey string, optFns ...func(o *Options)) *Client {
	opts := Options{
		Endpoint: defaultEndpoint,
		Limit:    5,
		Timeout:  60 * time.Second,
		Logger:   zerolog.Nop(),
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	return &Client{
		apiKey:     apiKey,
		endpoint:   opts.Endpoint,
		limit:      opts.Limit,
		httpClient: &http.Client{Timeout: opts.Timeout},
		logger:     opts.Logger,
	}
}

type searchRequest struct {
	Query         string        `json:"query"`
	Limit         int           `json:"limit"`
	ScrapeOptions scrapeOptions `json:"scrapeOptions"`
}

type scrapeOptions struct {
	Formats []string `json:"formats"`
}

type searchResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
	Data    []struct {
		Title    string `json:"title"`
		URL      string `json:"url"`
		Markdown string `json:"markdown"`
		Content  string `json:"content"`
	} `json:"data"`
}

// Search runs a web search and returns hits with cleaned markdown content.
// Hits without any scraped content are dropped.
func (c *Client) Search(ctx context.Context, query string) ([]Result, error) {
	body, err := json.Marshal(searchRequest{
		Query:         query,
		Limit:         c.limit,
		ScrapeOptions: scrapeOptions{Formats: []string{"markdown"}},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode search request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build search request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read search response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search API returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}

	var parsed searchResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("failed to decode search response: %w", err)
	}

	if !parsed.Success {
		msg := parsed.Error
		if msg == "" {
			msg = "search response unsuccessful"
		}
		return nil, fmt.Errorf("search API error: %s", msg)
	}

	results := make([]Result, 0, len(parsed.Data))
	for _, item := range parsed.Data {
		markdown := item.Markdown
		if markdown == "" {
			markdown = item.Content
		}
		if markdown == "" {
			continue
		}
		results = append(results, Result{
			Title:    item.Title,
			URL:      item.URL,
			Markdown: CleanMarkdown(markdown),
		})
	}

	c.logger.Debug().
		Str("query", query).
		Int("results", len(results)).
		Dur("duration", time.Since(start)).
		Msg("search completed")

	return results, nil
}

var (
	whitespaceRe = regexp.MustCompile(`\\+|\n+`)
	linkRe       = regexp.MustCompile(`\[[^\]]+\]\([^)]+\)|https?://[^\s]+`)
)

// CleanMarkdown collapses escapes and newlines and strips inline links and
// bare URLs so downstream prompts stay compact.
func CleanMarkdown(text string) string {
	cleaned := strings.TrimSpace(whitespaceRe.ReplaceAllString(text, " "))
	return linkRe.ReplaceAllString(cleaned, "")
}
