package search

import (
	"github.com/hupe1980/agentmesh/core"
)

// Tool exposes the search client as an agentmesh tool.
//
// Provider-level failures (missing query, transport errors, unsuccessful
// responses, empty result sets) are returned as a one-element result list
// carrying the message in the markdown field rather than as a Go error, so the
// calling agent can see what went wrong and react.
type Tool struct {
	client *Client
}

// NewTool wraps a search client as the web_search tool
func NewTool(client *Client) *Tool {
	return &Tool{client: client}
}

// Name returns the tool identifier
func (t *Tool) Name() string { return "web_search" }

// Description returns the tool description
func (t *Tool) Description() string {
	return "Search the web and return a list of results with the page content in Markdown format."
}

// Parameters returns the JSON schema for tool parameters
func (t *Tool) Parameters() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"query": map[string]any{
				"type":        "string",
				"description": "The query to search the web for",
			},
		},
	}
}

// Call executes the web search. The query is accepted under the aliases models
// tend to use (query, request, q).
func (t *Tool) Call(toolCtx *core.ToolContext, args map[string]any) (any, error) {
	query := stringArg(args, "query", "request", "q")
	if query == "" {
		return []Result{{
			Title:    "query error",
			Markdown: "No search query was provided.",
		}}, nil
	}

	results, err := t.client.Search(toolCtx.Context(), query)
	if err != nil {
		toolCtx.Logger().Warn("tool.web_search.failed", "query", query, "error", err.Error())
		return []Result{{
			Title:    "search failed",
			Markdown: "Web search failed: " + err.Error(),
		}}, nil
	}

	if len(results) == 0 {
		return []Result{{
			Title:    "no results",
			Markdown: "No meaningful search results were found.",
		}}, nil
	}

	return results, nil
}

func stringArg(args map[string]any, keys ...string) string {
	for _, k := range keys {
		if v, ok := args[k].(string); ok && v != "" {
			return v
		}
	}
	return ""
}
