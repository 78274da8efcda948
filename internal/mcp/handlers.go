package mcp

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/tamiro44/repo-summarizer/internal/errors"
	"github.com/tamiro44/repo-summarizer/internal/summarize"
)

// Handlers holds dependencies for MCP tool handlers.
type Handlers struct {
	svc SummarizeService
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(svc SummarizeService) *Handlers {
	return &Handlers{svc: svc}
}

// SummarizeRequest represents the arguments for repo_summarize.
type SummarizeRequest struct {
	GitHubURL string `json:"github_url"`
	Ref       string `json:"ref,omitempty"`
}

// HandleSummarize handles the repo_summarize tool call.
func (h *Handlers) HandleSummarize(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[SummarizeRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	owner, repo, err := summarize.ParseRepoURL(input.GitHubURL)
	if err != nil {
		return errorResult(err), nil
	}

	result, err := h.svc.Summarize(ctx, owner, repo, input.Ref)
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// errorResult creates an MCP error result from any error.
// Internal error details are not exposed to prevent leaking sensitive
// info.
func errorResult(err error) *mcp.CallToolResult {
	var payload map[string]any

	if e, ok := err.(*errors.Error); ok {
		errorObj := map[string]any{
			"code":    e.Code,
			"message": e.Message,
			"status":  e.Status,
		}
		if e.Code != errors.ErrInternal && e.Details != nil {
			errorObj["details"] = e.Details
		}
		payload = map[string]any{"error": errorObj}
	} else {
		payload = map[string]any{
			"error": map[string]any{
				"code":    "INTERNAL",
				"message": "an internal error occurred",
				"status":  500,
			},
		}
	}

	content, _ := json.Marshal(payload)
	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.TextContent{Type: "text", Text: string(content)}},
		IsError: true,
	}
}

// successResult creates an MCP success result from any data.
func successResult(data any) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultJSON(data)
}
