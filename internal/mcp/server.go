// Package mcp exposes the summarizer over the Model Context Protocol via
// stdio.
package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/tamiro44/repo-summarizer/internal/summarize"
)

// SummarizeService is the slice of the summarize service the MCP surface
// depends on.
type SummarizeService interface {
	Summarize(ctx context.Context, owner, repo, ref string) (*summarize.Result, error)
}

var summarizeToolDef = mcp.NewTool("repo_summarize",
	mcp.WithDescription("Summarize a public GitHub repository: what it does, the technologies it uses, and how it is laid out."),
	mcp.WithString("github_url",
		mcp.Required(),
		mcp.Description("Full GitHub repository URL, e.g. https://github.com/owner/repo"),
	),
	mcp.WithString("ref",
		mcp.Description("Branch, tag, or commit to summarize (default HEAD)"),
	),
)

// NewServer creates a new MCP server with the summarize tool registered.
func NewServer(svc SummarizeService, version string) *server.MCPServer {
	s := server.NewMCPServer(
		"repo-summarizer",
		version,
		server.WithToolCapabilities(true),
	)

	h := NewHandlers(svc)
	s.AddTool(summarizeToolDef, h.HandleSummarize)

	return s
}

// Run starts the MCP server using stdio transport.
func Run(svc SummarizeService, version string) error {
	return server.ServeStdio(NewServer(svc, version))
}
