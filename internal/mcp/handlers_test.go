package mcp

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/require"

	"github.com/tamiro44/repo-summarizer/internal/errors"
	"github.com/tamiro44/repo-summarizer/internal/summarize"
)

type fakeService struct {
	result              *summarize.Result
	err                 error
	lastOwner, lastRepo string
	lastRef             string
}

func (f *fakeService) Summarize(_ context.Context, owner, repo, ref string) (*summarize.Result, error) {
	f.lastOwner, f.lastRepo, f.lastRef = owner, repo, ref
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func makeRequest(args map[string]any) mcp.CallToolRequest {
	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{Arguments: args},
	}
}

func textOf(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.Len(t, res.Content, 1)
	tc, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok, "content should be text")
	return tc.Text
}

func TestHandleSummarize(t *testing.T) {
	svc := &fakeService{result: &summarize.Result{
		Summary:      "A tiny demo.",
		Technologies: []string{"Python"},
		Structure:    "Flat.",
		ContextFiles: 2,
		ContextBytes: 50,
	}}
	h := NewHandlers(svc)

	res, err := h.HandleSummarize(context.Background(), makeRequest(map[string]any{
		"github_url": "https://github.com/owner/repo",
		"ref":        "main",
	}))
	require.NoError(t, err)
	require.False(t, res.IsError)

	var got summarize.Result
	require.NoError(t, json.Unmarshal([]byte(textOf(t, res)), &got))
	require.Equal(t, "A tiny demo.", got.Summary)
	require.Equal(t, []string{"Python"}, got.Technologies)

	require.Equal(t, "owner", svc.lastOwner)
	require.Equal(t, "repo", svc.lastRepo)
	require.Equal(t, "main", svc.lastRef)
}

func TestHandleSummarize_InvalidURL(t *testing.T) {
	h := NewHandlers(&fakeService{})

	res, err := h.HandleSummarize(context.Background(), makeRequest(map[string]any{
		"github_url": "https://gitlab.com/owner/repo",
	}))
	require.NoError(t, err)
	require.True(t, res.IsError)

	var payload struct {
		Error struct {
			Code   string `json:"code"`
			Status int    `json:"status"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal([]byte(textOf(t, res)), &payload))
	require.Equal(t, "INVALID_REQUEST", payload.Error.Code)
	require.Equal(t, 400, payload.Error.Status)
}

func TestHandleSummarize_ServiceErrorBecomesErrorResult(t *testing.T) {
	h := NewHandlers(&fakeService{err: errors.NewNotFound("owner", "gone")})

	res, err := h.HandleSummarize(context.Background(), makeRequest(map[string]any{
		"github_url": "https://github.com/owner/gone",
	}))
	require.NoError(t, err, "tool errors travel inside the result, not as Go errors")
	require.True(t, res.IsError)

	var payload struct {
		Error struct {
			Code   string `json:"code"`
			Status int    `json:"status"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal([]byte(textOf(t, res)), &payload))
	require.Equal(t, "NOT_FOUND", payload.Error.Code)
	require.Equal(t, 404, payload.Error.Status)
}

func TestHandleSummarize_InternalDetailsSuppressed(t *testing.T) {
	h := NewHandlers(&fakeService{err: errors.NewInternal(context.DeadlineExceeded)})

	res, err := h.HandleSummarize(context.Background(), makeRequest(map[string]any{
		"github_url": "https://github.com/owner/repo",
	}))
	require.NoError(t, err)
	require.True(t, res.IsError)
	require.NotContains(t, textOf(t, res), "deadline")
}

func TestNewServer(t *testing.T) {
	s := NewServer(&fakeService{}, "test")
	require.NotNil(t, s)
}
