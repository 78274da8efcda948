// Package github fetches repository trees and file contents via the
// GitHub REST API. It is the pipeline's tree provider and content
// fetcher; errors from the tree call are fatal to a request, errors from
// content calls are per-file and non-fatal.
package github

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/tamiro44/repo-summarizer/internal/config"
	"github.com/tamiro44/repo-summarizer/internal/errors"
	"github.com/tamiro44/repo-summarizer/internal/rank"
)

// Client talks to the GitHub REST API.
type Client struct {
	base  string
	token string
	http  *http.Client
}

// NewClient builds a Client from settings.
func NewClient(cfg *config.Settings) *Client {
	return &Client{
		base:  strings.TrimRight(cfg.GitHubAPIBase, "/"),
		token: cfg.GitHubToken,
		http:  &http.Client{Timeout: cfg.GitHubTimeout},
	}
}

// treeResponse is the subset of the Git Trees API response we consume.
type treeResponse struct {
	Tree []struct {
		Path string `json:"path"`
		Type string `json:"type"`
		Size int    `json:"size"`
	} `json:"tree"`
	Truncated bool `json:"truncated"`
}

// ListFiles returns every blob in the repository tree at ref, in a single
// bulk listing call (Git Trees API with recursive=1).
func (c *Client) ListFiles(ctx context.Context, owner, repo, ref string) ([]rank.FileEntry, error) {
	u := fmt.Sprintf("%s/repos/%s/%s/git/trees/%s?recursive=1", c.base, owner, repo, url.PathEscape(ref))

	resp, err := c.get(ctx, u, "application/vnd.github.v3+json")
	if err != nil {
		return nil, errors.NewUpstream(0, fmt.Sprintf("GitHub API unreachable: %v", err))
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, errors.NewNotFound(owner, repo)
	case http.StatusForbidden:
		return nil, errors.NewRateLimited()
	default:
		return nil, errors.NewUpstream(resp.StatusCode, fmt.Sprintf("GitHub API error: %d", resp.StatusCode))
	}

	var tree treeResponse
	if err := json.NewDecoder(resp.Body).Decode(&tree); err != nil {
		return nil, errors.NewUpstream(resp.StatusCode, fmt.Sprintf("GitHub API returned invalid JSON: %v", err))
	}

	entries := make([]rank.FileEntry, 0, len(tree.Tree))
	for _, item := range tree.Tree {
		if item.Type != "blob" {
			continue
		}
		entries = append(entries, rank.FileEntry{Path: item.Path, Size: item.Size})
	}
	return entries, nil
}

// FetchRaw fetches one file's raw content. Non-200 responses are plain
// errors; the caller treats them as per-file and non-fatal.
func (c *Client) FetchRaw(ctx context.Context, owner, repo, ref, path string) (string, error) {
	u := fmt.Sprintf("%s/repos/%s/%s/contents/%s?ref=%s", c.base, owner, repo, escapePath(path), url.QueryEscape(ref))

	resp, err := c.get(ctx, u, "application/vnd.github.v3.raw")
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("content fetch returned %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

func (c *Client) get(ctx context.Context, u, accept string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", accept)
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	return c.http.Do(req)
}

// escapePath escapes each path segment while keeping the separators.
func escapePath(p string) string {
	segments := strings.Split(p, "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return strings.Join(segments, "/")
}
