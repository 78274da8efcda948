// Package llm sends an assembled context blob to a text-generation API
// and parses the structured summary it returns. The provider is detected
// from the API base URL: anthropic.com selects the Messages API, anything
// else is treated as OpenAI-compatible.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/tamiro44/repo-summarizer/internal/config"
	"github.com/tamiro44/repo-summarizer/internal/errors"
)

// Summary is the structured output requested from the model.
type Summary struct {
	Summary      string   `json:"summary"`
	Technologies []string `json:"technologies"`
	Structure    string   `json:"structure"`
}

// Client calls either the Anthropic Messages API or an OpenAI-compatible
// chat completions endpoint.
type Client struct {
	base      string
	key       string
	model     string
	maxTokens int
	anthropic bool
	http      *http.Client
}

// NewClient builds a Client from settings.
func NewClient(cfg *config.Settings) *Client {
	base := strings.TrimRight(cfg.LLMAPIBase, "/")
	return &Client{
		base:      base,
		key:       strings.TrimSpace(cfg.LLMAPIKey),
		model:     cfg.LLMModel,
		maxTokens: cfg.LLMMaxTokens,
		anthropic: strings.Contains(base, "anthropic.com"),
		http:      &http.Client{Timeout: cfg.LLMTimeout},
	}
}

// Summarize sends the context blob to the model and returns the parsed
// summary.
func (c *Client) Summarize(ctx context.Context, contextBlob string) (*Summary, error) {
	if c.anthropic {
		return c.callAnthropic(ctx, contextBlob)
	}
	return c.callOpenAI(ctx, contextBlob)
}

func (c *Client) callOpenAI(ctx context.Context, contextBlob string) (*Summary, error) {
	payload := map[string]any{
		"model": c.model,
		"messages": []map[string]string{
			{"role": "system", "content": systemPrompt},
			{"role": "user", "content": userPromptPrefix + contextBlob + userPromptSuffix},
		},
		"max_tokens":  c.maxTokens,
		"temperature": 0.2,
	}

	headers := map[string]string{}
	if c.key != "" {
		headers["Authorization"] = "Bearer " + c.key
	}

	body, err := c.post(ctx, c.base+"/chat/completions", payload, headers)
	if err != nil {
		return nil, err
	}

	var resp struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(body, &resp); err != nil || len(resp.Choices) == 0 {
		return nil, errors.NewLLM("LLM returned an unexpected response shape")
	}
	return parseSummary(resp.Choices[0].Message.Content)
}

func (c *Client) callAnthropic(ctx context.Context, contextBlob string) (*Summary, error) {
	payload := map[string]any{
		"model":       c.model,
		"max_tokens":  c.maxTokens,
		"temperature": 0.2,
		"system":      systemPrompt,
		"messages": []map[string]string{
			{"role": "user", "content": userPromptPrefix + contextBlob + userPromptSuffix},
		},
	}

	headers := map[string]string{
		"x-api-key":         c.key,
		"anthropic-version": "2023-06-01",
	}

	body, err := c.post(ctx, c.base+"/v1/messages", payload, headers)
	if err != nil {
		return nil, err
	}

	var resp struct {
		Content []struct {
			Text string `json:"text"`
		} `json:"content"`
	}
	if err := json.Unmarshal(body, &resp); err != nil || len(resp.Content) == 0 {
		return nil, errors.NewLLM("LLM returned an unexpected response shape")
	}
	return parseSummary(resp.Content[0].Text)
}

func (c *Client) post(ctx context.Context, u string, payload map[string]any, headers map[string]string) ([]byte, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, errors.NewInternal(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(raw))
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, errors.NewLLM(fmt.Sprintf("LLM API unreachable: %v", err))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.NewLLM(fmt.Sprintf("reading LLM response: %v", err))
	}
	if resp.StatusCode != http.StatusOK {
		return nil, errors.NewLLM(fmt.Sprintf("LLM API returned %d: %s", resp.StatusCode, snippet(body)))
	}
	return body, nil
}

// parseSummary decodes the model's reply, tolerating markdown code fences
// around the JSON object.
func parseSummary(raw string) (*Summary, error) {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		if i := strings.IndexByte(raw, '\n'); i >= 0 {
			raw = raw[i+1:]
		} else {
			raw = raw[3:]
		}
		raw = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(raw), "```"))
	}

	var s Summary
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		return nil, errors.NewLLM(fmt.Sprintf("LLM returned invalid JSON: %v", err))
	}
	return &s, nil
}

func snippet(b []byte) string {
	const max = 500
	if len(b) > max {
		b = b[:max]
	}
	return string(b)
}
