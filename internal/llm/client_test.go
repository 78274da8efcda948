package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/tamiro44/repo-summarizer/internal/config"
	"github.com/tamiro44/repo-summarizer/internal/errors"
)

func TestParseSummary(t *testing.T) {
	want := Summary{
		Summary:      "Does things.",
		Technologies: []string{"Go"},
		Structure:    "One package.",
	}
	raw, _ := json.Marshal(want)

	tests := []struct {
		name  string
		input string
	}{
		{"plain json", string(raw)},
		{"fenced", "```\n" + string(raw) + "\n```"},
		{"fenced with language", "```json\n" + string(raw) + "\n```"},
		{"surrounding whitespace", "\n  " + string(raw) + "  \n"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := parseSummary(tc.input)
			if err != nil {
				t.Fatalf("parseSummary failed: %v", err)
			}
			if got.Summary != want.Summary || got.Structure != want.Structure {
				t.Errorf("got %+v, want %+v", got, want)
			}
		})
	}
}

func TestParseSummary_InvalidJSON(t *testing.T) {
	_, err := parseSummary("here is your summary: it does things")
	if !errors.Is(err, errors.ErrLLM) {
		t.Errorf("error = %v, want LLM_ERROR", err)
	}
}

func TestSummarize_OpenAI(t *testing.T) {
	var gotPath string
	var gotPayload map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		json.NewDecoder(r.Body).Decode(&gotPayload)

		reply, _ := json.Marshal(Summary{Summary: "ok", Technologies: []string{"Go"}, Structure: "flat"})
		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"content": string(reply)}},
			},
		})
	}))
	defer srv.Close()

	cfg := config.Default()
	cfg.LLMAPIBase = srv.URL
	cfg.LLMAPIKey = "key"
	c := NewClient(cfg)

	got, err := c.Summarize(context.Background(), "### README.md\nhello")
	if err != nil {
		t.Fatalf("Summarize failed: %v", err)
	}

	if got.Summary != "ok" {
		t.Errorf("Summary = %q", got.Summary)
	}
	if gotPath != "/chat/completions" {
		t.Errorf("path = %q, want /chat/completions", gotPath)
	}
	if gotPayload["model"] != "gpt-4o-mini" {
		t.Errorf("model = %v", gotPayload["model"])
	}
}

func TestSummarize_UpstreamErrorIsLLMError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "overloaded", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	cfg := config.Default()
	cfg.LLMAPIBase = srv.URL
	c := NewClient(cfg)

	_, err := c.Summarize(context.Background(), "ctx")
	if !errors.Is(err, errors.ErrLLM) {
		t.Errorf("error = %v, want LLM_ERROR", err)
	}
}

func TestNewClient_ProviderDetection(t *testing.T) {
	cfg := config.Default()
	cfg.LLMAPIBase = "https://api.anthropic.com"
	if !NewClient(cfg).anthropic {
		t.Error("anthropic.com base should select the Anthropic API")
	}

	cfg.LLMAPIBase = "https://api.openai.com/v1"
	if NewClient(cfg).anthropic {
		t.Error("openai base should not select the Anthropic API")
	}
}
