package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Settings holds application configuration, resolved from environment
// variables with documented defaults. Every component receives the values
// it needs as explicit parameters; nothing reads the environment after
// startup.
type Settings struct {
	// GitHub tree/content provider
	GitHubAPIBase string        // GITHUB_API_BASE
	GitHubToken   string        // GITHUB_TOKEN (optional; raises rate limits)
	GitHubTimeout time.Duration // GITHUB_TIMEOUT, seconds

	// LLM provider
	LLMAPIBase   string        // LLM_API_BASE
	LLMAPIKey    string        // LLM_API_KEY
	LLMModel     string        // LLM_MODEL
	LLMTimeout   time.Duration // LLM_TIMEOUT, seconds
	LLMMaxTokens int           // LLM_MAX_TOKENS

	// Context budget (characters, not tokens — conservative 1:4 ratio)
	MaxContextChars   int // MAX_CONTEXT_CHARS
	PromptBufferChars int // PROMPT_BUFFER_CHARS
	PerFileMaxChars   int // PER_FILE_MAX_CHARS

	// MaxFileBytes is the exclusion threshold: tree entries larger than
	// this are skipped outright as likely generated or binary blobs.
	MaxFileBytes int // MAX_FILE_BYTES

	// CacheMaxSize is the result cache capacity in entries.
	CacheMaxSize int // CACHE_MAX_SIZE
}

// Default returns the default configuration.
func Default() *Settings {
	return &Settings{
		GitHubAPIBase:     "https://api.github.com",
		GitHubTimeout:     30 * time.Second,
		LLMAPIBase:        "https://api.openai.com/v1",
		LLMModel:          "gpt-4o-mini",
		LLMTimeout:        60 * time.Second,
		LLMMaxTokens:      4096,
		MaxContextChars:   100000,
		PromptBufferChars: 4000,
		PerFileMaxChars:   15000,
		MaxFileBytes:      512000,
		CacheMaxSize:      128,
	}
}

// FromEnv builds Settings from the environment on top of defaults and
// validates the result.
func FromEnv() (*Settings, error) {
	s := Default()

	s.GitHubAPIBase = envString("GITHUB_API_BASE", s.GitHubAPIBase)
	s.GitHubToken = envString("GITHUB_TOKEN", "")
	s.GitHubTimeout = envSeconds("GITHUB_TIMEOUT", s.GitHubTimeout)

	s.LLMAPIBase = envString("LLM_API_BASE", s.LLMAPIBase)
	s.LLMAPIKey = envString("LLM_API_KEY", "")
	s.LLMModel = envString("LLM_MODEL", s.LLMModel)
	s.LLMTimeout = envSeconds("LLM_TIMEOUT", s.LLMTimeout)
	s.LLMMaxTokens = envInt("LLM_MAX_TOKENS", s.LLMMaxTokens)

	s.MaxContextChars = envInt("MAX_CONTEXT_CHARS", s.MaxContextChars)
	s.PromptBufferChars = envInt("PROMPT_BUFFER_CHARS", s.PromptBufferChars)
	s.PerFileMaxChars = envInt("PER_FILE_MAX_CHARS", s.PerFileMaxChars)
	s.MaxFileBytes = envInt("MAX_FILE_BYTES", s.MaxFileBytes)
	s.CacheMaxSize = envInt("CACHE_MAX_SIZE", s.CacheMaxSize)

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Validate checks numeric ranges. Budgets must be non-negative, the prompt
// buffer must fit inside the total, and the per-file cap must not exceed
// the total budget.
func (s *Settings) Validate() error {
	if s.MaxContextChars < 0 {
		return fmt.Errorf("MAX_CONTEXT_CHARS must be non-negative, got %d", s.MaxContextChars)
	}
	if s.PromptBufferChars < 0 {
		return fmt.Errorf("PROMPT_BUFFER_CHARS must be non-negative, got %d", s.PromptBufferChars)
	}
	if s.PromptBufferChars > s.MaxContextChars {
		return fmt.Errorf("PROMPT_BUFFER_CHARS (%d) must not exceed MAX_CONTEXT_CHARS (%d)",
			s.PromptBufferChars, s.MaxContextChars)
	}
	if s.PerFileMaxChars < 0 {
		return fmt.Errorf("PER_FILE_MAX_CHARS must be non-negative, got %d", s.PerFileMaxChars)
	}
	if s.PerFileMaxChars > s.MaxContextChars {
		return fmt.Errorf("PER_FILE_MAX_CHARS (%d) must not exceed MAX_CONTEXT_CHARS (%d)",
			s.PerFileMaxChars, s.MaxContextChars)
	}
	if s.MaxFileBytes <= 0 {
		return fmt.Errorf("MAX_FILE_BYTES must be positive, got %d", s.MaxFileBytes)
	}
	if s.CacheMaxSize < 1 {
		return fmt.Errorf("CACHE_MAX_SIZE must be at least 1, got %d", s.CacheMaxSize)
	}
	return nil
}

// ContentBudget is the character allowance left for file content after
// reserving the prompt buffer.
func (s *Settings) ContentBudget() int {
	return s.MaxContextChars - s.PromptBufferChars
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func envSeconds(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return fallback
	}
	return time.Duration(n) * time.Second
}
