// Package summarize orchestrates the full pipeline: cache lookup, tree
// listing, exclusion/scoring/ordering, batched content retrieval, context
// assembly, and the downstream LLM call.
package summarize

import (
	"context"
	"crypto/rand"
	"log"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/tamiro44/repo-summarizer/internal/cache"
	"github.com/tamiro44/repo-summarizer/internal/config"
	"github.com/tamiro44/repo-summarizer/internal/errors"
	"github.com/tamiro44/repo-summarizer/internal/llm"
	"github.com/tamiro44/repo-summarizer/internal/pack"
	"github.com/tamiro44/repo-summarizer/internal/rank"
)

// TreeSource is the slice of the GitHub client the service depends on.
type TreeSource interface {
	ListFiles(ctx context.Context, owner, repo, ref string) ([]rank.FileEntry, error)
	FetchRaw(ctx context.Context, owner, repo, ref, path string) (string, error)
}

// TextModel produces the structured summary from an assembled context
// blob.
type TextModel interface {
	Summarize(ctx context.Context, contextBlob string) (*llm.Summary, error)
}

// Result is the service's output: the summary plus context accounting.
type Result struct {
	Summary      string   `json:"summary"`
	Technologies []string `json:"technologies"`
	Structure    string   `json:"structure"`
	ContextFiles int      `json:"context_files"`
	ContextBytes int      `json:"context_bytes"`
}

// Service runs the summarization pipeline. The cache is shared across
// requests; everything else is request-scoped.
type Service struct {
	gh    TreeSource
	model TextModel
	cfg   *config.Settings
	cache *cache.Cache[*Result]
}

// NewService wires the pipeline. The cache instance is constructed once
// per process and passed in by the caller.
func NewService(gh TreeSource, model TextModel, cfg *config.Settings, c *cache.Cache[*Result]) *Service {
	return &Service{gh: gh, model: model, cfg: cfg, cache: c}
}

// Summarize runs the full pipeline for one repository, returning a cached
// result when available. Concurrent requests for the same uncached key
// may both compute; last write wins.
func (s *Service) Summarize(ctx context.Context, owner, repo, ref string) (*Result, error) {
	key := CacheKey(owner, repo, ref)
	if cached, ok := s.cache.Get(key); ok {
		log.Printf("[%s] cache hit", key)
		return cached, nil
	}

	reqID := ulid.MustNew(ulid.Timestamp(time.Now()), rand.Reader).String()
	t0 := time.Now()

	entries, err := s.gh.ListFiles(ctx, owner, repo, refOrHead(ref))
	if err != nil {
		return nil, err
	}
	candidates := rank.Order(entries, s.cfg.MaxFileBytes)
	log.Printf("[%s %s] tree listed: %d candidates of %d entries (%.1fs)",
		key, reqID, len(candidates), len(entries), time.Since(t0).Seconds())

	budget := &pack.Budget{
		Total:        s.cfg.MaxContextChars,
		PromptBuffer: s.cfg.PromptBufferChars,
		PerFileMax:   s.cfg.PerFileMaxChars,
	}

	fetched, err := pack.Fetch(ctx, &repoContents{s.gh, owner, repo, refOrHead(ref)}, candidates, budget)
	if err != nil {
		return nil, err
	}
	if len(fetched) == 0 {
		return nil, errors.NewEmptyRepo(owner + "/" + repo)
	}
	log.Printf("[%s %s] fetched %d files (%.1fs)", key, reqID, len(fetched), time.Since(t0).Seconds())

	assembled := pack.Assemble(fetched, budget)
	log.Printf("[%s %s] context assembled: %d files, %d chars (%.1fs)",
		key, reqID, len(assembled.IncludedFiles), assembled.TotalBytesUsed, time.Since(t0).Seconds())

	summary, err := s.model.Summarize(ctx, assembled.Blob)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Summary:      summary.Summary,
		Technologies: summary.Technologies,
		Structure:    summary.Structure,
		ContextFiles: len(assembled.IncludedFiles),
		ContextBytes: assembled.TotalBytesUsed,
	}
	s.cache.Put(key, result)
	log.Printf("[%s %s] done in %.2fs", key, reqID, time.Since(t0).Seconds())
	return result, nil
}

// repoContents binds a repository to the pipeline's per-path fetch
// interface.
type repoContents struct {
	gh    TreeSource
	owner string
	repo  string
	ref   string
}

func (r *repoContents) FetchContent(ctx context.Context, path string) (string, error) {
	return r.gh.FetchRaw(ctx, r.owner, r.repo, r.ref, path)
}

func refOrHead(ref string) string {
	if ref == "" {
		return "HEAD"
	}
	return ref
}
