package summarize

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tamiro44/repo-summarizer/internal/cache"
	"github.com/tamiro44/repo-summarizer/internal/config"
	"github.com/tamiro44/repo-summarizer/internal/errors"
	"github.com/tamiro44/repo-summarizer/internal/llm"
	"github.com/tamiro44/repo-summarizer/internal/rank"
)

// fakeGitHub serves a canned tree and contents.
type fakeGitHub struct {
	mu        sync.Mutex
	entries   []rank.FileEntry
	files     map[string]string
	listErr   error
	listCalls int
}

func (f *fakeGitHub) ListFiles(_ context.Context, _, _, _ string) ([]rank.FileEntry, error) {
	f.mu.Lock()
	f.listCalls++
	f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.entries, nil
}

func (f *fakeGitHub) FetchRaw(_ context.Context, _, _, _, path string) (string, error) {
	c, ok := f.files[path]
	if !ok {
		return "", fmt.Errorf("no content for %s", path)
	}
	return c, nil
}

// fakeModel returns a fixed summary and records its inputs.
type fakeModel struct {
	mu    sync.Mutex
	calls int
	blobs []string
	err   error
}

func (f *fakeModel) Summarize(_ context.Context, blob string) (*llm.Summary, error) {
	f.mu.Lock()
	f.calls++
	f.blobs = append(f.blobs, blob)
	f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return &llm.Summary{
		Summary:      "A small demo project.",
		Technologies: []string{"Python"},
		Structure:    "Flat layout.",
	}, nil
}

func testService(gh *fakeGitHub, model *fakeModel) *Service {
	cfg := config.Default()
	return NewService(gh, model, cfg, cache.New[*Result](cfg.CacheMaxSize))
}

func TestService_HappyPathAndCacheHit(t *testing.T) {
	gh := &fakeGitHub{
		entries: []rank.FileEntry{
			{Path: "README.md", Size: 20},
			{Path: "main.py", Size: 30},
		},
		files: map[string]string{
			"README.md": strings.Repeat("r", 20),
			"main.py":   strings.Repeat("m", 30),
		},
	}
	model := &fakeModel{}
	svc := testService(gh, model)

	result, err := svc.Summarize(context.Background(), "owner", "repo", "")
	require.NoError(t, err)
	require.Equal(t, "A small demo project.", result.Summary)
	require.Equal(t, []string{"Python"}, result.Technologies)
	require.Equal(t, 2, result.ContextFiles)
	require.Equal(t, 50, result.ContextBytes)

	// The model saw both files, README first.
	require.Len(t, model.blobs, 1)
	require.Contains(t, model.blobs[0], "### README.md")
	require.Contains(t, model.blobs[0], "### main.py")
	require.Less(t, strings.Index(model.blobs[0], "README.md"), strings.Index(model.blobs[0], "main.py"))

	// Second call is served from the cache: no new upstream work.
	again, err := svc.Summarize(context.Background(), "owner", "repo", "")
	require.NoError(t, err)
	require.Same(t, result, again)
	require.Equal(t, 1, gh.listCalls)
	require.Equal(t, 1, model.calls)
}

func TestService_ListingFailurePropagates(t *testing.T) {
	gh := &fakeGitHub{listErr: errors.NewNotFound("owner", "gone")}
	svc := testService(gh, &fakeModel{})

	_, err := svc.Summarize(context.Background(), "owner", "gone", "")
	require.Error(t, err)
	require.True(t, errors.Is(err, errors.ErrNotFound))
}

func TestService_EmptyRepoIsDistinctFromListingFailure(t *testing.T) {
	// The tree lists fine but nothing survives filtering, so zero files
	// are retrieved.
	gh := &fakeGitHub{
		entries: []rank.FileEntry{
			{Path: "node_modules/a/index.js", Size: 10},
			{Path: "logo.png", Size: 10},
		},
		files: map[string]string{},
	}
	model := &fakeModel{}
	svc := testService(gh, model)

	_, err := svc.Summarize(context.Background(), "owner", "empty", "")
	require.Error(t, err)
	require.True(t, errors.Is(err, errors.ErrEmptyRepo))
	require.Zero(t, model.calls)
}

func TestService_AllFetchesFailingIsEmptyRepo(t *testing.T) {
	gh := &fakeGitHub{
		entries: []rank.FileEntry{{Path: "README.md", Size: 10}},
		files:   map[string]string{}, // every content fetch fails
	}
	svc := testService(gh, &fakeModel{})

	_, err := svc.Summarize(context.Background(), "owner", "repo", "")
	require.True(t, errors.Is(err, errors.ErrEmptyRepo))
}

func TestService_ModelErrorPropagatesAndIsNotCached(t *testing.T) {
	gh := &fakeGitHub{
		entries: []rank.FileEntry{{Path: "README.md", Size: 10}},
		files:   map[string]string{"README.md": "hello"},
	}
	model := &fakeModel{err: errors.NewLLM("model unavailable")}
	svc := testService(gh, model)

	_, err := svc.Summarize(context.Background(), "owner", "repo", "")
	require.True(t, errors.Is(err, errors.ErrLLM))

	// A failed run must not poison the cache; the next call retries.
	model.err = nil
	result, err := svc.Summarize(context.Background(), "owner", "repo", "")
	require.NoError(t, err)
	require.NotNil(t, result)
	require.Equal(t, 2, gh.listCalls)
}

func TestService_RefIsPartOfCacheKey(t *testing.T) {
	gh := &fakeGitHub{
		entries: []rank.FileEntry{{Path: "README.md", Size: 10}},
		files:   map[string]string{"README.md": "hello"},
	}
	model := &fakeModel{}
	svc := testService(gh, model)

	_, err := svc.Summarize(context.Background(), "owner", "repo", "main")
	require.NoError(t, err)
	_, err = svc.Summarize(context.Background(), "owner", "repo", "dev")
	require.NoError(t, err)

	require.Equal(t, 2, gh.listCalls)
	require.Equal(t, 2, model.calls)
}
