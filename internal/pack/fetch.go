package pack

import (
	"context"
	"log"
	"sync"

	"github.com/tamiro44/repo-summarizer/internal/rank"
)

// batchSize is the fixed retrieval concurrency. Batches run sequentially
// relative to each other; the join between batches is where the
// early-stop check happens.
const batchSize = 10

// Fetch retrieves candidate contents in priority order, batchSize at a
// time. All retrievals within a batch run concurrently and the batch
// always completes before the next is dispatched. Once the capped running
// total of fetched content reaches the content budget, no further batches
// are dispatched and the remaining candidates are simply omitted.
//
// Individual retrieval failures are logged and dropped; they never abort
// the batch or the request. The returned sequence preserves candidate
// order regardless of which fetch finished first.
func Fetch(ctx context.Context, fetcher ContentFetcher, candidates []rank.Candidate, budget *Budget) ([]FetchedFile, error) {
	var fetched []FetchedFile
	running := 0

	for start := 0; start < len(candidates); start += batchSize {
		if running >= budget.ContentBudget() {
			break
		}

		end := min(start+batchSize, len(candidates))
		batch := candidates[start:end]

		// Results are index-addressed so completion order within the
		// batch cannot reorder the output.
		results := make([]*FetchedFile, len(batch))
		var wg sync.WaitGroup
		for i, c := range batch {
			wg.Add(1)
			go func(i int, path string) {
				defer wg.Done()
				content, err := fetcher.FetchContent(ctx, path)
				if err != nil {
					log.Printf("fetch %s: %v", path, err)
					return
				}
				results[i] = capFile(path, content, budget.PerFileMax)
			}(i, c.Path)
		}
		wg.Wait()

		if err := ctx.Err(); err != nil {
			return nil, err
		}

		for _, r := range results {
			if r == nil {
				continue
			}
			fetched = append(fetched, *r)
			running += r.BytesUsed
		}
	}

	return fetched, nil
}

// capFile bounds content at the per-file limit and records the usage.
func capFile(path, content string, perFileMax int) *FetchedFile {
	truncated := false
	if len(content) > perFileMax {
		content = content[:perFileMax]
		truncated = true
	}
	return &FetchedFile{
		Path:      path,
		Content:   content,
		Truncated: truncated,
		BytesUsed: len(content),
	}
}
