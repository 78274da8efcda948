// Package pack retrieves prioritized file contents and assembles them
// into a single context blob under a strict character budget.
package pack

import "context"

// ContentFetcher retrieves one file's raw content. Errors are per-file
// and never abort a batch.
type ContentFetcher interface {
	FetchContent(ctx context.Context, path string) (string, error)
}

// FetchedFile holds one candidate's retrieved content, capped at the
// per-file limit at fetch time.
type FetchedFile struct {
	Path      string
	Content   string
	Truncated bool
	BytesUsed int
}

// Budget tracks the character allowance during fetch and assembly.
// Used only ever grows, and never past Total - PromptBuffer.
type Budget struct {
	Total        int
	PromptBuffer int
	PerFileMax   int
	Used         int
}

// ContentBudget is the allowance left for file content after reserving
// the prompt buffer.
func (b *Budget) ContentBudget() int {
	return b.Total - b.PromptBuffer
}

// Remaining is the unconsumed portion of the content budget.
func (b *Budget) Remaining() int {
	return b.ContentBudget() - b.Used
}

// AssembledContext is the pipeline's final output: the blob plus
// inclusion accounting for diagnostics.
type AssembledContext struct {
	Blob           string
	IncludedFiles  []FetchedFile
	TotalBytesUsed int
}
