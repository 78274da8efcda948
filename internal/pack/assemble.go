package pack

import (
	"fmt"
	"strings"
)

// truncationMark is appended inside a section whose content was cut.
const truncationMark = "\n... [truncated]"

// Assemble concatenates fetched files into a single blob, first fit in
// order, under the remaining content budget. The per-file cap is
// re-checked even though fetch already enforced it. At most one file
// straddles the budget boundary: it is cut to exactly the remaining
// allowance, marked truncated, and assembly stops there — later files are
// never considered, even if they would fit.
//
// Only content length counts against the budget; section headers ride on
// the prompt buffer.
func Assemble(files []FetchedFile, budget *Budget) AssembledContext {
	var blob strings.Builder
	var included []FetchedFile

	for _, f := range files {
		remaining := budget.Remaining()
		if remaining <= 0 {
			break
		}

		content := f.Content
		truncated := f.Truncated
		if len(content) > budget.PerFileMax {
			content = content[:budget.PerFileMax]
			truncated = true
		}

		if len(content) > remaining {
			content = content[:remaining]
			budget.Used = budget.ContentBudget()
			writeSection(&blob, f.Path, content, true)
			included = append(included, FetchedFile{
				Path:      f.Path,
				Content:   content,
				Truncated: true,
				BytesUsed: len(content),
			})
			break
		}

		budget.Used += len(content)
		writeSection(&blob, f.Path, content, truncated)
		included = append(included, FetchedFile{
			Path:      f.Path,
			Content:   content,
			Truncated: truncated,
			BytesUsed: len(content),
		})
	}

	return AssembledContext{
		Blob:           blob.String(),
		IncludedFiles:  included,
		TotalBytesUsed: budget.Used,
	}
}

// writeSection appends one file as a path-labeled fenced block.
func writeSection(b *strings.Builder, path, content string, truncated bool) {
	fmt.Fprintf(b, "### %s\n```\n%s", path, content)
	if truncated {
		b.WriteString(truncationMark)
	}
	b.WriteString("\n```\n\n")
}
