package summarize

import (
	"regexp"
	"strings"

	"github.com/tamiro44/repo-summarizer/internal/errors"
)

// Request is the public input for a summarization.
type Request struct {
	GitHubURL string `json:"github_url"`
	Ref       string `json:"ref,omitempty"`
}

var repoURLPattern = regexp.MustCompile(`^https?://github\.com/[\w\-.]+/[\w\-.]+/?$`)

// ParseRepoURL validates a GitHub repository URL and extracts owner and
// repo.
func ParseRepoURL(rawURL string) (owner, repo string, err error) {
	trimmed := strings.TrimRight(strings.TrimSpace(rawURL), "/")
	if !repoURLPattern.MatchString(trimmed) {
		return "", "", errors.NewInvalidRequest(
			"invalid GitHub URL; expected format: https://github.com/owner/repo")
	}
	parts := strings.Split(trimmed, "/")
	return parts[len(parts)-2], parts[len(parts)-1], nil
}

// CacheKey derives the normalized cache key for a repository at a ref.
func CacheKey(owner, repo, ref string) string {
	if ref == "" {
		ref = "HEAD"
	}
	return strings.ToLower(owner + "/" + repo + "@" + ref)
}
