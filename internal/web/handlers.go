package web

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/tamiro44/repo-summarizer/internal/errors"
	"github.com/tamiro44/repo-summarizer/internal/summarize"
)

// Handlers contains HTTP route handlers.
type Handlers struct {
	svc      SummarizeService
	renderer *Renderer
}

// HandleSummarize handles POST /summarize.
func (h *Handlers) HandleSummarize(w http.ResponseWriter, r *http.Request) {
	var req summarize.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.NewInvalidRequest("request body must be JSON with a github_url field"))
		return
	}

	owner, repo, err := summarize.ParseRepoURL(req.GitHubURL)
	if err != nil {
		writeError(w, err)
		return
	}

	result, err := h.svc.Summarize(r.Context(), owner, repo, req.Ref)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// HandleHealth handles GET /health.
func (h *Handlers) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// HandleView handles GET /view/{owner}/{repo} — an HTML rendering of the
// summary, served from the cache when warm.
func (h *Handlers) HandleView(w http.ResponseWriter, r *http.Request) {
	owner := r.PathValue("owner")
	repo := r.PathValue("repo")
	ref := r.URL.Query().Get("ref")

	result, err := h.svc.Summarize(r.Context(), owner, repo, ref)
	if err != nil {
		h.renderer.renderError(w, err)
		return
	}

	h.renderer.renderView(w, owner, repo, result)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("write response: %v", err)
	}
}

func writeError(w http.ResponseWriter, err error) {
	payload := map[string]any{
		"error": map[string]any{
			"code":    "INTERNAL",
			"message": "an internal error occurred",
		},
	}
	if e, ok := err.(*errors.Error); ok {
		obj := map[string]any{
			"code":    e.Code,
			"message": e.Message,
		}
		if e.Code != errors.ErrInternal && e.Details != nil {
			obj["details"] = e.Details
		}
		payload["error"] = obj
	}
	writeJSON(w, errors.StatusOf(err), payload)
}
