package web

import (
	"bytes"
	"html/template"
	"io/fs"
	"log"
	"net/http"
	"strconv"

	"github.com/yuin/goldmark"

	"github.com/tamiro44/repo-summarizer/internal/errors"
	"github.com/tamiro44/repo-summarizer/internal/summarize"
)

// Renderer holds parsed templates for the HTML view.
type Renderer struct {
	tmpl    *template.Template
	version string
}

// ViewPageData is the template data for the summary view page.
type ViewPageData struct {
	Title        string
	Version      string
	Owner        string
	Repo         string
	SummaryHTML  template.HTML
	Technologies []string
	Structure    string
	ContextFiles int
	ContextBytes int
}

// NewRenderer parses templates from the given FS.
func NewRenderer(templates fs.FS, version string) *Renderer {
	funcs := template.FuncMap{
		"markdown": renderMarkdown,
		"commas":   formatBytes,
	}
	tmpl, err := template.New("").Funcs(funcs).ParseFS(templates, "*.html")
	if err != nil {
		log.Fatalf("failed to parse templates: %v", err)
	}
	return &Renderer{tmpl: tmpl, version: version}
}

func (r *Renderer) renderView(w http.ResponseWriter, owner, repo string, result *summarize.Result) {
	data := ViewPageData{
		Title:        owner + "/" + repo,
		Version:      r.version,
		Owner:        owner,
		Repo:         repo,
		SummaryHTML:  renderMarkdown(result.Summary),
		Technologies: result.Technologies,
		Structure:    result.Structure,
		ContextFiles: result.ContextFiles,
		ContextBytes: result.ContextBytes,
	}

	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, "view.html", data); err != nil {
		log.Printf("render view: %v", err)
		http.Error(w, "template error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(buf.Bytes())
}

func (r *Renderer) renderError(w http.ResponseWriter, err error) {
	msg := "an internal error occurred"
	if e, ok := err.(*errors.Error); ok {
		msg = e.Message
	}
	http.Error(w, msg, errors.StatusOf(err))
}

// renderMarkdown converts markdown text to HTML using goldmark.
func renderMarkdown(md string) template.HTML {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(md), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(md))
	}
	return template.HTML(buf.String())
}

// formatBytes formats a count with comma thousands separators.
func formatBytes(n int) string {
	if n < 0 {
		return "-" + formatBytes(-n)
	}
	s := strconv.Itoa(n)
	for i := len(s) - 3; i > 0; i -= 3 {
		s = s[:i] + "," + s[i:]
	}
	return s
}
