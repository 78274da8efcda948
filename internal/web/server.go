package web

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/tamiro44/repo-summarizer/internal/summarize"
)

//go:embed templates/*.html
var templateFS embed.FS

// SummarizeService is the slice of the summarize service the web surface
// depends on.
type SummarizeService interface {
	Summarize(ctx context.Context, owner, repo, ref string) (*summarize.Result, error)
}

// NewServer creates and configures the HTTP server.
func NewServer(svc SummarizeService, version, bind string, port int) *http.Server {
	templateSub, err := fs.Sub(templateFS, "templates")
	if err != nil {
		log.Fatalf("failed to create template sub-FS: %v", err)
	}

	h := &Handlers{
		svc:      svc,
		renderer: NewRenderer(templateSub, version),
	}

	mux := http.NewServeMux()

	// Routes using Go 1.22+ pattern syntax
	mux.HandleFunc("POST /summarize", h.HandleSummarize)
	mux.HandleFunc("GET /health", h.HandleHealth)
	mux.HandleFunc("GET /view/{owner}/{repo}", h.HandleView)

	handler := securityHeaders(timing(mux))

	return &http.Server{
		Addr:    fmt.Sprintf("%s:%d", bind, port),
		Handler: handler,
	}
}

// timing stamps X-Process-Time on each response and logs the request.
// The header is set lazily on the first write, when the elapsed time is
// known.
func timing(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t0 := time.Now()
		tw := &timedWriter{ResponseWriter: w, start: t0, status: http.StatusOK}
		next.ServeHTTP(tw, r)
		log.Printf("%s %s — %.3fs (%d)", r.Method, r.URL.Path, time.Since(t0).Seconds(), tw.status)
	})
}

type timedWriter struct {
	http.ResponseWriter
	start       time.Time
	status      int
	wroteHeader bool
}

func (w *timedWriter) WriteHeader(status int) {
	if !w.wroteHeader {
		w.Header().Set("X-Process-Time", fmt.Sprintf("%.3f", time.Since(w.start).Seconds()))
		w.wroteHeader = true
		w.status = status
	}
	w.ResponseWriter.WriteHeader(status)
}

func (w *timedWriter) Write(b []byte) (int, error) {
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}
	return w.ResponseWriter.Write(b)
}

// securityHeaders adds security-related HTTP headers to all responses.
func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Security-Policy", "default-src 'self'; script-src 'self'; style-src 'self'")
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		next.ServeHTTP(w, r)
	})
}

// Run starts the HTTP server and handles graceful shutdown on
// SIGINT/SIGTERM.
func Run(srv *http.Server) error {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	log.Printf("repo-summarizer listening at http://%s", srv.Addr)

	if strings.Contains(srv.Addr, "0.0.0.0") || strings.Contains(srv.Addr, "::") {
		log.Printf("WARNING: Server is binding to all interfaces and may be accessible from the network")
	}

	select {
	case err := <-errCh:
		return err
	case <-sigCh:
		log.Println("Shutting down...")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(ctx)
	}
}
