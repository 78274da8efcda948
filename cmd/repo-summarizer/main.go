package main

import (
	"fmt"
	"os"

	"github.com/tamiro44/repo-summarizer/internal/cache"
	"github.com/tamiro44/repo-summarizer/internal/config"
	"github.com/tamiro44/repo-summarizer/internal/github"
	"github.com/tamiro44/repo-summarizer/internal/llm"
	"github.com/tamiro44/repo-summarizer/internal/summarize"
)

// Version is set via -ldflags at build time.
var Version = "dev"

func main() {
	cfg, err := config.FromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: invalid configuration: %v\n", err)
		os.Exit(1)
	}

	// The result cache lives for the whole process and is shared by every
	// surface.
	resultCache := cache.New[*summarize.Result](cfg.CacheMaxSize)
	svc := summarize.NewService(github.NewClient(cfg), llm.NewClient(cfg), cfg, resultCache)

	app := newCLIApp(svc)
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
