package main

import (
	"encoding/json"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/tamiro44/repo-summarizer/internal/errors"
	"github.com/tamiro44/repo-summarizer/internal/mcp"
	"github.com/tamiro44/repo-summarizer/internal/summarize"
	"github.com/tamiro44/repo-summarizer/internal/web"
)

// newCLIApp creates the CLI application with all commands.
func newCLIApp(svc *summarize.Service) *cli.App {
	return &cli.App{
		Name:    "repo-summarizer",
		Usage:   "Summarize GitHub repositories using an LLM",
		Version: Version,
		Commands: []*cli.Command{
			serveCmd(svc),
			mcpCmd(svc),
			summarizeCmd(svc),
		},
	}
}

// serveCmd runs the HTTP server.
func serveCmd(svc *summarize.Service) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the HTTP API server",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "bind", Value: "127.0.0.1", Usage: "Address to bind to", EnvVars: []string{"BIND"}},
			&cli.IntFlag{Name: "port", Aliases: []string{"p"}, Value: 8000, Usage: "Port to listen on", EnvVars: []string{"PORT"}},
		},
		Action: func(c *cli.Context) error {
			srv := web.NewServer(svc, Version, c.String("bind"), c.Int("port"))
			return web.Run(srv)
		},
	}
}

// mcpCmd runs the MCP stdio server.
func mcpCmd(svc *summarize.Service) *cli.Command {
	return &cli.Command{
		Name:  "mcp",
		Usage: "Run the MCP server over stdio",
		Action: func(_ *cli.Context) error {
			return mcp.Run(svc, Version)
		},
	}
}

// summarizeCmd runs one summarization and prints JSON to stdout.
func summarizeCmd(svc *summarize.Service) *cli.Command {
	return &cli.Command{
		Name:      "summarize",
		Usage:     "Summarize one repository and print the result as JSON",
		ArgsUsage: "<github-url>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "ref", Usage: "Branch, tag, or commit (default HEAD)"},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return errors.NewInvalidRequest("expected exactly one GitHub repository URL")
			}

			owner, repo, err := summarize.ParseRepoURL(c.Args().First())
			if err != nil {
				return err
			}

			result, err := svc.Summarize(c.Context, owner, repo, c.String("ref"))
			if err != nil {
				return err
			}

			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(result)
		},
	}
}
