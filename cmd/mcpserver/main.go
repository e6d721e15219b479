// Command mcpserver exposes the sample tools over the Model Context
// Protocol on stdin/stdout, so they can be used from MCP clients such as
// Claude Desktop.
//
// The weather tool is always available. Web search is enabled when
// BRAVE_API_KEY is set.
package main

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/im-vedant/llm4s/mcp"
	"github.com/im-vedant/llm4s/tool"
	"github.com/im-vedant/llm4s/tools/search"
	"github.com/im-vedant/llm4s/tools/weather"
)

func main() {
	godotenv.Load()

	// Stdout carries the MCP protocol; diagnostics go to stderr.
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	fns := []*tool.Function{weather.MustNew()}
	if key := os.Getenv("BRAVE_API_KEY"); key != "" {
		fns = append(fns, search.MustNew(key))
	}

	registry, err := tool.NewRegistry(fns...)
	if err != nil {
		logger.Error("building registry", "error", err)
		os.Exit(1)
	}

	logger.Info("serving MCP over stdio", "tools", registry.Names())
	if err := mcp.ServeStdio(registry); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
