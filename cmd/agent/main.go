// Command agent runs a tool-calling agent from the terminal.
//
// Usage:
//
//	agent "what's the weather in Paris right now?"
//
// Provider selection and API keys come from the environment (or a .env
// file): LLM4S_PROVIDER picks the backend, ANTHROPIC_API_KEY / OPENAI_API_KEY
// / GOOGLE_API_KEY authenticate it, and BRAVE_API_KEY (optional) enables the
// web search tool.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/im-vedant/llm4s/agent"
	"github.com/im-vedant/llm4s/client"
	"github.com/im-vedant/llm4s/event"
	"github.com/im-vedant/llm4s/tool"
	"github.com/im-vedant/llm4s/tools/search"
	"github.com/im-vedant/llm4s/tools/translate"
	"github.com/im-vedant/llm4s/tools/weather"
)

func main() {
	godotenv.Load()

	maxTurns := flag.Int("max-turns", 10, "maximum model calls before the run stops")
	verbose := flag.Bool("v", false, "log tool calls and turn boundaries")
	flag.Parse()

	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "usage: agent [flags] <query>")
		flag.PrintDefaults()
		os.Exit(2)
	}
	query := strings.Join(flag.Args(), " ")

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel(*verbose),
	}))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, logger, query, *maxTurns); err != nil {
		logger.Error("run failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, logger *slog.Logger, query string, maxTurns int) error {
	cfg, err := client.FromEnv()
	if err != nil {
		return err
	}
	logger.Info("starting", "provider", cfg.Provider, "model", cfg.Model)

	mc, err := client.New(ctx, cfg)
	if err != nil {
		return err
	}

	fns := []*tool.Function{weather.MustNew(), translate.MustNew(mc)}
	if key := os.Getenv("BRAVE_API_KEY"); key != "" {
		fns = append(fns, search.MustNew(key))
	} else {
		logger.Debug("BRAVE_API_KEY not set, search tool disabled")
	}

	registry, err := tool.NewRegistry(fns...)
	if err != nil {
		return err
	}

	events := event.NewChannel()
	done := make(chan struct{})
	go func() {
		defer close(done)
		for e := range events {
			logEvent(logger, e)
		}
	}()

	state, err := agent.New(mc, registry).Run(ctx, query,
		agent.WithMaxTurns(maxTurns),
		agent.WithEvents(events),
	)
	close(events)
	<-done
	if err != nil {
		return err
	}

	switch state.Status {
	case agent.StatusTurnLimitExceeded:
		fmt.Fprintf(os.Stderr, "stopped after %d turns without a final answer\n", state.Turns)
	default:
		fmt.Println(state.FinalAnswer())
	}

	logger.Info("finished",
		"status", state.Status,
		"turns", state.Turns,
		"input_tokens", state.Usage.InputTokens,
		"output_tokens", state.Usage.OutputTokens,
	)
	return nil
}

func logEvent(logger *slog.Logger, e event.Event) {
	switch e.Type {
	case event.TurnStart:
		logger.Debug("turn start", "turn", e.Turn)
	case event.TurnEnd:
		logger.Debug("turn end", "turn", e.Turn)
	case event.ToolCallStart:
		logger.Info("tool call", "tool", e.ToolCall.Name, "args", e.ToolCall.Arguments)
	case event.ToolCallResult:
		logger.Info("tool result", "tool", e.ToolCall.Name, "error", e.ToolResult.IsError)
	case event.RunError:
		logger.Error("run error", "error", e.Err)
	}
}

func logLevel(verbose bool) slog.Level {
	if verbose {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}
