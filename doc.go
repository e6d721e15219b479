// Package llm4s provides structured tool calling for language models and an
// autonomous agent loop that drives tools to completion.
//
// The root package defines the conversation data model shared by every
// component: messages, tool calls, tool results, completions, and the
// [ModelClient] interface that provider adapters implement. Anthropic
// (Claude), OpenAI (GPT), and Google (Gemini) adapters live under
// provider/, and the [github.com/im-vedant/llm4s/client] package selects
// and configures one from the environment.
//
// # Basic Usage
//
// Send a conversation and read the reply:
//
//	mc, err := client.New(ctx, client.Config{
//	    Provider: llm4s.ProviderAnthropic,
//	    APIKey:   os.Getenv("ANTHROPIC_API_KEY"),
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	conv := llm4s.NewConversation(
//	    llm4s.NewUserMessage("What is the capital of France?"),
//	)
//
//	completion, err := mc.Complete(ctx, conv)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(completion.Content)
//
// # Configuration Options
//
// Customize requests with functional options:
//
//	completion, err := mc.Complete(ctx, conv,
//	    llm4s.WithModel("claude-sonnet-4-5"),
//	    llm4s.WithMaxTokens(1000),
//	    llm4s.WithTemperature(0.7),
//	)
//
// # Tool Calling
//
// Declare parameter schemas with the schema package, wrap handlers into
// functions with the tool package, and advertise them on a request:
//
//	weatherSchema := schema.Object("Weather lookup parameters").
//	    Property("city", schema.String("City name")).
//	    MustBuild()
//
//	getWeather := tool.NewBuilder().
//	    Name("get_weather").
//	    Description("Get current weather for a city").
//	    Schema(weatherSchema).
//	    Handler(func(ctx context.Context, args *tool.Extractor) (string, error) {
//	        city, err := args.String("city")
//	        if err != nil {
//	            return "", err
//	        }
//	        return lookupWeather(ctx, city)
//	    }).
//	    MustBuild()
//
//	registry := tool.MustNewRegistry(getWeather)
//
//	completion, err := mc.Complete(ctx, conv, llm4s.WithTools(registry.Tools()))
//	for _, call := range completion.ToolCalls {
//	    result, _ := registry.Dispatch(ctx, call)
//	    conv.Append(llm4s.NewToolResultMessage(result))
//	}
//
// # The Agent Loop
//
// The [github.com/im-vedant/llm4s/agent] package runs the full loop
// autonomously: it calls the model, executes every tool call it requests,
// feeds the results back, and repeats until the model answers in plain text
// or the turn budget runs out:
//
//	a := agent.New(mc, registry)
//	state, err := a.Run(ctx, "What's the weather in Paris right now?")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(state.FinalAnswer())
//
// # Higher-Level Abstractions
//
// For supporting pieces, see:
//
//   - [github.com/im-vedant/llm4s/schema]: declarative parameter schemas
//   - [github.com/im-vedant/llm4s/tool]: tool functions, registry, argument extraction
//   - [github.com/im-vedant/llm4s/agent]: the autonomous orchestration loop
//   - [github.com/im-vedant/llm4s/retry]: retry logic with exponential backoff
//   - [github.com/im-vedant/llm4s/mcp]: serving a registry over the Model Context Protocol
package llm4s
