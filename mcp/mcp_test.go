package mcp

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ai "github.com/im-vedant/llm4s"
	"github.com/im-vedant/llm4s/schema"
	"github.com/im-vedant/llm4s/tool"
)

func searchTool(t *testing.T) ai.Tool {
	t.Helper()
	s := schema.Object("Search parameters").
		Property("query", schema.String("Search query")).
		OptionalProperty("count", schema.Number("Result count")).
		MustBuild()
	data, err := s.JSON()
	require.NoError(t, err)
	return ai.Tool{
		Name:        "search",
		Description: "Search the web",
		Parameters:  data,
	}
}

func TestToolConversion(t *testing.T) {
	t.Run("to MCP tool carries raw schema", func(t *testing.T) {
		def := searchTool(t)
		mcpTool := ToMCPTool(def)

		assert.Equal(t, "search", mcpTool.Name)
		assert.Equal(t, "Search the web", mcpTool.Description)
		assert.JSONEq(t, string(def.Parameters), string(mcpTool.RawInputSchema))
	})

	t.Run("from MCP tool prefers raw schema", func(t *testing.T) {
		raw := json.RawMessage(`{"type": "object", "properties": {"q": {"type": "string"}}}`)
		def := FromMCPTool(mcp.Tool{
			Name:           "lookup",
			Description:    "Look something up",
			RawInputSchema: raw,
		})

		assert.Equal(t, "lookup", def.Name)
		assert.JSONEq(t, string(raw), string(def.Parameters))
	})

	t.Run("from MCP tool marshals structured schema", func(t *testing.T) {
		def := FromMCPTool(mcp.Tool{
			Name: "lookup",
			InputSchema: mcp.ToolInputSchema{
				Type: "object",
				Properties: map[string]any{
					"q": map[string]any{"type": "string"},
				},
				Required: []string{"q"},
			},
		})

		require.NotEmpty(t, def.Parameters)
		parsed, err := schema.Parse(def.Parameters)
		require.NoError(t, err)
		p, ok := parsed.Property("q")
		require.True(t, ok)
		assert.True(t, p.Required)
	})

	t.Run("round-trips through both directions", func(t *testing.T) {
		def := searchTool(t)
		back := FromMCPTool(ToMCPTool(def))

		assert.Equal(t, def.Name, back.Name)
		assert.Equal(t, def.Description, back.Description)
		assert.JSONEq(t, string(def.Parameters), string(back.Parameters))
	})
}

func TestCallConversion(t *testing.T) {
	t.Run("call request decodes arguments", func(t *testing.T) {
		req := ToMCPCallToolRequest(ai.ToolCall{
			ID:        "call_1",
			Name:      "search",
			Arguments: `{"query": "golang", "count": 3}`,
		})

		assert.Equal(t, "search", req.Params.Name)
		args, ok := req.Params.Arguments.(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "golang", args["query"])
		assert.Equal(t, 3.0, args["count"])
	})

	t.Run("call request tolerates empty arguments", func(t *testing.T) {
		req := ToMCPCallToolRequest(ai.ToolCall{Name: "search"})
		assert.Nil(t, req.Params.Arguments)
	})

	t.Run("result concatenates text content", func(t *testing.T) {
		result := FromMCPCallToolResult("call_1", &mcp.CallToolResult{
			Content: []mcp.Content{
				mcp.TextContent{Type: "text", Text: "first"},
				mcp.TextContent{Type: "text", Text: "second"},
			},
		})

		assert.Equal(t, "call_1", result.ToolCallID)
		assert.Equal(t, "first\nsecond", result.Content)
		assert.False(t, result.IsError)
	})

	t.Run("result preserves error flag", func(t *testing.T) {
		result := FromMCPCallToolResult("call_1", &mcp.CallToolResult{
			Content: []mcp.Content{
				mcp.TextContent{Type: "text", Text: "boom"},
			},
			IsError: true,
		})

		assert.True(t, result.IsError)
		assert.Equal(t, "boom", result.Content)
	})

	t.Run("nil result is an error", func(t *testing.T) {
		result := FromMCPCallToolResult("call_1", nil)
		assert.True(t, result.IsError)
	})

	t.Run("tool result maps to text or error", func(t *testing.T) {
		ok := ToMCPCallToolResult(ai.ToolResult{ToolCallID: "call_1", Content: "done"})
		assert.False(t, ok.IsError)

		failed := ToMCPCallToolResult(ai.ToolResult{ToolCallID: "call_1", Content: "boom", IsError: true})
		assert.True(t, failed.IsError)
	})
}

func TestServer(t *testing.T) {
	echo := tool.NewBuilder().
		Name("echo").
		Description("Echo the input back").
		Schema(schema.Object("Echo parameters").
			Property("text", schema.String("Text to echo")).
			MustBuild()).
		Handler(func(ctx context.Context, args *tool.Extractor) (string, error) {
			text, err := args.String("text")
			if err != nil {
				return "", err
			}
			return text, nil
		}).
		MustBuild()

	registry := tool.MustNewRegistry(echo)

	t.Run("handler invokes the function", func(t *testing.T) {
		h := mcpHandler(echo)
		result, err := h(context.Background(), mcp.CallToolRequest{
			Params: mcp.CallToolParams{
				Name:      "echo",
				Arguments: map[string]any{"text": "hello"},
			},
		})
		require.NoError(t, err)
		require.False(t, result.IsError)

		text, ok := result.Content[0].(mcp.TextContent)
		require.True(t, ok)
		assert.Equal(t, "hello", text.Text)
	})

	t.Run("handler folds argument errors into the result", func(t *testing.T) {
		h := mcpHandler(echo)
		result, err := h(context.Background(), mcp.CallToolRequest{
			Params: mcp.CallToolParams{Name: "echo"},
		})
		require.NoError(t, err)
		assert.True(t, result.IsError)
	})

	t.Run("server registers without error", func(t *testing.T) {
		s := NewServer(registry, WithName("test-server"), WithVersion("0.1.0"))
		assert.NotNil(t, s)
	})
}
