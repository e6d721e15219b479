package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/mcp"

	ai "github.com/im-vedant/llm4s"
	"github.com/im-vedant/llm4s/schema"
	"github.com/im-vedant/llm4s/tool"
)

// RemoteRegistry provides access to the tools of an MCP server. The tool
// list is cached locally and can be refreshed with [RemoteRegistry.Refresh].
// Safe for concurrent use.
type RemoteRegistry struct {
	client *client.Client
	mu     sync.RWMutex
	tools  map[string]ai.Tool
}

// NewRemoteRegistry connects to an MCP server over stdio. The command is
// the path to the server executable; args are passed through to it.
func NewRemoteRegistry(ctx context.Context, command string, env []string, args ...string) (*RemoteRegistry, error) {
	c, err := client.NewStdioMCPClient(command, env, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to create MCP client: %w", err)
	}
	return newRemoteRegistry(ctx, c)
}

// NewRemoteRegistryFromClient wraps an existing MCP client. The client is
// started, the session initialized, and the tool list fetched.
func NewRemoteRegistryFromClient(ctx context.Context, c *client.Client) (*RemoteRegistry, error) {
	return newRemoteRegistry(ctx, c)
}

func newRemoteRegistry(ctx context.Context, c *client.Client) (*RemoteRegistry, error) {
	if err := c.Start(ctx); err != nil {
		return nil, fmt.Errorf("failed to start MCP client: %w", err)
	}

	_, err := c.Initialize(ctx, mcp.InitializeRequest{
		Params: mcp.InitializeParams{
			ProtocolVersion: mcp.LATEST_PROTOCOL_VERSION,
			Capabilities:    mcp.ClientCapabilities{},
			ClientInfo: mcp.Implementation{
				Name:    "llm4s-mcp-client",
				Version: "1.0.0",
			},
		},
	})
	if err != nil {
		c.Close()
		return nil, fmt.Errorf("failed to initialize MCP session: %w", err)
	}

	r := &RemoteRegistry{
		client: c,
		tools:  make(map[string]ai.Tool),
	}
	if err := r.Refresh(ctx); err != nil {
		c.Close()
		return nil, fmt.Errorf("failed to list tools: %w", err)
	}
	return r, nil
}

// Close closes the connection to the MCP server.
func (r *RemoteRegistry) Close() error {
	return r.client.Close()
}

// Refresh fetches the current tool list from the MCP server.
func (r *RemoteRegistry) Refresh(ctx context.Context) error {
	result, err := r.client.ListTools(ctx, mcp.ListToolsRequest{})
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.tools = make(map[string]ai.Tool, len(result.Tools))
	for _, t := range result.Tools {
		r.tools[t.Name] = FromMCPTool(t)
	}
	return nil
}

// Tools returns all remote tool definitions, sorted by name.
func (r *RemoteRegistry) Tools() []ai.Tool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tools := make([]ai.Tool, 0, len(r.tools))
	for _, t := range r.tools {
		tools = append(tools, t)
	}
	sort.Slice(tools, func(i, j int) bool { return tools[i].Name < tools[j].Name })
	return tools
}

// Has reports whether the server exposes a tool with the given name.
func (r *RemoteRegistry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.tools[name]
	return ok
}

// Len returns the number of remote tools.
func (r *RemoteRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.tools)
}

// Execute calls a tool on the remote MCP server. Transport failures are
// folded into an error-flagged result, matching local dispatch semantics.
func (r *RemoteRegistry) Execute(ctx context.Context, call ai.ToolCall) (ai.ToolResult, error) {
	result, err := r.client.CallTool(ctx, ToMCPCallToolRequest(call))
	if err != nil {
		return ai.ToolResult{
			ToolCallID: call.ID,
			Content:    err.Error(),
			IsError:    true,
		}, nil
	}
	return FromMCPCallToolResult(call.ID, result), nil
}

// Functions converts the remote tools into local tool Functions whose
// handlers proxy to the server, so they can be registered alongside local
// tools and driven by an agent. A remote tool whose schema cannot be parsed
// is an error; the agent's contract depends on schema-checked arguments.
func (r *RemoteRegistry) Functions() ([]*tool.Function, error) {
	tools := r.Tools()
	fns := make([]*tool.Function, 0, len(tools))
	for _, t := range tools {
		s, err := schema.Parse(t.Parameters)
		if err != nil {
			return nil, fmt.Errorf("remote tool %s: %w", t.Name, err)
		}

		name := t.Name
		fn, err := tool.NewBuilder().
			Name(name).
			Description(t.Description).
			Schema(s).
			Handler(func(ctx context.Context, args *tool.Extractor) (string, error) {
				raw, err := json.Marshal(args.Raw())
				if err != nil {
					return "", err
				}
				result, err := r.Execute(ctx, ai.ToolCall{Name: name, Arguments: string(raw)})
				if err != nil {
					return "", err
				}
				if result.IsError {
					return "", fmt.Errorf("%s", result.Content)
				}
				return result.Content, nil
			}).
			Build()
		if err != nil {
			return nil, fmt.Errorf("remote tool %s: %w", t.Name, err)
		}
		fns = append(fns, fn)
	}
	return fns, nil
}
