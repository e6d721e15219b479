package tool

import (
	"context"
	"sync"

	"github.com/im-vedant/llm4s"
)

// Registry is a lookup table from tool name to [Function]. Registration
// order is preserved so tools are advertised to providers deterministically;
// some providers are sensitive to tool ordering in prompts.
//
// Registration rejects duplicate names with [AlreadyRegisteredError] rather
// than replacing the earlier tool. The registry is safe for concurrent use.
type Registry struct {
	mu     sync.RWMutex
	byName map[string]*Function
	order  []string
}

// NewRegistry creates a registry holding the given functions.
func NewRegistry(fns ...*Function) (*Registry, error) {
	r := &Registry{byName: make(map[string]*Function, len(fns))}
	if err := r.Register(fns...); err != nil {
		return nil, err
	}
	return r, nil
}

// MustNewRegistry is like NewRegistry but panics on error.
func MustNewRegistry(fns ...*Function) *Registry {
	r, err := NewRegistry(fns...)
	if err != nil {
		panic(err)
	}
	return r
}

// Register adds functions to the registry. A duplicate name, whether within
// the batch or against an earlier registration, fails the whole call.
func (r *Registry) Register(fns ...*Function) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, f := range fns {
		if _, exists := r.byName[f.Name()]; exists {
			return &AlreadyRegisteredError{Name: f.Name()}
		}
		r.byName[f.Name()] = f
		r.order = append(r.order, f.Name())
	}
	return nil
}

// Resolve returns the function registered under name, or [UnknownToolError].
func (r *Registry) Resolve(name string) (*Function, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	f, ok := r.byName[name]
	if !ok {
		return nil, &UnknownToolError{Name: name}
	}
	return f, nil
}

// Dispatch resolves a tool call by name and invokes it. An unregistered name
// returns [UnknownToolError]; handler failures do not surface here, they are
// folded into the returned result by [Function.Invoke].
func (r *Registry) Dispatch(ctx context.Context, call llm4s.ToolCall) (llm4s.ToolResult, error) {
	f, err := r.Resolve(call.Name)
	if err != nil {
		return llm4s.ToolResult{}, err
	}
	return f.Invoke(ctx, call), nil
}

// Tools returns the registered tool definitions in registration order, for
// advertising to a model provider.
func (r *Registry) Tools() []llm4s.Tool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tools := make([]llm4s.Tool, 0, len(r.order))
	for _, name := range r.order {
		tools = append(tools, r.byName[name].Definition())
	}
	return tools
}

// Functions returns the registered functions in registration order.
func (r *Registry) Functions() []*Function {
	r.mu.RLock()
	defer r.mu.RUnlock()

	fns := make([]*Function, 0, len(r.order))
	for _, name := range r.order {
		fns = append(fns, r.byName[name])
	}
	return fns
}

// Names returns the registered tool names in registration order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string(nil), r.order...)
}

// Has reports whether a tool with the given name is registered.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.byName[name]
	return ok
}

// Len returns the number of registered tools.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}
