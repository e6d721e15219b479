package tool

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/im-vedant/llm4s"
	"github.com/im-vedant/llm4s/schema"
)

// Handler executes a tool call against schema-validated arguments.
// The context supports cancellation and timeout and must be honored by
// handlers that perform I/O. Returned errors are reported to the model as an
// error-flagged tool result, never propagated as a fault.
type Handler func(ctx context.Context, args *Extractor) (string, error)

// Function is a named, described, schema-typed tool the model can call.
// Functions are built once via [Builder] and are immutable and safe for
// concurrent use thereafter.
type Function struct {
	name        string
	description string
	schema      *schema.Schema
	params      json.RawMessage
	handler     Handler
}

// Name returns the tool's unique name.
func (f *Function) Name() string { return f.name }

// Description returns the natural-language description the model uses to
// decide when to call the tool.
func (f *Function) Description() string { return f.description }

// Schema returns the parameter schema.
func (f *Function) Schema() *schema.Schema { return f.schema }

// Definition returns the tool definition advertised to model providers.
func (f *Function) Definition() llm4s.Tool {
	return llm4s.Tool{
		Name:        f.name,
		Description: f.description,
		Parameters:  f.params,
	}
}

// Invoke runs the handler for a tool call and returns a ToolResult tagged
// with the call's ID. Argument decode failures, handler errors, and handler
// panics are all converted into an error-flagged result: a failing tool must
// never corrupt the caller's loop.
func (f *Function) Invoke(ctx context.Context, call llm4s.ToolCall) (result llm4s.ToolResult) {
	result = llm4s.ToolResult{ToolCallID: call.ID}

	defer func() {
		if r := recover(); r != nil {
			result.Content = fmt.Sprintf("tool %s panicked: %v", f.name, r)
			result.IsError = true
		}
	}()

	args, err := NewExtractor(f.schema, call.Arguments)
	if err != nil {
		result.Content = err.Error()
		result.IsError = true
		return result
	}

	content, err := f.handler(ctx, args)
	if err != nil {
		result.Content = err.Error()
		result.IsError = true
		return result
	}

	result.Content = content
	return result
}

// Builder assembles a Function. Name, description, schema, and handler are
// all required; Build reports the first omission.
type Builder struct {
	name        string
	description string
	schema      *schema.Schema
	handler     Handler
}

// NewBuilder creates an empty Function builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Name sets the tool's unique name.
func (b *Builder) Name(name string) *Builder {
	b.name = name
	return b
}

// Description sets the natural-language description shown to the model.
func (b *Builder) Description(description string) *Builder {
	b.description = description
	return b
}

// Schema sets the parameter schema. It must be an object schema.
func (b *Builder) Schema(s *schema.Schema) *Builder {
	b.schema = s
	return b
}

// Handler attaches the function that executes the tool.
func (b *Builder) Handler(h Handler) *Builder {
	b.handler = h
	return b
}

// Build validates the builder and returns an immutable Function.
// The parameter schema is serialized once here and reused for every
// advertisement of the tool.
func (b *Builder) Build() (*Function, error) {
	switch {
	case b.name == "":
		return nil, &BuildError{Field: "name"}
	case b.description == "":
		return nil, &BuildError{Field: "description"}
	case b.schema == nil:
		return nil, &BuildError{Field: "schema"}
	case b.handler == nil:
		return nil, &BuildError{Field: "handler"}
	}

	if b.schema.Kind() != schema.KindObject {
		return nil, fmt.Errorf("tool: %s: parameter schema must be an object", b.name)
	}

	params, err := b.schema.JSON()
	if err != nil {
		return nil, fmt.Errorf("tool: %s: %w", b.name, err)
	}

	return &Function{
		name:        b.name,
		description: b.description,
		schema:      b.schema,
		params:      params,
		handler:     b.handler,
	}, nil
}

// MustBuild is like Build but panics on error.
func (b *Builder) MustBuild() *Function {
	f, err := b.Build()
	if err != nil {
		panic(err)
	}
	return f
}
