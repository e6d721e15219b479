package google

import (
	"encoding/json"

	"google.golang.org/genai"

	ai "github.com/im-vedant/llm4s"
)

// convertMessages maps the conversation into genai contents plus system
// instruction parts. Assistant tool calls become FunctionCall parts and tool
// results become user-role FunctionResponse parts.
//
// The API keys a FunctionResponse by function name, not call ID, so a call
// ID to name map is built from the assistant messages as they are walked.
func convertMessages(messages []ai.Message) ([]*genai.Content, []*genai.Part) {
	var contents []*genai.Content
	var system []*genai.Part

	callNames := make(map[string]string)

	for _, msg := range messages {
		if msg.Role == ai.RoleSystem {
			if msg.Content != "" {
				system = append(system, &genai.Part{Text: msg.Content})
			}
			continue
		}

		role := genai.RoleUser
		if msg.Role == ai.RoleAssistant {
			role = genai.RoleModel
		}

		var parts []*genai.Part
		if msg.Content != "" {
			parts = append(parts, &genai.Part{Text: msg.Content})
		}

		for _, tc := range msg.ToolCalls {
			callNames[tc.ID] = tc.Name
			var args map[string]any
			json.Unmarshal([]byte(tc.Arguments), &args)
			parts = append(parts, &genai.Part{
				FunctionCall: &genai.FunctionCall{
					ID:   tc.ID,
					Name: tc.Name,
					Args: args,
				},
			})
		}

		for _, tr := range msg.ToolResults {
			// Responses must be JSON objects; plain text is wrapped.
			var result map[string]any
			if err := json.Unmarshal([]byte(tr.Content), &result); err != nil {
				key := "result"
				if tr.IsError {
					key = "error"
				}
				result = map[string]any{key: tr.Content}
			}
			name := callNames[tr.ToolCallID]
			if name == "" {
				name = tr.ToolCallID
			}
			parts = append(parts, &genai.Part{
				FunctionResponse: &genai.FunctionResponse{
					ID:       tr.ToolCallID,
					Name:     name,
					Response: result,
				},
			})
		}

		if len(parts) > 0 {
			contents = append(contents, &genai.Content{
				Role:  role,
				Parts: parts,
			})
		}
	}

	return contents, system
}
