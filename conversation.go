package llm4s

import "sync"

// Conversation is an append-only ordered sequence of messages. It is the
// unit of state a model client consumes and the orchestration loop grows.
//
// Messages are never reordered or removed once appended. A Conversation is
// safe for concurrent use, though a single agent run owns its conversation
// and appends strictly between model calls.
type Conversation struct {
	mu       sync.RWMutex
	messages []Message
}

// NewConversation creates a conversation seeded with the given messages.
func NewConversation(msgs ...Message) *Conversation {
	c := &Conversation{messages: make([]Message, 0, len(msgs))}
	c.messages = append(c.messages, msgs...)
	return c
}

// Append adds messages to the end of the conversation.
func (c *Conversation) Append(msgs ...Message) {
	if len(msgs) == 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.messages = append(c.messages, msgs...)
}

// Messages returns a copy of all messages in order.
func (c *Conversation) Messages() []Message {
	c.mu.RLock()
	defer c.mu.RUnlock()
	result := make([]Message, len(c.messages))
	copy(result, c.messages)
	return result
}

// Len returns the number of messages.
func (c *Conversation) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.messages)
}

// Last returns the final message and true, or a zero message and false if
// the conversation is empty.
func (c *Conversation) Last() (Message, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if len(c.messages) == 0 {
		return Message{}, false
	}
	return c.messages[len(c.messages)-1], true
}

// LastAssistantText returns the content of the most recent assistant
// message, or "" if none exists.
func (c *Conversation) LastAssistantText() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for i := len(c.messages) - 1; i >= 0; i-- {
		if c.messages[i].Role == RoleAssistant {
			return c.messages[i].Content
		}
	}
	return ""
}

// Clone creates an independent copy of the conversation.
func (c *Conversation) Clone() *Conversation {
	c.mu.RLock()
	defer c.mu.RUnlock()
	clone := &Conversation{messages: make([]Message, len(c.messages))}
	copy(clone.messages, c.messages)
	return clone
}
