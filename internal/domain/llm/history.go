// Package llm owns conversation state and the generative text boundary.
package llm

import "sync"

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

type Message struct {
	Role    string
	Content string
}

// History is a bounded conversation log. The system prompt stays
// pinned at index 0; older exchanges fall off the front when the
// limit is reached.
type History struct {
	mu     sync.RWMutex
	system Message
	turns  []Message
	limit  int
}

func NewHistory(systemPrompt string, limit int) *History {
	if limit < 2 {
		limit = 2
	}
	return &History{
		system: Message{Role: RoleSystem, Content: systemPrompt},
		limit:  limit,
	}
}

// Add appends one message, evicting the oldest turn if over the limit.
func (h *History) Add(role, content string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.turns = append(h.turns, Message{Role: role, Content: content})
	if len(h.turns) > h.limit {
		h.turns = h.turns[len(h.turns)-h.limit:]
	}
}

// Messages returns the system prompt followed by the retained turns.
func (h *History) Messages() []Message {
	h.mu.RLock()
	defer h.mu.RUnlock()

	out := make([]Message, 0, len(h.turns)+1)
	out = append(out, h.system)
	out = append(out, h.turns...)
	return out
}

// Clear drops all turns but keeps the system prompt.
func (h *History) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.turns = nil
}

// Len counts retained turns, excluding the system prompt.
func (h *History) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.turns)
}
