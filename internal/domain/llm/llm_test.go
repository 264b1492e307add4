package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHistory_PinsSystemPrompt(t *testing.T) {
	h := NewHistory("du bist ein assistent", 4)
	h.Add(RoleUser, "hallo")
	h.Add(RoleAssistant, "hi")

	msgs := h.Messages()
	assert.Equal(t, RoleSystem, msgs[0].Role)
	assert.Equal(t, "du bist ein assistent", msgs[0].Content)
	assert.Len(t, msgs, 3)
}

func TestHistory_EvictsOldestTurns(t *testing.T) {
	h := NewHistory("prompt", 4)
	for i := 0; i < 6; i++ {
		h.Add(RoleUser, string(rune('a'+i)))
	}

	assert.Equal(t, 4, h.Len())
	msgs := h.Messages()
	// system prompt survives eviction, oldest turns do not
	assert.Equal(t, RoleSystem, msgs[0].Role)
	assert.Equal(t, "c", msgs[1].Content)
	assert.Equal(t, "f", msgs[4].Content)
}

func TestHistory_ClearKeepsSystemPrompt(t *testing.T) {
	h := NewHistory("prompt", 10)
	h.Add(RoleUser, "hallo")
	h.Clear()

	assert.Equal(t, 0, h.Len())
	msgs := h.Messages()
	assert.Len(t, msgs, 1)
	assert.Equal(t, RoleSystem, msgs[0].Role)
}

func TestFallbackResponder(t *testing.T) {
	f := NewFallbackResponder()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"greeting", "Hallo Assistent!", "Hallo! Wie kann ich dir helfen?"},
		{"thanks", "Vielen Danke dir", "Gern geschehen!"},
		{"how are you", "Na, wie geht es dir so?", "Mir geht es gut, danke! Und dir?"},
		{"case insensitive", "HALLO", "Hallo! Wie kann ich dir helfen?"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, f.Respond(tt.input))
		})
	}

	t.Run("unknown input falls back to default", func(t *testing.T) {
		reply := f.Respond("xyzzy quantenphysik")
		assert.Contains(t, reply, "nicht verstanden")
	})
}
