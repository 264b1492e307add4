package llm

import "strings"

// fallbackEntry maps trigger words to a canned reply.
type fallbackEntry struct {
	keywords []string
	reply    string
}

// FallbackResponder answers from a fixed keyword table when the
// remote generator is unreachable. First matching entry wins.
type FallbackResponder struct {
	entries      []fallbackEntry
	defaultReply string
}

func NewFallbackResponder() *FallbackResponder {
	return &FallbackResponder{
		entries: []fallbackEntry{
			{
				keywords: []string{"hallo", "guten morgen", "guten tag", "guten abend"},
				reply:    "Hallo! Wie kann ich dir helfen?",
			},
			{
				keywords: []string{"danke", "dankeschön"},
				reply:    "Gern geschehen!",
			},
			{
				keywords: []string{"wie geht"},
				reply:    "Mir geht es gut, danke! Und dir?",
			},
			{
				keywords: []string{"tschüss", "auf wiedersehen", "bis später"},
				reply:    "Bis bald! Viel Erfolg mit deinen Aufgaben.",
			},
			{
				keywords: []string{"hilfe", "was kannst du"},
				reply: "Ich kann Aufgaben anlegen, einen Fokus-Timer starten, " +
					"den Kalender öffnen und Musik abspielen.",
			},
			{
				keywords: []string{"uhrzeit", "wie spät"},
				reply:    "Die aktuelle Uhrzeit siehst du oben in der App.",
			},
		},
		defaultReply: "Das habe ich leider nicht verstanden. " +
			"Gerade ist keine Verbindung zum Assistenten möglich.",
	}
}

// Respond returns the canned reply for the first entry whose keyword
// occurs in the text, or the default reply.
func (f *FallbackResponder) Respond(text string) string {
	lowered := strings.ToLower(text)
	for _, e := range f.entries {
		for _, kw := range e.keywords {
			if strings.Contains(lowered, kw) {
				return e.reply
			}
		}
	}
	return f.defaultReply
}
