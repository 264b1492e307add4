package intent

import "strings"

// Router matches text against the command categories in a fixed
// order; the first category that matches wins. A nil result means no
// command was recognized and the caller should ask the generator.
type Router struct{}

func NewRouter() *Router {
	return &Router{}
}

// Route maps free text to an Action, or nil when nothing matches.
// Matching is case-insensitive substring based since recognized
// utterances are noisy.
func (r *Router) Route(text string) Action {
	lowered := strings.ToLower(strings.TrimSpace(text))
	if lowered == "" {
		return nil
	}

	// 1. Focus timer. Evaluated first so "timer und aufgabe" phrasing
	// never creates a task by accident.
	if matchTimer(lowered) {
		return SetTimer{Minutes: extractMinutes(lowered)}
	}

	// 2. Task creation. An empty title is not a match and falls
	// through to the remaining categories.
	if strings.Contains(lowered, "aufgabe") || strings.Contains(lowered, "task") {
		if title := extractTaskTitle(text); title != "" {
			return CreateTask{Title: title}
		}
	}

	// 3. Clear chat history.
	if strings.Contains(lowered, "chat") && containsAny(lowered, "lösche", "löschen", "clear") {
		return ClearHistory{}
	}

	// 4. Open calendar.
	if strings.Contains(lowered, "kalender") && containsAny(lowered, "öffne", "öffnen", "zeige", "anzeigen") {
		return OpenCalendar{}
	}

	// 5. Play media.
	if containsAny(lowered, "spotify", "musik", "abspielen") {
		return PlayMedia{}
	}
	if strings.Contains(lowered, "spiele") && strings.Contains(lowered, "musik") {
		return PlayMedia{}
	}

	// 6. Voice input request.
	if containsAny(lowered, "sprich", "stimme") {
		return StartVoiceInput{}
	}

	return nil
}

func matchTimer(lowered string) bool {
	if containsAny(lowered, "timer", "fokus") {
		return true
	}
	return containsAny(lowered, "setze", "starte", "stelle") && strings.Contains(lowered, "minute")
}

// commandWords are stripped from the front of a task phrase; what
// remains is the title.
var commandWords = map[string]bool{
	"erstelle": true, "erstellen": true, "erstell": true,
	"neue": true, "neuen": true, "neues": true,
	"eine": true, "einen": true, "ein": true,
	"die": true, "der": true, "das": true,
	"aufgabe": true, "aufgaben": true, "task": true, "tasks": true,
	"anlegen": true, "hinzufügen": true, "füge": true, "hinzu": true,
	"bitte": true, "mir": true, "mit": true, "dem": true, "titel": true,
	"mach": true, "mache": true, "schreibe": true, "notiere": true,
}

// extractTaskTitle strips leading command words and returns the rest
// with its original casing. Empty means the phrase carried no title.
func extractTaskTitle(text string) string {
	words := strings.Fields(strings.TrimSpace(text))

	start := 0
	for start < len(words) {
		cleaned := strings.ToLower(strings.Trim(words[start], ",.!?:"))
		if !commandWords[cleaned] {
			break
		}
		start++
	}

	title := strings.TrimSpace(strings.Join(words[start:], " "))
	if title == "" || commandWords[strings.ToLower(title)] {
		return ""
	}
	return title
}

func containsAny(text string, subs ...string) bool {
	for _, s := range subs {
		if strings.Contains(text, s) {
			return true
		}
	}
	return false
}
