package intent

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRouter_TimerBeatsTask(t *testing.T) {
	r := NewRouter()

	action := r.Route("starte timer für 10 minuten und erstelle eine aufgabe")
	assert.Equal(t, SetTimer{Minutes: 10}, action)
}

func TestRouter_Timer(t *testing.T) {
	r := NewRouter()

	tests := []struct {
		name    string
		input   string
		minutes int
	}{
		{"explicit minutes", "starte einen timer für 15 minuten", 15},
		{"fokus keyword", "fokus 30", 30},
		{"setze plus minute", "setze 5 minuten", 5},
		{"number word", "timer für zwanzig minuten", 20},
		{"dreißig not drei", "timer dreißig minuten", 30},
		{"bare int in range", "timer 45", 45},
		{"no duration defaults", "starte den timer", DefaultMinutes},
		{"oversized request passes through for downstream clamp", "timer 500", 500},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, SetTimer{Minutes: tt.minutes}, r.Route(tt.input))
		})
	}
}

func TestRouter_TaskTitle(t *testing.T) {
	r := NewRouter()

	tests := []struct {
		name   string
		input  string
		action Action
	}{
		{"bare keyword yields nothing", "aufgabe", nil},
		{"command words only yields nothing", "erstelle eine aufgabe", nil},
		{"keyword plus title", "aufgabe Bericht schreiben", CreateTask{Title: "Bericht schreiben"}},
		{"full phrase", "erstelle eine neue aufgabe Einkaufen gehen", CreateTask{Title: "Einkaufen gehen"}},
		{"english keyword", "task Meeting vorbereiten", CreateTask{Title: "Meeting vorbereiten"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.action, r.Route(tt.input))
		})
	}
}

func TestRouter_RemainingCategories(t *testing.T) {
	r := NewRouter()

	tests := []struct {
		name   string
		input  string
		action Action
	}{
		{"clear chat", "lösche den chat bitte", ClearHistory{}},
		{"clear needs both words", "lösche alles", nil},
		{"open calendar", "öffne meinen kalender", OpenCalendar{}},
		{"calendar needs verb", "kalender", nil},
		{"spotify", "spotify starten", PlayMedia{}},
		{"musik", "spiele etwas musik", PlayMedia{}},
		{"voice input", "sprich mit mir", StartVoiceInput{}},
		{"no match", "wie wird das wetter morgen", nil},
		{"empty input", "   ", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.action == nil {
				assert.Nil(t, r.Route(tt.input))
			} else {
				assert.Equal(t, tt.action, r.Route(tt.input))
			}
		})
	}
}

func TestRouter_CaseInsensitive(t *testing.T) {
	r := NewRouter()
	assert.Equal(t, SetTimer{Minutes: 10}, r.Route("STARTE TIMER FÜR 10 MINUTEN"))
}
