package intent

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

const (
	// DefaultMinutes is used when no duration can be extracted.
	DefaultMinutes = 25
	// MaxMinutes caps any requested focus timer.
	MaxMinutes = 60
)

var minutePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(\d+)\s*(?:minuten|minute|min)\b`),
	regexp.MustCompile(`(?:timer|fokus)\s*(?:für|auf)?\s*(\d+)`),
	regexp.MustCompile(`(?:für|auf)\s+(\d+)`),
}

// numberWords covers the durations people actually say. Matched as
// whole words, so "drei" never fires inside "dreißig".
var numberWords = map[string]int{
	"eins": 1, "zwei": 2, "drei": 3, "vier": 4, "fünf": 5,
	"sechs": 6, "sieben": 7, "acht": 8, "neun": 9, "zehn": 10,
	"fünfzehn": 15, "zwanzig": 20, "dreißig": 30,
}

var bareInt = regexp.MustCompile(`\d+`)

// extractMinutes pulls a duration from the lowered text. Tried in
// order: digit-plus-unit patterns, German number words, the first
// bare integer in [1,120]. Falls back to DefaultMinutes.
func extractMinutes(lowered string) int {
	for _, pattern := range minutePatterns {
		if m := pattern.FindStringSubmatch(lowered); m != nil {
			if n, err := strconv.Atoi(m[1]); err == nil && n > 0 {
				return n
			}
		}
	}

	for _, word := range splitWords(lowered) {
		if n, ok := numberWords[word]; ok {
			return n
		}
	}

	for _, m := range bareInt.FindAllString(lowered, -1) {
		if n, err := strconv.Atoi(m); err == nil && n >= 1 && n <= 120 {
			return n
		}
	}

	return DefaultMinutes
}

// ClampMinutes limits a timer request to MaxMinutes and reports
// whether clamping happened, so the caller can surface a notice.
func ClampMinutes(minutes int) (int, bool) {
	if minutes > MaxMinutes {
		return MaxMinutes, true
	}
	return minutes, false
}

func splitWords(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}
