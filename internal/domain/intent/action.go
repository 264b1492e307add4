// Package intent maps recognized or typed German text to structured
// actions, so common commands never need a remote AI call.
package intent

// Action is a closed set of structured commands. Each value is
// immutable and dispatched exactly once.
type Action interface {
	isAction()
}

type CreateTask struct {
	Title string
}

type SetTimer struct {
	Minutes int
}

type ClearHistory struct{}

type OpenCalendar struct {
	// EventTitle is optional; empty opens the calendar overview.
	EventTitle string
}

type PlayMedia struct {
	// Playlist is optional; empty resumes default playback.
	Playlist string
}

type StartVoiceInput struct{}

func (CreateTask) isAction()      {}
func (SetTimer) isAction()        {}
func (ClearHistory) isAction()    {}
func (OpenCalendar) isAction()    {}
func (PlayMedia) isAction()       {}
func (StartVoiceInput) isAction() {}
