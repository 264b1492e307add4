// Package eventbus carries pipeline events to the UI transport layer.
package eventbus

import (
	evbus "github.com/asaskevich/EventBus"
)

const (
	EventStateChanged     = "state:changed"
	EventTranscriptReady  = "asr:result"
	EventReplyReady       = "llm:response"
	EventActionDispatched = "intent:dispatched"
	EventNotice           = "system:notice"
	EventCycleError       = "system:error"
)

type StateEventData struct {
	CycleID     string `json:"cycle_id"`
	State       string `json:"state"`
	IsRecording bool   `json:"is_recording"`
	IsSpeaking  bool   `json:"is_speaking"`
}

type TranscriptEventData struct {
	CycleID string `json:"cycle_id"`
	Text    string `json:"text"`
}

type ReplyEventData struct {
	CycleID  string `json:"cycle_id"`
	Text     string `json:"text"`
	Fallback bool   `json:"fallback"`
}

type ActionEventData struct {
	CycleID string `json:"cycle_id"`
	Kind    string `json:"kind"`
	Detail  string `json:"detail,omitempty"`
	Minutes int    `json:"minutes,omitempty"`
}

type NoticeEventData struct {
	CycleID string `json:"cycle_id"`
	Message string `json:"message"`
}

type ErrorEventData struct {
	CycleID string `json:"cycle_id"`
	Stage   string `json:"stage"`
	Message string `json:"message"`
}

// Bus is a thin typed wrapper over the underlying publish/subscribe
// bus, constructed once and passed to the components that need it.
type Bus struct {
	inner evbus.Bus
}

func New() *Bus {
	return &Bus{inner: evbus.New()}
}

func (b *Bus) PublishState(d StateEventData) { b.inner.Publish(EventStateChanged, d) }

func (b *Bus) PublishTranscript(d TranscriptEventData) { b.inner.Publish(EventTranscriptReady, d) }

func (b *Bus) PublishReply(d ReplyEventData) { b.inner.Publish(EventReplyReady, d) }

func (b *Bus) PublishAction(d ActionEventData) { b.inner.Publish(EventActionDispatched, d) }

func (b *Bus) PublishNotice(d NoticeEventData) { b.inner.Publish(EventNotice, d) }

func (b *Bus) PublishError(d ErrorEventData) { b.inner.Publish(EventCycleError, d) }

// Subscribe registers fn for topic. fn's signature must match the
// topic's event data type.
func (b *Bus) Subscribe(topic string, fn interface{}) error {
	return b.inner.Subscribe(topic, fn)
}

// Unsubscribe removes a previously registered handler.
func (b *Bus) Unsubscribe(topic string, fn interface{}) error {
	return b.inner.Unsubscribe(topic, fn)
}
