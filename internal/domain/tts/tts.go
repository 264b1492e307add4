// Package tts wraps the remote speech synthesis boundary.
package tts

import (
	"context"
	"sync"
	"time"

	"github.com/wujunwei928/edge-tts-go/edge_tts"

	"taskpilot-voice/internal/platform/config"
	"taskpilot-voice/internal/platform/errors"
)

// Synthesizer turns reply text into encoded audio bytes.
type Synthesizer interface {
	Synthesize(ctx context.Context, text string) ([]byte, error)
}

// EdgeSynthesizer produces mp3 audio via the Edge speech service.
// Recent phrases are cached so repeated canned replies skip the
// network round trip.
type EdgeSynthesizer struct {
	voice string
	cache *phraseCache
}

func NewEdgeSynthesizer(cfg config.TTSConfig) *EdgeSynthesizer {
	return &EdgeSynthesizer{
		voice: cfg.Voice,
		cache: newPhraseCache(64, 30*time.Minute),
	}
}

func (s *EdgeSynthesizer) Synthesize(ctx context.Context, text string) ([]byte, error) {
	if text == "" {
		return nil, errors.New(errors.KindGateway, "synthesize", "text is empty")
	}
	if data := s.cache.get(text); data != nil {
		return data, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(errors.KindGateway, "synthesize", "synthesis cancelled", err)
	}

	communicate, err := edge_tts.NewCommunicate(text, edge_tts.SetVoice(s.voice))
	if err != nil {
		return nil, errors.Wrap(errors.KindGateway, "synthesize", "create synthesis session", err)
	}

	data, err := communicate.Stream()
	if err != nil {
		return nil, errors.Wrap(errors.KindGateway, "synthesize", "synthesis request failed", err)
	}

	s.cache.set(text, data)
	return data, nil
}

type phraseEntry struct {
	data    []byte
	addedAt time.Time
}

type phraseCache struct {
	mu      sync.Mutex
	entries map[string]phraseEntry
	maxSize int
	ttl     time.Duration
}

func newPhraseCache(maxSize int, ttl time.Duration) *phraseCache {
	return &phraseCache{
		entries: make(map[string]phraseEntry),
		maxSize: maxSize,
		ttl:     ttl,
	}
}

func (c *phraseCache) get(key string) []byte {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		return nil
	}
	if time.Since(entry.addedAt) > c.ttl {
		delete(c.entries, key)
		return nil
	}
	return entry.data
}

func (c *phraseCache) set(key string, data []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.entries) >= c.maxSize {
		var oldestKey string
		var oldestTime time.Time
		for k, v := range c.entries {
			if oldestKey == "" || v.addedAt.Before(oldestTime) {
				oldestKey = k
				oldestTime = v.addedAt
			}
		}
		delete(c.entries, oldestKey)
	}
	c.entries[key] = phraseEntry{data: data, addedAt: time.Now()}
}
