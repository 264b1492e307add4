// Package playback decodes synthesized mp3 audio and plays it on the
// default output device.
package playback

import (
	"bytes"
	"context"
	"io"

	"github.com/gordonklaus/portaudio"
	"github.com/hajimehoshi/go-mp3"

	"taskpilot-voice/internal/platform/errors"
)

const framesPerWrite = 1024

// Player plays one encoded audio clip to completion. Play blocks until
// the clip finishes or ctx is cancelled; cancellation stops output and
// releases the device before returning.
type Player interface {
	Play(ctx context.Context, mp3Data []byte) error
}

// SpeakerPlayer renders mp3 clips on the default output device.
// The decoder always yields 16-bit little-endian stereo.
type SpeakerPlayer struct{}

func NewSpeakerPlayer() *SpeakerPlayer {
	return &SpeakerPlayer{}
}

func (p *SpeakerPlayer) Play(ctx context.Context, mp3Data []byte) error {
	decoder, err := mp3.NewDecoder(bytes.NewReader(mp3Data))
	if err != nil {
		return errors.Wrap(errors.KindDevice, "play", "decode audio clip", err)
	}

	if err := portaudio.Initialize(); err != nil {
		return errors.Wrap(errors.KindDevice, "play", "initialize audio host", errors.ErrDeviceInitFailed)
	}
	defer portaudio.Terminate()

	out := make([]int16, framesPerWrite*2)
	stream, err := portaudio.OpenDefaultStream(0, 2, float64(decoder.SampleRate()), framesPerWrite, out)
	if err != nil {
		return errors.Wrap(errors.KindDevice, "play", "open output stream", err)
	}
	defer stream.Close()

	if err := stream.Start(); err != nil {
		return errors.Wrap(errors.KindDevice, "play", "start output stream", err)
	}
	defer stream.Stop()

	raw := make([]byte, len(out)*2)
	for {
		if err := ctx.Err(); err != nil {
			return errors.Wrap(errors.KindDevice, "play", "playback cancelled", err)
		}

		n, readErr := io.ReadFull(decoder, raw)
		if n == 0 {
			break
		}
		// zero-pad a short final buffer
		for i := n; i < len(raw); i++ {
			raw[i] = 0
		}
		for i := range out {
			out[i] = int16(raw[i*2]) | (int16(raw[i*2+1]) << 8)
		}
		if err := stream.Write(); err != nil {
			return errors.Wrap(errors.KindDevice, "play", "write output block", err)
		}

		if readErr == io.EOF || readErr == io.ErrUnexpectedEOF {
			break
		}
		if readErr != nil {
			return errors.Wrap(errors.KindDevice, "play", "read decoded audio", readErr)
		}
	}

	return nil
}
