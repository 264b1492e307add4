package audio

import (
	"sync"

	"github.com/gordonklaus/portaudio"

	"taskpilot-voice/internal/platform/errors"
)

// FrameSource delivers fixed-size blocks of microphone samples.
// Implementations are not safe for concurrent ReadNext calls.
type FrameSource interface {
	// Open acquires the capture device. Returns a device error when the
	// hardware is busy, missing or permission was denied.
	Open() error
	// ReadNext blocks until one full block of samples is available.
	ReadNext() (Block, error)
	// Close releases the device. Safe to call more than once.
	Close() error
}

// MicrophoneSource captures from the default input device via portaudio.
type MicrophoneSource struct {
	sampleRate     int
	framesPerBlock int

	mu     sync.Mutex
	stream *portaudio.Stream
	buffer []int16
	opened bool
}

func NewMicrophoneSource(sampleRate, framesPerBlock int) *MicrophoneSource {
	return &MicrophoneSource{
		sampleRate:     sampleRate,
		framesPerBlock: framesPerBlock,
	}
}

func (m *MicrophoneSource) Open() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.opened {
		return errors.Wrap(errors.KindDevice, "open", "capture stream already open", errors.ErrDeviceBusy)
	}

	if err := portaudio.Initialize(); err != nil {
		return errors.Wrap(errors.KindDevice, "open", "initialize audio host", errors.ErrDeviceInitFailed)
	}

	m.buffer = make([]int16, m.framesPerBlock)
	stream, err := portaudio.OpenDefaultStream(1, 0, float64(m.sampleRate), len(m.buffer), m.buffer)
	if err != nil {
		portaudio.Terminate()
		return errors.Wrap(errors.KindDevice, "open", "open default input stream", err)
	}
	if err := stream.Start(); err != nil {
		stream.Close()
		portaudio.Terminate()
		return errors.Wrap(errors.KindDevice, "open", "start input stream", err)
	}

	m.stream = stream
	m.opened = true
	return nil
}

func (m *MicrophoneSource) ReadNext() (Block, error) {
	m.mu.Lock()
	stream := m.stream
	m.mu.Unlock()

	if stream == nil {
		return nil, errors.New(errors.KindDevice, "read", "capture stream not open")
	}
	if err := stream.Read(); err != nil {
		return nil, errors.Wrap(errors.KindDevice, "read", "read capture block", err)
	}

	block := make(Block, len(m.buffer))
	copy(block, m.buffer)
	return block, nil
}

func (m *MicrophoneSource) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.opened {
		return nil
	}
	m.opened = false

	var firstErr error
	if err := m.stream.Stop(); err != nil {
		firstErr = err
	}
	if err := m.stream.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	m.stream = nil
	portaudio.Terminate()

	if firstErr != nil {
		return errors.Wrap(errors.KindDevice, "close", "close capture stream", firstErr)
	}
	return nil
}
