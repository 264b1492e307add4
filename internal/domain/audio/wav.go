package audio

import (
	"bytes"
	"encoding/binary"

	"taskpilot-voice/internal/platform/errors"
)

const (
	headerSize    = 44
	pcmFormat     = 1
	bitsPerSample = 16
)

// ContainerEncoder accumulates PCM blocks and produces a complete
// RIFF/WAVE file on Finalize. An encoder is single-use: once finalized
// every further call fails with ErrEncoderClosed.
type ContainerEncoder struct {
	sampleRate int
	channels   int
	data       bytes.Buffer
	closed     bool
}

func NewContainerEncoder(sampleRate int) *ContainerEncoder {
	return &ContainerEncoder{
		sampleRate: sampleRate,
		channels:   1,
	}
}

// Append adds one block of samples to the pending payload.
func (e *ContainerEncoder) Append(block Block) error {
	if e.closed {
		return errors.Wrap(errors.KindEncoder, "append", "encoder finalized", errors.ErrEncoderClosed)
	}
	e.data.Write(block.BytesLE())
	return nil
}

// PayloadBytes reports how many payload bytes are pending.
func (e *ContainerEncoder) PayloadBytes() int {
	return e.data.Len()
}

// Finalize writes the 44-byte header followed by the payload and
// closes the encoder. An empty payload still yields a valid container.
func (e *ContainerEncoder) Finalize() ([]byte, error) {
	if e.closed {
		return nil, errors.Wrap(errors.KindEncoder, "finalize", "encoder finalized", errors.ErrEncoderClosed)
	}
	e.closed = true

	dataLen := e.data.Len()
	byteRate := e.sampleRate * e.channels * bitsPerSample / 8
	blockAlign := e.channels * bitsPerSample / 8

	out := make([]byte, 0, headerSize+dataLen)
	buf := bytes.NewBuffer(out)

	buf.WriteString("RIFF")
	binary.Write(buf, binary.LittleEndian, uint32(36+dataLen))
	buf.WriteString("WAVE")

	buf.WriteString("fmt ")
	binary.Write(buf, binary.LittleEndian, uint32(16))
	binary.Write(buf, binary.LittleEndian, uint16(pcmFormat))
	binary.Write(buf, binary.LittleEndian, uint16(e.channels))
	binary.Write(buf, binary.LittleEndian, uint32(e.sampleRate))
	binary.Write(buf, binary.LittleEndian, uint32(byteRate))
	binary.Write(buf, binary.LittleEndian, uint16(blockAlign))
	binary.Write(buf, binary.LittleEndian, uint16(bitsPerSample))

	buf.WriteString("data")
	binary.Write(buf, binary.LittleEndian, uint32(dataLen))
	buf.Write(e.data.Bytes())

	return buf.Bytes(), nil
}

// ContainerInfo is the parsed view of a WAVE header.
type ContainerInfo struct {
	TotalSize   uint32
	Format      uint16
	Channels    uint16
	SampleRate  uint32
	ByteRate    uint32
	BlockAlign  uint16
	BitsPerWord uint16
	DataLength  uint32
}

// ParseContainer reads the fixed 44-byte header layout this encoder
// emits. It rejects anything that is not RIFF/WAVE PCM.
func ParseContainer(data []byte) (*ContainerInfo, error) {
	if len(data) < headerSize {
		return nil, errors.New(errors.KindEncoder, "parse", "container shorter than header")
	}
	if string(data[0:4]) != "RIFF" || string(data[8:12]) != "WAVE" {
		return nil, errors.New(errors.KindEncoder, "parse", "not a RIFF/WAVE container")
	}
	if string(data[12:16]) != "fmt " || string(data[36:40]) != "data" {
		return nil, errors.New(errors.KindEncoder, "parse", "unexpected chunk layout")
	}

	le := binary.LittleEndian
	info := &ContainerInfo{
		TotalSize:   le.Uint32(data[4:8]),
		Format:      le.Uint16(data[20:22]),
		Channels:    le.Uint16(data[22:24]),
		SampleRate:  le.Uint32(data[24:28]),
		ByteRate:    le.Uint32(data[28:32]),
		BlockAlign:  le.Uint16(data[32:34]),
		BitsPerWord: le.Uint16(data[34:36]),
		DataLength:  le.Uint32(data[40:44]),
	}
	if info.Format != pcmFormat {
		return nil, errors.New(errors.KindEncoder, "parse", "container is not linear PCM")
	}
	return info, nil
}
