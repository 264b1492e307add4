package audio

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskpilot-voice/internal/platform/errors"
)

func TestContainerEncoder_HeaderRoundTrip(t *testing.T) {
	enc := NewContainerEncoder(16000)
	block := make(Block, 512)
	for i := range block {
		block[i] = int16(i - 256)
	}
	require.NoError(t, enc.Append(block))
	require.NoError(t, enc.Append(block))

	data, err := enc.Finalize()
	require.NoError(t, err)

	payloadLen := len(block) * 2 * 2
	assert.Len(t, data, 44+payloadLen)

	info, err := ParseContainer(data)
	require.NoError(t, err)

	assert.Equal(t, uint32(payloadLen), info.DataLength)
	assert.Equal(t, uint32(36+payloadLen), info.TotalSize)
	assert.Equal(t, uint16(1), info.Channels)
	assert.Equal(t, uint32(16000), info.SampleRate)
	assert.Equal(t, uint16(16), info.BitsPerWord)
	assert.Equal(t, uint32(16000*2), info.ByteRate)
	assert.Equal(t, uint16(2), info.BlockAlign)

	// payload survives untouched
	decoded := BlockFromBytesLE(data[44 : 44+len(block)*2])
	assert.Equal(t, block, decoded)
}

func TestContainerEncoder_EmptyPayload(t *testing.T) {
	enc := NewContainerEncoder(16000)
	data, err := enc.Finalize()
	require.NoError(t, err)
	assert.Len(t, data, 44)

	info, err := ParseContainer(data)
	require.NoError(t, err)
	assert.Equal(t, uint32(0), info.DataLength)
	assert.Equal(t, uint32(36), info.TotalSize)
}

func TestContainerEncoder_ClosedAfterFinalize(t *testing.T) {
	enc := NewContainerEncoder(16000)
	_, err := enc.Finalize()
	require.NoError(t, err)

	err = enc.Append(make(Block, 4))
	assert.ErrorIs(t, err, errors.ErrEncoderClosed)

	_, err = enc.Finalize()
	assert.ErrorIs(t, err, errors.ErrEncoderClosed)
}

func TestParseContainer_Rejects(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"too short", make([]byte, 10)},
		{"wrong magic", append([]byte("JUNK"), make([]byte, 40)...)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseContainer(tt.data)
			assert.Error(t, err)
		})
	}
}

func TestBlock_MaxAmplitude(t *testing.T) {
	tests := []struct {
		name     string
		block    Block
		expected int
	}{
		{"empty", Block{}, 0},
		{"positive peak", Block{10, 999, 40}, 999},
		{"negative peak", Block{-1200, 300}, 1200},
		{"int16 min", Block{-32768}, 32768},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.block.MaxAmplitude())
		})
	}
}
