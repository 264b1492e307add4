// Package audio covers microphone capture and the PCM container format.
// Everything downstream assumes 16-bit little-endian mono samples.
package audio

// Block is one capture buffer of 16-bit PCM samples.
type Block []int16

// BytesLE serializes the block as little-endian PCM, the layout the
// container and the transcription gateway expect.
func (b Block) BytesLE() []byte {
	out := make([]byte, len(b)*2)
	for i, s := range b {
		out[i*2] = byte(s)
		out[i*2+1] = byte(s >> 8)
	}
	return out
}

// BlockFromBytesLE decodes little-endian PCM back into samples.
// A trailing odd byte is ignored.
func BlockFromBytesLE(data []byte) Block {
	n := len(data) / 2
	out := make(Block, n)
	for i := 0; i < n; i++ {
		out[i] = int16(data[i*2]) | (int16(data[i*2+1]) << 8)
	}
	return out
}

// MaxAmplitude returns the largest absolute sample value in the block.
func (b Block) MaxAmplitude() int {
	max := 0
	for _, s := range b {
		v := int(s)
		if v < 0 {
			v = -v
		}
		if v > max {
			max = v
		}
	}
	return max
}
