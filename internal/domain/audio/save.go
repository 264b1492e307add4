package audio

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"taskpilot-voice/internal/platform/errors"
)

// SaveDebugCopy writes a finalized container to dir for offline
// inspection and returns the file path. Used when save_user_audio is on.
func SaveDebugCopy(dir string, container []byte) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", errors.Wrap(errors.KindEncoder, "save", "create audio output dir", err)
	}
	name := fmt.Sprintf("utterance_%s_%s.wav",
		time.Now().Format("20060102_150405"), uuid.NewString()[:8])
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, container, 0o644); err != nil {
		return "", errors.Wrap(errors.KindEncoder, "save", "write audio file", err)
	}
	return path, nil
}
