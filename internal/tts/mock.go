package tts

import (
	"context"
	"encoding/binary"
	"hash/fnv"
)

// MockSynthesizer produces deterministic pseudo-audio derived from the
// phrase, for environments without a speech renderer.
type MockSynthesizer struct{}

func (MockSynthesizer) Synthesize(ctx context.Context, text string, lang string) ([]byte, error) {
	h := fnv.New64a()
	_, _ = h.Write([]byte(lang))
	_, _ = h.Write([]byte(text))
	seed := h.Sum64()

	audio := make([]byte, 64)
	for i := 0; i < len(audio); i += 8 {
		binary.LittleEndian.PutUint64(audio[i:], seed)
		seed = seed*6364136223846793005 + 1442695040888963407
	}
	return audio, nil
}
