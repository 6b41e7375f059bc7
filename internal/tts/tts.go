package tts

import "context"

// Synthesizer renders a phrase to audio bytes. Implementations must honor
// ctx cancellation; a timeout is treated by callers as a synthesis failure,
// never as a fatal error.
type Synthesizer interface {
	Synthesize(ctx context.Context, text string, lang string) ([]byte, error)
}
