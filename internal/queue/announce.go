package queue

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/smartq/backend/internal/models"
	"github.com/smartq/backend/internal/tts"
)

// Announcer renders a called entry to speech and hands the audio back to the
// service. It runs after CallNext has committed, off the service lock, so a
// slow or failing renderer never blocks or rolls back queue mutations.
type Announcer struct {
	Synth   tts.Synthesizer
	Lang    string
	Timeout time.Duration
	Logger  zerolog.Logger
}

func (a *Announcer) Announce(svc *Service, entry models.CalledEntry) {
	location := entry.Counter
	if location == "" {
		location = svc.Label()
	}
	phrase := BuildPhrase(entry.Number, entry.Name, location)

	timeout := a.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	audio, err := a.Synth.Synthesize(ctx, phrase, a.Lang)
	if err != nil {
		a.Logger.Warn().Err(err).Str("queue", svc.Name()).Int("Q_number", entry.Number).Msg("announcement synthesis failed")
		return
	}
	if !svc.AttachAudio(entry.Number, audio) {
		a.Logger.Debug().Str("queue", svc.Name()).Int("Q_number", entry.Number).Msg("announcement superseded before audio was ready")
	}
}

func BuildPhrase(number int, name string, location string) string {
	return fmt.Sprintf("คิวหมายเลข %d %s กรุณารอที่ %s", number, name, location)
}
