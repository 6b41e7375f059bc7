package tts

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"
)

type HTTPSynthesizer struct {
	BaseURL string
	Client  *http.Client
}

type synthesizeRequest struct {
	Text string `json:"text"`
	Lang string `json:"lang"`
}

func (s HTTPSynthesizer) Synthesize(ctx context.Context, text string, lang string) ([]byte, error) {
	if s.Client == nil {
		s.Client = &http.Client{Timeout: 15 * time.Second}
	}

	b, _ := json.Marshal(synthesizeRequest{Text: text, Lang: lang})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.BaseURL+"/synthesize", bytes.NewBuffer(b))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, errors.New("tts service error")
	}

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if len(audio) == 0 {
		return nil, errors.New("tts service returned empty audio")
	}
	return audio, nil
}
