// Package audio narrates the script. Two synthesis tiers: the paid
// ElevenLabs API when a credential is configured, then the keyless
// Google Translate TTS endpoint. Missing narration is a soft failure;
// the pipeline ships a silent video rather than none.
package audio

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/avast/retry-go/v4"
)

// Synthesizer is one tier of the TTS fallback chain.
type Synthesizer interface {
	Name() string
	Synthesize(ctx context.Context, text, dest string) error
}

// ElevenLabs calls the premium TTS API.
type ElevenLabs struct {
	apiKey          string
	voiceID         string
	modelID         string
	stability       float64
	similarityBoost float64
	client          *http.Client
}

func NewElevenLabs(apiKey, voiceID, modelID string, stability, similarityBoost float64) *ElevenLabs {
	return &ElevenLabs{
		apiKey:          apiKey,
		voiceID:         voiceID,
		modelID:         modelID,
		stability:       stability,
		similarityBoost: similarityBoost,
		client:          &http.Client{Timeout: 60 * time.Second},
	}
}

func (e *ElevenLabs) Name() string { return "elevenlabs" }

func (e *ElevenLabs) Synthesize(ctx context.Context, text, dest string) error {
	payload := map[string]any{
		"text":     text,
		"model_id": e.modelID,
		"voice_settings": map[string]any{
			"stability":        e.stability,
			"similarity_boost": e.similarityBoost,
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		"https://api.elevenlabs.io/v1/text-to-speech/"+e.voiceID, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "audio/mpeg")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("xi-api-key", e.apiKey)

	resp, err := e.client.Do(req)
	if err != nil {
		return fmt.Errorf("elevenlabs request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 300))
		return fmt.Errorf("elevenlabs HTTP %d: %s", resp.StatusCode, bytes.TrimSpace(msg))
	}

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if len(audio) == 0 {
		return fmt.Errorf("elevenlabs returned no audio")
	}
	return os.WriteFile(dest, audio, 0o644)
}

// GoogleTranslate uses the public translate_tts endpoint — the same
// one the gTTS tooling wraps. No credential, best-effort quality.
type GoogleTranslate struct {
	lang   string
	client *http.Client
}

func NewGoogleTranslate(lang string) *GoogleTranslate {
	if lang == "" {
		lang = "ko"
	}
	return &GoogleTranslate{
		lang:   lang,
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

func (g *GoogleTranslate) Name() string { return "gtts" }

func (g *GoogleTranslate) Synthesize(ctx context.Context, text, dest string) error {
	params := url.Values{}
	params.Set("ie", "UTF-8")
	params.Set("client", "tw-ob")
	params.Set("tl", g.lang)
	params.Set("q", text)
	reqURL := "https://translate.google.com/translate_tts?" + params.Encode()

	return retry.Do(
		func() error {
			req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
			if err != nil {
				return err
			}
			req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; autoshorts/1.0)")

			resp, err := g.client.Do(req)
			if err != nil {
				return err
			}
			defer resp.Body.Close()

			if resp.StatusCode != http.StatusOK {
				return fmt.Errorf("HTTP %d", resp.StatusCode)
			}
			audio, err := io.ReadAll(resp.Body)
			if err != nil {
				return err
			}
			if len(audio) < 100 {
				return fmt.Errorf("response too small (%d bytes)", len(audio))
			}
			return os.WriteFile(dest, audio, 0o644)
		},
		retry.Context(ctx),
		retry.Attempts(3),
		retry.Delay(2*time.Second),
		retry.LastErrorOnly(true),
	)
}
