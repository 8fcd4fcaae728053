package subtitles

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	openai "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// Transcriber runs the narration through OpenAI's speech-to-text.
type Transcriber struct {
	client openai.Client
}

func NewTranscriber(apiKey string) *Transcriber {
	return &Transcriber{
		client: openai.NewClient(
			option.WithAPIKey(apiKey),
			option.WithRequestTimeout(60*time.Second),
		),
	}
}

// Transcribe returns the transcript text of the media file's audio
// track.
func (t *Transcriber) Transcribe(ctx context.Context, mediaPath, language string) (string, error) {
	f, err := os.Open(mediaPath)
	if err != nil {
		return "", fmt.Errorf("open media: %w", err)
	}
	defer f.Close()

	resp, err := t.client.Audio.Transcriptions.New(ctx, openai.AudioTranscriptionNewParams{
		File:     f,
		Model:    openai.AudioModelWhisper1,
		Language: openai.String(language),
	})
	if err != nil {
		return "", fmt.Errorf("transcription request: %w", err)
	}
	text := strings.TrimSpace(resp.Text)
	if text == "" {
		return "", fmt.Errorf("transcription returned no text")
	}
	return text, nil
}
