package subtitles

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"autoshorts/config"
	"autoshorts/types"
)

const artifactName = "subtitle.srt"

// Stage writes the subtitle track. Given a non-empty script this stage
// always succeeds: the transcription tier is optional and any of its
// failures falls back to script timing.
type Stage struct {
	cfg         *config.Config
	transcriber *Transcriber // nil when no credential is configured
}

func NewStage(cfg *config.Config) *Stage {
	s := &Stage{cfg: cfg}
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		s.transcriber = NewTranscriber(key)
	}
	return s
}

// NewStageWith allows injecting the transcriber (or nil) in tests.
func NewStageWith(cfg *config.Config, t *Transcriber) *Stage {
	return &Stage{cfg: cfg, transcriber: t}
}

func (s *Stage) Run(ctx context.Context, rec *types.Record, dir string) error {
	if rec.Script == "" {
		return fmt.Errorf("record has no script; run the prompt stage first")
	}

	source := rec.Script
	if s.transcriber != nil && rec.AudioPath != "" && fileUsable(rec.AudioPath) {
		log.Printf("[subtitle] 🎤 transcribing narration...")
		text, err := s.transcriber.Transcribe(ctx, rec.AudioPath, s.cfg.Subtitles.Language)
		if err != nil {
			log.Printf("[subtitle] ⚠️ transcription failed: %v — falling back to script timing", err)
		} else {
			source = text
			log.Printf("[subtitle] ✅ transcript ready (%d chars)", len([]rune(text)))
		}
	}

	total := rec.VideoDuration
	if total <= 0 {
		total = s.cfg.Subtitles.FallbackDurationSec
	}

	cues := BuildCues(source, total, Timing{
		MinDurationSec: s.cfg.Subtitles.MinDurationSec,
		CharsPerSec:    s.cfg.Subtitles.CharsPerSec,
		GapSec:         s.cfg.Subtitles.GapSec,
	})

	path := filepath.Join(dir, artifactName)
	if err := WriteSRT(path, cues); err != nil {
		return err
	}
	rec.SubtitlePath = path
	log.Printf("[subtitle] ✅ %d cue(s) written: %s", len(cues), path)
	return nil
}

func fileUsable(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && fi.Size() > 0
}
