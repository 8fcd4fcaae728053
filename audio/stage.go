package audio

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"autoshorts/config"
	"autoshorts/types"
)

const artifactName = "audio.mp3"

// Stage synthesizes narration for the script through the tier chain.
type Stage struct {
	chain []Synthesizer
}

// NewStage builds the default chain: premium tier first when its
// credential is set, then the free tier.
func NewStage(cfg *config.Config) *Stage {
	var chain []Synthesizer
	if key := os.Getenv("ELEVENLABS_API_KEY"); key != "" {
		chain = append(chain, NewElevenLabs(
			key,
			cfg.Audio.VoiceID,
			cfg.Audio.ModelID,
			cfg.Audio.Stability,
			cfg.Audio.SimilarityBoost,
		))
	}
	chain = append(chain, NewGoogleTranslate(cfg.Audio.Language))
	return &Stage{chain: chain}
}

// NewStageWith builds a stage from an explicit chain.
func NewStageWith(chain ...Synthesizer) *Stage {
	return &Stage{chain: chain}
}

// Run writes audio.mp3 and records its path. An empty script is a hard
// abort; every synthesis tier failing is not — the pipeline continues
// without narration.
func (s *Stage) Run(ctx context.Context, rec *types.Record, dir string) error {
	if rec.Script == "" {
		return fmt.Errorf("record has no script; run the prompt stage first")
	}

	dest := filepath.Join(dir, artifactName)
	log.Printf("[audio] 🔊 synthesizing narration (%d chars)...", len([]rune(rec.Script)))

	for _, synth := range s.chain {
		if err := synth.Synthesize(ctx, rec.Script, dest); err != nil {
			log.Printf("[audio] ⚠️ %s failed: %v", synth.Name(), err)
			continue
		}
		if fi, err := os.Stat(dest); err != nil || fi.Size() == 0 {
			log.Printf("[audio] ⚠️ %s produced an empty file", synth.Name())
			continue
		}
		rec.AudioPath = dest
		log.Printf("[audio] ✅ narration ready (%s): %s", synth.Name(), dest)
		return nil
	}

	_ = os.Remove(dest)
	log.Printf("[audio] ⚠️ every TTS tier failed — continuing without narration")
	return nil
}
