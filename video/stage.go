// Package video assembles the raw slideshow from the stage-produced
// images.
package video

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"autoshorts/config"
	"autoshorts/ffmpeg"
	"autoshorts/types"
)

const artifactName = "video_raw.mp4"

type Stage struct {
	cfg *config.Config
	enc *ffmpeg.Encoder
}

func NewStage(cfg *config.Config, enc *ffmpeg.Encoder) *Stage {
	return &Stage{cfg: cfg, enc: enc}
}

// Run renders the slideshow and records its path and derived duration.
// Images that vanished or are zero bytes are skipped; zero usable
// images is a hard abort, as is any encoder failure.
func (s *Stage) Run(ctx context.Context, rec *types.Record, dir string) error {
	if len(rec.ImagePaths) == 0 {
		return fmt.Errorf("record has no image paths; run the image stage first")
	}

	valid := make([]string, 0, len(rec.ImagePaths))
	for _, p := range rec.ImagePaths {
		fi, err := os.Stat(p)
		if err != nil || fi.Size() == 0 {
			log.Printf("[video] ⚠️ skipping unusable image %s", p)
			continue
		}
		valid = append(valid, p)
	}
	if len(valid) == 0 {
		return fmt.Errorf("none of the %d recorded images are usable", len(rec.ImagePaths))
	}

	log.Printf("[video] 🎬 assembling slideshow from %d image(s)...", len(valid))

	out := filepath.Join(dir, artifactName)
	spec := ffmpeg.SlideshowSpec{
		Width:       s.cfg.Video.Width,
		Height:      s.cfg.Video.Height,
		FPS:         s.cfg.Video.FPS,
		PerImageSec: s.cfg.Video.ImageDurationSec,
	}
	if err := s.enc.Slideshow(ctx, valid, spec, out); err != nil {
		return fmt.Errorf("assemble slideshow: %w", err)
	}

	rec.VideoPath = out
	rec.VideoDuration = float64(len(valid)) * s.cfg.Video.ImageDurationSec
	log.Printf("[video] ✅ slideshow ready: %s (%.0fs)", out, rec.VideoDuration)
	return nil
}
