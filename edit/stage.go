// Package edit composites the final deliverable: subtitle burn-in,
// then audio mux. Both merge steps degrade gracefully — a missing or
// failing optional track never loses the video.
package edit

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"autoshorts/config"
	"autoshorts/ffmpeg"
	"autoshorts/types"
)

const (
	subtitledName = "video_with_subtitle.mp4"
	finalName     = "final_shorts.mp4"
)

type Stage struct {
	cfg *config.Config
	enc *ffmpeg.Encoder
}

func NewStage(cfg *config.Config, enc *ffmpeg.Encoder) *Stage {
	return &Stage{cfg: cfg, enc: enc}
}

// Run produces final_shorts.mp4. The raw slideshow is required;
// subtitle and audio tracks are merged when present. With neither
// present the final artifact is a byte copy of the slideshow.
func (s *Stage) Run(ctx context.Context, rec *types.Record, dir string) error {
	if rec.VideoPath == "" || !fileUsable(rec.VideoPath) {
		return fmt.Errorf("no slideshow video to composite; run the video stage first")
	}

	current := rec.VideoPath

	if rec.SubtitlePath != "" && fileUsable(rec.SubtitlePath) {
		out := filepath.Join(dir, subtitledName)
		style := ffmpeg.SubtitleStyle{
			Font:         s.cfg.Subtitles.Font,
			FontSize:     s.cfg.Subtitles.FontSize,
			Outline:      s.cfg.Subtitles.Outline,
			Shadow:       s.cfg.Subtitles.Shadow,
			MarginBottom: s.cfg.Subtitles.MarginBottom,
		}
		if err := s.enc.BurnSubtitles(ctx, current, rec.SubtitlePath, style, out); err != nil {
			log.Printf("[edit] ⚠️ subtitle burn failed: %v — continuing without burned subtitles", err)
		} else {
			current = out
			log.Printf("[edit] ✅ subtitles burned: %s", out)
		}
	} else {
		log.Printf("[edit] no subtitle track — skipping burn-in")
	}

	final := filepath.Join(dir, finalName)
	if rec.AudioPath != "" && fileUsable(rec.AudioPath) {
		if err := s.enc.MuxAudio(ctx, current, rec.AudioPath, final); err != nil {
			log.Printf("[edit] ⚠️ audio mux failed: %v — continuing without narration", err)
			if err := copyFile(current, final); err != nil {
				return fmt.Errorf("copy video: %w", err)
			}
		} else {
			log.Printf("[edit] ✅ narration muxed")
		}
	} else {
		log.Printf("[edit] no audio track — copying video as-is")
		if err := copyFile(current, final); err != nil {
			return fmt.Errorf("copy video: %w", err)
		}
	}

	rec.FinalVideoPath = final
	if dur, err := s.enc.MediaDuration(ctx, final); err == nil {
		log.Printf("[edit] 🎉 final video ready: %s (%.1fs)", final, dur)
	} else {
		log.Printf("[edit] 🎉 final video ready: %s", final)
	}
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}

func fileUsable(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && fi.Size() > 0
}
