// Package ffmpeg is the single adapter in front of the host's media
// tooling. Stages describe what they want encoded; only this package
// builds command lines.
package ffmpeg

import (
	"context"
	"fmt"
	"strings"
)

// Encoder wraps ffmpeg/ffprobe invocations behind one narrow surface.
type Encoder struct {
	run Runner
}

// NewEncoder returns an encoder backed by the real binaries. With
// verbose set, tool output streams through to the terminal.
func NewEncoder(verbose bool) *Encoder {
	return &Encoder{run: execRunner{verbose: verbose}}
}

// NewEncoderWith substitutes the runner; tests pass a recorder.
func NewEncoderWith(r Runner) *Encoder {
	return &Encoder{run: r}
}

// Available reports whether ffmpeg is installed on the host.
func (e *Encoder) Available() error {
	if err := e.run.Look("ffmpeg"); err != nil {
		return fmt.Errorf("ffmpeg not found on PATH: %w", err)
	}
	return nil
}

// SlideshowSpec describes geometry and pacing for a slideshow video.
type SlideshowSpec struct {
	Width       int
	Height      int
	FPS         int
	PerImageSec float64
}

// Slideshow renders each image for PerImageSec, letterboxed to the
// target resolution, concatenated in input order. A single image skips
// the concat step but gets the same scale/pad treatment.
func (e *Encoder) Slideshow(ctx context.Context, images []string, spec SlideshowSpec, out string) error {
	if len(images) == 0 {
		return fmt.Errorf("no images to assemble")
	}
	if err := e.Available(); err != nil {
		return err
	}

	args := []string{"-y"}
	for _, img := range images {
		args = append(args, "-loop", "1", "-t", fmt.Sprintf("%g", spec.PerImageSec), "-i", img)
	}

	parts := make([]string, 0, len(images))
	for i := range images {
		parts = append(parts, fmt.Sprintf(
			"[%d:v]scale=%d:%d:force_original_aspect_ratio=decrease,pad=%d:%d:(ow-iw)/2:(oh-ih)/2,setsar=1,fps=%d[v%d]",
			i, spec.Width, spec.Height, spec.Width, spec.Height, spec.FPS, i,
		))
	}

	var filter string
	if len(images) == 1 {
		filter = strings.TrimSuffix(parts[0], "[v0]") + "[vout]"
	} else {
		var tags strings.Builder
		for i := range images {
			fmt.Fprintf(&tags, "[v%d]", i)
		}
		filter = strings.Join(parts, ";") + ";" +
			tags.String() + fmt.Sprintf("concat=n=%d:v=1:a=0[vout]", len(images))
	}

	args = append(args,
		"-filter_complex", filter,
		"-map", "[vout]",
		"-c:v", "libx264",
		"-preset", "medium",
		"-crf", "23",
		"-pix_fmt", "yuv420p",
		out,
	)
	if err := e.run.Run(ctx, "ffmpeg", args...); err != nil {
		return fmt.Errorf("slideshow encode: %w", err)
	}
	return nil
}

// SubtitleStyle is the fixed burn-in style; centered at the bottom.
type SubtitleStyle struct {
	Font         string
	FontSize     int
	Outline      int
	Shadow       int
	MarginBottom int
}

// BurnSubtitles renders the SRT track into the video frames.
func (e *Encoder) BurnSubtitles(ctx context.Context, video, srt string, style SubtitleStyle, out string) error {
	if err := e.Available(); err != nil {
		return err
	}
	forceStyle := fmt.Sprintf(
		"FontName=%s,FontSize=%d,PrimaryColour=&Hffffff,OutlineColour=&H000000,Outline=%d,Shadow=%d,Alignment=2,MarginV=%d",
		style.Font, style.FontSize, style.Outline, style.Shadow, style.MarginBottom,
	)
	filter := fmt.Sprintf("subtitles=%s:force_style='%s'", escapeFilterPath(srt), forceStyle)
	err := e.run.Run(ctx, "ffmpeg",
		"-y",
		"-i", video,
		"-vf", filter,
		"-c:v", "libx264",
		"-preset", "fast",
		"-crf", "20",
		"-c:a", "copy",
		out,
	)
	if err != nil {
		return fmt.Errorf("subtitle burn: %w", err)
	}
	return nil
}

// MuxAudio pairs the video's picture track with the audio track,
// truncated to the shorter of the two. Video is stream-copied.
func (e *Encoder) MuxAudio(ctx context.Context, video, audio, out string) error {
	if err := e.Available(); err != nil {
		return err
	}
	err := e.run.Run(ctx, "ffmpeg",
		"-y",
		"-i", video,
		"-i", audio,
		"-c:v", "copy",
		"-c:a", "aac",
		"-b:a", "192k",
		"-shortest",
		"-map", "0:v:0",
		"-map", "1:a:0",
		out,
	)
	if err != nil {
		return fmt.Errorf("audio mux: %w", err)
	}
	return nil
}

// TextCard renders a single-frame card: centered text over a dark
// background. Used as an offline image fallback tier.
func (e *Encoder) TextCard(ctx context.Context, text string, width, height int, out string) error {
	if err := e.Available(); err != nil {
		return err
	}
	filter := fmt.Sprintf(
		"drawtext=text='%s':fontcolor=white:fontsize=44:x=(w-text_w)/2:y=(h-text_h)/2",
		escapeDrawText(text),
	)
	err := e.run.Run(ctx, "ffmpeg",
		"-y",
		"-f", "lavfi",
		"-i", fmt.Sprintf("color=c=0x101828:s=%dx%d:d=1", width, height),
		"-vf", filter,
		"-frames:v", "1",
		"-q:v", "2",
		out,
	)
	if err != nil {
		return fmt.Errorf("text card: %w", err)
	}
	return nil
}

// MediaDuration probes a media file and returns its duration in
// seconds.
func (e *Encoder) MediaDuration(ctx context.Context, path string) (float64, error) {
	if err := e.run.Look("ffprobe"); err != nil {
		return 0, fmt.Errorf("ffprobe not found on PATH: %w", err)
	}
	out, err := e.run.Output(ctx, "ffprobe",
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		path,
	)
	if err != nil {
		return 0, fmt.Errorf("probe %s: %w", path, err)
	}
	var dur float64
	if _, err := fmt.Sscanf(strings.TrimSpace(string(out)), "%f", &dur); err != nil {
		return 0, fmt.Errorf("parse duration of %s: %w", path, err)
	}
	return dur, nil
}

// escapeFilterPath escapes a path for use inside a filter argument.
func escapeFilterPath(path string) string {
	path = strings.ReplaceAll(path, "\\", "/")
	path = strings.ReplaceAll(path, ":", "\\:")
	return path
}

func escapeDrawText(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "'", "\\'")
	s = strings.ReplaceAll(s, ":", "\\:")
	s = strings.ReplaceAll(s, "%", "\\%")
	return s
}
