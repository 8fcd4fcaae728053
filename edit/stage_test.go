package edit

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"autoshorts/config"
	"autoshorts/ffmpeg"
	"autoshorts/types"
)

// fakeRunner records invocations and writes the output file named by
// the final argument, the way a successful ffmpeg run would.
type fakeRunner struct {
	calls  [][]string
	probes [][]string
	runErr error
}

func (f *fakeRunner) Look(name string) error { return nil }

func (f *fakeRunner) Run(ctx context.Context, name string, args ...string) error {
	f.calls = append(f.calls, append([]string{name}, args...))
	if f.runErr != nil {
		return f.runErr
	}
	return os.WriteFile(args[len(args)-1], []byte("encoded"), 0o644)
}

func (f *fakeRunner) Output(ctx context.Context, name string, args ...string) ([]byte, error) {
	f.probes = append(f.probes, append([]string{name}, args...))
	return []byte("9.0\n"), nil
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestRunBurnsAndMuxes(t *testing.T) {
	dir := t.TempDir()
	fr := &fakeRunner{}
	st := NewStage(config.Default(), ffmpeg.NewEncoderWith(fr))

	rec := &types.Record{
		VideoPath:    writeFile(t, dir, "video_raw.mp4", "raw"),
		AudioPath:    writeFile(t, dir, "audio.mp3", "mp3"),
		SubtitlePath: writeFile(t, dir, "subtitle.srt", "1\n"),
	}
	if err := st.Run(context.Background(), rec, dir); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if rec.FinalVideoPath != filepath.Join(dir, "final_shorts.mp4") {
		t.Errorf("final_video_path = %q", rec.FinalVideoPath)
	}
	if len(fr.calls) != 2 {
		t.Fatalf("got %d encoder calls, want burn then mux", len(fr.calls))
	}
	burn := strings.Join(fr.calls[0], " ")
	if !strings.Contains(burn, "subtitles=") {
		t.Errorf("first call is not the subtitle burn: %s", burn)
	}
	mux := strings.Join(fr.calls[1], " ")
	if !strings.Contains(mux, "-shortest") || !strings.Contains(mux, "video_with_subtitle.mp4") {
		t.Errorf("second call must mux audio over the subtitled video: %s", mux)
	}
	if len(fr.probes) != 1 || !strings.Contains(strings.Join(fr.probes[0], " "), "final_shorts.mp4") {
		t.Errorf("final artifact must be probed for its duration: %v", fr.probes)
	}
}

func TestRunWithoutTracksCopiesVideo(t *testing.T) {
	dir := t.TempDir()
	fr := &fakeRunner{}
	st := NewStage(config.Default(), ffmpeg.NewEncoderWith(fr))

	rec := &types.Record{VideoPath: writeFile(t, dir, "video_raw.mp4", "raw bytes")}
	if err := st.Run(context.Background(), rec, dir); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if len(fr.calls) != 0 {
		t.Errorf("no encoder call expected without tracks, got %v", fr.calls)
	}
	data, err := os.ReadFile(rec.FinalVideoPath)
	if err != nil {
		t.Fatalf("read final: %v", err)
	}
	if string(data) != "raw bytes" {
		t.Errorf("final must be a byte copy of the slideshow, got %q", string(data))
	}
}

func TestRunBurnFailureKeepsUnburnedVideo(t *testing.T) {
	dir := t.TempDir()
	fr := &fakeRunner{runErr: fmt.Errorf("boom")}
	st := NewStage(config.Default(), ffmpeg.NewEncoderWith(fr))

	rec := &types.Record{
		VideoPath:    writeFile(t, dir, "video_raw.mp4", "raw bytes"),
		SubtitlePath: writeFile(t, dir, "subtitle.srt", "1\n"),
	}
	if err := st.Run(context.Background(), rec, dir); err != nil {
		t.Fatalf("burn failure must not abort: %v", err)
	}

	data, err := os.ReadFile(rec.FinalVideoPath)
	if err != nil {
		t.Fatalf("read final: %v", err)
	}
	if string(data) != "raw bytes" {
		t.Errorf("final must fall back to the unburned slideshow, got %q", string(data))
	}
}

func TestRunMuxFailureFallsBackToCopy(t *testing.T) {
	dir := t.TempDir()
	fr := &fakeRunner{runErr: fmt.Errorf("boom")}
	st := NewStage(config.Default(), ffmpeg.NewEncoderWith(fr))

	rec := &types.Record{
		VideoPath: writeFile(t, dir, "video_raw.mp4", "raw bytes"),
		AudioPath: writeFile(t, dir, "audio.mp3", "mp3"),
	}
	if err := st.Run(context.Background(), rec, dir); err != nil {
		t.Fatalf("mux failure must not abort: %v", err)
	}
	data, err := os.ReadFile(rec.FinalVideoPath)
	if err != nil {
		t.Fatalf("read final: %v", err)
	}
	if string(data) != "raw bytes" {
		t.Errorf("final must fall back to the silent video, got %q", string(data))
	}
}

func TestRunMissingVideoIsHardAbort(t *testing.T) {
	st := NewStage(config.Default(), ffmpeg.NewEncoderWith(&fakeRunner{}))
	if err := st.Run(context.Background(), &types.Record{}, t.TempDir()); err == nil {
		t.Fatal("expected error for record without video")
	}
	rec := &types.Record{VideoPath: filepath.Join(t.TempDir(), "gone.mp4")}
	if err := st.Run(context.Background(), rec, t.TempDir()); err == nil {
		t.Fatal("expected error for vanished video artifact")
	}
}
