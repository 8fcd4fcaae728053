package audio

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"autoshorts/types"
)

type fakeSynth struct {
	name  string
	fail  bool
	empty bool
	calls int
}

func (s *fakeSynth) Name() string { return s.name }

func (s *fakeSynth) Synthesize(ctx context.Context, text, dest string) error {
	s.calls++
	if s.fail {
		return fmt.Errorf("%s: unavailable", s.name)
	}
	if s.empty {
		return os.WriteFile(dest, nil, 0o644)
	}
	return os.WriteFile(dest, []byte(s.name), 0o644)
}

func TestRunUsesFirstWorkingTier(t *testing.T) {
	dir := t.TempDir()
	premium := &fakeSynth{name: "premium"}
	free := &fakeSynth{name: "free"}

	rec := &types.Record{Script: "안녕하세요."}
	if err := NewStageWith(premium, free).Run(context.Background(), rec, dir); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if rec.AudioPath != filepath.Join(dir, "audio.mp3") {
		t.Errorf("audio_path = %q", rec.AudioPath)
	}
	if free.calls != 0 {
		t.Errorf("free tier called %d times despite premium success", free.calls)
	}
}

func TestRunFallsBackToFreeTier(t *testing.T) {
	dir := t.TempDir()
	premium := &fakeSynth{name: "premium", fail: true}
	free := &fakeSynth{name: "free"}

	rec := &types.Record{Script: "안녕하세요."}
	if err := NewStageWith(premium, free).Run(context.Background(), rec, dir); err != nil {
		t.Fatalf("Run: %v", err)
	}

	data, err := os.ReadFile(rec.AudioPath)
	if err != nil {
		t.Fatalf("read artifact: %v", err)
	}
	if string(data) != "free" {
		t.Errorf("artifact written by %q, want free tier", string(data))
	}
}

func TestRunEmptyOutputIsFailure(t *testing.T) {
	dir := t.TempDir()
	rec := &types.Record{Script: "안녕하세요."}
	st := NewStageWith(&fakeSynth{name: "premium", empty: true}, &fakeSynth{name: "free"})
	if err := st.Run(context.Background(), rec, dir); err != nil {
		t.Fatalf("Run: %v", err)
	}
	data, err := os.ReadFile(rec.AudioPath)
	if err != nil {
		t.Fatalf("read artifact: %v", err)
	}
	if string(data) != "free" {
		t.Errorf("zero-byte tier output must not count as success")
	}
}

func TestRunAllTiersFailIsSoft(t *testing.T) {
	dir := t.TempDir()
	rec := &types.Record{Script: "안녕하세요."}
	st := NewStageWith(&fakeSynth{name: "premium", fail: true}, &fakeSynth{name: "free", fail: true})

	if err := st.Run(context.Background(), rec, dir); err != nil {
		t.Fatalf("all tiers failing must not abort the pipeline: %v", err)
	}
	if rec.AudioPath != "" {
		t.Errorf("audio_path must stay empty, got %q", rec.AudioPath)
	}
	if _, err := os.Stat(filepath.Join(dir, "audio.mp3")); !os.IsNotExist(err) {
		t.Errorf("failed synthesis must leave no artifact")
	}
}

func TestRunEmptyScriptIsHardAbort(t *testing.T) {
	st := NewStageWith(&fakeSynth{name: "premium"})
	if err := st.Run(context.Background(), &types.Record{}, t.TempDir()); err == nil {
		t.Fatal("expected error for record without script")
	}
}
