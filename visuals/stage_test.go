package visuals

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"autoshorts/types"
)

// fakeProvider writes a marker file on success so tests can tell which
// tier produced each artifact.
type fakeProvider struct {
	name string
	fail bool
	// failFor fails only prompts containing the substring.
	failFor string
}

func (p *fakeProvider) Name() string { return p.name }

func (p *fakeProvider) Fetch(ctx context.Context, prompt, dest string) error {
	if p.fail || (p.failFor != "" && strings.Contains(prompt, p.failFor)) {
		return fmt.Errorf("%s: unavailable", p.name)
	}
	return os.WriteFile(dest, []byte(p.name+":"+prompt), 0o644)
}

// emptyFileProvider claims success but leaves a zero-byte file.
type emptyFileProvider struct{}

func (emptyFileProvider) Name() string { return "empty" }

func (emptyFileProvider) Fetch(ctx context.Context, prompt, dest string) error {
	return os.WriteFile(dest, nil, 0o644)
}

func record(prompts ...string) *types.Record {
	return &types.Record{ImagePrompts: prompts}
}

func TestRunFetchesOnePerPrompt(t *testing.T) {
	dir := t.TempDir()
	st := NewStageWith(2, &fakeProvider{name: "primary"})

	rec := record("sunrise", "forest", "ocean")
	if err := st.Run(context.Background(), rec, dir); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if len(rec.ImagePaths) != 3 {
		t.Fatalf("got %d image paths, want 3", len(rec.ImagePaths))
	}
	for i, p := range rec.ImagePaths {
		want := filepath.Join(dir, fmt.Sprintf("image_%02d.jpg", i+1))
		if p != want {
			t.Errorf("path %d = %q, want %q", i, p, want)
		}
	}
}

func TestRunFallsThroughChain(t *testing.T) {
	dir := t.TempDir()
	st := NewStageWith(1,
		&fakeProvider{name: "primary", fail: true},
		&fakeProvider{name: "fallback"},
	)

	rec := record("sunrise")
	if err := st.Run(context.Background(), rec, dir); err != nil {
		t.Fatalf("Run: %v", err)
	}

	data, err := os.ReadFile(rec.ImagePaths[0])
	if err != nil {
		t.Fatalf("read artifact: %v", err)
	}
	if !strings.HasPrefix(string(data), "fallback:") {
		t.Errorf("artifact produced by %q, want fallback tier", string(data))
	}
}

func TestRunSkipsEmptyFileTier(t *testing.T) {
	dir := t.TempDir()
	st := NewStageWith(1, emptyFileProvider{}, &fakeProvider{name: "real"})

	rec := record("sunrise")
	if err := st.Run(context.Background(), rec, dir); err != nil {
		t.Fatalf("Run: %v", err)
	}
	fi, err := os.Stat(rec.ImagePaths[0])
	if err != nil || fi.Size() == 0 {
		t.Errorf("empty-file tier must not count as success")
	}
}

func TestRunOmitsFailedPromptKeepsOrder(t *testing.T) {
	dir := t.TempDir()
	st := NewStageWith(3, &fakeProvider{name: "primary", failFor: "forest"})

	rec := record("sunrise", "forest", "ocean")
	if err := st.Run(context.Background(), rec, dir); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if len(rec.ImagePaths) != 2 {
		t.Fatalf("got %d paths, want 2 (failed prompt omitted): %v", len(rec.ImagePaths), rec.ImagePaths)
	}
	if filepath.Base(rec.ImagePaths[0]) != "image_01.jpg" || filepath.Base(rec.ImagePaths[1]) != "image_03.jpg" {
		t.Errorf("surviving paths out of order: %v", rec.ImagePaths)
	}
	if _, err := os.Stat(filepath.Join(dir, "image_02.jpg")); !os.IsNotExist(err) {
		t.Errorf("failed prompt must leave no artifact behind")
	}
}

func TestRunErrorsWithoutPrompts(t *testing.T) {
	st := NewStageWith(1, &fakeProvider{name: "primary"})
	if err := st.Run(context.Background(), &types.Record{}, t.TempDir()); err == nil {
		t.Fatal("expected error for record without prompts")
	}
}

func TestRunErrorsWhenNothingProduced(t *testing.T) {
	st := NewStageWith(2, &fakeProvider{name: "primary", fail: true})
	rec := record("sunrise", "ocean")
	if err := st.Run(context.Background(), rec, t.TempDir()); err == nil {
		t.Fatal("expected error when every prompt fails")
	}
	if len(rec.ImagePaths) != 0 {
		t.Errorf("record must not list paths when nothing was produced: %v", rec.ImagePaths)
	}
}
