package visuals

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"autoshorts/config"
	"autoshorts/ffmpeg"
	"autoshorts/types"
)

// Stage produces one image per prompt in the record. Prompts are
// independent, so fetches fan out with bounded parallelism; slide
// order still follows prompt order.
type Stage struct {
	providers []Provider
	parallel  int
}

// NewStage builds the default provider chain. The stock-photo tier is
// only present when its credential is configured.
func NewStage(cfg *config.Config, enc *ffmpeg.Encoder) *Stage {
	w, h := cfg.Video.Width, cfg.Video.Height
	var chain []Provider
	if key := os.Getenv("UNSPLASH_ACCESS_KEY"); key != "" {
		chain = append(chain, NewUnsplash(key, w, h, cfg.Images.Retries))
	}
	chain = append(chain,
		NewPlaceholder(w, h),
		NewFFmpegCard(enc, w, h),
		NewDrawCard(w, h),
	)
	parallel := cfg.Images.Parallel
	if parallel <= 0 {
		parallel = 1
	}
	return &Stage{providers: chain, parallel: parallel}
}

// NewStageWith builds a stage from an explicit chain.
func NewStageWith(parallel int, providers ...Provider) *Stage {
	if parallel <= 0 {
		parallel = 1
	}
	return &Stage{providers: providers, parallel: parallel}
}

// Run fetches an image for every prompt and records the produced paths
// in prompt order. A prompt whose whole chain fails is omitted; the
// record is only updated after the full batch.
func (s *Stage) Run(ctx context.Context, rec *types.Record, dir string) error {
	prompts := rec.ImagePrompts
	if len(prompts) == 0 {
		return fmt.Errorf("record has no image prompts; run the prompt stage first")
	}

	log.Printf("[image] 🖼️ fetching %d image(s)...", len(prompts))

	results := make([]string, len(prompts))
	g := new(errgroup.Group)
	g.SetLimit(s.parallel)
	for i, prompt := range prompts {
		i, prompt := i, prompt
		g.Go(func() error {
			dest := filepath.Join(dir, fmt.Sprintf("image_%02d.jpg", i+1))
			results[i] = s.fetchOne(ctx, i+1, prompt, dest)
			return nil
		})
	}
	_ = g.Wait()

	paths := make([]string, 0, len(prompts))
	for _, p := range results {
		if p != "" {
			paths = append(paths, p)
		}
	}
	if len(paths) == 0 {
		return fmt.Errorf("no image could be produced for any of %d prompt(s)", len(prompts))
	}
	rec.ImagePaths = paths

	log.Printf("[image] ✅ %d/%d image(s) ready", len(paths), len(prompts))
	return nil
}

// fetchOne walks the provider chain and returns the artifact path, or
// "" when every tier failed. A provider that reports success but left
// an empty file is treated as failed.
func (s *Stage) fetchOne(ctx context.Context, idx int, prompt, dest string) string {
	for _, p := range s.providers {
		if err := p.Fetch(ctx, prompt, dest); err != nil {
			log.Printf("[image] ⚠️ %d: %s failed: %v", idx, p.Name(), err)
			continue
		}
		if fi, err := os.Stat(dest); err != nil || fi.Size() == 0 {
			log.Printf("[image] ⚠️ %d: %s produced an empty file", idx, p.Name())
			continue
		}
		log.Printf("[image] ✅ %d: %s → %s", idx, p.Name(), filepath.Base(dest))
		return dest
	}
	// A failed tier may leave a truncated file behind; a fully failed
	// prompt must leave no artifact at all.
	_ = os.Remove(dest)
	log.Printf("[image] ❌ %d: all providers failed for %q — omitting", idx, truncate(prompt, 50))
	return ""
}
