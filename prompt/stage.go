// Package prompt seeds the metadata record from the bundled topic
// catalog.
package prompt

import (
	"context"
	"log"
	"math/rand"
	"strings"
	"time"

	"autoshorts/types"
)

const imagesPerTopic = 3

// Stage selects a topic and writes the script and image prompts into
// the record. Deterministic given a fixed seed and a matching hint.
type Stage struct {
	rng *rand.Rand
}

func NewStage() *Stage {
	return &Stage{rng: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// NewStageWithSeed fixes the random choice for reproducible runs.
func NewStageWithSeed(seed int64) *Stage {
	return &Stage{rng: rand.New(rand.NewSource(seed))}
}

// Run picks the template whose topic name contains the hint
// (case-insensitive); with no hint or no match the choice is uniform
// over the catalog.
func (s *Stage) Run(_ context.Context, rec *types.Record, hint string) error {
	tpl := s.choose(hint)

	prompts := tpl.ImagePrompts
	if len(prompts) > imagesPerTopic {
		prompts = prompts[:imagesPerTopic]
	}

	rec.Topic = tpl.Topic
	rec.ImagePrompts = append([]string(nil), prompts...)
	rec.Script = tpl.Script
	rec.NumImages = len(rec.ImagePrompts)

	log.Printf("[prompt] ✅ topic: %s (%d prompts, %d-char script)",
		rec.Topic, rec.NumImages, len([]rune(rec.Script)))
	return nil
}

func (s *Stage) choose(hint string) Template {
	if h := strings.ToLower(strings.TrimSpace(hint)); h != "" {
		for _, t := range Catalog {
			if strings.Contains(strings.ToLower(t.Topic), h) {
				return t
			}
		}
		log.Printf("[prompt] no topic matches hint %q — choosing at random", hint)
	}
	return Catalog[s.rng.Intn(len(Catalog))]
}
