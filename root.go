package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"autoshorts/audio"
	"autoshorts/config"
	"autoshorts/edit"
	"autoshorts/ffmpeg"
	"autoshorts/prompt"
	"autoshorts/research"
	"autoshorts/store"
	"autoshorts/subtitles"
	"autoshorts/types"
	"autoshorts/upload"
	"autoshorts/video"
	"autoshorts/visuals"
)

var (
	cfgPath   string
	outDir    string
	topicFlag string

	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:           "autoshorts",
	Short:         "Automated short-form vertical video pipeline",
	Long:          "Generates a topic script, acquires images, synthesizes narration,\nassembles a slideshow, and composites subtitles and audio into a final\nshorts video. Stages share state only through output/metadata.json, so\neach can be re-run on its own.",
	SilenceUsage:  true,
	SilenceErrors: false,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(cfgPath)
		if err != nil {
			return err
		}
		if outDir != "" {
			cfg.Pipeline.OutputDir = outDir
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "config.yaml", "config file path")
	rootCmd.PersistentFlags().StringVar(&outDir, "out", "", "output directory (overrides config)")
	rootCmd.PersistentFlags().StringVar(&topicFlag, "topic", "", "topic hint for the prompt stage")

	rootCmd.AddCommand(
		runCmd,
		promptCmd,
		imageCmd,
		audioCmd,
		videoCmd,
		subtitleCmd,
		editCmd,
		uploadCmd,
		statusCmd,
	)
}

// stageFunc mutates the record; the caller owns load and save.
type stageFunc func(ctx context.Context, rec *types.Record, dir string) error

// runStage is the one place the load → mutate → save cycle happens:
// the record is read at stage entry and persisted whole at stage exit.
// A failed stage writes nothing.
func runStage(name string, fn stageFunc) error {
	st, err := store.New(cfg.Pipeline.OutputDir)
	if err != nil {
		return err
	}
	rec, err := st.Load()
	if err != nil {
		return err
	}
	if rec.RunID == "" {
		rec.RunID = uuid.NewString()[:8]
	}

	if err := fn(context.Background(), rec, st.Dir()); err != nil {
		return fmt.Errorf("%s stage: %w", name, err)
	}

	rec.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
	return st.Save(rec)
}

func encoder() *ffmpeg.Encoder {
	return ffmpeg.NewEncoder(cfg.Pipeline.Debug)
}

// resolveTopicHint prefers the explicit flag/env hint, then the
// optional research tier. An empty hint is fine — the prompt stage
// picks a random topic.
func resolveTopicHint(ctx context.Context) string {
	if topicFlag != "" {
		return topicFlag
	}
	if hint := os.Getenv("TOPIC"); hint != "" {
		return hint
	}
	if cfg.Research.Subreddit != "" {
		rctx, cancel := context.WithTimeout(ctx, 15*time.Second)
		defer cancel()
		hint, err := research.TopicHint(rctx, cfg.Research.Subreddit, cfg.Research.MaxPosts)
		if err != nil {
			log.Printf("[prompt] ⚠️ topic research failed: %v — choosing from catalog", err)
			return ""
		}
		log.Printf("[prompt] trending hint from r/%s: %q", cfg.Research.Subreddit, hint)
		return hint
	}
	return ""
}

var promptCmd = &cobra.Command{
	Use:   "prompt",
	Short: "Select a topic and write script + image prompts",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runStage("prompt", func(ctx context.Context, rec *types.Record, dir string) error {
			return prompt.NewStage().Run(ctx, rec, resolveTopicHint(ctx))
		})
	},
}

var imageCmd = &cobra.Command{
	Use:   "image",
	Short: "Acquire one image per prompt",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runStage("image", func(ctx context.Context, rec *types.Record, dir string) error {
			return visuals.NewStage(cfg, encoder()).Run(ctx, rec, dir)
		})
	},
}

var audioCmd = &cobra.Command{
	Use:   "audio",
	Short: "Synthesize narration for the script",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runStage("audio", func(ctx context.Context, rec *types.Record, dir string) error {
			return audio.NewStage(cfg).Run(ctx, rec, dir)
		})
	},
}

var videoCmd = &cobra.Command{
	Use:   "video",
	Short: "Assemble the raw slideshow video",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runStage("video", func(ctx context.Context, rec *types.Record, dir string) error {
			return video.NewStage(cfg, encoder()).Run(ctx, rec, dir)
		})
	},
}

var subtitleCmd = &cobra.Command{
	Use:   "subtitle",
	Short: "Generate the SRT subtitle track",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runStage("subtitle", func(ctx context.Context, rec *types.Record, dir string) error {
			return subtitles.NewStage(cfg).Run(ctx, rec, dir)
		})
	},
}

var editCmd = &cobra.Command{
	Use:   "edit",
	Short: "Composite subtitles and audio into the final video",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runStage("edit", func(ctx context.Context, rec *types.Record, dir string) error {
			return edit.NewStage(cfg, encoder()).Run(ctx, rec, dir)
		})
	},
}

var uploadCmd = &cobra.Command{
	Use:   "upload",
	Short: "Upload the final video to YouTube",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runStage("upload", func(ctx context.Context, rec *types.Record, dir string) error {
			return upload.New(cfg).Run(ctx, rec)
		})
	},
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the full pipeline",
	RunE: func(cmd *cobra.Command, args []string) error {
		log.Printf("🎬 autoshorts pipeline starting — output: %s", cfg.Pipeline.OutputDir)

		stages := []struct {
			name string
			fn   stageFunc
		}{
			{"prompt", func(ctx context.Context, rec *types.Record, dir string) error {
				return prompt.NewStage().Run(ctx, rec, resolveTopicHint(ctx))
			}},
			{"image", func(ctx context.Context, rec *types.Record, dir string) error {
				return visuals.NewStage(cfg, encoder()).Run(ctx, rec, dir)
			}},
			{"audio", func(ctx context.Context, rec *types.Record, dir string) error {
				return audio.NewStage(cfg).Run(ctx, rec, dir)
			}},
			{"video", func(ctx context.Context, rec *types.Record, dir string) error {
				return video.NewStage(cfg, encoder()).Run(ctx, rec, dir)
			}},
			{"subtitle", func(ctx context.Context, rec *types.Record, dir string) error {
				return subtitles.NewStage(cfg).Run(ctx, rec, dir)
			}},
			{"edit", func(ctx context.Context, rec *types.Record, dir string) error {
				return edit.NewStage(cfg, encoder()).Run(ctx, rec, dir)
			}},
		}

		for _, s := range stages {
			log.Printf("━━━ stage: %s ━━━", s.name)
			if err := runStage(s.name, s.fn); err != nil {
				return err
			}
		}

		if upload.Configured() {
			log.Printf("━━━ stage: upload ━━━")
			if err := runStage("upload", func(ctx context.Context, rec *types.Record, dir string) error {
				return upload.New(cfg).Run(ctx, rec)
			}); err != nil {
				log.Printf("⚠️ upload failed: %v — final video is still on disk", err)
			}
		}

		log.Printf("✅ pipeline complete")
		return nil
	},
}
