package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"autoshorts/store"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the metadata record and artifact state",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := store.New(cfg.Pipeline.OutputDir)
		if err != nil {
			return err
		}
		rec, err := st.Load()
		if err != nil {
			return err
		}

		tw := table.NewWriter()
		tw.SetOutputMirror(os.Stdout)
		tw.SetStyle(table.StyleRounded)
		tw.SetCaption("record: %s", st.ArtifactPath("metadata.json"))
		tw.AppendHeader(table.Row{"Field", "Value", "Artifact"})

		tw.AppendRow(table.Row{"run_id", orDash(rec.RunID), ""})
		tw.AppendRow(table.Row{"topic", orDash(rec.Topic), ""})
		tw.AppendRow(table.Row{"image_prompts", fmt.Sprintf("%d", len(rec.ImagePrompts)), ""})
		tw.AppendRow(table.Row{"script", orDash(shorten(rec.Script, 40)), ""})
		tw.AppendRow(table.Row{"image_paths", fmt.Sprintf("%d", len(rec.ImagePaths)), artifactList(rec.ImagePaths)})
		tw.AppendRow(table.Row{"audio_path", orDash(rec.AudioPath), artifactState(rec.AudioPath)})
		tw.AppendRow(table.Row{"video_path", orDash(rec.VideoPath), artifactState(rec.VideoPath)})
		tw.AppendRow(table.Row{"video_duration", fmt.Sprintf("%.1fs", rec.VideoDuration), ""})
		tw.AppendRow(table.Row{"subtitle_path", orDash(rec.SubtitlePath), artifactState(rec.SubtitlePath)})
		tw.AppendRow(table.Row{"final_video_path", orDash(rec.FinalVideoPath), artifactState(rec.FinalVideoPath)})
		if rec.YouTubeURL != "" {
			tw.AppendRow(table.Row{"youtube_url", rec.YouTubeURL, ""})
		}
		tw.AppendRow(table.Row{"updated_at", orDash(rec.UpdatedAt), ""})
		tw.Render()
		return nil
	},
}

func orDash(s string) string {
	if s == "" {
		return "—"
	}
	return s
}

func shorten(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}

// artifactState renders existence and size for a recorded path.
func artifactState(path string) string {
	if path == "" {
		return ""
	}
	fi, err := os.Stat(path)
	if err != nil {
		return "missing"
	}
	if fi.Size() == 0 {
		return "empty"
	}
	return fmt.Sprintf("%.1f KB", float64(fi.Size())/1024)
}

func artifactList(paths []string) string {
	states := make([]string, 0, len(paths))
	for _, p := range paths {
		states = append(states, artifactState(p))
	}
	return strings.Join(states, ", ")
}
