package types

// Record is the metadata record shared by every pipeline stage. It is
// the single source of truth: each stage loads it, fills in its own
// fields, and persists it whole. All fields are optional; a stage
// validates the ones it needs at entry.
type Record struct {
	RunID          string   `json:"run_id,omitempty"`
	Topic          string   `json:"topic,omitempty"`
	ImagePrompts   []string `json:"image_prompts,omitempty"`
	Script         string   `json:"script,omitempty"`
	NumImages      int      `json:"num_images,omitempty"`
	ImagePaths     []string `json:"image_paths,omitempty"`
	AudioPath      string   `json:"audio_path,omitempty"`
	VideoPath      string   `json:"video_path,omitempty"`
	VideoDuration  float64  `json:"video_duration,omitempty"`
	SubtitlePath   string   `json:"subtitle_path,omitempty"`
	FinalVideoPath string   `json:"final_video_path,omitempty"`
	YouTubeID      string   `json:"youtube_id,omitempty"`
	YouTubeURL     string   `json:"youtube_url,omitempty"`
	UpdatedAt      string   `json:"updated_at,omitempty"`
}
