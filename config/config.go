package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Pipeline  PipelineConfig  `yaml:"pipeline"`
	Video     VideoConfig     `yaml:"video"`
	Images    ImagesConfig    `yaml:"images"`
	Audio     AudioConfig     `yaml:"audio"`
	Subtitles SubtitlesConfig `yaml:"subtitles"`
	Research  ResearchConfig  `yaml:"research"`
	Upload    UploadConfig    `yaml:"upload"`
}

type PipelineConfig struct {
	OutputDir string `yaml:"output_dir"`
	Debug     bool   `yaml:"debug"`
}

type VideoConfig struct {
	Width            int     `yaml:"width"`
	Height           int     `yaml:"height"`
	FPS              int     `yaml:"fps"`
	ImageDurationSec float64 `yaml:"image_duration_sec"`
}

type ImagesConfig struct {
	Retries  int `yaml:"retries"`
	Parallel int `yaml:"parallel"`
}

type AudioConfig struct {
	VoiceID         string  `yaml:"voice_id"`
	ModelID         string  `yaml:"model_id"`
	Stability       float64 `yaml:"stability"`
	SimilarityBoost float64 `yaml:"similarity_boost"`
	Language        string  `yaml:"language"`
}

type SubtitlesConfig struct {
	Font                string  `yaml:"font"`
	FontSize            int     `yaml:"font_size"`
	Outline             int     `yaml:"outline"`
	Shadow              int     `yaml:"shadow"`
	MarginBottom        int     `yaml:"margin_bottom"`
	Language            string  `yaml:"language"`
	MinDurationSec      float64 `yaml:"min_duration_sec"`
	CharsPerSec         float64 `yaml:"chars_per_sec"`
	GapSec              float64 `yaml:"gap_sec"`
	FallbackDurationSec float64 `yaml:"fallback_duration_sec"`
}

type ResearchConfig struct {
	Subreddit string `yaml:"subreddit"`
	MaxPosts  int    `yaml:"max_posts"`
}

type UploadConfig struct {
	Visibility        string `yaml:"visibility"`
	CategoryID        string `yaml:"category_id"`
	DefaultLanguage   string `yaml:"default_language"`
	MadeForKids       bool   `yaml:"made_for_kids"`
	NotifySubscribers bool   `yaml:"notify_subscribers"`
}

// Default returns the configuration used when no config.yaml exists.
func Default() *Config {
	return &Config{
		Pipeline: PipelineConfig{OutputDir: "output"},
		Video: VideoConfig{
			Width:            1080,
			Height:           1920,
			FPS:              30,
			ImageDurationSec: 3,
		},
		Images: ImagesConfig{Retries: 3, Parallel: 3},
		Audio: AudioConfig{
			VoiceID:         "21m00Tcm4TlvDq8ikWAM",
			ModelID:         "eleven_multilingual_v2",
			Stability:       0.5,
			SimilarityBoost: 0.75,
			Language:        "ko",
		},
		Subtitles: SubtitlesConfig{
			Font:                "Malgun Gothic",
			FontSize:            24,
			Outline:             2,
			Shadow:              1,
			MarginBottom:        100,
			Language:            "ko",
			MinDurationSec:      2.0,
			CharsPerSec:         3.0,
			GapSec:              0.5,
			FallbackDurationSec: 15,
		},
		Research: ResearchConfig{MaxPosts: 25},
		Upload: UploadConfig{
			Visibility:      "private",
			CategoryID:      "22",
			DefaultLanguage: "ko",
		},
	}
}

// Load reads the YAML config at path, layered over Default. A missing
// file is not an error; the defaults alone are a valid configuration.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}
