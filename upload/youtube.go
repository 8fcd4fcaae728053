// Package upload pushes the final video to YouTube. Entirely optional:
// the pipeline is complete without it, and it only runs when the OAuth
// credentials are configured.
package upload

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"

	"autoshorts/config"
	"autoshorts/types"
)

type Uploader struct {
	cfg *config.Config
}

func New(cfg *config.Config) *Uploader {
	return &Uploader{cfg: cfg}
}

// Configured reports whether the YouTube OAuth credentials are set.
func Configured() bool {
	return os.Getenv("YOUTUBE_CLIENT_ID") != "" &&
		os.Getenv("YOUTUBE_CLIENT_SECRET") != "" &&
		os.Getenv("YOUTUBE_REFRESH_TOKEN") != ""
}

// Run uploads the final video and records its YouTube ID and URL.
func (u *Uploader) Run(ctx context.Context, rec *types.Record) error {
	if rec.FinalVideoPath == "" {
		return fmt.Errorf("no final video to upload; run the edit stage first")
	}
	f, err := os.Open(rec.FinalVideoPath)
	if err != nil {
		return fmt.Errorf("open final video: %w", err)
	}
	defer f.Close()

	log.Println("[upload] authenticating with YouTube...")
	client, err := u.oauthClient(ctx)
	if err != nil {
		return fmt.Errorf("youtube auth: %w", err)
	}
	svc, err := youtube.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return fmt.Errorf("youtube service: %w", err)
	}

	video := &youtube.Video{
		Snippet: &youtube.VideoSnippet{
			Title:                buildTitle(rec.Topic),
			Description:          rec.Script,
			Tags:                 buildTags(rec.Topic),
			CategoryId:           u.cfg.Upload.CategoryID,
			DefaultLanguage:      u.cfg.Upload.DefaultLanguage,
			DefaultAudioLanguage: u.cfg.Upload.DefaultLanguage,
		},
		Status: &youtube.VideoStatus{
			PrivacyStatus:           u.cfg.Upload.Visibility,
			SelfDeclaredMadeForKids: u.cfg.Upload.MadeForKids,
		},
	}

	if fi, err := f.Stat(); err == nil {
		log.Printf("[upload] uploading %q (%.1f MB)...", video.Snippet.Title, float64(fi.Size())/1024/1024)
	}

	uploaded, err := svc.Videos.Insert([]string{"snippet", "status"}, video).
		NotifySubscribers(u.cfg.Upload.NotifySubscribers).
		Media(f).Do()
	if err != nil {
		return fmt.Errorf("youtube upload: %w", err)
	}

	rec.YouTubeID = uploaded.Id
	rec.YouTubeURL = "https://www.youtube.com/watch?v=" + uploaded.Id
	log.Printf("[upload] ✅ uploaded: %s", rec.YouTubeURL)
	return nil
}

// oauthClient builds an HTTP client from the env refresh token. The
// token expiry is back-dated to force an immediate refresh.
func (u *Uploader) oauthClient(ctx context.Context) (*http.Client, error) {
	clientID := os.Getenv("YOUTUBE_CLIENT_ID")
	clientSecret := os.Getenv("YOUTUBE_CLIENT_SECRET")
	refreshToken := os.Getenv("YOUTUBE_REFRESH_TOKEN")
	if clientID == "" || clientSecret == "" || refreshToken == "" {
		return nil, fmt.Errorf("YOUTUBE_CLIENT_ID, YOUTUBE_CLIENT_SECRET, or YOUTUBE_REFRESH_TOKEN not set")
	}

	conf := &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		Endpoint:     google.Endpoint,
		Scopes:       []string{youtube.YoutubeUploadScope},
	}
	token := &oauth2.Token{
		RefreshToken: refreshToken,
		Expiry:       time.Now().Add(-time.Hour),
	}
	return oauth2.NewClient(ctx, conf.TokenSource(ctx, token)), nil
}

func buildTitle(topic string) string {
	if topic == "" {
		topic = "오늘의 쇼츠"
	}
	return topic + " #Shorts"
}

func buildTags(topic string) []string {
	tags := []string{"Shorts", "쇼츠"}
	for _, w := range strings.Fields(topic) {
		tags = append(tags, w)
	}
	return tags
}
