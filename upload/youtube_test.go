package upload

import (
	"context"
	"testing"

	"autoshorts/config"
	"autoshorts/types"
)

func TestConfiguredNeedsAllThreeCredentials(t *testing.T) {
	t.Setenv("YOUTUBE_CLIENT_ID", "id")
	t.Setenv("YOUTUBE_CLIENT_SECRET", "secret")
	t.Setenv("YOUTUBE_REFRESH_TOKEN", "")
	if Configured() {
		t.Error("Configured must be false with a missing refresh token")
	}
	t.Setenv("YOUTUBE_REFRESH_TOKEN", "token")
	if !Configured() {
		t.Error("Configured must be true with all three credentials set")
	}
}

func TestRunWithoutFinalVideoIsHardAbort(t *testing.T) {
	rec := &types.Record{}
	if err := New(config.Default()).Run(context.Background(), rec); err == nil {
		t.Fatal("expected error for record without a final video")
	}
}

func TestBuildTitle(t *testing.T) {
	if got := buildTitle("건강한 라이프스타일"); got != "건강한 라이프스타일 #Shorts" {
		t.Errorf("buildTitle = %q", got)
	}
	if got := buildTitle(""); got != "오늘의 쇼츠 #Shorts" {
		t.Errorf("buildTitle with empty topic = %q", got)
	}
}

func TestBuildTags(t *testing.T) {
	tags := buildTags("기술 트렌드")
	want := map[string]bool{"Shorts": true, "쇼츠": true, "기술": true, "트렌드": true}
	if len(tags) != len(want) {
		t.Fatalf("got %d tags, want %d: %v", len(tags), len(want), tags)
	}
	for _, tag := range tags {
		if !want[tag] {
			t.Errorf("unexpected tag %q", tag)
		}
	}
}
