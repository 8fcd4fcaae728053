// Package visuals acquires one image per prompt through an ordered
// provider chain: stock photo search, placeholder service, ffmpeg text
// card, in-process card render. The first provider that leaves a
// non-empty file behind wins.
package visuals

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/avast/retry-go/v4"
)

// Provider is one tier of the image fallback chain.
type Provider interface {
	Name() string
	Fetch(ctx context.Context, prompt, dest string) error
}

// downloadImage fetches a URL to dest, retrying transient failures. A
// response under 100 bytes is treated as an error page, not an image.
func downloadImage(ctx context.Context, client *http.Client, url, dest string, attempts int) error {
	if attempts <= 0 {
		attempts = 1
	}
	return retry.Do(
		func() error {
			req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
			if err != nil {
				return err
			}
			req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; autoshorts/1.0)")

			resp, err := client.Do(req)
			if err != nil {
				return err
			}
			defer resp.Body.Close()

			if resp.StatusCode != http.StatusOK {
				return fmt.Errorf("HTTP %d", resp.StatusCode)
			}
			data, err := io.ReadAll(resp.Body)
			if err != nil {
				return err
			}
			if len(data) < 100 {
				return fmt.Errorf("response too small (%d bytes)", len(data))
			}
			return os.WriteFile(dest, data, 0o644)
		},
		retry.Context(ctx),
		retry.Attempts(uint(attempts)),
		retry.Delay(2*time.Second),
		retry.LastErrorOnly(true),
	)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
