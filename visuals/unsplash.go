package visuals

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// Unsplash fetches a random stock photo matching the prompt. Portrait
// orientation, sized for the shorts frame. Requires an access key.
type Unsplash struct {
	accessKey string
	width     int
	height    int
	retries   int
	client    *http.Client
}

func NewUnsplash(accessKey string, width, height, retries int) *Unsplash {
	return &Unsplash{
		accessKey: accessKey,
		width:     width,
		height:    height,
		retries:   retries,
		client:    &http.Client{Timeout: 30 * time.Second},
	}
}

func (u *Unsplash) Name() string { return "unsplash" }

func (u *Unsplash) Fetch(ctx context.Context, prompt, dest string) error {
	imageURL, err := u.search(ctx, prompt)
	if err != nil {
		return fmt.Errorf("unsplash search: %w", err)
	}
	if err := downloadImage(ctx, u.client, imageURL, dest, u.retries); err != nil {
		return fmt.Errorf("unsplash download: %w", err)
	}
	return nil
}

func (u *Unsplash) search(ctx context.Context, query string) (string, error) {
	params := url.Values{}
	params.Set("query", query)
	params.Set("orientation", "portrait")
	params.Set("w", fmt.Sprintf("%d", u.width))
	params.Set("h", fmt.Sprintf("%d", u.height))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		"https://api.unsplash.com/photos/random?"+params.Encode(), nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Client-ID "+u.accessKey)

	resp, err := u.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("HTTP %d", resp.StatusCode)
	}

	var body struct {
		URLs struct {
			Regular string `json:"regular"`
		} `json:"urls"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", err
	}
	if body.URLs.Regular == "" {
		return "", fmt.Errorf("no image URL in response")
	}
	return body.URLs.Regular, nil
}
