package visuals

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// Placeholder downloads a keyless placeholder image labeled with the
// prompt text. Network-dependent but credential-free.
type Placeholder struct {
	width  int
	height int
	client *http.Client
}

func NewPlaceholder(width, height int) *Placeholder {
	return &Placeholder{
		width:  width,
		height: height,
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

func (p *Placeholder) Name() string { return "placeholder" }

func (p *Placeholder) Fetch(ctx context.Context, prompt, dest string) error {
	label := strings.ReplaceAll(truncate(prompt, 40), " ", "+")
	url := fmt.Sprintf("https://via.placeholder.com/%dx%d.jpg?text=%s", p.width, p.height, label)
	if err := downloadImage(ctx, p.client, url, dest, 1); err != nil {
		return fmt.Errorf("placeholder download: %w", err)
	}
	return nil
}
