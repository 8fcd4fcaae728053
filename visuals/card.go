package visuals

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
	"os"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"autoshorts/ffmpeg"
)

// FFmpegCard renders a text card through the encoder. Works offline,
// but still needs the ffmpeg binary on the host.
type FFmpegCard struct {
	enc    *ffmpeg.Encoder
	width  int
	height int
}

func NewFFmpegCard(enc *ffmpeg.Encoder, width, height int) *FFmpegCard {
	return &FFmpegCard{enc: enc, width: width, height: height}
}

func (c *FFmpegCard) Name() string { return "ffmpeg-card" }

func (c *FFmpegCard) Fetch(ctx context.Context, prompt, dest string) error {
	return c.enc.TextCard(ctx, cardLabel(prompt), c.width, c.height, dest)
}

// DrawCard is the last tier: an in-process render with no external
// dependency at all. Plain raster text over a dark background.
type DrawCard struct {
	width  int
	height int
}

func NewDrawCard(width, height int) *DrawCard {
	return &DrawCard{width: width, height: height}
}

func (c *DrawCard) Name() string { return "draw-card" }

func (c *DrawCard) Fetch(_ context.Context, prompt, dest string) error {
	img := image.NewRGBA(image.Rect(0, 0, c.width, c.height))
	bg := color.RGBA{R: 16, G: 24, B: 40, A: 255}
	draw.Draw(img, img.Bounds(), &image.Uniform{C: bg}, image.Point{}, draw.Src)

	face := basicfont.Face7x13
	lineHeight := face.Metrics().Height.Ceil() + 8
	lines := wrapText(cardLabel(prompt), 30)

	y := c.height/2 - (len(lines)-1)*lineHeight/2
	for _, line := range lines {
		w := font.MeasureString(face, line).Ceil()
		d := &font.Drawer{
			Dst:  img,
			Src:  image.NewUniform(color.White),
			Face: face,
			Dot:  fixed.P((c.width-w)/2, y),
		}
		d.DrawString(line)
		y += lineHeight
	}

	f, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("create card: %w", err)
	}
	defer f.Close()
	if err := jpeg.Encode(f, img, &jpeg.Options{Quality: 85}); err != nil {
		return fmt.Errorf("encode card: %w", err)
	}
	return nil
}

// cardLabel keeps the leading clause of a prompt; the style modifiers
// after the first comma make poor card text.
func cardLabel(prompt string) string {
	if i := strings.IndexByte(prompt, ','); i > 0 {
		prompt = prompt[:i]
	}
	return strings.TrimSpace(prompt)
}

func wrapText(s string, width int) []string {
	words := strings.Fields(s)
	if len(words) == 0 {
		return []string{s}
	}
	var lines []string
	line := words[0]
	for _, w := range words[1:] {
		if len(line)+1+len(w) > width {
			lines = append(lines, line)
			line = w
			continue
		}
		line += " " + w
	}
	return append(lines, line)
}
