// Package subtitles produces the SRT track. The primary timing source
// is the script itself; when a speech-to-text credential is configured
// the transcript of the narration audio replaces the script text.
package subtitles

import (
	"fmt"
	"os"
	"strings"
)

// Cue is one timed subtitle entry.
type Cue struct {
	Index int
	Start float64
	End   float64
	Text  string
}

// Timing holds the sentence-timing constants.
type Timing struct {
	MinDurationSec float64 // floor for very short sentences
	CharsPerSec    float64 // reading speed estimate
	GapSec         float64 // silence between consecutive cues
}

// SplitSentences breaks text on period characters, keeping the period
// with its sentence and dropping empty fragments. Text without a
// single usable sentence is returned whole.
func SplitSentences(text string) []string {
	var out []string
	rest := text
	for {
		i := strings.IndexByte(rest, '.')
		if i < 0 {
			if s := strings.TrimSpace(rest); s != "" {
				out = append(out, s)
			}
			break
		}
		if s := strings.TrimSpace(rest[:i+1]); s != "" && s != "." {
			out = append(out, s)
		}
		rest = rest[i+1:]
	}
	if len(out) == 0 {
		return []string{strings.TrimSpace(text)}
	}
	return out
}

// BuildCues assigns each sentence a timed interval: duration is
// rune-count/CharsPerSec with MinDurationSec as the floor, GapSec
// between consecutive cues, and neither endpoint ever past totalSec.
// Sentences left over once the timeline is spent pin to a zero-length
// interval at totalSec.
func BuildCues(text string, totalSec float64, t Timing) []Cue {
	sentences := SplitSentences(text)
	cues := make([]Cue, 0, len(sentences))
	current := 0.0
	for i, sentence := range sentences {
		est := float64(len([]rune(sentence))) / t.CharsPerSec
		if est < t.MinDurationSec {
			est = t.MinDurationSec
		}
		if totalSec > 0 && current > totalSec {
			current = totalSec
		}
		end := current + est
		if totalSec > 0 && end > totalSec {
			end = totalSec
		}
		cues = append(cues, Cue{Index: i + 1, Start: current, End: end, Text: sentence})
		current = end + t.GapSec
	}
	return cues
}

// FormatTime renders seconds as an SRT timestamp, HH:MM:SS,mmm.
func FormatTime(sec float64) string {
	if sec < 0 {
		sec = 0
	}
	ms := int64(sec * 1000)
	h := ms / 3_600_000
	m := (ms % 3_600_000) / 60_000
	s := (ms % 60_000) / 1000
	return fmt.Sprintf("%02d:%02d:%02d,%03d", h, m, s, ms%1000)
}

// WriteSRT writes the cues in standard SRT layout.
func WriteSRT(path string, cues []Cue) error {
	var sb strings.Builder
	for _, c := range cues {
		fmt.Fprintf(&sb, "%d\n%s --> %s\n%s\n\n", c.Index, FormatTime(c.Start), FormatTime(c.End), c.Text)
	}
	if err := os.WriteFile(path, []byte(sb.String()), 0o644); err != nil {
		return fmt.Errorf("write srt: %w", err)
	}
	return nil
}
