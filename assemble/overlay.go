package assemble

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	// Rough average used to estimate how many lines the script will
	// occupy. Deliberately independent of the wrapped line count the
	// renderer actually produces.
	avgCharsPerLine = 50

	lineHeightFactor = 1.5

	// Fraction of the video width the caption column occupies
	// (15% margin on each side).
	textWidthFraction = 0.7

	// Approximate glyph width as a fraction of the font size.
	charWidthFactor = 0.6
)

// scrollSpeed returns the upward scroll rate in pixels per second that
// moves the estimated text block fully off screen exactly once over the
// clip: (chars/50 lines) * fontSize * 1.5 / duration.
func scrollSpeed(charCount, fontSize int, duration float64) float64 {
	estimatedLines := float64(charCount) / avgCharsPerLine
	scrollHeight := estimatedLines * float64(fontSize) * lineHeightFactor
	return scrollHeight / duration
}

// wrapWidth returns the caption column width in characters for the
// given video width and font size.
func wrapWidth(videoWidth, fontSize int) int {
	textWidth := int(float64(videoWidth) * textWidthFraction)
	return textWidth / int(float64(fontSize)*charWidthFactor)
}

// wrapText greedily wraps each input line to at most width characters,
// breaking on spaces. Words longer than the width stay on their own line.
func wrapText(text string, width int) string {
	if width <= 0 {
		return text
	}
	var out []string
	for _, line := range strings.Split(text, "\n") {
		words := strings.Fields(line)
		if len(words) == 0 {
			out = append(out, "")
			continue
		}
		current := words[0]
		for _, word := range words[1:] {
			if len(current)+1+len(word) <= width {
				current += " " + word
			} else {
				out = append(out, current)
				current = word
			}
		}
		out = append(out, current)
	}
	return strings.Join(out, "\n")
}

// escapeFilterPath escapes a path for use inside a filter argument.
func escapeFilterPath(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "'", "\\'")
	s = strings.ReplaceAll(s, ":", "\\:")
	return s
}

// drawtextFilter renders the wrapped text file as a bottom-anchored,
// upward-scrolling, centered overlay on a semi-transparent box.
func drawtextFilter(fontFile, textFile string, fontSize int, speed float64) string {
	return fmt.Sprintf(
		"drawtext=fontfile=%s:fontsize=%d:fontcolor=white:x=(w-text_w)/2:"+
			"textfile='%s':y=h-%.4f*t:line_spacing=10:box=1:boxcolor=black@0.5:boxborderw=5",
		escapeFilterPath(fontFile), fontSize, escapeFilterPath(textFile), speed,
	)
}

// overlayArgs burns the scrolling caption track onto the video while
// copying the audio stream through unchanged.
func overlayArgs(input, output, filter string) []string {
	args := []string{"-y", "-i", input, "-vf", filter}
	args = append(args, colorArgs()...)
	args = append(args, "-c:a", "copy", output)
	return args
}

// overlay renders the script as scrolling captions over the video. Any
// failure aborts the call: this stage needs the real duration and width
// of its input, so a probe that degrades to sentinel values (duration 0)
// is treated as an error rather than dividing by zero downstream.
func (a *Assembler) overlay(ctx context.Context, input, scriptFile, output string, fontSize int) error {
	script, err := os.ReadFile(scriptFile)
	if err != nil {
		return fmt.Errorf("read script: %w", err)
	}

	info := a.prober.Probe(ctx, input)
	if info.Duration <= 0 {
		return fmt.Errorf("could not determine duration of %s", input)
	}

	speed := scrollSpeed(len(script), fontSize, info.Duration)

	wrapped := wrapText(string(script), wrapWidth(info.Width, fontSize))
	textFile := filepath.Join(a.workDir, "captions_wrapped.txt")
	if err := os.WriteFile(textFile, []byte(wrapped+"\n"), 0644); err != nil {
		return fmt.Errorf("write wrapped captions: %w", err)
	}
	defer os.Remove(textFile)

	filter := drawtextFilter(a.cfg.Captions.FontFile, textFile, fontSize, speed)
	if err := a.runFFmpeg(ctx, overlayArgs(input, output, filter)); err != nil {
		return fmt.Errorf("scrolling text overlay: %w", err)
	}
	return nil
}
