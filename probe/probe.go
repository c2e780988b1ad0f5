// Package probe wraps ffprobe queries for media metadata.
package probe

import (
	"context"
	"encoding/json"
	"log"
	"os/exec"
	"strconv"
	"strings"

	"newsvid/types"
)

// Sentinel values returned when a file cannot be inspected. Downstream
// duration arithmetic stays defined instead of failing the run.
const (
	DefaultWidth  = 1920
	DefaultHeight = 1080
)

// runFunc executes an external command and returns its stdout.
type runFunc func(ctx context.Context, name string, args ...string) ([]byte, error)

func execRun(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}

// Prober inspects media files via ffprobe.
type Prober struct {
	run runFunc
}

func New() *Prober {
	return &Prober{run: execRun}
}

type ffprobeOutput struct {
	Streams []ffprobeStream `json:"streams"`
}

type ffprobeStream struct {
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	Duration string `json:"duration"`
}

// Probe returns duration, width and height for a video file. It never
// returns an error: on any ffprobe failure or unparsable output it logs
// the problem and returns sentinel values so the caller's arithmetic
// stays defined.
func (p *Prober) Probe(ctx context.Context, path string) types.MediaInfo {
	info := types.MediaInfo{Path: path, Width: DefaultWidth, Height: DefaultHeight}

	out, err := p.run(ctx, "ffprobe",
		"-v", "error",
		"-select_streams", "v:0",
		"-show_entries", "stream=width,height,duration",
		"-of", "json",
		path,
	)
	if err != nil {
		log.Printf("[probe] Error getting video info for %s: %v", path, err)
		return info
	}

	var ff ffprobeOutput
	if err := json.Unmarshal(out, &ff); err != nil {
		log.Printf("[probe] Error parsing ffprobe output for %s: %v", path, err)
		return info
	}
	if len(ff.Streams) == 0 {
		log.Printf("[probe] No video stream found in %s", path)
		if dur, ok := p.Duration(ctx, path); ok {
			info.Duration = dur
		}
		return info
	}

	stream := ff.Streams[0]
	if stream.Width > 0 {
		info.Width = stream.Width
	}
	if stream.Height > 0 {
		info.Height = stream.Height
	}

	// Duration may be absent at stream level (common for some containers);
	// fall back to the container-level query.
	if dur, err := strconv.ParseFloat(stream.Duration, 64); err == nil {
		info.Duration = dur
	} else if dur, ok := p.Duration(ctx, path); ok {
		info.Duration = dur
	}

	return info
}

// Duration returns the container-level duration of any media file,
// audio or video. The second return is false when ffprobe fails or
// produces unparsable output.
func (p *Prober) Duration(ctx context.Context, path string) (float64, bool) {
	out, err := p.run(ctx, "ffprobe",
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		path,
	)
	if err != nil {
		log.Printf("[probe] Error getting media duration for %s: %v", path, err)
		return 0, false
	}
	dur, err := strconv.ParseFloat(strings.TrimSpace(string(out)), 64)
	if err != nil {
		log.Printf("[probe] Error parsing media duration for %s: %v", path, err)
		return 0, false
	}
	return dur, true
}
