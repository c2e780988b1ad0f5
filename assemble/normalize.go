package assemble

import (
	"context"
	"fmt"

	"newsvid/types"
)

// colorArgs pins the encode to one color pipeline. Concatenation by
// filter graph requires identical stream parameters across inputs, so
// every encode stage re-asserts these.
func colorArgs() []string {
	return []string{
		"-c:v", "libx264",
		"-pix_fmt", "yuv420p",
		"-colorspace", "bt709",
		"-color_range", "tv",
		"-color_primaries", "bt709",
		"-color_trc", "bt709",
	}
}

// scalePadFilter scales to fit inside the target resolution and pads
// the remainder so the output is exactly width x height.
func scalePadFilter(width, height int) string {
	return fmt.Sprintf(
		"scale=%d:%d:force_original_aspect_ratio=decrease,pad=%d:%d:(ow-iw)/2:(oh-ih)/2",
		width, height, width, height,
	)
}

// normalizeArgs builds the ffmpeg arguments that rescale, pad and
// recode one clip to the target resolution and frame rate.
func normalizeArgs(input, output string, target types.Target) []string {
	args := []string{"-y", "-i", input}
	args = append(args, colorArgs()...)
	args = append(args,
		"-vf", scalePadFilter(target.Width, target.Height),
		"-r", fmt.Sprintf("%d", target.FrameRate),
		"-an",
		output,
	)
	return args
}

// normalize recodes one clip to the target parameters. Encoder failure
// here is fatal to the run — a clip that cannot be normalized cannot be
// concatenated.
func (a *Assembler) normalize(ctx context.Context, input, output string, target types.Target) error {
	if err := a.runFFmpeg(ctx, normalizeArgs(input, output, target)); err != nil {
		return fmt.Errorf("normalize %s: %w", input, err)
	}
	return nil
}
