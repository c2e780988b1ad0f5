package assemble

import (
	"context"
	"fmt"
	"math"
	"strings"

	"newsvid/types"
)

// buildSequence decides the final concatenation order. The intro, when
// present, is always first and never repeated. If the content sequence
// does not cover the runway left after the intro, the whole sequence is
// appended ceil(runway/contentDuration) times — whole copies only, so
// the concatenated duration may overshoot the target before the trim.
func buildSequence(intro string, introDuration float64, content []string, contentDuration, targetDuration float64) []string {
	var inputs []string
	if intro != "" {
		inputs = append(inputs, intro)
	}
	if len(content) == 0 {
		return inputs
	}

	remaining := targetDuration - introDuration
	if remaining <= 0 {
		return inputs
	}

	loops := 1
	if contentDuration > 0 && contentDuration < remaining {
		loops = int(math.Ceil(remaining / contentDuration))
	}
	for i := 0; i < loops; i++ {
		inputs = append(inputs, content...)
	}
	return inputs
}

// concatFilter joins every input's first video stream into one silent
// track: [0:v:0][1:v:0]...concat=n=N:v=1:a=0[outv]
func concatFilter(n int) string {
	var b strings.Builder
	for i := 0; i < n; i++ {
		fmt.Fprintf(&b, "[%d:v:0]", i)
	}
	fmt.Fprintf(&b, "concat=n=%d:v=1:a=0[outv]", n)
	return b.String()
}

// concatArgs builds the ffmpeg invocation that concatenates the inputs
// in order and trims the result to the target duration at encode time.
func concatArgs(inputs []string, output string, target types.Target) []string {
	args := []string{"-y"}
	for _, in := range inputs {
		args = append(args, "-i", in)
	}
	args = append(args,
		"-filter_complex", concatFilter(len(inputs)),
		"-map", "[outv]",
	)
	args = append(args, colorArgs()...)
	args = append(args,
		"-r", fmt.Sprintf("%d", target.FrameRate),
		"-t", fmt.Sprintf("%.3f", target.Duration),
		output,
	)
	return args
}

// compose concatenates the ordered, already-normalized clips (intro
// first when present) into one silent video track of the target duration.
func (a *Assembler) compose(ctx context.Context, inputs []string, output string, target types.Target) error {
	if len(inputs) == 0 {
		return fmt.Errorf("compose: no inputs to concatenate")
	}
	if err := a.runFFmpeg(ctx, concatArgs(inputs, output, target)); err != nil {
		return fmt.Errorf("concatenate %d inputs: %w", len(inputs), err)
	}
	return nil
}
