package assemble

import (
	"context"
	"fmt"
	"io"
	"os"
)

// muxArgs merges the silent video with the narration track. The video
// is re-encoded (not stream-copied) to re-assert the color pipeline and
// the output ends at the shorter of the two inputs.
func muxArgs(video, audio, output string) []string {
	args := []string{"-y", "-i", video, "-i", audio}
	args = append(args, colorArgs()...)
	args = append(args,
		"-c:a", "aac",
		"-map", "0:v:0",
		"-map", "1:a:0",
		"-shortest",
		output,
	)
	return args
}

// mux combines the silent track with the audio file. When no audio is
// available the silent video is copied through unchanged.
func (a *Assembler) mux(ctx context.Context, video, audio, output string) error {
	if audio == "" {
		if err := copyFile(video, output); err != nil {
			return fmt.Errorf("copy silent video: %w", err)
		}
		return nil
	}
	if err := a.runFFmpeg(ctx, muxArgs(video, audio, output)); err != nil {
		return fmt.Errorf("mux audio %s: %w", audio, err)
	}
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Close()
}
