package assemble

import (
	"context"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"newsvid/config"
	"newsvid/types"
)

func TestScrollSpeed_Formula(t *testing.T) {
	// speed = (chars/50 lines) * fontSize * 1.5 / duration
	script := strings.Repeat("x", 500) // 10 estimated lines
	speed := scrollSpeed(len(script), 36, 60)

	want := (500.0 / 50.0) * 36 * 1.5 / 60
	if math.Abs(speed-want) > 1e-9 {
		t.Fatalf("speed = %f, want %f", speed, want)
	}
}

func TestWrapWidth(t *testing.T) {
	// 70% of 1920 = 1344px, 36pt glyphs ≈ 21.6px wide -> 1344/21 = 64 chars.
	if got := wrapWidth(1920, 36); got != 64 {
		t.Fatalf("wrapWidth(1920, 36) = %d, want 64", got)
	}
	if got := wrapWidth(1280, 48); got != 32 {
		t.Fatalf("wrapWidth(1280, 48) = %d, want 32", got)
	}
}

func TestWrapText(t *testing.T) {
	cases := []struct {
		name  string
		in    string
		width int
		want  string
	}{
		{"short line untouched", "breaking news", 40, "breaking news"},
		{"wraps on spaces", "one two three four", 9, "one two\nthree\nfour"},
		{"preserves paragraph breaks", "first line\n\nsecond line", 40, "first line\n\nsecond line"},
		{"long word on its own line", "a verylongunbreakableword b", 6, "a\nverylongunbreakableword\nb"},
		{"non-positive width passes through", "anything at all", 0, "anything at all"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := wrapText(tc.in, tc.width); got != tc.want {
				t.Fatalf("wrapText(%q, %d) = %q, want %q", tc.in, tc.width, got, tc.want)
			}
		})
	}
}

func TestDrawtextFilter(t *testing.T) {
	filter := drawtextFilter("/fonts/Helvetica.ttc", "/tmp/wrapped.txt", 36, 12.3456)

	for _, want := range []string{
		"fontsize=36",
		"fontcolor=white",
		"x=(w-text_w)/2",
		"y=h-12.3456*t",
		"textfile='/tmp/wrapped.txt'",
		"box=1:boxcolor=black@0.5:boxborderw=5",
		"line_spacing=10",
	} {
		if !strings.Contains(filter, want) {
			t.Fatalf("filter missing %q: %s", want, filter)
		}
	}
}

func TestEscapeFilterPath(t *testing.T) {
	got := escapeFilterPath(`C:\clips\o'neill.txt`)
	if !strings.Contains(got, `\:`) || !strings.Contains(got, `\'`) || !strings.Contains(got, `\\`) {
		t.Fatalf("unescaped filter path: %s", got)
	}
}

type fixedProber struct {
	info     types.MediaInfo
	duration float64
	ok       bool
}

func (f fixedProber) Probe(ctx context.Context, path string) types.MediaInfo {
	info := f.info
	info.Path = path
	return info
}

func (f fixedProber) Duration(ctx context.Context, path string) (float64, bool) {
	return f.duration, f.ok
}

func TestOverlay_RemovesWrappedTextFile(t *testing.T) {
	dir := t.TempDir()
	script := filepath.Join(dir, "script.txt")
	if err := os.WriteFile(script, []byte("breaking news from the newsroom today"), 0644); err != nil {
		t.Fatal(err)
	}

	var sawTextFile string
	a := &Assembler{
		cfg:     config.Default(),
		workDir: dir,
		prober:  fixedProber{info: types.MediaInfo{Duration: 30, Width: 1920, Height: 1080}},
		ffmpeg: func(ctx context.Context, args []string) error {
			for _, arg := range args {
				if strings.Contains(arg, "captions_wrapped.txt") {
					sawTextFile = filepath.Join(dir, "captions_wrapped.txt")
					if _, err := os.Stat(sawTextFile); err != nil {
						t.Fatalf("wrapped text file missing during encode: %v", err)
					}
				}
			}
			return nil
		},
	}

	if err := a.overlay(context.Background(), "in.mp4", script, filepath.Join(dir, "out.mp4"), 36); err != nil {
		t.Fatalf("overlay: %v", err)
	}
	if sawTextFile == "" {
		t.Fatal("drawtext filter never referenced the wrapped text file")
	}
	if _, err := os.Stat(sawTextFile); !os.IsNotExist(err) {
		t.Fatalf("wrapped text file should be removed after the run, stat err = %v", err)
	}
}

func TestOverlay_FailsOnZeroDuration(t *testing.T) {
	dir := t.TempDir()
	script := filepath.Join(dir, "script.txt")
	if err := os.WriteFile(script, []byte("text"), 0644); err != nil {
		t.Fatal(err)
	}

	a := &Assembler{
		cfg:     config.Default(),
		workDir: dir,
		prober:  fixedProber{info: types.MediaInfo{Duration: 0, Width: 1920, Height: 1080}},
		ffmpeg: func(ctx context.Context, args []string) error {
			t.Fatal("ffmpeg must not run when the input cannot be probed")
			return nil
		},
	}

	if err := a.overlay(context.Background(), "in.mp4", script, filepath.Join(dir, "out.mp4"), 36); err == nil {
		t.Fatal("expected error for unprobeable input")
	}
}

func TestOverlay_FailsOnMissingScript(t *testing.T) {
	a := &Assembler{cfg: config.Default(), workDir: t.TempDir(), prober: fixedProber{}}
	if err := a.overlay(context.Background(), "in.mp4", "nope.txt", "out.mp4", 36); err == nil {
		t.Fatal("expected error for missing script file")
	}
}
