// Package assemble builds the final news video: it plans a clip order
// covering the narration duration, normalizes every clip to one stream
// format, concatenates them (intro first), muxes the narration audio
// and overlays the scrolling script.
package assemble

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"newsvid/config"
	"newsvid/plan"
	"newsvid/probe"
	"newsvid/types"
)

// mediaProber is the slice of the prober the assembler needs.
type mediaProber interface {
	Probe(ctx context.Context, path string) types.MediaInfo
	Duration(ctx context.Context, path string) (float64, bool)
}

// Assembler runs the whole pipeline for one output file. Each stage
// blocks on its ffmpeg subprocess before the next stage starts; all
// intermediate artifacts live in a scratch directory scoped to the run.
type Assembler struct {
	cfg     *config.Config
	prober  mediaProber
	planner *plan.Planner
	runID   string
	workDir string

	ffmpeg func(ctx context.Context, args []string) error
}

// New creates an Assembler for one run.
func New(cfg *config.Config) *Assembler {
	return &Assembler{
		cfg:     cfg,
		prober:  probe.New(),
		planner: plan.New(),
		runID:   uuid.NewString()[:8],
		ffmpeg:  execFFmpeg,
	}
}

func execFFmpeg(ctx context.Context, args []string) error {
	cmd := exec.CommandContext(ctx, "ffmpeg", args...)
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

func (a *Assembler) runFFmpeg(ctx context.Context, args []string) error {
	return a.ffmpeg(ctx, args)
}

// Run assembles the final video and returns its path. On any fatal
// stage failure no file is left at the output path; intermediate
// artifacts are removed either way.
func (a *Assembler) Run(ctx context.Context) (string, error) {
	state := &types.RunState{
		RunID:     a.runID,
		StartedAt: time.Now().UTC().Format(time.RFC3339),
		VideoDir:  a.cfg.Paths.VideoDir,
	}
	defer func() {
		state.CompletedAt = time.Now().UTC().Format(time.RFC3339)
		a.saveState(state)
	}()

	out, err := a.run(ctx, state)
	if err != nil {
		state.Error = err.Error()
		return "", err
	}
	state.OutputFile = out
	return out, nil
}

func (a *Assembler) run(ctx context.Context, state *types.RunState) (string, error) {
	log.Printf("[assemble] Starting run %s", a.runID)

	// Precondition: source clips must exist before any subprocess runs.
	clips, err := a.findClips(a.cfg.Paths.VideoDir)
	if err != nil {
		return "", err
	}
	log.Printf("[assemble] Found %d videos to combine", len(clips))
	for i, clip := range clips {
		log.Printf("[assemble]   %d. %s", i+1, filepath.Base(clip))
	}

	width, height, err := config.ParseResolution(a.cfg.Assembly.Resolution)
	if err != nil {
		return "", err
	}

	target := types.Target{
		Duration:  a.cfg.Assembly.DefaultDurationSec,
		Width:     width,
		Height:    height,
		FrameRate: a.cfg.Assembly.FPS,
	}

	// Target duration comes from the narration; a missing or unreadable
	// audio file falls back to the configured default and skips muxing.
	audioFile := a.cfg.Paths.AudioFile
	if audioFile != "" {
		if _, err := os.Stat(audioFile); err != nil {
			log.Printf("[assemble] No audio file found at %s, using default duration", audioFile)
			audioFile = ""
		} else if dur, ok := a.prober.Duration(ctx, audioFile); ok {
			target.Duration = dur
			log.Printf("[assemble] Audio duration: %.2f seconds", dur)
		} else {
			log.Printf("[assemble] Could not get audio duration, using default duration")
		}
	}
	state.AudioFile = audioFile
	state.Target = target

	// Probe every source clip and build the playback plan.
	infos := make([]types.MediaInfo, 0, len(clips))
	for _, clip := range clips {
		infos = append(infos, a.prober.Probe(ctx, clip))
	}
	clipPlan := a.planner.Plan(infos, target.Duration)
	if len(clipPlan) == 0 {
		return "", fmt.Errorf("could not plan a clip sequence for %.2f seconds from %d clips", target.Duration, len(clips))
	}
	state.ClipCount = len(clips)
	state.PlanEntries = len(clipPlan)
	log.Printf("[assemble] Created plan with %d entries from %d unique clips, total %.2fs (target %.2fs)",
		len(clipPlan), len(clips), clipPlan.TotalDuration(), target.Duration)

	workDir, err := os.MkdirTemp("", "newsvid-"+a.runID+"-")
	if err != nil {
		return "", fmt.Errorf("create scratch dir: %w", err)
	}
	a.workDir = workDir
	defer os.RemoveAll(workDir)

	// Normalize the intro once, if configured and present.
	var scaledIntro string
	var introDuration float64
	if intro := a.cfg.Paths.IntroVideo; intro != "" {
		if _, err := os.Stat(intro); err != nil {
			log.Printf("[assemble] No intro video at %s — skipping intro", intro)
		} else {
			log.Printf("[assemble] Preparing intro video %s...", intro)
			scaledIntro = filepath.Join(workDir, "scaled_intro.mp4")
			if err := a.normalize(ctx, intro, scaledIntro, target); err != nil {
				return "", err
			}
			introDuration = a.prober.Probe(ctx, scaledIntro).Duration
			state.IntroFile = intro
			log.Printf("[assemble] Intro video duration: %.2f seconds", introDuration)
		}
	}

	// Normalize each unique clip once, then expand the plan into the
	// ordered list of normalized files.
	normalized := make(map[string]types.MediaInfo, len(clips))
	i := 0
	for _, entry := range clipPlan {
		if _, done := normalized[entry.Path]; done {
			continue
		}
		i++
		log.Printf("[assemble] Preparing video %d/%d...", i, len(clips))
		scaled := filepath.Join(workDir, fmt.Sprintf("scaled_%03d.mp4", i))
		if err := a.normalize(ctx, entry.Path, scaled, target); err != nil {
			return "", err
		}
		normalized[entry.Path] = a.prober.Probe(ctx, scaled)
	}

	content := make([]string, 0, len(clipPlan))
	var contentDuration float64
	for _, entry := range clipPlan {
		info := normalized[entry.Path]
		content = append(content, info.Path)
		contentDuration += info.Duration
	}
	log.Printf("[assemble] Total content video duration: %.2f seconds", contentDuration)

	// Concatenate into one silent track of exactly the target duration.
	inputs := buildSequence(scaledIntro, introDuration, content, contentDuration, target.Duration)
	silentVideo := filepath.Join(workDir, "combined_silent.mp4")
	log.Printf("[assemble] Combining %d video segments...", len(inputs))
	if err := a.compose(ctx, inputs, silentVideo, target); err != nil {
		return "", err
	}
	state.SilentVideo = silentVideo

	// Mux narration audio, or pass the silent track through.
	muxedVideo := filepath.Join(workDir, "video_with_audio.mp4")
	if audioFile != "" {
		log.Printf("[assemble] Adding audio from %s to video...", audioFile)
	} else {
		log.Printf("[assemble] No audio — passing silent video through")
	}
	if err := a.mux(ctx, silentVideo, audioFile, muxedVideo); err != nil {
		return "", err
	}
	state.MuxedVideo = muxedVideo

	// Scrolling captions, when a script file exists.
	finalVideo := muxedVideo
	if script := a.cfg.Paths.ScriptFile; script != "" {
		if _, err := os.Stat(script); err != nil {
			log.Printf("[assemble] No script file found at %s, skipping captions", script)
		} else {
			log.Printf("[assemble] Adding scrolling text to video...")
			captioned := filepath.Join(workDir, "captioned.mp4")
			if err := a.overlay(ctx, muxedVideo, script, captioned, a.cfg.Captions.FontSize); err != nil {
				return "", err
			}
			finalVideo = captioned
			state.ScriptFile = script
		}
	}

	// Only a fully assembled file reaches the configured output path.
	outputFile := a.cfg.Paths.OutputFile
	if dir := filepath.Dir(outputFile); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", fmt.Errorf("create output dir: %w", err)
		}
	}
	if err := copyFile(finalVideo, outputFile); err != nil {
		return "", fmt.Errorf("copy final video: %w", err)
	}
	log.Printf("[assemble] Final video saved as %s", outputFile)
	return outputFile, nil
}

// findClips lists the video files in dir, filtering out anything that
// is not one of the recognized container extensions.
func (a *Assembler) findClips(dir string) ([]string, error) {
	var clips []string
	for _, ext := range a.cfg.Assembly.VideoExtensions {
		matches, err := filepath.Glob(filepath.Join(dir, "*"+ext))
		if err != nil {
			return nil, fmt.Errorf("list videos in %s: %w", dir, err)
		}
		clips = append(clips, matches...)
	}

	// The acquisition step can leave stills next to the clips.
	filtered := clips[:0]
	for _, clip := range clips {
		lower := strings.ToLower(clip)
		if strings.HasSuffix(lower, ".png") || strings.HasSuffix(lower, ".jpg") || strings.HasSuffix(lower, ".jpeg") {
			continue
		}
		filtered = append(filtered, clip)
	}

	if len(filtered) == 0 {
		return nil, fmt.Errorf("no video files found in %s", dir)
	}
	return filtered, nil
}

// saveState writes the run record next to the output file. Informational
// only — failures are logged and ignored.
func (a *Assembler) saveState(state *types.RunState) {
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		log.Printf("[assemble] Warning: could not marshal run state: %v", err)
		return
	}
	path := filepath.Join(filepath.Dir(a.cfg.Paths.OutputFile), "assembly_state.json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		log.Printf("[assemble] Warning: could not save %s: %v", path, err)
	}
}
