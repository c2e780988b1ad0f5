package types

// MediaInfo holds the probed metadata for one media file.
// Instances are read-only once created; a failed probe yields the
// sentinel values {Duration: 0, Width: 1920, Height: 1080}.
type MediaInfo struct {
	Path     string  `json:"path"`
	Duration float64 `json:"duration"`
	Width    int     `json:"width"`
	Height   int     `json:"height"`
}

// ClipPlan is the concrete playback order chosen to fill a target
// duration. The same source file may appear more than once.
type ClipPlan []MediaInfo

// TotalDuration returns the summed duration of every entry in the plan.
func (p ClipPlan) TotalDuration() float64 {
	var total float64
	for _, info := range p {
		total += info.Duration
	}
	return total
}

// Target holds the immutable per-run output parameters.
type Target struct {
	Duration  float64 `json:"duration"`
	Width     int     `json:"width"`
	Height    int     `json:"height"`
	FrameRate int     `json:"frame_rate"`
}

// RunState tracks one assembly run, saved as assembly_state.json
type RunState struct {
	RunID       string   `json:"run_id"`
	StartedAt   string   `json:"started_at"`
	CompletedAt string   `json:"completed_at"`
	VideoDir    string   `json:"video_dir"`
	AudioFile   string   `json:"audio_file,omitempty"`
	ScriptFile  string   `json:"script_file,omitempty"`
	IntroFile   string   `json:"intro_file,omitempty"`
	Target      Target   `json:"target"`
	ClipCount   int      `json:"clip_count"`
	PlanEntries int      `json:"plan_entries"`
	SilentVideo string   `json:"silent_video,omitempty"`
	MuxedVideo  string   `json:"muxed_video,omitempty"`
	OutputFile  string   `json:"output_file,omitempty"`
	Error       string   `json:"error,omitempty"`
}
