package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Assembly AssemblyConfig `yaml:"assembly"`
	Captions CaptionsConfig `yaml:"captions"`
	Paths    PathsConfig    `yaml:"paths"`
}

type AssemblyConfig struct {
	Resolution          string  `yaml:"resolution"`
	FPS                 int     `yaml:"fps"`
	DefaultDurationSec  float64 `yaml:"default_duration_sec"`
	VideoExtensions     []string `yaml:"video_extensions"`
}

type CaptionsConfig struct {
	FontFile string `yaml:"font_file"`
	FontSize int    `yaml:"font_size"`
}

type PathsConfig struct {
	VideoDir   string `yaml:"video_dir"`
	AudioFile  string `yaml:"audio_file"`
	ScriptFile string `yaml:"script_file"`
	IntroVideo string `yaml:"intro_video"`
	OutputFile string `yaml:"output_file"`
}

// Load reads config.yaml and returns a Config struct.
// A missing file is not an error — defaults apply.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return cfg, nil
}

// Default returns the configuration matching the original NewsVid conventions.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.Assembly.Resolution == "" {
		c.Assembly.Resolution = "1920x1080"
	}
	if c.Assembly.FPS == 0 {
		c.Assembly.FPS = 30
	}
	if c.Assembly.DefaultDurationSec == 0 {
		c.Assembly.DefaultDurationSec = 60
	}
	if len(c.Assembly.VideoExtensions) == 0 {
		c.Assembly.VideoExtensions = []string{".mp4", ".mov", ".avi", ".mkv"}
	}
	if c.Captions.FontFile == "" {
		c.Captions.FontFile = "/System/Library/Fonts/Helvetica.ttc"
	}
	if c.Captions.FontSize == 0 {
		c.Captions.FontSize = 36
	}
	if c.Paths.VideoDir == "" {
		c.Paths.VideoDir = "videos"
	}
	if c.Paths.AudioFile == "" {
		c.Paths.AudioFile = "news.mp3"
	}
	if c.Paths.ScriptFile == "" {
		c.Paths.ScriptFile = "script.txt"
	}
	if c.Paths.OutputFile == "" {
		c.Paths.OutputFile = "final_video.mp4"
	}
}

// ParseResolution splits a WIDTHxHEIGHT string into its dimensions.
func ParseResolution(s string) (width, height int, err error) {
	parts := strings.SplitN(strings.ToLower(s), "x", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid resolution %q, expected WIDTHxHEIGHT", s)
	}
	width, err = strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid resolution width %q: %w", parts[0], err)
	}
	height, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid resolution height %q: %w", parts[1], err)
	}
	if width <= 0 || height <= 0 {
		return 0, 0, fmt.Errorf("resolution %q must be positive", s)
	}
	return width, height, nil
}
