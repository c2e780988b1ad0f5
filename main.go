package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/joho/godotenv"

	"newsvid/assemble"
	"newsvid/config"
)

func main() {
	// Load .env (local dev only). The pipeline itself reads no
	// environment state — all inputs come from flags and config.
	_ = godotenv.Load()

	configPath := flag.String("config", "config.yaml", "Path to YAML config file")
	videoDir := flag.String("video-dir", "", "Directory containing video files")
	audioFile := flag.String("audio-file", "", "Path to narration audio file")
	scriptFile := flag.String("script-file", "", "Path to caption script text file")
	introVideo := flag.String("intro", "", "Path to intro video placed first")
	outputFile := flag.String("output-file", "", "Path for the output video file")
	resolution := flag.String("resolution", "", "Target resolution in format WIDTHxHEIGHT")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Flags override config values.
	if *videoDir != "" {
		cfg.Paths.VideoDir = *videoDir
	}
	if *audioFile != "" {
		cfg.Paths.AudioFile = *audioFile
	}
	if *scriptFile != "" {
		cfg.Paths.ScriptFile = *scriptFile
	}
	if *introVideo != "" {
		cfg.Paths.IntroVideo = *introVideo
	}
	if *outputFile != "" {
		cfg.Paths.OutputFile = *outputFile
	}
	if *resolution != "" {
		cfg.Assembly.Resolution = *resolution
	}

	log.Printf("🎬 NewsVid assembly starting")
	log.Printf("📁 Processing videos from %s", cfg.Paths.VideoDir)
	if cfg.Paths.AudioFile != "" {
		log.Printf("🎙 Using audio from %s", cfg.Paths.AudioFile)
	}

	assembler := assemble.New(cfg)
	outputPath, err := assembler.Run(context.Background())
	if err != nil {
		log.Printf("❌ Failed to create video: %v", err)
		os.Exit(1)
	}
	log.Printf("✅ Successfully created video: %s", outputPath)
}
