package processor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// videoExtensions are containers whose audio track is extracted with ffmpeg
// before upload when ffmpeg is enabled.
var videoExtensions = []string{"mp4", "webm", "mov", "mkv", "avi", "m4v"}

// WatchExtensions returns the file extensions the inbox watcher should pick up.
func WatchExtensions(accepted []string, ffmpegEnabled bool) []string {
	exts := append([]string(nil), accepted...)
	if ffmpegEnabled {
		for _, ext := range videoExtensions {
			if !slices.Contains(exts, ext) {
				exts = append(exts, ext)
			}
		}
	}
	return exts
}

func isVideo(path string) bool {
	return slices.Contains(videoExtensions, extension(path))
}

// extractAudio converts the audio track of a video to 16kHz mono FLAC, which
// keeps uploads small and is accepted by the speech endpoint.
func (p *implProcessor) extractAudio(ctx context.Context, videoPath string) (string, error) {
	if err := os.MkdirAll(p.cfg.Paths.Temp, 0755); err != nil {
		return "", fmt.Errorf("create temp dir: %w", err)
	}
	base := strings.TrimSuffix(filepath.Base(videoPath), filepath.Ext(videoPath))
	audioPath := filepath.Join(p.cfg.Paths.Temp, base+"_16k.flac")

	p.logger.Info(ctx, "Extracting audio: %s", videoPath)

	// -vn: drop video, -ar 16000 -ac 1: 16kHz mono
	args := []string{
		"-i", videoPath,
		"-vn",
		"-ar", "16000",
		"-ac", "1",
		"-c:a", "flac",
		"-y",
		audioPath,
	}

	if _, err := p.executor.Execute(ctx, p.cfg.FFmpeg.BinaryPath, args...); err != nil {
		return "", fmt.Errorf("ffmpeg extract audio: %w", err)
	}

	p.logger.Info(ctx, "Audio extracted: %s", audioPath)
	return audioPath, nil
}
