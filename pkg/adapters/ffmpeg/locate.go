// Package ffmpeg drives the ffmpeg and ffprobe binaries as a lossless
// frame transcoder: raw RGB frames go in through stdin and come back out
// through stdout.
package ffmpeg

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"sync"
)

var (
	pathMu            sync.RWMutex
	customFFmpegPath  string
	customFFprobePath string
)

// SetFFmpegPath overrides ffmpeg discovery. An empty path restores discovery.
func SetFFmpegPath(path string) {
	pathMu.Lock()
	defer pathMu.Unlock()
	customFFmpegPath = path
}

// SetFFprobePath overrides ffprobe discovery. An empty path restores discovery.
func SetFFprobePath(path string) {
	pathMu.Lock()
	defer pathMu.Unlock()
	customFFprobePath = path
}

// IsAvailable reports whether ffmpeg can be found.
func IsAvailable() bool {
	_, err := FindFFmpeg()
	return err == nil
}

// FindFFmpeg searches for ffmpeg.
// Priority: 1) SetFFmpegPath, 2) FFMPEG_PATH env, 3) PATH, 4) common locations
func FindFFmpeg() (string, error) {
	pathMu.RLock()
	custom := customFFmpegPath
	pathMu.RUnlock()
	return findBinary("ffmpeg", custom, "FFMPEG_PATH", ErrFFmpegNotFound)
}

// FindFFprobe searches for ffprobe the same way as FindFFmpeg, and also
// looks next to the ffmpeg binary.
func FindFFprobe() (string, error) {
	pathMu.RLock()
	custom := customFFprobePath
	pathMu.RUnlock()

	path, err := findBinary("ffprobe", custom, "FFPROBE_PATH", ErrFFprobeNotFound)
	if err == nil || custom != "" {
		return path, err
	}
	if ffmpegPath, ferr := FindFFmpeg(); ferr == nil {
		sibling := filepath.Join(filepath.Dir(ffmpegPath), executableName("ffprobe"))
		if _, serr := os.Stat(sibling); serr == nil {
			return sibling, nil
		}
	}
	return "", err
}

func executableName(name string) string {
	if runtime.GOOS == "windows" {
		return name + ".exe"
	}
	return name
}

func findBinary(name, custom, envVar string, notFound error) (string, error) {
	if custom != "" {
		if _, err := os.Stat(custom); err == nil {
			return custom, nil
		}
		return "", fmt.Errorf("%w: custom path %s not found", notFound, custom)
	}

	if envPath := os.Getenv(envVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath, nil
		}
		return "", fmt.Errorf("%w: %s %s not found", notFound, envVar, envPath)
	}

	execName := executableName(name)
	if path, err := exec.LookPath(execName); err == nil {
		return path, nil
	}

	var dirs []string
	switch runtime.GOOS {
	case "windows":
		dirs = []string{`C:\ffmpeg\bin`, `C:\Program Files\ffmpeg\bin`, `C:\Program Files (x86)\ffmpeg\bin`}
	case "darwin":
		dirs = []string{"/opt/homebrew/bin", "/usr/local/bin", "/usr/bin"}
	default:
		dirs = []string{"/usr/bin", "/usr/local/bin", "/opt/homebrew/bin", "/snap/bin"}
	}
	for _, dir := range dirs {
		p := filepath.Join(dir, execName)
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}

	return "", notFound
}
