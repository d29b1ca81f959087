package main

import (
	"bytes"
	"math/rand"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/user/bytereel/pkg/adapters/ffmpeg"
)

// getBinaryPath returns the CLI binary to run. BYTEREEL_BINARY selects a
// pre-built binary; otherwise one is built into a temp directory.
func getBinaryPath(t *testing.T) string {
	t.Helper()
	if path := os.Getenv("BYTEREEL_BINARY"); path != "" {
		return path
	}

	name := "bytereel-test"
	if runtime.GOOS == "windows" {
		name += ".exe"
	}
	out := filepath.Join(t.TempDir(), name)
	buildCmd := exec.Command("go", "build", "-o", out, "./cmd/bytereel")
	buildCmd.Dir = getProjectRoot(t)
	if b, err := buildCmd.CombinedOutput(); err != nil {
		t.Fatalf("Failed to build CLI: %v\n%s", err, b)
	}
	return out
}

func requireE2E(t *testing.T) {
	t.Helper()
	if os.Getenv("BYTEREEL_E2E") != "1" {
		t.Skip("Skipping E2E test (set BYTEREEL_E2E=1 to run)")
	}
	if !ffmpeg.IsAvailable() {
		t.Skip("ffmpeg not available")
	}
}

func runBinary(t *testing.T, bin string, args ...string) string {
	t.Helper()
	cmd := exec.Command(bin, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		t.Fatalf("%v failed: %v\nstdout: %s\nstderr: %s", args, err, stdout.String(), stderr.String())
	}
	return stdout.String()
}

// TestE2E_RoundTripCodecs encodes and decodes random data with each ffmpeg codec.
func TestE2E_RoundTripCodecs(t *testing.T) {
	requireE2E(t)
	bin := getBinaryPath(t)

	for _, codec := range []string{"ffv1", "h264rgb", "png"} {
		t.Run(codec, func(t *testing.T) {
			tmpDir := t.TempDir()
			data := make([]byte, 640*360*3*2+1234)
			rand.New(rand.NewSource(1)).Read(data)
			input := filepath.Join(tmpDir, "random.bin")
			if err := os.WriteFile(input, data, 0644); err != nil {
				t.Fatal(err)
			}

			out := runBinary(t, bin, "-Q", "encode",
				"--codec", codec, "-r", "360p",
				"-o", filepath.Join(tmpDir, "encoded"), input)
			video := strings.TrimSpace(out)
			if !strings.Contains(filepath.Base(video), "random.bin__640x360__") {
				t.Fatalf("unexpected output name %q", video)
			}

			runBinary(t, bin, "-Q", "decode", "-o", filepath.Join(tmpDir, "decoded"), video)

			restored, err := os.ReadFile(filepath.Join(tmpDir, "decoded", "random.bin"))
			if err != nil {
				t.Fatalf("decoded file missing: %v", err)
			}
			if !bytes.Equal(restored, data) {
				t.Errorf("%s round trip changed the data", codec)
			}
		})
	}
}

// TestE2E_DebugOutput checks that --debug writes the packed frames.
func TestE2E_DebugOutput(t *testing.T) {
	requireE2E(t)
	bin := getBinaryPath(t)

	tmpDir := t.TempDir()
	input := filepath.Join(tmpDir, "small.bin")
	if err := os.WriteFile(input, []byte("hello"), 0644); err != nil {
		t.Fatal(err)
	}
	debugDir := filepath.Join(tmpDir, "debug")

	runBinary(t, bin, "-Q", "-d", "--debug-dir", debugDir,
		"encode", "-r", "240p", "-o", filepath.Join(tmpDir, "encoded"), input)

	if _, err := os.Stat(filepath.Join(debugDir, "manifest.yaml")); err != nil {
		t.Errorf("Expected manifest.yaml in debug output: %v", err)
	}
	entries, err := os.ReadDir(filepath.Join(debugDir, "frames"))
	if err != nil {
		t.Fatalf("Failed to read debug frames: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("expected 1 debug frame, got %d", len(entries))
	}
}

// TestE2E_VersionFlag checks the --version flag provided by the CLI framework.
func TestE2E_VersionFlag(t *testing.T) {
	requireE2E(t)
	out := runBinary(t, getBinaryPath(t), "--version")
	if !strings.Contains(out, "bytereel version") {
		t.Errorf("Unexpected version output: %s", out)
	}
}

// getProjectRoot returns the directory holding go.mod.
func getProjectRoot(t *testing.T) string {
	dir, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			t.Fatal("Could not find project root (go.mod)")
		}
		dir = parent
	}
}
