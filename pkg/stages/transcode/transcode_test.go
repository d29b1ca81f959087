package transcode

import (
	"context"
	"errors"
	"image"
	"testing"
	"time"

	"github.com/user/bytereel/pkg/adapters/logger"
	"github.com/user/bytereel/pkg/framecodec"
	"github.com/user/bytereel/pkg/geometry"
	"github.com/user/bytereel/pkg/mocks"
	"github.com/user/bytereel/pkg/pipeline"
	"github.com/user/bytereel/pkg/ports"
)

func testFrames(n int) []framecodec.Frame {
	g := geometry.Geometry{Width: 4, Height: 2}
	frames := make([]framecodec.Frame, n)
	for i := range frames {
		frames[i] = framecodec.NewFrame(g)
		frames[i].Pix[0] = byte(i)
	}
	return frames
}

func TestStage_Execute(t *testing.T) {
	mockEncoder := &mocks.VideoEncoder{}
	stage := NewStage(mockEncoder, logger.NewNoop())

	input := pipeline.DefaultTranscodeInput()
	input.Frames = testFrames(48)
	input.OutputPath = "encoded/f__4x2__1000.mkv"

	result, err := stage.Execute(context.Background(), input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Check encoder was called correctly
	if !mockEncoder.BeginCalled {
		t.Error("expected Begin to be called")
	}
	if !mockEncoder.EndCalled {
		t.Error("expected End to be called")
	}
	if mockEncoder.Aborted {
		t.Error("Abort should not be called on success")
	}
	if mockEncoder.Width != 4 || mockEncoder.Height != 2 {
		t.Errorf("expected 4x2, got %dx%d", mockEncoder.Width, mockEncoder.Height)
	}
	if mockEncoder.FPS != 24 || mockEncoder.Options.Codec != "ffv1" {
		t.Errorf("unexpected fps/codec %v/%s", mockEncoder.FPS, mockEncoder.Options.Codec)
	}
	if len(mockEncoder.Frames) != 48 {
		t.Fatalf("expected 48 EncodeFrame calls, got %d", len(mockEncoder.Frames))
	}
	for i, f := range mockEncoder.Frames {
		if f.Pix[0] != byte(i) {
			t.Fatalf("frame %d out of order", i)
		}
	}

	if result.FrameCount != 48 {
		t.Errorf("expected frame count 48, got %d", result.FrameCount)
	}
	if result.Duration != 2*time.Second {
		t.Errorf("expected duration 2s, got %v", result.Duration)
	}
	if result.FileSize != 48*24 {
		t.Errorf("expected file size %d, got %d", 48*24, result.FileSize)
	}
	if result.OutputPath != input.OutputPath {
		t.Errorf("unexpected output path %q", result.OutputPath)
	}
}

func TestStage_Execute_NoFrames(t *testing.T) {
	stage := NewStage(&mocks.VideoEncoder{}, logger.NewNoop())

	_, err := stage.Execute(context.Background(), pipeline.DefaultTranscodeInput())
	if err == nil {
		t.Error("expected error for empty frames")
	}
}

func TestStage_Execute_AbortsOnFrameError(t *testing.T) {
	boom := errors.New("pipe closed")
	calls := 0
	mockEncoder := &mocks.VideoEncoder{
		EncodeFrameFunc: func(img image.Image) error {
			calls++
			if calls == 3 {
				return boom
			}
			return nil
		},
	}
	stage := NewStage(mockEncoder, logger.NewNoop())

	input := pipeline.DefaultTranscodeInput()
	input.Frames = testFrames(5)
	_, err := stage.Execute(context.Background(), input)
	if !errors.Is(err, boom) {
		t.Fatalf("expected encoder error, got %v", err)
	}
	if !mockEncoder.Aborted {
		t.Error("expected Abort to be called")
	}
	if mockEncoder.EndCalled {
		t.Error("End should not be called after a failure")
	}
}

func TestStage_Execute_EndFailureDoesNotAbort(t *testing.T) {
	mockEncoder := &mocks.VideoEncoder{
		EndFunc: func() (int64, error) { return 0, errors.New("muxer failed") },
	}
	stage := NewStage(mockEncoder, logger.NewNoop())

	input := pipeline.DefaultTranscodeInput()
	input.Frames = testFrames(1)
	if _, err := stage.Execute(context.Background(), input); err == nil {
		t.Fatal("expected error from End")
	}
	if mockEncoder.Aborted {
		t.Error("Abort should not follow End")
	}
}

func TestStage_Execute_BeginError(t *testing.T) {
	mockEncoder := &mocks.VideoEncoder{
		BeginFunc: func(string, int, int, float64, ports.EncoderOptions) error {
			return errors.New("ffmpeg not found")
		},
	}
	stage := NewStage(mockEncoder, logger.NewNoop())

	input := pipeline.DefaultTranscodeInput()
	input.Frames = testFrames(1)
	if _, err := stage.Execute(context.Background(), input); err == nil {
		t.Fatal("expected error from Begin")
	}
	if mockEncoder.Aborted {
		t.Error("Abort should not be called when Begin fails")
	}
}

func TestStage_Execute_Cancelled(t *testing.T) {
	mockEncoder := &mocks.VideoEncoder{}
	stage := NewStage(mockEncoder, logger.NewNoop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	input := pipeline.DefaultTranscodeInput()
	input.Frames = testFrames(3)
	_, err := stage.Execute(ctx, input)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if !mockEncoder.Aborted {
		t.Error("expected Abort after cancellation")
	}
}
