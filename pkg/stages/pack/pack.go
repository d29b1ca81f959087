// Package pack implements the byte-to-frame packing stage.
package pack

import (
	"context"
	"fmt"
	"runtime"
	"sort"
	"sync"

	"github.com/user/bytereel/pkg/framecodec"
	"github.com/user/bytereel/pkg/pipeline"
	"github.com/user/bytereel/pkg/ports"
)

// Stage splits input bytes into fixed-size RGB frames.
type Stage struct {
	writer     *framecodec.Writer
	sink       ports.FrameSink
	logger     ports.Logger
	numWorkers int
}

// NewStage creates a new pack stage.
func NewStage(writer *framecodec.Writer, sink ports.FrameSink, logger ports.Logger, numWorkers int) *Stage {
	if writer == nil {
		writer = framecodec.NewWriter()
	}
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	return &Stage{
		writer:     writer,
		sink:       sink,
		logger:     logger.WithComponent("pack"),
		numWorkers: numWorkers,
	}
}

// Execute packs all bytes into frames in sequence order.
func (s *Stage) Execute(ctx context.Context, input pipeline.PackInput) (pipeline.PackResult, error) {
	meta, err := s.writer.Plan(input.Name, int64(len(input.Data)), input.Geometry)
	if err != nil {
		return pipeline.PackResult{}, err
	}

	numFrames := meta.FrameCount()
	s.logger.Debug("Packing %d bytes into %d frames of %s with %d workers",
		len(input.Data), numFrames, input.Geometry, s.numWorkers)

	frames, err := s.executeParallel(ctx, input, numFrames)
	if err != nil {
		return pipeline.PackResult{}, err
	}

	s.logger.Debug("Packing completed")
	return pipeline.PackResult{
		Frames:   frames,
		Metadata: meta,
		Padding:  meta.PaddingBytes(),
	}, nil
}

// indexedFrame holds a frame with its sequence index for sorting.
type indexedFrame struct {
	index int
	frame framecodec.Frame
}

// executeParallel packs frames using worker pool.
func (s *Stage) executeParallel(ctx context.Context, input pipeline.PackInput, numFrames int) ([]framecodec.Frame, error) {
	jobs := make(chan int, numFrames)
	results := make(chan indexedFrame, numFrames)
	errChan := make(chan error, s.numWorkers)

	// Start workers
	var wg sync.WaitGroup
	for w := 0; w < s.numWorkers; w++ {
		wg.Add(1)
		go s.worker(ctx, &wg, input, jobs, results, errChan)
	}

	// Send jobs
	for i := 0; i < numFrames; i++ {
		jobs <- i
	}
	close(jobs)

	// Wait for workers to finish
	go func() {
		wg.Wait()
		close(results)
		close(errChan)
	}()

	// Collect results
	frames := make([]indexedFrame, 0, numFrames)
	for result := range results {
		frames = append(frames, result)

		if s.sink.Enabled() {
			if err := s.sink.SaveFrame(result.index, result.frame); err != nil {
				s.logger.Warn("Failed to save debug frame %d: %v", result.index, err)
			}
		}
	}

	// Check for errors
	if err := <-errChan; err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(frames) != numFrames {
		return nil, fmt.Errorf("packed %d of %d frames", len(frames), numFrames)
	}

	// Sort by index to maintain order
	sort.Slice(frames, func(i, j int) bool {
		return frames[i].index < frames[j].index
	})

	packed := make([]framecodec.Frame, len(frames))
	for i, f := range frames {
		packed[i] = f.frame
	}
	return packed, nil
}

// worker packs frames from jobs channel.
func (s *Stage) worker(
	ctx context.Context,
	wg *sync.WaitGroup,
	input pipeline.PackInput,
	jobs <-chan int,
	results chan<- indexedFrame,
	errChan chan<- error,
) {
	defer wg.Done()

	for idx := range jobs {
		select {
		case <-ctx.Done():
			select {
			case errChan <- ctx.Err():
			default:
			}
			return
		default:
		}

		results <- indexedFrame{index: idx, frame: framecodec.PackFrame(input.Data, idx, input.Geometry)}
	}
}
