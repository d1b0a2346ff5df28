// Package batch implements concurrent conversion of many frame buffers.
package batch

import (
	"context"
	"runtime"
	"sort"
	"sync"

	"github.com/user/yuvsnap/pkg/converter"
	"github.com/user/yuvsnap/pkg/pipeline"
	"github.com/user/yuvsnap/pkg/ports"
)

// Stage converts frames with a pool of workers. A frame that fails to convert
// is dropped and reported; it never fails the batch.
type Stage struct {
	sink       ports.DebugSink
	logger     ports.Logger
	numWorkers int
}

// NewStage creates a new batch stage.
func NewStage(sink ports.DebugSink, logger ports.Logger, numWorkers int) *Stage {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	return &Stage{
		sink:       sink,
		logger:     logger.WithComponent("batch"),
		numWorkers: numWorkers,
	}
}

// outcome holds one frame's result with its position for sorting.
type outcome struct {
	index int
	frame *pipeline.ConvertedFrame
	err   error
}

// Execute converts all frames. It returns ctx.Err() if cancelled; frames
// already converted are still returned.
func (s *Stage) Execute(ctx context.Context, input pipeline.BatchInput) (pipeline.BatchResult, error) {
	numFrames := len(input.Frames)
	if numFrames == 0 {
		return pipeline.BatchResult{Frames: []pipeline.ConvertedFrame{}}, nil
	}

	workers := s.numWorkers
	if workers > numFrames {
		workers = numFrames
	}
	s.logger.Debug("Converting %d frames with %d workers", numFrames, workers)

	jobs := make(chan int, numFrames)
	results := make(chan outcome, numFrames)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go s.worker(ctx, &wg, input, jobs, results)
	}

	for i := 0; i < numFrames; i++ {
		jobs <- i
	}
	close(jobs)

	go func() {
		wg.Wait()
		close(results)
	}()

	outcomes := make([]outcome, 0, numFrames)
	for r := range results {
		outcomes = append(outcomes, r)
	}

	sort.Slice(outcomes, func(i, j int) bool {
		return outcomes[i].index < outcomes[j].index
	})

	result := pipeline.BatchResult{Frames: make([]pipeline.ConvertedFrame, 0, len(outcomes))}
	for _, o := range outcomes {
		if o.err != nil {
			s.logger.Warn("Dropped frame %d: %v", o.index, o.err)
			result.Dropped = append(result.Dropped, pipeline.DroppedFrame{Index: o.index, Err: o.err})
			continue
		}
		result.Frames = append(result.Frames, *o.frame)

		if s.sink.Enabled() {
			if err := s.sink.SaveConvertedFrame(o.index, o.frame.Image); err != nil {
				s.logger.Warn("Failed to save debug frame %d: %v", o.index, err)
			}
		}
	}

	if err := ctx.Err(); err != nil {
		return result, err
	}

	s.logger.Debug("Converted %d of %d frames", len(result.Frames), numFrames)
	return result, nil
}

func (s *Stage) worker(
	ctx context.Context,
	wg *sync.WaitGroup,
	input pipeline.BatchInput,
	jobs <-chan int,
	results chan<- outcome,
) {
	defer wg.Done()

	for i := range jobs {
		select {
		case <-ctx.Done():
			return
		default:
		}

		index := input.IndexOf(i)
		img, err := converter.Convert(input.Frames[i])
		if err != nil {
			results <- outcome{index: index, err: err}
			continue
		}
		results <- outcome{index: index, frame: &pipeline.ConvertedFrame{Index: index, Image: img}}
	}
}
