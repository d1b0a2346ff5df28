// Package pipeline provides the stage infrastructure for yuvsnap.
package pipeline

import (
	"context"
)

// Stage represents a processing step that turns an input into an output.
type Stage[In, Out any] interface {
	// Execute runs the stage with the given input and returns the output.
	Execute(ctx context.Context, input In) (Out, error)
}

// StageFunc adapts a function to the Stage interface.
type StageFunc[In, Out any] func(ctx context.Context, input In) (Out, error)

// Execute implements Stage interface.
func (f StageFunc[In, Out]) Execute(ctx context.Context, input In) (Out, error) {
	return f(ctx, input)
}

// Accumulator is a stage that consumes its input in parts and produces one
// output once all parts have been added. Parts need not be retained after Add.
type Accumulator[In, Out any] interface {
	Add(ctx context.Context, input In) error
	Finish(ctx context.Context) (Out, error)
}
