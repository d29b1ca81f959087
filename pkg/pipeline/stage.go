// Package pipeline provides the stage infrastructure shared by the encode and decode paths.
package pipeline

import (
	"context"
	"time"
)

// Stage is one step of an encode or decode job.
type Stage[In, Out any] interface {
	Execute(ctx context.Context, input In) (Out, error)
}

// StageFunc adapts a plain function to Stage.
type StageFunc[In, Out any] func(ctx context.Context, input In) (Out, error)

// Execute calls f.
func (f StageFunc[In, Out]) Execute(ctx context.Context, input In) (Out, error) {
	return f(ctx, input)
}

// ObserveFunc receives the name and wall time of a finished stage run.
// err is the error the stage returned, if any.
type ObserveFunc func(stage string, elapsed time.Duration, err error)

// Observed wraps s so that every Execute is reported to observe under name.
// A nil observe returns s unchanged.
func Observed[In, Out any](name string, s Stage[In, Out], observe ObserveFunc) Stage[In, Out] {
	if observe == nil || s == nil {
		return s
	}
	return StageFunc[In, Out](func(ctx context.Context, input In) (Out, error) {
		start := time.Now()
		out, err := s.Execute(ctx, input)
		observe(name, time.Since(start), err)
		return out, err
	})
}
