// Package joblife drives one asynchronous generation job from submission
// to a terminal state. It owns the polling cadence and the poll bound; it
// knows nothing about the wire shape of a job beyond terminality.
package joblife

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/digitalskillszone555/AI-video-generator-sub000/internal/domain"
)

// Job is the minimal view the runner needs of an in-flight operation.
type Job interface {
	Terminal() bool
}

// SubmitFunc starts a job on the provider and returns its initial state.
type SubmitFunc func(ctx context.Context) (Job, error)

// PollFunc fetches the current state of a job. It must be handed the most
// recently returned job, never an earlier snapshot; its response replaces
// the job wholesale.
type PollFunc func(ctx context.Context, job Job) (Job, error)

// ProgressFunc receives human-readable status updates during the wait.
type ProgressFunc func(status string)

const (
	DefaultInterval = 8 * time.Second
	DefaultMaxPolls = 45
)

// Runner executes the submit/poll loop with a fixed inter-poll delay and a
// hard poll ceiling. A stalled provider surfaces as domain.ErrJobStalled
// instead of waiting forever.
type Runner struct {
	Interval time.Duration
	MaxPolls int
	Logger   zerolog.Logger
}

// NewRunner applies defaults for unset fields.
func NewRunner(interval time.Duration, maxPolls int, logger zerolog.Logger) *Runner {
	if interval <= 0 {
		interval = DefaultInterval
	}
	if maxPolls <= 0 {
		maxPolls = DefaultMaxPolls
	}
	return &Runner{Interval: interval, MaxPolls: maxPolls, Logger: logger}
}

// Run submits once, then polls until the job reports terminal. Progress is
// emitted before the first poll and once per iteration. Transport errors
// from submit or poll abort the run; there is no automatic retry — the
// caller decides whether to resubmit from scratch.
func (r *Runner) Run(ctx context.Context, submit SubmitFunc, poll PollFunc, onProgress ProgressFunc) (Job, error) {
	if onProgress == nil {
		onProgress = func(string) {}
	}

	job, err := submit(ctx)
	if err != nil {
		return nil, err
	}
	r.Logger.Debug().Msg("joblife: job submitted")

	polls := 0
	for !job.Terminal() {
		if polls >= r.MaxPolls {
			r.Logger.Warn().Int("polls", polls).Msg("joblife: poll ceiling reached")
			return nil, fmt.Errorf("%w: no terminal state after %d polls", domain.ErrJobStalled, polls)
		}
		onProgress(fmt.Sprintf("generation in progress (check %d of %d)", polls+1, r.MaxPolls))

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(r.Interval):
		}

		job, err = poll(ctx, job)
		if err != nil {
			return nil, err
		}
		polls++
		r.Logger.Debug().Int("poll", polls).Msg("joblife: polled job")
	}
	return job, nil
}
