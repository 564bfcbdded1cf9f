// Package orchestrator is the façade over the two generation pipelines.
// It classifies intent, drives the asynchronous video job lifecycle or the
// synchronous image edit, and normalizes both into one artifact shape.
package orchestrator

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/digitalskillszone555/AI-video-generator-sub000/internal/auth"
	"github.com/digitalskillszone555/AI-video-generator-sub000/internal/domain"
	"github.com/digitalskillszone555/AI-video-generator-sub000/internal/gateway"
	"github.com/digitalskillszone555/AI-video-generator-sub000/internal/intent"
	"github.com/digitalskillszone555/AI-video-generator-sub000/internal/joblife"
	"github.com/digitalskillszone555/AI-video-generator-sub000/internal/lineage"
	"github.com/digitalskillszone555/AI-video-generator-sub000/internal/metrics"
	"github.com/digitalskillszone555/AI-video-generator-sub000/internal/prompting"
	"github.com/digitalskillszone555/AI-video-generator-sub000/internal/storage"
)

// Gateway is the slice of the remote generation backend the orchestrator
// uses.
type Gateway interface {
	SubmitVideoJob(ctx context.Context, req gateway.VideoJobRequest) (*gateway.Job, error)
	PollVideoJob(ctx context.Context, job *gateway.Job) (*gateway.Job, error)
	FetchBinary(ctx context.Context, locator string) ([]byte, error)
	TransformImage(ctx context.Context, imageBase64, instruction string) ([]byte, error)
}

// Options wires the orchestrator's collaborators.
type Options struct {
	Gateway    Gateway
	Gate       auth.Gate
	Runner     *joblife.Runner
	Lineage    *lineage.Store
	Files      *storage.FileStore
	Classifier *intent.Classifier
	Metrics    *metrics.Metrics
	Logger     zerolog.Logger

	StorageBaseURL   string
	CreateResolution string
	ExtendResolution string
	AspectRatio      string
}

// Orchestrator exposes the two public operations, Refine and Extend. It is
// stateless between calls; concurrent calls run independently and the
// lineage store resolves races on the active artifact last-write-wins.
type Orchestrator struct {
	gw         Gateway
	gate       auth.Gate
	runner     *joblife.Runner
	lineage    *lineage.Store
	files      *storage.FileStore
	classifier *intent.Classifier
	metrics    *metrics.Metrics
	logger     zerolog.Logger

	storageBaseURL   string
	createResolution string
	extendResolution string
	aspectRatio      string
}

// New constructs an orchestrator, applying defaults for optional pieces.
func New(opts Options) *Orchestrator {
	classifier := opts.Classifier
	if classifier == nil {
		classifier = intent.New(nil)
	}
	runner := opts.Runner
	if runner == nil {
		runner = joblife.NewRunner(0, 0, opts.Logger)
	}
	m := opts.Metrics
	if m == nil {
		m = metrics.New()
	}
	createResolution := opts.CreateResolution
	if createResolution == "" {
		createResolution = "1080p"
	}
	extendResolution := opts.ExtendResolution
	if extendResolution == "" {
		extendResolution = "720p"
	}
	aspectRatio := opts.AspectRatio
	if aspectRatio == "" {
		aspectRatio = "16:9"
	}
	return &Orchestrator{
		gw:               opts.Gateway,
		gate:             opts.Gate,
		runner:           runner,
		lineage:          opts.Lineage,
		files:            opts.Files,
		classifier:       classifier,
		metrics:          m,
		logger:           opts.Logger,
		storageBaseURL:   opts.StorageBaseURL,
		createResolution: createResolution,
		extendResolution: extendResolution,
		aspectRatio:      aspectRatio,
	}
}

// RefineRequest drives one orchestration call. Mode is an optional
// explicit route; when unset the instruction is classified.
type RefineRequest struct {
	SourceImageBase64 string
	Instruction       string
	Mode              intent.Mode
	OnProgress        joblife.ProgressFunc
}

// Refine produces a fresh artifact from a source image and an instruction.
// The result is returned to the caller and deliberately not appended to
// the lineage store; keeping it is the caller's decision.
func (o *Orchestrator) Refine(ctx context.Context, req RefineRequest) (*domain.Artifact, error) {
	if req.SourceImageBase64 == "" {
		return nil, fmt.Errorf("%w: source image is required", domain.ErrInvalidInput)
	}
	onProgress := req.OnProgress
	if onProgress == nil {
		onProgress = func(string) {}
	}

	if err := o.ensureAuthorized(ctx, onProgress); err != nil {
		return nil, o.fail(err)
	}

	mode := req.Mode
	if mode == "" {
		mode = o.classifier.Classify(req.Instruction)
	}
	o.logger.Info().Str("mode", string(mode)).Msg("orchestrator: refine routed")
	o.metrics.JobsSubmitted.WithLabelValues(string(mode)).Inc()

	switch mode {
	case intent.ModeVideoSynthesis:
		artifact, err := o.runVideo(ctx, req.Instruction, o.createResolution, "", "", onProgress)
		if err != nil {
			return nil, o.fail(err)
		}
		return artifact, nil
	default:
		artifact, err := o.editImage(ctx, req, onProgress)
		if err != nil {
			return nil, o.fail(err)
		}
		return artifact, nil
	}
}

// Extend produces a continuation of an existing video artifact. The new
// artifact is appended to the lineage store and becomes active.
func (o *Orchestrator) Extend(ctx context.Context, parent *domain.Artifact, instruction string, onProgress joblife.ProgressFunc) (*domain.Artifact, error) {
	if parent == nil || parent.Kind != domain.ArtifactVideo || parent.ProviderHandle == "" {
		return nil, fmt.Errorf("%w: only video artifacts can be extended", domain.ErrInvalidExtensionTarget)
	}
	if instruction == "" {
		return nil, fmt.Errorf("%w: instruction is required", domain.ErrInvalidInput)
	}
	if onProgress == nil {
		onProgress = func(string) {}
	}

	if err := o.ensureAuthorized(ctx, onProgress); err != nil {
		return nil, o.fail(err)
	}
	o.metrics.JobsSubmitted.WithLabelValues("extension").Inc()

	// Extensions always use the lower resolution tier to bound the cost of
	// iterative refinement.
	prompt := prompting.BuildExtension(instruction)
	artifact, err := o.runVideo(ctx, prompt, o.extendResolution, parent.ProviderHandle, parent.ID, onProgress)
	if err != nil {
		return nil, o.fail(err)
	}
	if o.lineage != nil {
		if err := o.lineage.Append(artifact); err != nil {
			return nil, o.fail(err)
		}
		if err := o.lineage.SetActive(artifact.ID); err != nil {
			return nil, o.fail(err)
		}
	}
	return artifact, nil
}

// ensureAuthorized checks the gate, requests a credential selection once
// when ungated, then re-checks rather than assuming the request succeeded.
func (o *Orchestrator) ensureAuthorized(ctx context.Context, onProgress joblife.ProgressFunc) error {
	ok, err := o.gate.IsAuthorized(ctx)
	if err != nil {
		return fmt.Errorf("%w: authorization check: %v", domain.ErrTransport, err)
	}
	if ok {
		return nil
	}
	onProgress("waiting for credential selection")
	if err := o.gate.RequestAuthorization(ctx); err != nil {
		return fmt.Errorf("%w: authorization request: %v", domain.ErrTransport, err)
	}
	ok, err = o.gate.IsAuthorized(ctx)
	if err != nil {
		return fmt.Errorf("%w: authorization re-check: %v", domain.ErrTransport, err)
	}
	if !ok {
		return domain.ErrNotAuthorized
	}
	return nil
}

func (o *Orchestrator) editImage(ctx context.Context, req RefineRequest, onProgress joblife.ProgressFunc) (*domain.Artifact, error) {
	onProgress("applying image edit")
	data, err := o.gw.TransformImage(ctx, req.SourceImageBase64, req.Instruction)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		// A clean response without a payload is not a transport error; the
		// caller may retry with the same input.
		return nil, fmt.Errorf("%w: image edit produced no payload", domain.ErrEmptyOutput)
	}

	onProgress("saving result")
	key, err := o.files.Write(ctx, fmt.Sprintf("images/%s.png", uuid.NewString()), data)
	if err != nil {
		return nil, err
	}
	return domain.NewImageArtifact(o.mediaURL(key), req.Instruction), nil
}

func (o *Orchestrator) runVideo(ctx context.Context, instruction, resolution, parentHandle, parentID string, onProgress joblife.ProgressFunc) (*domain.Artifact, error) {
	submit := func(ctx context.Context) (joblife.Job, error) {
		onProgress("submitting video job")
		job, err := o.gw.SubmitVideoJob(ctx, gateway.VideoJobRequest{
			Prompt:            instruction,
			ResolutionTier:    resolution,
			AspectRatio:       o.aspectRatio,
			ParentVideoHandle: parentHandle,
		})
		if err != nil {
			return nil, err
		}
		return job, nil
	}
	poll := func(ctx context.Context, j joblife.Job) (joblife.Job, error) {
		o.metrics.PollsTotal.Inc()
		job, err := o.gw.PollVideoJob(ctx, j.(*gateway.Job))
		if err != nil {
			return nil, err
		}
		return job, nil
	}

	job, err := o.runner.Run(ctx, submit, poll, onProgress)
	if err != nil {
		return nil, err
	}
	done := job.(*gateway.Job)

	onProgress("fetching video")
	data, err := o.gw.FetchBinary(ctx, done.ResultHandle)
	if err != nil {
		return nil, err
	}
	onProgress("saving result")
	key, err := o.files.Write(ctx, fmt.Sprintf("videos/%s.mp4", uuid.NewString()), data)
	if err != nil {
		return nil, err
	}
	return domain.NewVideoArtifact(o.mediaURL(key), instruction, done.ResultHandle, resolution, o.aspectRatio, parentID), nil
}

func (o *Orchestrator) mediaURL(key string) string {
	if o.storageBaseURL == "" {
		return key
	}
	return o.storageBaseURL + "/" + key
}

// fail counts the failure by kind before handing it back. Errors are never
// swallowed; every failure reaches the caller.
func (o *Orchestrator) fail(err error) error {
	o.metrics.Failures.WithLabelValues(failureKind(err)).Inc()
	o.logger.Error().Err(err).Msg("orchestrator: call failed")
	return err
}

func failureKind(err error) string {
	switch {
	case errors.Is(err, domain.ErrNotAuthorized):
		return "not_authorized"
	case errors.Is(err, domain.ErrEmptyOutput):
		return "empty_output"
	case errors.Is(err, domain.ErrJobStalled):
		return "stalled"
	case errors.Is(err, domain.ErrInvalidExtensionTarget), errors.Is(err, domain.ErrInvalidInput):
		return "invalid_input"
	case errors.Is(err, domain.ErrTransport):
		return "transport"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "canceled"
	default:
		return "internal"
	}
}
