// Package gateway is the HTTP client for the remote generation backend.
// It covers the three capabilities the orchestrator relies on: synchronous
// image analysis and transformation, and the asynchronous video job
// submit/poll/fetch protocol. Everything behind the wire is opaque.
package gateway

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/digitalskillszone555/AI-video-generator-sub000/internal/domain"
)

// Job is one in-flight or completed video generation on the provider side.
// Poll responses replace the whole value; it is never merged field-wise.
type Job struct {
	Name         string
	Done         bool
	ResultHandle string
	// Raw carries the provider's last operation payload so the next poll
	// can echo whatever state the backend expects back.
	Raw json.RawMessage
}

// Terminal reports whether the job reached its final state. A terminal job
// must not be polled again.
func (j *Job) Terminal() bool {
	return j != nil && j.Done
}

// VideoJobRequest describes one video synthesis submission.
type VideoJobRequest struct {
	Prompt            string
	ResolutionTier    string
	AspectRatio       string
	ParentVideoHandle string
}

// CareGuide is the nested care section of an analysis result.
type CareGuide struct {
	Watering    string `json:"watering"`
	Light       string `json:"light"`
	Soil        string `json:"soil"`
	Temperature string `json:"temperature"`
}

// Analysis is the structured record returned by the classification call.
type Analysis struct {
	IsSubject      bool      `json:"is_subject"`
	Name           string    `json:"name"`
	ScientificName string    `json:"scientific_name"`
	Description    string    `json:"description"`
	Care           CareGuide `json:"care"`
}

// Options controls how the gateway client is configured.
type Options struct {
	APIKey string
	// APIKeyFunc, when set, resolves the credential per call so one
	// selected mid-session takes effect without a restart. It overrides
	// APIKey.
	APIKeyFunc func(ctx context.Context) string
	BaseURL    string
	ImageModel string
	VideoModel string
	HTTPClient *http.Client
	Logger     zerolog.Logger
}

// Client talks to the generation backend. Construct with NewClient.
type Client struct {
	apiKey     func(ctx context.Context) string
	baseURL    string
	imageModel string
	videoModel string
	httpClient *http.Client
	logger     zerolog.Logger
}

// NewClient applies defaults for any unset option. Callers may provide a
// nil HTTP client; a reusable one with a sane timeout is created.
func NewClient(opts Options) *Client {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 120 * time.Second}
	}
	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = "https://generativelanguage.googleapis.com/v1beta"
	}
	imageModel := opts.ImageModel
	if imageModel == "" {
		imageModel = "gemini-2.5-flash-image"
	}
	videoModel := opts.VideoModel
	if videoModel == "" {
		videoModel = "veo-3.1-generate-preview"
	}
	keyFunc := opts.APIKeyFunc
	if keyFunc == nil {
		staticKey := strings.TrimSpace(opts.APIKey)
		keyFunc = func(context.Context) string { return staticKey }
	}
	return &Client{
		apiKey:     keyFunc,
		baseURL:    baseURL,
		imageModel: imageModel,
		videoModel: videoModel,
		httpClient: httpClient,
		logger:     opts.Logger,
	}
}

type videoInstance struct {
	Prompt string          `json:"prompt"`
	Video  *videoReference `json:"video,omitempty"`
}

type videoReference struct {
	URI string `json:"uri"`
}

type videoParameters struct {
	AspectRatio string `json:"aspectRatio,omitempty"`
	Resolution  string `json:"resolution,omitempty"`
}

type predictLongRunningRequest struct {
	Instances  []videoInstance `json:"instances"`
	Parameters videoParameters `json:"parameters"`
}

type operationResponse struct {
	Name     string `json:"name"`
	Done     bool   `json:"done"`
	Error    *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
	Response *struct {
		GenerateVideoResponse struct {
			GeneratedSamples []struct {
				Video videoReference `json:"video"`
			} `json:"generatedSamples"`
		} `json:"generateVideoResponse"`
	} `json:"response,omitempty"`
}

// SubmitVideoJob starts a long-running video synthesis and returns the
// initial, not-necessarily-done job.
func (c *Client) SubmitVideoJob(ctx context.Context, req VideoJobRequest) (*Job, error) {
	payload := predictLongRunningRequest{
		Instances: []videoInstance{{Prompt: req.Prompt}},
		Parameters: videoParameters{
			AspectRatio: req.AspectRatio,
			Resolution:  req.ResolutionTier,
		},
	}
	if req.ParentVideoHandle != "" {
		payload.Instances[0].Video = &videoReference{URI: req.ParentVideoHandle}
	}

	var op operationResponse
	path := fmt.Sprintf("/models/%s:predictLongRunning", c.videoModel)
	raw, err := c.invoke(ctx, path, payload, &op)
	if err != nil {
		return nil, err
	}
	c.logger.Debug().Str("operation", op.Name).Msg("gateway: video job submitted")
	return jobFromOperation(op, raw)
}

type fetchOperationRequest struct {
	OperationName string `json:"operationName"`
}

// PollVideoJob fetches the current state of a previously submitted job. It
// must receive the most recently returned job; the response replaces it.
func (c *Client) PollVideoJob(ctx context.Context, job *Job) (*Job, error) {
	if job == nil || job.Name == "" {
		return nil, fmt.Errorf("gateway: %w: poll requires a submitted job", domain.ErrInvalidInput)
	}
	var op operationResponse
	path := fmt.Sprintf("/models/%s:fetchPredictOperation", c.videoModel)
	raw, err := c.invoke(ctx, path, fetchOperationRequest{OperationName: job.Name}, &op)
	if err != nil {
		return nil, err
	}
	return jobFromOperation(op, raw)
}

func jobFromOperation(op operationResponse, raw json.RawMessage) (*Job, error) {
	if op.Done && op.Error != nil {
		return nil, fmt.Errorf("%w: video job failed: %s", domain.ErrTransport, op.Error.Message)
	}
	job := &Job{Name: op.Name, Done: op.Done, Raw: raw}
	if op.Done && op.Response != nil {
		samples := op.Response.GenerateVideoResponse.GeneratedSamples
		if len(samples) == 0 || samples[0].Video.URI == "" {
			return nil, fmt.Errorf("%w: video job done without a result handle", domain.ErrTransport)
		}
		job.ResultHandle = samples[0].Video.URI
	}
	return job, nil
}

// FetchBinary downloads a completed result. The locator is only valid once
// the owning job is done; the access credential rides along as a query
// parameter.
func (c *Client) FetchBinary(ctx context.Context, locator string) ([]byte, error) {
	target := locator
	if !strings.HasPrefix(locator, "http://") && !strings.HasPrefix(locator, "https://") {
		target = c.baseURL + "/" + strings.TrimLeft(locator, "/")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("gateway: create fetch request: %w", err)
	}
	if key := c.apiKey(ctx); key != "" {
		q := req.URL.Query()
		q.Set("key", key)
		req.URL.RawQuery = q.Encode()
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: fetch binary: %v", domain.ErrTransport, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		data, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: fetch binary status %d: %s", domain.ErrTransport, resp.StatusCode, strings.TrimSpace(string(data)))
	}
	blob, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read binary: %v", domain.ErrTransport, err)
	}
	return blob, nil
}

type generateContentRequest struct {
	Contents         []content         `json:"contents"`
	GenerationConfig *generationConfig `json:"generationConfig,omitempty"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inlineData,omitempty"`
}

type inlineData struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"`
}

type generationConfig struct {
	ResponseMimeType   string   `json:"responseMimeType,omitempty"`
	ResponseModalities []string `json:"responseModalities,omitempty"`
}

type generateContentResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

// TransformImage runs the synchronous stylistic edit. A (nil, nil) return
// means the backend answered cleanly but produced no image; that case is
// not a transport failure and callers must treat it separately.
func (c *Client) TransformImage(ctx context.Context, imageBase64, instruction string) ([]byte, error) {
	payload := generateContentRequest{
		Contents: []content{{Parts: []part{
			{InlineData: &inlineData{MimeType: "image/jpeg", Data: imageBase64}},
			{Text: instruction},
		}}},
		GenerationConfig: &generationConfig{ResponseModalities: []string{"IMAGE"}},
	}

	var out generateContentResponse
	path := fmt.Sprintf("/models/%s:generateContent", c.imageModel)
	if _, err := c.invoke(ctx, path, payload, &out); err != nil {
		return nil, err
	}
	for _, candidate := range out.Candidates {
		for _, p := range candidate.Content.Parts {
			if p.InlineData == nil || p.InlineData.Data == "" {
				continue
			}
			data, err := base64.StdEncoding.DecodeString(p.InlineData.Data)
			if err != nil {
				return nil, fmt.Errorf("gateway: decode inline image: %w", err)
			}
			return data, nil
		}
	}
	return nil, nil
}

const analysisPrompt = `Analyze the attached photo. Respond with JSON only, using keys ` +
	`is_subject, name, scientific_name, description and care ` +
	`(an object with watering, light, soil, temperature).`

// AnalyzeImage runs the synchronous classification call shared with the
// identification flow.
func (c *Client) AnalyzeImage(ctx context.Context, imageBase64 string) (*Analysis, error) {
	payload := generateContentRequest{
		Contents: []content{{Parts: []part{
			{InlineData: &inlineData{MimeType: "image/jpeg", Data: imageBase64}},
			{Text: analysisPrompt},
		}}},
		GenerationConfig: &generationConfig{ResponseMimeType: "application/json"},
	}

	var out generateContentResponse
	path := fmt.Sprintf("/models/%s:generateContent", c.imageModel)
	if _, err := c.invoke(ctx, path, payload, &out); err != nil {
		return nil, err
	}
	for _, candidate := range out.Candidates {
		for _, p := range candidate.Content.Parts {
			if strings.TrimSpace(p.Text) == "" {
				continue
			}
			var analysis Analysis
			if err := json.Unmarshal([]byte(cleanJSONText(p.Text)), &analysis); err != nil {
				return nil, fmt.Errorf("gateway: decode analysis: %w", err)
			}
			return &analysis, nil
		}
	}
	return nil, fmt.Errorf("%w: analysis returned no content", domain.ErrTransport)
}

// cleanJSONText strips markdown fences some models wrap around JSON output.
func cleanJSONText(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

func (c *Client) invoke(ctx context.Context, path string, payload, out any) (json.RawMessage, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("gateway: marshal request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("gateway: create request: %w", err)
	}
	q := req.URL.Query()
	if key := c.apiKey(ctx); key != "" {
		q.Set("key", key)
	}
	req.URL.RawQuery = q.Encode()
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrTransport, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %v", domain.ErrTransport, err)
	}
	if resp.StatusCode >= http.StatusBadRequest {
		var apiErr struct {
			Error struct {
				Message string `json:"message"`
			} `json:"error"`
		}
		if err := json.Unmarshal(raw, &apiErr); err == nil && apiErr.Error.Message != "" {
			return nil, fmt.Errorf("%w: status %d: %s", domain.ErrTransport, resp.StatusCode, apiErr.Error.Message)
		}
		return nil, fmt.Errorf("%w: status %d: %s", domain.ErrTransport, resp.StatusCode, strings.TrimSpace(string(raw)))
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return nil, fmt.Errorf("gateway: decode response: %w", err)
	}
	return raw, nil
}
