package gateway

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/digitalskillszone555/AI-video-generator-sub000/internal/domain"
)

func testClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)
	client := NewClient(Options{
		APIKey:     "test-key",
		BaseURL:    ts.URL,
		ImageModel: "img-model",
		VideoModel: "vid-model",
		Logger:     zerolog.Nop(),
	})
	return client, ts
}

func TestSubmitVideoJob(t *testing.T) {
	client, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/models/vid-model:predictLongRunning" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("key"); got != "test-key" {
			t.Fatalf("missing key query param, got %q", got)
		}
		var payload predictLongRunningRequest
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if len(payload.Instances) != 1 || payload.Instances[0].Prompt != "a storm over hills" {
			t.Fatalf("prompt not forwarded: %+v", payload.Instances)
		}
		if payload.Parameters.Resolution != "1080p" || payload.Parameters.AspectRatio != "16:9" {
			t.Fatalf("parameters not forwarded: %+v", payload.Parameters)
		}
		if payload.Instances[0].Video != nil {
			t.Fatalf("fresh submit must not carry a parent video")
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"name": "operations/op-1", "done": false})
	})

	job, err := client.SubmitVideoJob(context.Background(), VideoJobRequest{
		Prompt:         "a storm over hills",
		ResolutionTier: "1080p",
		AspectRatio:    "16:9",
	})
	if err != nil {
		t.Fatalf("SubmitVideoJob: %v", err)
	}
	if job.Name != "operations/op-1" || job.Terminal() {
		t.Fatalf("unexpected job: %+v", job)
	}
}

func TestSubmitVideoJobWithParentHandle(t *testing.T) {
	client, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		var payload predictLongRunningRequest
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if payload.Instances[0].Video == nil || payload.Instances[0].Video.URI != "files/parent-video" {
			t.Fatalf("parent handle not attached: %+v", payload.Instances[0])
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"name": "operations/op-2", "done": false})
	})

	if _, err := client.SubmitVideoJob(context.Background(), VideoJobRequest{
		Prompt:            "keep going",
		ParentVideoHandle: "files/parent-video",
	}); err != nil {
		t.Fatalf("SubmitVideoJob: %v", err)
	}
}

func TestPollVideoJobDone(t *testing.T) {
	client, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/models/vid-model:fetchPredictOperation" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		var payload fetchOperationRequest
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if payload.OperationName != "operations/op-1" {
			t.Fatalf("operation name = %q", payload.OperationName)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"name": "operations/op-1",
			"done": true,
			"response": map[string]any{
				"generateVideoResponse": map[string]any{
					"generatedSamples": []map[string]any{
						{"video": map[string]any{"uri": "files/result-video"}},
					},
				},
			},
		})
	})

	job, err := client.PollVideoJob(context.Background(), &Job{Name: "operations/op-1"})
	if err != nil {
		t.Fatalf("PollVideoJob: %v", err)
	}
	if !job.Terminal() || job.ResultHandle != "files/result-video" {
		t.Fatalf("unexpected job: %+v", job)
	}
}

func TestPollVideoJobProviderError(t *testing.T) {
	client, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"name":  "operations/op-1",
			"done":  true,
			"error": map[string]any{"message": "quota exhausted"},
		})
	})
	_, err := client.PollVideoJob(context.Background(), &Job{Name: "operations/op-1"})
	if !errors.Is(err, domain.ErrTransport) {
		t.Fatalf("err = %v, want ErrTransport", err)
	}
}

func TestFetchBinaryAppendsCredential(t *testing.T) {
	payload := []byte("binary video bytes")
	client, ts := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("key"); got != "test-key" {
			t.Fatalf("credential not appended, got %q", got)
		}
		_, _ = w.Write(payload)
	})

	data, err := client.FetchBinary(context.Background(), ts.URL+"/files/result-video")
	if err != nil {
		t.Fatalf("FetchBinary: %v", err)
	}
	if string(data) != string(payload) {
		t.Fatalf("payload mismatch")
	}
}

func TestTransformImageReturnsBinary(t *testing.T) {
	raw := []byte{0x89, 0x50, 0x4e, 0x47}
	client, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/models/img-model:generateContent" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"candidates": []map[string]any{{
				"content": map[string]any{
					"parts": []map[string]any{
						{"inlineData": map[string]any{
							"mimeType": "image/png",
							"data":     base64.StdEncoding.EncodeToString(raw),
						}},
					},
				},
			}},
		})
	})

	data, err := client.TransformImage(context.Background(), "c291cmNl", "make it dramatic")
	if err != nil {
		t.Fatalf("TransformImage: %v", err)
	}
	if string(data) != string(raw) {
		t.Fatalf("decoded payload mismatch")
	}
}

func TestTransformImageEmptyOutputIsNotAnError(t *testing.T) {
	client, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"candidates": []map[string]any{{
				"content": map[string]any{
					"parts": []map[string]any{{"text": "I cannot edit this image."}},
				},
			}},
		})
	})

	data, err := client.TransformImage(context.Background(), "c291cmNl", "do a thing")
	if err != nil {
		t.Fatalf("TransformImage: %v", err)
	}
	if data != nil {
		t.Fatalf("expected empty payload, got %d bytes", len(data))
	}
}

func TestTransportErrorsWrapSentinel(t *testing.T) {
	client, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]any{"error": map[string]any{"message": "backend down"}})
	})
	_, err := client.SubmitVideoJob(context.Background(), VideoJobRequest{Prompt: "x"})
	if !errors.Is(err, domain.ErrTransport) {
		t.Fatalf("err = %v, want ErrTransport", err)
	}
	if !strings.Contains(err.Error(), "backend down") {
		t.Fatalf("provider message lost: %v", err)
	}
}

func TestAnalyzeImage(t *testing.T) {
	client, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		analysis := `{"is_subject":true,"name":"Monstera","scientific_name":"Monstera deliciosa",` +
			`"description":"A broad-leafed houseplant.",` +
			`"care":{"watering":"weekly","light":"indirect","soil":"well-draining","temperature":"18-27C"}}`
		_ = json.NewEncoder(w).Encode(map[string]any{
			"candidates": []map[string]any{{
				"content": map[string]any{
					"parts": []map[string]any{{"text": "```json\n" + analysis + "\n```"}},
				},
			}},
		})
	})

	got, err := client.AnalyzeImage(context.Background(), "c291cmNl")
	if err != nil {
		t.Fatalf("AnalyzeImage: %v", err)
	}
	if !got.IsSubject || got.Name != "Monstera" || got.Care.Watering != "weekly" {
		t.Fatalf("unexpected analysis: %+v", got)
	}
}
