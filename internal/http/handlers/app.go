// Package handlers exposes the orchestrator over HTTP.
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/digitalskillszone555/AI-video-generator-sub000/internal/auth"
	"github.com/digitalskillszone555/AI-video-generator-sub000/internal/domain"
	"github.com/digitalskillszone555/AI-video-generator-sub000/internal/gateway"
	"github.com/digitalskillszone555/AI-video-generator-sub000/internal/joblife"
	"github.com/digitalskillszone555/AI-video-generator-sub000/internal/lineage"
	"github.com/digitalskillszone555/AI-video-generator-sub000/internal/middleware"
	"github.com/digitalskillszone555/AI-video-generator-sub000/internal/orchestrator"
)

// RefineService is the orchestrator surface the handlers call.
type RefineService interface {
	Refine(ctx context.Context, req orchestrator.RefineRequest) (*domain.Artifact, error)
	Extend(ctx context.Context, parent *domain.Artifact, instruction string, onProgress joblife.ProgressFunc) (*domain.Artifact, error)
}

// Analyzer runs the synchronous classification call.
type Analyzer interface {
	AnalyzeImage(ctx context.Context, imageBase64 string) (*gateway.Analysis, error)
}

// CredentialStore selects and reads provider credentials. Nil when no
// database is configured.
type CredentialStore interface {
	Token(ctx context.Context, provider string) (string, error)
	Select(ctx context.Context, provider, token string) error
}

// App carries the handler dependencies.
type App struct {
	Logger      zerolog.Logger
	Service     RefineService
	Analyzer    Analyzer
	Lineage     *lineage.Store
	Credentials CredentialStore
	Gate        auth.Gate
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) error(w http.ResponseWriter, r *http.Request, status int, code string) {
	locale := middleware.LocaleFromContext(r.Context())
	a.json(w, status, map[string]any{"error": code, "message": message(locale, code)})
}

// serviceError maps the orchestrator's error taxonomy onto HTTP statuses.
// EmptyOutput and NotAuthorized stay distinct on purpose; an empty model
// response is not an authorization problem.
func (a *App) serviceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrNotAuthorized):
		a.error(w, r, http.StatusForbidden, "not_authorized")
	case errors.Is(err, domain.ErrInvalidExtensionTarget):
		a.error(w, r, http.StatusBadRequest, "invalid_extension_target")
	case errors.Is(err, domain.ErrInvalidInput):
		a.error(w, r, http.StatusBadRequest, "invalid_input")
	case errors.Is(err, domain.ErrEmptyOutput):
		a.error(w, r, http.StatusUnprocessableEntity, "empty_output")
	case errors.Is(err, domain.ErrJobStalled):
		a.error(w, r, http.StatusGatewayTimeout, "job_stalled")
	case errors.Is(err, domain.ErrTransport):
		a.error(w, r, http.StatusBadGateway, "transport_failure")
	case errors.Is(err, domain.ErrNotFound):
		a.error(w, r, http.StatusNotFound, "not_found")
	default:
		a.error(w, r, http.StatusInternalServerError, "internal")
	}
}

// progressLogger turns orchestrator status updates into log lines tagged
// with the request id.
func (a *App) progressLogger(ctx context.Context) joblife.ProgressFunc {
	rid := middleware.RequestIDFromContext(ctx)
	return func(status string) {
		a.Logger.Info().Str("request_id", rid).Msg("progress: " + status)
	}
}

var messages = map[string]map[string]string{
	"en": {
		"not_authorized":           "No API credential is selected. Select one and retry.",
		"invalid_extension_target": "Only video results can be extended.",
		"invalid_input":            "The request is missing a required field.",
		"empty_output":             "The model returned no image. Resubmitting the same request may succeed.",
		"job_stalled":              "The video job did not finish in time. Retry from scratch.",
		"transport_failure":        "The generation backend could not be reached.",
		"not_found":                "The requested resource does not exist.",
		"credentials_unavailable":  "Credential selection is not available on this deployment.",
		"bad_request":              "The request payload could not be parsed.",
		"internal":                 "Something went wrong.",
	},
	"id": {
		"not_authorized":           "Belum ada kredensial API yang dipilih. Pilih satu lalu coba lagi.",
		"invalid_extension_target": "Hanya hasil video yang bisa diperpanjang.",
		"invalid_input":            "Permintaan kekurangan field wajib.",
		"empty_output":             "Model tidak mengembalikan gambar. Kirim ulang permintaan yang sama bisa berhasil.",
		"job_stalled":              "Job video tidak selesai tepat waktu. Ulangi dari awal.",
		"transport_failure":        "Backend generasi tidak dapat dihubungi.",
		"not_found":                "Sumber daya tidak ditemukan.",
		"credentials_unavailable":  "Pemilihan kredensial tidak tersedia pada deployment ini.",
		"bad_request":              "Payload permintaan tidak dapat dibaca.",
		"internal":                 "Terjadi kesalahan.",
	},
}

func message(locale, code string) string {
	if m, ok := messages[locale]; ok {
		if msg, ok := m[code]; ok {
			return msg
		}
	}
	if msg, ok := messages["en"][code]; ok {
		return msg
	}
	return code
}
