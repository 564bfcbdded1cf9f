package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/digitalskillszone555/AI-video-generator-sub000/internal/credentials"
)

type credentialRequest struct {
	Provider string `json:"provider"`
	APIKey   string `json:"api_key"`
}

// CredentialsSelect stores and selects a provider credential. This is the
// out-of-band half of the authorization gate: a refine call that failed
// with not_authorized succeeds once a credential lands here.
func (a *App) CredentialsSelect(w http.ResponseWriter, r *http.Request) {
	if a.Credentials == nil {
		a.error(w, r, http.StatusServiceUnavailable, "credentials_unavailable")
		return
	}
	var req credentialRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.APIKey == "" {
		a.error(w, r, http.StatusBadRequest, "bad_request")
		return
	}
	if req.Provider == "" {
		req.Provider = credentials.ProviderGateway
	}
	if err := a.Credentials.Select(r.Context(), req.Provider, req.APIKey); err != nil {
		a.Logger.Error().Err(err).Msg("credentials: select failed")
		a.error(w, r, http.StatusInternalServerError, "internal")
		return
	}
	a.json(w, http.StatusOK, map[string]string{"status": "selected"})
}

// CredentialsStatus reports whether the gate currently authorizes paid
// operations.
func (a *App) CredentialsStatus(w http.ResponseWriter, r *http.Request) {
	authorized, err := a.Gate.IsAuthorized(r.Context())
	if err != nil {
		a.Logger.Error().Err(err).Msg("credentials: status check failed")
		a.error(w, r, http.StatusInternalServerError, "internal")
		return
	}
	a.json(w, http.StatusOK, map[string]bool{"authorized": authorized})
}
