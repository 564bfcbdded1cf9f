package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/digitalskillszone555/AI-video-generator-sub000/internal/domain"
)

// ArtifactsList returns the lineage most recent first.
func (a *App) ArtifactsList(w http.ResponseWriter, r *http.Request) {
	items := a.Lineage.List()
	a.json(w, http.StatusOK, map[string]any{"items": items, "count": len(items)})
}

// ArtifactsKeep appends an artifact the caller decided to retain, usually
// one returned by a refine call.
func (a *App) ArtifactsKeep(w http.ResponseWriter, r *http.Request) {
	var artifact domain.Artifact
	if err := json.NewDecoder(r.Body).Decode(&artifact); err != nil {
		a.error(w, r, http.StatusBadRequest, "bad_request")
		return
	}
	if err := a.Lineage.Append(&artifact); err != nil {
		a.serviceError(w, r, err)
		return
	}
	a.json(w, http.StatusCreated, &artifact)
}

// ArtifactsActivate marks an artifact active.
func (a *App) ArtifactsActivate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := a.Lineage.SetActive(id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			a.error(w, r, http.StatusNotFound, "not_found")
			return
		}
		a.serviceError(w, r, err)
		return
	}
	a.json(w, http.StatusOK, map[string]string{"active": id})
}

// ArtifactsActive returns the active artifact, if any.
func (a *App) ArtifactsActive(w http.ResponseWriter, r *http.Request) {
	artifact := a.Lineage.Active()
	if artifact == nil {
		a.error(w, r, http.StatusNotFound, "not_found")
		return
	}
	a.json(w, http.StatusOK, artifact)
}

// ArtifactsReset drops the whole lineage. Binary payloads on disk are kept;
// only the session log is cleared.
func (a *App) ArtifactsReset(w http.ResponseWriter, r *http.Request) {
	a.Lineage.Reset()
	a.json(w, http.StatusOK, map[string]string{"status": "reset"})
}
