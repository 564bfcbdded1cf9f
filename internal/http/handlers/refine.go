package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/digitalskillszone555/AI-video-generator-sub000/internal/intent"
	"github.com/digitalskillszone555/AI-video-generator-sub000/internal/orchestrator"
	"github.com/digitalskillszone555/AI-video-generator-sub000/internal/prompting"
)

type refineRequest struct {
	ImageBase64 string `json:"image_base64"`
	Instruction string `json:"instruction"`
	// Mode optionally forces a pipeline ("image_edit" or
	// "video_synthesis"); without it the instruction is classified.
	Mode string `json:"mode,omitempty"`
	// Optional structured fields folded into the instruction.
	Style      string `json:"style,omitempty"`
	Background string `json:"background,omitempty"`
}

// Refine runs one refinement call and blocks until the artifact is ready
// or the call fails. The result is returned to the caller, not stored;
// POST /v1/artifacts keeps it.
func (a *App) Refine(w http.ResponseWriter, r *http.Request) {
	var req refineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, r, http.StatusBadRequest, "bad_request")
		return
	}

	instruction := req.Instruction
	if req.Style != "" || req.Background != "" {
		instruction = prompting.BuildEdit(prompting.EditSpec{
			Instruction: req.Instruction,
			Style:       req.Style,
			Background:  req.Background,
		})
	}

	call := orchestrator.RefineRequest{
		SourceImageBase64: req.ImageBase64,
		Instruction:       instruction,
		OnProgress:        a.progressLogger(r.Context()),
	}
	if mode, ok := intent.ParseMode(req.Mode); ok {
		call.Mode = mode
	}

	artifact, err := a.Service.Refine(r.Context(), call)
	if err != nil {
		a.serviceError(w, r, err)
		return
	}
	a.json(w, http.StatusOK, artifact)
}

type extendRequest struct {
	Instruction string `json:"instruction"`
}

// Extend continues the video artifact identified in the path. On success
// the new artifact is already appended to the lineage and active.
func (a *App) Extend(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	parent, err := a.Lineage.Get(id)
	if err != nil {
		a.error(w, r, http.StatusNotFound, "not_found")
		return
	}

	var req extendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, r, http.StatusBadRequest, "bad_request")
		return
	}

	artifact, err := a.Service.Extend(r.Context(), parent, req.Instruction, a.progressLogger(r.Context()))
	if err != nil {
		a.serviceError(w, r, err)
		return
	}
	a.json(w, http.StatusOK, artifact)
}
