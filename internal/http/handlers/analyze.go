package handlers

import (
	"encoding/json"
	"net/http"
)

type analyzeRequest struct {
	ImageBase64 string `json:"image_base64"`
}

// Analyze runs the synchronous classification call on a photo.
func (a *App) Analyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ImageBase64 == "" {
		a.error(w, r, http.StatusBadRequest, "bad_request")
		return
	}
	analysis, err := a.Analyzer.AnalyzeImage(r.Context(), req.ImageBase64)
	if err != nil {
		a.serviceError(w, r, err)
		return
	}
	a.json(w, http.StatusOK, analysis)
}
