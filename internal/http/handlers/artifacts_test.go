package handlers_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/digitalskillszone555/AI-video-generator-sub000/internal/domain"
	"github.com/digitalskillszone555/AI-video-generator-sub000/internal/lineage"
)

func TestArtifactsKeepListActivate(t *testing.T) {
	store := lineage.NewStore()
	ts := newTestServer(t, &fakeService{}, store)

	artifact := domain.NewImageArtifact("http://test/static/images/kept.png", "kept edit")
	raw, _ := json.Marshal(artifact)

	resp := postJSON(t, ts.URL+"/v1/artifacts", string(raw), nil)
	resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("keep status = %d", resp.StatusCode)
	}
	if store.Len() != 1 {
		t.Fatalf("artifact not stored")
	}

	listResp, err := http.Get(ts.URL + "/v1/artifacts")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	defer listResp.Body.Close()
	var listing struct {
		Items []domain.Artifact `json:"items"`
		Count int               `json:"count"`
	}
	if err := json.NewDecoder(listResp.Body).Decode(&listing); err != nil {
		t.Fatalf("decode listing: %v", err)
	}
	if listing.Count != 1 || listing.Items[0].ID != artifact.ID {
		t.Fatalf("unexpected listing: %+v", listing)
	}

	actResp := postJSON(t, ts.URL+"/v1/artifacts/"+artifact.ID+"/activate", "{}", nil)
	actResp.Body.Close()
	if actResp.StatusCode != http.StatusOK {
		t.Fatalf("activate status = %d", actResp.StatusCode)
	}

	activeResp, err := http.Get(ts.URL + "/v1/artifacts/active")
	if err != nil {
		t.Fatalf("active: %v", err)
	}
	defer activeResp.Body.Close()
	var active domain.Artifact
	if err := json.NewDecoder(activeResp.Body).Decode(&active); err != nil {
		t.Fatalf("decode active: %v", err)
	}
	if active.ID != artifact.ID {
		t.Fatalf("active = %s, want %s", active.ID, artifact.ID)
	}
}

func TestArtifactsActivateUnknown(t *testing.T) {
	ts := newTestServer(t, &fakeService{}, nil)
	resp := postJSON(t, ts.URL+"/v1/artifacts/ghost/activate", "{}", nil)
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", resp.StatusCode)
	}
}

func TestArtifactsReset(t *testing.T) {
	store := lineage.NewStore()
	_ = store.Append(domain.NewImageArtifact("http://test/static/images/a.png", "p"))
	ts := newTestServer(t, &fakeService{}, store)

	req, _ := http.NewRequest(http.MethodDelete, ts.URL+"/v1/artifacts", nil)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("reset: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if store.Len() != 0 {
		t.Fatalf("store not cleared")
	}
}

func TestCredentialsStatus(t *testing.T) {
	ts := newTestServer(t, &fakeService{}, nil)
	resp, err := http.Get(ts.URL + "/v1/credentials/status")
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	defer resp.Body.Close()
	var body map[string]bool
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !body["authorized"] {
		t.Fatalf("static gate with a key must report authorized")
	}
}

func TestCredentialsSelectUnavailableWithoutStore(t *testing.T) {
	ts := newTestServer(t, &fakeService{}, nil)
	resp := postJSON(t, ts.URL+"/v1/credentials", `{"api_key":"k"}`, nil)
	resp.Body.Close()
	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", resp.StatusCode)
	}
}
