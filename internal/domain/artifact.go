package domain

import (
	"time"

	"github.com/google/uuid"
)

// ArtifactKind enumerates the media categories a generation can produce.
type ArtifactKind string

const (
	ArtifactImage ArtifactKind = "image"
	ArtifactVideo ArtifactKind = "video"
)

// Artifact is one produced media result. It is immutable after creation;
// a new generation always yields a new Artifact.
type Artifact struct {
	ID           string       `json:"id"`
	Kind         ArtifactKind `json:"kind"`
	MediaURL     string       `json:"media_url"`
	SourcePrompt string       `json:"source_prompt"`
	CreatedAt    time.Time    `json:"created_at"`

	// ProviderHandle references the provider-side video object and is what
	// makes a clip extendable. Set only when Kind is ArtifactVideo.
	ProviderHandle string `json:"provider_handle,omitempty"`
	Resolution     string `json:"resolution,omitempty"`
	AspectRatio    string `json:"aspect_ratio,omitempty"`
	ParentID       string `json:"parent_id,omitempty"`
}

// NewImageArtifact wraps a stored image edit result.
func NewImageArtifact(mediaURL, sourcePrompt string) *Artifact {
	return &Artifact{
		ID:           uuid.NewString(),
		Kind:         ArtifactImage,
		MediaURL:     mediaURL,
		SourcePrompt: sourcePrompt,
		CreatedAt:    time.Now().UTC(),
	}
}

// NewVideoArtifact wraps a materialized video result together with the
// provider handle required to request an extension later.
func NewVideoArtifact(mediaURL, sourcePrompt, providerHandle, resolution, aspectRatio, parentID string) *Artifact {
	return &Artifact{
		ID:             uuid.NewString(),
		Kind:           ArtifactVideo,
		MediaURL:       mediaURL,
		SourcePrompt:   sourcePrompt,
		CreatedAt:      time.Now().UTC(),
		ProviderHandle: providerHandle,
		Resolution:     resolution,
		AspectRatio:    aspectRatio,
		ParentID:       parentID,
	}
}

// Extendable reports whether the artifact can seed a continuation request.
// Image artifacts are terminal; only videos carry a provider handle.
func (a *Artifact) Extendable() bool {
	return a != nil && a.Kind == ArtifactVideo && a.ProviderHandle != ""
}

// Validate enforces the kind/handle invariant.
func (a *Artifact) Validate() error {
	if a == nil || a.ID == "" || a.MediaURL == "" {
		return ErrInvalidInput
	}
	switch a.Kind {
	case ArtifactImage:
		if a.ProviderHandle != "" {
			return ErrInvalidInput
		}
	case ArtifactVideo:
		if a.ProviderHandle == "" {
			return ErrInvalidInput
		}
	default:
		return ErrInvalidInput
	}
	return nil
}
