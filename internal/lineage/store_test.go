package lineage

import (
	"errors"
	"fmt"
	"testing"

	"github.com/digitalskillszone555/AI-video-generator-sub000/internal/domain"
)

func videoArtifact(i int) *domain.Artifact {
	return domain.NewVideoArtifact(
		fmt.Sprintf("http://test/static/videos/%d.mp4", i),
		fmt.Sprintf("prompt %d", i),
		fmt.Sprintf("files/video-%d", i),
		"720p", "16:9", "",
	)
}

func TestListReturnsReverseInsertionOrder(t *testing.T) {
	s := NewStore()
	var ids []string
	for i := 0; i < 5; i++ {
		a := videoArtifact(i)
		ids = append(ids, a.ID)
		if err := s.Append(a); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}
	got := s.List()
	if len(got) != 5 {
		t.Fatalf("len = %d, want 5", len(got))
	}
	for i, a := range got {
		want := ids[len(ids)-1-i]
		if a.ID != want {
			t.Fatalf("List()[%d] = %s, want %s", i, a.ID, want)
		}
	}
}

func TestSetActiveAndActive(t *testing.T) {
	s := NewStore()
	first := videoArtifact(1)
	second := videoArtifact(2)
	_ = s.Append(first)
	_ = s.Append(second)

	if got := s.Active(); got != nil {
		t.Fatalf("Active before SetActive = %v, want nil", got)
	}
	if err := s.SetActive(first.ID); err != nil {
		t.Fatalf("SetActive: %v", err)
	}
	if got := s.Active(); got == nil || got.ID != first.ID {
		t.Fatalf("Active = %v, want %s", got, first.ID)
	}
	// Last write wins.
	if err := s.SetActive(second.ID); err != nil {
		t.Fatalf("SetActive: %v", err)
	}
	if got := s.Active(); got.ID != second.ID {
		t.Fatalf("Active = %s, want %s", got.ID, second.ID)
	}
}

func TestSetActiveUnknownIDFails(t *testing.T) {
	s := NewStore()
	if err := s.SetActive("missing"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestAppendRejectsInvalidArtifact(t *testing.T) {
	s := NewStore()
	bad := &domain.Artifact{ID: "x", Kind: domain.ArtifactImage, MediaURL: "http://x", ProviderHandle: "handle"}
	if err := s.Append(bad); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("err = %v, want ErrInvalidInput", err)
	}
	if s.Len() != 0 {
		t.Fatalf("invalid artifact was stored")
	}
}

func TestGet(t *testing.T) {
	s := NewStore()
	a := videoArtifact(1)
	_ = s.Append(a)
	got, err := s.Get(a.ID)
	if err != nil || got.ID != a.ID {
		t.Fatalf("Get = %v, %v", got, err)
	}
	if _, err := s.Get("nope"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestReset(t *testing.T) {
	s := NewStore()
	a := videoArtifact(1)
	_ = s.Append(a)
	_ = s.SetActive(a.ID)
	s.Reset()
	if s.Len() != 0 {
		t.Fatalf("Len after reset = %d", s.Len())
	}
	if s.Active() != nil {
		t.Fatalf("Active after reset should be nil")
	}
}
