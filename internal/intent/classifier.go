// Package intent routes a free-text instruction to one of the two
// generation pipelines. The keyword heuristic is deterministic and
// best-effort; callers that know the mode should pass it explicitly and
// keep the classifier as a fallback.
package intent

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Mode identifies a generation pipeline.
type Mode string

const (
	ModeImageEdit      Mode = "image_edit"
	ModeVideoSynthesis Mode = "video_synthesis"
)

// DefaultVideoKeywords route an instruction to the video pipeline when any
// of them occurs anywhere in the text, case-insensitively.
var DefaultVideoKeywords = []string{"video", "animated", "movie", "render"}

// Classifier maps instruction text to a Mode. The zero value is not usable;
// construct with New or Load.
type Classifier struct {
	keywords []string
}

// New builds a classifier over the given video keywords. Empty input falls
// back to DefaultVideoKeywords.
func New(keywords []string) *Classifier {
	normalized := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw != "" {
			normalized = append(normalized, kw)
		}
	}
	if len(normalized) == 0 {
		normalized = append(normalized, DefaultVideoKeywords...)
	}
	return &Classifier{keywords: normalized}
}

type keywordFile struct {
	VideoKeywords []string `yaml:"video_keywords"`
}

// Load reads an optional YAML keyword file. An empty path yields the
// default keyword set.
func Load(path string) (*Classifier, error) {
	if strings.TrimSpace(path) == "" {
		return New(nil), nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("intent: read keyword file: %w", err)
	}
	var kf keywordFile
	if err := yaml.Unmarshal(raw, &kf); err != nil {
		return nil, fmt.Errorf("intent: parse keyword file: %w", err)
	}
	return New(kf.VideoKeywords), nil
}

// Classify is pure and total: an empty instruction is an image edit, and
// the same input always yields the same route.
func (c *Classifier) Classify(instruction string) Mode {
	lowered := strings.ToLower(instruction)
	for _, kw := range c.keywords {
		if strings.Contains(lowered, kw) {
			return ModeVideoSynthesis
		}
	}
	return ModeImageEdit
}

// ParseMode maps a caller-supplied mode string to a Mode. The boolean is
// false when the string names no known pipeline and the caller should fall
// back to classification.
func ParseMode(s string) (Mode, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(ModeImageEdit), "image":
		return ModeImageEdit, true
	case string(ModeVideoSynthesis), "video":
		return ModeVideoSynthesis, true
	default:
		return "", false
	}
}
