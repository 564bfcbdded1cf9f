package intent

import (
	"os"
	"path/filepath"
	"testing"
)

func TestClassifyVideoKeywords(t *testing.T) {
	c := New(nil)
	cases := []string{
		"make a video of this plant",
		"VIDEO please",
		"an AniMaTeD scene",
		"turn it into a short movie",
		"render a sunrise timelapse",
		"please RENDER this",
	}
	for _, instruction := range cases {
		if got := c.Classify(instruction); got != ModeVideoSynthesis {
			t.Fatalf("Classify(%q) = %s, want video", instruction, got)
		}
	}
}

func TestClassifyDefaultsToImageEdit(t *testing.T) {
	c := New(nil)
	cases := []string{
		"",
		"make it look vintage",
		"remove the background",
		"add warm lighting",
	}
	for _, instruction := range cases {
		if got := c.Classify(instruction); got != ModeImageEdit {
			t.Fatalf("Classify(%q) = %s, want image edit", instruction, got)
		}
	}
}

func TestClassifyIsDeterministic(t *testing.T) {
	c := New(nil)
	for _, instruction := range []string{"render a video of growth", "brighten the photo"} {
		first := c.Classify(instruction)
		second := c.Classify(instruction)
		if first != second {
			t.Fatalf("Classify(%q) not stable: %s then %s", instruction, first, second)
		}
	}
}

func TestLoadKeywordFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keywords.yaml")
	if err := os.WriteFile(path, []byte("video_keywords:\n  - clip\n  - footage\n"), 0o644); err != nil {
		t.Fatalf("write keyword file: %v", err)
	}
	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := c.Classify("short CLIP of rain"); got != ModeVideoSynthesis {
		t.Fatalf("custom keyword not honored: %s", got)
	}
	if got := c.Classify("make a video"); got != ModeImageEdit {
		t.Fatalf("default keywords should be replaced: %s", got)
	}
}

func TestLoadEmptyPathUsesDefaults(t *testing.T) {
	c, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := c.Classify("a movie about cats"); got != ModeVideoSynthesis {
		t.Fatalf("defaults missing: %s", got)
	}
}

func TestParseMode(t *testing.T) {
	if mode, ok := ParseMode("video"); !ok || mode != ModeVideoSynthesis {
		t.Fatalf("ParseMode(video) = %s, %v", mode, ok)
	}
	if mode, ok := ParseMode("image_edit"); !ok || mode != ModeImageEdit {
		t.Fatalf("ParseMode(image_edit) = %s, %v", mode, ok)
	}
	if _, ok := ParseMode("hologram"); ok {
		t.Fatalf("unknown mode should not parse")
	}
}
