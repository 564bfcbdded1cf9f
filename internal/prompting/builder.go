// Package prompting assembles instruction text from structured request
// fields so callers do not hand-concatenate prompt fragments.
package prompting

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// EditSpec carries the structured pieces of an image edit instruction.
type EditSpec struct {
	Instruction string
	Style       string
	Background  string
	AspectRatio string
}

// BuildEdit renders an edit instruction. Style labels are title-cased so
// "film noir" and "Film Noir" produce the same prompt.
func BuildEdit(spec EditSpec) string {
	titler := cases.Title(language.Und)
	parts := []string{}
	if v := strings.TrimSpace(spec.Instruction); v != "" {
		parts = append(parts, v)
	}
	if v := strings.TrimSpace(spec.Style); v != "" {
		parts = append(parts, fmt.Sprintf("Visual style: %s.", titler.String(v)))
	}
	if v := strings.TrimSpace(spec.Background); v != "" {
		parts = append(parts, "Background: "+v+".")
	}
	parts = append(parts, "Keep the original subject shape and natural proportions.")
	if v := strings.TrimSpace(spec.AspectRatio); v != "" {
		parts = append(parts, "Compose for a "+v+" aspect ratio.")
	}
	return strings.Join(parts, " ")
}

// BuildExtension frames an instruction as a continuation of an existing
// clip so the provider maintains continuity.
func BuildExtension(instruction string) string {
	instruction = strings.TrimSpace(instruction)
	if instruction == "" {
		return "Continue the clip naturally."
	}
	return "Continue the clip: " + instruction
}
